package ingest

import (
	"context"

	"go.uber.org/zap"

	"github.com/chirpdex/chirpdex/internal/db"
	"github.com/chirpdex/chirpdex/internal/source"
	"github.com/chirpdex/chirpdex/pkg/logging"
	"github.com/chirpdex/chirpdex/pkg/telemetry"
)

// Summary reports the outcome of one ingestion batch. FetchedCount always
// equals the number of items the source returned; SavedCount counts items
// that made it into the store.
type Summary struct {
	FetchedCount int
	SavedCount   int
	Items        []source.Tweet
}

// Service drives a fetch-then-store ingestion batch
type Service struct {
	src    SourcePort
	posts  PostStorePort
	logger *zap.Logger
}

// New creates a new ingestion service
func New(src SourcePort, posts PostStorePort) *Service {
	return &Service{
		src:    src,
		posts:  posts,
		logger: logging.GetLogger().With(zap.String("component", "ingest")),
	}
}

// Run fetches one batch from the source and upserts each item. Per-item
// failures (malformed timestamp, store error) skip the item and never abort
// the batch; source failures abort the whole run.
func (s *Service) Run(ctx context.Context, query string, maxResults int) (*Summary, error) {
	ctx, span := telemetry.StartSpan(ctx, "ingest.run")
	defer span.End()

	tweets, err := s.src.Search(ctx, query, maxResults)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		FetchedCount: len(tweets),
		Items:        tweets,
	}

	for _, tweet := range tweets {
		createdAtX, err := Normalize(tweet.CreatedAt)
		if err != nil {
			s.logger.Warn("Skipping tweet with malformed timestamp",
				zap.String("id_str", tweet.ID),
				zap.String("created_at", tweet.CreatedAt),
				zap.Error(err))
			continue
		}

		outcome, err := s.posts.Upsert(ctx, tweet.ID, tweet.Text, createdAtX)
		if err != nil {
			s.logger.Error("Failed to save tweet",
				zap.String("id_str", tweet.ID),
				zap.Error(err))
			continue
		}

		summary.SavedCount++
		s.logger.Debug("Saved tweet",
			zap.String("id_str", tweet.ID),
			zap.Bool("inserted", outcome == db.OutcomeInserted))
	}

	s.logger.Info("Ingestion batch complete",
		zap.String("query", query),
		zap.Int("fetched", summary.FetchedCount),
		zap.Int("saved", summary.SavedCount))

	return summary, nil
}
