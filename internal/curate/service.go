package curate

import (
	"context"

	"go.uber.org/zap"

	"github.com/chirpdex/chirpdex/internal/apperr"
	"github.com/chirpdex/chirpdex/internal/models"
	"github.com/chirpdex/chirpdex/pkg/logging"
	"github.com/chirpdex/chirpdex/pkg/telemetry"
)

// CategoryStorePort looks up categories
type CategoryStorePort interface {
	GetByID(ctx context.Context, id int64) (*models.Category, error)
}

// PostStorePort looks up posts
type PostStorePort interface {
	GetByID(ctx context.Context, id int64) (*models.Post, error)
}

// LinkStorePort maintains post-category associations
type LinkStorePort interface {
	Link(ctx context.Context, postID, categoryID int64) error
	PostsForCategory(ctx context.Context, categoryID int64) ([]*models.Post, error)
}

// Service validates and maintains post-category links
type Service struct {
	categories CategoryStorePort
	posts      PostStorePort
	links      LinkStorePort
	logger     *zap.Logger
}

// New creates a new curation service
func New(categories CategoryStorePort, posts PostStorePort, links LinkStorePort) *Service {
	return &Service{
		categories: categories,
		posts:      posts,
		links:      links,
		logger:     logging.GetLogger().With(zap.String("component", "curate")),
	}
}

// LinkPosts links the given posts to a category and returns how many were
// linked. Post ids that do not exist are skipped and uncounted; pairs that
// already exist still count, since the desired state holds either way.
// Atomicity is per pair: a store failure aborts the rest of the batch but
// leaves already-created links committed.
func (s *Service) LinkPosts(ctx context.Context, categoryID int64, postIDs []int64) (int, error) {
	ctx, span := telemetry.StartSpan(ctx, "curate.link_posts")
	defer span.End()

	if len(postIDs) == 0 {
		return 0, apperr.Validation("post_ids must not be empty")
	}

	category, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return 0, apperr.Storage("failed to look up category", err)
	}
	if category == nil {
		return 0, apperr.NotFound("category not found")
	}

	linked := 0
	seen := make(map[int64]bool, len(postIDs))
	for _, postID := range postIDs {
		if seen[postID] {
			continue
		}
		seen[postID] = true

		post, err := s.posts.GetByID(ctx, postID)
		if err != nil {
			return linked, apperr.Storage("failed to look up post", err)
		}
		if post == nil {
			s.logger.Debug("Skipping nonexistent post",
				zap.Int64("post_id", postID),
				zap.Int64("category_id", categoryID))
			continue
		}

		if err := s.links.Link(ctx, postID, categoryID); err != nil {
			return linked, apperr.Storage("failed to create link", err)
		}
		linked++
	}

	s.logger.Info("Linked posts to category",
		zap.Int64("category_id", categoryID),
		zap.Int("requested", len(postIDs)),
		zap.Int("linked", linked))

	return linked, nil
}

// PostsForCategory returns a category together with its linked posts,
// newest first by external creation time
func (s *Service) PostsForCategory(ctx context.Context, categoryID int64) (*models.Category, []*models.Post, error) {
	ctx, span := telemetry.StartSpan(ctx, "curate.posts_for_category")
	defer span.End()

	category, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return nil, nil, apperr.Storage("failed to look up category", err)
	}
	if category == nil {
		return nil, nil, apperr.NotFound("category not found")
	}

	posts, err := s.links.PostsForCategory(ctx, categoryID)
	if err != nil {
		return nil, nil, apperr.Storage("failed to list category posts", err)
	}

	return category, posts, nil
}
