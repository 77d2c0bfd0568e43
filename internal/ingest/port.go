package ingest

import (
	"context"
	"time"

	"github.com/chirpdex/chirpdex/internal/db"
	"github.com/chirpdex/chirpdex/internal/source"
)

// SourcePort fetches a bounded batch of posts from the external source
type SourcePort interface {
	Search(ctx context.Context, query string, maxResults int) ([]source.Tweet, error)
}

// PostStorePort upserts mirrored posts keyed by external identifier
type PostStorePort interface {
	Upsert(ctx context.Context, idStr, text string, createdAtX time.Time) (db.UpsertOutcome, error)
}
