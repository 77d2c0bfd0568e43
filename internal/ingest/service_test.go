package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chirpdex/chirpdex/internal/db"
	"github.com/chirpdex/chirpdex/internal/source"
)

type fakeSource struct {
	tweets []source.Tweet
	err    error
}

func (f fakeSource) Search(ctx context.Context, query string, maxResults int) ([]source.Tweet, error) {
	return f.tweets, f.err
}

type fakeStore struct {
	saved  map[string]string
	failOn string
}

func newFakeStore() *fakeStore {
	return &fakeStore{saved: make(map[string]string)}
}

func (f *fakeStore) Upsert(ctx context.Context, idStr, text string, createdAtX time.Time) (db.UpsertOutcome, error) {
	if idStr == f.failOn {
		return db.OutcomeInserted, errors.New("insert failed")
	}
	outcome := db.OutcomeInserted
	if _, ok := f.saved[idStr]; ok {
		outcome = db.OutcomeUpdated
	}
	f.saved[idStr] = text
	return outcome, nil
}

func TestRun_Success(t *testing.T) {
	store := newFakeStore()
	svc := New(fakeSource{tweets: []source.Tweet{
		{ID: "100", Text: "first", CreatedAt: "2024-05-01T10:00:00.000Z"},
		{ID: "101", Text: "second", CreatedAt: "2024-05-01T11:00:00.000Z"},
	}}, store)

	summary, err := svc.Run(context.Background(), "from:twitterdev", 10)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if summary.FetchedCount != 2 || summary.SavedCount != 2 {
		t.Errorf("counts = (%d, %d), want (2, 2)", summary.FetchedCount, summary.SavedCount)
	}
	if len(summary.Items) != 2 {
		t.Errorf("expected 2 items in summary, got %d", len(summary.Items))
	}
	if store.saved["100"] != "first" || store.saved["101"] != "second" {
		t.Errorf("unexpected store contents: %v", store.saved)
	}
}

func TestRun_MalformedTimestampSkipsItem(t *testing.T) {
	store := newFakeStore()
	svc := New(fakeSource{tweets: []source.Tweet{
		{ID: "100", Text: "ok", CreatedAt: "2024-05-01T10:00:00.000Z"},
		{ID: "101", Text: "bad", CreatedAt: "yesterday"},
		{ID: "102", Text: "also ok", CreatedAt: "2024-05-01T12:00:00.000Z"},
	}}, store)

	summary, err := svc.Run(context.Background(), "q", 10)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if summary.FetchedCount != 3 {
		t.Errorf("FetchedCount = %d, want 3", summary.FetchedCount)
	}
	if summary.SavedCount != 2 {
		t.Errorf("SavedCount = %d, want 2", summary.SavedCount)
	}
	if _, ok := store.saved["101"]; ok {
		t.Error("malformed item should not be saved")
	}
	if _, ok := store.saved["102"]; !ok {
		t.Error("items after the malformed one should still be processed")
	}
}

func TestRun_StoreFailureIsolated(t *testing.T) {
	store := newFakeStore()
	store.failOn = "100"
	svc := New(fakeSource{tweets: []source.Tweet{
		{ID: "100", Text: "fails", CreatedAt: "2024-05-01T10:00:00.000Z"},
		{ID: "101", Text: "saves", CreatedAt: "2024-05-01T11:00:00.000Z"},
	}}, store)

	summary, err := svc.Run(context.Background(), "q", 10)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if summary.FetchedCount != 2 || summary.SavedCount != 1 {
		t.Errorf("counts = (%d, %d), want (2, 1)", summary.FetchedCount, summary.SavedCount)
	}
}

func TestRun_Idempotent(t *testing.T) {
	store := newFakeStore()
	tweets := []source.Tweet{{ID: "100", Text: "v1", CreatedAt: "2024-05-01T10:00:00.000Z"}}
	svc := New(fakeSource{tweets: tweets}, store)

	if _, err := svc.Run(context.Background(), "q", 10); err != nil {
		t.Fatalf("first Run() error: %v", err)
	}

	// Same external id again with new text
	svc2 := New(fakeSource{tweets: []source.Tweet{
		{ID: "100", Text: "v2", CreatedAt: "2024-05-01T10:00:00.000Z"},
	}}, store)
	summary, err := svc2.Run(context.Background(), "q", 10)
	if err != nil {
		t.Fatalf("second Run() error: %v", err)
	}
	if summary.SavedCount != 1 {
		t.Errorf("SavedCount = %d, want 1", summary.SavedCount)
	}
	if len(store.saved) != 1 {
		t.Errorf("expected exactly one stored row, got %d", len(store.saved))
	}
	if store.saved["100"] != "v2" {
		t.Errorf("text should be refreshed on re-ingestion, got %q", store.saved["100"])
	}
}

func TestRun_SourceError(t *testing.T) {
	srcErr := &source.RemoteError{Status: 503, Body: "unavailable"}
	svc := New(fakeSource{err: srcErr}, newFakeStore())

	_, err := svc.Run(context.Background(), "q", 10)
	var remoteErr *source.RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("expected RemoteError to propagate, got %v", err)
	}
}
