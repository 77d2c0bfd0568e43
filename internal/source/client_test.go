package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chirpdex/chirpdex/pkg/config"
)

func newTestClient(t *testing.T, baseURL, token string) *Client {
	t.Helper()
	client, err := New(&config.SourceConfig{
		BaseURL:     baseURL,
		BearerToken: token,
		Timeout:     5 * time.Second,
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return client
}

func TestSearch_Success(t *testing.T) {
	var gotAuth, gotQuery, gotMax string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query().Get("query")
		gotMax = r.URL.Query().Get("max_results")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[
			{"id":"100","text":"first","created_at":"2024-05-01T10:00:00.000Z"},
			{"id":"101","text":"second","created_at":"2024-05-01T11:30:00.000Z"}
		]}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, "test-token")
	tweets, err := client.Search(context.Background(), "from:twitterdev", 10)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}

	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization header = %q, want %q", gotAuth, "Bearer test-token")
	}
	if gotQuery != "from:twitterdev" || gotMax != "10" {
		t.Errorf("query params = (%q, %q), want (from:twitterdev, 10)", gotQuery, gotMax)
	}
	if len(tweets) != 2 {
		t.Fatalf("expected 2 tweets, got %d", len(tweets))
	}
	if tweets[0].ID != "100" || tweets[0].Text != "first" {
		t.Errorf("unexpected first tweet: %+v", tweets[0])
	}
}

func TestSearch_NoToken(t *testing.T) {
	client := newTestClient(t, "http://localhost:1", "")

	_, err := client.Search(context.Background(), "q", 10)
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %v", err)
	}
}

func TestSearch_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"title":"Unauthorized"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, "bad-token")
	_, err := client.Search(context.Background(), "q", 10)
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError for 401, got %v", err)
	}
}

func TestSearch_RemoteErrorPreservesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"title":"Too Many Requests"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, "test-token")
	_, err := client.Search(context.Background(), "q", 10)
	var remoteErr *RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("expected RemoteError, got %v", err)
	}
	if remoteErr.Status != http.StatusTooManyRequests {
		t.Errorf("Status = %d, want %d", remoteErr.Status, http.StatusTooManyRequests)
	}
	if remoteErr.Body != `{"title":"Too Many Requests"}` {
		t.Errorf("Body = %q, raw body should be preserved", remoteErr.Body)
	}
}

func TestSearch_EmptyData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"meta":{"result_count":0}}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, "test-token")
	tweets, err := client.Search(context.Background(), "q", 10)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(tweets) != 0 {
		t.Errorf("expected no tweets, got %d", len(tweets))
	}
}
