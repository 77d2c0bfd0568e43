package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/chirpdex/chirpdex/pkg/config"
	"github.com/chirpdex/chirpdex/pkg/logging"
	"github.com/chirpdex/chirpdex/pkg/telemetry"
)

// Tweet is a post as returned by the recent-search endpoint
type Tweet struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}

// AuthError means no credential is configured or the source rejected it
type AuthError struct {
	Reason string
}

// Error implements the error interface
func (e *AuthError) Error() string {
	return fmt.Sprintf("source auth failed: %s", e.Reason)
}

// RemoteError is a non-success response from the source. The raw body is
// preserved for diagnostics.
type RemoteError struct {
	Status int
	Body   string
}

// Error implements the error interface
func (e *RemoteError) Error() string {
	return fmt.Sprintf("source returned HTTP %d: %s", e.Status, e.Body)
}

// Client fetches posts from the X v2 recent-search API
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	logger     *zap.Logger
}

// New creates a new source client
func New(cfg *config.SourceConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("source_url is required")
	}

	logger := logging.GetLogger().With(zap.String("component", "source-client"))

	client := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		token:      cfg.BearerToken,
		logger:     logger,
	}

	logger.Info("Source client initialized", zap.String("url", cfg.BaseURL))

	return client, nil
}

// Search performs a single recent-search fetch bounded by maxResults.
// No retries, no pagination.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]Tweet, error) {
	ctx, span := telemetry.StartSpan(ctx, "source.search")
	defer span.End()

	if c.token == "" {
		return nil, &AuthError{Reason: "no bearer token configured"}
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("max_results", strconv.Itoa(maxResults))
	params.Set("tweet.fields", "created_at")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RemoteError{Status: 0, Body: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RemoteError{Status: resp.StatusCode, Body: err.Error()}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &AuthError{Reason: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, string(body))}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &RemoteError{Status: resp.StatusCode, Body: string(body)}
	}

	var response struct {
		Data []Tweet `json:"data"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal search response: %w", err)
	}

	c.logger.Debug("Fetched tweets",
		zap.String("query", query),
		zap.Int("count", len(response.Data)))

	return response.Data, nil
}
