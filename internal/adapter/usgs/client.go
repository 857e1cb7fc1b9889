package usgs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/quakemap-service/internal/domain"
)

// maxErrorBody caps how much of a non-200 response body lands in the error.
const maxErrorBody = 512

// Client fetches GeoJSON earthquake feeds over HTTP.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a feed client. A zero timeout leaves requests bounded
// only by the caller's context.
func NewClient(timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Fetch performs a single GET against url and decodes the body as a feed.
func (c *Client) Fetch(ctx context.Context, url string) (domain.Feed, error) {
	data, err := c.FetchRaw(ctx, url)
	if err != nil {
		return domain.Feed{}, err
	}

	feed, err := domain.ParseFeed(data)
	if err != nil {
		return domain.Feed{}, err
	}

	c.logger.Debug("feed fetched",
		"feed_url", url,
		"bytes", len(data),
		"records", len(feed.Records),
		"generated", feed.Metadata.Generated,
	)
	return feed, nil
}

// FetchRaw performs a single GET against url and returns the body unparsed.
// Any status other than 200 is an error.
func (c *Client) FetchRaw(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/geo+json, application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("feed error: status %d: %s", resp.StatusCode, body)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read feed body: %w", err)
	}
	return data, nil
}
