// Package thaiwater fetches the provincial water-level listing page published
// on thaiwater.net.
package thaiwater

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/flood-alert-service/internal/domain"
)

// maxPageBytes bounds how much of the listing page is read.
const maxPageBytes = 8 << 20

// Client fetches the provincial water-level listing page.
type Client struct {
	url        string
	maxBytes   int64
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a listing page client with a single-attempt timeout.
func NewClient(url string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		url:      url,
		maxBytes: maxPageBytes,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// URL returns the listing page address.
func (c *Client) URL() string { return c.url }

// FetchPage issues one GET for the listing page and returns its markup.
// Every failure is reported as a *domain.FetchError.
func (c *Client) FetchPage(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, c.fetchError(0, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "text/html")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.fetchError(0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, c.maxBytes))
		return nil, c.fetchError(resp.StatusCode, fmt.Errorf("unexpected status %s", resp.Status))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, c.fetchError(resp.StatusCode, fmt.Errorf("read body: %w", err))
	}
	if int64(len(body)) > c.maxBytes {
		return nil, c.fetchError(resp.StatusCode, fmt.Errorf("page exceeds %d bytes", c.maxBytes))
	}

	c.logger.Debug("water level page fetched",
		"url", c.url,
		"bytes", len(body),
		"duration", time.Since(start),
	)
	return body, nil
}

func (c *Client) fetchError(status int, err error) *domain.FetchError {
	return &domain.FetchError{
		Source:     "water_level",
		URL:        c.url,
		StatusCode: status,
		Err:        err,
	}
}
