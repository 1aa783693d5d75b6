// Package line sends broadcast messages through the LINE Messaging API.
package line

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/flood-alert-service/internal/domain"
)

// Client broadcasts text messages to every follower of a LINE channel.
type Client struct {
	token      string
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a broadcast client. An empty token is accepted; Broadcast
// then reports domain.ErrMissingCredential without making a request.
func NewClient(token, url string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		token: token,
		url:   url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Broadcast sends message as a single text message. It makes exactly one
// request and does not retry.
func (c *Client) Broadcast(ctx context.Context, message string) error {
	if c.token == "" {
		return domain.ErrMissingCredential
	}

	body, err := json.Marshal(broadcastRequest{
		Messages: []textMessage{{Type: "text", Text: message}},
	})
	if err != nil {
		return fmt.Errorf("encode broadcast: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrDeliveryFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var apiErr errorResponse
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("%w: status %d: %s", domain.ErrDeliveryFailed, resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("%w: status %d: %s", domain.ErrDeliveryFailed, resp.StatusCode, respBody)
	}

	c.logger.Debug("line broadcast accepted",
		"status", resp.StatusCode,
		"request_id", resp.Header.Get("X-Line-Request-Id"),
	)
	return nil
}

// LINE Messaging API request and response types.

type broadcastRequest struct {
	Messages []textMessage `json:"messages"`
}

type textMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type errorResponse struct {
	Message string `json:"message"`
}
