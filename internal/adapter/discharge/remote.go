package discharge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/couchcryptid/flood-alert-service/internal/domain"
)

// RemoteFetcher reads the most recent discharge record of a dam station from a
// historical time-series endpoint.
type RemoteFetcher struct {
	baseURL    string
	stationID  string
	httpClient *http.Client
}

// NewRemoteFetcher creates a fetcher for GET {baseURL}/{stationID}?days=1.
func NewRemoteFetcher(baseURL, stationID string, timeout time.Duration) *RemoteFetcher {
	return &RemoteFetcher{
		baseURL:   baseURL,
		stationID: stationID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (f *RemoteFetcher) Name() string { return "remote" }

// FetchDischarge returns the discharge of the last record in the one-day
// window. The series is ordered oldest first.
func (f *RemoteFetcher) FetchDischarge(ctx context.Context) (float64, error) {
	u, err := url.JoinPath(f.baseURL, f.stationID)
	if err != nil {
		return 0, fmt.Errorf("build discharge url: %w", err)
	}
	u += "?" + url.Values{"days": {"1"}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return 0, &domain.FetchError{Source: "discharge", URL: u, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return 0, &domain.FetchError{
			Source:     "discharge",
			URL:        u,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status: %s", body),
		}
	}

	var records []record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return 0, fmt.Errorf("decode discharge series: %w", err)
	}
	if len(records) == 0 {
		return 0, errors.New("discharge series is empty")
	}

	last := records[len(records)-1]
	if last.Discharge == nil {
		return 0, fmt.Errorf("latest discharge record (%s) has no value", last.Datetime)
	}
	if v := *last.Discharge; math.IsNaN(v) || v < 0 {
		return 0, fmt.Errorf("latest discharge record (%s) out of range: %g", last.Datetime, v)
	}
	return *last.Discharge, nil
}

// Time-series API response types.

type record struct {
	Datetime  string   `json:"datetime"`
	Discharge *float64 `json:"discharge"` // nil when absent or null
}
