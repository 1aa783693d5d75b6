package domain

import (
	"errors"
	"fmt"
)

// Extraction failures. Callers match them with errors.Is.
var (
	ErrNoRows          = errors.New("no table rows in document")
	ErrStationNotFound = errors.New("station not found")
	ErrMalformedValue  = errors.New("malformed water level value")
)

// Dispatch failures. Neither is retried within a run.
var (
	ErrMissingCredential = errors.New("broadcast credential is not set")
	ErrDeliveryFailed    = errors.New("broadcast delivery failed")
)

// FetchError reports a failed request to an upstream data source: a transport
// error, a timeout, or a non-2xx response.
type FetchError struct {
	Source     string // "water_level" or "discharge"
	URL        string
	StatusCode int // zero when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 && e.Err != nil {
		return fmt.Sprintf("fetch %s from %s: status %d: %v", e.Source, e.URL, e.StatusCode, e.Err)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s from %s: status %d", e.Source, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s from %s: %v", e.Source, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
