// Package discharge provides the Chao Phraya Dam discharge rate from a
// side-channel file or a remote time series, falling back to
// domain.DefaultDischarge whenever the figure cannot be obtained.
package discharge

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/flood-alert-service/internal/domain"
	"github.com/couchcryptid/flood-alert-service/internal/observability"
)

// Fetcher reads the latest discharge rate in m³/s from one backing store.
type Fetcher interface {
	FetchDischarge(ctx context.Context) (float64, error)
	// Name identifies the backing store in logs and metrics.
	Name() string
}

// Source wraps a Fetcher with the fail-safe default.
type Source struct {
	fetcher Fetcher
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewSource creates a fail-safe discharge source.
func NewSource(f Fetcher, logger *slog.Logger, metrics *observability.Metrics) *Source {
	return &Source{fetcher: f, logger: logger, metrics: metrics}
}

// Discharge returns the latest discharge rate. It never fails: any fetch error
// is logged and counted, and the default rate is returned instead.
func (s *Source) Discharge(ctx context.Context) domain.DischargeReading {
	rate, err := s.fetcher.FetchDischarge(ctx)
	if err != nil {
		s.logger.Warn("discharge unavailable, using default",
			"source", s.fetcher.Name(),
			"default", domain.DefaultDischarge,
			"error", err,
		)
		s.metrics.DischargeFallback.WithLabelValues(s.fetcher.Name()).Inc()
		return domain.DischargeReading{Rate: domain.DefaultDischarge, Fallback: true}
	}

	s.logger.Info("discharge acquired", "source", s.fetcher.Name(), "rate", rate)
	return domain.DischargeReading{Rate: rate}
}
