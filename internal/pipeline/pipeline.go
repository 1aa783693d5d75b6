package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/couchcryptid/flood-alert-service/internal/domain"
	"github.com/couchcryptid/flood-alert-service/internal/observability"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// LevelFetcher retrieves the water-level listing page markup.
type LevelFetcher interface {
	FetchPage(ctx context.Context) ([]byte, error)
}

// DischargeSource yields the dam discharge. It never fails; an unavailable
// source is reported through DischargeReading.Fallback.
type DischargeSource interface {
	Discharge(ctx context.Context) domain.DischargeReading
}

// Dispatcher broadcasts the composed message.
type Dispatcher interface {
	Broadcast(ctx context.Context, message string) error
}

// Publisher forwards the finished run report downstream.
type Publisher interface {
	Publish(ctx context.Context, report domain.RunReport) error
}

// Stages are the pipeline's collaborators. Publisher may be nil.
type Stages struct {
	Levels     LevelFetcher
	Discharge  DischargeSource
	Dispatcher Dispatcher
	Publisher  Publisher
}

// Settings are the fixed per-process inputs of a run.
type Settings struct {
	Station    string
	Thresholds domain.Thresholds
	Location   *time.Location // report time zone
}

// Run states, logged under the "state" key.
const (
	stateLevelAcquired     = "level_acquired"
	stateLevelFailed       = "level_failed"
	stateDischargeAcquired = "discharge_acquired"
	stateClassified        = "classified"
	stateErrorComposed     = "error_composed"
	stateDispatched        = "dispatched"
	stateDispatchFailed    = "dispatch_failed"
)

// Pipeline runs one acquire-classify-compose-dispatch cycle.
type Pipeline struct {
	stages   Stages
	settings Settings
	clock    clockwork.Clock
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// New creates a Pipeline with the given stages and observability.
func New(stages Stages, settings Settings, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		stages:   stages,
		settings: settings,
		clock:    clock,
		logger:   logger,
		metrics:  metrics,
	}
}

// Run executes a single run. Every path composes a message and attempts
// dispatch exactly once; failures are logged and recorded in the returned
// report, never returned as errors.
func (p *Pipeline) Run(ctx context.Context) domain.RunReport {
	report := domain.RunReport{
		RunID:     uuid.NewString(),
		Station:   p.settings.Station,
		StartedAt: p.clock.Now(),
	}
	p.logger.Info("run started", "run_id", report.RunID, "station", p.settings.Station)

	reading := p.acquireLevel(ctx)

	// Discharge is read even when the level failed so every run logs it.
	discharge := p.stages.Discharge.Discharge(ctx)
	report.Discharge = discharge.Rate
	report.DischargeFallback = discharge.Fallback
	p.metrics.Discharge.Set(discharge.Rate)
	p.logger.Info("run state",
		"state", stateDischargeAcquired,
		"discharge", discharge.Rate,
		"fallback", discharge.Fallback,
	)

	var assessment *domain.RiskAssessment
	if level, ok := reading.Level(); ok {
		a := p.settings.Thresholds.Classify(level, discharge.Rate)
		assessment = &a
		report.Level = &level
		report.Assessment = assessment

		p.metrics.Severity.Set(float64(a.Tier))
		p.metrics.DistanceToBank.Set(a.DistanceToBank)
		p.logger.Info("run state",
			"state", stateClassified,
			"tier", a.Tier.String(),
			"distance_to_bank", a.DistanceToBank,
		)
	} else {
		report.LevelError = reading.Err.Error()
		p.logger.Info("run state", "state", stateErrorComposed)
	}

	report.Message = domain.ComposeMessage(assessment, p.clock.Now(), p.settings.Location)
	p.logger.Info("message composed", "message", report.Message)

	p.dispatch(ctx, &report)

	report.FinishedAt = p.clock.Now()
	p.metrics.LastRunTimestamp.Set(float64(report.FinishedAt.Unix()))

	p.publish(ctx, report)

	p.logger.Info("run finished",
		"run_id", report.RunID,
		"dispatched", report.Dispatched,
		"duration", report.FinishedAt.Sub(report.StartedAt),
	)
	return report
}

// acquireLevel fetches the listing page and extracts the station's level.
func (p *Pipeline) acquireLevel(ctx context.Context) domain.WaterLevelReading {
	station := p.settings.Station

	start := time.Now()
	markup, err := p.stages.Levels.FetchPage(ctx)
	p.metrics.LevelFetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		p.metrics.LevelErrors.WithLabelValues("fetch").Inc()
		p.logger.Error("water level fetch failed",
			"state", stateLevelFailed,
			"station", station,
			"error", err,
		)
		return domain.MissingWaterLevel(station, err)
	}

	level, err := domain.ExtractLevel(markup, station)
	if err != nil {
		p.metrics.LevelErrors.WithLabelValues(extractionReason(err)).Inc()
		p.logger.Error("water level extraction failed",
			"state", stateLevelFailed,
			"station", station,
			"page_bytes", len(markup),
			"error", err,
		)
		return domain.MissingWaterLevel(station, err)
	}

	p.metrics.WaterLevel.Set(level)
	p.logger.Info("run state",
		"state", stateLevelAcquired,
		"station", station,
		"level", level,
	)
	return domain.NewWaterLevelReading(station, level)
}

// dispatch makes the run's single broadcast attempt.
func (p *Pipeline) dispatch(ctx context.Context, report *domain.RunReport) {
	err := p.stages.Dispatcher.Broadcast(ctx, report.Message)
	switch {
	case err == nil:
		report.Dispatched = true
		p.metrics.Dispatches.WithLabelValues("sent").Inc()
		p.logger.Info("run state", "state", stateDispatched)
	case errors.Is(err, domain.ErrMissingCredential):
		report.DispatchError = err.Error()
		p.metrics.Dispatches.WithLabelValues("missing_credential").Inc()
		p.logger.Error("broadcast skipped", "state", stateDispatchFailed, "error", err)
	default:
		report.DispatchError = err.Error()
		p.metrics.Dispatches.WithLabelValues("failed").Inc()
		p.logger.Error("broadcast failed", "state", stateDispatchFailed, "error", err)
	}
}

// publish forwards the report when a publisher is configured.
func (p *Pipeline) publish(ctx context.Context, report domain.RunReport) {
	if p.stages.Publisher == nil {
		return
	}
	if err := p.stages.Publisher.Publish(ctx, report); err != nil {
		p.metrics.PublishErrors.Inc()
		p.logger.Warn("publish run report failed", "error", err)
	}
}

func extractionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrNoRows):
		return "no_rows"
	case errors.Is(err, domain.ErrStationNotFound):
		return "station_not_found"
	case errors.Is(err, domain.ErrMalformedValue):
		return "malformed_value"
	default:
		return "parse"
	}
}
