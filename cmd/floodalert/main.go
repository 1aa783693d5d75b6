// Command floodalert performs one flood-risk run for the Inburi gauge: it reads
// the water level and dam discharge, classifies the situation, and broadcasts
// the report over LINE. Scheduling is left to cron or a CronJob.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/couchcryptid/flood-alert-service/internal/adapter/discharge"
	kafkaadapter "github.com/couchcryptid/flood-alert-service/internal/adapter/kafka"
	"github.com/couchcryptid/flood-alert-service/internal/adapter/line"
	"github.com/couchcryptid/flood-alert-service/internal/adapter/thaiwater"
	"github.com/couchcryptid/flood-alert-service/internal/config"
	"github.com/couchcryptid/flood-alert-service/internal/domain"
	"github.com/couchcryptid/flood-alert-service/internal/observability"
	"github.com/couchcryptid/flood-alert-service/internal/pipeline"
	"github.com/jonboulle/clockwork"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var fetcher discharge.Fetcher
	switch cfg.DischargeSource {
	case config.DischargeSourceRemote:
		fetcher = discharge.NewRemoteFetcher(cfg.DischargeAPIURL, cfg.DischargeStationID, cfg.DischargeTimeout)
	default:
		fetcher = discharge.NewFileFetcher(cfg.DamDataFile)
	}
	logger.Info("discharge source selected", "source", fetcher.Name())

	stages := pipeline.Stages{
		Levels:     thaiwater.NewClient(cfg.WaterLevelURL, cfg.WaterLevelTimeout, logger),
		Discharge:  discharge.NewSource(fetcher, logger, metrics),
		Dispatcher: line.NewClient(cfg.LineToken, cfg.LineBroadcastURL, cfg.DispatchTimeout, logger),
	}

	// Run reports are published to Kafka only when KAFKA_BROKERS is set.
	var writer *kafkaadapter.Writer
	if cfg.PublishEnabled() {
		writer = kafkaadapter.NewWriter(cfg, logger)
		stages.Publisher = writer
		logger.Info("run report publishing enabled", "topic", cfg.KafkaTopic)
	}

	p := pipeline.New(stages, pipeline.Settings{
		Station:    cfg.StationName,
		Thresholds: domain.DefaultThresholds(),
		Location:   cfg.ReportLocation,
	}, clockwork.NewRealClock(), logger, metrics)

	p.Run(ctx)

	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	if cfg.PushgatewayURL != "" {
		pushCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := metrics.Push(pushCtx, cfg.PushgatewayURL, cfg.StationName); err != nil {
			logger.Error("metrics push failed", "error", err)
		}
	}
}
