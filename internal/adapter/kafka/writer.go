package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/flood-alert-service/internal/config"
	"github.com/couchcryptid/flood-alert-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer publishes run reports to a Kafka topic.
// It implements pipeline.Publisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured report topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
		WriteTimeout: 10 * time.Second,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish writes one run report. Reports are keyed by station so a compacted
// topic keeps the latest run per station.
func (w *Writer) Publish(ctx context.Context, report domain.RunReport) error {
	msg, err := serializeToMessage(report)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish run report: %w", err)
	}
	w.logger.Debug("run report published", "topic", w.writer.Topic, "station", report.Station)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a RunReport into a Kafka message.
func serializeToMessage(report domain.RunReport) (kafkago.Message, error) {
	data, err := json.Marshal(report)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize run report: %w", err)
	}

	tier := "unavailable"
	if t, ok := report.Tier(); ok {
		tier = t.String()
	}

	return kafkago.Message{
		Key:   []byte(report.Station),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "tier", Value: []byte(tier)},
			{Key: "run_at", Value: []byte(report.FinishedAt.Format(time.RFC3339))},
			{Key: "run_id", Value: []byte(report.RunID)},
		},
	}, nil
}
