package observability

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus/push"
)

// PushJob is the Pushgateway job name for flood-alert runs.
const PushJob = "flood_alert"

// Push sends the run's metrics to a Prometheus Pushgateway, replacing the
// previous run's group. A one-shot process is gone before any scrape.
func (m *Metrics) Push(ctx context.Context, gatewayURL, station string) error {
	err := push.New(gatewayURL, PushJob).
		Gatherer(m.Registry).
		Grouping("station", station).
		PushContext(ctx)
	if err != nil {
		return fmt.Errorf("push metrics: %w", err)
	}
	return nil
}
