package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for one flood-alert run. Each
// Metrics owns its registry so a run's values can be pushed as a unit.
type Metrics struct {
	Registry *prometheus.Registry

	LevelFetchDuration prometheus.Histogram
	LevelErrors        *prometheus.CounterVec // labels: reason={fetch,no_rows,station_not_found,malformed_value,parse}
	WaterLevel         prometheus.Gauge
	DistanceToBank     prometheus.Gauge

	Discharge         prometheus.Gauge
	DischargeFallback *prometheus.CounterVec // labels: source={file,remote}

	Severity   prometheus.Gauge       // 0 normal, 1 watch, 2 critical
	Dispatches *prometheus.CounterVec // labels: outcome={sent,missing_credential,failed}

	PublishErrors    prometheus.Counter
	LastRunTimestamp prometheus.Gauge
}

// NewMetrics creates all run metrics and registers them with a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		LevelFetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "flood_alert",
			Name:      "level_fetch_duration_seconds",
			Help:      "Duration of the water level page request.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30},
		}),
		LevelErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flood_alert",
			Name:      "level_errors_total",
			Help:      "Water level acquisition failures by reason.",
		}, []string{"reason"}),
		WaterLevel: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "flood_alert",
			Name:      "water_level_meters",
			Help:      "Last extracted water level in meters above mean sea level.",
		}),
		DistanceToBank: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "flood_alert",
			Name:      "distance_to_bank_meters",
			Help:      "Bank height minus water level.",
		}),
		Discharge: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "flood_alert",
			Name:      "dam_discharge_cubic_meters_per_second",
			Help:      "Dam discharge used for classification, including the default.",
		}),
		DischargeFallback: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flood_alert",
			Name:      "discharge_fallback_total",
			Help:      "Runs that used the default discharge because the source failed.",
		}, []string{"source"}),
		Severity: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "flood_alert",
			Name:      "severity",
			Help:      "Classified tier: 0 normal, 1 watch, 2 critical.",
		}),
		Dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flood_alert",
			Name:      "dispatches_total",
			Help:      "Broadcast attempts by outcome.",
		}, []string{"outcome"}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flood_alert",
			Name:      "publish_errors_total",
			Help:      "Failures publishing the run report to Kafka.",
		}),
		LastRunTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "flood_alert",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time at which the last run finished.",
		}),
	}

	m.Registry.MustRegister(
		m.LevelFetchDuration,
		m.LevelErrors,
		m.WaterLevel,
		m.DistanceToBank,
		m.Discharge,
		m.DischargeFallback,
		m.Severity,
		m.Dispatches,
		m.PublishErrors,
		m.LastRunTimestamp,
	)

	return m
}
