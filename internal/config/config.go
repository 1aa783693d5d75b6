package config

import (
	"errors"
	"fmt"
	"os"
	"time"
	_ "time/tzdata" // report zone must resolve in scratch containers

	"github.com/couchcryptid/flood-alert-service/internal/domain"
	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Discharge source strategies.
const (
	DischargeSourceFile   = "file"
	DischargeSourceRemote = "remote"
)

// Config holds all run settings, populated once from environment variables.
// Classification thresholds are fixed and are not part of it.
type Config struct {
	WaterLevelURL     string
	WaterLevelTimeout time.Duration
	StationName       string

	DischargeSource    string
	DamDataFile        string
	DischargeAPIURL    string
	DischargeStationID string
	DischargeTimeout   time.Duration

	// LINE broadcast configuration. An empty token is not an error: the run
	// still composes its message and reports the missing credential.
	LineToken        string
	LineBroadcastURL string
	DispatchTimeout  time.Duration

	ReportLocation *time.Location

	KafkaBrokers   []string
	KafkaTopic     string
	PushgatewayURL string

	LogLevel  string
	LogFormat string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	levelTimeout, err := parseDuration("WATER_LEVEL_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}
	dischargeTimeout, err := parseDuration("DISCHARGE_TIMEOUT", "15s")
	if err != nil {
		return nil, err
	}
	dispatchTimeout, err := parseDuration("DISPATCH_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	zone := sharedcfg.EnvOrDefault("REPORT_TIMEZONE", domain.ReportTimezone)
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_TIMEZONE: %w", err)
	}

	cfg := &Config{
		WaterLevelURL:     sharedcfg.EnvOrDefault("WATER_LEVEL_URL", "https://singburi.thaiwater.net/wl"),
		WaterLevelTimeout: levelTimeout,
		StationName:       sharedcfg.EnvOrDefault("STATION_NAME", "อินทร์บุรี"),

		DischargeSource:    sharedcfg.EnvOrDefault("DISCHARGE_SOURCE", DischargeSourceFile),
		DamDataFile:        sharedcfg.EnvOrDefault("DAM_DATA_FILE", "dam_data.txt"),
		DischargeAPIURL:    os.Getenv("DISCHARGE_API_URL"),
		DischargeStationID: sharedcfg.EnvOrDefault("DISCHARGE_STATION_ID", "C.13"),
		DischargeTimeout:   dischargeTimeout,

		LineToken:        os.Getenv("LINE_CHANNEL_ACCESS_TOKEN"),
		LineBroadcastURL: sharedcfg.EnvOrDefault("LINE_BROADCAST_URL", "https://api.line.me/v2/bot/message/broadcast"),
		DispatchTimeout:  dispatchTimeout,

		ReportLocation: loc,

		KafkaBrokers:   parseBrokers(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:     sharedcfg.EnvOrDefault("KAFKA_TOPIC", "flood-assessments"),
		PushgatewayURL: os.Getenv("PUSHGATEWAY_URL"),

		LogLevel:  sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
	}

	if cfg.WaterLevelURL == "" {
		return nil, errors.New("WATER_LEVEL_URL is required")
	}
	if cfg.StationName == "" {
		return nil, errors.New("STATION_NAME is required")
	}
	switch cfg.DischargeSource {
	case DischargeSourceFile:
	case DischargeSourceRemote:
		if cfg.DischargeAPIURL == "" {
			return nil, errors.New("DISCHARGE_SOURCE is remote but DISCHARGE_API_URL is not set")
		}
	default:
		return nil, fmt.Errorf("invalid DISCHARGE_SOURCE %q: want %q or %q",
			cfg.DischargeSource, DischargeSourceFile, DischargeSourceRemote)
	}
	if len(cfg.KafkaBrokers) > 0 && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

// PublishEnabled reports whether run reports are published to Kafka.
func (c *Config) PublishEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func parseDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

// parseBrokers returns nil for an empty list; publishing is opt-in.
func parseBrokers(s string) []string {
	if s == "" {
		return nil
	}
	return sharedcfg.ParseBrokers(s)
}
