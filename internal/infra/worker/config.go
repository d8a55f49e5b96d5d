// Package worker holds the runtime scaffolding for the digest worker:
// configuration, health probes, and job metrics.
package worker

import (
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"newsdesk/pkg/config"
)

// Config controls the digest worker. Values come from three layers, each
// overriding the previous: built-in defaults, an optional YAML file named by
// WORKER_CONFIG, and environment variables.
type Config struct {
	// Schedule is the cron expression for digest runs.
	Schedule string `yaml:"schedule"`

	// Timezone is the IANA timezone name for cron scheduling.
	Timezone string `yaml:"timezone"`

	// Parallelism caps concurrent newsletter deliveries within one run.
	Parallelism int `yaml:"parallelism"`

	// Lookback is how far back a run reaches for newly attached articles.
	// It should cover at least one schedule interval.
	Lookback time.Duration `yaml:"lookback"`

	// JobTimeout bounds a single digest run.
	JobTimeout time.Duration `yaml:"job_timeout"`

	// HealthPort serves the liveness and readiness probes.
	HealthPort int `yaml:"health_port"`

	// MetricsPort serves the Prometheus endpoint.
	MetricsPort int `yaml:"metrics_port"`
}

// DefaultConfig returns the built-in defaults: one digest run per day with a
// matching 24 hour lookback.
func DefaultConfig() Config {
	return Config{
		Schedule:    "0 7 * * *",
		Timezone:    "UTC",
		Parallelism: 4,
		Lookback:    24 * time.Hour,
		JobTimeout:  10 * time.Minute,
		HealthPort:  9091,
		MetricsPort: 9090,
	}
}

// LoadConfig builds the worker configuration from defaults, the optional
// YAML file named by WORKER_CONFIG, and environment variable overrides.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	if path := os.Getenv("WORKER_CONFIG"); path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- path comes from deployment config
		if err != nil {
			return Config{}, fmt.Errorf("read worker config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse worker config: %w", err)
		}
	}

	cfg.Schedule = config.GetEnvString("DIGEST_SCHEDULE", cfg.Schedule)
	cfg.Timezone = config.GetEnvString("WORKER_TIMEZONE", cfg.Timezone)
	cfg.Parallelism = config.GetEnvInt("DIGEST_PARALLELISM", cfg.Parallelism)
	cfg.Lookback = config.GetEnvDuration("DIGEST_LOOKBACK", cfg.Lookback)
	cfg.JobTimeout = config.GetEnvDuration("DIGEST_JOB_TIMEOUT", cfg.JobTimeout)
	cfg.HealthPort = config.GetEnvInt("WORKER_HEALTH_PORT", cfg.HealthPort)
	cfg.MetricsPort = config.GetEnvInt("WORKER_METRICS_PORT", cfg.MetricsPort)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if _, err := cron.ParseStandard(c.Schedule); err != nil {
		return fmt.Errorf("schedule: %w", err)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("timezone: %w", err)
	}
	if c.Parallelism < 1 || c.Parallelism > 50 {
		return fmt.Errorf("parallelism must be between 1 and 50, got %d", c.Parallelism)
	}
	if c.Lookback <= 0 {
		return fmt.Errorf("lookback must be positive, got %s", c.Lookback)
	}
	if c.JobTimeout <= 0 {
		return fmt.Errorf("job timeout must be positive, got %s", c.JobTimeout)
	}
	if c.HealthPort < 1024 || c.HealthPort > 65535 {
		return fmt.Errorf("health port must be between 1024 and 65535, got %d", c.HealthPort)
	}
	if c.MetricsPort < 1024 || c.MetricsPort > 65535 {
		return fmt.Errorf("metrics port must be between 1024 and 65535, got %d", c.MetricsPort)
	}
	return nil
}
