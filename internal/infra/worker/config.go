package worker

import (
	"fmt"
	"log/slog"
	"time"

	"technews/internal/pkg/config"
)

// WorkerConfig controls the scheduled ingest.
type WorkerConfig struct {
	// CronSchedule is a five-field cron expression. Default "*/30 * * * *".
	CronSchedule string `yaml:"cron_schedule"`

	// Timezone is the IANA zone the schedule is evaluated in. Default "UTC".
	Timezone string `yaml:"timezone"`

	// IngestTimeout bounds one fetch-and-ingest run. Range 10s-1h.
	IngestTimeout time.Duration `yaml:"ingest_timeout"`

	// HealthPort serves /health and /ready. Range 1024-65535.
	HealthPort int `yaml:"health_port"`

	// RunOnStart triggers one ingest immediately instead of waiting for the
	// first scheduled tick.
	RunOnStart bool `yaml:"run_on_start"`
}

// DefaultConfig returns the default worker configuration.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		CronSchedule:  "*/30 * * * *",
		Timezone:      "UTC",
		IngestTimeout: 5 * time.Minute,
		HealthPort:    9091,
	}
}

func validateIngestTimeout(d time.Duration) error {
	return config.ValidateDuration(d, 10*time.Second, time.Hour)
}

func validateHealthPort(p int) error {
	return config.ValidateIntRange(p, 1024, 65535)
}

// Validate checks every field and reports all failures together.
func (c *WorkerConfig) Validate() error {
	var errs []error

	if err := config.ValidateCronSchedule(c.CronSchedule); err != nil {
		errs = append(errs, fmt.Errorf("cron schedule: %w", err))
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := validateIngestTimeout(c.IngestTimeout); err != nil {
		errs = append(errs, fmt.Errorf("ingest timeout: %w", err))
	}
	if err := validateHealthPort(c.HealthPort); err != nil {
		errs = append(errs, fmt.Errorf("health port: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %v", errs)
	}
	return nil
}

// ApplyEnv overlays CRON_SCHEDULE, CRON_TIMEZONE, INGEST_TIMEOUT and
// HEALTH_PORT on base.
//
// Loading is fail-open: a value that does not validate is ignored, the
// base value is kept, a warning is logged and the fallback is counted.
// An invalid base value is replaced by the default the same way, so the
// result always passes Validate.
func ApplyEnv(base WorkerConfig, logger *slog.Logger, metrics *WorkerMetrics) WorkerConfig {
	def := DefaultConfig()
	cfg := base
	fallbackApplied := false

	note := func(field, warning string) {
		fallbackApplied = true
		metrics.RecordFallback(field)
		logger.Warn("Configuration fallback applied",
			slog.String("field", field),
			slog.String("warning", warning))
	}

	if err := config.ValidateCronSchedule(cfg.CronSchedule); err != nil {
		note("cron_schedule", err.Error())
		cfg.CronSchedule = def.CronSchedule
	}
	if r := config.LoadEnvWithFallback("CRON_SCHEDULE", cfg.CronSchedule, config.ValidateCronSchedule); r.FallbackApplied {
		note("cron_schedule", r.Warning)
	} else {
		cfg.CronSchedule = r.Value
	}

	if err := config.ValidateTimezone(cfg.Timezone); err != nil {
		note("timezone", err.Error())
		cfg.Timezone = def.Timezone
	}
	if r := config.LoadEnvWithFallback("CRON_TIMEZONE", cfg.Timezone, config.ValidateTimezone); r.FallbackApplied {
		note("timezone", r.Warning)
	} else {
		cfg.Timezone = r.Value
	}

	if err := validateIngestTimeout(cfg.IngestTimeout); err != nil {
		note("ingest_timeout", err.Error())
		cfg.IngestTimeout = def.IngestTimeout
	}
	if r := config.LoadEnvDuration("INGEST_TIMEOUT", cfg.IngestTimeout, validateIngestTimeout); r.FallbackApplied {
		note("ingest_timeout", r.Warning)
	} else {
		cfg.IngestTimeout = r.Value
	}

	if err := validateHealthPort(cfg.HealthPort); err != nil {
		note("health_port", err.Error())
		cfg.HealthPort = def.HealthPort
	}
	if r := config.LoadEnvInt("HEALTH_PORT", cfg.HealthPort, validateHealthPort); r.FallbackApplied {
		note("health_port", r.Warning)
	} else {
		cfg.HealthPort = r.Value
	}

	metrics.SetFallbackActive(fallbackApplied)
	metrics.RecordLoadTimestamp()
	return cfg
}
