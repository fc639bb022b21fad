package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadResult is the outcome of reading one configuration value.
//
// When the variable is set but fails to parse or validate, Value holds the
// fallback, FallbackApplied is true and Warning explains why. Loading never
// fails: the caller always receives a usable value.
type LoadResult[T any] struct {
	Value           T
	Warning         string
	FallbackApplied bool
}

// LoadEnv reads envKey, parses it with parse and checks it with validator
// (nil skips validation). An unset or blank variable yields fallback with
// no warning.
func LoadEnv[T any](envKey string, fallback T, parse func(string) (T, error), validator func(T) error) LoadResult[T] {
	raw := strings.TrimSpace(os.Getenv(envKey))
	if raw == "" {
		return LoadResult[T]{Value: fallback}
	}

	v, err := parse(raw)
	if err == nil && validator != nil {
		err = validator(v)
	}
	if err != nil {
		return LoadResult[T]{
			Value:           fallback,
			Warning:         fmt.Sprintf("Invalid %s='%s': %v, falling back to '%v'", envKey, raw, err, fallback),
			FallbackApplied: true,
		}
	}
	return LoadResult[T]{Value: v}
}

// LoadEnvWithFallback loads a validated string.
//
//	result := LoadEnvWithFallback("CRON_SCHEDULE", "*/30 * * * *", ValidateCronSchedule)
//	if result.FallbackApplied {
//	    logger.Warn("Configuration fallback applied", slog.String("warning", result.Warning))
//	}
func LoadEnvWithFallback(envKey, fallback string, validator func(string) error) LoadResult[string] {
	return LoadEnv(envKey, fallback, func(s string) (string, error) { return s, nil }, validator)
}

// LoadEnvDuration loads a validated time.ParseDuration value.
func LoadEnvDuration(envKey string, fallback time.Duration, validator func(time.Duration) error) LoadResult[time.Duration] {
	return LoadEnv(envKey, fallback, time.ParseDuration, validator)
}

// LoadEnvInt loads a validated base-10 integer.
func LoadEnvInt(envKey string, fallback int, validator func(int) error) LoadResult[int] {
	return LoadEnv(envKey, fallback, strconv.Atoi, validator)
}
