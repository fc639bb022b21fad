package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnvWithFallback(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		want         string
		wantFallback bool
	}{
		{name: "unset uses fallback silently", value: "", want: "*/30 * * * *"},
		{name: "valid value", value: "0 * * * *", want: "0 * * * *"},
		{name: "invalid value falls back", value: "every hour", want: "*/30 * * * *", wantFallback: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_CRON", tt.value)
			got := LoadEnvWithFallback("TEST_CRON", "*/30 * * * *", ValidateCronSchedule)

			assert.Equal(t, tt.want, got.Value)
			assert.Equal(t, tt.wantFallback, got.FallbackApplied)
			if tt.wantFallback {
				assert.Contains(t, got.Warning, "TEST_CRON='every hour'")
			} else {
				assert.Empty(t, got.Warning)
			}
		})
	}
}

func TestLoadEnvDuration(t *testing.T) {
	validator := func(d time.Duration) error { return ValidateDuration(d, time.Second, time.Hour) }

	t.Setenv("TEST_TIMEOUT", "5m")
	assert.Equal(t, 5*time.Minute, LoadEnvDuration("TEST_TIMEOUT", time.Minute, validator).Value)

	t.Setenv("TEST_TIMEOUT", "5 minutes")
	got := LoadEnvDuration("TEST_TIMEOUT", time.Minute, validator)
	assert.Equal(t, time.Minute, got.Value)
	assert.True(t, got.FallbackApplied)

	t.Setenv("TEST_TIMEOUT", "2h")
	got = LoadEnvDuration("TEST_TIMEOUT", time.Minute, validator)
	assert.Equal(t, time.Minute, got.Value)
	assert.Contains(t, got.Warning, "exceeds maximum")
}

func TestLoadEnvInt(t *testing.T) {
	validator := func(v int) error { return ValidateIntRange(v, 1024, 65535) }

	t.Setenv("TEST_PORT", " 9091 ")
	assert.Equal(t, 9091, LoadEnvInt("TEST_PORT", 8080, validator).Value)

	t.Setenv("TEST_PORT", "80")
	got := LoadEnvInt("TEST_PORT", 8080, validator)
	assert.Equal(t, 8080, got.Value)
	assert.True(t, got.FallbackApplied)

	t.Setenv("TEST_PORT", "http")
	assert.True(t, LoadEnvInt("TEST_PORT", 8080, nil).FallbackApplied)
}
