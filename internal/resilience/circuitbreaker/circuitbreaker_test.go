package circuitbreaker

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sony/gobreaker"
)

func testConfig(timeout time.Duration) Config {
	return Config{
		Name:             "test-circuit",
		MaxRequests:      1,
		Interval:         10 * time.Second,
		Timeout:          timeout,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

func fail(err error) func() (interface{}, error) {
	return func() (interface{}, error) { return nil, err }
}

func TestNew(t *testing.T) {
	cb := New(testConfig(time.Second))

	if cb.Name() != "test-circuit" {
		t.Errorf("expected name='test-circuit', got %q", cb.Name())
	}
	if cb.State() != gobreaker.StateClosed {
		t.Errorf("expected initial state=Closed, got %v", cb.State())
	}
}

func TestCircuitBreaker_Execute(t *testing.T) {
	cb := New(testConfig(time.Second))

	result, err := cb.Execute(func() (interface{}, error) { return 3, nil })
	if err != nil || result != 3 {
		t.Fatalf("expected (3, nil), got (%v, %v)", result, err)
	}

	feedErr := errors.New("upstream 503")
	if _, err := cb.Execute(fail(feedErr)); err != feedErr {
		t.Fatalf("expected error to pass through, got %v", err)
	}
}

func TestCircuitBreaker_TripsOpenAndRecovers(t *testing.T) {
	cb := New(testConfig(50 * time.Millisecond))
	feedErr := errors.New("upstream 503")

	// 1 success + 4 failures = 80% failure rate once MinRequests is reached
	if _, err := cb.Execute(func() (interface{}, error) { return nil, nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 4; i++ {
		_, _ = cb.Execute(fail(feedErr))
	}
	if !cb.IsOpen() {
		t.Fatalf("expected Open, got %v", cb.State())
	}

	_, err := cb.Execute(func() (interface{}, error) {
		t.Fatal("call must not run while open")
		return nil, nil
	})
	if !IsRejection(err) {
		t.Fatalf("expected rejection, got %v", err)
	}

	time.Sleep(80 * time.Millisecond)
	if _, err := cb.Execute(func() (interface{}, error) { return "ok", nil }); err != nil {
		t.Fatalf("half-open trial call failed: %v", err)
	}
	if cb.State() != gobreaker.StateClosed {
		t.Errorf("expected Closed after successful trial call, got %v", cb.State())
	}
}

func TestCircuitBreaker_MinRequests(t *testing.T) {
	cfg := testConfig(time.Second)
	cfg.MinRequests = 10
	cb := New(cfg)

	for i := 0; i < 4; i++ {
		_, _ = cb.Execute(fail(errors.New("boom")))
	}
	if cb.State() != gobreaker.StateClosed {
		t.Errorf("expected state=Closed (below MinRequests), got %v", cb.State())
	}
}

func TestCircuitBreaker_ContextErrorsDoNotTrip(t *testing.T) {
	cb := New(testConfig(time.Second))

	for i := 0; i < 10; i++ {
		err := context.Canceled
		if i%2 == 0 {
			err = fmt.Errorf("fetch: %w", context.DeadlineExceeded)
		}
		_, _ = cb.Execute(fail(err))
	}
	if cb.State() != gobreaker.StateClosed {
		t.Errorf("expected Closed after caller cancellations, got %v", cb.State())
	}
}

func TestIsRejection(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{gobreaker.ErrOpenState, true},
		{fmt.Errorf("wrapped: %w", gobreaker.ErrTooManyRequests), true},
		{errors.New("connection refused"), false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := IsRejection(tt.err); got != tt.want {
			t.Errorf("IsRejection(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestConfigs(t *testing.T) {
	tests := []struct {
		cfg  Config
		name string
	}{
		{DefaultConfig("x"), "x"},
		{NewsAPIConfig(), "news-api"},
		{FeedFetchConfig(), "feed-fetch"},
		{DBConfig(), "database"},
	}
	for _, tt := range tests {
		if tt.cfg.Name != tt.name {
			t.Errorf("expected Name=%q, got %q", tt.name, tt.cfg.Name)
		}
		if tt.cfg.MaxRequests == 0 || tt.cfg.MinRequests == 0 || tt.cfg.Timeout <= 0 {
			t.Errorf("%s: incomplete config %+v", tt.name, tt.cfg)
		}
		if tt.cfg.FailureThreshold <= 0 || tt.cfg.FailureThreshold > 1 {
			t.Errorf("%s: FailureThreshold out of range: %f", tt.name, tt.cfg.FailureThreshold)
		}
	}
}
