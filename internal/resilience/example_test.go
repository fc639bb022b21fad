package resilience_test

import (
	"context"
	"fmt"
	"time"

	"technews/internal/resilience/circuitbreaker"
	"technews/internal/resilience/retry"
)

func Example() {
	cb := circuitbreaker.New(circuitbreaker.DefaultConfig("example-feed"))
	cfg := retry.NewsAPIConfig()
	cfg.InitialDelay = time.Millisecond
	cfg.MaxDelay = time.Millisecond

	calls := 0
	err := retry.WithBackoff(context.Background(), cfg, func() error {
		_, err := cb.Execute(func() (interface{}, error) {
			calls++
			return []string{"headline"}, nil
		})
		return err
	})

	fmt.Println(err, calls, cb.State())
	// Output: <nil> 1 closed
}
