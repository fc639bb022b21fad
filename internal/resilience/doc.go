// Package resilience groups the failure-handling helpers used around the
// article store and the feed producers.
//
//   - circuitbreaker: gobreaker wrappers. DBCircuitBreaker guards the article
//     store handle; the news API and RSS producers each own a breaker.
//   - retry: exponential backoff with jitter for producer HTTP calls. Store
//     calls are never retried.
//
// A producer call combines both, retry outermost:
//
//	cb := circuitbreaker.New(circuitbreaker.NewsAPIConfig())
//	err := retry.WithBackoff(ctx, retry.NewsAPIConfig(), func() error {
//	    _, err := cb.Execute(func() (interface{}, error) {
//	        return fetchHeadlines(ctx)
//	    })
//	    return err
//	})
package resilience
