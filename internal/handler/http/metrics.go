package http

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"technews/internal/handler/http/pathutil"
	"technews/internal/handler/http/responsewriter"
	"technews/internal/observability/metrics"
)

// MetricsMiddleware records request count, latency, in-flight gauge and
// body sizes. Paths are normalised so article IDs do not become labels.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		rw := responsewriter.Wrap(w)

		start := time.Now()
		next.ServeHTTP(rw, r)

		metrics.RecordHTTPRequest(
			r.Method,
			pathutil.NormalizePath(r.URL.Path),
			rw.StatusCode(),
			time.Since(start),
			r.ContentLength,
			rw.BytesWritten(),
		)
	})
}

// MetricsHandler returns the Prometheus scrape endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
