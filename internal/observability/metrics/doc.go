// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all application metrics including:
//   - HTTP request metrics (duration, count, size)
//   - Ingest metrics (candidate outcomes, batch duration, feed fetches)
//   - Article store metrics (row count, read transitions, storage failures)
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "technews/internal/observability/metrics"
//
//	func ingestOne(outcome entity.UpsertOutcome) {
//	    metrics.RecordIngestCandidate(outcome.String())
//	}
package metrics
