package metrics

import (
	"strconv"
	"time"
)

// Candidate outcomes used as the "outcome" label of IngestCandidatesTotal.
const (
	OutcomeInserted  = "inserted"
	OutcomeDuplicate = "duplicate"
	OutcomeSkipped   = "skipped"
)

// RecordHTTPRequest records an HTTP request with its metadata.
func RecordHTTPRequest(method, path string, status int, duration time.Duration, requestSize, responseSize int64) {
	code := strconv.Itoa(status)
	HTTPRequestsTotal.WithLabelValues(method, path, code).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())

	if requestSize > 0 {
		HTTPRequestSize.WithLabelValues(method, path).Observe(float64(requestSize))
	}
	HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
}

// RecordIngestCandidate counts one candidate under the given outcome.
func RecordIngestCandidate(outcome string) {
	IngestCandidatesTotal.WithLabelValues(outcome).Inc()
}

// RecordIngestBatch records a finished batch. A batch cut short by a
// storage failure is recorded as "aborted".
func RecordIngestBatch(duration time.Duration, aborted bool) {
	status := "success"
	if aborted {
		status = "aborted"
	}
	IngestBatchesTotal.WithLabelValues(status).Inc()
	IngestBatchDuration.Observe(duration.Seconds())
}

// RecordFeedFetch records the duration of a producer call and counts it as
// an error when it failed.
func RecordFeedFetch(provider string, duration time.Duration, err error) {
	FeedFetchDuration.WithLabelValues(provider).Observe(duration.Seconds())
	if err != nil {
		FeedFetchErrors.WithLabelValues(provider).Inc()
	}
}

// RecordStorageError counts a storage-unavailable failure for an operation
// such as "upsert", "list" or "mark_read".
func RecordStorageError(operation string) {
	StorageErrorsTotal.WithLabelValues(operation).Inc()
}

// RecordMarkRead counts a successful mark-read call.
func RecordMarkRead() {
	ArticlesMarkedReadTotal.Inc()
}

// UpdateArticlesTotal updates the total count of articles in the database.
// This gauge should be updated periodically to reflect the current state.
func UpdateArticlesTotal(count int64) {
	ArticlesTotal.Set(float64(count))
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}
