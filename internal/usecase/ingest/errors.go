// Package ingest turns batches of feed candidates into article store writes.
// Each candidate is submitted on its own: the store's unique url index decides
// between a new article and a duplicate, and the first storage failure ends
// the batch with everything before it already committed.
package ingest

import "errors"

// Sentinel errors for ingest use case operations.
var (
	// ErrFeedFetchFailed indicates that the feed producer could not supply a batch.
	ErrFeedFetchFailed = errors.New("failed to fetch feed")

	// ErrNoProducer indicates that FetchAndIngest was called on a service
	// built without a feed producer.
	ErrNoProducer = errors.New("no feed producer configured")
)
