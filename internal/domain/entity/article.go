// Package entity defines the core domain entities and validation logic for the application.
// Article is the only persisted entity; its read state is the only field that changes
// after insertion.
package entity

// Article represents a tech-news article stored by the application.
//
// PublishedAt keeps the producer's timestamp string as-is. Ordering compares it
// lexicographically, which is correct for ISO-8601/RFC3339 values.
type Article struct {
	ID          int64
	Title       string
	Description string
	URL         string
	Source      string
	PublishedAt string
	IsRead      bool
}

// UpsertOutcome reports what an insert-if-absent did with a candidate article.
type UpsertOutcome int

const (
	// OutcomeInserted means a new row was created and the article got an ID.
	OutcomeInserted UpsertOutcome = iota + 1
	// OutcomeDuplicate means a row with the same URL already existed and nothing changed.
	OutcomeDuplicate
)

// String returns the metric/log label for the outcome.
func (o UpsertOutcome) String() string {
	switch o {
	case OutcomeInserted:
		return "inserted"
	case OutcomeDuplicate:
		return "duplicate"
	default:
		return "unknown"
	}
}
