// Package repository declares the persistence contracts used by the use case layer.
package repository

import (
	"context"

	"technews/internal/domain/entity"
)

// ArticleRepository is the durable article store.
//
// Implementations must enforce URL uniqueness in the storage layer itself so that
// concurrent UpsertIfAbsent calls for the same URL insert at most one row.
// Every driver or connection failure is returned as *entity.StorageError.
type ArticleRepository interface {
	// UpsertIfAbsent inserts the article unless a row with the same URL exists.
	// On OutcomeInserted the generated ID is written back to article.ID and IsRead
	// is false. On OutcomeDuplicate the stored row is left untouched.
	UpsertIfAbsent(ctx context.Context, article *entity.Article) (entity.UpsertOutcome, error)
	// ListAll returns every article ordered by published_at DESC, id DESC.
	ListAll(ctx context.Context) ([]*entity.Article, error)
	// MarkRead sets is_read for the article. It returns entity.ErrNotFound
	// when no row has the given ID and succeeds without effect when already read.
	MarkRead(ctx context.Context, id int64) error
	// Count returns the number of stored articles.
	Count(ctx context.Context) (int64, error)
}
