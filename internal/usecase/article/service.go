package article

import (
	"context"
	"errors"
	"fmt"

	"technews/internal/domain/entity"
	"technews/internal/observability/metrics"
	"technews/internal/repository"
)

// Service provides article read use cases.
type Service struct {
	Repo repository.ArticleRepository
}

// ListAll returns every article, newest published first.
func (s *Service) ListAll(ctx context.Context) ([]*entity.Article, error) {
	articles, err := s.Repo.ListAll(ctx)
	if err != nil {
		if errors.Is(err, entity.ErrStorageUnavailable) {
			metrics.RecordStorageError("list")
		}
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return articles, nil
}

// MarkRead flags the article as read. Marking an already-read article
// succeeds and changes nothing.
func (s *Service) MarkRead(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidArticleID
	}

	err := s.Repo.MarkRead(ctx, id)
	switch {
	case err == nil:
		metrics.RecordMarkRead()
		return nil
	case errors.Is(err, entity.ErrNotFound):
		return ErrArticleNotFound
	case errors.Is(err, entity.ErrStorageUnavailable):
		metrics.RecordStorageError("mark_read")
	}
	return fmt.Errorf("mark article %d read: %w", id, err)
}
