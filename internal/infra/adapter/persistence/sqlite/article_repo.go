// Package sqlite provides the SQLite implementation of the article store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"technews/internal/domain/entity"
	"technews/internal/infra/adapter/persistence/querybuilder"
	"technews/internal/infra/db"
	"technews/internal/repository"
)

// ArticleRepo implements the ArticleRepository interface using SQLite.
type ArticleRepo struct {
	db db.DBTX
	qb *querybuilder.ArticleQueryBuilder
}

// NewArticleRepo creates a new SQLite-backed article repository.
// The handle is usually a *sql.DB or a circuitbreaker.DBCircuitBreaker.
func NewArticleRepo(conn db.DBTX) repository.ArticleRepository {
	return &ArticleRepo{db: conn, qb: querybuilder.NewSQLite()}
}

// UpsertIfAbsent inserts the article unless its url is already stored.
// Zero affected rows means the unique index rejected it as a duplicate.
func (repo *ArticleRepo) UpsertIfAbsent(ctx context.Context, article *entity.Article) (entity.UpsertOutcome, error) {
	if article == nil {
		return 0, errors.New("UpsertIfAbsent: article is nil")
	}
	query, args, err := repo.qb.InsertIfAbsent(article)
	if err != nil {
		return 0, fmt.Errorf("UpsertIfAbsent: build: %w", err)
	}

	res, err := repo.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, entity.NewStorageError("UpsertIfAbsent", fmt.Errorf("ExecContext: %w", err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, entity.NewStorageError("UpsertIfAbsent", fmt.Errorf("RowsAffected: %w", err))
	}
	if n == 0 {
		return entity.OutcomeDuplicate, nil
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, entity.NewStorageError("UpsertIfAbsent", fmt.Errorf("LastInsertId: %w", err))
	}
	article.ID = id
	return entity.OutcomeInserted, nil
}

// ListAll retrieves every article, newest published first.
func (repo *ArticleRepo) ListAll(ctx context.Context) ([]*entity.Article, error) {
	query, args, err := repo.qb.ListAll()
	if err != nil {
		return nil, fmt.Errorf("ListAll: build: %w", err)
	}

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, entity.NewStorageError("ListAll", fmt.Errorf("QueryContext: %w", err))
	}
	defer func() { _ = rows.Close() }()

	articles := make([]*entity.Article, 0, 100)
	for rows.Next() {
		var (
			article     entity.Article
			description sql.NullString
		)
		if err := rows.Scan(&article.ID, &article.Title, &description,
			&article.URL, &article.Source, &article.PublishedAt, &article.IsRead); err != nil {
			return nil, entity.NewStorageError("ListAll", fmt.Errorf("Scan: %w", err))
		}
		article.Description = description.String
		articles = append(articles, &article)
	}
	if err := rows.Err(); err != nil {
		return nil, entity.NewStorageError("ListAll", fmt.Errorf("rows.Err: %w", err))
	}
	return articles, nil
}

// MarkRead sets is_read on the article. SQLite reports matched rows, so
// marking an already-read article still affects one row.
func (repo *ArticleRepo) MarkRead(ctx context.Context, id int64) error {
	query, args, err := repo.qb.MarkRead(id)
	if err != nil {
		return fmt.Errorf("MarkRead: build: %w", err)
	}

	res, err := repo.db.ExecContext(ctx, query, args...)
	if err != nil {
		return entity.NewStorageError("MarkRead", fmt.Errorf("ExecContext: %w", err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return entity.NewStorageError("MarkRead", fmt.Errorf("RowsAffected: %w", err))
	}
	if n == 0 {
		return entity.ErrNotFound
	}
	return nil
}

// Count returns the number of stored articles.
func (repo *ArticleRepo) Count(ctx context.Context) (int64, error) {
	query, args, err := repo.qb.Count()
	if err != nil {
		return 0, fmt.Errorf("Count: build: %w", err)
	}
	var n int64
	if err := repo.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, entity.NewStorageError("Count", fmt.Errorf("QueryRowContext: %w", err))
	}
	return n, nil
}
