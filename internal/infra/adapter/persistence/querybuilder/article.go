// Package querybuilder builds the article store's SQL for each supported
// dialect. The SQLite and Postgres repositories share the statements and
// differ only in placeholder format and in how an inserted id comes back.
package querybuilder

import (
	sq "github.com/Masterminds/squirrel"

	"technews/internal/domain/entity"
)

const articlesTable = "articles"

// ArticleColumns is the column order every article SELECT returns.
var ArticleColumns = []string{
	"id", "title", "description", "url", "source", "published_at", "is_read",
}

// onConflictDoNothing lets the unique index on url decide the dedupe.
// Unlike SQLite's INSERT OR IGNORE it does not swallow NOT NULL violations.
const onConflictDoNothing = "ON CONFLICT (url) DO NOTHING"

// ArticleQueryBuilder renders article statements with a fixed placeholder format.
type ArticleQueryBuilder struct {
	sb        sq.StatementBuilderType
	returning bool
}

// NewSQLite returns a builder that emits "?" placeholders.
func NewSQLite() *ArticleQueryBuilder {
	return &ArticleQueryBuilder{sb: sq.StatementBuilder.PlaceholderFormat(sq.Question)}
}

// NewPostgres returns a builder that emits "$N" placeholders and asks the
// insert to return the generated id.
func NewPostgres() *ArticleQueryBuilder {
	return &ArticleQueryBuilder{
		sb:        sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		returning: true,
	}
}

// InsertIfAbsent renders an insert that is a no-op when the url already exists.
// An empty description is stored as NULL.
func (qb *ArticleQueryBuilder) InsertIfAbsent(a *entity.Article) (string, []interface{}, error) {
	var description interface{}
	if a.Description != "" {
		description = a.Description
	}
	suffix := onConflictDoNothing
	if qb.returning {
		suffix += " RETURNING id"
	}
	return qb.sb.Insert(articlesTable).
		Columns("title", "description", "url", "source", "published_at").
		Values(a.Title, description, a.URL, a.Source, a.PublishedAt).
		Suffix(suffix).
		ToSql()
}

// ListAll renders the newest-first listing; id breaks ties on published_at.
func (qb *ArticleQueryBuilder) ListAll() (string, []interface{}, error) {
	return qb.sb.Select(ArticleColumns...).
		From(articlesTable).
		OrderBy("published_at DESC", "id DESC").
		ToSql()
}

// MarkRead renders the read-state update for a single id.
func (qb *ArticleQueryBuilder) MarkRead(id int64) (string, []interface{}, error) {
	return qb.sb.Update(articlesTable).
		Set("is_read", true).
		Where(sq.Eq{"id": id}).
		ToSql()
}

// Count renders a row count over the whole table.
func (qb *ArticleQueryBuilder) Count() (string, []interface{}, error) {
	return qb.sb.Select("COUNT(*)").From(articlesTable).ToSql()
}
