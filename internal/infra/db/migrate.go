package db

import (
	"context"
	"fmt"
)

// articles.id is AUTOINCREMENT on SQLite so a rowid is never handed out twice.
const sqliteArticlesTable = `
CREATE TABLE IF NOT EXISTS articles (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    title        TEXT    NOT NULL,
    description  TEXT,
    url          TEXT    NOT NULL UNIQUE,
    source       TEXT    NOT NULL DEFAULT '',
    published_at TEXT    NOT NULL DEFAULT '',
    is_read      INTEGER NOT NULL DEFAULT 0,
    created_at   TEXT    NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
)`

const postgresArticlesTable = `
CREATE TABLE IF NOT EXISTS articles (
    id           BIGSERIAL   PRIMARY KEY,
    title        TEXT        NOT NULL,
    description  TEXT,
    url          TEXT        NOT NULL UNIQUE,
    source       TEXT        NOT NULL DEFAULT '',
    published_at TEXT        NOT NULL DEFAULT '',
    is_read      BOOLEAN     NOT NULL DEFAULT FALSE,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// ListAll sorts on (published_at DESC, id DESC).
const articlesPublishedAtIndex = `CREATE INDEX IF NOT EXISTS idx_articles_published_at ON articles(published_at DESC, id DESC)`

// MigrateUp creates the articles table and its indexes when they do not
// exist yet. It is safe to run on every start.
func MigrateUp(ctx context.Context, db DBTX, d Dialect) error {
	var table string
	switch d {
	case DialectSQLite:
		table = sqliteArticlesTable
	case DialectPostgres:
		table = postgresArticlesTable
	default:
		return fmt.Errorf("migrate: unsupported database dialect %q", string(d))
	}

	if _, err := db.ExecContext(ctx, table); err != nil {
		return fmt.Errorf("migrate: create articles: %w", err)
	}
	if _, err := db.ExecContext(ctx, articlesPublishedAtIndex); err != nil {
		return fmt.Errorf("migrate: create idx_articles_published_at: %w", err)
	}
	return nil
}
