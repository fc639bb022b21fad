// Package bootstrap assembles the pieces shared by the API server and the
// ingest worker: logger, article store and feed producer.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"technews/internal/config"
	"technews/internal/infra/adapter/persistence/postgres"
	"technews/internal/infra/adapter/persistence/sqlite"
	"technews/internal/infra/db"
	"technews/internal/infra/newsapi"
	"technews/internal/infra/scraper"
	"technews/internal/observability/logging"
	"technews/internal/repository"
	"technews/internal/resilience/circuitbreaker"
	"technews/internal/usecase/ingest"
)

// NewLogger builds the process logger and installs it as the slog default.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	logger := logging.NewLogger(logging.Options{Level: cfg.Level, Format: cfg.Format})
	slog.SetDefault(logger)
	return logger
}

// Store bundles the open database with the repository built on top of it.
type Store struct {
	DB       *sql.DB
	Breaker  *circuitbreaker.DBCircuitBreaker
	Articles repository.ArticleRepository
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.DB.Close()
}

// OpenStore opens the configured database, applies the schema and returns
// an article repository guarded by the database circuit breaker.
func OpenStore(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	dbCfg := cfg.DB()
	conn, err := db.Open(ctx, dbCfg)
	if err != nil {
		return nil, err
	}
	if err := db.MigrateUp(ctx, conn, dbCfg.Dialect); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	breaker := circuitbreaker.NewDBCircuitBreaker(conn)
	return &Store{
		DB:       conn,
		Breaker:  breaker,
		Articles: NewArticleRepo(dbCfg.Dialect, breaker),
	}, nil
}

// NewArticleRepo picks the repository implementation for the dialect.
func NewArticleRepo(d db.Dialect, conn db.DBTX) repository.ArticleRepository {
	if d == db.DialectPostgres {
		return postgres.NewArticleRepo(conn)
	}
	return sqlite.NewArticleRepo(conn)
}

// NewProducer builds the feed producer named by cfg.Provider.
func NewProducer(cfg config.FeedConfig) (ingest.FeedProducer, error) {
	client := &http.Client{Timeout: cfg.Timeout}

	switch cfg.Provider {
	case config.ProviderNewsAPI:
		apiCfg := newsapi.DefaultConfig(cfg.NewsAPI.APIKey)
		apiCfg.BaseURL = cfg.NewsAPI.URL
		apiCfg.Category = cfg.NewsAPI.Category
		apiCfg.Language = cfg.NewsAPI.Language
		apiCfg.PageSize = cfg.NewsAPI.PageSize
		apiCfg.RequestsPerSecond = cfg.NewsAPI.RequestsPerSecond
		apiCfg.Timeout = cfg.Timeout
		return newsapi.New(apiCfg, client)
	case config.ProviderRSS:
		return scraper.NewRSSFetcher(client, cfg.RSS.URL), nil
	default:
		return nil, fmt.Errorf("unknown feed provider %q", cfg.Provider)
	}
}
