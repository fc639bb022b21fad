// Package config loads the process configuration.
//
// Values are layered: built-in defaults, then an optional YAML file named by
// TECHNEWS_CONFIG, then environment variables. Validate reports every
// invalid field at once.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"technews/internal/infra/db"
	"technews/internal/infra/worker"
	pkgconfig "technews/internal/pkg/config"
	envconfig "technews/pkg/config"
)

// Feed providers.
const (
	ProviderNewsAPI = "newsapi"
	ProviderRSS     = "rss"
)

// Config is the full process configuration.
type Config struct {
	HTTP     HTTPConfig          `yaml:"http"`
	Database DatabaseConfig      `yaml:"database"`
	Feed     FeedConfig          `yaml:"feed"`
	Worker   worker.WorkerConfig `yaml:"worker"`
	Log      LogConfig           `yaml:"log"`
}

// HTTPConfig configures the API server.
type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"`
}

// DatabaseConfig selects and tunes the article store.
type DatabaseConfig struct {
	// Driver is "sqlite" or "postgres".
	Driver string `yaml:"driver"`
	// URL is the Postgres DSN.
	URL string `yaml:"url"`
	// SQLitePath is the database file; ":memory:" keeps everything in RAM.
	SQLitePath      string        `yaml:"sqlite_path"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// FeedConfig selects the producer behind fetch-and-ingest.
type FeedConfig struct {
	Provider string `yaml:"provider"`
	// Timeout bounds a single upstream HTTP request.
	Timeout time.Duration `yaml:"timeout"`
	// RunTimeout bounds one POST /api/fetch-news run, retries and ingest included.
	RunTimeout time.Duration `yaml:"run_timeout"`
	NewsAPI    NewsAPIConfig `yaml:"newsapi"`
	RSS        RSSConfig     `yaml:"rss"`
}

// NewsAPIConfig configures the newsapi producer.
type NewsAPIConfig struct {
	APIKey            string  `yaml:"api_key"`
	URL               string  `yaml:"url"`
	Category          string  `yaml:"category"`
	Language          string  `yaml:"language"`
	PageSize          int     `yaml:"page_size"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

// RSSConfig configures the rss producer.
type RSSConfig struct {
	URL string `yaml:"url"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration: SQLite in ./news.db and the
// technology headlines of the news API.
func Default() Config {
	pool := db.DefaultConnectionConfig()
	return Config{
		HTTP: HTTPConfig{
			Addr:            ":3000",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    90 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxBodyBytes:    1 << 20,
		},
		Database: DatabaseConfig{
			Driver:          string(db.DialectSQLite),
			SQLitePath:      "news.db",
			MaxOpenConns:    pool.MaxOpenConns,
			MaxIdleConns:    pool.MaxIdleConns,
			ConnMaxLifetime: pool.ConnMaxLifetime,
		},
		Feed: FeedConfig{
			Provider:   ProviderNewsAPI,
			Timeout:    15 * time.Second,
			RunTimeout: 75 * time.Second,
			NewsAPI: NewsAPIConfig{
				URL:               "https://newsapi.org",
				Category:          "technology",
				Language:          "en",
				RequestsPerSecond: 1,
			},
		},
		Worker: worker.DefaultConfig(),
		Log:    LogConfig{Level: "info", Format: "json"},
	}
}

// Load builds the configuration from defaults, the YAML file at path (or
// TECHNEWS_CONFIG when path is empty; no file is fine) and the environment,
// then validates it.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("TECHNEWS_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := decodeYAML(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// decodeYAML rejects keys that do not map to a field so typos surface.
func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) applyEnv() {
	c.HTTP.Addr = envconfig.GetEnvString("HTTP_ADDR", c.HTTP.Addr)

	c.Database.Driver = envconfig.GetEnvString("DB_DRIVER", c.Database.Driver)
	c.Database.URL = envconfig.GetEnvString("DATABASE_URL", c.Database.URL)
	c.Database.SQLitePath = envconfig.GetEnvString("SQLITE_PATH", c.Database.SQLitePath)
	c.Database.MaxOpenConns = envconfig.GetEnvInt("DB_MAX_OPEN_CONNS", c.Database.MaxOpenConns)
	c.Database.MaxIdleConns = envconfig.GetEnvInt("DB_MAX_IDLE_CONNS", c.Database.MaxIdleConns)
	c.Database.ConnMaxLifetime = envconfig.GetEnvDuration("DB_CONN_MAX_LIFETIME", c.Database.ConnMaxLifetime)

	c.Feed.Provider = envconfig.GetEnvString("FEED_PROVIDER", c.Feed.Provider)
	c.Feed.Timeout = envconfig.GetEnvDuration("FEED_TIMEOUT", c.Feed.Timeout)
	c.Feed.RunTimeout = envconfig.GetEnvDuration("FEED_RUN_TIMEOUT", c.Feed.RunTimeout)
	c.Feed.NewsAPI.APIKey = envconfig.GetEnvString("NEWS_API_KEY", c.Feed.NewsAPI.APIKey)
	c.Feed.NewsAPI.URL = envconfig.GetEnvString("NEWS_API_URL", c.Feed.NewsAPI.URL)
	c.Feed.NewsAPI.Category = envconfig.GetEnvString("NEWS_API_CATEGORY", c.Feed.NewsAPI.Category)
	c.Feed.NewsAPI.Language = envconfig.GetEnvString("NEWS_API_LANGUAGE", c.Feed.NewsAPI.Language)
	c.Feed.NewsAPI.RequestsPerSecond = envconfig.GetEnvFloat("NEWS_API_RPS", c.Feed.NewsAPI.RequestsPerSecond)
	c.Feed.RSS.URL = envconfig.GetEnvString("RSS_FEED_URL", c.Feed.RSS.URL)

	c.Log.Level = envconfig.GetEnvString("LOG_LEVEL", c.Log.Level)
	c.Log.Format = envconfig.GetEnvString("LOG_FORMAT", c.Log.Format)
}

// Validate checks the HTTP, database, feed and log sections. The worker
// section is settled separately by worker.ApplyEnv, which never fails.
func (c *Config) Validate() error {
	var errs []error
	add := func(field string, err error) {
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", field, err))
		}
	}

	if c.HTTP.Addr == "" {
		add("http.addr", errors.New("cannot be empty"))
	}
	add("http.shutdown_timeout", pkgconfig.ValidatePositiveDuration(c.HTTP.ShutdownTimeout))
	if c.HTTP.MaxBodyBytes <= 0 {
		add("http.max_body_bytes", fmt.Errorf("must be positive, got %d", c.HTTP.MaxBodyBytes))
	}

	add("database.driver", pkgconfig.ValidateOneOf(c.Database.Driver,
		string(db.DialectSQLite), string(db.DialectPostgres)))
	switch db.Dialect(c.Database.Driver) {
	case db.DialectPostgres:
		if c.Database.URL == "" {
			add("database.url", errors.New("is required for postgres"))
		}
	case db.DialectSQLite:
		if c.Database.SQLitePath == "" {
			add("database.sqlite_path", errors.New("is required for sqlite"))
		}
	}
	add("database.max_open_conns", pkgconfig.ValidateIntRange(c.Database.MaxOpenConns, 1, 1000))
	add("database.max_idle_conns", pkgconfig.ValidateIntRange(c.Database.MaxIdleConns, 0, c.Database.MaxOpenConns))

	add("feed.provider", pkgconfig.ValidateOneOf(c.Feed.Provider, ProviderNewsAPI, ProviderRSS))
	add("feed.timeout", pkgconfig.ValidateDuration(c.Feed.Timeout, time.Second, 10*time.Minute))
	// リトライ分の余裕が必要
	if c.Feed.RunTimeout < c.Feed.Timeout {
		add("feed.run_timeout", fmt.Errorf("must be at least feed.timeout (%s), got %s", c.Feed.Timeout, c.Feed.RunTimeout))
	}
	if c.HTTP.WriteTimeout > 0 && c.HTTP.WriteTimeout <= c.Feed.RunTimeout {
		add("http.write_timeout", fmt.Errorf("must exceed feed.run_timeout (%s), got %s", c.Feed.RunTimeout, c.HTTP.WriteTimeout))
	}
	switch c.Feed.Provider {
	case ProviderNewsAPI:
		if c.Feed.NewsAPI.APIKey == "" {
			add("feed.newsapi.api_key", errors.New("is required (set NEWS_API_KEY)"))
		}
		add("feed.newsapi.url", pkgconfig.ValidateHTTPURL(c.Feed.NewsAPI.URL))
		if c.Feed.NewsAPI.RequestsPerSecond < 0 {
			add("feed.newsapi.requests_per_second", errors.New("cannot be negative"))
		}
	case ProviderRSS:
		add("feed.rss.url", pkgconfig.ValidateHTTPURL(c.Feed.RSS.URL))
	}

	add("log.level", pkgconfig.ValidateOneOf(c.Log.Level, "debug", "info", "warn", "error"))
	add("log.format", pkgconfig.ValidateOneOf(c.Log.Format, "json", "text"))

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// DB returns the store connection settings.
func (d DatabaseConfig) DB() db.Config {
	cfg := db.Config{
		Dialect: db.Dialect(d.Driver),
		Pool: db.ConnectionConfig{
			MaxOpenConns:    d.MaxOpenConns,
			MaxIdleConns:    d.MaxIdleConns,
			ConnMaxLifetime: d.ConnMaxLifetime,
			ConnMaxIdleTime: db.DefaultConnectionConfig().ConnMaxIdleTime,
		},
	}
	if cfg.Dialect == db.DialectPostgres {
		cfg.DSN = d.URL
	} else {
		cfg.DSN = d.SQLitePath
	}
	return cfg
}
