package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"technews/internal/bootstrap"
	"technews/internal/config"
	hhttp "technews/internal/handler/http"
	harticle "technews/internal/handler/http/article"
	"technews/internal/handler/http/requestid"
	"technews/internal/observability/logging"
	"technews/internal/observability/metrics"
	"technews/internal/observability/tracing"
	artUC "technews/internal/usecase/article"
	"technews/internal/usecase/ingest"

	_ "technews/docs" // swagger docs
)

// @title           Tech News API
// @version         1.0
// @description     技術ニュースの取得・保存・既読管理を行う REST API

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:3000
// @BasePath  /

func main() {
	os.Exit(run())
}

// run wires and serves the API. Deferred cleanup always runs before the
// exit code is returned.
func run() int {
	cfg, err := config.Load("")
	if err != nil {
		slog.Error("failed to load configuration", logging.ErrorAttr(err))
		return 1
	}
	logger := bootstrap.NewLogger(cfg.Log)
	version := getVersion()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing := tracing.Setup("technews-api", version)
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("failed to flush tracer", logging.ErrorAttr(err))
		}
	}()

	store, err := bootstrap.OpenStore(ctx, cfg.Database)
	if err != nil {
		logger.Error("failed to open article store", logging.ErrorAttr(err))
		return 1
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close database", logging.ErrorAttr(err))
		}
	}()

	producer, err := bootstrap.NewProducer(cfg.Feed)
	if err != nil {
		logger.Error("failed to create feed producer", logging.ErrorAttr(err))
		return 1
	}
	logger.Info("feed producer ready", slog.String("provider", cfg.Feed.Provider))

	if n, err := store.Articles.Count(ctx); err == nil {
		metrics.UpdateArticlesTotal(n)
	}

	handler := setupServer(logger, cfg, store, producer, version)
	if err := runServer(ctx, logger, cfg.HTTP, handler, version); err != nil {
		return 1
	}
	return 0
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// setupServer registers routes and wraps them in the middleware chain.
func setupServer(logger *slog.Logger, cfg *config.Config, store *bootstrap.Store, producer ingest.FeedProducer, version string) http.Handler {
	mux := http.NewServeMux()

	harticle.Register(mux, harticle.Services{
		Articles:     &artUC.Service{Repo: store.Articles},
		Ingest:       ingest.NewService(store.Articles, producer),
		FetchTimeout: cfg.Feed.RunTimeout,
	})

	mux.Handle("GET /health", &hhttp.HealthHandler{DB: store.DB, DBBreaker: store.Breaker, Version: version})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{DB: store.DB})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	// Swagger UI
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// 外側から順に: リクエストID → パニック回復 → ログ → ボディ制限 → トレース → メトリクス
	return hhttp.Chain(mux,
		requestid.Middleware,
		hhttp.Recover(logger),
		hhttp.Logging(logger),
		hhttp.LimitRequestBody(cfg.HTTP.MaxBodyBytes),
		tracing.Middleware,
		hhttp.MetricsMiddleware,
	)
}

// runServer serves until ctx is cancelled, then shuts down gracefully.
// It returns the listener error when the server could not run.
func runServer(ctx context.Context, logger *slog.Logger, cfg config.HTTPConfig, handler http.Handler, version string) error {
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadTimeout, // Prevent Slowloris attacks
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.Addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server failed", logging.ErrorAttr(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", logging.ErrorAttr(err))
	}
	logger.Info("server stopped")
	return nil
}
