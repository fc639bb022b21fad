package worker

import (
	"context"
	"log/slog"
	"time"

	"technews/internal/observability/logging"
	"technews/internal/observability/metrics"
	"technews/internal/usecase/ingest"
)

// Fetcher runs one fetch-and-ingest pass.
type Fetcher interface {
	FetchAndIngest(ctx context.Context) (ingest.Result, error)
}

// Counter reports how many articles are stored.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// IngestJob is the scheduled unit of work.
type IngestJob struct {
	Svc     Fetcher
	Store   Counter // optional; refreshes the articles_total gauge
	Timeout time.Duration
	Metrics *WorkerMetrics
	Logger  *slog.Logger
}

// Run executes one pass bounded by Timeout. It never panics or returns an
// error: failures are logged and counted so the schedule keeps going.
func (j *IngestJob) Run(parent context.Context) {
	start := time.Now()
	j.Logger.Info("ingest job started")

	ctx, cancel := context.WithTimeout(parent, j.Timeout)
	defer cancel()

	res, err := j.Svc.FetchAndIngest(ctx)
	j.Metrics.RecordJobDuration(time.Since(start))
	if err != nil {
		// 機密情報をマスクしてログ出力
		j.Logger.Error("ingest job failed",
			slog.Int("saved", res.Accepted),
			slog.Int("duplicates", res.Duplicates),
			logging.ErrorAttr(err))
		j.Metrics.RecordJobRun(StatusFailure)
		j.Metrics.RecordArticlesSaved(res.Accepted)
		return
	}

	j.Metrics.RecordJobRun(StatusSuccess)
	j.Metrics.RecordArticlesSaved(res.Accepted)
	j.Metrics.RecordLastSuccess()

	if j.Store != nil {
		if n, err := j.Store.Count(ctx); err == nil {
			metrics.UpdateArticlesTotal(n)
		} else {
			j.Logger.Warn("failed to count articles", logging.ErrorAttr(err))
		}
	}

	j.Logger.Info("ingest job completed",
		slog.Int("saved", res.Accepted),
		slog.Int("duplicates", res.Duplicates),
		slog.Duration("duration", time.Since(start)))
}
