package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"technews/internal/observability/metrics"
	"technews/internal/usecase/ingest"
)

type stubFetcher struct {
	res      ingest.Result
	err      error
	deadline time.Time
}

func (s *stubFetcher) FetchAndIngest(ctx context.Context) (ingest.Result, error) {
	s.deadline, _ = ctx.Deadline()
	return s.res, s.err
}

type stubCounter struct {
	n   int64
	err error
}

func (s stubCounter) Count(context.Context) (int64, error) { return s.n, s.err }

func TestIngestJob_Success(t *testing.T) {
	m := NewWorkerMetrics(prometheus.NewRegistry())
	f := &stubFetcher{res: ingest.Result{Accepted: 4, Duplicates: 6}}
	job := &IngestJob{
		Svc:     f,
		Store:   stubCounter{n: 42},
		Timeout: time.Minute,
		Metrics: m,
		Logger:  discardLogger(),
	}

	before := time.Now()
	job.Run(context.Background())

	assert.WithinDuration(t, before.Add(time.Minute), f.deadline, 5*time.Second)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CronJobRunsTotal.WithLabelValues(StatusSuccess)))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.CronJobArticlesSavedTotal))
	assert.Greater(t, testutil.ToFloat64(m.CronJobLastSuccessTimestamp), 0.0)
	assert.Equal(t, 42.0, testutil.ToFloat64(metrics.ArticlesTotal))
}

func TestIngestJob_Failure(t *testing.T) {
	m := NewWorkerMetrics(prometheus.NewRegistry())
	job := &IngestJob{
		Svc:     &stubFetcher{res: ingest.Result{Accepted: 2}, err: errors.New("storage unavailable")},
		Timeout: time.Minute,
		Metrics: m,
		Logger:  discardLogger(),
	}

	job.Run(context.Background())

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CronJobRunsTotal.WithLabelValues(StatusFailure)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.CronJobRunsTotal.WithLabelValues(StatusSuccess)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CronJobArticlesSavedTotal), "rows inserted before the abort stay counted")
	assert.Equal(t, 0.0, testutil.ToFloat64(m.CronJobLastSuccessTimestamp))
}

func TestIngestJob_CountFailureDoesNotFailRun(t *testing.T) {
	m := NewWorkerMetrics(prometheus.NewRegistry())
	job := &IngestJob{
		Svc:     &stubFetcher{},
		Store:   stubCounter{err: errors.New("locked")},
		Timeout: time.Minute,
		Metrics: m,
		Logger:  discardLogger(),
	}

	job.Run(context.Background())

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CronJobRunsTotal.WithLabelValues(StatusSuccess)))
}
