package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"technews/internal/domain/entity"
	"technews/internal/observability/logging"
	"technews/internal/observability/metrics"
	"technews/internal/observability/tracing"
	"technews/internal/repository"
)

// Candidate is one raw record handed over by a feed producer.
// Title and URL are required; a candidate missing either is skipped.
type Candidate struct {
	Title       string
	Description string
	URL         string
	// Source is the name of the publishing outlet.
	Source      string
	PublishedAt string
}

// FeedProducer supplies a batch of candidates.
type FeedProducer interface {
	// Name identifies the producer in logs and metrics.
	Name() string
	Fetch(ctx context.Context) ([]Candidate, error)
}

// Result summarises one ingest batch. Skipped candidates appear in neither count.
type Result struct {
	Accepted   int
	Duplicates int
}

// Service provides the ingest use cases.
type Service struct {
	repo     repository.ArticleRepository
	producer FeedProducer
}

// NewService creates an ingest Service. producer may be nil when only
// Ingest is used.
func NewService(repo repository.ArticleRepository, producer FeedProducer) *Service {
	return &Service{repo: repo, producer: producer}
}

// Ingest submits candidates to the store in input order.
//
// A candidate is skipped when Title or URL is empty. Every other candidate
// is upserted: inserted ones count as accepted, rejected ones as duplicates,
// so a url repeated within the batch is accepted once and then counted as a
// duplicate. The first store error aborts the batch; it is returned together
// with the counts accumulated so far and earlier inserts are not undone.
func (s *Service) Ingest(ctx context.Context, candidates []Candidate) (res Result, err error) {
	if len(candidates) == 0 {
		return Result{}, nil
	}

	ctx, span := tracing.StartSpan(ctx, "ingest.batch",
		attribute.Int("ingest.candidates", len(candidates)))
	start := time.Now()
	skipped := 0
	logger := logging.FromContext(ctx)

	defer func() {
		span.SetAttributes(
			attribute.Int("ingest.accepted", res.Accepted),
			attribute.Int("ingest.duplicates", res.Duplicates),
			attribute.Int("ingest.skipped", skipped),
		)
		tracing.EndSpan(span, err)
		metrics.RecordIngestBatch(time.Since(start), err != nil)
	}()

	for i, c := range candidates {
		article := c.toArticle()
		if verr := article.Validate(); verr != nil {
			skipped++
			metrics.RecordIngestCandidate(metrics.OutcomeSkipped)
			logger.Debug("candidate skipped",
				slog.Int("index", i),
				slog.String("url", c.URL),
				slog.String("reason", verr.Error()))
			continue
		}

		outcome, uerr := s.repo.UpsertIfAbsent(ctx, article)
		if uerr != nil {
			if errors.Is(uerr, entity.ErrStorageUnavailable) {
				metrics.RecordStorageError("upsert")
			}
			logger.Error("ingest aborted",
				slog.Int("index", i),
				slog.Int("submitted", len(candidates)),
				slog.Int("accepted", res.Accepted),
				slog.Int("duplicates", res.Duplicates),
				slog.Int("skipped", skipped),
				logging.ErrorAttr(uerr))
			return res, fmt.Errorf("ingest candidate %d: %w", i, uerr)
		}

		switch outcome {
		case entity.OutcomeInserted:
			res.Accepted++
			metrics.RecordIngestCandidate(metrics.OutcomeInserted)
		case entity.OutcomeDuplicate:
			res.Duplicates++
			metrics.RecordIngestCandidate(metrics.OutcomeDuplicate)
		default:
			return res, fmt.Errorf("ingest candidate %d: unexpected upsert outcome %v", i, outcome)
		}
	}

	logger.Info("ingest finished",
		slog.Int("submitted", len(candidates)),
		slog.Int("accepted", res.Accepted),
		slog.Int("duplicates", res.Duplicates),
		slog.Int("skipped", skipped),
		slog.Duration("duration", time.Since(start)))

	return res, nil
}

// FetchAndIngest pulls one batch from the feed producer and ingests it.
// A producer failure is reported as ErrFeedFetchFailed and writes nothing.
func (s *Service) FetchAndIngest(ctx context.Context) (Result, error) {
	if s.producer == nil {
		return Result{}, ErrNoProducer
	}

	start := time.Now()
	candidates, err := s.producer.Fetch(ctx)
	metrics.RecordFeedFetch(s.producer.Name(), time.Since(start), err)
	if err != nil {
		logging.FromContext(ctx).Warn("feed fetch failed",
			slog.String("provider", s.producer.Name()),
			logging.ErrorAttr(err))
		return Result{}, fmt.Errorf("%w: %s: %w", ErrFeedFetchFailed, s.producer.Name(), err)
	}

	return s.Ingest(ctx, candidates)
}

func (c Candidate) toArticle() *entity.Article {
	return &entity.Article{
		Title:       c.Title,
		Description: c.Description,
		URL:         c.URL,
		Source:      c.Source,
		PublishedAt: c.PublishedAt,
	}
}
