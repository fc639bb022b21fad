// Package scraper provides the RSS/Atom feed producer.
// It uses the gofeed library to parse feed content with reliability patterns.
package scraper

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"technews/internal/resilience/circuitbreaker"
	"technews/internal/resilience/retry"
	"technews/internal/usecase/ingest"
)

const userAgent = "TechNewsBot/1.0"

// RSSFetcher implements ingest.FeedProducer for a single RSS or Atom feed.
// Calls go through a circuit breaker and are retried on transient failures.
type RSSFetcher struct {
	client         *http.Client
	feedURL        string
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

var _ ingest.FeedProducer = (*RSSFetcher)(nil)

// NewRSSFetcher creates a new RSSFetcher reading feedURL with the given HTTP client.
func NewRSSFetcher(client *http.Client, feedURL string) *RSSFetcher {
	return &RSSFetcher{
		client:         client,
		feedURL:        feedURL,
		circuitBreaker: circuitbreaker.New(circuitbreaker.FeedFetchConfig()),
		retryConfig:    retry.FeedFetchConfig(),
	}
}

// WithRetryConfig replaces the retry policy. Used by tests to keep backoff short.
func (f *RSSFetcher) WithRetryConfig(cfg retry.Config) *RSSFetcher {
	f.retryConfig = cfg
	return f
}

// Name implements ingest.FeedProducer.
func (f *RSSFetcher) Name() string { return "rss" }

// Fetch retrieves and parses the feed and maps each item to a candidate.
func (f *RSSFetcher) Fetch(ctx context.Context) ([]ingest.Candidate, error) {
	var items []ingest.Candidate

	err := retry.WithBackoff(ctx, f.retryConfig, func() error {
		result, err := f.circuitBreaker.Execute(func() (interface{}, error) {
			return f.doFetch(ctx)
		})
		if err != nil {
			if circuitbreaker.IsRejection(err) {
				slog.Warn("feed fetch circuit breaker open, request rejected",
					slog.String("service", "feed-fetch"),
					slog.String("url", f.feedURL),
					slog.String("state", f.circuitBreaker.State().String()))
			}
			return err
		}
		items = result.([]ingest.Candidate)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (f *RSSFetcher) doFetch(ctx context.Context) ([]ingest.Candidate, error) {
	fp := gofeed.NewParser()
	fp.UserAgent = userAgent
	fp.Client = f.client

	feed, err := fp.ParseURLWithContext(f.feedURL, ctx)
	if err != nil {
		var httpErr gofeed.HTTPError
		if errors.As(err, &httpErr) {
			return nil, &retry.HTTPError{StatusCode: httpErr.StatusCode, Message: httpErr.Status}
		}
		return nil, err
	}

	items := make([]ingest.Candidate, 0, len(feed.Items))
	for _, it := range feed.Items {
		items = append(items, ingest.Candidate{
			Title:       it.Title,
			Description: it.Description,
			URL:         it.Link,
			Source:      feed.Title,
			PublishedAt: publishedAt(it),
		})
	}
	return items, nil
}

// publishedAt normalises to RFC 3339 UTC so the store's string ordering
// matches chronological order. Unparseable dates are passed through raw.
func publishedAt(it *gofeed.Item) string {
	switch {
	case it.PublishedParsed != nil:
		return it.PublishedParsed.UTC().Format(time.RFC3339)
	case it.UpdatedParsed != nil:
		return it.UpdatedParsed.UTC().Format(time.RFC3339)
	case it.Published != "":
		return it.Published
	default:
		return it.Updated
	}
}
