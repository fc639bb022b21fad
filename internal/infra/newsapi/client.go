// Package newsapi implements the ingest feed producer backed by the
// newsapi.org top-headlines endpoint.
package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"technews/internal/resilience/circuitbreaker"
	"technews/internal/resilience/retry"
	"technews/internal/usecase/ingest"
)

const (
	// DefaultBaseURL is the public news API endpoint.
	DefaultBaseURL = "https://newsapi.org"

	topHeadlinesPath = "/v2/top-headlines"
	apiKeyHeader     = "X-Api-Key"
	maxBodyBytes     = 4 << 20
)

// ErrMissingAPIKey is returned by New when no API key is configured.
var ErrMissingAPIKey = errors.New("newsapi: API key is required")

// APIError is an error reported in the response body with status "error".
type APIError struct {
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return "newsapi: " + e.Message
	}
	return fmt.Sprintf("newsapi: %s: %s", e.Code, e.Message)
}

// Config holds the client configuration.
type Config struct {
	APIKey   string
	BaseURL  string
	Category string
	Language string
	// PageSize is sent when positive; the API caps it at 100.
	PageSize int
	Timeout  time.Duration
	// RequestsPerSecond and Burst configure the outbound token bucket.
	RequestsPerSecond float64
	Burst             int
}

// DefaultConfig returns the technology/English configuration for apiKey.
func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:            apiKey,
		BaseURL:           DefaultBaseURL,
		Category:          "technology",
		Language:          "en",
		Timeout:           15 * time.Second,
		RequestsPerSecond: 1,
		Burst:             1,
	}
}

// Client implements ingest.FeedProducer.
type Client struct {
	cfg            Config
	httpClient     *http.Client
	limiter        *rate.Limiter
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

var _ ingest.FeedProducer = (*Client)(nil)

// New creates a Client. A nil httpClient gets one with cfg.Timeout.
func New(cfg Config, httpClient *http.Client) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("newsapi: invalid base URL: %w", err)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	return &Client{
		cfg:            cfg,
		httpClient:     httpClient,
		limiter:        rate.NewLimiter(limit, burst),
		circuitBreaker: circuitbreaker.New(circuitbreaker.NewsAPIConfig()),
		retryConfig:    retry.NewsAPIConfig(),
	}, nil
}

// WithRetryConfig replaces the retry policy.
func (c *Client) WithRetryConfig(cfg retry.Config) *Client {
	c.retryConfig = cfg
	return c
}

// Name implements ingest.FeedProducer.
func (c *Client) Name() string { return "newsapi" }

type response struct {
	Status       string    `json:"status"`
	Code         string    `json:"code"`
	Message      string    `json:"message"`
	TotalResults int       `json:"totalResults"`
	Articles     []article `json:"articles"`
}

type article struct {
	Source struct {
		ID   *string `json:"id"`
		Name string  `json:"name"`
	} `json:"source"`
	Author      *string `json:"author"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	URL         *string `json:"url"`
	PublishedAt string  `json:"publishedAt"`
}

// Fetch requests the current top headlines and maps them to candidates.
// Fields the API sends as null become empty strings, so the ingest
// pipeline can skip articles without a title or url.
func (c *Client) Fetch(ctx context.Context) ([]ingest.Candidate, error) {
	var out []ingest.Candidate

	err := retry.WithBackoff(ctx, c.retryConfig, func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("newsapi: rate limiter: %w", err)
		}
		result, err := c.circuitBreaker.Execute(func() (interface{}, error) {
			return c.doFetch(ctx)
		})
		if err != nil {
			if circuitbreaker.IsRejection(err) {
				slog.Warn("news API circuit breaker open, request rejected",
					slog.String("service", "news-api"),
					slog.String("state", c.circuitBreaker.State().String()))
			}
			return err
		}
		out = result.([]ingest.Candidate)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) doFetch(ctx context.Context) ([]ingest.Candidate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(), nil)
	if err != nil {
		return nil, fmt.Errorf("newsapi: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "TechNewsBot/1.0")
	// ヘッダーで渡す: URL は net/http のエラーにそのまま載る
	req.Header.Set(apiKeyHeader, c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi: request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("newsapi: read body: %w", err)
	}

	var payload response
	decodeErr := json.Unmarshal(body, &payload)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := http.StatusText(resp.StatusCode)
		if decodeErr == nil && payload.Message != "" {
			msg = payload.Message
		}
		return nil, retry.NewHTTPError(resp, msg)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("newsapi: decode response: %w", decodeErr)
	}
	if payload.Status != "ok" {
		return nil, &APIError{Code: payload.Code, Message: payload.Message}
	}

	items := make([]ingest.Candidate, 0, len(payload.Articles))
	for _, a := range payload.Articles {
		items = append(items, ingest.Candidate{
			Title:       deref(a.Title),
			Description: deref(a.Description),
			URL:         deref(a.URL),
			Source:      a.Source.Name,
			PublishedAt: a.PublishedAt,
		})
	}
	return items, nil
}

func (c *Client) endpoint() string {
	q := url.Values{}
	if c.cfg.Category != "" {
		q.Set("category", c.cfg.Category)
	}
	if c.cfg.Language != "" {
		q.Set("language", c.cfg.Language)
	}
	if c.cfg.PageSize > 0 {
		q.Set("pageSize", fmt.Sprint(c.cfg.PageSize))
	}
	return strings.TrimRight(c.cfg.BaseURL, "/") + topHeadlinesPath + "?" + q.Encode()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
