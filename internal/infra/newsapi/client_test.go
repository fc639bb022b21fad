package newsapi

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"technews/internal/resilience/retry"
	"technews/internal/usecase/ingest"
)

func fastRetry() retry.Config {
	return retry.Config{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	cfg := DefaultConfig("test-key")
	cfg.BaseURL = baseURL
	cfg.RequestsPerSecond = 0
	c, err := New(cfg, nil)
	require.NoError(t, err)
	return c.WithRetryConfig(fastRetry())
}

const okBody = `{
  "status": "ok",
  "totalResults": 3,
  "articles": [
    {
      "source": {"id": null, "name": "Tech Daily"},
      "author": "A. Writer",
      "title": "Go 1.30 released",
      "description": "Release notes",
      "url": "https://example.com/go-130",
      "publishedAt": "2024-05-01T10:00:00Z"
    },
    {
      "source": {"id": "wired", "name": "Wired"},
      "author": null,
      "title": null,
      "description": null,
      "url": "https://example.com/untitled",
      "publishedAt": "2024-05-01T09:00:00Z"
    },
    {
      "source": {"id": null, "name": "Blog"},
      "title": "No link",
      "description": "",
      "url": null,
      "publishedAt": ""
    }
  ]
}`

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := New(Config{APIKey: "  "}, nil)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestClient_Fetch(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/top-headlines", r.URL.Path)
		gotQuery = map[string]string{
			"category": r.URL.Query().Get("category"),
			"language": r.URL.Query().Get("language"),
			"apiKey":   r.URL.Query().Get("apiKey"),
			"header":   r.Header.Get("X-Api-Key"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(okBody))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL+"/")
	got, err := c.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"category": "technology",
		"language": "en",
		"apiKey":   "",
		"header":   "test-key",
	}, gotQuery)

	want := []ingest.Candidate{
		{
			Title:       "Go 1.30 released",
			Description: "Release notes",
			URL:         "https://example.com/go-130",
			Source:      "Tech Daily",
			PublishedAt: "2024-05-01T10:00:00Z",
		},
		{
			URL:         "https://example.com/untitled",
			Source:      "Wired",
			PublishedAt: "2024-05-01T09:00:00Z",
		},
		{
			Title:  "No link",
			Source: "Blog",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("candidates mismatch (-want +got):\n%s", diff)
	}
}

func TestClient_Fetch_EmptyArticles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok","totalResults":0,"articles":[]}`))
	}))
	defer srv.Close()

	got, err := newTestClient(t, srv.URL).Fetch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestClient_Fetch_APIErrorStatus(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte(`{"status":"error","code":"parameterInvalid","message":"bad category"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Fetch(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "parameterInvalid", apiErr.Code)
	assert.Equal(t, "bad category", apiErr.Message)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "API errors are not retried")
}

func TestClient_Fetch_Unauthorized(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status":"error","code":"apiKeyInvalid","message":"Your API key is invalid"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Fetch(context.Background())

	var httpErr *retry.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
	assert.Equal(t, "Your API key is invalid", httpErr.Message)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClient_Fetch_RetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(okBody))
	}))
	defer srv.Close()

	got, err := newTestClient(t, srv.URL).Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestClient_Fetch_RateLimitedGivesUp(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Fetch(context.Background())

	var httpErr *retry.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusTooManyRequests, httpErr.StatusCode)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestClient_Fetch_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestClient_Fetch_LimiterHonorsContext(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte(okBody))
	}))
	defer srv.Close()

	cfg := DefaultConfig("test-key")
	cfg.BaseURL = srv.URL
	cfg.RequestsPerSecond = 0.001
	cfg.Burst = 1
	c, err := New(cfg, nil)
	require.NoError(t, err)
	c.WithRetryConfig(fastRetry())

	_, err = c.Fetch(context.Background())
	require.NoError(t, err)

	// the bucket is now empty and refills far beyond the deadline
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.Fetch(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limiter")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestAPIError_Error(t *testing.T) {
	assert.Equal(t, "newsapi: boom", (&APIError{Message: "boom"}).Error())
	assert.Equal(t, "newsapi: rateLimited: slow down", (&APIError{Code: "rateLimited", Message: "slow down"}).Error())
}

func TestClient_FailedFetchDoesNotLogKey(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	closedURL := srv.URL
	srv.Close()

	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	cfg := DefaultConfig("SECRETKEY123")
	cfg.BaseURL = closedURL
	cfg.RequestsPerSecond = 0
	c, err := New(cfg, nil)
	require.NoError(t, err)
	c.WithRetryConfig(fastRetry())

	_, err = ingest.NewService(nil, c).FetchAndIngest(context.Background())
	require.ErrorIs(t, err, ingest.ErrFeedFetchFailed)

	logs := buf.String()
	assert.Contains(t, logs, "feed fetch failed")
	assert.NotContains(t, logs, "SECRETKEY123")
	assert.NotContains(t, err.Error(), "SECRETKEY123")
}
