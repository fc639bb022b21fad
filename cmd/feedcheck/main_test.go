package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"technews/internal/usecase/ingest"
)

type stubProducer struct {
	items []ingest.Candidate
	err   error
	wait  bool
}

func (s *stubProducer) Name() string { return "stub" }

func (s *stubProducer) Fetch(ctx context.Context) ([]ingest.Candidate, error) {
	if s.wait {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return s.items, s.err
}

func TestDiagnose_CountsLikeIngest(t *testing.T) {
	p := &stubProducer{items: []ingest.Candidate{
		{Title: "A", URL: "https://a", PublishedAt: "2024-01-01T00:00:00Z"},
		{Title: "", URL: "https://b"},
		{Title: "C", URL: ""},
		{Title: "A again", URL: "https://a", PublishedAt: "2024-02-01T00:00:00Z"},
		{Title: "D", URL: "https://d", PublishedAt: "2024-03-01T00:00:00Z"},
	}}

	d := diagnose(context.Background(), "stub", p, time.Second)

	assert.Equal(t, "OK", d.Status)
	assert.Equal(t, 5, d.ItemCount)
	assert.Equal(t, 2, d.Valid)
	assert.Equal(t, 1, d.MissingTitle)
	assert.Equal(t, 1, d.MissingURL)
	assert.Equal(t, 1, d.RepeatedURL)
	assert.Equal(t, "2024-03-01T00:00:00Z", d.LatestDate)
}

func TestDiagnose_Empty(t *testing.T) {
	d := diagnose(context.Background(), "stub", &stubProducer{}, time.Second)
	assert.Equal(t, "EMPTY", d.Status)
}

func TestDiagnose_FetchError(t *testing.T) {
	p := &stubProducer{err: errors.New("GET https://newsapi.org/v2/top-headlines?apiKey=secret: EOF")}

	d := diagnose(context.Background(), "stub", p, time.Second)

	assert.Equal(t, "FETCH_ERROR", d.Status)
	assert.NotContains(t, d.ErrorMessage, "secret")
}

func TestDiagnose_Timeout(t *testing.T) {
	d := diagnose(context.Background(), "stub", &stubProducer{wait: true}, 10*time.Millisecond)
	assert.Equal(t, "TIMEOUT", d.Status)
}

func TestWriteReport(t *testing.T) {
	d := Diagnostic{Provider: "rss", Status: "OK", ItemCount: 3, Valid: 3}

	var text bytes.Buffer
	require.NoError(t, writeReport(&text, d, false))
	assert.Contains(t, text.String(), "Status:   OK")
	assert.NotContains(t, text.String(), "Error:")

	var js bytes.Buffer
	require.NoError(t, writeReport(&js, d, true))
	var got Diagnostic
	require.NoError(t, json.Unmarshal(js.Bytes(), &got))
	assert.Equal(t, d, got)
}
