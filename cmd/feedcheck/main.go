// Command feedcheck fetches one batch from the configured feed producer and
// reports what an ingest run would do with it. Nothing is written to the
// article store.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"technews/internal/bootstrap"
	"technews/internal/config"
	"technews/internal/observability/logging"
	"technews/internal/usecase/ingest"
)

// Diagnostic is the result of one producer check.
type Diagnostic struct {
	Provider     string `json:"provider"`
	Status       string `json:"status"` // OK, EMPTY, FETCH_ERROR, TIMEOUT
	ItemCount    int    `json:"item_count"`
	Valid        int    `json:"valid"`
	MissingTitle int    `json:"missing_title"`
	MissingURL   int    `json:"missing_url"`
	RepeatedURL  int    `json:"repeated_url"`
	LatestDate   string `json:"latest_date,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
	ResponseTime int64  `json:"response_time_ms"`
}

func main() {
	asJSON := flag.Bool("json", false, "print the report as JSON")
	timeout := flag.Duration("timeout", 0, "fetch timeout (defaults to feed.run_timeout)")
	flag.Parse()

	cfg, err := config.Load("")
	if err != nil {
		slog.Error("failed to load configuration", logging.ErrorAttr(err))
		os.Exit(1)
	}
	bootstrap.NewLogger(cfg.Log)

	producer, err := bootstrap.NewProducer(cfg.Feed)
	if err != nil {
		slog.Error("failed to create feed producer", logging.ErrorAttr(err))
		os.Exit(1)
	}

	if *timeout <= 0 {
		*timeout = cfg.Feed.RunTimeout
	}
	diag := diagnose(context.Background(), cfg.Feed.Provider, producer, *timeout)

	if err := writeReport(os.Stdout, diag, *asJSON); err != nil {
		slog.Error("failed to write report", logging.ErrorAttr(err))
		os.Exit(1)
	}
	if diag.Status != "OK" {
		os.Exit(2)
	}
}

func diagnose(ctx context.Context, provider string, p ingest.FeedProducer, timeout time.Duration) Diagnostic {
	diag := Diagnostic{Provider: provider}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	items, err := p.Fetch(ctx)
	diag.ResponseTime = time.Since(start).Milliseconds()
	if err != nil {
		diag.Status = "FETCH_ERROR"
		if ctx.Err() == context.DeadlineExceeded {
			diag.Status = "TIMEOUT"
		}
		diag.ErrorMessage = logging.SanitizeError(err)
		return diag
	}

	diag.ItemCount = len(items)
	seen := make(map[string]struct{}, len(items))
	for _, c := range items {
		switch {
		case c.Title == "":
			diag.MissingTitle++
			continue
		case c.URL == "":
			diag.MissingURL++
			continue
		}
		if _, dup := seen[c.URL]; dup {
			diag.RepeatedURL++
			continue
		}
		seen[c.URL] = struct{}{}
		diag.Valid++
		// 文字列比較で十分 (ISO-8601 前提)
		if c.PublishedAt > diag.LatestDate {
			diag.LatestDate = c.PublishedAt
		}
	}

	if diag.Valid == 0 {
		diag.Status = "EMPTY"
		diag.ErrorMessage = "feed has no ingestible items"
		return diag
	}
	diag.Status = "OK"
	return diag
}

func writeReport(w io.Writer, d Diagnostic, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	}

	_, err := fmt.Fprintf(w,
		"Provider: %s\nStatus:   %s\nItems:    %d (valid %d, missing title %d, missing url %d, repeated url %d)\nLatest:   %s\nResponse: %dms\n",
		d.Provider, d.Status, d.ItemCount, d.Valid, d.MissingTitle, d.MissingURL, d.RepeatedURL, d.LatestDate, d.ResponseTime)
	if err != nil {
		return err
	}
	if d.ErrorMessage != "" {
		_, err = fmt.Fprintf(w, "Error:    %s\n", d.ErrorMessage)
	}
	return err
}
