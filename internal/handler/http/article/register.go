package article

import (
	"net/http"
	"time"
)

// Services bundles what the article routes need.
type Services struct {
	Articles interface {
		Lister
		ReadMarker
	}
	Ingest       Fetcher
	FetchTimeout time.Duration
}

// Register mounts the /api routes on mux.
func Register(mux *http.ServeMux, svc Services) {
	mux.Handle("GET /api/articles", ListHandler{Svc: svc.Articles})
	mux.Handle("PATCH /api/articles/{id}/read", MarkReadHandler{Svc: svc.Articles})
	mux.Handle("POST /api/fetch-news", FetchNewsHandler{Svc: svc.Ingest, Timeout: svc.FetchTimeout})
}
