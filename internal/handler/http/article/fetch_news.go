package article

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"technews/internal/handler/http/respond"
	"technews/internal/observability/logging"
	"technews/internal/usecase/ingest"
)

// Fetcher pulls a batch from the feed producer and ingests it.
type Fetcher interface {
	FetchAndIngest(ctx context.Context) (ingest.Result, error)
}

type FetchNewsHandler struct {
	Svc Fetcher
	// Timeout bounds the whole fetch-and-ingest run; zero means the
	// request context alone.
	Timeout time.Duration
}

// ServeHTTP ニュース取得
// @Summary      Fetch and store news
// @Description  Pulls the current headlines from the feed and stores the ones not seen before.
// @Tags         articles
// @Produce      json
// @Success      200 {object} FetchResponse
// @Failure      502 {object} respond.ErrorBody "news feed unavailable"
// @Failure      503 {object} respond.ErrorBody "storage unavailable"
// @Router       /api/fetch-news [post]
func (h FetchNewsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}

	res, err := h.Svc.FetchAndIngest(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("fetch-news failed",
			slog.Int("saved", res.Accepted),
			slog.Int("duplicates", res.Duplicates),
			logging.ErrorAttr(err))

		code := statusFor(err)
		if errors.Is(err, ingest.ErrFeedFetchFailed) {
			code = http.StatusBadGateway
		}
		respond.SafeError(w, code, err)
		return
	}

	out := FetchResponse{Success: true, Saved: res.Accepted, Duplicates: res.Duplicates}
	if res.Accepted == 0 && res.Duplicates == 0 {
		out.Message = "No articles found"
	}
	respond.JSON(w, http.StatusOK, out)
}
