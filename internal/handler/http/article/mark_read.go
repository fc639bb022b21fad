package article

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"technews/internal/handler/http/respond"
	"technews/internal/observability/logging"
	artUC "technews/internal/usecase/article"
)

// ReadMarker flags an article as read.
type ReadMarker interface {
	MarkRead(ctx context.Context, id int64) error
}

type MarkReadHandler struct{ Svc ReadMarker }

// ServeHTTP 既読にする
// @Summary      Mark an article as read
// @Description  Idempotent: marking an already-read article succeeds.
// @Tags         articles
// @Produce      json
// @Param        id path int true "article ID"
// @Success      200 {object} StatusResponse
// @Failure      400 {object} respond.ErrorBody "invalid id"
// @Failure      404 {object} respond.ErrorBody "article not found"
// @Failure      503 {object} respond.ErrorBody "storage unavailable"
// @Router       /api/articles/{id}/read [patch]
func (h MarkReadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		respond.SafeError(w, http.StatusBadRequest, artUC.ErrInvalidArticleID)
		return
	}

	err = h.Svc.MarkRead(r.Context(), id)
	switch {
	case err == nil:
		respond.JSON(w, http.StatusOK, StatusResponse{Success: true})
	case errors.Is(err, artUC.ErrInvalidArticleID):
		respond.SafeError(w, http.StatusBadRequest, err)
	case errors.Is(err, artUC.ErrArticleNotFound):
		respond.SafeError(w, http.StatusNotFound, err)
	default:
		logging.FromContext(r.Context()).Error("failed to mark article read",
			slog.Int64("article_id", id),
			logging.ErrorAttr(err))
		respond.SafeError(w, statusFor(err), err)
	}
}
