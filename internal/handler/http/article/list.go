package article

import (
	"context"
	"errors"
	"net/http"

	"technews/internal/domain/entity"
	"technews/internal/handler/http/respond"
	"technews/internal/observability/logging"
)

// Lister returns every stored article, newest first.
type Lister interface {
	ListAll(ctx context.Context) ([]*entity.Article, error)
}

type ListHandler struct{ Svc Lister }

// ServeHTTP 記事一覧取得
// @Summary      List articles
// @Description  Returns every stored article ordered by publishedAt descending, then id descending.
// @Tags         articles
// @Produce      json
// @Success      200 {object} ListResponse
// @Failure      503 {object} respond.ErrorBody "storage unavailable"
// @Router       /api/articles [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	articles, err := h.Svc.ListAll(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("failed to list articles", logging.ErrorAttr(err))
		respond.SafeError(w, statusFor(err), err)
		return
	}

	out := make([]DTO, 0, len(articles))
	for _, a := range articles {
		out = append(out, toDTO(a))
	}
	respond.JSON(w, http.StatusOK, ListResponse{Success: true, Articles: out})
}

// statusFor maps store failures to 503 and anything unexpected to 500.
func statusFor(err error) int {
	if errors.Is(err, entity.ErrStorageUnavailable) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
