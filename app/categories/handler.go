package categories

import (
	"context"
	"net/http"

	"github.com/goldenhive/inventory/app/api"
)

// CategoryProvider lists the distinct category values in use.
type CategoryProvider interface {
	ListCategories(ctx context.Context) ([]string, error)
}

type CategoryHandler struct {
	provider     CategoryProvider
	exposeErrors bool
}

func NewCategoryHandler(p CategoryProvider, exposeErrors bool) *CategoryHandler {
	return &CategoryHandler{provider: p, exposeErrors: exposeErrors}
}

func (h *CategoryHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.provider.ListCategories(r.Context())
	if err != nil {
		api.InternalError(w, r, err, h.exposeErrors)
		return
	}
	if categories == nil {
		categories = []string{}
	}

	api.WriteJSON(w, http.StatusOK, categories)
}
