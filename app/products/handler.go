package products

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/goldenhive/inventory/app/api"
	"github.com/goldenhive/inventory/logger"
)

type ProductHandler struct {
	service      *Service
	maxBodyBytes int64
	exposeErrors bool
}

type HandlerOption func(*ProductHandler)

// WithMaxBodyBytes caps JSON request bodies.
func WithMaxBodyBytes(n int64) HandlerOption {
	return func(h *ProductHandler) { h.maxBodyBytes = n }
}

// WithExposeInternalErrors controls whether 500 responses carry the raw error text.
func WithExposeInternalErrors(expose bool) HandlerOption {
	return func(h *ProductHandler) { h.exposeErrors = expose }
}

func NewProductHandler(s *Service, opts ...HandlerOption) *ProductHandler {
	h := &ProductHandler{
		service:      s,
		maxBodyBytes: api.DefaultMaxBodyBytes,
		exposeErrors: true,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes mounts the product endpoints on r.
func (h *ProductHandler) Routes(r chi.Router) {
	r.Get("/", h.HandleList)
	r.Post("/", h.HandleCreate)
	r.Get("/{id}", h.HandleGet)
	r.Put("/{id}", h.HandleUpdate)
	r.Patch("/{id}/quantity", h.HandleUpdateQuantity)
	r.Delete("/{id}", h.HandleDelete)
}

func (h *ProductHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	category := r.URL.Query().Get("category")

	products, err := h.service.List(r.Context(), search, category)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		api.WriteError(w, http.StatusNotFound, msgProductNotFound)
		return
	}

	product, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input ProductInput
	if err := api.DecodeJSON(w, r, &input, h.maxBodyBytes); err != nil {
		api.WriteDecodeError(w, err)
		return
	}

	product, err := h.service.Create(r.Context(), input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("product created", "id", product.ID, "sku", product.SKU)
	api.WriteJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		api.WriteError(w, http.StatusNotFound, msgProductNotFound)
		return
	}

	var input ProductInput
	if err := api.DecodeJSON(w, r, &input, h.maxBodyBytes); err != nil {
		api.WriteDecodeError(w, err)
		return
	}

	product, err := h.service.Update(r.Context(), id, input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) HandleUpdateQuantity(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		api.WriteError(w, http.StatusNotFound, msgProductNotFound)
		return
	}

	var input QuantityInput
	if err := api.DecodeJSON(w, r, &input, h.maxBodyBytes); err != nil {
		api.WriteDecodeError(w, err)
		return
	}

	product, err := h.service.UpdateQuantity(r.Context(), id, input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		api.WriteError(w, http.StatusNotFound, msgProductNotFound)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("product deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProductHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		api.WriteError(w, http.StatusBadRequest, ve.Message)
	case errors.Is(err, ErrConflict):
		api.WriteError(w, http.StatusConflict, msgDuplicateSKU)
	case errors.Is(err, ErrNotFound):
		api.WriteError(w, http.StatusNotFound, msgProductNotFound)
	default:
		api.InternalError(w, r, err, h.exposeErrors)
	}
}

// productID reads the {id} path parameter. Anything but a positive integer
// is treated as an unknown product.
func productID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
