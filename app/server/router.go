// Package server assembles the chi router and runs the HTTP listener.
package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/goldenhive/inventory/app/api"
	"github.com/goldenhive/inventory/app/categories"
	"github.com/goldenhive/inventory/app/metrics"
	"github.com/goldenhive/inventory/app/products"
)

// PingFunc reports whether the store is reachable.
type PingFunc func(ctx context.Context) error

// Options carries everything NewRouter wires together.
type Options struct {
	Products *products.Service
	Metrics  *metrics.Metrics
	Ping     PingFunc
	Logger   *slog.Logger

	CORS                 CORSOptions
	MaxBodyBytes         int64
	ExposeInternalErrors bool
}

// NewRouter returns the API handler. Middleware runs outermost first:
// metrics, recovery, request id, access log, CORS.
func NewRouter(opts Options) chi.Router {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	r := chi.NewRouter()
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
	}
	r.Use(Recovery(log))
	r.Use(RequestID)
	r.Use(AccessLog(log))
	r.Use(CORS(opts.CORS))
	r.Use(chimw.CleanPath)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		api.WriteError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		api.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/healthz", healthHandler(opts.Ping))
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	productHandler := products.NewProductHandler(opts.Products,
		products.WithMaxBodyBytes(opts.MaxBodyBytes),
		products.WithExposeInternalErrors(opts.ExposeInternalErrors),
	)
	categoryHandler := categories.NewCategoryHandler(opts.Products, opts.ExposeInternalErrors)

	r.Route("/api", func(r chi.Router) {
		r.Route("/products", productHandler.Routes)
		r.Get("/categories", categoryHandler.HandleGetAll)
	})

	return r
}

func healthHandler(ping PingFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			if err := ping(r.Context()); err != nil {
				api.WriteError(w, http.StatusServiceUnavailable, err.Error())
				return
			}
		}
		api.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// RouteInfo describes one registered endpoint.
type RouteInfo struct {
	Method  string
	Pattern string
}

// Routes lists every method/pattern pair registered on r.
func Routes(r chi.Routes) ([]RouteInfo, error) {
	var out []RouteInfo
	err := chi.Walk(r, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		out = append(out, RouteInfo{Method: method, Pattern: route})
		return nil
	})
	return out, err
}
