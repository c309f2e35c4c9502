package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	m := New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/products/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, path := range []string{"/api/products/1", "/api/products/2"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
	}

	body := scrape(t, m)
	assert.Contains(t, body, `inventory_http_requests_total{method="GET",route="/api/products/{id}",status="404"} 2`)
	assert.Contains(t, body, `inventory_http_requests_in_flight 0`)
	assert.NotContains(t, body, `route="/api/products/1"`)
}

func TestObserveMutation(t *testing.T) {
	m := New()

	m.ObserveMutation("create", "success")
	m.ObserveMutation("create", "success")
	m.ObserveMutation("delete", "not_found")

	body := scrape(t, m)
	assert.Contains(t, body, `inventory_product_mutations_total{operation="create",outcome="success"} 2`)
	assert.Contains(t, body, `inventory_product_mutations_total{operation="delete",outcome="not_found"} 1`)
}

func TestHandlerIncludesRuntimeCollectors(t *testing.T) {
	body := scrape(t, New())

	assert.Contains(t, body, "go_goroutines")
}
