package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RecordDecision(t *testing.T) {
	metrics := NewMetrics()

	metrics.RecordDecision("comment", "update", "denied")
	metrics.RecordDecision("comment", "update", "denied")
	metrics.RecordDecision("comment", "update", "allowed")

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.AccessDecisionsTotal.WithLabelValues("comment", "update", "denied")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.AccessDecisionsTotal.WithLabelValues("comment", "update", "allowed")))
}

func TestMetrics_HTTPMiddleware(t *testing.T) {
	metrics := NewMetrics()

	router := chi.NewRouter()
	router.Use(metrics.HTTPMiddleware)
	router.Get("/api/books/{id}", func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusNotFound)
	})
	router.Handle("/metrics", metrics.Handler())

	for _, path := range []string{"/api/books/1", "/api/books/2"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/books/{id}", "404")))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `folio_http_requests_total{method="GET",route="/api/books/{id}",status="404"} 2`)
	assert.Contains(t, recorder.Body.String(), "go_goroutines")
}
