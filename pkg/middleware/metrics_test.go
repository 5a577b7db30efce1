package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusMetrics_CountsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(PrometheusMetrics("metrics-test"))
	r.Get("/media/*", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, path := range []string{"/media/a", "/media/b", "/media/c"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	counter := httpRequestsTotal.WithLabelValues("metrics-test", http.MethodGet, "/media/*", "404")
	assert.Equal(t, float64(3), testutil.ToFloat64(counter))
	assert.Equal(t, float64(0), testutil.ToFloat64(httpRequestsInFlight.WithLabelValues("metrics-test")))
}

func TestPrometheusMetrics_DefaultStatusIs200(t *testing.T) {
	r := chi.NewRouter()
	r.Use(PrometheusMetrics("metrics-default"))
	r.Get("/reviews", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/reviews", nil))

	counter := httpRequestsTotal.WithLabelValues("metrics-default", http.MethodGet, "/reviews", "200")
	assert.Equal(t, float64(1), testutil.ToFloat64(counter))
}
