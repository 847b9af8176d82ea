package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/secretkeeper/pkg/metrics"
)

func TestCounters(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := metrics.New(metrics.WithRegistry(reg))

	m.AuthAttempt(metrics.MethodLocal, metrics.OutcomeSuccess)
	m.AuthAttempt(metrics.MethodLocal, metrics.OutcomeFailure)
	m.AuthAttempt(metrics.MethodLocal, metrics.OutcomeFailure)
	m.SecretSubmitted()

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `secretkeeper_auth_attempts_total{method="local",outcome="failure"} 2`)
	assert.Contains(t, body, `secretkeeper_auth_attempts_total{method="local",outcome="success"} 1`)
	assert.Contains(t, body, "secretkeeper_secrets_submitted_total 1")

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 2)
}

func TestNilMetrics(t *testing.T) {
	t.Parallel()

	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.AuthAttempt(metrics.MethodGoogle, metrics.OutcomeError)
		m.SecretSubmitted()
	})

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })
	w := httptest.NewRecorder()
	m.Middleware(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
}

func TestMiddlewareAndHandler(t *testing.T) {
	t.Parallel()

	m := metrics.New()

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/items/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Handle("/metrics", m.Handler())

	for _, id := range []string{"1", "2"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/"+id, nil))
		require.Equal(t, http.StatusNoContent, w.Code)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `secretkeeper_http_request_duration_seconds_count{method="GET",route="/items/{id}",status="204"} 2`)
}
