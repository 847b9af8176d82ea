package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Authentication methods.
const (
	MethodLocal    = "local"
	MethodRegister = "register"
	MethodGoogle   = "google"
)

// Authentication outcomes.
const (
	OutcomeSuccess   = "success"
	OutcomeFailure   = "failure"
	OutcomeDuplicate = "duplicate"
	OutcomeError     = "error"
)

// Registry is both a registerer and a gatherer, as *prometheus.Registry is.
type Registry interface {
	prometheus.Registerer
	prometheus.Gatherer
}

type options struct {
	namespace string
	registry  Registry
}

type Option func(*options)

// WithNamespace overrides the "secretkeeper" metric prefix.
func WithNamespace(ns string) Option {
	return func(o *options) { o.namespace = ns }
}

// WithRegistry registers collectors on reg instead of a fresh registry.
func WithRegistry(reg Registry) Option {
	return func(o *options) {
		if reg != nil {
			o.registry = reg
		}
	}
}

// Metrics holds the application collectors.
type Metrics struct {
	registry         Registry
	authAttempts     *prometheus.CounterVec
	secretsSubmitted prometheus.Counter
	requestDuration  *prometheus.HistogramVec
}

// New creates and registers the collectors. It panics if they are already
// registered on the chosen registry.
func New(opts ...Option) *Metrics {
	o := options{namespace: "secretkeeper"}
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = prometheus.NewRegistry()
	}

	factory := promauto.With(o.registry)
	return &Metrics{
		registry: o.registry,
		authAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "auth_attempts_total",
			Help:      "Authentication attempts by method and outcome.",
		}, []string{"method", "outcome"}),
		secretsSubmitted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "secrets_submitted_total",
			Help:      "Secrets appended by authenticated users.",
		}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

func (m *Metrics) AuthAttempt(method, outcome string) {
	if m == nil {
		return
	}
	m.authAttempts.WithLabelValues(method, outcome).Inc()
}

func (m *Metrics) SecretSubmitted() {
	if m == nil {
		return
	}
	m.secretsSubmitted.Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware observes request latency labelled with the chi route pattern,
// so path parameters do not explode label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requestDuration.
			WithLabelValues(r.Method, route, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
	})
}
