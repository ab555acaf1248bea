package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics holds the Prometheus collectors for the HTTP surface. A nil
// *metrics is valid and records nothing.
type metrics struct {
	registry         *prometheus.Registry
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	handlerErrors    prometheus.Counter
	readinessFailing prometheus.Gauge
}

// newMetrics registers on a private registry so several routers can live
// in one process (tests do this).
func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sampleapp_http_requests_total",
				Help: "Total number of HTTP requests by method, route and status.",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sampleapp_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		handlerErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "sampleapp_http_handler_errors_total",
				Help: "Total number of requests answered with 500 after a handler error or panic.",
			},
		),
		readinessFailing: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "sampleapp_readiness_failing",
				Help: "1 when the last readiness check failed, 0 otherwise.",
			},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestsTotal,
		m.requestDuration,
		m.handlerErrors,
		m.readinessFailing,
	)
	return m
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *metrics) incHandlerErrors() {
	if m == nil {
		return
	}
	m.handlerErrors.Inc()
}

func (m *metrics) setReadiness(ok bool) {
	if m == nil {
		return
	}
	if ok {
		m.readinessFailing.Set(0)
		return
	}
	m.readinessFailing.Set(1)
}

// middleware records one observation per request, labelled by the chi
// route pattern to keep cardinality bounded.
func (m *metrics) middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
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

		m.requestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
