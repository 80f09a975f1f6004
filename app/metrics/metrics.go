package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "path", "status"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path", "status"},
	)

	statusCategoryCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_status_category_total",
			Help: "Total number of responses by status category (2xx, 4xx, 5xx)",
		},
		[]string{"service", "category"},
	)
)

func init() {
	prometheus.MustRegister(requestCounter, requestDuration, statusCategoryCounter)
}

// HTTPMetrics records per-request counters and latencies for one service.
type HTTPMetrics struct {
	serviceName string
}

func NewHTTPMetrics(serviceName string) *HTTPMetrics {
	return &HTTPMetrics{serviceName: serviceName}
}

// statusRecorder captures the status code written by downstream handlers.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware wraps a handler and records request count, latency and status
// category. The path label uses the mux route template so ids do not blow up
// label cardinality.
func (m *HTTPMetrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		path := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tmpl, err := route.GetPathTemplate(); err == nil {
				path = tmpl
			}
		}

		status := strconv.Itoa(rec.status)
		requestCounter.WithLabelValues(m.serviceName, r.Method, path, status).Inc()
		requestDuration.WithLabelValues(m.serviceName, r.Method, path, status).
			Observe(time.Since(start).Seconds())

		switch {
		case rec.status >= 200 && rec.status < 300:
			statusCategoryCounter.WithLabelValues(m.serviceName, "2xx").Inc()
		case rec.status >= 400 && rec.status < 500:
			statusCategoryCounter.WithLabelValues(m.serviceName, "4xx").Inc()
		case rec.status >= 500:
			statusCategoryCounter.WithLabelValues(m.serviceName, "5xx").Inc()
		}
	})
}

// Handler exposes the registered metrics for scraping.
func Handler() http.Handler {
	return promhttp.Handler()
}
