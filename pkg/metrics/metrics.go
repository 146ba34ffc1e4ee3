package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "places_admin",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests handled, by method and status code.",
	}, []string{"method", "code"})
	RequestDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "places_admin",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	})
)

// Init registers collectors; call once from main.
func Init() {
	prometheus.MustRegister(RequestsTotal, RequestDuration)
}

// Handler exposes the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Instrument counts requests and observes latency for the wrapped handler.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		RequestsTotal.WithLabelValues(r.Method, strconv.Itoa(rec.status)).Inc()
		RequestDuration.Observe(time.Since(start).Seconds())
	})
}
