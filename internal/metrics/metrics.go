// Package metrics описывает метрики Prometheus сервиса.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests.",
		Buckets: prometheus.DefBuckets,
	}, []string{"path", "method", "status_code"})

	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests.",
	}, []string{"path", "method", "status_code"})

	uploadsRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "uploads_rejected_total",
		Help: "Total number of rejected image uploads.",
	}, []string{"reason"})

	cacheRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cache_requests_total",
		Help: "Total number of principal cache lookups.",
	}, []string{"cache_hit"})
)

// ObserveHTTPRequest учитывает HTTP-запрос
func ObserveHTTPRequest(path, method, statusCode string, duration time.Duration) {
	httpRequestDuration.WithLabelValues(path, method, statusCode).Observe(duration.Seconds())
	httpRequestsTotal.WithLabelValues(path, method, statusCode).Inc()
}

// UploadRejected учитывает отклонённую загрузку
func UploadRejected(reason string) {
	uploadsRejectedTotal.WithLabelValues(reason).Inc()
}

// ObserveCacheLookup учитывает обращение к кэшу
func ObserveCacheLookup(hit bool) {
	cacheRequestsTotal.WithLabelValues(strconv.FormatBool(hit)).Inc()
}
