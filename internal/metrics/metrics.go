// Package metrics exposes Prometheus collectors for the scraper service.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	scrapeRequestsTotal        *prometheus.CounterVec
	scrapeBlocksTotal          prometheus.Counter
	scrapeRetriesTotal         prometheus.Counter
	scrapeSessionsCreatedTotal prometheus.Counter
	scrapeBrowserRendersTotal  *prometheus.CounterVec
	scrapeDurationSeconds      prometheus.Histogram
	httpRequestsTotal          *prometheus.CounterVec
	httpRequestDurationSeconds *prometheus.HistogramVec

	once sync.Once
)

// Init initializes the Prometheus metrics collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		scrapeRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scraper_requests_total",
				Help: "Total number of upstream fetch attempts, labeled by outcome.",
			},
			[]string{"outcome"},
		)

		scrapeBlocksTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "scraper_blocks_total",
				Help: "Total number of anti-bot blocks detected.",
			},
		)

		scrapeRetriesTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "scraper_retries_total",
				Help: "Total number of retries performed against the upstream site.",
			},
		)

		scrapeSessionsCreatedTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "scraper_sessions_created_total",
				Help: "Total number of anti-detection sessions constructed.",
			},
		)

		scrapeBrowserRendersTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scraper_browser_renders_total",
				Help: "Total number of headless browser renders, labeled by outcome.",
			},
			[]string{"outcome"},
		)

		scrapeDurationSeconds = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "scraper_request_duration_seconds",
				Help:    "Histogram of upstream request latencies.",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
		)

		httpRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests, labeled by method and code.",
			},
			[]string{"method", "code"},
		)

		httpRequestDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Histogram of HTTP request latencies, labeled by method and route.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 15, 60},
			},
			[]string{"method", "route"},
		)
	})
}

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveScrape records one upstream fetch attempt.
func ObserveScrape(success bool, blocked bool, duration time.Duration) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	scrapeRequestsTotal.WithLabelValues(outcome).Inc()
	if blocked {
		scrapeBlocksTotal.Inc()
	}
	if duration > 0 {
		scrapeDurationSeconds.Observe(duration.Seconds())
	}
}

// ObserveRetry increments the retry counter.
func ObserveRetry() {
	scrapeRetriesTotal.Inc()
}

// ObserveSessionCreated increments the session construction counter.
func ObserveSessionCreated() {
	scrapeSessionsCreatedTotal.Inc()
}

// ObserveBrowserRender records one headless render attempt.
func ObserveBrowserRender(success bool) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	scrapeBrowserRendersTotal.WithLabelValues(outcome).Inc()
}

// ObserveHTTPRequest increments the inbound HTTP request metrics.
func ObserveHTTPRequest(method, route string, code int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, strconv.Itoa(code)).Inc()
	httpRequestDurationSeconds.WithLabelValues(method, route).Observe(duration.Seconds())
}
