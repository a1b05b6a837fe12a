// Package metrics holds the Prometheus collectors exported at /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "labtracker"

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route and method.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	QuoteStatusChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quote_status_changes_total",
		Help:      "Quote status writes by target status.",
	}, []string{"status"})

	UsageItemsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "usage_items_recorded_total",
		Help:      "Items added to monthly usage records.",
	})

	UsageItemsReleased = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "usage_items_released_total",
		Help:      "Metered items given back after a send did not complete.",
	})

	UsageLimitRejections = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "usage_limit_rejections_total",
		Help:      "Sends refused because the monthly limit would be exceeded.",
	})

	Panics = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recovered_panics_total",
		Help:      "Panics caught by the recovery middleware.",
	})

	ImpersonationChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "impersonation_changes_total",
		Help:      "Impersonation starts and stops by kind; stops are counted as none.",
	}, []string{"kind"})

	RealtimeSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "realtime_subscribers",
		Help:      "Open realtime change-feed subscriptions.",
	})
)

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
