package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portfolio_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// CacheLookups counts cache lookups by outcome (hit|miss).
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_cache_lookups_total",
			Help: "Total number of cache lookups",
		},
		[]string{"result"},
	)

	// PageViews counts tracked analytics events by page.
	PageViews = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_page_views_total",
			Help: "Total number of tracked page views",
		},
		[]string{"page"},
	)

	// NotificationsSent counts outbound notifications by channel and result.
	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_notifications_sent_total",
			Help: "Total number of notification deliveries",
		},
		[]string{"channel", "result"},
	)
)
