package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snipurl_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "snipurl_request_duration_seconds",
			Help:    "Request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "status"},
	)

	RedirectsServed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "snipurl_redirects_total",
			Help: "Total number of alias resolutions served",
		},
	)

	ClicksRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "snipurl_clicks_recorded_total",
			Help: "Click events written to the ledger",
		},
	)

	ClicksDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "snipurl_clicks_dropped_total",
			Help: "Click events dropped because the recording queue was full",
		},
	)

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snipurl_cache_hits_total",
			Help: "Redis cache hits",
		},
		[]string{"cache"}, // "alias" or "geoip"
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snipurl_cache_misses_total",
			Help: "Redis cache misses",
		},
		[]string{"cache"},
	)
)
