package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)
)

// Business Metrics
var (
	ItemsUsed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "items_used_total",
			Help: "Total number of item uses that ran to completion",
		},
		[]string{"guild"},
	)

	UseDenied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "item_use_denied_total",
			Help: "Total number of item uses denied by a requirement, by kind",
		},
		[]string{"kind"},
	)

	ItemsBought = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "items_bought_total",
			Help: "Total number of items bought from the shop",
		},
		[]string{"item"},
	)

	ItemsSold = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "items_sold_total",
			Help: "Total number of items sold to the shop",
		},
		[]string{"item"},
	)

	BackpackTransfers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backpack_transfers_total",
			Help: "Total number of completed backpack transfers, by direction",
		},
		[]string{"direction"},
	)

	CapacityRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "backpack_capacity_rejections_total",
			Help: "Total number of backpack deposits rejected by the capacity check",
		},
	)
)
