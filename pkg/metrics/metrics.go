package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// HTTP request metrics, labelled by route template
var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "apihub_http_requests_total",
			Help: "Total number of HTTP requests by route, method and status",
		},
		[]string{"path", "method", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "apihub_http_request_duration_seconds",
			Help:    "HTTP request latency by route and method",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)
)

// UpstreamRequests counts third-party API calls by upstream and outcome
// (ok, timeout, unavailable).
var UpstreamRequests = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "apihub_upstream_requests_total",
		Help: "Third-party API calls by upstream and outcome",
	},
	[]string{"upstream", "outcome"},
)

// DatasetRecords reports how many records each bundled dataset loaded
var DatasetRecords = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "apihub_dataset_records",
		Help: "Number of records loaded per bundled dataset",
	},
	[]string{"dataset"},
)

// ShortURLs counts short URL operations by driver and operation
var ShortURLs = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "apihub_short_urls_total",
		Help: "Short URL store operations by driver, operation and result",
	},
	[]string{"driver", "operation", "result"},
)

func init() {
	prometheus.MustRegister(HTTPRequestsTotal, HTTPRequestDuration)
	prometheus.MustRegister(UpstreamRequests, DatasetRecords, ShortURLs)
}
