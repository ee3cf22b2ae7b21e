package metrics

import "github.com/prometheus/client_golang/prometheus"

// UnmatchedRoute 未命中路由统一归到一个 label，扫描器不会把基数撑爆
const UnmatchedRoute = "<unmatched>"

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "HTTP requests by route template"},
		[]string{"route", "method", "status"},
	)
	// chatbot 请求等 LLM，桶上限放到 60s
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route template",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"route", "method"},
	)
	HTTPInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "http_requests_in_flight", Help: "Requests currently being served"},
	)
)

func init() { prometheus.MustRegister(HTTPRequests, HTTPLatency, HTTPInFlight) }
