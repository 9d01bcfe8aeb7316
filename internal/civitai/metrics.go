package civitai

import "github.com/prometheus/client_golang/prometheus"

var (
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "civitaid",
			Subsystem: "civitai",
			Name:      "requests_total",
			Help:      "Total number of Civitai API requests by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "civitaid",
			Subsystem: "civitai",
			Name:      "request_duration_seconds",
			Help:      "Duration of Civitai API requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
)

func init() {
	prometheus.MustRegister(requestsTotal, requestDuration)
}
