package scan

import "github.com/prometheus/client_golang/prometheus"

var filesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "civitaid",
		Subsystem: "scan",
		Name:      "files_total",
		Help:      "Files processed by scan batches by operation and result",
	},
	[]string{"op", "result"},
)

func init() {
	prometheus.MustRegister(filesTotal)
}
