package changefeed

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var changesPublished = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "qualitygarden",
		Subsystem: "changefeed",
		Name:      "published_total",
		Help:      "Total change records published by resource and outcome",
	},
	[]string{"resource", "status"},
)

func recordPublished(resource, status string) {
	changesPublished.WithLabelValues(resource, status).Inc()
}
