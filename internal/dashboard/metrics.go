package dashboard

import (
	"github.com/iomzzz/Standards-final/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "qualitygarden"

var (
	complianceScore = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "dashboard",
			Name:      "compliance_score",
			Help:      "Compliance score from the latest dashboard computation",
		},
	)

	incidentsByState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "dashboard",
			Name:      "incidents",
			Help:      "Incident counts from the latest dashboard computation",
		},
		[]string{"state"},
	)
)

func recordStats(stats domain.DashboardStats) {
	complianceScore.Set(float64(stats.ComplianceScore))
	incidentsByState.WithLabelValues("total").Set(float64(stats.TotalIncidents))
	incidentsByState.WithLabelValues("open").Set(float64(stats.OpenIncidents))
}
