package domain

// System status values reported on the dashboard.
const (
	SystemStatusHealthy         = "Healthy"
	SystemStatusAttentionNeeded = "Attention Needed"
)

// DashboardStats is a read-only snapshot of compliance health.
type DashboardStats struct {
	ComplianceScore int    `json:"compliance_score"`
	TotalIncidents  int    `json:"total_incidents"`
	OpenIncidents   int    `json:"open_incidents"`
	SystemStatus    string `json:"system_status"`
}
