package incidents

import (
	"context"

	"github.com/iomzzz/Standards-final/internal/domain"
)

// Repository defines the interface for incident storage.
// Implementations return ErrIncidentNotFound when no row matches the id.
type Repository interface {
	CreateIncident(ctx context.Context, incident *domain.Incident) error
	GetIncident(ctx context.Context, id string) (*domain.Incident, error)
	// ListIncidents returns matching incidents, newest reported_at first.
	ListIncidents(ctx context.Context, filter IncidentFilter) ([]domain.Incident, error)
	// UpdateIncident never writes reported_at.
	UpdateIncident(ctx context.Context, incident *domain.Incident) error
	DeleteIncident(ctx context.Context, id string) error
	CountIncidents(ctx context.Context, filter IncidentFilter) (int, error)
}

// IncidentFilter holds filter options for listing and counting incidents.
type IncidentFilter struct {
	Status   *domain.IncidentStatus
	Severity *domain.Severity
}
