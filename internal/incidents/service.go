package incidents

import (
	"context"
	"fmt"
	"time"

	"github.com/iomzzz/Standards-final/internal/changefeed"
	"github.com/iomzzz/Standards-final/internal/domain"
	"github.com/iomzzz/Standards-final/internal/pkg/ctxlog"
)

// Service implements incident business logic.
type Service struct {
	repo      Repository
	publisher changefeed.Publisher
	now       func() time.Time
}

// NewService creates a new incident service.
// A nil publisher disables the change feed.
func NewService(repo Repository, publisher changefeed.Publisher) *Service {
	if publisher == nil {
		publisher = changefeed.NopPublisher{}
	}
	return &Service{
		repo:      repo,
		publisher: publisher,
		now:       domain.Now,
	}
}

// CreateIncidentInput holds the client-writable fields of a new incident.
// Empty Severity, Status and ReportedBy take their defaults.
type CreateIncidentInput struct {
	Type        string
	Description string
	Severity    string
	Status      string
	ReportedBy  string
}

// UpdateIncidentInput holds the fields to change. Nil fields keep their stored value.
// ReportedAt is fixed at creation and has no counterpart here.
type UpdateIncidentInput struct {
	Type        *string
	Description *string
	Severity    *string
	Status      *string
	ReportedBy  *string
}

// CreateIncident validates and stores a new incident.
func (s *Service) CreateIncident(ctx context.Context, input CreateIncidentInput) (*domain.Incident, error) {
	severity, err := domain.ParseSeverity(input.Severity)
	if err != nil {
		return nil, err
	}
	status, err := domain.ParseIncidentStatus(input.Status)
	if err != nil {
		return nil, err
	}

	reportedBy := input.ReportedBy
	if reportedBy == "" {
		reportedBy = domain.DefaultReporter
	}

	incident := &domain.Incident{
		ID:          domain.NewID(),
		Type:        input.Type,
		Description: input.Description,
		Severity:    severity,
		Status:      status,
		ReportedAt:  s.now(),
		ReportedBy:  reportedBy,
	}

	if err := incident.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.CreateIncident(ctx, incident); err != nil {
		return nil, fmt.Errorf("create incident: %w", err)
	}

	s.publish(ctx, changefeed.ActionCreated, incident)

	return incident, nil
}

// GetIncident returns the incident with the given id.
func (s *Service) GetIncident(ctx context.Context, id string) (*domain.Incident, error) {
	canonical, ok := domain.CanonicalID(id)
	if !ok {
		return nil, ErrIncidentNotFound
	}
	return s.repo.GetIncident(ctx, canonical)
}

// ListIncidents returns incidents matching filter, most recently reported first.
func (s *Service) ListIncidents(ctx context.Context, filter IncidentFilter) ([]domain.Incident, error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, &domain.ValidationError{Field: "status", Message: fmt.Sprintf("%q is not a valid choice", *filter.Status)}
	}
	if filter.Severity != nil && !filter.Severity.IsValid() {
		return nil, &domain.ValidationError{Field: "severity", Message: fmt.Sprintf("%q is not a valid choice", *filter.Severity)}
	}
	return s.repo.ListIncidents(ctx, filter)
}

// UpdateIncident applies input to the stored incident. ReportedAt is never changed.
func (s *Service) UpdateIncident(ctx context.Context, id string, input UpdateIncidentInput) (*domain.Incident, error) {
	incident, err := s.GetIncident(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Type != nil {
		incident.Type = *input.Type
	}
	if input.Description != nil {
		incident.Description = *input.Description
	}
	if input.Severity != nil {
		incident.Severity = domain.Severity(*input.Severity)
	}
	if input.Status != nil {
		incident.Status = domain.IncidentStatus(*input.Status)
	}
	if input.ReportedBy != nil {
		incident.ReportedBy = *input.ReportedBy
		if incident.ReportedBy == "" {
			incident.ReportedBy = domain.DefaultReporter
		}
	}

	if err := incident.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateIncident(ctx, incident); err != nil {
		return nil, err
	}

	s.publish(ctx, changefeed.ActionUpdated, incident)

	return incident, nil
}

// DeleteIncident permanently removes the incident with the given id.
func (s *Service) DeleteIncident(ctx context.Context, id string) error {
	canonical, ok := domain.CanonicalID(id)
	if !ok {
		return ErrIncidentNotFound
	}

	if err := s.repo.DeleteIncident(ctx, canonical); err != nil {
		return err
	}

	s.publish(ctx, changefeed.ActionDeleted, &domain.Incident{ID: canonical})

	return nil
}

func (s *Service) publish(ctx context.Context, action changefeed.Action, incident *domain.Incident) {
	summary := ""
	if action != changefeed.ActionDeleted {
		summary = incident.String()
	}

	change := changefeed.Change{
		Resource:   changefeed.ResourceIncident,
		Action:     action,
		ID:         incident.ID,
		Summary:    summary,
		OccurredAt: s.now(),
	}
	if err := s.publisher.Publish(ctx, change); err != nil {
		ctxlog.FromContext(ctx).Error("failed to publish incident change",
			"incident_id", incident.ID,
			"action", action,
			"error", err,
		)
	}
}
