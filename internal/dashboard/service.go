// Package dashboard computes the aggregate quality snapshot shown on the home page.
package dashboard

import (
	"context"
	"fmt"

	"github.com/iomzzz/Standards-final/internal/domain"
	"github.com/iomzzz/Standards-final/internal/incidents"
	"golang.org/x/sync/errgroup"
)

const (
	maxComplianceScore  = 100
	openIncidentPenalty = 5
)

// IncidentCounter counts stored incidents matching a filter.
type IncidentCounter interface {
	CountIncidents(ctx context.Context, filter incidents.IncidentFilter) (int, error)
}

// Service computes dashboard statistics.
type Service struct {
	counter IncidentCounter
}

// NewService creates a new dashboard service.
func NewService(counter IncidentCounter) *Service {
	return &Service{counter: counter}
}

// Stats counts all and open incidents and derives the snapshot from them.
// Any store failure is reported as ErrStatsUnavailable.
func (s *Service) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	var total, open int

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.counter.CountIncidents(gctx, incidents.IncidentFilter{})
		if err != nil {
			return fmt.Errorf("count incidents: %w", err)
		}
		total = n
		return nil
	})
	g.Go(func() error {
		status := domain.IncidentStatusOpen
		n, err := s.counter.CountIncidents(gctx, incidents.IncidentFilter{Status: &status})
		if err != nil {
			return fmt.Errorf("count open incidents: %w", err)
		}
		open = n
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStatsUnavailable, err)
	}

	stats := ComputeStats(total, open)
	recordStats(stats)

	return &stats, nil
}

// ComputeStats derives the snapshot from incident counts.
// Each open incident costs five points; the score never drops below zero.
func ComputeStats(total, open int) domain.DashboardStats {
	score := max(0, maxComplianceScore-openIncidentPenalty*open)

	status := domain.SystemStatusHealthy
	if open > 0 {
		status = domain.SystemStatusAttentionNeeded
	}

	return domain.DashboardStats{
		ComplianceScore: score,
		TotalIncidents:  total,
		OpenIncidents:   open,
		SystemStatus:    status,
	}
}
