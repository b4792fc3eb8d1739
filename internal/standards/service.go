package standards

import (
	"context"
	"fmt"
	"time"

	"github.com/iomzzz/Standards-final/internal/changefeed"
	"github.com/iomzzz/Standards-final/internal/domain"
	"github.com/iomzzz/Standards-final/internal/pkg/ctxlog"
)

// Service implements standard business logic.
type Service struct {
	repo      Repository
	publisher changefeed.Publisher
	now       func() time.Time
}

// NewService creates a new standard service.
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

// CreateStandardInput holds the client-writable fields of a new standard.
type CreateStandardInput struct {
	Title    string
	Category string
	Content  string
	Version  string
}

// UpdateStandardInput holds the fields to change. Nil fields keep their stored value.
type UpdateStandardInput struct {
	Title    *string
	Category *string
	Content  *string
	Version  *string
}

// CreateStandard validates and stores a new standard.
func (s *Service) CreateStandard(ctx context.Context, input CreateStandardInput) (*domain.Standard, error) {
	version := input.Version
	if version == "" {
		version = domain.DefaultStandardVersion
	}

	standard := &domain.Standard{
		ID:          domain.NewID(),
		Title:       input.Title,
		Category:    input.Category,
		Content:     input.Content,
		Version:     version,
		LastUpdated: s.now(),
	}

	if err := standard.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.CreateStandard(ctx, standard); err != nil {
		return nil, fmt.Errorf("create standard: %w", err)
	}

	s.publish(ctx, changefeed.ActionCreated, standard)

	return standard, nil
}

// GetStandard returns the standard with the given id.
func (s *Service) GetStandard(ctx context.Context, id string) (*domain.Standard, error) {
	canonical, ok := domain.CanonicalID(id)
	if !ok {
		return nil, ErrStandardNotFound
	}
	return s.repo.GetStandard(ctx, canonical)
}

// ListStandards returns all standards.
func (s *Service) ListStandards(ctx context.Context) ([]domain.Standard, error) {
	return s.repo.ListStandards(ctx)
}

// UpdateStandard applies input to the stored standard and re-stamps LastUpdated.
func (s *Service) UpdateStandard(ctx context.Context, id string, input UpdateStandardInput) (*domain.Standard, error) {
	standard, err := s.GetStandard(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		standard.Title = *input.Title
	}
	if input.Category != nil {
		standard.Category = *input.Category
	}
	if input.Content != nil {
		standard.Content = *input.Content
	}
	if input.Version != nil {
		standard.Version = *input.Version
	}

	if err := standard.Validate(); err != nil {
		return nil, err
	}

	// Never move backwards, even if the wall clock does.
	now := s.now()
	if now.Before(standard.LastUpdated) {
		now = standard.LastUpdated
	}
	standard.LastUpdated = now

	if err := s.repo.UpdateStandard(ctx, standard); err != nil {
		return nil, err
	}

	s.publish(ctx, changefeed.ActionUpdated, standard)

	return standard, nil
}

// DeleteStandard permanently removes the standard with the given id.
func (s *Service) DeleteStandard(ctx context.Context, id string) error {
	canonical, ok := domain.CanonicalID(id)
	if !ok {
		return ErrStandardNotFound
	}

	if err := s.repo.DeleteStandard(ctx, canonical); err != nil {
		return err
	}

	s.publish(ctx, changefeed.ActionDeleted, &domain.Standard{ID: canonical})

	return nil
}

func (s *Service) publish(ctx context.Context, action changefeed.Action, standard *domain.Standard) {
	summary := ""
	if action != changefeed.ActionDeleted {
		summary = standard.String()
	}

	change := changefeed.Change{
		Resource:   changefeed.ResourceStandard,
		Action:     action,
		ID:         standard.ID,
		Summary:    summary,
		OccurredAt: s.now(),
	}
	if err := s.publisher.Publish(ctx, change); err != nil {
		ctxlog.FromContext(ctx).Error("failed to publish standard change",
			"standard_id", standard.ID,
			"action", action,
			"error", err,
		)
	}
}
