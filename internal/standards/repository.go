package standards

import (
	"context"

	"github.com/iomzzz/Standards-final/internal/domain"
)

// Repository defines the interface for standard storage.
// Implementations return ErrStandardNotFound when no row matches the id.
type Repository interface {
	CreateStandard(ctx context.Context, standard *domain.Standard) error
	GetStandard(ctx context.Context, id string) (*domain.Standard, error)
	ListStandards(ctx context.Context) ([]domain.Standard, error)
	UpdateStandard(ctx context.Context, standard *domain.Standard) error
	DeleteStandard(ctx context.Context, id string) error
}
