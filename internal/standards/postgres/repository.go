// Package postgres provides PostgreSQL implementation of the standards repository.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/iomzzz/Standards-final/internal/domain"
	"github.com/iomzzz/Standards-final/internal/standards"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository implements the standards.Repository interface using PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CreateStandard inserts a new standard.
func (r *Repository) CreateStandard(ctx context.Context, standard *domain.Standard) error {
	query := `
		INSERT INTO standards (id, title, category, content, version, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query,
		standard.ID,
		standard.Title,
		standard.Category,
		standard.Content,
		standard.Version,
		standard.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("insert standard: %w", err)
	}
	return nil
}

// GetStandard retrieves a standard by its ID.
func (r *Repository) GetStandard(ctx context.Context, id string) (*domain.Standard, error) {
	query := `
		SELECT id, title, category, content, version, last_updated
		FROM standards
		WHERE id = $1
	`
	standard, err := scanStandard(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, standards.ErrStandardNotFound
		}
		return nil, fmt.Errorf("get standard: %w", err)
	}
	return standard, nil
}

// ListStandards retrieves all standards, most recently updated first.
func (r *Repository) ListStandards(ctx context.Context) ([]domain.Standard, error) {
	query := `
		SELECT id, title, category, content, version, last_updated
		FROM standards
		ORDER BY last_updated DESC, id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list standards: %w", err)
	}
	defer rows.Close()

	result := make([]domain.Standard, 0)
	for rows.Next() {
		standard, err := scanStandard(rows)
		if err != nil {
			return nil, fmt.Errorf("scan standard: %w", err)
		}
		result = append(result, *standard)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate standards: %w", err)
	}

	return result, nil
}

// UpdateStandard overwrites the mutable fields of an existing standard.
func (r *Repository) UpdateStandard(ctx context.Context, standard *domain.Standard) error {
	query := `
		UPDATE standards
		SET title = $2, category = $3, content = $4, version = $5, last_updated = $6
		WHERE id = $1
	`
	result, err := r.db.Exec(ctx, query,
		standard.ID,
		standard.Title,
		standard.Category,
		standard.Content,
		standard.Version,
		standard.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("update standard: %w", err)
	}
	if result.RowsAffected() == 0 {
		return standards.ErrStandardNotFound
	}
	return nil
}

// DeleteStandard deletes a standard by its ID.
func (r *Repository) DeleteStandard(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM standards WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete standard: %w", err)
	}
	if result.RowsAffected() == 0 {
		return standards.ErrStandardNotFound
	}
	return nil
}

func scanStandard(row pgx.Row) (*domain.Standard, error) {
	var s domain.Standard
	err := row.Scan(
		&s.ID,
		&s.Title,
		&s.Category,
		&s.Content,
		&s.Version,
		&s.LastUpdated,
	)
	if err != nil {
		return nil, err
	}
	s.LastUpdated = s.LastUpdated.UTC()
	return &s, nil
}
