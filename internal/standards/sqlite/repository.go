// Package sqlite provides SQLite implementation of the standards repository.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iomzzz/Standards-final/internal/domain"
	sqlitedb "github.com/iomzzz/Standards-final/internal/pkg/sqlite"
	"github.com/iomzzz/Standards-final/internal/standards"
)

// Repository implements the standards.Repository interface using SQLite.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new SQLite repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateStandard inserts a new standard.
func (r *Repository) CreateStandard(ctx context.Context, standard *domain.Standard) error {
	query := `
		INSERT INTO standards (id, title, category, content, version, last_updated)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		standard.ID,
		standard.Title,
		standard.Category,
		standard.Content,
		standard.Version,
		sqlitedb.ToUnixMicro(standard.LastUpdated),
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
		WHERE id = ?
	`
	standard, err := scanStandard(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list standards: %w", err)
	}
	defer func() { _ = rows.Close() }()

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
		SET title = ?, category = ?, content = ?, version = ?, last_updated = ?
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		standard.Title,
		standard.Category,
		standard.Content,
		standard.Version,
		sqlitedb.ToUnixMicro(standard.LastUpdated),
		standard.ID,
	)
	if err != nil {
		return fmt.Errorf("update standard: %w", err)
	}
	return requireAffected(result)
}

// DeleteStandard deletes a standard by its ID.
func (r *Repository) DeleteStandard(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM standards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete standard: %w", err)
	}
	return requireAffected(result)
}

func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return standards.ErrStandardNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStandard(row rowScanner) (*domain.Standard, error) {
	var s domain.Standard
	var lastUpdated int64
	err := row.Scan(
		&s.ID,
		&s.Title,
		&s.Category,
		&s.Content,
		&s.Version,
		&lastUpdated,
	)
	if err != nil {
		return nil, err
	}
	s.LastUpdated = sqlitedb.FromUnixMicro(lastUpdated)
	return &s, nil
}
