// Package postgres provides PostgreSQL implementation of the incidents repository.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/iomzzz/Standards-final/internal/domain"
	"github.com/iomzzz/Standards-final/internal/incidents"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository implements the incidents.Repository interface using PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CreateIncident inserts a new incident.
func (r *Repository) CreateIncident(ctx context.Context, incident *domain.Incident) error {
	query := `
		INSERT INTO incidents (id, type, description, severity, status, reported_at, reported_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query,
		incident.ID,
		incident.Type,
		incident.Description,
		incident.Severity,
		incident.Status,
		incident.ReportedAt,
		incident.ReportedBy,
	)
	if err != nil {
		return fmt.Errorf("insert incident: %w", err)
	}
	return nil
}

// GetIncident retrieves an incident by its ID.
func (r *Repository) GetIncident(ctx context.Context, id string) (*domain.Incident, error) {
	query := `
		SELECT id, type, description, severity, status, reported_at, reported_by
		FROM incidents
		WHERE id = $1
	`
	incident, err := scanIncident(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, incidents.ErrIncidentNotFound
		}
		return nil, fmt.Errorf("get incident: %w", err)
	}
	return incident, nil
}

// ListIncidents retrieves incidents matching filter, most recently reported first.
func (r *Repository) ListIncidents(ctx context.Context, filter incidents.IncidentFilter) ([]domain.Incident, error) {
	where, args := buildWhere(filter)
	query := `
		SELECT id, type, description, severity, status, reported_at, reported_by
		FROM incidents
	` + where + `
		ORDER BY reported_at DESC, id
	`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list incidents: %w", err)
	}
	defer rows.Close()

	result := make([]domain.Incident, 0)
	for rows.Next() {
		incident, err := scanIncident(rows)
		if err != nil {
			return nil, fmt.Errorf("scan incident: %w", err)
		}
		result = append(result, *incident)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate incidents: %w", err)
	}

	return result, nil
}

// UpdateIncident overwrites the mutable fields of an existing incident.
// reported_at is not part of the statement.
func (r *Repository) UpdateIncident(ctx context.Context, incident *domain.Incident) error {
	query := `
		UPDATE incidents
		SET type = $2, description = $3, severity = $4, status = $5, reported_by = $6
		WHERE id = $1
		RETURNING reported_at
	`
	err := r.db.QueryRow(ctx, query,
		incident.ID,
		incident.Type,
		incident.Description,
		incident.Severity,
		incident.Status,
		incident.ReportedBy,
	).Scan(&incident.ReportedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return incidents.ErrIncidentNotFound
		}
		return fmt.Errorf("update incident: %w", err)
	}
	incident.ReportedAt = incident.ReportedAt.UTC()
	return nil
}

// DeleteIncident deletes an incident by its ID.
func (r *Repository) DeleteIncident(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM incidents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete incident: %w", err)
	}
	if result.RowsAffected() == 0 {
		return incidents.ErrIncidentNotFound
	}
	return nil
}

// CountIncidents counts incidents matching filter.
func (r *Repository) CountIncidents(ctx context.Context, filter incidents.IncidentFilter) (int, error) {
	where, args := buildWhere(filter)

	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM incidents `+where, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count incidents: %w", err)
	}
	return count, nil
}

func buildWhere(filter incidents.IncidentFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Severity != nil {
		args = append(args, string(*filter.Severity))
		conditions = append(conditions, fmt.Sprintf("severity = $%d", len(args)))
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

func scanIncident(row pgx.Row) (*domain.Incident, error) {
	var i domain.Incident
	err := row.Scan(
		&i.ID,
		&i.Type,
		&i.Description,
		&i.Severity,
		&i.Status,
		&i.ReportedAt,
		&i.ReportedBy,
	)
	if err != nil {
		return nil, err
	}
	i.ReportedAt = i.ReportedAt.UTC()
	return &i, nil
}
