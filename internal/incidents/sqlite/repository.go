// Package sqlite provides SQLite implementation of the incidents repository.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/iomzzz/Standards-final/internal/domain"
	"github.com/iomzzz/Standards-final/internal/incidents"
	sqlitedb "github.com/iomzzz/Standards-final/internal/pkg/sqlite"
)

// Repository implements the incidents.Repository interface using SQLite.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new SQLite repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateIncident inserts a new incident.
func (r *Repository) CreateIncident(ctx context.Context, incident *domain.Incident) error {
	query := `
		INSERT INTO incidents (id, type, description, severity, status, reported_at, reported_by)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		incident.ID,
		incident.Type,
		incident.Description,
		string(incident.Severity),
		string(incident.Status),
		sqlitedb.ToUnixMicro(incident.ReportedAt),
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
		WHERE id = ?
	`
	incident, err := scanIncident(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list incidents: %w", err)
	}
	defer func() { _ = rows.Close() }()

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
		SET type = ?, description = ?, severity = ?, status = ?, reported_by = ?
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		incident.Type,
		incident.Description,
		string(incident.Severity),
		string(incident.Status),
		incident.ReportedBy,
		incident.ID,
	)
	if err != nil {
		return fmt.Errorf("update incident: %w", err)
	}
	return requireAffected(result)
}

// DeleteIncident deletes an incident by its ID.
func (r *Repository) DeleteIncident(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM incidents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete incident: %w", err)
	}
	return requireAffected(result)
}

// CountIncidents counts incidents matching filter.
func (r *Repository) CountIncidents(ctx context.Context, filter incidents.IncidentFilter) (int, error) {
	where, args := buildWhere(filter)

	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM incidents `+where, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count incidents: %w", err)
	}
	return count, nil
}

func buildWhere(filter incidents.IncidentFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if filter.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, string(*filter.Status))
	}
	if filter.Severity != nil {
		conditions = append(conditions, "severity = ?")
		args = append(args, string(*filter.Severity))
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return incidents.ErrIncidentNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIncident(row rowScanner) (*domain.Incident, error) {
	var i domain.Incident
	var severity, status string
	var reportedAt int64
	err := row.Scan(
		&i.ID,
		&i.Type,
		&i.Description,
		&severity,
		&status,
		&reportedAt,
		&i.ReportedBy,
	)
	if err != nil {
		return nil, err
	}
	i.Severity = domain.Severity(severity)
	i.Status = domain.IncidentStatus(status)
	i.ReportedAt = sqlitedb.FromUnixMicro(reportedAt)
	return &i, nil
}
