package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/iomzzz/Standards-final/internal/domain"
	"github.com/iomzzz/Standards-final/internal/incidents"
	sqlitedb "github.com/iomzzz/Standards-final/internal/pkg/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	db, err := sqlitedb.Open(context.Background(), sqlitedb.Config{
		Path: filepath.Join(t.TempDir(), "incidents.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db)
}

func newIncident(typ string, sev domain.Severity, status domain.IncidentStatus, at time.Time) *domain.Incident {
	return &domain.Incident{
		ID:          domain.NewID(),
		Type:        typ,
		Description: "details",
		Severity:    sev,
		Status:      status,
		ReportedAt:  at,
		ReportedBy:  domain.DefaultReporter,
	}
}

func TestRepository_CreateAndGet(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	i := newIncident("Spill", domain.SeverityHigh, domain.IncidentStatusOpen, domain.Now())

	require.NoError(t, repo.CreateIncident(ctx, i))

	got, err := repo.GetIncident(ctx, i.ID)
	require.NoError(t, err)
	assert.Equal(t, i, got)

	_, err = repo.GetIncident(ctx, domain.NewID())
	assert.ErrorIs(t, err, incidents.ErrIncidentNotFound)
}

func TestRepository_RejectsInvalidEnum(t *testing.T) {
	repo := newTestRepository(t)
	i := newIncident("Spill", "URGENT", domain.IncidentStatusOpen, domain.Now())

	assert.Error(t, repo.CreateIncident(context.Background(), i))
}

func TestRepository_ListAndCount(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	base := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

	seed := []*domain.Incident{
		newIncident("first", domain.SeverityLow, domain.IncidentStatusOpen, base),
		newIncident("second", domain.SeverityHigh, domain.IncidentStatusResolved, base.Add(time.Hour)),
		newIncident("third", domain.SeverityHigh, domain.IncidentStatusOpen, base.Add(2*time.Hour)),
	}
	for _, i := range seed {
		require.NoError(t, repo.CreateIncident(ctx, i))
	}

	list, err := repo.ListIncidents(ctx, incidents.IncidentFilter{})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "third", list[0].Type)
	assert.Equal(t, "second", list[1].Type)
	assert.Equal(t, "first", list[2].Type)

	open := domain.IncidentStatusOpen
	high := domain.SeverityHigh

	list, err = repo.ListIncidents(ctx, incidents.IncidentFilter{Status: &open, Severity: &high})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "third", list[0].Type)

	total, err := repo.CountIncidents(ctx, incidents.IncidentFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	openCount, err := repo.CountIncidents(ctx, incidents.IncidentFilter{Status: &open})
	require.NoError(t, err)
	assert.Equal(t, 2, openCount)
}

func TestRepository_UpdateKeepsReportedAt(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	reportedAt := time.Date(2026, 6, 1, 10, 0, 0, 123456000, time.UTC)
	i := newIncident("Spill", domain.SeverityLow, domain.IncidentStatusOpen, reportedAt)
	require.NoError(t, repo.CreateIncident(ctx, i))

	i.Status = domain.IncidentStatusResolved
	i.ReportedAt = reportedAt.Add(48 * time.Hour)
	require.NoError(t, repo.UpdateIncident(ctx, i))

	got, err := repo.GetIncident(ctx, i.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.IncidentStatusResolved, got.Status)
	assert.True(t, reportedAt.Equal(got.ReportedAt))

	missing := newIncident("ghost", domain.SeverityLow, domain.IncidentStatusOpen, reportedAt)
	assert.ErrorIs(t, repo.UpdateIncident(ctx, missing), incidents.ErrIncidentNotFound)
}

func TestRepository_Delete(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	i := newIncident("Spill", domain.SeverityLow, domain.IncidentStatusOpen, domain.Now())
	require.NoError(t, repo.CreateIncident(ctx, i))

	assert.ErrorIs(t, repo.DeleteIncident(ctx, domain.NewID()), incidents.ErrIncidentNotFound)

	n, err := repo.CountIncidents(ctx, incidents.IncidentFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, repo.DeleteIncident(ctx, i.ID))
	n, err = repo.CountIncidents(ctx, incidents.IncidentFilter{})
	require.NoError(t, err)
	assert.Zero(t, n)
}
