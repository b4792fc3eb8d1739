package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iomzzz/Standards-final/internal/config"
	"github.com/iomzzz/Standards-final/internal/incidents"
	incidentspostgres "github.com/iomzzz/Standards-final/internal/incidents/postgres"
	incidentssqlite "github.com/iomzzz/Standards-final/internal/incidents/sqlite"
	"github.com/iomzzz/Standards-final/internal/pkg/metrics"
	"github.com/iomzzz/Standards-final/internal/pkg/postgres"
	"github.com/iomzzz/Standards-final/internal/pkg/sqlite"
	"github.com/iomzzz/Standards-final/internal/standards"
	standardspostgres "github.com/iomzzz/Standards-final/internal/standards/postgres"
	standardssqlite "github.com/iomzzz/Standards-final/internal/standards/sqlite"
	"github.com/jackc/pgx/v5/pgxpool"
)

// store bundles the repositories of the configured driver with its
// lifecycle hooks.
type store struct {
	driver    string
	standards standards.Repository
	incidents incidents.Repository
	pool      metrics.PoolStatser
	ping      func(ctx context.Context) error
	close     func()
}

func openStore(ctx context.Context, cfg config.DatabaseConfig) (*store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := postgres.Connect(ctx, postgres.Config{
			URL:             cfg.URL,
			MaxOpenConns:    cfg.MaxOpenConns,
			MaxIdleConns:    cfg.MaxIdleConns,
			ConnMaxLifetime: cfg.ConnMaxLifetime,
			ConnectAttempts: cfg.ConnectAttempts,
		})
		if err != nil {
			return nil, err
		}
		return newPostgresStore(pool), nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, sqlite.Config{Path: cfg.SQLitePath})
		if err != nil {
			return nil, err
		}
		return newSQLiteStore(db), nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func newPostgresStore(pool *pgxpool.Pool) *store {
	return &store{
		driver:    config.DriverPostgres,
		standards: standardspostgres.NewRepository(pool),
		incidents: incidentspostgres.NewRepository(pool),
		pool:      metrics.PgxPool{Pool: pool},
		ping:      pool.Ping,
		close:     pool.Close,
	}
}

func newSQLiteStore(db *sql.DB) *store {
	return &store{
		driver:    config.DriverSQLite,
		standards: standardssqlite.NewRepository(db),
		incidents: incidentssqlite.NewRepository(db),
		pool:      metrics.SQLDB{DB: db},
		ping:      db.PingContext,
		close:     func() { _ = db.Close() },
	}
}
