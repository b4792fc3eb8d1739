// Package migrations embeds the schema migrations for each supported store
// and applies them with golang-migrate.
package migrations

import (
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // postgres:// driver
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"   // sqlite:// driver
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Driver selects a migration set. Values match database.driver in config.
type Driver string

// Supported migration sets.
const (
	Postgres Driver = "postgres"
	SQLite   Driver = "sqlite"
)

// FS holds one directory of *.sql files per driver, in golang-migrate naming.
// Both sets describe the same tables, columns and indexes.
//
//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS

// SQLiteURL returns the golang-migrate URL for a SQLite database file.
func SQLiteURL(path string) string {
	return "sqlite://" + path
}

// Up applies all pending migrations of the driver's set to databaseURL.
func Up(driver Driver, databaseURL string) error {
	return run(driver, databaseURL, func(m *migrate.Migrate) error { return m.Up() })
}

// Down rolls back the given number of migrations. steps <= 0 rolls back all of them.
func Down(driver Driver, databaseURL string, steps int) error {
	return run(driver, databaseURL, func(m *migrate.Migrate) error {
		if steps <= 0 {
			return m.Down()
		}
		return m.Steps(-steps)
	})
}

func run(driver Driver, databaseURL string, apply func(m *migrate.Migrate) error) error {
	switch driver {
	case Postgres, SQLite:
	default:
		return fmt.Errorf("no migrations for driver %q", driver)
	}

	source, err := iofs.New(FS, string(driver))
	if err != nil {
		return fmt.Errorf("open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, databaseURL)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			slog.Warn("close migrator", "source_error", srcErr, "database_error", dbErr)
		}
	}()

	if err := apply(m); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			slog.Debug("migrations: no change", "driver", driver)
			return nil
		}
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		slog.Info("migrations applied", "driver", driver, "version", "none")
	case err != nil:
		return fmt.Errorf("read migration version: %w", err)
	default:
		slog.Info("migrations applied", "driver", driver, "version", version, "dirty", dirty)
	}
	return nil
}
