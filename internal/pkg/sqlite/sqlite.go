// Package sqlite provides the embedded SQLite store used for single-node deployments.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/iomzzz/Standards-final/migrations"
	_ "modernc.org/sqlite"
)

// Config contains SQLite connection configuration.
type Config struct {
	Path         string
	BusyTimeout  time.Duration
	MaxOpenConns int
}

// Open opens (creating if needed) the database file after applying the
// embedded SQLite migrations to it.
func Open(ctx context.Context, cfg Config) (*sql.DB, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	if cfg.BusyTimeout <= 0 {
		cfg.BusyTimeout = 5 * time.Second
	}
	if cfg.MaxOpenConns <= 0 {
		cfg.MaxOpenConns = 1
	}

	if dir := filepath.Dir(cfg.Path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	if err := migrations.Up(migrations.SQLite, migrations.SQLiteURL(cfg.Path)); err != nil {
		return nil, fmt.Errorf("migrate sqlite database: %w", err)
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// A single writer avoids SQLITE_BUSY under concurrent requests.
	db.SetMaxOpenConns(cfg.MaxOpenConns)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		fmt.Sprintf("PRAGMA busy_timeout=%d", cfg.BusyTimeout.Milliseconds()),
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply %q: %w", p, err)
		}
	}

	slog.Info("opened sqlite database", "path", cfg.Path)
	return db, nil
}

// ToUnixMicro converts a timestamp to its stored form.
func ToUnixMicro(t time.Time) int64 {
	return t.UnixMicro()
}

// FromUnixMicro converts a stored timestamp back to UTC time.
func FromUnixMicro(v int64) time.Time {
	return time.UnixMicro(v).UTC()
}
