// Command quality-garden runs the quality-management API and manages its schema.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/iomzzz/Standards-final/internal/app"
	"github.com/iomzzz/Standards-final/internal/config"
	"github.com/iomzzz/Standards-final/internal/version"
	"github.com/iomzzz/Standards-final/migrations"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:           "quality-garden",
		Short:         "Quality-management backend for standards and incidents",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configFile, "config", "config.yaml", "Config file path (optional)")

	loadConfig := func() (*config.Config, error) {
		cfg, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		slog.SetDefault(app.NewLogger(cfg.Log))
		return cfg, nil
	}

	root.AddCommand(newServeCmd(loadConfig))
	root.AddCommand(newMigrateCmd(loadConfig))

	return root
}

func newServeCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and metrics servers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	application, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("initialize application: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- application.Run()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

func newMigrateCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back schema migrations",
		Long: `Apply or roll back the embedded schema migrations of the configured
database.driver. serve applies pending migrations on startup for SQLite;
PostgreSQL deployments run "migrate up" before serving.`,
	}

	target := func() (migrations.Driver, string, error) {
		cfg, err := loadConfig()
		if err != nil {
			return "", "", err
		}
		switch cfg.Database.Driver {
		case config.DriverPostgres:
			return migrations.Postgres, cfg.Database.URL, nil
		case config.DriverSQLite:
			if dir := filepath.Dir(cfg.Database.SQLitePath); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return "", "", fmt.Errorf("create database directory: %w", err)
				}
			}
			return migrations.SQLite, migrations.SQLiteURL(cfg.Database.SQLitePath), nil
		default:
			return "", "", fmt.Errorf("no migrations for database.driver %q", cfg.Database.Driver)
		}
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			driver, url, err := target()
			if err != nil {
				return err
			}
			return migrations.Up(driver, url)
		},
	})

	var steps int
	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			driver, url, err := target()
			if err != nil {
				return err
			}
			return migrations.Down(driver, url, steps)
		},
	}
	downCmd.Flags().IntVar(&steps, "steps", 1, "Number of migrations to roll back (0 rolls back all)")
	migrateCmd.AddCommand(downCmd)

	return migrateCmd
}
