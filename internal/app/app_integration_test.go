//go:build integration

package app_test

import (
	"context"
	"testing"

	"github.com/iomzzz/Standards-final/internal/config"
	"github.com/iomzzz/Standards-final/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestApp_Postgres(t *testing.T) {
	ctx := context.Background()

	pg, err := testutil.NewPostgresContainer(ctx)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pg.Terminate(ctx); err != nil {
			t.Logf("terminate postgres: %v", err)
		}
	})

	cfg := testConfig()
	cfg.Database.Driver = config.DriverPostgres
	cfg.Database.URL = pg.ConnectionString
	cfg.Database.MaxOpenConns = 5
	cfg.Database.MaxIdleConns = 1
	cfg.Database.ConnectAttempts = 3

	srv := startServer(t, cfg)
	runAPIScenarios(t, newClient(t, srv.URL))
}
