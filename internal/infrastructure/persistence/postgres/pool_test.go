package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/BolivianProgrammer/RazorPedidos/internal/config"
)

// Integration test: needs a reachable Postgres from the environment.
func TestNewPool_WithEnv(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	cfg, err := config.Load()
	require.NoError(t, err, "load config failed")

	pool, err := NewPool(cfg.DB)
	require.NoError(t, err, "NewPool failed")
	require.NotNil(t, pool, "pool should not be nil")

	defer pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, pool.Ping(ctx), "ping database failed")
	require.NoError(t, EnsureSchema(ctx, pool), "ensure schema failed")
}
