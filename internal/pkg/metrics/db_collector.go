package metrics

import (
	"database/sql"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolStatser reports connection pool usage for the active store.
type PoolStatser interface {
	PoolStats() PoolStats
}

// PoolStats is a driver-neutral view of connection pool state.
type PoolStats struct {
	InUse int
	Idle  int
	Max   int
}

// PgxPool adapts a pgx pool to PoolStatser.
type PgxPool struct{ *pgxpool.Pool }

// PoolStats implements PoolStatser.
func (p PgxPool) PoolStats() PoolStats {
	s := p.Stat()
	return PoolStats{InUse: int(s.AcquiredConns()), Idle: int(s.IdleConns()), Max: int(s.MaxConns())}
}

// SQLDB adapts a database/sql handle to PoolStatser.
type SQLDB struct{ *sql.DB }

// PoolStats implements PoolStatser.
func (d SQLDB) PoolStats() PoolStats {
	s := d.Stats()
	return PoolStats{InUse: s.InUse, Idle: s.Idle, Max: s.MaxOpenConnections}
}

// RecordDBPoolMetrics updates database pool metrics.
func RecordDBPoolMetrics(pool PoolStatser) {
	stats := pool.PoolStats()

	DBPoolConnections.WithLabelValues("in_use").Set(float64(stats.InUse))
	DBPoolConnections.WithLabelValues("idle").Set(float64(stats.Idle))
	DBPoolConnections.WithLabelValues("max").Set(float64(stats.Max))
}
