package metrics

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exports database pool statistics. Request-level metrics are
// recorded by the HTTP middleware.
type Metrics struct {
	DBConnectionsTotal prometheus.GaugeFunc
	DBConnectionsIdle  prometheus.GaugeFunc
	DBConnectionsMax   prometheus.GaugeFunc
	DBAcquireCount     prometheus.CounterFunc
	DBEmptyAcquires    prometheus.CounterFunc
}

// New registers pool statistics gauges on the default registry.
func New(pool *pgxpool.Pool) *Metrics {
	return &Metrics{
		DBConnectionsTotal: promauto.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "accounting_db_connections_total",
			Help: "Current number of database connections in the pool",
		}, func() float64 {
			return float64(pool.Stat().TotalConns())
		}),
		DBConnectionsIdle: promauto.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "accounting_db_connections_idle",
			Help: "Current number of idle database connections",
		}, func() float64 {
			return float64(pool.Stat().IdleConns())
		}),
		DBConnectionsMax: promauto.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "accounting_db_connections_max",
			Help: "Maximum size of the database connection pool",
		}, func() float64 {
			return float64(pool.Stat().MaxConns())
		}),
		DBAcquireCount: promauto.NewCounterFunc(prometheus.CounterOpts{
			Name: "accounting_db_acquires_total",
			Help: "Cumulative number of successful connection acquires",
		}, func() float64 {
			return float64(pool.Stat().AcquireCount())
		}),
		DBEmptyAcquires: promauto.NewCounterFunc(prometheus.CounterOpts{
			Name: "accounting_db_empty_acquires_total",
			Help: "Cumulative number of acquires that waited for a connection",
		}, func() float64 {
			return float64(pool.Stat().EmptyAcquireCount())
		}),
	}
}
