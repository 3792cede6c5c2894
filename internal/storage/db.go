package storage

import (
	"context"
	"fmt"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

// Postgres is the PostgreSQL Store backed by a pgxpool.Pool.
type Postgres struct {
	Pool *pgxpool.Pool
}

var _ Store = (*Postgres)(nil)

// NewPostgres creates a Postgres store with a connection pool.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("creating pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &Postgres{Pool: pool}, nil
}

// Close closes the connection pool.
func (db *Postgres) Close() error {
	db.Pool.Close()
	return nil
}

// Collector exposes pool statistics to Prometheus.
func (db *Postgres) Collector(dbName string) prometheus.Collector {
	return pgxpoolprometheus.NewCollector(db.Pool, map[string]string{"db_name": dbName})
}

// RunMigrations applies all pending migrations from the given directory.
func RunMigrations(dsn, migrationsPath string) error {
	m, err := migrate.New("file://"+migrationsPath, dsn)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}
