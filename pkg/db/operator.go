// Package db defines the contract of PostgreSQL connection management.
package db

import (
	"context"

	"github.com/gnames/gnbirds/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Operator defines the interface for basic database management operations.
// It provides connection lifecycle management and exposes the pgxpool.Pool
// for the PostgreSQL taxonomy store, which needs CopyFrom for bulk inserts
// and GORM for schema migration.
type Operator interface {
	// Connect establishes a connection pool to the database.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the database connection pool.
	Close() error

	// Pool returns the underlying pgxpool.Pool.
	Pool() *pgxpool.Pool

	// TableExists checks if a table exists in the database.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// DropTables drops the given tables if they exist.
	DropTables(ctx context.Context, tables ...string) error
}
