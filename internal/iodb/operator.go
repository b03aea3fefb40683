// Package iodb implements database operations using pgxpool.
// This is an impure I/O package that implements contracts
// defined in pkg/.
package iodb

import (
	"context"
	"fmt"
	"net/url"

	"github.com/gnames/gnbirds/pkg/config"
	"github.com/gnames/gnbirds/pkg/db"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgxOperator implements db.Operator interface using
// pgxpool for connection pooling.
type pgxOperator struct {
	pool *pgxpool.Pool
}

// NewPgxOperator creates a new database operator
// (without connecting).
func NewPgxOperator() db.Operator {
	return &pgxOperator{}
}

// DSN returns the connection string for the configuration.
func DSN(cfg *config.DatabaseConfig) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:     cfg.Database,
		RawQuery: "sslmode=" + url.QueryEscape(cfg.SSLMode),
	}
	return u.String()
}

// Connect opens a small pool against the taxonomy database and pings it.
func (p *pgxOperator) Connect(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	fail := func(err error) error {
		return ConnectionError(cfg.Host, cfg.Port, cfg.Database, cfg.User, err)
	}

	pc, err := pgxpool.ParseConfig(DSN(cfg))
	if err != nil {
		return fail(err)
	}
	pc.MaxConns, pc.MinConns = 10, 1

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return fail(err)
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return fail(err)
	}

	p.pool = pool
	return nil
}

// Close releases all database connections.
func (p *pgxOperator) Close() error {
	if p.pool != nil {
		p.pool.Close()
		p.pool = nil
	}
	return nil
}

// Pool returns the underlying pgxpool.Pool for advanced
// operations.
func (p *pgxOperator) Pool() *pgxpool.Pool {
	return p.pool
}

// TableExists reports whether a table with the given name is present in the
// public schema.
func (p *pgxOperator) TableExists(
	ctx context.Context,
	tableName string,
) (bool, error) {
	if p.pool == nil {
		return false, NotConnectedError()
	}

	const q = `SELECT to_regclass($1) IS NOT NULL`
	var ok bool
	ident := "public." + pgx.Identifier{tableName}.Sanitize()
	if err := p.pool.QueryRow(ctx, q, ident).Scan(&ok); err != nil {
		return false, TableCheckError(tableName, err)
	}
	return ok, nil
}

// DropTables drops tables with CASCADE.
func (p *pgxOperator) DropTables(ctx context.Context, tables ...string) error {
	if p.pool == nil {
		return NotConnectedError()
	}

	for _, table := range tables {
		dropSQL := "DROP TABLE IF EXISTS " +
			pgx.Identifier{table}.Sanitize() + " CASCADE"
		if _, err := p.pool.Exec(ctx, dropSQL); err != nil {
			return DropTableError(table, err)
		}
	}

	return nil
}
