// Package iotesting provides fixtures and helpers shared by tests.
package iotesting

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/gnames/gnbirds/pkg/config"
	"github.com/jackc/pgx/v5"
)

const (
	// TestDatabaseName is the database name used for all integration tests.
	// This ensures tests never accidentally run against production databases.
	TestDatabaseName = "gnbirds_test"
)

// TestConfig returns a configuration suitable for tests. HomeDir points
// to a temporary directory that is removed when the test finishes, and
// the database name is always TestDatabaseName.
func TestConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.New()
	cfg.HomeDir = t.TempDir()
	cfg.Database.Database = TestDatabaseName
	return cfg
}

// PostgresConfig returns database settings for integration tests.
// GNBIRDS_DATABASE_* variables override host, port, user and password.
// The test is skipped in short mode or when PostgreSQL does not answer.
//
// Usage in integration tests:
//
//	func TestSomething(t *testing.T) {
//	    cfg := iotesting.PostgresConfig(t)
//	    // ... use cfg for database operations
//	}
func PostgresConfig(t *testing.T) *config.DatabaseConfig {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	cfg := config.New().Database
	cfg.Database = TestDatabaseName
	if v := os.Getenv("GNBIRDS_DATABASE_HOST"); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv("GNBIRDS_DATABASE_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v := os.Getenv("GNBIRDS_DATABASE_USER"); v != "" {
		cfg.User = v
	}
	if v := os.Getenv("GNBIRDS_DATABASE_PASSWORD"); v != "" {
		cfg.Password = v
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	pgCfg, err := pgx.ParseConfig("")
	if err != nil {
		t.Skipf("Skipping integration test: %v", err)
	}
	pgCfg.Host = cfg.Host
	pgCfg.Port = uint16(cfg.Port)
	pgCfg.User = cfg.User
	pgCfg.Password = cfg.Password
	pgCfg.Database = cfg.Database
	conn, err := pgx.ConnectConfig(ctx, pgCfg)
	if err != nil {
		t.Skipf("Skipping integration test, PostgreSQL is not reachable: %v", err)
	}
	_ = conn.Close(ctx)

	return &cfg
}
