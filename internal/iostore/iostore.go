// Package iostore opens the taxonomy store selected in the configuration.
package iostore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gnames/gn"
	"github.com/gnames/gnbirds/internal/iocsv"
	"github.com/gnames/gnbirds/internal/iopg"
	"github.com/gnames/gnbirds/internal/iosqlite"
	"github.com/gnames/gnbirds/pkg/config"
	"github.com/gnames/gnbirds/pkg/errcode"
	"github.com/gnames/gnbirds/pkg/taxonomy"
)

// Open returns the store of cfg.Store: a CSV directory, a SQLite file
// or a PostgreSQL database.
func Open(ctx context.Context, cfg *config.Config) (taxonomy.Store, error) {
	slog.Debug("Opening taxonomy store", "store", cfg.Store)
	switch cfg.Store {
	case "csv":
		return iocsv.New(cfg.DataPath()), nil
	case "sqlite":
		return iosqlite.Open(ctx, cfg.SQLiteFile())
	case "postgres":
		return iopg.Open(ctx, &cfg.Database)
	default:
		return nil, &gn.Error{
			Code: errcode.StoreOpenError,
			Msg:  "Unknown store <em>%s</em>, use csv, sqlite or postgres",
			Vars: []any{cfg.Store},
			Err:  fmt.Errorf("unknown store %q", cfg.Store),
		}
	}
}

// NewRegistry creates a registry of the store's catalog. Tables are
// loaded once and kept in memory.
func NewRegistry(
	ctx context.Context,
	store taxonomy.Store,
) (*taxonomy.Registry, error) {
	return taxonomy.NewRegistryFromSource(ctx, store, taxonomy.NewCache(store))
}
