package taxonomy

import (
	"context"

	"github.com/gnames/gnbirds/pkg/catalog"
)

// Loader provides taxonomy tables. A missing table is reported with a
// NotFound error (see errcode.IsNotFound).
type Loader interface {
	Load(ctx context.Context, authority string, year int) (*Table, error)
}

// CatalogReader provides the catalog of available tables.
type CatalogReader interface {
	Catalog(ctx context.Context) (*catalog.Catalog, error)
}

// Source provides both tables and their catalog.
type Source interface {
	Loader
	CatalogReader
}

// Store is a Source that can also persist tables.
type Store interface {
	Source

	// SaveTable stores a table, replacing a table with the same
	// authority and year.
	SaveTable(ctx context.Context, t *Table) error

	// Close releases resources of the store.
	Close() error
}

type memSource struct {
	cat    *catalog.Catalog
	tables map[catalog.Key]*Table
}

// NewMemSource creates an in-memory Source from tables. Its catalog is
// derived from the tables.
func NewMemSource(tables ...*Table) (Source, error) {
	res := memSource{tables: make(map[catalog.Key]*Table, len(tables))}
	entries := make([]catalog.Entry, 0, len(tables))
	for _, v := range tables {
		entries = append(entries, v.Entry())
		res.tables[v.Key()] = v
	}

	var err error
	if res.cat, err = catalog.New(entries); err != nil {
		return nil, err
	}
	return &res, nil
}

func (m *memSource) Load(
	_ context.Context,
	authority string,
	year int,
) (*Table, error) {
	key := catalog.Key{Authority: catalog.NormAuthority(authority), Year: year}
	if res, ok := m.tables[key]; ok {
		return res, nil
	}
	return nil, TableNotFoundError(authority, year)
}

func (m *memSource) Catalog(_ context.Context) (*catalog.Catalog, error) {
	return m.cat, nil
}
