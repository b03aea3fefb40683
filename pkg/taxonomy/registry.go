package taxonomy

import (
	"context"

	"github.com/gnames/gnbirds/pkg/catalog"
	"github.com/gnames/gnbirds/pkg/ent/nametype"
)

// Registry joins a catalog with a table loader. It is created once by
// the caller and passed to lookup builders and scheme detectors.
// Registry is safe for concurrent use if its loader is.
type Registry struct {
	cat    *catalog.Catalog
	loader Loader
}

// NewRegistry creates a Registry.
func NewRegistry(cat *catalog.Catalog, loader Loader) *Registry {
	return &Registry{cat: cat, loader: loader}
}

// NewRegistryFromSource reads the catalog of a source and creates a
// Registry that loads tables through cache. If cache is nil, tables are
// loaded directly from the source on every request.
func NewRegistryFromSource(
	ctx context.Context,
	src Source,
	cache *Cache,
) (*Registry, error) {
	cat, err := src.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	var loader Loader = src
	if cache != nil {
		loader = cache
	}
	return NewRegistry(cat, loader), nil
}

// Catalog returns the catalog of the registry.
func (r *Registry) Catalog() *catalog.Catalog {
	return r.cat
}

// ResolveYear returns year if it is set, otherwise the most recent year
// available for the authority.
func (r *Registry) ResolveYear(authority string, year int) (int, error) {
	if year > 0 {
		return year, nil
	}
	return r.cat.LatestYear(authority)
}

// Entry returns the catalog entry of a table, or NotFound error.
func (r *Registry) Entry(authority string, year int) (catalog.Entry, error) {
	res, ok := r.cat.Entry(authority, year)
	if !ok {
		return res, TableNotFoundError(catalog.NormAuthority(authority), year)
	}
	return res, nil
}

// Table loads a table listed in the catalog.
func (r *Registry) Table(
	ctx context.Context,
	authority string,
	year int,
) (*Table, error) {
	e, err := r.Entry(authority, year)
	if err != nil {
		return nil, err
	}
	return r.loader.Load(ctx, e.Authority, e.Year)
}

// Column returns the column for a name type in a table, checking that
// the catalog declares support for it.
func (r *Registry) Column(
	nt nametype.NameType,
	authority string,
	year int,
) (string, error) {
	if nt == nametype.Unknown {
		return "", nametype.UnknownNameTypeError(nt.String())
	}
	e, err := r.Entry(authority, year)
	if err != nil {
		return "", err
	}
	if !e.Supports(nt) {
		return "", UnsupportedNameTypeError(nt, e.Key, e.Types)
	}
	return nt.Column(e.Authority), nil
}
