package lookup

import (
	"context"
	"log/slog"

	"github.com/gnames/gnbirds/pkg/catalog"
	"github.com/gnames/gnbirds/pkg/ent/nametype"
	"github.com/gnames/gnbirds/pkg/normalize"
	"github.com/gnames/gnbirds/pkg/taxonomy"
)

// Builder creates lookups from tables of a registry.
type Builder struct {
	reg *taxonomy.Registry
}

// NewBuilder creates a Builder.
func NewBuilder(reg *taxonomy.Registry) *Builder {
	return &Builder{reg: reg}
}

// Resolve validates parameters and fills in missing years. It does not
// load any tables.
func (b *Builder) Resolve(p Params) (Params, error) {
	var err error
	if p.FromType == nametype.Unknown {
		return p, nametype.UnknownNameTypeError(p.FromType.String())
	}
	if p.ToType == nametype.Unknown {
		return p, nametype.UnknownNameTypeError(p.ToType.String())
	}

	p.FromAuthority = catalog.NormAuthority(p.FromAuthority)
	p.ToAuthority = catalog.NormAuthority(p.ToAuthority)

	if p.FromYear, err = b.reg.ResolveYear(p.FromAuthority, p.FromYear); err != nil {
		return p, err
	}
	if p.ToYear, err = b.reg.ResolveYear(p.ToAuthority, p.ToYear); err != nil {
		return p, err
	}

	if _, err = b.reg.Column(p.FromType, p.FromAuthority, p.FromYear); err != nil {
		return p, err
	}
	if _, err = b.reg.Column(p.ToType, p.ToAuthority, p.ToYear); err != nil {
		return p, err
	}

	return p, nil
}

// Build creates a Lookup.
//
// When the target is a scientific name, or both schemes come from the
// same table, pairs are taken from the source table directly. Otherwise
// the target table is joined to the source table on scientific names;
// source rows without a counterpart are dropped.
//
// Rows with a missing source or target value are dropped. If several
// rows share a source value, the first one in table order wins.
func (b *Builder) Build(ctx context.Context, p Params) (*Lookup, error) {
	p, err := b.Resolve(p)
	if err != nil {
		return nil, err
	}

	fromCol := p.FromType.Column(p.FromAuthority)
	toCol := p.ToType.Column(p.ToAuthority)
	sciCol := nametype.ScientificName.String()

	src, err := b.reg.Table(ctx, p.FromAuthority, p.FromYear)
	if err != nil {
		return nil, err
	}
	fromVals, err := column(src, p.FromType, fromCol)
	if err != nil {
		return nil, err
	}

	sameTable := p.FromAuthority == p.ToAuthority && p.FromYear == p.ToYear
	direct := toCol == sciCol || sameTable

	var toVals []string
	if direct {
		if toVals, err = column(src, p.ToType, toCol); err != nil {
			return nil, err
		}
	} else {
		dst, err := b.reg.Table(ctx, p.ToAuthority, p.ToYear)
		if err != nil {
			return nil, err
		}
		if toVals, err = bridge(src, dst, p.ToType, toCol); err != nil {
			return nil, err
		}
	}

	res := newLookup(p, !direct, len(fromVals))
	var dups int
	for i, from := range fromVals {
		if p.SoftMatching {
			from = normalize.String(from)
		}
		to := toVals[i]
		if from == "" || to == "" {
			continue
		}
		if !res.add(from, to) {
			dups++
		}
	}

	slog.Debug("Lookup created",
		"from", fromCol, "from_table", src.Key(),
		"to", toCol, "bridged", res.IsBridged(),
		"size", res.Len(), "duplicates_dropped", dups,
	)
	return res, nil
}

// bridge returns, for every row of src, the target value found in dst
// for the row's scientific name. For a scientific name that occurs more
// than once in dst, the first non-missing value is used.
func bridge(
	src, dst *taxonomy.Table,
	nt nametype.NameType,
	toCol string,
) ([]string, error) {
	sciCol := nametype.ScientificName.String()
	dstTo, err := column(dst, nt, toCol)
	if err != nil {
		return nil, err
	}
	dstSci, _ := dst.Column(sciCol)

	index := make(map[string]string, len(dstSci))
	for i, sci := range dstSci {
		if sci == "" || dstTo[i] == "" {
			continue
		}
		if _, ok := index[sci]; !ok {
			index[sci] = dstTo[i]
		}
	}

	srcSci, _ := src.Column(sciCol)
	res := make([]string, len(srcSci))
	for i, sci := range srcSci {
		res[i] = index[sci]
	}
	return res, nil
}

func column(
	t *taxonomy.Table,
	nt nametype.NameType,
	col string,
) ([]string, error) {
	res, ok := t.Column(col)
	if !ok {
		return nil, taxonomy.UnsupportedNameTypeError(nt, t.Key(), t.Types())
	}
	return res, nil
}
