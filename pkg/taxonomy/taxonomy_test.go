package taxonomy_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gnames/gnbirds/internal/iotesting"
	"github.com/gnames/gnbirds/pkg/catalog"
	"github.com/gnames/gnbirds/pkg/ent/nametype"
	"github.com/gnames/gnbirds/pkg/errcode"
	"github.com/gnames/gnbirds/pkg/taxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable(t *testing.T) {
	tbl, err := taxonomy.NewTable("IBP", 2024,
		[]string{"scientific_name", " ibp_alpha ", "genus"},
		[][]string{
			{"Struthio camelus", "COOS", "Struthio"},
			{"Pica hudsonia", "BBMA"},
			{"", "XXXX", ""},
		},
	)
	require.NoError(t, err)

	assert.Equal(t, catalog.Key{Authority: "ibp", Year: 2024}, tbl.Key())
	assert.Equal(t, 3, tbl.Len())
	assert.True(t, tbl.HasColumn("ibp_alpha"))
	assert.Equal(t, "BBMA", tbl.Row(1)[1])
	assert.Equal(t, "", tbl.Row(1)[2], "short row is padded")

	sci, ok := tbl.Column("scientific_name")
	require.True(t, ok)
	assert.Equal(t, []string{"Struthio camelus", "Pica hudsonia", ""}, sci)

	set := tbl.ValueSet("scientific_name")
	assert.Len(t, set, 2, "missing values are not in the set")

	assert.Equal(t,
		[]nametype.NameType{nametype.ScientificName, nametype.Alpha, nametype.Genus},
		tbl.Types(),
	)
	e := tbl.Entry()
	assert.Equal(t, 3, e.Entries)
}

func TestNewTableInvalid(t *testing.T) {
	tests := []struct {
		msg  string
		cols []string
		rows [][]string
	}{
		{"no scientific name", []string{"ibp_alpha"}, nil},
		{"duplicate column", []string{"scientific_name", "genus", "genus"}, nil},
		{"long row", []string{"scientific_name"}, [][]string{{"a", "b"}}},
	}
	for _, v := range tests {
		_, err := taxonomy.NewTable("ibp", 2024, v.cols, v.rows)
		require.Error(t, err, v.msg)
		assert.Equal(t, errcode.InvalidTableError, errcode.Code(err), v.msg)
	}
}

func TestRegistry(t *testing.T) {
	reg := iotesting.Registry(t)
	ctx := context.Background()

	year, err := reg.ResolveYear("avilist", 0)
	require.NoError(t, err)
	assert.Equal(t, 2025, year)

	year, err = reg.ResolveYear("avilist", 2024)
	require.NoError(t, err)
	assert.Equal(t, 2024, year)

	_, err = reg.ResolveYear("clements", 0)
	assert.True(t, errcode.IsNotFound(err))

	tbl, err := reg.Table(ctx, "ebird", 2025)
	require.NoError(t, err)
	assert.Equal(t, 10, tbl.Len())

	_, err = reg.Table(ctx, "ebird", 2020)
	assert.True(t, errcode.IsNotFound(err))

	col, err := reg.Column(nametype.EBirdCode, "ebird", 2025)
	require.NoError(t, err)
	assert.Equal(t, "ebird_ebird_code", col)

	_, err = reg.Column(nametype.Alpha6, "bbl", iotesting.LatestBBLYear)
	require.Error(t, err)
	assert.True(t, errcode.IsInvalidArgument(err))

	_, err = reg.Column(nametype.Unknown, "bbl", iotesting.LatestBBLYear)
	assert.Equal(t, errcode.UnknownNameTypeError, errcode.Code(err))
}

type countingLoader struct {
	src   taxonomy.Source
	calls atomic.Int32
	fail  bool
}

func (c *countingLoader) Load(
	ctx context.Context,
	authority string,
	year int,
) (*taxonomy.Table, error) {
	c.calls.Add(1)
	if c.fail {
		return nil, errors.New("disk is gone")
	}
	return c.src.Load(ctx, authority, year)
}

func TestCache(t *testing.T) {
	ctx := context.Background()
	cl := &countingLoader{src: iotesting.Source(t)}
	cache := taxonomy.NewCache(cl)

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tbl, err := cache.Load(ctx, "EBird", 2024)
			assert.NoError(t, err)
			assert.Equal(t, 9, tbl.Len())
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), cl.calls.Load())
	assert.Equal(t, 1, cache.Len())

	t1, err := cache.Load(ctx, "ebird", 2024)
	require.NoError(t, err)
	t2, err := cache.Load(ctx, "ebird", 2024)
	require.NoError(t, err)
	assert.Same(t, t1, t2)

	_, err = cache.Load(ctx, "ebird", 1900)
	assert.True(t, errcode.IsNotFound(err))
	assert.Equal(t, 1, cache.Len(), "failures are not cached")
}

func TestCacheWarm(t *testing.T) {
	ctx := context.Background()
	src := iotesting.Source(t)
	cat, err := src.Catalog(ctx)
	require.NoError(t, err)

	var keys []catalog.Key
	for _, v := range cat.Entries() {
		keys = append(keys, v.Key)
	}

	cache := taxonomy.NewCache(src)
	err = cache.Warm(ctx, keys, 2)
	require.NoError(t, err)
	assert.Equal(t, len(keys), cache.Len())

	failing := taxonomy.NewCache(&countingLoader{src: src, fail: true})
	err = failing.Warm(ctx, keys, 2)
	assert.Error(t, err)
	assert.Equal(t, 0, failing.Len())
}

func TestMemSourceDuplicates(t *testing.T) {
	t1, err := taxonomy.NewTable("ibp", 2024, []string{"scientific_name"}, nil)
	require.NoError(t, err)
	t2, err := taxonomy.NewTable("IBP", 2024, []string{"scientific_name"}, nil)
	require.NoError(t, err)

	_, err = taxonomy.NewMemSource(t1, t2)
	assert.Equal(t, errcode.InvalidCatalogError, errcode.Code(err))
}
