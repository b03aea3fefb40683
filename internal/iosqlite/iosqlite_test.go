package iosqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/gnames/gnbirds/internal/iosqlite"
	"github.com/gnames/gnbirds/internal/iotesting"
	"github.com/gnames/gnbirds/pkg/errcode"
	"github.com/gnames/gnbirds/pkg/taxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "gnbirds.sqlite")
	store, err := iosqlite.Open(ctx, path)
	require.NoError(t, err)
	defer store.Close()

	tables := iotesting.Tables(t)
	for _, v := range tables {
		require.NoError(t, store.SaveTable(ctx, v))
	}
	// replacing a table keeps one copy of its rows
	require.NoError(t, store.SaveTable(ctx, tables[0]))

	for _, v := range tables {
		key := v.Key()
		res, err := store.Load(ctx, key.Authority, key.Year)
		require.NoError(t, err)
		assert.Equal(t, v.Columns(), res.Columns())
		require.Equal(t, v.Len(), res.Len())
		for i := range v.Len() {
			assert.Equal(t, v.Row(i), res.Row(i))
		}
	}

	exp, err := iotesting.Source(t).Catalog(ctx)
	require.NoError(t, err)
	cat, err := store.Catalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, exp.Entries(), cat.Entries())

	_, err = store.Load(ctx, "bbl", 1990)
	assert.True(t, errcode.IsNotFound(err))
}

func TestReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "birds.sqlite")
	store, err := iosqlite.Open(ctx, path)
	require.NoError(t, err)

	tbl, err := taxonomy.NewTable("ibp", 2024,
		[]string{"scientific_name", "ibp_alpha"},
		[][]string{{"Pica hudsonia", "BBMA"}, {"Turdus migratorius", ""}},
	)
	require.NoError(t, err)
	require.NoError(t, store.SaveTable(ctx, tbl))
	require.NoError(t, store.Close())

	store, err = iosqlite.Open(ctx, path)
	require.NoError(t, err)
	defer store.Close()

	res, err := store.Load(ctx, "IBP", 2024)
	require.NoError(t, err)
	assert.Equal(t, []string{"Turdus migratorius", ""}, res.Row(1))

	reg, err := taxonomy.NewRegistryFromSource(ctx, store, taxonomy.NewCache(store))
	require.NoError(t, err)
	year, err := reg.ResolveYear("ibp", 0)
	require.NoError(t, err)
	assert.Equal(t, 2024, year)
}
