package iopg_test

import (
	"context"
	"testing"

	"github.com/gnames/gnbirds/internal/iodb"
	"github.com/gnames/gnbirds/internal/iopg"
	"github.com/gnames/gnbirds/internal/iotesting"
	"github.com/gnames/gnbirds/pkg/catalog"
	"github.com/gnames/gnbirds/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordID(t *testing.T) {
	key := catalog.Key{Authority: "ebird", Year: 2025}
	id := iopg.RecordID(key, 3)
	assert.Len(t, id, 36)
	assert.Equal(t, id, iopg.RecordID(key, 3))
	assert.NotEqual(t, id, iopg.RecordID(key, 4))
	assert.NotEqual(t, id, iopg.RecordID(catalog.Key{Authority: "ebird", Year: 2024}, 3))
}

func TestErrors(t *testing.T) {
	key := catalog.Key{Authority: "bbl", Year: 2025}
	assert.Equal(t, errcode.SchemaMigrateError,
		errcode.Code(iopg.MigrateError(assert.AnError)))
	assert.Equal(t, errcode.StoreReadError,
		errcode.Code(iopg.ReadError(assert.AnError)))
	err := iopg.WriteError(key, assert.AnError)
	assert.Equal(t, errcode.StoreWriteError, errcode.Code(err))
	assert.ErrorIs(t, err, assert.AnError)
}

// TestStore needs PostgreSQL with the gnbirds_test database.
func TestStore(t *testing.T) {
	cfg := iotesting.PostgresConfig(t)
	cfg.BatchSize = 4
	ctx := context.Background()

	require.NoError(t, iopg.Reset(ctx, cfg))

	store, err := iopg.Open(ctx, cfg)
	require.NoError(t, err)
	defer store.Close()

	tables := iotesting.Tables(t)
	for _, v := range tables {
		require.NoError(t, store.SaveTable(ctx, v))
	}
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

	require.NoError(t, iopg.Reset(ctx, cfg))
	op := iodb.NewPgxOperator()
	require.NoError(t, op.Connect(ctx, cfg))
	defer op.Close()
	exists, err := op.TableExists(ctx, "taxonomies")
	require.NoError(t, err)
	assert.False(t, exists)
}

// TestOpenSchema needs PostgreSQL with the gnbirds_test database.
func TestOpenSchema(t *testing.T) {
	cfg := iotesting.PostgresConfig(t)
	ctx := context.Background()
	require.NoError(t, iopg.Reset(ctx, cfg))

	store, err := iopg.Open(ctx, cfg)
	require.NoError(t, err)
	tbl := iotesting.Tables(t)[0]
	require.NoError(t, store.SaveTable(ctx, tbl))
	require.NoError(t, store.Close())

	// complete schema is reused as is
	store, err = iopg.Open(ctx, cfg)
	require.NoError(t, err)
	key := tbl.Key()
	res, err := store.Load(ctx, key.Authority, key.Year)
	require.NoError(t, err)
	assert.Equal(t, tbl.Len(), res.Len())
	require.NoError(t, store.Close())

	// a missing table is created again
	op := iodb.NewPgxOperator()
	require.NoError(t, op.Connect(ctx, cfg))
	defer op.Close()
	require.NoError(t, op.DropTables(ctx, "taxon_records"))

	store, err = iopg.Open(ctx, cfg)
	require.NoError(t, err)
	defer store.Close()
	exists, err := op.TableExists(ctx, "taxon_records")
	require.NoError(t, err)
	assert.True(t, exists)
}
