package ioimport_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gnbirds/internal/iocsv"
	"github.com/gnames/gnbirds/internal/ioimport"
	"github.com/gnames/gnbirds/pkg/errcode"
	"github.com/gnames/gnbirds/pkg/ent/nametype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestImport(t *testing.T) {
	ctx := context.Background()
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "ebird_2025_taxonomy.csv"),
		`scientific_name,ebird_common_name,ebird_ebird_code
Struthio camelus,Common Ostrich,ostric2
Turdus migratorius (Linnaeus 1766),American Robin,amerob
`)
	writeFile(t, filepath.Join(src, "nested", "bbl_2025_taxonomy.csv"),
		`scientific_name,bbl_alpha,genus
Pica hudsonia,BBMA,Pica
`)
	writeFile(t, filepath.Join(src, "notes.csv"), "not,a,taxonomy\n")

	out := t.TempDir()
	store := iocsv.New(out)
	rep, err := ioimport.New(store, 2).Import(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Imported)
	assert.Equal(t, 0, rep.Failed)
	assert.Equal(t, 3, rep.Rows)

	tbl, err := store.Load(ctx, "ebird", 2025)
	require.NoError(t, err)
	genus, ok := tbl.Column("genus")
	require.True(t, ok)
	assert.Equal(t, []string{"Struthio", "Turdus"}, genus)
	assert.Contains(t, tbl.Types(), nametype.Genus)

	cat, err := store.Catalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, cat.Len())
	e, ok := cat.Entry("bbl", 2025)
	require.True(t, ok)
	assert.Equal(t, 1, e.Entries)
	assert.True(t, e.Supports(nametype.Alpha))
}

func TestImportErrors(t *testing.T) {
	ctx := context.Background()
	store := iocsv.New(t.TempDir())

	_, err := ioimport.New(store, 1).Import(ctx, t.TempDir())
	assert.Equal(t, errcode.ImportNoTablesError, errcode.Code(err))

	src := t.TempDir()
	writeFile(t, filepath.Join(src, "ibp_2024_taxonomy.csv"), "")
	rep, err := ioimport.New(store, 1).Import(ctx, src)
	assert.Equal(t, errcode.ImportTableError, errcode.Code(err))
	assert.Equal(t, 1, rep.Failed)
	assert.Equal(t, 0, rep.Imported)
}
