// Package iocsv keeps taxonomy tables as CSV files.
//
// The layout of a data directory:
//
//	<dir>/available_taxonomies.csv
//	<dir>/processed/{authority}_{year}_taxonomy.csv
//
// The manifest is optional. Without it the catalog is derived from the
// headers and row counts of the table files.
package iocsv

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gnames/gnbirds/internal/iofs"
	"github.com/gnames/gnbirds/pkg/catalog"
	"github.com/gnames/gnbirds/pkg/taxonomy"
	"github.com/gnames/gnlib"
	"golang.org/x/text/unicode/norm"
)

const (
	// ManifestFile lists available taxonomy tables.
	ManifestFile = "available_taxonomies.csv"
	// ProcessedDir keeps the tables.
	ProcessedDir = "processed"
	// TableSuffix ends the file name of every table.
	TableSuffix = "_taxonomy.csv"
)

type csvStore struct {
	dir string
	// mu serializes writes of tables and the manifest.
	mu sync.Mutex
}

// New creates a CSV store in dir. The directory is not touched until
// the first read or write.
func New(dir string) taxonomy.Store {
	return &csvStore{dir: dir}
}

// TablePath returns the path of a table file.
func TablePath(dir, authority string, year int) string {
	name := fmt.Sprintf("%s_%d%s", catalog.NormAuthority(authority), year, TableSuffix)
	return filepath.Join(dir, ProcessedDir, name)
}

func (s *csvStore) Load(
	ctx context.Context,
	authority string,
	year int,
) (*taxonomy.Table, error) {
	path := TablePath(s.dir, authority, year)
	records, err := readCSV(ctx, path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, taxonomy.TableNotFoundError(catalog.NormAuthority(authority), year)
	}
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		key := catalog.Key{Authority: catalog.NormAuthority(authority), Year: year}
		return nil, taxonomy.InvalidTableError(key, "file has no header")
	}

	res, err := taxonomy.NewTable(authority, year, records[0], records[1:])
	if err != nil {
		return nil, err
	}
	slog.Debug("Taxonomy table read", "path", path, "rows", res.Len())
	return res, nil
}

func (s *csvStore) Catalog(ctx context.Context) (*catalog.Catalog, error) {
	path := filepath.Join(s.dir, ManifestFile)
	records, err := readCSV(ctx, path)
	switch {
	case err == nil:
		entries, err := decodeManifest(records)
		if err != nil {
			return nil, err
		}
		return catalog.New(entries)
	case errors.Is(err, fs.ErrNotExist):
		slog.Info("No manifest, scanning taxonomy files", "dir", s.dir)
		return s.scan(ctx)
	default:
		return nil, err
	}
}

func (s *csvStore) SaveTable(ctx context.Context, t *taxonomy.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := iofs.TouchDir(filepath.Join(s.dir, ProcessedDir)); err != nil {
		return err
	}

	key := t.Key()
	path := TablePath(s.dir, key.Authority, key.Year)
	records := make([][]string, 0, t.Len()+1)
	records = append(records, t.Columns())
	for i := range t.Len() {
		records = append(records, t.Row(i))
	}
	if err := writeCSV(path, records); err != nil {
		return err
	}

	return s.updateManifest(ctx, t.Entry())
}

func (s *csvStore) Close() error {
	return nil
}

// updateManifest adds or replaces the entry of a table in the manifest.
func (s *csvStore) updateManifest(ctx context.Context, e catalog.Entry) error {
	path := filepath.Join(s.dir, ManifestFile)
	var entries []catalog.Entry

	records, err := readCSV(ctx, path)
	switch {
	case err == nil:
		if entries, err = decodeManifest(records); err != nil {
			return err
		}
	case !errors.Is(err, fs.ErrNotExist):
		return err
	}

	var replaced bool
	for i := range entries {
		if entries[i].Key == e.Key {
			entries[i] = e
			replaced = true
		}
	}
	if !replaced {
		entries = append(entries, e)
	}

	cat, err := catalog.New(entries)
	if err != nil {
		return err
	}
	return WriteManifest(s.dir, cat)
}

// WriteManifest writes the catalog to the manifest file of dir.
func WriteManifest(dir string, cat *catalog.Catalog) error {
	return writeCSV(filepath.Join(dir, ManifestFile), encodeManifest(cat))
}

func readCSV(ctx context.Context, path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return nil, iofs.ReadFileError(path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var res [][]string
	for {
		if len(res)%10_000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, iofs.ReadFileError(path, err)
		}
		for i := range row {
			row[i] = cleanCell(row[i])
		}
		if len(res) == 0 && len(row) > 0 {
			row[0] = strings.TrimPrefix(row[0], "\ufeff")
		}
		res = append(res, row)
	}
	return res, nil
}

func writeCSV(path string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return iofs.WriteFileError(path, err)
	}

	w := csv.NewWriter(f)
	if err = w.WriteAll(records); err != nil {
		f.Close()
		return iofs.WriteFileError(path, err)
	}
	if err = f.Close(); err != nil {
		return iofs.WriteFileError(path, err)
	}
	return nil
}

// cleanCell repairs broken UTF-8, brings the string to NFC and trims
// surrounding spaces.
func cleanCell(s string) string {
	s = gnlib.FixUtf8(s)
	s = norm.NFC.String(s)
	return strings.TrimSpace(s)
}
