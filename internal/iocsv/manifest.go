package iocsv

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gnames/gnbirds/pkg/catalog"
	"github.com/gnames/gnbirds/pkg/ent/nametype"
	"github.com/gnames/gnbirds/pkg/taxonomy"
)

var tableFileRe = regexp.MustCompile(`^(.+)_(\d+)` + regexp.QuoteMeta(TableSuffix) + `$`)

// manifestHeader returns columns of the manifest file.
func manifestHeader() []string {
	res := []string{"authority", "year"}
	for _, v := range nametype.All() {
		res = append(res, v.String())
	}
	return append(res, "entries")
}

func decodeManifest(records [][]string) ([]catalog.Entry, error) {
	if len(records) == 0 {
		return nil, nil
	}

	idx := make(map[string]int)
	for i, v := range records[0] {
		idx[strings.ToLower(v)] = i
	}
	for _, v := range []string{"authority", "year", "entries"} {
		if _, ok := idx[v]; !ok {
			return nil, ManifestError(fmt.Sprintf("no %q column", v))
		}
	}

	cell := func(row []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	res := make([]catalog.Entry, 0, len(records)-1)
	for n, row := range records[1:] {
		year, err := strconv.Atoi(cell(row, "year"))
		if err != nil {
			return nil, ManifestError(fmt.Sprintf("row %d: bad year", n+1))
		}
		entries, err := strconv.Atoi(cell(row, "entries"))
		if err != nil {
			return nil, ManifestError(fmt.Sprintf("row %d: bad entries", n+1))
		}
		e := catalog.Entry{
			Key:     catalog.Key{Authority: cell(row, "authority"), Year: year},
			Entries: entries,
		}
		for _, nt := range nametype.All() {
			if ok, _ := strconv.ParseBool(cell(row, nt.String())); ok {
				e.Types = append(e.Types, nt)
			}
		}
		res = append(res, e)
	}
	return res, nil
}

func encodeManifest(cat *catalog.Catalog) [][]string {
	res := [][]string{manifestHeader()}
	for _, e := range cat.Entries() {
		row := []string{e.Authority, strconv.Itoa(e.Year)}
		for _, nt := range nametype.All() {
			flag := "False"
			if e.Supports(nt) {
				flag = "True"
			}
			row = append(row, flag)
		}
		row = append(row, strconv.Itoa(e.Entries))
		res = append(res, row)
	}
	return res
}

// scan builds a catalog from table files found anywhere under the data
// directory.
func (s *csvStore) scan(ctx context.Context) (*catalog.Catalog, error) {
	files, err := FindTables(s.dir)
	if err != nil {
		return nil, err
	}

	var entries []catalog.Entry
	for _, path := range files {
		auth, year, ok := ParseTableName(filepath.Base(path))
		if !ok {
			continue
		}
		if path != TablePath(s.dir, auth, year) {
			slog.Warn("Taxonomy file is outside of processed directory, skipping",
				"path", path)
			continue
		}
		t, err := s.Load(ctx, auth, year)
		if err != nil {
			return nil, err
		}
		entries = append(entries, t.Entry())
	}
	return catalog.New(entries)
}

// FindTables returns all `*_taxonomy.csv` files under dir.
func FindTables(dir string) ([]string, error) {
	pattern := filepath.Join(dir, "**", "*"+TableSuffix)
	res, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, ManifestError(fmt.Sprintf("glob error: %s", err))
	}
	return res, nil
}

// ParseTableName extracts authority and year from a table file name,
// for example `ebird_2024_taxonomy.csv`.
func ParseTableName(name string) (string, int, bool) {
	m := tableFileRe.FindStringSubmatch(name)
	if m == nil {
		return "", 0, false
	}
	year, err := strconv.Atoi(m[2])
	if err != nil || year <= 0 {
		return "", 0, false
	}
	return catalog.NormAuthority(m[1]), year, true
}

// ReadTable reads a standardized taxonomy CSV file from any location.
// Authority and year come from the file name.
func ReadTable(ctx context.Context, path string) (*taxonomy.Table, error) {
	auth, year, ok := ParseTableName(filepath.Base(path))
	if !ok {
		return nil, ManifestError(
			fmt.Sprintf("%s is not named {authority}_{year}%s", path, TableSuffix),
		)
	}
	records, err := readCSV(ctx, path)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, taxonomy.InvalidTableError(
			catalog.Key{Authority: auth, Year: year}, "file has no header",
		)
	}
	return taxonomy.NewTable(auth, year, records[0], records[1:])
}
