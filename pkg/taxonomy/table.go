// Package taxonomy provides standardized taxonomy tables and the
// contracts of their sources.
//
// A Table has one row per species. The `scientific_name` column is
// mandatory and serves as the join key between authorities. Other
// columns are `genus` and authority-qualified columns named
// `{authority}_{name_type}`, for example `ebird_common_name`. All cells
// are strings, an empty string is a missing value.
package taxonomy

import (
	"fmt"
	"strings"

	"github.com/gnames/gnbirds/pkg/catalog"
	"github.com/gnames/gnbirds/pkg/ent/nametype"
)

// Table is an immutable taxonomy table of one authority and year.
type Table struct {
	key     catalog.Key
	columns []string
	colIdx  map[string]int
	rows    [][]string
}

// NewTable creates a Table. Column names are trimmed, rows shorter
// than the header are padded with missing values.
func NewTable(
	authority string,
	year int,
	columns []string,
	rows [][]string,
) (*Table, error) {
	key := catalog.Key{Authority: catalog.NormAuthority(authority), Year: year}
	res := Table{
		key:     key,
		columns: make([]string, len(columns)),
		colIdx:  make(map[string]int, len(columns)),
		rows:    make([][]string, len(rows)),
	}

	for i, v := range columns {
		v = strings.TrimSpace(v)
		if _, ok := res.colIdx[v]; ok {
			return nil, InvalidTableError(key, fmt.Sprintf("duplicate column %q", v))
		}
		res.columns[i] = v
		res.colIdx[v] = i
	}

	if _, ok := res.colIdx[nametype.ScientificName.String()]; !ok {
		return nil, InvalidTableError(key, "no scientific_name column")
	}

	for i, v := range rows {
		if len(v) > len(columns) {
			return nil, InvalidTableError(key,
				fmt.Sprintf("row %d has %d cells, header has %d", i+1, len(v), len(columns)),
			)
		}
		row := make([]string, len(columns))
		copy(row, v)
		res.rows[i] = row
	}

	return &res, nil
}

// Key returns the authority and year of the table.
func (t *Table) Key() catalog.Key {
	return t.key
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Columns returns a copy of the column names.
func (t *Table) Columns() []string {
	res := make([]string, len(t.columns))
	copy(res, t.columns)
	return res
}

// HasColumn returns true if the table has the column.
func (t *Table) HasColumn(col string) bool {
	_, ok := t.colIdx[col]
	return ok
}

// Column returns a copy of all values of a column in row order,
// including missing ones.
func (t *Table) Column(col string) ([]string, bool) {
	idx, ok := t.colIdx[col]
	if !ok {
		return nil, false
	}
	res := make([]string, len(t.rows))
	for i, row := range t.rows {
		res[i] = row[idx]
	}
	return res, true
}

// Row returns a copy of a row.
func (t *Table) Row(i int) []string {
	res := make([]string, len(t.columns))
	copy(res, t.rows[i])
	return res
}

// ValueSet returns distinct non-missing values of a column.
func (t *Table) ValueSet(col string) map[string]struct{} {
	idx, ok := t.colIdx[col]
	if !ok {
		return nil
	}
	res := make(map[string]struct{}, len(t.rows))
	for _, row := range t.rows {
		if v := row[idx]; v != "" {
			res[v] = struct{}{}
		}
	}
	return res
}

// Types returns name types that have a column in the table for the
// table's authority.
func (t *Table) Types() []nametype.NameType {
	var res []nametype.NameType
	for _, v := range nametype.All() {
		if t.HasColumn(v.Column(t.key.Authority)) {
			res = append(res, v)
		}
	}
	return res
}

// Entry returns a catalog entry describing the table.
func (t *Table) Entry() catalog.Entry {
	return catalog.Entry{
		Key:     t.key,
		Entries: t.Len(),
		Types:   t.Types(),
	}
}
