// Package catalog describes which taxonomy tables exist and which name
// types each of them supports. A Catalog is read-only after creation and
// safe for concurrent use.
package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/gnames/gnbirds/pkg/ent/nametype"
)

// Key identifies a taxonomy table.
type Key struct {
	Authority string
	Year      int
}

// Entry describes one taxonomy table.
type Entry struct {
	Key

	// Entries is the number of rows in the table. It is only used to
	// order the detection search space.
	Entries int

	// Types lists the name types the table supports.
	Types []nametype.NameType
}

// Supports returns true if the table has a column for the name type.
func (e Entry) Supports(nt nametype.NameType) bool {
	return slices.Contains(e.Types, nt)
}

// Candidate is a naming scheme that can be tested against input names.
type Candidate struct {
	Key
	NameType nametype.NameType
}

// Catalog is a registry of taxonomy tables.
type Catalog struct {
	entries []Entry
	index   map[Key]int
}

// New creates a Catalog. Authorities are lowercased and trimmed, name
// types are deduplicated. An (authority, year) pair can appear only once.
func New(entries []Entry) (*Catalog, error) {
	res := Catalog{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[Key]int, len(entries)),
	}

	for _, v := range entries {
		v.Authority = NormAuthority(v.Authority)
		if v.Authority == "" {
			return nil, InvalidEntryError(v, "authority is empty")
		}
		if v.Year <= 0 {
			return nil, InvalidEntryError(v, "year must be positive")
		}
		if v.Entries < 0 {
			return nil, InvalidEntryError(v, "entries cannot be negative")
		}
		if _, ok := res.index[v.Key]; ok {
			return nil, InvalidEntryError(v, "duplicate authority and year")
		}
		v.Types = normTypes(v.Types)
		res.index[v.Key] = len(res.entries)
		res.entries = append(res.entries, v)
	}

	return &res, nil
}

// NormAuthority brings an authority token to its canonical form.
func NormAuthority(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Len returns the number of tables in the catalog.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entries returns a copy of all entries sorted by authority and year.
func (c *Catalog) Entries() []Entry {
	res := slices.Clone(c.entries)
	slices.SortFunc(res, func(a, b Entry) int {
		return cmp.Or(
			cmp.Compare(a.Authority, b.Authority),
			cmp.Compare(a.Year, b.Year),
		)
	})
	return res
}

// Entry returns the entry of a table.
func (c *Catalog) Entry(authority string, year int) (Entry, bool) {
	idx, ok := c.index[Key{Authority: NormAuthority(authority), Year: year}]
	if !ok {
		return Entry{}, false
	}
	return c.entries[idx], true
}

// Authorities returns sorted unique authorities.
func (c *Catalog) Authorities() []string {
	var res []string
	for _, v := range c.entries {
		if !slices.Contains(res, v.Authority) {
			res = append(res, v.Authority)
		}
	}
	slices.Sort(res)
	return res
}

// AuthoritiesSupporting returns sorted authorities that have at least
// one table with the given name type.
func (c *Catalog) AuthoritiesSupporting(nt nametype.NameType) []string {
	var res []string
	for _, v := range c.entries {
		if v.Supports(nt) && !slices.Contains(res, v.Authority) {
			res = append(res, v.Authority)
		}
	}
	slices.Sort(res)
	return res
}

// Years returns the years available for an authority in ascending order.
func (c *Catalog) Years(authority string) []int {
	authority = NormAuthority(authority)
	var res []int
	for _, v := range c.entries {
		if v.Authority == authority {
			res = append(res, v.Year)
		}
	}
	slices.Sort(res)
	return res
}

// LatestYear returns the most recent year available for an authority.
func (c *Catalog) LatestYear(authority string) (int, error) {
	years := c.Years(authority)
	if len(years) == 0 {
		return 0, AuthorityNotFoundError(authority, c.Authorities())
	}
	return years[len(years)-1], nil
}

// Candidates returns every (authority, year, name type) combination
// supported by the catalog. Tables with fewer entries come first; name
// types of one table follow nametype.All order, so candidates sharing a
// table are adjacent.
func (c *Catalog) Candidates() []Candidate {
	entries := slices.Clone(c.entries)
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return cmp.Compare(a.Entries, b.Entries)
	})

	var res []Candidate
	for _, e := range entries {
		for _, nt := range e.Types {
			res = append(res, Candidate{Key: e.Key, NameType: nt})
		}
	}
	return res
}

func normTypes(types []nametype.NameType) []nametype.NameType {
	res := make([]nametype.NameType, 0, len(types))
	for _, v := range nametype.All() {
		if slices.Contains(types, v) {
			res = append(res, v)
		}
	}
	return res
}
