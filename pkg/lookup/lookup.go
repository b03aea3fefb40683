// Package lookup builds one-to-one maps from names of one naming scheme
// to names of another. Schemes of different authorities are bridged
// through scientific names.
package lookup

import (
	"slices"

	"github.com/gnames/gnbirds/pkg/ent/nametype"
)

// Params describe the source and target naming schemes of a Lookup.
type Params struct {
	FromType      nametype.NameType
	ToType        nametype.NameType
	FromAuthority string
	ToAuthority   string

	// FromYear and ToYear select the taxonomy version; zero means the
	// most recent one.
	FromYear int
	ToYear   int

	// SoftMatching normalizes keys so that case and separators do not
	// matter.
	SoftMatching bool
}

// Lookup maps source names to target names. Every key has exactly one
// value. Lookup is read-only and safe for concurrent use.
type Lookup struct {
	params  Params
	bridged bool
	keys    []string
	data    map[string]string
}

func newLookup(p Params, bridged bool, size int) *Lookup {
	return &Lookup{
		params:  p,
		bridged: bridged,
		keys:    make([]string, 0, size),
		data:    make(map[string]string, size),
	}
}

// add inserts a pair unless key is already present, and reports
// whether the pair was added.
func (l *Lookup) add(key, val string) bool {
	if _, ok := l.data[key]; ok {
		return false
	}
	l.data[key] = val
	l.keys = append(l.keys, key)
	return true
}

// Get returns the target name for a source name.
func (l *Lookup) Get(key string) (string, bool) {
	res, ok := l.data[key]
	return res, ok
}

// Keys returns source names in the order of the source table.
func (l *Lookup) Keys() []string {
	return slices.Clone(l.keys)
}

// Len returns the number of entries.
func (l *Lookup) Len() int {
	return len(l.keys)
}

// Params returns the parameters of the lookup with resolved years.
func (l *Lookup) Params() Params {
	return l.params
}

// IsBridged is true when the lookup was created by joining two
// different tables on scientific names.
func (l *Lookup) IsBridged() bool {
	return l.bridged
}
