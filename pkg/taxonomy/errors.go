package taxonomy

import (
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnbirds/pkg/catalog"
	"github.com/gnames/gnbirds/pkg/errcode"
	"github.com/gnames/gnbirds/pkg/ent/nametype"
)

// TableNotFoundError is returned when there is no taxonomy table for an
// authority and year.
func TableNotFoundError(authority string, year int) error {
	msg := "Taxonomy table <em>%s %d</em> does not exist"
	vars := []any{authority, year}
	return &gn.Error{
		Code: errcode.TaxonomyNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("taxonomy table %s/%d not found", authority, year),
	}
}

// InvalidTableError is returned when table data breaks table invariants.
func InvalidTableError(key catalog.Key, reason string) error {
	msg := "Invalid taxonomy table <em>%s %d</em>: %s"
	vars := []any{key.Authority, key.Year, reason}
	return &gn.Error{
		Code: errcode.InvalidTableError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("invalid table %s/%d: %s",
			key.Authority, key.Year, reason),
	}
}

// UnsupportedNameTypeError is returned when a table of an authority has
// no column for the requested name type.
func UnsupportedNameTypeError(
	nt nametype.NameType,
	key catalog.Key,
	supported []nametype.NameType,
) error {
	var ss []string
	for _, v := range supported {
		ss = append(ss, v.String())
	}
	msg := "Name type <em>%s</em> is not available in <em>%s %d</em>, " +
		"available types: %s"
	vars := []any{nt.String(), key.Authority, key.Year, strings.Join(ss, ", ")}
	return &gn.Error{
		Code: errcode.UnsupportedNameTypeError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("name type %s is not supported by %s/%d",
			nt, key.Authority, key.Year),
	}
}
