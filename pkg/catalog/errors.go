package catalog

import (
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnbirds/pkg/errcode"
)

// InvalidEntryError is returned when a catalog entry breaks catalog
// invariants.
func InvalidEntryError(e Entry, reason string) error {
	msg := "Invalid catalog entry <em>%s %d</em>: %s"
	vars := []any{e.Authority, e.Year, reason}
	return &gn.Error{
		Code: errcode.InvalidCatalogError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("invalid catalog entry %s/%d: %s",
			e.Authority, e.Year, reason),
	}
}

// AuthorityNotFoundError is returned when there are no tables for an
// authority.
func AuthorityNotFoundError(authority string, known []string) error {
	msg := "No taxonomy tables for authority <em>%s</em>, known authorities: %s"
	vars := []any{authority, strings.Join(known, ", ")}
	return &gn.Error{
		Code: errcode.AuthorityNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("no taxonomy tables for authority %q", authority),
	}
}
