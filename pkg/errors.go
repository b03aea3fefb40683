package gnbirds

import (
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnbirds/pkg/ent/nametype"
	"github.com/gnames/gnbirds/pkg/errcode"
)

// UnsupportedAuthorityError is returned when the target authority has no
// names of the requested type.
func UnsupportedAuthorityError(
	nt nametype.NameType,
	authority string,
	supported []string,
) error {
	msg := "Authority <em>%s</em> has no <em>%s</em> names, use one of: %s"
	vars := []any{authority, nt.String(), strings.Join(supported, ", ")}
	return &gn.Error{
		Code: errcode.UnsupportedNameTypeError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("authority %q must be one of %v for %s",
			authority, supported, nt),
	}
}

// UnmatchedNamesError is returned by the `error` policy when some names
// do not belong to the detected scheme.
func UnmatchedNamesError(msg string, unmatched []string) error {
	return &gn.Error{
		Code: errcode.UnmatchedNamesError,
		Msg:  msg,
		Err:  fmt.Errorf("%s: %q", msg, unmatched),
	}
}
