package detect

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnbirds/pkg/errcode"
)

// EmptyInputError is returned when there are no non-empty names to
// detect a scheme from.
func EmptyInputError(total int) error {
	msg := "Cannot detect naming scheme: all %d names are empty"
	vars := []any{total}
	return &gn.Error{
		Code: errcode.EmptyInputError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("no names to detect scheme from (%d empty)", total),
	}
}

// SchemeNotDetectedError is returned when no candidate scheme matches
// any name.
func SchemeNotDetectedError(total int) error {
	msg := "Could not determine type and authority of <em>%d</em> names"
	vars := []any{total}
	return &gn.Error{
		Code: errcode.SchemeNotDetectedError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("could not determine type and authority of %d names", total),
	}
}
