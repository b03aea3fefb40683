package nametype

import (
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnbirds/pkg/errcode"
)

// UnknownNameTypeError is returned for a name type token that is not
// one of the recognized tokens.
func UnknownNameTypeError(token string) error {
	var valid []string
	for _, v := range All() {
		valid = append(valid, v.String())
	}
	msg := "Unknown name type <em>%s</em>, valid types are: %s"
	vars := []any{token, strings.Join(valid, ", ")}
	return &gn.Error{
		Code: errcode.UnknownNameTypeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("unknown name type %q", token),
	}
}
