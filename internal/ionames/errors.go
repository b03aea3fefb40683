package ionames

import (
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnbirds/pkg/errcode"
)

func UnknownFormatError(s string) error {
	msg := "Unknown output format <em>%s</em>, use one of: %s"
	vars := []any{s, strings.Join(FormatTokens(), ", ")}
	return &gn.Error{
		Code: errcode.UnknownFormatError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("unknown format %q", s),
	}
}

func ReadError(src string, err error) error {
	msg := "Cannot read names from <em>%s</em>"
	vars := []any{src}
	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("read names %s: %w", src, err),
	}
}

func WriteError(err error) error {
	return &gn.Error{
		Code: errcode.WriteFileError,
		Msg:  "Cannot write output",
		Err:  fmt.Errorf("write output: %w", err),
	}
}
