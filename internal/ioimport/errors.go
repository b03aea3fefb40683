package ioimport

import (
	"errors"
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnbirds/pkg/errcode"
)

// NoTablesError is returned when a directory has no taxonomy files.
func NoTablesError(dir string) error {
	msg := `No taxonomy files found in <em>%s</em>

Files must be named <em>{authority}_{year}_taxonomy.csv</em>`
	vars := []any{dir}
	return &gn.Error{
		Code: errcode.ImportNoTablesError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("no taxonomy files in %s", dir),
	}
}

// TableError is returned when none of the taxonomy files could be
// imported. It wraps the first failure.
func TableError(path string, err error) error {
	if err == nil {
		err = errors.New("unknown failure")
	}
	msg := "Cannot import taxonomy files, first failure: <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.ImportTableError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("import %s: %w", path, err),
	}
}
