package iocsv

import (
	"errors"

	"github.com/gnames/gn"
	"github.com/gnames/gnbirds/pkg/errcode"
)

// ManifestError is returned when the list of taxonomy files cannot be
// read or built.
func ManifestError(reason string) error {
	msg := "Cannot read taxonomy manifest: %s"
	vars := []any{reason}
	return &gn.Error{
		Code: errcode.InvalidCatalogError,
		Msg:  msg,
		Vars: vars,
		Err:  errors.New("manifest: " + reason),
	}
}
