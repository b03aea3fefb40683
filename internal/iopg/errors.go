package iopg

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnbirds/pkg/catalog"
	"github.com/gnames/gnbirds/pkg/errcode"
)

func MigrateError(err error) error {
	return &gn.Error{
		Code: errcode.SchemaMigrateError,
		Msg:  "Cannot create taxonomy tables in PostgreSQL",
		Err:  fmt.Errorf("migrate schema: %w", err),
	}
}

func ReadError(err error) error {
	return &gn.Error{
		Code: errcode.StoreReadError,
		Msg:  "Cannot read taxonomy data from PostgreSQL",
		Err:  fmt.Errorf("read postgres: %w", err),
	}
}

func WriteError(key catalog.Key, err error) error {
	msg := "Cannot save taxonomy <em>%s %d</em> to PostgreSQL"
	vars := []any{key.Authority, key.Year}
	return &gn.Error{
		Code: errcode.StoreWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("write postgres %s %d: %w", key.Authority, key.Year, err),
	}
}
