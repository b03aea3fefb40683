package iosqlite

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnbirds/pkg/errcode"
)

func OpenError(path string, err error) error {
	msg := "Cannot open sqlite store <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.StoreOpenError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("open sqlite %s: %w", path, err),
	}
}

func ReadError(path string, err error) error {
	msg := "Cannot read from sqlite store <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.StoreReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("read sqlite %s: %w", path, err),
	}
}

func WriteError(path string, err error) error {
	msg := "Cannot write to sqlite store <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.StoreWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("write sqlite %s: %w", path, err),
	}
}
