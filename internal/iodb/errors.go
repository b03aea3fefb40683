package iodb

import (
	"errors"
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnbirds/pkg/errcode"
)

// ConnectionError is returned when database connection fails.
func ConnectionError(
	host string,
	port int,
	database, user string,
	err error,
) error {
	msg := "Cannot connect to PostgreSQL <em>%s@%s:%d/%s</em>, " +
		"check that the server runs and that <em>database</em> " +
		"settings of config.yaml or GNBIRDS_DATABASE_* variables are correct"
	vars := []any{user, host, port, database}
	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("failed to connect to %s:%d/%s: %w",
			host, port, database, err),
	}
}

// NotConnectedError is returned when an operation needs a pool before
// Connect was called.
func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Database is not connected",
		Err:  errors.New("database is not connected"),
	}
}

// TableCheckError is returned when checking for a table fails.
func TableCheckError(table string, err error) error {
	msg := "Cannot check if table <em>%s</em> exists"
	vars := []any{table}
	return &gn.Error{
		Code: errcode.StoreReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("check table %s: %w", table, err),
	}
}

// DropTableError is returned when a table cannot be dropped.
func DropTableError(table string, err error) error {
	msg := "Cannot drop table <em>%s</em>"
	vars := []any{table}
	return &gn.Error{
		Code: errcode.StoreWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("drop table %s: %w", table, err),
	}
}
