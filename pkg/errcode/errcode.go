package errcode

import (
	"errors"

	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	WriteFileError

	// Logging errors
	CreateLogFileError

	// Catalog and table errors
	InvalidCatalogError
	InvalidTableError
	TaxonomyNotFoundError
	AuthorityNotFoundError

	// Argument errors
	UnknownNameTypeError
	UnsupportedNameTypeError
	UnknownPolicyError
	EmptyInputError
	UnmatchedNamesError
	UnknownFormatError

	// Detection errors
	SchemeNotDetectedError

	// Storage errors
	StoreOpenError
	StoreReadError
	StoreWriteError
	DBConnectionError
	DBNotConnectedError
	SchemaMigrateError

	// Import errors
	ImportNoTablesError
	ImportTableError
)

// IsNotFound reports whether err means that a requested taxonomy,
// authority, or naming scheme does not exist.
func IsNotFound(err error) bool {
	switch code(err) {
	case TaxonomyNotFoundError, AuthorityNotFoundError,
		SchemeNotDetectedError:
		return true
	}
	return false
}

// IsInvalidArgument reports whether err was caused by a bad argument
// given by the caller.
func IsInvalidArgument(err error) bool {
	switch code(err) {
	case UnknownNameTypeError, UnsupportedNameTypeError,
		UnknownPolicyError, EmptyInputError, UnmatchedNamesError,
		UnknownFormatError,
		InvalidCatalogError, InvalidTableError:
		return true
	}
	return false
}

// Code returns the gn.ErrorCode of err, or UnknownError if err
// does not carry one.
func Code(err error) gn.ErrorCode {
	return code(err)
}

func code(err error) gn.ErrorCode {
	var gnErr *gn.Error
	if errors.As(err, &gnErr) {
		return gnErr.Code
	}
	return UnknownError
}
