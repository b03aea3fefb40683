// Package lifecycle defines contracts of operations that change the
// content of a taxonomy store.
package lifecycle

import (
	"context"
	"time"
)

// Importer loads standardized taxonomy CSV files into a store.
//
// Files are found recursively by their `{authority}_{year}_taxonomy.csv`
// names. A missing `genus` column is derived from scientific names.
// Import of a table that already exists in the store replaces it.
type Importer interface {
	// Import reads all taxonomy files under dir and saves them to the
	// store. Failure of one file does not stop the others, an error is
	// returned only if no file could be imported.
	Import(ctx context.Context, dir string) (Report, error)
}

// Report summarises an import.
type Report struct {
	// Imported is the number of saved tables.
	Imported int `json:"imported"`

	// Failed is the number of files that could not be imported.
	Failed int `json:"failed"`

	// Rows is the total number of saved rows.
	Rows int `json:"rows"`

	// Duration of the whole import.
	Duration time.Duration `json:"duration"`
}
