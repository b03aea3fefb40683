// Package schema provides PostgreSQL models for taxonomy tables.
package schema

import (
	"time"
)

// DDLGenerator defines how Go models generate PostgreSQL DDL.
type DDLGenerator interface {
	// TableDDL returns the CREATE TABLE statement for this model.
	TableDDL() string

	// IndexDDL returns CREATE INDEX statements for this model.
	// Returns empty slice if no indexes needed.
	IndexDDL() []string

	// TableName returns the PostgreSQL table name for this model.
	TableName() string
}

// Taxonomy describes one taxonomy table of an authority.
type Taxonomy struct {
	// Authority is a lowercase token of a checklist publisher, for
	// example `ebird` or `avilist`.
	Authority string `db:"authority" ddl:"VARCHAR(100) NOT NULL" gorm:"primaryKey;type:varchar(100)"`

	// Year is the version of the checklist.
	Year int `db:"year" ddl:"INT NOT NULL" gorm:"primaryKey;autoIncrement:false"`

	// Entries is the number of rows in the table.
	Entries int `db:"entries" ddl:"INT NOT NULL" gorm:"not null"`

	// Columns is a JSON array with column names in table order.
	Columns string `db:"columns" ddl:"TEXT NOT NULL" gorm:"type:text;not null"`

	// UpdatedAt records the time of the last import of the table.
	UpdatedAt time.Time `db:"updated_at" ddl:"TIMESTAMP WITHOUT TIME ZONE"`
}

// TaxonRecord is one row of a taxonomy table.
type TaxonRecord struct {
	// ID is UUID v5 generated from `{authority}|{year}|{row_num}`.
	ID string `db:"id" ddl:"UUID PRIMARY KEY" gorm:"primaryKey;type:uuid"`

	// Authority and Year point to the Taxonomy of the record.
	Authority string `db:"authority" ddl:"VARCHAR(100) NOT NULL" gorm:"type:varchar(100);not null"`
	Year      int    `db:"year" ddl:"INT NOT NULL" gorm:"not null"`

	// RowNum keeps the order of rows, duplicates are resolved by it.
	RowNum int `db:"row_num" ddl:"INT NOT NULL" gorm:"not null"`

	// ScientificName duplicates the join key of the record for SQL
	// queries.
	ScientificName string `db:"scientific_name" ddl:"VARCHAR(255)" gorm:"type:varchar(255)"`

	// Record is a JSON array with cell values in column order.
	Record string `db:"record" ddl:"TEXT NOT NULL" gorm:"type:text;not null"`
}
