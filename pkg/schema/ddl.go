package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// generateDDL creates a CREATE TABLE statement from struct tags.
func generateDDL(model any, tableName string) string {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()

	var columns []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		dbTag := field.Tag.Get("db")
		ddlTag := field.Tag.Get("ddl")

		if dbTag != "" && ddlTag != "" {
			columns = append(columns, fmt.Sprintf("    %s %s", dbTag, ddlTag))
		}
	}

	ddl := fmt.Sprintf("CREATE TABLE %s (\n%s\n);",
		tableName,
		strings.Join(columns, ",\n"))

	return ddl
}

// Taxonomy DDL methods
func (t Taxonomy) TableDDL() string {
	return generateDDL(t, t.TableName())
}

func (t Taxonomy) IndexDDL() []string {
	return []string{}
}

func (t Taxonomy) TableName() string {
	return "taxonomies"
}

// TaxonRecord DDL methods
func (r TaxonRecord) TableDDL() string {
	return generateDDL(r, r.TableName())
}

func (r TaxonRecord) IndexDDL() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_taxon_records_table " +
			"ON taxon_records(authority, year, row_num);",
		"CREATE INDEX IF NOT EXISTS idx_taxon_records_scientific_name " +
			"ON taxon_records(scientific_name);",
	}
}

func (r TaxonRecord) TableName() string {
	return "taxon_records"
}
