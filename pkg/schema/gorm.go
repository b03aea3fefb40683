package schema

import (
	"gorm.io/gorm"
)

// AllModels returns all schema models for GORM AutoMigrate.
func AllModels() []DDLGenerator {
	return []DDLGenerator{
		&Taxonomy{},
		&TaxonRecord{},
	}
}

// Migrate runs GORM AutoMigrate to create or update schema.
func Migrate(db *gorm.DB) error {
	models := AllModels()
	dst := make([]any, len(models))
	for i, v := range models {
		dst[i] = v
	}
	return db.AutoMigrate(dst...)
}

// IndexDDL returns index statements of all models.
func IndexDDL() []string {
	var res []string
	for _, v := range AllModels() {
		res = append(res, v.IndexDDL()...)
	}
	return res
}
