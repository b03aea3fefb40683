// Package config provides configuration management for GNbirds.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Store: store, data_dir, sqlite_path
//   - Database: host, port, user, password, database, ssl_mode, batch_size
//   - Convert: soft_matching, fuzzy_matching, fuzzy_threshold,
//     unmatched_policy
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields:
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use GNBIRDS_ prefix with underscores for nesting:
//
//	GNBIRDS_STORE=sqlite
//	GNBIRDS_DATA_DIR=/opt/birds
//	GNBIRDS_CONVERT_FUZZY_MATCHING=true
//	GNBIRDS_LOG_LEVEL=info
package config

import (
	"path/filepath"
	"runtime"
)

// Config represents the complete GNbirds configuration.
type Config struct {
	// Store is the kind of storage that keeps taxonomy tables.
	// Valid values: "csv", "sqlite", "postgres".
	Store string `mapstructure:"store" yaml:"store"`

	// DataDir is the directory with `available_taxonomies.csv` and
	// `processed/{authority}_{year}_taxonomy.csv` files. Empty means
	// the default data directory under HomeDir.
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`

	// SQLitePath is the file of the sqlite store. Empty means
	// `gnbirds.sqlite` in the data directory.
	SQLitePath string `mapstructure:"sqlite_path" yaml:"sqlite_path"`

	// Database contains PostgreSQL connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Convert contains default settings of name conversion.
	Convert ConvertConfig `mapstructure:"convert" yaml:"convert"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for parallel operations.
	// Default value is set accoring to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, data and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string `yaml:"-"`
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// BatchSize is the number of taxon rows sent to PostgreSQL in one
	// COPY batch during import.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// ConvertConfig contains default settings for conversion of names.
type ConvertConfig struct {
	// SoftMatching ignores case and differences in spaces, dashes and
	// underscores.
	SoftMatching bool `mapstructure:"soft_matching" yaml:"soft_matching"`

	// FuzzyMatching tries approximate matching for names without an
	// exact match.
	FuzzyMatching bool `mapstructure:"fuzzy_matching" yaml:"fuzzy_matching"`

	// FuzzyThreshold is the minimal similarity (0, 1] of a fuzzy match.
	FuzzyThreshold float64 `mapstructure:"fuzzy_threshold" yaml:"fuzzy_threshold"`

	// UnmatchedPolicy tells what to do with names that do not belong to
	// the detected naming scheme: "ignore", "warn" or "error".
	UnmatchedPolicy string `mapstructure:"unmatched_policy" yaml:"unmatched_policy"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Store: "csv",
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "gnbirds",
			SSLMode:   "disable",
			BatchSize: 10_000,
		},
		Convert: ConvertConfig{
			SoftMatching:    true,
			FuzzyThreshold:  0.8,
			UnmatchedPolicy: "ignore",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(), // Default to number of CPU threads
	}

	return res
}

// DataPath returns DataDir, or the default data directory if DataDir
// is not set.
func (c *Config) DataPath() string {
	if c.DataDir != "" {
		return c.DataDir
	}
	return DataDir(c.HomeDir)
}

// SQLiteFile returns SQLitePath, or the default sqlite file in the data
// directory.
func (c *Config) SQLiteFile() string {
	if c.SQLitePath != "" {
		return c.SQLitePath
	}
	return filepath.Join(c.DataPath(), "gnbirds.sqlite")
}
