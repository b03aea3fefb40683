/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnbirds/internal/iofs"
	"github.com/gnames/gnbirds/internal/iologger"
	gnbirds "github.com/gnames/gnbirds/pkg"
	"github.com/gnames/gnbirds/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cfg is the effective configuration, it is set by bootstrap before any
// subcommand runs.
var cfg *config.Config

// getRootCmd returns the root command with all subcommands.
// Extracted as a function to facilitate testing.
func getRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s",
			gnbirds.Version, gnbirds.Build),
		Use:   "gnbirds",
		Short: "GNbirds converts bird names between naming authorities",
		Long: `GNbirds detects the naming scheme of a list of bird names and
converts them to another scheme: scientific names, English and French
common names, 4- and 6-letter alpha codes and eBird species codes of
AviList, eBird/Clements, BBL and IBP taxonomies.

Names of different authorities are joined by scientific names.

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (GNBIRDS_*)
  3. Config file (~/.config/gnbirds/config.yaml)
  4. Built-in defaults

Environment Variables:
  Nested fields use underscores (convert.fuzzy_matching →
  GNBIRDS_CONVERT_FUZZY_MATCHING).

  Examples:
    GNBIRDS_STORE                   csv, sqlite or postgres
    GNBIRDS_DATA_DIR                directory with taxonomy CSV files
    GNBIRDS_CONVERT_SOFT_MATCHING   ignore case and separators
    GNBIRDS_CONVERT_UNMATCHED_POLICY ignore, warn or error
    GNBIRDS_DATABASE_HOST           PostgreSQL host
    GNBIRDS_LOG_LEVEL               debug, info, warn or error`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			err := bootstrap(cmd, cfgFile)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Remove the automatic "gnbirds version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for gnbirds")

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "",
		"config file (default ~/.config/gnbirds/config.yaml)")
	pf.StringP("store", "s", "", "taxonomy store: csv, sqlite or postgres")
	pf.StringP("data-dir", "d", "", "directory of the CSV store")
	pf.StringP("sqlite-path", "q", "", "file of the sqlite store")

	rootCmd.AddCommand(
		getConvertCmd(),
		getDetectCmd(),
		getToCmd(),
		getListCmd(),
		getImportCmd(),
		getConfigCmd(),
	)

	return rootCmd
}

func bootstrap(cmd *cobra.Command, cfgFile string) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		return err
	}

	// Logging with defaults until the config is read.
	defaultLog := config.New().Log
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		return err
	}

	if cfgFile == "" {
		if err = iofs.EnsureConfigFile(homeDir); err != nil {
			return err
		}
		cfgFile = config.ConfigFilePath(homeDir)
	}

	cfgViper, err := initConfig(cfgFile)
	if err != nil {
		return err
	}

	cfg = config.New()
	cfg.Update(cfgViper.ToOptions())
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})
	cfg.Update(storeFlagOpts(cmd))

	if err = iologger.Init(config.LogDir(homeDir), cfg.Log, true); err != nil {
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", cfgFile, "store", cfg.Store)
	return nil
}

// Execute runs the root command. This is called by main.main().
// It only needs to happen once.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := getRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func initConfig(path string) (*config.Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	initEnvVars(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(path, err)
	}

	var res config.Config
	if err := v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(path, err)
	}

	// Booleans absent from the file and env keep their defaults.
	def := config.New().Convert
	if !v.IsSet("convert.soft_matching") {
		res.Convert.SoftMatching = def.SoftMatching
	}
	if !v.IsSet("convert.fuzzy_matching") {
		res.Convert.FuzzyMatching = def.FuzzyMatching
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix("GNBIRDS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Store configuration
	_ = v.BindEnv("store", "GNBIRDS_STORE")
	_ = v.BindEnv("data_dir", "GNBIRDS_DATA_DIR")
	_ = v.BindEnv("sqlite_path", "GNBIRDS_SQLITE_PATH")

	// Database configuration
	_ = v.BindEnv("database.host", "GNBIRDS_DATABASE_HOST")
	_ = v.BindEnv("database.port", "GNBIRDS_DATABASE_PORT")
	_ = v.BindEnv("database.user", "GNBIRDS_DATABASE_USER")
	_ = v.BindEnv("database.password", "GNBIRDS_DATABASE_PASSWORD")
	_ = v.BindEnv("database.database", "GNBIRDS_DATABASE_DATABASE")
	_ = v.BindEnv("database.ssl_mode", "GNBIRDS_DATABASE_SSL_MODE")
	_ = v.BindEnv("database.batch_size", "GNBIRDS_DATABASE_BATCH_SIZE")

	// Convert configuration
	_ = v.BindEnv("convert.soft_matching", "GNBIRDS_CONVERT_SOFT_MATCHING")
	_ = v.BindEnv("convert.fuzzy_matching", "GNBIRDS_CONVERT_FUZZY_MATCHING")
	_ = v.BindEnv("convert.fuzzy_threshold", "GNBIRDS_CONVERT_FUZZY_THRESHOLD")
	_ = v.BindEnv("convert.unmatched_policy", "GNBIRDS_CONVERT_UNMATCHED_POLICY")

	// Log configuration
	_ = v.BindEnv("log.level", "GNBIRDS_LOG_LEVEL")
	_ = v.BindEnv("log.format", "GNBIRDS_LOG_FORMAT")
	_ = v.BindEnv("log.destination", "GNBIRDS_LOG_DESTINATION")

	// General configuration
	_ = v.BindEnv("jobs_number", "GNBIRDS_JOBS_NUMBER")

	v.AutomaticEnv()
}
