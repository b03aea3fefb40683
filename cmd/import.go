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
	"github.com/gnames/gn"
	"github.com/gnames/gnbirds/internal/ioimport"
	"github.com/gnames/gnbirds/internal/iopg"
	"github.com/gnames/gnbirds/internal/iostore"
	"github.com/spf13/cobra"
)

// getImportCmd returns the import command.
func getImportCmd() *cobra.Command {
	importCmd := &cobra.Command{
		Use:   "import DIR",
		Short: "Import standardized taxonomy CSV files into the store",
		Long: `Import taxonomy tables from DIR into the configured store.

Files are searched recursively and must be named
{authority}_{year}_taxonomy.csv. Columns are scientific_name, genus,
and {authority}_{name_type} for other name types, for example
ebird_ebird_code or bbl_alpha. A missing genus column is derived from
scientific names. Tables with the same authority and year are replaced.
With --reset the PostgreSQL store is emptied before the import.

Examples:
  gnbirds import ~/birds/processed
  gnbirds import --store sqlite ~/birds/processed
  gnbirds import --store postgres --reset ~/birds/processed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runImport(cmd, args[0])
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	importCmd.Flags().Bool("reset", false,
		"drop existing taxonomy tables first (postgres store only)")

	return importCmd
}

func runImport(cmd *cobra.Command, dir string) error {
	ctx := cmd.Context()

	if reset, _ := cmd.Flags().GetBool("reset"); reset {
		if cfg.Store != "postgres" {
			gn.Warn("<em>--reset</em> is ignored for the %s store", cfg.Store)
		} else if err := iopg.Reset(ctx, &cfg.Database); err != nil {
			return err
		}
	}

	store, err := iostore.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	gn.Info("Importing taxonomies to <em>%s</em> store", cfg.Store)
	_, err = ioimport.New(store, cfg.JobsNumber).Import(ctx, dir)
	return err
}
