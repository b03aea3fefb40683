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
	"github.com/gnames/gnbirds/internal/ionames"
	"github.com/gnames/gnbirds/internal/iostore"
	"github.com/spf13/cobra"
)

// getListCmd returns the list command.
func getListCmd() *cobra.Command {
	var format string

	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List available taxonomies and their name types",
		Long: `List taxonomies of the configured store with the number of entries
and name types each of them supports.

On a terminal the list is a table, otherwise it is TSV.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runList(cmd, format)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	listCmd.Flags().StringVarP(&format, "format", "f", "text",
		"output format: text, csv, tsv or json")

	return listCmd
}

func runList(cmd *cobra.Command, format string) error {
	ctx := cmd.Context()
	f, err := ionames.NewFormat(format)
	if err != nil {
		return err
	}

	store, err := iostore.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	cat, err := store.Catalog(ctx)
	if err != nil {
		return err
	}
	if cat.Len() == 0 {
		gn.Warn("No taxonomies found, use <em>gnbirds import</em> to add them")
	}
	return ionames.WriteCatalog(cmd.OutOrStdout(), f, cat)
}
