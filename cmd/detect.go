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
	"github.com/spf13/cobra"
)

// getDetectCmd returns the detect command.
func getDetectCmd() *cobra.Command {
	var input, format string

	detectCmd := &cobra.Command{
		Use:   "detect [names...]",
		Short: "Detect the naming scheme of names",
		Long: `Find the name type, authority and year that match the largest
number of given names, and list names that do not match it.

Matching is exact. Taxonomies are tried from the smallest one and the
search stops when a scheme matches every name.

Examples:
  gnbirds detect WEGR CLGR RNGR HOGR
  cat names.txt | gnbirds detect -f json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runDetect(cmd, args, input, format)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	namesFlags(detectCmd, &input, &format)

	return detectCmd
}

func runDetect(cmd *cobra.Command, args []string, input, format string) error {
	ctx := cmd.Context()
	f, err := ionames.NewFormat(format)
	if err != nil {
		return err
	}

	names, err := readNames(cmd, args, input)
	if err != nil {
		return err
	}

	gnb, store, err := openBirds(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	scheme, unmatched, err := gnb.Detect(ctx, names)
	if err != nil {
		return err
	}
	return ionames.WriteScheme(cmd.OutOrStdout(), f, scheme, unmatched)
}
