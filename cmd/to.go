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
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnbirds/internal/ionames"
	gnbirds "github.com/gnames/gnbirds/pkg"
	"github.com/gnames/gnbirds/pkg/ent/nametype"
	"github.com/spf13/cobra"
)

// typeAliases are short names of the target types of the `to` command.
var typeAliases = map[string]nametype.NameType{
	"scientific": nametype.ScientificName,
	"common":     nametype.CommonName,
	"ebird":      nametype.EBirdCode,
	"french":     nametype.FrenchName,
}

// getToCmd returns the to command.
func getToCmd() *cobra.Command {
	var (
		input, format, authority string
		year                     int
	)

	toCmd := &cobra.Command{
		Use:   "to TYPE [names...]",
		Short: "Detect the scheme of names and convert them to TYPE",
		Long: `Detect the naming scheme of names and convert them to TYPE.

TYPE is alpha, scientific, common, ebird, french or any name type token
(alpha6, order, family, genus...). Default authorities are bbl for
alpha, avilist for scientific and common names and ebird for eBird
codes.

Names outside of the detected scheme are handled according to
--unmatched (or convert.unmatched_policy of the config):
  ignore  they give empty output
  warn    same as ignore, with a warning
  error   nothing is converted

Examples:
  gnbirds to alpha "Western Grebe" "Clark's Grebe"
  gnbirds to scientific --unmatched warn -i codes.txt -f tsv
  gnbirds to alpha --authority ibp --year 2024 "Pica hudsonia"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runTo(cmd, args, input, format, authority, year)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	toCmd.Flags().StringVarP(&authority, "authority", "a", "",
		"authority of output names")
	toCmd.Flags().IntVarP(&year, "year", "y", 0,
		"year of the target taxonomy (default: most recent)")
	toCmd.Flags().StringP("unmatched", "u", "ignore",
		"treatment of names outside of the detected scheme: ignore, warn or error")
	matchFlags(toCmd)
	namesFlags(toCmd, &input, &format)

	return toCmd
}

func toType(s string) (nametype.NameType, error) {
	if res, ok := typeAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return res, nil
	}
	return nametype.Parse(s)
}

func runTo(
	cmd *cobra.Command,
	args []string,
	input, format, authority string,
	year int,
) error {
	ctx := cmd.Context()
	cfg.Update(matchFlagOpts(cmd))

	f, err := ionames.NewFormat(format)
	if err != nil {
		return err
	}
	nt, err := toType(args[0])
	if err != nil {
		return err
	}

	names, err := readNames(cmd, args[1:], input)
	if err != nil {
		return err
	}

	gnb, store, err := openBirds(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := []gnbirds.Option{gnbirds.OptYear(year)}
	if authority != "" {
		opts = append(opts, gnbirds.OptAuthority(authority))
	}
	res, err := gnb.To(ctx, names, nt, opts...)
	if err != nil {
		return err
	}
	return ionames.WriteResults(cmd.OutOrStdout(), f, res)
}
