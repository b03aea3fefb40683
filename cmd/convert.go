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
	"github.com/gnames/gnbirds/pkg/convert"
	"github.com/gnames/gnbirds/pkg/ent/nametype"
	"github.com/gnames/gnbirds/pkg/lookup"
	"github.com/spf13/cobra"
)

type convertFlags struct {
	fromType, toType string
	fromAuth, toAuth string
	fromYear, toYear int
	input, format    string
}

// getConvertCmd returns the convert command.
func getConvertCmd() *cobra.Command {
	var f convertFlags

	convertCmd := &cobra.Command{
		Use:   "convert [names...]",
		Short: "Convert names from one naming scheme to another",
		Long: `Convert names from a known naming scheme to another one.

A scheme is a name type of a taxonomy of an authority. If the target
authority differs from the source one, names are joined through
scientific names. Names without a match produce empty output.

Name types: scientific_name, common_name, alpha, alpha6, ebird_code,
order, family, genus, french_name.

Examples:
  gnbirds convert --from-type alpha --from-authority bbl \
    --to-type ebird_code --to-authority ebird AMRO BLJA

  gnbirds convert --from-type common_name --from-authority avilist \
    --to-type scientific_name --fuzzy -i names.txt -f csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runConvert(cmd, args, f)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	fl := convertCmd.Flags()
	fl.StringVar(&f.fromType, "from-type", "", "name type of input names")
	fl.StringVar(&f.toType, "to-type", "", "name type of output names")
	fl.StringVar(&f.fromAuth, "from-authority", "", "authority of input names")
	fl.StringVar(&f.toAuth, "to-authority", "",
		"authority of output names (default: --from-authority)")
	fl.IntVar(&f.fromYear, "from-year", 0,
		"year of the source taxonomy (default: most recent)")
	fl.IntVar(&f.toYear, "to-year", 0,
		"year of the target taxonomy (default: most recent)")
	_ = convertCmd.MarkFlagRequired("from-type")
	_ = convertCmd.MarkFlagRequired("to-type")
	_ = convertCmd.MarkFlagRequired("from-authority")
	matchFlags(convertCmd)
	namesFlags(convertCmd, &f.input, &f.format)

	return convertCmd
}

func runConvert(cmd *cobra.Command, args []string, f convertFlags) error {
	ctx := cmd.Context()
	cfg.Update(matchFlagOpts(cmd))

	format, err := ionames.NewFormat(f.format)
	if err != nil {
		return err
	}
	fromType, err := nametype.Parse(f.fromType)
	if err != nil {
		return err
	}
	toType, err := nametype.Parse(f.toType)
	if err != nil {
		return err
	}
	if f.toAuth == "" {
		f.toAuth = f.fromAuth
	}

	gnb, store, err := openBirds(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	conv, err := gnb.Converter(ctx, convert.Params{
		Params: lookup.Params{
			FromType:      fromType,
			ToType:        toType,
			FromAuthority: f.fromAuth,
			ToAuthority:   f.toAuth,
			FromYear:      f.fromYear,
			ToYear:        f.toYear,
			SoftMatching:  cfg.Convert.SoftMatching,
		},
		FuzzyMatching:  cfg.Convert.FuzzyMatching,
		FuzzyThreshold: cfg.Convert.FuzzyThreshold,
	})
	if err != nil {
		return err
	}

	names, err := readNames(cmd, args, f.input)
	if err != nil {
		return err
	}

	return ionames.WriteResults(cmd.OutOrStdout(), format, conv.ConvertMany(names))
}
