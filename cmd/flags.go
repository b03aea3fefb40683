package cmd

import (
	"context"
	"os"

	"github.com/gnames/gn"
	"github.com/gnames/gnbirds/internal/ionames"
	"github.com/gnames/gnbirds/internal/iostore"
	gnbirds "github.com/gnames/gnbirds/pkg"
	"github.com/gnames/gnbirds/pkg/config"
	"github.com/gnames/gnbirds/pkg/taxonomy"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// storeFlagOpts converts persistent store flags that were set by the
// user to config options.
func storeFlagOpts(cmd *cobra.Command) []config.Option {
	var res []config.Option
	flags := cmd.Flags()
	if flags.Changed("store") {
		s, _ := flags.GetString("store")
		res = append(res, config.OptStore(s))
	}
	if flags.Changed("data-dir") {
		s, _ := flags.GetString("data-dir")
		res = append(res, config.OptDataDir(s))
	}
	if flags.Changed("sqlite-path") {
		s, _ := flags.GetString("sqlite-path")
		res = append(res, config.OptSQLitePath(s))
	}
	return res
}

// namesFlags adds flags for input of names and output format.
func namesFlags(cmd *cobra.Command, input, format *string) {
	cmd.Flags().StringVarP(input, "input", "i", "",
		"file with one name per line (default: arguments or STDIN)")
	cmd.Flags().StringVarP(format, "format", "f", "text",
		"output format: text, csv, tsv or json")
}

// matchFlags adds flags that change how names are matched.
func matchFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("soft", true,
		"ignore case and differences in spaces, dashes and underscores")
	cmd.Flags().Bool("fuzzy", false,
		"try approximate matching for names without an exact match")
	cmd.Flags().Float64("fuzzy-threshold", 0.8,
		"minimal similarity of a fuzzy match, (0, 1]")
}

// matchFlagOpts converts match flags that were set by the user to
// config options.
func matchFlagOpts(cmd *cobra.Command) []config.Option {
	var res []config.Option
	flags := cmd.Flags()
	if flags.Changed("soft") {
		b, _ := flags.GetBool("soft")
		res = append(res, config.OptConvertSoftMatching(b))
	}
	if flags.Changed("fuzzy") {
		b, _ := flags.GetBool("fuzzy")
		res = append(res, config.OptConvertFuzzyMatching(b))
	}
	if flags.Changed("fuzzy-threshold") {
		f, _ := flags.GetFloat64("fuzzy-threshold")
		res = append(res, config.OptConvertFuzzyThreshold(f))
	}
	if flags.Lookup("unmatched") != nil && flags.Changed("unmatched") {
		s, _ := flags.GetString("unmatched")
		res = append(res, config.OptConvertUnmatchedPolicy(s))
	}
	return res
}

// readNames reads names from a file, arguments or piped STDIN. Nothing
// is read from an interactive terminal.
func readNames(cmd *cobra.Command, args []string, input string) ([]string, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && input == "" && len(args) == 0 {
		if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
			in = nil
		}
	}
	res, err := ionames.Read(args, input, in)
	if err != nil {
		return nil, err
	}
	if len(res) == 0 {
		gn.Warn("No names were given")
	}
	return res, nil
}

// openBirds opens the configured store and creates GNbirds on top of
// it. The caller closes the store.
func openBirds(ctx context.Context) (*gnbirds.GNbirds, taxonomy.Store, error) {
	store, err := iostore.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	reg, err := iostore.NewRegistry(ctx, store)
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	return gnbirds.New(cfg, reg), store, nil
}
