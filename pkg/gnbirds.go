// Package gnbirds converts bird names between naming schemes of
// different authorities. It ties detection of the scheme of input names
// to conversion into a target scheme, and applies the unmatched-names
// policy between the two steps.
package gnbirds

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/gnames/gn"
	"github.com/gnames/gnbirds/pkg/config"
	"github.com/gnames/gnbirds/pkg/convert"
	"github.com/gnames/gnbirds/pkg/detect"
	"github.com/gnames/gnbirds/pkg/ent/nametype"
	"github.com/gnames/gnbirds/pkg/ent/policy"
	"github.com/gnames/gnbirds/pkg/lookup"
	"github.com/gnames/gnbirds/pkg/taxonomy"
)

// defaultAuthority is the target authority of a name type when none is
// given.
var defaultAuthority = map[nametype.NameType]string{
	nametype.Alpha:          "bbl",
	nametype.ScientificName: "avilist",
	nametype.CommonName:     "avilist",
	nametype.EBirdCode:      "ebird",
}

// GNbirds is the entry point for detection and conversion of names.
// It is safe for concurrent use.
type GNbirds struct {
	cfg     *config.Config
	reg     *taxonomy.Registry
	builder *lookup.Builder
	det     *detect.Detector
}

// New creates GNbirds. Settings of conversion come from cfg.Convert,
// tables come from reg.
func New(cfg *config.Config, reg *taxonomy.Registry) *GNbirds {
	return &GNbirds{
		cfg:     cfg,
		reg:     reg,
		builder: lookup.NewBuilder(reg),
		det:     detect.New(reg),
	}
}

// Config returns the configuration.
func (g *GNbirds) Config() *config.Config {
	return g.cfg
}

// Registry returns the registry of taxonomy tables.
func (g *GNbirds) Registry() *taxonomy.Registry {
	return g.reg
}

// Detect returns the naming scheme of names and names that do not
// belong to it.
func (g *GNbirds) Detect(
	ctx context.Context,
	names []string,
) (detect.Scheme, []string, error) {
	return g.det.Detect(ctx, names)
}

// Converter creates a converter with explicit parameters.
func (g *GNbirds) Converter(
	ctx context.Context,
	p convert.Params,
) (*convert.Converter, error) {
	return convert.New(ctx, g.builder, p)
}

// To detects the scheme of names and converts them to name type nt.
// The result has one element per input name, in input order.
func (g *GNbirds) To(
	ctx context.Context,
	names []string,
	nt nametype.NameType,
	opts ...Option,
) ([]convert.Result, error) {
	if nt == nametype.Unknown {
		return nil, nametype.UnknownNameTypeError(nt.String())
	}

	p, err := g.params(opts)
	if err != nil {
		return nil, err
	}

	scheme, unmatched, err := g.det.Detect(ctx, names)
	if err != nil {
		return nil, err
	}

	toAuth, err := g.targetAuthority(nt, p.authority, scheme.Authority)
	if err != nil {
		return nil, err
	}

	if err = applyPolicy(p.policy, scheme, unmatched); err != nil {
		return nil, err
	}

	conv, err := g.Converter(ctx, convert.Params{
		Params: lookup.Params{
			FromType:      scheme.NameType,
			ToType:        nt,
			FromAuthority: scheme.Authority,
			ToAuthority:   toAuth,
			FromYear:      scheme.Year,
			ToYear:        p.year,
			SoftMatching:  p.softMatching,
		},
		FuzzyMatching:  p.fuzzyMatching,
		FuzzyThreshold: p.fuzzyThreshold,
	})
	if err != nil {
		return nil, err
	}

	return conv.ConvertMany(names), nil
}

// Alpha converts names to 4-letter alpha codes, by default of `bbl`.
func (g *GNbirds) Alpha(
	ctx context.Context,
	names []string,
	opts ...Option,
) ([]convert.Result, error) {
	return g.To(ctx, names, nametype.Alpha, opts...)
}

// Scientific converts names to scientific names, by default of
// `avilist`.
func (g *GNbirds) Scientific(
	ctx context.Context,
	names []string,
	opts ...Option,
) ([]convert.Result, error) {
	return g.To(ctx, names, nametype.ScientificName, opts...)
}

// Common converts names to English common names, by default of
// `avilist`.
func (g *GNbirds) Common(
	ctx context.Context,
	names []string,
	opts ...Option,
) ([]convert.Result, error) {
	return g.To(ctx, names, nametype.CommonName, opts...)
}

// EBird converts names to eBird species codes.
func (g *GNbirds) EBird(
	ctx context.Context,
	names []string,
	opts ...Option,
) ([]convert.Result, error) {
	return g.To(ctx, names, nametype.EBirdCode, opts...)
}

func (g *GNbirds) params(opts []Option) (params, error) {
	res := params{
		softMatching:   g.cfg.Convert.SoftMatching,
		fuzzyMatching:  g.cfg.Convert.FuzzyMatching,
		fuzzyThreshold: g.cfg.Convert.FuzzyThreshold,
	}
	var err error
	if res.policy, err = policy.New(g.cfg.Convert.UnmatchedPolicy); err != nil {
		return res, err
	}
	for _, opt := range opts {
		opt(&res)
	}
	return res, nil
}

// targetAuthority picks the authority of the result. Without an explicit
// choice the default authority of the name type is used, then the
// source authority, then the first authority that has the name type.
func (g *GNbirds) targetAuthority(
	nt nametype.NameType,
	authority, srcAuthority string,
) (string, error) {
	supported := g.reg.Catalog().AuthoritiesSupporting(nt)

	if authority != "" {
		if !slices.Contains(supported, authority) {
			return "", UnsupportedAuthorityError(nt, authority, supported)
		}
		return authority, nil
	}

	for _, v := range []string{defaultAuthority[nt], srcAuthority} {
		if v != "" && slices.Contains(supported, v) {
			return v, nil
		}
	}
	if len(supported) > 0 {
		return supported[0], nil
	}
	return "", UnsupportedAuthorityError(nt, defaultAuthority[nt], supported)
}

func applyPolicy(p policy.Policy, s detect.Scheme, unmatched []string) error {
	if len(unmatched) == 0 || p == policy.Ignore {
		return nil
	}

	msg := fmt.Sprintf(
		"%d names could not be matched to any known bird name in %s (%s, %d)",
		len(unmatched), s.NameType, s.Authority, s.Year,
	)
	if p == policy.Error {
		return UnmatchedNamesError(msg, unmatched)
	}

	slog.Warn("Unmatched names", "scheme", s, "unmatched", unmatched)
	gn.Warn(msg)
	return nil
}
