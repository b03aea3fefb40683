package gnbirds_test

import (
	"context"
	"testing"

	"github.com/gnames/gnbirds/internal/iotesting"
	gnbirds "github.com/gnames/gnbirds/pkg"
	"github.com/gnames/gnbirds/pkg/config"
	"github.com/gnames/gnbirds/pkg/convert"
	"github.com/gnames/gnbirds/pkg/ent/nametype"
	"github.com/gnames/gnbirds/pkg/ent/policy"
	"github.com/gnames/gnbirds/pkg/errcode"
	"github.com/gnames/gnbirds/pkg/lookup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBirds(t *testing.T) *gnbirds.GNbirds {
	return gnbirds.New(config.New(), iotesting.Registry(t))
}

func values(res []convert.Result) []string {
	out := make([]string, len(res))
	for i, v := range res {
		out[i] = v.Value
	}
	return out
}

func TestWrappers(t *testing.T) {
	ctx := context.Background()
	gnb := newBirds(t)

	tests := []struct {
		msg   string
		fn    func(context.Context, []string, ...gnbirds.Option) ([]convert.Result, error)
		names []string
		opts  []gnbirds.Option
		exp   []string
	}{
		{
			msg:   "common to bbl alpha",
			fn:    gnb.Alpha,
			names: []string{"Western Grebe", "Blue Jay", "notabird"},
			exp:   []string{"WEGR", "BLJA", ""},
		},
		{
			msg:   "ebird codes to scientific",
			fn:    gnb.Scientific,
			names: []string{"wesgre", "blujay"},
			exp:   []string{"Aechmophorus occidentalis", "Cyanocitta cristata"},
		},
		{
			msg:   "alpha to ebird code",
			fn:    gnb.EBird,
			names: []string{"AMRO", "BLJA", "WEGR", "CLGR"},
			exp:   []string{"amerob", "blujay", "wesgre", "clagre"},
		},
		{
			msg:   "scientific to bbl alpha misses",
			fn:    gnb.Alpha,
			names: []string{"Pica hudsonia", "Struthio camelus"},
			exp:   []string{"", ""},
		},
		{
			msg:   "scientific to ibp alpha",
			fn:    gnb.Alpha,
			names: []string{"Pica hudsonia", "Struthio camelus"},
			opts:  []gnbirds.Option{gnbirds.OptAuthority("IBP")},
			exp:   []string{"BBMA", "COOS"},
		},
		{
			msg:   "alpha to avilist common of 2024",
			fn:    gnb.Common,
			names: []string{"AMRO", "HOGR"},
			opts:  []gnbirds.Option{gnbirds.OptYear(2024)},
			exp:   []string{"American Robin", "Horned Grebe"},
		},
		{
			msg:   "typo without fuzzy matching",
			fn:    gnb.Common,
			names: []string{"Westren Grebe", "Blue Jay", "American Robin"},
			exp:   []string{"", "Blue Jay", "American Robin"},
		},
		{
			msg:   "typo with fuzzy matching",
			fn:    gnb.Common,
			names: []string{"Westren Grebe", "Blue Jay", "American Robin"},
			opts:  []gnbirds.Option{gnbirds.OptFuzzyMatching(true)},
			exp:   []string{"Western Grebe", "Blue Jay", "American Robin"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			res, err := tt.fn(ctx, tt.names, tt.opts...)
			require.NoError(t, err)
			require.Len(t, res, len(tt.names))
			assert.Equal(t, tt.exp, values(res))
			for i, v := range res {
				assert.Equal(t, tt.names[i], v.Input)
			}
		})
	}
}

func TestToGenus(t *testing.T) {
	gnb := newBirds(t)
	res, err := gnb.To(context.Background(),
		[]string{"Pica hudsonia", "Turdus migratorius"}, nametype.Genus)
	require.NoError(t, err)
	assert.Equal(t, []string{"Pica", "Turdus"}, values(res))
}

func TestPolicy(t *testing.T) {
	ctx := context.Background()
	names := []string{"Western Grebe", "Blue Jay", "notabird"}

	gnb := newBirds(t)
	res, err := gnb.Alpha(ctx, names, gnbirds.OptPolicy(policy.Warn))
	require.NoError(t, err)
	assert.Equal(t, []string{"WEGR", "BLJA", ""}, values(res))

	_, err = gnb.Alpha(ctx, names, gnbirds.OptPolicy(policy.Error))
	assert.Equal(t, errcode.UnmatchedNamesError, errcode.Code(err))
	assert.True(t, errcode.IsInvalidArgument(err))
	assert.Contains(t, err.Error(),
		"1 names could not be matched to any known bird name in common_name (bbl, 2025)")

	// the policy only matters for unmatched names
	_, err = gnb.Alpha(ctx, names[:2], gnbirds.OptPolicy(policy.Error))
	assert.NoError(t, err)

	cfg := config.New()
	cfg.Update([]config.Option{config.OptConvertUnmatchedPolicy("error")})
	gnb = gnbirds.New(cfg, iotesting.Registry(t))
	_, err = gnb.Alpha(ctx, names)
	assert.Equal(t, errcode.UnmatchedNamesError, errcode.Code(err))
}

func TestErrors(t *testing.T) {
	ctx := context.Background()
	gnb := newBirds(t)

	_, err := gnb.Alpha(ctx, []string{"Blue Jay"}, gnbirds.OptAuthority("avilist"))
	assert.Equal(t, errcode.UnsupportedNameTypeError, errcode.Code(err))
	assert.True(t, errcode.IsInvalidArgument(err))

	_, err = gnb.Alpha(ctx, []string{"", "  "})
	assert.Equal(t, errcode.EmptyInputError, errcode.Code(err))

	_, err = gnb.Alpha(ctx, []string{"xyzzy"})
	assert.True(t, errcode.IsNotFound(err))

	_, err = gnb.To(ctx, []string{"Blue Jay"}, nametype.Unknown)
	assert.Equal(t, errcode.UnknownNameTypeError, errcode.Code(err))

	_, err = gnb.Alpha(ctx, []string{"Blue Jay"}, gnbirds.OptYear(1990))
	assert.True(t, errcode.IsNotFound(err))

	cfg := config.New()
	cfg.Convert.UnmatchedPolicy = "shout"
	_, err = gnbirds.New(cfg, iotesting.Registry(t)).Alpha(ctx, []string{"Blue Jay"})
	assert.Equal(t, errcode.UnknownPolicyError, errcode.Code(err))
}

func TestDetectAndConverter(t *testing.T) {
	ctx := context.Background()
	gnb := newBirds(t)

	s, unmatched, err := gnb.Detect(ctx, []string{"WEGR", "CLGR", "RNGR", "HOGR"})
	require.NoError(t, err)
	assert.Equal(t, nametype.Alpha, s.NameType)
	assert.Equal(t, "bbl", s.Authority)
	assert.Equal(t, iotesting.LatestBBLYear, s.Year)
	assert.Empty(t, unmatched)

	conv, err := gnb.Converter(ctx, convert.Params{
		Params: lookup.Params{
			FromType:      nametype.Alpha,
			ToType:        nametype.FrenchName,
			FromAuthority: "bbl",
			ToAuthority:   "bbl",
			SoftMatching:  true,
		},
	})
	require.NoError(t, err)
	res, ok := conv.ConvertOne(" Blja ")
	assert.True(t, ok)
	assert.Equal(t, "Geai bleu", res)
}
