package convert_test

import (
	"context"
	"testing"

	"github.com/gnames/gnbirds/internal/iotesting"
	"github.com/gnames/gnbirds/pkg/convert"
	"github.com/gnames/gnbirds/pkg/ent/nametype"
	"github.com/gnames/gnbirds/pkg/errcode"
	"github.com/gnames/gnbirds/pkg/lookup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConverter(t *testing.T, p convert.Params) *convert.Converter {
	t.Helper()
	b := lookup.NewBuilder(iotesting.Registry(t))
	res, err := convert.New(context.Background(), b, p)
	require.NoError(t, err)
	return res
}

func params(
	from nametype.NameType, fromAuth string,
	to nametype.NameType, toAuth string,
) convert.Params {
	return convert.Params{
		Params: lookup.Params{
			FromType:      from,
			FromAuthority: fromAuth,
			ToType:        to,
			ToAuthority:   toAuth,
		},
	}
}

func TestIdentity(t *testing.T) {
	p := params(nametype.ScientificName, "avilist", nametype.ScientificName, "avilist")
	c := newConverter(t, p)
	assert.False(t, c.Lookup().IsBridged())

	tbl, err := iotesting.Registry(t).Table(context.Background(), "avilist", 2025)
	require.NoError(t, err)
	names, _ := tbl.Column("scientific_name")
	for _, v := range names {
		res, ok := c.ConvertOne(v)
		assert.True(t, ok, v)
		assert.Equal(t, v, res)
	}
}

func TestRoundTrip(t *testing.T) {
	fwd := newConverter(t,
		params(nametype.CommonName, "avilist", nametype.ScientificName, "avilist"))
	rev := newConverter(t,
		params(nametype.ScientificName, "avilist", nametype.CommonName, "avilist"))

	for _, v := range fwd.Lookup().Keys() {
		sci, ok := fwd.ConvertOne(v)
		require.True(t, ok)
		back, ok := rev.ConvertOne(sci)
		require.True(t, ok)
		assert.Equal(t, v, back)
	}
}

func TestBridged(t *testing.T) {
	c := newConverter(t,
		params(nametype.EBirdCode, "ebird", nametype.Alpha, "bbl"))
	assert.True(t, c.Lookup().IsBridged())
	assert.Equal(t, 6, c.Lookup().Len())

	toSci := newConverter(t,
		params(nametype.EBirdCode, "ebird", nametype.ScientificName, "ebird"))
	toAlpha := newConverter(t,
		params(nametype.ScientificName, "bbl", nametype.Alpha, "bbl"))

	for _, code := range toSci.Lookup().Keys() {
		sci, _ := toSci.ConvertOne(code)
		exp, inBBL := toAlpha.ConvertOne(sci)
		res, ok := c.ConvertOne(code)
		assert.Equal(t, inBBL, ok, code)
		assert.Equal(t, exp, res, code)
	}

	res, ok := c.ConvertOne("wesgre")
	assert.True(t, ok)
	assert.Equal(t, "WEGR", res)

	_, ok = c.ConvertOne("ostric2")
	assert.False(t, ok, "ostrich has no BBL code")
}

func TestUnmatched(t *testing.T) {
	p := params(nametype.CommonName, "avilist", nametype.ScientificName, "avilist")
	p.FuzzyMatching = true
	c := newConverter(t, p)

	res, ok := c.ConvertOne("Nonexistent Bird")
	assert.False(t, ok)
	assert.Empty(t, res)

	_, ok = c.ConvertOne("")
	assert.False(t, ok)
}

func TestSoftMatching(t *testing.T) {
	p := params(nametype.CommonName, "avilist", nametype.ScientificName, "avilist")
	c := newConverter(t, p)
	_, ok := c.ConvertOne("red necked grebe")
	assert.False(t, ok)

	p.SoftMatching = true
	c = newConverter(t, p)
	tests := []string{"red necked grebe", "RED-NECKED GREBE", " Red__necked  Grebe "}
	for _, v := range tests {
		res, ok := c.ConvertOne(v)
		assert.True(t, ok, v)
		assert.Equal(t, "Podiceps grisegena", res, v)
	}

	_, ok = c.ConvertOne(" -_ ")
	assert.False(t, ok, "separators only")
}

func TestFuzzy(t *testing.T) {
	tests := []struct {
		msg   string
		soft  bool
		fuzzy bool
		found bool
	}{
		{"no fuzzy", true, false, false},
		{"fuzzy soft", true, true, true},
		{"fuzzy exact", false, true, true},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			p := params(nametype.CommonName, "avilist",
				nametype.ScientificName, "avilist")
			p.SoftMatching = v.soft
			p.FuzzyMatching = v.fuzzy
			c := newConverter(t, p)

			res, ok := c.ConvertOne("Comon Ostrich")
			assert.Equal(t, v.found, ok)
			if v.found {
				assert.Equal(t, "Struthio camelus", res)
			}
		})
	}
}

func TestFuzzyOnlyOnMiss(t *testing.T) {
	p := params(nametype.CommonName, "avilist", nametype.ScientificName, "avilist")
	p.FuzzyMatching = true
	p.FuzzyThreshold = 0.5
	c := newConverter(t, p)

	res := c.ConvertMany([]string{"Somali Ostrich", "Somali Ostrch"})
	assert.Equal(t, "Struthio molybdophanes", res[0].Value)
	assert.False(t, res[0].Fuzzy)
	assert.Equal(t, "Struthio molybdophanes", res[1].Value)
	assert.True(t, res[1].Fuzzy)
}

func TestConvertMany(t *testing.T) {
	p := params(nametype.Alpha, "bbl", nametype.CommonName, "avilist")
	p.SoftMatching = true
	c := newConverter(t, p)

	names := []string{"WEGR", "", "nope", "wegr", "blja"}
	res := c.ConvertMany(names)
	require.Len(t, res, len(names))
	for i, v := range res {
		assert.Equal(t, names[i], v.Input)
		exp, ok := c.ConvertOne(names[i])
		assert.Equal(t, exp, v.Value)
		assert.Equal(t, ok, v.Found)
	}

	assert.Equal(t,
		[]string{"Western Grebe", "", "", "Western Grebe", "Blue Jay"},
		c.Values(names),
	)
	assert.Empty(t, c.ConvertMany(nil))
}

func TestParams(t *testing.T) {
	p := params(nametype.CommonName, "AviList", nametype.EBirdCode, "ebird")
	p.FromYear = 2024
	c := newConverter(t, p)

	res := c.Params()
	assert.Equal(t, "avilist", res.FromAuthority)
	assert.Equal(t, 2024, res.FromYear)
	assert.Equal(t, 2025, res.ToYear)
	assert.Equal(t, 0.8, res.FuzzyThreshold)

	v, ok := c.ConvertOne("Horned Grebe")
	assert.True(t, ok)
	assert.Equal(t, "horgre", v)
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		msg      string
		p        convert.Params
		notFound bool
	}{
		{"unknown authority",
			params(nametype.CommonName, "clements", nametype.ScientificName, "avilist"),
			true},
		{"unknown year",
			func() convert.Params {
				p := params(nametype.CommonName, "avilist", nametype.ScientificName, "avilist")
				p.ToYear = 1999
				return p
			}(),
			true},
		{"unsupported type",
			params(nametype.CommonName, "avilist", nametype.Alpha6, "bbl"),
			false},
		{"unknown type",
			params(nametype.Unknown, "avilist", nametype.Alpha, "bbl"),
			false},
	}

	b := lookup.NewBuilder(iotesting.Registry(t))
	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			c, err := convert.New(context.Background(), b, v.p)
			require.Error(t, err)
			assert.Nil(t, c)
			assert.Equal(t, v.notFound, errcode.IsNotFound(err))
			assert.Equal(t, !v.notFound, errcode.IsInvalidArgument(err))
		})
	}
}
