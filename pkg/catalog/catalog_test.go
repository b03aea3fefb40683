package catalog_test

import (
	"testing"

	"github.com/gnames/gnbirds/pkg/catalog"
	"github.com/gnames/gnbirds/pkg/ent/nametype"
	"github.com/gnames/gnbirds/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entries() []catalog.Entry {
	return []catalog.Entry{
		{
			Key:     catalog.Key{Authority: "ebird", Year: 2024},
			Entries: 30,
			Types: []nametype.NameType{
				nametype.EBirdCode, nametype.ScientificName, nametype.CommonName,
			},
		},
		{
			Key:     catalog.Key{Authority: " BBL ", Year: 2025},
			Entries: 10,
			Types:   []nametype.NameType{nametype.ScientificName, nametype.Alpha},
		},
		{
			Key:     catalog.Key{Authority: "ebird", Year: 2025},
			Entries: 20,
			Types:   []nametype.NameType{nametype.CommonName},
		},
	}
}

func TestNew(t *testing.T) {
	cat, err := catalog.New(entries())
	require.NoError(t, err)
	assert.Equal(t, 3, cat.Len())

	e, ok := cat.Entry("BBL", 2025)
	require.True(t, ok)
	assert.Equal(t, "bbl", e.Authority)
	assert.True(t, e.Supports(nametype.Alpha))
	assert.False(t, e.Supports(nametype.Alpha6))

	e, ok = cat.Entry("ebird", 2024)
	require.True(t, ok)
	assert.Equal(t,
		[]nametype.NameType{
			nametype.ScientificName, nametype.CommonName, nametype.EBirdCode,
		},
		e.Types, "types follow nametype.All order",
	)

	_, ok = cat.Entry("ebird", 1999)
	assert.False(t, ok)
}

func TestNewInvalid(t *testing.T) {
	tests := []struct {
		msg   string
		entry catalog.Entry
	}{
		{"empty authority", catalog.Entry{Key: catalog.Key{Authority: " ", Year: 2024}}},
		{"zero year", catalog.Entry{Key: catalog.Key{Authority: "ibp"}}},
		{"negative entries", catalog.Entry{
			Key: catalog.Key{Authority: "ibp", Year: 2024}, Entries: -1,
		}},
		{"duplicate", catalog.Entry{Key: catalog.Key{Authority: "EBIRD", Year: 2025}}},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			_, err := catalog.New(append(entries(), v.entry))
			require.Error(t, err)
			assert.Equal(t, errcode.InvalidCatalogError, errcode.Code(err))
		})
	}
}

func TestYears(t *testing.T) {
	cat, err := catalog.New(entries())
	require.NoError(t, err)

	assert.Equal(t, []string{"bbl", "ebird"}, cat.Authorities())
	assert.Equal(t, []int{2024, 2025}, cat.Years("ebird"))

	year, err := cat.LatestYear("eBird")
	require.NoError(t, err)
	assert.Equal(t, 2025, year)

	_, err = cat.LatestYear("ibp")
	require.Error(t, err)
	assert.True(t, errcode.IsNotFound(err))
}

func TestAuthoritiesSupporting(t *testing.T) {
	cat, err := catalog.New(entries())
	require.NoError(t, err)

	assert.Equal(t, []string{"bbl"}, cat.AuthoritiesSupporting(nametype.Alpha))
	assert.Equal(t, []string{"bbl", "ebird"},
		cat.AuthoritiesSupporting(nametype.ScientificName))
	assert.Empty(t, cat.AuthoritiesSupporting(nametype.FrenchName))
}

func TestCandidates(t *testing.T) {
	cat, err := catalog.New(entries())
	require.NoError(t, err)

	res := cat.Candidates()
	bbl := catalog.Key{Authority: "bbl", Year: 2025}
	eb24 := catalog.Key{Authority: "ebird", Year: 2024}
	eb25 := catalog.Key{Authority: "ebird", Year: 2025}
	exp := []catalog.Candidate{
		{Key: bbl, NameType: nametype.ScientificName},
		{Key: bbl, NameType: nametype.Alpha},
		{Key: eb25, NameType: nametype.CommonName},
		{Key: eb24, NameType: nametype.ScientificName},
		{Key: eb24, NameType: nametype.CommonName},
		{Key: eb24, NameType: nametype.EBirdCode},
	}
	assert.Equal(t, exp, res)
}

func TestEntriesSorted(t *testing.T) {
	cat, err := catalog.New(entries())
	require.NoError(t, err)

	var keys []catalog.Key
	for _, v := range cat.Entries() {
		keys = append(keys, v.Key)
	}
	assert.Equal(t, []catalog.Key{
		{Authority: "bbl", Year: 2025},
		{Authority: "ebird", Year: 2024},
		{Authority: "ebird", Year: 2025},
	}, keys)
}
