package fuzzy_test

import (
	"testing"

	"github.com/gnames/gnbirds/pkg/fuzzy"
	"github.com/stretchr/testify/assert"
)

var birds = []string{
	"common ostrich",
	"somali ostrich",
	"western grebe",
	"clark's grebe",
	"red necked grebe",
}

func TestMatch(t *testing.T) {
	tests := []struct {
		msg   string
		query string
		res   string
		ok    bool
	}{
		{"exact", "western grebe", "western grebe", true},
		{"one letter missing", "comon ostrich", "common ostrich", true},
		{"transposition", "wsetern grebe", "western grebe", true},
		{"too different", "emu", "", false},
		{"empty query", "", "", false},
	}

	m := fuzzy.New(fuzzy.DefaultThreshold)
	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			res, ok := m.Match(v.query, birds)
			assert.Equal(t, v.ok, ok)
			assert.Equal(t, v.res, res)
		})
	}
}

func TestMatchNoCandidates(t *testing.T) {
	res, ok := fuzzy.Match("common ostrich", nil, 0.8)
	assert.False(t, ok)
	assert.Empty(t, res)
}

func TestMatchTieIsDeterministic(t *testing.T) {
	// both candidates are one substitution away
	cands := []string{"abcx", "abcy"}
	for range 10 {
		res, ok := fuzzy.Match("abcz", cands, 0.7)
		assert.True(t, ok)
		assert.Equal(t, "abcx", res)
	}
	res, _ := fuzzy.Match("abcz", []string{"abcy", "abcx"}, 0.7)
	assert.Equal(t, "abcy", res)
}

func TestThreshold(t *testing.T) {
	assert.Equal(t, fuzzy.DefaultThreshold, fuzzy.New(0).Threshold())
	assert.Equal(t, fuzzy.DefaultThreshold, fuzzy.New(1.5).Threshold())
	assert.Equal(t, 0.9, fuzzy.New(0.9).Threshold())

	// similarity of "abcz"/"abcx" is 0.75
	_, ok := fuzzy.Match("abcz", []string{"abcx"}, 0.8)
	assert.False(t, ok)
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, fuzzy.Similarity("grebe", "grebe"))
	assert.InDelta(t, 0.75, fuzzy.Similarity("abcz", "abcx"), 0.0001)
	assert.Less(t, fuzzy.Similarity("emu", "common ostrich"), 0.5)
}

func TestSimilarityNoPrefixBonus(t *testing.T) {
	tests := []struct {
		a, b string
		exp  float64
	}{
		{"abcdefgh", "abcdefgx", 0.875},
		{"xbcdefgh", "abcdefgh", 0.875},
		{"grebe", "grebes", 5.0 / 6},
		{"Comon Ostrich", "Common Ostrich", 13.0 / 14},
	}
	for _, tt := range tests {
		res := fuzzy.Similarity(tt.a, tt.b)
		assert.InDelta(t, tt.exp, res, 0.0001, tt.a)

		la, lb := float64(len(tt.a)), float64(len(tt.b))
		assert.LessOrEqual(t, res, min(la, lb)/max(la, lb), tt.a)
	}
}
