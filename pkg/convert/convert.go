// Package convert translates bird names from one naming scheme to
// another using a lookup, optionally falling back to approximate
// matching on a miss.
package convert

import (
	"context"

	"github.com/gnames/gnbirds/pkg/fuzzy"
	"github.com/gnames/gnbirds/pkg/lookup"
	"github.com/gnames/gnbirds/pkg/normalize"
)

// Params configure a Converter.
type Params struct {
	lookup.Params

	// FuzzyMatching enables approximate matching of names that have no
	// exact match.
	FuzzyMatching bool

	// FuzzyThreshold is the minimal similarity of an approximate match.
	// Values outside of (0, 1] mean fuzzy.DefaultThreshold.
	FuzzyThreshold float64
}

// Result is the outcome of converting one name. Found is false when
// the name has no match.
type Result struct {
	Input string `json:"input"`
	Value string `json:"value,omitempty"`
	Found bool   `json:"found"`
	Fuzzy bool   `json:"fuzzy,omitempty"`
}

// Converter converts names with one Lookup. It is immutable after
// creation and safe for concurrent use.
type Converter struct {
	params  Params
	lkp     *lookup.Lookup
	matcher fuzzy.Matcher
	keys    []string
}

// New builds a lookup and creates a Converter. Invalid parameters or
// missing tables make New fail, a Converter is never partially usable.
func New(ctx context.Context, b *lookup.Builder, p Params) (*Converter, error) {
	lkp, err := b.Build(ctx, p.Params)
	if err != nil {
		return nil, err
	}
	return FromLookup(lkp, p.FuzzyMatching, p.FuzzyThreshold), nil
}

// FromLookup creates a Converter from an already built Lookup.
func FromLookup(lkp *lookup.Lookup, fuzzyMatching bool, threshold float64) *Converter {
	m := fuzzy.New(threshold)
	res := Converter{
		params: Params{
			Params:         lkp.Params(),
			FuzzyMatching:  fuzzyMatching,
			FuzzyThreshold: m.Threshold(),
		},
		lkp:     lkp,
		matcher: m,
	}
	if fuzzyMatching {
		res.keys = lkp.Keys()
	}
	return &res
}

// Params returns parameters of the converter with resolved years.
func (c *Converter) Params() Params {
	return c.params
}

// Lookup returns the lookup used by the converter.
func (c *Converter) Lookup() *lookup.Lookup {
	return c.lkp
}

// ConvertOne returns the converted name. The second value is false if
// the name could not be matched.
func (c *Converter) ConvertOne(name string) (string, bool) {
	res := c.convert(name)
	return res.Value, res.Found
}

// ConvertMany converts names keeping their order. The result has the
// same length as the input.
func (c *Converter) ConvertMany(names []string) []Result {
	res := make([]Result, len(names))
	for i, v := range names {
		res[i] = c.convert(v)
	}
	return res
}

// Values converts names and returns converted values, with empty
// strings for names that were not matched.
func (c *Converter) Values(names []string) []string {
	res := make([]string, len(names))
	for i, v := range names {
		res[i], _ = c.ConvertOne(v)
	}
	return res
}

func (c *Converter) convert(name string) Result {
	res := Result{Input: name}
	if name == "" {
		return res
	}

	key := name
	if c.params.SoftMatching {
		key = normalize.String(name)
		if key == "" {
			return res
		}
	}

	if res.Value, res.Found = c.lkp.Get(key); res.Found {
		return res
	}

	if !c.params.FuzzyMatching {
		return res
	}
	match, ok := c.matcher.Match(key, c.keys)
	if !ok {
		return res
	}
	res.Value, res.Found = c.lkp.Get(match)
	res.Fuzzy = res.Found
	return res
}
