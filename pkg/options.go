package gnbirds

import (
	"github.com/gnames/gnbirds/pkg/catalog"
	"github.com/gnames/gnbirds/pkg/ent/policy"
)

type params struct {
	authority      string
	year           int
	softMatching   bool
	fuzzyMatching  bool
	fuzzyThreshold float64
	policy         policy.Policy
}

// Option changes conversion settings of one call. Settings that are not
// changed come from the configuration.
type Option func(*params)

// OptAuthority sets the authority of the target names.
func OptAuthority(s string) Option {
	return func(p *params) {
		p.authority = catalog.NormAuthority(s)
	}
}

// OptYear sets the year of the target taxonomy, 0 means the most recent.
func OptYear(i int) Option {
	return func(p *params) {
		p.year = i
	}
}

// OptSoftMatching toggles case and separator insensitive matching.
func OptSoftMatching(b bool) Option {
	return func(p *params) {
		p.softMatching = b
	}
}

// OptFuzzyMatching toggles approximate matching of names without an
// exact match.
func OptFuzzyMatching(b bool) Option {
	return func(p *params) {
		p.fuzzyMatching = b
	}
}

// OptFuzzyThreshold sets the minimal similarity of a fuzzy match.
func OptFuzzyThreshold(f float64) Option {
	return func(p *params) {
		p.fuzzyThreshold = f
	}
}

// OptPolicy sets the treatment of names outside of the detected scheme.
func OptPolicy(pl policy.Policy) Option {
	return func(p *params) {
		p.policy = pl
	}
}
