// Package detect finds out which naming scheme a list of bird names
// belongs to.
package detect

import (
	"context"
	"log/slog"
	"slices"

	"github.com/gnames/gnbirds/pkg/catalog"
	"github.com/gnames/gnbirds/pkg/ent/nametype"
	"github.com/gnames/gnbirds/pkg/taxonomy"
)

// Scheme is a name type of an authority in a given year.
type Scheme struct {
	NameType  nametype.NameType `json:"nameType"`
	Authority string            `json:"authority"`
	Year      int               `json:"year"`
}

// Detector checks names against every naming scheme of a registry.
type Detector struct {
	reg *taxonomy.Registry
}

// New creates a Detector.
func New(reg *taxonomy.Registry) *Detector {
	return &Detector{reg: reg}
}

// Detect returns the scheme that matches the largest number of distinct
// names, together with the names it does not match.
//
// Candidates are checked from the smallest table to the largest and
// the search stops as soon as one of them matches all names. On a tie
// the earlier candidate is kept. Matching is exact, empty names are
// ignored.
func (d *Detector) Detect(
	ctx context.Context,
	names []string,
) (Scheme, []string, error) {
	var res Scheme
	input := distinct(names)
	if len(input) == 0 {
		return res, nil, EmptyInputError(len(names))
	}

	var tbl *taxonomy.Table
	var best *catalog.Candidate
	var bestScore int
	var unmatched []string

	for _, cand := range d.reg.Catalog().Candidates() {
		if err := ctx.Err(); err != nil {
			return res, nil, err
		}

		if tbl == nil || tbl.Key() != cand.Key {
			var err error
			tbl, err = d.reg.Table(ctx, cand.Authority, cand.Year)
			if err != nil {
				return res, nil, err
			}
		}

		values := tbl.ValueSet(cand.NameType.Column(cand.Authority))
		var score int
		for _, v := range input {
			if _, ok := values[v]; ok {
				score++
			}
		}
		if score <= bestScore {
			continue
		}

		best, bestScore = &cand, score
		unmatched = unmatched[:0]
		for _, v := range input {
			if _, ok := values[v]; !ok {
				unmatched = append(unmatched, v)
			}
		}
		if score == len(input) {
			break
		}
	}

	if best == nil {
		return res, nil, SchemeNotDetectedError(len(input))
	}

	res = Scheme{
		NameType:  best.NameType,
		Authority: best.Authority,
		Year:      best.Year,
	}
	slog.Debug("Naming scheme detected",
		"name_type", res.NameType, "authority", res.Authority,
		"year", res.Year, "matched", bestScore, "unmatched", len(unmatched),
	)
	return res, slices.Clone(unmatched), nil
}

// distinct returns non-empty names without duplicates, in the order of
// their first occurrence.
func distinct(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	res := make([]string, 0, len(names))
	for _, v := range names {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		res = append(res, v)
	}
	return res
}
