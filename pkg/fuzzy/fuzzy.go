// Package fuzzy finds the closest candidate to a misspelled name.
// Similarity is a Levenshtein ratio in [0, 1], where 1 means identical
// strings.
package fuzzy

import (
	"unicode/utf8"

	"github.com/agext/levenshtein"
)

// DefaultThreshold is the minimal similarity for a candidate to be
// accepted as a match.
const DefaultThreshold = 0.8

// Matcher picks the best candidate above a similarity threshold.
type Matcher struct {
	threshold float64
}

// New creates a Matcher. Thresholds outside of (0, 1] are replaced
// with DefaultThreshold.
func New(threshold float64) Matcher {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return Matcher{threshold: threshold}
}

// Threshold returns the minimal accepted similarity.
func (m Matcher) Threshold() float64 {
	return m.threshold
}

// Match returns the candidate most similar to the query. It returns
// false when the query is empty, there are no candidates, or no
// candidate reaches the threshold. When several candidates have the same
// similarity the earliest one in candidates wins.
func (m Matcher) Match(query string, candidates []string) (string, bool) {
	if query == "" || len(candidates) == 0 {
		return "", false
	}

	qLen := utf8.RuneCountInString(query)
	best, bestScore := "", -1.0
	for _, v := range candidates {
		// distance cannot be less than the difference in lengths,
		// so the length ratio bounds the similarity from above
		bound := lengthRatio(qLen, utf8.RuneCountInString(v))
		if bound < m.threshold || bound <= bestScore {
			continue
		}

		score := Similarity(query, v)
		if score < m.threshold || score <= bestScore {
			continue
		}
		best, bestScore = v, score
		if score == 1 {
			break
		}
	}

	return best, bestScore >= m.threshold
}

// Match is a shortcut for New(threshold).Match(query, candidates).
func Match(query string, candidates []string, threshold float64) (string, bool) {
	return New(threshold).Match(query, candidates)
}

// Similarity returns the Levenshtein similarity ratio of two strings,
// 1 - distance/max(len(a), len(b)) counted in runes. levenshtein.Similarity
// disables the Winkler bonus for a common prefix (its BonusThreshold is
// above 1), so the ratio never exceeds the length ratio of a and b that
// Matcher.Match uses to skip candidates.
func Similarity(a, b string) float64 {
	return levenshtein.Similarity(a, b, nil)
}

func lengthRatio(a, b int) float64 {
	if a == 0 && b == 0 {
		return 1
	}
	if a > b {
		a, b = b, a
	}
	return float64(a) / float64(b)
}
