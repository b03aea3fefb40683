// Package normalize provides string canonicalization used for soft
// matching of bird names. It is a pure package.
package normalize

import (
	"strings"
	"unicode"
)

// String collapses every run of whitespace, hyphens and underscores
// into a single space, trims the result and lowercases it.
// It is idempotent: String(String(s)) == String(s).
func String(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	sep := false
	for _, r := range s {
		if unicode.IsSpace(r) || r == '-' || r == '_' {
			sep = true
			continue
		}
		if sep && b.Len() > 0 {
			b.WriteByte(' ')
		}
		sep = false
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// Strings normalizes every element of ss in place and returns it.
func Strings(ss []string) []string {
	for i := range ss {
		ss[i] = String(ss[i])
	}
	return ss
}
