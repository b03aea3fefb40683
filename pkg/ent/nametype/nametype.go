// Package nametype enumerates the kinds of bird names a taxonomy table
// can carry and maps them to table column names.
package nametype

import (
	"strings"
)

// NameType is a kind of name (scientific name, alpha code, etc.).
type NameType int

const (
	Unknown NameType = iota
	ScientificName
	CommonName
	Alpha
	Alpha6
	EBirdCode
	Order
	Family
	Genus
	FrenchName
)

var tokens = map[NameType]string{
	Unknown:        "unknown",
	ScientificName: "scientific_name",
	CommonName:     "common_name",
	Alpha:          "alpha",
	Alpha6:         "alpha6",
	EBirdCode:      "ebird_code",
	Order:          "order",
	Family:         "family",
	Genus:          "genus",
	FrenchName:     "french_name",
}

var tokenToType = func() map[string]NameType {
	res := make(map[string]NameType, len(tokens))
	for k, v := range tokens {
		if k != Unknown {
			res[v] = k
		}
	}
	return res
}()

// All returns every known name type in manifest column order.
func All() []NameType {
	return []NameType{
		ScientificName, CommonName, Alpha, Alpha6, EBirdCode,
		Order, Family, Genus, FrenchName,
	}
}

// New converts a token to NameType. The token is case-insensitive and
// surrounding spaces are ignored. Unrecognized tokens give Unknown.
func New(s string) NameType {
	s = strings.ToLower(strings.TrimSpace(s))
	if res, ok := tokenToType[s]; ok {
		return res
	}
	return Unknown
}

// Parse is like New, but returns an error for unrecognized tokens.
func Parse(s string) (NameType, error) {
	res := New(s)
	if res == Unknown {
		return res, UnknownNameTypeError(s)
	}
	return res, nil
}

// String returns the token of the name type.
func (n NameType) String() string {
	if res, ok := tokens[n]; ok {
		return res
	}
	return tokens[Unknown]
}

// IsQualified is true when the column of the name type depends on an
// authority. Scientific names and genera are shared by all tables.
func (n NameType) IsQualified() bool {
	return n != ScientificName && n != Genus && n != Unknown
}

// Column returns the table column that holds names of this type for the
// given authority, for example `ebird_common_name`.
func (n NameType) Column(authority string) string {
	if !n.IsQualified() {
		return n.String()
	}
	return authority + "_" + n.String()
}

// MarshalText implements encoding.TextMarshaler.
func (n NameType) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *NameType) UnmarshalText(text []byte) error {
	res, err := Parse(string(text))
	if err != nil {
		return err
	}
	*n = res
	return nil
}
