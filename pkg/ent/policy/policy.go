// Package policy defines what happens with names that do not belong to
// the detected naming scheme.
package policy

import (
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnbirds/pkg/errcode"
)

// Policy is the treatment of unmatched names.
type Policy int

const (
	// Ignore drops unmatched names silently.
	Ignore Policy = iota
	// Warn reports unmatched names and continues.
	Warn
	// Error aborts conversion if any name is unmatched.
	Error
)

var tokens = map[Policy]string{
	Ignore: "ignore",
	Warn:   "warn",
	Error:  "error",
}

// New converts a token to a Policy.
func New(s string) (Policy, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, v := range tokens {
		if v == s {
			return k, nil
		}
	}
	return Ignore, UnknownPolicyError(s)
}

// String returns the token of the policy.
func (p Policy) String() string {
	return tokens[p]
}

// Tokens returns all valid policy tokens.
func Tokens() []string {
	return []string{Ignore.String(), Warn.String(), Error.String()}
}

// UnknownPolicyError is returned for a token that is not a policy.
func UnknownPolicyError(token string) error {
	msg := "Unknown unmatched names policy <em>%s</em>, valid values are: %s"
	vars := []any{token, strings.Join(Tokens(), ", ")}
	return &gn.Error{
		Code: errcode.UnknownPolicyError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("unknown policy %q", token),
	}
}
