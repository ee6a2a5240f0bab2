// Package traitname parses and normalizes `<name>` and `<name>@<version>`
// trait tokens used by the registry.
package traitname

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Token is a normalized trait token. The name is lowercased; the version is
// optional and preserved as written.
type Token struct {
	Name    string
	Version string
}

func (t Token) String() string {
	if t.Name == "" {
		return ""
	}
	if t.Version == "" {
		return t.Name
	}
	return t.Name + "@" + t.Version
}

var tokenRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._\-]*(@[A-Za-z0-9][A-Za-z0-9.\-]*)?$`)

// Parse parses a trait token and normalizes the name to lowercase.
func Parse(s string) (Token, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Token{}, errors.New("trait token: empty")
	}
	if !tokenRe.MatchString(s) {
		return Token{}, fmt.Errorf("trait token: invalid %q", s)
	}
	at := strings.LastIndexByte(s, '@')
	if at < 0 {
		return Token{Name: strings.ToLower(s)}, nil
	}
	return Token{Name: strings.ToLower(s[:at]), Version: s[at+1:]}, nil
}

// IsTraitToken reports whether s is a syntactically valid trait token.
func IsTraitToken(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// Normalize returns the canonical form of a token string.
func Normalize(s string) (string, error) {
	t, err := Parse(s)
	if err != nil {
		return "", err
	}
	return t.String(), nil
}
