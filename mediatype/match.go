package mediatype

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNotWildcard is returned by [MediaType.Pattern] for types without a *.
var ErrNotWildcard = errors.New("media type is not a wildcard")

// Pattern compiles the short form of a wildcard type into an anchored regular expression
// where * matches any sequence of characters.
func (m MediaType) Pattern() (*regexp.Regexp, error) {
	if !m.IsWildcard() {
		return nil, ErrNotWildcard
	}

	return compileWildcard(m.Key())
}

// Matches reports whether m is matched by the wildcard type pattern.
// A pattern that is not a wildcard matches nothing, not even itself.
func (m MediaType) Matches(pattern MediaType) bool {
	re, err := pattern.Pattern()
	if err != nil {
		return false
	}

	return re.MatchString(m.Key())
}

// MatchString parses pattern and reports whether m is matched by it.
// See [MediaType.Matches].
func (m MediaType) MatchString(pattern string) (bool, error) {
	p, err := Parse(pattern)
	if err != nil {
		return false, err
	}

	return m.Matches(p), nil
}

// compileWildcard turns a glob where only * is special into an anchored regular expression.
func compileWildcard(glob string) (*regexp.Regexp, error) {
	parts := strings.Split(glob, "*")
	for i, part := range parts {
		parts[i] = regexp.QuoteMeta(part)
	}

	return regexp.Compile("^" + strings.Join(parts, ".*") + "$")
}
