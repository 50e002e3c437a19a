package filter

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Matcher decides whether a single searchable string satisfies a term.
type Matcher interface {
	Matches(value string) bool

	matcher()
}

type fuzzyMatcher struct {
	needle string
}

type exactMatcher struct {
	literal string
}

type regexMatcher struct {
	re *regexp.Regexp
}

func (fuzzyMatcher) matcher() {}
func (exactMatcher) matcher() {}
func (regexMatcher) matcher() {}

// Fuzzy builds a case-insensitive substring matcher.
func Fuzzy(needle string) Matcher {
	return fuzzyMatcher{needle: normalize(needle)}
}

// Exact builds a case-insensitive full-string matcher.
func Exact(literal string) Matcher {
	return exactMatcher{literal: normalize(literal)}
}

// Regex builds a matcher running the pattern as written, case-sensitive,
// against the raw searchable strings.
func Regex(pattern string) (Matcher, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return regexMatcher{re: re}, nil
}

func (m fuzzyMatcher) Matches(value string) bool {
	return strings.Contains(normalize(value), m.needle)
}

func (m exactMatcher) Matches(value string) bool {
	return normalize(value) == m.literal
}

func (m regexMatcher) Matches(value string) bool {
	return m.re.MatchString(value)
}

// normalize prepares a string for case-insensitive comparison. Compatibility
// decomposition keeps ligature and fullwidth forms comparable, folding covers
// case pairs ASCII lowercasing misses. The Caser is built per call because
// Casers are not guaranteed to be safe for concurrent use, and matchers must
// be.
func normalize(s string) string {
	return cases.Fold().String(norm.NFKD.String(strings.TrimSpace(s)))
}
