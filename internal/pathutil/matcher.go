package pathutil

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Matcher is the uniform path predicate used for ignores and change
// notifications. Any of an exact string, a doublestar glob, a compiled
// regexp or a plain func can act as one.
type Matcher interface {
	Match(p string) bool
}

type exactMatcher string

func (m exactMatcher) Match(p string) bool {
	return Normalize(p) == string(m)
}

type globMatcher string

func (m globMatcher) Match(p string) bool {
	ok, err := doublestar.Match(string(m), Normalize(p))
	return err == nil && ok
}

type regexpMatcher struct{ re *regexp.Regexp }

func (m regexpMatcher) Match(p string) bool {
	return m.re.MatchString(Normalize(p))
}

// FuncMatcher adapts a predicate func to the Matcher interface.
type FuncMatcher func(string) bool

func (m FuncMatcher) Match(p string) bool {
	return m(p)
}

// Glob builds a Matcher from a doublestar pattern, validating it upfront.
func Glob(pattern string) (Matcher, error) {
	pattern = strings.TrimPrefix(strings.ReplaceAll(pattern, "\\", "/"), "/")
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern %q", pattern)
	}
	return globMatcher(pattern), nil
}

// MatcherFor accepts the matching union: exact string, glob-bearing string,
// *regexp.Regexp, func(string) bool, or an existing Matcher.
func MatcherFor(v interface{}) (Matcher, error) {
	switch m := v.(type) {
	case Matcher:
		return m, nil
	case *regexp.Regexp:
		return regexpMatcher{re: m}, nil
	case func(string) bool:
		return FuncMatcher(m), nil
	case string:
		if strings.ContainsAny(m, "*?[{") {
			return Glob(m)
		}
		return exactMatcher(Normalize(m)), nil
	default:
		return nil, fmt.Errorf("unsupported matcher type %T", v)
	}
}
