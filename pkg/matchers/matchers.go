// Package matchers provides predicates over file names used to select
// entries from a softsync context.
package matchers

import (
	"regexp"
	"strings"

	"github.com/gobwas/glob"

	"github.com/arthur-debert/softsync/pkg/errors"
)

// Matcher selects entries by name.
type Matcher interface {
	Match(name string) bool
}

// Func adapts a plain predicate to Matcher.
type Func func(name string) bool

func (f Func) Match(name string) bool { return f(name) }

// All matches every name.
func All() Matcher {
	return Func(func(string) bool { return true })
}

// NameMatcher matches names against a glob, or exactly when the pattern
// holds no wildcard.
type NameMatcher struct {
	pattern string
	glob    glob.Glob
}

// Glob compiles an fnmatch-style pattern: "*", "?", "[seq]" and "[!seq]"
// are special, and none crosses a path separator. An unclosed "[" is
// literal.
func Glob(pattern string) (*NameMatcher, error) {
	m := &NameMatcher{pattern: pattern}
	if !strings.ContainsAny(pattern, "*?[") {
		return m, nil
	}
	g, err := glob.Compile(translate(pattern), '/')
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid pattern: %s", pattern)
	}
	m.glob = g
	return m, nil
}

// MustGlob is like Glob but panics on a bad pattern.
func MustGlob(pattern string) *NameMatcher {
	m, err := Glob(pattern)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *NameMatcher) Match(name string) bool {
	if m.glob == nil {
		return name == m.pattern
	}
	return m.glob.Match(name)
}

func (m *NameMatcher) String() string { return m.pattern }

// translate rewrites pattern in gobwas syntax, quoting the metacharacters
// fnmatch does not have.
func translate(pattern string) string {
	rs := []rune(pattern)
	var b strings.Builder
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		if r == '[' {
			if end := classEnd(rs, i); end > 0 {
				b.WriteString(string(rs[i : end+1]))
				i = end
				continue
			}
		}
		switch r {
		case '[', ']', '{', '}', '\\', '!':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// classEnd returns the index of the "]" closing the class opened at
// start, or -1. Classes must be non-empty.
func classEnd(rs []rune, start int) int {
	i := start + 1
	if i < len(rs) && rs[i] == '!' {
		i++
	}
	for j := i; j < len(rs); j++ {
		switch rs[j] {
		case ']':
			if j == i {
				return -1
			}
			return j
		case '[', '\\', '{', '}':
			return -1
		}
	}
	return -1
}

// Regexp matches names against a compiled expression.
func Regexp(re *regexp.Regexp) Matcher {
	return Func(re.MatchString)
}

// Pattern returns All for an empty pattern and a glob otherwise.
func Pattern(pattern string) (Matcher, error) {
	if pattern == "" {
		return All(), nil
	}
	return Glob(pattern)
}
