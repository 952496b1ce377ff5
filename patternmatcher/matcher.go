// Package patternmatcher matches filesystem paths against ignore globs.
package patternmatcher

import (
	"path/filepath"
	"strings"

	"github.com/fwojciec/cabinet"
	"github.com/moby/patternmatcher"
)

// anyEntry stands in for an arbitrary entry name when probing whether a
// pattern ignores everything inside a directory.
const anyEntry = "*"

// Matcher reports whether paths are ignored by a set of glob patterns.
//
// A pattern is tried against every trailing sub-path, so "*.pyc" ignores
// a/b/c.pyc and ".git/*" ignores repo/.git/config. Patterns follow the
// .dockerignore syntax, including "**" and "!" exceptions.
type Matcher struct {
	pm *patternmatcher.PatternMatcher
}

// New compiles patterns into a Matcher. Returns EINVALID for a malformed
// pattern.
func New(patterns []string) (*Matcher, error) {
	pm, err := patternmatcher.New(patterns)
	if err != nil {
		return nil, cabinet.Errorf(cabinet.EINVALID, "invalid ignore pattern: %v", err)
	}
	return &Matcher{pm: pm}, nil
}

// Match returns true if path is ignored. A nil Matcher ignores nothing.
func (m *Matcher) Match(path string) bool {
	if m == nil {
		return false
	}
	for _, sub := range trailing(path) {
		if ok, err := m.pm.MatchesOrParentMatches(sub); err == nil && ok {
			return true
		}
	}
	return false
}

// MatchDir returns true if the directory at path can be skipped entirely:
// either it is ignored itself, or any entry directly inside it would be.
func (m *Matcher) MatchDir(path string) bool {
	if m == nil {
		return false
	}
	return m.Match(path) || m.Match(filepath.Join(path, anyEntry))
}

// trailing returns path followed by each of its shorter trailing sub-paths.
func trailing(path string) []string {
	parts := strings.FieldsFunc(filepath.Clean(path), func(r rune) bool {
		return r == filepath.Separator
	})
	subs := make([]string, len(parts))
	for i := range parts {
		subs[i] = filepath.Join(parts[i:]...)
	}
	return subs
}
