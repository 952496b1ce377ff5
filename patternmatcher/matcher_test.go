package patternmatcher_test

import (
	"path/filepath"
	"testing"

	"github.com/fwojciec/cabinet"
	"github.com/fwojciec/cabinet/patternmatcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcher_Match(t *testing.T) {
	t.Parallel()

	m, err := patternmatcher.New([]string{".git/*", "*.pyc", "__pycache__/*"})
	require.NoError(t, err)

	tests := []struct {
		path string
		want bool
	}{
		{"x.pyc", true},
		{filepath.Join("pkg", "sub", "x.pyc"), true},
		{filepath.Join(".git", "config"), true},
		{filepath.Join("repo", ".git", "objects", "ab"), true},
		{filepath.Join("src", "__pycache__", "mod.cpython.pyc"), true},
		{filepath.Join("/home", "u", "proj", ".git", "HEAD"), true},
		{"x.py", false},
		{filepath.Join("docs", "notes.txt"), false},
		{filepath.Join("repo", "git", "config"), false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, m.Match(tt.path))
		})
	}
}

func TestMatcher_MatchDir(t *testing.T) {
	t.Parallel()

	m, err := patternmatcher.New([]string{".git/*", "*.pyc", "build"})
	require.NoError(t, err)

	assert.True(t, m.MatchDir(filepath.Join("repo", ".git")))
	assert.True(t, m.MatchDir(filepath.Join("repo", "build")))
	assert.False(t, m.MatchDir(filepath.Join("repo", "src")))
}

func TestMatcher_Exceptions(t *testing.T) {
	t.Parallel()

	m, err := patternmatcher.New([]string{"*.log", "!keep.log"})
	require.NoError(t, err)

	assert.True(t, m.Match(filepath.Join("var", "app.log")))
	assert.False(t, m.Match("keep.log"))
}

func TestMatcher_Nil(t *testing.T) {
	t.Parallel()

	var m *patternmatcher.Matcher
	assert.False(t, m.Match("anything.pyc"))
	assert.False(t, m.MatchDir(".git"))
}

func TestNew_InvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := patternmatcher.New([]string{"[unclosed"})
	assert.Equal(t, cabinet.EINVALID, cabinet.ErrorCode(err))
}
