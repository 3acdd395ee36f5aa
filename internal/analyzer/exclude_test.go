package analyzer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMergeExcludes(t *testing.T) {
	merged := MergeExcludes([]string{"build", ".git", "dist"})

	require.Equal(t, len(DefaultExcludePatterns)+2, len(merged))
	require.Equal(t, DefaultExcludePatterns, merged[:len(DefaultExcludePatterns)])
	require.Equal(t, []string{"build", "dist"}, merged[len(DefaultExcludePatterns):])
}

func TestExcludeByName(t *testing.T) {
	patterns := MergeExcludes(nil)

	tests := []struct {
		name string
		want bool
	}{
		{"__pycache__", true},
		{".git", true},
		{"compiled.pyc", true},
		{".mypy_cache", true},
		{".DS_Store", true},
		{"module.py", false},
		{"src", false},
		{"cache", false},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, excludeByName(tc.name, patterns), "name %q", tc.name)
	}
}

func TestExcludeByRelPath(t *testing.T) {
	patterns := []string{"tests", "generated/"}

	tests := []struct {
		rel  string
		want bool
	}{
		{"tests/test_app.py", true},
		{"pkg/tests/helpers.py", true},
		{"generated/models.py", true},
		{"src/app.py", false},
		{"attestation.py", true}, // substring match is deliberate
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, excludeByRelPath(tc.rel, patterns), "path %q", tc.rel)
	}
}
