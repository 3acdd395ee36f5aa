package analyzer

import (
	"path/filepath"
	"strings"
)

// DefaultExcludePatterns are always merged with any caller-supplied
// exclusion list; callers can add patterns but never drop these.
var DefaultExcludePatterns = []string{
	".git",
	"__pycache__",
	".venv",
	"venv",
	"node_modules",
	".*_cache",
	"*.pyc",
	".DS_Store",
}

// MergeExcludes unions caller-supplied patterns with the defaults,
// preserving order and dropping duplicates.
func MergeExcludes(extra []string) []string {
	seen := make(map[string]bool, len(DefaultExcludePatterns)+len(extra))
	merged := make([]string, 0, len(DefaultExcludePatterns)+len(extra))
	for _, p := range DefaultExcludePatterns {
		seen[p] = true
		merged = append(merged, p)
	}
	for _, p := range extra {
		if !seen[p] {
			seen[p] = true
			merged = append(merged, p)
		}
	}
	return merged
}

// excludeByName matches the bare file or directory name against each
// pattern as a shell glob. The directory walker applies this mode to
// every entry before descending.
func excludeByName(name string, patterns []string) bool {
	for _, p := range patterns {
		if ok, err := filepath.Match(p, name); err == nil && ok {
			return true
		}
	}
	return false
}

// excludeByRelPath matches a root-relative path: a file is excluded
// when any pattern occurs as a substring of the path or as its prefix.
// The source analyzers apply this mode while iterating a flat file
// list, unlike the walker's per-name glob matching above; the same
// pattern list can match differently in the two modes.
func excludeByRelPath(relPath string, patterns []string) bool {
	for _, p := range patterns {
		if p == "" {
			continue
		}
		if strings.Contains(relPath, p) || strings.HasPrefix(relPath, p) {
			return true
		}
	}
	return false
}
