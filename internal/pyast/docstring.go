package pyast

import "strings"

// CleanDocstring normalizes a docstring the way Python's
// inspect.cleandoc does: leading whitespace common to all lines after
// the first is removed, the first line is stripped, and leading and
// trailing blank lines are dropped.
func CleanDocstring(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\t", "        "), "\n")

	// Find the smallest indentation over non-blank lines after the first.
	margin := -1
	for _, line := range lines[1:] {
		trimmed := strings.TrimLeft(line, " ")
		if trimmed == "" {
			continue
		}
		indent := len(line) - len(trimmed)
		if margin < 0 || indent < margin {
			margin = indent
		}
	}

	cleaned := make([]string, 0, len(lines))
	cleaned = append(cleaned, strings.TrimSpace(lines[0]))
	for _, line := range lines[1:] {
		if margin > 0 && len(line) >= margin {
			line = line[margin:]
		}
		cleaned = append(cleaned, strings.TrimRight(line, " "))
	}

	// Drop leading and trailing blank lines.
	for len(cleaned) > 0 && cleaned[0] == "" {
		cleaned = cleaned[1:]
	}
	for len(cleaned) > 0 && cleaned[len(cleaned)-1] == "" {
		cleaned = cleaned[:len(cleaned)-1]
	}
	return strings.Join(cleaned, "\n")
}
