package analyzer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

const docsFixture = `class Widget:
    """A widget."""

    def render(self):
        """Render the widget."""
        return paint(self)

def helper(x):
    return x

def _hidden():
    pass
`

func TestAnalyzeDocumentation(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "widgets.py", docsFixture)

	result, err := AnalyzeDocumentation(context.Background(), root, nil, false)
	require.NoError(t, err)

	require.Equal(t, 1, result.FilesAnalyzed)
	require.Equal(t, 3, result.TotalItems)
	require.Equal(t, 2, result.DocumentedItems)
	require.Equal(t, 66.67, result.CoveragePercentage)

	require.Len(t, result.MissingDocstrings, 1)
	missing := result.MissingDocstrings[0]
	require.Equal(t, "function", missing.ItemType)
	require.Equal(t, "helper", missing.Name)
	require.Equal(t, "widgets.py", missing.FilePath)
	require.Equal(t, 8, missing.LineNumber)
	require.Equal(t, "def helper(x)", missing.Signature)
}

func TestAnalyzeDocumentation_IncludePrivate(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "widgets.py", docsFixture)

	result, err := AnalyzeDocumentation(context.Background(), root, nil, true)
	require.NoError(t, err)

	require.Equal(t, 4, result.TotalItems)
	require.Equal(t, 2, result.DocumentedItems)
	require.Equal(t, 50.0, result.CoveragePercentage)
}

func TestAnalyzeDocumentation_EmptyProject(t *testing.T) {
	root := t.TempDir()

	result, err := AnalyzeDocumentation(context.Background(), root, nil, false)
	require.NoError(t, err)
	require.Equal(t, 0, result.FilesAnalyzed)
	require.Equal(t, 100.0, result.CoveragePercentage)
}

func TestAnalyzeDocumentation_EmptyDocstringCountsAsMissing(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.py", "def f():\n    \"\"\n")

	result, err := AnalyzeDocumentation(context.Background(), root, nil, false)
	require.NoError(t, err)
	require.Equal(t, 1, result.TotalItems)
	require.Equal(t, 0, result.DocumentedItems)
}

func TestAnalyzeDocumentation_BrokenFileSkipped(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "good.py", "def ok():\n    \"\"\"Fine.\"\"\"\n")
	writeFile(t, root, "bad.py", "def broken(:\n")

	result, err := AnalyzeDocumentation(context.Background(), root, nil, false)
	require.NoError(t, err)
	require.Equal(t, 1, result.FilesAnalyzed)
	require.Equal(t, 1, result.TotalItems)
	require.Equal(t, 100.0, result.CoveragePercentage)
}
