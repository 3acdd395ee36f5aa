package analyzer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const srpFixture = `import json

class Widget:
    """A widget."""

    def render(self):
        """Render the widget."""
        return paint(self)

    def _reset(self):
        pass

def helper(x, *rest, **opts):
    import yaml
    data = yaml.load(x)
    return json.dumps(data)
`

func TestAnalyzeSRP(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "widgets.py", srpFixture)

	result, err := AnalyzeSRP(context.Background(), root, nil, 20, false)
	require.NoError(t, err)

	require.Equal(t, 1, result.FilesAnalyzed)
	require.Equal(t, 3, result.TotalItems)

	cls := result.CodeItems[0]
	require.Equal(t, "class", cls.ItemType)
	require.Equal(t, "Widget", cls.Name)
	require.Equal(t, "widgets.py", cls.FilePath)
	require.Equal(t, 3, cls.LineNumber)
	require.Equal(t, "class Widget", cls.Signature)
	require.Equal(t, 0, cls.ParametersCount)
	require.Equal(t, []string{"render"}, cls.CallsFunctions)
	require.Equal(t, "A widget.", cls.Docstring)
	require.True(t, strings.HasPrefix(cls.FullCode, "class Widget:"))
	require.Equal(t, cls.LengthLines, strings.Count(cls.FullCode, "\n")+1)

	render := result.CodeItems[1]
	require.Equal(t, "function", render.ItemType)
	require.Equal(t, "render", render.Name)
	require.Equal(t, 1, render.ParametersCount)
	require.Equal(t, []string{"paint"}, render.CallsFunctions)

	helper := result.CodeItems[2]
	require.Equal(t, "helper", helper.Name)
	require.Equal(t, "def helper(x, *rest, **opts)", helper.Signature)
	require.Equal(t, 3, helper.ParametersCount)
	require.Equal(t, []string{"dumps", "load"}, helper.CallsFunctions)
	require.Equal(t, []string{"yaml"}, helper.UsesImports)
}

func TestAnalyzeSRP_IncludePrivate(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "widgets.py", srpFixture)

	result, err := AnalyzeSRP(context.Background(), root, nil, 20, true)
	require.NoError(t, err)
	require.Equal(t, 4, result.TotalItems)
}

func TestAnalyzeSRP_MidFileTruncation(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "widgets.py", srpFixture)

	result, err := AnalyzeSRP(context.Background(), root, nil, 2, false)
	require.NoError(t, err)

	require.Equal(t, 2, result.TotalItems)
	require.Len(t, result.CodeItems, 2)
	require.Equal(t, 1, result.FilesAnalyzed)
}

func TestAnalyzeSRP_CapStopsBeforeNextFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.py", "def one():\n    pass\n\ndef two():\n    pass\n")
	writeFile(t, root, "b.py", "def three():\n    pass\n")

	result, err := AnalyzeSRP(context.Background(), root, nil, 2, false)
	require.NoError(t, err)

	require.Equal(t, 2, result.TotalItems)
	require.Equal(t, 1, result.FilesAnalyzed)

	var names []string
	for _, item := range result.CodeItems {
		names = append(names, item.Name)
	}
	require.Equal(t, []string{"one", "two"}, names)
}
