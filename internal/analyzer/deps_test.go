package analyzer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

const depsPyproject = `[project]
name = "demo"
dependencies = [
    "requests>=2.28",
    "unused-pkg==1.0",
    "mystery",
]
`

func writeDistInfo(t *testing.T, root, dir, topLevel string) {
	t.Helper()
	base := "lib/python3.12/site-packages/" + dir
	if topLevel != "" {
		writeFile(t, root, base+"/top_level.txt", topLevel)
	} else {
		writeFile(t, root, base+"/METADATA", "")
	}
}

func TestCheckDependencies(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "pyproject.toml", depsPyproject)
	writeFile(t, root, "app.py", "import os\nimport requests\n")
	writeDistInfo(t, root+"/.venv", "requests-2.31.0.dist-info", "requests\n")
	writeDistInfo(t, root+"/.venv", "unused_pkg-1.0.dist-info", "unused_pkg\n")

	result, err := CheckDependencies(context.Background(), root, nil)
	require.NoError(t, err)

	require.Equal(t, []string{"mystery", "requests", "unused-pkg"}, result.DeclaredDependencies)
	require.Equal(t, []string{"requests"}, result.UsedDependencies)
	require.Equal(t, []string{"unused-pkg"}, result.UnusedDependencies)
	require.Equal(t, []string{"mystery"}, result.PackagesWithoutMetadata)
}

func TestCheckDependencies_StdlibFiltered(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "app.py", "import os\nimport sys\nfrom pathlib import Path\nimport flask\n")

	result, err := CheckDependencies(context.Background(), root, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"flask"}, result.UsedDependencies)
}

func TestCheckDependencies_MissingManifest(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "app.py", "import requests\n")

	result, err := CheckDependencies(context.Background(), root, nil)
	require.NoError(t, err)
	require.Empty(t, result.DeclaredDependencies)
	require.Equal(t, []string{"requests"}, result.UsedDependencies)
}

func TestCheckDependencies_MalformedManifest(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "pyproject.toml", "[project\ndependencies = ???\n")
	writeFile(t, root, "app.py", "import requests\n")

	result, err := CheckDependencies(context.Background(), root, nil)
	require.NoError(t, err)
	require.Empty(t, result.DeclaredDependencies)
}

func TestCheckDependencies_MetadataWithoutTopLevel(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "pyproject.toml", "[project]\ndependencies = [\"some-lib\"]\n")
	writeFile(t, root, "app.py", "import some_lib\n")
	writeDistInfo(t, root+"/venv", "some_lib-0.3.dist-info", "")

	result, err := CheckDependencies(context.Background(), root, nil)
	require.NoError(t, err)

	// The fallback import name is the underscored package name, which the
	// source imports, so the package is used.
	require.Empty(t, result.UnusedDependencies)
	require.Empty(t, result.PackagesWithoutMetadata)
}

func TestCheckDependencies_EggInfo(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "pyproject.toml", "[project]\ndependencies = [\"legacy\"]\n")
	writeFile(t, root, "app.py", "x = 1\n")
	writeDistInfo(t, root+"/.venv", "legacy.egg-info", "legacy\n")

	result, err := CheckDependencies(context.Background(), root, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"legacy"}, result.UnusedDependencies)
}

func TestCheckDependencies_SyntaxErrorFileSkipped(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "good.py", "import requests\n")
	writeFile(t, root, "bad.py", "def broken(:\n")

	result, err := CheckDependencies(context.Background(), root, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"requests"}, result.UsedDependencies)
}
