package analyzer

import (
	"os"
	"path/filepath"
	"strings"
)

// venvDirNames are the virtual-environment directory names probed in
// order at the project root.
var venvDirNames = []string{".venv", "venv", ".env", "env"}

// sitePackagesDirs returns every existing site-packages directory under
// the project's virtual environments: the POSIX layout
// <venv>/lib/pythonX.Y/site-packages and the Windows layout
// <venv>/Lib/site-packages.
func sitePackagesDirs(root string) []string {
	var dirs []string
	for _, name := range venvDirNames {
		venv := filepath.Join(root, name)
		if info, err := os.Stat(venv); err != nil || !info.IsDir() {
			continue
		}

		matches, _ := filepath.Glob(filepath.Join(venv, "lib", "python*", "site-packages"))
		for _, m := range matches {
			if info, err := os.Stat(m); err == nil && info.IsDir() {
				dirs = append(dirs, m)
			}
		}

		win := filepath.Join(venv, "Lib", "site-packages")
		if info, err := os.Stat(win); err == nil && info.IsDir() {
			dirs = append(dirs, win)
		}
	}
	return dirs
}

// resolveImportNames looks up the top-level import names an installed
// distribution provides, searching each site-packages directory for a
// .dist-info or .egg-info entry matching the package under its three
// spellings (as declared, hyphens to underscores, underscores to
// hyphens). The second return is false when no metadata was found.
func resolveImportNames(sitePkgs []string, pkg string) ([]string, bool) {
	spellings := packageSpellings(pkg)

	for _, dir := range sitePkgs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			dist, ok := distributionName(entry.Name())
			if !ok {
				continue
			}
			for _, spelling := range spellings {
				if strings.EqualFold(dist, spelling) {
					return readTopLevel(filepath.Join(dir, entry.Name()), pkg), true
				}
			}
		}
	}
	return nil, false
}

func packageSpellings(pkg string) []string {
	spellings := []string{pkg}
	if underscored := strings.ReplaceAll(pkg, "-", "_"); underscored != pkg {
		spellings = append(spellings, underscored)
	}
	if hyphenated := strings.ReplaceAll(pkg, "_", "-"); hyphenated != pkg {
		spellings = append(spellings, hyphenated)
	}
	return spellings
}

// distributionName extracts the distribution name from a metadata
// directory like "requests-2.31.0.dist-info" or "legacy.egg-info".
func distributionName(entry string) (string, bool) {
	base, ok := strings.CutSuffix(entry, ".dist-info")
	if !ok {
		base, ok = strings.CutSuffix(entry, ".egg-info")
	}
	if !ok {
		return "", false
	}
	// Strip the version part after the first hyphen; wheel metadata
	// normalizes name-internal hyphens to underscores.
	if idx := strings.Index(base, "-"); idx >= 0 {
		base = base[:idx]
	}
	return base, base != ""
}

// readTopLevel reads the recorded top-level import names from a
// metadata directory. A distribution without top_level.txt provides a
// single module named after itself, underscored.
func readTopLevel(metaDir, pkg string) []string {
	data, err := os.ReadFile(filepath.Join(metaDir, "top_level.txt"))
	if err != nil {
		return []string{strings.ReplaceAll(pkg, "-", "_")}
	}
	var names []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			names = append(names, line)
		}
	}
	if len(names) == 0 {
		return []string{strings.ReplaceAll(pkg, "-", "_")}
	}
	return names
}
