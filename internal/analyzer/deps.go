package analyzer

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/pyreviewhq/pyreview/internal/pyast"
	"github.com/pyreviewhq/pyreview/internal/pyparse"
)

// depNameRe captures the package name at the start of a requirement
// string, before any extras bracket or version specifier.
var depNameRe = regexp.MustCompile(`^[A-Za-z0-9_-]+`)

// pyprojectFile is the subset of pyproject.toml the dependency check
// reads.
type pyprojectFile struct {
	Project struct {
		Dependencies []string `toml:"dependencies"`
	} `toml:"project"`
}

// CheckDependencies compares the project's declared dependencies
// against the imports its source actually uses. Packages whose import
// names resolve from virtual-environment metadata are classified as
// used or unused; the rest are reported in packages_without_metadata
// for the caller to classify with curated name-mapping knowledge.
func CheckDependencies(ctx context.Context, projectPath string, excludePatterns []string) (*DependencyCheckResult, error) {
	if err := validateRoot(projectPath); err != nil {
		return nil, err
	}
	patterns := MergeExcludes(excludePatterns)

	declared := parseDeclaredDependencies(projectPath)

	used, err := extractUsedImports(ctx, projectPath, patterns)
	if err != nil {
		return nil, err
	}

	sitePkgs := sitePackagesDirs(projectPath)
	var unused, withoutMetadata []string
	for pkg := range declared {
		importNames, resolved := resolveImportNames(sitePkgs, pkg)
		if !resolved {
			withoutMetadata = append(withoutMetadata, pkg)
			continue
		}
		found := false
		for _, name := range importNames {
			if used[name] {
				found = true
				break
			}
		}
		if !found {
			unused = append(unused, pkg)
		}
	}

	return &DependencyCheckResult{
		ProjectPath:             projectPath,
		DeclaredDependencies:    sortedKeys(declared),
		UsedDependencies:        sortedKeys(used),
		UnusedDependencies:      sortStrings(unused),
		PackagesWithoutMetadata: sortStrings(withoutMetadata),
		CheckedAt:               time.Now(),
	}, nil
}

// parseDeclaredDependencies reads [project].dependencies from
// pyproject.toml. A missing or malformed manifest degrades to zero
// declared dependencies so the used-import report still runs.
func parseDeclaredDependencies(root string) map[string]bool {
	declared := make(map[string]bool)

	path := filepath.Join(root, "pyproject.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Warning: pyproject.toml not found at %s", path)
		return declared
	}

	var manifest pyprojectFile
	if err := toml.Unmarshal(data, &manifest); err != nil {
		log.Printf("Warning: error parsing %s: %v", path, err)
		return declared
	}

	for _, dep := range manifest.Project.Dependencies {
		if name := depNameRe.FindString(strings.TrimSpace(dep)); name != "" {
			declared[strings.ToLower(name)] = true
		}
	}
	return declared
}

// extractUsedImports collects the top-level module names imported by
// any source file, excluding the standard library.
func extractUsedImports(ctx context.Context, root string, patterns []string) (map[string]bool, error) {
	used := make(map[string]bool)

	files, err := pythonFiles(ctx, root, patterns)
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		data, err := os.ReadFile(f.abs)
		if err != nil {
			log.Printf("Warning: error reading %s: %v", f.abs, err)
			continue
		}
		mod, err := pyparse.Parse(string(data))
		if err != nil {
			log.Printf("Warning: syntax error in %s: %v", f.abs, err)
			continue
		}

		pyast.Walk(mod, func(n pyast.Node) bool {
			switch imp := n.(type) {
			case *pyast.Import:
				for _, name := range imp.Names {
					addImport(used, name)
				}
			case *pyast.ImportFrom:
				addImport(used, imp.Module)
			}
			return true
		})
	}
	return used, nil
}

func addImport(used map[string]bool, module string) {
	top, _, _ := strings.Cut(module, ".")
	if top != "" && !isStdlibModule(top) {
		used[top] = true
	}
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	sort.Strings(s)
	return s
}
