package analyzer

import (
	"context"
	"log"
	"math"
	"os"
	"strings"
	"time"

	"github.com/pyreviewhq/pyreview/internal/pyast"
	"github.com/pyreviewhq/pyreview/internal/pyparse"
)

// AnalyzeDocumentation measures docstring coverage over every class and
// function in the project. Files that fail to parse are logged and
// excluded from all counts.
func AnalyzeDocumentation(ctx context.Context, projectPath string, excludePatterns []string, includePrivate bool) (*DocumentationAnalysisResult, error) {
	if err := validateRoot(projectPath); err != nil {
		return nil, err
	}
	patterns := MergeExcludes(excludePatterns)

	result := &DocumentationAnalysisResult{
		ProjectPath:       projectPath,
		MissingDocstrings: []MissingDocstring{},
		AnalyzedAt:        time.Now(),
	}

	files, err := pythonFiles(ctx, projectPath, patterns)
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

		analyzeFileDocs(mod, f.rel, includePrivate, result)
		result.FilesAnalyzed++
	}

	if result.TotalItems == 0 {
		result.CoveragePercentage = 100.0
	} else {
		coverage := float64(result.DocumentedItems) / float64(result.TotalItems) * 100
		result.CoveragePercentage = math.Round(coverage*100) / 100
	}
	return result, nil
}

func analyzeFileDocs(mod *pyast.Module, relPath string, includePrivate bool, result *DocumentationAnalysisResult) {
	pyast.Walk(mod, func(n pyast.Node) bool {
		switch node := n.(type) {
		case *pyast.ClassDef:
			if !includePrivate && strings.HasPrefix(node.Name, "_") {
				return true
			}
			result.TotalItems++
			if node.Docstring != "" {
				result.DocumentedItems++
			} else {
				result.MissingDocstrings = append(result.MissingDocstrings, MissingDocstring{
					ItemType:   "class",
					Name:       node.Name,
					FilePath:   relPath,
					LineNumber: node.Line,
					Signature:  pyast.ClassSignature(node),
				})
			}
		case *pyast.FunctionDef:
			if !includePrivate && strings.HasPrefix(node.Name, "_") {
				return true
			}
			result.TotalItems++
			if node.Docstring != "" {
				result.DocumentedItems++
			} else {
				result.MissingDocstrings = append(result.MissingDocstrings, MissingDocstring{
					ItemType:   "function",
					Name:       node.Name,
					FilePath:   relPath,
					LineNumber: node.Line,
					Signature:  pyast.FunctionSignature(node),
				})
			}
		}
		return true
	})
}
