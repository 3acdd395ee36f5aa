package analyzer

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/pyreviewhq/pyreview/internal/pyast"
	"github.com/pyreviewhq/pyreview/internal/pyparse"
)

// AnalyzeSRP extracts a fact bundle per class and function for
// single-responsibility review: signature, verbatim source, call
// fan-out, import fan-out, parameter count and length. Collection stops
// once maxItems facts have been gathered across the whole project;
// the cap is checked before each file and again mid-file.
func AnalyzeSRP(ctx context.Context, projectPath string, excludePatterns []string, maxItems int, includePrivate bool) (*SRPAnalysisResult, error) {
	if err := validateRoot(projectPath); err != nil {
		return nil, err
	}
	patterns := MergeExcludes(excludePatterns)

	result := &SRPAnalysisResult{
		ProjectPath: projectPath,
		CodeItems:   []CodeItem{},
		AnalyzedAt:  time.Now(),
	}

	files, err := pythonFiles(ctx, projectPath, patterns)
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		if len(result.CodeItems) >= maxItems {
			log.Printf("Reached max items limit (%d), stopping collection", maxItems)
			break
		}

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

		items := extractCodeItems(mod, f.rel, string(data), includePrivate)
		result.CodeItems = append(result.CodeItems, items...)
		result.FilesAnalyzed++

		if len(result.CodeItems) > maxItems {
			result.CodeItems = result.CodeItems[:maxItems]
			break
		}
	}

	result.TotalItems = len(result.CodeItems)
	return result, nil
}

func extractCodeItems(mod *pyast.Module, relPath, source string, includePrivate bool) []CodeItem {
	lines := strings.Split(source, "\n")
	var items []CodeItem

	pyast.Walk(mod, func(n pyast.Node) bool {
		switch node := n.(type) {
		case *pyast.ClassDef:
			if !includePrivate && strings.HasPrefix(node.Name, "_") {
				return true
			}
			items = append(items, CodeItem{
				ItemType:        "class",
				Name:            node.Name,
				FilePath:        relPath,
				LineNumber:      node.Line,
				Signature:       pyast.ClassSignature(node),
				FullCode:        sliceLines(lines, node.Line, node.EndLine),
				ParametersCount: 0,
				LengthLines:     node.EndLine - node.Line + 1,
				CallsFunctions:  publicMethods(node),
				UsesImports:     subtreeImports(node),
				Docstring:       node.Docstring,
			})
		case *pyast.FunctionDef:
			if !includePrivate && strings.HasPrefix(node.Name, "_") {
				return true
			}
			items = append(items, CodeItem{
				ItemType:        "function",
				Name:            node.Name,
				FilePath:        relPath,
				LineNumber:      node.Line,
				Signature:       pyast.FunctionSignature(node),
				FullCode:        sliceLines(lines, node.Line, node.EndLine),
				ParametersCount: parameterCount(node),
				LengthLines:     node.EndLine - node.Line + 1,
				CallsFunctions:  subtreeCalls(node),
				UsesImports:     subtreeImports(node),
				Docstring:       node.Docstring,
			})
		}
		return true
	})
	return items
}

// sliceLines returns the verbatim source between two 1-based lines,
// inclusive.
func sliceLines(lines []string, first, last int) string {
	if first < 1 {
		first = 1
	}
	if last > len(lines) {
		last = len(lines)
	}
	if first > last {
		return ""
	}
	return strings.Join(lines[first-1:last], "\n")
}

// parameterCount counts positional parameters plus one each for a
// variadic-positional and variadic-keyword parameter.
func parameterCount(fn *pyast.FunctionDef) int {
	count := len(fn.Params)
	if fn.VarArg != nil {
		count++
	}
	if fn.KwArg != nil {
		count++
	}
	return count
}

// publicMethods lists a class's directly declared non-private method
// names in declaration order; this is the fan-out evidence for classes.
func publicMethods(cls *pyast.ClassDef) []string {
	var methods []string
	for _, n := range cls.Body {
		if fn, ok := n.(*pyast.FunctionDef); ok && !strings.HasPrefix(fn.Name, "_") {
			methods = append(methods, fn.Name)
		}
	}
	if methods == nil {
		methods = []string{}
	}
	return methods
}

// subtreeCalls returns the deduplicated called-callable names found
// anywhere in the node's subtree, sorted for determinism.
func subtreeCalls(n pyast.Node) []string {
	seen := make(map[string]bool)
	pyast.Walk(n, func(child pyast.Node) bool {
		if call, ok := child.(*pyast.Call); ok {
			seen[call.Name] = true
		}
		return true
	})
	return sortedKeys(seen)
}

// subtreeImports returns the deduplicated top-level module names
// imported anywhere in the node's subtree, sorted for determinism.
func subtreeImports(n pyast.Node) []string {
	seen := make(map[string]bool)
	pyast.Walk(n, func(child pyast.Node) bool {
		switch imp := child.(type) {
		case *pyast.Import:
			for _, name := range imp.Names {
				if top, _, _ := strings.Cut(name, "."); top != "" {
					seen[top] = true
				}
			}
		case *pyast.ImportFrom:
			if top, _, _ := strings.Cut(imp.Module, "."); top != "" {
				seen[top] = true
			}
		}
		return true
	})
	return sortedKeys(seen)
}
