package analyzer

import (
	"context"
	"log"
	"os"
	"strings"
	"time"
	"unicode"

	"github.com/pyreviewhq/pyreview/internal/pyast"
	"github.com/pyreviewhq/pyreview/internal/pyparse"
)

// AnalyzeNaming extracts identifier facts for naming-quality review:
// classes, functions, parameters, and assigned variables, each with the
// context needed to judge the name. Collection stops once maxItems
// facts have been gathered; the cap is checked after each file.
func AnalyzeNaming(ctx context.Context, projectPath string, excludePatterns []string, maxItems int, includePrivate bool) (*NamingAnalysisResult, error) {
	if err := validateRoot(projectPath); err != nil {
		return nil, err
	}
	patterns := MergeExcludes(excludePatterns)

	result := &NamingAnalysisResult{
		ProjectPath: projectPath,
		NamingItems: []NamingItem{},
		AnalyzedAt:  time.Now(),
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

		result.NamingItems = append(result.NamingItems, extractNamingItems(mod, f.rel, includePrivate)...)
		result.FilesAnalyzed++

		if len(result.NamingItems) >= maxItems {
			result.NamingItems = result.NamingItems[:maxItems]
			break
		}
	}

	result.TotalItems = len(result.NamingItems)
	return result, nil
}

func extractNamingItems(mod *pyast.Module, relPath string, includePrivate bool) []NamingItem {
	var items []NamingItem

	pyast.Walk(mod, func(n pyast.Node) bool {
		switch node := n.(type) {
		case *pyast.ClassDef:
			if !includePrivate && strings.HasPrefix(node.Name, "_") {
				return true
			}
			items = append(items, NamingItem{
				ItemType:    "class",
				Name:        node.Name,
				FilePath:    relPath,
				LineNumber:  node.Line,
				ContextCode: pyast.ClassSignature(node),
				Docstring:   node.Docstring,
				Scope:       "class",
			})
		case *pyast.FunctionDef:
			// __init__ is a conventional name, never filtered as private.
			if !includePrivate && strings.HasPrefix(node.Name, "_") && node.Name != "__init__" {
				return true
			}
			items = append(items, NamingItem{
				ItemType:    "function",
				Name:        node.Name,
				FilePath:    relPath,
				LineNumber:  node.Line,
				ContextCode: pyast.FunctionSignature(node),
				TypeHint:    node.Returns,
				Docstring:   node.Docstring,
				Scope:       functionScope(node),
			})
			items = append(items, parameterItems(node, relPath, includePrivate)...)
		case *pyast.Assign:
			items = append(items, variableItems(node, relPath, includePrivate)...)
		}
		return true
	})
	return items
}

// functionScope distinguishes methods from free functions by the
// conventional first parameter.
func functionScope(fn *pyast.FunctionDef) string {
	if len(fn.Params) > 0 && (fn.Params[0].Name == "self" || fn.Params[0].Name == "cls") {
		return "method"
	}
	return "function"
}

func parameterItems(fn *pyast.FunctionDef, relPath string, includePrivate bool) []NamingItem {
	var items []NamingItem
	for _, p := range fn.Params {
		if p.Name == "self" || p.Name == "cls" {
			continue
		}
		if !includePrivate && strings.HasPrefix(p.Name, "_") {
			continue
		}
		items = append(items, NamingItem{
			ItemType:    "parameter",
			Name:        p.Name,
			FilePath:    relPath,
			LineNumber:  p.Line,
			ContextCode: "Parameter in " + fn.Name + "()",
			TypeHint:    p.Annotation,
			Scope:       "parameter",
		})
	}
	return items
}

func variableItems(assign *pyast.Assign, relPath string, includePrivate bool) []NamingItem {
	var items []NamingItem
	for _, target := range assign.Targets {
		if !includePrivate && strings.HasPrefix(target, "_") {
			continue
		}
		// ALL_CAPS names are constants by convention, not naming
		// candidates.
		if isAllUpper(target) {
			continue
		}
		items = append(items, NamingItem{
			ItemType:    "variable",
			Name:        target,
			FilePath:    relPath,
			LineNumber:  assign.Line,
			ContextCode: assign.Source,
			TypeHint:    valueTypeHint(assign.Value),
			Scope:       "local",
		})
	}
	return items
}

// isAllUpper reports whether the name contains at least one cased
// character and every cased character is upper case.
func isAllUpper(name string) bool {
	cased := false
	for _, r := range name {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

// valueTypeHint maps a classified right-hand side to the inferred
// runtime type name, or "" when the shape gives no hint.
func valueTypeHint(v pyast.Value) string {
	switch v.Kind {
	case pyast.ValueLiteral, pyast.ValueCall:
		return v.TypeName
	case pyast.ValueList:
		return "list"
	case pyast.ValueDict:
		return "dict"
	case pyast.ValueSet:
		return "set"
	case pyast.ValueTuple:
		return "tuple"
	}
	return ""
}
