package app

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pyreviewhq/pyreview/internal/analyzer"
	"github.com/pyreviewhq/pyreview/internal/output"
)

var (
	namingFlagExclude  []string
	namingFlagMaxItems int
	namingFlagPrivate  bool
	namingFlagJSON     bool
)

var namingCmd = &cobra.Command{
	Use:   "naming [path]",
	Short: "Extract identifier facts for naming review",
	Long: `Naming collects classes, functions, parameters, and assigned variables
together with the context needed to judge each name: the enclosing
signature or assignment, any type hint, and the scope. ALL_CAPS
variables are treated as constants and skipped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNaming,
}

func init() {
	namingCmd.Flags().StringSliceVar(&namingFlagExclude, "exclude", nil, "Path fragments to exclude (can be repeated, merged with defaults)")
	namingCmd.Flags().IntVar(&namingFlagMaxItems, "max-items", 0, "Maximum naming items to collect (default from config)")
	namingCmd.Flags().BoolVar(&namingFlagPrivate, "include-private", false, "Include underscore-prefixed items")
	namingCmd.Flags().BoolVar(&namingFlagJSON, "json", false, "Output as JSON")

	rootCmd.AddCommand(namingCmd)
}

func runNaming(cmd *cobra.Command, args []string) error {
	cfg, err := setupCommand()
	if err != nil {
		return err
	}

	maxItems := cfg.MaxNamingItems
	if namingFlagMaxItems > 0 {
		maxItems = namingFlagMaxItems
	}
	patterns := append(cfg.ExcludePatterns, namingFlagExclude...)
	includePrivate := namingFlagPrivate || cfg.IncludePrivate
	result, err := analyzer.AnalyzeNaming(context.Background(), projectPathArg(args), patterns, maxItems, includePrivate)
	if err != nil {
		return err
	}

	if namingFlagJSON || flagJSON {
		return printJSON(result)
	}
	renderNaming(result)
	return nil
}

func renderNaming(result *analyzer.NamingAnalysisResult) {
	fmt.Println(output.Section("Naming Facts"))
	fmt.Println()
	fmt.Printf(" Project: %s\n", result.ProjectPath)
	fmt.Printf(" Files analyzed: %d   Items: %d\n\n", result.FilesAnalyzed, result.TotalItems)

	if len(result.NamingItems) == 0 {
		fmt.Println(output.StyleMuted.Render(" No identifiers found."))
		return
	}

	tbl := output.NewTable("Type", "Name", "Scope", "Location", "Type Hint", "Context")
	for _, item := range result.NamingItems {
		hint := item.TypeHint
		if hint == "" {
			hint = output.StyleMuted.Render("-")
		}
		tbl.AddRow(
			item.ItemType,
			item.Name,
			item.Scope,
			fmt.Sprintf("%s:%d", item.FilePath, item.LineNumber),
			hint,
			output.StyleMuted.Render(truncate(item.ContextCode, 48)),
		)
	}
	tbl.Print()
}

// truncate shortens a string to at most n runes, appending an ellipsis.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
