package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pyreviewhq/pyreview/internal/analyzer"
	"github.com/pyreviewhq/pyreview/internal/output"
)

var (
	srpFlagExclude  []string
	srpFlagMaxItems int
	srpFlagPrivate  bool
	srpFlagJSON     bool
)

var srpCmd = &cobra.Command{
	Use:   "srp [path]",
	Short: "Extract responsibility facts per class and function",
	Long: `Srp gathers the evidence needed to judge single-responsibility: each
class and function's signature, size, parameter count, call fan-out,
and import fan-out. Collection stops at --max-items facts so the
output stays reviewable for large projects.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSRP,
}

func init() {
	srpCmd.Flags().StringSliceVar(&srpFlagExclude, "exclude", nil, "Path fragments to exclude (can be repeated, merged with defaults)")
	srpCmd.Flags().IntVar(&srpFlagMaxItems, "max-items", 0, "Maximum code items to collect (default from config)")
	srpCmd.Flags().BoolVar(&srpFlagPrivate, "include-private", false, "Include underscore-prefixed items")
	srpCmd.Flags().BoolVar(&srpFlagJSON, "json", false, "Output as JSON")

	rootCmd.AddCommand(srpCmd)
}

func runSRP(cmd *cobra.Command, args []string) error {
	cfg, err := setupCommand()
	if err != nil {
		return err
	}

	maxItems := cfg.MaxSRPItems
	if srpFlagMaxItems > 0 {
		maxItems = srpFlagMaxItems
	}
	patterns := append(cfg.ExcludePatterns, srpFlagExclude...)
	includePrivate := srpFlagPrivate || cfg.IncludePrivate
	result, err := analyzer.AnalyzeSRP(context.Background(), projectPathArg(args), patterns, maxItems, includePrivate)
	if err != nil {
		return err
	}

	if srpFlagJSON || flagJSON {
		return printJSON(result)
	}
	renderSRP(result)
	return nil
}

func renderSRP(result *analyzer.SRPAnalysisResult) {
	fmt.Println(output.Section("Responsibility Facts"))
	fmt.Println()
	fmt.Printf(" Project: %s\n", result.ProjectPath)
	fmt.Printf(" Files analyzed: %d   Items: %d\n\n", result.FilesAnalyzed, result.TotalItems)

	if len(result.CodeItems) == 0 {
		fmt.Println(output.StyleMuted.Render(" No classes or functions found."))
		return
	}

	tbl := output.NewTable("Type", "Name", "Location", "Lines", "Params", "Calls", "Imports")
	for _, item := range result.CodeItems {
		tbl.AddRow(
			item.ItemType,
			item.Name,
			fmt.Sprintf("%s:%d", item.FilePath, item.LineNumber),
			fmt.Sprintf("%d", item.LengthLines),
			fmt.Sprintf("%d", item.ParametersCount),
			summarizeNames(item.CallsFunctions),
			summarizeNames(item.UsesImports),
		)
	}
	tbl.Print()
}

// summarizeNames renders a short name list, eliding long tails.
func summarizeNames(names []string) string {
	const maxShown = 4
	if len(names) == 0 {
		return output.StyleMuted.Render("-")
	}
	if len(names) <= maxShown {
		return strings.Join(names, ", ")
	}
	return fmt.Sprintf("%s, +%d more", strings.Join(names[:maxShown], ", "), len(names)-maxShown)
}
