package app

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pyreviewhq/pyreview/internal/analyzer"
	"github.com/pyreviewhq/pyreview/internal/output"
)

var (
	docsFlagExclude []string
	docsFlagPrivate bool
	docsFlagJSON    bool
)

var docsCmd = &cobra.Command{
	Use:   "docs [path]",
	Short: "Measure docstring coverage",
	Long: `Docs counts every class and function in the project and reports which
ones lack a docstring. Private items (leading underscore) are skipped
unless --include-private is given; files that fail to parse are skipped
with a warning and excluded from the counts.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDocs,
}

func init() {
	docsCmd.Flags().StringSliceVar(&docsFlagExclude, "exclude", nil, "Path fragments to exclude (can be repeated, merged with defaults)")
	docsCmd.Flags().BoolVar(&docsFlagPrivate, "include-private", false, "Include underscore-prefixed items")
	docsCmd.Flags().BoolVar(&docsFlagJSON, "json", false, "Output as JSON")

	rootCmd.AddCommand(docsCmd)
}

func runDocs(cmd *cobra.Command, args []string) error {
	cfg, err := setupCommand()
	if err != nil {
		return err
	}

	patterns := append(cfg.ExcludePatterns, docsFlagExclude...)
	includePrivate := docsFlagPrivate || cfg.IncludePrivate
	result, err := analyzer.AnalyzeDocumentation(context.Background(), projectPathArg(args), patterns, includePrivate)
	if err != nil {
		return err
	}

	if docsFlagJSON || flagJSON {
		return printJSON(result)
	}
	renderDocs(result)
	return nil
}

func renderDocs(result *analyzer.DocumentationAnalysisResult) {
	fmt.Println(output.Section("Docstring Coverage"))
	fmt.Println()
	fmt.Printf(" Project: %s\n", result.ProjectPath)
	fmt.Printf(" Files analyzed: %d   Items: %d   Documented: %d\n\n",
		result.FilesAnalyzed, result.TotalItems, result.DocumentedItems)
	fmt.Printf(" %s\n", output.CoverageBar(result.CoveragePercentage, 30))

	if len(result.MissingDocstrings) == 0 {
		fmt.Println()
		fmt.Println(output.StyleSuccess.Render(" All items documented."))
		return
	}

	fmt.Println(output.Section("Missing Docstrings"))
	fmt.Println()
	tbl := output.NewTable("Type", "Name", "Location", "Signature")
	for _, m := range result.MissingDocstrings {
		tbl.AddRow(
			m.ItemType,
			m.Name,
			fmt.Sprintf("%s:%d", m.FilePath, m.LineNumber),
			output.StyleMuted.Render(m.Signature),
		)
	}
	tbl.Print()
}
