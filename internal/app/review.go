package app

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pyreviewhq/pyreview/internal/analyzer"
	"github.com/pyreviewhq/pyreview/internal/output"
)

var (
	reviewFlagExclude []string
	reviewFlagPrivate bool
	reviewFlagJSON    bool
)

var reviewCmd = &cobra.Command{
	Use:   "review [path]",
	Short: "Run all analyses at once",
	Long: `Review runs the scan, dependency, docstring, responsibility, and naming
analyses concurrently over the same project and reports a combined
summary. Any single failing analysis fails the whole run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReview,
}

func init() {
	reviewCmd.Flags().StringSliceVar(&reviewFlagExclude, "exclude", nil, "Exclusion patterns (can be repeated, merged with defaults)")
	reviewCmd.Flags().BoolVar(&reviewFlagPrivate, "include-private", false, "Include underscore-prefixed items")
	reviewCmd.Flags().BoolVar(&reviewFlagJSON, "json", false, "Output as JSON")

	rootCmd.AddCommand(reviewCmd)
}

// reviewReport bundles every analysis result for one project.
type reviewReport struct {
	Scan   *analyzer.ProjectScanResult           `json:"scan"`
	Deps   *analyzer.DependencyCheckResult       `json:"dependencies"`
	Docs   *analyzer.DocumentationAnalysisResult `json:"documentation"`
	SRP    *analyzer.SRPAnalysisResult           `json:"srp"`
	Naming *analyzer.NamingAnalysisResult        `json:"naming"`
}

func runReview(cmd *cobra.Command, args []string) error {
	cfg, err := setupCommand()
	if err != nil {
		return err
	}

	path := projectPathArg(args)
	patterns := append(cfg.ExcludePatterns, reviewFlagExclude...)
	includePrivate := reviewFlagPrivate || cfg.IncludePrivate

	report, err := collectReview(context.Background(), path, patterns, includePrivate, cfg.MaxSRPItems, cfg.MaxNamingItems)
	if err != nil {
		return err
	}

	if reviewFlagJSON || flagJSON {
		return printJSON(report)
	}
	renderReview(report)
	return nil
}

// collectReview fans the five analyses out over one errgroup; each pass
// walks the tree independently so they share nothing but the root path.
func collectReview(ctx context.Context, path string, patterns []string, includePrivate bool, maxSRP, maxNaming int) (*reviewReport, error) {
	var report reviewReport
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		report.Scan, err = analyzer.ScanProject(gctx, path, analyzer.ScanOptions{ExcludePatterns: patterns, MaxDepth: -1})
		return err
	})
	g.Go(func() error {
		var err error
		report.Deps, err = analyzer.CheckDependencies(gctx, path, patterns)
		return err
	})
	g.Go(func() error {
		var err error
		report.Docs, err = analyzer.AnalyzeDocumentation(gctx, path, patterns, includePrivate)
		return err
	})
	g.Go(func() error {
		var err error
		report.SRP, err = analyzer.AnalyzeSRP(gctx, path, patterns, maxSRP, includePrivate)
		return err
	})
	g.Go(func() error {
		var err error
		report.Naming, err = analyzer.AnalyzeNaming(gctx, path, patterns, maxNaming, includePrivate)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &report, nil
}

func renderReview(report *reviewReport) {
	fmt.Println(output.Section("Project Review"))
	fmt.Println()
	fmt.Printf(" Project: %s\n\n", report.Scan.RootPath)

	tbl := output.NewTable("Analysis", "Summary")
	tbl.AddRow("scan", fmt.Sprintf("%d files, %d directories", report.Scan.TotalFiles, report.Scan.TotalDirectories))
	tbl.AddRow("deps", depsSummary(report.Deps))
	tbl.AddRow("docs", fmt.Sprintf("%.1f%% coverage, %d missing", report.Docs.CoveragePercentage, len(report.Docs.MissingDocstrings)))
	tbl.AddRow("srp", fmt.Sprintf("%d code items from %d files", report.SRP.TotalItems, report.SRP.FilesAnalyzed))
	tbl.AddRow("naming", fmt.Sprintf("%d identifiers from %d files", report.Naming.TotalItems, report.Naming.FilesAnalyzed))
	tbl.Print()

	fmt.Println()
	fmt.Printf(" Coverage: %s\n", output.CoverageBar(report.Docs.CoveragePercentage, 30))

	if len(report.Deps.UnusedDependencies) > 0 {
		fmt.Println()
		fmt.Printf(" %s %v\n", output.StyleError.Render("Unused dependencies:"), report.Deps.UnusedDependencies)
	}
}

func depsSummary(deps *analyzer.DependencyCheckResult) string {
	return fmt.Sprintf("%d declared, %d unused, %d without metadata",
		len(deps.DeclaredDependencies), len(deps.UnusedDependencies), len(deps.PackagesWithoutMetadata))
}
