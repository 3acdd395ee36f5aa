package app

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pyreviewhq/pyreview/internal/analyzer"
	"github.com/pyreviewhq/pyreview/internal/config"
	"github.com/pyreviewhq/pyreview/internal/output"
	"github.com/pyreviewhq/pyreview/internal/store"
)

var (
	historyFlagExclude []string
	historyFlagCompare int
	historyFlagList    int
	historyFlagDB      string
	historyFlagJSON    bool
)

var historyCmd = &cobra.Command{
	Use:   "history [path]",
	Short: "Snapshot analysis results and compare over time",
	Long: `History runs the docstring and dependency analyses, stores the headline
numbers as a new snapshot, and compares against a previous snapshot of
the same project to show deltas with trend arrows.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringSliceVar(&historyFlagExclude, "exclude", nil, "Path fragments to exclude (can be repeated, merged with defaults)")
	historyCmd.Flags().IntVar(&historyFlagCompare, "compare", 1, "Compare against Nth previous snapshot (1 = most recent)")
	historyCmd.Flags().IntVar(&historyFlagList, "list", 0, "List the N most recent snapshots instead of taking a new one")
	historyCmd.Flags().StringVar(&historyFlagDB, "db", "", "Database path (default: ~/.config/pyreview/pyreview.db)")
	historyCmd.Flags().BoolVar(&historyFlagJSON, "json", false, "Output as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := setupCommand()
	if err != nil {
		return err
	}

	dbPath := historyFlagDB
	if dbPath == "" {
		dbPath = config.DBPath()
	}
	db, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	path := projectPathArg(args)

	if historyFlagList > 0 {
		return listSnapshots(db, path, historyFlagList)
	}

	patterns := append(cfg.ExcludePatterns, historyFlagExclude...)
	ctx := context.Background()

	docs, err := analyzer.AnalyzeDocumentation(ctx, path, patterns, cfg.IncludePrivate)
	if err != nil {
		return err
	}
	deps, err := analyzer.CheckDependencies(ctx, path, patterns)
	if err != nil {
		return err
	}

	snapshotID, err := db.CreateSnapshot("history", path, appVersion)
	if err != nil {
		return fmt.Errorf("creating snapshot: %w", err)
	}

	metrics := map[string]float64{
		"coverage_percentage":       docs.CoveragePercentage,
		"documented_items":          float64(docs.DocumentedItems),
		"total_items":               float64(docs.TotalItems),
		"missing_docstrings":        float64(len(docs.MissingDocstrings)),
		"declared_dependencies":     float64(len(deps.DeclaredDependencies)),
		"unused_dependencies":       float64(len(deps.UnusedDependencies)),
		"packages_without_metadata": float64(len(deps.PackagesWithoutMetadata)),
	}
	for name, value := range metrics {
		if err := db.InsertMetric(snapshotID, name, value, ""); err != nil {
			return fmt.Errorf("inserting metric %s: %w", name, err)
		}
	}

	current, err := db.GetSnapshot(snapshotID)
	if err != nil {
		return fmt.Errorf("loading current snapshot: %w", err)
	}

	// historyFlagCompare=1 means the immediate predecessor, which sits
	// at offset 2 now that the new snapshot is stored.
	previous, err := db.GetSnapshotN(path, historyFlagCompare+1)
	if err != nil {
		return fmt.Errorf("loading previous snapshot: %w", err)
	}

	var diff *store.SnapshotDiff
	if previous != nil {
		diff, err = db.CompareSnapshots(previous, current)
		if err != nil {
			return fmt.Errorf("comparing snapshots: %w", err)
		}
	}

	if historyFlagJSON || flagJSON {
		result := map[string]any{"snapshot": current}
		if diff != nil {
			result["diff"] = diff
		}
		return printJSON(result)
	}

	renderHistory(current, diff)
	return nil
}

func renderHistory(current *store.Snapshot, diff *store.SnapshotDiff) {
	fmt.Println(output.Section("History: Snapshot Comparison"))
	fmt.Println()
	fmt.Printf(" Snapshot #%d taken at %s\n\n", current.ID, current.TakenAt.Format("2006-01-02 15:04:05"))

	if diff == nil {
		fmt.Println(" First snapshot recorded. Run 'pyreview history' again later to see trends.")
		return
	}

	fmt.Printf(" Comparing against snapshot #%d (%s)\n\n",
		diff.Previous.ID, diff.Previous.TakenAt.Format("2006-01-02 15:04:05"))

	tbl := output.NewTable("Metric", "Previous", "Current", "Delta", "Trend")
	for _, d := range diff.Deltas {
		higher, known := store.MetricHigherIsBetter(d.Name)
		if !known {
			higher = true
		}
		tbl.AddRow(
			d.Name,
			fmt.Sprintf("%.1f", d.Previous),
			fmt.Sprintf("%.1f", d.Current),
			fmt.Sprintf("%+.1f", d.Delta),
			output.TrendArrow(d.Delta, higher),
		)
	}
	tbl.Print()
}

func listSnapshots(db *store.DB, path string, n int) error {
	snapshots, err := db.ListSnapshots(path, n)
	if err != nil {
		return fmt.Errorf("loading snapshots: %w", err)
	}

	if historyFlagJSON || flagJSON {
		return printJSON(map[string]any{"snapshots": snapshots})
	}

	fmt.Println(output.Section("History: Snapshots"))
	fmt.Println()
	if len(snapshots) == 0 {
		fmt.Println(" No snapshots found. Run 'pyreview history' to create one.")
		return nil
	}

	tbl := output.NewTable("ID", "Taken At", "Command", "Version")
	for _, s := range snapshots {
		tbl.AddRow(
			fmt.Sprintf("#%d", s.ID),
			s.TakenAt.Format("2006-01-02 15:04:05"),
			s.Command,
			s.Version,
		)
	}
	tbl.Print()
	return nil
}
