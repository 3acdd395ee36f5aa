package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pyreviewhq/pyreview/internal/analyzer"
	"github.com/pyreviewhq/pyreview/internal/output"
)

var (
	scanFlagExclude  []string
	scanFlagMaxDepth int
	scanFlagJSON     bool
)

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Inventory files and directories in a project",
	Long: `Scan walks the project tree, recording every file and directory that
survives the exclusion patterns, and aggregates counts per file
extension. Unreadable subtrees are skipped with a warning.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringSliceVar(&scanFlagExclude, "exclude", nil, "Name patterns to exclude (can be repeated, merged with defaults)")
	scanCmd.Flags().IntVar(&scanFlagMaxDepth, "max-depth", -1, "Maximum directory depth to descend (-1 = unlimited)")
	scanCmd.Flags().BoolVar(&scanFlagJSON, "json", false, "Output as JSON")

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := setupCommand()
	if err != nil {
		return err
	}

	patterns := append(cfg.ExcludePatterns, scanFlagExclude...)
	result, err := analyzer.ScanProject(context.Background(), projectPathArg(args), analyzer.ScanOptions{
		ExcludePatterns: patterns,
		MaxDepth:        scanFlagMaxDepth,
	})
	if err != nil {
		return err
	}

	if scanFlagJSON || flagJSON {
		return printJSON(result)
	}
	renderScan(result)
	return nil
}

func renderScan(result *analyzer.ProjectScanResult) {
	fmt.Println(output.Section("Project Scan"))
	fmt.Println()
	fmt.Printf(" Root: %s\n", result.RootPath)
	fmt.Printf(" Files: %s   Directories: %s\n\n",
		output.StyleBold.Render(fmt.Sprintf("%d", result.TotalFiles)),
		output.StyleBold.Render(fmt.Sprintf("%d", result.TotalDirectories)))

	if len(result.FileExtensions) == 0 {
		fmt.Println(output.StyleMuted.Render(" No files found."))
		return
	}

	type extCount struct {
		ext   string
		count int
	}
	counts := make([]extCount, 0, len(result.FileExtensions))
	for ext, n := range result.FileExtensions {
		counts = append(counts, extCount{ext, n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].ext < counts[j].ext
	})

	tbl := output.NewTable("Extension", "Files")
	for _, c := range counts {
		ext := c.ext
		if ext == "" {
			ext = output.StyleMuted.Render("(none)")
		}
		tbl.AddRow(ext, fmt.Sprintf("%d", c.count))
	}
	tbl.Print()
}
