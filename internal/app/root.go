// Package app contains the Cobra command tree for pyreview.
package app

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagJSON    bool
	flagVerbose bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "pyreview",
	Short: "Static analysis for Python codebases",
	Long: `pyreview inspects a Python project without executing it: it inventories
the source tree, compares declared dependencies against actual imports,
measures docstring coverage, and extracts responsibility and naming facts
for code review.

Run a subcommand against a project directory, or 'review' for all
analyses at once.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagVerbose {
			log.SetFlags(log.LstdFlags)
		} else {
			log.SetFlags(0)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("pyreview", appVersion)
		fmt.Println()
		fmt.Println("Use a subcommand:")
		fmt.Println("  scan      Inventory files and directories in a project")
		fmt.Println("  deps      Compare declared dependencies against imports")
		fmt.Println("  docs      Measure docstring coverage")
		fmt.Println("  srp       Extract responsibility facts per class and function")
		fmt.Println("  naming    Extract identifier facts for naming review")
		fmt.Println("  review    Run all analyses at once")
		fmt.Println("  history   Snapshot results and compare over time")
		return nil
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/pyreview/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose output")
}
