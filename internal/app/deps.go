package app

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pyreviewhq/pyreview/internal/analyzer"
	"github.com/pyreviewhq/pyreview/internal/output"
)

var (
	depsFlagExclude []string
	depsFlagJSON    bool
)

var depsCmd = &cobra.Command{
	Use:   "deps [path]",
	Short: "Compare declared dependencies against imports",
	Long: `Deps reads [project].dependencies from pyproject.toml and the import
statements of every source file, then resolves each declared package's
import names from the project's virtual-environment metadata. Packages
whose metadata cannot be found are reported separately rather than
guessed at.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDeps,
}

func init() {
	depsCmd.Flags().StringSliceVar(&depsFlagExclude, "exclude", nil, "Path fragments to exclude (can be repeated, merged with defaults)")
	depsCmd.Flags().BoolVar(&depsFlagJSON, "json", false, "Output as JSON")

	rootCmd.AddCommand(depsCmd)
}

func runDeps(cmd *cobra.Command, args []string) error {
	cfg, err := setupCommand()
	if err != nil {
		return err
	}

	patterns := append(cfg.ExcludePatterns, depsFlagExclude...)
	result, err := analyzer.CheckDependencies(context.Background(), projectPathArg(args), patterns)
	if err != nil {
		return err
	}

	if depsFlagJSON || flagJSON {
		return printJSON(result)
	}
	renderDeps(result)
	return nil
}

func renderDeps(result *analyzer.DependencyCheckResult) {
	fmt.Println(output.Section("Dependency Check"))
	fmt.Println()
	fmt.Printf(" Project: %s\n", result.ProjectPath)
	fmt.Printf(" Declared: %d   Imported (third-party): %d\n\n",
		len(result.DeclaredDependencies), len(result.UsedDependencies))

	unused := make(map[string]bool, len(result.UnusedDependencies))
	for _, p := range result.UnusedDependencies {
		unused[p] = true
	}
	noMeta := make(map[string]bool, len(result.PackagesWithoutMetadata))
	for _, p := range result.PackagesWithoutMetadata {
		noMeta[p] = true
	}

	if len(result.DeclaredDependencies) == 0 {
		fmt.Println(output.StyleMuted.Render(" No declared dependencies found."))
		return
	}

	tbl := output.NewTable("Package", "Status")
	for _, pkg := range result.DeclaredDependencies {
		status := output.StyleSuccess.Render("used")
		switch {
		case unused[pkg]:
			status = output.StyleError.Render("unused")
		case noMeta[pkg]:
			status = output.StyleWarning.Render("no metadata")
		}
		tbl.AddRow(pkg, status)
	}
	tbl.Print()

	if len(result.PackagesWithoutMetadata) > 0 {
		fmt.Println()
		fmt.Println(output.StyleMuted.Render(" Packages without metadata could not be matched to import names;"))
		fmt.Println(output.StyleMuted.Render(" verify them manually or install them into the project venv."))
	}
}
