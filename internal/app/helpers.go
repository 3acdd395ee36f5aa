package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pyreviewhq/pyreview/internal/config"
	"github.com/pyreviewhq/pyreview/internal/output"
)

// setupCommand loads configuration and applies the color mode; every
// subcommand calls it first.
func setupCommand() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	output.AutoColor(flagNoColor || !cfg.Output.Color)
	output.SetWidth(cfg.Output.Width)
	return cfg, nil
}

// projectPathArg resolves the optional positional project path,
// defaulting to the current directory.
func projectPathArg(args []string) string {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
