// Package config provides configuration loading and defaults for pyreview.
package config

// DefaultConfigDir is the default location for pyreview configuration.
const DefaultConfigDir = "~/.config/pyreview"

// DefaultDBName is the filename for the SQLite history database.
const DefaultDBName = "pyreview.db"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// DefaultMaxSRPItems caps how many code items one SRP pass collects.
const DefaultMaxSRPItems = 20

// DefaultMaxNamingItems caps how many identifier facts one naming pass
// collects.
const DefaultMaxNamingItems = 30

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}
