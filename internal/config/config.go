// Package config handles application configuration and setup
package config

import (
	"os"

	"github.com/retroenv/gbmemdump/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// ColorEnabled returns whether styled output is allowed. Terminal detection
// is left to the renderer, this only honors the nocolor flag and the
// NO_COLOR environment variable convention.
func ColorEnabled(opts options.Program) bool {
	if opts.NoColor {
		return false
	}
	_, set := os.LookupEnv("NO_COLOR")
	return !set
}
