// Package config handles application configuration and setup
package config

import (
	"os"

	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
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

// ApplyEnvironment adjusts options that depend on the execution environment.
// Without a terminal attached to stdout there is nothing to render the
// screen on and the emulator falls back to running headless.
func ApplyEnvironment(opts *options.Program) {
	if !opts.Headless && !term.IsTerminal(int(os.Stdout.Fd())) {
		opts.Headless = true
	}
}
