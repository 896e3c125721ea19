// Package emulator wires the machine, the ROM loader and the UI together.
package emulator

import (
	"context"
	"fmt"
	"os"

	"github.com/retroenv/chip8vm/internal/daemon"
	"github.com/retroenv/chip8vm/internal/loader"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/terminal"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// Emulator orchestrates the complete emulation workflow.
type Emulator struct {
	logger *log.Logger
	loader *loader.Loader
}

// New creates a new emulator.
func New(logger *log.Logger) *Emulator {
	return &Emulator{
		logger: logger,
		loader: loader.New(logger),
	}
}

// Run loads the ROM and executes the requested workflow.
func (e *Emulator) Run(ctx context.Context, opts options.Program) error {
	rom, err := e.loader.Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	if opts.Dasm {
		return WriteListing(os.Stdout, rom)
	}

	e.printInfo(opts, rom)
	return e.runMachine(ctx, opts, rom)
}

// runMachine boots the machine and runs it until the user quits or the
// context is canceled.
func (e *Emulator) runMachine(ctx context.Context, opts options.Program, rom []byte) error {
	machine := daemon.New(daemon.Config{
		ClockHz: opts.ClockHz,
	})
	defer machine.Stop()

	machine.LoadROM(rom)
	if !opts.Paused {
		machine.SetRunning()
	}

	if opts.Headless {
		return e.runHeadless(ctx, machine)
	}
	return e.runInteractive(ctx, machine)
}

// runHeadless runs without UI until the context is canceled, machine
// diagnostics are forwarded to the logger.
func (e *Emulator) runHeadless(ctx context.Context, machine *daemon.Daemon) error {
	e.logger.Info("Running headless, press ctrl+c to quit")
	machine.Sink().Forward(ctx, e.logger)
	return nil
}

// runInteractive runs the terminal UI until the user quits or the context
// is canceled.
func (e *Emulator) runInteractive(ctx context.Context, machine *daemon.Daemon) error {
	ui := terminal.New(machine)
	if err := ui.Start(); err != nil {
		return fmt.Errorf("starting terminal UI: %w", err)
	}
	defer ui.Stop()

	select {
	case <-ctx.Done():
	case <-ui.Quit():
	}
	return nil
}

// printInfo prints information about the ROM being run.
func (e *Emulator) printInfo(opts options.Program, rom []byte) {
	if opts.Quiet {
		return
	}

	e.logger.Info("Running ROM",
		log.String("file", opts.Input),
		log.Stringer("system", arch.CHIP8System),
		log.Int("size", len(rom)),
		log.Int("clock", opts.ClockHz),
	)
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("chip8vm", log.String("version", buildinfo.Version(version, commit, date)))
}
