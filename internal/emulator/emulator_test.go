package emulator

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestNew(t *testing.T) {
	logger := log.NewTestLogger(t)
	emu := New(logger)

	assert.NotNil(t, emu)
	assert.NotNil(t, emu.logger)
	assert.NotNil(t, emu.loader)
}

func TestEmulatorRunHeadless(t *testing.T) {
	rom := []byte{0x60, 0x0A, 0x12, 0x02} // set a register, then spin
	tmpFile := filepath.Join(t.TempDir(), "game.ch8")
	assert.NoError(t, os.WriteFile(tmpFile, rom, 0600))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	emu := New(log.NewTestLogger(t))
	opts := options.Program{
		Input:    tmpFile,
		ClockHz:  500,
		Headless: true,
		Quiet:    true,
	}
	assert.NoError(t, emu.Run(ctx, opts))
}

func TestEmulatorRunMissingFile(t *testing.T) {
	emu := New(log.NewTestLogger(t))
	opts := options.Program{
		Input:   "/nonexistent/game.ch8",
		ClockHz: 500,
	}

	err := emu.Run(context.Background(), opts)
	assert.Error(t, err)
}

func TestPrintBanner(t *testing.T) {
	logger := log.NewTestLogger(t)

	PrintBanner(logger, options.Program{}, "1.0.0", "abcdef1234", "2026-01-02")
	PrintBanner(logger, options.Program{Quiet: true}, "dev", "", "")
}
