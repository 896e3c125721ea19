// Package loader handles ROM file loading operations.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/retroenv/chip8vm/internal/chip8"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

// MaxROMSize is the largest ROM that fits into the program area of memory.
const MaxROMSize = chip8.MemorySize - chip8.ProgramStart

// Loader handles loading ROM files from disk.
type Loader struct {
	logger *log.Logger
}

// New creates a new ROM loader.
func New(logger *log.Logger) *Loader {
	return &Loader{
		logger: logger,
	}
}

// Load reads a ROM file and returns its raw contents.
// Files carrying the extension of another system are rejected, everything
// else is treated as a raw CHIP-8 program image.
func (l *Loader) Load(path string) ([]byte, error) {
	system := detectSystem(path)
	if system != arch.CHIP8System {
		return nil, fmt.Errorf("file %s is not a CHIP-8 ROM, detected system %s", path, system)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ROM file %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("ROM file %s is empty", path)
	}
	if len(data) > MaxROMSize {
		return nil, fmt.Errorf("ROM of %d bytes does not fit into %d bytes of program memory", len(data), MaxROMSize)
	}

	l.logger.Debug("ROM loaded",
		log.String("file", path),
		log.Int("size", len(data)),
		log.Stringer("system", system))

	return data, nil
}

// detectSystem determines the system type based on the file extension.
func detectSystem(path string) arch.System {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".nes":
		return arch.NES
	default:
		return arch.CHIP8System
	}
}
