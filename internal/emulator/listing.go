package emulator

import (
	"fmt"
	"io"

	"github.com/retroenv/chip8vm/internal/chip8"
	"github.com/retroenv/chip8vm/internal/diagnostics"
)

// WriteListing prints a disassembly listing of the ROM, one line per
// instruction word. Words that do not decode to an instruction are emitted
// as data bytes, conditional skips are annotated with their skip target.
func WriteListing(w io.Writer, rom []byte) error {
	state := chip8.NewState()
	if !state.LoadROM(rom, chip8.ProgramStart) {
		return fmt.Errorf("ROM of %d bytes does not fit into memory", len(rom))
	}
	cpu := chip8.NewCPU(state, diagnostics.NewSink(0))

	for offset := 0; offset < len(rom); offset += 2 {
		address := uint16(chip8.ProgramStart + offset)

		// a trailing single byte can not form an instruction word
		if offset+1 >= len(rom) {
			if _, err := fmt.Fprintf(w, "$%03X  %02X    .byte $%02X\n", address, rom[offset], rom[offset]); err != nil {
				return fmt.Errorf("writing listing: %w", err)
			}
			break
		}

		word := uint16(rom[offset])<<8 | uint16(rom[offset+1])
		text, ok := cpu.Disassemble(address)
		if !ok {
			text = fmt.Sprintf(".byte $%02X, $%02X", rom[offset], rom[offset+1])
		}

		var err error
		if op, found := chip8.Lookup(word); found && op.Skips() {
			_, err = fmt.Fprintf(w, "$%03X  %04X  %-14s ; skips to $%03X\n", address, word, text, address+4)
		} else {
			_, err = fmt.Fprintf(w, "$%03X  %04X  %s\n", address, word, text)
		}
		if err != nil {
			return fmt.Errorf("writing listing: %w", err)
		}
	}
	return nil
}
