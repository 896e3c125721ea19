package chip8

import (
	"fmt"

	"github.com/retroenv/chip8vm/internal/diagnostics"
	"github.com/retroenv/retrogolib/set"
)

// CPU drives the fetch-decode-execute cycle of a machine state and
// disassembles memory on demand. Undecodable words and invariant
// violations are reported through the diagnostics sink and never stop
// execution; each distinct cause is reported once to keep ROMs that
// run through data regions from flooding the sink.
type CPU struct {
	state *State
	sink  *diagnostics.Sink

	unknownWords set.Set[uint16] // words reported as undecodable
	badFetches   set.Set[uint16] // addresses reported as unfetchable
}

// NewCPU creates a CPU driving the given machine state.
func NewCPU(state *State, sink *diagnostics.Sink) *CPU {
	return &CPU{
		state:        state,
		sink:         sink,
		unknownWords: set.New[uint16](),
		badFetches:   set.New[uint16](),
	}
}

// Reset returns the machine to its power-on state and forgets which
// diagnostic causes have already been reported.
func (c *CPU) Reset() {
	c.state.Reset()
	c.unknownWords = set.New[uint16]()
	c.badFetches = set.New[uint16]()
}

// Step executes the instruction at PC. A word that reads out of memory
// or does not decode is reported and skipped. While a key-wait is
// pending Step does nothing, execution resumes on the next key press.
func (c *CPU) Step() {
	s := c.state
	if s.KeyWait {
		return
	}

	pc := s.PC
	w, ok := s.ReadWord(pc)
	if !ok {
		if !c.badFetches.Contains(pc) {
			c.badFetches.Add(pc)
			c.sink.Publish(diagnostics.LevelError,
				fmt.Sprintf("instruction fetch outside memory at $%03X", pc))
		}
		s.PC += 2
		return
	}

	op, ok := Lookup(w)
	if !ok {
		if !c.unknownWords.Contains(w) {
			c.unknownWords.Add(w)
			c.sink.Publish(diagnostics.LevelWarn,
				fmt.Sprintf("unknown opcode $%04X at $%03X", w, pc))
		}
		s.PC += 2
		return
	}

	op.Execute(s, decodeOperands(w))

	if s.Fault != FaultNone {
		c.sink.Publish(diagnostics.LevelError,
			fmt.Sprintf("%s at $%03X", s.Fault, pc))
		s.Fault = FaultNone
	}
}

// Disassemble renders the instruction at the given address in assembler
// syntax. It returns false when no full word can be read at the address
// or the word does not decode to an instruction.
func (c *CPU) Disassemble(address uint16) (string, bool) {
	w, ok := c.state.ReadWord(address)
	if !ok {
		return "", false
	}
	op, ok := Lookup(w)
	if !ok {
		return "", false
	}

	params := op.Disassemble(decodeOperands(w))
	if params == "" {
		return op.Instruction.Name, true
	}
	return fmt.Sprintf("%s %s", op.Instruction.Name, params), true
}
