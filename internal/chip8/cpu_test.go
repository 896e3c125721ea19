package chip8

import (
	"testing"

	"github.com/retroenv/chip8vm/internal/diagnostics"
	"github.com/retroenv/retrogolib/assert"
)

func newTestCPU(t *testing.T, rom []byte) (*CPU, *State, *diagnostics.Sink) {
	t.Helper()

	s := NewState()
	sink := diagnostics.NewSink(16)
	c := NewCPU(s, sink)
	if len(rom) > 0 {
		assert.True(t, s.LoadROM(rom, ProgramStart))
	}
	return c, s, sink
}

func TestCPUStepSequence(t *testing.T) {
	c, s, _ := newTestCPU(t, []byte{0x60, 0x0A, 0x70, 0x05})

	c.Step()
	c.Step()

	assert.Equal(t, uint8(0x0F), s.V[0])
	assert.Equal(t, uint16(0x204), s.PC)
}

func TestCPUStepUnknownOpcodeReportedOnce(t *testing.T) {
	c, s, sink := newTestCPU(t, []byte{0xFF, 0xFF, 0xFF, 0xFF})

	// both words skip, the repeated word reports only once
	c.Step()
	c.Step()

	assert.Equal(t, uint16(0x204), s.PC)
	recs := sink.Drain()
	assert.Len(t, recs, 1)
	assert.Equal(t, diagnostics.LevelWarn, recs[0].Level)
	assert.Contains(t, recs[0].Message, "unknown opcode $FFFF")

	// a different undecodable word is a new cause
	c.Step()
	assert.Equal(t, uint16(0x206), s.PC)
	recs = sink.Drain()
	assert.Len(t, recs, 1)
	assert.Contains(t, recs[0].Message, "unknown opcode $0000")
}

func TestCPUStepKeyWait(t *testing.T) {
	c, s, _ := newTestCPU(t, []byte{0xF5, 0x0A, 0x60, 0x01})

	c.Step()
	assert.True(t, s.KeyWait)
	assert.Equal(t, uint16(0x200), s.PC)

	// stepping while waiting does nothing
	c.Step()
	c.Step()
	assert.Equal(t, uint16(0x200), s.PC)

	s.PressKey(0x5)
	assert.False(t, s.KeyWait)
	assert.Equal(t, uint8(0x5), s.V[5])
	assert.Equal(t, uint16(0x202), s.PC)

	// execution resumes after the wait completed
	c.Step()
	assert.Equal(t, uint8(0x1), s.V[0])
	assert.Equal(t, uint16(0x204), s.PC)
}

func TestCPUStepStackFaultReported(t *testing.T) {
	c, s, sink := newTestCPU(t, []byte{0x00, 0xEE})

	c.Step()

	assert.Equal(t, uint16(0x202), s.PC)
	assert.Equal(t, FaultNone, s.Fault)

	recs := sink.Drain()
	assert.Len(t, recs, 1)
	assert.Equal(t, diagnostics.LevelError, recs[0].Level)
	assert.Contains(t, recs[0].Message, "stack underflow at $200")
}

func TestCPUStepFetchOutsideMemory(t *testing.T) {
	c, s, sink := newTestCPU(t, nil)

	s.PC = 0xFFF
	c.Step()

	assert.Equal(t, uint16(0x1001), s.PC)
	recs := sink.Drain()
	assert.Len(t, recs, 1)
	assert.Contains(t, recs[0].Message, "instruction fetch outside memory")

	// the same address does not report twice
	s.PC = 0xFFF
	c.Step()
	assert.Len(t, sink.Drain(), 0)
}

func TestCPUReset(t *testing.T) {
	c, s, sink := newTestCPU(t, []byte{0xFF, 0xFF})

	c.Step()
	assert.Len(t, sink.Drain(), 1)

	c.Reset()
	assert.Equal(t, uint16(ProgramStart), s.PC)

	// a reset forgets reported causes
	assert.True(t, s.LoadROM([]byte{0xFF, 0xFF}, ProgramStart))
	c.Step()
	assert.Len(t, sink.Drain(), 1)
}
