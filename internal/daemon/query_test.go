package daemon

import (
	"testing"

	"github.com/retroenv/chip8vm/internal/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestDaemonScreenQueries(t *testing.T) {
	d := New(Config{ClockHz: 2000})
	defer d.Stop()

	// draw a single pixel sprite at the origin, then spin
	d.LoadROM([]byte{
		0x60, 0x00, // ld V0, $00
		0x61, 0x00, // ld V1, $00
		0xA2, 0x0A, // ld I, $20A
		0xD0, 0x11, // drw V0, V1, $1
		0x12, 0x08, // jp $208
		0x80, // sprite data
	})
	d.SetRunning()

	waitFor(t, func() bool { return d.ScreenXY(0, 0) })

	fb := d.ScreenFramebuffer()
	assert.True(t, fb[0][0])
	assert.False(t, fb[0][1])
	assert.Equal(t, chip8.LowRes, d.ScreenMode())

	// out of range pixels read as absent
	assert.False(t, d.ScreenXY(-1, 0))
	assert.False(t, d.ScreenXY(chip8.ScreenWidth, 0))
	assert.False(t, d.ScreenXY(0, chip8.ScreenHeight))
}

func TestDaemonStackQueries(t *testing.T) {
	d := New(Config{ClockHz: 2000})
	defer d.Stop()

	d.LoadROM([]byte{
		0x22, 0x04, // call $204
		0x00, 0x00,
		0x12, 0x04, // jp $204
	})
	d.SetRunning()

	waitFor(t, func() bool {
		snap := d.Snapshot()
		return snap.SP == 1 && snap.PC == 0x204
	})

	assert.Equal(t, uint8(1), d.StackPointer())
	assert.Equal(t, uint16(0x202), d.Stack()[0])
}

func TestDaemonRegisterQueries(t *testing.T) {
	d := New(Config{ClockHz: 2000})
	defer d.Stop()

	d.LoadROM([]byte{
		0x6A, 0xBC, // ld VA, $BC
		0xA1, 0x23, // ld I, $123
		0x12, 0x04, // jp $204
	})
	d.SetRunning()

	waitFor(t, func() bool { return d.ProgramCounter() == 0x204 })

	assert.Equal(t, uint8(0xBC), d.Registers()[0xA])
	assert.Equal(t, uint16(0x123), d.Index())
	assert.Equal(t, uint8(0), d.SoundTimer())
}

func TestDaemonDisassembleQuery(t *testing.T) {
	d := New(Config{})
	defer d.Stop()

	d.LoadROM([]byte{0x00, 0xE0, 0x12, 0x00})

	waitFor(t, func() bool {
		code, ok := d.Disassemble(0x200)
		return ok && code == "cls"
	})

	code, ok := d.Disassemble(0x202)
	assert.True(t, ok)
	assert.Equal(t, "jp $200", code)

	// the word after the program is empty memory
	_, ok = d.Disassemble(0x204)
	assert.False(t, ok)
}

func TestDaemonSnapshot(t *testing.T) {
	d := New(Config{ClockHz: 2000})
	defer d.Stop()

	d.LoadROM([]byte{0x65, 0x42, 0x12, 0x02})
	d.SetRunning()

	waitFor(t, func() bool { return d.Snapshot().PC == 0x202 })

	snap := d.Snapshot()
	assert.Equal(t, uint8(0x42), snap.V[5])
	assert.Equal(t, uint8(0), snap.SP)
	assert.Equal(t, Running, snap.RunState)
	assert.False(t, snap.KeyWait)
	assert.Equal(t, chip8.LowRes, snap.Mode)
}
