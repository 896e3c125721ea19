package daemon

import (
	"github.com/retroenv/chip8vm/internal/chip8"
)

// Query accessors, safe from any goroutine. Every accessor returns a copy
// taken under the state read lock, so no value is ever torn by a
// concurrently executing instruction.

// Snapshot is a consistent copy of the externally visible machine state,
// taken under one lock for per-frame consumers.
type Snapshot struct {
	V          [16]uint8
	I          uint16
	PC         uint16
	SP         uint8
	Stack      [chip8.StackDepth]uint16
	DelayTimer uint8
	SoundTimer uint8
	RunState   RunState
	KeyWait    bool
	Mode       chip8.ScreenMode
}

// Registers returns a copy of the general purpose registers V0-VF.
func (d *Daemon) Registers() [16]uint8 {
	d.stateMu.RLock()
	defer d.stateMu.RUnlock()
	return d.state.V
}

// Index returns the address register I.
func (d *Daemon) Index() uint16 {
	d.stateMu.RLock()
	defer d.stateMu.RUnlock()
	return d.state.I
}

// ProgramCounter returns the address of the next instruction.
func (d *Daemon) ProgramCounter() uint16 {
	d.stateMu.RLock()
	defer d.stateMu.RUnlock()
	return d.state.PC
}

// StackPointer returns the number of occupied stack slots.
func (d *Daemon) StackPointer() uint8 {
	d.stateMu.RLock()
	defer d.stateMu.RUnlock()
	return d.state.SP
}

// Stack returns a copy of the call stack.
func (d *Daemon) Stack() [chip8.StackDepth]uint16 {
	d.stateMu.RLock()
	defer d.stateMu.RUnlock()
	return d.state.Stack
}

// DelayTimer returns the delay timer value.
func (d *Daemon) DelayTimer() uint8 {
	d.stateMu.RLock()
	defer d.stateMu.RUnlock()
	return d.state.DelayTimer
}

// SoundTimer returns the sound timer value.
func (d *Daemon) SoundTimer() uint8 {
	d.stateMu.RLock()
	defer d.stateMu.RUnlock()
	return d.state.SoundTimer
}

// ScreenFramebuffer returns a copy of the full framebuffer, indexed as
// [y][x] and always sized for the high resolution mode.
func (d *Daemon) ScreenFramebuffer() [chip8.ScreenHeight][chip8.ScreenWidth]bool {
	d.stateMu.RLock()
	defer d.stateMu.RUnlock()
	return d.state.Framebuffer
}

// ScreenXY returns a single pixel, false outside the framebuffer.
func (d *Daemon) ScreenXY(x, y int) bool {
	if x < 0 || x >= chip8.ScreenWidth || y < 0 || y >= chip8.ScreenHeight {
		return false
	}

	d.stateMu.RLock()
	defer d.stateMu.RUnlock()
	return d.state.Framebuffer[y][x]
}

// ScreenMode returns the active screen resolution mode.
func (d *Daemon) ScreenMode() chip8.ScreenMode {
	d.stateMu.RLock()
	defer d.stateMu.RUnlock()
	return d.state.Mode
}

// RunState returns the current execution state.
func (d *Daemon) RunState() RunState {
	d.stateMu.RLock()
	defer d.stateMu.RUnlock()
	return d.runState
}

// Snapshot returns the externally visible machine state in one consistent
// read.
func (d *Daemon) Snapshot() Snapshot {
	d.stateMu.RLock()
	defer d.stateMu.RUnlock()

	return Snapshot{
		V:          d.state.V,
		I:          d.state.I,
		PC:         d.state.PC,
		SP:         d.state.SP,
		Stack:      d.state.Stack,
		DelayTimer: d.state.DelayTimer,
		SoundTimer: d.state.SoundTimer,
		RunState:   d.runState,
		KeyWait:    d.state.KeyWait,
		Mode:       d.state.Mode,
	}
}

// Disassemble renders the instruction at the given address in assembler
// syntax, false when the address holds no decodable instruction.
func (d *Daemon) Disassemble(address uint16) (string, bool) {
	d.stateMu.RLock()
	defer d.stateMu.RUnlock()
	return d.cpu.Disassemble(address)
}
