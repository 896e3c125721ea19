// Package chip8 implements the CHIP-8 virtual machine core: the mutable
// machine state, the instruction dispatch table and the fetch-decode-execute
// engine. It contains no threading; the daemon package drives it from a
// dedicated goroutine.
package chip8

import (
	"math/rand"
	"time"
)

// CHIP-8 memory layout constants.
//
// CHIP-8 memory map (4KB total):
//
//	0x000-0x1FF: Interpreter and font data (512 bytes)
//	0x200-0xFFF: User program space (3584 bytes)
const (
	// MemorySize is the total addressable memory of the machine.
	MemorySize = 0x1000

	// ProgramStart is the memory address where CHIP-8 programs begin execution.
	ProgramStart = 0x200

	// MaxAddress is the highest valid address in CHIP-8 memory space.
	MaxAddress = 0xFFF

	// StackDepth is the number of nested calls the machine supports.
	StackDepth = 16

	// FontAddress is where the built-in hex digit sprites are loaded.
	FontAddress = 0x000

	// FontGlyphSize is the height in bytes of one built-in digit sprite.
	FontGlyphSize = 5
)

// Screen dimension constants. The framebuffer is always allocated at the
// high resolution; the active screen mode defines the drawing bounds.
const (
	// ScreenWidth is the framebuffer width in pixels.
	ScreenWidth = 128

	// ScreenHeight is the framebuffer height in pixels.
	ScreenHeight = 64

	// LowResWidth is the logical width in low resolution mode.
	LowResWidth = 64

	// LowResHeight is the logical height in low resolution mode.
	LowResHeight = 32
)

// ScreenMode selects the logical resolution that draw operations use.
type ScreenMode uint8

// Screen modes of the machine.
const (
	// LowRes is the standard 64x32 CHIP-8 resolution.
	LowRes ScreenMode = iota
	// HighRes is the extended 128x64 resolution.
	HighRes
)

// String implements the Stringer interface.
func (m ScreenMode) String() string {
	if m == HighRes {
		return "high"
	}
	return "low"
}

// Resolution returns the logical pixel bounds of the mode.
func (m ScreenMode) Resolution() (width, height int) {
	if m == HighRes {
		return ScreenWidth, ScreenHeight
	}
	return LowResWidth, LowResHeight
}

// Fault identifies an invariant violation detected during execution.
type Fault uint8

// Fault values latched by the execute transforms.
const (
	// FaultNone means execution has been clean.
	FaultNone Fault = iota
	// FaultStackOverflow is latched when a call exceeds the stack depth.
	FaultStackOverflow
	// FaultStackUnderflow is latched when a return finds an empty stack.
	FaultStackUnderflow
)

// String implements the Stringer interface.
func (f Fault) String() string {
	switch f {
	case FaultStackOverflow:
		return "stack overflow"
	case FaultStackUnderflow:
		return "stack underflow"
	default:
		return "none"
	}
}

// State is the complete mutable machine state. It is owned by a single
// executing goroutine; external views are snapshots taken by the daemon's
// query accessors.
type State struct {
	// Memory is the 4KB address space, fonts at 0x000, programs at 0x200.
	Memory [MemorySize]byte

	// V contains the general purpose registers V0-VF.
	// VF doubles as the carry, borrow and collision flag.
	V [16]uint8

	// I is the address register used by memory-indexed instructions.
	I uint16

	// PC is the address of the instruction that executes next.
	PC uint16

	// Stack holds return addresses, SP indexes the next free slot.
	Stack [StackDepth]uint16
	SP    uint8

	// DelayTimer and SoundTimer count down at 60 Hz while running.
	DelayTimer uint8
	SoundTimer uint8

	// Framebuffer is the pixel grid, always sized for high resolution.
	// Indexed as [y][x], true = pixel set.
	Framebuffer [ScreenHeight][ScreenWidth]bool

	// Mode selects the logical resolution for drawing and clipping.
	Mode ScreenMode

	// Keys holds the pressed state of the 16 keypad keys.
	Keys [16]bool

	// KeyWait is set while a key-wait instruction suspends execution.
	// KeyWaitRegister is the register that receives the next pressed key.
	KeyWait         bool
	KeyWaitRegister uint8

	// Fault latches the most recent invariant violation. The engine
	// reports and clears it after the offending instruction.
	Fault Fault

	rng *rand.Rand
}

// NewState returns a machine state reset to its power-on configuration.
func NewState() *State {
	s := &State{}
	s.Reset()
	return s
}

// Reset clears memory, registers, the stack and the screen, reloads the
// font sprites and sets PC to the program start address. The random
// source survives the reset.
func (s *State) Reset() {
	rng := s.rng
	*s = State{PC: ProgramStart, rng: rng}
	copy(s.Memory[FontAddress:], fontSprites[:])
}

// LoadROM copies the given ROM bytes into memory starting at address.
// It returns false without modifying the state if the data would not fit
// into the address space.
func (s *State) LoadROM(rom []byte, address uint16) bool {
	if int(address)+len(rom) > MemorySize {
		return false
	}
	copy(s.Memory[address:], rom)
	return true
}

// ReadWord reads the big-endian 16-bit value at the given address.
// It returns false if the two bytes are not fully inside memory.
func (s *State) ReadWord(address uint16) (uint16, bool) {
	if int(address)+1 >= MemorySize {
		return 0, false
	}
	return uint16(s.Memory[address])<<8 | uint16(s.Memory[address+1]), true
}

// ClearScreen switches every framebuffer pixel off.
func (s *State) ClearScreen() {
	s.Framebuffer = [ScreenHeight][ScreenWidth]bool{}
}

// PressKey sets the key flag and completes a pending key-wait: the key is
// stored in the waiting register and PC moves past the wait instruction.
func (s *State) PressKey(key uint8) {
	key &= 0x0F
	s.Keys[key] = true

	if s.KeyWait {
		s.V[s.KeyWaitRegister] = key
		s.KeyWait = false
		s.PC += 2
	}
}

// ReleaseKey clears the key flag.
func (s *State) ReleaseKey(key uint8) {
	s.Keys[key&0x0F] = false
}

// TickTimers applies one 60 Hz timer tick, counting active timers down.
func (s *State) TickTimers() {
	if s.DelayTimer > 0 {
		s.DelayTimer--
	}
	if s.SoundTimer > 0 {
		s.SoundTimer--
	}
}

// RandByte returns the next byte of the random source, seeding it from
// the clock on first use.
func (s *State) RandByte() uint8 {
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return uint8(s.rng.Intn(256))
}

// SeedRandom replaces the random source with a deterministic one.
func (s *State) SeedRandom(seed int64) {
	s.rng = rand.New(rand.NewSource(seed))
}

// fontSprites contains the built-in 4x5 pixel hex digit sprites 0-F,
// loaded at FontAddress on every reset.
var fontSprites = [80]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}
