package chip8

import (
	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// opcodeSize is the size of CHIP-8 instructions in bytes.
const opcodeSize = 2

// Operands holds the operand fields decoded from an instruction word.
// Any CHIP-8 instruction takes one of the forms 0xANNN, 0xAXKK, 0xAXYA or
// 0xAXYN, where A nibbles select the instruction and NNN, X, Y, KK and N
// are operand data.
type Operands struct {
	NNN uint16 // lowest 12 bits, an address
	X   uint8  // second nibble, a Vx register index
	Y   uint8  // third nibble, a Vy register index
	KK  uint8  // lowest byte, an immediate value
	N   uint8  // lowest nibble, an immediate value
}

// decodeOperands extracts all operand fields from an instruction word.
func decodeOperands(w uint16) Operands {
	return Operands{
		NNN: w & 0x0FFF,
		X:   uint8((w & 0x0F00) >> 8),
		Y:   uint8((w & 0x00F0) >> 4),
		KK:  uint8(w & 0x00FF),
		N:   uint8(w & 0x000F),
	}
}

// ExecuteFunc mutates the machine state according to one instruction.
// Advancing PC is part of the transform: sequential instructions add 2,
// skips add 2 or 4, jumps and calls set it directly.
type ExecuteFunc func(*State, Operands)

// DasmFunc renders the operand portion of one instruction in assembler
// syntax, empty for instructions without operands.
type DasmFunc func(Operands) string

// Opcode pairs an instruction encoding pattern with its execute and
// disassemble transforms. A word matches when word&Mask == Value.
type Opcode struct {
	Instruction *chip8cpu.Instruction // canonical definition, provides the mnemonic
	Mask        uint16
	Value       uint16
	Execute     ExecuteFunc
	Disassemble DasmFunc
}

// Skips returns true if the instruction is a conditional skip, leaving two
// possible follow addresses, PC+2 and PC+4.
func (o Opcode) Skips() bool {
	if o.Instruction == nil {
		return false
	}
	return chip8cpu.SkipInstructions.Contains(o.Instruction.Name)
}

// ReadsMemory returns true if the instruction class reads machine memory.
// Classification is by instruction name, for the LD family this covers all
// forms sharing the name.
func (o Opcode) ReadsMemory() bool {
	if o.Instruction == nil {
		return false
	}
	return chip8cpu.MemoryReadInstructions.Contains(o.Instruction.Name)
}

// WritesMemory returns true if the instruction class writes machine memory.
// Classification is by instruction name, as for ReadsMemory.
func (o Opcode) WritesMemory() bool {
	if o.Instruction == nil {
		return false
	}
	return chip8cpu.MemoryWriteInstructions.Contains(o.Instruction.Name)
}

// Opcodes is the dispatch table of the 34 canonical instructions, bucketed
// by the high nibble of the instruction word. Buckets list exact patterns
// before wildcard ones so that a scan in order resolves ambiguity between
// instructions sharing a fixed prefix (00E0/00EE vs 0nnn data).
var Opcodes = [16][]Opcode{
	0x0: {
		{chip8cpu.ClsInst, 0xFFFF, 0x00E0, exCls, dasmPlain},
		{chip8cpu.RetInst, 0xFFFF, 0x00EE, exRet, dasmPlain},
	},
	0x1: {
		{chip8cpu.JpInst, 0xF000, 0x1000, exJp, dasmNNN},
	},
	0x2: {
		{chip8cpu.CallInst, 0xF000, 0x2000, exCall, dasmNNN},
	},
	0x3: {
		{chip8cpu.SeInst, 0xF000, 0x3000, exSeByte, dasmXKK},
	},
	0x4: {
		{chip8cpu.SneInst, 0xF000, 0x4000, exSneByte, dasmXKK},
	},
	0x5: {
		{chip8cpu.SeInst, 0xF00F, 0x5000, exSeReg, dasmXY},
	},
	0x6: {
		{chip8cpu.LdInst, 0xF000, 0x6000, exLdByte, dasmXKK},
	},
	0x7: {
		{chip8cpu.AddInst, 0xF000, 0x7000, exAddByte, dasmXKK},
	},
	0x8: {
		{chip8cpu.LdInst, 0xF00F, 0x8000, exLdReg, dasmXY},
		{chip8cpu.OrInst, 0xF00F, 0x8001, exOr, dasmXY},
		{chip8cpu.AndInst, 0xF00F, 0x8002, exAnd, dasmXY},
		{chip8cpu.XorInst, 0xF00F, 0x8003, exXor, dasmXY},
		{chip8cpu.AddInst, 0xF00F, 0x8004, exAddReg, dasmXY},
		{chip8cpu.SubInst, 0xF00F, 0x8005, exSub, dasmXY},
		{chip8cpu.ShrInst, 0xF00F, 0x8006, exShr, dasmX},
		{chip8cpu.SubnInst, 0xF00F, 0x8007, exSubn, dasmXY},
		{chip8cpu.ShlInst, 0xF00F, 0x800E, exShl, dasmX},
	},
	0x9: {
		{chip8cpu.SneInst, 0xF00F, 0x9000, exSneReg, dasmXY},
	},
	0xA: {
		{chip8cpu.LdInst, 0xF000, 0xA000, exLdI, dasmINNN},
	},
	0xB: {
		{chip8cpu.JpInst, 0xF000, 0xB000, exJpV0, dasmV0NNN},
	},
	0xC: {
		{chip8cpu.RndInst, 0xF000, 0xC000, exRnd, dasmXKK},
	},
	0xD: {
		{chip8cpu.DrwInst, 0xF000, 0xD000, exDrw, dasmXYN},
	},
	0xE: {
		{chip8cpu.SkpInst, 0xF0FF, 0xE09E, exSkp, dasmX},
		{chip8cpu.SknpInst, 0xF0FF, 0xE0A1, exSknp, dasmX},
	},
	0xF: {
		{chip8cpu.LdInst, 0xF0FF, 0xF007, exLdFromDT, dasmXDT},
		{chip8cpu.LdInst, 0xF0FF, 0xF00A, exLdKey, dasmXKey},
		{chip8cpu.LdInst, 0xF0FF, 0xF015, exLdToDT, dasmDTX},
		{chip8cpu.LdInst, 0xF0FF, 0xF018, exLdToST, dasmSTX},
		{chip8cpu.AddInst, 0xF0FF, 0xF01E, exAddI, dasmIX},
		{chip8cpu.LdInst, 0xF0FF, 0xF029, exLdFont, dasmFX},
		{chip8cpu.LdInst, 0xF0FF, 0xF033, exLdBCD, dasmBX},
		{chip8cpu.LdInst, 0xF0FF, 0xF055, exLdDump, dasmMemX},
		{chip8cpu.LdInst, 0xF0FF, 0xF065, exLdLoad, dasmXMem},
	},
}

// Lookup resolves an instruction word to its handler. It scans the word's
// high nibble bucket in declaration order; the first match is the unique
// most specific one. A miss is not exceptional: ROM images routinely embed
// sprite and table data, callers treat it as a loggable no-op.
func Lookup(w uint16) (Opcode, bool) {
	firstNibble := (w & 0xF000) >> 12
	for _, op := range Opcodes[firstNibble] {
		if w&op.Mask == op.Value {
			return op, true
		}
	}
	return Opcode{}, false
}
