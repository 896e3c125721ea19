package chip8

import "fmt"

// Operand formatters of the disassembler. Each one renders the operand
// portion of an instruction in assembler syntax, the engine prefixes the
// mnemonic. Formatting follows the common CHIP-8 assembler conventions:
// registers as V0-VF, immediates as $-prefixed hex.

// dasmPlain is used by instructions without operands.
func dasmPlain(_ Operands) string {
	return ""
}

// dasmNNN renders a plain address operand, as in "jp $234".
func dasmNNN(op Operands) string {
	return fmt.Sprintf("$%03X", op.NNN)
}

// dasmXKK renders a register and an immediate byte, as in "se V2, $34".
func dasmXKK(op Operands) string {
	return fmt.Sprintf("V%X, $%02X", op.X, op.KK)
}

// dasmXY renders a register pair, as in "add V2, V3".
func dasmXY(op Operands) string {
	return fmt.Sprintf("V%X, V%X", op.X, op.Y)
}

// dasmX renders a single register, as in "shr V2".
func dasmX(op Operands) string {
	return fmt.Sprintf("V%X", op.X)
}

// dasmXYN renders the draw operands, as in "drw V2, V3, $5".
func dasmXYN(op Operands) string {
	return fmt.Sprintf("V%X, V%X, $%X", op.X, op.Y, op.N)
}

// dasmINNN renders the address register load, as in "ld I, $234".
func dasmINNN(op Operands) string {
	return fmt.Sprintf("I, $%03X", op.NNN)
}

// dasmV0NNN renders the indexed jump, as in "jp V0, $234".
func dasmV0NNN(op Operands) string {
	return fmt.Sprintf("V0, $%03X", op.NNN)
}

// dasmXDT renders the delay timer read, as in "ld V2, DT".
func dasmXDT(op Operands) string {
	return fmt.Sprintf("V%X, DT", op.X)
}

// dasmXKey renders the key wait, as in "ld V2, K".
func dasmXKey(op Operands) string {
	return fmt.Sprintf("V%X, K", op.X)
}

// dasmDTX renders the delay timer write, as in "ld DT, V2".
func dasmDTX(op Operands) string {
	return fmt.Sprintf("DT, V%X", op.X)
}

// dasmSTX renders the sound timer write, as in "ld ST, V2".
func dasmSTX(op Operands) string {
	return fmt.Sprintf("ST, V%X", op.X)
}

// dasmIX renders the address register add, as in "add I, V2".
func dasmIX(op Operands) string {
	return fmt.Sprintf("I, V%X", op.X)
}

// dasmFX renders the font sprite lookup, as in "ld F, V2".
func dasmFX(op Operands) string {
	return fmt.Sprintf("F, V%X", op.X)
}

// dasmBX renders the BCD store, as in "ld B, V2".
func dasmBX(op Operands) string {
	return fmt.Sprintf("B, V%X", op.X)
}

// dasmMemX renders the register dump, as in "ld [I], V2".
func dasmMemX(op Operands) string {
	return fmt.Sprintf("[I], V%X", op.X)
}

// dasmXMem renders the register load, as in "ld V2, [I]".
func dasmXMem(op Operands) string {
	return fmt.Sprintf("V%X, [I]", op.X)
}
