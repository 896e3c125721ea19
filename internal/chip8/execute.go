package chip8

// Execute transforms of the 34 canonical instructions. Each transform is a
// pure function of the machine state and the decoded operand fields, and
// owns the PC update of its instruction: sequential instructions add 2,
// conditional skips add 2 or 4, jumps and calls set PC directly and RET
// pops it from the stack.

// exCls implements 00E0 - CLS: clear the display.
func exCls(s *State, _ Operands) {
	s.ClearScreen()
	s.PC += 2
}

// exRet implements 00EE - RET: return from a subroutine.
func exRet(s *State, _ Operands) {
	if s.SP == 0 {
		s.Fault = FaultStackUnderflow
		s.PC += 2
		return
	}
	s.SP--
	s.PC = s.Stack[s.SP]
}

// exJp implements 1nnn - JP addr: jump to address.
func exJp(s *State, op Operands) {
	s.PC = op.NNN
}

// exCall implements 2nnn - CALL addr: push the return address, jump.
func exCall(s *State, op Operands) {
	if s.SP >= StackDepth {
		s.Fault = FaultStackOverflow
		s.PC += 2
		return
	}
	s.Stack[s.SP] = s.PC + 2
	s.SP++
	s.PC = op.NNN
}

// exSeByte implements 3xkk - SE Vx, byte: skip next instruction if Vx == kk.
func exSeByte(s *State, op Operands) {
	if s.V[op.X] == op.KK {
		s.PC += 4
		return
	}
	s.PC += 2
}

// exSneByte implements 4xkk - SNE Vx, byte: skip next instruction if Vx != kk.
func exSneByte(s *State, op Operands) {
	if s.V[op.X] != op.KK {
		s.PC += 4
		return
	}
	s.PC += 2
}

// exSeReg implements 5xy0 - SE Vx, Vy: skip next instruction if Vx == Vy.
func exSeReg(s *State, op Operands) {
	if s.V[op.X] == s.V[op.Y] {
		s.PC += 4
		return
	}
	s.PC += 2
}

// exLdByte implements 6xkk - LD Vx, byte.
func exLdByte(s *State, op Operands) {
	s.V[op.X] = op.KK
	s.PC += 2
}

// exAddByte implements 7xkk - ADD Vx, byte. The flag register is untouched.
func exAddByte(s *State, op Operands) {
	s.V[op.X] += op.KK
	s.PC += 2
}

// exLdReg implements 8xy0 - LD Vx, Vy.
func exLdReg(s *State, op Operands) {
	s.V[op.X] = s.V[op.Y]
	s.PC += 2
}

// exOr implements 8xy1 - OR Vx, Vy.
func exOr(s *State, op Operands) {
	s.V[op.X] |= s.V[op.Y]
	s.PC += 2
}

// exAnd implements 8xy2 - AND Vx, Vy.
func exAnd(s *State, op Operands) {
	s.V[op.X] &= s.V[op.Y]
	s.PC += 2
}

// exXor implements 8xy3 - XOR Vx, Vy.
func exXor(s *State, op Operands) {
	s.V[op.X] ^= s.V[op.Y]
	s.PC += 2
}

// exAddReg implements 8xy4 - ADD Vx, Vy: VF is set on 8-bit overflow.
// The flag is written after the result so it survives Vx == VF.
func exAddReg(s *State, op Operands) {
	sum := uint16(s.V[op.X]) + uint16(s.V[op.Y])
	s.V[op.X] = uint8(sum)
	if sum > 0xFF {
		s.V[0xF] = 1
	} else {
		s.V[0xF] = 0
	}
	s.PC += 2
}

// exSub implements 8xy5 - SUB Vx, Vy: VF is set when no borrow occurs.
func exSub(s *State, op Operands) {
	noBorrow := s.V[op.X] >= s.V[op.Y]
	s.V[op.X] -= s.V[op.Y]
	if noBorrow {
		s.V[0xF] = 1
	} else {
		s.V[0xF] = 0
	}
	s.PC += 2
}

// exShr implements 8xy6 - SHR Vx: VF receives the shifted out bit.
func exShr(s *State, op Operands) {
	bit := s.V[op.X] & 0x01
	s.V[op.X] >>= 1
	s.V[0xF] = bit
	s.PC += 2
}

// exSubn implements 8xy7 - SUBN Vx, Vy: Vx = Vy - Vx, VF set when no borrow.
func exSubn(s *State, op Operands) {
	noBorrow := s.V[op.Y] >= s.V[op.X]
	s.V[op.X] = s.V[op.Y] - s.V[op.X]
	if noBorrow {
		s.V[0xF] = 1
	} else {
		s.V[0xF] = 0
	}
	s.PC += 2
}

// exShl implements 8xyE - SHL Vx: VF receives the shifted out bit.
func exShl(s *State, op Operands) {
	bit := s.V[op.X] >> 7
	s.V[op.X] <<= 1
	s.V[0xF] = bit
	s.PC += 2
}

// exSneReg implements 9xy0 - SNE Vx, Vy: skip next instruction if Vx != Vy.
func exSneReg(s *State, op Operands) {
	if s.V[op.X] != s.V[op.Y] {
		s.PC += 4
		return
	}
	s.PC += 2
}

// exLdI implements Annn - LD I, addr.
func exLdI(s *State, op Operands) {
	s.I = op.NNN
	s.PC += 2
}

// exJpV0 implements Bnnn - JP V0, addr: jump to nnn + V0.
func exJpV0(s *State, op Operands) {
	s.PC = op.NNN + uint16(s.V[0])
}

// exRnd implements Cxkk - RND Vx, byte: random byte AND kk.
func exRnd(s *State, op Operands) {
	s.V[op.X] = s.RandByte() & op.KK
	s.PC += 2
}

// exDrw implements Dxyn - DRW Vx, Vy, nibble: XOR an n-byte sprite from
// memory at I onto the screen at (Vx, Vy). The origin wraps around the
// active resolution, pixels extending past the right or bottom edge are
// clipped. VF is set when any pixel transitions from set to clear.
func exDrw(s *State, op Operands) {
	width, height := s.Mode.Resolution()
	originX := int(s.V[op.X]) % width
	originY := int(s.V[op.Y]) % height

	s.V[0xF] = 0
	for row := range int(op.N) {
		y := originY + row
		if y >= height {
			break
		}
		addr := int(s.I) + row
		if addr >= MemorySize {
			break
		}
		sprite := s.Memory[addr]

		for bit := range 8 {
			if sprite&(0x80>>bit) == 0 {
				continue
			}
			x := originX + bit
			if x >= width {
				break
			}
			if s.Framebuffer[y][x] {
				s.V[0xF] = 1
			}
			s.Framebuffer[y][x] = !s.Framebuffer[y][x]
		}
	}
	s.PC += 2
}

// exSkp implements Ex9E - SKP Vx: skip next instruction if key Vx is down.
func exSkp(s *State, op Operands) {
	if s.Keys[s.V[op.X]&0x0F] {
		s.PC += 4
		return
	}
	s.PC += 2
}

// exSknp implements ExA1 - SKNP Vx: skip next instruction if key Vx is up.
func exSknp(s *State, op Operands) {
	if !s.Keys[s.V[op.X]&0x0F] {
		s.PC += 4
		return
	}
	s.PC += 2
}

// exLdFromDT implements Fx07 - LD Vx, DT.
func exLdFromDT(s *State, op Operands) {
	s.V[op.X] = s.DelayTimer
	s.PC += 2
}

// exLdKey implements Fx0A - LD Vx, K: suspend execution until a key is
// pressed. PC stays on this instruction; PressKey stores the key and
// advances PC when the key-down event arrives.
func exLdKey(s *State, op Operands) {
	s.KeyWait = true
	s.KeyWaitRegister = op.X
}

// exLdToDT implements Fx15 - LD DT, Vx.
func exLdToDT(s *State, op Operands) {
	s.DelayTimer = s.V[op.X]
	s.PC += 2
}

// exLdToST implements Fx18 - LD ST, Vx.
func exLdToST(s *State, op Operands) {
	s.SoundTimer = s.V[op.X]
	s.PC += 2
}

// exAddI implements Fx1E - ADD I, Vx.
func exAddI(s *State, op Operands) {
	s.I += uint16(s.V[op.X])
	s.PC += 2
}

// exLdFont implements Fx29 - LD F, Vx: point I at the sprite of digit Vx.
func exLdFont(s *State, op Operands) {
	s.I = FontAddress + uint16(s.V[op.X]&0x0F)*FontGlyphSize
	s.PC += 2
}

// exLdBCD implements Fx33 - LD B, Vx: store the decimal digits of Vx at
// I, I+1 and I+2. Bytes falling outside memory are dropped.
func exLdBCD(s *State, op Operands) {
	v := s.V[op.X]
	digits := [3]uint8{v / 100, (v / 10) % 10, v % 10}
	for i, digit := range digits {
		if addr := int(s.I) + i; addr < MemorySize {
			s.Memory[addr] = digit
		}
	}
	s.PC += 2
}

// exLdDump implements Fx55 - LD [I], Vx: store V0..Vx to memory at I.
// Bytes falling outside memory are dropped.
func exLdDump(s *State, op Operands) {
	for i := 0; i <= int(op.X); i++ {
		if addr := int(s.I) + i; addr < MemorySize {
			s.Memory[addr] = s.V[i]
		}
	}
	s.PC += 2
}

// exLdLoad implements Fx65 - LD Vx, [I]: read V0..Vx from memory at I.
// Registers whose source byte falls outside memory keep their value.
func exLdLoad(s *State, op Operands) {
	for i := 0; i <= int(op.X); i++ {
		if addr := int(s.I) + i; addr < MemorySize {
			s.V[i] = s.Memory[addr]
		}
	}
	s.PC += 2
}
