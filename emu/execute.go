package emu

import (
	"fmt"

	"github.com/retroemu/chip8emu/insts"
)

// execute dispatches a decoded instruction to its semantic.
func (e *Emulator) execute(inst *insts.Instruction) StepResult {
	switch inst.Op {
	case insts.OpUnknown:
		return e.executeUnknown(inst)
	case insts.OpSYS:
		// Legacy machine-code call, ignored by modern interpreters.
		e.regFile.PC += 2
	case insts.OpCLS:
		e.display.Clear()
		e.regFile.PC += 2
	case insts.OpRET:
		return e.executeRET()
	case insts.OpJP:
		e.regFile.PC = inst.Addr
	case insts.OpCALL:
		return e.executeCALL(inst.Addr)
	case insts.OpSEByte:
		e.skipIf(e.regFile.V[inst.X] == inst.Byte)
	case insts.OpSNEByte:
		e.skipIf(e.regFile.V[inst.X] != inst.Byte)
	case insts.OpSEReg:
		e.skipIf(e.regFile.V[inst.X] == e.regFile.V[inst.Y])
	case insts.OpSNEReg:
		e.skipIf(e.regFile.V[inst.X] != e.regFile.V[inst.Y])
	case insts.OpLDByte:
		e.regFile.V[inst.X] = inst.Byte
		e.regFile.PC += 2
	case insts.OpADDByte:
		e.addWithCarry(inst.X, inst.Byte)
		e.regFile.PC += 2
	case insts.OpLDReg:
		e.regFile.V[inst.X] = e.regFile.V[inst.Y]
		e.regFile.PC += 2
	case insts.OpOR:
		e.regFile.V[inst.X] |= e.regFile.V[inst.Y]
		e.regFile.PC += 2
	case insts.OpAND:
		e.regFile.V[inst.X] &= e.regFile.V[inst.Y]
		e.regFile.PC += 2
	case insts.OpXOR:
		e.regFile.V[inst.X] ^= e.regFile.V[inst.Y]
		e.regFile.PC += 2
	case insts.OpADDReg:
		e.addWithCarry(inst.X, e.regFile.V[inst.Y])
		e.regFile.PC += 2
	case insts.OpSUB:
		e.subNotBorrow(inst.X, inst.X, inst.Y)
		e.regFile.PC += 2
	case insts.OpSUBN:
		e.subNotBorrow(inst.X, inst.Y, inst.X)
		e.regFile.PC += 2
	case insts.OpSHR:
		e.shiftRight(inst.X)
		e.regFile.PC += 2
	case insts.OpSHL:
		e.shiftLeft(inst.X)
		e.regFile.PC += 2
	case insts.OpLDI:
		e.regFile.I = inst.Addr
		e.regFile.PC += 2
	case insts.OpJPV0:
		e.regFile.PC = (inst.Addr + uint16(e.regFile.V[0])) & AddrMask
	case insts.OpRND:
		e.regFile.V[inst.X] = uint8(e.rng.Intn(256)) & inst.Byte
		e.regFile.PC += 2
	case insts.OpDRW:
		e.executeDRW(inst)
	case insts.OpSKP:
		e.skipIf(e.keypad.Pressed(e.regFile.V[inst.X]))
	case insts.OpSKNP:
		e.skipIf(!e.keypad.Pressed(e.regFile.V[inst.X]))
	case insts.OpLDFromDT:
		e.regFile.V[inst.X] = e.regFile.DT
		e.regFile.PC += 2
	case insts.OpLDKey:
		// Suspend dispatch until a key-down transition is observed.
		// PC stays on this instruction; SetKeys advances it when the
		// key is latched.
		e.awaitReg = inst.X
		e.state = StateAwaitingKey
	case insts.OpLDToDT:
		e.regFile.DT = e.regFile.V[inst.X]
		e.regFile.PC += 2
	case insts.OpLDToST:
		e.regFile.ST = e.regFile.V[inst.X]
		e.regFile.PC += 2
	case insts.OpADDI:
		e.regFile.I += uint16(e.regFile.V[inst.X])
		e.regFile.PC += 2
	case insts.OpLDFont:
		e.regFile.I = FontAddr(e.regFile.V[inst.X])
		e.regFile.PC += 2
	case insts.OpLDBCD:
		e.executeBCD(inst.X)
		e.regFile.PC += 2
	case insts.OpLDToMem:
		for i := uint8(0); i <= inst.X; i++ {
			e.memory.Write8(e.regFile.I+uint16(i), e.regFile.V[i])
		}
		e.regFile.PC += 2
	case insts.OpLDFromMem:
		for i := uint8(0); i <= inst.X; i++ {
			e.regFile.V[i] = e.memory.Read8(e.regFile.I + uint16(i))
		}
		e.regFile.PC += 2
	}

	return StepResult{}
}

// executeUnknown applies the fixed unknown-opcode policy: report through the
// diagnostics writer, advance PC by 2, keep running.
func (e *Emulator) executeUnknown(inst *insts.Instruction) StepResult {
	fault := &UnknownOpcodeError{Word: inst.Word, PC: e.regFile.PC}
	fmt.Fprintf(e.diag, "chip8: %v, treating as no-op\n", fault)
	e.regFile.PC += 2
	return StepResult{}
}

// executeCALL pushes the address of the next instruction, then jumps.
// A full stack is a fatal fault; PC and stack are left untouched.
func (e *Emulator) executeCALL(addr uint16) StepResult {
	if err := e.regFile.Push(e.regFile.PC + 2); err != nil {
		return e.halt(fmt.Errorf("CALL 0x%03X at PC=0x%03X: %w", addr, e.regFile.PC, err))
	}
	e.regFile.PC = addr
	return StepResult{}
}

// executeRET pops the return address and resumes there.
// An empty stack is a fatal fault.
func (e *Emulator) executeRET() StepResult {
	addr, err := e.regFile.Pop()
	if err != nil {
		return e.halt(fmt.Errorf("RET at PC=0x%03X: %w", e.regFile.PC, err))
	}
	e.regFile.PC = addr
	return StepResult{}
}

// skipIf advances PC by 4 when the condition holds, 2 otherwise.
func (e *Emulator) skipIf(cond bool) {
	if cond {
		e.regFile.PC += 4
	} else {
		e.regFile.PC += 2
	}
}

// addWithCarry computes Vx + value in a 16-bit domain, stores the low 8 bits
// in Vx, and sets VF to 1 exactly when the sum exceeded 255.
// The flag is written last so Vx == VF ends up holding the flag.
func (e *Emulator) addWithCarry(x, value uint8) {
	sum := uint16(e.regFile.V[x]) + uint16(value)
	e.regFile.V[x] = uint8(sum)
	e.regFile.SetFlag(sum > 0xFF)
}

// subNotBorrow stores minuend - subtrahend (wrapping mod 256) in Vx and sets
// VF to 1 exactly when no borrow occurs, i.e. minuend >= subtrahend before
// the subtraction. SUB passes (x, y), SUBN passes (y, x).
func (e *Emulator) subNotBorrow(x, minuend, subtrahend uint8) {
	a := e.regFile.V[minuend]
	b := e.regFile.V[subtrahend]
	e.regFile.V[x] = a - b
	e.regFile.SetFlag(a >= b)
}

// shiftRight shifts Vx right by one; VF takes the bit shifted out.
func (e *Emulator) shiftRight(x uint8) {
	bit := e.regFile.V[x] & 0x1
	e.regFile.V[x] >>= 1
	e.regFile.SetFlag(bit != 0)
}

// shiftLeft shifts Vx left by one; VF takes the bit shifted out.
func (e *Emulator) shiftLeft(x uint8) {
	bit := e.regFile.V[x] & 0x80
	e.regFile.V[x] <<= 1
	e.regFile.SetFlag(bit != 0)
}

// executeDRW reads an N-byte sprite at I and XOR-blits it at (Vx, Vy).
// VF reports collision.
func (e *Emulator) executeDRW(inst *insts.Instruction) {
	sprite := make([]byte, inst.N)
	for i := range sprite {
		sprite[i] = e.memory.Read8(e.regFile.I + uint16(i))
	}

	collision := e.display.Draw(sprite, e.regFile.V[inst.X], e.regFile.V[inst.Y])
	e.regFile.SetFlag(collision)
	e.regFile.PC += 2
}

// executeBCD stores the decimal digits of Vx at I, I+1, I+2.
func (e *Emulator) executeBCD(x uint8) {
	v := e.regFile.V[x]
	e.memory.Write8(e.regFile.I, v/100)
	e.memory.Write8(e.regFile.I+1, v/10%10)
	e.memory.Write8(e.regFile.I+2, v%10)
}
