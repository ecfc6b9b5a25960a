// Package emu provides functional CHIP-8 emulation.
package emu

// FlagRegister is the index of VF, the register arithmetic and draw
// instructions overwrite with their carry/borrow/collision outcome.
const FlagRegister = 0xF

// StackDepth is the maximum number of return addresses the call stack holds.
const StackDepth = 16

// RegFile represents the CHIP-8 register file.
// It contains 16 general-purpose 8-bit registers (V0-VF), the 16-bit address
// register I, the program counter, the call stack with its stack pointer,
// and the two hardware timers.
type RegFile struct {
	// V holds general-purpose registers V0-VF.
	// V[0xF] doubles as the flag register.
	V [16]uint8

	// I is the address register. Only the low 12 bits are significant;
	// memory accesses mask it.
	I uint16

	// PC is the program counter. It always points at a 2-byte instruction
	// boundary.
	PC uint16

	// Stack holds return addresses pushed by CALL. SP is the number of
	// addresses currently on the stack.
	Stack [StackDepth]uint16
	SP    uint8

	// DT and ST are the delay and sound timers, decremented at 60Hz.
	DT uint8
	ST uint8
}

// SetFlag writes the flag register as 1 or 0.
func (r *RegFile) SetFlag(set bool) {
	if set {
		r.V[FlagRegister] = 1
	} else {
		r.V[FlagRegister] = 0
	}
}

// Push pushes a return address onto the call stack.
// A full stack returns ErrStackOverflow without mutating any state.
func (r *RegFile) Push(addr uint16) error {
	if r.SP >= StackDepth {
		return ErrStackOverflow
	}
	r.Stack[r.SP] = addr
	r.SP++
	return nil
}

// Pop pops a return address from the call stack.
// An empty stack returns ErrStackUnderflow without mutating any state.
func (r *RegFile) Pop() (uint16, error) {
	if r.SP == 0 {
		return 0, ErrStackUnderflow
	}
	r.SP--
	return r.Stack[r.SP], nil
}
