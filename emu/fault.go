package emu

import (
	"errors"
	"fmt"
)

// Fatal execution faults. Both halt the machine permanently.
var (
	// ErrStackOverflow is returned when CALL executes with a full call stack.
	ErrStackOverflow = errors.New("call stack overflow")

	// ErrStackUnderflow is returned when RET executes with an empty call stack.
	ErrStackUnderflow = errors.New("call stack underflow")
)

// ErrImageTooLarge is returned when a program image exceeds MaxProgramSize.
// It is reported at load time; no partial machine state is created.
var ErrImageTooLarge = errors.New("program image too large")

// UnknownOpcodeError describes an instruction word that matches none of the
// 35 defined patterns. It is recoverable: the emulator reports it through
// the diagnostics writer, advances PC by 2, and keeps executing.
type UnknownOpcodeError struct {
	Word uint16
	PC   uint16
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("unknown opcode 0x%04X at PC=0x%03X", e.Word, e.PC)
}
