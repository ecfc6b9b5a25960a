package emu

import (
	"fmt"
	"io"
)

// DumpState writes a textual summary of the machine state for the debug
// collaborator: registers, I, PC, stack contents, and timers.
func (e *Emulator) DumpState(w io.Writer) {
	r := e.regFile

	fmt.Fprintf(w, "state: %v", e.state)
	if e.haltErr != nil {
		fmt.Fprintf(w, " (%v)", e.haltErr)
	}
	fmt.Fprintln(w)

	fmt.Fprint(w, "registers |")
	for i := range r.V {
		fmt.Fprintf(w, " %2X |", i)
	}
	fmt.Fprint(w, "\nvalues    |")
	for _, v := range r.V {
		fmt.Fprintf(w, " %02x |", v)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "I: 0x%04X  PC: 0x%04X  SP: %d\n", r.I, r.PC, r.SP)

	fmt.Fprint(w, "stack:")
	for i := uint8(0); i < r.SP; i++ {
		fmt.Fprintf(w, " 0x%03X", r.Stack[i])
	}
	if r.SP == 0 {
		fmt.Fprint(w, " (empty)")
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "DT: %3d  ST: %3d  instructions: %d\n", r.DT, r.ST, e.instructionCount)
}
