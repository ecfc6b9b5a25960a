package emu

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/retroemu/chip8emu/insts"
)

// RunState represents the execution state of the machine.
type RunState uint8

// Machine run states.
const (
	// StateUninitialized means no program has been loaded.
	StateUninitialized RunState = iota

	// StateRunning means the machine dispatches one instruction per Step.
	StateRunning

	// StateAwaitingKey means a key-wait instruction suspended dispatch.
	// Timers keep ticking; dispatch resumes on the next Step after a
	// key-down transition is observed.
	StateAwaitingKey

	// StateHalted is terminal: a fatal fault occurred and no further
	// instructions execute.
	StateHalted
)

// String returns a readable name for the run state.
func (s RunState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRunning:
		return "running"
	case StateAwaitingKey:
		return "awaiting key"
	case StateHalted:
		return "halted"
	}
	return "invalid"
}

// StepResult represents the result of executing a single cycle.
type StepResult struct {
	// Halted is true if the machine is halted and no instruction executed.
	Halted bool

	// Err is set when a fatal fault halted the machine.
	Err error
}

// Emulator executes CHIP-8 instructions functionally.
// It exclusively owns the machine state aggregate (registers, memory, stack,
// timers, display, keypad) for the lifetime of one emulation session.
type Emulator struct {
	regFile *RegFile
	memory  *Memory
	display *Display
	keypad  *Keypad
	decoder *insts.Decoder
	rng     *rand.Rand

	// Diagnostics sink for recoverable conditions (unknown opcodes).
	diag io.Writer

	state    RunState
	haltErr  error
	awaitReg uint8

	// prevKeys is the key set from the previous publication, used to
	// detect down transitions for the key-wait instruction.
	prevKeys [KeyCount]bool

	instructionCount uint64
}

// EmulatorOption is a functional option for configuring the Emulator.
type EmulatorOption func(*Emulator)

// WithDiagnostics sets the writer that receives diagnostic notices.
func WithDiagnostics(w io.Writer) EmulatorOption {
	return func(e *Emulator) {
		e.diag = w
	}
}

// WithRandSource sets the random source used by the RND instruction.
// Tests inject a fixed-seed source for deterministic results.
func WithRandSource(src rand.Source) EmulatorOption {
	return func(e *Emulator) {
		e.rng = rand.New(src)
	}
}

// NewEmulator creates a new CHIP-8 emulator in the uninitialized state.
func NewEmulator(opts ...EmulatorOption) *Emulator {
	e := &Emulator{
		regFile: &RegFile{},
		memory:  NewMemory(),
		display: NewDisplay(),
		keypad:  &Keypad{},
		decoder: insts.NewDecoder(),
		diag:    os.Stderr,
		state:   StateUninitialized,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return e
}

// RegFile returns the emulator's register file.
func (e *Emulator) RegFile() *RegFile {
	return e.regFile
}

// Memory returns the emulator's memory.
func (e *Emulator) Memory() *Memory {
	return e.memory
}

// Display returns the emulator's framebuffer.
func (e *Emulator) Display() *Display {
	return e.display
}

// Keypad returns the emulator's keypad.
func (e *Emulator) Keypad() *Keypad {
	return e.keypad
}

// State returns the current run state.
func (e *Emulator) State() RunState {
	return e.state
}

// HaltFault returns the fault that halted the machine, or nil.
func (e *Emulator) HaltFault() error {
	return e.haltErr
}

// InstructionCount returns the number of instructions executed.
func (e *Emulator) InstructionCount() uint64 {
	return e.instructionCount
}

// LoadProgram resets the machine and copies a program image into memory at
// ProgramStart. An oversized image is rejected before any state changes, so
// a failed load leaves the previous state intact.
func (e *Emulator) LoadProgram(data []byte) error {
	if len(data) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrImageTooLarge, len(data), MaxProgramSize)
	}

	e.regFile = &RegFile{PC: ProgramStart}
	e.memory = NewMemory()
	e.display.Clear()
	e.keypad = &Keypad{}
	e.prevKeys = [KeyCount]bool{}
	e.state = StateRunning
	e.haltErr = nil
	e.instructionCount = 0

	// Cannot fail: the size was checked above.
	_ = e.memory.LoadProgram(data)

	return nil
}

// SetKeys publishes the current key state, replacing the previous set.
// While awaiting a key, a down transition latches the key index into the
// awaiting register and returns the machine to normal dispatch.
func (e *Emulator) SetKeys(keys [KeyCount]bool) {
	if e.state == StateAwaitingKey {
		for k := 0; k < KeyCount; k++ {
			if keys[k] && !e.prevKeys[k] {
				e.regFile.V[e.awaitReg] = uint8(k)
				e.regFile.PC += 2
				e.state = StateRunning
				break
			}
		}
	}

	e.prevKeys = keys
	e.keypad.Set(keys)
}

// TickTimers decrements both hardware timers by one, floored at zero.
// The clock driver calls this exactly once per 60Hz quantum, independent of
// how many instruction cycles ran in that quantum. Timers tick even while
// the machine awaits a key; a halted machine is frozen entirely.
func (e *Emulator) TickTimers() {
	if e.state == StateHalted {
		return
	}
	if e.regFile.DT > 0 {
		e.regFile.DT--
	}
	if e.regFile.ST > 0 {
		e.regFile.ST--
	}
}

// Beeping reports whether the sound timer asks the audio collaborator for a
// tone. The emulator itself produces no audio.
func (e *Emulator) Beeping() bool {
	return e.regFile.ST > 0
}

// Step executes a single fetch-decode-execute cycle.
//
// In StateAwaitingKey no dispatch happens: the cycle is a no-op until the
// next key publication latches a key. In StateHalted the halting fault is
// returned and nothing executes.
func (e *Emulator) Step() StepResult {
	switch e.state {
	case StateUninitialized:
		return StepResult{Halted: true, Err: fmt.Errorf("no program loaded")}
	case StateHalted:
		return StepResult{Halted: true, Err: e.haltErr}
	case StateAwaitingKey:
		return StepResult{}
	}

	// 1. Fetch: assemble the big-endian word at PC.
	word := e.memory.Read16(e.regFile.PC)

	// 2. Decode.
	inst := e.decoder.Decode(word)

	// 3. Execute. Each semantic advances PC itself; jumps, calls, returns
	// and skips all need non-default PC behavior.
	result := e.execute(inst)

	e.instructionCount++

	return result
}

// halt transitions the machine to the terminal halted state.
func (e *Emulator) halt(err error) StepResult {
	e.state = StateHalted
	e.haltErr = err
	return StepResult{Halted: true, Err: err}
}
