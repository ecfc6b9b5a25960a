// Package clock drives the CHIP-8 machine at frame granularity.
//
// Each frame polls input into the machine, executes a configurable number of
// instruction cycles, and ticks the hardware timers exactly once. The
// cycles-per-frame count approximates variable historical clock speeds while
// the timer decay stays fixed at 60Hz.
package clock

import (
	"io"

	"github.com/retroenv/retrogolib/log"

	"github.com/retroemu/chip8emu/emu"
)

// TimerHz is the fixed timer decay rate in ticks per second of wall-clock
// time. The frame loop is expected to run at this rate.
const TimerHz = 60

// DefaultCyclesPerFrame approximates the original interpreter's roughly
// 500Hz instruction clock against 60 frames per second.
const DefaultCyclesPerFrame = 10

// FrameResult summarizes one frame of execution.
type FrameResult struct {
	// Cycles is the number of instruction cycles dispatched this frame.
	Cycles int

	// Beep is true while the sound timer asks for a tone.
	Beep bool

	// Halted is true once the machine hit a fatal fault. The display keeps
	// its last state; no further cycles execute.
	Halted bool

	// Fault is the fatal fault that halted the machine, if any.
	Fault error
}

// Driver owns the frame loop policy. It holds a reference to the emulator
// sufficient to invoke cycles and read its state, and is the only component
// allowed to pause and step the machine.
type Driver struct {
	emulator       *emu.Emulator
	cyclesPerFrame int
	logger         *log.Logger
	debugSink      io.Writer

	paused     bool
	haltLogged bool
}

// DriverOption is a functional option for configuring the Driver.
type DriverOption func(*Driver)

// WithCyclesPerFrame sets how many instruction cycles run per frame.
func WithCyclesPerFrame(n int) DriverOption {
	return func(d *Driver) {
		if n > 0 {
			d.cyclesPerFrame = n
		}
	}
}

// WithLogger sets the structured logger for runtime diagnostics.
func WithLogger(logger *log.Logger) DriverOption {
	return func(d *Driver) {
		d.logger = logger
	}
}

// WithDebugSink sets the writer that receives single-step state dumps.
func WithDebugSink(w io.Writer) DriverOption {
	return func(d *Driver) {
		d.debugSink = w
	}
}

// New creates a frame driver for the given emulator.
func New(emulator *emu.Emulator, opts ...DriverOption) *Driver {
	d := &Driver{
		emulator:       emulator,
		cyclesPerFrame: DefaultCyclesPerFrame,
		debugSink:      io.Discard,
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.logger == nil {
		d.logger = log.NewWithConfig(log.DefaultConfig())
	}

	return d
}

// Emulator returns the driven emulator.
func (d *Driver) Emulator() *emu.Emulator {
	return d.emulator
}

// Paused reports whether the frame loop is frozen.
func (d *Driver) Paused() bool {
	return d.paused
}

// Pause freezes both dispatch and timer ticking.
func (d *Driver) Pause() {
	d.paused = true
}

// Resume unfreezes the frame loop.
func (d *Driver) Resume() {
	d.paused = false
}

// TogglePause flips the pause state and returns the new value.
func (d *Driver) TogglePause() bool {
	d.paused = !d.paused
	return d.paused
}

// Frame runs one frame: publish the key state, execute the configured cycle
// budget, tick the timers once. While paused, nothing runs at all. While the
// machine awaits a key, dispatch is suspended but timers still tick.
func (d *Driver) Frame(keys [emu.KeyCount]bool) FrameResult {
	if d.paused {
		return d.result(0)
	}

	d.emulator.SetKeys(keys)

	cycles := d.runCycles(d.cyclesPerFrame)
	d.emulator.TickTimers()

	return d.result(cycles)
}

// StepOnce performs exactly one cycle plus one timer tick and dumps the
// resulting machine state to the debug sink. It is only effective while
// paused.
func (d *Driver) StepOnce(keys [emu.KeyCount]bool) FrameResult {
	if !d.paused {
		return d.result(0)
	}

	d.emulator.SetKeys(keys)

	cycles := d.runCycles(1)
	d.emulator.TickTimers()

	d.emulator.DumpState(d.debugSink)

	return d.result(cycles)
}

// runCycles dispatches up to n cycles, stopping early when the machine
// halts or suspends on a key wait.
func (d *Driver) runCycles(n int) int {
	cycles := 0

	for i := 0; i < n; i++ {
		if d.emulator.State() == emu.StateAwaitingKey {
			break
		}

		result := d.emulator.Step()
		if result.Halted {
			d.logHalt(result.Err)
			break
		}
		cycles++
	}

	return cycles
}

// logHalt reports a fatal fault once.
func (d *Driver) logHalt(fault error) {
	if d.haltLogged || fault == nil {
		return
	}
	d.haltLogged = true
	d.logger.Error("machine halted",
		log.String("fault", fault.Error()),
	)
}

func (d *Driver) result(cycles int) FrameResult {
	halted := d.emulator.State() == emu.StateHalted
	return FrameResult{
		Cycles: cycles,
		Beep:   d.emulator.Beeping(),
		Halted: halted,
		Fault:  d.emulator.HaltFault(),
	}
}
