package clock

import (
	"github.com/sarchlab/akita/v4/sim"

	"github.com/retroemu/chip8emu/emu"
)

// framePeriod is the virtual-time spacing between frames, matching the 60Hz
// timer decay rate.
const framePeriod = sim.VTimeInSec(1.0 / TimerHz)

// PollFunc supplies the key state for a given frame number.
type PollFunc func(frame int) [emu.KeyCount]bool

// frameEvent marks one frame boundary on the event engine.
type frameEvent struct {
	*sim.EventBase
	frame int
}

// Scheduler runs a fixed number of frames on an event-driven engine in
// virtual time. Runs are deterministic and independent of wall-clock speed,
// which makes it the headless counterpart of a display-paced frame loop.
type Scheduler struct {
	engine sim.Engine
	driver *Driver
	poll   PollFunc
	frames int

	executed int
	last     FrameResult
}

// NewScheduler creates a scheduler that runs the driver for the given number
// of frames. poll may be nil for runs with no input.
func NewScheduler(driver *Driver, frames int, poll PollFunc) *Scheduler {
	return &Scheduler{
		engine: sim.NewSerialEngine(),
		driver: driver,
		poll:   poll,
		frames: frames,
	}
}

// Handle executes one frame and schedules the next one.
func (s *Scheduler) Handle(e sim.Event) error {
	evt := e.(*frameEvent)

	var keys [emu.KeyCount]bool
	if s.poll != nil {
		keys = s.poll(evt.frame)
	}

	s.last = s.driver.Frame(keys)
	s.executed++

	if s.last.Halted {
		return nil
	}

	if next := evt.frame + 1; next < s.frames {
		s.engine.Schedule(&frameEvent{
			EventBase: sim.NewEventBase(evt.Time()+framePeriod, s),
			frame:     next,
		})
	}

	return nil
}

// Run executes the scheduled frames and returns once the engine drains.
func (s *Scheduler) Run() error {
	if s.frames <= 0 {
		return nil
	}

	s.engine.Schedule(&frameEvent{
		EventBase: sim.NewEventBase(framePeriod, s),
		frame:     0,
	})

	return s.engine.Run()
}

// FramesExecuted returns how many frames actually ran. It is less than the
// requested count when the machine halted mid-run.
func (s *Scheduler) FramesExecuted() int {
	return s.executed
}

// LastResult returns the result of the most recent frame.
func (s *Scheduler) LastResult() FrameResult {
	return s.last
}
