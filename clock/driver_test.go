package clock_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/retroemu/chip8emu/clock"
	"github.com/retroemu/chip8emu/emu"
)

var _ = Describe("Driver", func() {
	var (
		emulator *emu.Emulator
		debugBuf *bytes.Buffer
		noKeys   [emu.KeyCount]bool
	)

	BeforeEach(func() {
		debugBuf = &bytes.Buffer{}
		emulator = emu.NewEmulator(emu.WithDiagnostics(&bytes.Buffer{}))
	})

	newDriver := func(opts ...clock.DriverOption) *clock.Driver {
		opts = append(opts, clock.WithDebugSink(debugBuf))
		return clock.New(emulator, opts...)
	}

	Describe("Frame", func() {
		It("should run the configured cycle budget and tick timers once", func() {
			// JP 0x200: a one-instruction loop.
			Expect(emulator.LoadProgram(program(0x1200))).To(Succeed())
			emulator.RegFile().DT = 10

			driver := newDriver(clock.WithCyclesPerFrame(4))
			result := driver.Frame(noKeys)

			Expect(result.Cycles).To(Equal(4))
			Expect(emulator.InstructionCount()).To(Equal(uint64(4)))
			Expect(emulator.RegFile().DT).To(Equal(uint8(9)))
		})

		It("should report beeping while the sound timer runs", func() {
			Expect(emulator.LoadProgram(program(0x1200))).To(Succeed())
			emulator.RegFile().ST = 2

			driver := newDriver()

			Expect(driver.Frame(noKeys).Beep).To(BeTrue())
			Expect(driver.Frame(noKeys).Beep).To(BeFalse())
		})

		It("should freeze dispatch and timers while paused", func() {
			Expect(emulator.LoadProgram(program(0x1200))).To(Succeed())
			emulator.RegFile().DT = 10

			driver := newDriver()
			driver.Pause()
			result := driver.Frame(noKeys)

			Expect(result.Cycles).To(Equal(0))
			Expect(emulator.InstructionCount()).To(Equal(uint64(0)))
			Expect(emulator.RegFile().DT).To(Equal(uint8(10)))
		})

		It("should stop dispatch on a fatal fault and stay halted", func() {
			// RET with an empty stack.
			Expect(emulator.LoadProgram(program(0x00EE))).To(Succeed())

			driver := newDriver(clock.WithCyclesPerFrame(8))
			result := driver.Frame(noKeys)

			Expect(result.Halted).To(BeTrue())
			Expect(result.Fault).To(MatchError(emu.ErrStackUnderflow))

			emulator.RegFile().DT = 5
			next := driver.Frame(noKeys)

			Expect(next.Cycles).To(Equal(0))
			Expect(next.Halted).To(BeTrue())
			Expect(emulator.RegFile().DT).To(Equal(uint8(5)))
		})

		It("should keep ticking timers while the machine awaits a key", func() {
			// LD V1, K.
			Expect(emulator.LoadProgram(program(0xF10A))).To(Succeed())
			emulator.RegFile().DT = 10

			driver := newDriver(clock.WithCyclesPerFrame(8))
			for i := 0; i < 5; i++ {
				driver.Frame(noKeys)
			}

			Expect(emulator.RegFile().PC).To(Equal(uint16(0x200)))
			Expect(emulator.RegFile().DT).To(Equal(uint8(5)))
			Expect(emulator.State()).To(Equal(emu.StateAwaitingKey))

			var keys [emu.KeyCount]bool
			keys[7] = true
			driver.Frame(keys)

			Expect(emulator.RegFile().V[1]).To(Equal(uint8(7)))
			Expect(emulator.State()).To(Equal(emu.StateRunning))
		})
	})

	Describe("StepOnce", func() {
		It("should do nothing while running", func() {
			Expect(emulator.LoadProgram(program(0x1200))).To(Succeed())

			driver := newDriver()
			result := driver.StepOnce(noKeys)

			Expect(result.Cycles).To(Equal(0))
			Expect(emulator.InstructionCount()).To(Equal(uint64(0)))
			Expect(debugBuf.Len()).To(Equal(0))
		})

		It("should execute one cycle, one tick, and dump state while paused", func() {
			Expect(emulator.LoadProgram(program(0x1200))).To(Succeed())
			emulator.RegFile().DT = 10

			driver := newDriver()
			driver.Pause()
			result := driver.StepOnce(noKeys)

			Expect(result.Cycles).To(Equal(1))
			Expect(emulator.InstructionCount()).To(Equal(uint64(1)))
			Expect(emulator.RegFile().DT).To(Equal(uint8(9)))

			dump := debugBuf.String()
			Expect(dump).To(ContainSubstring("registers"))
			Expect(dump).To(ContainSubstring("PC: 0x0200"))
			Expect(dump).To(ContainSubstring("DT:   9"))
		})
	})

	Describe("TogglePause", func() {
		It("should flip the pause state", func() {
			driver := newDriver()

			Expect(driver.Paused()).To(BeFalse())
			Expect(driver.TogglePause()).To(BeTrue())
			Expect(driver.TogglePause()).To(BeFalse())
		})
	})
})
