package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/retroemu/chip8emu/emu"
)

var _ = Describe("Memory", func() {
	var m *emu.Memory

	BeforeEach(func() {
		m = emu.NewMemory()
	})

	It("should preload the font sprites at 0x000", func() {
		// Glyph for 0 starts with 0xF0, glyph for F ends with 0x80.
		Expect(m.Read8(0x000)).To(Equal(byte(0xF0)))
		Expect(m.Read8(emu.FontAddr(0xF) + 4)).To(Equal(byte(0x80)))
	})

	It("should compute font addresses at five bytes per glyph", func() {
		Expect(emu.FontAddr(0x0)).To(Equal(uint16(0)))
		Expect(emu.FontAddr(0x1)).To(Equal(uint16(5)))
		Expect(emu.FontAddr(0xF)).To(Equal(uint16(75)))
		// Only the low nibble of the digit is significant.
		Expect(emu.FontAddr(0x1F)).To(Equal(uint16(75)))
	})

	It("should read big-endian 16-bit words", func() {
		m.Write8(0x400, 0x12)
		m.Write8(0x401, 0x34)

		Expect(m.Read16(0x400)).To(Equal(uint16(0x1234)))
	})

	It("should mask addresses to 12 bits", func() {
		m.Write8(0x1234, 0xAB)

		Expect(m.Read8(0x234)).To(Equal(byte(0xAB)))
		Expect(m.Read8(0xF234)).To(Equal(byte(0xAB)))
	})

	It("should wrap a word read at the top of memory", func() {
		m.Write8(0xFFF, 0xAA)
		m.Write8(0x000, 0xF0) // font data, already there

		Expect(m.Read16(0xFFF)).To(Equal(uint16(0xAAF0)))
	})

	It("should reject an oversized program image", func() {
		err := m.LoadProgram(make([]byte, emu.MaxProgramSize+1))

		Expect(err).To(MatchError(emu.ErrImageTooLarge))
		// Nothing was written.
		Expect(m.Read8(emu.ProgramStart)).To(Equal(byte(0)))
	})
})

var _ = Describe("Memory instructions", func() {
	var e *emu.Emulator

	BeforeEach(func() {
		e = emu.NewEmulator()
	})

	It("should store BCD digits at I, I+1, I+2", func() {
		Expect(e.LoadProgram(program(0xF033))).To(Succeed())
		e.RegFile().V[0] = 254
		e.RegFile().I = 0x500

		e.Step()

		Expect(e.Memory().Read8(0x500)).To(Equal(byte(2)))
		Expect(e.Memory().Read8(0x501)).To(Equal(byte(5)))
		Expect(e.Memory().Read8(0x502)).To(Equal(byte(4)))
	})

	It("should round-trip registers through memory with Fx55/Fx65", func() {
		// LD [I], V3 then LD V3, [I] after clobbering the registers.
		Expect(e.LoadProgram(program(0xF355, 0xF365))).To(Succeed())
		e.RegFile().I = 0x600
		for i := uint8(0); i <= 3; i++ {
			e.RegFile().V[i] = 10 + i
		}

		e.Step()
		for i := uint16(0); i <= 3; i++ {
			Expect(e.Memory().Read8(0x600 + i)).To(Equal(byte(10 + i)))
		}
		// Registers past X are untouched in memory.
		Expect(e.Memory().Read8(0x604)).To(Equal(byte(0)))

		for i := uint8(0); i <= 3; i++ {
			e.RegFile().V[i] = 0
		}

		e.Step()
		for i := uint8(0); i <= 3; i++ {
			Expect(e.RegFile().V[i]).To(Equal(uint8(10 + i)))
		}
		// I is left unchanged by both transfers.
		Expect(e.RegFile().I).To(Equal(uint16(0x600)))
	})

	It("should add a register into I without touching VF", func() {
		Expect(e.LoadProgram(program(0xF01E))).To(Succeed())
		e.RegFile().V[0] = 0x20
		e.RegFile().I = 0x300
		e.RegFile().V[emu.FlagRegister] = 7

		e.Step()

		Expect(e.RegFile().I).To(Equal(uint16(0x320)))
		Expect(e.RegFile().V[emu.FlagRegister]).To(Equal(uint8(7)))
	})
})
