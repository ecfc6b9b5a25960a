package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/retroemu/chip8emu/emu"
)

var _ = Describe("Display", func() {
	var d *emu.Display

	BeforeEach(func() {
		d = emu.NewDisplay()
	})

	Describe("Draw", func() {
		It("should set pixels from sprite bits, left to right", func() {
			collision := d.Draw([]byte{0b10100000}, 0, 0)

			Expect(collision).To(BeFalse())
			Expect(d.Pixel(0, 0)).To(BeTrue())
			Expect(d.Pixel(1, 0)).To(BeFalse())
			Expect(d.Pixel(2, 0)).To(BeTrue())
		})

		It("should toggle pixels off and report collision on a redraw", func() {
			first := d.Draw([]byte{0xFF}, 10, 5)
			second := d.Draw([]byte{0xFF}, 10, 5)

			Expect(first).To(BeFalse())
			Expect(second).To(BeTrue())
			for x := 10; x < 18; x++ {
				Expect(d.Pixel(x, 5)).To(BeFalse())
			}
		})

		It("should report collision when any single pixel toggles off", func() {
			d.Draw([]byte{0b00010000}, 0, 0)

			collision := d.Draw([]byte{0xFF}, 0, 0)

			Expect(collision).To(BeTrue())
			Expect(d.Pixel(3, 0)).To(BeFalse())
			Expect(d.Pixel(0, 0)).To(BeTrue())
		})

		It("should wrap columns around the right edge per pixel", func() {
			collision := d.Draw([]byte{0xFF}, 60, 0)

			Expect(collision).To(BeFalse())
			for _, x := range []int{60, 61, 62, 63, 0, 1, 2, 3} {
				Expect(d.Pixel(x, 0)).To(BeTrue(), "column %d", x)
			}
		})

		It("should wrap rows around the bottom edge", func() {
			d.Draw([]byte{0x80, 0x80, 0x80}, 0, 30)

			Expect(d.Pixel(0, 30)).To(BeTrue())
			Expect(d.Pixel(0, 31)).To(BeTrue())
			Expect(d.Pixel(0, 0)).To(BeTrue())
		})

		It("should wrap an out-of-range origin onto the grid", func() {
			d.Draw([]byte{0x80}, 64+3, 32+2)

			Expect(d.Pixel(3, 2)).To(BeTrue())
		})

		It("should handle the maximum sprite height", func() {
			sprite := make([]byte, 15)
			for i := range sprite {
				sprite[i] = 0x80
			}

			collision := d.Draw(sprite, 0, 0)

			Expect(collision).To(BeFalse())
			for y := 0; y < 15; y++ {
				Expect(d.Pixel(0, y)).To(BeTrue())
			}
		})
	})

	Describe("Clear", func() {
		It("should unset every pixel", func() {
			d.Draw([]byte{0xFF, 0xFF}, 20, 10)

			d.Clear()

			for y := 0; y < emu.DisplayHeight; y++ {
				for x := 0; x < emu.DisplayWidth; x++ {
					Expect(d.Pixel(x, y)).To(BeFalse())
				}
			}
		})
	})

	Describe("Snapshot", func() {
		It("should return a copy detached from the framebuffer", func() {
			d.Draw([]byte{0x80}, 0, 0)

			snapshot := d.Snapshot()
			d.Clear()

			Expect(snapshot[0][0]).To(BeTrue())
			Expect(d.Pixel(0, 0)).To(BeFalse())
		})
	})
})

var _ = Describe("Draw instruction (Dxyn)", func() {
	var e *emu.Emulator

	BeforeEach(func() {
		e = emu.NewEmulator()
	})

	It("should blit the sprite at I and report collision in VF", func() {
		// DRW V0, V1, 1 drawn twice at the same origin.
		Expect(e.LoadProgram(program(0xD011, 0xD011))).To(Succeed())
		e.Memory().Write8(0x300, 0xFF)
		e.RegFile().I = 0x300

		e.Step()
		Expect(e.RegFile().V[emu.FlagRegister]).To(Equal(uint8(0)))

		e.Step()
		Expect(e.RegFile().V[emu.FlagRegister]).To(Equal(uint8(1)))
		for x := 0; x < 8; x++ {
			Expect(e.Display().Pixel(x, 0)).To(BeFalse())
		}
	})

	It("should draw the built-in font sprites", func() {
		// LD V0, 0; LD F, V0; DRW V1, V2, 5 draws the glyph for 0.
		Expect(e.LoadProgram(program(0x6000, 0xF029, 0xD125))).To(Succeed())

		e.Step()
		e.Step()
		Expect(e.RegFile().I).To(Equal(uint16(0)))

		e.Step()

		// Top row of the 0 glyph is 0xF0: four lit pixels.
		for x := 0; x < 4; x++ {
			Expect(e.Display().Pixel(x, 0)).To(BeTrue())
		}
		Expect(e.Display().Pixel(4, 0)).To(BeFalse())
	})
})
