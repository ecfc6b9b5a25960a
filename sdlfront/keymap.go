package sdlfront

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/retroemu/chip8emu/emu"
)

// keymap maps host scancodes to hex keypad values, using the standard
// CHIP-8 layout on the left portion of the keyboard:
//
//	1 2 3 4        1 2 3 C
//	Q W E R   ->   4 5 6 D
//	A S D F        7 8 9 E
//	Z X C V        A 0 B F
var keymap = map[sdl.Scancode]uint8{
	sdl.SCANCODE_1: 0x1, sdl.SCANCODE_2: 0x2, sdl.SCANCODE_3: 0x3, sdl.SCANCODE_4: 0xC,
	sdl.SCANCODE_Q: 0x4, sdl.SCANCODE_W: 0x5, sdl.SCANCODE_E: 0x6, sdl.SCANCODE_R: 0xD,
	sdl.SCANCODE_A: 0x7, sdl.SCANCODE_S: 0x8, sdl.SCANCODE_D: 0x9, sdl.SCANCODE_F: 0xE,
	sdl.SCANCODE_Z: 0xA, sdl.SCANCODE_X: 0x0, sdl.SCANCODE_C: 0xB, sdl.SCANCODE_V: 0xF,
}

// pollKeypad reads the host keyboard state into a keypad set.
func pollKeypad() [emu.KeyCount]bool {
	var keys [emu.KeyCount]bool

	state := sdl.GetKeyboardState()
	for scancode, key := range keymap {
		if state[scancode] != 0 {
			keys[key] = true
		}
	}

	return keys
}
