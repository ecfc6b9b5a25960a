package emu

// Display dimensions in pixels.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

// Display is the 64x32 monochrome framebuffer. Sprite drawing XORs pixels
// into it; pixels persist until redrawn or cleared.
type Display struct {
	pixels [DisplayHeight][DisplayWidth]bool
}

// NewDisplay creates a cleared display.
func NewDisplay() *Display {
	return &Display{}
}

// Clear unsets every pixel.
func (d *Display) Clear() {
	d.pixels = [DisplayHeight][DisplayWidth]bool{}
}

// Pixel reports whether the pixel at (x, y) is set.
// Coordinates wrap modulo the grid.
func (d *Display) Pixel(x, y int) bool {
	return d.pixels[y%DisplayHeight][x%DisplayWidth]
}

// Draw blits a sprite at origin (x mod 64, y mod 32) and reports collision.
//
// Each sprite byte is one 8-pixel row, most significant bit leftmost. Every
// set sprite bit is XORed into the framebuffer, with column and row wrapping
// independently modulo the grid. Collision is true if any pixel transitioned
// from set to unset.
func (d *Display) Draw(sprite []byte, x, y uint8) bool {
	collision := false

	for row, b := range sprite {
		py := (int(y) + row) % DisplayHeight
		for bit := 0; bit < 8; bit++ {
			if b&(0x80>>bit) == 0 {
				continue
			}
			px := (int(x) + bit) % DisplayWidth

			if d.pixels[py][px] {
				collision = true
			}
			d.pixels[py][px] = !d.pixels[py][px]
		}
	}

	return collision
}

// Snapshot returns a copy of the framebuffer for external rendering.
// The rendering collaborator takes one snapshot per frame, after all cycles
// for the frame complete.
func (d *Display) Snapshot() [DisplayHeight][DisplayWidth]bool {
	return d.pixels
}
