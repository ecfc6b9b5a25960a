package emu

import "fmt"

// Memory layout constants.
const (
	// MemorySize is the total addressable memory (4KB).
	MemorySize = 4096

	// AddrMask reduces any address to the 12 significant bits.
	AddrMask = 0xFFF

	// ProgramStart is the address where program images load and execution
	// begins. Addresses below it hold the built-in font sprites.
	ProgramStart = 0x200

	// MaxProgramSize is the largest program image that fits in memory.
	MaxProgramSize = MemorySize - ProgramStart

	// fontGlyphSize is the height in bytes of one font sprite.
	fontGlyphSize = 5
)

// fontSet holds the 16 built-in hexadecimal digit sprites, 5 bytes each,
// in order from 0 through F.
var fontSet = [16 * fontGlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// FontAddr returns the memory address of the font sprite for a hex digit.
func FontAddr(digit uint8) uint16 {
	return uint16(digit&0xF) * fontGlyphSize
}

// Memory is the flat 4KB byte store. All accesses mask the address to
// 12 bits, so reads and writes can never leave the 0x000-0xFFF range.
type Memory struct {
	data [MemorySize]byte
}

// NewMemory creates a memory with the font sprites preloaded at 0x000.
func NewMemory() *Memory {
	m := &Memory{}
	copy(m.data[:], fontSet[:])
	return m
}

// Read8 reads a byte.
func (m *Memory) Read8(addr uint16) byte {
	return m.data[addr&AddrMask]
}

// Write8 writes a byte.
func (m *Memory) Write8(addr uint16, value byte) {
	m.data[addr&AddrMask] = value
}

// Read16 reads a big-endian 16-bit word, as instruction fetch requires.
// The two bytes are masked independently.
func (m *Memory) Read16(addr uint16) uint16 {
	hi := uint16(m.data[addr&AddrMask])
	lo := uint16(m.data[(addr+1)&AddrMask])
	return hi<<8 | lo
}

// LoadProgram copies a program image into memory at ProgramStart.
// Images larger than MaxProgramSize are rejected before any byte is written.
func (m *Memory) LoadProgram(data []byte) error {
	if len(data) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrImageTooLarge, len(data), MaxProgramSize)
	}
	copy(m.data[ProgramStart:], data)
	return nil
}
