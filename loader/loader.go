// Package loader provides CHIP-8 ROM image loading.
//
// CHIP-8 images are raw binary byte streams with no header or metadata,
// loaded verbatim into machine memory at 0x200. The only validation a load
// performs is the size limit: an image must fit in the 3584 bytes of program
// space.
package loader

import (
	"fmt"
	"os"

	"github.com/retroemu/chip8emu/emu"
)

// Program represents a loaded ROM image ready for execution.
type Program struct {
	// Data is the raw image, loaded into memory at emu.ProgramStart.
	Data []byte
}

// Load reads a ROM image from a file.
func Load(path string) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ROM file: %w", err)
	}

	prog, err := LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return prog, nil
}

// LoadBytes validates a ROM image held in memory.
// Oversized and empty images are rejected before any machine state exists.
func LoadBytes(data []byte) (*Program, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty ROM image")
	}
	if len(data) > emu.MaxProgramSize {
		return nil, fmt.Errorf("%w: %d bytes, limit %d",
			emu.ErrImageTooLarge, len(data), emu.MaxProgramSize)
	}

	return &Program{Data: data}, nil
}
