package insts

// Op represents a CHIP-8 opcode.
type Op uint8

// CHIP-8 opcodes.
const (
	OpUnknown Op = iota
	OpSYS        // 0nnn - legacy machine-code call, ignored
	OpCLS        // 00E0 - clear display
	OpRET        // 00EE - return from subroutine
	OpJP         // 1nnn - jump to addr
	OpCALL       // 2nnn - call subroutine at addr
	OpSEByte     // 3xkk - skip next if Vx == kk
	OpSNEByte    // 4xkk - skip next if Vx != kk
	OpSEReg      // 5xy0 - skip next if Vx == Vy
	OpLDByte     // 6xkk - Vx = kk
	OpADDByte    // 7xkk - Vx += kk (no flag)
	OpLDReg      // 8xy0 - Vx = Vy
	OpOR         // 8xy1 - Vx |= Vy
	OpAND        // 8xy2 - Vx &= Vy
	OpXOR        // 8xy3 - Vx ^= Vy
	OpADDReg     // 8xy4 - Vx += Vy, VF = carry
	OpSUB        // 8xy5 - Vx -= Vy, VF = not borrow
	OpSHR        // 8xy6 - Vx >>= 1, VF = bit shifted out
	OpSUBN       // 8xy7 - Vx = Vy - Vx, VF = not borrow
	OpSHL        // 8xyE - Vx <<= 1, VF = bit shifted out
	OpSNEReg     // 9xy0 - skip next if Vx != Vy
	OpLDI        // Annn - I = nnn
	OpJPV0       // Bnnn - jump to nnn + V0
	OpRND        // Cxkk - Vx = random byte AND kk
	OpDRW        // Dxyn - draw n-byte sprite at (Vx, Vy), VF = collision
	OpSKP        // Ex9E - skip next if key Vx is pressed
	OpSKNP       // ExA1 - skip next if key Vx is not pressed
	OpLDFromDT   // Fx07 - Vx = delay timer
	OpLDKey      // Fx0A - wait for key press, Vx = key
	OpLDToDT     // Fx15 - delay timer = Vx
	OpLDToST     // Fx18 - sound timer = Vx
	OpADDI       // Fx1E - I += Vx
	OpLDFont     // Fx29 - I = font sprite address for digit Vx
	OpLDBCD      // Fx33 - memory[I..I+2] = BCD of Vx
	OpLDToMem    // Fx55 - memory[I..I+x] = V0..Vx
	OpLDFromMem  // Fx65 - V0..Vx = memory[I..I+x]
)

var opNames = map[Op]string{
	OpUnknown:   "???",
	OpSYS:       "SYS",
	OpCLS:       "CLS",
	OpRET:       "RET",
	OpJP:        "JP",
	OpCALL:      "CALL",
	OpSEByte:    "SE",
	OpSNEByte:   "SNE",
	OpSEReg:     "SE",
	OpLDByte:    "LD",
	OpADDByte:   "ADD",
	OpLDReg:     "LD",
	OpOR:        "OR",
	OpAND:       "AND",
	OpXOR:       "XOR",
	OpADDReg:    "ADD",
	OpSUB:       "SUB",
	OpSHR:       "SHR",
	OpSUBN:      "SUBN",
	OpSHL:       "SHL",
	OpSNEReg:    "SNE",
	OpLDI:       "LD I",
	OpJPV0:      "JP V0",
	OpRND:       "RND",
	OpDRW:       "DRW",
	OpSKP:       "SKP",
	OpSKNP:      "SKNP",
	OpLDFromDT:  "LD Vx, DT",
	OpLDKey:     "LD Vx, K",
	OpLDToDT:    "LD DT",
	OpLDToST:    "LD ST",
	OpADDI:      "ADD I",
	OpLDFont:    "LD F",
	OpLDBCD:     "LD B",
	OpLDToMem:   "LD [I]",
	OpLDFromMem: "LD Vx, [I]",
}

// String returns the conventional mnemonic for the opcode.
func (o Op) String() string {
	if name, ok := opNames[o]; ok {
		return name
	}
	return "???"
}

// Instruction represents a decoded CHIP-8 instruction.
type Instruction struct {
	Op Op // Operation code

	// Operand fields. Each instruction uses the subset its encoding defines;
	// the rest are zero.
	X    uint8  // Second nibble: first register operand
	Y    uint8  // Third nibble: second register operand
	N    uint8  // Last nibble: sprite height
	Byte uint8  // Low byte: immediate operand
	Addr uint16 // Low 12 bits: address operand

	// Word is the raw instruction word, kept for diagnostics.
	Word uint16
}

// Decoder decodes CHIP-8 machine code into instructions.
type Decoder struct{}

// NewDecoder creates a new CHIP-8 instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes a 16-bit CHIP-8 instruction word.
// The word is expected in host order; the fetch step assembles it big-endian
// from the two memory bytes at PC.
func (d *Decoder) Decode(word uint16) *Instruction {
	inst := &Instruction{
		Op:   OpUnknown,
		X:    uint8((word >> 8) & 0xF), // bits [11:8]
		Y:    uint8((word >> 4) & 0xF), // bits [7:4]
		N:    uint8(word & 0xF),        // bits [3:0]
		Byte: uint8(word & 0xFF),       // bits [7:0]
		Addr: word & 0xFFF,             // bits [11:0]
		Word: word,
	}

	switch word >> 12 {
	case 0x0:
		d.decodeSystem(word, inst)
	case 0x1:
		inst.Op = OpJP
	case 0x2:
		inst.Op = OpCALL
	case 0x3:
		inst.Op = OpSEByte
	case 0x4:
		inst.Op = OpSNEByte
	case 0x5:
		if inst.N == 0 {
			inst.Op = OpSEReg
		}
	case 0x6:
		inst.Op = OpLDByte
	case 0x7:
		inst.Op = OpADDByte
	case 0x8:
		d.decodeArithmetic(word, inst)
	case 0x9:
		if inst.N == 0 {
			inst.Op = OpSNEReg
		}
	case 0xA:
		inst.Op = OpLDI
	case 0xB:
		inst.Op = OpJPV0
	case 0xC:
		inst.Op = OpRND
	case 0xD:
		inst.Op = OpDRW
	case 0xE:
		d.decodeKey(word, inst)
	case 0xF:
		d.decodeMisc(word, inst)
	}

	return inst
}

// decodeSystem decodes the 0nnn class.
// 00E0 and 00EE are the only two patterns with defined semantics; every
// other 0nnn word is the legacy SYS call, which modern interpreters ignore.
func (d *Decoder) decodeSystem(word uint16, inst *Instruction) {
	switch word {
	case 0x00E0:
		inst.Op = OpCLS
	case 0x00EE:
		inst.Op = OpRET
	default:
		inst.Op = OpSYS
	}
}

// decodeArithmetic decodes the 8xyN register-to-register class,
// selected by the trailing nibble.
func (d *Decoder) decodeArithmetic(word uint16, inst *Instruction) {
	switch word & 0xF {
	case 0x0:
		inst.Op = OpLDReg
	case 0x1:
		inst.Op = OpOR
	case 0x2:
		inst.Op = OpAND
	case 0x3:
		inst.Op = OpXOR
	case 0x4:
		inst.Op = OpADDReg
	case 0x5:
		inst.Op = OpSUB
	case 0x6:
		inst.Op = OpSHR
	case 0x7:
		inst.Op = OpSUBN
	case 0xE:
		inst.Op = OpSHL
	}
}

// decodeKey decodes the ExKK key-test class.
func (d *Decoder) decodeKey(word uint16, inst *Instruction) {
	switch word & 0xFF {
	case 0x9E:
		inst.Op = OpSKP
	case 0xA1:
		inst.Op = OpSKNP
	}
}

// decodeMisc decodes the FxKK class, selected by the trailing byte.
func (d *Decoder) decodeMisc(word uint16, inst *Instruction) {
	switch word & 0xFF {
	case 0x07:
		inst.Op = OpLDFromDT
	case 0x0A:
		inst.Op = OpLDKey
	case 0x15:
		inst.Op = OpLDToDT
	case 0x18:
		inst.Op = OpLDToST
	case 0x1E:
		inst.Op = OpADDI
	case 0x29:
		inst.Op = OpLDFont
	case 0x33:
		inst.Op = OpLDBCD
	case 0x55:
		inst.Op = OpLDToMem
	case 0x65:
		inst.Op = OpLDFromMem
	}
}
