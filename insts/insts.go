// Package insts provides CHIP-8 instruction definitions and decoding.
//
// This package implements decoding of CHIP-8 machine code into structured
// instruction representations. All 35 instructions of the original
// interpreter are covered; words that do not match any defined pattern
// decode to OpUnknown.
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst := decoder.Decode(0x8124) // ADD V1, V2
//	fmt.Printf("Op: %v, X: %d, Y: %d\n", inst.Op, inst.X, inst.Y)
package insts
