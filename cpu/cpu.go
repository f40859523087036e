// Package cpu emulates the MOS Technology 6502 microprocessor, one
// instruction at a time, against a peripheral-mapped address bus.
//
// The Cpu has no memory of its own beyond the register file; everything
// else is reached through the bus. Callers drive it by feeding decoded
// instructions to Execute (or letting Step fetch them), and observe it
// through State and the cycle counter.
package cpu

import (
	"s6502/bus"
	"s6502/mask"
)

// Status register bits.
//
// 7654 3210
// NV1B DIZC
//
// https://www.nesdev.org/wiki/Status_flags
const (
	FlagCarry     byte = 1 << 0
	FlagZero      byte = 1 << 1
	FlagInterrupt byte = 1 << 2
	FlagDecimal   byte = 1 << 3
	FlagBreak     byte = 1 << 4
	FlagUnused    byte = 1 << 5
	FlagOverflow  byte = 1 << 6
	FlagNegative  byte = 1 << 7
)

// Interrupt vector locations, little-endian pointers at the top of the
// address space. This core only ever follows VectorIRQ (for BRK) and
// VectorReset (for Reset); the NMI slot is listed for embedders laying
// out ROMs.
const (
	VectorNMI   uint16 = 0xfffa
	VectorReset uint16 = 0xfffc
	VectorIRQ   uint16 = 0xfffe
)

// The hardware stack lives in page 1: the 8-bit stack pointer is an
// offset from stackBase, so it wraps within 0x0100..0x01ff.
const stackBase uint16 = 0x0100

// Cpu is a single 6502 core. Exported register fields are free for the
// embedder to read and poke between instructions; Execute assumes it is
// the only mutator while it runs. A Cpu must not be shared across
// goroutines, though independent Cpus over independent buses can run in
// parallel.
type Cpu struct {
	Bus *bus.Bus

	Accumulator byte
	X           byte
	Y           byte

	// Stack is the low byte of the next free stack slot in page 1.
	Stack byte

	// Status packs the seven flags, NV1B DIZC.
	Status byte

	ProgramCounter uint16

	// Cycles counts elapsed machine cycles across all executed
	// instructions. It only ever grows.
	Cycles uint64
}

// New returns a zeroed Cpu on the given bus. The initial program counter
// is the caller's to set; New performs no reset sequence (Reset does).
func New(b *bus.Bus) *Cpu {
	return &Cpu{Bus: b}
}

// State is a snapshot of the register file and cycle counter.
type State struct {
	A, X, Y byte
	SP      byte
	Status  byte
	PC      uint16
	Cycles  uint64
}

// State snapshots the externally visible CPU state.
func (c *Cpu) State() State {
	return State{
		A:      c.Accumulator,
		X:      c.X,
		Y:      c.Y,
		SP:     c.Stack,
		Status: c.Status,
		PC:     c.ProgramCounter,
		Cycles: c.Cycles,
	}
}

// Reset puts the core in its post-reset state: registers cleared, stack
// pointer at 0xfd (the reset sequence burns three pushes), and the
// program counter loaded from the reset vector.
func (c *Cpu) Reset() {
	c.Accumulator = 0
	c.X = 0
	c.Y = 0
	c.Stack = 0xfd
	c.Status = mask.Set(0, FlagUnused)
	c.ProgramCounter = c.read16(VectorReset)
}

// Push writes value to the page 1 stack slot the stack pointer names,
// then moves the pointer down. Under/overflow wraps within page 1.
func (c *Cpu) Push(value byte) {
	c.Bus.Store(stackBase+uint16(c.Stack), value)
	c.Stack--
}

// Pop moves the stack pointer up, then reads the page 1 slot it names.
func (c *Cpu) Pop() byte {
	c.Stack++
	value, _ := c.Bus.Load(stackBase + uint16(c.Stack))
	return value
}

// Step fetches the instruction at the program counter, decodes it and
// executes it. The three bus bytes are packed most significant first
// into the chunk layout Decode expects; for short encodings the trailing
// bytes are fetched anyway and ignored, like the real prefetch.
func (c *Cpu) Step() {
	op, _ := c.Bus.Load(c.ProgramCounter)
	b1, _ := c.Bus.Load(c.ProgramCounter + 1)
	b2, _ := c.Bus.Load(c.ProgramCounter + 2)

	chunk := uint32(op)<<24 | uint32(b1)<<16 | uint32(b2)<<8
	c.Execute(Decode(chunk))
}

// flag reads a single status bit.
func (c *Cpu) flag(f byte) bool {
	return mask.IsSet(c.Status, f)
}

// setFlag assigns a single status bit.
func (c *Cpu) setFlag(f byte, on bool) {
	c.Status = mask.Assign(c.Status, f, on)
}

// setZN updates the zero and negative flags from a result byte, the
// way nearly every value-producing instruction does.
func (c *Cpu) setZN(result byte) {
	c.setFlag(FlagZero, result == 0)
	c.setFlag(FlagNegative, result&0x80 != 0)
}

// read16 loads a little-endian word from the bus, low byte first.
func (c *Cpu) read16(addr uint16) uint16 {
	lo, _ := c.Bus.Load(addr)
	hi, _ := c.Bus.Load(addr + 1)
	return mask.Word(hi, lo)
}

// read16zp loads a little-endian word whose bytes both live in the zero
// page; the pointer to the high byte wraps at 0xff instead of escaping
// to page 1.
func (c *Cpu) read16zp(zp byte) uint16 {
	lo, _ := c.Bus.Load(uint16(zp))
	hi, _ := c.Bus.Load(uint16(zp + 1))
	return mask.Word(hi, lo)
}
