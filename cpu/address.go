package cpu

import "s6502/mask"

// resolve applies an addressing mode to a raw operand, yielding the
// effective address and whether indexing crossed a page (one extra cycle
// for the read-group instructions; stores and read-modify-writes already
// pay it in their base counts).
//
// Immediate, implied, accumulator and relative modes have no effective
// address; the executor consumes their operand directly.
func (c *Cpu) resolve(mode AddressMode, operand uint16) (addr uint16, crossed bool) {
	switch mode {
	case ZeroPage:
		return operand & 0x00ff, false

	case ZeroPageX:
		// indexing never leaves the zero page: $ff + 1 wraps to $00
		return (operand + uint16(c.X)) & 0x00ff, false

	case ZeroPageY:
		return (operand + uint16(c.Y)) & 0x00ff, false

	case Absolute:
		return operand, false

	case AbsoluteX:
		addr = operand + uint16(c.X)
		return addr, !mask.SamePage(addr, operand)

	case AbsoluteY:
		addr = operand + uint16(c.Y)
		return addr, !mask.SamePage(addr, operand)

	case Indirect:
		// the operand is a pointer to the real target (JMP only)
		return c.read16(operand), false

	case IndirectX:
		// the pointer itself lives at (zp+X) mod 256, both of its
		// bytes in page 0
		return c.read16zp(byte(operand) + c.X), false

	case IndirectY:
		// indirection first, Y added after, so this one can cross
		base := c.read16zp(byte(operand))
		addr = base + uint16(c.Y)
		return addr, !mask.SamePage(addr, base)
	}

	return 0, false
}
