// Package pci defines the contract between the address bus and the
// peripheral units attached to it.
//
// A peripheral is anything that answers byte-granular loads and stores
// over a contiguous range of the 16-bit address space: RAM, ROM, I/O
// registers, a cartridge mapper. The bus never looks inside a unit; it
// only trampolines accesses into these hooks.
package pci

// A Unit is a peripheral attachable to the address bus.
//
// The bus guarantees that the addr passed to OnLoad and OnStore lies
// within the range the unit was attached under. Both hooks must be total:
// there is no way to signal failure back through the bus, only side
// effects (which are fine; I/O registers depend on them).
//
// The bus holds references to units but never owns them. A unit must
// outlive every bus it is attached to.
type Unit interface {
	// Name identifies the unit, for embedders and debugging only.
	Name() string

	// OnAttach is called once when the bus attaches the unit.
	OnAttach()

	// OnLoad returns the byte the unit exposes at addr.
	OnLoad(addr uint16) byte

	// OnStore writes value to the unit at addr.
	OnStore(addr uint16, value byte)
}
