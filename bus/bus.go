// Package bus implements the 6502 address bus: a dispatch fabric mapping
// every 16-bit address to at most one attached peripheral unit.
//
// Attached units claim disjoint closed address ranges, kept in an
// interval tree. Because consecutive CPU accesses almost always land in
// the region they last landed in (instruction fetch walks one range, the
// stack lives in another), a small most-recently-used cache of hit ranges
// is consulted before the tree. The cache is pure optimization; it never
// changes what a load or store observes.
package bus

import "s6502/pci"

// AddrMax is the highest addressable bus location.
const AddrMax = 0xffff

// cacheSize is the number of recently-hit ranges remembered between
// accesses. Two covers the common fetch-then-stack interleave.
const cacheSize = 2

// Bus dispatches byte loads and stores to attached peripheral units.
type Bus struct {
	root  *intervalNode
	cache [cacheSize]*intervalNode
	units int
}

// New returns an empty bus with nothing attached.
func New() *Bus {
	return &Bus{}
}

// Attach maps unit over the closed address range [lo, hi] and reports
// whether the attachment took. It fails when the range overlaps any
// previously attached unit, in which case the bus is left unchanged.
// The unit's OnAttach hook fires on success.
//
// Ranges can only ever be added; nothing detaches or resizes them, which
// is what lets cached range references stay valid forever.
func (b *Bus) Attach(unit pci.Unit, lo, hi uint16) bool {
	if lo > hi {
		panic("bus: interval lower bound above upper bound")
	}

	n := insert(b.root, lo, hi, unit)
	if n == nil {
		return false
	}
	if b.root == nil {
		b.root = n
	}

	b.units++
	unit.OnAttach()
	return true
}

// Units returns the number of attached peripheral units.
func (b *Bus) Units() int {
	return b.units
}

// Load reads the byte at addr from whichever unit claims it. An unmapped
// address reads as 0xff, the open-bus approximation, with ok false; the
// CPU carries on regardless, but embedders can watch for the miss.
func (b *Bus) Load(addr uint16) (value byte, ok bool) {
	n := b.lookup(addr)
	if n == nil {
		return 0xff, false
	}
	return n.unit.OnLoad(addr), true
}

// Store writes value to the unit claiming addr. A store to an unmapped
// address is silently dropped and reported with ok false.
func (b *Bus) Store(addr uint16, value byte) (ok bool) {
	n := b.lookup(addr)
	if n == nil {
		return false
	}
	n.unit.OnStore(addr, value)
	return true
}

// lookup finds the range containing addr, trying the cached ranges in
// recency order before searching the tree. Only an uncached hit is pushed
// to the front of the cache; a cached hit leaves the order alone.
func (b *Bus) lookup(addr uint16) *intervalNode {
	for _, n := range b.cache {
		if n != nil && n.contains(addr) {
			return n
		}
	}

	n := b.root.search(addr)
	if n != nil {
		b.cachePush(n)
	}
	return n
}

// cachePush inserts n at the front of the cache, shifting the rest back
// and evicting the oldest entry.
func (b *Bus) cachePush(n *intervalNode) {
	for i := cacheSize - 1; i > 0; i-- {
		b.cache[i] = b.cache[i-1]
	}
	b.cache[0] = n
}
