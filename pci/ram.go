package pci

import (
	"fmt"
	"strconv"
	"strings"
)

// RAM is a flat read/write unit. It is the reference peripheral used by
// the tests and the debugger; embedders are expected to bring their own
// units for anything with side effects.
type RAM struct {
	name string
	base uint16
	mem  []byte
}

// NewRAM creates a RAM unit of the given size. base is the bus address
// its first byte will be attached at; loads and stores are offset by it.
func NewRAM(name string, base uint16, size int) *RAM {
	return &RAM{
		name: name,
		base: base,
		mem:  make([]byte, size),
	}
}

// Name implements Unit.
func (r *RAM) Name() string { return r.name }

// OnAttach implements Unit.
func (r *RAM) OnAttach() {}

// OnLoad implements Unit. The bus only delivers in-range addresses, so
// the offset subtraction cannot underflow.
func (r *RAM) OnLoad(addr uint16) byte {
	return r.mem[addr-r.base]
}

// OnStore implements Unit.
func (r *RAM) OnStore(addr uint16, value byte) {
	r.mem[addr-r.base] = value
}

// LoadBytes copies a program image into RAM starting at the bus address
// addr. It fails if the image runs past the end of the unit.
func (r *RAM) LoadBytes(addr uint16, image []byte) error {
	off := int(addr - r.base)
	if off+len(image) > len(r.mem) {
		return fmt.Errorf("pci: %d byte image at %#04x overruns %s", len(image), addr, r.name)
	}
	copy(r.mem[off:], image)
	return nil
}

// LoadHex parses a whitespace-separated string of hex bytes ("A9 FF 00")
// and copies them into RAM starting at the bus address addr.
func (r *RAM) LoadHex(addr uint16, program string) error {
	var image []byte
	for _, s := range strings.Fields(program) {
		b, err := strconv.ParseUint(s, 16, 8)
		if err != nil {
			return fmt.Errorf("pci: bad hex byte %q: %w", s, err)
		}
		image = append(image, byte(b))
	}
	return r.LoadBytes(addr, image)
}
