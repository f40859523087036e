package pci

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRAM(t *testing.T) {
	r := NewRAM("wram", 0x0200, 0x100)
	assert.Equal(t, "wram", r.Name())

	r.OnStore(0x0200, 0x42)
	r.OnStore(0x02ff, 0x99)
	assert.Equal(t, byte(0x42), r.OnLoad(0x0200))
	assert.Equal(t, byte(0x99), r.OnLoad(0x02ff))
	assert.Equal(t, byte(0x00), r.OnLoad(0x0201))
}

func TestRAMLoadBytes(t *testing.T) {
	r := NewRAM("wram", 0x8000, 0x20)

	assert.NoError(t, r.LoadBytes(0x8010, []byte{0xa9, 0xff}))
	assert.Equal(t, byte(0xa9), r.OnLoad(0x8010))
	assert.Equal(t, byte(0xff), r.OnLoad(0x8011))

	// image spilling past the end of the unit is rejected
	assert.Error(t, r.LoadBytes(0x801f, []byte{0x01, 0x02}))
}

func TestRAMLoadHex(t *testing.T) {
	r := NewRAM("wram", 0x0000, 0x100)

	assert.NoError(t, r.LoadHex(0x10, "A9 FF 8D 02 00"))
	assert.Equal(t, byte(0xa9), r.OnLoad(0x10))
	assert.Equal(t, byte(0xff), r.OnLoad(0x11))
	assert.Equal(t, byte(0x8d), r.OnLoad(0x12))
	assert.Equal(t, byte(0x02), r.OnLoad(0x13))
	assert.Equal(t, byte(0x00), r.OnLoad(0x14))

	assert.Error(t, r.LoadHex(0x10, "A9 GG"))
}

func TestROM(t *testing.T) {
	r := NewROM("prg", 0xc000, []byte{0x4c, 0x00, 0xc0})
	assert.Equal(t, "prg", r.Name())
	assert.Equal(t, byte(0x4c), r.OnLoad(0xc000))
	assert.Equal(t, byte(0xc0), r.OnLoad(0xc002))

	// stores fall on the floor
	r.OnStore(0xc000, 0xff)
	assert.Equal(t, byte(0x4c), r.OnLoad(0xc000))
}
