package nes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBus(t *testing.T) *CPUBus {
	t.Helper()
	prg := make([]byte, prgROMSizeUnit)
	for i := range prg {
		prg[i] = byte(i * 7)
	}
	chr := make([]byte, chrROMSizeUnit)
	cartridge, err := NewCartridge(buildINES(1, 1, 0, 0, append(prg, chr...)))
	require.NoError(t, err)
	return NewCPUBus(NewPPU(cartridge), NewAPU(), cartridge, NewController())
}

func TestRAMMirroring(t *testing.T) {
	b := newTestBus(t)
	b.write(0x0000, 0x11)
	for _, k := range []uint16{0, 1, 2, 3} {
		assert.Equal(t, byte(0x11), b.read(k*0x0800), "mirror %d", k)
	}
	b.write(0x1FFF, 0x22)
	assert.Equal(t, byte(0x22), b.read(0x07FF))
	b.write(0x0801, 0x33)
	assert.Equal(t, byte(0x33), b.read(0x0001))
}

func TestPPURegisterMirroring(t *testing.T) {
	b := newTestBus(t)
	// PPUCTRL repeats every 8 bytes up to $3FFF.
	b.write(0x2000+8*42, 0x03)
	assert.Equal(t, byte(3), b.ppu.nameTableFlag)
	b.ppu.nmiOccurred = true
	status := b.read(0x3FFA) // mirror of PPUSTATUS $2002
	assert.Equal(t, byte(0x80), status&0x80)
	assert.False(t, b.ppu.nmiOccurred)
}

func TestWriteOnlyPPURegisterReads(t *testing.T) {
	b := newTestBus(t)
	b.ppu.w = true
	for _, address := range []uint16{0x2000, 0x2001, 0x2003, 0x2005, 0x2006} {
		assert.Equal(t, byte(0), b.read(address), "address=0x%04x", address)
	}
	// Reads of write-only registers must not touch the latches.
	assert.True(t, b.ppu.w)
}

func TestPPUSTATUSWriteIgnored(t *testing.T) {
	b := newTestBus(t)
	b.write(0x2002, 0xFF)
	assert.False(t, b.ppu.nmiOccurred)
	assert.False(t, b.ppu.spriteZeroHit)
	assert.False(t, b.ppu.spriteOverflow)
}

func TestOAMDATAReadWrite(t *testing.T) {
	b := newTestBus(t)
	b.write(0x2003, 0x10) // OAMADDR
	b.write(0x2004, 0xAB)
	assert.Equal(t, byte(0x11), b.ppu.oamAddress) // write advanced it
	b.write(0x2003, 0x10)
	assert.Equal(t, byte(0xAB), b.read(0x2004))
}

func TestPRGROMMirroring16K(t *testing.T) {
	b := newTestBus(t)
	for _, a := range []uint16{0x0000, 0x0001, 0x1234, 0x3FFF} {
		assert.Equal(t, b.read(0x8000+a), b.read(0xC000+a), "a=0x%04x", a)
	}
}

func TestPRGROMRead(t *testing.T) {
	b := newTestBus(t)
	assert.Equal(t, byte(0), b.read(0x8000))
	assert.Equal(t, byte(7), b.read(0x8001))
}

func TestIOAndExpansionStubs(t *testing.T) {
	b := newTestBus(t)
	assert.Equal(t, byte(0), b.read(0x4000))
	assert.Equal(t, byte(0), b.read(0x401F))
	assert.Equal(t, byte(0), b.read(0x4020))
	assert.Equal(t, byte(0), b.read(0x7FFF))
	// Writes are accepted and dropped.
	b.write(0x4017, 0x40)
	b.write(0x5000, 0x01)
	b.write(0x8000, 0x01) // PRG ROM is not writable
	assert.Equal(t, byte(0), b.read(0x8000))
}

func TestControllerThroughBus(t *testing.T) {
	b := newTestBus(t)
	b.controller.Set([8]bool{true, false, true, false, false, false, false, false}) // A and Select
	b.write(0x4016, 1)
	b.write(0x4016, 0)
	got := make([]byte, 8)
	for i := range got {
		got[i] = b.read(0x4016)
	}
	assert.Equal(t, []byte{1, 0, 1, 0, 0, 0, 0, 0}, got)
}

func TestRead16(t *testing.T) {
	b := newTestBus(t)
	b.write(0x0010, 0x34)
	b.write(0x0011, 0x12)
	assert.Equal(t, uint16(0x1234), b.read16(0x0010))
}
