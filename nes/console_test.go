package nes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConsole(t *testing.T, setup func(prg []byte)) *NesConsole {
	t.Helper()
	prg := make([]byte, prgROMSizeUnit)
	prg[0x3FFC] = 0x00
	prg[0x3FFD] = 0x80
	if setup != nil {
		setup(prg)
	}
	chr := make([]byte, chrROMSizeUnit)
	cartridge, err := NewCartridge(buildINES(1, 1, 0, 0, append(prg, chr...)))
	require.NoError(t, err)
	console, err := NewConsole(cartridge, false)
	require.NoError(t, err)
	return console.(*NesConsole)
}

// jamProgram loops forever: JMP $8000.
func jamProgram(prg []byte) {
	copy(prg, []byte{0x4C, 0x00, 0x80})
}

func TestConsoleTickRatio(t *testing.T) {
	c := newTestConsole(t, jamProgram)
	dots := c.ppu.scanline*341 + c.ppu.cycle
	cycles, err := c.Step() // JMP, 3 cycles
	require.NoError(t, err)
	assert.Equal(t, 3, cycles)
	assert.Equal(t, dots+3*cycles, c.ppu.scanline*341+c.ppu.cycle)
}

func TestConsoleDebugVariant(t *testing.T) {
	prg := make([]byte, prgROMSizeUnit)
	chr := make([]byte, chrROMSizeUnit)
	cartridge, err := NewCartridge(buildINES(1, 1, 0, 0, append(prg, chr...)))
	require.NoError(t, err)
	console, err := NewConsole(cartridge, true)
	require.NoError(t, err)
	_, ok := console.(*DebugConsole)
	assert.True(t, ok)
}

func TestNMIReachesCPU(t *testing.T) {
	c := newTestConsole(t, func(prg []byte) {
		jamProgram(prg)
		prg[0x3FFA] = 0x00 // NMI vector $9000
		prg[0x3FFB] = 0x90
		prg[0x1000] = 0x4C // JMP $9000 at the handler
		prg[0x1001] = 0x00
		prg[0x1002] = 0x90
	})
	c.ppu.writePPUCTRL(0x80) // enable NMI
	c.ppu.writePPUMASK(0x18)
	// A frame is 341*262 dots, 3 per CPU cycle; 341*262 CPU cycles are three
	// frames, plenty to reach VBlank and service the interrupt.
	for i := 0; i < 341*262; i++ {
		c.Tick()
	}
	assert.Equal(t, uint16(0x9000), c.cpu.PC&0xF000)
}

func TestVBlankVisibleThroughBus(t *testing.T) {
	c := newTestConsole(t, jamProgram)
	for c.ppu.scanline != 242 {
		c.Tick()
	}
	status := c.cpu.bus.read(0x2002)
	assert.Equal(t, byte(0x80), status&0x80)
	// The read cleared it.
	assert.Equal(t, byte(0x00), c.cpu.bus.read(0x2002)&0x80)
}

func TestFrameLatch(t *testing.T) {
	c := newTestConsole(t, jamProgram)
	_, fresh := c.Frame()
	assert.False(t, fresh)
	for i := 0; i < 341*262; i++ {
		c.Tick()
	}
	frame, fresh := c.Frame()
	assert.True(t, fresh)
	assert.NotNil(t, frame)
	_, fresh = c.Frame()
	assert.False(t, fresh)
}

func TestConsoleReset(t *testing.T) {
	c := newTestConsole(t, jamProgram)
	for i := 0; i < 1000; i++ {
		c.Tick()
	}
	c.Reset()
	assert.Equal(t, uint16(0x8000), c.cpu.PC)
	assert.Equal(t, 261, c.ppu.scanline)
}
