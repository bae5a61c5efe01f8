package nes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildINES assembles an INES image from its parts.
func buildINES(prgPages, chrPages, flags6, flags7 byte, trailer []byte) []byte {
	header := make([]byte, inesHeaderSize)
	copy(header, []byte{'N', 'E', 'S', msdosEOF})
	header[4] = prgPages
	header[5] = chrPages
	header[6] = flags6
	header[7] = flags7
	return append(header, trailer...)
}

func romBody(prgPages, chrPages int) []byte {
	body := make([]byte, prgPages*prgROMSizeUnit+chrPages*chrROMSizeUnit)
	for i := range body {
		body[i] = byte(i)
	}
	return body
}

func TestNewCartridge(t *testing.T) {
	data := buildINES(1, 1, 0x01, 0x00, romBody(1, 1))
	c, err := NewCartridge(data)
	require.NoError(t, err)
	assert.Equal(t, 16384, len(c.PRGROM()))
	assert.Equal(t, 8192, len(c.CHRROM()))
	assert.Equal(t, byte(0), c.Mapper())
	assert.Equal(t, MirroringVertical, c.Mirroring())
}

func TestNewCartridgeHorizontal(t *testing.T) {
	c, err := NewCartridge(buildINES(1, 1, 0x00, 0x00, romBody(1, 1)))
	require.NoError(t, err)
	assert.Equal(t, MirroringHorizontal, c.Mirroring())
}

func TestNewCartridgeFourScreenOverridesMirroringBit(t *testing.T) {
	c, err := NewCartridge(buildINES(1, 1, 0x09, 0x00, romBody(1, 1)))
	require.NoError(t, err)
	assert.Equal(t, MirroringFourScreen, c.Mirroring())
}

func TestNewCartridgeBadMagic(t *testing.T) {
	data := buildINES(1, 1, 0, 0, romBody(1, 1))
	data[3] = 0x00
	_, err := NewCartridge(data)
	assert.ErrorIs(t, err, ErrBadMagic)
}

func TestNewCartridgeShortInput(t *testing.T) {
	_, err := NewCartridge([]byte{'N', 'E', 'S'})
	assert.ErrorIs(t, err, ErrBadMagic)
}

func TestNewCartridgeTruncated(t *testing.T) {
	data := buildINES(2, 1, 0, 0, romBody(1, 1)) // header promises 2 PRG pages
	_, err := NewCartridge(data)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestNewCartridgeTrainerSkipped(t *testing.T) {
	trainer := make([]byte, trainerSize)
	body := romBody(1, 1)
	body[0] = 0xAB // first PRG byte
	data := buildINES(1, 0x01, 0x05, 0x00, append(trainer, body...))
	c, err := NewCartridge(data)
	require.NoError(t, err)
	assert.Equal(t, byte(0xAB), c.PRGROM()[0])
}

func TestNewCartridgeTruncatedTrainer(t *testing.T) {
	// Trainer flag set but no trainer bytes present.
	_, err := NewCartridge(buildINES(1, 1, 0x04, 0x00, romBody(1, 1)))
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestNewCartridgeUnsupportedMapper(t *testing.T) {
	cases := []struct {
		flags6, flags7 byte
	}{
		{0x10, 0x00}, // mapper 1 from the low nibble
		{0x00, 0x40}, // mapper 64 from the high nibble
		{0x20, 0x10}, // mapper 18 from both nibbles
	}
	for _, tc := range cases {
		_, err := NewCartridge(buildINES(1, 1, tc.flags6, tc.flags7, romBody(1, 1)))
		assert.ErrorIs(t, err, ErrUnsupportedMapper)
	}
}

func TestNewCartridgeCHRRAM(t *testing.T) {
	c, err := NewCartridge(buildINES(1, 0, 0, 0, romBody(1, 0)))
	require.NoError(t, err)
	assert.Equal(t, 0, len(c.CHRROM()))
}

func TestHorizontalMirroredAddr(t *testing.T) {
	cases := []struct {
		address uint16
		want    uint16
	}{
		{0x2000, 0x000},
		{0x23FF, 0x3FF},
		{0x2400, 0x000}, // mirror of $2000
		{0x27FF, 0x3FF},
		{0x2800, 0x400},
		{0x2BFF, 0x7FF},
		{0x2C00, 0x400}, // mirror of $2800
		{0x2FFF, 0x7FF},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, horizontalMirroredAddr(tc.address), "address=0x%04x", tc.address)
	}
}

func TestVerticalMirroredAddr(t *testing.T) {
	cases := []struct {
		address uint16
		want    uint16
	}{
		{0x2000, 0x000},
		{0x2400, 0x400},
		{0x2800, 0x000}, // mirror of $2000
		{0x2C00, 0x400}, // mirror of $2400
		{0x2FFF, 0x7FF},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, verticalMirroredAddr(tc.address), "address=0x%04x", tc.address)
	}
}
