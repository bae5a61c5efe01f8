package nes

import (
	"image"
	"image/color"

	"github.com/golang/glog"
)

// NES PPU generates 256x240 pixels.
const (
	width  = 256
	height = 240
)

// Palette colors borrowed from "RGB".
// Reference: https://emulation.gametechwiki.com/index.php/Famicom_color_palette
var colors = [64]color.RGBA{
	{0x6D, 0x6D, 0x6D, 255}, {0x00, 0x24, 0x92, 255}, {0x00, 0x00, 0xDB, 255}, {0x6D, 0x49, 0xDB, 255},
	{0x92, 0x00, 0x6D, 255}, {0xB6, 0x00, 0x6D, 255}, {0xB6, 0x24, 0x00, 255}, {0x92, 0x49, 0x00, 255},
	{0x6D, 0x49, 0x00, 255}, {0x24, 0x49, 0x00, 255}, {0x00, 0x6D, 0x24, 255}, {0x00, 0x92, 0x00, 255},
	{0x00, 0x49, 0x49, 255}, {0x00, 0x00, 0x00, 255}, {0x00, 0x00, 0x00, 255}, {0x00, 0x00, 0x00, 255},
	{0xB6, 0xB6, 0xB6, 255}, {0x00, 0x6D, 0xDB, 255}, {0x00, 0x49, 0xFF, 255}, {0x92, 0x00, 0xFF, 255},
	{0xB6, 0x00, 0xFF, 255}, {0xFF, 0x00, 0x92, 255}, {0xFF, 0x00, 0x00, 255}, {0xDB, 0x6D, 0x00, 255},
	{0x92, 0x6D, 0x00, 255}, {0x24, 0x92, 0x00, 255}, {0x00, 0x92, 0x00, 255}, {0x00, 0xB6, 0x6D, 255},
	{0x00, 0x92, 0x92, 255}, {0x24, 0x24, 0x24, 255}, {0x00, 0x00, 0x00, 255}, {0x00, 0x00, 0x00, 255},
	{0xFF, 0xFF, 0xFF, 255}, {0x6D, 0xB6, 0xFF, 255}, {0x92, 0x92, 0xFF, 255}, {0xDB, 0x6D, 0xFF, 255},
	{0xFF, 0x00, 0xFF, 255}, {0xFF, 0x6D, 0xFF, 255}, {0xFF, 0x92, 0x00, 255}, {0xFF, 0xB6, 0x00, 255},
	{0xDB, 0xDB, 0x00, 255}, {0x6D, 0xDB, 0x00, 255}, {0x00, 0xFF, 0x00, 255}, {0x49, 0xFF, 0xDB, 255},
	{0x00, 0xFF, 0xFF, 255}, {0x49, 0x49, 0x49, 255}, {0x00, 0x00, 0x00, 255}, {0x00, 0x00, 0x00, 255},
	{0xFF, 0xFF, 0xFF, 255}, {0xB6, 0xDB, 0xFF, 255}, {0xDB, 0xB6, 0xFF, 255}, {0xFF, 0xB6, 0xFF, 255},
	{0xFF, 0x92, 0xFF, 255}, {0xFF, 0xB6, 0xB6, 255}, {0xFF, 0xDB, 0x92, 255}, {0xFF, 0xFF, 0x49, 255},
	{0xFF, 0xFF, 0x6D, 255}, {0xB6, 0xFF, 0x49, 255}, {0x92, 0xFF, 0x6D, 255}, {0x49, 0xFF, 0xDB, 255},
	{0x92, 0xDB, 0xFF, 255}, {0x92, 0x92, 0x92, 255}, {0x00, 0x00, 0x00, 255}, {0x00, 0x00, 0x00, 255},
}

// PPU has an internal palette RAM.
type paletteRAM struct {
	ram [32]byte
}

// mirrorPaletteAddress folds $3F00-$3FFF into the 32 byte palette, with
// $3F10/$3F14/$3F18/$3F1C mirroring their background counterparts.
func mirrorPaletteAddress(address uint16) uint16 {
	mirrored := (address - 0x3F00) % 0x20
	switch mirrored {
	case 0x10, 0x14, 0x18, 0x1C:
		mirrored -= 0x10
	}
	return mirrored
}

func (r *paletteRAM) read(address uint16) byte {
	return r.ram[mirrorPaletteAddress(address)]
}

func (r *paletteRAM) write(address uint16, data byte) {
	r.ram[mirrorPaletteAddress(address)] = data
}

// OAM entry view. Each sprite occupies 4 bytes: Y, tile, attribute, X.
type sprite struct {
	index int // position in primary OAM, 0 participates in sprite-0 hit
	y     int

	// 76543210
	// ||||||||
	// |||||||+- Bank ($0000 or $1000) of tiles (8x16 mode)
	// +++++++-- Tile number of top of sprite
	tile byte

	// 76543210
	// ||||||||
	// ||||||++- Palette (4 to 7) of sprite
	// |||+++--- Unimplemented (read 0)
	// ||+------ Priority (0: in front of background; 1: behind background)
	// |+------- Flip sprite horizontally
	// +-------- Flip sprite vertically
	attribute byte
	x         int
}

func (s *sprite) palette() byte {
	return s.attribute & 3
}

func (s *sprite) behindBackground() bool {
	return (s.attribute>>5)&1 == 1
}

func (s *sprite) horizontalFlip() bool {
	return (s.attribute>>6)&1 == 1
}

func (s *sprite) verticalFlip() bool {
	return (s.attribute>>7)&1 == 1
}

// PPU stands for Picture Processing Unit, renders a 256x240 image.
// The PPU clock is 3x the CPU clock; one frame is 341x262 dots. This
// implementation emulates NTSC and renders whole scanlines at a time.
// References:
//   https://www.nesdev.org/wiki/PPU_registers
//   https://www.nesdev.org/wiki/PPU_scrolling
//   https://www.nesdev.org/wiki/PPU_rendering
type PPU struct {
	chrROM      []byte
	chrWritable bool
	vram        [2048]byte
	mirror      mirrorFunc
	paletteRAM  paletteRAM

	// Rendered output: system palette indices per pixel, plus the same
	// frame resolved to RGBA for the host.
	videoBuffer [height][width]byte
	picture     *image.RGBA

	// oam
	oamAddress   byte
	primaryOAM   [256]byte
	secondaryOAM [32]byte
	spriteLine   [8]sprite // decoded secondary OAM for the line being drawn
	foundSprites int

	// https://www.nesdev.org/wiki/PPU_sprite_evaluation
	spriteOverflow bool
	spriteZeroHit  bool

	// Current VRAM address (15bits), for PPUADDR $2006
	// yyy NN YYYYY XXXXX
	// ||| || ||||| +++++-- coarse X scroll
	// ||| || +++++-------- coarse Y scroll
	// ||| ++-------------- nametable select
	// +++----------------- fine Y scroll
	v uint16
	// Temporary VRAM address (15bits)
	t uint16
	// fine x scroll (3bits)
	x byte
	// w is a shared write toggle.
	w bool
	// buffer for PPUDATA $2007
	buffer byte

	// NMI https://www.nesdev.org/wiki/NMI
	nmiOccurred bool // the VBlank flag
	nmiOutput   bool // PPUCTRL bit 7
	nmiPending  bool // edge to hand to the CPU at the next tick boundary

	// $2000
	nameTableFlag         byte // 0 = $2000; 1 = $2400; 2 = $2800; 3 = $2C00
	vramIncrementFlag     byte // 0: add 1, going across; 1: add 32, going down
	spriteTableFlag       byte // 0: $0000; 1: $1000; ignored in 8x16 mode
	backgroundTableFlag   byte // 0: $0000; 1: $1000
	spriteSizeFlag        byte // 0: 8x8 pixels; 1: 8x16 pixels
	masterSlaveSelectFlag byte // 0: read backdrop from EXT pins; 1: output color on EXT pins

	// $2001
	grayScale          bool // unused.
	showLeftBackground bool
	showLeftSprite     bool
	showBackground     bool
	showSprite         bool
	emphasizeRed       bool // unused.
	emphasizeGreen     bool // unused.
	emphasizeBlue      bool // unused.

	// Last value written to any register, feeds PPUSTATUS's low 5 bits.
	register byte

	// cycle (dot) and scanline counters.
	cycle    int
	scanline int
}

// NewPPU creates a PPU. The mirroring map comes from the cartridge.
func NewPPU(cartridge *Cartridge) *PPU {
	p := &PPU{
		chrROM:  cartridge.CHRROM(),
		mirror:  cartridge.Mirroring().mirrorFunc(),
		picture: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
	if len(p.chrROM) == 0 {
		// CHR-RAM cart.
		p.chrROM = make([]byte, chrROMSizeUnit)
		p.chrWritable = true
	}
	p.Reset()
	return p
}

// Reset starts the PPU on the pre-render scanline.
func (p *PPU) Reset() {
	p.cycle = 0
	p.scanline = 261
}

func (p *PPU) renderingEnabled() bool {
	return p.showBackground || p.showSprite
}

// readMemory reads the PPU address space.
// Address        Size	  Description
// -------------------------------------
// $0000-$1FFF	  $2000	  Pattern tables
// $2000-$2FFF	  $1000	  Nametables
// $3000-$3EFF	  $0F00	  Mirrors of $2000-$2EFF
// $3F00-$3FFF	  $0100	  Palette RAM and mirrors
func (p *PPU) readMemory(address uint16) byte {
	address &= 0x3FFF
	switch {
	case address < 0x2000:
		return p.chrROM[address]
	case address < 0x3F00:
		return p.vram[p.mirror(0x2000|(address&0x0FFF))]
	default:
		return p.paletteRAM.read(address)
	}
}

func (p *PPU) writeMemory(address uint16, data byte) {
	address &= 0x3FFF
	switch {
	case address < 0x2000:
		if p.chrWritable {
			p.chrROM[address] = data
		} else {
			glog.V(1).Infof("CHR ROM write ignored: address=0x%04x, data=0x%02x", address, data)
		}
	case address < 0x3F00:
		p.vram[p.mirror(0x2000|(address&0x0FFF))] = data
	default:
		p.paletteRAM.write(address, data)
	}
}

// writePPUCTRL writes PPUCTRL ($2000).
func (p *PPU) writePPUCTRL(data byte) {
	p.nameTableFlag = data & 3
	p.vramIncrementFlag = (data >> 2) & 1
	p.spriteTableFlag = (data >> 3) & 1
	p.backgroundTableFlag = (data >> 4) & 1
	p.spriteSizeFlag = (data >> 5) & 1
	p.masterSlaveSelectFlag = (data >> 6) & 1
	p.nmiOutput = (data>>7)&1 == 1
	// t: ...GH.. ........ <- d: ......GH
	p.t = (p.t & 0xF3FF) | ((uint16(data) & 0x03) << 10)
}

// writePPUMASK writes PPUMASK ($2001).
func (p *PPU) writePPUMASK(data byte) {
	p.grayScale = data&1 == 1
	p.showLeftBackground = (data>>1)&1 == 1
	p.showLeftSprite = (data>>2)&1 == 1
	p.showBackground = (data>>3)&1 == 1
	p.showSprite = (data>>4)&1 == 1
	p.emphasizeRed = (data>>5)&1 == 1
	p.emphasizeGreen = (data>>6)&1 == 1
	p.emphasizeBlue = (data>>7)&1 == 1
}

// readPPUSTATUS reads PPUSTATUS ($2002), clearing the VBlank flag and the
// shared write toggle.
func (p *PPU) readPPUSTATUS() byte {
	res := p.register & 0x1F
	if p.spriteOverflow {
		res |= 1 << 5
	}
	if p.spriteZeroHit {
		res |= 1 << 6
	}
	if p.nmiOccurred {
		res |= 1 << 7
	}
	p.nmiOccurred = false
	p.w = false
	return res
}

// writeOAMADDR writes OAMADDR ($2003).
func (p *PPU) writeOAMADDR(data byte) {
	p.oamAddress = data
}

// readOAMDATA reads OAMDATA ($2004).
func (p *PPU) readOAMDATA() byte {
	return p.primaryOAM[p.oamAddress]
}

// writeOAMDATA writes OAMDATA ($2004).
func (p *PPU) writeOAMDATA(data byte) {
	p.primaryOAM[p.oamAddress] = data
	p.oamAddress++
}

// writeOAMDMA replaces the whole OAM page, written through $4014.
func (p *PPU) writeOAMDMA(data [256]byte) {
	p.primaryOAM = data
}

// writePPUSCROLL writes PPUSCROLL ($2005).
func (p *PPU) writePPUSCROLL(data byte) {
	if !p.w {
		// t: ....... ...ABCDE <- d: ABCDE...
		// x:              FGH <- d: .....FGH
		p.t = (p.t & 0xFFE0) | (uint16(data) >> 3)
		p.x = data & 7
		p.w = true
	} else {
		// t: FGH..AB CDE..... <- d: ABCDEFGH
		p.t = (p.t & 0x8FFF) | ((uint16(data) & 0x07) << 12)
		p.t = (p.t & 0xFC1F) | ((uint16(data) & 0xF8) << 2)
		p.w = false
	}
}

// writePPUADDR writes PPUADDR ($2006).
func (p *PPU) writePPUADDR(data byte) {
	if !p.w {
		// t: .CDEFGH ........ <- d: ..CDEFGH, bit 14 cleared
		p.t = (p.t & 0x00FF) | ((uint16(data) & 0x3F) << 8)
		p.w = true
	} else {
		// t: ....... ABCDEFGH <- d: ABCDEFGH, then v <- t
		p.t = (p.t & 0xFF00) | uint16(data)
		p.v = p.t
		p.w = false
	}
}

func (p *PPU) incrementV() {
	if p.vramIncrementFlag == 0 {
		p.v++
	} else {
		p.v += 32
	}
}

// writePPUDATA writes PPUDATA ($2007) and advances v.
func (p *PPU) writePPUDATA(data byte) {
	p.writeMemory(p.v, data)
	p.incrementV()
}

// readPPUDATA reads PPUDATA ($2007) through the internal buffer and advances
// v. Palette reads bypass the buffer but still refresh it from the
// underlying nametable byte.
func (p *PPU) readPPUDATA() byte {
	data := p.readMemory(p.v)
	if p.v&0x3FFF < 0x3F00 {
		buffered := p.buffer
		p.buffer = data
		data = buffered
	} else {
		p.buffer = p.readMemory(p.v - 0x1000)
	}
	p.incrementV()
	return data
}

// incrementCoarseX increments X, calc from https://www.nesdev.org/wiki/PPU_scrolling
func (p *PPU) incrementCoarseX() {
	if p.v&0x001F == 31 {
		p.v &= 0xFFE0
		p.v ^= 0x0400
	} else {
		p.v++
	}
}

// copyX copies the horizontal bits of t into v.
func (p *PPU) copyX() {
	// v: .... .A.. ...B CDEF <- t: .... .A.. ...BCDEF
	p.v = (p.v & 0xFBE0) | (p.t & 0x041F)
}

// copyY copies the vertical bits of t into v.
func (p *PPU) copyY() {
	// v: GHI A.BC DEF. .... <- t: GHIA.BC DEF.....
	p.v = (p.v & 0x841F) | (p.t & 0x7BE0)
}

// incrementY increments Y, calc from https://www.nesdev.org/wiki/PPU_scrolling#Wrapping_around
func (p *PPU) incrementY() {
	if (p.v & 0x7000) != 0x7000 {
		p.v += 0x1000
	} else {
		p.v &= 0x8FFF
		y := (p.v & 0x03E0) >> 5
		if y == 29 {
			y = 0
			p.v ^= 0x0800
		} else if y == 31 {
			y = 0
		} else {
			y++
		}
		p.v = (p.v & 0xFC1F) | (y << 5)
	}
}

func (p *PPU) spriteHeight() int {
	if p.spriteSizeFlag == 1 {
		return 16
	}
	return 8
}

// evaluateSprites scans the 64 primary OAM entries and copies up to 8 whose
// Y range covers line into secondary OAM. The 9th in-range sprite sets the
// overflow flag.
func (p *PPU) evaluateSprites(line int) {
	h := p.spriteHeight()
	count := 0
	for i := 0; i < 64; i++ {
		y := int(p.primaryOAM[i*4])
		if line < y || line >= y+h {
			continue
		}
		if count == 8 {
			p.spriteOverflow = true
			break
		}
		copy(p.secondaryOAM[count*4:count*4+4], p.primaryOAM[i*4:i*4+4])
		p.spriteLine[count] = sprite{
			index:     i,
			y:         y,
			tile:      p.primaryOAM[i*4+1],
			attribute: p.primaryOAM[i*4+2],
			x:         int(p.primaryOAM[i*4+3]),
		}
		count++
	}
	p.foundSprites = count
}

// spritePatternRow fetches the two pattern bytes of s for screen line.
func (p *PPU) spritePatternRow(s *sprite, line int) (byte, byte) {
	row := line - s.y
	h := p.spriteHeight()
	if s.verticalFlip() {
		row = h - 1 - row
	}
	var address uint16
	if h == 16 {
		tile := uint16(s.tile & 0xFE)
		var bank uint16
		if s.tile&1 == 1 {
			bank = 0x1000
		}
		if row >= 8 {
			tile++
			row -= 8
		}
		address = bank | tile<<4 | uint16(row)
	} else {
		address = uint16(p.spriteTableFlag)<<12 | uint16(s.tile)<<4 | uint16(row)
	}
	return p.readMemory(address), p.readMemory(address + 8)
}

// renderScanline draws one visible scanline: 32 background tile columns with
// the fine-X offset applied, then the sprites evaluated on the previous
// line, composited by priority.
func (p *PPU) renderScanline(line int) {
	// Background pixels as palette slots in $00-$0F, 0 when transparent.
	var background [width]byte
	if p.showBackground {
		p.copyX()
		fineY := (p.v >> 12) & 7
		// One extra tile so the fine-X window always has 8 spare pixels.
		var lineBuffer [(tilesPerLine + 1) * 8]byte
		for tile := 0; tile <= tilesPerLine; tile++ {
			nt := p.readMemory(0x2000 | (p.v & 0x0FFF))
			attribute := p.readMemory(0x23C0 | (p.v & 0x0C00) | ((p.v >> 4) & 0x38) | ((p.v >> 2) & 0x07))
			shift := ((p.v >> 4) & 4) | (p.v & 2)
			palette := (attribute >> shift) & 3
			address := uint16(p.backgroundTableFlag)<<12 | uint16(nt)<<4 | fineY
			low := p.readMemory(address)
			high := p.readMemory(address + 8)
			for bit := 0; bit < 8; bit++ {
				pixel := (low>>(7-bit))&1 | ((high>>(7-bit))&1)<<1
				if pixel != 0 {
					lineBuffer[tile*8+bit] = palette<<2 | pixel
				}
			}
			p.incrementCoarseX()
		}
		for x := 0; x < width; x++ {
			background[x] = lineBuffer[x+int(p.x)]
			if x < 8 && !p.showLeftBackground {
				background[x] = 0
			}
		}
	}
	// Sprite pixels as palette slots in $10-$1F, 0 when transparent.
	var sprites [width]byte
	var behind [width]bool
	var zero [width]bool
	if p.showSprite {
		// Lower OAM index wins, so draw back to front.
		for i := p.foundSprites - 1; i >= 0; i-- {
			s := &p.spriteLine[i]
			low, high := p.spritePatternRow(s, line)
			for bit := 0; bit < 8; bit++ {
				x := s.x + bit
				if x >= width {
					break
				}
				shift := 7 - bit
				if s.horizontalFlip() {
					shift = bit
				}
				pixel := (low>>shift)&1 | ((high>>shift)&1)<<1
				if pixel == 0 {
					continue
				}
				if x < 8 && !p.showLeftSprite {
					continue
				}
				sprites[x] = 0x10 | s.palette()<<2 | pixel
				behind[x] = s.behindBackground()
				zero[x] = s.index == 0
			}
		}
	}
	for x := 0; x < width; x++ {
		bgOpaque := background[x] != 0
		spOpaque := sprites[x] != 0
		var slot byte
		switch {
		case !bgOpaque && !spOpaque:
			slot = 0
		case !bgOpaque && spOpaque:
			slot = sprites[x]
		case bgOpaque && !spOpaque:
			slot = background[x]
		default:
			if zero[x] && x != 255 {
				p.spriteZeroHit = true
			}
			if behind[x] {
				slot = background[x]
			} else {
				slot = sprites[x]
			}
		}
		index := p.paletteRAM.read(0x3F00+uint16(slot)) & 0x3F
		p.videoBuffer[line][x] = index
		p.picture.SetRGBA(x, line, colors[index])
	}
	if p.renderingEnabled() {
		p.incrementY()
	}
}

const tilesPerLine = 32

// Tick advances the PPU by one dot. The host runs three PPU ticks per CPU
// cycle. Scanline work happens on dot 1:
//
//	261      pre-render, clears the frame flags
//	0-239    visible, renders the line and evaluates next line's sprites
//	240      post-render, idle
//	241      VBlank start, raises NMI when enabled
//	242-260  VBlank, idle
func (p *PPU) Tick() {
	p.cycle++
	if p.cycle == 341 {
		p.cycle = 0
		p.scanline++
		if p.scanline == 262 {
			p.scanline = 0
		}
	}
	if p.cycle != 1 {
		return
	}
	switch {
	case p.scanline == 261:
		p.nmiOccurred = false
		p.spriteZeroHit = false
		p.spriteOverflow = false
		if p.renderingEnabled() {
			p.copyY()
			p.evaluateSprites(0)
		}
	case p.scanline < 240:
		p.renderScanline(p.scanline)
		p.evaluateSprites(p.scanline + 1)
	case p.scanline == 241:
		p.nmiOccurred = true
		if p.nmiOutput {
			p.nmiPending = true
		}
	}
}

// takeNMI reports and clears the pending NMI edge. The console moves it to
// the CPU so the PPU never holds a CPU reference.
func (p *PPU) takeNMI() bool {
	if p.nmiPending {
		p.nmiPending = false
		return true
	}
	return false
}

// Frame reports whether a full frame was just finished and returns it. True
// exactly once per frame, on the first dot of the post-render scanline.
func (p *PPU) Frame() (bool, *image.RGBA) {
	if p.scanline == 240 && p.cycle == 1 {
		return true, p.picture
	}
	return false, nil
}

// VideoBuffer exposes the indexed-color frame, one system palette index per
// pixel.
func (p *PPU) VideoBuffer() *[height][width]byte {
	return &p.videoBuffer
}
