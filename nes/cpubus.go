package nes

import "github.com/golang/glog"

// CPUBus decodes CPU addresses.
// CPU memory map
// 0x0000 - 0x07FF	WRAM
// 0x0800 - 0x1FFF	WRAM Mirror
// 0x2000 - 0x2007	PPU Registers
// 0x2008 - 0x3FFF	PPU Registers Mirror
// 0x4000 - 0x401F	APU / IO Port
// 0x4020 - 0x7FFF	Expansion / SRAM
// 0x8000 - 0xBFFF	ProgramROM Low
// 0xC000 - 0xFFFF	ProgramROM High
type CPUBus struct {
	wram       [2048]byte
	ppu        *PPU
	apu        *APU
	prgROM     []byte
	controller *Controller
}

// NewCPUBus creates a new Bus for CPU.
func NewCPUBus(ppu *PPU, apu *APU, cartridge *Cartridge, controller *Controller) *CPUBus {
	return &CPUBus{ppu: ppu, apu: apu, prgROM: cartridge.PRGROM(), controller: controller}
}

// writeOAMDMA writes a full OAM page to the PPU, this will be called by CPU.
func (b *CPUBus) writeOAMDMA(data [256]byte) {
	b.ppu.writeOAMDMA(data)
}

// readPPURegister reads one of the 8 PPU registers. Write-only registers
// return open bus, here 0.
func (b *CPUBus) readPPURegister(address uint16) byte {
	switch address & 0x0007 {
	case 2:
		return b.ppu.readPPUSTATUS()
	case 4:
		return b.ppu.readOAMDATA()
	case 7:
		return b.ppu.readPPUDATA()
	default:
		glog.Warningf("Read of write-only PPU register: 0x%04x", address)
		return 0
	}
}

// writePPURegister writes one of the 8 PPU registers. PPUSTATUS is read-only,
// writing it is a no-op.
func (b *CPUBus) writePPURegister(address uint16, data byte) {
	b.ppu.register = data
	switch address & 0x0007 {
	case 0:
		b.ppu.writePPUCTRL(data)
	case 1:
		b.ppu.writePPUMASK(data)
	case 2:
		glog.Warningf("Write to read-only PPUSTATUS ignored: data=0x%02x", data)
	case 3:
		b.ppu.writeOAMADDR(data)
	case 4:
		b.ppu.writeOAMDATA(data)
	case 5:
		b.ppu.writePPUSCROLL(data)
	case 6:
		b.ppu.writePPUADDR(data)
	case 7:
		b.ppu.writePPUDATA(data)
	}
}

// read reads a byte.
func (b *CPUBus) read(address uint16) byte {
	switch {
	case address < 0x2000:
		return b.wram[address&0x07FF]
	case address < 0x4000:
		return b.readPPURegister(address)
	case address == 0x4016: // 1P
		return b.controller.read()
	case address < 0x4020:
		glog.V(1).Infof("Unimplemented IO read: address=0x%04x", address)
		return 0
	case address < 0x8000:
		glog.V(1).Infof("Unimplemented expansion/SRAM read: address=0x%04x", address)
		return 0
	default:
		return b.prgROM[int(address-0x8000)%len(b.prgROM)]
	}
}

// read16 reads 2 bytes.
func (b *CPUBus) read16(address uint16) uint16 {
	l := uint16(b.read(address))
	h := uint16(b.read(address+1)) << 8
	return h | l
}

// write writes a byte.
func (b *CPUBus) write(address uint16, data byte) {
	switch {
	case address < 0x2000:
		b.wram[address&0x07FF] = data
	case address < 0x4000:
		b.writePPURegister(address, data)
	case address == 0x4014:
		// OAMDMA is implemented on the CPU, it needs to stall.
		glog.Warningf("OAMDMA write reached the bus directly: data=0x%02x", data)
	case address == 0x4016: // 1P
		b.controller.write(data)
	case address < 0x4020:
		b.apu.writeRegister(address, data)
	case address < 0x8000:
		glog.V(1).Infof("Unimplemented expansion/SRAM write: address=0x%04x, data=0x%02x", address, data)
	default:
		glog.V(1).Infof("PrgROM write ignored: address=0x%04x, data=0x%02x", address, data)
	}
}
