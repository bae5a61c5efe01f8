package nes

import "image"

// Console is what the host drives: one call to Step executes a CPU
// instruction with the PPU and APU kept in lockstep.
type Console interface {
	Reset()
	Step() (int, error)
	Frame() (*image.RGBA, bool)
	SetAudioOut(chan float32)
	SetButtons([8]bool)
}

type NesConsole struct {
	cpu          *CPU
	ppu          *PPU
	apu          *APU
	controller   *Controller
	lastFrame    uint64
	currentFrame uint64
	buffer       *image.RGBA
}

// NewConsole creates a console. If debug is true, this creates a debug console.
func NewConsole(cartridge *Cartridge, debug bool) (Console, error) {
	controller := NewController()
	ppu := NewPPU(cartridge)
	apu := NewAPU()
	cpuBus := NewCPUBus(ppu, apu, cartridge, controller)
	cpu := NewCPU(cpuBus)
	console := &NesConsole{cpu: cpu, ppu: ppu, apu: apu, controller: controller}
	if debug {
		return &DebugConsole{NesConsole: console}, nil
	}
	return console, nil
}

func (c *NesConsole) Reset() {
	c.currentFrame = 0
	c.lastFrame = 0
	c.cpu.Reset()
	c.ppu.Reset()
}

// Tick advances the machine by one CPU cycle. The PPU clock is exactly 3x
// faster than the CPU's; a pending PPU NMI edge is handed to the CPU here,
// between its ticks.
func (c *NesConsole) Tick() {
	c.cpu.Tick()
	c.apu.Tick()
	for i := 0; i < 3; i++ {
		c.ppu.Tick()
		if c.ppu.takeNMI() {
			c.cpu.nmiTriggered = true
		}
		if ok, f := c.ppu.Frame(); ok {
			c.currentFrame++
			c.buffer = f
		}
	}
}

// Step runs ticks until the current CPU instruction has fully elapsed and
// returns how many cycles it consumed.
func (c *NesConsole) Step() (int, error) {
	cycles := 0
	for {
		c.Tick()
		cycles++
		if c.cpu.cycleCount == 0 && c.cpu.stall == 0 {
			return cycles, nil
		}
	}
}

// Frame returns a new frame.
func (c *NesConsole) Frame() (*image.RGBA, bool) {
	if c.lastFrame < c.currentFrame {
		c.lastFrame = c.currentFrame
		return c.buffer, true
	}
	return c.buffer, false
}

func (c *NesConsole) SetAudioOut(channel chan float32) {
	c.apu.SetAudioOut(channel)
}

func (c *NesConsole) SetButtons(buttons [8]bool) {
	c.controller.Set(buttons)
}
