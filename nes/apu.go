package nes

import "math"

// APU is a register sink plus a test tone. Waveform synthesis is out of
// scope, the sample path exists so the host audio stream stays exercised.
type APU struct {
	pulse1 pulse
	pulse2 pulse
	out    chan float32
	sample int
}

func NewAPU() *APU {
	return &APU{}
}

const audioSampleRate = 44100

// Tick runs once per CPU cycle.
func (a *APU) Tick() {
	if a.out == nil {
		return
	}
	x := float32(math.Sin(2.0 * math.Pi * 440 * float64(a.sample) / float64(audioSampleRate)))
	select {
	case a.out <- x: // l
	default:
	}
	select {
	case a.out <- x: // r
	default:
	}
	a.sample++
	if a.sample >= audioSampleRate*10 {
		a.sample = 0
	}
}

func (a *APU) SetAudioOut(c chan float32) {
	a.out = c
}

// writeRegister accepts $4000-$401F writes.
func (a *APU) writeRegister(address uint16, data byte) {
	switch address {
	case 0x4000:
		a.pulse1.writeControl(data)
	case 0x4001:
		a.pulse1.writeSweep(data)
	case 0x4002:
		a.pulse1.writeTimerLow(data)
	case 0x4003:
		a.pulse1.writeTimerHigh(data)
	case 0x4004:
		a.pulse2.writeControl(data)
	case 0x4005:
		a.pulse2.writeSweep(data)
	case 0x4006:
		a.pulse2.writeTimerLow(data)
	case 0x4007:
		a.pulse2.writeTimerHigh(data)
	}
}

// Pulse channel register sink.
type pulse struct {
	control   byte
	sweep     byte
	timerLow  byte
	timerHigh byte
}

func (p *pulse) writeControl(data byte) {
	p.control = data
}

func (p *pulse) writeSweep(data byte) {
	p.sweep = data
}

func (p *pulse) writeTimerLow(data byte) {
	p.timerLow = data
}

func (p *pulse) writeTimerHigh(data byte) {
	p.timerHigh = data
}
