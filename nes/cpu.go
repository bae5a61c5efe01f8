package nes

import (
	"fmt"

	"github.com/golang/glog"
)

// CPU emulates NES CPU - is custom 6502 made by RICOH.
// References:
//   https://en.wikipedia.org/wiki/MOS_Technology_6502
//   http://www.6502.org/tutorials/6502opcodes.html
//   https://www.nesdev.org/wiki/CPU

const CPUFrequency = 1789773

type addressingMode int

const (
	implied addressingMode = iota
	accumulator
	immediate
	zeropage
	zeropageX
	zeropageY
	relative
	absolute
	absoluteX
	absoluteY
	absoluteXW // write form, no page-crossing bonus
	absoluteYW
	indirect
	indirectX
	indirectY
	indirectYW
)

type status struct {
	C bool // carry
	Z bool // zero
	I bool // IRQ disable
	D bool // decimal - unused on NES
	B bool // break
	R bool // reserved - always pushed as 1
	V bool // overflow
	N bool // negative
}

// encode encodes the status to a byte.
func (s *status) encode() byte {
	var res byte
	if s.C {
		res |= (1 << 0)
	}
	if s.Z {
		res |= (1 << 1)
	}
	if s.I {
		res |= (1 << 2)
	}
	if s.D {
		res |= (1 << 3)
	}
	if s.B {
		res |= (1 << 4)
	}
	if s.R {
		res |= (1 << 5)
	}
	if s.V {
		res |= (1 << 6)
	}
	if s.N {
		res |= (1 << 7)
	}
	return res
}

// decodeFrom decodes a byte to the status.
func (s *status) decodeFrom(data byte) {
	s.C = (data>>0)&1 == 1
	s.Z = (data>>1)&1 == 1
	s.I = (data>>2)&1 == 1
	s.D = (data>>3)&1 == 1
	s.B = (data>>4)&1 == 1
	s.R = (data>>5)&1 == 1
	s.V = (data>>6)&1 == 1
	s.N = (data>>7)&1 == 1
}

// operand is the result of an addressing-mode fetch. Stores and jumps use
// the address, branches take their signed offset from the value,
// read-modify-write instructions use both, everything else uses the value.
type operand struct {
	value   byte
	address uint16
}

type instruction struct {
	mnemonic string
	mode     addressingMode
	execute  func(addressingMode, operand)
}

type CPU struct {
	P             *status // Processor status flag bits
	A             byte    // Accumulator register
	X             byte    // Index register
	Y             byte    // Index register
	PC            uint16  // Program counter
	S             byte    // Stack pointer
	cycleCount    int     // Remaining cycles of the current instruction
	stall         int     // Extra stall cycles (OAMDMA)
	lastExecution string  // For debug
	bus           *CPUBus
	instructions  []instruction
	nmiTriggered  bool
	irqTriggered  bool
}

// NewCPU creates a new NES CPU.
func NewCPU(bus *CPUBus) *CPU {
	c := &CPU{
		P:   &status{},
		bus: bus,
	}
	c.instructions = c.createInstructions()
	c.Reset()
	return c
}

// Reset does reset.
func (c *CPU) Reset() {
	c.PC = c.bus.read16(0xFFFC)
	c.S = 0xFD
	c.P.decodeFrom(0x24)
	c.A = 0
	c.X = 0
	c.Y = 0
	c.cycleCount = 0
	c.stall = 0
}

// write is for wrapping c.bus.write, because writing oamdma requires some.
func (c *CPU) write(address uint16, data byte) {
	// OAMDMA
	if address == 0x4014 {
		oamData := [256]byte{}
		offset := uint16(data) << 8
		for i := 0; i < 256; i++ {
			oamData[i] = c.bus.read(offset + uint16(i))
		}
		c.bus.writeOAMDMA(oamData)
		c.stall += 513
	} else {
		c.bus.write(address, data)
	}
}

func (c *CPU) read(address uint16) byte {
	return c.bus.read(address)
}

func (c *CPU) read16(address uint16) uint16 {
	l := uint16(c.read(address))
	h := uint16(c.read(address+1)) << 8
	return h | l
}

// read16zp reads a 16-bit pointer from the zero page, the high byte wraps
// within the page.
func (c *CPU) read16zp(pointer byte) uint16 {
	l := uint16(c.read(uint16(pointer)))
	h := uint16(c.read(uint16(pointer+1))) << 8
	return h | l
}

func pagesDiffer(a, b uint16) bool {
	return a&0xFF00 != b&0xFF00
}

// setNZ sets N and Z from x.
func (c *CPU) setNZ(x byte) {
	c.P.N = x&0x80 != 0
	c.P.Z = x == 0
}

// push pushes data to stack.
// "With the 6502, the stack is always on page one ($100-$1FF) and works top down."
func (c *CPU) push(x byte) {
	c.write(0x100|uint16(c.S), x)
	c.S--
}

// pop pops data from stack.
func (c *CPU) pop() byte {
	c.S++
	return c.read(0x100 | uint16(c.S))
}

func (c *CPU) push16(x uint16) {
	c.push(byte(x >> 8))
	c.push(byte(x & 0xFF))
}

func (c *CPU) pop16() uint16 {
	l := uint16(c.pop())
	h := uint16(c.pop()) << 8
	return h | l
}

// fetchOperand computes the effective operand for the mode, advances PC past
// the operand bytes and accumulates the mode's base cycle cost.
func (c *CPU) fetchOperand(mode addressingMode) operand {
	switch mode {
	case implied, accumulator:
		return operand{}
	case immediate:
		c.cycleCount += 2
		address := c.PC
		c.PC++
		return operand{value: c.read(address), address: address}
	case zeropage:
		c.cycleCount += 3
		address := uint16(c.read(c.PC))
		c.PC++
		return operand{value: c.read(address), address: address}
	case zeropageX:
		c.cycleCount += 4
		address := uint16(c.read(c.PC)+c.X) & 0xFF
		c.PC++
		return operand{value: c.read(address), address: address}
	case zeropageY:
		c.cycleCount += 4
		address := uint16(c.read(c.PC)+c.Y) & 0xFF
		c.PC++
		return operand{value: c.read(address), address: address}
	case relative:
		c.cycleCount += 2
		address := c.PC
		c.PC++
		return operand{value: c.read(address), address: address}
	case absolute:
		c.cycleCount += 4
		address := c.read16(c.PC)
		c.PC += 2
		return operand{value: c.read(address), address: address}
	case absoluteX:
		return c.absoluteIndexed(c.X, false)
	case absoluteY:
		return c.absoluteIndexed(c.Y, false)
	case absoluteXW:
		return c.absoluteIndexed(c.X, true)
	case absoluteYW:
		return c.absoluteIndexed(c.Y, true)
	case indirect:
		// The 6502 fetches the high byte from the same page when the
		// pointer sits at $xxFF.
		c.cycleCount += 6
		pointer := c.read16(c.PC)
		c.PC += 2
		l := uint16(c.read(pointer))
		h := uint16(c.read((pointer & 0xFF00) | (pointer+1)&0x00FF)) << 8
		return operand{address: h | l}
	case indirectX:
		c.cycleCount += 6
		pointer := c.read(c.PC) + c.X
		c.PC++
		address := c.read16zp(pointer)
		return operand{value: c.read(address), address: address}
	case indirectY:
		return c.indirectIndexed(false)
	case indirectYW:
		return c.indirectIndexed(true)
	}
	return operand{}
}

func (c *CPU) absoluteIndexed(index byte, write bool) operand {
	base := c.read16(c.PC)
	c.PC += 2
	address := base + uint16(index)
	if write {
		c.cycleCount += 5
	} else {
		c.cycleCount += 4
		if pagesDiffer(base, address) {
			c.cycleCount++
		}
	}
	return operand{value: c.read(address), address: address}
}

func (c *CPU) indirectIndexed(write bool) operand {
	pointer := c.read(c.PC)
	c.PC++
	base := c.read16zp(pointer)
	address := base + uint16(c.Y)
	if write {
		c.cycleCount += 6
	} else {
		c.cycleCount += 5
		if pagesDiffer(base, address) {
			c.cycleCount++
		}
	}
	return operand{value: c.read(address), address: address}
}

// ADC - Add with Carry. Decimal mode is absent on the NES.
func (c *CPU) adc(mode addressingMode, op operand) {
	x := uint16(c.A)
	y := uint16(op.value)
	var carry uint16 = 0
	if c.P.C {
		carry = 1
	}
	res := x + y + carry
	c.P.C = res > 0xFF
	c.P.V = (^(x^y)&(x^res))&0x80 != 0
	c.A = byte(res & 0xFF)
	c.setNZ(c.A)
}

// AND - And.
func (c *CPU) and(mode addressingMode, op operand) {
	c.A &= op.value
	c.setNZ(c.A)
}

// ASL - Arithmetic Shift Left.
func (c *CPU) asl(mode addressingMode, op operand) {
	c.cycleCount += 2
	if mode == accumulator {
		c.P.C = (c.A>>7)&1 == 1
		c.A <<= 1
		c.setNZ(c.A)
	} else {
		c.P.C = (op.value>>7)&1 == 1
		x := op.value << 1
		c.write(op.address, x)
		c.setNZ(x)
	}
}

// branch moves PC by the signed operand, +1 cycle taken, +1 when the target
// crosses a page.
func (c *CPU) branch(op operand) {
	offset := uint16(op.value)
	var target uint16
	if offset < 0x80 {
		target = c.PC + offset
	} else {
		target = c.PC + offset - 0x100
	}
	c.cycleCount++
	if pagesDiffer(c.PC, target) {
		c.cycleCount++
	}
	c.PC = target
}

// BCC - Branch on Carry Clear.
func (c *CPU) bcc(mode addressingMode, op operand) {
	if !c.P.C {
		c.branch(op)
	}
}

// BCS - Branch on Carry Set.
func (c *CPU) bcs(mode addressingMode, op operand) {
	if c.P.C {
		c.branch(op)
	}
}

// BEQ - Branch on Equal.
func (c *CPU) beq(mode addressingMode, op operand) {
	if c.P.Z {
		c.branch(op)
	}
}

// BIT - test BITS.
func (c *CPU) bit(mode addressingMode, op operand) {
	c.P.Z = c.A&op.value == 0
	c.P.N = (op.value>>7)&1 == 1
	c.P.V = (op.value>>6)&1 == 1
}

// BMI - Branch on Minus.
func (c *CPU) bmi(mode addressingMode, op operand) {
	if c.P.N {
		c.branch(op)
	}
}

// BNE - Branch on Not Equal.
func (c *CPU) bne(mode addressingMode, op operand) {
	if !c.P.Z {
		c.branch(op)
	}
}

// BPL - Branch on Plus.
func (c *CPU) bpl(mode addressingMode, op operand) {
	if !c.P.N {
		c.branch(op)
	}
}

// BRK - Break Interrupt.
func (c *CPU) brk(mode addressingMode, op operand) {
	c.cycleCount += 7
	c.push16(c.PC + 1)
	c.push(c.P.encode() | 0x30)
	c.P.I = true
	c.PC = c.bus.read16(0xFFFE)
}

// BVC - Branch on Overflow Clear.
func (c *CPU) bvc(mode addressingMode, op operand) {
	if !c.P.V {
		c.branch(op)
	}
}

// BVS - Branch on Overflow Set.
func (c *CPU) bvs(mode addressingMode, op operand) {
	if c.P.V {
		c.branch(op)
	}
}

// CLC - Clear Carry.
func (c *CPU) clc(mode addressingMode, op operand) {
	c.cycleCount += 2
	c.P.C = false
}

// CLD - Clear Decimal.
func (c *CPU) cld(mode addressingMode, op operand) {
	c.cycleCount += 2
	c.P.D = false
}

// CLI - Clear Interrupt.
func (c *CPU) cli(mode addressingMode, op operand) {
	c.cycleCount += 2
	c.P.I = false
}

// CLV - Clear Overflow.
func (c *CPU) clv(mode addressingMode, op operand) {
	c.cycleCount += 2
	c.P.V = false
}

func (c *CPU) compare(left, right byte) {
	res := left - right
	c.P.C = left >= right
	c.P.Z = left == right
	c.P.N = res&0x80 != 0
}

// CMP - Compare Accumulator.
func (c *CPU) cmp(mode addressingMode, op operand) {
	c.compare(c.A, op.value)
}

// CPX - Compare X register.
func (c *CPU) cpx(mode addressingMode, op operand) {
	c.compare(c.X, op.value)
}

// CPY - Compare Y register.
func (c *CPU) cpy(mode addressingMode, op operand) {
	c.compare(c.Y, op.value)
}

// DEC - Decrement Memory.
func (c *CPU) dec(mode addressingMode, op operand) {
	c.cycleCount += 2
	x := op.value - 1
	c.write(op.address, x)
	c.setNZ(x)
}

// DEX - Decrement X Register.
func (c *CPU) dex(mode addressingMode, op operand) {
	c.cycleCount += 2
	c.X--
	c.setNZ(c.X)
}

// DEY - Decrement Y Register.
func (c *CPU) dey(mode addressingMode, op operand) {
	c.cycleCount += 2
	c.Y--
	c.setNZ(c.Y)
}

// EOR - Bitwise Exclusive OR.
func (c *CPU) eor(mode addressingMode, op operand) {
	c.A ^= op.value
	c.setNZ(c.A)
}

// INC - Increment Memory.
func (c *CPU) inc(mode addressingMode, op operand) {
	c.cycleCount += 2
	x := op.value + 1
	c.write(op.address, x)
	c.setNZ(x)
}

// INX - Increment X Register.
func (c *CPU) inx(mode addressingMode, op operand) {
	c.cycleCount += 2
	c.X++
	c.setNZ(c.X)
}

// INY - Increment Y Register.
func (c *CPU) iny(mode addressingMode, op operand) {
	c.cycleCount += 2
	c.Y++
	c.setNZ(c.Y)
}

// JMP - Jump.
func (c *CPU) jmp(mode addressingMode, op operand) {
	c.cycleCount--
	c.PC = op.address
}

// JSR - Jump to Subroutine.
func (c *CPU) jsr(mode addressingMode, op operand) {
	c.cycleCount += 2
	c.push16(c.PC - 1)
	c.PC = op.address
}

// LDA - Load Accumulator.
func (c *CPU) lda(mode addressingMode, op operand) {
	c.A = op.value
	c.setNZ(c.A)
}

// LDX - Load X Register.
func (c *CPU) ldx(mode addressingMode, op operand) {
	c.X = op.value
	c.setNZ(c.X)
}

// LDY - Load Y Register.
func (c *CPU) ldy(mode addressingMode, op operand) {
	c.Y = op.value
	c.setNZ(c.Y)
}

// LSR - Logical Shift Right.
func (c *CPU) lsr(mode addressingMode, op operand) {
	c.cycleCount += 2
	if mode == accumulator {
		c.P.C = c.A&1 == 1
		c.A >>= 1
		c.setNZ(c.A)
	} else {
		c.P.C = op.value&1 == 1
		x := op.value >> 1
		c.write(op.address, x)
		c.setNZ(x)
	}
}

// NOP - No Operation.
func (c *CPU) nop(mode addressingMode, op operand) {
	c.cycleCount += 2
}

// ORA - Bitwise OR with Accumulator.
func (c *CPU) ora(mode addressingMode, op operand) {
	c.A |= op.value
	c.setNZ(c.A)
}

// PHA - Push Accumulator.
func (c *CPU) pha(mode addressingMode, op operand) {
	c.cycleCount += 3
	c.push(c.A)
}

// PHP - Push Processor Status. B and the reserved bit read as 1 on the stack.
func (c *CPU) php(mode addressingMode, op operand) {
	c.cycleCount += 3
	c.push(c.P.encode() | 0x30)
}

// PLA - Pull Accumulator.
func (c *CPU) pla(mode addressingMode, op operand) {
	c.cycleCount += 4
	c.A = c.pop()
	c.setNZ(c.A)
}

// PLP - Pull Processor Status. B is cleared, the reserved bit is set.
func (c *CPU) plp(mode addressingMode, op operand) {
	c.cycleCount += 4
	c.P.decodeFrom(c.pop())
	c.P.B = false
	c.P.R = true
}

// ROL - Rotate Left.
func (c *CPU) rol(mode addressingMode, op operand) {
	c.cycleCount += 2
	var carry byte = 0
	if c.P.C {
		carry = 1
	}
	if mode == accumulator {
		c.P.C = (c.A>>7)&1 == 1
		c.A = (c.A << 1) | carry
		c.setNZ(c.A)
	} else {
		c.P.C = (op.value>>7)&1 == 1
		x := (op.value << 1) | carry
		c.write(op.address, x)
		c.setNZ(x)
	}
}

// ROR - Rotate Right.
func (c *CPU) ror(mode addressingMode, op operand) {
	c.cycleCount += 2
	var carry byte = 0
	if c.P.C {
		carry = 1
	}
	if mode == accumulator {
		c.P.C = c.A&1 == 1
		c.A = (c.A >> 1) | (carry << 7)
		c.setNZ(c.A)
	} else {
		c.P.C = op.value&1 == 1
		x := (op.value >> 1) | (carry << 7)
		c.write(op.address, x)
		c.setNZ(x)
	}
}

// RTI - Return from Interrupt.
func (c *CPU) rti(mode addressingMode, op operand) {
	c.cycleCount += 6
	c.P.decodeFrom(c.pop())
	c.P.B = false
	c.P.R = true
	c.PC = c.pop16()
}

// RTS - Return from Subroutine.
func (c *CPU) rts(mode addressingMode, op operand) {
	c.cycleCount += 6
	c.PC = c.pop16() + 1
}

// SBC - Subtract with carry, equivalent to ADC of the complement.
func (c *CPU) sbc(mode addressingMode, op operand) {
	c.adc(mode, operand{value: ^op.value, address: op.address})
}

// SEC - Set Carry.
func (c *CPU) sec(mode addressingMode, op operand) {
	c.cycleCount += 2
	c.P.C = true
}

// SED - Set Decimal.
func (c *CPU) sed(mode addressingMode, op operand) {
	c.cycleCount += 2
	c.P.D = true
}

// SEI - Set Interrupt.
func (c *CPU) sei(mode addressingMode, op operand) {
	c.cycleCount += 2
	c.P.I = true
}

// STA - Store A Register.
func (c *CPU) sta(mode addressingMode, op operand) {
	c.write(op.address, c.A)
}

// STX - Store X Register.
func (c *CPU) stx(mode addressingMode, op operand) {
	c.write(op.address, c.X)
}

// STY - Store Y Register.
func (c *CPU) sty(mode addressingMode, op operand) {
	c.write(op.address, c.Y)
}

// TAX - Transfer A to X.
func (c *CPU) tax(mode addressingMode, op operand) {
	c.cycleCount += 2
	c.X = c.A
	c.setNZ(c.X)
}

// TAY - Transfer A to Y.
func (c *CPU) tay(mode addressingMode, op operand) {
	c.cycleCount += 2
	c.Y = c.A
	c.setNZ(c.Y)
}

// TSX - Transfer S to X.
func (c *CPU) tsx(mode addressingMode, op operand) {
	c.cycleCount += 2
	c.X = c.S
	c.setNZ(c.X)
}

// TXA - Transfer X to A.
func (c *CPU) txa(mode addressingMode, op operand) {
	c.cycleCount += 2
	c.A = c.X
	c.setNZ(c.A)
}

// TXS - Transfer X to S, flags untouched.
func (c *CPU) txs(mode addressingMode, op operand) {
	c.cycleCount += 2
	c.S = c.X
}

// TYA - Transfer Y to A.
func (c *CPU) tya(mode addressingMode, op operand) {
	c.cycleCount += 2
	c.A = c.Y
	c.setNZ(c.A)
}

// nmi is non-maskable interrupt, this will be triggered by PPU.
func (c *CPU) nmi() {
	c.push16(c.PC)
	c.push((c.P.encode() | 0x20) & 0xEF)
	c.P.I = true
	c.PC = c.bus.read16(0xFFFA)
}

// irq services a maskable interrupt via $FFFE.
func (c *CPU) irq() {
	c.push16(c.PC)
	c.push((c.P.encode() | 0x20) & 0xEF)
	c.P.I = true
	c.PC = c.bus.read16(0xFFFE)
}

// Tick consumes one CPU cycle. When the previous instruction has fully
// elapsed it services pending interrupts or fetches and executes the next
// opcode, leaving its remaining duration in cycleCount.
func (c *CPU) Tick() {
	if c.stall > 0 {
		c.stall--
		return
	}
	if c.cycleCount > 0 {
		c.cycleCount--
		return
	}
	if c.nmiTriggered {
		c.nmi()
		c.nmiTriggered = false
		c.cycleCount = 7 - 1
		c.lastExecution = fmt.Sprintf("NMI, PC=0x%04x, A=0x%02x, X=0x%02x, Y=0x%02x, S=0x%02x", c.PC, c.A, c.X, c.Y, c.S)
		return
	}
	if c.irqTriggered {
		c.irqTriggered = false
		if !c.P.I {
			c.irq()
			c.cycleCount = 7 - 1
			return
		}
	}
	opcode := c.read(c.PC)
	c.PC++
	in := c.instructions[opcode]
	if in.execute == nil {
		glog.Warningf("Unknown opcode: 0x%02x at PC=0x%04x", opcode, c.PC-1)
		c.cycleCount = 2 - 1
		return
	}
	op := c.fetchOperand(in.mode)
	c.lastExecution = fmt.Sprintf("PC=0x%04x, A=0x%02x, X=0x%02x, Y=0x%02x, S=0x%02x, opcode=0x%02x, mnemonic=%s, operand=0x%04x",
		c.PC, c.A, c.X, c.Y, c.S, opcode, in.mnemonic, op.address)
	in.execute(in.mode, op)
	// The fetch tick itself counts as the first cycle.
	c.cycleCount--
}

// Step runs ticks until the current instruction (or interrupt) has fully
// elapsed and returns how many cycles it took.
func (c *CPU) Step() int {
	n := 0
	for {
		c.Tick()
		n++
		if c.cycleCount == 0 && c.stall == 0 {
			return n
		}
	}
}
