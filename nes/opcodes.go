package nes

// createInstructions builds the 256-entry decode table. Entries without an
// execute function are unofficial opcodes, handled as 2-cycle NOPs with a
// warning at dispatch.
func (c *CPU) createInstructions() []instruction {
	return []instruction{
		{"BRK", implied, c.brk},        // 0x00
		{"ORA", indirectX, c.ora},      // 0x01
		{},                             // 0x02
		{},                             // 0x03
		{},                             // 0x04
		{"ORA", zeropage, c.ora},       // 0x05
		{"ASL", zeropage, c.asl},       // 0x06
		{},                             // 0x07
		{"PHP", implied, c.php},        // 0x08
		{"ORA", immediate, c.ora},      // 0x09
		{"ASL", accumulator, c.asl},    // 0x0A
		{},                             // 0x0B
		{},                             // 0x0C
		{"ORA", absolute, c.ora},       // 0x0D
		{"ASL", absolute, c.asl},       // 0x0E
		{},                             // 0x0F
		{"BPL", relative, c.bpl},       // 0x10
		{"ORA", indirectY, c.ora},      // 0x11
		{},                             // 0x12
		{},                             // 0x13
		{},                             // 0x14
		{"ORA", zeropageX, c.ora},      // 0x15
		{"ASL", zeropageX, c.asl},      // 0x16
		{},                             // 0x17
		{"CLC", implied, c.clc},        // 0x18
		{"ORA", absoluteY, c.ora},      // 0x19
		{},                             // 0x1A
		{},                             // 0x1B
		{},                             // 0x1C
		{"ORA", absoluteX, c.ora},      // 0x1D
		{"ASL", absoluteXW, c.asl},     // 0x1E
		{},                             // 0x1F
		{"JSR", absolute, c.jsr},       // 0x20
		{"AND", indirectX, c.and},      // 0x21
		{},                             // 0x22
		{},                             // 0x23
		{"BIT", zeropage, c.bit},       // 0x24
		{"AND", zeropage, c.and},       // 0x25
		{"ROL", zeropage, c.rol},       // 0x26
		{},                             // 0x27
		{"PLP", implied, c.plp},        // 0x28
		{"AND", immediate, c.and},      // 0x29
		{"ROL", accumulator, c.rol},    // 0x2A
		{},                             // 0x2B
		{"BIT", absolute, c.bit},       // 0x2C
		{"AND", absolute, c.and},       // 0x2D
		{"ROL", absolute, c.rol},       // 0x2E
		{},                             // 0x2F
		{"BMI", relative, c.bmi},       // 0x30
		{"AND", indirectY, c.and},      // 0x31
		{},                             // 0x32
		{},                             // 0x33
		{},                             // 0x34
		{"AND", zeropageX, c.and},      // 0x35
		{"ROL", zeropageX, c.rol},      // 0x36
		{},                             // 0x37
		{"SEC", implied, c.sec},        // 0x38
		{"AND", absoluteY, c.and},      // 0x39
		{},                             // 0x3A
		{},                             // 0x3B
		{},                             // 0x3C
		{"AND", absoluteX, c.and},      // 0x3D
		{"ROL", absoluteXW, c.rol},     // 0x3E
		{},                             // 0x3F
		{"RTI", implied, c.rti},        // 0x40
		{"EOR", indirectX, c.eor},      // 0x41
		{},                             // 0x42
		{},                             // 0x43
		{},                             // 0x44
		{"EOR", zeropage, c.eor},       // 0x45
		{"LSR", zeropage, c.lsr},       // 0x46
		{},                             // 0x47
		{"PHA", implied, c.pha},        // 0x48
		{"EOR", immediate, c.eor},      // 0x49
		{"LSR", accumulator, c.lsr},    // 0x4A
		{},                             // 0x4B
		{"JMP", absolute, c.jmp},       // 0x4C
		{"EOR", absolute, c.eor},       // 0x4D
		{"LSR", absolute, c.lsr},       // 0x4E
		{},                             // 0x4F
		{"BVC", relative, c.bvc},       // 0x50
		{"EOR", indirectY, c.eor},      // 0x51
		{},                             // 0x52
		{},                             // 0x53
		{},                             // 0x54
		{"EOR", zeropageX, c.eor},      // 0x55
		{"LSR", zeropageX, c.lsr},      // 0x56
		{},                             // 0x57
		{"CLI", implied, c.cli},        // 0x58
		{"EOR", absoluteY, c.eor},      // 0x59
		{},                             // 0x5A
		{},                             // 0x5B
		{},                             // 0x5C
		{"EOR", absoluteX, c.eor},      // 0x5D
		{"LSR", absoluteXW, c.lsr},     // 0x5E
		{},                             // 0x5F
		{"RTS", implied, c.rts},        // 0x60
		{"ADC", indirectX, c.adc},      // 0x61
		{},                             // 0x62
		{},                             // 0x63
		{},                             // 0x64
		{"ADC", zeropage, c.adc},       // 0x65
		{"ROR", zeropage, c.ror},       // 0x66
		{},                             // 0x67
		{"PLA", implied, c.pla},        // 0x68
		{"ADC", immediate, c.adc},      // 0x69
		{"ROR", accumulator, c.ror},    // 0x6A
		{},                             // 0x6B
		{"JMP", indirect, c.jmp},       // 0x6C
		{"ADC", absolute, c.adc},       // 0x6D
		{"ROR", absolute, c.ror},       // 0x6E
		{},                             // 0x6F
		{"BVS", relative, c.bvs},       // 0x70
		{"ADC", indirectY, c.adc},      // 0x71
		{},                             // 0x72
		{},                             // 0x73
		{},                             // 0x74
		{"ADC", zeropageX, c.adc},      // 0x75
		{"ROR", zeropageX, c.ror},      // 0x76
		{},                             // 0x77
		{"SEI", implied, c.sei},        // 0x78
		{"ADC", absoluteY, c.adc},      // 0x79
		{},                             // 0x7A
		{},                             // 0x7B
		{},                             // 0x7C
		{"ADC", absoluteX, c.adc},      // 0x7D
		{"ROR", absoluteXW, c.ror},     // 0x7E
		{},                             // 0x7F
		{},                             // 0x80
		{"STA", indirectX, c.sta},      // 0x81
		{},                             // 0x82
		{},                             // 0x83
		{"STY", zeropage, c.sty},       // 0x84
		{"STA", zeropage, c.sta},       // 0x85
		{"STX", zeropage, c.stx},       // 0x86
		{},                             // 0x87
		{"DEY", implied, c.dey},        // 0x88
		{},                             // 0x89
		{"TXA", implied, c.txa},        // 0x8A
		{},                             // 0x8B
		{"STY", absolute, c.sty},       // 0x8C
		{"STA", absolute, c.sta},       // 0x8D
		{"STX", absolute, c.stx},       // 0x8E
		{},                             // 0x8F
		{"BCC", relative, c.bcc},       // 0x90
		{"STA", indirectYW, c.sta},     // 0x91
		{},                             // 0x92
		{},                             // 0x93
		{"STY", zeropageX, c.sty},      // 0x94
		{"STA", zeropageX, c.sta},      // 0x95
		{"STX", zeropageY, c.stx},      // 0x96
		{},                             // 0x97
		{"TYA", implied, c.tya},        // 0x98
		{"STA", absoluteYW, c.sta},     // 0x99
		{"TXS", implied, c.txs},        // 0x9A
		{},                             // 0x9B
		{},                             // 0x9C
		{"STA", absoluteXW, c.sta},     // 0x9D
		{},                             // 0x9E
		{},                             // 0x9F
		{"LDY", immediate, c.ldy},      // 0xA0
		{"LDA", indirectX, c.lda},      // 0xA1
		{"LDX", immediate, c.ldx},      // 0xA2
		{},                             // 0xA3
		{"LDY", zeropage, c.ldy},       // 0xA4
		{"LDA", zeropage, c.lda},       // 0xA5
		{"LDX", zeropage, c.ldx},       // 0xA6
		{},                             // 0xA7
		{"TAY", implied, c.tay},        // 0xA8
		{"LDA", immediate, c.lda},      // 0xA9
		{"TAX", implied, c.tax},        // 0xAA
		{},                             // 0xAB
		{"LDY", absolute, c.ldy},       // 0xAC
		{"LDA", absolute, c.lda},       // 0xAD
		{"LDX", absolute, c.ldx},       // 0xAE
		{},                             // 0xAF
		{"BCS", relative, c.bcs},       // 0xB0
		{"LDA", indirectY, c.lda},      // 0xB1
		{},                             // 0xB2
		{},                             // 0xB3
		{"LDY", zeropageX, c.ldy},      // 0xB4
		{"LDA", zeropageX, c.lda},      // 0xB5
		{"LDX", zeropageY, c.ldx},      // 0xB6
		{},                             // 0xB7
		{"CLV", implied, c.clv},        // 0xB8
		{"LDA", absoluteY, c.lda},      // 0xB9
		{"TSX", implied, c.tsx},        // 0xBA
		{},                             // 0xBB
		{"LDY", absoluteX, c.ldy},      // 0xBC
		{"LDA", absoluteX, c.lda},      // 0xBD
		{"LDX", absoluteY, c.ldx},      // 0xBE
		{},                             // 0xBF
		{"CPY", immediate, c.cpy},      // 0xC0
		{"CMP", indirectX, c.cmp},      // 0xC1
		{},                             // 0xC2
		{},                             // 0xC3
		{"CPY", zeropage, c.cpy},       // 0xC4
		{"CMP", zeropage, c.cmp},       // 0xC5
		{"DEC", zeropage, c.dec},       // 0xC6
		{},                             // 0xC7
		{"INY", implied, c.iny},        // 0xC8
		{"CMP", immediate, c.cmp},      // 0xC9
		{"DEX", implied, c.dex},        // 0xCA
		{},                             // 0xCB
		{"CPY", absolute, c.cpy},       // 0xCC
		{"CMP", absolute, c.cmp},       // 0xCD
		{"DEC", absolute, c.dec},       // 0xCE
		{},                             // 0xCF
		{"BNE", relative, c.bne},       // 0xD0
		{"CMP", indirectY, c.cmp},      // 0xD1
		{},                             // 0xD2
		{},                             // 0xD3
		{},                             // 0xD4
		{"CMP", zeropageX, c.cmp},      // 0xD5
		{"DEC", zeropageX, c.dec},      // 0xD6
		{},                             // 0xD7
		{"CLD", implied, c.cld},        // 0xD8
		{"CMP", absoluteY, c.cmp},      // 0xD9
		{},                             // 0xDA
		{},                             // 0xDB
		{},                             // 0xDC
		{"CMP", absoluteX, c.cmp},      // 0xDD
		{"DEC", absoluteXW, c.dec},     // 0xDE
		{},                             // 0xDF
		{"CPX", immediate, c.cpx},      // 0xE0
		{"SBC", indirectX, c.sbc},      // 0xE1
		{},                             // 0xE2
		{},                             // 0xE3
		{"CPX", zeropage, c.cpx},       // 0xE4
		{"SBC", zeropage, c.sbc},       // 0xE5
		{"INC", zeropage, c.inc},       // 0xE6
		{},                             // 0xE7
		{"INX", implied, c.inx},        // 0xE8
		{"SBC", immediate, c.sbc},      // 0xE9
		{"NOP", implied, c.nop},        // 0xEA
		{},                             // 0xEB
		{"CPX", absolute, c.cpx},       // 0xEC
		{"SBC", absolute, c.sbc},       // 0xED
		{"INC", absolute, c.inc},       // 0xEE
		{},                             // 0xEF
		{"BEQ", relative, c.beq},       // 0xF0
		{"SBC", indirectY, c.sbc},      // 0xF1
		{},                             // 0xF2
		{},                             // 0xF3
		{},                             // 0xF4
		{"SBC", zeropageX, c.sbc},      // 0xF5
		{"INC", zeropageX, c.inc},      // 0xF6
		{},                             // 0xF7
		{"SED", implied, c.sed},        // 0xF8
		{"SBC", absoluteY, c.sbc},      // 0xF9
		{},                             // 0xFA
		{},                             // 0xFB
		{},                             // 0xFC
		{"SBC", absoluteX, c.sbc},      // 0xFD
		{"INC", absoluteXW, c.inc},     // 0xFE
		{},                             // 0xFF
	}
}
