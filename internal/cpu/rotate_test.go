package cpu

import "testing"

func TestInstruction_Rotate(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint8
		cb     bool
		in     uint8
		carry  bool
		want   uint8
		flags  uint8
	}{
		{"RLCA", 0x07, false, 0x85, false, 0x0B, FlagCarry},
		{"RLCA zero", 0x07, false, 0x00, false, 0x00, 0},
		{"RRCA", 0x0F, false, 0x01, false, 0x80, FlagCarry},
		{"RLA", 0x17, false, 0x80, false, 0x00, FlagCarry},
		{"RLA carry in", 0x17, false, 0x00, true, 0x01, 0},
		{"RRA", 0x1F, false, 0x01, true, 0x80, FlagCarry},
		{"RLC A", 0x07, true, 0x80, false, 0x01, FlagCarry},
		{"RLC A zero", 0x07, true, 0x00, false, 0x00, FlagZero},
		{"RRC A", 0x0F, true, 0x01, false, 0x80, FlagCarry},
		{"RL A", 0x17, true, 0x80, false, 0x00, FlagZero | FlagCarry},
		{"RR A", 0x1F, true, 0x01, true, 0x80, FlagCarry},
		{"SLA A", 0x27, true, 0xFF, false, 0xFE, FlagCarry},
		{"SRA A", 0x2F, true, 0x81, false, 0xC0, FlagCarry},
		{"SWAP A", 0x37, true, 0xF1, true, 0x1F, 0},
		{"SWAP A zero", 0x37, true, 0x00, true, 0x00, FlagZero},
		{"SRL A", 0x3F, true, 0x01, false, 0x00, FlagZero | FlagCarry},
	}
	for _, tt := range tests {
		tt := tt
		f := func(t *testing.T, c *CPU, i *Instruction) {
			c.A = tt.in
			c.setFlags(false, false, false, tt.carry)
			i.execute(c)

			if c.A != tt.want {
				t.Errorf("expected A=%02X, got %02X", tt.want, c.A)
			}
			if c.F != tt.flags {
				t.Errorf("expected F=%08b, got %08b", tt.flags, c.F)
			}
		}
		if tt.cb {
			testInstructionCB(t, tt.name, tt.opcode, f)
		} else {
			testInstruction(t, tt.name, tt.opcode, f)
		}
	}
}

func TestInstruction_Bits(t *testing.T) {
	for b := uint8(0); b < 8; b++ {
		for index := uint8(0); index < 8; index++ {
			bit := 0x40 | b<<3 | index
			res := 0x80 | b<<3 | index
			set := 0xC0 | b<<3 | index

			testInstructionCB(t, InstructionSetCB[set].Name(), set, func(t *testing.T, c *CPU, i *Instruction) {
				c.HL.SetUint16(0xC000)
				c.writeRegister(index, 0)
				c.F = FlagCarry

				i.execute(c)
				if c.readRegister(index) != 1<<b {
					t.Errorf("expected %02X, got %02X", uint8(1<<b), c.readRegister(index))
				}

				InstructionSetCB[bit].execute(c)
				if c.F != FlagHalfCarry|FlagCarry {
					t.Errorf("BIT: expected only H and C, got %08b", c.F)
				}

				InstructionSetCB[res].execute(c)
				if c.readRegister(index) != 0 {
					t.Errorf("expected 00, got %02X", c.readRegister(index))
				}

				InstructionSetCB[bit].execute(c)
				if c.F != FlagZero|FlagHalfCarry|FlagCarry {
					t.Errorf("BIT: expected Z, H and C, got %08b", c.F)
				}
			})
		}
	}
}

func TestInstruction_MemoryOperand(t *testing.T) {
	testInstructionCB(t, "SWAP (HL)", 0x36, func(t *testing.T, c *CPU, i *Instruction) {
		c.HL.SetUint16(0xC123)
		c.mem.Write(0xC123, 0xAB)
		i.execute(c)

		if got := c.mem.Read(0xC123); got != 0xBA {
			t.Errorf("expected BA, got %02X", got)
		}
	})
	testInstruction(t, "LD (HL), B", 0x70, func(t *testing.T, c *CPU, i *Instruction) {
		c.HL.SetUint16(0xC000)
		c.B = 0x42
		i.execute(c)

		if got := c.mem.Read(0xC000); got != 0x42 {
			t.Errorf("expected 42, got %02X", got)
		}
	})
	testInstruction(t, "LD A, (HL-)", 0x3A, func(t *testing.T, c *CPU, i *Instruction) {
		c.HL.SetUint16(0xC000)
		c.mem.Write(0xC000, 0x99)
		i.execute(c)

		if c.A != 0x99 || c.HL.Uint16() != 0xBFFF {
			t.Errorf("got A=%02X HL=%04X", c.A, c.HL.Uint16())
		}
	})
	testInstruction(t, "LDH (a8), A", 0xE0, func(t *testing.T, c *CPU, i *Instruction) {
		c.A = 0x77
		c.operand = 0x80
		i.execute(c)

		if got := c.mem.Read(0xFF80); got != 0x77 {
			t.Errorf("expected 77, got %02X", got)
		}
	})
	testInstruction(t, "LD (a16), SP", 0x08, func(t *testing.T, c *CPU, i *Instruction) {
		c.SP = 0xBEEF
		c.operand = 0xC000
		i.execute(c)

		if c.mem.Read(0xC000) != 0xEF || c.mem.Read(0xC001) != 0xBE {
			t.Errorf("expected SP stored little-endian")
		}
	})
}
