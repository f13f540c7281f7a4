package cpu

import "testing"

func TestArithmetic_Add(t *testing.T) {
	c, _ := newTestCPU()
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			c.A = uint8(a)
			c.add(uint8(b), false)

			result := uint8(a + b)
			if c.A != result {
				t.Fatalf("%02X + %02X: expected %02X, got %02X", a, b, result, c.A)
			}
			if c.isFlagSet(FlagCarry) != (a+b > 0xFF) {
				t.Fatalf("%02X + %02X: unexpected carry flag", a, b)
			}
			if c.isFlagSet(FlagHalfCarry) != (a&0xF+b&0xF > 0xF) {
				t.Fatalf("%02X + %02X: unexpected half carry flag", a, b)
			}
			if c.isFlagSet(FlagZero) != (result == 0) {
				t.Fatalf("%02X + %02X: unexpected zero flag", a, b)
			}
			if c.isFlagSet(FlagSubtract) {
				t.Fatalf("%02X + %02X: subtract flag set", a, b)
			}
			if c.F&0x0F != 0 {
				t.Fatalf("%02X + %02X: lower nibble of F set", a, b)
			}
		}
	}
}

func TestArithmetic_Sub(t *testing.T) {
	c, _ := newTestCPU()
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			for borrow := 0; borrow < 2; borrow++ {
				c.A = uint8(a)
				c.setFlags(false, false, false, borrow == 1)
				c.sub(uint8(b), true)

				result := uint8(a - b - borrow)
				if c.A != result {
					t.Fatalf("%02X - %02X - %d: expected %02X, got %02X", a, b, borrow, result, c.A)
				}
				if c.isFlagSet(FlagCarry) != (a-b-borrow < 0) {
					t.Fatalf("%02X - %02X - %d: unexpected carry flag", a, b, borrow)
				}
				if c.isFlagSet(FlagHalfCarry) != (a&0xF-b&0xF-borrow < 0) {
					t.Fatalf("%02X - %02X - %d: unexpected half carry flag", a, b, borrow)
				}
				if !c.isFlagSet(FlagSubtract) {
					t.Fatalf("%02X - %02X - %d: subtract flag not set", a, b, borrow)
				}
			}
		}
	}
}

func TestArithmetic_IncDecPreserveCarry(t *testing.T) {
	for _, carry := range []bool{false, true} {
		carry := carry
		testInstruction(t, "INC A", 0x3C, func(t *testing.T, c *CPU, i *Instruction) {
			for n := 0; n < 256; n++ {
				c.A = uint8(n)
				c.setFlags(false, false, false, carry)
				i.execute(c)

				if c.A != uint8(n+1) {
					t.Errorf("%02X: expected %02X, got %02X", n, uint8(n+1), c.A)
				}
				if c.isFlagSet(FlagCarry) != carry {
					t.Errorf("%02X: carry flag modified", n)
				}
				if c.isFlagSet(FlagHalfCarry) != (n&0xF == 0xF) {
					t.Errorf("%02X: unexpected half carry flag", n)
				}
			}
		})
		testInstruction(t, "DEC A", 0x3D, func(t *testing.T, c *CPU, i *Instruction) {
			for n := 0; n < 256; n++ {
				c.A = uint8(n)
				c.setFlags(false, false, false, carry)
				i.execute(c)

				if c.A != uint8(n-1) {
					t.Errorf("%02X: expected %02X, got %02X", n, uint8(n-1), c.A)
				}
				if c.isFlagSet(FlagCarry) != carry {
					t.Errorf("%02X: carry flag modified", n)
				}
				if c.isFlagSet(FlagHalfCarry) != (n&0xF == 0) {
					t.Errorf("%02X: unexpected half carry flag", n)
				}
				if !c.isFlagSet(FlagSubtract) {
					t.Errorf("%02X: subtract flag not set", n)
				}
			}
		})
	}

	testInstruction(t, "INC A overflow", 0x3C, func(t *testing.T, c *CPU, i *Instruction) {
		c.A = 0xFF
		c.F = 0
		i.execute(c)

		if c.A != 0 || !c.isFlagSet(FlagZero) || !c.isFlagSet(FlagHalfCarry) {
			t.Errorf("expected A=00 with Z and H set, got A=%02X F=%08b", c.A, c.F)
		}
	})
	testInstruction(t, "INC (HL)", 0x34, func(t *testing.T, c *CPU, i *Instruction) {
		c.HL.SetUint16(0xC000)
		c.mem.Write(0xC000, 0x0F)
		i.execute(c)

		if got := c.mem.Read(0xC000); got != 0x10 {
			t.Errorf("expected 10, got %02X", got)
		}
	})
}

func TestArithmetic_16Bit(t *testing.T) {
	testInstruction(t, "ADD HL, BC", 0x09, func(t *testing.T, c *CPU, i *Instruction) {
		c.HL.SetUint16(0x0FFF)
		c.BC.SetUint16(0x0001)
		c.F = FlagZero
		i.execute(c)

		if c.HL.Uint16() != 0x1000 {
			t.Errorf("expected 1000, got %04X", c.HL.Uint16())
		}
		if !c.isFlagSet(FlagHalfCarry) || c.isFlagSet(FlagCarry) {
			t.Errorf("expected only half carry, got %08b", c.F)
		}
		if !c.isFlagSet(FlagZero) {
			t.Errorf("zero flag modified")
		}
	})
	testInstruction(t, "ADD HL, HL", 0x29, func(t *testing.T, c *CPU, i *Instruction) {
		c.HL.SetUint16(0x8000)
		i.execute(c)

		if c.HL.Uint16() != 0 || !c.isFlagSet(FlagCarry) {
			t.Errorf("expected 0000 with carry, got %04X %08b", c.HL.Uint16(), c.F)
		}
	})
	testInstruction(t, "ADD SP, r8", 0xE8, func(t *testing.T, c *CPU, i *Instruction) {
		c.SP = 0x00FF
		c.operand = 0x01
		i.execute(c)

		if c.SP != 0x0100 {
			t.Errorf("expected 0100, got %04X", c.SP)
		}
		if !c.isFlagSet(FlagCarry) || !c.isFlagSet(FlagHalfCarry) || c.isFlagSet(FlagZero) {
			t.Errorf("expected carry and half carry, got %08b", c.F)
		}
	})
	testInstruction(t, "LD HL, SP+r8", 0xF8, func(t *testing.T, c *CPU, i *Instruction) {
		c.SP = 0xFFF8
		c.operand = 0xFE // -2
		i.execute(c)

		if c.HL.Uint16() != 0xFFF6 {
			t.Errorf("expected FFF6, got %04X", c.HL.Uint16())
		}
		if c.SP != 0xFFF8 {
			t.Errorf("SP modified")
		}
	})
}

func TestArithmetic_DAA(t *testing.T) {
	c, _ := newTestCPU(
		0x3E, 0x15, // LD A, $15
		0xC6, 0x27, // ADD A, $27
		0x27,       // DAA
		0xD6, 0x15, // SUB $15
		0x27,       // DAA
		0x3E, 0x99, // LD A, $99
		0xC6, 0x01, // ADD A, $01
		0x27,       // DAA
	)

	steps := []struct {
		n     int
		a     uint8
		carry bool
	}{
		{3, 0x42, false},
		{2, 0x27, false},
		{3, 0x00, true},
	}
	for _, s := range steps {
		for i := 0; i < s.n; i++ {
			if _, err := c.Step(); err != nil {
				t.Fatal(err)
			}
		}
		if c.A != s.a {
			t.Errorf("expected A=%02X, got %02X", s.a, c.A)
		}
		if c.isFlagSet(FlagCarry) != s.carry {
			t.Errorf("A=%02X: expected carry %v", s.a, s.carry)
		}
	}
	if !c.isFlagSet(FlagZero) {
		t.Errorf("expected zero flag after 99 + 01")
	}
}

func TestLogic(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint8
		a, b   uint8
		want   uint8
		flags  uint8
	}{
		{"AND B", 0xA0, 0b1100, 0b1010, 0b1000, FlagHalfCarry},
		{"AND B zero", 0xA0, 0b0101, 0b1010, 0, FlagZero | FlagHalfCarry},
		{"XOR B", 0xA8, 0b1100, 0b1010, 0b0110, 0},
		{"OR B", 0xB0, 0b1100, 0b1010, 0b1110, 0},
		{"CP B equal", 0xB8, 0x42, 0x42, 0x42, FlagZero | FlagSubtract},
		{"CP B less", 0xB8, 0x10, 0x20, 0x10, FlagSubtract | FlagCarry},
		{"SUB B", 0x90, 0x10, 0x01, 0x0F, FlagSubtract | FlagHalfCarry},
	}
	for _, tt := range tests {
		tt := tt
		testInstruction(t, tt.name, tt.opcode, func(t *testing.T, c *CPU, i *Instruction) {
			c.A, c.B, c.F = tt.a, tt.b, 0xF0
			i.execute(c)

			if c.A != tt.want {
				t.Errorf("expected A=%02X, got %02X", tt.want, c.A)
			}
			if c.F != tt.flags {
				t.Errorf("expected F=%08b, got %08b", tt.flags, c.F)
			}
		})
	}

	testInstruction(t, "CPL", 0x2F, func(t *testing.T, c *CPU, i *Instruction) {
		c.A, c.F = 0x35, FlagZero|FlagCarry
		i.execute(c)

		if c.A != 0xCA || c.F != FlagZero|FlagSubtract|FlagHalfCarry|FlagCarry {
			t.Errorf("got A=%02X F=%08b", c.A, c.F)
		}
	})
	testInstruction(t, "SCF", 0x37, func(t *testing.T, c *CPU, i *Instruction) {
		c.F = FlagSubtract | FlagHalfCarry
		i.execute(c)

		if c.F != FlagCarry {
			t.Errorf("got F=%08b", c.F)
		}
	})
	testInstruction(t, "CCF", 0x3F, func(t *testing.T, c *CPU, i *Instruction) {
		c.F = FlagZero | FlagCarry
		i.execute(c)

		if c.F != FlagZero {
			t.Errorf("got F=%08b", c.F)
		}
	})
}
