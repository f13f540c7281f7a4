package cpu

import "github.com/thelolagemann/gomeboy-core/internal/types"

// Flag is a single bit of the F register.
type Flag = uint8

const (
	// FlagZero is set when the result of an operation is zero.
	FlagZero Flag = types.Bit7
	// FlagSubtract is set when the last operation was a subtraction.
	FlagSubtract Flag = types.Bit6
	// FlagHalfCarry is set when an operation carried out of (or
	// borrowed into) bit 3.
	FlagHalfCarry Flag = types.Bit5
	// FlagCarry is set when an operation carried out of (or
	// borrowed into) bit 7.
	FlagCarry Flag = types.Bit4
)

// setFlags replaces the F register. The lower nibble of F is
// always zero.
func (c *CPU) setFlags(zero, subtract, halfCarry, carry bool) {
	c.F = 0
	if zero {
		c.F |= FlagZero
	}
	if subtract {
		c.F |= FlagSubtract
	}
	if halfCarry {
		c.F |= FlagHalfCarry
	}
	if carry {
		c.F |= FlagCarry
	}
}

// isFlagSet returns true if the given flag is set.
func (c *CPU) isFlagSet(flag Flag) bool {
	return c.F&flag == flag
}

// carry returns the carry flag as a 0 or 1.
func (c *CPU) carry() uint8 {
	return c.F & FlagCarry >> 4
}

// condition returns the outcome of the condition encoded in
// bits 3-4 of a conditional jump, call or return opcode.
//
//	00 NZ, 01 Z, 10 NC, 11 C
func (c *CPU) condition(opcode uint8) bool {
	flag := FlagZero
	if opcode&types.Bit4 != 0 {
		flag = FlagCarry
	}

	return c.isFlagSet(flag) == (opcode&types.Bit3 != 0)
}
