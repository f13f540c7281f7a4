package cpu

import "github.com/thelolagemann/gomeboy-core/pkg/utils"

// rotateLeft rotates n left, with bit 7 moving to both bit 0
// and the carry flag.
//
//	RLC n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func (c *CPU) rotateLeft(n uint8) uint8 {
	carry := utils.GetBit(n, 7)
	result := n<<1 | carry
	c.setFlags(result == 0, false, false, carry == 1)
	return result
}

// rotateLeftThroughCarry rotates n left through the carry flag.
//
//	RL n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func (c *CPU) rotateLeftThroughCarry(n uint8) uint8 {
	result := n<<1 | c.carry()
	c.setFlags(result == 0, false, false, n&0x80 != 0)
	return result
}

// rotateRight rotates n right, with bit 0 moving to both bit 7
// and the carry flag.
//
//	RRC n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func (c *CPU) rotateRight(n uint8) uint8 {
	carry := utils.GetBit(n, 0)
	result := n>>1 | carry<<7
	c.setFlags(result == 0, false, false, carry == 1)
	return result
}

// rotateRightThroughCarry rotates n right through the carry flag.
//
//	RR n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func (c *CPU) rotateRightThroughCarry(n uint8) uint8 {
	result := n>>1 | c.carry()<<7
	c.setFlags(result == 0, false, false, n&1 != 0)
	return result
}

// rotateAccumulator applies rotate to the A Register. Unlike their CB
// counterparts, RLCA, RRCA, RLA and RRA always reset the zero flag.
func (c *CPU) rotateAccumulator(rotate func(*CPU, uint8) uint8) {
	c.A = rotate(c, c.A)
	c.F &^= FlagZero
}

// shiftLeftArithmetic shifts n left into the carry flag, setting
// bit 0 to 0.
//
//	SLA n
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func (c *CPU) shiftLeftArithmetic(n uint8) uint8 {
	result := n << 1
	c.setFlags(result == 0, false, false, n&0x80 != 0)
	return result
}

// shiftRightArithmetic shifts n right into the carry flag, leaving
// bit 7 unchanged.
//
//	SRA n
func (c *CPU) shiftRightArithmetic(n uint8) uint8 {
	result := n>>1 | n&0x80
	c.setFlags(result == 0, false, false, n&1 != 0)
	return result
}

// shiftRightLogical shifts n right into the carry flag, setting
// bit 7 to 0.
//
//	SRL n
func (c *CPU) shiftRightLogical(n uint8) uint8 {
	result := n >> 1
	c.setFlags(result == 0, false, false, n&1 != 0)
	return result
}

// swap swaps the upper and lower nibbles of n.
//
//	SWAP n
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) swap(n uint8) uint8 {
	result := n<<4 | n>>4
	c.setFlags(result == 0, false, false, false)
	return result
}

// testBit tests bit b of n.
//
//	BIT b, r
//
// Flags affected:
//
//	Z - Set if bit b of n is 0.
//	N - Reset.
//	H - Set.
//	C - Not affected.
func (c *CPU) testBit(b, n uint8) {
	c.setFlags(!utils.TestBit(n, b), false, true, c.isFlagSet(FlagCarry))
}
