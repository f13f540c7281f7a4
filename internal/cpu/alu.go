package cpu

// Arithmetic flags are derived from the untruncated result: a
// carry (or borrow) out of bit 3 or bit 7 shows up in bit 4 or
// bit 8 of the wider sum.

// add adds n (and the carry flag, if withCarry) to the A Register.
//
//	ADD A, n
//	ADC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) add(n uint8, withCarry bool) {
	var in uint16
	if withCarry {
		in = uint16(c.carry())
	}
	sum := uint16(c.A) + uint16(n) + in
	half := uint16(c.A&0xF) + uint16(n&0xF) + in

	c.setFlags(sum&0xFF == 0, false, half&0x10 != 0, sum&0x100 != 0)
	c.A = uint8(sum)
}

// subtract returns A - n (and the carry flag, if withBorrow),
// setting the flags accordingly.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func (c *CPU) subtract(n uint8, withBorrow bool) uint8 {
	var in uint16
	if withBorrow {
		in = uint16(c.carry())
	}
	diff := uint16(c.A) - uint16(n) - in
	half := uint16(c.A&0xF) - uint16(n&0xF) - in

	c.setFlags(diff&0xFF == 0, true, half&0x10 != 0, diff&0x100 != 0)
	return uint8(diff)
}

// sub subtracts n (and the carry flag, if withBorrow) from the
// A Register.
//
//	SUB n
//	SBC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
func (c *CPU) sub(n uint8, withBorrow bool) {
	c.A = c.subtract(n, withBorrow)
}

// compare compares n to the A Register, by subtracting without
// storing the result.
//
//	CP n
//	n = d8, B, C, D, E, H, L, (HL), A
func (c *CPU) compare(n uint8) {
	c.subtract(n, false)
}

// and performs a bitwise AND operation on n and the A Register.
//
//	AND n
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set.
//	C - Reset.
func (c *CPU) and(n uint8) {
	c.A &= n
	c.setFlags(c.A == 0, false, true, false)
}

// or performs a bitwise OR operation on n and the A Register.
// Z is set if the result is zero, N, H and C are reset.
func (c *CPU) or(n uint8) {
	c.A |= n
	c.setFlags(c.A == 0, false, false, false)
}

// xor performs a bitwise XOR operation on n and the A Register.
// Z is set if the result is zero, N, H and C are reset.
func (c *CPU) xor(n uint8) {
	c.A ^= n
	c.setFlags(c.A == 0, false, false, false)
}

// alu performs the ALU operation encoded in bits 3-5 of an
// 0x80 - 0xBF or 0xC6 - 0xFE opcode.
func (c *CPU) alu(op, n uint8) {
	switch op & 0x7 {
	case 0:
		c.add(n, false)
	case 1:
		c.add(n, true)
	case 2:
		c.sub(n, false)
	case 3:
		c.sub(n, true)
	case 4:
		c.and(n)
	case 5:
		c.xor(n)
	case 6:
		c.or(n)
	case 7:
		c.compare(n)
	}
}

// increment n by 1 and set the flags accordingly.
//
//	INC n
//	n = 8-bit value
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Not affected.
func (c *CPU) increment(n uint8) uint8 {
	half := (n&0xF + 1) & 0x10
	result := n + 1
	c.setFlags(result == 0, false, half != 0, c.isFlagSet(FlagCarry))
	return result
}

// decrement n by 1 and set the flags accordingly.
//
//	DEC n
//	n = 8-bit value
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Not affected.
func (c *CPU) decrement(n uint8) uint8 {
	half := (n&0xF - 1) & 0x10
	result := n - 1
	c.setFlags(result == 0, true, half != 0, c.isFlagSet(FlagCarry))
	return result
}

// addHL adds nn to the HL RegisterPair.
//
//	ADD HL, nn
//	nn = BC, DE, HL, SP
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Set if carry from bit 11.
//	C - Set if carry from bit 15.
func (c *CPU) addHL(nn uint16) {
	hl := c.HL.Uint16()
	sum := uint32(hl) + uint32(nn)
	half := uint32(hl&0xFFF) + uint32(nn&0xFFF)

	c.setFlags(c.isFlagSet(FlagZero), false, half&0x1000 != 0, sum&0x10000 != 0)
	c.HL.SetUint16(uint16(sum))
}

// addSPSigned returns SP plus the signed immediate operand. The
// flags are derived from the unsigned addition of the low byte
// of SP and the operand.
//
//	ADD SP, r8
//	LD HL, SP+r8
//
// Flags affected:
//
//	Z - Reset.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) addSPSigned() uint16 {
	n := uint16(c.d8())
	half := c.SP&0xF + n&0xF
	low := c.SP&0xFF + n

	c.setFlags(false, false, half&0x10 != 0, low&0x100 != 0)
	return c.SP + uint16(int8(n))
}

// decimalAdjust corrects the A Register after a BCD addition
// or subtraction, using N, H and C from the previous operation.
//
//	DAA
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Not affected.
//	H - Reset.
//	C - Set if the adjustment carried.
func (c *CPU) decimalAdjust() {
	carry := c.isFlagSet(FlagCarry)
	if !c.isFlagSet(FlagSubtract) {
		if carry || c.A > 0x99 {
			c.A += 0x60
			carry = true
		}
		if c.isFlagSet(FlagHalfCarry) || c.A&0xF > 0x9 {
			c.A += 0x06
		}
	} else {
		if carry {
			c.A -= 0x60
		}
		if c.isFlagSet(FlagHalfCarry) {
			c.A -= 0x06
		}
	}

	c.setFlags(c.A == 0, c.isFlagSet(FlagSubtract), false, carry)
}
