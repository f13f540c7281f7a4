package cpu

import "github.com/thelolagemann/gomeboy-core/pkg/utils"

// push pushes a 16 bit value onto the stack, high byte first.
func (c *CPU) push(value uint16) {
	high, low := utils.Uint16ToBytes(value)
	c.SP--
	c.mem.Write(c.SP, high)
	c.SP--
	c.mem.Write(c.SP, low)
}

// pop pops a 16 bit value off the stack.
func (c *CPU) pop() uint16 {
	low := c.mem.Read(c.SP)
	c.SP++
	high := c.mem.Read(c.SP)
	c.SP++
	return utils.BytesToUint16(high, low)
}

// call pushes the address of the next instruction onto the stack and jumps to
// the given address.
//
//	CALL nn
//	RST n
func (c *CPU) call(address uint16) {
	c.push(c.PC)
	c.PC = address
}

// ret pops the return address off the stack into the PC.
//
//	RET
func (c *CPU) ret() {
	c.PC = c.pop()
}

// jumpRelative jumps to the address relative to the current PC,
// by the signed immediate operand.
//
//	JR e
//	e = 8-bit signed immediate value
func (c *CPU) jumpRelative() {
	c.PC += uint16(int8(c.d8()))
}

// jumpRelativeIf performs JR cc, e for the condition encoded in opcode.
func jumpRelativeIf(opcode uint8) func(*CPU) bool {
	return func(c *CPU) bool {
		if !c.condition(opcode) {
			return false
		}
		c.jumpRelative()
		return true
	}
}

// jumpIf performs JP cc, nn for the condition encoded in opcode.
func jumpIf(opcode uint8) func(*CPU) bool {
	return func(c *CPU) bool {
		if !c.condition(opcode) {
			return false
		}
		c.PC = c.d16()
		return true
	}
}

// callIf performs CALL cc, nn for the condition encoded in opcode.
func callIf(opcode uint8) func(*CPU) bool {
	return func(c *CPU) bool {
		if !c.condition(opcode) {
			return false
		}
		c.call(c.d16())
		return true
	}
}

// retIf performs RET cc for the condition encoded in opcode.
func retIf(opcode uint8) func(*CPU) bool {
	return func(c *CPU) bool {
		if !c.condition(opcode) {
			return false
		}
		c.ret()
		return true
	}
}

// restart performs RST to the vector encoded in bits 3-5 of opcode.
func restart(opcode uint8) func(*CPU) {
	vector := uint16(opcode & 0x38)
	return func(c *CPU) {
		c.call(vector)
	}
}
