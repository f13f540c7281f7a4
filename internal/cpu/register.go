package cpu

// registerNames are the operand names of the register indexes
// encoded in the low 3 bits (and bits 3-5) of an opcode.
var registerNames = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

// hlIndex is the register index that addresses memory at HL.
const hlIndex = 6

// readRegister returns the value of the register at index. Index
// 6 reads the byte in memory addressed by HL.
func (c *CPU) readRegister(index uint8) uint8 {
	if index == hlIndex {
		return c.mem.Read(c.HL.Uint16())
	}
	return *c.registers[index]
}

// writeRegister sets the register at index. Index 6 writes the
// byte in memory addressed by HL.
func (c *CPU) writeRegister(index uint8, value uint8) {
	if index == hlIndex {
		c.mem.Write(c.HL.Uint16(), value)
		return
	}
	*c.registers[index] = value
}

// registerCost returns the machine cycles an 8-bit operation on
// the register at index costs, given the cost for a plain register.
// Accessing (HL) adds a cycle for each memory access.
func registerCost(index uint8, cycles uint8, accesses uint8) uint8 {
	if index == hlIndex {
		return cycles + accesses
	}
	return cycles
}
