package cpu

import (
	"fmt"

	"github.com/thelolagemann/gomeboy-core/pkg/utils"
)

// InstructionSetCB holds the 256 instructions reached through the
// 0xCB prefix. Cycles exclude the cost of the prefix itself.
var InstructionSetCB [256]Instruction

// shiftOperations are indexed by bits 3-5 of a 0x00 - 0x3F CB opcode.
var shiftOperations = [8]struct {
	name string
	fn   func(*CPU, uint8) uint8
}{
	{"RLC", (*CPU).rotateLeft},
	{"RRC", (*CPU).rotateRight},
	{"RL", (*CPU).rotateLeftThroughCarry},
	{"RR", (*CPU).rotateRightThroughCarry},
	{"SLA", (*CPU).shiftLeftArithmetic},
	{"SRA", (*CPU).shiftRightArithmetic},
	{"SWAP", (*CPU).swap},
	{"SRL", (*CPU).shiftRightLogical},
}

func init() {
	for i := 0; i < 256; i++ {
		opcode := uint8(i)
		InstructionSetCB[opcode] = generateCB(opcode)
	}
}

// generateCB builds the CB instruction for opcode from its bit fields:
//
//	xx yyy zzz
//	x = operation group, y = operation or bit, z = register index
func generateCB(opcode uint8) Instruction {
	group, y, index := opcode>>6, opcode>>3&0x7, opcode&0x7
	reg := registerNames[index]

	switch group {
	case 0:
		op := shiftOperations[y]
		return Instruction{
			name:   fmt.Sprintf("%s %s", op.name, reg),
			cycles: registerCost(index, 1, 2),
			fn: func(c *CPU) {
				c.writeRegister(index, op.fn(c, c.readRegister(index)))
			},
		}
	case 1:
		return Instruction{
			name:   fmt.Sprintf("BIT %d, %s", y, reg),
			cycles: registerCost(index, 1, 1),
			fn: func(c *CPU) {
				c.testBit(y, c.readRegister(index))
			},
		}
	case 2:
		return Instruction{
			name:   fmt.Sprintf("RES %d, %s", y, reg),
			cycles: registerCost(index, 1, 2),
			fn: func(c *CPU) {
				c.writeRegister(index, utils.ClearBit(c.readRegister(index), y))
			},
		}
	default:
		return Instruction{
			name:   fmt.Sprintf("SET %d, %s", y, reg),
			cycles: registerCost(index, 1, 2),
			fn: func(c *CPU) {
				c.writeRegister(index, utils.SetBit(c.readRegister(index), y))
			},
		}
	}
}
