package cpu

import (
	"fmt"

	"github.com/thelolagemann/gomeboy-core/internal/types"
)

// InstructionSet holds the first 256 instructions. Entries that
// follow a regular bit pattern (8-bit loads, ALU operations,
// INC/DEC, conditional control flow) are generated in init.
var InstructionSet = [256]Instruction{
	0x00: {name: "NOP", cycles: 1, fn: func(c *CPU) {}},
	0x01: {name: "LD BC, d16", length: 2, cycles: 3, fn: func(c *CPU) { c.BC.SetUint16(c.d16()) }},
	0x02: {name: "LD (BC), A", cycles: 2, fn: func(c *CPU) { c.mem.Write(c.BC.Uint16(), c.A) }},
	0x03: {name: "INC BC", cycles: 2, fn: func(c *CPU) { c.BC.SetUint16(c.BC.Uint16() + 1) }},
	0x07: {name: "RLCA", cycles: 1, fn: func(c *CPU) { c.rotateAccumulator((*CPU).rotateLeft) }},
	0x08: {
		name:   "LD (a16), SP",
		length: 2,
		cycles: 5,
		fn: func(c *CPU) {
			address := c.d16()
			c.mem.Write(address, uint8(c.SP))
			c.mem.Write(address+1, uint8(c.SP>>8))
		},
	},
	0x09: {name: "ADD HL, BC", cycles: 2, fn: func(c *CPU) { c.addHL(c.BC.Uint16()) }},
	0x0A: {name: "LD A, (BC)", cycles: 2, fn: func(c *CPU) { c.A = c.mem.Read(c.BC.Uint16()) }},
	0x0B: {name: "DEC BC", cycles: 2, fn: func(c *CPU) { c.BC.SetUint16(c.BC.Uint16() - 1) }},
	0x0F: {name: "RRCA", cycles: 1, fn: func(c *CPU) { c.rotateAccumulator((*CPU).rotateRight) }},
	0x10: {
		name:   "STOP",
		length: 1,
		cycles: 1,
		fn: func(c *CPU) {
			// any write to DIV resets it
			c.mem.Write(types.DIV, 0)
			c.mode = ModeStop
		},
	},
	0x11: {name: "LD DE, d16", length: 2, cycles: 3, fn: func(c *CPU) { c.DE.SetUint16(c.d16()) }},
	0x12: {name: "LD (DE), A", cycles: 2, fn: func(c *CPU) { c.mem.Write(c.DE.Uint16(), c.A) }},
	0x13: {name: "INC DE", cycles: 2, fn: func(c *CPU) { c.DE.SetUint16(c.DE.Uint16() + 1) }},
	0x17: {name: "RLA", cycles: 1, fn: func(c *CPU) { c.rotateAccumulator((*CPU).rotateLeftThroughCarry) }},
	0x18: {name: "JR r8", length: 1, cycles: 3, fn: (*CPU).jumpRelative},
	0x19: {name: "ADD HL, DE", cycles: 2, fn: func(c *CPU) { c.addHL(c.DE.Uint16()) }},
	0x1A: {name: "LD A, (DE)", cycles: 2, fn: func(c *CPU) { c.A = c.mem.Read(c.DE.Uint16()) }},
	0x1B: {name: "DEC DE", cycles: 2, fn: func(c *CPU) { c.DE.SetUint16(c.DE.Uint16() - 1) }},
	0x1F: {name: "RRA", cycles: 1, fn: func(c *CPU) { c.rotateAccumulator((*CPU).rotateRightThroughCarry) }},
	0x21: {name: "LD HL, d16", length: 2, cycles: 3, fn: func(c *CPU) { c.HL.SetUint16(c.d16()) }},
	0x22: {
		name:   "LD (HL+), A",
		cycles: 2,
		fn: func(c *CPU) {
			c.mem.Write(c.HL.Uint16(), c.A)
			c.HL.SetUint16(c.HL.Uint16() + 1)
		},
	},
	0x23: {name: "INC HL", cycles: 2, fn: func(c *CPU) { c.HL.SetUint16(c.HL.Uint16() + 1) }},
	0x27: {name: "DAA", cycles: 1, fn: (*CPU).decimalAdjust},
	0x29: {name: "ADD HL, HL", cycles: 2, fn: func(c *CPU) { c.addHL(c.HL.Uint16()) }},
	0x2A: {
		name:   "LD A, (HL+)",
		cycles: 2,
		fn: func(c *CPU) {
			c.A = c.mem.Read(c.HL.Uint16())
			c.HL.SetUint16(c.HL.Uint16() + 1)
		},
	},
	0x2B: {name: "DEC HL", cycles: 2, fn: func(c *CPU) { c.HL.SetUint16(c.HL.Uint16() - 1) }},
	0x2F: {
		name:   "CPL",
		cycles: 1,
		fn: func(c *CPU) {
			c.A = ^c.A
			c.F |= FlagSubtract | FlagHalfCarry
		},
	},
	0x31: {name: "LD SP, d16", length: 2, cycles: 3, fn: func(c *CPU) { c.SP = c.d16() }},
	0x32: {
		name:   "LD (HL-), A",
		cycles: 2,
		fn: func(c *CPU) {
			c.mem.Write(c.HL.Uint16(), c.A)
			c.HL.SetUint16(c.HL.Uint16() - 1)
		},
	},
	0x33: {name: "INC SP", cycles: 2, fn: func(c *CPU) { c.SP++ }},
	0x37: {
		name:   "SCF",
		cycles: 1,
		fn: func(c *CPU) {
			c.setFlags(c.isFlagSet(FlagZero), false, false, true)
		},
	},
	0x39: {name: "ADD HL, SP", cycles: 2, fn: func(c *CPU) { c.addHL(c.SP) }},
	0x3A: {
		name:   "LD A, (HL-)",
		cycles: 2,
		fn: func(c *CPU) {
			c.A = c.mem.Read(c.HL.Uint16())
			c.HL.SetUint16(c.HL.Uint16() - 1)
		},
	},
	0x3B: {name: "DEC SP", cycles: 2, fn: func(c *CPU) { c.SP-- }},
	0x3F: {
		name:   "CCF",
		cycles: 1,
		fn: func(c *CPU) {
			c.setFlags(c.isFlagSet(FlagZero), false, false, !c.isFlagSet(FlagCarry))
		},
	},
	0x76: {name: "HALT", cycles: 1, fn: func(c *CPU) { c.mode = ModeHalt }},
	0xC1: {name: "POP BC", cycles: 3, fn: func(c *CPU) { c.BC.SetUint16(c.pop()) }},
	0xC3: {name: "JP a16", length: 2, cycles: 4, fn: func(c *CPU) { c.PC = c.d16() }},
	0xC5: {name: "PUSH BC", cycles: 4, fn: func(c *CPU) { c.push(c.BC.Uint16()) }},
	0xC9: {name: "RET", cycles: 4, fn: (*CPU).ret},
	0xCB: {name: "PREFIX CB", cycles: 1, fn: func(c *CPU) {}},
	0xCD: {name: "CALL a16", length: 2, cycles: 6, fn: func(c *CPU) { c.call(c.d16()) }},
	0xD1: {name: "POP DE", cycles: 3, fn: func(c *CPU) { c.DE.SetUint16(c.pop()) }},
	0xD5: {name: "PUSH DE", cycles: 4, fn: func(c *CPU) { c.push(c.DE.Uint16()) }},
	0xD9: {
		name:   "RETI",
		cycles: 4,
		fn: func(c *CPU) {
			c.ret()
			c.irq.Enable()
		},
	},
	0xE0: {name: "LDH (a8), A", length: 1, cycles: 3, fn: func(c *CPU) { c.mem.Write(types.IOPage|uint16(c.d8()), c.A) }},
	0xE1: {name: "POP HL", cycles: 3, fn: func(c *CPU) { c.HL.SetUint16(c.pop()) }},
	0xE2: {name: "LD (C), A", cycles: 2, fn: func(c *CPU) { c.mem.Write(types.IOPage|uint16(c.C), c.A) }},
	0xE5: {name: "PUSH HL", cycles: 4, fn: func(c *CPU) { c.push(c.HL.Uint16()) }},
	0xE8: {name: "ADD SP, r8", length: 1, cycles: 4, fn: func(c *CPU) { c.SP = c.addSPSigned() }},
	0xE9: {name: "JP HL", cycles: 1, fn: func(c *CPU) { c.PC = c.HL.Uint16() }},
	0xEA: {name: "LD (a16), A", length: 2, cycles: 4, fn: func(c *CPU) { c.mem.Write(c.d16(), c.A) }},
	0xF0: {name: "LDH A, (a8)", length: 1, cycles: 3, fn: func(c *CPU) { c.A = c.mem.Read(types.IOPage | uint16(c.d8())) }},
	0xF1: {
		name:   "POP AF",
		cycles: 3,
		fn: func(c *CPU) {
			// the lower nibble of F can't be written
			c.AF.SetUint16(c.pop() & 0xFFF0)
		},
	},
	0xF2: {name: "LD A, (C)", cycles: 2, fn: func(c *CPU) { c.A = c.mem.Read(types.IOPage | uint16(c.C)) }},
	0xF3: {name: "DI", cycles: 1, fn: func(c *CPU) { c.irq.Disable() }},
	0xF5: {name: "PUSH AF", cycles: 4, fn: func(c *CPU) { c.push(c.AF.Uint16()) }},
	0xF8: {name: "LD HL, SP+r8", length: 1, cycles: 3, fn: func(c *CPU) { c.HL.SetUint16(c.addSPSigned()) }},
	0xF9: {name: "LD SP, HL", cycles: 2, fn: func(c *CPU) { c.SP = c.HL.Uint16() }},
	0xFA: {name: "LD A, (a16)", length: 2, cycles: 4, fn: func(c *CPU) { c.A = c.mem.Read(c.d16()) }},
	0xFB: {name: "EI", cycles: 1, fn: func(c *CPU) { c.irq.EnableDelayed() }},
}

// conditionNames are indexed by bits 3-4 of a conditional opcode.
var conditionNames = [4]string{"NZ", "Z", "NC", "C"}

// aluNames are indexed by bits 3-5 of an ALU opcode.
var aluNames = [8]string{"ADD A,", "ADC A,", "SUB", "SBC A,", "AND", "XOR", "OR", "CP"}

func init() {
	for i := uint8(0); i < 8; i++ {
		index := i
		reg := registerNames[index]

		// 0x04 - 0x3C - INC r
		InstructionSet[0x04|index<<3] = Instruction{
			name:   "INC " + reg,
			cycles: registerCost(index, 1, 2),
			fn: func(c *CPU) {
				c.writeRegister(index, c.increment(c.readRegister(index)))
			},
		}
		// 0x05 - 0x3D - DEC r
		InstructionSet[0x05|index<<3] = Instruction{
			name:   "DEC " + reg,
			cycles: registerCost(index, 1, 2),
			fn: func(c *CPU) {
				c.writeRegister(index, c.decrement(c.readRegister(index)))
			},
		}
		// 0x06 - 0x3E - LD r, d8
		InstructionSet[0x06|index<<3] = Instruction{
			name:   fmt.Sprintf("LD %s, d8", reg),
			length: 1,
			cycles: registerCost(index, 2, 1),
			fn: func(c *CPU) {
				c.writeRegister(index, c.d8())
			},
		}
		// 0xC6 - 0xFE - ALU d8
		InstructionSet[0xC6|index<<3] = Instruction{
			name:   aluNames[index] + " d8",
			length: 1,
			cycles: 2,
			fn: func(c *CPU) {
				c.alu(index, c.d8())
			},
		}
		// 0xC7 - 0xFF - RST n
		rst := 0xC7 | index<<3
		InstructionSet[rst] = Instruction{
			name:   fmt.Sprintf("RST %02XH", rst&0x38),
			cycles: 4,
			fn:     restart(rst),
		}

		// 0x80 - 0xBF - ALU r
		for src := uint8(0); src < 8; src++ {
			src := src
			InstructionSet[0x80|index<<3|src] = Instruction{
				name:   aluNames[index] + " " + registerNames[src],
				cycles: registerCost(src, 1, 1),
				fn: func(c *CPU) {
					c.alu(index, c.readRegister(src))
				},
			}
		}

		// 0x40 - 0x7F - LD r, r
		for src := uint8(0); src < 8; src++ {
			opcode := 0x40 | index<<3 | src
			if opcode == 0x76 {
				continue // HALT
			}

			dst, src := index, src
			cycles := uint8(1)
			if dst == hlIndex || src == hlIndex {
				cycles = 2
			}
			InstructionSet[opcode] = Instruction{
				name:   fmt.Sprintf("LD %s, %s", registerNames[dst], registerNames[src]),
				cycles: cycles,
				fn: func(c *CPU) {
					c.writeRegister(dst, c.readRegister(src))
				},
			}
		}
	}

	for i := uint8(0); i < 4; i++ {
		cc := conditionNames[i]

		// 0x20, 0x28, 0x30, 0x38 - JR cc, r8
		jr := 0x20 | i<<3
		InstructionSet[jr] = Instruction{
			name:    fmt.Sprintf("JR %s, r8", cc),
			length:  1,
			cycles:  3,
			skipped: 2,
			cond:    jumpRelativeIf(jr),
		}
		// 0xC0, 0xC8, 0xD0, 0xD8 - RET cc
		ret := 0xC0 | i<<3
		InstructionSet[ret] = Instruction{
			name:    "RET " + cc,
			cycles:  5,
			skipped: 2,
			cond:    retIf(ret),
		}
		// 0xC2, 0xCA, 0xD2, 0xDA - JP cc, a16
		jp := 0xC2 | i<<3
		InstructionSet[jp] = Instruction{
			name:    fmt.Sprintf("JP %s, a16", cc),
			length:  2,
			cycles:  4,
			skipped: 3,
			cond:    jumpIf(jp),
		}
		// 0xC4, 0xCC, 0xD4, 0xDC - CALL cc, a16
		call := 0xC4 | i<<3
		InstructionSet[call] = Instruction{
			name:    fmt.Sprintf("CALL %s, a16", cc),
			length:  2,
			cycles:  6,
			skipped: 3,
			cond:    callIf(call),
		}
	}

	for _, opcode := range illegalOpcodes {
		InstructionSet[opcode] = disallowedOpcode(opcode)
	}
}
