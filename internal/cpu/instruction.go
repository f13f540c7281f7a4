package cpu

import (
	"errors"
	"fmt"
)

// Instruction represents a single instruction of the
// CPU.
type Instruction struct {
	name    string     // name of the instruction
	length  uint8      // bytes of immediate data following the opcode
	cycles  uint8      // machine cycles taken (or when the condition is met)
	skipped uint8      // machine cycles taken when the condition is not met
	fn      func(*CPU) // fn called when executing the instruction
	cond    func(*CPU) bool
	illegal bool
}

// Name returns the mnemonic of the instruction.
func (i *Instruction) Name() string {
	return i.name
}

// Length returns the number of immediate data bytes that
// follow the opcode (0, 1 or 2).
func (i *Instruction) Length() uint8 {
	return i.length
}

// Cycles returns the base number of machine cycles the
// instruction takes. For conditional instructions this is
// the cost when the condition is met.
func (i *Instruction) Cycles() uint8 {
	return i.cycles
}

// SkippedCycles returns the number of machine cycles a
// conditional instruction takes when its condition is not
// met. It equals Cycles for unconditional instructions.
func (i *Instruction) SkippedCycles() uint8 {
	if i.cond == nil {
		return i.cycles
	}
	return i.skipped
}

// Conditional returns true if the instruction is a
// conditional jump, call or return.
func (i *Instruction) Conditional() bool {
	return i.cond != nil
}

// Illegal returns true if the opcode is not a documented
// instruction.
func (i *Instruction) Illegal() bool {
	return i.illegal
}

// execute runs the instruction, returning the machine cycles it
// took. The cost of a conditional instruction is resolved by the
// same call that evaluates its condition.
func (i *Instruction) execute(c *CPU) uint8 {
	if i.cond != nil {
		if i.cond(c) {
			return i.cycles
		}
		return i.skipped
	}

	i.fn(c)
	return i.cycles
}

// ErrIllegalOpcode is matched by any IllegalOpcodeError.
var ErrIllegalOpcode = errors.New("illegal opcode")

// IllegalOpcodeError is returned when the CPU decodes an
// opcode that has no documented instruction.
type IllegalOpcodeError struct {
	Opcode uint8
	PC     uint16
}

func (e *IllegalOpcodeError) Error() string {
	return fmt.Sprintf("illegal opcode %02X at %04X", e.Opcode, e.PC)
}

// Is reports whether target is ErrIllegalOpcode.
func (e *IllegalOpcodeError) Is(target error) bool {
	return target == ErrIllegalOpcode
}

// illegalOpcodes have no documented instruction.
var illegalOpcodes = []uint8{
	0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD,
}

// disallowedOpcode creates an instruction that can't be decoded.
func disallowedOpcode(opcode uint8) Instruction {
	return Instruction{
		name:    fmt.Sprintf("disallowed opcode %02X", opcode),
		illegal: true,
	}
}
