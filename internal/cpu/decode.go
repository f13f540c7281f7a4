package cpu

import (
	"fmt"
	"strings"

	"github.com/thelolagemann/gomeboy-core/internal/types"
	"github.com/thelolagemann/gomeboy-core/pkg/utils"
)

// Decoded is a fully fetched instruction, ready to be executed.
type Decoded struct {
	Opcode      uint8
	Prefixed    bool
	Instruction *Instruction

	// Operand holds the immediate data, little-endian for 16-bit operands.
	Operand uint16
	// Cycles is the base cost, including the CB prefix. Conditional
	// instructions report the cost of taking the branch.
	Cycles uint8

	// PC is the address of the opcode, Next the address following
	// the full instruction.
	PC   uint16
	Next uint16
}

// Decode fetches the instruction at pc, along with any immediate
// data. An illegal opcode is still returned, alongside an
// *IllegalOpcodeError.
func Decode(mem types.Memory, pc uint16) (Decoded, error) {
	d := Decoded{
		Opcode: mem.Read(pc),
		PC:     pc,
		Next:   pc + 1,
	}
	d.Instruction = &InstructionSet[d.Opcode]
	if d.Instruction.illegal {
		return d, &IllegalOpcodeError{Opcode: d.Opcode, PC: pc}
	}

	if d.Opcode == 0xCB {
		prefix := d.Instruction.cycles
		d.Opcode = mem.Read(d.Next)
		d.Prefixed = true
		d.Instruction = &InstructionSetCB[d.Opcode]
		d.Cycles = prefix + d.Instruction.cycles
		d.Next++
		return d, nil
	}

	switch d.Instruction.length {
	case 1:
		d.Operand = uint16(mem.Read(d.Next))
	case 2:
		d.Operand = utils.BytesToUint16(mem.Read(d.Next+1), mem.Read(d.Next))
	}
	d.Next += uint16(d.Instruction.length)
	d.Cycles = d.Instruction.cycles

	return d, nil
}

// Decode fetches the instruction at pc without executing it.
func (c *CPU) Decode(pc uint16) (Decoded, error) {
	return Decode(c.mem, pc)
}

// execute runs the decoded instruction on c, returning the machine
// cycles it took.
func (d Decoded) execute(c *CPU) uint8 {
	c.operand = d.Operand
	cycles := d.Instruction.execute(c)
	if d.Prefixed {
		cycles += InstructionSet[0xCB].cycles
	}
	return cycles
}

// String renders the instruction with its immediate data substituted,
// e.g. "LD A, $42".
func (d Decoded) String() string {
	if d.Instruction.illegal {
		return fmt.Sprintf("DB $%02X", d.Opcode)
	}
	if d.Instruction.length == 0 {
		return d.Instruction.name
	}

	word := fmt.Sprintf("$%04X", d.Operand)
	b := fmt.Sprintf("$%02X", uint8(d.Operand))
	return strings.NewReplacer(
		"d16", word,
		"a16", word,
		"d8", b,
		"a8", b,
		"r8", fmt.Sprintf("%+d", int8(d.Operand)),
	).Replace(d.Instruction.name)
}

// Disassemble decodes count instructions starting at pc. Illegal
// opcodes are rendered as data bytes rather than stopping the listing.
func Disassemble(mem types.Memory, pc uint16, count int) []Decoded {
	if count <= 0 {
		return nil
	}
	listing := make([]Decoded, 0, count)
	for i := 0; i < count; i++ {
		d, _ := Decode(mem, pc)
		listing = append(listing, d)
		pc = d.Next
	}
	return listing
}
