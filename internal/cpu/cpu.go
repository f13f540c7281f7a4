package cpu

import (
	"errors"
	"fmt"

	"github.com/cespare/xxhash"
	"github.com/thelolagemann/gomeboy-core/internal/interrupts"
	"github.com/thelolagemann/gomeboy-core/internal/types"
	"github.com/thelolagemann/gomeboy-core/pkg/log"
)

type mode = uint8

const (
	// ModeNormal is the normal CPU mode.
	ModeNormal mode = iota
	// ModeHalt is the halt CPU mode, exited by any pending and
	// enabled interrupt.
	ModeHalt
	// ModeStop is the stop CPU mode, exited by a pending and
	// enabled joypad interrupt.
	ModeStop
)

// CPU represents the Gameboy CPU. It is responsible for executing instructions.
type CPU struct {
	// PC is the program counter, it points to the next instruction to be executed.
	PC uint16
	// SP is the stack pointer, it points to the top of the stack.
	SP uint16
	// Registers contains the 8-bit registers, as well as the 16-bit register pairs.
	types.Registers

	// Log receives the instruction trace when Debug is set.
	Log   log.Logger
	Debug bool

	mem     types.Memory
	irq     *interrupts.Controller
	profile types.Profile

	mode    mode
	operand uint16

	// registers indexed as they are encoded in opcodes, with (HL) as nil
	registers [8]*types.Register
}

// NewCPU creates a new CPU instance with the given memory and
// interrupt controller. The CPU starts in the DMG post-boot state.
func NewCPU(mem types.Memory, irq *interrupts.Controller) *CPU {
	c := &CPU{
		mem: mem,
		irq: irq,
		Log: log.NewNullLogger(),
	}
	c.Pair()
	c.registers = [8]*types.Register{&c.B, &c.C, &c.D, &c.E, &c.H, &c.L, nil, &c.A}
	c.Init(types.DMG)

	return c
}

// Init resets the CPU to the post-boot state of the given model,
// selecting its clock speed and timer frequencies.
func (c *CPU) Init(model types.Model) {
	c.profile = model.Profile()

	regs := types.ModelRegisters[model]
	c.A, c.F = regs[0], regs[1]
	c.B, c.C = regs[2], regs[3]
	c.D, c.E = regs[4], regs[5]
	c.H, c.L = regs[6], regs[7]
	c.SP = 0xFFFE
	c.PC = 0x0100

	c.mode = ModeNormal
	c.operand = 0
	c.irq.Reset()
}

// Step runs a single step of the CPU: an interrupt is dispatched
// if one is ready, otherwise the next instruction is executed. The
// machine cycles taken are returned.
func (c *CPU) Step() (uint8, error) {
	if cycles, ok := c.ExecInterrupt(); ok {
		return cycles, nil
	}
	return c.ExecuteNextOpcode()
}

// ExecuteNextOpcode decodes and executes the instruction at PC. A
// halted or stopped CPU idles for a single cycle instead.
func (c *CPU) ExecuteNextOpcode() (uint8, error) {
	if c.mode != ModeNormal {
		return 1, nil
	}

	d, err := Decode(c.mem, c.PC)
	if err != nil {
		c.Log.Errorf("%v", err)
		return 0, err
	}
	if c.Debug {
		c.Log.Debugf("%04X %-18s AF:%04X BC:%04X DE:%04X HL:%04X SP:%04X", c.PC, d, c.AF.Uint16(), c.BC.Uint16(), c.DE.Uint16(), c.HL.Uint16(), c.SP)
	}

	// an EI executed before this instruction takes effect once it completes
	held := c.irq.Hold()

	c.PC = d.Next
	cycles := d.execute(c)

	if held {
		c.irq.ApplyHold()
	}

	return cycles, nil
}

// ExecInterrupt wakes a halted or stopped CPU when an interrupt
// allows it, then dispatches the highest priority interrupt if IME is
// set. It returns the cycles taken and whether an interrupt was
// dispatched.
func (c *CPU) ExecInterrupt() (uint8, bool) {
	if !c.awake() {
		return 0, false
	}
	c.mode = ModeNormal

	vector, ok := c.irq.CheckAndDispatch()
	if !ok {
		return 0, false
	}
	c.call(vector)

	return interrupts.DispatchCycles, true
}

// awake returns true if the CPU is running, or would be woken by the
// pending interrupts. HALT is exited by any pending and enabled
// interrupt regardless of IME, STOP only by the joypad.
func (c *CPU) awake() bool {
	switch c.mode {
	case ModeHalt:
		return c.irq.HasInterrupts()
	case ModeStop:
		return c.irq.Pending()&interrupts.JoypadFlag != 0
	}
	return true
}

// IsInterrupt returns true if an interrupt would be dispatched at
// the next step.
func (c *CPU) IsInterrupt() bool {
	return c.awake() && c.irq.IME() && c.irq.HasInterrupts()
}

// NextOpcodeCycles returns the base cost of the next step without
// executing it. Illegal opcodes report 0.
func (c *CPU) NextOpcodeCycles() uint8 {
	switch {
	case !c.awake():
		return 1
	case c.IsInterrupt():
		return interrupts.DispatchCycles
	}

	d, err := Decode(c.mem, c.PC)
	if err != nil {
		return 0
	}
	return d.Cycles
}

// Halted returns true if the CPU is in HALT mode.
func (c *CPU) Halted() bool { return c.mode == ModeHalt }

// Stopped returns true if the CPU is in STOP mode.
func (c *CPU) Stopped() bool { return c.mode == ModeStop }

// IME returns the interrupt master enable flag.
func (c *CPU) IME() bool { return c.irq.IME() }

// HoldIME returns true if an EI is waiting for the following
// instruction to complete.
func (c *CPU) HoldIME() bool { return c.irq.Hold() }

// SetHoldIME sets or cancels a pending EI.
func (c *CPU) SetHoldIME(hold bool) { c.irq.SetHold(hold) }

// ClockSpeed returns the clock speed of the selected model in Hz.
func (c *CPU) ClockSpeed() uint32 { return c.profile.ClockSpeed }

// TimerFrequencies returns the TIMA frequencies selectable through TAC.
func (c *CPU) TimerFrequencies() [4]uint32 { return c.profile.TimerFrequencies }

// ErrTimerFrequency is returned by SetTimerFrequencies for a
// frequency the clock can't drive.
var ErrTimerFrequency = errors.New("invalid timer frequency")

// SetTimerFrequencies replaces the TIMA frequency table. Every
// frequency must be non-zero and no higher than the clock speed.
func (c *CPU) SetTimerFrequencies(frequencies [4]uint32) error {
	for _, f := range frequencies {
		if f == 0 || f > c.profile.ClockSpeed {
			return fmt.Errorf("%w: %dHz with a %dHz clock", ErrTimerFrequency, f, c.profile.ClockSpeed)
		}
	}
	c.profile.TimerFrequencies = frequencies
	return nil
}

// Fingerprint hashes the registers, mode and interrupt state of the
// CPU. Two CPUs that ran the same program from the same state
// produce the same fingerprint.
func (c *CPU) Fingerprint() uint64 {
	var ime, hold uint8
	if c.irq.IME() {
		ime = 1
	}
	if c.irq.Hold() {
		hold = 1
	}

	h := xxhash.New()
	h.Write([]byte{
		c.A, c.F, c.B, c.C, c.D, c.E, c.H, c.L,
		uint8(c.SP >> 8), uint8(c.SP),
		uint8(c.PC >> 8), uint8(c.PC),
		c.mode, ime, hold,
	})
	return h.Sum64()
}

// d8 returns the 8-bit immediate operand of the executing instruction.
func (c *CPU) d8() uint8 {
	return uint8(c.operand)
}

// d16 returns the 16-bit immediate operand of the executing instruction.
func (c *CPU) d16() uint16 {
	return c.operand
}
