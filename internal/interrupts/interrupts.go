// Package interrupts provides the interrupt controller of the
// Game Boy CPU. Pending (types.IF) and enabled (types.IE)
// interrupts are read through the memory port, so that any
// component with access to it may request an interrupt.
package interrupts

import (
	"github.com/thelolagemann/gomeboy-core/internal/types"
)

const (
	// VBlankFlag is the VBlank interrupt flag (bit 0),
	// which is requested every time the PPU enters
	// VBlank mode.
	VBlankFlag = types.Bit0
	// LCDFlag is the LCD interrupt flag (bit 1), which
	// is requested by the LCD STAT register when certain
	// conditions are met.
	LCDFlag = types.Bit1
	// TimerFlag is the Timer interrupt flag (bit 2),
	// which is requested when the timer overflows,
	// (types.TIMA > 0xFF).
	TimerFlag = types.Bit2
	// SerialFlag is the Serial interrupt flag (bit 3),
	// which is requested when a serial transfer is
	// completed.
	SerialFlag = types.Bit3
	// JoypadFlag is the Joypad interrupt Flag (bit 4),
	// which is requested when any of the joypad input
	// lines go from high to low.
	JoypadFlag = types.Bit4

	// mask covers the 5 interrupt sources.
	mask = 0x1F
)

// DispatchCycles is the number of machine cycles taken to
// dispatch an interrupt to its service routine.
const DispatchCycles = 5

// Vector returns the service routine address of the
// given interrupt flag.
func Vector(flag uint8) uint16 {
	for i := uint16(0); i < 5; i++ {
		if flag == 1<<i {
			return 0x0040 + i*8
		}
	}
	return 0
}

// Controller is the interrupt controller.
//
// When an interrupt is requested, the corresponding bit
// in the IF register is set. When an interrupt is
// enabled, the corresponding bit in the IE register
// is set. When an interrupt is requested and enabled,
// and the IME is set, the CPU will jump to the interrupt
// vector, and the corresponding bit in the IF register
// will be cleared.
//
// The IME is set by the EI and RETI instructions, and
// cleared by the DI instruction and by dispatching an
// interrupt. EI only takes effect after the instruction
// that follows it, which is modelled by the hold flag.
type Controller struct {
	ime  bool
	hold bool

	mem types.Memory
}

// New returns a new Controller reading and writing the
// interrupt registers through mem.
func New(mem types.Memory) *Controller {
	return &Controller{mem: mem}
}

// Reset clears the IME and any pending enable.
func (c *Controller) Reset() {
	c.ime = false
	c.hold = false
}

// Request requests the specified interrupt, by setting
// the corresponding bit in the IF register.
func (c *Controller) Request(flag uint8) {
	c.mem.Write(types.IF, c.mem.Read(types.IF)|flag&mask)
}

// Pending returns the interrupts that are both requested
// and enabled.
func (c *Controller) Pending() uint8 {
	return c.mem.Read(types.IF) & c.mem.Read(types.IE) & mask
}

// HasInterrupts returns true if any interrupt is both
// requested and enabled, regardless of the IME.
func (c *Controller) HasInterrupts() bool {
	return c.Pending() != 0
}

// IME returns the interrupt master enable flag.
func (c *Controller) IME() bool {
	return c.ime
}

// Enable sets the IME immediately, as RETI does.
func (c *Controller) Enable() {
	c.ime = true
	c.hold = false
}

// EnableDelayed schedules the IME to be set once the
// next instruction has completed, as EI does. It has no
// effect when the IME is already set.
func (c *Controller) EnableDelayed() {
	if c.ime {
		return
	}
	c.hold = true
}

// Disable clears the IME immediately, cancelling any
// delayed enable, as DI does.
func (c *Controller) Disable() {
	c.ime = false
	c.hold = false
}

// Hold returns true if an enable is waiting on the next
// instruction to complete.
func (c *Controller) Hold() bool {
	return c.hold
}

// SetHold sets or clears the pending enable.
func (c *Controller) SetHold(hold bool) {
	c.hold = hold
}

// ApplyHold consumes a pending enable, setting the IME. It
// is called by the CPU once the instruction following EI
// has completed.
func (c *Controller) ApplyHold() {
	if c.hold {
		c.ime = true
		c.hold = false
	}
}

// CheckAndDispatch selects the highest priority interrupt
// that is requested and enabled, clears its request and
// the IME, and returns its service routine address. If the
// IME is clear, or no interrupt is pending, ok is false and
// nothing is modified.
//
// Interrupts are serviced in the order of priority:
//
//   - VBlank
//   - LCD
//   - Timer
//   - Serial
//   - Joypad
func (c *Controller) CheckAndDispatch() (vector uint16, ok bool) {
	if !c.ime {
		return 0, false
	}

	pending := c.Pending()
	if pending == 0 {
		return 0, false
	}

	for i := uint8(0); i < 5; i++ {
		// get the flag for the current interrupt
		flag := uint8(1 << i)

		if pending&flag == flag {
			// clear the request, the IME and any pending enable
			c.mem.Write(types.IF, c.mem.Read(types.IF)&^flag)
			c.ime = false
			c.hold = false

			return Vector(flag), true
		}
	}

	return 0, false
}
