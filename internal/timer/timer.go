// Package timer provides an implementation of the Game Boy
// timer. The divider (types.DIV) increments at a fixed
// 16384Hz, and the timer counter (types.TIMA) increments at
// a frequency selected by the timer control (types.TAC),
// requesting an interrupt when it overflows.
//
// Both rates are derived from the clock speed of the CPU,
// so that the two stay numerically consistent.
package timer

import (
	"github.com/thelolagemann/gomeboy-core/internal/interrupts"
	"github.com/thelolagemann/gomeboy-core/internal/types"
)

// Clock is the source of the clock speed and timer
// frequency table. The CPU implements it.
type Clock interface {
	ClockSpeed() uint32
	TimerFrequencies() [4]uint32
}

// Controller is a timer controller. The timer registers live
// in memory, the Controller only holds the tick accumulators.
type Controller struct {
	divider uint32 // ticks accumulated towards the next DIV increment
	counter uint32 // ticks accumulated towards the next TIMA increment

	mem   types.Memory
	irq   *interrupts.Controller
	clock Clock
}

// NewController returns a new timer controller.
func NewController(mem types.Memory, irq *interrupts.Controller, clock Clock) *Controller {
	return &Controller{
		mem:   mem,
		irq:   irq,
		clock: clock,
	}
}

// Reset clears the tick accumulators.
func (c *Controller) Reset() {
	c.divider = 0
	c.counter = 0
}

// Advance advances the timer by the given number of clock
// ticks. The remainder of each accumulator is carried over
// to the next call, so the result doesn't depend on how the
// ticks are batched.
func (c *Controller) Advance(ticks uint32) {
	clockSpeed := c.clock.ClockSpeed()

	// increment divider register
	dividerPeriod := clockSpeed / types.DividerFrequency
	c.divider += ticks
	for c.divider >= dividerPeriod {
		c.incrementDivider()
		c.divider -= dividerPeriod
	}

	tac := c.mem.Read(types.TAC)
	if tac&types.Bit2 == 0 {
		return
	}

	// a frequency the clock can't drive leaves TIMA stopped
	frequency := c.clock.TimerFrequencies()[tac&0b11]
	if frequency == 0 || frequency > clockSpeed {
		return
	}

	period := clockSpeed / frequency
	c.counter += ticks
	for c.counter >= period {
		c.incrementCounter()
		c.counter -= period
	}
}

// Divider returns the number of ticks accumulated towards
// the next DIV increment.
func (c *Controller) Divider() uint32 {
	return c.divider
}

// Counter returns the number of ticks accumulated towards
// the next TIMA increment.
func (c *Controller) Counter() uint32 {
	return c.counter
}

// incrementDivider increments DIV, bypassing the reset that a
// write through the port performs when possible.
func (c *Controller) incrementDivider() {
	if raw, ok := c.mem.(types.RawMemory); ok {
		raw.Set(types.DIV, raw.Get(types.DIV)+1)
		return
	}
	c.mem.Write(types.DIV, c.mem.Read(types.DIV)+1)
}

// incrementCounter increments TIMA, reloading it from TMA and
// requesting the timer interrupt when it overflows.
func (c *Controller) incrementCounter() {
	tima := c.mem.Read(types.TIMA)
	if tima == 0xFF {
		c.mem.Write(types.TIMA, c.mem.Read(types.TMA))
		c.irq.Request(interrupts.TimerFlag)
		return
	}
	c.mem.Write(types.TIMA, tima+1)
}
