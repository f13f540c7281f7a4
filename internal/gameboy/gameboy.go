// Package gameboy wires the CPU, interrupt controller and timer of
// a Game Boy to a flat memory bus, and steps them together.
package gameboy

import (
	"errors"
	"fmt"

	"github.com/thelolagemann/gomeboy-core/internal/cpu"
	"github.com/thelolagemann/gomeboy-core/internal/interrupts"
	"github.com/thelolagemann/gomeboy-core/internal/io"
	"github.com/thelolagemann/gomeboy-core/internal/timer"
	"github.com/thelolagemann/gomeboy-core/internal/types"
	"github.com/thelolagemann/gomeboy-core/pkg/log"
)

// ErrStepLimit is returned by RunUntilHalt when the CPU is still
// running after the step limit.
var ErrStepLimit = errors.New("step limit reached")

// GameBoy represents a Game Boy CPU core attached to memory.
type GameBoy struct {
	CPU        *cpu.CPU
	Bus        *io.Bus
	Interrupts *interrupts.Controller
	Timer      *timer.Controller

	log.Logger

	model       types.Model
	frequencies *[4]uint32
	loadAt      uint16
	startAt     uint16

	cycles uint64 // machine cycles since New
}

// New returns a new GameBoy with image loaded into memory, in the
// post-boot state of the selected model.
func New(image []byte, opts ...Opt) (*GameBoy, error) {
	bus := io.NewBus()
	irq := interrupts.New(bus)
	c := cpu.NewCPU(bus, irq)

	g := &GameBoy{
		CPU:        c,
		Bus:        bus,
		Interrupts: irq,
		Timer:      timer.NewController(bus, irq, c),
		Logger:     log.NewNullLogger(),
		model:      types.DMG,
		startAt:    0x0100,
	}

	for _, opt := range opts {
		opt(g)
	}

	if int(g.loadAt)+len(image) > 0x10000 {
		return nil, fmt.Errorf("gameboy: image of %d bytes does not fit at %04X", len(image), g.loadAt)
	}

	c.Init(g.model)
	if g.frequencies != nil {
		if err := c.SetTimerFrequencies(*g.frequencies); err != nil {
			return nil, fmt.Errorf("gameboy: %w", err)
		}
	}
	c.Log = g.Logger
	c.PC = g.startAt

	// initialize IO registers
	for addr, v := range types.CommonIO {
		bus.Set(addr, v)
	}
	for addr, v := range types.ModelIO[g.model] {
		bus.Set(addr, v)
	}
	bus.Load(g.loadAt, image)

	g.Debugf("loaded %d bytes at %04X, model %s, clock %dHz", len(image), g.loadAt, g.model, c.ClockSpeed())

	return g, nil
}

// Model returns the model the GameBoy was initialized as.
func (g *GameBoy) Model() types.Model {
	return g.model
}

// Cycles returns the number of machine cycles executed since New.
func (g *GameBoy) Cycles() uint64 {
	return g.cycles
}

// Step runs a single step of the CPU, and advances the timer by
// the clock ticks it took. It returns the machine cycles taken.
func (g *GameBoy) Step() (uint8, error) {
	cycles, err := g.CPU.Step()
	if err != nil {
		return cycles, fmt.Errorf("gameboy: step at cycle %d: %w", g.cycles, err)
	}

	g.Timer.Advance(uint32(cycles) * types.TicksPerCycle)
	g.cycles += uint64(cycles)

	return cycles, nil
}

// Run runs n steps, stopping at the first error.
func (g *GameBoy) Run(n int) error {
	for i := 0; i < n; i++ {
		if _, err := g.Step(); err != nil {
			return err
		}
	}
	return nil
}

// RunUntilHalt steps until the CPU enters HALT or STOP, returning
// the number of steps taken. ErrStepLimit is returned if the CPU is
// still running after limit steps.
func (g *GameBoy) RunUntilHalt(limit int) (int, error) {
	for i := 0; i < limit; i++ {
		if _, err := g.Step(); err != nil {
			return i, err
		}
		if g.CPU.Halted() || g.CPU.Stopped() {
			return i + 1, nil
		}
	}
	return limit, ErrStepLimit
}
