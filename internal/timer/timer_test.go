package timer

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/gomeboy-core/internal/interrupts"
	"github.com/thelolagemann/gomeboy-core/internal/io"
	"github.com/thelolagemann/gomeboy-core/internal/types"
)

type fixedClock struct {
	speed       uint32
	frequencies [4]uint32
}

func (c fixedClock) ClockSpeed() uint32          { return c.speed }
func (c fixedClock) TimerFrequencies() [4]uint32 { return c.frequencies }

var dmgClock = fixedClock{types.ClockSpeed, types.TimerFrequencies}

func newTimer(clock Clock) (*Controller, *io.Bus) {
	b := io.NewBus()
	return NewController(b, interrupts.New(b), clock), b
}

func TestController_DividerBatching(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for run := 0; run < 20; run++ {
		c, b := newTimer(dmgClock)

		total := uint32(0)
		for i := 0; i < 500; i++ {
			ticks := uint32(r.Intn(600))
			c.Advance(ticks)
			total += ticks

			require.Equal(t, uint8(total/256), b.Read(types.DIV), "after %d ticks", total)
		}
		assert.Equal(t, total%256, c.Divider())
	}
}

func TestController_DividerRemainder(t *testing.T) {
	c, b := newTimer(dmgClock)
	c.Advance(255)
	assert.Equal(t, uint8(0), b.Read(types.DIV))
	c.Advance(1)
	assert.Equal(t, uint8(1), b.Read(types.DIV))
	assert.Equal(t, uint32(0), c.Divider())
}

func TestController_DividerWraps(t *testing.T) {
	c, b := newTimer(dmgClock)
	b.Set(types.DIV, 0xFF)
	c.Advance(256)
	assert.Equal(t, uint8(0x00), b.Read(types.DIV))
}

func TestController_Overflow(t *testing.T) {
	for _, tma := range []uint8{0x00, 0x42} {
		c, b := newTimer(dmgClock)
		b.Write(types.TAC, 0x05) // enabled, 16384Hz
		b.Write(types.TIMA, 0xFE)
		b.Write(types.TMA, tma)

		c.Advance(256)
		assert.Equal(t, uint8(0xFF), b.Read(types.TIMA))
		assert.False(t, b.Read(types.IF)&interrupts.TimerFlag != 0)

		c.Advance(256)
		assert.Equal(t, tma, b.Read(types.TIMA), "TIMA must reload from TMA")
		assert.True(t, b.Read(types.IF)&interrupts.TimerFlag != 0, "overflow must request the timer interrupt")
	}
}

func TestController_Disabled(t *testing.T) {
	c, b := newTimer(dmgClock)
	b.Write(types.TAC, 0x01)
	b.Write(types.TIMA, 0x10)

	c.Advance(4096)
	assert.Equal(t, uint8(0x10), b.Read(types.TIMA))
	assert.Equal(t, uint32(0), c.Counter())
	assert.Equal(t, uint8(16), b.Read(types.DIV), "the divider runs regardless of TAC")
}

func TestController_Frequencies(t *testing.T) {
	periods := [4]uint32{1024, 256, 64, 16}
	for i, period := range periods {
		c, b := newTimer(dmgClock)
		b.Write(types.TAC, types.Bit2|uint8(i))

		c.Advance(period - 1)
		assert.Equal(t, uint8(0), b.Read(types.TIMA), "index %d", i)
		c.Advance(1)
		assert.Equal(t, uint8(1), b.Read(types.TIMA), "index %d", i)

		c.Advance(period * 10)
		assert.Equal(t, uint8(11), b.Read(types.TIMA), "index %d", i)
	}
}

func TestController_LegacyFrequencies(t *testing.T) {
	c, b := newTimer(fixedClock{types.ClockSpeed, types.LegacyTimerFrequencies})
	b.Write(types.TAC, 0x05)

	// 4194304 / 16385 = 255
	c.Advance(255)
	assert.Equal(t, uint8(1), b.Read(types.TIMA))
}

func TestController_UndrivableFrequency(t *testing.T) {
	for _, clock := range []fixedClock{
		{types.ClockSpeed, [4]uint32{0, 262144, 65536, 16384}},
		{types.ClockSpeed, [4]uint32{types.ClockSpeed * 2, 262144, 65536, 16384}},
	} {
		c, b := newTimer(clock)
		b.Write(types.TAC, 0x04)

		c.Advance(4096)
		assert.Equal(t, uint8(0), b.Read(types.TIMA), "TIMA stays stopped")
		assert.Equal(t, uint8(16), b.Read(types.DIV), "the divider keeps running")
	}
}

func TestController_Reset(t *testing.T) {
	c, b := newTimer(dmgClock)
	b.Write(types.TAC, 0x04)
	c.Advance(1000)
	c.Reset()
	assert.Equal(t, uint32(0), c.Divider())
	assert.Equal(t, uint32(0), c.Counter())
}

// plainMemory has no raw access, so DIV must be advanced by a write.
type plainMemory map[uint16]uint8

func (m plainMemory) Read(addr uint16) uint8       { return m[addr] }
func (m plainMemory) Write(addr uint16, val uint8) { m[addr] = val }

func TestController_PlainMemory(t *testing.T) {
	m := plainMemory{}
	c := NewController(m, interrupts.New(m), dmgClock)
	m[types.TAC] = 0x05
	m[types.TIMA] = 0xFF
	m[types.TMA] = 0x80

	c.Advance(512)
	assert.Equal(t, uint8(2), m[types.DIV])
	assert.Equal(t, uint8(0x81), m[types.TIMA])
	assert.Equal(t, uint8(interrupts.TimerFlag), m[types.IF])
}
