package gameboy

import (
	"github.com/thelolagemann/gomeboy-core/internal/types"
	"github.com/thelolagemann/gomeboy-core/pkg/log"
)

// Opt is a function that modifies a GameBoy
// instance.
type Opt func(gb *GameBoy)

// Debug enables the CPU instruction trace, written to the
// logger at debug level.
func Debug() Opt {
	return func(gb *GameBoy) {
		gb.CPU.Debug = true
	}
}

// AsModel selects the hardware model, which determines the clock
// speed and the post-boot register values.
func AsModel(m types.Model) Opt {
	return func(gb *GameBoy) {
		if m == types.Unset {
			m = types.DMG
		}
		gb.model = m
	}
}

// WithLogger sets the logger of the GameBoy and its CPU.
func WithLogger(log log.Logger) Opt {
	return func(gb *GameBoy) {
		gb.Logger = log
	}
}

// WithTimerFrequencies replaces the TIMA frequency table of the
// selected model, e.g. with types.LegacyTimerFrequencies.
func WithTimerFrequencies(frequencies [4]uint32) Opt {
	return func(gb *GameBoy) {
		gb.frequencies = &frequencies
	}
}

// LoadAt sets the address the image is loaded at. Defaults to 0x0000.
func LoadAt(addr uint16) Opt {
	return func(gb *GameBoy) {
		gb.loadAt = addr
	}
}

// StartAt sets the address execution starts at. Defaults to the
// cartridge entry point, 0x0100.
func StartAt(pc uint16) Opt {
	return func(gb *GameBoy) {
		gb.startAt = pc
	}
}
