package types

import (
	"strings"
)

type Model int // The Model used in emulation.

const (
	Unset Model = iota // Unset - Model hasn't been set - behaves as DMG
	DMG                // DMG - Standard Game Boy
	MGB                // MGB - Pocket Game Boy
	SGB                // SGB - Super Game Boy
	SGB2               // SGB2 - Super Game Boy 2
	CGB                // CGB - Game Boy Colour
)

var ModelNames = map[Model]string{
	DMG:   "DMG",
	MGB:   "MGB",
	SGB:   "SGB",
	SGB2:  "SGB2",
	CGB:   "CGB",
	Unset: "Unset",
}

// StringToModel converts a string to a Model.
func StringToModel(s string) Model {
	for m, n := range ModelNames {
		if n == strings.ToUpper(s) {
			return m
		}
	}

	return Unset
}

func (m Model) String() string {
	return ModelNames[m]
}

const (
	// ClockSpeed is the clock speed of the DMG, MGB and
	// CGB (in single speed mode), in Hz.
	ClockSpeed = 4194304
	// SGBClockSpeed is the clock speed of the SGB and SGB2,
	// which derive their clock from the SNES.
	SGBClockSpeed = 4295454
	// DividerFrequency is the rate at which DIV increments.
	DividerFrequency = 16384
)

// TimerFrequencies is the frequency, in Hz, that TIMA increments at
// for each value of TAC bits 0-1.
var TimerFrequencies = [4]uint32{4096, 16384, 65536, 262144}

// LegacyTimerFrequencies is the alternate frequency table, which
// divides the clock by 16385 rather than 16384 for index 1.
var LegacyTimerFrequencies = [4]uint32{4096, 16385, 65536, 262144}

// Profile describes the behaviour of a Model that the CPU
// and timer need to agree on.
type Profile struct {
	ClockSpeed       uint32
	TimerFrequencies [4]uint32
}

// Profile returns the Profile of the Model.
func (m Model) Profile() Profile {
	switch m {
	case SGB, SGB2:
		return Profile{ClockSpeed: SGBClockSpeed, TimerFrequencies: TimerFrequencies}
	default:
		return Profile{ClockSpeed: ClockSpeed, TimerFrequencies: TimerFrequencies}
	}
}

// ModelRegisters - model specific starting CPU registers,
// in the order A, F, B, C, D, E, H, L.
var ModelRegisters = map[Model][]uint8{
	Unset: {0x01, 0xB0, 0x00, 0x13, 0x00, 0xD8, 0x01, 0x4D}, // default to DMG registers
	DMG:   {0x01, 0xB0, 0x00, 0x13, 0x00, 0xD8, 0x01, 0x4D},
	MGB:   {0xFF, 0xB0, 0x00, 0x13, 0x00, 0xD8, 0x01, 0x4D},
	SGB:   {0x01, 0x00, 0x00, 0x14, 0x00, 0x00, 0xC0, 0x60},
	SGB2:  {0xFF, 0x00, 0x00, 0x14, 0x00, 0x00, 0xC0, 0x60},
	CGB:   {0x11, 0x80, 0x00, 0x00, 0xFF, 0x56, 0x00, 0x0D},
}

// ModelIO - model specific starting IO registers.
var ModelIO = map[Model]map[HardwareAddress]uint8{
	Unset: {DIV: 0xAB},
	DMG:   {DIV: 0xAB},
	MGB:   {DIV: 0xAB},
	SGB:   {DIV: 0xD8},
	SGB2:  {DIV: 0xD8},
	CGB:   {DIV: 0x26},
}

// CommonIO - common starting IO registers.
var CommonIO = map[HardwareAddress]uint8{
	TIMA: 0x00,
	TMA:  0x00,
	TAC:  0xF8,
	IF:   0xE1,
	IE:   0x00,
}
