// Package io provides a flat memory bus that implements the
// types.Memory port, with the memory mapped behaviour of the
// timer and interrupt registers.
package io

import (
	"fmt"

	"github.com/cespare/xxhash"
	"github.com/thelolagemann/gomeboy-core/internal/types"
)

// Bus is a flat 64 KiB address space. Reads and writes to the
// 0xFF00 - 0xFFFF page may be intercepted by a WriteHandler.
type Bus struct {
	data [0x10000]byte

	writeHandlers [0x100]WriteHandler
}

// WriteHandler is a function that handles writing to a memory address.
// It should return the new value to be written back to the memory address.
type WriteHandler func(byte) byte

var _ types.RawMemory = (*Bus)(nil)

// NewBus returns a new Bus with the DIV and IF registers reserved.
func NewBus() *Bus {
	b := &Bus{}

	// any write to DIV resets it
	b.ReserveAddress(types.DIV, func(byte) byte {
		return 0
	})
	// only the lower 5 bits of IF are used, the upper
	// 3 bits always read back as set
	b.ReserveAddress(types.IF, func(v byte) byte {
		return v | 0xE0
	})

	return b
}

// ReserveAddress reserves a memory address on the bus. The
// address must be in the 0xFF00 - 0xFFFF page, and may only
// be reserved once.
func (b *Bus) ReserveAddress(addr uint16, handler func(byte) byte) {
	if addr < types.IOPage {
		panic(fmt.Sprintf("address %04X is outside of the IO page", addr))
	}
	// check to make sure address hasn't already been reserved
	if b.writeHandlers[addr&0xFF] != nil {
		panic(fmt.Sprintf("address %04X has already been reserved", addr))
	}
	b.writeHandlers[addr&0xFF] = handler
}

// Read returns the value at the specified memory address.
func (b *Bus) Read(addr uint16) byte {
	return b.data[addr]
}

// Write writes value to the specified memory address, passing
// it through the address's WriteHandler if one is reserved.
func (b *Bus) Write(addr uint16, value byte) {
	if addr >= types.IOPage {
		if h := b.writeHandlers[addr&0xFF]; h != nil {
			value = h(value)
		}
	}
	b.data[addr] = value
}

// Get gets the value at the specified memory address.
func (b *Bus) Get(addr uint16) byte {
	return b.data[addr]
}

// Set sets the value at the specified memory address. This function
// ignores the write handler and just sets the value.
func (b *Bus) Set(addr uint16, value byte) {
	b.data[addr] = value
}

// Load copies data onto the bus starting at addr, wrapping
// around at the end of the address space. Write handlers
// are not invoked.
func (b *Bus) Load(addr uint16, data []byte) {
	for i, v := range data {
		b.data[addr+uint16(i)] = v
	}
}

// Checksum returns the xxhash of the entire address space.
func (b *Bus) Checksum() uint64 {
	return xxhash.Sum64(b.data[:])
}
