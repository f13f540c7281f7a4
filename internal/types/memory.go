package types

// Memory is the byte addressable port through which the CPU,
// timer and interrupt controller reach the rest of the system.
// Any memory mapped side effects (e.g. writing DIV resets it)
// are the responsibility of the implementation.
//
// Reads and writes always succeed; an implementation should
// return a fallback value for addresses it doesn't back.
type Memory interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// RawMemory is a Memory that can also be accessed without
// triggering the side effects of Write. The timer uses it to
// advance DIV, which would otherwise be reset by the write.
type RawMemory interface {
	Memory
	Get(address uint16) uint8
	Set(address uint16, value uint8)
}
