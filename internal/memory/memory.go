// Package memory implements the CHIP-8 memory bus: a flat 4KB byte store
// with bounds checking and the reserved interpreter area below 0x200.
package memory

import (
	"errors"
	"fmt"
)

const (
	// Size is the total addressable memory in bytes.
	Size = 0x1000
	// ProgramStart is the address where program code is loaded and
	// execution begins.
	ProgramStart = 0x200
	// FontStart is the address of the built-in hex digit sprites.
	FontStart = 0x050
	// MaxProgramSize is the largest ROM that fits into program space.
	MaxProgramSize = Size - ProgramStart
)

var (
	ErrOutOfBounds     = errors.New("memory access out of bounds")
	ErrReservedWrite   = errors.New("write into reserved interpreter area")
	ErrProgramTooLarge = errors.New("program too large")
)

// Font sprites for the hex digits 0-F, 5 bytes per digit.
var font = [80]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Bus is the flat CHIP-8 memory. The zero value is not usable; call New.
type Bus struct {
	mem [Size]byte
}

// New returns a memory bus with the font sprites installed at FontStart.
func New() *Bus {
	b := &Bus{}
	copy(b.mem[FontStart:], font[:])
	return b
}

// ReadByte returns the byte at addr.
func (b *Bus) ReadByte(addr uint16) (byte, error) {
	if addr >= Size {
		return 0, fmt.Errorf("read %#04x: %w", addr, ErrOutOfBounds)
	}
	return b.mem[addr], nil
}

// WriteByte stores value at addr. Writes below ProgramStart are rejected:
// the interpreter area holds only the font and is installed once at New.
func (b *Bus) WriteByte(addr uint16, value byte) error {
	if addr >= Size {
		return fmt.Errorf("write %#04x: %w", addr, ErrOutOfBounds)
	}
	if addr < ProgramStart {
		return fmt.Errorf("write %#04x: %w", addr, ErrReservedWrite)
	}
	b.mem[addr] = value
	return nil
}

// ReadWord returns the big-endian 16-bit value at addr.
func (b *Bus) ReadWord(addr uint16) (uint16, error) {
	if addr >= Size-1 {
		return 0, fmt.Errorf("read word %#04x: %w", addr, ErrOutOfBounds)
	}
	return uint16(b.mem[addr])<<8 | uint16(b.mem[addr+1]), nil
}

// LoadProgram copies a ROM into memory starting at ProgramStart.
func (b *Bus) LoadProgram(rom []byte) error {
	if len(rom) > MaxProgramSize {
		return fmt.Errorf("%d bytes exceed %d: %w", len(rom), MaxProgramSize, ErrProgramTooLarge)
	}
	copy(b.mem[ProgramStart:], rom)
	return nil
}

// FontAddress returns the address of the sprite for hex digit d (low nibble).
func FontAddress(d byte) uint16 {
	return FontStart + uint16(d&0x0F)*5
}
