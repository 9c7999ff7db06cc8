package memory

import (
	"errors"
	"testing"
)

func TestBus_ReadWriteByte(t *testing.T) {
	b := New()
	if err := b.WriteByte(0x300, 0x42); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := b.ReadByte(0x300)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != 0x42 {
		t.Fatalf("read got %02x want 42", got)
	}
}

func TestBus_OutOfBounds(t *testing.T) {
	b := New()
	if _, err := b.ReadByte(0x1000); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("read 0x1000 got %v want ErrOutOfBounds", err)
	}
	if err := b.WriteByte(0x1000, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("write 0x1000 got %v want ErrOutOfBounds", err)
	}
	if _, err := b.ReadWord(0xFFF); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("word read 0xFFF got %v want ErrOutOfBounds", err)
	}
}

func TestBus_ReservedArea(t *testing.T) {
	b := New()
	if err := b.WriteByte(0x1FF, 0x01); !errors.Is(err, ErrReservedWrite) {
		t.Fatalf("write 0x1FF got %v want ErrReservedWrite", err)
	}
	// Reads of the reserved area are fine: Fx29 points into the font.
	got, err := b.ReadByte(FontStart)
	if err != nil {
		t.Fatalf("font read: %v", err)
	}
	if got != 0xF0 { // first row of digit 0
		t.Fatalf("font[0] got %02x want F0", got)
	}
}

func TestBus_ReadWordBigEndian(t *testing.T) {
	b := New()
	if err := b.LoadProgram([]byte{0x12, 0x34}); err != nil {
		t.Fatalf("load: %v", err)
	}
	w, err := b.ReadWord(ProgramStart)
	if err != nil {
		t.Fatalf("read word: %v", err)
	}
	if w != 0x1234 {
		t.Fatalf("word got %04x want 1234", w)
	}
}

func TestBus_LoadProgram(t *testing.T) {
	b := New()
	rom := make([]byte, MaxProgramSize)
	rom[0] = 0xAA
	rom[len(rom)-1] = 0xBB
	if err := b.LoadProgram(rom); err != nil {
		t.Fatalf("max-size load: %v", err)
	}
	if got, _ := b.ReadByte(ProgramStart); got != 0xAA {
		t.Fatalf("first ROM byte got %02x want AA", got)
	}
	if got, _ := b.ReadByte(Size - 1); got != 0xBB {
		t.Fatalf("last ROM byte got %02x want BB", got)
	}

	if err := b.LoadProgram(make([]byte, MaxProgramSize+1)); !errors.Is(err, ErrProgramTooLarge) {
		t.Fatalf("oversized load got %v want ErrProgramTooLarge", err)
	}
}

func TestFontAddress(t *testing.T) {
	if got := FontAddress(0x0); got != FontStart {
		t.Fatalf("FontAddress(0) got %#04x want %#04x", got, uint16(FontStart))
	}
	if got := FontAddress(0xF); got != FontStart+15*5 {
		t.Fatalf("FontAddress(F) got %#04x want %#04x", got, uint16(FontStart+15*5))
	}
	// Only the low nibble selects the digit.
	if got := FontAddress(0x1A); got != FontAddress(0x0A) {
		t.Fatalf("FontAddress should mask to low nibble")
	}
}
