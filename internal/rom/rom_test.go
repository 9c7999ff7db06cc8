package rom

import (
	"errors"
	"hash/crc32"
	"os"
	"path/filepath"
	"testing"

	"github.com/chipovm/chipo/internal/memory"
)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write temp rom: %v", err)
	}
	return path
}

func TestRead(t *testing.T) {
	data := []byte{0x12, 0x00, 0xAA, 0xBB}
	path := writeTemp(t, "pong.ch8", data)

	got, info, err := Read(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != len(data) {
		t.Fatalf("size %d want %d", len(got), len(data))
	}
	if info.Name != "pong" {
		t.Fatalf("name %q want pong", info.Name)
	}
	if info.Size != 4 {
		t.Fatalf("size %d want 4", info.Size)
	}
	if want := crc32.ChecksumIEEE(data); info.CRC32 != want {
		t.Fatalf("crc %08X want %08X", info.CRC32, want)
	}
}

func TestRead_Empty(t *testing.T) {
	path := writeTemp(t, "empty.ch8", nil)
	if _, _, err := Read(path); !errors.Is(err, ErrEmpty) {
		t.Fatalf("got %v want ErrEmpty", err)
	}
}

func TestRead_TooLarge(t *testing.T) {
	path := writeTemp(t, "big.ch8", make([]byte, memory.MaxProgramSize+1))
	if _, _, err := Read(path); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("got %v want ErrTooLarge", err)
	}
}

func TestRead_Missing(t *testing.T) {
	if _, _, err := Read(filepath.Join(t.TempDir(), "nope.ch8")); err == nil {
		t.Fatalf("missing file read succeeded")
	}
}
