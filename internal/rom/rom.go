// Package rom loads programs from disk and derives basic metadata.
package rom

import (
	"errors"
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"
	"strings"

	"github.com/chipovm/chipo/internal/memory"
)

var (
	ErrEmpty    = errors.New("rom file is empty")
	ErrTooLarge = errors.New("rom does not fit into program memory")
)

// Info describes a loaded ROM for banners and logs.
type Info struct {
	Name  string
	Size  int
	CRC32 uint32
}

// Read loads a ROM file and validates that it fits into program memory.
func Read(path string) ([]byte, Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Info{}, fmt.Errorf("reading rom: %w", err)
	}
	if len(data) == 0 {
		return nil, Info{}, fmt.Errorf("%s: %w", path, ErrEmpty)
	}
	if len(data) > memory.MaxProgramSize {
		return nil, Info{}, fmt.Errorf("%s: %d bytes: %w", path, len(data), ErrTooLarge)
	}
	info := Info{
		Name:  baseName(path),
		Size:  len(data),
		CRC32: crc32.ChecksumIEEE(data),
	}
	return data, info, nil
}

func baseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
