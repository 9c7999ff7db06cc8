package chip8

import (
	"github.com/retroenv/retrogolib/log"

	"github.com/chipovm/chipo/internal/cpu"
)

// Quirks selects the interpreter behavior variants. See the cpu package
// for the meaning of each flag.
type Quirks = cpu.Quirks

// Config contains settings that affect emulation behavior.
type Config struct {
	Quirks  Quirks
	ClockHz int  // instructions per second, 0 means DefaultClockHz
	Trace   bool // log every executed instruction
	Logger  *log.Logger
}

// DefaultClockHz is a comfortable speed for most games. The timers always
// run at 60 Hz regardless of this value.
const DefaultClockHz = 700

// DefaultQuirks matches the common modern interpreter lineage: logic ops
// clear VF and shifts read Vy, everything else behaves like the bulk of
// test ROMs expect.
func DefaultQuirks() Quirks {
	return Quirks{ResetVF: true, ShiftUsesVY: true}
}

// QuirkProfile returns the quirk set for a named interpreter profile.
// Known names are "chip8" (default), "cosmac" (original COSMAC VIP
// behavior with clipping sprites and post-incrementing block transfers)
// and "modern" (all variant behavior off).
func QuirkProfile(name string) (Quirks, bool) {
	switch name {
	case "", "chip8":
		return DefaultQuirks(), true
	case "cosmac":
		return Quirks{
			ResetVF:     true,
			ShiftUsesVY: true,
			ClipSprites: true,
			IncrementI:  true,
		}, true
	case "modern":
		return Quirks{}, true
	}
	return Quirks{}, false
}
