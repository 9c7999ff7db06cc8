// Package chip8 wires the interpreter components into a runnable machine
// with a fixed 60 Hz frame cadence.
package chip8

import (
	"fmt"
	"os"

	"github.com/retroenv/retrogolib/log"

	"github.com/chipovm/chipo/internal/cpu"
	"github.com/chipovm/chipo/internal/display"
	"github.com/chipovm/chipo/internal/keypad"
	"github.com/chipovm/chipo/internal/memory"
	"github.com/chipovm/chipo/internal/timer"
)

// Machine bundles memory, display, keypad, timers and the CPU core and
// steps them at the configured clock.
type Machine struct {
	cfg  Config
	w, h int
	fb   []byte // RGBA Width*Height*4
	// core components
	bus    *memory.Bus
	cpu    *cpu.CPU
	disp   *display.Surface
	keys   *keypad.State
	timers *timer.Timers
	rom    []byte
}

func New(cfg Config) *Machine {
	if cfg.ClockHz <= 0 {
		cfg.ClockHz = DefaultClockHz
	}
	m := &Machine{
		cfg: cfg, w: display.Width, h: display.Height,
		fb: make([]byte, display.Width*display.Height*4),
	}
	m.wire()
	return m
}

func (m *Machine) wire() {
	m.bus = memory.New()
	m.disp = display.New(m.cfg.Quirks.ClipSprites)
	m.keys = keypad.New()
	m.timers = timer.New()
	m.cpu = cpu.New(m.bus, m.disp, m.keys, m.timers, m.cfg.Quirks)
}

// LoadROM copies a program into memory at the standard load address.
func (m *Machine) LoadROM(rom []byte) error {
	if err := m.bus.LoadProgram(rom); err != nil {
		return fmt.Errorf("loading rom: %w", err)
	}
	m.rom = rom
	return nil
}

// LoadROMFromFile reads and loads a program from disk.
func (m *Machine) LoadROMFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading rom file: %w", err)
	}
	return m.LoadROM(data)
}

// Reset rebuilds all components and reloads the current ROM, returning
// the machine to its power-on state.
func (m *Machine) Reset() error {
	m.wire()
	if m.rom == nil {
		return nil
	}
	return m.LoadROM(m.rom)
}

// InstructionsPerFrame is how many CPU steps RunFrame executes before
// ticking the timers once.
func (m *Machine) InstructionsPerFrame() int {
	n := m.cfg.ClockHz / 60
	if n < 1 {
		n = 1
	}
	return n
}

// RunFrame executes one frame worth of instructions and then advances
// the 60 Hz timers. Execution errors stop the frame and are returned
// with the faulting position preserved in the CPU state.
func (m *Machine) RunFrame() error {
	for i := 0; i < m.InstructionsPerFrame(); i++ {
		if m.cfg.Trace && m.cfg.Logger != nil {
			m.traceStep()
		}
		if err := m.cpu.Step(); err != nil {
			return err
		}
	}
	m.timers.Tick()
	return nil
}

func (m *Machine) traceStep() {
	if m.cpu.State() != cpu.Running {
		return
	}
	op, err := m.bus.ReadWord(m.cpu.PC)
	if err != nil {
		return
	}
	m.cfg.Logger.Debug("step",
		log.Hex("pc", m.cpu.PC),
		log.Hex("opcode", op),
		log.Hex("i", m.cpu.I),
	)
}

// Tick advances the 60 Hz timers by one frame. RunFrame does this on
// its own; runners that step the CPU directly call it themselves.
func (m *Machine) Tick() {
	m.timers.Tick()
}

// SetKey updates the state of one hex key (0x0..0xF).
func (m *Machine) SetKey(key byte, pressed bool) {
	m.keys.SetKey(key, pressed)
}

// SoundActive reports whether the buzzer should currently sound.
func (m *Machine) SoundActive() bool {
	return m.timers.SoundActive()
}

// DrawSeq returns a counter that changes whenever the display content
// changed, letting front ends skip redundant texture uploads.
func (m *Machine) DrawSeq() uint64 {
	return m.disp.Seq()
}

// Pixels exposes the monochrome framebuffer.
func (m *Machine) Pixels() [display.Height][display.Width]bool {
	return m.disp.Pixels()
}

// CPU exposes the core for inspection by runners and tests.
func (m *Machine) CPU() *cpu.CPU { return m.cpu }

// Framebuffer renders the display into an RGBA buffer (white on black).
// The returned slice is reused across calls.
func (m *Machine) Framebuffer() []byte {
	i := 0
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			var v byte
			if m.disp.Pixel(x, y) {
				v = 0xFF
			}
			m.fb[i] = v
			m.fb[i+1] = v
			m.fb[i+2] = v
			m.fb[i+3] = 0xFF
			i += 4
		}
	}
	return m.fb
}

// Width returns the display width in pixels.
func (m *Machine) Width() int { return m.w }

// Height returns the display height in pixels.
func (m *Machine) Height() int { return m.h }
