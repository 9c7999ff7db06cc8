package ui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/chipovm/chipo/internal/chip8"
)

// termKeyMap mirrors keyMap for raw terminal input.
var termKeyMap = map[byte]byte{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// keyHoldDuration is how long a terminal keystroke counts as held.
// Terminals report presses only, never releases.
const keyHoldDuration = 120 * time.Millisecond

// Terminal runs the machine in a raw-mode terminal, drawing two display
// rows per text row with the upper half block glyph.
type Terminal struct {
	m       *chip8.Machine
	fd      int
	old     *term.State
	lastSeq uint64
	drawn   bool
	expiry  [16]time.Time
}

func NewTerminal(m *chip8.Machine) *Terminal {
	return &Terminal{m: m, fd: int(os.Stdin.Fd())}
}

// Run drives the machine at 60 Hz until ctx is cancelled or the user
// quits with Esc. Stdin switches to raw mode for the duration.
func (t *Terminal) Run(ctx context.Context) error {
	old, err := term.MakeRaw(t.fd)
	if err != nil {
		return fmt.Errorf("raw mode: %w", err)
	}
	t.old = old
	defer t.restore()

	if err := syscall.SetNonblock(t.fd, true); err != nil {
		return fmt.Errorf("nonblocking stdin: %w", err)
	}
	defer func() { _ = syscall.SetNonblock(t.fd, false) }()

	// Hide the cursor and clear once; rendering repaints in place.
	fmt.Print("\x1b[?25l\x1b[2J")
	defer fmt.Print("\x1b[?25h\x1b[2J\x1b[H")

	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		if quit := t.pollInput(); quit {
			return nil
		}
		t.updateKeys()

		if err := t.m.RunFrame(); err != nil {
			return err
		}
		t.render()
	}
}

func (t *Terminal) restore() {
	if t.old != nil {
		_ = term.Restore(t.fd, t.old)
		t.old = nil
	}
}

// pollInput drains pending keystrokes. Returns true when the user quits.
func (t *Terminal) pollInput() bool {
	buf := make([]byte, 1)
	for {
		n, err := syscall.Read(t.fd, buf)
		if n == 0 || err == syscall.EAGAIN || err == syscall.EWOULDBLOCK {
			return false
		}
		if err != nil {
			return true
		}
		b := buf[0]
		if b == 0x1B || b == 0x03 { // Esc or Ctrl-C
			return true
		}
		if b >= 'A' && b <= 'Z' {
			b += 'a' - 'A'
		}
		if pad, ok := termKeyMap[b]; ok {
			t.expiry[pad] = time.Now().Add(keyHoldDuration)
		}
	}
}

// updateKeys presses keys seen recently and releases expired ones, which
// also gives wait-for-key its release edge.
func (t *Terminal) updateKeys() {
	now := time.Now()
	for pad := byte(0); pad < 16; pad++ {
		t.m.SetKey(pad, now.Before(t.expiry[pad]))
	}
}

func (t *Terminal) render() {
	if seq := t.m.DrawSeq(); t.drawn && seq == t.lastSeq {
		return
	}
	t.lastSeq = t.m.DrawSeq()
	t.drawn = true

	px := t.m.Pixels()
	var sb strings.Builder
	sb.WriteString("\x1b[H")
	for y := 0; y < t.m.Height(); y += 2 {
		for x := 0; x < t.m.Width(); x++ {
			top, bottom := px[y][x], px[y+1][x]
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("\r\n")
	}
	fmt.Print(sb.String())
}
