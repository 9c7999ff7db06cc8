// Package timer implements the delay and sound timers. Both count down
// toward zero at 60Hz, driven by the host clock rather than by how many
// instructions the CPU managed to execute in between ticks.
package timer

// Timers holds the two 8-bit countdown registers.
type Timers struct {
	delay byte
	sound byte
}

// New returns timers with both counters at zero.
func New() *Timers {
	return &Timers{}
}

// Tick decrements each non-zero counter by one. The host must call it at
// a fixed 60Hz cadence, independent of instruction throughput.
func (t *Timers) Tick() {
	if t.delay > 0 {
		t.delay--
	}
	if t.sound > 0 {
		t.sound--
	}
}

// Delay returns the delay timer value (Fx07).
func (t *Timers) Delay() byte { return t.delay }

// SetDelay sets the delay timer (Fx15).
func (t *Timers) SetDelay(v byte) { t.delay = v }

// SetSound sets the sound timer (Fx18).
func (t *Timers) SetSound(v byte) { t.sound = v }

// SoundActive reports whether the beep should be on. The host audio
// collaborator polls this once per frame.
func (t *Timers) SoundActive() bool { return t.sound > 0 }
