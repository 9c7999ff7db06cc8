package ui

import (
	"encoding/binary"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"
)

const (
	beepSampleRate = 48000
	beepToneHz     = 440
	beepAmplitude  = 0x1FFF
)

// Beeper renders the single-tone buzzer. It feeds a square wave into the
// audio device whenever the gate is open and silence otherwise, so the
// stream never stalls.
type Beeper struct {
	ctx    *oto.Context
	player *oto.Player
	gate   atomic.Bool
	phase  int
}

func NewBeeper() (*Beeper, error) {
	op := &oto.NewContextOptions{
		SampleRate:   beepSampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	b := &Beeper{ctx: ctx}
	b.player = ctx.NewPlayer(b)
	b.player.Play()
	return b, nil
}

// SetActive opens or closes the tone gate. Safe to call from the update
// loop while the audio goroutine reads.
func (b *Beeper) SetActive(on bool) {
	b.gate.Store(on)
}

// Read produces 16-bit little-endian mono samples. Only the audio device
// goroutine calls it, so phase needs no locking.
func (b *Beeper) Read(p []byte) (int, error) {
	n := len(p) / 2 * 2
	if !b.gate.Load() {
		for i := 0; i < n; i++ {
			p[i] = 0
		}
		return n, nil
	}
	halfPeriod := beepSampleRate / beepToneHz / 2
	for i := 0; i+1 < n; i += 2 {
		v := int16(beepAmplitude)
		if (b.phase/halfPeriod)%2 == 1 {
			v = -beepAmplitude
		}
		binary.LittleEndian.PutUint16(p[i:], uint16(v))
		b.phase++
		if b.phase >= beepSampleRate {
			b.phase = 0
		}
	}
	return n, nil
}

func (b *Beeper) Close() error {
	if b.player != nil {
		return b.player.Close()
	}
	return nil
}
