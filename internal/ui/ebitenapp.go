package ui

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/chipovm/chipo/internal/chip8"
)

// keyMap lays the 4x4 hex pad onto the left side of a QWERTY keyboard:
//
//	1 2 3 4      1 2 3 C
//	Q W E R  ->  4 5 6 D
//	A S D F      7 8 9 E
//	Z X C V      A 0 B F
var keyMap = map[ebiten.Key]byte{
	ebiten.KeyDigit1: 0x1, ebiten.KeyDigit2: 0x2, ebiten.KeyDigit3: 0x3, ebiten.KeyDigit4: 0xC,
	ebiten.KeyQ: 0x4, ebiten.KeyW: 0x5, ebiten.KeyE: 0x6, ebiten.KeyR: 0xD,
	ebiten.KeyA: 0x7, ebiten.KeyS: 0x8, ebiten.KeyD: 0x9, ebiten.KeyF: 0xE,
	ebiten.KeyZ: 0xA, ebiten.KeyX: 0x0, ebiten.KeyC: 0xB, ebiten.KeyV: 0xF,
}

type App struct {
	cfg    Config
	m      *chip8.Machine
	beeper *Beeper
	tex    *ebiten.Image
	texSeq uint64
	paused bool
	fast   bool
}

func NewApp(cfg Config, m *chip8.Machine) *App {
	cfg.Defaults()
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(m.Width()*cfg.Scale, m.Height()*cfg.Scale)
	a := &App{cfg: cfg, m: m}
	if cfg.Sound {
		if b, err := NewBeeper(); err == nil {
			a.beeper = b
		}
	}
	return a
}

func (a *App) Run() error {
	defer func() {
		if a.beeper != nil {
			a.beeper.Close()
		}
	}()
	return ebiten.RunGame(a)
}

func (a *App) Update() error {
	// Keyboard -> hex keypad
	for key, pad := range keyMap {
		a.m.SetKey(pad, ebiten.IsKeyPressed(key))
	}

	// Pause toggle (P)
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		a.paused = !a.paused
	}

	// Fast-forward (Tab): while held, run multiple frames per Ebiten update
	a.fast = ebiten.IsKeyPressed(ebiten.KeyTab)

	// Reset (F5): the hex pad claims most letter keys, so use a function key
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		if err := a.m.Reset(); err != nil {
			return err
		}
	}

	// Frame-step when paused (N)
	if a.paused && inpututil.IsKeyJustPressed(ebiten.KeyN) {
		if err := a.m.RunFrame(); err != nil {
			return err
		}
	}

	// Screenshot (F12)
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		_ = a.saveScreenshot()
	}

	// Quit (Escape)
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if !a.paused {
		frames := 1
		if a.fast {
			frames = 5
		}
		for i := 0; i < frames; i++ {
			if err := a.m.RunFrame(); err != nil {
				return err
			}
		}
	}

	if a.beeper != nil {
		a.beeper.SetActive(!a.paused && a.m.SoundActive())
	}
	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	if a.tex == nil {
		a.tex = ebiten.NewImage(a.m.Width(), a.m.Height())
		a.texSeq = 0
	}
	if seq := a.m.DrawSeq(); seq != a.texSeq || a.texSeq == 0 {
		a.tex.WritePixels(a.m.Framebuffer())
		a.texSeq = seq
	}
	screen.DrawImage(a.tex, nil)
}

func (a *App) Layout(outW, outH int) (int, int) {
	return a.m.Width(), a.m.Height()
}

func (a *App) saveScreenshot() error {
	fb := a.m.Framebuffer()
	img := &image.RGBA{
		Pix:    make([]byte, len(fb)),
		Stride: 4 * a.m.Width(),
		Rect:   image.Rect(0, 0, a.m.Width(), a.m.Height()),
	}
	copy(img.Pix, fb)
	ts := time.Now().Format("20060102_150405")
	name := fmt.Sprintf("screenshot_%s.png", ts)
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
