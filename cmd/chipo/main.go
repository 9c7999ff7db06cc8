package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"hash/crc32"
	"image"
	"image/png"
	"os"
	"strings"
	"time"

	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"

	"github.com/chipovm/chipo/internal/chip8"
	"github.com/chipovm/chipo/internal/rom"
	"github.com/chipovm/chipo/internal/ui"
)

type cliFlags struct {
	ROMPath  string
	Scale    int
	Title    string
	ClockHz  int
	Quirks   string
	Trace    bool
	Debug    bool
	Quiet    bool
	Sound    bool
	Terminal bool

	// individual quirk overrides on top of the profile
	ResetVF     bool
	ShiftVY     bool
	JumpVX      bool
	ClipSprites bool
	IncrementI  bool
	IndexVF     bool

	// headless
	Headless bool
	Frames   int
	PNGOut   string
	Expect   string // expected framebuffer CRC32 hex (e.g., "1a2b3c4d")
}

func parseFlags() cliFlags {
	var f cliFlags
	flag.StringVar(&f.ROMPath, "rom", "", "path to ROM (.ch8)")
	flag.IntVar(&f.Scale, "scale", 10, "window scale")
	flag.StringVar(&f.Title, "title", "chipo", "window title")
	flag.IntVar(&f.ClockHz, "clock", chip8.DefaultClockHz, "CPU clock in instructions per second")
	flag.StringVar(&f.Quirks, "quirks", "chip8", "quirk profile: chip8, cosmac or modern")
	flag.BoolVar(&f.Trace, "trace", false, "CPU trace log")
	flag.BoolVar(&f.Debug, "debug", false, "debug logging")
	flag.BoolVar(&f.Quiet, "quiet", false, "errors only")
	flag.BoolVar(&f.Sound, "sound", true, "enable the buzzer")
	flag.BoolVar(&f.Terminal, "terminal", false, "render in the terminal instead of a window")

	// individual quirk overrides; when set they win over the -quirks profile
	flag.BoolVar(&f.ResetVF, "quirk-reset-vf", false, "logic ops clear VF")
	flag.BoolVar(&f.ShiftVY, "quirk-shift-vy", false, "shifts read Vy instead of Vx")
	flag.BoolVar(&f.JumpVX, "quirk-jump-vx", false, "Bnnn jumps with Vx instead of V0")
	flag.BoolVar(&f.ClipSprites, "quirk-clip", false, "clip sprites at the display edge instead of wrapping")
	flag.BoolVar(&f.IncrementI, "quirk-increment-i", false, "Fx55/Fx65 leave I incremented by x+1")
	flag.BoolVar(&f.IndexVF, "quirk-index-vf", false, "Fx1E sets VF when I overflows past 0xFFF")

	// headless options
	flag.BoolVar(&f.Headless, "headless", false, "run without a window")
	flag.IntVar(&f.Frames, "frames", 300, "frames to run in headless mode")
	flag.StringVar(&f.PNGOut, "outpng", "", "write last framebuffer to PNG at path")
	flag.StringVar(&f.Expect, "expect", "", "assert framebuffer CRC32 (hex)")
	flag.Parse()
	return f
}

// applyQuirkOverrides folds explicitly passed quirk flags over the
// profile. Only flags the user actually set win, so profiles keep their
// defaults for the rest.
func applyQuirkOverrides(q *chip8.Quirks, f cliFlags) {
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "quirk-reset-vf":
			q.ResetVF = f.ResetVF
		case "quirk-shift-vy":
			q.ShiftUsesVY = f.ShiftVY
		case "quirk-jump-vx":
			q.JumpOffsetUsesVX = f.JumpVX
		case "quirk-clip":
			q.ClipSprites = f.ClipSprites
		case "quirk-increment-i":
			q.IncrementI = f.IncrementI
		case "quirk-index-vf":
			q.IndexOverflowVF = f.IndexVF
		}
	})
}

func createLogger(debug, quiet, trace bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug || trace {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

func runHeadless(logger *log.Logger, m *chip8.Machine, frames int, pngPath, expectCRC string) error {
	if frames <= 0 {
		frames = 1
	}

	start := time.Now()
	for i := 0; i < frames; i++ {
		if err := m.RunFrame(); err != nil {
			return err
		}
	}
	dur := time.Since(start)

	fb := m.Framebuffer()
	crc := crc32.ChecksumIEEE(fb)
	fps := float64(frames) / dur.Seconds()

	logger.Info("headless run finished",
		log.Int("frames", frames),
		log.String("elapsed", dur.Truncate(time.Millisecond).String()),
		log.String("fps", fmt.Sprintf("%.2f", fps)),
		log.String("fb_crc32", fmt.Sprintf("%08x", crc)),
	)

	if pngPath != "" {
		if err := saveFramePNG(fb, m.Width(), m.Height(), pngPath); err != nil {
			return fmt.Errorf("write PNG: %w", err)
		}
		logger.Info("wrote framebuffer", log.String("file", pngPath))
	}

	if expectCRC != "" {
		want := strings.TrimPrefix(strings.ToLower(expectCRC), "0x")
		got := fmt.Sprintf("%08x", crc)
		if got != want {
			return fmt.Errorf("checksum mismatch: got %s, want %s", got, want)
		}
	}
	return nil
}

func saveFramePNG(pix []byte, w, h int, path string) error {
	img := &image.RGBA{
		Pix:    make([]byte, len(pix)),
		Stride: 4 * w,
		Rect:   image.Rect(0, 0, w, h),
	}
	copy(img.Pix, pix)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func main() {
	ctx := app.Context()
	f := parseFlags()
	logger := createLogger(f.Debug, f.Quiet, f.Trace)

	if f.ROMPath == "" {
		logger.Fatal("-rom is required")
	}

	quirks, ok := chip8.QuirkProfile(f.Quirks)
	if !ok {
		logger.Fatal("unknown quirk profile", log.String("profile", f.Quirks))
	}
	applyQuirkOverrides(&quirks, f)

	data, info, err := rom.Read(f.ROMPath)
	if err != nil {
		logger.Fatal(err.Error())
	}
	logger.Info("loaded ROM",
		log.String("name", info.Name),
		log.Int("size", info.Size),
		log.String("crc32", fmt.Sprintf("%08X", info.CRC32)),
		log.String("quirks", f.Quirks),
	)

	m := chip8.New(chip8.Config{
		Quirks:  quirks,
		ClockHz: f.ClockHz,
		Trace:   f.Trace,
		Logger:  logger,
	})
	if err := m.LoadROM(data); err != nil {
		logger.Fatal(err.Error())
	}

	switch {
	case f.Headless:
		if err := runHeadless(logger, m, f.Frames, f.PNGOut, f.Expect); err != nil {
			logger.Fatal(err.Error())
		}
	case f.Terminal:
		err := ui.NewTerminal(m).Run(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Fatal(err.Error())
		}
	default:
		uiCfg := ui.Config{Title: f.Title, Scale: f.Scale, Sound: f.Sound}
		if err := ui.NewApp(uiCfg, m).Run(); err != nil {
			logger.Fatal(err.Error())
		}
	}
}
