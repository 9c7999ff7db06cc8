// Command chiporun steps a ROM without any front end and dumps the final
// machine state. Useful for test ROMs that paint a result and then spin
// on a jump to themselves.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/retroenv/retrogolib/log"

	"github.com/chipovm/chipo/internal/chip8"
	"github.com/chipovm/chipo/internal/cpu"
	"github.com/chipovm/chipo/internal/rom"
)

func main() {
	romPath := flag.String("rom", "", "path to ROM (.ch8)")
	steps := flag.Int("steps", 5_000_000, "max CPU steps to run")
	quirksName := flag.String("quirks", "chip8", "quirk profile: chip8, cosmac or modern")
	trace := flag.Bool("trace", false, "print PC/opcodes")
	timeout := flag.Duration("timeout", 0, "optional wall-clock timeout (e.g. 30s, 2m); 0 disables")
	display := flag.Bool("display", true, "print the final display as ASCII art")
	flag.Parse()

	cfg := log.DefaultConfig()
	logger := log.NewWithConfig(cfg)

	if *romPath == "" {
		logger.Fatal("-rom is required")
	}
	quirks, ok := chip8.QuirkProfile(*quirksName)
	if !ok {
		logger.Fatal("unknown quirk profile", log.String("profile", *quirksName))
	}
	data, info, err := rom.Read(*romPath)
	if err != nil {
		logger.Fatal(err.Error())
	}
	logger.Info("loaded ROM",
		log.String("name", info.Name),
		log.Int("size", info.Size),
		log.String("crc32", fmt.Sprintf("%08X", info.CRC32)),
	)

	m := chip8.New(chip8.Config{Quirks: quirks})
	if err := m.LoadROM(data); err != nil {
		logger.Fatal(err.Error())
	}

	c := m.CPU()
	deadline := time.Time{}
	if *timeout > 0 {
		deadline = time.Now().Add(*timeout)
	}

	ticksPerFrame := chip8.DefaultClockHz / 60
	executed := 0
	exitReason := "step budget exhausted"

	for executed < *steps {
		if !deadline.IsZero() && executed%4096 == 0 && time.Now().After(deadline) {
			exitReason = "timeout"
			break
		}

		pc := c.PC
		if *trace && c.State() == cpu.Running {
			if op, err := c.Peek(); err == nil {
				fmt.Printf("%#04x: %04X\n", pc, op)
			}
		}
		if err := c.Step(); err != nil {
			logger.Error("execution stopped", log.Err(err))
			dumpState(c)
			os.Exit(1)
		}
		executed++
		if executed%ticksPerFrame == 0 {
			m.Tick()
		}

		// A jump back to its own address is the conventional halt.
		if c.State() == cpu.Running && c.PC == pc {
			if op, err := c.Peek(); err == nil && op == 0x1000|pc&0x0FFF {
				exitReason = "self-jump loop"
				break
			}
		}
	}

	logger.Info("run finished",
		log.Int("steps", executed),
		log.String("reason", exitReason),
	)
	dumpState(c)
	if *display {
		printDisplay(m)
	}
}

func dumpState(c *cpu.CPU) {
	fmt.Printf("PC=%#04x I=%#04x SP=%d state=%d\n", c.PC, c.I, c.StackDepth(), c.State())
	for i := 0; i < len(c.V); i++ {
		fmt.Printf("V%X=%02X ", i, c.V[i])
		if i%8 == 7 {
			fmt.Println()
		}
	}
}

func printDisplay(m *chip8.Machine) {
	px := m.Pixels()
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			if px[y][x] {
				fmt.Print("#")
			} else {
				fmt.Print(".")
			}
		}
		fmt.Println()
	}
}
