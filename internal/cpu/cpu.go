// Package cpu implements the CHIP-8 register file and the
// fetch-decode-execute core.
package cpu

import (
	"math/rand"

	"github.com/chipovm/chipo/internal/display"
	"github.com/chipovm/chipo/internal/keypad"
	"github.com/chipovm/chipo/internal/memory"
	"github.com/chipovm/chipo/internal/timer"
)

// stackDepth is the call stack capacity; the 17th call is fatal.
const stackDepth = 16

// State is the execution state of the core. The only suspension is the
// Fx0A key wait; timers and host input keep running while suspended.
type State int

const (
	Running State = iota
	WaitingForKey
)

// CPU is the opcode dispatcher plus the register file it mutates.
type CPU struct {
	// V are the general-purpose registers; VF doubles as the flag
	// register for carry, borrow, shifts and sprite collision.
	V  [16]byte
	I  uint16
	PC uint16

	stack [stackDepth]uint16
	sp    int

	state   State
	waitReg byte // target register of a pending Fx0A
	waitKey byte // key observed pressed during the wait
	held    bool // waitKey registered, completion on its release

	quirks Quirks

	bus    *memory.Bus
	disp   *display.Surface
	keys   *keypad.State
	timers *timer.Timers

	// randByte is swappable so tests can pin Cxkk.
	randByte func() byte
}

// New wires a core to its collaborators. PC starts at the program base.
func New(bus *memory.Bus, disp *display.Surface, keys *keypad.State, timers *timer.Timers, quirks Quirks) *CPU {
	return &CPU{
		PC:       memory.ProgramStart,
		quirks:   quirks,
		bus:      bus,
		disp:     disp,
		keys:     keys,
		timers:   timers,
		randByte: func() byte { return byte(rand.Intn(256)) },
	}
}

// State returns the current execution state.
func (c *CPU) State() State { return c.state }

// StackDepth returns the number of return addresses currently pushed.
func (c *CPU) StackDepth() int { return c.sp }

// Peek reads the opcode word at PC without executing it.
func (c *CPU) Peek() (uint16, error) {
	return c.bus.ReadWord(c.PC)
}

func (c *CPU) push(addr uint16) error {
	if c.sp == stackDepth {
		return ErrStackOverflow
	}
	c.stack[c.sp] = addr
	c.sp++
	return nil
}

func (c *CPU) pop() (uint16, error) {
	if c.sp == 0 {
		return 0, ErrStackUnderflow
	}
	c.sp--
	return c.stack[c.sp], nil
}

// Step runs one cycle: fetch the word at PC, advance PC by 2 and execute.
// Control transfer opcodes overwrite PC during execution. While waiting
// for a key no instruction is dispatched; the wait completes on the
// release of the first key observed pressed, storing its index.
func (c *CPU) Step() error {
	if c.state == WaitingForKey {
		c.pollWaitKey()
		return nil
	}

	addr := c.PC
	op, err := c.bus.ReadWord(addr)
	if err != nil {
		return err
	}
	c.PC += 2
	if err := c.execute(op); err != nil {
		return &OpcodeError{Opcode: op, Addr: addr, Err: err}
	}
	return nil
}

func (c *CPU) pollWaitKey() {
	if !c.held {
		if key, ok := c.keys.FirstPressed(); ok {
			c.waitKey = key
			c.held = true
		}
		return
	}
	if !c.keys.IsPressed(c.waitKey) {
		c.V[c.waitReg] = c.waitKey
		c.held = false
		c.state = Running
	}
}

func (c *CPU) execute(op uint16) error {
	x := byte(op >> 8 & 0x0F)
	y := byte(op >> 4 & 0x0F)
	n := byte(op & 0x000F)
	kk := byte(op)
	nnn := op & 0x0FFF

	switch op >> 12 {
	case 0x0:
		switch op {
		case 0x00E0: // CLS
			c.disp.Clear()
		case 0x00EE: // RET
			addr, err := c.pop()
			if err != nil {
				return err
			}
			c.PC = addr
		default:
			// 0nnn machine-code calls targeted the host CPU of the
			// original hardware and have no meaning here.
			return ErrUnknownOpcode
		}

	case 0x1: // JP nnn
		c.PC = nnn

	case 0x2: // CALL nnn
		if err := c.push(c.PC); err != nil {
			return err
		}
		c.PC = nnn

	case 0x3: // SE Vx, kk
		if c.V[x] == kk {
			c.PC += 2
		}

	case 0x4: // SNE Vx, kk
		if c.V[x] != kk {
			c.PC += 2
		}

	case 0x5: // SE Vx, Vy
		if n != 0 {
			return ErrUnknownOpcode
		}
		if c.V[x] == c.V[y] {
			c.PC += 2
		}

	case 0x6: // LD Vx, kk
		c.V[x] = kk

	case 0x7: // ADD Vx, kk (no flag)
		c.V[x] += kk

	case 0x8:
		return c.alu(x, y, n)

	case 0x9: // SNE Vx, Vy
		if n != 0 {
			return ErrUnknownOpcode
		}
		if c.V[x] != c.V[y] {
			c.PC += 2
		}

	case 0xA: // LD I, nnn
		c.I = nnn

	case 0xB: // JP V0, nnn
		if c.quirks.JumpOffsetUsesVX {
			c.PC = nnn + uint16(c.V[x])
		} else {
			c.PC = nnn + uint16(c.V[0])
		}

	case 0xC: // RND Vx, kk
		c.V[x] = c.randByte() & kk

	case 0xD: // DRW Vx, Vy, n
		return c.draw(x, y, n)

	case 0xE:
		switch kk {
		case 0x9E: // SKP Vx
			if c.keys.IsPressed(c.V[x]) {
				c.PC += 2
			}
		case 0xA1: // SKNP Vx
			if !c.keys.IsPressed(c.V[x]) {
				c.PC += 2
			}
		default:
			return ErrUnknownOpcode
		}

	case 0xF:
		return c.misc(x, kk)
	}
	return nil
}

// alu handles the 8xyN family. The flag write always happens after the
// result write, so ops targeting VF end up with the flag value.
func (c *CPU) alu(x, y, n byte) error {
	switch n {
	case 0x0:
		c.V[x] = c.V[y]
	case 0x1:
		c.V[x] |= c.V[y]
		if c.quirks.ResetVF {
			c.V[0xF] = 0
		}
	case 0x2:
		c.V[x] &= c.V[y]
		if c.quirks.ResetVF {
			c.V[0xF] = 0
		}
	case 0x3:
		c.V[x] ^= c.V[y]
		if c.quirks.ResetVF {
			c.V[0xF] = 0
		}
	case 0x4: // ADD with carry
		sum := uint16(c.V[x]) + uint16(c.V[y])
		c.V[x] = byte(sum)
		c.V[0xF] = byte(sum >> 8)
	case 0x5: // SUB, VF = NOT borrow
		borrow := c.V[y] > c.V[x]
		c.V[x] -= c.V[y]
		c.V[0xF] = flag(!borrow)
	case 0x6: // SHR
		v := c.V[x]
		if c.quirks.ShiftUsesVY {
			v = c.V[y]
		}
		c.V[x] = v >> 1
		c.V[0xF] = v & 0x01
	case 0x7: // SUBN, VF = NOT borrow
		borrow := c.V[x] > c.V[y]
		c.V[x] = c.V[y] - c.V[x]
		c.V[0xF] = flag(!borrow)
	case 0xE: // SHL
		v := c.V[x]
		if c.quirks.ShiftUsesVY {
			v = c.V[y]
		}
		c.V[x] = v << 1
		c.V[0xF] = v >> 7
	default:
		return ErrUnknownOpcode
	}
	return nil
}

func (c *CPU) draw(x, y, n byte) error {
	sprite := make([]byte, n)
	for i := range sprite {
		b, err := c.bus.ReadByte(c.I + uint16(i))
		if err != nil {
			return err
		}
		sprite[i] = b
	}
	c.V[0xF] = flag(c.disp.DrawSprite(c.V[x], c.V[y], sprite))
	return nil
}

func (c *CPU) misc(x, kk byte) error {
	switch kk {
	case 0x07: // LD Vx, DT
		c.V[x] = c.timers.Delay()
	case 0x0A: // LD Vx, K
		c.state = WaitingForKey
		c.waitReg = x
		c.held = false
	case 0x15: // LD DT, Vx
		c.timers.SetDelay(c.V[x])
	case 0x18: // LD ST, Vx
		c.timers.SetSound(c.V[x])
	case 0x1E: // ADD I, Vx
		c.I += uint16(c.V[x])
		if c.quirks.IndexOverflowVF {
			c.V[0xF] = flag(c.I > 0x0FFF)
		}
	case 0x29: // LD F, Vx
		c.I = memory.FontAddress(c.V[x])
	case 0x33: // LD B, Vx
		v := c.V[x]
		digits := [3]byte{v / 100, v / 10 % 10, v % 10}
		for i, d := range digits {
			if err := c.bus.WriteByte(c.I+uint16(i), d); err != nil {
				return err
			}
		}
	case 0x55: // LD [I], Vx
		for i := byte(0); i <= x; i++ {
			if err := c.bus.WriteByte(c.I+uint16(i), c.V[i]); err != nil {
				return err
			}
		}
		if c.quirks.IncrementI {
			c.I += uint16(x) + 1
		}
	case 0x65: // LD Vx, [I]
		for i := byte(0); i <= x; i++ {
			b, err := c.bus.ReadByte(c.I + uint16(i))
			if err != nil {
				return err
			}
			c.V[i] = b
		}
		if c.quirks.IncrementI {
			c.I += uint16(x) + 1
		}
	default:
		return ErrUnknownOpcode
	}
	return nil
}

func flag(b bool) byte {
	if b {
		return 1
	}
	return 0
}
