package cpu

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownOpcode  = errors.New("unknown opcode")
	ErrStackOverflow  = errors.New("stack overflow")
	ErrStackUnderflow = errors.New("stack underflow")
)

// OpcodeError is a fatal execution error annotated with the offending
// opcode and its address, so the host can report enough context to
// diagnose a malformed ROM or a quirk misconfiguration.
type OpcodeError struct {
	Opcode uint16
	Addr   uint16
	Err    error
}

func (e *OpcodeError) Error() string {
	return fmt.Sprintf("opcode %04X at %#04x: %v", e.Opcode, e.Addr, e.Err)
}

func (e *OpcodeError) Unwrap() error { return e.Err }
