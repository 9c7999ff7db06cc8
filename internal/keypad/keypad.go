// Package keypad holds the 16-key state of the CHIP-8 keypad. The host
// input collaborator writes it, the CPU's Ex/Fx opcode families read it.
package keypad

// NumKeys is the number of keys on the hex keypad (0x0-0xF).
const NumKeys = 16

// State is the 16 boolean key flags.
type State struct {
	keys [NumKeys]bool
}

// New returns a keypad with all keys released.
func New() *State {
	return &State{}
}

// SetKey records whether key idx (0x0-0xF) is held. Out-of-range indices
// are ignored; hosts may forward raw scan codes.
func (s *State) SetKey(idx byte, pressed bool) {
	if idx < NumKeys {
		s.keys[idx] = pressed
	}
}

// IsPressed reports whether key idx is held. Indices are masked to the
// keypad range since they come straight from a V register.
func (s *State) IsPressed(idx byte) bool {
	return s.keys[idx&0x0F]
}

// FirstPressed returns the lowest-numbered held key, or false when no key
// is down. The CPU polls this to implement the Fx0A wait.
func (s *State) FirstPressed() (byte, bool) {
	for i := byte(0); i < NumKeys; i++ {
		if s.keys[i] {
			return i, true
		}
	}
	return 0, false
}
