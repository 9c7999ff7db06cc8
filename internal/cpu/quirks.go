package cpu

// Quirks selects between divergent historical interpreter behaviors.
// Different ROMs were authored against different interpreters, so the set
// is chosen once before a run starts and never mutated mid-run.
type Quirks struct {
	// ResetVF zeroes VF after 8xy1/8xy2/8xy3 (original COSMAC VIP).
	ResetVF bool
	// ShiftUsesVY makes 8xy6/8xyE shift Vy into Vx instead of shifting
	// Vx in place (original; CHIP48 and later shift in place).
	ShiftUsesVY bool
	// JumpOffsetUsesVX makes Bnnn jump to nnn + Vx (x = high nibble of
	// nnn) instead of nnn + V0 (CHIP48 lineage).
	JumpOffsetUsesVX bool
	// ClipSprites drops sprite pixels that would cross the display edge
	// instead of wrapping them.
	ClipSprites bool
	// IncrementI leaves I = I + x + 1 after Fx55/Fx65 (original).
	IncrementI bool
	// IndexOverflowVF makes Fx1E report I overflowing past 0xFFF in VF
	// (Amiga-lineage ROMs depend on it).
	IndexOverflowVF bool
}
