// Package display implements the 64x32 monochrome surface with XOR sprite
// compositing and collision detection.
package display

const (
	Width  = 64
	Height = 32
	// MaxSpriteRows is the tallest sprite Dxyn can describe (n is a nibble).
	MaxSpriteRows = 15
)

// Surface is the monochrome framebuffer. Pixels are only mutated by Clear
// and DrawSprite; hosts read the grid and present it however they like.
type Surface struct {
	pixels [Height][Width]bool
	// clip drops sprite pixels that would cross the display edge instead
	// of wrapping them to the opposite side.
	clip bool
	// seq increments on every mutation so hosts can skip redundant redraws.
	seq uint64
}

// New returns a cleared surface. clip selects the edge-clipping quirk;
// the default CHIP-8 behavior wraps.
func New(clip bool) *Surface {
	return &Surface{clip: clip}
}

// Clear switches every pixel off.
func (s *Surface) Clear() {
	s.pixels = [Height][Width]bool{}
	s.seq++
}

// DrawSprite XORs up to 15 rows of 8 pixels onto the surface at (x, y).
// The start coordinate always wraps; pixels past the edge wrap or are
// dropped depending on the clipping quirk. It reports whether any pixel
// was switched from on to off.
func (s *Surface) DrawSprite(x, y byte, sprite []byte) bool {
	if len(sprite) > MaxSpriteRows {
		sprite = sprite[:MaxSpriteRows]
	}
	x %= Width
	y %= Height

	collision := false
	for row, bits := range sprite {
		py := int(y) + row
		if py >= Height {
			if s.clip {
				break
			}
			py %= Height
		}
		for col := 0; col < 8; col++ {
			if bits&(0x80>>col) == 0 {
				continue
			}
			px := int(x) + col
			if px >= Width {
				if s.clip {
					break
				}
				px %= Width
			}
			if s.pixels[py][px] {
				collision = true
			}
			s.pixels[py][px] = !s.pixels[py][px]
		}
	}
	s.seq++
	return collision
}

// Pixel reports whether the pixel at (x, y) is on.
func (s *Surface) Pixel(x, y int) bool {
	return s.pixels[y][x]
}

// Pixels returns a snapshot of the pixel grid.
func (s *Surface) Pixels() [Height][Width]bool {
	return s.pixels
}

// Seq returns the mutation counter.
func (s *Surface) Seq() uint64 {
	return s.seq
}
