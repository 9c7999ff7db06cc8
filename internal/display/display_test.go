package display

import "testing"

func TestDrawSprite_SetAndCollision(t *testing.T) {
	s := New(false)
	if coll := s.DrawSprite(0, 0, []byte{0xF0}); coll {
		t.Fatalf("draw into clear region reported collision")
	}
	for x := 0; x < 4; x++ {
		if !s.Pixel(x, 0) {
			t.Fatalf("pixel (%d,0) not set", x)
		}
	}
	if s.Pixel(4, 0) {
		t.Fatalf("pixel (4,0) set, sprite is only 4 wide")
	}

	// Overlapping draw flips pixels off and reports the collision.
	if coll := s.DrawSprite(0, 0, []byte{0x80}); !coll {
		t.Fatalf("overlapping draw did not report collision")
	}
	if s.Pixel(0, 0) {
		t.Fatalf("pixel (0,0) still on after XOR")
	}
}

func TestDrawSprite_DoubleXORRestores(t *testing.T) {
	s := New(false)
	sprite := []byte{0x3C, 0x42, 0x81, 0x81, 0x42, 0x3C}
	s.DrawSprite(10, 5, []byte{0xFF, 0xFF}) // pre-existing content
	before := s.Pixels()

	s.DrawSprite(12, 4, sprite)
	if coll := s.DrawSprite(12, 4, sprite); !coll {
		t.Fatalf("second identical draw must collide with the first")
	}
	if s.Pixels() != before {
		t.Fatalf("double XOR did not restore the prior display state")
	}
}

func TestDrawSprite_CoordinateWrap(t *testing.T) {
	s := New(false)
	// Start coordinates wrap modulo the grid in both modes.
	s.DrawSprite(Width+2, Height+1, []byte{0x80})
	if !s.Pixel(2, 1) {
		t.Fatalf("start coordinate did not wrap")
	}
}

func TestDrawSprite_EdgeWrapVsClip(t *testing.T) {
	wrap := New(false)
	wrap.DrawSprite(62, 31, []byte{0xF0, 0xF0})
	if !wrap.Pixel(0, 31) || !wrap.Pixel(1, 31) {
		t.Fatalf("wrap mode: columns past the edge should reappear at x=0")
	}
	if !wrap.Pixel(62, 0) {
		t.Fatalf("wrap mode: rows past the edge should reappear at y=0")
	}

	clip := New(true)
	clip.DrawSprite(62, 31, []byte{0xF0, 0xF0})
	if !clip.Pixel(62, 31) || !clip.Pixel(63, 31) {
		t.Fatalf("clip mode: on-screen part of the sprite missing")
	}
	if clip.Pixel(0, 31) || clip.Pixel(62, 0) {
		t.Fatalf("clip mode: pixels crossed the edge")
	}
}

func TestDrawSprite_RowLimit(t *testing.T) {
	s := New(false)
	sprite := make([]byte, 20)
	for i := range sprite {
		sprite[i] = 0x80
	}
	s.DrawSprite(0, 0, sprite)
	for y := 0; y < MaxSpriteRows; y++ {
		if !s.Pixel(0, y) {
			t.Fatalf("row %d missing", y)
		}
	}
	if s.Pixel(0, MaxSpriteRows) {
		t.Fatalf("draw read past the 15-row limit")
	}
}

func TestClear(t *testing.T) {
	s := New(false)
	s.DrawSprite(0, 0, []byte{0xFF})
	seq := s.Seq()
	s.Clear()
	if s.Pixels() != ([Height][Width]bool{}) {
		t.Fatalf("clear left pixels on")
	}
	if s.Seq() == seq {
		t.Fatalf("clear did not bump the mutation counter")
	}
}
