package keypad

import "testing"

func TestSetAndRead(t *testing.T) {
	k := New()
	if k.IsPressed(0x5) {
		t.Fatalf("fresh keypad reports a held key")
	}
	k.SetKey(0x5, true)
	if !k.IsPressed(0x5) {
		t.Fatalf("key 5 not held after SetKey")
	}
	k.SetKey(0x5, false)
	if k.IsPressed(0x5) {
		t.Fatalf("key 5 still held after release")
	}

	// Out-of-range set is ignored, out-of-range read masks to 0-F.
	k.SetKey(0x42, true)
	k.SetKey(0x2, true)
	if !k.IsPressed(0x12) { // masks to key 2
		t.Fatalf("IsPressed should mask the index to the keypad range")
	}
}

func TestFirstPressed(t *testing.T) {
	k := New()
	if _, ok := k.FirstPressed(); ok {
		t.Fatalf("no key held, FirstPressed reported one")
	}
	k.SetKey(0xB, true)
	k.SetKey(0x3, true)
	idx, ok := k.FirstPressed()
	if !ok || idx != 0x3 {
		t.Fatalf("FirstPressed got (%x,%v) want (3,true)", idx, ok)
	}
}
