package timer

import "testing"

func TestTickCountsDownAndFloors(t *testing.T) {
	tm := New()
	tm.SetDelay(2)
	tm.SetSound(1)

	tm.Tick()
	if tm.Delay() != 1 {
		t.Fatalf("delay after one tick got %d want 1", tm.Delay())
	}
	if tm.SoundActive() {
		t.Fatalf("sound still active after counting to zero")
	}

	// Further ticks never go negative.
	tm.Tick()
	tm.Tick()
	if tm.Delay() != 0 {
		t.Fatalf("delay after extra ticks got %d want 0", tm.Delay())
	}
}

func TestSoundActive(t *testing.T) {
	tm := New()
	if tm.SoundActive() {
		t.Fatalf("zero sound timer reports active")
	}
	tm.SetSound(3)
	if !tm.SoundActive() {
		t.Fatalf("non-zero sound timer reports inactive")
	}
}
