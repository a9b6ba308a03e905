package dedup

import (
	"testing"
	"time"
)

func TestSeen(t *testing.T) {
	d := New(time.Minute, 100)
	if d.Seen("a") {
		t.Error("first sighting reported as duplicate")
	}
	if !d.Seen("a") {
		t.Error("second sighting not reported as duplicate")
	}
	if d.Seen("b") {
		t.Error("unrelated id reported as duplicate")
	}
}

func TestEmptyIDNeverDeduplicated(t *testing.T) {
	d := New(time.Minute, 100)
	if d.Seen("") || d.Seen("") {
		t.Error("empty id must never be deduplicated")
	}
}

func TestTTLExpiry(t *testing.T) {
	d := New(10*time.Millisecond, 100)
	if d.Seen("a") {
		t.Fatal("first sighting reported as duplicate")
	}
	time.Sleep(20 * time.Millisecond)
	if d.Seen("a") {
		t.Error("expired id still reported as duplicate")
	}
}

func TestCapacityBound(t *testing.T) {
	d := New(time.Hour, 8)
	for i := 0; i < 100; i++ {
		d.Seen(string(rune('a' + i)))
	}
	if d.Len() > 2*8 {
		t.Errorf("Len = %d, want bounded near capacity 8", d.Len())
	}
}
