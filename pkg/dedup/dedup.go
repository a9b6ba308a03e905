// Package dedup drops QoS 1 redeliveries: a message id seen within the TTL
// is a duplicate.
package dedup

import (
	"sync"
	"time"
)

const sweepEvery = 256

// Deduper remembers recently seen ids for a TTL, bounded by a capacity.
type Deduper struct {
	mu   sync.Mutex
	ttl  time.Duration
	cap  int
	ops  int
	seen map[string]time.Time // id -> expiry
}

func New(ttl time.Duration, cap int) *Deduper {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if cap <= 0 {
		cap = 10000
	}
	return &Deduper{ttl: ttl, cap: cap, seen: make(map[string]time.Time, cap)}
}

// Seen reports whether id was already recorded within the TTL, recording it
// as a side effect. An empty id is never deduplicated.
func (d *Deduper) Seen(id string) bool {
	if id == "" {
		return false
	}
	now := time.Now()

	d.mu.Lock()
	defer d.mu.Unlock()

	if exp, ok := d.seen[id]; ok && now.Before(exp) {
		return true
	}
	d.seen[id] = now.Add(d.ttl)

	d.ops++
	if d.ops%sweepEvery == 0 || len(d.seen) > d.cap {
		d.sweep(now)
	}
	return false
}

// Len returns the number of tracked ids, expired entries included.
func (d *Deduper) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.seen)
}

// sweep drops expired entries; caller holds the lock. When the map is still
// over capacity afterwards, arbitrary entries go too.
func (d *Deduper) sweep(now time.Time) {
	for id, exp := range d.seen {
		if now.After(exp) {
			delete(d.seen, id)
		}
	}
	for id := range d.seen {
		if len(d.seen) <= d.cap {
			break
		}
		delete(d.seen, id)
	}
}
