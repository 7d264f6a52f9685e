// Package collision tracks sector-range ownership while a region header is
// being validated, detecting overlapping sector-range allocations (two
// chunks claiming the same sector).
package collision

import (
	"fmt"

	"github.com/anvilgo/anvil/errs"
)

// Tracker records which region coordinate currently owns each sector and
// flags the first overlap it observes.
//
// It is used once per Region.Open to walk all 1024 location entries before
// any chunk is read or written; once open succeeds the Region's own
// allocator bitmap (region/alloc.go) takes over ownership tracking.
type Tracker struct {
	owner        map[int]int // sector index -> location-entry index (z*32+x) that owns it
	hasCollision bool
	firstA       int
	firstB       int
}

// NewTracker creates a new sector-range collision tracker.
func NewTracker() *Tracker {
	return &Tracker{
		owner: make(map[int]int),
	}
}

// TrackRange records that location entry entryIdx owns sectors
// [first, first+count). It returns an error the first time a sector is
// claimed by more than one entry; subsequent calls still record ownership
// so the tracker can report the full claimed set via Count.
func (t *Tracker) TrackRange(entryIdx, first, count int) error {
	for s := first; s < first+count; s++ {
		if owner, exists := t.owner[s]; exists {
			if !t.hasCollision {
				t.hasCollision = true
				t.firstA, t.firstB = owner, entryIdx
			}

			return fmt.Errorf("%w: sector %d claimed by entries %d and %d", errs.ErrSectorOverlap, s, owner, entryIdx)
		}
		t.owner[s] = entryIdx
	}

	return nil
}

// HasCollision returns true if an overlapping sector range has been detected.
func (t *Tracker) HasCollision() bool {
	return t.hasCollision
}

// FirstCollision returns the two location-entry indices involved in the
// first detected overlap. The second return value is false if there has
// been no collision.
func (t *Tracker) FirstCollision() (a, b int, ok bool) {
	return t.firstA, t.firstB, t.hasCollision
}

// Count returns the number of distinct sectors claimed so far.
func (t *Tracker) Count() int {
	return len(t.owner)
}

// Reset clears all tracked ownership, allowing the tracker to be reused.
func (t *Tracker) Reset() {
	for k := range t.owner {
		delete(t.owner, k)
	}
	t.hasCollision = false
	t.firstA, t.firstB = 0, 0
}
