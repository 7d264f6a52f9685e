package region

import "github.com/anvilgo/anvil/errs"

// allocator is a first-fit bitmap allocator over a region file's sector
// space. Sector 0 is never allocated from here; sectors [0, HeaderSectors)
// are permanently reserved for the header and marked used at construction.
type allocator struct {
	used  []bool // used[i] true means sector i is claimed
	limit int    // 0 means unlimited; otherwise the exclusive sector-count ceiling
}

// newAllocator builds an allocator from a parsed Header, marking every
// sector currently claimed by a present location entry (plus the header
// sectors themselves) as used. limit caps the total sector count the
// allocator will grow to; 0 means unlimited.
func newAllocator(h *Header, limit int) *allocator {
	a := &allocator{used: make([]bool, HeaderSectors), limit: limit}
	for i := range HeaderSectors {
		a.used[i] = true
	}

	for _, loc := range h.locations {
		if !loc.present() {
			continue
		}
		a.reserve(int(loc.offset), int(loc.count))
	}

	return a
}

func (a *allocator) ensure(n int) {
	if n <= len(a.used) {
		return
	}
	grown := make([]bool, n)
	copy(grown, a.used)
	a.used = grown
}

func (a *allocator) reserve(offset, count int) {
	a.ensure(offset + count)
	for i := offset; i < offset+count; i++ {
		a.used[i] = true
	}
}

func (a *allocator) release(offset, count int) {
	for i := offset; i < offset+count && i < len(a.used); i++ {
		a.used[i] = false
	}
}

// allocate finds the first run of count contiguous free sectors, growing the
// tracked space (i.e. appending at the file's logical tail) if no gap is
// free. This mirrors the "first-fit, else grow the file" allocator used by
// vanilla-compatible region writers. Growing past the configured limit (see
// newAllocator) returns errs.ErrNoFreeSectors instead.
func (a *allocator) allocate(count int) (int, error) {
	run := 0
	for i, u := range a.used {
		if u {
			run = 0
			continue
		}
		run++
		if run == count {
			offset := i - count + 1
			a.reserve(offset, count)
			return offset, nil
		}
	}

	offset := len(a.used)
	if a.limit > 0 && offset+count > a.limit {
		return 0, errs.ErrNoFreeSectors
	}
	a.reserve(offset, count)
	return offset, nil
}

// sectorsFor returns how many sectors are needed to hold n payload bytes.
func sectorsFor(n int) int {
	return (n + SectorSize - 1) / SectorSize
}
