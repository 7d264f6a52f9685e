package chunk

import (
	"fmt"
	"math/bits"

	"github.com/anvilgo/anvil/errs"
)

// bitsForPaletteLen computes bits = max(minBits, ceil(log2(n))), the index
// width a palette of n entries packs into (biome palettes use minBits=1,
// block-state palettes use minBits=4).
func bitsForPaletteLen(n, minBits int) int {
	if n <= 1 {
		return minBits
	}

	// ceil(log2(n)) == bits.Len(n-1) for n >= 2.
	b := bits.Len(uint(n - 1))
	if b < minBits {
		return minBits
	}

	return b
}

// layout selects between the two historical bit-packing conventions a
// section's long array may use.
type layout int

const (
	layoutAligned layout = iota
	layoutPacked
)

// extractAligned reads the i'th index from longs packed in the aligned
// layout: each long holds floor(64/bits) whole indices and never splits one
// across a long boundary.
func extractAligned(longs []uint64, bitsPerIndex, i int) (uint32, error) {
	perLong := 64 / bitsPerIndex
	longIdx := i / perLong
	if longIdx >= len(longs) {
		return 0, fmt.Errorf("%w: aligned index %d needs long %d, array has %d", errs.ErrPaletteIndexOutOfRange, i, longIdx, len(longs))
	}

	slot := i % perLong
	mask := uint64(1)<<uint(bitsPerIndex) - 1
	val := (longs[longIdx] >> uint(slot*bitsPerIndex)) & mask

	return uint32(val), nil
}

// extractPacked reads the i'th index from longs packed in the packed
// layout: indices form one contiguous bitstream and may span two adjacent
// longs.
func extractPacked(longs []uint64, bitsPerIndex, i int) (uint32, error) {
	bitStart := i * bitsPerIndex
	longIdx := bitStart / 64
	bitOffset := uint(bitStart % 64)

	if longIdx >= len(longs) {
		return 0, fmt.Errorf("%w: packed index %d needs long %d, array has %d", errs.ErrPaletteIndexOutOfRange, i, longIdx, len(longs))
	}

	mask := uint64(1)<<uint(bitsPerIndex) - 1
	val := longs[longIdx] >> bitOffset

	if bitOffset+uint(bitsPerIndex) > 64 {
		if longIdx+1 >= len(longs) {
			return 0, fmt.Errorf("%w: packed index %d spans missing long %d", errs.ErrPaletteIndexOutOfRange, i, longIdx+1)
		}
		val |= longs[longIdx+1] << (64 - bitOffset)
	}

	return uint32(val & mask), nil
}

// extractIndex reads the i'th palette index from longs using l's layout.
func extractIndex(l layout, longs []uint64, bitsPerIndex, i int) (uint32, error) {
	if l == layoutAligned {
		return extractAligned(longs, bitsPerIndex, i)
	}

	return extractPacked(longs, bitsPerIndex, i)
}

// expectedAlignedLongs returns how many longs aligned packing needs to
// store cellCount indices of bitsPerIndex bits each.
func expectedAlignedLongs(bitsPerIndex, cellCount int) int {
	perLong := 64 / bitsPerIndex
	return (cellCount + perLong - 1) / perLong
}

// expectedPackedLongs returns how many longs packed packing needs to store
// cellCount indices of bitsPerIndex bits each.
func expectedPackedLongs(bitsPerIndex, cellCount int) int {
	totalBits := cellCount * bitsPerIndex
	return (totalBits + 63) / 64
}

// asUint64 reinterprets a slice of NBT LongArray elements (signed, as the
// wire format requires) as unsigned 64-bit words for bit-packing purposes;
// the packing scheme treats the array purely as a bit vector.
func asUint64(longs []int64) []uint64 {
	out := make([]uint64, len(longs))
	for i, v := range longs {
		out[i] = uint64(v)
	}

	return out
}
