package chunk

import (
	"fmt"

	"github.com/anvilgo/anvil/errs"
	"github.com/anvilgo/anvil/nbt"
)

// heightmapBits is the fixed bit width of a heightmap cell: a surface
// height in 0..384 needs 9 bits (log2(384) ≈ 8.58), always aligned-packed
// regardless of the chunk's block-state layout.
const (
	heightmapBits  = 9
	heightmapCells = 256
)

// decodeHeightmaps reads the root "Heightmaps" compound: a set of named
// LongArray entries, each a 256-cell (one per x/z column) aligned-packed
// array of 9-bit surface heights.
func decodeHeightmaps(d *nbt.Decoder) (map[string][]int32, error) {
	out := make(map[string][]int32)

	err := d.DecodeMap(func(name string, val *nbt.Decoder) error {
		longs, err := val.DecodeLongArray()
		if err != nil {
			return err
		}

		heights, err := unpackHeightmap(asUint64(longs))
		if err != nil {
			return err
		}
		out[name] = heights

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// unpackHeightmap extracts the 256 aligned-packed 9-bit cells of a
// heightmap's long array.
func unpackHeightmap(longs []uint64) ([]int32, error) {
	want := expectedAlignedLongs(heightmapBits, heightmapCells)
	if len(longs) != want {
		return nil, fmt.Errorf("%w: heightmap has %d longs, want %d", errs.ErrInvalidLength, len(longs), want)
	}

	heights := make([]int32, heightmapCells)
	for i := range heightmapCells {
		v, err := extractAligned(longs, heightmapBits, i)
		if err != nil {
			return nil, err
		}
		heights[i] = int32(v)
	}

	return heights, nil
}
