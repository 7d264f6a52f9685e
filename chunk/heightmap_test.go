package chunk

import (
	"testing"

	"github.com/anvilgo/anvil/errs"
	"github.com/stretchr/testify/require"
)

func TestUnpackHeightmap_RoundTrip(t *testing.T) {
	heights := make([]uint32, heightmapCells)
	for i := range heights {
		heights[i] = uint32(i % 384)
	}

	longs := packAligned(heights, heightmapBits)

	got, err := unpackHeightmap(longs)
	require.NoError(t, err)
	require.Len(t, got, heightmapCells)
	for i, h := range heights {
		require.EqualValues(t, h, got[i])
	}
}

func TestUnpackHeightmap_WrongLength(t *testing.T) {
	_, err := unpackHeightmap(make([]uint64, 3))
	require.ErrorIs(t, err, errs.ErrInvalidLength)
}
