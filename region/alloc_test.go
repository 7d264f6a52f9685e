package region

import (
	"testing"

	"github.com/anvilgo/anvil/errs"
	"github.com/stretchr/testify/require"
)

func TestAllocator_ReservesHeaderSectors(t *testing.T) {
	a := newAllocator(&Header{}, 0)

	offset, err := a.allocate(1)
	require.NoError(t, err)
	require.Equal(t, HeaderSectors, offset)
}

func TestAllocator_FirstFit(t *testing.T) {
	a := newAllocator(&Header{}, 0)

	first, err := a.allocate(2) // claims [2,4)
	require.NoError(t, err)
	second, err := a.allocate(3) // claims [4,7)
	require.NoError(t, err)
	require.Equal(t, HeaderSectors, first)
	require.Equal(t, HeaderSectors+2, second)

	a.release(first, 2)

	third, err := a.allocate(2)
	require.NoError(t, err)
	require.Equal(t, first, third, "freed gap should be reused before growing")
}

func TestAllocator_GrowsWhenNoGapFits(t *testing.T) {
	a := newAllocator(&Header{}, 0)

	_, err := a.allocate(2)
	require.NoError(t, err)
	offset, err := a.allocate(5)
	require.NoError(t, err)
	require.Equal(t, HeaderSectors+2, offset)
}

func TestAllocator_LimitExceeded(t *testing.T) {
	a := newAllocator(&Header{}, HeaderSectors+3)

	_, err := a.allocate(2)
	require.NoError(t, err)

	_, err = a.allocate(2)
	require.ErrorIs(t, err, errs.ErrNoFreeSectors)
}

func TestAllocator_LimitReusesFreedGap(t *testing.T) {
	a := newAllocator(&Header{}, HeaderSectors+2)

	first, err := a.allocate(2)
	require.NoError(t, err)

	a.release(first, 2)

	second, err := a.allocate(2)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestSectorsFor(t *testing.T) {
	require.Equal(t, 1, sectorsFor(1))
	require.Equal(t, 1, sectorsFor(SectorSize))
	require.Equal(t, 2, sectorsFor(SectorSize+1))
	require.Equal(t, 0, sectorsFor(0))
}
