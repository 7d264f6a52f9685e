package region

import (
	"testing"

	"github.com/anvilgo/anvil/errs"
	"github.com/stretchr/testify/require"
)

func TestParseHeader_TooShort(t *testing.T) {
	_, err := ParseHeader(make([]byte, 100))
	require.ErrorIs(t, err, errs.ErrCorruptRegionHeader)
}

func TestParseHeader_BytesRoundTrip(t *testing.T) {
	h := &Header{}
	require.NoError(t, h.setLocationAt(3, 4, 10, 2))
	require.NoError(t, h.setTimestampAt(3, 4, 123456))

	parsed, err := ParseHeader(h.Bytes())
	require.NoError(t, err)

	loc, err := parsed.locationAt(3, 4)
	require.NoError(t, err)
	require.Equal(t, uint32(10), loc.offset)
	require.Equal(t, uint8(2), loc.count)

	i, err := index(3, 4)
	require.NoError(t, err)
	require.Equal(t, uint32(123456), parsed.timestamps[i])
}

func TestParseHeader_EntryOverlapsHeader(t *testing.T) {
	h := &Header{}
	require.NoError(t, h.setLocationAt(0, 0, 1, 1)) // offset 1 is inside the header

	_, err := ParseHeader(h.Bytes())
	require.ErrorIs(t, err, errs.ErrCorruptRegionHeader)
}

func TestParseHeader_OverlappingEntries(t *testing.T) {
	h := &Header{}
	require.NoError(t, h.setLocationAt(0, 0, 2, 3)) // sectors 2,3,4
	require.NoError(t, h.setLocationAt(1, 0, 4, 2)) // sector 4 overlaps

	_, err := ParseHeader(h.Bytes())
	require.ErrorIs(t, err, errs.ErrSectorOverlap)
}

func TestIndex_OutOfRange(t *testing.T) {
	_, err := index(32, 0)
	require.ErrorIs(t, err, errs.ErrInvalidCoordinate)

	_, err = index(0, -1)
	require.ErrorIs(t, err, errs.ErrInvalidCoordinate)
}
