package region

import (
	"bytes"
	"compress/zlib"
	"path/filepath"
	"testing"

	"github.com/anvilgo/anvil/errs"
	"github.com/anvilgo/anvil/format"
	"github.com/stretchr/testify/require"
)

func TestRegion_WriteThenReadChunk_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r.0.0.mca")

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	payload := []byte("minecraft:stone\x00DataVersion\x00Sections\x00")

	err = r.WriteChunk(5, 7, payload)
	require.NoError(t, err)

	got, err := r.ReadChunk(5, 7)
	require.NoError(t, err)
	require.Equal(t, payload, got)
}

func TestRegion_ReadChunk_AbsentReturnsNotPresent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r.0.0.mca")

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	_, err = r.ReadChunk(1, 1)
	require.ErrorIs(t, err, errs.ErrChunkNotPresent)
}

func TestRegion_OverwriteChunk_ReleasesOldSectors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r.0.0.mca")

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	small := []byte("x")
	large := bytes.Repeat([]byte("minecraft:dirt "), 2000)

	require.NoError(t, r.WriteChunk(0, 0, small))
	require.NoError(t, r.WriteChunk(1, 0, small))
	require.NoError(t, r.WriteChunk(0, 0, large))

	got, err := r.ReadChunk(0, 0)
	require.NoError(t, err)
	require.Equal(t, large, got)

	got, err = r.ReadChunk(1, 0)
	require.NoError(t, err)
	require.Equal(t, small, got)
}

func TestRegion_ForEachChunk_VisitsAllPresent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r.0.0.mca")

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	require.NoError(t, r.WriteChunk(0, 0, []byte("a")))
	require.NoError(t, r.WriteChunk(31, 31, []byte("b")))

	seen := map[Coord][]byte{}
	err = r.ForEachChunk(func(x, z int, data []byte) error {
		seen[Coord{X: x, Z: z}] = data
		return nil
	})
	require.NoError(t, err)

	require.Len(t, seen, 2)
	require.Equal(t, []byte("a"), seen[Coord{X: 0, Z: 0}])
	require.Equal(t, []byte("b"), seen[Coord{X: 31, Z: 31}])
}

func TestRegion_ReopenPersistsChunks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r.0.0.mca")

	r, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, r.WriteChunk(3, 4, []byte("persisted")))
	require.NoError(t, r.Close())

	r2, err := Open(path)
	require.NoError(t, err)
	defer r2.Close()

	got, err := r2.ReadChunk(3, 4)
	require.NoError(t, err)
	require.Equal(t, []byte("persisted"), got)
}

// TestReadChunk_HandCraftedLocationEntry reproduces the worked example: a
// location entry for (x=0, z=0) of (offset=2, sectors=1), whose payload
// sector begins with a 4-byte big-endian length (1 for the scheme byte plus
// the zlib stream's length), a zlib scheme byte, and zlib-compressed bytes
// decoding to "hi".
func TestReadChunk_HandCraftedLocationEntry(t *testing.T) {
	var zlibed bytes.Buffer
	zw := zlib.NewWriter(&zlibed)
	_, err := zw.Write([]byte("hi"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), "r.0.0.mca")

	r, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, r.header.setLocationAt(0, 0, 2, 1))
	frame := make([]byte, SectorSize)
	be.PutUint32(frame[0:4], uint32(1+zlibed.Len()))
	frame[4] = 2 // zlib scheme
	copy(frame[5:], zlibed.Bytes())

	_, err = r.file.WriteAt(frame, 2*SectorSize)
	require.NoError(t, err)
	r.alloc.reserve(2, 1)
	require.NoError(t, r.flushEntry(0, 0))
	require.NoError(t, r.Close())

	r2, err := Open(path)
	require.NoError(t, err)
	defer r2.Close()

	got, err := r2.ReadChunk(0, 0)
	require.NoError(t, err)
	require.Equal(t, []byte("hi"), got)
}

func TestRegion_InvalidCoordinate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r.0.0.mca")

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	_, err = r.ReadChunk(32, 0)
	require.ErrorIs(t, err, errs.ErrInvalidCoordinate)
}

func TestRegion_WithReadOnly_RejectsWriteChunk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r.0.0.mca")

	r, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, r.WriteChunk(0, 0, []byte("hello")))
	require.NoError(t, r.Close())

	ro, err := Open(path, WithReadOnly())
	require.NoError(t, err)
	defer ro.Close()

	got, err := ro.ReadChunk(0, 0)
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), got)

	err = ro.WriteChunk(0, 0, []byte("world"))
	require.ErrorIs(t, err, errs.ErrReadOnlyRegion)
}

func TestRegion_WithReadOnly_MissingFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r.0.0.mca")

	_, err := Open(path, WithReadOnly())
	require.Error(t, err)
}

func TestRegion_WithCreateIfMissing_False_FailsOnMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r.0.0.mca")

	_, err := Open(path, WithCreateIfMissing(false))
	require.ErrorIs(t, err, errs.ErrRegionOpenFailed)
}

func TestRegion_WithCreateIfMissing_FalseStillOpensExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r.0.0.mca")

	r, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, r.Close())

	r2, err := Open(path, WithCreateIfMissing(false))
	require.NoError(t, err)
	defer r2.Close()
}

func TestRegion_WithSectorLimit_ReturnsErrNoFreeSectors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r.0.0.mca")

	r, err := Open(path, WithSectorLimit(HeaderSectors+1), WithDefaultCompressionScheme(format.CompressionRaw))
	require.NoError(t, err)
	defer r.Close()

	err = r.WriteChunk(0, 0, bytes.Repeat([]byte("x"), 2*SectorSize))
	require.ErrorIs(t, err, errs.ErrNoFreeSectors)
}

func TestRegion_WithSectorLimit_AllowsWritesWithinBudget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r.0.0.mca")

	r, err := Open(path, WithSectorLimit(HeaderSectors+1))
	require.NoError(t, err)
	defer r.Close()

	require.NoError(t, r.WriteChunk(0, 0, []byte("small")))

	got, err := r.ReadChunk(0, 0)
	require.NoError(t, err)
	require.Equal(t, []byte("small"), got)
}

// TestRegion_WithReconcileOnOpen_ClearsCorruptEntry hand-crafts a location
// entry whose claimed sector was never actually written (the state a crash
// between WriteChunk's payload write and its header flush can leave), and
// checks that opening with WithReconcileOnOpen clears it and frees its
// sectors instead of surfacing it as a present chunk.
func TestRegion_WithReconcileOnOpen_ClearsCorruptEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r.0.0.mca")

	r, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, r.header.setLocationAt(3, 4, HeaderSectors, 1))
	require.NoError(t, r.header.setTimestampAt(3, 4, 1))
	garbage := make([]byte, SectorSize)
	for i := range garbage {
		garbage[i] = 0xFF
	}
	_, err = r.file.WriteAt(garbage, HeaderSectors*SectorSize)
	require.NoError(t, err)
	require.NoError(t, r.flushEntry(3, 4))
	require.NoError(t, r.Close())

	r2, err := Open(path, WithReconcileOnOpen())
	require.NoError(t, err)
	defer r2.Close()

	_, err = r2.ReadChunk(3, 4)
	require.ErrorIs(t, err, errs.ErrChunkNotPresent)

	offset, err := r2.alloc.allocate(1)
	require.NoError(t, err)
	require.Equal(t, HeaderSectors, offset, "reconciled sector should be free and reused first")
}

func TestRegion_WithReconcileOnOpen_LeavesValidEntryAlone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r.0.0.mca")

	r, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, r.WriteChunk(1, 1, []byte("valid payload")))
	require.NoError(t, r.Close())

	r2, err := Open(path, WithReconcileOnOpen())
	require.NoError(t, err)
	defer r2.Close()

	got, err := r2.ReadChunk(1, 1)
	require.NoError(t, err)
	require.Equal(t, []byte("valid payload"), got)
}
