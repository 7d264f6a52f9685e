package region

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/anvilgo/anvil/compress"
	"github.com/anvilgo/anvil/errs"
	"github.com/anvilgo/anvil/format"
	"github.com/anvilgo/anvil/internal/options"
	"github.com/anvilgo/anvil/internal/pool"
)

// frameHeaderSize is the 4-byte length prefix plus the 1-byte scheme
// discriminator that precede every chunk's compressed payload.
const frameHeaderSize = 4 + 1

// Option configures a Region at Open time.
type Option = options.Option[*Region]

// WithDefaultCompressionScheme sets the scheme WriteChunk uses for newly
// written payloads. It defaults to format.CompressionZlib, the scheme
// vanilla-compatible writers emit by default.
func WithDefaultCompressionScheme(scheme format.CompressionScheme) Option {
	return options.NoError(func(r *Region) {
		r.writeScheme = scheme
	})
}

// WithClock overrides the source of WriteChunk's timestamp-table updates.
// Tests use this to avoid depending on wall-clock time.
func WithClock(now func() uint32) Option {
	return options.New(func(r *Region) error {
		if now == nil {
			return fmt.Errorf("region: clock option must not be nil")
		}
		r.now = now

		return nil
	})
}

// WithReadOnly opens the region file read-only: the file must already
// exist, and WriteChunk returns errs.ErrReadOnlyRegion.
func WithReadOnly() Option {
	return options.NoError(func(r *Region) {
		r.readOnly = true
	})
}

// WithCreateIfMissing controls whether Open creates a new, empty region
// file when path does not exist. It defaults to true; passing false makes
// Open fail with errs.ErrRegionOpenFailed instead of creating the file.
func WithCreateIfMissing(create bool) Option {
	return options.NoError(func(r *Region) {
		r.createIfMissing = create
	})
}

// WithReconcileOnOpen validates every present location entry's payload
// frame at Open time and clears (and frees the sectors of) any entry whose
// frame fails to parse, the repair a crash between a payload write and its
// header flush can require. It has no effect when combined with
// WithReadOnly, since the repair must persist the cleared entries.
func WithReconcileOnOpen() Option {
	return options.NoError(func(r *Region) {
		r.reconcileOnOpen = true
	})
}

// WithSectorLimit caps the total number of sectors (including the 2-sector
// header) the region file may grow to. Once reached, WriteChunk calls that
// cannot fit in an already-freed gap return errs.ErrNoFreeSectors instead of
// growing the file. n must be positive.
func WithSectorLimit(n int) Option {
	return options.New(func(r *Region) error {
		if n <= 0 {
			return fmt.Errorf("region: sector limit must be positive, got %d", n)
		}
		r.sectorLimit = n

		return nil
	})
}

// Region is an open handle to a single region file: the 8 KiB header plus
// the sector space holding up to 1024 chunk payloads.
type Region struct {
	mu          sync.Mutex
	file        *os.File
	header      *Header
	alloc       *allocator
	writeScheme format.CompressionScheme
	now         func() uint32

	readOnly        bool
	createIfMissing bool
	reconcileOnOpen bool
	sectorLimit     int
}

// Open opens or creates the region file at path. A freshly created file
// starts with an all-zero 8 KiB header (every chunk absent). By default a
// missing file is created; WithReadOnly or WithCreateIfMissing(false)
// instead require it to already exist.
func Open(path string, opts ...Option) (*Region, error) {
	r := &Region{
		writeScheme:     format.CompressionZlib,
		now:             defaultClock,
		createIfMissing: true,
	}

	if err := options.Apply(r, opts...); err != nil {
		return nil, err
	}

	flags := os.O_RDWR
	switch {
	case r.readOnly:
		flags = os.O_RDONLY
	case r.createIfMissing:
		flags |= os.O_CREATE
	}

	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrRegionOpenFailed, err)
	}
	r.file = f

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %w", errs.ErrRegionOpenFailed, err)
	}

	if info.Size() == 0 {
		r.header = &Header{}
		if !r.readOnly {
			if _, err := f.WriteAt(r.header.Bytes(), 0); err != nil {
				f.Close()
				return nil, fmt.Errorf("%w: %w", errs.ErrRegionOpenFailed, err)
			}
		}
	} else {
		buf := make([]byte, HeaderSectors*SectorSize)
		if _, err := f.ReadAt(buf, 0); err != nil {
			f.Close()
			return nil, fmt.Errorf("%w: %w", errs.ErrRegionOpenFailed, err)
		}

		h, err := ParseHeader(buf)
		if err != nil {
			f.Close()
			return nil, err
		}
		r.header = h
	}

	r.alloc = newAllocator(r.header, r.sectorLimit)

	if r.reconcileOnOpen && !r.readOnly {
		if err := r.reconcileStaleSectors(); err != nil {
			f.Close()
			return nil, err
		}
	}

	return r, nil
}

// Close releases the underlying file handle.
func (r *Region) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.file.Close()
}

// ReadChunk returns the decompressed NBT document for the chunk at in-region
// coordinate (x, z), or errs.ErrChunkNotPresent if its location entry is
// all-zero.
func (r *Region) ReadChunk(x, z int) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	loc, err := r.header.locationAt(x, z)
	if err != nil {
		return nil, err
	}
	if !loc.present() {
		return nil, fmt.Errorf("%w: (%d, %d)", errs.ErrChunkNotPresent, x, z)
	}

	sectorBuf, cleanup := pool.GetByteSlice(int(loc.count) * SectorSize)
	defer cleanup()

	if _, err := r.file.ReadAt(sectorBuf, int64(loc.offset)*SectorSize); err != nil {
		return nil, fmt.Errorf("%w: reading chunk (%d, %d): %v", errs.ErrCorruptRegionHeader, x, z, err)
	}

	length := be.Uint32(sectorBuf[0:4])
	if length == 0 || int(length) > len(sectorBuf)-4 {
		return nil, fmt.Errorf("%w: chunk (%d, %d) declares length %d beyond its %d allocated sectors",
			errs.ErrCorruptRegionHeader, x, z, length, loc.count)
	}

	scheme := format.CompressionScheme(sectorBuf[4])
	if scheme.External() {
		return nil, fmt.Errorf("%w: chunk (%d, %d)", errs.ErrExternalPayload, x, z)
	}

	codec, err := compress.GetCodec(scheme)
	if err != nil {
		return nil, fmt.Errorf("%w: chunk (%d, %d) scheme %d", errs.ErrUnknownCompressionScheme, x, z, scheme)
	}

	payload := sectorBuf[5 : 4+length]
	data, err := codec.Decompress(payload)
	if err != nil {
		return nil, fmt.Errorf("region: decompressing chunk (%d, %d): %w", x, z, err)
	}

	return data, nil
}

// WriteChunk compresses data with the region's configured write scheme,
// allocates (or reallocates) sectors for it, and updates the location and
// timestamp tables. The previous sector range for (x, z), if any, is
// released back to the allocator before the new range is claimed.
func (r *Region) WriteChunk(x, z int, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.readOnly {
		return fmt.Errorf("%w: chunk (%d, %d)", errs.ErrReadOnlyRegion, x, z)
	}

	codec, err := compress.GetCodec(r.writeScheme)
	if err != nil {
		return err
	}

	compressed, err := codec.Compress(data)
	if err != nil {
		return fmt.Errorf("region: compressing chunk (%d, %d): %w", x, z, err)
	}

	frameLen := 1 + len(compressed)
	sectors := sectorsFor(frameHeaderSize - 1 + frameLen)

	prev, err := r.header.locationAt(x, z)
	if err != nil {
		return err
	}
	if prev.present() {
		r.alloc.release(int(prev.offset), int(prev.count))
	}

	offset, err := r.alloc.allocate(sectors)
	if err != nil {
		return fmt.Errorf("region: writing chunk (%d, %d): %w", x, z, err)
	}

	buf := pool.GetSectorBuffer()
	defer pool.PutSectorBuffer(buf)
	buf.ExtendOrGrow(sectors * SectorSize)
	frame := buf.Bytes()
	clear(frame)

	be.PutUint32(frame[0:4], uint32(frameLen))
	frame[4] = byte(r.writeScheme)
	copy(frame[5:], compressed)

	if _, err := r.file.WriteAt(frame, int64(offset)*SectorSize); err != nil {
		return fmt.Errorf("region: writing chunk (%d, %d): %w", x, z, err)
	}

	if err := r.header.setLocationAt(x, z, uint32(offset), uint8(sectors)); err != nil {
		return err
	}
	if err := r.header.setTimestampAt(x, z, r.now()); err != nil {
		return err
	}

	return r.flushEntry(x, z)
}

// flushEntry writes back the location and timestamp table entries for
// (x, z) as two 4-byte writes, the linearization point for a chunk update:
// a reader observing the new location entry always finds the sectors it
// points to already containing the new payload, since the payload write
// above happens-before this call under the region's mutex.
func (r *Region) flushEntry(x, z int) error {
	i, err := index(x, z)
	if err != nil {
		return err
	}

	locBytes := r.header.locationBytesAt(i)
	if _, err := r.file.WriteAt(locBytes[:], int64(i*locationEntrySize)); err != nil {
		return fmt.Errorf("region: flushing location entry (%d, %d): %w", x, z, err)
	}

	tsBytes := r.header.timestampBytesAt(i)
	tsOff := tableEntries*locationEntrySize + i*timestampEntrySize
	if _, err := r.file.WriteAt(tsBytes[:], int64(tsOff)); err != nil {
		return fmt.Errorf("region: flushing timestamp entry (%d, %d): %w", x, z, err)
	}

	return nil
}

// ForEachChunk invokes f once for every present chunk, in table order
// (z*32+x ascending). Iteration stops at the first error f returns.
func (r *Region) ForEachChunk(f func(x, z int, data []byte) error) error {
	for z := range 32 {
		for x := range 32 {
			r.mu.Lock()
			loc, err := r.header.locationAt(x, z)
			r.mu.Unlock()
			if err != nil {
				return err
			}
			if !loc.present() {
				continue
			}

			data, err := r.ReadChunk(x, z)
			if err != nil {
				return err
			}
			if err := f(x, z, data); err != nil {
				return err
			}
		}
	}

	return nil
}

// reconcileStaleSectors validates every present location entry's frame
// header and releases (and clears) any entry that fails validation. A
// crash between a payload write and the header flush that publishes it can
// leave such an entry pointing at sectors that were never finished, or at
// sectors a subsequent allocation has since overwritten with unrelated data.
func (r *Region) reconcileStaleSectors() error {
	for z := range 32 {
		for x := range 32 {
			loc, err := r.header.locationAt(x, z)
			if err != nil {
				return err
			}
			if !loc.present() {
				continue
			}

			if r.validFrame(loc) {
				continue
			}

			r.alloc.release(int(loc.offset), int(loc.count))
			if err := r.header.setLocationAt(x, z, 0, 0); err != nil {
				return err
			}
			if err := r.header.setTimestampAt(x, z, 0); err != nil {
				return err
			}
			if err := r.flushEntry(x, z); err != nil {
				return err
			}
		}
	}

	return nil
}

// validFrame reports whether the sectors loc claims hold a well-formed
// frame: a length prefix that fits within the claimed sectors and a scheme
// byte that resolves to a registered (or external) codec.
func (r *Region) validFrame(loc location) bool {
	sectorBuf, cleanup := pool.GetByteSlice(int(loc.count) * SectorSize)
	defer cleanup()

	if _, err := r.file.ReadAt(sectorBuf, int64(loc.offset)*SectorSize); err != nil {
		return false
	}

	length := be.Uint32(sectorBuf[0:4])
	if length == 0 || int(length) > len(sectorBuf)-4 {
		return false
	}

	scheme := format.CompressionScheme(sectorBuf[4])
	if scheme.External() {
		return true
	}

	_, err := compress.GetCodec(scheme)
	return err == nil
}

// defaultClock returns the current Unix timestamp, the source WriteChunk
// records in the timestamp table unless overridden via WithClock.
func defaultClock() uint32 {
	return uint32(time.Now().Unix())
}
