package region

import (
	"fmt"

	"github.com/anvilgo/anvil/endian"
	"github.com/anvilgo/anvil/errs"
	"github.com/anvilgo/anvil/internal/collision"
)

const (
	// SectorSize is the fixed allocation unit of a region file.
	SectorSize = 4096

	// tableEntries is the fixed size of both tables: one slot
	// per (x, z) chunk-within-region coordinate, row-major by z*32+x.
	tableEntries = 1024

	// HeaderSectors is the number of sectors the location and timestamp
	// tables occupy; chunk payloads never start before this.
	HeaderSectors = 2

	locationEntrySize  = 4
	timestampEntrySize = 4
)

var be = endian.GetBigEndianEngine()

// location is one decoded 4-byte location-table entry: a 24-bit sector
// offset and an 8-bit sector count. Both zero means "absent".
type location struct {
	offset uint32 // in sectors
	count  uint8  // in sectors
}

func (l location) present() bool {
	return l.offset != 0 || l.count != 0
}

// Header holds the parsed 8 KiB region header: 1024 location entries and
// 1024 timestamps, indexed by z*32+x.
type Header struct {
	locations  [tableEntries]location
	timestamps [tableEntries]uint32
}

// index converts in-region chunk coordinates to a table index.
func index(x, z int) (int, error) {
	if x < 0 || x > 31 || z < 0 || z > 31 {
		return 0, fmt.Errorf("%w: (%d, %d) out of 0..31 range", errs.ErrInvalidCoordinate, x, z)
	}

	return z*32 + x, nil
}

// ParseHeader parses the first two sectors of a region file. It validates
// every location entry's sector range: offsets below HeaderSectors (with a
// nonzero count) are corrupt, and overlapping ranges across entries are
// corrupt.
func ParseHeader(data []byte) (*Header, error) {
	if len(data) < HeaderSectors*SectorSize {
		return nil, fmt.Errorf("%w: header is %d bytes, need %d", errs.ErrCorruptRegionHeader, len(data), HeaderSectors*SectorSize)
	}

	h := &Header{}
	tracker := collision.NewTracker()

	for i := range tableEntries {
		off := i * locationEntrySize
		raw24 := uint32(data[off])<<16 | uint32(data[off+1])<<8 | uint32(data[off+2])
		count := data[off+3]

		loc := location{offset: raw24, count: count}
		if !loc.present() {
			continue
		}

		if loc.offset < HeaderSectors {
			return nil, fmt.Errorf("%w: entry %d offset %d overlaps header", errs.ErrCorruptRegionHeader, i, loc.offset)
		}
		if loc.count == 0 {
			return nil, fmt.Errorf("%w: entry %d has nonzero offset but zero sector count", errs.ErrCorruptRegionHeader, i)
		}

		if err := tracker.TrackRange(i, int(loc.offset), int(loc.count)); err != nil {
			return nil, err
		}

		h.locations[i] = loc
	}

	tsBase := tableEntries * locationEntrySize
	for i := range tableEntries {
		off := tsBase + i*timestampEntrySize
		h.timestamps[i] = be.Uint32(data[off : off+4])
	}

	return h, nil
}

// Bytes serializes the header back into an 8 KiB buffer.
func (h *Header) Bytes() []byte {
	buf := make([]byte, HeaderSectors*SectorSize)

	for i, loc := range h.locations {
		off := i * locationEntrySize
		buf[off] = byte(loc.offset >> 16)
		buf[off+1] = byte(loc.offset >> 8)
		buf[off+2] = byte(loc.offset)
		buf[off+3] = loc.count
	}

	tsBase := tableEntries * locationEntrySize
	for i, ts := range h.timestamps {
		off := tsBase + i*timestampEntrySize
		be.PutUint32(buf[off:off+4], ts)
	}

	return buf
}

// locationAt returns the decoded location entry for in-region coordinate (x, z).
func (h *Header) locationAt(x, z int) (location, error) {
	i, err := index(x, z)
	if err != nil {
		return location{}, err
	}

	return h.locations[i], nil
}

// setLocationAt updates a single location entry in memory. setLocationAt
// and setTimestampAt change only the in-memory tables; Region.flushEntry
// then writes the changed entries back as two 4-byte writes, the update's
// linearization point.
func (h *Header) setLocationAt(x, z int, offset uint32, count uint8) error {
	i, err := index(x, z)
	if err != nil {
		return err
	}
	h.locations[i] = location{offset: offset, count: count}

	return nil
}

func (h *Header) setTimestampAt(x, z int, ts uint32) error {
	i, err := index(x, z)
	if err != nil {
		return err
	}
	h.timestamps[i] = ts

	return nil
}

// locationBytesAt returns the 4-byte on-disk encoding of entry i, used to
// perform the atomic 4-byte write update in isolation rather than
// rewriting the full header sector.
func (h *Header) locationBytesAt(i int) [4]byte {
	loc := h.locations[i]
	var b [4]byte
	b[0] = byte(loc.offset >> 16)
	b[1] = byte(loc.offset >> 8)
	b[2] = byte(loc.offset)
	b[3] = loc.count

	return b
}

func (h *Header) timestampBytesAt(i int) [4]byte {
	var b [4]byte
	be.PutUint32(b[:], h.timestamps[i])

	return b
}
