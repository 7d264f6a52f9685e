// Package errs declares the sentinel errors shared by the nbt, region, and
// chunk packages.
//
// Every decode or I/O failure in this module wraps one of these sentinels
// with fmt.Errorf("%w: ...", errs.ErrX) so callers can branch on error kind
// with errors.Is while still getting a human-readable message. None of the
// wrapped detail ever holds a reference into caller-owned input buffers, so
// every error returned from this module is safe to retain, log, or compare
// after the input that produced it has been discarded or reused.
package errs

import "errors"

// NBT decode errors.
var (
	// ErrUnexpectedEOF means the input was truncated mid-field.
	ErrUnexpectedEOF = errors.New("nbt: unexpected end of input")
	// ErrInvalidTag means a tag byte did not match any of the 13 known discriminators.
	ErrInvalidTag = errors.New("nbt: invalid tag byte")
	// ErrNonRootCompound means the outermost tag of a document was not Compound.
	ErrNonRootCompound = errors.New("nbt: root tag is not a compound")
	// ErrTypeMismatch means the consumer asked for a shape the source tag cannot satisfy.
	ErrTypeMismatch = errors.New("nbt: type mismatch")
	// ErrRangeError means a numeric source value does not fit the target's range.
	ErrRangeError = errors.New("nbt: value out of range for target type")
	// ErrInvalidCesu8 means a string payload was not valid modified UTF-8.
	ErrInvalidCesu8 = errors.New("nbt: invalid modified utf-8 (cesu-8)")
	// ErrCannotBorrowCesu8 means a borrowed string was requested but the
	// modified-UTF-8 bytes differ from the string's UTF-8 representation.
	ErrCannotBorrowCesu8 = errors.New("nbt: cannot borrow cesu-8 string, representations differ")
	// ErrGzipInput means the input begins with the gzip magic 1F 8B and must
	// be decompressed by the caller before decoding.
	ErrGzipInput = errors.New("nbt: input appears to be gzip compressed")
	// ErrMissingField means a required struct field was absent from the compound.
	ErrMissingField = errors.New("nbt: missing required field")
	// ErrInvalidLength means an array or list length is inconsistent with the target shape.
	ErrInvalidLength = errors.New("nbt: invalid length for target type")

	// ErrUnterminatedCompound means a Compound was not closed with an End tag.
	ErrUnterminatedCompound = errors.New("nbt: unterminated compound")
	// ErrMaxDepthExceeded means the nesting depth guard configured via
	// nbt.WithMaxDepth was exceeded while descending into a Compound or List.
	ErrMaxDepthExceeded = errors.New("nbt: maximum nesting depth exceeded")
)

// Region container errors.
var (
	// ErrCorruptRegionHeader means the 8 KiB location/timestamp header failed validation.
	ErrCorruptRegionHeader = errors.New("region: corrupt header")
	// ErrChunkNotPresent means the location entry for a coordinate is all zero.
	ErrChunkNotPresent = errors.New("region: chunk not present")
	// ErrUnknownCompressionScheme means the payload's scheme byte is not recognized.
	ErrUnknownCompressionScheme = errors.New("region: unknown compression scheme")
	// ErrSectorOverlap means two location entries claim overlapping sector ranges.
	ErrSectorOverlap = errors.New("region: chunk sector ranges overlap")
	// ErrExternalPayload means the high bit of the scheme byte marks the
	// payload as stored externally; the core does not resolve it.
	ErrExternalPayload = errors.New("region: payload stored externally, not resolved by this module")
	// ErrRegionOpenFailed distinguishes a failed Open (permission, disk error)
	// from ErrChunkNotPresent: an unreadable region is never silently
	// treated as an absent one.
	ErrRegionOpenFailed = errors.New("region: failed to open region file")
	// ErrNoFreeSectors means the allocator could not satisfy a request without
	// growing the file past the limit configured via region.WithSectorLimit.
	ErrNoFreeSectors = errors.New("region: no free sector range of sufficient size")
	// ErrInvalidCoordinate means a chunk coordinate was outside 0..31.
	ErrInvalidCoordinate = errors.New("region: chunk coordinate out of range")
	// ErrInvalidFilename means a region filename did not match the r.<x>.<z>.mca pattern.
	ErrInvalidFilename = errors.New("region: filename does not match r.<x>.<z>.mca")
	// ErrReadOnlyRegion means WriteChunk was called on a Region opened with
	// region.WithReadOnly.
	ErrReadOnlyRegion = errors.New("region: region is read-only")
)

// Chunk decode errors.
var (
	// ErrPaletteIndexOutOfRange means an extracted block-state index was >= len(palette).
	ErrPaletteIndexOutOfRange = errors.New("chunk: palette index out of range")
	// ErrEmptyPalette means a section's block-state or biome palette was
	// empty or missing.
	ErrEmptyPalette = errors.New("chunk: empty palette with non-empty block data")
)
