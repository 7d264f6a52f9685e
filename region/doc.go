// Package region implements the sector-addressed region-file container
// format: an 8 KiB header of 1024 location entries and 1024 timestamps
// followed by chunk payloads packed into 4 KiB sectors, each framed as
// [length:4][scheme:1][compressed data].
//
// # Layout
//
// A region file holds up to 1024 chunks, one per (x, z) coordinate in
// 0..31, addressed within the file by a location entry: a 24-bit sector
// offset and an 8-bit sector count (header.go). Chunk payloads are
// compressed with one of six schemes identified by a single byte
// (github.com/anvilgo/anvil/compress, github.com/anvilgo/anvil/format);
// schemes 5 and 6 are non-vanilla extensions accepted on read for
// forward compatibility and only ever written when a caller opts in.
//
// # Allocation
//
// Region.Open validates the header's location entries for internal
// consistency (no overlapping sector ranges, no entry pointing inside the
// header) using internal/collision, then builds a first-fit bitmap
// allocator (alloc.go) that WriteChunk uses to place new or grown payloads.
//
// # Concurrency
//
// A Region serializes all reads and writes through a single mutex; there is
// one location/timestamp table per file and updating it is not safe to
// race. Callers that need concurrent chunk access should use separate
// Region handles or their own external locking.
//
// # Configuration
//
// Open accepts functional Options alongside WithDefaultCompressionScheme
// and WithClock. WithReadOnly opens an existing file without creating or
// mutating it; WriteChunk on a read-only Region fails with
// errs.ErrReadOnlyRegion. WithCreateIfMissing(false) makes a missing path a
// hard error instead of Open's default auto-create. WithSectorLimit caps
// how large the file's sector space may grow, turning an otherwise-infinite
// WriteChunk into one that can fail with errs.ErrNoFreeSectors.
// WithReconcileOnOpen walks the header at Open time and clears any location
// entry whose payload frame fails to parse, releasing its sectors back to
// the allocator; it repairs the header left behind by a crash between a
// payload write and the header flush that publishes it.
package region
