package compress

// ZstdCompressor implements format.CompressionZstd (scheme 5), a
// non-vanilla extension some server forks use in place of zlib for colder
// regions. This package decodes it unconditionally for forward
// compatibility but never emits it unless a caller asks for the scheme
// explicitly.
//
// Two implementations exist behind a build tag: zstd_pure.go (this file's
// companion) uses the pure-Go klauspost/compress/zstd encoder/decoder and
// is always available; zstd_cgo.go swaps in valyala/gozstd, the reference
// C zstd binding, when built with that tag for a faster but cgo-dependent
// codec.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Returns:
//   - ZstdCompressor: New Zstd compressor instance
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(data)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
