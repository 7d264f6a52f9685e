package compress

// RawCompressor implements format.CompressionRaw: the chunk payload is
// stored uncompressed (scheme 3).
//
// This is the fallback a writer can use when a chunk is small enough that
// compression overhead would exceed the savings, and the scheme any decoder
// must handle alongside the compressed ones.
type RawCompressor struct{}

var _ Codec = (*RawCompressor)(nil)

// NewRawCompressor creates a new raw (pass-through) codec.
func NewRawCompressor() RawCompressor {
	return RawCompressor{}
}

// Compress returns the input data directly without copying.
//
// The returned slice shares the same underlying memory as the input.
// Callers should not modify the input data after calling this method if
// they plan to use the returned slice.
func (c RawCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns the input data directly without copying.
func (c RawCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
