package compress

import (
	"fmt"

	"github.com/anvilgo/anvil/format"
)

// Compressor compresses a single chunk payload before it is framed and
// written to a region file sector.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller
	//   - Input slice is not modified
	//   - Internal buffers may be reused for efficiency
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor, turning a framed chunk payload back
// into an NBT document.
//
// Thread Safety: Decompressor implementations must be safe for concurrent use.
type Decompressor interface {
	// Decompress decompresses the input data and returns the original result.
	//
	// Error conditions:
	//   - Returns error if input data is corrupted or invalid
	//   - Returns error if data was compressed with an incompatible algorithm
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec is a factory function that creates a Codec for the given
// region-file compression scheme. The external-payload bit
// (format.CompressionScheme.External) is not a codec concern: CreateCodec
// selects the codec by scheme.Base(), ignoring that bit, and does not
// resolve external payloads.
//
// Parameters:
//   - scheme: the base compression scheme byte read from a chunk's payload header
//   - target: description of the caller, used only in the error message
func CreateCodec(scheme format.CompressionScheme, target string) (Codec, error) {
	switch scheme.Base() {
	case format.CompressionGzip:
		return NewGzipCompressor(), nil
	case format.CompressionZlib:
		return NewZlibCompressor(), nil
	case format.CompressionRaw:
		return NewRawCompressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression scheme: %s", target, scheme)
	}
}

var builtinCodecs = map[format.CompressionScheme]Codec{
	format.CompressionGzip: NewGzipCompressor(),
	format.CompressionZlib: NewZlibCompressor(),
	format.CompressionRaw:  NewRawCompressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
}

// GetCodec retrieves a built-in Codec for the given base compression scheme.
func GetCodec(scheme format.CompressionScheme) (Codec, error) {
	if codec, ok := builtinCodecs[scheme.Base()]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression scheme: %s", scheme)
}
