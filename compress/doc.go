// Package compress provides the compression codecs used to frame a chunk
// payload inside a region file.
//
// Every payload in a region file is preceded by a 1-byte scheme identifier
// (format.CompressionScheme). This package supplies one Codec per scheme:
//
//   - CompressionGzip (1): RFC 1952, the classic on-disk scheme.
//   - CompressionZlib (2): RFC 1950, the modern default write scheme.
//   - CompressionRaw  (3): no compression.
//   - CompressionLZ4  (4): LZ4 block format (a bare compressed block with
//     no frame header); LZ4 frame-format payloads are not read or written.
//   - CompressionZstd (5): a non-vanilla extension some server forks write;
//     decoded on read for forward compatibility, never emitted unless the
//     caller asks for it explicitly via region.WithDefaultCompressionScheme.
//   - CompressionS2   (6): a second non-vanilla extension scheme, handled
//     the same way as CompressionZstd.
//
// # Architecture
//
// Three interfaces mirror the read/write asymmetry a region engine needs:
// ReadChunk only ever needs a Decompressor, WriteChunk only ever needs a
// Compressor, and CreateCodec hands back the combined Codec for either.
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// # Thread safety
//
// All codec implementations are safe to share across goroutines; each
// Compress/Decompress call is independent and pools its own scratch state.
package compress
