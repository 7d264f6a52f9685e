// Package nbt implements the Named Binary Tag wire format: a self-describing,
// big-endian, tag-prefixed binary serialization used to store voxel chunk
// data and related game state.
//
// # Architecture
//
// Four parts, leaves first:
//
//   - cesu8.go: the modified-UTF-8 string codec NBT uses for all String
//     payloads and Compound field names.
//   - scanner.go: a low-level, stack-based event-pull reader over a byte
//     slice. It knows tag well-formedness (nesting, lengths, EOF) and
//     nothing about what a consumer wants.
//   - decode.go / skip.go / coerce.go: a schema-directed Decoder over the
//     scanner's events. The consumer calls the Decode* method for the shape
//     it expects and passes callbacks for struct fields, sequence elements
//     and map entries; the Decoder performs the numeric coercions and
//     structural skipping a real NBT consumer needs.
//   - value.go: a dynamic Value tree, built directly off the scanner, for
//     callers that just want "give me everything," plus the symmetric Encode path.
//
// # Borrowing
//
// A decoded string whose modified-UTF-8 bytes are byte-identical to their
// UTF-8 form (no embedded NUL, no supplementary-plane code points) is
// borrowable: Value.StrBorrow is true and DecodeBorrowedString succeeds.
// Any other string is transcoded, and DecodeBorrowedString rejects it. In
// both cases the returned Go string is a copy and does not alias the input.
// A ByteArray, by contrast, is returned as a slice of the input buffer and
// shares its memory.
//
// # Configuration
//
// Decode accepts functional Options. WithFieldRenamer relaxes DecodeStruct's
// field matching from exact equality to a caller-supplied normalization
// (e.g. strings.ToLower for case-insensitive schemas). WithMaxDepth bounds
// how far DecodeStruct, DecodeSeq, and DecodeMap will descend into nested
// Compounds and Lists before returning errs.ErrMaxDepthExceeded, guarding
// against pathologically (or maliciously) nested documents.
package nbt
