// Package chunk decodes a voxel chunk's NBT document into its logical
// structure: a column of 16-high sections, each carrying a palette of block
// descriptors and a bit-packed array of indices into that palette plus an
// optional biome palette, and the chunk's heightmaps.
//
// # Bit-packing layouts
//
// A section's block-state indices are packed into an array of 64-bit
// longs at bits = max(4, ceil(log2(len(palette)))) bits each. Two
// historical layouts exist (bitpack.go): aligned, where indices never span
// a long boundary and unused high bits in the last slot of each long are
// zero, and packed, where indices form one contiguous bitstream across the
// whole array. Which one a chunk uses is determined by its DataVersion
// (chunk.go, Decode); without one, resolveAmbiguousLayout infers it per
// section from the block-data length.
package chunk
