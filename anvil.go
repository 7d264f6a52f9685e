// Package anvil provides convenient top-level wrappers around the region
// and chunk packages for reading and writing Minecraft-style anvil region
// files.
//
// # Core Features
//
//   - Region file access (open, read chunk, write chunk, iterate chunks)
//   - Chunk decoding into palette-indexed sections, biomes, and heightmaps
//   - gzip/zlib/raw/lz4 payload compression, selectable at write time
//
// # Basic Usage
//
// Opening a region and reading a chunk:
//
//	import "github.com/anvilgo/anvil"
//
//	r, err := anvil.OpenRegion("r.0.0.mca")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	data, err := r.ReadChunk(3, 9)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	c, err := anvil.DecodeChunk(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, sec := range c.Sections {
//	    bs, _ := sec.BlockAt(0, 0, 0)
//	    fmt.Println(bs.Name)
//	}
//
// # Package Structure
//
// This package is a thin convenience layer over region and chunk.
// For advanced configuration (write compression scheme, clock override,
// custom loaders), use those packages directly.
package anvil

import (
	"github.com/anvilgo/anvil/chunk"
	"github.com/anvilgo/anvil/region"
)

// OpenRegion opens or creates the region file at path, forwarding opts to
// region.Open. See region.Open for the zero-value behavior of a freshly
// created file.
func OpenRegion(path string, opts ...region.Option) (*region.Region, error) {
	return region.Open(path, opts...)
}

// DecodeChunk parses a chunk's NBT document, as returned by
// (*region.Region).ReadChunk, into a chunk.Chunk.
func DecodeChunk(data []byte) (*chunk.Chunk, error) {
	return chunk.Decode(data)
}

// NewFileLoader returns a region.Loader backed by the directory dir,
// naming files by the r.<x>.<z>.mca convention. opts are applied to every
// region.Open call the loader makes.
func NewFileLoader(dir string, opts ...region.Option) *region.FileLoader {
	return region.NewFileLoader(dir, opts...)
}
