// Command anvilcat inspects a single chunk inside a region file: it opens
// the region, reads the chunk at the given coordinate, decodes it, and
// prints a summary of its sections, biomes, and heightmaps.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/anvilgo/anvil"
)

func main() {
	var x, z int
	flag.IntVar(&x, "x", 0, "in-region chunk x coordinate (0-31)")
	flag.IntVar(&z, "z", 0, "in-region chunk z coordinate (0-31)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: anvilcat -x X -z Z <region-file>")
		os.Exit(2)
	}

	if err := run(flag.Arg(0), x, z); err != nil {
		log.Fatal(err)
	}
}

func run(path string, x, z int) error {
	r, err := anvil.OpenRegion(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer r.Close()

	data, err := r.ReadChunk(x, z)
	if err != nil {
		return fmt.Errorf("reading chunk (%d, %d): %w", x, z, err)
	}
	fmt.Printf("chunk (%d, %d): %d bytes decompressed\n", x, z, len(data))

	c, err := anvil.DecodeChunk(data)
	if err != nil {
		return fmt.Errorf("decoding chunk (%d, %d): %w", x, z, err)
	}

	fmt.Printf("position: (%d, %d)\n", c.X, c.Z)
	fmt.Printf("status: %s\n", c.Status)
	if c.HasVersion {
		fmt.Printf("data version: %d\n", c.DataVersion)
	} else {
		fmt.Println("data version: absent")
	}
	fmt.Printf("sections: %d\n", len(c.Sections))

	for _, sec := range c.Sections {
		fmt.Printf("  Y=%d: %d block states, %d biomes\n", sec.Y, len(sec.BlockPalette), len(sec.BiomePalette))
	}

	names := make([]string, 0, len(c.Heightmaps))
	for name := range c.Heightmaps {
		names = append(names, name)
	}
	fmt.Printf("heightmaps: %v\n", names)

	return nil
}
