package chunk

import (
	"github.com/anvilgo/anvil/nbt"
)

// AlignedLayoutDataVersion is the first DataVersion that writes block-state
// data in the aligned layout (the 1.16 cycle snapshot cutover). Chunks at
// or above this version are aligned; below it, packed.
const AlignedLayoutDataVersion int32 = 2529

// blockCellsPerSection is the voxel count of one 16x16x16 section.
const blockCellsPerSection = 16 * 16 * 16

// Chunk is the decoded logical structure of one chunk's NBT document.
type Chunk struct {
	X, Z        int32
	DataVersion int32
	HasVersion  bool
	Status      string
	Sections    []*Section
	Heightmaps  map[string][]int32
}

// Decode parses a chunk's NBT document (as produced by region.ReadChunk)
// into a Chunk.
//
// Layout selection reads c.DataVersion as it is encountered, so it only
// sees a real version by the time "sections" is reached if the document
// writes DataVersion first, which every known chunk writer does. A
// document that writes sections before DataVersion is treated as if
// DataVersion were absent for those sections, falling back to the same
// per-section layout inference resolveAmbiguousLayout performs.
func Decode(data []byte) (*Chunk, error) {
	root, _, err := nbt.Decode(data)
	if err != nil {
		return nil, err
	}

	c := &Chunk{}
	in := newBlockStateInterner()
	sectionsBeforeVersion := false

	err = root.DecodeStruct(
		[]string{"DataVersion", "xPos", "zPos", "Status", "sections", "Heightmaps"},
		func(field string, val *nbt.Decoder) error {
			switch field {
			case "DataVersion":
				v, err := val.DecodeI32()
				if err != nil {
					return err
				}
				c.DataVersion = v
				c.HasVersion = true

				return nil
			case "xPos":
				v, err := val.DecodeI32()
				if err != nil {
					return err
				}
				c.X = v

				return nil
			case "zPos":
				v, err := val.DecodeI32()
				if err != nil {
					return err
				}
				c.Z = v

				return nil
			case "Status":
				v, err := val.DecodeString()
				if err != nil {
					return err
				}
				c.Status = v

				return nil
			case "sections":
				l := layoutAligned
				if c.HasVersion && c.DataVersion < AlignedLayoutDataVersion {
					l = layoutPacked
				}
				if !c.HasVersion {
					sectionsBeforeVersion = true
				}

				return val.DecodeSeq(func(elem *nbt.Decoder) error {
					sec, err := decodeSection(elem, l, in)
					if err != nil {
						return err
					}
					c.Sections = append(c.Sections, sec)

					return nil
				})
			case "Heightmaps":
				hm, err := decodeHeightmaps(val)
				if err != nil {
					return err
				}
				c.Heightmaps = hm

				return nil
			default:
				return val.DecodeIgnored()
			}
		},
	)
	if err != nil {
		return nil, err
	}

	if sectionsBeforeVersion {
		resolveAmbiguousLayout(c.Sections)
	}

	return c, nil
}

// resolveAmbiguousLayout is invoked only when a chunk's sections were
// decoded before any DataVersion field was seen (including a chunk with no
// DataVersion at all): each section's packing is
// inferred from whether its block-data length matches what aligned packing
// would produce for its palette size, falling back to packed otherwise.
func resolveAmbiguousLayout(sections []*Section) {
	for _, sec := range sections {
		bits := bitsForPaletteLen(len(sec.BlockPalette), blockMinBits)
		if len(sec.blockData) != expectedAlignedLongs(bits, blockCellsPerSection) {
			sec.layout = layoutPacked
		}
	}
}

