package chunk

import (
	"github.com/anvilgo/anvil/errs"
	"github.com/anvilgo/anvil/nbt"
)

// blockMinBits is the minimum bit width of a block-state palette index
// ("bits = max(4, ceil(log2(palette.len())))").
const blockMinBits = 4

// Section is one 16x16x16 horizontal slab of a chunk.
type Section struct {
	Y int8

	BlockPalette []*BlockState
	BiomePalette []string

	layout    layout
	blockData []uint64
	biomeData []uint64
}

// BlockAt returns the palette entry of the block at section-local
// coordinate (x, y, z), each in 0..15, linearized as y*256 + z*16 + x.
func (s *Section) BlockAt(x, y, z int) (*BlockState, error) {
	if len(s.BlockPalette) == 1 {
		return s.BlockPalette[0], nil
	}

	i := y*256 + z*16 + x
	bitsPerIndex := bitsForPaletteLen(len(s.BlockPalette), blockMinBits)

	idx, err := extractIndex(s.layout, s.blockData, bitsPerIndex, i)
	if err != nil {
		return nil, err
	}
	if int(idx) >= len(s.BlockPalette) {
		return nil, errs.ErrPaletteIndexOutOfRange
	}

	return s.BlockPalette[idx], nil
}

// decodeSection reads one element of the chunk's "sections" list: a
// section index Y, a block_states sub-document, and an optional biomes
// sub-document.
func decodeSection(d *nbt.Decoder, l layout, in *blockStateInterner) (*Section, error) {
	sec := &Section{layout: l}

	err := d.DecodeStruct([]string{"Y", "block_states", "biomes"}, func(field string, val *nbt.Decoder) error {
		switch field {
		case "Y":
			y, err := val.DecodeI8()
			if err != nil {
				return err
			}
			sec.Y = y

			return nil
		case "block_states":
			return val.DecodeStruct([]string{"palette", "data"}, func(inner string, iv *nbt.Decoder) error {
				switch inner {
				case "palette":
					palette, err := decodePalette(iv, in)
					if err != nil {
						return err
					}
					sec.BlockPalette = palette

					return nil
				case "data":
					longs, err := iv.DecodeLongArray()
					if err != nil {
						return err
					}
					sec.blockData = asUint64(longs)

					return nil
				default:
					return iv.DecodeIgnored()
				}
			})
		case "biomes":
			return val.DecodeStruct([]string{"palette", "data"}, func(inner string, iv *nbt.Decoder) error {
				switch inner {
				case "palette":
					palette, err := decodeBiomePalette(iv)
					if err != nil {
						return err
					}
					sec.BiomePalette = palette

					return nil
				case "data":
					longs, err := iv.DecodeLongArray()
					if err != nil {
						return err
					}
					sec.biomeData = asUint64(longs)

					return nil
				default:
					return iv.DecodeIgnored()
				}
			})
		default:
			return val.DecodeIgnored()
		}
	})
	if err != nil {
		return nil, err
	}
	if len(sec.BlockPalette) == 0 {
		return nil, errs.ErrEmptyPalette
	}

	return sec, nil
}
