package chunk

import (
	"github.com/anvilgo/anvil/errs"
	"github.com/anvilgo/anvil/nbt"
)

// biomeMinBits is the minimum bit width of a biome palette index; unlike
// block-state palettes (minimum 4 bits), a single-biome section packs its
// index in 1 bit.
const biomeMinBits = 1

// decodeBiomePalette reads a List of bare biome-name strings.
func decodeBiomePalette(d *nbt.Decoder) ([]string, error) {
	var palette []string

	err := d.DecodeSeq(func(elem *nbt.Decoder) error {
		s, err := elem.DecodeString()
		if err != nil {
			return err
		}
		palette = append(palette, s)

		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(palette) == 0 {
		return nil, errs.ErrEmptyPalette
	}

	return palette, nil
}

// BiomeAt returns the biome name at the 4x4x4 biome-cell coordinate
// (cx, cy, cz), each in 0..3, within the section. A section with a
// single-entry palette and no packed data is uniformly that one biome.
func (s *Section) BiomeAt(cx, cy, cz int) (string, error) {
	if len(s.BiomePalette) == 1 {
		return s.BiomePalette[0], nil
	}

	i := cy*16 + cz*4 + cx
	bitsPerIndex := bitsForPaletteLen(len(s.BiomePalette), biomeMinBits)

	idx, err := extractIndex(s.layout, s.biomeData, bitsPerIndex, i)
	if err != nil {
		return "", err
	}
	if int(idx) >= len(s.BiomePalette) {
		return "", errs.ErrPaletteIndexOutOfRange
	}

	return s.BiomePalette[idx], nil
}
