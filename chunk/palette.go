package chunk

import (
	"sort"
	"strings"

	"github.com/anvilgo/anvil/errs"
	"github.com/anvilgo/anvil/internal/hash"
	"github.com/anvilgo/anvil/nbt"
)

// BlockState is a single palette entry: a block's registry name plus its
// optional property map (e.g. "minecraft:redstone_wire" with
// {"power": "0", "east": "none", ...}).
type BlockState struct {
	Name       string
	Properties map[string]string
}

// key builds the interning key this descriptor would hash to: the name
// followed by its properties sorted by key, so two decodes of the same
// logical block state always produce the same key regardless of the NBT
// map's on-disk iteration order.
func (b BlockState) key() string {
	if len(b.Properties) == 0 {
		return b.Name
	}

	keys := make([]string, 0, len(b.Properties))
	for k := range b.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(b.Name)
	for _, k := range keys {
		sb.WriteByte('\x00')
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(b.Properties[k])
	}

	return sb.String()
}

// blockStateInterner deduplicates identical BlockState descriptors decoded
// across a chunk's many sections, so repeated palette entries (e.g. "air"
// appears in nearly every section) share one allocation.
type blockStateInterner struct {
	entries map[uint64]*BlockState
}

func newBlockStateInterner() *blockStateInterner {
	return &blockStateInterner{entries: make(map[uint64]*BlockState)}
}

func (in *blockStateInterner) intern(b BlockState) *BlockState {
	id := hash.ID(b.key())
	if existing, ok := in.entries[id]; ok {
		return existing
	}

	stored := b
	in.entries[id] = &stored

	return &stored
}

// decodeBlockState reads a single palette entry: a Name string and an
// optional Properties compound of string-to-string pairs.
func decodeBlockState(d *nbt.Decoder) (BlockState, error) {
	var bs BlockState
	hasName := false

	err := d.DecodeStruct([]string{"Name", "Properties"}, func(field string, val *nbt.Decoder) error {
		switch field {
		case "Name":
			s, err := val.DecodeString()
			if err != nil {
				return err
			}
			bs.Name = s
			hasName = true

			return nil
		case "Properties":
			props := make(map[string]string)
			err := val.DecodeMap(func(key string, mv *nbt.Decoder) error {
				s, err := mv.DecodeString()
				if err != nil {
					return err
				}
				props[key] = s

				return nil
			})
			if err != nil {
				return err
			}
			bs.Properties = props

			return nil
		default:
			return val.DecodeIgnored()
		}
	})
	if err != nil {
		return BlockState{}, err
	}
	if !hasName {
		return BlockState{}, nbt.MissingField("Name")
	}

	return bs, nil
}

// decodePalette reads a List of block-state compounds into a slice of
// BlockState pointers, interning each entry through in.
func decodePalette(d *nbt.Decoder, in *blockStateInterner) ([]*BlockState, error) {
	var palette []*BlockState

	err := d.DecodeSeq(func(elem *nbt.Decoder) error {
		bs, err := decodeBlockState(elem)
		if err != nil {
			return err
		}
		palette = append(palette, in.intern(bs))

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
