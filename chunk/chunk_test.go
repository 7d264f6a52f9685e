package chunk

import (
	"testing"

	"github.com/anvilgo/anvil/format"
	"github.com/anvilgo/anvil/nbt"
	"github.com/stretchr/testify/require"
)

func toInt64s(longs []uint64) []int64 {
	out := make([]int64, len(longs))
	for i, v := range longs {
		out[i] = int64(v)
	}

	return out
}

func blockStateValue(name string, props map[string]string) nbt.Value {
	b := nbt.NewBuilder().String("Name", name)
	if len(props) > 0 {
		pb := nbt.NewBuilder()
		for k, v := range props {
			pb.String(k, v)
		}
		b.Compound("Properties", pb)
	}

	return b.Value()
}

func buildSection(y int8, paletteNames []string, blockIndices []uint32, bits int, packed bool, biomeNames []string, biomeIndices []uint32, biomeBits int) *nbt.Builder {
	paletteItems := make([]nbt.Value, len(paletteNames))
	for i, n := range paletteNames {
		paletteItems[i] = blockStateValue(n, nil)
	}

	var blockLongs []uint64
	if len(blockIndices) > 0 {
		if packed {
			blockLongs = packPacked(blockIndices, bits)
		} else {
			blockLongs = packAligned(blockIndices, bits)
		}
	}

	blockStates := nbt.NewBuilder().List("palette", format.TagCompound, paletteItems)
	if blockLongs != nil {
		blockStates.LongArray("data", toInt64s(blockLongs))
	}

	sec := nbt.NewBuilder().
		Byte("Y", y).
		Compound("block_states", blockStates)

	if len(biomeNames) > 0 {
		biomeItems := make([]nbt.Value, len(biomeNames))
		for i, n := range biomeNames {
			biomeItems[i] = nbt.Value{Tag: format.TagString, Str: n}
		}

		var biomeLongs []uint64
		if len(biomeIndices) > 0 {
			biomeLongs = packAligned(biomeIndices, biomeBits)
		}

		biomes := nbt.NewBuilder().List("palette", format.TagString, biomeItems)
		if biomeLongs != nil {
			biomes.LongArray("data", toInt64s(biomeLongs))
		}
		sec.Compound("biomes", biomes)
	}

	return sec
}

func TestChunkDecode_AlignedLayout(t *testing.T) {
	paletteNames := []string{"minecraft:air", "minecraft:stone", "minecraft:dirt"}
	indices := make([]uint32, blockCellsPerSection)
	indices[0] = 1 // stone at (0,0,0)
	indices[1] = 2 // dirt at (1,0,0)

	sec := buildSection(0, paletteNames, indices, 4, false, []string{"minecraft:plains"}, nil, 1)

	heightmap := packAligned(make([]uint32, heightmapCells), heightmapBits)

	root := nbt.NewBuilder().
		Int("DataVersion", AlignedLayoutDataVersion).
		Int("xPos", 3).
		Int("zPos", -2).
		String("Status", "full").
		List("sections", format.TagCompound, []nbt.Value{sec.Value()}).
		Compound("Heightmaps", nbt.NewBuilder().LongArray("WORLD_SURFACE", toInt64s(heightmap)))

	data, err := nbt.Encode(nil, "", root.Value())
	require.NoError(t, err)

	c, err := Decode(data)
	require.NoError(t, err)

	require.Equal(t, int32(3), c.X)
	require.Equal(t, int32(-2), c.Z)
	require.Equal(t, "full", c.Status)
	require.Len(t, c.Sections, 1)

	s := c.Sections[0]
	require.Equal(t, int8(0), s.Y)

	bs, err := s.BlockAt(0, 0, 0)
	require.NoError(t, err)
	require.Equal(t, "minecraft:stone", bs.Name)

	bs, err = s.BlockAt(1, 0, 0)
	require.NoError(t, err)
	require.Equal(t, "minecraft:dirt", bs.Name)

	bs, err = s.BlockAt(2, 0, 0)
	require.NoError(t, err)
	require.Equal(t, "minecraft:air", bs.Name)

	biome, err := s.BiomeAt(0, 0, 0)
	require.NoError(t, err)
	require.Equal(t, "minecraft:plains", biome)

	require.Len(t, c.Heightmaps["WORLD_SURFACE"], heightmapCells)
}

func TestChunkDecode_PackedLayout_PreAligned(t *testing.T) {
	paletteNames := []string{"minecraft:air", "minecraft:bedrock"}
	indices := make([]uint32, blockCellsPerSection)
	indices[4095] = 1 // last cell is bedrock

	sec := buildSection(0, paletteNames, indices, 4, true, nil, nil, 0)

	root := nbt.NewBuilder().
		Int("DataVersion", AlignedLayoutDataVersion-1).
		String("Status", "full").
		List("sections", format.TagCompound, []nbt.Value{sec.Value()})

	data, err := nbt.Encode(nil, "", root.Value())
	require.NoError(t, err)

	c, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, c.Sections, 1)

	bs, err := c.Sections[0].BlockAt(15, 15, 15)
	require.NoError(t, err)
	require.Equal(t, "minecraft:bedrock", bs.Name)
}

func TestChunkDecode_AmbiguousLayout_NoDataVersion(t *testing.T) {
	// A 17-entry palette needs bits=5, where aligned packing (12
	// indices/long, 342 longs for 4096 cells) and packed packing (320
	// longs) produce different array lengths, letting
	// resolveAmbiguousLayout tell them apart from length alone.
	paletteNames := make([]string, 17)
	for i := range paletteNames {
		paletteNames[i] = "minecraft:block_" + string(rune('a'+i))
	}
	indices := make([]uint32, blockCellsPerSection)
	indices[100] = 16

	sec := buildSection(0, paletteNames, indices, 5, true, nil, nil, 0)

	root := nbt.NewBuilder().
		String("Status", "full").
		List("sections", format.TagCompound, []nbt.Value{sec.Value()})

	data, err := nbt.Encode(nil, "", root.Value())
	require.NoError(t, err)

	c, err := Decode(data)
	require.NoError(t, err)
	require.False(t, c.HasVersion)

	idx := 100
	x, y, z := idx%16, idx/256, (idx/16)%16
	bs, err := c.Sections[0].BlockAt(x, y, z)
	require.NoError(t, err)
	require.Equal(t, paletteNames[16], bs.Name)
}

func TestChunkDecode_SingleEntryPalette_NoPackedData(t *testing.T) {
	sec := buildSection(0, []string{"minecraft:air"}, nil, 4, false, nil, nil, 0)

	root := nbt.NewBuilder().
		Int("DataVersion", AlignedLayoutDataVersion).
		List("sections", format.TagCompound, []nbt.Value{sec.Value()})

	data, err := nbt.Encode(nil, "", root.Value())
	require.NoError(t, err)

	c, err := Decode(data)
	require.NoError(t, err)

	bs, err := c.Sections[0].BlockAt(5, 5, 5)
	require.NoError(t, err)
	require.Equal(t, "minecraft:air", bs.Name)
}
