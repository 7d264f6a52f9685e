package nbt

import (
	"testing"

	"github.com/anvilgo/anvil/format"
	"github.com/stretchr/testify/require"
)

func TestDecodeValue_EncodeRoundTrip(t *testing.T) {
	inner := NewCompound()
	inner.Append("lit", Value{Tag: format.TagString, Str: "false"})

	root := NewCompound()
	root.Append("Name", Value{Tag: format.TagString, Str: "minecraft:redstone_ore"})
	root.Append("Properties", Value{Tag: format.TagCompound, Compound: inner})
	root.Append("y", Value{Tag: format.TagByte, Byte: -5})
	root.Append("bits", Value{Tag: format.TagIntArray, IntArray: []int32{1, 2, 3}})
	root.Append("tags", Value{
		Tag:      format.TagList,
		ListElem: format.TagString,
		List: []Value{
			{Tag: format.TagString, Str: "a"},
			{Tag: format.TagString, Str: "b"},
		},
	})

	encoded, err := Encode(nil, "root", Value{Tag: format.TagCompound, Compound: root})
	require.NoError(t, err)

	name, decoded, err := DecodeValue(encoded)
	require.NoError(t, err)
	require.Equal(t, "root", name)

	require.Equal(t, root.Len(), decoded.Compound.Len())
	for i, e := range root.Entries {
		got := decoded.Compound.Entries[i]
		require.Equal(t, e.Name, got.Name)
		require.Equal(t, e.Value.Tag, got.Value.Tag)
	}

	nameVal, _ := decoded.Compound.Get("Name")
	require.Equal(t, "minecraft:redstone_ore", nameVal.Str)

	propsVal, _ := decoded.Compound.Get("Properties")
	litVal, ok := propsVal.Compound.Get("lit")
	require.True(t, ok)
	require.Equal(t, "false", litVal.Str)

	yVal, _ := decoded.Compound.Get("y")
	require.EqualValues(t, -5, yVal.Byte)

	bitsVal, _ := decoded.Compound.Get("bits")
	require.Equal(t, []int32{1, 2, 3}, bitsVal.IntArray)

	tagsVal, _ := decoded.Compound.Get("tags")
	require.Len(t, tagsVal.List, 2)
	require.Equal(t, "a", tagsVal.List[0].Str)
	require.Equal(t, "b", tagsVal.List[1].Str)
}

func TestCompound_DuplicateNames_LastWinsIterationPreservesAll(t *testing.T) {
	c := NewCompound()
	c.Append("k", Value{Tag: format.TagInt, Int: 1})
	c.Append("k", Value{Tag: format.TagInt, Int: 2})

	v, ok := c.Get("k")
	require.True(t, ok)
	require.EqualValues(t, 2, v.Int)

	require.Equal(t, 2, c.Len())
	require.EqualValues(t, 1, c.Entries[0].Value.Int)
	require.EqualValues(t, 2, c.Entries[1].Value.Int)
}

func TestDecodeValue_NonRootCompoundRejected(t *testing.T) {
	data := []byte{0x01, 0x00, 0x00, 0x05}
	_, _, err := DecodeValue(data)
	require.Error(t, err)
}

func TestDecodeValue_TrailingBytesIgnored(t *testing.T) {
	b := NewBuilder().Byte("v", 1)
	data, err := Encode(nil, "", b.Value())
	require.NoError(t, err)

	data = append(data, 0xDE, 0xAD, 0xBE, 0xEF)

	_, decoded, err := DecodeValue(data)
	require.NoError(t, err)

	v, ok := decoded.Compound.Get("v")
	require.True(t, ok)
	require.EqualValues(t, 1, v.Byte)
}
