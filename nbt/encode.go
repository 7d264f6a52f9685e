package nbt

import "github.com/anvilgo/anvil/format"

// Builder accumulates named fields for a Compound that will be appended to
// a document via Encode. It exists so callers writing a chunk back out
// don't have to construct a Value/Compound tree field-by-field by hand.
type Builder struct {
	c *Compound
}

// NewBuilder creates an empty Compound builder.
func NewBuilder() *Builder {
	return &Builder{c: NewCompound()}
}

func (b *Builder) Byte(name string, v int8) *Builder {
	b.c.Append(name, Value{Tag: format.TagByte, Byte: v})
	return b
}

func (b *Builder) Short(name string, v int16) *Builder {
	b.c.Append(name, Value{Tag: format.TagShort, Short: v})
	return b
}

func (b *Builder) Int(name string, v int32) *Builder {
	b.c.Append(name, Value{Tag: format.TagInt, Int: v})
	return b
}

func (b *Builder) Long(name string, v int64) *Builder {
	b.c.Append(name, Value{Tag: format.TagLong, Long: v})
	return b
}

func (b *Builder) Float(name string, v float32) *Builder {
	b.c.Append(name, Value{Tag: format.TagFloat, Float: v})
	return b
}

func (b *Builder) Double(name string, v float64) *Builder {
	b.c.Append(name, Value{Tag: format.TagDouble, Double: v})
	return b
}

func (b *Builder) String(name string, v string) *Builder {
	b.c.Append(name, Value{Tag: format.TagString, Str: v})
	return b
}

func (b *Builder) ByteArray(name string, v []byte) *Builder {
	b.c.Append(name, Value{Tag: format.TagByteArray, ByteArray: v})
	return b
}

func (b *Builder) IntArray(name string, v []int32) *Builder {
	b.c.Append(name, Value{Tag: format.TagIntArray, IntArray: v})
	return b
}

func (b *Builder) LongArray(name string, v []int64) *Builder {
	b.c.Append(name, Value{Tag: format.TagLongArray, LongArray: v})
	return b
}

func (b *Builder) Compound(name string, v *Builder) *Builder {
	b.c.Append(name, Value{Tag: format.TagCompound, Compound: v.c})
	return b
}

func (b *Builder) List(name string, elemTag format.Tag, items []Value) *Builder {
	b.c.Append(name, Value{Tag: format.TagList, ListElem: elemTag, List: items})
	return b
}

// Value returns the accumulated Compound as a dynamic Value, ready to pass
// to Encode as the document root.
func (b *Builder) Value() Value {
	return Value{Tag: format.TagCompound, Compound: b.c}
}
