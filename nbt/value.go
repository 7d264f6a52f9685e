package nbt

import (
	"fmt"
	"math"

	"github.com/anvilgo/anvil/errs"
	"github.com/anvilgo/anvil/format"
)

// Value is a dynamic NBT value: a sum over the 13 tag kinds. Exactly one of
// the typed fields is meaningful, selected by Tag.
type Value struct {
	Tag format.Tag

	Byte      int8
	Short     int16
	Int       int32
	Long      int64
	Float     float32
	Double    float64
	Str       string
	StrBorrow bool // true if Str's wire bytes were already plain UTF-8 (Str itself is a copy)
	ByteArray []byte
	IntArray  []int32
	LongArray []int64

	ListElem format.Tag
	List     []Value

	Compound *Compound
}

// Entry is one named member of a Compound, in on-disk order.
type Entry struct {
	Name  string
	Value Value
}

// Compound is an ordered name -> Value mapping. Duplicate names are
// permitted by the wire format; Get returns the last occurrence while
// Entries holds every entry in on-disk order.
type Compound struct {
	Entries []Entry
	index   map[string]int // name -> last entry index
}

// NewCompound creates an empty Compound ready for Append.
func NewCompound() *Compound {
	return &Compound{index: make(map[string]int)}
}

// Append adds a named entry, preserving insertion order even if name repeats.
func (c *Compound) Append(name string, v Value) {
	if c.index == nil {
		c.index = make(map[string]int)
	}
	c.index[name] = len(c.Entries)
	c.Entries = append(c.Entries, Entry{Name: name, Value: v})
}

// Get returns the value of the last entry named name.
func (c *Compound) Get(name string) (Value, bool) {
	i, ok := c.index[name]
	if !ok {
		return Value{}, false
	}

	return c.Entries[i].Value, true
}

// Len returns the number of entries, including shadowed duplicates.
func (c *Compound) Len() int { return len(c.Entries) }

// DecodeValue parses a complete NBT document from data into a dynamic Value
// tree, returning the root Compound's name. The root tag must be Compound
// .
//
// Strings in the returned tree are copies (StrBorrow marks those that
// needed no transcoding); ByteArray values are slices of data and share
// its memory.
func DecodeValue(data []byte) (name string, root Value, err error) {
	if len(data) >= 2 && data[0] == 0x1F && data[1] == 0x8B {
		return "", Value{}, errs.ErrGzipInput
	}

	sc := NewScanner(data)
	ev, err := sc.Next()
	if err != nil {
		return "", Value{}, err
	}
	if ev.Tag != format.TagCompound {
		return "", Value{}, fmt.Errorf("%w: root tag is %s", errs.ErrNonRootCompound, ev.Tag)
	}

	root, err = decodeValueBody(sc, ev.Tag)
	if err != nil {
		return "", Value{}, err
	}

	return ev.Name, root, nil
}

// decodeValueBody materializes the payload for a value whose tag has
// already been announced (the tag byte and, for Compound entries,
// the name have been consumed; the payload has not).
func decodeValueBody(sc *Scanner, tag format.Tag) (Value, error) {
	switch tag {
	case format.TagByte:
		v, err := sc.readU8()
		return Value{Tag: tag, Byte: int8(v)}, err

	case format.TagShort:
		v, err := sc.readI16()
		return Value{Tag: tag, Short: v}, err

	case format.TagInt:
		v, err := sc.readI32()
		return Value{Tag: tag, Int: v}, err

	case format.TagLong:
		v, err := sc.readI64()
		return Value{Tag: tag, Long: v}, err

	case format.TagFloat:
		v, err := sc.readF32()
		return Value{Tag: tag, Float: v}, err

	case format.TagDouble:
		v, err := sc.readF64()
		return Value{Tag: tag, Double: v}, err

	case format.TagByteArray:
		v, err := sc.readByteArray()
		return Value{Tag: tag, ByteArray: v}, err

	case format.TagString:
		str, borrowed, err := sc.readString()
		return Value{Tag: tag, Str: str, StrBorrow: borrowed}, err

	case format.TagIntArray:
		v, err := sc.readIntArray()
		return Value{Tag: tag, IntArray: v}, err

	case format.TagLongArray:
		v, err := sc.readLongArray()
		return Value{Tag: tag, LongArray: v}, err

	case format.TagList:
		elemTag, n, err := sc.readListHeader()
		if err != nil {
			return Value{}, err
		}
		sc.PushList(elemTag, n)
		items := make([]Value, 0, n)
		for range n {
			ev, err := sc.Next()
			if err != nil {
				return Value{}, err
			}
			item, err := decodeValueBody(sc, ev.Tag)
			if err != nil {
				return Value{}, err
			}
			items = append(items, item)
		}
		if end, err := sc.Next(); err != nil {
			return Value{}, err
		} else if end.Kind != EventCompoundEnd {
			return Value{}, fmt.Errorf("%w: list frame did not close cleanly", errs.ErrUnterminatedCompound)
		}

		return Value{Tag: tag, ListElem: elemTag, List: items}, nil

	case format.TagCompound:
		sc.PushCompound()
		c := NewCompound()
		for {
			ev, err := sc.Next()
			if err != nil {
				return Value{}, err
			}
			if ev.Kind == EventCompoundEnd {
				break
			}
			v, err := decodeValueBody(sc, ev.Tag)
			if err != nil {
				return Value{}, err
			}
			c.Append(ev.Name, v)
		}

		return Value{Tag: tag, Compound: c}, nil

	default:
		return Value{}, fmt.Errorf("%w: 0x%02x", errs.ErrInvalidTag, uint8(tag))
	}
}

// Encode appends the NBT wire encoding of a document named name with root
// value v (which must have Tag == format.TagCompound) to dst, and returns
// the extended slice. This is the write path that gives decode(encode(v))
// == v.
func Encode(dst []byte, name string, v Value) ([]byte, error) {
	if v.Tag != format.TagCompound {
		return nil, fmt.Errorf("%w: root must be Compound, got %s", errs.ErrNonRootCompound, v.Tag)
	}

	dst = append(dst, byte(format.TagCompound))
	dst = appendString(dst, name)
	dst, err := encodeValueBody(dst, v)
	if err != nil {
		return nil, err
	}

	return dst, nil
}

func appendString(dst []byte, s string) []byte {
	enc := encodeCesu8(nil, s)
	dst = be.AppendUint16(dst, uint16(len(enc)))
	dst = append(dst, enc...)

	return dst
}

func encodeValueBody(dst []byte, v Value) ([]byte, error) {
	switch v.Tag {
	case format.TagByte:
		return append(dst, byte(v.Byte)), nil

	case format.TagShort:
		return be.AppendUint16(dst, uint16(v.Short)), nil

	case format.TagInt:
		return be.AppendUint32(dst, uint32(v.Int)), nil

	case format.TagLong:
		return be.AppendUint64(dst, uint64(v.Long)), nil

	case format.TagFloat:
		return be.AppendUint32(dst, math.Float32bits(v.Float)), nil

	case format.TagDouble:
		return be.AppendUint64(dst, math.Float64bits(v.Double)), nil

	case format.TagByteArray:
		dst = be.AppendUint32(dst, uint32(len(v.ByteArray)))

		return append(dst, v.ByteArray...), nil

	case format.TagString:
		return appendString(dst, v.Str), nil

	case format.TagIntArray:
		dst = be.AppendUint32(dst, uint32(len(v.IntArray)))
		for _, e := range v.IntArray {
			dst = be.AppendUint32(dst, uint32(e))
		}

		return dst, nil

	case format.TagLongArray:
		dst = be.AppendUint32(dst, uint32(len(v.LongArray)))
		for _, e := range v.LongArray {
			dst = be.AppendUint64(dst, uint64(e))
		}

		return dst, nil

	case format.TagList:
		dst = append(dst, byte(v.ListElem))
		dst = be.AppendUint32(dst, uint32(len(v.List)))
		for _, item := range v.List {
			var err error
			dst, err = encodeValueBody(dst, item)
			if err != nil {
				return nil, err
			}
		}

		return dst, nil

	case format.TagCompound:
		for _, e := range v.Compound.Entries {
			dst = append(dst, byte(e.Value.Tag))
			dst = appendString(dst, e.Name)
			var err error
			dst, err = encodeValueBody(dst, e.Value)
			if err != nil {
				return nil, err
			}
		}

		return append(dst, byte(format.TagEnd)), nil

	default:
		return nil, fmt.Errorf("%w: 0x%02x", errs.ErrInvalidTag, uint8(v.Tag))
	}
}
