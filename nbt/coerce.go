package nbt

import (
	"fmt"

	"github.com/anvilgo/anvil/errs"
	"github.com/anvilgo/anvil/format"
)

// rawInt reads the next announced primitive as a plain int64, widening
// Byte/Short/Int/Long without any range check (
// "any of {Byte, Short, Int, Long} source tags are accepted").
func (d *Decoder) rawInt() (int64, error) {
	switch d.tag {
	case format.TagByte:
		v, err := d.sc.readU8()
		return int64(int8(v)), err
	case format.TagShort:
		v, err := d.sc.readI16()
		return int64(v), err
	case format.TagInt:
		v, err := d.sc.readI32()
		return int64(v), err
	case format.TagLong:
		return d.sc.readI64()
	default:
		return 0, fmt.Errorf("%w: expected integer tag, found %s", errs.ErrTypeMismatch, d.tag)
	}
}

// fitsSigned reports whether v fits in a signed integer of the given width.
func fitsSigned(v int64, bits int) bool {
	if bits >= 64 {
		return true
	}
	max := int64(1)<<(bits-1) - 1
	min := -(int64(1) << (bits - 1))

	return v >= min && v <= max
}

// fitsUnsigned reports whether v, reinterpreted as an unsigned quantity of
// the given width, is representable (i.e. v is non-negative and within range).
func fitsUnsigned(v int64, bits int) bool {
	if v < 0 {
		return false
	}
	if bits >= 64 {
		return true
	}

	return uint64(v) <= (uint64(1)<<bits - 1)
}

// decodeSignedInt reads a coerced signed integer of the given bit width.
func (d *Decoder) decodeSignedInt(bits int) (int64, error) {
	v, err := d.rawInt()
	if err != nil {
		return 0, err
	}
	if !fitsSigned(v, bits) {
		return 0, fmt.Errorf("%w: %d does not fit in signed %d-bit range", errs.ErrRangeError, v, bits)
	}

	return v, nil
}

// decodeUnsignedInt reads a coerced unsigned integer of the given bit width.
func (d *Decoder) decodeUnsignedInt(bits int) (uint64, error) {
	v, err := d.rawInt()
	if err != nil {
		return 0, err
	}
	if !fitsUnsigned(v, bits) {
		return 0, fmt.Errorf("%w: %d does not fit in unsigned %d-bit range", errs.ErrRangeError, v, bits)
	}

	return uint64(v), nil
}

// Int128 is a 128-bit two's-complement integer, stored as the big-endian
// halves produced by the NBT IntArray coercion: element 0 of
// the 4-element IntArray holds the most significant 32 bits.
type Int128 struct {
	Hi uint64 // most significant 64 bits
	Lo uint64 // least significant 64 bits
}

// Min reports whether v equals the minimum representable Int128 value
// (0x80000000_00000000_00000000_00000000).
func (v Int128) Min() bool {
	return v.Hi == 0x8000000000000000 && v.Lo == 0
}

func int128FromIntArray(elems []int32) (Int128, error) {
	if len(elems) != 4 {
		return Int128{}, fmt.Errorf("%w: int128 requires exactly 4 IntArray elements, got %d", errs.ErrInvalidLength, len(elems))
	}

	hi := uint64(uint32(elems[0]))<<32 | uint64(uint32(elems[1]))
	lo := uint64(uint32(elems[2]))<<32 | uint64(uint32(elems[3]))

	return Int128{Hi: hi, Lo: lo}, nil
}

// decodeBytesFromSeq concatenates the big-endian bytes of a List of
// Byte/Short/Int/Long elements, implementing the "byte buffer over
// sequence" coercion.
func decodeBytesFromSeq(elemTag format.Tag, items []Value) ([]byte, error) {
	var stride int
	switch elemTag {
	case format.TagByte:
		stride = 1
	case format.TagShort:
		stride = 2
	case format.TagInt:
		stride = 4
	case format.TagLong:
		stride = 8
	default:
		return nil, fmt.Errorf("%w: cannot coerce List<%s> to byte buffer", errs.ErrTypeMismatch, elemTag)
	}

	out := make([]byte, 0, len(items)*stride)
	for _, it := range items {
		switch elemTag {
		case format.TagByte:
			out = append(out, byte(it.Byte))
		case format.TagShort:
			out = be.AppendUint16(out, uint16(it.Short))
		case format.TagInt:
			out = be.AppendUint32(out, uint32(it.Int))
		case format.TagLong:
			out = be.AppendUint64(out, uint64(it.Long))
		}
	}

	return out, nil
}

// coerceFloat widens a Float or Double source into a float64. A caller that
// narrows the result back to float32 (DecodeF32) is not guaranteed a
// lossless round trip when the source was a Double.
func (d *Decoder) coerceFloat() (float64, error) {
	switch d.tag {
	case format.TagFloat:
		v, err := d.sc.readF32()
		return float64(v), err
	case format.TagDouble:
		return d.sc.readF64()
	default:
		return 0, fmt.Errorf("%w: expected Float or Double, found %s", errs.ErrTypeMismatch, d.tag)
	}
}

// coerceBool accepts any integer source; zero is false, non-zero is true,
// and String sources are rejected.
func (d *Decoder) coerceBool() (bool, error) {
	v, err := d.rawInt()
	if err != nil {
		return false, err
	}

	return v != 0, nil
}
