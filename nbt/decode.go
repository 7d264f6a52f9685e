package nbt

import (
	"fmt"

	"github.com/anvilgo/anvil/errs"
	"github.com/anvilgo/anvil/format"
	"github.com/anvilgo/anvil/internal/options"
)

// Option configures a Decoder at Decode time. Child Decoders produced by
// DecodeStruct, DecodeSeq, and DecodeMap inherit the root's configuration.
type Option = options.Option[*Decoder]

// WithFieldRenamer makes DecodeStruct match field names through f instead
// of by exact equality: both the wire name and each candidate in the
// caller's fields list are passed through f before comparing. The canonical
// name handed back to the consumer callback is still the caller's original
// entry from fields, never the wire name or the renamed form, so callers
// that switch on literal field-name strings need no changes. A common f is
// strings.ToLower, for case-insensitive matching.
func WithFieldRenamer(f func(string) string) Option {
	return options.New(func(d *Decoder) error {
		if f == nil {
			return fmt.Errorf("nbt: field renamer must not be nil")
		}
		d.renamer = f

		return nil
	})
}

// WithMaxDepth caps how many Compound/List levels DecodeStruct, DecodeSeq,
// and DecodeMap may descend into before returning an error wrapping
// errs.ErrMaxDepthExceeded. n must be positive; Decode's root Decoder
// itself counts as depth 0.
func WithMaxDepth(n int) Option {
	return options.New(func(d *Decoder) error {
		if n <= 0 {
			return fmt.Errorf("nbt: max depth must be positive, got %d", n)
		}
		d.maxDepth = n

		return nil
	})
}

// Decoder is positioned at exactly one announced NBT value (a tag that has
// been read from the stream but whose payload has not). A consumer drives
// it by calling the Decode* method matching the shape it expects; the
// Decoder reads however many bytes that shape requires, applying the
// applicable coercions, and never reads ahead further than that.
//
// Neither side owns control flow: the Decoder does not know the consumer's
// overall schema, and the consumer does not know the wire representation.
type Decoder struct {
	sc   *Scanner
	tag  format.Tag
	name string // set when this Decoder was produced as a Compound field

	renamer  func(string) string // nil means exact-match field lookup
	maxDepth int                 // 0 means unlimited
	depth    int
}

// Decode parses the outer document in data and returns a Decoder positioned
// at the root Compound's body, along with its name. Detects a gzip-wrapped input before anything else.
func Decode(data []byte, opts ...Option) (root *Decoder, name string, err error) {
	if len(data) >= 2 && data[0] == 0x1F && data[1] == 0x8B {
		return nil, "", errs.ErrGzipInput
	}

	sc := NewScanner(data)
	ev, err := sc.Next()
	if err != nil {
		return nil, "", err
	}
	if ev.Tag != format.TagCompound {
		return nil, "", fmt.Errorf("%w: root tag is %s", errs.ErrNonRootCompound, ev.Tag)
	}

	d := &Decoder{sc: sc, tag: ev.Tag, name: ev.Name}
	if err := options.Apply(d, opts...); err != nil {
		return nil, "", err
	}

	return d, ev.Name, nil
}

// child builds the Decoder positioned at a Compound field, List element, or
// map entry descended from d, propagating d's configuration and enforcing
// the configured depth limit.
func (d *Decoder) child(tag format.Tag, name string) (*Decoder, error) {
	if d.maxDepth > 0 && d.depth+1 > d.maxDepth {
		return nil, fmt.Errorf("%w: depth %d exceeds limit %d", errs.ErrMaxDepthExceeded, d.depth+1, d.maxDepth)
	}

	return &Decoder{
		sc:       d.sc,
		tag:      tag,
		name:     name,
		renamer:  d.renamer,
		maxDepth: d.maxDepth,
		depth:    d.depth + 1,
	}, nil
}

// Tag reports the wire tag of the value this Decoder is positioned at. An
// untagged-enum consumer uses this to decide which variant to attempt, or
// a DecodeAny caller uses it to branch without committing to a shape.
func (d *Decoder) Tag() format.Tag { return d.tag }

// DecodeBool decodes an integer source as a boolean: zero is false,
// non-zero is true. A String source is rejected outright.
func (d *Decoder) DecodeBool() (bool, error) { return d.coerceBool() }

func (d *Decoder) DecodeI8() (int8, error) {
	v, err := d.decodeSignedInt(8)
	return int8(v), err
}

func (d *Decoder) DecodeI16() (int16, error) {
	v, err := d.decodeSignedInt(16)
	return int16(v), err
}

func (d *Decoder) DecodeI32() (int32, error) {
	v, err := d.decodeSignedInt(32)
	return int32(v), err
}

func (d *Decoder) DecodeI64() (int64, error) {
	return d.decodeSignedInt(64)
}

func (d *Decoder) DecodeU8() (uint8, error) {
	v, err := d.decodeUnsignedInt(8)
	return uint8(v), err
}

func (d *Decoder) DecodeU16() (uint16, error) {
	v, err := d.decodeUnsignedInt(16)
	return uint16(v), err
}

func (d *Decoder) DecodeU32() (uint32, error) {
	v, err := d.decodeUnsignedInt(32)
	return uint32(v), err
}

func (d *Decoder) DecodeU64() (uint64, error) {
	return d.decodeUnsignedInt(64)
}

// DecodeF32 decodes a Float or Double source, narrowing a Double lossily.
func (d *Decoder) DecodeF32() (float32, error) {
	v, err := d.coerceFloat()
	return float32(v), err
}

// DecodeF64 decodes a Float or Double source.
func (d *Decoder) DecodeF64() (float64, error) {
	return d.coerceFloat()
}

// DecodeInt128 decodes an IntArray of exactly 4 elements into a 128-bit
// signed integer, element 0 holding the most significant 32 bits.
func (d *Decoder) DecodeInt128() (Int128, error) {
	if d.tag != format.TagIntArray {
		return Int128{}, fmt.Errorf("%w: int128 target requires IntArray, found %s", errs.ErrTypeMismatch, d.tag)
	}
	elems, err := d.sc.readIntArray()
	if err != nil {
		return Int128{}, err
	}

	return int128FromIntArray(elems)
}

// DecodeString decodes a String source into an owned Go string, always
// succeeding for valid CESU-8 regardless of whether the result could have
// been borrowed.
func (d *Decoder) DecodeString() (string, error) {
	if d.tag != format.TagString {
		return "", fmt.Errorf("%w: expected String, found %s", errs.ErrTypeMismatch, d.tag)
	}
	s, _, err := d.sc.readString()

	return s, err
}

// DecodeBorrowedString decodes a String source, returning an error wrapping
// errs.ErrCannotBorrowCesu8 if the modified-UTF-8 representation differs
// from plain UTF-8. On success the string is still a copy of the input
// bytes, as with DecodeString.
func (d *Decoder) DecodeBorrowedString() (string, error) {
	if d.tag != format.TagString {
		return "", fmt.Errorf("%w: expected String, found %s", errs.ErrTypeMismatch, d.tag)
	}
	s, borrowed, err := d.sc.readString()
	if err != nil {
		return "", err
	}
	if !borrowed {
		return "", errs.ErrCannotBorrowCesu8
	}

	return s, nil
}

// DecodeBytes decodes a byte-buffer target, accepting either a ByteArray
// directly or a List of Byte/Short/Int/Long whose elements are concatenated
// big-endian with no padding.
func (d *Decoder) DecodeBytes() ([]byte, error) {
	switch d.tag {
	case format.TagByteArray:
		return d.sc.readByteArray()

	case format.TagList:
		elemTag, n, err := d.sc.readListHeader()
		if err != nil {
			return nil, err
		}
		d.sc.PushList(elemTag, n)
		items := make([]Value, 0, n)
		for range n {
			ev, err := d.sc.Next()
			if err != nil {
				return nil, err
			}
			v, err := decodeValueBody(d.sc, ev.Tag)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		if end, err := d.sc.Next(); err != nil {
			return nil, err
		} else if end.Kind != EventCompoundEnd {
			return nil, fmt.Errorf("%w: list frame did not close cleanly", errs.ErrUnterminatedCompound)
		}

		return decodeBytesFromSeq(elemTag, items)

	default:
		return nil, fmt.Errorf("%w: expected ByteArray or List, found %s", errs.ErrTypeMismatch, d.tag)
	}
}

// DecodeSeq decodes a List source by calling f once per element with a
// Decoder positioned at that element. Callers whose sequence target may
// instead be backed by a ByteArray/IntArray/LongArray should check Tag()
// first and fall back to DecodeByteArray/DecodeIntArray/DecodeLongArray,
// which surface those wire shapes as plain slices instead of a callback
// (their elements are bare fixed-width integers with no per-element tag
// to position a Decoder at).
func (d *Decoder) DecodeSeq(f func(elem *Decoder) error) error {
	if d.tag != format.TagList {
		return fmt.Errorf("%w: expected List, found %s", errs.ErrTypeMismatch, d.tag)
	}

	elemTag, n, err := d.sc.readListHeader()
	if err != nil {
		return err
	}
	d.sc.PushList(elemTag, n)
	for range n {
		ev, err := d.sc.Next()
		if err != nil {
			return err
		}
		elem, err := d.child(ev.Tag, "")
		if err != nil {
			return err
		}
		if err := f(elem); err != nil {
			return err
		}
	}
	end, err := d.sc.Next()
	if err != nil {
		return err
	}
	if end.Kind != EventCompoundEnd {
		return fmt.Errorf("%w: list frame did not close cleanly", errs.ErrUnterminatedCompound)
	}

	return nil
}

// DecodeByteArray decodes a ByteArray source into a plain []byte.
func (d *Decoder) DecodeByteArray() ([]byte, error) {
	if d.tag != format.TagByteArray {
		return nil, fmt.Errorf("%w: expected ByteArray, found %s", errs.ErrTypeMismatch, d.tag)
	}

	return d.sc.readByteArray()
}

// DecodeIntArray decodes an IntArray source into a plain []int32.
func (d *Decoder) DecodeIntArray() ([]int32, error) {
	if d.tag != format.TagIntArray {
		return nil, fmt.Errorf("%w: expected IntArray, found %s", errs.ErrTypeMismatch, d.tag)
	}

	return d.sc.readIntArray()
}

// DecodeLongArray decodes a LongArray source into a plain []int64.
func (d *Decoder) DecodeLongArray() ([]int64, error) {
	if d.tag != format.TagLongArray {
		return nil, fmt.Errorf("%w: expected LongArray, found %s", errs.ErrTypeMismatch, d.tag)
	}

	return d.sc.readLongArray()
}

// DecodeMap treats the current Compound as a key-value stream, calling f
// once per entry with the entry's name and a Decoder positioned at its value.
func (d *Decoder) DecodeMap(f func(key string, val *Decoder) error) error {
	if d.tag != format.TagCompound {
		return fmt.Errorf("%w: expected Compound, found %s", errs.ErrTypeMismatch, d.tag)
	}
	d.sc.PushCompound()
	for {
		ev, err := d.sc.Next()
		if err != nil {
			return err
		}
		if ev.Kind == EventCompoundEnd {
			return nil
		}
		val, err := d.child(ev.Tag, ev.Name)
		if err != nil {
			return err
		}
		if err := f(ev.Name, val); err != nil {
			return err
		}
	}
}

// DecodeStruct matches Compound field names against fields, calling f for
// each present field (in wire order) and skipping unmatched names without
// materializing them.
//
// The caller is responsible for checking, after DecodeStruct returns, that
// every field it requires was actually seen; this method does not know
// which fields are optional.
func (d *Decoder) DecodeStruct(fields []string, f func(field string, val *Decoder) error) error {
	if d.tag != format.TagCompound {
		return fmt.Errorf("%w: expected Compound, found %s", errs.ErrTypeMismatch, d.tag)
	}
	d.sc.PushCompound()
	for {
		ev, err := d.sc.Next()
		if err != nil {
			return err
		}
		if ev.Kind == EventCompoundEnd {
			return nil
		}
		canonical, ok := d.matchField(fields, ev.Name)
		if !ok {
			if err := skipValue(d.sc, ev.Tag); err != nil {
				return err
			}

			continue
		}
		val, err := d.child(ev.Tag, ev.Name)
		if err != nil {
			return err
		}
		if err := f(canonical, val); err != nil {
			return err
		}
	}
}

// matchField reports whether wireName denotes one of fields. With no
// renamer configured this is exact string equality; otherwise both sides
// are passed through the renamer before comparing. The bool's matching name
// is always the caller's entry from fields, never wireName itself, so a
// consumer that switches on the literal field strings it passed in keeps
// working unchanged under a case-insensitive or aliasing renamer.
func (d *Decoder) matchField(fields []string, wireName string) (string, bool) {
	if d.renamer == nil {
		for _, n := range fields {
			if n == wireName {
				return n, true
			}
		}

		return "", false
	}

	key := d.renamer(wireName)
	for _, n := range fields {
		if d.renamer(n) == key {
			return n, true
		}
	}

	return "", false
}

// MissingField builds the "required struct field absent" error.
func MissingField(name string) error {
	return fmt.Errorf("%w: %q", errs.ErrMissingField, name)
}

// DecodeIgnored consumes and discards the current value without
// materializing it.
func (d *Decoder) DecodeIgnored() error {
	return skipValue(d.sc, d.tag)
}

// DecodeAny materializes the current value into a dynamic Value tree,
// for consumers with no fixed schema.
func (d *Decoder) DecodeAny() (Value, error) {
	return decodeValueBody(d.sc, d.tag)
}

// DecodeEnumUnit expects a String source naming a unit enum variant.
func (d *Decoder) DecodeEnumUnit() (string, error) {
	return d.DecodeString()
}
