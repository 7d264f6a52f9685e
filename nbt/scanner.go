package nbt

import (
	"fmt"
	"math"

	"github.com/anvilgo/anvil/endian"
	"github.com/anvilgo/anvil/errs"
	"github.com/anvilgo/anvil/format"
)

var be = endian.GetBigEndianEngine()

// EventKind identifies the shape of the next parsed unit in a tag stream.
type EventKind uint8

const (
	EventTagStart EventKind = iota // entering a named value; Tag/Name are set
	EventEnd                       // end of input reached (outermost document consumed)
	EventCompoundEnd
)

// Event is one unit yielded by Scanner.Next: "here is a value of this Tag,
// with this name (empty for list elements), starting at this cursor."
//
// The scanner does not read the payload itself — callers in this package use
// the Scanner's read* methods to consume exactly the bytes the announced Tag occupies,
// then call Next again.
type Event struct {
	Kind EventKind
	Tag  format.Tag
	Name string // copied from input; empty for list elements and End
}

// ctxFrame records what the scanner expects at one level of nesting: inside
// a Compound, every value is preceded by a tag byte and a name; inside a
// List, every element shares the list's declared tag and has no name.
type ctxFrame struct {
	inList     bool
	elemTag    format.Tag
	remaining  int // elements left in a list frame; unused for compound frames
}

// Scanner is a stream-driven, event-pull reader over an NBT byte slice. It
// does not own its input buffer and must not outlive it.
type Scanner struct {
	data  []byte
	pos   int
	stack []ctxFrame
}

// NewScanner creates a Scanner over data. data is borrowed, not copied.
func NewScanner(data []byte) *Scanner {
	return &Scanner{data: data}
}

// Pos returns the current byte cursor.
func (s *Scanner) Pos() int { return s.pos }

// Len returns the total length of the input buffer.
func (s *Scanner) Len() int { return len(s.data) }

func (s *Scanner) inList() bool {
	return len(s.stack) > 0 && s.stack[len(s.stack)-1].inList
}

// Next returns the next event: either a value announcement (with its tag
// and, if inside a Compound, its name) or a structural boundary.
//
// Next never reads ahead past what is needed to produce the event itself;
// the payload is read separately via the Scanner's read* methods once the
// caller has decided how to interpret the announced Tag.
func (s *Scanner) Next() (Event, error) {
	if len(s.stack) > 0 {
		top := &s.stack[len(s.stack)-1]
		if top.inList {
			if top.remaining == 0 {
				s.stack = s.stack[:len(s.stack)-1]

				return Event{Kind: EventCompoundEnd}, nil
			}
			top.remaining--

			return Event{Kind: EventTagStart, Tag: top.elemTag}, nil
		}
	}

	tagByte, err := s.readU8()
	if err != nil {
		return Event{}, err
	}

	tag := format.Tag(tagByte)
	if !tag.Valid() {
		return Event{}, fmt.Errorf("%w: 0x%02x", errs.ErrInvalidTag, tagByte)
	}

	if tag == format.TagEnd {
		if len(s.stack) == 0 {
			return Event{}, fmt.Errorf("%w: unexpected End at depth 0", errs.ErrUnterminatedCompound)
		}
		s.stack = s.stack[:len(s.stack)-1]

		return Event{Kind: EventCompoundEnd}, nil
	}

	name, _, err := s.readString()
	if err != nil {
		return Event{}, err
	}

	return Event{Kind: EventTagStart, Tag: tag, Name: name}, nil
}

// PushCompound must be called by the caller immediately after receiving an
// EventTagStart with Tag == TagCompound, before requesting further events
// for its children.
func (s *Scanner) PushCompound() {
	s.stack = append(s.stack, ctxFrame{})
}

// PushList must be called immediately after reading a list header
// (readListHeader), before requesting events for its elements.
func (s *Scanner) PushList(elemTag format.Tag, length int) {
	s.stack = append(s.stack, ctxFrame{inList: true, elemTag: elemTag, remaining: length})
}

func (s *Scanner) require(n int) error {
	if s.pos+n > len(s.data) {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d", errs.ErrUnexpectedEOF, n, s.pos, len(s.data)-s.pos)
	}

	return nil
}

func (s *Scanner) readU8() (uint8, error) {
	if err := s.require(1); err != nil {
		return 0, err
	}
	v := s.data[s.pos]
	s.pos++

	return v, nil
}

func (s *Scanner) readI16() (int16, error) {
	if err := s.require(2); err != nil {
		return 0, err
	}
	v := int16(be.Uint16(s.data[s.pos:]))
	s.pos += 2

	return v, nil
}

func (s *Scanner) readU16() (uint16, error) {
	if err := s.require(2); err != nil {
		return 0, err
	}
	v := be.Uint16(s.data[s.pos:])
	s.pos += 2

	return v, nil
}

func (s *Scanner) readI32() (int32, error) {
	if err := s.require(4); err != nil {
		return 0, err
	}
	v := int32(be.Uint32(s.data[s.pos:]))
	s.pos += 4

	return v, nil
}

func (s *Scanner) readI64() (int64, error) {
	if err := s.require(8); err != nil {
		return 0, err
	}
	v := int64(be.Uint64(s.data[s.pos:]))
	s.pos += 8

	return v, nil
}

func (s *Scanner) readF32() (float32, error) {
	v, err := s.readI32()
	if err != nil {
		return 0, err
	}

	return math.Float32frombits(uint32(v)), nil
}

func (s *Scanner) readF64() (float64, error) {
	v, err := s.readI64()
	if err != nil {
		return 0, err
	}

	return math.Float64frombits(uint64(v)), nil
}

// readString reads a 2-byte-length-prefixed modified-UTF-8 string and
// reports whether its bytes were already plain UTF-8; the returned string
// is a copy either way.
func (s *Scanner) readString() (string, bool, error) {
	n, err := s.readU16()
	if err != nil {
		return "", false, err
	}
	if err := s.require(int(n)); err != nil {
		return "", false, err
	}
	raw := s.data[s.pos : s.pos+int(n)]
	s.pos += int(n)

	return decodeCesu8(raw)
}

// readByteArray reads a 4-byte signed length prefix followed by that many
// raw bytes, returning a borrowed slice of the input.
func (s *Scanner) readByteArray() ([]byte, error) {
	n, err := s.readI32()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: negative ByteArray length %d", errs.ErrInvalidLength, n)
	}
	if err := s.require(int(n)); err != nil {
		return nil, err
	}
	raw := s.data[s.pos : s.pos+int(n)]
	s.pos += int(n)

	return raw, nil
}

// readIntArray reads a 4-byte signed length prefix followed by that many
// big-endian int32 elements.
func (s *Scanner) readIntArray() ([]int32, error) {
	n, err := s.readI32()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: negative IntArray length %d", errs.ErrInvalidLength, n)
	}
	out := make([]int32, n)
	for i := range out {
		v, err := s.readI32()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}

	return out, nil
}

// readLongArray reads a 4-byte signed length prefix followed by that many
// big-endian int64 elements.
func (s *Scanner) readLongArray() ([]int64, error) {
	n, err := s.readI32()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: negative LongArray length %d", errs.ErrInvalidLength, n)
	}
	out := make([]int64, n)
	for i := range out {
		v, err := s.readI64()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}

	return out, nil
}

// readListHeader reads a List payload's element tag and length.
func (s *Scanner) readListHeader() (format.Tag, int, error) {
	tagByte, err := s.readU8()
	if err != nil {
		return 0, 0, err
	}
	elemTag := format.Tag(tagByte)
	if !elemTag.Valid() {
		return 0, 0, fmt.Errorf("%w: list element tag 0x%02x", errs.ErrInvalidTag, tagByte)
	}

	n, err := s.readI32()
	if err != nil {
		return 0, 0, err
	}
	if n < 0 {
		return 0, 0, fmt.Errorf("%w: negative List length %d", errs.ErrInvalidLength, n)
	}
	if elemTag == format.TagEnd && n != 0 {
		return 0, 0, fmt.Errorf("%w: List of End must have length 0, got %d", errs.ErrInvalidLength, n)
	}

	return elemTag, int(n), nil
}
