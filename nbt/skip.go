package nbt

import (
	"fmt"

	"github.com/anvilgo/anvil/errs"
	"github.com/anvilgo/anvil/format"
)

// skipValue consumes exactly the bytes a value of the given tag occupies,
// without materializing it into a Value or invoking any visitor callback
// .
//
// This is a dedicated path rather than a thin wrapper over decodeValueBody:
// reusing the value-producing path would force an allocation (a Value, a
// Compound, a []Value) for data the caller explicitly said it does not
// want, and would make skip's error surface as wide as full decoding's.
func skipValue(sc *Scanner, tag format.Tag) error {
	switch tag {
	case format.TagByte:
		_, err := sc.readU8()
		return err

	case format.TagShort:
		_, err := sc.readI16()
		return err

	case format.TagInt, format.TagFloat:
		_, err := sc.readI32()
		return err

	case format.TagLong, format.TagDouble:
		_, err := sc.readI64()
		return err

	case format.TagByteArray:
		_, err := sc.readByteArray()
		return err

	case format.TagString:
		_, _, err := sc.readString()
		return err

	case format.TagIntArray:
		n, err := sc.readI32()
		if err != nil {
			return err
		}
		if n < 0 {
			return fmt.Errorf("%w: negative IntArray length %d", errs.ErrInvalidLength, n)
		}

		return sc.skipBytes(int(n) * 4)

	case format.TagLongArray:
		n, err := sc.readI32()
		if err != nil {
			return err
		}
		if n < 0 {
			return fmt.Errorf("%w: negative LongArray length %d", errs.ErrInvalidLength, n)
		}

		return sc.skipBytes(int(n) * 8)

	case format.TagList:
		elemTag, n, err := sc.readListHeader()
		if err != nil {
			return err
		}
		for range n {
			if err := skipValue(sc, elemTag); err != nil {
				return err
			}
		}

		return nil

	case format.TagCompound:
		for {
			tagByte, err := sc.readU8()
			if err != nil {
				return err
			}
			childTag := format.Tag(tagByte)
			if childTag == format.TagEnd {
				return nil
			}
			if !childTag.Valid() {
				return fmt.Errorf("%w: 0x%02x", errs.ErrInvalidTag, tagByte)
			}
			if _, _, err := sc.readString(); err != nil {
				return err
			}
			if err := skipValue(sc, childTag); err != nil {
				return err
			}
		}

	default:
		return fmt.Errorf("%w: 0x%02x", errs.ErrInvalidTag, uint8(tag))
	}
}

// skipBytes advances the cursor by n bytes without examining them.
func (s *Scanner) skipBytes(n int) error {
	if err := s.require(n); err != nil {
		return err
	}
	s.pos += n

	return nil
}
