package nbt

import (
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/anvilgo/anvil/errs"
)

// decodeCesu8 decodes a modified-UTF-8 (CESU-8) byte slice into a string.
//
// Modified-UTF-8 differs from UTF-8 in two ways: U+0000 is encoded as the
// two bytes C0 80 instead of a single 00, and code points above U+FFFF are
// first split into a UTF-16 surrogate pair, each half of which is then
// encoded as an ordinary 3-byte UTF-8 sequence (six bytes total, instead of
// UTF-8's four).
//
// borrowed reports whether data's bytes are already valid, byte-identical
// UTF-8 — i.e. no embedded NUL and no surrogate pairs were present. When
// true, the caller may treat data itself as the string's backing bytes.
func decodeCesu8(data []byte) (s string, borrowed bool, err error) {
	if utf8.Valid(data) && !containsNul(data) {
		return string(data), true, nil
	}

	out := make([]byte, 0, len(data))
	i := 0
	for i < len(data) {
		b0 := data[i]

		switch {
		case b0 == 0xC0 && i+1 < len(data) && data[i+1] == 0x80:
			out = append(out, 0x00)
			i += 2

		case b0 < 0x80:
			out = append(out, b0)
			i++

		case b0&0xE0 == 0xC0:
			if i+1 >= len(data) {
				return "", false, fmt.Errorf("%w: truncated 2-byte cesu8 sequence", errs.ErrInvalidCesu8)
			}
			r := rune(b0&0x1F)<<6 | rune(data[i+1]&0x3F)
			out = utf8.AppendRune(out, r)
			i += 2

		case b0&0xF0 == 0xE0:
			if i+2 >= len(data) {
				return "", false, fmt.Errorf("%w: truncated 3-byte cesu8 sequence", errs.ErrInvalidCesu8)
			}
			r1 := rune(b0&0x0F)<<12 | rune(data[i+1]&0x3F)<<6 | rune(data[i+2]&0x3F)
			i += 3

			if utf16.IsSurrogate(r1) {
				if i+2 >= len(data) || data[i] != 0xED || data[i+1]&0xF0 != 0xB0 {
					return "", false, fmt.Errorf("%w: unpaired surrogate", errs.ErrInvalidCesu8)
				}
				r2 := rune(data[i]&0x0F)<<12 | rune(data[i+1]&0x3F)<<6 | rune(data[i+2]&0x3F)
				i += 3

				combined := utf16.DecodeRune(r1, r2)
				if combined == utf8.RuneError {
					return "", false, fmt.Errorf("%w: invalid surrogate pair", errs.ErrInvalidCesu8)
				}
				out = utf8.AppendRune(out, combined)
			} else {
				out = utf8.AppendRune(out, r1)
			}

		default:
			return "", false, fmt.Errorf("%w: invalid lead byte 0x%02x", errs.ErrInvalidCesu8, b0)
		}
	}

	return string(out), false, nil
}

func containsNul(data []byte) bool {
	for _, b := range data {
		if b == 0x00 {
			return true
		}
	}

	return false
}

// encodeCesu8 appends s to dst in modified-UTF-8 form, used by the write path
// to keep decode(encode(V)) == V.
func encodeCesu8(dst []byte, s string) []byte {
	for _, r := range s {
		switch {
		case r == 0x0000:
			dst = append(dst, 0xC0, 0x80)
		case r < 0x80:
			dst = append(dst, byte(r))
		case r <= 0xFFFF:
			dst = utf8.AppendRune(dst, r)
		default:
			r1, r2 := utf16.EncodeRune(r)
			dst = appendSurrogateHalf(dst, r1)
			dst = appendSurrogateHalf(dst, r2)
		}
	}

	return dst
}

// appendSurrogateHalf appends the 3-byte UTF-8-shaped encoding of a lone
// UTF-16 surrogate code point. utf8.AppendRune refuses to encode surrogate
// values (they are not valid standalone Unicode scalars), so CESU-8's
// surrogate-pair representation has to be built by hand.
func appendSurrogateHalf(dst []byte, r rune) []byte {
	return append(dst,
		0xE0|byte(r>>12),
		0x80|byte(r>>6)&0x3F,
		0x80|byte(r)&0x3F,
	)
}
