// Package varint encodes and decodes unsigned LEB128 integers with a 64-bit
// ceiling.
//
// Encoding emits 1-10 bytes (values below 2^63 take at most 9, larger ones
// take 10), least-significant 7-bit group first, with the
// high bit of each byte set on every group except the last. Decoding
// accumulates up to 10 groups and fails with errs.ErrVarintOverflow if the
// accumulated shift reaches 64 without encountering a terminator (a byte
// with its high bit clear). Both directions are pure and SIMD-free, per §4.1.
package varint

import (
	"github.com/lattice-io/chcore/cursor"
	"github.com/lattice-io/chcore/errs"
	"github.com/lattice-io/chcore/writer"
)

// MaxLen is the maximum number of bytes a 64-bit varint can occupy.
const MaxLen = 10

// Append encodes v as an unsigned LEB128 varint and appends it to dst,
// returning the extended slice.
func Append(dst []byte, v uint64) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}

	return append(dst, byte(v))
}

// Write encodes v as an unsigned LEB128 varint into w.
func Write(w *writer.ByteWriter, v uint64) {
	span := w.Reserve(MaxLen)
	n := 0
	for v >= 0x80 {
		span[n] = byte(v) | 0x80
		v >>= 7
		n++
	}
	span[n] = byte(v)
	n++

	w.Commit(n)
}

// Read decodes an unsigned LEB128 varint from c, returning the value and the
// number of bytes consumed.
//
// Read fails with errs.ErrVarintOverflow if the accumulated shift reaches 64
// without a terminator byte, and with errs.ErrInsufficientData if the cursor
// is exhausted mid-varint.
func Read(c *cursor.Cursor) (uint64, int, error) {
	var result uint64
	var shift uint
	consumed := 0

	for {
		if shift >= 64 {
			return 0, consumed, errs.At(c.Offset(), errs.ErrVarintOverflow)
		}

		b, err := c.PeekByte()
		if err != nil {
			return 0, consumed, errs.At(c.Offset(), errs.ErrInsufficientData)
		}
		c.Advance(1)
		consumed++

		result |= uint64(b&0x7F) << shift
		if b&0x80 == 0 {
			return result, consumed, nil
		}

		shift += 7
	}
}
