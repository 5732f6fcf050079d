package chtype

import (
	"fmt"
	"unicode/utf8"

	"github.com/lattice-io/chcore/capability"
	"github.com/lattice-io/chcore/cursor"
	"github.com/lattice-io/chcore/errs"
	"github.com/lattice-io/chcore/varint"
	"github.com/lattice-io/chcore/writer"
)

// maxStringLen bounds a decoded string's varint length prefix, per §7's
// ErrStringTooLong: the implementation's maximum value-slot length.
const maxStringLen = 1<<31 - 1 // i32_max

// isASCII reports whether every byte of b is <= 0x7F. This is the
// vectorizable mask check named by §4.3: a real SIMD build would compute
// it with a single lane-wise comparison and movemask; this scalar loop is
// behaviorally identical and is what every tier falls back to once the
// mask says "not all-ASCII" (validation is then mandatory regardless of
// tier).
func isASCII(b []byte) bool {
	for _, c := range b {
		if c > 0x7F {
			return false
		}
	}

	return true
}

// readStringBytes reads a single varint-length-prefixed byte payload from
// c without validating UTF-8, returning the raw bytes and consumed count.
func readStringBytes(c *cursor.Cursor) ([]byte, int, error) {
	length, lenBytes, err := varint.Read(c)
	if err != nil {
		return nil, lenBytes, err
	}
	if length > maxStringLen {
		return nil, lenBytes, errs.At(c.Offset(), errs.ErrStringTooLong)
	}

	buf := make([]byte, length)
	if err := c.TryReadInto(buf); err != nil {
		return nil, lenBytes, errs.At(c.Offset(), errs.ErrInsufficientData)
	}

	return buf, lenBytes + int(length), nil
}

// readString reads and UTF-8-validates a single string. When
// asciiFastPath is true, validation is skipped whenever the payload turns
// out to be all-ASCII (§4.3); the observable output is identical to
// always validating.
func readString(c *cursor.Cursor, asciiFastPath bool) (string, int, error) {
	buf, consumed, err := readStringBytes(c)
	if err != nil {
		return "", consumed, err
	}

	skip := asciiFastPath && isASCII(buf)
	if !skip && !utf8.Valid(buf) {
		return "", consumed, errs.At(c.Offset(), errs.ErrInvalidUtf8)
	}

	return string(buf), consumed, nil
}

func writeString(w *writer.ByteWriter, s string) {
	varint.Write(w, uint64(len(s)))
	w.Append([]byte(s))
}

// --- String (varint(byte_length) || utf8 bytes) ---

type stringType struct{}

func (stringType) TypeName() string { return "String" }
func (stringType) Kind() Kind { return KindString }
func (stringType) Representation() Representation { return RepVarString }
func (stringType) Width() int { return 0 }

func (t stringType) ReadOne(c *cursor.Cursor) (any, int, error) {
	return readStringAny(c, false)
}

func (t stringType) WriteOne(w *writer.ByteWriter, v any) error {
	writeString(w, v.(string))
	return nil
}

func readStringAny(c *cursor.Cursor, asciiFastPath bool) (any, int, error) {
	s, n, err := readString(c, asciiFastPath)
	if err != nil {
		return nil, n, err
	}

	return s, n, nil
}

// ReadMany decodes n strings. When caps permits the SSSE3 tier, each
// string's UTF-8 validation uses the ASCII fast path described in §4.3
// and on isASCII above; the SIMD tier only changes how the all-ASCII mask
// would be computed, never the observable output.
func (t stringType) ReadMany(c *cursor.Cursor, n int, caps capability.Descriptor) (any, int, error) {
	asciiFast := caps.Allowed(capability.TierSSSE3)

	out := make([]string, n)
	consumed := 0
	for i := 0; i < n; i++ {
		s, bytesRead, err := readString(c, asciiFast)
		consumed += bytesRead
		if err != nil {
			return nil, consumed, err
		}
		out[i] = s
	}

	return out, consumed, nil
}

func (t stringType) WriteMany(w *writer.ByteWriter, values any, caps capability.Descriptor) error {
	vals, ok := values.([]string)
	if !ok {
		return fmt.Errorf("stringType.WriteMany: expected []string, got %T", values)
	}
	for _, s := range vals {
		writeString(w, s)
	}

	return nil
}

// --- FixedString(N) (exactly N bytes, zero length prefix) ---

// fixedStringType implements the FixedString(N) wire form licensed by
// §6's grammar: exactly n bytes, no length prefix, no UTF-8 validation
// (FixedString is a raw byte-array type in the database, used for fields
// like binary hashes, not a text type).
type fixedStringType struct {
	n int
}

func (t fixedStringType) TypeName() string { return fmt.Sprintf("FixedString(%d)", t.n) }
func (fixedStringType) Kind() Kind { return KindFixedString }
func (fixedStringType) Representation() Representation { return RepFixedString }
func (t fixedStringType) Width() int { return t.n }

func (t fixedStringType) ReadOne(c *cursor.Cursor) (any, int, error) {
	buf := make([]byte, t.n)
	if err := c.TryReadInto(buf); err != nil {
		return nil, 0, errs.At(c.Offset(), errs.ErrInsufficientData)
	}

	return buf, t.n, nil
}

func (t fixedStringType) WriteOne(w *writer.ByteWriter, v any) error {
	b := v.([]byte)
	if len(b) != t.n {
		return fmt.Errorf("fixedStringType.WriteOne: expected %d bytes, got %d", t.n, len(b))
	}
	w.Append(b)

	return nil
}

func (t fixedStringType) ReadMany(c *cursor.Cursor, n int, caps capability.Descriptor) (any, int, error) {
	raw := make([]byte, n*t.n)
	consumed, err := readFixedBytes(c, raw, n, t.n, caps)
	if err != nil {
		return nil, consumed, errs.At(c.Offset(), err)
	}

	out := make([][]byte, n)
	for i := range out {
		out[i] = raw[i*t.n : (i+1)*t.n]
	}

	return out, consumed, nil
}

func (t fixedStringType) WriteMany(w *writer.ByteWriter, values any, caps capability.Descriptor) error {
	vals, ok := values.([][]byte)
	if !ok {
		return fmt.Errorf("fixedStringType.WriteMany: expected [][]byte, got %T", values)
	}

	raw := make([]byte, len(vals)*t.n)
	for i, v := range vals {
		if len(v) != t.n {
			return fmt.Errorf("fixedStringType.WriteMany: element %d has %d bytes, want %d", i, len(v), t.n)
		}
		copy(raw[i*t.n:], v)
	}
	writeFixedBytes(w, raw, len(vals), t.n, caps)

	return nil
}
