package chtype

import (
	"fmt"

	"github.com/lattice-io/chcore/capability"
	"github.com/lattice-io/chcore/cursor"
	"github.com/lattice-io/chcore/endian"
	"github.com/lattice-io/chcore/errs"
	"github.com/lattice-io/chcore/writer"
)

// le is the fixed byte order for every on-wire fixed-width scalar (§3):
// ClickHouse's native formats are little-endian only, so chtype never
// exposes a choice of endian.EndianEngine the way the teacher's encoding
// package does for its timestamp/value codecs.
var le = endian.GetLittleEndianEngine()

// readOneFixed reads exactly width little-endian bytes from c, failing
// with errs.ErrInsufficientData if fewer remain.
func readOneFixed(c *cursor.Cursor, width int) ([]byte, error) {
	var scratch [8]byte
	buf := scratch[:width]
	if err := c.TryReadInto(buf); err != nil {
		return nil, errs.At(c.Offset(), err)
	}

	return buf, nil
}

// --- Int8 / UInt8 ---

type int8Type struct{}

func (int8Type) TypeName() string { return "Int8" }
func (int8Type) Kind() Kind { return KindInt8 }
func (int8Type) Representation() Representation { return RepFixedWidth }
func (int8Type) Width() int { return 1 }

func (t int8Type) ReadOne(c *cursor.Cursor) (any, int, error) {
	b, err := readOneFixed(c, 1)
	if err != nil {
		return nil, 0, err
	}
	return int8(b[0]), 1, nil
}

func (t int8Type) WriteOne(w *writer.ByteWriter, v any) error {
	span := w.Reserve(1)
	span[0] = byte(v.(int8))
	w.Commit(1)
	return nil
}

func (t int8Type) ReadMany(c *cursor.Cursor, n int, caps capability.Descriptor) (any, int, error) {
	raw := make([]byte, n)
	consumed, err := readFixedBytes(c, raw, n, 1, caps)
	if err != nil {
		return nil, consumed, errs.At(c.Offset(), err)
	}
	out := make([]int8, n)
	for i := range out {
		out[i] = int8(raw[i])
	}
	return out, consumed, nil
}

func (t int8Type) WriteMany(w *writer.ByteWriter, values any, caps capability.Descriptor) error {
	vals, ok := values.([]int8)
	if !ok {
		return fmt.Errorf("int8Type.WriteMany: expected []int8, got %T", values)
	}
	raw := make([]byte, len(vals))
	for i, v := range vals {
		raw[i] = byte(v)
	}
	writeFixedBytes(w, raw, len(vals), 1, caps)
	return nil
}

type uint8Type struct{}

func (uint8Type) TypeName() string { return "UInt8" }
func (uint8Type) Kind() Kind { return KindUInt8 }
func (uint8Type) Representation() Representation { return RepFixedWidth }
func (uint8Type) Width() int { return 1 }

func (t uint8Type) ReadOne(c *cursor.Cursor) (any, int, error) {
	b, err := readOneFixed(c, 1)
	if err != nil {
		return nil, 0, err
	}
	return b[0], 1, nil
}

func (t uint8Type) WriteOne(w *writer.ByteWriter, v any) error {
	span := w.Reserve(1)
	span[0] = v.(uint8)
	w.Commit(1)
	return nil
}

func (t uint8Type) ReadMany(c *cursor.Cursor, n int, caps capability.Descriptor) (any, int, error) {
	out := make([]byte, n)
	consumed, err := readFixedBytes(c, out, n, 1, caps)
	if err != nil {
		return nil, consumed, errs.At(c.Offset(), err)
	}
	return out, consumed, nil
}

func (t uint8Type) WriteMany(w *writer.ByteWriter, values any, caps capability.Descriptor) error {
	vals, ok := values.([]uint8)
	if !ok {
		return fmt.Errorf("uint8Type.WriteMany: expected []uint8, got %T", values)
	}
	writeFixedBytes(w, vals, len(vals), 1, caps)
	return nil
}

// --- Int16 / UInt16 ---

type int16Type struct{}

func (int16Type) TypeName() string { return "Int16" }
func (int16Type) Kind() Kind { return KindInt16 }
func (int16Type) Representation() Representation { return RepFixedWidth }
func (int16Type) Width() int { return 2 }

func (t int16Type) ReadOne(c *cursor.Cursor) (any, int, error) {
	b, err := readOneFixed(c, 2)
	if err != nil {
		return nil, 0, err
	}
	return int16(le.Uint16(b)), 2, nil
}

func (t int16Type) WriteOne(w *writer.ByteWriter, v any) error {
	span := w.Reserve(2)
	le.PutUint16(span, uint16(v.(int16)))
	w.Commit(2)
	return nil
}

func (t int16Type) ReadMany(c *cursor.Cursor, n int, caps capability.Descriptor) (any, int, error) {
	raw := make([]byte, n*2)
	consumed, err := readFixedBytes(c, raw, n, 2, caps)
	if err != nil {
		return nil, consumed, errs.At(c.Offset(), err)
	}
	out := make([]int16, n)
	for i := range out {
		out[i] = int16(le.Uint16(raw[i*2:]))
	}
	return out, consumed, nil
}

func (t int16Type) WriteMany(w *writer.ByteWriter, values any, caps capability.Descriptor) error {
	vals, ok := values.([]int16)
	if !ok {
		return fmt.Errorf("int16Type.WriteMany: expected []int16, got %T", values)
	}
	raw := make([]byte, len(vals)*2)
	for i, v := range vals {
		le.PutUint16(raw[i*2:], uint16(v))
	}
	writeFixedBytes(w, raw, len(vals), 2, caps)
	return nil
}

type uint16Type struct{}

func (uint16Type) TypeName() string { return "UInt16" }
func (uint16Type) Kind() Kind { return KindUInt16 }
func (uint16Type) Representation() Representation { return RepFixedWidth }
func (uint16Type) Width() int { return 2 }

func (t uint16Type) ReadOne(c *cursor.Cursor) (any, int, error) {
	b, err := readOneFixed(c, 2)
	if err != nil {
		return nil, 0, err
	}
	return le.Uint16(b), 2, nil
}

func (t uint16Type) WriteOne(w *writer.ByteWriter, v any) error {
	span := w.Reserve(2)
	le.PutUint16(span, v.(uint16))
	w.Commit(2)
	return nil
}

func (t uint16Type) ReadMany(c *cursor.Cursor, n int, caps capability.Descriptor) (any, int, error) {
	raw := make([]byte, n*2)
	consumed, err := readFixedBytes(c, raw, n, 2, caps)
	if err != nil {
		return nil, consumed, errs.At(c.Offset(), err)
	}
	out := make([]uint16, n)
	for i := range out {
		out[i] = le.Uint16(raw[i*2:])
	}
	return out, consumed, nil
}

func (t uint16Type) WriteMany(w *writer.ByteWriter, values any, caps capability.Descriptor) error {
	vals, ok := values.([]uint16)
	if !ok {
		return fmt.Errorf("uint16Type.WriteMany: expected []uint16, got %T", values)
	}
	raw := make([]byte, len(vals)*2)
	for i, v := range vals {
		le.PutUint16(raw[i*2:], v)
	}
	writeFixedBytes(w, raw, len(vals), 2, caps)
	return nil
}

// --- Int32 / UInt32 ---

type int32Type struct{}

func (int32Type) TypeName() string { return "Int32" }
func (int32Type) Kind() Kind { return KindInt32 }
func (int32Type) Representation() Representation { return RepFixedWidth }
func (int32Type) Width() int { return 4 }

func (t int32Type) ReadOne(c *cursor.Cursor) (any, int, error) {
	b, err := readOneFixed(c, 4)
	if err != nil {
		return nil, 0, err
	}
	return int32(le.Uint32(b)), 4, nil
}

func (t int32Type) WriteOne(w *writer.ByteWriter, v any) error {
	span := w.Reserve(4)
	le.PutUint32(span, uint32(v.(int32)))
	w.Commit(4)
	return nil
}

func (t int32Type) ReadMany(c *cursor.Cursor, n int, caps capability.Descriptor) (any, int, error) {
	raw := make([]byte, n*4)
	consumed, err := readFixedBytes(c, raw, n, 4, caps)
	if err != nil {
		return nil, consumed, errs.At(c.Offset(), err)
	}
	out := make([]int32, n)
	for i := range out {
		out[i] = int32(le.Uint32(raw[i*4:]))
	}
	return out, consumed, nil
}

func (t int32Type) WriteMany(w *writer.ByteWriter, values any, caps capability.Descriptor) error {
	vals, ok := values.([]int32)
	if !ok {
		return fmt.Errorf("int32Type.WriteMany: expected []int32, got %T", values)
	}
	raw := make([]byte, len(vals)*4)
	for i, v := range vals {
		le.PutUint32(raw[i*4:], uint32(v))
	}
	writeFixedBytes(w, raw, len(vals), 4, caps)
	return nil
}

type uint32Type struct{}

func (uint32Type) TypeName() string { return "UInt32" }
func (uint32Type) Kind() Kind { return KindUInt32 }
func (uint32Type) Representation() Representation { return RepFixedWidth }
func (uint32Type) Width() int { return 4 }

func (t uint32Type) ReadOne(c *cursor.Cursor) (any, int, error) {
	b, err := readOneFixed(c, 4)
	if err != nil {
		return nil, 0, err
	}
	return le.Uint32(b), 4, nil
}

func (t uint32Type) WriteOne(w *writer.ByteWriter, v any) error {
	span := w.Reserve(4)
	le.PutUint32(span, v.(uint32))
	w.Commit(4)
	return nil
}

func (t uint32Type) ReadMany(c *cursor.Cursor, n int, caps capability.Descriptor) (any, int, error) {
	raw := make([]byte, n*4)
	consumed, err := readFixedBytes(c, raw, n, 4, caps)
	if err != nil {
		return nil, consumed, errs.At(c.Offset(), err)
	}
	out := make([]uint32, n)
	for i := range out {
		out[i] = le.Uint32(raw[i*4:])
	}
	return out, consumed, nil
}

func (t uint32Type) WriteMany(w *writer.ByteWriter, values any, caps capability.Descriptor) error {
	vals, ok := values.([]uint32)
	if !ok {
		return fmt.Errorf("uint32Type.WriteMany: expected []uint32, got %T", values)
	}
	raw := make([]byte, len(vals)*4)
	for i, v := range vals {
		le.PutUint32(raw[i*4:], v)
	}
	writeFixedBytes(w, raw, len(vals), 4, caps)
	return nil
}

// --- Int64 / UInt64 ---

type int64Type struct{}

func (int64Type) TypeName() string { return "Int64" }
func (int64Type) Kind() Kind { return KindInt64 }
func (int64Type) Representation() Representation { return RepFixedWidth }
func (int64Type) Width() int { return 8 }

func (t int64Type) ReadOne(c *cursor.Cursor) (any, int, error) {
	b, err := readOneFixed(c, 8)
	if err != nil {
		return nil, 0, err
	}
	return int64(le.Uint64(b)), 8, nil
}

func (t int64Type) WriteOne(w *writer.ByteWriter, v any) error {
	span := w.Reserve(8)
	le.PutUint64(span, uint64(v.(int64)))
	w.Commit(8)
	return nil
}

func (t int64Type) ReadMany(c *cursor.Cursor, n int, caps capability.Descriptor) (any, int, error) {
	raw := make([]byte, n*8)
	consumed, err := readFixedBytes(c, raw, n, 8, caps)
	if err != nil {
		return nil, consumed, errs.At(c.Offset(), err)
	}
	out := make([]int64, n)
	for i := range out {
		out[i] = int64(le.Uint64(raw[i*8:]))
	}
	return out, consumed, nil
}

func (t int64Type) WriteMany(w *writer.ByteWriter, values any, caps capability.Descriptor) error {
	vals, ok := values.([]int64)
	if !ok {
		return fmt.Errorf("int64Type.WriteMany: expected []int64, got %T", values)
	}
	raw := make([]byte, len(vals)*8)
	for i, v := range vals {
		le.PutUint64(raw[i*8:], uint64(v))
	}
	writeFixedBytes(w, raw, len(vals), 8, caps)
	return nil
}

type uint64Type struct{}

func (uint64Type) TypeName() string { return "UInt64" }
func (uint64Type) Kind() Kind { return KindUInt64 }
func (uint64Type) Representation() Representation { return RepFixedWidth }
func (uint64Type) Width() int { return 8 }

func (t uint64Type) ReadOne(c *cursor.Cursor) (any, int, error) {
	b, err := readOneFixed(c, 8)
	if err != nil {
		return nil, 0, err
	}
	return le.Uint64(b), 8, nil
}

func (t uint64Type) WriteOne(w *writer.ByteWriter, v any) error {
	span := w.Reserve(8)
	le.PutUint64(span, v.(uint64))
	w.Commit(8)
	return nil
}

func (t uint64Type) ReadMany(c *cursor.Cursor, n int, caps capability.Descriptor) (any, int, error) {
	raw := make([]byte, n*8)
	consumed, err := readFixedBytes(c, raw, n, 8, caps)
	if err != nil {
		return nil, consumed, errs.At(c.Offset(), err)
	}
	out := make([]uint64, n)
	for i := range out {
		out[i] = le.Uint64(raw[i*8:])
	}
	return out, consumed, nil
}

func (t uint64Type) WriteMany(w *writer.ByteWriter, values any, caps capability.Descriptor) error {
	vals, ok := values.([]uint64)
	if !ok {
		return fmt.Errorf("uint64Type.WriteMany: expected []uint64, got %T", values)
	}
	raw := make([]byte, len(vals)*8)
	for i, v := range vals {
		le.PutUint64(raw[i*8:], v)
	}
	writeFixedBytes(w, raw, len(vals), 8, caps)
	return nil
}
