package chtype

import (
	"fmt"
	"math"

	"github.com/lattice-io/chcore/capability"
	"github.com/lattice-io/chcore/cursor"
	"github.com/lattice-io/chcore/errs"
	"github.com/lattice-io/chcore/writer"
)

// Float codecs round-trip through math.Float{32,64}bits/frombits so that a
// NaN's exact bit pattern survives decode(encode(v)), per §3's invariant
// for values originating from the codec itself.

type float32Type struct{}

func (float32Type) TypeName() string { return "Float32" }
func (float32Type) Kind() Kind { return KindFloat32 }
func (float32Type) Representation() Representation { return RepFixedWidth }
func (float32Type) Width() int { return 4 }

func (t float32Type) ReadOne(c *cursor.Cursor) (any, int, error) {
	b, err := readOneFixed(c, 4)
	if err != nil {
		return nil, 0, err
	}
	return math.Float32frombits(le.Uint32(b)), 4, nil
}

func (t float32Type) WriteOne(w *writer.ByteWriter, v any) error {
	span := w.Reserve(4)
	le.PutUint32(span, math.Float32bits(v.(float32)))
	w.Commit(4)
	return nil
}

func (t float32Type) ReadMany(c *cursor.Cursor, n int, caps capability.Descriptor) (any, int, error) {
	raw := make([]byte, n*4)
	consumed, err := readFixedBytes(c, raw, n, 4, caps)
	if err != nil {
		return nil, consumed, errs.At(c.Offset(), err)
	}
	out := make([]float32, n)
	for i := range out {
		out[i] = math.Float32frombits(le.Uint32(raw[i*4:]))
	}
	return out, consumed, nil
}

func (t float32Type) WriteMany(w *writer.ByteWriter, values any, caps capability.Descriptor) error {
	vals, ok := values.([]float32)
	if !ok {
		return fmt.Errorf("float32Type.WriteMany: expected []float32, got %T", values)
	}
	raw := make([]byte, len(vals)*4)
	for i, v := range vals {
		le.PutUint32(raw[i*4:], math.Float32bits(v))
	}
	writeFixedBytes(w, raw, len(vals), 4, caps)
	return nil
}

type float64Type struct{}

func (float64Type) TypeName() string { return "Float64" }
func (float64Type) Kind() Kind { return KindFloat64 }
func (float64Type) Representation() Representation { return RepFixedWidth }
func (float64Type) Width() int { return 8 }

func (t float64Type) ReadOne(c *cursor.Cursor) (any, int, error) {
	b, err := readOneFixed(c, 8)
	if err != nil {
		return nil, 0, err
	}
	return math.Float64frombits(le.Uint64(b)), 8, nil
}

func (t float64Type) WriteOne(w *writer.ByteWriter, v any) error {
	span := w.Reserve(8)
	le.PutUint64(span, math.Float64bits(v.(float64)))
	w.Commit(8)
	return nil
}

func (t float64Type) ReadMany(c *cursor.Cursor, n int, caps capability.Descriptor) (any, int, error) {
	raw := make([]byte, n*8)
	consumed, err := readFixedBytes(c, raw, n, 8, caps)
	if err != nil {
		return nil, consumed, errs.At(c.Offset(), err)
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Float64frombits(le.Uint64(raw[i*8:]))
	}
	return out, consumed, nil
}

func (t float64Type) WriteMany(w *writer.ByteWriter, values any, caps capability.Descriptor) error {
	vals, ok := values.([]float64)
	if !ok {
		return fmt.Errorf("float64Type.WriteMany: expected []float64, got %T", values)
	}
	raw := make([]byte, len(vals)*8)
	for i, v := range vals {
		le.PutUint64(raw[i*8:], math.Float64bits(v))
	}
	writeFixedBytes(w, raw, len(vals), 8, caps)
	return nil
}
