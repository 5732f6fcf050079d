package chtype

import (
	"fmt"

	"github.com/lattice-io/chcore/capability"
	"github.com/lattice-io/chcore/cursor"
	"github.com/lattice-io/chcore/errs"
	"github.com/lattice-io/chcore/writer"
)

// boolType stores Bool as a single byte, 0 for false and any nonzero byte
// decoding to true (canonically 1 on write), per §4.2's "Bool=UInt8".
type boolType struct{}

func (boolType) TypeName() string { return "Bool" }
func (boolType) Kind() Kind { return KindBool }
func (boolType) Representation() Representation { return RepFixedWidth }
func (boolType) Width() int { return 1 }

func (t boolType) ReadOne(c *cursor.Cursor) (any, int, error) {
	b, err := readOneFixed(c, 1)
	if err != nil {
		return nil, 0, err
	}
	return b[0] != 0, 1, nil
}

func (t boolType) WriteOne(w *writer.ByteWriter, v any) error {
	span := w.Reserve(1)
	if v.(bool) {
		span[0] = 1
	} else {
		span[0] = 0
	}
	w.Commit(1)
	return nil
}

func (t boolType) ReadMany(c *cursor.Cursor, n int, caps capability.Descriptor) (any, int, error) {
	raw := make([]byte, n)
	consumed, err := readFixedBytes(c, raw, n, 1, caps)
	if err != nil {
		return nil, consumed, errs.At(c.Offset(), err)
	}
	out := make([]bool, n)
	for i := range out {
		out[i] = raw[i] != 0
	}
	return out, consumed, nil
}

func (t boolType) WriteMany(w *writer.ByteWriter, values any, caps capability.Descriptor) error {
	vals, ok := values.([]bool)
	if !ok {
		return fmt.Errorf("boolType.WriteMany: expected []bool, got %T", values)
	}
	raw := make([]byte, len(vals))
	for i, v := range vals {
		if v {
			raw[i] = 1
		}
	}
	writeFixedBytes(w, raw, len(vals), 1, caps)
	return nil
}
