// Package rowbinary implements the RowBinary block framer (§4.7): a
// row-major wire format with no header, where each row's cells are
// concatenated column by column, and arrays are framed with a per-row
// length prefix rather than Native's cumulative offsets vector.
package rowbinary

import (
	"fmt"

	"github.com/lattice-io/chcore/block"
	"github.com/lattice-io/chcore/chtype"
	"github.com/lattice-io/chcore/cursor"
	"github.com/lattice-io/chcore/varint"
	"github.com/lattice-io/chcore/writer"
)

// WriteBlock encodes b in RowBinary format to w. There is no global
// header (§4.7): for each row, for each column in declared order, a
// scalar column emits type.WriteOne(cell), and an Array(...) column of
// depth d emits varint(length) followed by the recursively-framed
// elements.
func WriteBlock(w *writer.ByteWriter, b *block.Block) error {
	descriptors := b.Descriptors()

	for r := 0; r < b.RowCount(); r++ {
		for c, d := range descriptors {
			cell, err := b.Cell(r, c)
			if err != nil {
				return err
			}

			if err := writeCell(w, d.ElementType, d.ArrayDepth, cell); err != nil {
				return fmt.Errorf("rowbinary: row %d, column %q: %w", r, d.Name, err)
			}
		}
	}

	return nil
}

func writeCell(w *writer.ByteWriter, elementType chtype.Type, depth int, value any) error {
	if depth == 0 {
		return elementType.WriteOne(w, value)
	}

	elems, ok := value.([]any)
	if !ok {
		return fmt.Errorf("rowbinary: expected []any for array cell, got %T", value)
	}

	varint.Write(w, uint64(len(elems)))
	for _, e := range elems {
		if err := writeCell(w, elementType, depth-1, e); err != nil {
			return err
		}
	}

	return nil
}

// ReadBlock decodes a RowBinary-framed block of rowCount rows from c,
// matching the column schema in descriptors. Unlike Native, RowBinary
// carries no row count in the wire format itself (§4.7); the caller must
// know it in advance (typically from an out-of-band protocol field).
func ReadBlock(c *cursor.Cursor, descriptors []block.ColumnDescriptor, rowCount int) (*block.Block, error) {
	builders := make([]*columnBuilder, len(descriptors))
	for i, d := range descriptors {
		builders[i] = newColumnBuilder(d.ElementType, d.ArrayDepth)
	}

	for r := 0; r < rowCount; r++ {
		for ci, d := range descriptors {
			if err := builders[ci].readCell(c); err != nil {
				return nil, fmt.Errorf("rowbinary: row %d, column %q: %w", r, d.Name, err)
			}
		}
	}

	columns := make([]block.ColumnStore, len(descriptors))
	for i, b := range builders {
		store, err := b.build()
		if err != nil {
			return nil, fmt.Errorf("rowbinary: column %q: %w", descriptors[i].Name, err)
		}
		columns[i] = store
	}

	return block.New(descriptors, columns, rowCount)
}

// columnBuilder accumulates one column's decoded cells, row by row, into
// either a leaf value list (depth 0) or a cumulative-offset nested
// structure built on top of an inner builder (depth > 0). The offsets it
// produces are in the same cumulative-count shape Native uses, so the
// resulting block.ColumnStore is identical in shape regardless of which
// framer produced it.
type columnBuilder struct {
	elementType chtype.Type
	depth       int

	leafValues []any // used when depth == 0

	offsets    []uint64 // used when depth > 0
	cumulative uint64
	inner      *columnBuilder
}

func newColumnBuilder(elementType chtype.Type, depth int) *columnBuilder {
	b := &columnBuilder{elementType: elementType, depth: depth}
	if depth > 0 {
		b.inner = newColumnBuilder(elementType, depth-1)
	}

	return b
}

func (b *columnBuilder) readCell(c *cursor.Cursor) error {
	if b.depth == 0 {
		v, _, err := b.elementType.ReadOne(c)
		if err != nil {
			return err
		}
		b.leafValues = append(b.leafValues, v)

		return nil
	}

	length, _, err := varint.Read(c)
	if err != nil {
		return err
	}

	for i := uint64(0); i < length; i++ {
		if err := b.inner.readCell(c); err != nil {
			return err
		}
	}

	b.cumulative += length
	b.offsets = append(b.offsets, b.cumulative)

	return nil
}

func (b *columnBuilder) build() (block.ColumnStore, error) {
	if b.depth == 0 {
		return leafFromAnySlice(b.elementType.Kind(), b.leafValues)
	}

	inner, err := b.inner.build()
	if err != nil {
		return block.ColumnStore{}, err
	}

	return block.ColumnStore{Shape: block.ShapeNested, Nested: &block.NestedStore{Offsets: b.offsets, Inner: inner}}, nil
}

// leafFromAnySlice converts a []any of boxed scalar values, as produced by
// repeated chtype.Type.ReadOne calls, into the typed ColumnStore leaf for
// kind.
func leafFromAnySlice(kind chtype.Kind, values []any) (block.ColumnStore, error) {
	switch kind {
	case chtype.KindInt8:
		out := make([]int8, len(values))
		for i, v := range values {
			out[i] = v.(int8)
		}
		return block.ColumnStore{Shape: block.ShapeInt8, Int8: out}, nil
	case chtype.KindUInt8:
		out := make([]uint8, len(values))
		for i, v := range values {
			out[i] = v.(uint8)
		}
		return block.ColumnStore{Shape: block.ShapeUInt8, UInt8: out}, nil
	case chtype.KindInt16:
		out := make([]int16, len(values))
		for i, v := range values {
			out[i] = v.(int16)
		}
		return block.ColumnStore{Shape: block.ShapeInt16, Int16: out}, nil
	case chtype.KindUInt16, chtype.KindDate:
		out := make([]uint16, len(values))
		for i, v := range values {
			out[i] = v.(uint16)
		}
		return block.ColumnStore{Shape: block.ShapeUInt16, UInt16: out}, nil
	case chtype.KindInt32:
		out := make([]int32, len(values))
		for i, v := range values {
			out[i] = v.(int32)
		}
		return block.ColumnStore{Shape: block.ShapeInt32, Int32: out}, nil
	case chtype.KindUInt32, chtype.KindDateTime:
		out := make([]uint32, len(values))
		for i, v := range values {
			out[i] = v.(uint32)
		}
		return block.ColumnStore{Shape: block.ShapeUInt32, UInt32: out}, nil
	case chtype.KindInt64, chtype.KindDateTime64:
		out := make([]int64, len(values))
		for i, v := range values {
			out[i] = v.(int64)
		}
		return block.ColumnStore{Shape: block.ShapeInt64, Int64: out}, nil
	case chtype.KindUInt64:
		out := make([]uint64, len(values))
		for i, v := range values {
			out[i] = v.(uint64)
		}
		return block.ColumnStore{Shape: block.ShapeUInt64, UInt64: out}, nil
	case chtype.KindFloat32:
		out := make([]float32, len(values))
		for i, v := range values {
			out[i] = v.(float32)
		}
		return block.ColumnStore{Shape: block.ShapeFloat32, Float32: out}, nil
	case chtype.KindFloat64:
		out := make([]float64, len(values))
		for i, v := range values {
			out[i] = v.(float64)
		}
		return block.ColumnStore{Shape: block.ShapeFloat64, Float64: out}, nil
	case chtype.KindString:
		out := make([]string, len(values))
		for i, v := range values {
			out[i] = v.(string)
		}
		return block.ColumnStore{Shape: block.ShapeString, String: out}, nil
	case chtype.KindFixedString:
		out := make([][]byte, len(values))
		for i, v := range values {
			out[i] = v.([]byte)
		}
		return block.ColumnStore{Shape: block.ShapeFixedString, FixedString: out}, nil
	case chtype.KindUUID:
		out := make([]chtype.UUID, len(values))
		for i, v := range values {
			out[i] = v.(chtype.UUID)
		}
		return block.ColumnStore{Shape: block.ShapeUUID, UUID: out}, nil
	case chtype.KindBool:
		out := make([]bool, len(values))
		for i, v := range values {
			out[i] = v.(bool)
		}
		return block.ColumnStore{Shape: block.ShapeBool, Bool: out}, nil
	default:
		return block.ColumnStore{}, fmt.Errorf("rowbinary: unhandled kind %v", kind)
	}
}
