// Package native implements the Native block framer (§4.6): a
// column-oriented wire format with a varint header, per-column name and
// type-name strings, and recursive cumulative-offset array framing.
package native

import (
	"fmt"
	"math"

	"github.com/lattice-io/chcore/block"
	"github.com/lattice-io/chcore/capability"
	"github.com/lattice-io/chcore/chtype"
	"github.com/lattice-io/chcore/cursor"
	"github.com/lattice-io/chcore/endian"
	"github.com/lattice-io/chcore/errs"
	"github.com/lattice-io/chcore/varint"
	"github.com/lattice-io/chcore/writer"
)

var le = endian.GetLittleEndianEngine()

// ReadOptions controls the tolerant/strict behavior left open by §9's
// first open question.
type ReadOptions struct {
	// StrictTypeNames, when true, fails with errs.ErrTypeNameMismatch if a
	// column's wire type name differs from the expected descriptor's wire
	// type name. Default false: the type name is still read, but neither
	// parsed nor compared.
	StrictTypeNames bool

	// ExpectedRowCount, when >= 0, fails with errs.ErrHeaderMismatch if the
	// wire header's row count differs. A negative value (as set by
	// DefaultReadOptions) means "accept whatever the wire header says"; the
	// zero value of ReadOptions expects a row count of 0.
	ExpectedRowCount int
}

// DefaultReadOptions is the tolerant configuration: type names are read
// but not compared, and any row count is accepted.
func DefaultReadOptions() ReadOptions {
	return ReadOptions{ExpectedRowCount: -1}
}

// WriteBlock encodes b in Native format to w, using caps to gate the
// bulk codec kernels of every column's element type.
//
// Write sequence (§6): varint(column_count), varint(row_count), then for
// each column in declared order: string(name), string(wire_type_name),
// then the column payload (§4.6).
func WriteBlock(w *writer.ByteWriter, b *block.Block, caps capability.Descriptor) error {
	descriptors := b.Descriptors()

	varint.Write(w, uint64(len(descriptors)))
	varint.Write(w, uint64(b.RowCount()))

	for i, d := range descriptors {
		writeString(w, d.Name)
		writeString(w, d.WireTypeName())

		col, err := b.ColumnAt(i)
		if err != nil {
			return err
		}

		if err := writeColumnPayload(w, col, d.ElementType, d.ArrayDepth, caps); err != nil {
			return fmt.Errorf("native: column %q: %w", d.Name, err)
		}
	}

	return nil
}

// writeColumnPayload encodes store, which must carry depth levels of
// Array(...) nesting around elementType (the descriptor's declared
// element type, not re-derived from the store's shape: several distinct
// wire types - Date/UInt16, DateTime/UInt32, DateTime64/Int64 - share a
// ColumnStore shape, so the shape alone cannot tell a Date column from a
// plain UInt16 one).
func writeColumnPayload(w *writer.ByteWriter, store block.ColumnStore, elementType chtype.Type, depth int, caps capability.Descriptor) error {
	if depth > 0 {
		if store.Shape != block.ShapeNested {
			return fmt.Errorf("native: expected nested column store at depth %d, got shape %v", depth, store.Shape)
		}

		for _, offset := range store.Nested.Offsets {
			span := w.Reserve(8)
			le.PutUint64(span, offset)
			w.Commit(8)
		}

		return writeColumnPayload(w, store.Nested.Inner, elementType, depth-1, caps)
	}

	return elementType.WriteMany(w, store.AsAny(), caps)
}

// ReadBlock decodes a Native-framed block from c, validating it against
// expected (the caller's schema) per opts, and returns the assembled
// Block.
//
// Read sequence (§4.6): read column_count/row_count, failing with
// errs.ErrHeaderMismatch on disagreement with expected or
// opts.ExpectedRowCount; for each column, read name+type strings (failing
// with errs.ErrNameMismatch on a name disagreement), then recursively
// decode the column payload per expected[i].ArrayDepth.
func ReadBlock(c *cursor.Cursor, expected []block.ColumnDescriptor, opts ReadOptions, caps capability.Descriptor) (*block.Block, error) {
	columnCount, _, err := varint.Read(c)
	if err != nil {
		return nil, err
	}
	rowCount, _, err := varint.Read(c)
	if err != nil {
		return nil, err
	}

	if int(columnCount) != len(expected) {
		return nil, fmt.Errorf("%w: wire column count %d, expected %d", errs.ErrHeaderMismatch, columnCount, len(expected))
	}
	if opts.ExpectedRowCount >= 0 && int(rowCount) != opts.ExpectedRowCount {
		return nil, fmt.Errorf("%w: wire row count %d, expected %d", errs.ErrHeaderMismatch, rowCount, opts.ExpectedRowCount)
	}

	columns := make([]block.ColumnStore, len(expected))
	for i, want := range expected {
		name, _, err := readString(c)
		if err != nil {
			return nil, err
		}
		if name != want.Name {
			return nil, fmt.Errorf("%w: column %d: wire name %q, expected %q", errs.ErrNameMismatch, i, name, want.Name)
		}

		typeName, _, err := readString(c)
		if err != nil {
			return nil, err
		}
		if opts.StrictTypeNames && typeName != want.WireTypeName() {
			return nil, fmt.Errorf("%w: column %q: wire type %q, expected %q", errs.ErrTypeNameMismatch, want.Name, typeName, want.WireTypeName())
		}

		store, err := readColumnPayload(c, want.ElementType, int(rowCount), want.ArrayDepth, caps)
		if err != nil {
			return nil, fmt.Errorf("native: column %q: %w", want.Name, err)
		}
		columns[i] = store
	}

	return block.New(expected, columns, int(rowCount))
}

func readColumnPayload(c *cursor.Cursor, elementType chtype.Type, rowCount, depth int, caps capability.Descriptor) (block.ColumnStore, error) {
	if depth == 0 {
		values, _, err := elementType.ReadMany(c, rowCount, caps)
		if err != nil {
			return block.ColumnStore{}, err
		}

		return block.NewLeafFromAny(elementType.Kind(), values)
	}

	offsets := make([]uint64, rowCount)
	var prev uint64
	for i := range offsets {
		var raw [8]byte
		if err := c.TryReadInto(raw[:]); err != nil {
			return block.ColumnStore{}, errs.At(c.Offset(), errs.ErrInsufficientData)
		}
		o := le.Uint64(raw[:])
		if o > math.MaxInt {
			return block.ColumnStore{}, fmt.Errorf("%w: offset %d (%d) exceeds the addressable element count", errs.ErrBadOffsets, i, o)
		}
		if o < prev {
			return block.ColumnStore{}, fmt.Errorf("%w: offset %d (%d) precedes offset %d (%d)", errs.ErrBadOffsets, i, o, i-1, prev)
		}
		offsets[i] = o
		prev = o
	}

	innerCount := 0
	if rowCount > 0 {
		innerCount = int(offsets[rowCount-1])
	}

	inner, err := readColumnPayload(c, elementType, innerCount, depth-1, caps)
	if err != nil {
		return block.ColumnStore{}, err
	}

	return block.ColumnStore{Shape: block.ShapeNested, Nested: &block.NestedStore{Offsets: offsets, Inner: inner}}, nil
}

func writeString(w *writer.ByteWriter, s string) {
	varint.Write(w, uint64(len(s)))
	w.Append([]byte(s))
}

func readString(c *cursor.Cursor) (string, int, error) {
	length, lenBytes, err := varint.Read(c)
	if err != nil {
		return "", lenBytes, err
	}

	buf := make([]byte, length)
	if err := c.TryReadInto(buf); err != nil {
		return "", lenBytes, errs.At(c.Offset(), errs.ErrInsufficientData)
	}

	return string(buf), lenBytes + int(length), nil
}
