package block

import (
	"fmt"

	"github.com/lattice-io/chcore/errs"
)

// Block is an ordered sequence of ColumnDescriptors paired with, for each
// column, a typed ColumnStore of length RowCount (§4.5).
//
// A Block built via New is immutable; a Block built via NewEmpty is
// filled in one column at a time via SetColumn until the caller is done
// assembling it.
type Block struct {
	descriptors []ColumnDescriptor
	columns     []ColumnStore
	rowCount    int
	nameIndex   map[string]int
}

// New builds a Block from a parallel descriptors/columns list and an
// explicit row count. It fails with errs.ErrColumnCountMismatch if the two
// lists differ in length, with errs.ErrDuplicateColumnName if two
// descriptors share a name, and does not validate that every column's
// length equals rowCount (callers that build a Block from a framer do; see
// native and rowbinary).
func New(descriptors []ColumnDescriptor, columns []ColumnStore, rowCount int) (*Block, error) {
	if len(descriptors) != len(columns) {
		return nil, fmt.Errorf("%w: %d descriptors, %d columns", errs.ErrColumnCountMismatch, len(descriptors), len(columns))
	}

	nameIndex := make(map[string]int, len(descriptors))
	for i, d := range descriptors {
		if _, exists := nameIndex[d.Name]; exists {
			return nil, fmt.Errorf("%w: %q", errs.ErrDuplicateColumnName, d.Name)
		}
		nameIndex[d.Name] = i
	}

	return &Block{
		descriptors: descriptors,
		columns:     columns,
		rowCount:    rowCount,
		nameIndex:   nameIndex,
	}, nil
}

// NewEmpty builds an empty, appendable Block over the given descriptor
// list, with zero rows and no column data yet.
func NewEmpty(descriptors []ColumnDescriptor) (*Block, error) {
	nameIndex := make(map[string]int, len(descriptors))
	for i, d := range descriptors {
		if _, exists := nameIndex[d.Name]; exists {
			return nil, fmt.Errorf("%w: %q", errs.ErrDuplicateColumnName, d.Name)
		}
		nameIndex[d.Name] = i
	}

	return &Block{
		descriptors: descriptors,
		columns:     make([]ColumnStore, len(descriptors)),
		nameIndex:   nameIndex,
	}, nil
}

// SetColumn installs store as the data for the column at index and, if
// this is the first column installed, fixes the Block's row count to
// store.Len(). Intended for use by framers assembling a Block from decoded
// column data one column at a time.
func (b *Block) SetColumn(index int, store ColumnStore) error {
	if index < 0 || index >= len(b.columns) {
		return fmt.Errorf("%w: column index %d", errs.ErrOutOfRange, index)
	}

	b.columns[index] = store
	if b.rowCount == 0 {
		b.rowCount = store.Len()
	}

	return nil
}

// ColumnCount returns the number of columns in the block.
func (b *Block) ColumnCount() int {
	return len(b.descriptors)
}

// RowCount returns the number of rows in the block.
func (b *Block) RowCount() int {
	return b.rowCount
}

// Descriptors returns the block's column descriptors, in declared order.
func (b *Block) Descriptors() []ColumnDescriptor {
	return b.descriptors
}

// ColumnAt returns the ColumnStore at the given index. It fails with
// errs.ErrOutOfRange if index is outside [0, ColumnCount).
func (b *Block) ColumnAt(index int) (ColumnStore, error) {
	if index < 0 || index >= len(b.columns) {
		return ColumnStore{}, fmt.Errorf("%w: column index %d", errs.ErrOutOfRange, index)
	}

	return b.columns[index], nil
}

// Column returns the ColumnStore named name. It fails with
// errs.ErrUnknownColumn if no column has that name. Lookup is
// case-sensitive and exact.
func (b *Block) Column(name string) (ColumnStore, error) {
	idx, ok := b.nameIndex[name]
	if !ok {
		return ColumnStore{}, fmt.Errorf("%w: %q", errs.ErrUnknownColumn, name)
	}

	return b.columns[idx], nil
}

// DescriptorAt returns the ColumnDescriptor at the given index. It fails
// with errs.ErrOutOfRange if index is outside [0, ColumnCount).
func (b *Block) DescriptorAt(index int) (ColumnDescriptor, error) {
	if index < 0 || index >= len(b.descriptors) {
		return ColumnDescriptor{}, fmt.Errorf("%w: column index %d", errs.ErrOutOfRange, index)
	}

	return b.descriptors[index], nil
}

// Cell returns the row-th value of the col-th column, boxed as any. It
// fails with errs.ErrOutOfRange if row or col is out of bounds. Scalar
// leaf columns return the element type's Go value; Array-wrapped columns
// return a []any of that same shape, recursively, one level of []any per
// ArrayDepth.
func (b *Block) Cell(row, col int) (any, error) {
	if row < 0 || row >= b.rowCount {
		return nil, fmt.Errorf("%w: row %d", errs.ErrOutOfRange, row)
	}
	if col < 0 || col >= len(b.columns) {
		return nil, fmt.Errorf("%w: column %d", errs.ErrOutOfRange, col)
	}

	return cellOf(b.columns[col], row), nil
}

// CellByName is Cell, addressing the column by name instead of index. It
// fails with errs.ErrUnknownColumn if no column has that name.
func (b *Block) CellByName(row int, name string) (any, error) {
	idx, ok := b.nameIndex[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrUnknownColumn, name)
	}

	return b.Cell(row, idx)
}

func cellOf(s ColumnStore, row int) any {
	if s.Shape == ShapeNested {
		start := 0
		if row > 0 {
			start = int(s.Nested.Offsets[row-1])
		}
		end := int(s.Nested.Offsets[row])

		out := make([]any, 0, end-start)
		for i := start; i < end; i++ {
			out = append(out, cellOf(s.Nested.Inner, i))
		}

		return out
	}

	return leafCellOf(s, row)
}

func leafCellOf(s ColumnStore, row int) any {
	switch s.Shape {
	case ShapeInt8:
		return s.Int8[row]
	case ShapeUInt8:
		return s.UInt8[row]
	case ShapeInt16:
		return s.Int16[row]
	case ShapeUInt16:
		return s.UInt16[row]
	case ShapeInt32:
		return s.Int32[row]
	case ShapeUInt32:
		return s.UInt32[row]
	case ShapeInt64:
		return s.Int64[row]
	case ShapeUInt64:
		return s.UInt64[row]
	case ShapeFloat32:
		return s.Float32[row]
	case ShapeFloat64:
		return s.Float64[row]
	case ShapeString:
		return s.String[row]
	case ShapeFixedString:
		return s.FixedString[row]
	case ShapeUUID:
		return s.UUID[row]
	case ShapeBool:
		return s.Bool[row]
	default:
		return nil
	}
}

// Row materializes row r as a []any, one entry per column, in declared
// column order. Rows are produced lazily, on demand, per §9's "Block as
// row iterator" strategy: the canonical representation stays columnar and
// no persistent row-shaped storage is kept.
func (b *Block) Row(r int) ([]any, error) {
	if r < 0 || r >= b.rowCount {
		return nil, fmt.Errorf("%w: row %d", errs.ErrOutOfRange, r)
	}

	out := make([]any, len(b.columns))
	for i, col := range b.columns {
		out[i] = cellOf(col, r)
	}

	return out, nil
}

// Rows returns an iterator over every row's materialized []any view, in
// row order, built the same way Row does, one row at a time.
func (b *Block) Rows() func(yield func(int, []any) bool) {
	return func(yield func(int, []any) bool) {
		for r := 0; r < b.rowCount; r++ {
			row, err := b.Row(r)
			if err != nil {
				return
			}
			if !yield(r, row) {
				return
			}
		}
	}
}
