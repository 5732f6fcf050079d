package block

import (
	"fmt"

	"github.com/lattice-io/chcore/chtype"
)

// StoreShape tags which field of a ColumnStore holds its data: a leaf of
// one of the primitive Kinds, or a Nested wrapper one array level deeper
// than its Inner store.
//
// This is the "reflection-constructed typed containers per column"
// re-architecture named in §9: rather than building a container whose
// element type is discovered via reflection at decode time, ColumnStore is
// a closed tagged variant and the framer's Kind switch constructs the
// matching arm directly.
type StoreShape int

const (
	ShapeInt8 StoreShape = iota
	ShapeUInt8
	ShapeInt16
	ShapeUInt16
	ShapeInt32
	ShapeUInt32
	ShapeInt64
	ShapeUInt64
	ShapeFloat32
	ShapeFloat64
	ShapeString
	ShapeFixedString
	ShapeUUID
	ShapeBool
	ShapeNested
)

// NestedStore holds one level of Array(...) framing: Offsets is the
// cumulative per-row element count at this nesting level (§4.6, §6), and
// Inner is the flattened next-level-in store across every row.
type NestedStore struct {
	Offsets []uint64
	Inner   ColumnStore
}

// RowCount returns the number of rows this level of nesting describes,
// i.e. len(Offsets).
func (n *NestedStore) RowCount() int {
	return len(n.Offsets)
}

// RowLen returns the number of elements row r contains at this nesting
// level.
func (n *NestedStore) RowLen(r int) int {
	if r == 0 {
		return int(n.Offsets[0])
	}

	return int(n.Offsets[r] - n.Offsets[r-1])
}

// ColumnStore is a typed, closed-variant container for one column's data:
// exactly one field is populated, selected by Shape.
type ColumnStore struct {
	Shape StoreShape

	Int8        []int8
	UInt8       []uint8
	Int16       []int16
	UInt16      []uint16
	Int32       []int32
	UInt32      []uint32
	Int64       []int64
	UInt64      []uint64
	Float32     []float32
	Float64     []float64
	String      []string
	FixedString [][]byte
	UUID        []chtype.UUID
	Bool        []bool
	Nested      *NestedStore
}

// Len returns this store's row count: the length of its populated leaf
// slice, or the number of rows described by Nested.Offsets.
func (s ColumnStore) Len() int {
	if s.Shape == ShapeNested {
		return s.Nested.RowCount()
	}

	switch s.Shape {
	case ShapeInt8:
		return len(s.Int8)
	case ShapeUInt8:
		return len(s.UInt8)
	case ShapeInt16:
		return len(s.Int16)
	case ShapeUInt16:
		return len(s.UInt16)
	case ShapeInt32:
		return len(s.Int32)
	case ShapeUInt32:
		return len(s.UInt32)
	case ShapeInt64:
		return len(s.Int64)
	case ShapeUInt64:
		return len(s.UInt64)
	case ShapeFloat32:
		return len(s.Float32)
	case ShapeFloat64:
		return len(s.Float64)
	case ShapeString:
		return len(s.String)
	case ShapeFixedString:
		return len(s.FixedString)
	case ShapeUUID:
		return len(s.UUID)
	case ShapeBool:
		return len(s.Bool)
	default:
		return 0
	}
}

// NewLeafFromAny builds a leaf ColumnStore of the shape matching k from a
// decoded values slice boxed as any (the shape chtype.Type.ReadMany
// returns for that Kind).
func NewLeafFromAny(k chtype.Kind, values any) (ColumnStore, error) {
	switch k {
	case chtype.KindInt8:
		v, ok := values.([]int8)
		if !ok {
			return ColumnStore{}, fmt.Errorf("NewLeafFromAny: Int8: got %T", values)
		}
		return ColumnStore{Shape: ShapeInt8, Int8: v}, nil
	case chtype.KindUInt8:
		v, ok := values.([]uint8)
		if !ok {
			return ColumnStore{}, fmt.Errorf("NewLeafFromAny: UInt8: got %T", values)
		}
		return ColumnStore{Shape: ShapeUInt8, UInt8: v}, nil
	case chtype.KindInt16:
		v, ok := values.([]int16)
		if !ok {
			return ColumnStore{}, fmt.Errorf("NewLeafFromAny: Int16: got %T", values)
		}
		return ColumnStore{Shape: ShapeInt16, Int16: v}, nil
	case chtype.KindUInt16, chtype.KindDate:
		v, ok := values.([]uint16)
		if !ok {
			return ColumnStore{}, fmt.Errorf("NewLeafFromAny: UInt16/Date: got %T", values)
		}
		return ColumnStore{Shape: ShapeUInt16, UInt16: v}, nil
	case chtype.KindInt32:
		v, ok := values.([]int32)
		if !ok {
			return ColumnStore{}, fmt.Errorf("NewLeafFromAny: Int32: got %T", values)
		}
		return ColumnStore{Shape: ShapeInt32, Int32: v}, nil
	case chtype.KindUInt32, chtype.KindDateTime:
		v, ok := values.([]uint32)
		if !ok {
			return ColumnStore{}, fmt.Errorf("NewLeafFromAny: UInt32/DateTime: got %T", values)
		}
		return ColumnStore{Shape: ShapeUInt32, UInt32: v}, nil
	case chtype.KindInt64, chtype.KindDateTime64:
		v, ok := values.([]int64)
		if !ok {
			return ColumnStore{}, fmt.Errorf("NewLeafFromAny: Int64/DateTime64: got %T", values)
		}
		return ColumnStore{Shape: ShapeInt64, Int64: v}, nil
	case chtype.KindUInt64:
		v, ok := values.([]uint64)
		if !ok {
			return ColumnStore{}, fmt.Errorf("NewLeafFromAny: UInt64: got %T", values)
		}
		return ColumnStore{Shape: ShapeUInt64, UInt64: v}, nil
	case chtype.KindFloat32:
		v, ok := values.([]float32)
		if !ok {
			return ColumnStore{}, fmt.Errorf("NewLeafFromAny: Float32: got %T", values)
		}
		return ColumnStore{Shape: ShapeFloat32, Float32: v}, nil
	case chtype.KindFloat64:
		v, ok := values.([]float64)
		if !ok {
			return ColumnStore{}, fmt.Errorf("NewLeafFromAny: Float64: got %T", values)
		}
		return ColumnStore{Shape: ShapeFloat64, Float64: v}, nil
	case chtype.KindString:
		v, ok := values.([]string)
		if !ok {
			return ColumnStore{}, fmt.Errorf("NewLeafFromAny: String: got %T", values)
		}
		return ColumnStore{Shape: ShapeString, String: v}, nil
	case chtype.KindFixedString:
		v, ok := values.([][]byte)
		if !ok {
			return ColumnStore{}, fmt.Errorf("NewLeafFromAny: FixedString: got %T", values)
		}
		return ColumnStore{Shape: ShapeFixedString, FixedString: v}, nil
	case chtype.KindUUID:
		v, ok := values.([]chtype.UUID)
		if !ok {
			return ColumnStore{}, fmt.Errorf("NewLeafFromAny: UUID: got %T", values)
		}
		return ColumnStore{Shape: ShapeUUID, UUID: v}, nil
	case chtype.KindBool:
		v, ok := values.([]bool)
		if !ok {
			return ColumnStore{}, fmt.Errorf("NewLeafFromAny: Bool: got %T", values)
		}
		return ColumnStore{Shape: ShapeBool, Bool: v}, nil
	default:
		return ColumnStore{}, fmt.Errorf("NewLeafFromAny: unhandled kind %v", k)
	}
}

// AsAny boxes this leaf store's populated slice as any, suitable for
// passing to chtype.Type.WriteMany.
func (s ColumnStore) AsAny() any {
	switch s.Shape {
	case ShapeInt8:
		return s.Int8
	case ShapeUInt8:
		return s.UInt8
	case ShapeInt16:
		return s.Int16
	case ShapeUInt16:
		return s.UInt16
	case ShapeInt32:
		return s.Int32
	case ShapeUInt32:
		return s.UInt32
	case ShapeInt64:
		return s.Int64
	case ShapeUInt64:
		return s.UInt64
	case ShapeFloat32:
		return s.Float32
	case ShapeFloat64:
		return s.Float64
	case ShapeString:
		return s.String
	case ShapeFixedString:
		return s.FixedString
	case ShapeUUID:
		return s.UUID
	case ShapeBool:
		return s.Bool
	default:
		return nil
	}
}

// shapeMismatch panics with a message naming the accessor, this store's
// actual shape, and the shape it expected. Only the typed accessors below
// call it; AsAny and the generic codec path never panic.
func (s ColumnStore) shapeMismatch(accessor string, want StoreShape) {
	panic(fmt.Sprintf("block: %s called on a ColumnStore of shape %d, expected %d", accessor, s.Shape, want))
}

// AsInt32 returns this store's int32 leaf slice. It panics if Shape is not
// ShapeInt32, the typed-accessor convention named in SPEC_FULL.md §4
// (Column-to-Go-slice convenience views): a caller that already knows a
// column's declared element type can read it directly without
// re-deriving the Go type from ColumnDescriptor or type-asserting AsAny.
func (s ColumnStore) AsInt32() []int32 {
	if s.Shape != ShapeInt32 {
		s.shapeMismatch("AsInt32", ShapeInt32)
	}
	return s.Int32
}

// AsInt64 returns this store's int64 leaf slice, or its DateTime64 leaf
// slice (they share a shape). It panics if Shape is not ShapeInt64.
func (s ColumnStore) AsInt64() []int64 {
	if s.Shape != ShapeInt64 {
		s.shapeMismatch("AsInt64", ShapeInt64)
	}
	return s.Int64
}

// AsFloat64 returns this store's float64 leaf slice. It panics if Shape is
// not ShapeFloat64.
func (s ColumnStore) AsFloat64() []float64 {
	if s.Shape != ShapeFloat64 {
		s.shapeMismatch("AsFloat64", ShapeFloat64)
	}
	return s.Float64
}

// AsStringSlice returns this store's string leaf slice. It panics if Shape
// is not ShapeString.
func (s ColumnStore) AsStringSlice() []string {
	if s.Shape != ShapeString {
		s.shapeMismatch("AsStringSlice", ShapeString)
	}
	return s.String
}

// AsUUIDSlice returns this store's UUID leaf slice. It panics if Shape is
// not ShapeUUID.
func (s ColumnStore) AsUUIDSlice() []chtype.UUID {
	if s.Shape != ShapeUUID {
		s.shapeMismatch("AsUUIDSlice", ShapeUUID)
	}
	return s.UUID
}
