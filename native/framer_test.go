package native

import (
	"testing"

	"github.com/lattice-io/chcore/block"
	"github.com/lattice-io/chcore/capability"
	"github.com/lattice-io/chcore/chtype"
	"github.com/lattice-io/chcore/cursor"
	"github.com/lattice-io/chcore/errs"
	"github.com/lattice-io/chcore/varint"
	"github.com/lattice-io/chcore/writer"
	"github.com/stretchr/testify/require"
)

func buildScalarBlock(t *testing.T) *block.Block {
	t.Helper()

	idDesc, err := block.NewColumnDescriptor("id", chtype.ByKind(chtype.KindInt32))
	require.NoError(t, err)
	nameDesc, err := block.NewColumnDescriptor("name", chtype.ByKind(chtype.KindString))
	require.NoError(t, err)

	b, err := block.New(
		[]block.ColumnDescriptor{idDesc, nameDesc},
		[]block.ColumnStore{
			{Shape: block.ShapeInt32, Int32: []int32{1, 2, 3}},
			{Shape: block.ShapeString, String: []string{"a", "bb", "ccc"}},
		},
		3,
	)
	require.NoError(t, err)

	return b
}

func TestWriteReadBlock_ScalarColumns(t *testing.T) {
	b := buildScalarBlock(t)

	w := writer.New()
	require.NoError(t, WriteBlock(w, b, capability.Full))

	c := cursor.New([][]byte{w.Bytes()})
	got, err := ReadBlock(c, b.Descriptors(), DefaultReadOptions(), capability.Full)
	require.NoError(t, err)

	require.Equal(t, 3, got.RowCount())
	idStore, err := got.Column("id")
	require.NoError(t, err)
	require.Equal(t, []int32{1, 2, 3}, idStore.AsInt32())

	nameStore, err := got.Column("name")
	require.NoError(t, err)
	require.Equal(t, []string{"a", "bb", "ccc"}, nameStore.AsStringSlice())
}

func TestWriteReadBlock_NestedArrayColumn(t *testing.T) {
	tagsDesc, err := block.NewArrayColumnDescriptor("tags", chtype.ByKind(chtype.KindInt32), 1)
	require.NoError(t, err)

	inner := block.ColumnStore{Shape: block.ShapeInt32, Int32: []int32{10, 20, 30}}
	tagsStore := block.ColumnStore{Shape: block.ShapeNested, Nested: &block.NestedStore{
		Offsets: []uint64{2, 2, 3}, // row0:[10,20] row1:[] row2:[30]
		Inner:   inner,
	}}

	b, err := block.New([]block.ColumnDescriptor{tagsDesc}, []block.ColumnStore{tagsStore}, 3)
	require.NoError(t, err)

	w := writer.New()
	require.NoError(t, WriteBlock(w, b, capability.Full))

	c := cursor.New([][]byte{w.Bytes()})
	got, err := ReadBlock(c, b.Descriptors(), DefaultReadOptions(), capability.Full)
	require.NoError(t, err)

	row0, err := got.Cell(0, 0)
	require.NoError(t, err)
	require.Equal(t, []any{int32(10), int32(20)}, row0)

	row1, err := got.Cell(1, 0)
	require.NoError(t, err)
	require.Equal(t, []any{}, row1)

	row2, err := got.Cell(2, 0)
	require.NoError(t, err)
	require.Equal(t, []any{int32(30)}, row2)
}

func TestWriteReadBlock_NestedArrayColumn_Depth2(t *testing.T) {
	matrixDesc, err := block.NewArrayColumnDescriptor("matrix", chtype.ByKind(chtype.KindInt32), 2)
	require.NoError(t, err)

	// row0: [[1,2],[3]]  row1: []  row2: [[4,5,6]]
	innermost := block.ColumnStore{Shape: block.ShapeInt32, Int32: []int32{1, 2, 3, 4, 5, 6}}
	middle := block.ColumnStore{Shape: block.ShapeNested, Nested: &block.NestedStore{
		Offsets: []uint64{2, 3, 6},
		Inner:   innermost,
	}}
	matrixStore := block.ColumnStore{Shape: block.ShapeNested, Nested: &block.NestedStore{
		Offsets: []uint64{2, 2, 3},
		Inner:   middle,
	}}

	b, err := block.New([]block.ColumnDescriptor{matrixDesc}, []block.ColumnStore{matrixStore}, 3)
	require.NoError(t, err)

	w := writer.New()
	require.NoError(t, WriteBlock(w, b, capability.Full))

	c := cursor.New([][]byte{w.Bytes()})
	got, err := ReadBlock(c, b.Descriptors(), DefaultReadOptions(), capability.Full)
	require.NoError(t, err)

	row0, err := got.Cell(0, 0)
	require.NoError(t, err)
	require.Equal(t, []any{[]any{int32(1), int32(2)}, []any{int32(3)}}, row0)

	row1, err := got.Cell(1, 0)
	require.NoError(t, err)
	require.Equal(t, []any{}, row1)

	row2, err := got.Cell(2, 0)
	require.NoError(t, err)
	require.Equal(t, []any{[]any{int32(4), int32(5), int32(6)}}, row2)
}

func TestWriteReadBlock_NestedArrayColumn_Depth3(t *testing.T) {
	cubeDesc, err := block.NewArrayColumnDescriptor("cube", chtype.ByKind(chtype.KindInt32), 3)
	require.NoError(t, err)

	// row0: [[[1,2]],[[3]]]  row1: [[[4,5,6]]]
	innermost := block.ColumnStore{Shape: block.ShapeInt32, Int32: []int32{1, 2, 3, 4, 5, 6}}
	level2 := block.ColumnStore{Shape: block.ShapeNested, Nested: &block.NestedStore{
		Offsets: []uint64{2, 3, 6},
		Inner:   innermost,
	}}
	level1 := block.ColumnStore{Shape: block.ShapeNested, Nested: &block.NestedStore{
		Offsets: []uint64{1, 2, 3},
		Inner:   level2,
	}}
	cubeStore := block.ColumnStore{Shape: block.ShapeNested, Nested: &block.NestedStore{
		Offsets: []uint64{2, 3},
		Inner:   level1,
	}}

	b, err := block.New([]block.ColumnDescriptor{cubeDesc}, []block.ColumnStore{cubeStore}, 2)
	require.NoError(t, err)

	w := writer.New()
	require.NoError(t, WriteBlock(w, b, capability.Full))

	c := cursor.New([][]byte{w.Bytes()})
	got, err := ReadBlock(c, b.Descriptors(), DefaultReadOptions(), capability.Full)
	require.NoError(t, err)

	row0, err := got.Cell(0, 0)
	require.NoError(t, err)
	require.Equal(t, []any{
		[]any{[]any{int32(1), int32(2)}},
		[]any{[]any{int32(3)}},
	}, row0)

	row1, err := got.Cell(1, 0)
	require.NoError(t, err)
	require.Equal(t, []any{
		[]any{[]any{int32(4), int32(5), int32(6)}},
	}, row1)
}

func TestWriteReadBlock_DateTime64Column(t *testing.T) {
	desc, err := block.NewColumnDescriptor("ts", chtype.NewDateTime64Type(3))
	require.NoError(t, err)

	store := block.ColumnStore{Shape: block.ShapeInt64, Int64: []int64{1700000000123, 1700000001456}}
	b, err := block.New([]block.ColumnDescriptor{desc}, []block.ColumnStore{store}, 2)
	require.NoError(t, err)

	w := writer.New()
	require.NoError(t, WriteBlock(w, b, capability.Full))

	c := cursor.New([][]byte{w.Bytes()})
	got, err := ReadBlock(c, b.Descriptors(), DefaultReadOptions(), capability.Full)
	require.NoError(t, err)

	tsStore, err := got.Column("ts")
	require.NoError(t, err)
	require.Equal(t, []int64{1700000000123, 1700000001456}, tsStore.AsInt64())
}

func TestWriteReadBlock_FixedStringColumn(t *testing.T) {
	fsType, _, err := chtype.ParseElementTypeName("FixedString(4)")
	require.NoError(t, err)
	fsDesc, err := block.NewColumnDescriptor("hash4", fsType)
	require.NoError(t, err)

	store := block.ColumnStore{Shape: block.ShapeFixedString, FixedString: [][]byte{
		{1, 2, 3, 4}, {5, 6, 7, 8},
	}}
	b, err := block.New([]block.ColumnDescriptor{fsDesc}, []block.ColumnStore{store}, 2)
	require.NoError(t, err)

	w := writer.New()
	require.NoError(t, WriteBlock(w, b, capability.Full))

	c := cursor.New([][]byte{w.Bytes()})
	got, err := ReadBlock(c, b.Descriptors(), DefaultReadOptions(), capability.Full)
	require.NoError(t, err)

	gotStore, err := got.Column("hash4")
	require.NoError(t, err)
	require.Equal(t, [][]byte{{1, 2, 3, 4}, {5, 6, 7, 8}}, gotStore.FixedString)
}

func TestReadBlock_ColumnCountMismatch(t *testing.T) {
	b := buildScalarBlock(t)
	w := writer.New()
	require.NoError(t, WriteBlock(w, b, capability.Full))

	c := cursor.New([][]byte{w.Bytes()})
	_, err := ReadBlock(c, b.Descriptors()[:1], DefaultReadOptions(), capability.Full)
	require.ErrorIs(t, err, errs.ErrHeaderMismatch)
}

func TestReadBlock_RowCountMismatch(t *testing.T) {
	b := buildScalarBlock(t)
	w := writer.New()
	require.NoError(t, WriteBlock(w, b, capability.Full))

	opts := ReadOptions{ExpectedRowCount: 99}
	c := cursor.New([][]byte{w.Bytes()})
	_, err := ReadBlock(c, b.Descriptors(), opts, capability.Full)
	require.ErrorIs(t, err, errs.ErrHeaderMismatch)
}

func TestReadBlock_NameMismatch(t *testing.T) {
	b := buildScalarBlock(t)
	w := writer.New()
	require.NoError(t, WriteBlock(w, b, capability.Full))

	mismatched := b.Descriptors()
	mismatched[0].Name = "wrong"

	c := cursor.New([][]byte{w.Bytes()})
	_, err := ReadBlock(c, mismatched, DefaultReadOptions(), capability.Full)
	require.ErrorIs(t, err, errs.ErrNameMismatch)
}

func TestReadBlock_StrictTypeNameMismatch(t *testing.T) {
	b := buildScalarBlock(t)
	w := writer.New()
	require.NoError(t, WriteBlock(w, b, capability.Full))

	mismatched := append([]block.ColumnDescriptor(nil), b.Descriptors()...)
	mismatched[0].ElementType = chtype.ByKind(chtype.KindInt64) // wrong type, same name

	opts := ReadOptions{StrictTypeNames: true, ExpectedRowCount: -1}
	c := cursor.New([][]byte{w.Bytes()})
	_, err := ReadBlock(c, mismatched, opts, capability.Full)
	require.ErrorIs(t, err, errs.ErrTypeNameMismatch)
}

func TestReadBlock_DefaultOptions_SameSchema(t *testing.T) {
	b := buildScalarBlock(t)
	w := writer.New()
	require.NoError(t, WriteBlock(w, b, capability.Full))

	// Reading with the same schema but non-strict options should still
	// succeed even though we don't compare type names.
	c := cursor.New([][]byte{w.Bytes()})
	_, err := ReadBlock(c, b.Descriptors(), DefaultReadOptions(), capability.Full)
	require.NoError(t, err)
}

func TestReadBlock_BadOffsets(t *testing.T) {
	tagsDesc, err := block.NewArrayColumnDescriptor("tags", chtype.ByKind(chtype.KindInt32), 1)
	require.NoError(t, err)

	// Hand-build a malformed wire payload: column_count=1, row_count=2, then
	// the column's name/type strings, then a non-monotonic offsets vector
	// (5 followed by 2).
	w := writer.New()
	varint.Write(w, 1)
	varint.Write(w, 2)
	writeString(w, "tags")
	writeString(w, "Array(Int32)")

	span := w.Reserve(8)
	le.PutUint64(span, 5)
	w.Commit(8)
	span = w.Reserve(8)
	le.PutUint64(span, 2)
	w.Commit(8)

	c := cursor.New([][]byte{w.Bytes()})
	_, err = ReadBlock(c, []block.ColumnDescriptor{tagsDesc}, DefaultReadOptions(), capability.Full)
	require.ErrorIs(t, err, errs.ErrBadOffsets)
}
