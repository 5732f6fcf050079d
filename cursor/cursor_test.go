package cursor

import (
	"testing"

	"github.com/lattice-io/chcore/errs"
	"github.com/stretchr/testify/require"
)

func TestNew_SkipsLeadingEmptySegments(t *testing.T) {
	c := New([][]byte{{}, {}, {1, 2, 3}})

	require.True(t, c.IsAtSegmentBoundary())
	require.Equal(t, int64(3), c.RemainingLength())

	b, err := c.PeekByte()
	require.NoError(t, err)
	require.Equal(t, byte(1), b)
}

func TestPeekByte_DoesNotAdvance(t *testing.T) {
	c := New([][]byte{{9, 8, 7}})

	b1, err := c.PeekByte()
	require.NoError(t, err)
	b2, err := c.PeekByte()
	require.NoError(t, err)

	require.Equal(t, b1, b2)
	require.Equal(t, int64(0), c.Offset())
}

func TestAdvance_UpdatesOffsetAndBoundary(t *testing.T) {
	c := New([][]byte{{1, 2}, {3, 4}})

	c.Advance(2)
	require.Equal(t, int64(2), c.Offset())
	require.True(t, c.IsAtSegmentBoundary())

	b, err := c.PeekByte()
	require.NoError(t, err)
	require.Equal(t, byte(3), b)
}

func TestAdvance_AcrossMultipleSegments(t *testing.T) {
	c := New([][]byte{{1}, {2, 3}, {4, 5, 6}})

	c.Advance(4)
	require.Equal(t, int64(4), c.Offset())

	b, err := c.PeekByte()
	require.NoError(t, err)
	require.Equal(t, byte(5), b)
}

func TestTryReadInto_WithinSingleSegment(t *testing.T) {
	c := New([][]byte{{1, 2, 3, 4}})

	dst := make([]byte, 3)
	require.NoError(t, c.TryReadInto(dst))
	require.Equal(t, []byte{1, 2, 3}, dst)
	require.Equal(t, int64(3), c.Offset())
}

func TestTryReadInto_AcrossSegmentBoundary(t *testing.T) {
	c := New([][]byte{{1, 2}, {3, 4, 5}})

	dst := make([]byte, 4)
	require.NoError(t, c.TryReadInto(dst))
	require.Equal(t, []byte{1, 2, 3, 4}, dst)
}

func TestTryReadInto_InsufficientData(t *testing.T) {
	c := New([][]byte{{1, 2}})

	dst := make([]byte, 5)
	err := c.TryReadInto(dst)
	require.ErrorIs(t, err, errs.ErrInsufficientData)
	// Cursor position must be unchanged on failure.
	require.Equal(t, int64(0), c.Offset())
}

func TestContiguousView_WithinSegment(t *testing.T) {
	c := New([][]byte{{1, 2, 3, 4, 5}})

	view, ok := c.ContiguousView(3)
	require.True(t, ok)
	require.Equal(t, []byte{1, 2, 3}, view)
	require.Equal(t, int64(3), c.Offset())
}

func TestContiguousView_CrossesBoundary(t *testing.T) {
	c := New([][]byte{{1, 2}, {3, 4}})

	_, ok := c.ContiguousView(3)
	require.False(t, ok)
	// Unchanged on failure.
	require.Equal(t, int64(0), c.Offset())

	b, err := c.PeekByte()
	require.NoError(t, err)
	require.Equal(t, byte(1), b)
}

func TestContiguousView_ExhaustedInput(t *testing.T) {
	c := New([][]byte{{1}})
	c.Advance(1)

	_, ok := c.ContiguousView(1)
	require.False(t, ok)
}

func TestRemainingLength(t *testing.T) {
	c := New([][]byte{{1, 2}, {3}, {4, 5, 6}})

	require.Equal(t, int64(6), c.RemainingLength())
	c.Advance(3)
	require.Equal(t, int64(3), c.RemainingLength())
}

func TestPeekByte_AtEndOfInput(t *testing.T) {
	c := New([][]byte{{1}})
	c.Advance(1)

	_, err := c.PeekByte()
	require.ErrorIs(t, err, errs.ErrInsufficientData)
}
