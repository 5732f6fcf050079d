package collision

import (
	"testing"

	"github.com/lattice-io/chcore/errs"
	"github.com/stretchr/testify/require"
)

func TestNewTracker(t *testing.T) {
	tracker := NewTracker()

	require.NotNil(t, tracker)
	require.Equal(t, 0, tracker.Count())
	require.False(t, tracker.HasCollision())
	require.Empty(t, tracker.Names())
}

func TestTracker_Track_Success(t *testing.T) {
	tracker := NewTracker()

	err := tracker.Track("Int32", 0x1234567890abcdef)
	require.NoError(t, err)
	require.Equal(t, 1, tracker.Count())
	require.False(t, tracker.HasCollision())
	require.Equal(t, []string{"Int32"}, tracker.Names())

	err = tracker.Track("Float64", 0xfedcba0987654321)
	require.NoError(t, err)
	require.Equal(t, 2, tracker.Count())
	require.False(t, tracker.HasCollision())
	require.Equal(t, []string{"Int32", "Float64"}, tracker.Names())
}

func TestTracker_Track_EmptyName(t *testing.T) {
	tracker := NewTracker()

	err := tracker.Track("", 0x1234567890abcdef)
	require.ErrorIs(t, err, errs.ErrEmptyTypeName)
	require.Equal(t, 0, tracker.Count())
}

func TestTracker_Track_DuplicateName(t *testing.T) {
	tracker := NewTracker()

	require.NoError(t, tracker.Track("Int32", 42))
	err := tracker.Track("Int32", 42)
	require.ErrorIs(t, err, errs.ErrTypeAlreadyRegistered)
	require.Equal(t, 1, tracker.Count())
}

func TestTracker_Track_HashCollision(t *testing.T) {
	tracker := NewTracker()

	require.NoError(t, tracker.Track("Int32", 42))
	err := tracker.Track("Float64", 42)
	require.NoError(t, err)
	require.True(t, tracker.HasCollision())
	require.Equal(t, []string{"Int32", "Float64"}, tracker.Names())
}

func TestTracker_Reset(t *testing.T) {
	tracker := NewTracker()

	require.NoError(t, tracker.Track("Int32", 42))
	require.NoError(t, tracker.Track("Float64", 7))
	tracker.Reset()

	require.Equal(t, 0, tracker.Count())
	require.False(t, tracker.HasCollision())
	require.Empty(t, tracker.Names())

	require.NoError(t, tracker.Track("UUID", 9))
	require.Equal(t, 1, tracker.Count())
}
