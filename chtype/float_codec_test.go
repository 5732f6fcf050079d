package chtype

import (
	"math"
	"testing"

	"github.com/lattice-io/chcore/capability"
	"github.com/lattice-io/chcore/cursor"
	"github.com/lattice-io/chcore/writer"
	"github.com/stretchr/testify/require"
)

func TestFloat64Codec_ScalarRoundTrip(t *testing.T) {
	vals := []float64{0, -0, 1.5, -1.5, math.MaxFloat64, math.SmallestNonzeroFloat64}

	for _, v := range vals {
		w := writer.New()
		require.NoError(t, float64Type{}.WriteOne(w, v))

		c := cursor.New([][]byte{w.Bytes()})
		got, n, err := float64Type{}.ReadOne(c)
		require.NoError(t, err)
		require.Equal(t, 8, n)
		require.Equal(t, v, got)
	}
}

func TestFloat64Codec_NaNBitPatternPreserved(t *testing.T) {
	// A specific NaN payload, not just any NaN: decode(encode(v)) must
	// preserve the exact bit pattern, not merely "is NaN".
	bits := uint64(0x7FF8000000000001)
	nan := math.Float64frombits(bits)

	w := writer.New()
	require.NoError(t, float64Type{}.WriteOne(w, nan))

	c := cursor.New([][]byte{w.Bytes()})
	got, _, err := float64Type{}.ReadOne(c)
	require.NoError(t, err)

	require.Equal(t, bits, math.Float64bits(got.(float64)))
}

func TestFloat32Codec_NaNBitPatternPreserved(t *testing.T) {
	bits := uint32(0x7FC00001)
	nan := math.Float32frombits(bits)

	w := writer.New()
	require.NoError(t, float32Type{}.WriteOne(w, nan))

	c := cursor.New([][]byte{w.Bytes()})
	got, _, err := float32Type{}.ReadOne(c)
	require.NoError(t, err)

	require.Equal(t, bits, math.Float32bits(got.(float32)))
}

func TestFloat64Codec_BulkRoundTrip_WithNaN(t *testing.T) {
	vals := []float64{
		1.0, -1.0, 0,
		math.Float64frombits(0x7FF8000000000002),
		math.Inf(1), math.Inf(-1),
	}

	w := writer.New()
	require.NoError(t, float64Type{}.WriteMany(w, vals, capability.Full))

	c := cursor.New([][]byte{w.Bytes()})
	got, _, err := float64Type{}.ReadMany(c, len(vals), capability.Full)
	require.NoError(t, err)

	gotVals := got.([]float64)
	require.Len(t, gotVals, len(vals))
	for i := range vals {
		require.Equal(t, math.Float64bits(vals[i]), math.Float64bits(gotVals[i]))
	}
}
