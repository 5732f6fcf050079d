package chtype

import (
	"testing"

	"github.com/lattice-io/chcore/capability"
	"github.com/lattice-io/chcore/cursor"
	"github.com/lattice-io/chcore/writer"
	"github.com/stretchr/testify/require"
)

func TestIntCodecs_ScalarRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		typ  Type
		val  any
	}{
		{"Int8", int8Type{}, int8(-42)},
		{"UInt8", uint8Type{}, uint8(200)},
		{"Int16", int16Type{}, int16(-12345)},
		{"UInt16", uint16Type{}, uint16(60000)},
		{"Int32", int32Type{}, int32(-1234567)},
		{"UInt32", uint32Type{}, uint32(3000000000)},
		{"Int64", int64Type{}, int64(-123456789012)},
		{"UInt64", uint64Type{}, uint64(18000000000000000000)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := writer.New()
			require.NoError(t, tc.typ.WriteOne(w, tc.val))

			c := cursor.New([][]byte{w.Bytes()})
			got, n, err := tc.typ.ReadOne(c)
			require.NoError(t, err)
			require.Equal(t, tc.typ.Width(), n)
			require.Equal(t, tc.val, got)
		})
	}
}

// tierBoundarySizes exercises element counts that straddle every lane-width
// boundary named in §4.2's table (16/32/64 for 1-byte elements, etc.), so
// bulk codec output is checked at both "exact multiple" and "remainder"
// element counts.
var tierBoundarySizes = []int{0, 1, 2, 3, 4, 7, 8, 15, 16, 17, 31, 32, 33, 63, 64, 65, 100}

func TestIntCodecs_BulkRoundTrip_AcrossTiers(t *testing.T) {
	tiers := []capability.Descriptor{
		capability.Scalar,
		capability.UpTo(capability.TierSSE2),
		capability.UpTo(capability.TierAVX2),
		capability.UpTo(capability.TierAVX512BW),
		capability.Full,
	}

	for _, n := range tierBoundarySizes {
		vals := make([]int32, n)
		for i := range vals {
			vals[i] = int32(i*7 - 3)
		}

		var refBytes []byte
		for _, caps := range tiers {
			w := writer.New()
			require.NoError(t, int32Type{}.WriteMany(w, vals, caps))

			if refBytes == nil {
				refBytes = append([]byte(nil), w.Bytes()...)
			} else {
				require.Equal(t, refBytes, w.Bytes(), "tier output must be byte-identical, n=%d", n)
			}

			c := cursor.New([][]byte{w.Bytes()})
			got, consumed, err := int32Type{}.ReadMany(c, n, caps)
			require.NoError(t, err)
			require.Equal(t, len(w.Bytes()), consumed)
			require.Equal(t, vals, got)
		}
	}
}

func TestUInt64Codec_BulkRoundTrip(t *testing.T) {
	vals := []uint64{0, 1, ^uint64(0), 1 << 40, 123456789}

	w := writer.New()
	require.NoError(t, uint64Type{}.WriteMany(w, vals, capability.Full))

	c := cursor.New([][]byte{w.Bytes()})
	got, _, err := uint64Type{}.ReadMany(c, len(vals), capability.Full)
	require.NoError(t, err)
	require.Equal(t, vals, got)
}

func TestIntCodec_WriteMany_WrongType(t *testing.T) {
	w := writer.New()
	err := int32Type{}.WriteMany(w, []int64{1, 2}, capability.Full)
	require.Error(t, err)
}

func TestIntCodec_ReadMany_InsufficientData(t *testing.T) {
	c := cursor.New([][]byte{{1, 2}}) // only 2 bytes, need 4 for one int32
	_, _, err := int32Type{}.ReadMany(c, 1, capability.Full)
	require.Error(t, err)
}

func TestTypeNameKindWidth(t *testing.T) {
	require.Equal(t, "Int32", int32Type{}.TypeName())
	require.Equal(t, KindInt32, int32Type{}.Kind())
	require.Equal(t, 4, int32Type{}.Width())
	require.Equal(t, RepFixedWidth, int32Type{}.Representation())
}
