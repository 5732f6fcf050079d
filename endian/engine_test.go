package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetLittleEndianEngine_ImplementsInterface(t *testing.T) {
	engine := GetLittleEndianEngine()

	require.Implements(t, (*EndianEngine)(nil), engine)
	require.Equal(t, binary.LittleEndian, engine)
}

func TestGetLittleEndianEngine_PutUint16_LSBFirst(t *testing.T) {
	engine := GetLittleEndianEngine()

	buf := make([]byte, 2)
	engine.PutUint16(buf, 0x0102)

	require.Equal(t, byte(0x02), buf[0])
	require.Equal(t, byte(0x01), buf[1])
	require.Equal(t, uint16(0x0102), engine.Uint16(buf))
}

func TestGetLittleEndianEngine_Uint32RoundTrip(t *testing.T) {
	engine := GetLittleEndianEngine()

	var v uint32 = 0xAABBCCDD
	buf := make([]byte, 4)
	engine.PutUint32(buf, v)

	require.Equal(t, v, engine.Uint32(buf))
}

func TestGetLittleEndianEngine_Uint64RoundTrip(t *testing.T) {
	engine := GetLittleEndianEngine()

	var v uint64 = 0x0102030405060708
	buf := make([]byte, 8)
	engine.PutUint64(buf, v)

	require.Equal(t, v, engine.Uint64(buf))
}
