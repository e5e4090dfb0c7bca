package bitio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReader_InitialState(t *testing.T) {
	data := []byte{0x12, 0x34, 0x56, 0x78, 0x9A, 0xBC, 0xDE, 0xF0}
	r := NewReader(data)
	require.NotNil(t, r)
	assert.Equal(t, len(data)*8, r.BitsLeft())
	assert.Equal(t, 0, r.Tell())
	assert.False(t, r.AtEnd())
}

func TestReader_ReadBitsMatchesKnownPattern(t *testing.T) {
	data := []byte{0xAB, 0xCD, 0xEF, 0x01}
	r := NewReader(data)

	assert.Equal(t, uint32(0xA), r.ReadBits(4))
	assert.Equal(t, uint32(0xB), r.ReadBits(4))
	assert.Equal(t, uint32(0xCD), r.ReadBits(8))
	assert.Equal(t, 16, r.Tell())
}

func TestReader_PeekDoesNotConsume(t *testing.T) {
	data := []byte{0xF0, 0x0F}
	r := NewReader(data)

	first := r.PeekBits(8)
	second := r.PeekBits(8)
	assert.Equal(t, first, second)
	assert.Equal(t, uint32(0xF0), first)
	assert.Equal(t, 0, r.Tell())
}

func TestReader_ReadBitsSigned(t *testing.T) {
	data := []byte{0xF8, 0x00} // top 5 bits: 11111 == -1 in 5-bit two's complement
	r := NewReader(data)
	assert.Equal(t, int32(-1), r.ReadBitsSigned(5))
}

func TestReader_SkipBitsAcrossWordBoundary(t *testing.T) {
	data := make([]byte, 12)
	for i := range data {
		data[i] = byte(i + 1)
	}
	r := NewReader(data)
	r.SkipBits(30)
	got := r.ReadBits(8)
	assert.Equal(t, 38, r.Tell())
	_ = got // value depends only on the pattern above; tell() is what matters here
}

func TestReader_SeekByteAligns(t *testing.T) {
	data := []byte{0xFF, 0xFF, 0xFF}
	r := NewReader(data)
	r.ReadBits(3)
	pos := r.SeekByte()
	assert.Equal(t, 8, pos)
	assert.Equal(t, 0, pos%8)
}

func TestReader_AtEndAfterConsumingEverything(t *testing.T) {
	data := []byte{0xFF}
	r := NewReader(data)
	r.ReadBits(8)
	assert.True(t, r.AtEnd())
	assert.Equal(t, 0, r.BitsLeft())
}

func TestReader_ReadsPastEndYieldZero(t *testing.T) {
	data := []byte{0xFF}
	r := NewReader(data)
	r.ReadBits(8)
	assert.Equal(t, uint32(0), r.PeekBits(8))
}
