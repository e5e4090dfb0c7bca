package bitio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewCanonicalVLC_SimplePrefixCode builds the textbook 1-bit/2-bit/2-bit
// canonical code (0 -> sym0, 10 -> sym1, 11 -> sym2) and decodes a bitstream
// encoding all three symbols in sequence.
func TestNewCanonicalVLC_SimplePrefixCode(t *testing.T) {
	descriptor := []int{1, 2, 1, 2} // minLen=1, maxLen=2, counts=[1,2]
	vlc, err := NewCanonicalVLC(2, descriptor, nil)
	require.NoError(t, err)
	require.NotNil(t, vlc)

	// bits: 0 10 11 -> byte 0b01011000 = 0x58
	r := NewReader([]byte{0x58})
	assert.Equal(t, int32(0), vlc.Read(r))
	assert.Equal(t, int32(1), vlc.Read(r))
	assert.Equal(t, int32(2), vlc.Read(r))
}

func TestNewCanonicalVLC_CustomSymbolOrder(t *testing.T) {
	descriptor := []int{1, 2, 1, 2}
	order := []int32{7, 8, 9}
	vlc, err := NewCanonicalVLC(2, descriptor, order)
	require.NoError(t, err)

	r := NewReader([]byte{0x58})
	assert.Equal(t, int32(7), vlc.Read(r))
	assert.Equal(t, int32(8), vlc.Read(r))
	assert.Equal(t, int32(9), vlc.Read(r))
}

func TestNewCanonicalVLC_RejectsShortDescriptor(t *testing.T) {
	_, err := NewCanonicalVLC(2, []int{1}, nil)
	assert.Error(t, err)
}

func TestNewVLC_RejectsOversizedCode(t *testing.T) {
	_, err := NewVLC(2, []int{2}, []uint32{4}, nil)
	assert.Error(t, err)
}

func TestNewVLC_CascadesBeyondPrimaryTable(t *testing.T) {
	// One short code and one long code force a subtable: primary table is
	// only 2 bits wide, but one symbol needs 4 bits.
	lengths := []int{1, 4}
	codes := []uint32{0, 0xF}
	vlc, err := NewVLC(2, lengths, codes, nil)
	require.NoError(t, err)

	r := NewReader([]byte{0b0111_1000})
	assert.Equal(t, int32(0), vlc.Read(r)) // leading 0 -> symbol 0 (index 0)

	r2 := NewReader([]byte{0b1111_0000})
	assert.Equal(t, int32(1), vlc.Read(r2)) // 1111 -> symbol 1 (index 1)
}
