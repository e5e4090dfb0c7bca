package a3plus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDecoder_SetsChannels(t *testing.T) {
	d := NewDecoder(2)
	require.NotNil(t, d)
	assert.Equal(t, 2, d.Channels)
}

func TestDecoder_Reset_ReturnsFreshState(t *testing.T) {
	d := NewDecoder(1)
	d.units[0].CurIdx = 1 // simulate carried decode state

	fresh := d.Reset()
	assert.Equal(t, d.Channels, fresh.Channels)
	assert.Equal(t, 0, fresh.units[0].CurIdx)
}

func TestDecodeFrame_RejectsReservedBitSet(t *testing.T) {
	d := NewDecoder(1)
	frame := make([]byte, 8)
	frame[0] = 0x80 // reserved leading bit set
	err := d.DecodeFrame(frame, make([]float32, SamplesPerFrame))
	assert.ErrorIs(t, err, ErrInvalidData)
}

func TestDecodeFrame_MonoStreamRejectsStereoUnitType(t *testing.T) {
	d := NewDecoder(1)
	frame := make([]byte, 8)
	// reserved bit 0, then unit_type=01 (stereo) at bit offset 1.
	frame[0] = 0b0_01_00000
	err := d.DecodeFrame(frame, make([]float32, SamplesPerFrame))
	assert.ErrorIs(t, err, ErrInvalidData)
}

func TestDecodeFrame_TerminatorOnlyMonoFrameProducesSilence(t *testing.T) {
	d := NewDecoder(1)
	frame := make([]byte, 8)
	// reserved bit 0, then unit_type=11 (terminator) at bit offset 1.
	frame[0] = 0b0_11_00000
	out := make([]float32, SamplesPerFrame)
	err := d.DecodeFrame(frame, out)
	require.NoError(t, err)
	for _, s := range out {
		assert.Equal(t, float32(0), s)
	}
}
