package container

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOMA_ATRAC3(t *testing.T) {
	b := buildOMA(t, 0 /* codec id: ATRAC3 */, 3, 256)
	r, err := Open(&memSrc{data: b})
	require.NoError(t, err)
	assert.Equal(t, CodecATRAC3, r.Info.Codec)
	assert.Equal(t, 2, r.Info.Channels)
	assert.Equal(t, 44100, r.Info.SampleRate)
}

func TestParseOMA_ATRAC3Plus(t *testing.T) {
	b := buildOMA(t, 1 /* codec id: ATRAC3+ */, 2, 512)
	r, err := Open(&memSrc{data: b})
	require.NoError(t, err)
	assert.Equal(t, CodecATRAC3Plus, r.Info.Codec)
	assert.Equal(t, 2048, r.Info.SamplesPerFrame)
}

func TestParseOMA_RejectsBadTag(t *testing.T) {
	_, err := parseOMA(&memSrc{data: []byte("xyz\x00\x00\x00\x00\x00\x00\x60")})
	assert.Error(t, err)
}

func TestParseOMA_RejectsReservedSampleRate(t *testing.T) {
	b := buildOMA(t, 0, 1, 256)
	sync := findEA3Sync(b)

	// Overwrite the codec-params bytes with a reserved sample-rate
	// selector (index 5, which omaSampleRates maps to 0).
	params := (uint32(5) << 13) | uint32(256/8)
	b[sync+33] = byte(params >> 16)
	b[sync+34] = byte(params >> 8)
	b[sync+35] = byte(params)

	_, err := parseOMA(&memSrc{data: b})
	assert.Error(t, err)
}

// buildOMA synthesises a minimal ea3-tagged OMA container with one frame of
// payload bytes following a 96-byte EA3 sync header.
func buildOMA(t *testing.T, codecID byte, numFrameUnits int, payloadLen int) []byte {
	t.Helper()
	tag := []byte("ea3\x03\x00\x00\x00\x00\x00\x00")
	sync := make([]byte, 96)
	copy(sync[0:7], "EA3\x00\x00\x60")
	sync[32] = codecID

	// params: bits describe sample-rate selector (bits 13-15) and
	// block-size-in-8-byte-units (bits 0-9) per spec §4.6.
	rateSel := uint32(1) // 44100 Hz (441 * 100)
	blockUnits := uint32(payloadLen / 8)
	params := (rateSel << 13) | blockUnits
	sync[33] = byte(params >> 16)
	sync[34] = byte(params >> 8)
	sync[35] = byte(params)

	var buf []byte
	buf = append(buf, tag...)
	buf = append(buf, sync...)
	buf = append(buf, make([]byte, payloadLen*numFrameUnits)...)
	return buf
}

func findEA3Sync(b []byte) int { return 10 }
