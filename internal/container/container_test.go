package container

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memSrc struct{ data []byte }

func (m *memSrc) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(m.data)) {
		return 0, nil
	}
	n := copy(p, m.data[off:])
	return n, nil
}
func (m *memSrc) Size() int64 { return int64(len(m.data)) }

func TestProbe_TooShort(t *testing.T) {
	assert.Equal(t, KindUnknown, Probe(nil))
	assert.Equal(t, KindUnknown, Probe([]byte{1, 2, 3}))
}

func TestProbe_RIFFWAV(t *testing.T) {
	b := buildRIFFATRAC3(t, 10)
	assert.Equal(t, KindRIFFWAV, Probe(b[:12]))
}

func TestProbe_OMA(t *testing.T) {
	assert.Equal(t, KindOMA, Probe([]byte("ea3\x03\x00\x00\x00\x00\x00\x00\x00\x00")))
}

func TestOpen_RIFFATRAC3_ParsesFmtAndData(t *testing.T) {
	b := buildRIFFATRAC3(t, 3)
	r, err := Open(&memSrc{data: b})
	require.NoError(t, err)
	assert.Equal(t, CodecATRAC3, r.Info.Codec)
	assert.Equal(t, 2, r.Info.Channels)
	assert.Equal(t, 44100, r.Info.SampleRate)
	assert.Equal(t, 384, r.Info.BlockAlign)
	assert.Equal(t, int64(3), r.TotalFrames())
}

func TestReadFrame_StepsThroughFramesThenEOF(t *testing.T) {
	b := buildRIFFATRAC3(t, 2)
	r, err := Open(&memSrc{data: b})
	require.NoError(t, err)

	buf := make([]byte, r.Info.BlockAlign)
	n, err := r.ReadFrame(buf)
	require.NoError(t, err)
	assert.Equal(t, r.Info.BlockAlign, n)

	n, err = r.ReadFrame(buf)
	require.NoError(t, err)
	assert.Equal(t, r.Info.BlockAlign, n)

	n, err = r.ReadFrame(buf)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestSeekFrame_ClearsEOF(t *testing.T) {
	b := buildRIFFATRAC3(t, 2)
	r, err := Open(&memSrc{data: b})
	require.NoError(t, err)

	buf := make([]byte, r.Info.BlockAlign)
	r.ReadFrame(buf)
	r.ReadFrame(buf)
	r.ReadFrame(buf) // now at EOF

	require.NoError(t, r.SeekFrame(0))
	n, err := r.ReadFrame(buf)
	require.NoError(t, err)
	assert.Equal(t, r.Info.BlockAlign, n)
}

func TestOpen_RejectsUnrecognisedMagic(t *testing.T) {
	_, err := Open(&memSrc{data: []byte("not a container at all, padded out")})
	assert.Error(t, err)
}

// buildRIFFATRAC3 synthesises a minimal RIFF/WAVE ATRAC3 container with n
// zero-filled frames of BlockAlign bytes each.
func buildRIFFATRAC3(t *testing.T, nFrames int) []byte {
	t.Helper()
	const blockAlign = 384
	fmtBody := make([]byte, 32) // base 18 bytes + 14-byte ATRAC3 extension
	putLE16(fmtBody[0:2], waveTagATRAC3)
	putLE16(fmtBody[2:4], 2)      // channels
	putLE32(fmtBody[4:8], 44100)  // sample rate
	putLE32(fmtBody[8:12], 16537) // avg bytes/sec
	putLE16(fmtBody[12:14], blockAlign)
	putLE16(fmtBody[14:16], 0)  // bits per sample (unused by ATRAC3)
	putLE16(fmtBody[16:18], 14) // cbSize
	putLE16(fmtBody[22:24], 1)  // joint_stereo flag, within the extension

	dataBody := make([]byte, blockAlign*nFrames)

	var buf []byte
	buf = append(buf, []byte("RIFF")...)
	buf = append(buf, make([]byte, 4)...) // RIFF size, unused by the parser
	buf = append(buf, []byte("WAVE")...)

	buf = append(buf, []byte("fmt ")...)
	sz := make([]byte, 4)
	putLE32(sz, uint32(len(fmtBody)))
	buf = append(buf, sz...)
	buf = append(buf, fmtBody...)

	buf = append(buf, []byte("data")...)
	sz2 := make([]byte, 4)
	putLE32(sz2, uint32(len(dataBody)))
	buf = append(buf, sz2...)
	buf = append(buf, dataBody...)

	return buf
}

func putLE16(b []byte, v uint16) { b[0] = byte(v); b[1] = byte(v >> 8) }
func putLE32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}
