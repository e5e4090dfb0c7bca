package atrac3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeMemory_ReturnsSamplesSizedToLength(t *testing.T) {
	b := buildRIFFATRAC3(t, 3)
	res, err := DecodeMemory(b)
	require.NoError(t, err)
	assert.Equal(t, CodecATRAC3, res.Info.Codec)
	assert.LessOrEqual(t, len(res.Samples), 3*1024*2)
}

func TestDecodeMemory_PropagatesContainerError(t *testing.T) {
	_, err := DecodeMemory([]byte("not a container"))
	assert.Error(t, err)
}

func TestDecodeFile_RejectsMissingPath(t *testing.T) {
	_, err := DecodeFile("/nonexistent/path/to/file.wav")
	assert.Equal(t, ErrInvalidFile, err)
}
