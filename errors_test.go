package atrac3

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_KnownCodesHaveMessages(t *testing.T) {
	assert.Equal(t, "invalid arguments", ErrInvalidArgs.Error())
	assert.Equal(t, "at end of stream", ErrAtEnd.Error())
	assert.Equal(t, "seek failed", ErrBadSeek.Error())
}

func TestError_UnknownCodeFallsBack(t *testing.T) {
	var e Error = -999
	assert.Equal(t, "unknown error", e.Error())
}

func TestError_ImplementsErrorInterface(t *testing.T) {
	var err error = ErrInvalidFile
	assert.EqualError(t, err, "invalid or unsupported file")
}
