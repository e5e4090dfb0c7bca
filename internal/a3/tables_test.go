package a3

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubbandTab_IsMonotonicAndSpansSpectrum(t *testing.T) {
	assert.Equal(t, 0, subbandTab[0])
	assert.Equal(t, 1024, subbandTab[len(subbandTab)-1])
	for i := 1; i < len(subbandTab); i++ {
		assert.Greater(t, subbandTab[i], subbandTab[i-1], "index %d", i)
	}
}

func TestInvMaxQuant_FirstEntryIsZero(t *testing.T) {
	assert.Equal(t, float32(0), invMaxQuant[0])
}

func TestMantissaClcTab_HasFourSymbols(t *testing.T) {
	assert.Len(t, mantissaClcTab, 4)
	assert.Equal(t, int32(0), mantissaClcTab[0])
}

func TestSamplesPerFrame(t *testing.T) {
	assert.Equal(t, 1024, SamplesPerFrame)
}
