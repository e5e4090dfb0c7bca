package dsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScaleFactors_Count(t *testing.T) {
	assert.Equal(t, ScaleFactorCount, len(ScaleFactors))
}

func TestScaleFactors_MidpointIsUnity(t *testing.T) {
	// sf[15] = 2^((15-15)/3) = 1.
	assert.InDelta(t, 1.0, ScaleFactors[15], 1e-6)
}

func TestScaleFactors_Monotonic(t *testing.T) {
	for i := 1; i < ScaleFactorCount; i++ {
		assert.Greater(t, ScaleFactors[i], ScaleFactors[i-1], "index %d", i)
	}
}
