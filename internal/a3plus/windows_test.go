package a3plus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSineWindow_SecondHalfMirrorsFirst(t *testing.T) {
	for i := 0; i < subbandSamples; i++ {
		assert.InDelta(t, sineFirst[i], sineSecond[subbandSamples-1-i], 1e-6, "index %d", i)
	}
}

func TestSteepWindow_StartsAtZeroEndsAtOne(t *testing.T) {
	assert.Equal(t, float32(0), steepFirst[0])
	assert.Equal(t, float32(1), steepFirst[subbandSamples-1])
}

func TestWindowFirstHalf_SelectsByShape(t *testing.T) {
	assert.Same(t, &sineFirst, windowFirstHalf(0))
	assert.Same(t, &steepFirst, windowFirstHalf(1))
}

func TestWindowSecondHalf_SelectsByShape(t *testing.T) {
	assert.Same(t, &sineSecond, windowSecondHalf(0))
	assert.Same(t, &steepSecond, windowSecondHalf(1))
}

func TestHannWindow256_EndpointsAreZero(t *testing.T) {
	assert.InDelta(t, 0, hannWindow256[0], 1e-6)
	assert.InDelta(t, 0, hannWindow256[255], 1e-6)
}

func TestHannWindow256_MidpointIsUnity(t *testing.T) {
	assert.InDelta(t, 1, hannWindow256[127], 0.01)
}
