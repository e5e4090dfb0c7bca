package a3plus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSamplesPerFrame(t *testing.T) {
	assert.Equal(t, 2048, SamplesPerFrame)
}

func TestQuToSubband_FirstSixteenAreIdentity(t *testing.T) {
	for i := 0; i < 16; i++ {
		assert.Equal(t, i, quToSubband[i], "index %d", i)
	}
}

func TestQuToSubband_NeverExceedsMaxSubband(t *testing.T) {
	for i, sb := range quToSubband {
		assert.LessOrEqual(t, sb, maxSubbands-1, "index %d", i)
	}
}

func TestQuNumToSeg_IsNonDecreasing(t *testing.T) {
	for i := 1; i < len(quNumToSeg); i++ {
		assert.GreaterOrEqual(t, quNumToSeg[i], quNumToSeg[i-1], "index %d", i)
	}
}

func TestClampInt(t *testing.T) {
	assert.Equal(t, 0, clampInt(-5, 0, 7))
	assert.Equal(t, 7, clampInt(99, 0, 7))
	assert.Equal(t, 3, clampInt(3, 0, 7))
}

func TestWlWeights_WithinClampBounds(t *testing.T) {
	for w := range wlWeights {
		for i := range wlWeights[w] {
			assert.GreaterOrEqual(t, wlWeights[w][i], -3)
			assert.LessOrEqual(t, wlWeights[w][i], 3)
		}
	}
}

func TestPwcLevs_LastEntryDisablesDither(t *testing.T) {
	assert.Equal(t, float32(0), pwcLevs[15])
}

func TestMantTab_ZeroWordlenIsSilent(t *testing.T) {
	assert.Equal(t, float32(0), mantTab[0])
}
