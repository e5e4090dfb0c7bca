package dsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQMFWindow_IsSymmetric(t *testing.T) {
	for i := 0; i < QMFTaps/2; i++ {
		assert.InDelta(t, QMFWindow[i], QMFWindow[QMFTaps-1-i], 1e-6, "tap %d", i)
	}
}

func TestQMFWindow_NonZero(t *testing.T) {
	var sum float32
	for _, v := range QMFWindow {
		sum += v
	}
	assert.Greater(t, sum, float32(0))
}

func TestQMFDelay_IQMF_PanicsOnSizeMismatch(t *testing.T) {
	var d QMFDelay
	require.Panics(t, func() {
		d.IQMF(make([]float32, 2), make([]float32, 3), 2, make([]float32, 4))
	})
}

func TestQMFDelay_Reset(t *testing.T) {
	var d QMFDelay
	d.buf[0] = 1
	d.Reset()
	assert.Equal(t, float32(0), d.buf[0])
}

func TestQMFDelay_IQMF_ZeroInputGivesZeroOutput(t *testing.T) {
	var d QMFDelay
	lo := make([]float32, 4)
	hi := make([]float32, 4)
	out := make([]float32, 8)
	d.IQMF(lo, hi, 4, out)
	for i, v := range out {
		assert.Equal(t, float32(0), v, "out[%d]", i)
	}
}
