package fft

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCFFT_DCComponent(t *testing.T) {
	c := NewCFFT(8)
	data := make([]Complex, 8)
	for i := range data {
		data[i] = Complex{Re: 1, Im: 0}
	}
	c.Transform(data, false)

	assert.InDelta(t, 8, data[0].Re, 1e-4)
	assert.InDelta(t, 0, data[0].Im, 1e-4)
	for k := 1; k < 8; k++ {
		assert.InDelta(t, 0, data[k].Re, 1e-3, "bin %d real", k)
		assert.InDelta(t, 0, data[k].Im, 1e-3, "bin %d imag", k)
	}
}

func TestCFFT_ForwardInverseRoundTrip(t *testing.T) {
	c := NewCFFT(16)
	original := make([]Complex, 16)
	for i := range original {
		original[i] = Complex{
			Re: float32(math.Sin(float64(i) * 0.7)),
			Im: float32(math.Cos(float64(i) * 0.3)),
		}
	}
	data := make([]Complex, 16)
	copy(data, original)

	c.Transform(data, false)
	c.Transform(data, true)

	for i := range data {
		assert.InDelta(t, float64(original[i].Re), float64(data[i].Re), 1e-3, "re[%d]", i)
		assert.InDelta(t, float64(original[i].Im), float64(data[i].Im), 1e-3, "im[%d]", i)
	}
}

func TestNewCFFT_PanicsOnNonPowerOfTwo(t *testing.T) {
	require.Panics(t, func() { NewCFFT(6) })
}

func TestComplexMult(t *testing.T) {
	y1, y2 := ComplexMult(1, 0, 0, 1)
	assert.InDelta(t, 0, y1, 1e-6)
	assert.InDelta(t, -1, y2, 1e-6)
}
