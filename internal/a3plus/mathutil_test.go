package a3plus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPow2f(t *testing.T) {
	assert.InDelta(t, 1, pow2f(0), 1e-6)
	assert.InDelta(t, 2, pow2f(1), 1e-6)
	assert.InDelta(t, 0.5, pow2f(-1), 1e-6)
}

func TestSin2piCos2pi_QuarterPeriod(t *testing.T) {
	assert.InDelta(t, 1, sin2pi(0.25), 1e-9)
	assert.InDelta(t, 0, cos2pi(0.25), 1e-9)
}

func TestSinCos_ZeroArg(t *testing.T) {
	assert.Equal(t, float64(0), sin(0))
	assert.Equal(t, float64(1), cos(0))
}

func TestPi_MatchesKnownDigits(t *testing.T) {
	assert.InDelta(t, 3.14159265, pi(), 1e-8)
}
