package dsp

import "math"

// MaxGainPoints is the maximum number of control points in one gain block.
const MaxGainPoints = 8

// GainBlock describes one subband's piecewise-linear (in the exponent
// domain) time-varying gain used to compensate pre-echo after IMDCT.
type GainBlock struct {
	NumPoints int
	LevCode   [MaxGainPoints]int
	LocCode   [MaxGainPoints]int
}

// GainContext carries the two constants that distinguish ATRAC3's gain
// compensation from ATRAC3+'s: ATRAC3 uses (id2expOffset=4, locScale=3),
// ATRAC3+ uses (6, 2). LocSize = 1<<LocScale.
type GainContext struct {
	ID2ExpOffset int
	LocScale     int
}

func (c GainContext) locSize() int { return 1 << c.LocScale }

func pow2(e float64) float32 { return float32(math.Exp2(e)) }

// ApplyGain applies gain compensation and overlap-add for one subband.
//
// in holds 2*numSamples fresh time-domain samples (the just-decoded
// block); prev holds numSamples samples carried from the previous call
// and is overwritten in place with in's second half for the next call.
// out receives numSamples samples.
//
// Ported from: gain_compensate_and_overlap() / atrac_gain_compensation()
// in the ATRAC3/ATRAC3+ reference decoder family (FFmpeg's
// libavcodec/atrac.c), per spec §4.3.
func (c GainContext) ApplyGain(in, prev []float32, gcNow, gcNext *GainBlock, numSamples int, out []float32) {
	if len(in) != 2*numSamples || len(prev) != numSamples || len(out) != numSamples {
		panic("dsp: gain compensation buffer size mismatch")
	}

	gcScale := float32(1)
	if gcNext != nil && gcNext.NumPoints != 0 {
		gcScale = pow2(float64(c.ID2ExpOffset - gcNext.LevCode[0]))
	}

	if gcNow == nil || gcNow.NumPoints == 0 {
		for p := 0; p < numSamples; p++ {
			out[p] = in[p]*gcScale + prev[p]
		}
	} else {
		locSize := c.locSize()
		pos := 0
		for i := 0; i < gcNow.NumPoints; i++ {
			lastpos := gcNow.LocCode[i] << uint(c.LocScale)
			lev := pow2(float64(c.ID2ExpOffset - gcNow.LevCode[i]))

			nextCode := c.ID2ExpOffset
			if i+1 < gcNow.NumPoints {
				nextCode = gcNow.LevCode[i+1]
			}
			gainInc := pow2(-float64(nextCode-gcNow.LevCode[i]) / float64(locSize))

			for ; pos < lastpos && pos < numSamples; pos++ {
				out[pos] = (in[pos]*gcScale + prev[pos]) * lev
			}
			end := lastpos + locSize
			for ; pos < end && pos < numSamples; pos++ {
				out[pos] = (in[pos]*gcScale + prev[pos]) * lev
				lev *= gainInc
			}
		}
		for ; pos < numSamples; pos++ {
			out[pos] = in[pos]*gcScale + prev[pos]
		}
	}

	copy(prev, in[numSamples:])
}
