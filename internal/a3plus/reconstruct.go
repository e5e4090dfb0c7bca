package a3plus

import (
	"github.com/llehouerou/go-atrac3/internal/dsp"
	"github.com/llehouerou/go-atrac3/internal/fft"
)

var imdct256 = fft.NewMDCT(8, true, -1)
var idct32 = fft.NewMDCT(5, true, 32.0/32768)

var gainCtx = dsp.GainContext{ID2ExpOffset: 6, LocScale: 2}

// reconstructUnit runs spec §4.5's "Reconstruction" pipeline for one
// decoded channel unit: dequantise, power-compensate, IMDCT + window,
// gain-compensate/overlap-add, re-synthesise tones, and hand back
// NumSubbands*128 time-domain samples ready for IPQF synthesis.
//
// Ported from: reconstruct_channel() in the ATRAC3+ reference decoder
// family (FFmpeg's libavcodec/atrac3plus.c).
func reconstructUnit(u *ChannelUnit, subbandOut *[maxSubbands][subbandSamples]float32) {
	if u.MuteFlag {
		for sb := 0; sb < maxSubbands; sb++ {
			for i := range subbandOut[sb] {
				subbandOut[sb][i] = 0
			}
		}
		return
	}

	var freq [2048]float32
	dequantise(u, freq[:])
	applyPowerCompensation(u, freq[:])

	for sb := 0; sb < maxSubbands; sb++ {
		if sb >= u.NumCodedSubbands {
			for i := range subbandOut[sb] {
				subbandOut[sb][i] = 0
			}
			u.Overlap[sb] = [subbandSamples]float32{}
			continue
		}

		var in [subbandSamples]float32
		copy(in[:], freq[sb*subbandSamples:(sb+1)*subbandSamples])
		if sb%2 == 1 {
			reverseF32(in[:])
		}

		var full [2 * subbandSamples]float32
		imdct256.IMDCT(in[:], full[:])

		nowShape := u.windowShapeNow(sb)
		prevShape := u.windowShapePrev(sb)
		wf := windowFirstHalf(nowShape)
		ws := windowSecondHalf(prevShape)
		for i := 0; i < subbandSamples; i++ {
			full[i] *= wf[i]
			full[subbandSamples+i] *= ws[i]
		}

		var out [subbandSamples]float32
		gainCtx.ApplyGain(full[:], u.Overlap[sb][:], u.gainPrev(sb), u.gainNow(sb), subbandSamples, out[:])

		synthesizeTones(u, sb, out[:])
		subbandOut[sb] = out
	}
}

func dequantise(u *ChannelUnit, freq []float32) {
	for q := 0; q < u.NumQuantUnits; q++ {
		lo, hi := quStart(q), quStart(q+1)
		wl := u.QuWordlen[q]
		scale := sfTab[u.QuSfIdx[q]&63] * mantTab[wl&7]
		for i := lo; i < hi && i < len(freq); i++ {
			freq[i] = float32(u.Spectrum[i]) * scale
		}
	}
}

// applyPowerCompensation adds noiseTable dither to every spectral line of
// coded subbands 2 and up (spec §4.5 "Power compensation"; applied only
// when used_quant_units > 2). The dither is scaled by pwcLevs[sb%16] *
// mantTab[1], so its level depends only on the subband number; subbands
// whose level is 0 are skipped. No power-compensation level index is
// decoded from the bitstream, and the dither is neither scaled by the
// quant units' energy nor skipped for word-length-0 units.
func applyPowerCompensation(u *ChannelUnit, freq []float32) {
	if u.UsedQuantUnits <= 2 {
		return
	}
	seed := 0
	for i := 0; i < u.UsedQuantUnits; i++ {
		seed += u.QuSfIdx[i]
	}
	for sb := 2; sb < u.NumCodedSubbands; sb++ {
		lo, hi := sb*subbandSamples, (sb+1)*subbandSamples
		lev := pwcLevs[sb%16]
		if lev == 0 {
			continue
		}
		for i := lo; i < hi && i < len(freq); i++ {
			n := noiseTable[(seed+i)%len(noiseTable)]
			freq[i] += n * lev * mantTab[1]
		}
	}
}

func reverseF32(s []float32) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// synthesizeTones adds the subband's GHA sine-wave overlay into out,
// cross-fading with Hann halves across frame boundaries (spec §4.5 step
// 5).
func synthesizeTones(u *ChannelUnit, sb int, out []float32) {
	now := u.wavesNow(sb)
	prev := u.wavesPrev(sb)
	if !now.HasWaves && !prev.HasWaves {
		return
	}

	var cur, prv [subbandSamples]float32
	if now.HasWaves {
		renderWaves(now, cur[:])
	}
	if prev.HasWaves {
		renderWaves(prev, prv[:])
	}

	switch {
	case now.HasWaves && prev.HasWaves:
		for i := 0; i < subbandSamples; i++ {
			fadeOut := hannWindow256[subbandSamples+i]
			fadeIn := hannWindow256[2*i/2]
			out[i] += prv[i]*fadeOut + cur[i]*fadeIn
		}
	case now.HasWaves:
		for i := 0; i < subbandSamples; i++ {
			out[i] += cur[i] * hannWindow256[min256(2*i, 255)]
		}
	case prev.HasWaves:
		for i := 0; i < subbandSamples; i++ {
			out[i] += prv[i] * hannWindow256[min256(255-2*i, 255)]
		}
	}
}

func min256(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func renderWaves(wd *WavesData, out []float32) {
	for w := 0; w < wd.NumWaves; w++ {
		wave := wd.Waves[w]
		amp := ampSfTab[wave.AmpSF&63]
		phase := wave.PhaseIndex * 64
		for i := 0; i < subbandSamples; i++ {
			idx := (phase + wave.FreqIndex*i) & (sineTableSize - 1)
			out[i] += amp * sineTable[idx]
		}
	}
}
