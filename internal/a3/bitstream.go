package a3

import (
	"github.com/llehouerou/go-atrac3/internal/bitio"
	"github.com/llehouerou/go-atrac3/internal/dsp"
	"github.com/llehouerou/go-atrac3/internal/fft"
)

const (
	syncSU0  = 0x28 // 6 bits: SU0 / mono SU / joint-stereo SU0
	syncSU1  = 0x3  // 2 bits: joint-stereo SU1
	jsMode   = 0x12
)

var imdct512 = fft.NewMDCT(9, true, 1.0/32768)

// decodeSoundUnit parses one channel's compressed payload (spec §4.4),
// advancing the unit's persistent state and writing SamplesPerFrame
// time-domain samples to out.
//
// Ported from: decode_channel_sound_unit() in the ATRAC3 reference decoder
// family (FFmpeg's libavcodec/atrac3.c).
func decodeSoundUnit(r *bitio.Reader, u *ChannelUnit, isSU1 bool, out []float32) error {
	if isSU1 {
		if r.ReadBits(2) != syncSU1 {
			return errInvalidData("joint-stereo SU1 sync mismatch")
		}
	} else {
		if r.ReadBits(6) != syncSU0 {
			return errInvalidData("sound unit sync mismatch")
		}
	}

	bandsCoded := int(r.ReadBits(2))

	// Gain blocks into the "next" slot.
	for b := 0; b < numQMFBands; b++ {
		gb := u.nextGain(b)
		if b > bandsCoded {
			gb.NumPoints = 0
			continue
		}
		n := int(r.ReadBits(3))
		if n > dsp.MaxGainPoints {
			return errInvalidData("too many gain points")
		}
		gb.NumPoints = n
		lastLoc := -1
		for i := 0; i < n; i++ {
			gb.LevCode[i] = int(r.ReadBits(4))
			loc := int(r.ReadBits(5))
			if loc <= lastLoc {
				return errInvalidData("gain control locations not ascending")
			}
			lastLoc = loc
			gb.LocCode[i] = loc
		}
	}

	// Tonal components.
	var spectrum [SamplesPerFrame]float32
	lastTonalPos := -1
	nbComponents := int(r.ReadBits(5))
	if nbComponents > 0 {
		codingModeSelector := int(r.ReadBits(2))
		if codingModeSelector == 2 {
			return errInvalidData("invalid tonal coding mode selector")
		}
		if nbComponents > maxTonalComponents {
			nbComponents = maxTonalComponents
		}
		u.NumTonal = 0
		for i := 0; i < nbComponents; i++ {
			bandFlags := int(r.ReadBits(4))
			codedValuesPerComponent := int(r.ReadBits(3))
			quantStepIndex := int(r.ReadBits(3))
			if quantStepIndex < 2 {
				return errInvalidData("tonal quant_step_index out of range")
			}
			codingMode := codingModeSelector
			if codingModeSelector == 3 {
				codingMode = int(r.ReadBits(1))
			}
			numCoefs := codedValuesPerComponent + 1

			for band := 0; band <= bandsCoded; band++ {
				if bandFlags&(1<<uint(band)) == 0 {
					continue
				}
				codedComponents := int(r.ReadBits(3))
				for c := 0; c < codedComponents; c++ {
					sfIndex := int(r.ReadBits(6))
					posLow := int(r.ReadBits(6))
					pos := band*256 + (c*64+posLow)%256
					scale := dsp.ScaleFactors[sfIndex] * invMaxQuant[quantStepIndex]

					var coefs [8]float32
					if codingMode == 1 {
						for k := 0; k < numCoefs; k += 2 {
							v0, v1 := readCLC(r, quantStepIndex, scale)
							coefs[k] = v0
							if k+1 < numCoefs {
								coefs[k+1] = v1
							}
						}
					} else {
						coefs = readMantissas(r, quantStepIndex, numCoefs, scale)
					}

					if u.NumTonal < maxTonalComponents {
						u.Tonal[u.NumTonal] = TonalComponent{Pos: pos, NumCoefs: numCoefs, Coef: coefs}
						u.NumTonal++
					}
					if pos > lastTonalPos {
						lastTonalPos = pos
					}
				}
			}
		}
	} else {
		u.NumTonal = 0
	}

	// Spectrum.
	numSubbands := int(r.ReadBits(5))
	if numSubbands > 32 {
		numSubbands = 32
	}
	codingMode := int(r.ReadBits(1)) // 0=VLC, 1=CLC

	selectors := make([]int, numSubbands)
	for i := range selectors {
		selectors[i] = int(r.ReadBits(3))
	}

	for i, sel := range selectors {
		lo, hi := subbandTab[i], subbandTab[i+1]
		if sel == 0 {
			continue
		}
		sfIndex := int(r.ReadBits(6))
		scale := dsp.ScaleFactors[sfIndex] * invMaxQuant[sel]
		n := hi - lo
		if codingMode == 1 {
			for k := 0; k < n; k += 2 {
				v0, v1 := readCLC(r, sel, scale)
				spectrum[lo+k] = v0
				if k+1 < n {
					spectrum[lo+k+1] = v1
				}
			}
		} else {
			for k := 0; k < n; {
				coefs := readMantissas(r, sel, minInt(8, n-k), scale)
				copy(spectrum[lo+k:lo+k+minInt(8, n-k)], coefs[:minInt(8, n-k)])
				k += 8
			}
		}
	}

	// Merge tonal components into spectrum (additive overlay).
	for i := 0; i < u.NumTonal; i++ {
		tc := &u.Tonal[i]
		for k := 0; k < tc.NumCoefs && tc.Pos+k < SamplesPerFrame; k++ {
			spectrum[tc.Pos+k] += tc.Coef[k]
		}
	}

	// IMLT: active bands determined by last tonal position and subband
	// coverage.
	activeBands := (maxInt(subbandTab[numSubbands]-1, 0)) >> 8
	if lastTonalPos >= 0 {
		b := lastTonalPos >> 8
		if b+1 > activeBands {
			activeBands = b + 1
		}
	}
	if activeBands > numQMFBands {
		activeBands = numQMFBands
	}

	var qmfBands [numQMFBands][256]float32
	for b := 0; b < numQMFBands; b++ {
		if b >= activeBands {
			continue
		}
		var in [256]float32
		copy(in[:], spectrum[b*256:b*256+256])
		if b%2 == 1 {
			reverse(in[:])
		}
		var full [512]float32
		imdct512.IMDCT(in[:], full[:])
		for i := 0; i < 512; i++ {
			full[i] *= mdctWindow[i]
		}

		ctx := dsp.GainContext{ID2ExpOffset: 4, LocScale: 3}
		var gcOut [256]float32
		ctx.ApplyGain(full[:], u.PrevFrame[b*256:b*256+256], u.nowGain(b), u.nextGain(b), 256, gcOut[:])
		copy(qmfBands[b][:], gcOut[:])
	}

	u.swapGain()

	// QMF synthesis: (lo=0,hi=1)->band01, (lo=3,hi=2)->band23 (swapped),
	// then band01+band23 -> full 1024-sample output.
	var band01, band23 [512]float32
	u.QMFDelay[0].IQMF(qmfBands[0][:], qmfBands[1][:], 256, band01[:])
	u.QMFDelay[1].IQMF(qmfBands[3][:], qmfBands[2][:], 256, band23[:])
	u.QMFDelay[2].IQMF(band01[:], band23[:], 512, out)

	return nil
}

func reverse(s []float32) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
