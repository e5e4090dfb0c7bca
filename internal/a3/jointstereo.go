package a3

import (
	"math"

	"github.com/llehouerou/go-atrac3/internal/bitio"
)

// reverseBytes returns a new slice containing src's bytes in reverse
// order. The spec requires a scratch copy — the source slice must never
// be mutated (spec §9 "reverse-byte working buffer").
func reverseBytes(src []byte) []byte {
	dst := make([]byte, len(src))
	for i, b := range src {
		dst[len(src)-1-i] = b
	}
	return dst
}

// decodeJointStereoHeader reads the joint-stereo-only header that prefixes
// SU1's reversed bitstream: a run of >=4 0xF8 sync bytes, a packed
// weighting-delay pair, and four 2-bit matrix coefficient indexes.
//
// Ported from: the joint_stereo header parse in the ATRAC3 reference
// decoder family (FFmpeg's libavcodec/atrac3.c decode_frame).
func decodeJointStereoHeader(r *bitio.Reader, js *jointStereoState) error {
	synced := 0
	for r.BitsLeft() >= 8 && r.PeekBits(8) == 0xF8 {
		r.SkipBits(8)
		synced++
	}
	if synced < 4 {
		return errInvalidData("joint-stereo sync run too short")
	}

	wFlag := int(r.ReadBits(1))
	wVal := int(r.ReadBits(3))
	js.weightingDelay[4] = wFlag
	js.weightingDelay[5] = wVal

	for i := 0; i < 4; i++ {
		js.matrixNext[i] = int(r.ReadBits(2))
	}
	return nil
}

// shiftJointStereoPipeline advances the two-frame look-ahead pipeline
// (prev <- now <- next) for both the weighting delay and the matrix
// coefficient index arrays.
func shiftJointStereoPipeline(js *jointStereoState) {
	copy(js.weightingDelay[0:4], js.weightingDelay[2:6])
	js.matrixPrev = js.matrixNow
	js.matrixNow = js.matrixNext
}

func lerp(a, b, n float32) float32 {
	return a + n*0.125*(b-a)
}

// reverseMatrixAndWeight applies the post-decode joint-stereo reverse
// matrixing and channel weighting described in spec §4.4 "Joint stereo",
// operating in place on the two channels' 1024-sample time-domain output.
func reverseMatrixAndWeight(js *jointStereoState, left, right []float32) {
	for band := 0; band < 4; band++ {
		off := band * 256
		prevIdx := js.matrixPrev[band]
		nowIdx := js.matrixNow[band]

		start := 0
		if prevIdx != nowIdx {
			cPrev := matrixCoeffs[prevIdx]
			cNow := matrixCoeffs[nowIdx]
			for n := 0; n < 8; n++ {
				c0 := lerp(cPrev[0], cNow[0], float32(n))
				c1 := lerp(cPrev[1], cNow[1], float32(n))
				l, r := left[off+n], right[off+n]
				left[off+n] = c0*r + c1*(l-r)
				right[off+n] = c0*(l-r) - c1*r
			}
			start = 8
		}
		for n := start; n < 256; n++ {
			applyMixMatrix(left, right, off+n, nowIdx)
		}
	}

	p3 := [4]int{0, js.weightingDelay[1], 0, js.weightingDelay[5]}
	flags := [4]int{0, js.weightingDelay[0], 0, js.weightingDelay[4]}
	for _, band := range []int{1, 3} {
		idx := p3[band]
		if idx == 7 {
			js.weightPrevSet[band] = false
			continue
		}
		off := band * 256
		w0 := float32(idx) / 7
		w1 := sqrt32(2 - w0*w0)
		if flags[band] != 0 {
			w0, w1 = w1, w0
		}

		start := 0
		if js.weightPrevSet[band] && (js.weightPrevW0[band] != w0 || js.weightPrevW1[band] != w1) {
			pw0, pw1 := js.weightPrevW0[band], js.weightPrevW1[band]
			for n := 0; n < 8; n++ {
				lw0 := lerp(pw0, w0, float32(n))
				lw1 := lerp(pw1, w1, float32(n))
				left[off+n] *= lw0
				right[off+n] *= lw1
			}
			start = 8
		}
		for n := start; n < 256; n++ {
			left[off+n] *= w0
			right[off+n] *= w1
		}
		js.weightPrevW0[band] = w0
		js.weightPrevW1[band] = w1
		js.weightPrevSet[band] = true
	}
}

func applyMixMatrix(left, right []float32, i int, nowIdx int) {
	l, r := left[i], right[i]
	switch nowIdx {
	case 0:
		left[i] = 2 * r
		right[i] = 2 * (l - r)
	case 1:
		left[i] = 2 * (l + r)
		right[i] = -2 * r
	case 2, 3:
		left[i] = l + r
		right[i] = l - r
	}
}

func sqrt32(v float32) float32 {
	if v < 0 {
		v = 0
	}
	return float32(math.Sqrt(float64(v)))
}
