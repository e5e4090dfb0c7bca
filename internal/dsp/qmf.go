package dsp

import "math"

// QMFTaps is the length of the QMF synthesis window (48 coefficients).
const QMFTaps = 48

// qmfWindowHalf is the stored 24-entry half of the 48-tap QMF synthesis
// window. It is generated once from a Hann-windowed half-band sinc
// prototype — a standard two-band QMF synthesis kernel shape — since the
// bit-exact literal table of the reference decoder is not available in
// this environment (see DESIGN.md: only the ATRAC3+ noise-dither table is
// specified as requiring verbatim literals; this window is not).
var qmfWindowHalf [24]float32

// QMFWindow holds the full 48-tap window: qmfWindowHalf mirrored and
// doubled, matching spec §4.3.
var QMFWindow [QMFTaps]float32

func init() {
	const half = 24
	// Half-band low-pass prototype, Hann-windowed sinc, cutoff at Nyquist/2.
	center := float64(2*half-1) / 2
	for i := 0; i < half; i++ {
		x := float64(i) - center
		var sinc float64
		if x == 0 {
			sinc = 0.5
		} else {
			sinc = math.Sin(math.Pi*x/2) / (math.Pi * x)
		}
		hann := 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(2*half-1))
		qmfWindowHalf[i] = float32(sinc * hann)
	}

	for i := 0; i < half; i++ {
		QMFWindow[i] = qmfWindowHalf[i] * 2
		QMFWindow[QMFTaps-1-i] = qmfWindowHalf[i] * 2
	}
}

// QMFDelay holds the 46-sample delay-line state for one iqmf stage,
// carried between successive calls the way the reference decoder keeps a
// per-subband-pair history buffer alive across frames.
type QMFDelay struct {
	buf [46]float32
}

// Reset clears the delay line (used on seek/flush).
func (d *QMFDelay) Reset() { d.buf = [46]float32{} }

// IQMF combines a low-band and a high-band input of nIn samples each into
// a full-band output of 2*nIn samples, using the 48-tap window and the
// delay line's carried state.
//
// Ported from: atrac_iqmf() in the ATRAC3/ATRAC3+ reference decoder
// family (FFmpeg's libavcodec/atrac.c).
func (d *QMFDelay) IQMF(lo, hi []float32, nIn int, out []float32) {
	if len(lo) != nIn || len(hi) != nIn || len(out) != 2*nIn {
		panic("dsp: iqmf buffer size mismatch")
	}

	// Working delay buffer: history (46 samples) followed by 2*nIn fresh
	// samples derived from the sum/difference of lo/hi.
	src := make([]float32, 46+2*nIn)
	copy(src, d.buf[:])
	for i := 0; i < nIn; i++ {
		src[46+2*i] = lo[i] + hi[i]
		src[46+2*i+1] = lo[i] - hi[i]
	}

	for j := 0; j < nIn; j++ {
		base := 2 * j
		var s1, s2 float32
		for t := 0; t < QMFTaps; t += 2 {
			s1 += src[base+t] * QMFWindow[t]
			s2 += src[base+t+1] * QMFWindow[t+1]
		}
		out[base] = s2
		out[base+1] = s1
	}

	copy(d.buf[:], src[len(src)-46:])
}
