package a3

// SamplesPerFrame is the number of PCM samples ATRAC3 emits per channel
// per compressed frame.
const SamplesPerFrame = 1024

const (
	maxTonalComponents = 64
	numQMFBands        = 4
)

// subbandTab is the 33-entry monotonic boundary table for the four QMF
// bands' spectral coefficients (spec §4.4 step 4).
var subbandTab = [33]int{
	0, 8, 16, 24, 32, 40, 48, 56, 64, 72, 80, 88, 96, 104, 112, 120, 128,
	184, 240, 296, 352, 408, 464, 520, 576, 632, 688, 744, 800, 856, 912, 968, 1024,
}

// invMaxQuant dequantises a mantissa by quant_step_index, spec §4.4.3.
var invMaxQuant = [8]float32{0, 1 / 1.5, 1 / 2.5, 1 / 3.5, 1 / 4.5, 1 / 7.5, 1 / 15.5, 1 / 31.5}

// clcLengthTab gives the fixed CLC bit-width per selector, spec §4.4.a.
var clcLengthTab = [8]int{0, 4, 3, 3, 4, 4, 5, 6}

// mantissaClcTab maps a 2-bit CLC code to a signed coefficient for
// selector 1 (read twice, once per coefficient).
var mantissaClcTab = [4]int32{0, 1, -2, -1}

// mantissaVlcTab is the 18-entry signed-pair table used by selector 1's
// VLC path: even indices are the first coefficient, odd indices the
// second, for an 18/2=9-symbol alphabet.
var mantissaVlcTab = [18]int32{
	0, 0, 0, 1, 1, 0, 1, 1, 0, -1, -1, 0, -1, -1, 1, -1, -1, 1,
}

// matrixCoeffs is the fixed (now_idx) x (prev_idx) lerp source table used
// by joint-stereo reverse matrixing (spec §4.4 "Joint stereo").
var matrixCoeffs = [8][2]float32{
	{0, 0}, {2, 0}, {2, 0}, {2, 0}, {0, 0}, {0, 0}, {1, 0}, {1, 0},
}
