package a3

import "github.com/llehouerou/go-atrac3/internal/dsp"

// TonalComponent is one up-to-64 tonal overlay component decoded per
// channel unit, spec §3/§4.4.3.
type TonalComponent struct {
	Pos      int
	NumCoefs int
	Coef     [8]float32
}

// ChannelUnit holds one ATRAC3 channel's persistent decode state.
//
// Ported from: channel_unit struct in the ATRAC3 reference decoder family
// (FFmpeg's libavcodec/atrac3.c), per spec §3.
type ChannelUnit struct {
	PrevFrame [SamplesPerFrame]float32

	GainBlocks  [2][numQMFBands]dsp.GainBlock // ring of "current"/"next" slots
	GCBlkSwitch int                           // 0 or 1: which slot is "current"

	Tonal    [maxTonalComponents]TonalComponent
	NumTonal int

	QMFDelay [3]dsp.QMFDelay // per subband-pair delay lines

	// Joint-stereo pipeline state is not stored on the channel unit; it
	// lives in the decoder-level jointStereoState.
}

func (u *ChannelUnit) nowGain(band int) *dsp.GainBlock {
	return &u.GainBlocks[u.GCBlkSwitch][band]
}

func (u *ChannelUnit) nextGain(band int) *dsp.GainBlock {
	return &u.GainBlocks[u.GCBlkSwitch^1][band]
}

func (u *ChannelUnit) swapGain() {
	u.GCBlkSwitch ^= 1
}

// jointStereoState holds the two-frame-lookahead joint-stereo pipeline
// shared by both channel units, spec §3.
type jointStereoState struct {
	weightingDelay [6]int // [flag0,val0, flag1,val1, flag2,val2] packed as ints; see jointstereo.go
	matrixPrev     [4]int
	matrixNow      [4]int
	matrixNext     [4]int

	// Per-band (1 and 3) channel-weighting coefficients from the previous
	// frame, so a weight-index change ramps in over 8 samples the same
	// way the mix-matrix coefficients do above.
	weightPrevW0  [4]float32
	weightPrevW1  [4]float32
	weightPrevSet [4]bool
}
