package a3plus

import "github.com/llehouerou/go-atrac3/internal/dsp"

// Wave is one GHA tone component: frequency, amplitude and phase indexes
// (spec §4.5 "Tone info"). The envelope that bounds the tones in time is
// held on WavesData.
type Wave struct {
	FreqIndex int
	AmpSF     int
	AmpIndex  int
	PhaseIndex int
}

// WavesData holds one subband's GHA tones for one frame, spec §4.5.
type WavesData struct {
	HasWaves  bool
	HasStart  bool
	StartPos  int
	HasStop   bool
	StopPos   int
	Waves     [maxWavesPerBand]Wave
	NumWaves  int
}

// ChannelUnit holds one ATRAC3+ channel's decode state, including the
// two-frame "current"/"previous" history slots spec §9 names for window
// shape, gain data, and tone data. CurIdx selects which slot is current;
// access slot[CurIdx] / slot[CurIdx^1], never heap-allocated per frame.
//
// Ported from: the channel_unit struct in the ATRAC3+ reference decoder
// family (FFmpeg's libavcodec/atrac3plus.c), per spec §3/§9.
type ChannelUnit struct {
	NumQuantUnits   int
	UsedQuantUnits  int
	NumSubbands     int
	NumCodedSubbands int
	MuteFlag        bool

	QuWordlen [maxQuantUnits]int
	QuSfIdx   [maxQuantUnits]int
	QuTabIdx  [maxQuantUnits]int

	Spectrum [2048]int32 // raw decoded int16-range coefficients, pre-dequant

	SwapChannels  [maxSubbands]bool
	NegateCoeffs  [maxSubbands]bool

	WindowShape     [2][maxSubbands]int // [CurIdx][subband]: 0=sine, 1=steep
	GainData        [2][maxSubbands]dsp.GainBlock
	WavesInfo       [2][maxSubbands]WavesData
	CurIdx          int

	Overlap  [maxSubbands][subbandSamples]float32
	IPQFRing [ipqfRingSize][maxSubbands]float32
	IPQFPos  int
}

func (u *ChannelUnit) windowShapeNow(sb int) int  { return u.WindowShape[u.CurIdx][sb] }
func (u *ChannelUnit) windowShapePrev(sb int) int { return u.WindowShape[u.CurIdx^1][sb] }
func (u *ChannelUnit) gainNow(sb int) *dsp.GainBlock  { return &u.GainData[u.CurIdx][sb] }
func (u *ChannelUnit) gainPrev(sb int) *dsp.GainBlock { return &u.GainData[u.CurIdx^1][sb] }
func (u *ChannelUnit) wavesNow(sb int) *WavesData  { return &u.WavesInfo[u.CurIdx][sb] }
func (u *ChannelUnit) wavesPrev(sb int) *WavesData { return &u.WavesInfo[u.CurIdx^1][sb] }

// rotate swaps current/previous for the next frame (spec §4.5 step 7).
func (u *ChannelUnit) rotate() { u.CurIdx ^= 1 }
