package a3

import (
	"github.com/llehouerou/go-atrac3/internal/bitio"
)

// jsModeTag is the container-level coding-mode byte value that marks a
// frame as joint-stereo rather than independent dual-mono (spec §4.2).
const jsModeTag = 0x12

// Decoder holds the persistent state for one ATRAC3 stream: per-channel
// decode state plus the joint-stereo look-ahead pipeline shared across
// frames when the stream is in joint-stereo mode.
//
// Ported from: the ATRAC3Context channel-unit pairing in the ATRAC3
// reference decoder family (FFmpeg's libavcodec/atrac3.c), per spec §3.
type Decoder struct {
	Channels   int
	JointStereo bool
	Scrambled  bool

	units [2]ChannelUnit
	js    jointStereoState
}

// NewDecoder constructs a Decoder for a stream with the given channel
// count and coding mode, as identified by container demuxing (spec §4.2).
func NewDecoder(channels int, codingMode int, scrambled bool) *Decoder {
	return &Decoder{
		Channels:    channels,
		JointStereo: codingMode == jsModeTag,
		Scrambled:   scrambled,
	}
}

// Reset discards all per-frame history (gain-compensation and
// joint-stereo look-ahead state) so the next DecodeFrame call starts as
// if from the beginning of the stream, for use after a container seek
// (spec §4.7 "Seek").
func (d *Decoder) Reset(codingMode int) *Decoder {
	return NewDecoder(d.Channels, codingMode, d.Scrambled)
}

// DecodeFrame decodes one compressed ATRAC3 frame into interleaved
// float32 PCM. out must hold Channels*SamplesPerFrame samples.
//
// Per spec §7, a malformed frame returns a wrapped ErrInvalidData and
// leaves the decoder ready to attempt the next frame; it never poisons
// subsequent calls.
func (d *Decoder) DecodeFrame(frame []byte, out []float32) error {
	if d.Scrambled {
		frame = descramble(frame, 0)
	}

	var left, right [SamplesPerFrame]float32

	r0 := bitio.NewReader(frame)
	if err := decodeSoundUnit(r0, &d.units[0], false, left[:]); err != nil {
		return err
	}

	if d.Channels == 1 {
		for i := 0; i < SamplesPerFrame; i++ {
			out[i] = left[i]
		}
		return nil
	}

	if !d.JointStereo {
		// Independent dual-mono streams pack SU1 immediately after SU0
		// at SU0's byte-aligned end.
		bytePos := r0.SeekByte() / 8
		if bytePos > len(frame) {
			return errInvalidData("sound unit 0 overruns frame")
		}
		r1 := bitio.NewReader(frame[bytePos:])
		if err := decodeSoundUnit(r1, &d.units[1], false, right[:]); err != nil {
			return err
		}
	} else {
		su1Bytes := reverseBytes(frame)
		r1 := bitio.NewReader(su1Bytes)
		if err := decodeJointStereoHeader(r1, &d.js); err != nil {
			return err
		}
		if err := decodeSoundUnit(r1, &d.units[1], true, right[:]); err != nil {
			return err
		}
		reverseMatrixAndWeight(&d.js, left[:], right[:])
		shiftJointStereoPipeline(&d.js)
	}

	for i := 0; i < SamplesPerFrame; i++ {
		out[2*i] = left[i]
		out[2*i+1] = right[i]
	}
	return nil
}
