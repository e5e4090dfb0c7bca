package a3plus

import "github.com/llehouerou/go-atrac3/internal/bitio"

// Decoder holds the persistent state for one ATRAC3+ stream: one
// ChannelUnit pair for mono or stereo configurations (spec §4.5 "multi-
// channel output... best-effort" for anything beyond that, per spec §9
// open question).
type Decoder struct {
	Channels int
	units    [2]ChannelUnit
}

// NewDecoder constructs a Decoder for a stream with the given channel
// count, as identified by container demuxing.
func NewDecoder(channels int) *Decoder {
	return &Decoder{Channels: channels}
}

// Reset discards gain-compensation and tone-synthesis history so the
// next DecodeFrame call starts fresh, for use after a container seek
// (spec §4.7 "Seek").
func (d *Decoder) Reset() *Decoder {
	return NewDecoder(d.Channels)
}

// DecodeFrame decodes one compressed ATRAC3+ frame into interleaved
// float32 PCM. out must hold Channels*SamplesPerFrame samples.
//
// Per spec §4.5 "Failure semantics", a malformed frame returns a wrapped
// ErrInvalidData/ErrNotImplemented and leaves the decoder ready for the
// next frame.
func (d *Decoder) DecodeFrame(frame []byte, out []float32) error {
	r := bitio.NewReader(frame)
	if r.ReadBits(1) != 0 {
		return errInvalidData("reserved frame bit set")
	}

	stereo := d.Channels >= 2

unitLoop:
	for {
		unitType := int(r.ReadBits(2))
		switch unitType {
		case unitTypeTerminator:
			break unitLoop
		case unitTypeExtension:
			return errNotImplemented("channel unit extension")
		case unitTypeMono:
			if stereo {
				return errInvalidData("mono unit in stereo stream")
			}
			if err := decodeChannelUnit(r, &d.units[0], nil, false); err != nil {
				return err
			}
		case unitTypeStereo:
			if !stereo {
				return errInvalidData("stereo unit in mono stream")
			}
			if err := decodeChannelUnit(r, &d.units[0], &d.units[1], true); err != nil {
				return err
			}
		}
	}

	var sub0, sub1 [maxSubbands][subbandSamples]float32
	reconstructUnit(&d.units[0], &sub0)

	if !stereo {
		var ch [SamplesPerFrame]float32
		ipqfSynthesize(&d.units[0], &sub0, ch[:])
		copy(out, ch[:])
		d.units[0].rotate()
		return nil
	}

	reconstructUnit(&d.units[1], &sub1)

	var chL, chR [SamplesPerFrame]float32
	ipqfSynthesize(&d.units[0], &sub0, chL[:])
	ipqfSynthesize(&d.units[1], &sub1, chR[:])

	for i := 0; i < SamplesPerFrame; i++ {
		out[2*i] = chL[i]
		out[2*i+1] = chR[i]
	}
	d.units[0].rotate()
	d.units[1].rotate()
	return nil
}
