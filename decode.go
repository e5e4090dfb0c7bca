package atrac3

// ReadPCMFramesF32 reads up to n PCM frames as interleaved float32
// samples into out (len(out) must be >= n*channels; out may be nil to
// skip/discard decoded audio), following the leftover-buffer algorithm
// of spec §4.7.
func (d *Decoder) ReadPCMFramesF32(n int, out []float32) (int, error) {
	channels := d.cr.Info.Channels
	if n <= 0 {
		return 0, nil
	}
	if out != nil && len(out) < n*channels {
		return 0, ErrInvalidArgs
	}

	written := 0
	for written < n {
		if d.leftover > 0 {
			take := d.leftover
			if take > n-written {
				take = n - written
			}
			if out != nil {
				srcOff := d.leftOff * channels
				dstOff := written * channels
				copy(out[dstOff:dstOff+take*channels], d.interleave[srcOff:srcOff+take*channels])
			}
			d.leftOff += take
			d.leftover -= take
			written += take
			d.cursor += int64(take)
			continue
		}

		samples, atEOF, err := d.decodeOneFrame()
		if err != nil {
			return written, err
		}
		if atEOF {
			break
		}
		if samples == 0 {
			continue
		}
		d.leftover = samples
		d.leftOff = 0
	}
	return written, nil
}

// ReadPCMFramesS16 is ReadPCMFramesF32's int16 counterpart: each sample
// is scaled by 32767 and clamped (spec §4.7 "read_pcm_frames_s16").
func (d *Decoder) ReadPCMFramesS16(n int, out []int16) (int, error) {
	channels := d.cr.Info.Channels
	if n <= 0 {
		return 0, nil
	}
	if out != nil && len(out) < n*channels {
		return 0, ErrInvalidArgs
	}

	scratch := make([]float32, n*channels)
	written, err := d.ReadPCMFramesF32(n, scratch)
	if out != nil {
		for i := 0; i < written*channels; i++ {
			out[i] = floatToS16(scratch[i])
		}
	}
	return written, err
}

func floatToS16(x float32) int16 {
	v := int32(x*32767 + sign(x)*0.5)
	if v > 32767 {
		v = 32767
	}
	if v < -32768 {
		v = -32768
	}
	return int16(v)
}

func sign(x float32) float32 {
	if x < 0 {
		return -1
	}
	return 1
}

// SeekToPCMFrame seeks the decoder cursor to the given PCM-frame index,
// frame-aligned per spec §4.7 "Seek": the container seeks to the
// covering container frame, codec state is reset, and the remainder is
// skipped by decoding and discarding. Seeking past the end clamps to the
// end (spec §8).
func (d *Decoder) SeekToPCMFrame(target int64) error {
	spf := int64(samplesPerFrame(d.codec))
	total := d.GetLengthInPCMFrames()
	if target < 0 {
		return ErrBadSeek
	}
	if target >= total {
		target = total
	}

	targetFrame := target / spf
	remainder := target % spf

	if err := d.cr.SeekFrame(targetFrame); err != nil {
		return ErrBadSeek
	}
	d.resetCodecState()
	d.leftover = 0
	d.leftOff = 0
	d.cursor = targetFrame * spf

	if remainder > 0 {
		if _, err := d.ReadPCMFramesF32(int(remainder), nil); err != nil {
			return ErrBadSeek
		}
	}
	return nil
}

func (d *Decoder) resetCodecState() {
	switch d.codec {
	case CodecATRAC3:
		codingMode := 0
		if d.cr.Info.JointStereo {
			codingMode = 0x12
		}
		d.a3dec = d.a3dec.Reset(codingMode)
	case CodecATRAC3Plus:
		d.a3p = d.a3p.Reset()
	}
}
