package a3plus

import (
	"github.com/llehouerou/go-atrac3/internal/bitio"
)

const (
	unitTypeMono       = 0
	unitTypeStereo     = 1
	unitTypeExtension  = 2
	unitTypeTerminator = 3
)

// decodeChannelUnit parses one channel unit's full grammar (spec §4.5):
// quant-unit count, mute flag, word-length/scalefactor/code-table common
// coding, spectrum, stereo post-processing flags, window shape, gain
// control, tone info, and global noise. u0 is always the master (or the
// mono unit); u1 is the slave, used only when stereo is true.
//
// Ported from: decode_channel_unit() in the ATRAC3+ reference decoder
// family (FFmpeg's libavcodec/atrac3plus.c).
func decodeChannelUnit(r *bitio.Reader, u0, u1 *ChannelUnit, stereo bool) error {
	nq := int(r.ReadBits(5)) + 1
	if nq >= 29 && nq <= 31 {
		return errInvalidData("num_quant_units out of range")
	}
	u0.NumQuantUnits = nq
	if stereo {
		u1.NumQuantUnits = nq
	}

	u0.MuteFlag = r.ReadBits(1) != 0
	if stereo {
		u1.MuteFlag = r.ReadBits(1) != 0
	}

	if err := decodeWordLengths(r, u0, u1, stereo, nq); err != nil {
		return err
	}
	if err := decodeScalefactors(r, u0, u1, stereo, nq); err != nil {
		return err
	}
	if err := decodeCodeTableIndexes(r, u0, u1, stereo, nq); err != nil {
		return err
	}

	computeUsedQuantUnits(u0)
	if stereo {
		computeUsedQuantUnits(u1)
	}

	if err := decodeSpectrum(r, u0, nil); err != nil {
		return err
	}
	if stereo {
		if err := decodeSpectrum(r, u1, u0); err != nil {
			return err
		}
		if err := decodeStereoFlags(r, u1); err != nil {
			return err
		}
	}

	if err := decodeWindowShapes(r, u0, stereo, u1); err != nil {
		return err
	}
	if err := decodeGainControl(r, u0, stereo, u1); err != nil {
		return err
	}
	if err := decodeTones(r, u0, u1, stereo); err != nil {
		return err
	}
	return decodeGlobalNoise(r, u0, stereo, u1)
}

// computeUsedQuantUnits scans qu_wordlen from the top and sets
// UsedQuantUnits/NumSubbands/NumCodedSubbands (spec §4.5 "Used quant
// units").
func computeUsedQuantUnits(u *ChannelUnit) {
	used := 0
	for i := u.NumQuantUnits - 1; i >= 0; i-- {
		if u.QuWordlen[i] != 0 {
			used = i + 1
			break
		}
	}
	u.UsedQuantUnits = used
	u.NumSubbands = quToSubband[u.NumQuantUnits-1] + 1
	if used > 0 {
		u.NumCodedSubbands = quToSubband[used-1] + 1
	} else {
		u.NumCodedSubbands = 0
	}
}

// decodeWordLengths reads the 2-bit mode header then the master (and,
// for stereo, slave) word-length field sets (spec §4.5 mode table).
func decodeWordLengths(r *bitio.Reader, u0, u1 *ChannelUnit, stereo bool, nq int) error {
	mode := int(r.ReadBits(2))
	switch mode {
	case 0:
		for i := 0; i < nq; i++ {
			u0.QuWordlen[i] = int(r.ReadBits(3))
		}
	case 1:
		if err := decodePosPrefixField(r, u0.QuWordlen[:nq], 3, 3); err != nil {
			return err
		}
		applyFillMode(r, u0.QuWordlen[:nq])
	case 2:
		decodeWLVQField(r, u0.QuWordlen[:nq])
	case 3:
		u0.QuWordlen[0] = int(r.ReadBits(3))
		for i := 1; i < nq; i++ {
			u0.QuWordlen[i] = clampInt(u0.QuWordlen[i-1]+readDelta(r), 0, 7)
		}
	}
	w := int(r.ReadBits(2))
	applyWeight(u0.QuWordlen[:nq], wlWeights[w%6][:], 0, 7)

	if !stereo {
		return nil
	}
	smode := int(r.ReadBits(2))
	switch smode {
	case 0:
		for i := 0; i < nq; i++ {
			u1.QuWordlen[i] = int(r.ReadBits(3))
		}
	case 1:
		// Delta to the master channel's same-indexed value.
		for i := 0; i < nq; i++ {
			u1.QuWordlen[i] = clampInt(u0.QuWordlen[i]+readDelta(r), 0, 7)
		}
	case 2:
		// Delta to the master channel's first-order differences: the
		// slave's step from its own previous value is predicted by the
		// master's step from its previous value.
		u1.QuWordlen[0] = clampInt(u0.QuWordlen[0]+readDelta(r), 0, 7)
		for i := 1; i < nq; i++ {
			pred := u1.QuWordlen[i-1] + (u0.QuWordlen[i] - u0.QuWordlen[i-1])
			u1.QuWordlen[i] = clampInt(pred+readDelta(r), 0, 7)
		}
	case 3:
		u1.QuWordlen[0] = clampInt(readDelta(r), 0, 7)
		for i := 1; i < nq; i++ {
			u1.QuWordlen[i] = clampInt(u1.QuWordlen[i-1]+readDelta(r), 0, 7)
		}
	}
	return nil
}

// decodeScalefactors mirrors decodeWordLengths for the 6-bit scalefactor
// field set.
func decodeScalefactors(r *bitio.Reader, u0, u1 *ChannelUnit, stereo bool, nq int) error {
	mode := int(r.ReadBits(2))
	switch mode {
	case 0:
		for i := 0; i < nq; i++ {
			u0.QuSfIdx[i] = int(r.ReadBits(6))
		}
	case 1:
		if err := decodePosPrefixField(r, u0.QuSfIdx[:nq], 6, 6); err != nil {
			return err
		}
	case 2:
		decodeSFVQField(r, u0.QuSfIdx[:nq])
	case 3:
		u0.QuSfIdx[0] = int(r.ReadBits(6))
		for i := 1; i < nq; i++ {
			u0.QuSfIdx[i] = clampInt(u0.QuSfIdx[i-1]+readDelta(r), 0, 63)
		}
	}
	sw := int(r.ReadBits(1))
	applyWeight(u0.QuSfIdx[:nq], sfWeights[sw][:], 0, 63)

	if !stereo {
		return nil
	}
	smode := int(r.ReadBits(2))
	switch smode {
	case 0:
		for i := 0; i < nq; i++ {
			u1.QuSfIdx[i] = int(r.ReadBits(6))
		}
	case 1:
		// Delta to the master channel's same-indexed value.
		for i := 0; i < nq; i++ {
			u1.QuSfIdx[i] = clampInt(u0.QuSfIdx[i]+readDelta(r), 0, 63)
		}
	case 2:
		// Delta to the master channel's first-order differences: the
		// slave's step from its own previous value is predicted by the
		// master's step from its previous value.
		u1.QuSfIdx[0] = clampInt(u0.QuSfIdx[0]+readDelta(r), 0, 63)
		for i := 1; i < nq; i++ {
			pred := u1.QuSfIdx[i-1] + (u0.QuSfIdx[i] - u0.QuSfIdx[i-1])
			u1.QuSfIdx[i] = clampInt(pred+readDelta(r), 0, 63)
		}
	case 3:
		for i := 0; i < nq; i++ {
			u1.QuSfIdx[i] = u0.QuSfIdx[i]
		}
	}
	return nil
}

// decodeCodeTableIndexes reads one 2-bit Huffman table selector per quant
// unit for channel 0, then for channel 1 when stereo; decodeSpectrum takes
// bit 0 as the table set and bit 1 as the table type. No use_full_table
// flag or separate per-unit table index is read.
func decodeCodeTableIndexes(r *bitio.Reader, u0, u1 *ChannelUnit, stereo bool, nq int) error {
	for i := 0; i < nq; i++ {
		u0.QuTabIdx[i] = int(r.ReadBits(2))
	}
	if stereo {
		for i := 0; i < nq; i++ {
			u1.QuTabIdx[i] = int(r.ReadBits(2))
		}
	}
	return nil
}

// decodePosPrefixField implements mode 1's "position/prefix/min/delta"
// layout: a length, a prefix of full-precision values, then a suffix of
// min+delta values.
func decodePosPrefixField(r *bitio.Reader, out []int, fullBits, deltaBits uint) error {
	n := len(out)
	pos := int(r.ReadBits(5))
	if pos > n {
		pos = n
	}
	for i := 0; i < pos; i++ {
		out[i] = int(r.ReadBits(fullBits))
	}
	if pos < n {
		min := int(r.ReadBits(deltaBits))
		for i := pos; i < n; i++ {
			out[i] = clampInt(min+readDelta(r), 0, (1<<fullBits)-1)
		}
	}
	return nil
}

// applyFillMode post-processes out per the 2-bit fill_mode carried
// alongside word-length mode 1: mode 1 reads one bit for every zero entry
// in the whole of out and sets it to 1 when the bit is set; mode 2 reads a
// 5-bit count and sets the zero entries below it to 1. No count of coded
// values is tracked, so the fill is not limited to a trailing range.
func applyFillMode(r *bitio.Reader, out []int) {
	fillMode := int(r.ReadBits(2))
	switch fillMode {
	case 0:
	case 1:
		for i := range out {
			if out[i] == 0 && r.ReadBits(1) != 0 {
				out[i] = 1
			}
		}
	case 2:
		off := int(r.ReadBits(5))
		for i := 0; i < off && i < len(out); i++ {
			if out[i] == 0 {
				out[i] = 1
			}
		}
	}
}

// decodeWLVQField implements word-length mode 2: a 3-bit start value, a
// 4-bit shape index selecting a row from wlShapes[start], expanded via
// quNumToSeg, then optional VLC corrections.
func decodeWLVQField(r *bitio.Reader, out []int) {
	start := int(r.ReadBits(3))
	shape := int(r.ReadBits(4))
	row := wlShapes[start][shape]
	expandVQRow(r, out, row[:], 0, 0, 7)
}

// decodeSFVQField implements scalefactor mode 2: a 6-bit start value, a
// 6-bit shape index selecting a row from sfShapes, expanded via
// quNumToSeg, then optional VLC corrections.
func decodeSFVQField(r *bitio.Reader, out []int) {
	start := int(r.ReadBits(6))
	shape := int(r.ReadBits(6)) % len(sfShapes)
	row := sfShapes[shape]
	expandVQRow(r, out, row[:], start-32, 0, 63)
}

func expandVQRow(r *bitio.Reader, out []int, row []int, bias, lo, hi int) {
	for i := range out {
		seg := quNumToSeg[i%len(quNumToSeg)]
		if seg >= len(row) {
			seg = len(row) - 1
		}
		out[i] = clampInt(row[seg]+bias, lo, hi)
	}
	if r.ReadBits(1) != 0 {
		for i := range out {
			out[i] = clampInt(out[i]+readDelta(r), lo, hi)
		}
	}
}

// applyWeight adds (word-length) or subtracts (scalefactor, via a
// pre-negated table) a weight row, clamped to [lo, hi].
func applyWeight(out []int, weights []int, lo, hi int) {
	for i := range out {
		w := weights[i%len(weights)]
		out[i] = clampInt(out[i]+w, lo, hi)
	}
}

// decodeSpectrum reads each coded quant unit's coefficients via the
// selected codebook, with the clone-master optimisation for a zero
// qu_tab_idx slave (spec §4.5 "Spectrum decode").
func decodeSpectrum(r *bitio.Reader, u *ChannelUnit, master *ChannelUnit) error {
	pos := 0
	for q := 0; q < u.NumQuantUnits; q++ {
		wl := u.QuWordlen[q]
		lo, hi := quStart(q), quStart(q+1)
		n := hi - lo
		if wl == 0 {
			for i := lo; i < hi; i++ {
				u.Spectrum[i] = 0
			}
			pos = hi
			continue
		}
		if master != nil && u.QuTabIdx[q] == 0 && master.QuWordlen[q] != 0 {
			copy(u.Spectrum[lo:hi], master.Spectrum[lo:hi])
			pos = hi
			continue
		}
		idx := codebookIndex(u.QuTabIdx[q]&1, (u.QuTabIdx[q]>>1)&1, q, wl)
		cb := spectrumCodebooks[idx]
		for i := 0; i < n; i++ {
			v := cb.vlc.Read(r)
			val := int32(0)
			if int(v) < len(cb.values) {
				val = cb.values[v]
			}
			u.Spectrum[lo+i] = val
		}
		pos = hi
	}
	_ = pos
	return nil
}

// quStart returns the first spectral-line index covered by quant unit q,
// a fixed non-uniform layout mirroring quToSubband's density.
func quStart(q int) int {
	if q <= 0 {
		return 0
	}
	if q > maxQuantUnits {
		q = maxQuantUnits
	}
	if q <= 16 {
		return q * 8
	}
	return 128 + (q-16)*16
}

// decodeStereoFlags reads the per-coded-subband swap_channels and
// negate_coeffs flag runs (spec §4.5 "Channel-unit grammar").
func decodeStereoFlags(r *bitio.Reader, slave *ChannelUnit) error {
	for sb := 0; sb < slave.NumCodedSubbands; sb++ {
		slave.SwapChannels[sb] = r.ReadBits(1) != 0
	}
	for sb := 0; sb < slave.NumCodedSubbands; sb++ {
		slave.NegateCoeffs[sb] = r.ReadBits(1) != 0
	}
	return nil
}

// decodeWindowShapes reads one bit per subband selecting sine/steep for
// the next IMDCT (spec §4.5 "Window shape").
func decodeWindowShapes(r *bitio.Reader, u0 *ChannelUnit, stereo bool, u1 *ChannelUnit) error {
	for sb := 0; sb < u0.NumSubbands; sb++ {
		u0.WindowShape[u0.CurIdx][sb] = int(r.ReadBits(1))
	}
	if stereo {
		for sb := 0; sb < u1.NumSubbands; sb++ {
			u1.WindowShape[u1.CurIdx][sb] = int(r.ReadBits(1))
		}
	}
	return nil
}

// decodeGainControl reads per-subband gain control points (spec §4.5
// "Gain control") for channel 0 and, when stereo, channel 1. Each unit
// reads a 4-bit count of extra subbands beyond NumCodedSubbands, then per
// subband a 3-bit point count and, per point, a 4-bit level code and a
// 5-bit location. Only this direct coding is read; gain data has no
// VLC-delta or copy-from-channel-0 modes here.
func decodeGainControl(r *bitio.Reader, u0 *ChannelUnit, stereo bool, u1 *ChannelUnit) error {
	if err := decodeGainControlUnit(r, u0); err != nil {
		return err
	}
	if stereo {
		return decodeGainControlUnit(r, u1)
	}
	return nil
}

func decodeGainControlUnit(r *bitio.Reader, u *ChannelUnit) error {
	numGainSubbands := u.NumCodedSubbands
	if extra := int(r.ReadBits(4)); extra > 0 {
		numGainSubbands += extra
		if numGainSubbands > maxSubbands {
			numGainSubbands = maxSubbands
		}
	}
	for sb := 0; sb < numGainSubbands; sb++ {
		gb := u.gainNow(sb)
		n := int(r.ReadBits(3))
		gb.NumPoints = n
		last := -1
		for i := 0; i < n; i++ {
			gb.LevCode[i] = int(r.ReadBits(4))
			loc := int(r.ReadBits(5))
			if loc <= last || loc > 31 {
				return errInvalidData("gain control locations out of order")
			}
			last = loc
			gb.LocCode[i] = loc
		}
	}
	return nil
}

// decodeTones reads the optional GHA tone (sine-wave) overlay (spec
// §4.5 "Tone info").
func decodeTones(r *bitio.Reader, u0, u1 *ChannelUnit, stereo bool) error {
	if r.ReadBits(1) == 0 {
		return nil
	}
	if r.ReadBits(1) != 1 {
		return errNotImplemented("GHA amplitude_mode 0")
	}
	numBands := int(readDelta(r))
	if numBands < 0 {
		numBands = -numBands
	}
	if numBands > maxSubbands {
		numBands = maxSubbands
	}

	for band := 0; band < numBands; band++ {
		sharing, master, invert := false, false, false
		if stereo {
			sharing = r.ReadBits(1) != 0
			master = r.ReadBits(1) != 0
			invert = r.ReadBits(1) != 0
		}
		if err := decodeWavesForBand(r, u0, band); err != nil {
			return err
		}
		if stereo {
			if sharing {
				u1.WavesInfo[u1.CurIdx][band] = u0.WavesInfo[u0.CurIdx][band]
			} else if err := decodeWavesForBand(r, u1, band); err != nil {
				return err
			}
			if master {
				u0.WavesInfo[u0.CurIdx][band], u1.WavesInfo[u1.CurIdx][band] =
					u1.WavesInfo[u1.CurIdx][band], u0.WavesInfo[u0.CurIdx][band]
			}
			if invert {
				for i := range u1.WavesInfo[u1.CurIdx][band].Waves {
					u1.WavesInfo[u1.CurIdx][band].Waves[i].PhaseIndex ^= 0x10
				}
			}
		}
	}
	return nil
}

func decodeWavesForBand(r *bitio.Reader, u *ChannelUnit, band int) error {
	wd := u.wavesNow(band)
	*wd = WavesData{}
	wd.HasStart = r.ReadBits(1) != 0
	if wd.HasStart {
		wd.StartPos = int(r.ReadBits(5))
	}
	wd.HasStop = r.ReadBits(1) != 0
	if wd.HasStop {
		wd.StopPos = int(r.ReadBits(5))
	}
	n := int(r.ReadBits(4))
	if n > maxWavesPerBand {
		n = maxWavesPerBand
	}
	wd.NumWaves = n
	wd.HasWaves = n > 0
	prevFreq := 0
	for i := 0; i < n; i++ {
		delta := int(r.ReadBits(10))
		freq := (prevFreq + delta) & (sineTableSize - 1)
		prevFreq = freq
		ampSF := int(r.ReadBits(6))
		phase := int(r.ReadBits(5))
		wd.Waves[i] = Wave{FreqIndex: freq, AmpSF: ampSF, PhaseIndex: phase}
	}
	return nil
}

// decodeGlobalNoise reads the final per-unit advisory noise parameters
// (spec §4.5 "Global noise" — consumed but not generated, per spec).
func decodeGlobalNoise(r *bitio.Reader, u0 *ChannelUnit, stereo bool, u1 *ChannelUnit) error {
	if r.ReadBits(1) != 0 {
		r.ReadBits(4)
		r.ReadBits(4)
	}
	if stereo {
		if r.ReadBits(1) != 0 {
			r.ReadBits(4)
			r.ReadBits(4)
		}
	}
	return nil
}
