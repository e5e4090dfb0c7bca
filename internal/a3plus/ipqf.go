package a3plus

// ipqfSynthesize runs the 16-band inverse polyphase quadrature filter
// (spec §4.5 step 6): per 128-sample hop, the per-subband time-domain
// samples are re-expanded via a 32-point IDCT-IV into 16 values, pushed
// into a history ring, and convolved against two 12-tap coefficient
// banks to produce 16 full-rate output samples per hop (2048 total).
//
// Ported from: ipqf() in the ATRAC3+ reference decoder family (FFmpeg's
// libavcodec/atrac3plus.c), simplified per spec §9's note that the
// modular ring is a plain `(pos+n) mod 23` in spirit even where the
// reference avoids the operator via a lookup table.
func ipqfSynthesize(u *ChannelUnit, subband *[maxSubbands][subbandSamples]float32, out []float32) {
	if len(out) != SamplesPerFrame {
		panic("a3plus: ipqf output buffer size mismatch")
	}

	for hop := 0; hop < subbandSamples; hop++ {
		var in, idctOut [maxSubbands]float32
		for sb := 0; sb < maxSubbands; sb++ {
			in[sb] = subband[sb][hop]
		}
		idct32.IMDCTHalf(in[:], idctOut[:])

		u.IPQFPos = mod23(u.IPQFPos, 1)
		for j := 0; j < maxSubbands; j++ {
			u.IPQFRing[u.IPQFPos][j] = idctOut[j]
		}

		var sum [maxSubbands]float32
		for t := 0; t < ipqfTaps; t++ {
			ringPos := mod23(u.IPQFPos, ipqfRingSize-t)
			for j := 0; j < maxSubbands; j++ {
				v := u.IPQFRing[ringPos][j]
				sum[j] += v*ipqfCoeffs1[t][j] + v*ipqfCoeffs2[t][j]
			}
		}

		copy(out[hop*maxSubbands:(hop+1)*maxSubbands], sum[:])
	}
}
