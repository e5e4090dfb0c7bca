package a3plus

import "math"

// sineFirst / sineSecond are the two halves of the standard MDCT sine
// window for a 256-point transform (128-sample half-length), spec §4.5
// step 3 "sine half".
var sineFirst [subbandSamples]float32
var sineSecond [subbandSamples]float32

// steepFirst / steepSecond are the "steep" window halves: 32 zeros + a
// 64-sample sine ramp + 32 ones (first half), mirrored for the second.
var steepFirst [subbandSamples]float32
var steepSecond [subbandSamples]float32

func init() {
	for i := 0; i < subbandSamples; i++ {
		sineFirst[i] = float32(math.Sin(math.Pi * (float64(i) + 0.5) / (2 * subbandSamples)))
	}
	for i := 0; i < subbandSamples; i++ {
		sineSecond[i] = sineFirst[subbandSamples-1-i]
	}
	for i := 0; i < 32; i++ {
		steepFirst[i] = 0
		steepFirst[subbandSamples-1-i] = 1
	}
	for i := 0; i < 64; i++ {
		steepFirst[32+i] = float32(math.Sin(math.Pi * (float64(i) + 0.5) / 128))
	}
	for i := 0; i < subbandSamples; i++ {
		steepSecond[i] = steepFirst[subbandSamples-1-i]
	}
}

func windowFirstHalf(shape int) *[subbandSamples]float32 {
	if shape == 0 {
		return &sineFirst
	}
	return &steepFirst
}

func windowSecondHalf(shape int) *[subbandSamples]float32 {
	if shape == 0 {
		return &sineSecond
	}
	return &steepSecond
}

// hannWindow256 is the 256-sample Hann window used to fade GHA tone
// region boundaries and cross-fade between frames (spec §4.5 step 5).
var hannWindow256 [256]float32

func init() {
	for i := range hannWindow256 {
		hannWindow256[i] = float32(0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/255))
	}
}
