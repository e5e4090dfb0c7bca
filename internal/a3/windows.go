package a3

import "math"

// mdctWindowSize is the length of the fixed per-stream MDCT windowing
// table applied after each 512-point IMDCT (spec §4.4 step 6).
const mdctWindowSize = 512

var mdctWindow [mdctWindowSize]float32

func init() {
	var w [256]float64
	for i := 0; i < 256; i++ {
		w[i] = math.Sin(math.Pi*((float64(i)+0.5)/256-0.5)) + 1
	}
	for i := 0; i < 256; i++ {
		wi := w[i]
		wMirror := w[255-i]
		v := wi / (0.5 * (wi*wi + wMirror*wMirror))
		mdctWindow[i] = float32(v)
		mdctWindow[mdctWindowSize-1-i] = float32(v)
	}
}
