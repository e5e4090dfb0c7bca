// Package dsp implements the signal-processing building blocks shared by
// the ATRAC3 and ATRAC3+ frame decoders: the scalefactor dequantisation
// table, the 48-tap QMF synthesis window and its iqmf combiner, and the
// piecewise gain-compensation/overlap-add engine.
//
// Adapted from: the shared "ATRAC common" helpers used by both codec
// variants in the reference decoder family (FFmpeg's
// libavcodec/atrac.c), factored into its own package the way go-aac
// factors shared numeric tables into internal/tables.
package dsp

import "math"

// ScaleFactorCount is the number of entries in the scalefactor table.
const ScaleFactorCount = 64

// ScaleFactors holds sf[i] = 2^((i-15)/3), built once at package init.
var ScaleFactors [ScaleFactorCount]float32

func init() {
	for i := 0; i < ScaleFactorCount; i++ {
		ScaleFactors[i] = float32(math.Pow(2, (float64(i)-15)/3))
	}
}
