package a3plus

import "math"

func pow2f(e float64) float32   { return float32(math.Exp2(e)) }
func sin2pi(phase float64) float64 { return math.Sin(2 * math.Pi * phase) }
func cos2pi(phase float64) float64 { return math.Cos(2 * math.Pi * phase) }
func pi() float64               { return math.Pi }
func sin(v float64) float64     { return math.Sin(v) }
func cos(v float64) float64     { return math.Cos(v) }
