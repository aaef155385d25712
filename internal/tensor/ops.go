package tensor

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// minNorm bounds norms from below in CosineSimilarity.
const minNorm = 1e-8

func widen(x []float32) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = float64(v)
	}
	return out
}

// Dot computes the dot product of a and b in float64 precision.
func Dot(a, b []float32) float32 {
	if len(a) != len(b) {
		panic("Dot: length mismatch")
	}
	return float32(floats.Dot(widen(a), widen(b)))
}

// L2 returns the Euclidean norm of x.
func L2(x []float32) float32 {
	return float32(floats.Norm(widen(x), 2))
}

// CosineSimilarity returns a·b / (|a| |b|) with both norms clamped to at
// least 1e-8, so an all-zero input yields 0 rather than NaN.
func CosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) {
		panic("CosineSimilarity: length mismatch")
	}
	wa, wb := widen(a), widen(b)
	na := math.Max(floats.Norm(wa, 2), minNorm)
	nb := math.Max(floats.Norm(wb, 2), minNorm)
	return float32(floats.Dot(wa, wb) / (na * nb))
}
