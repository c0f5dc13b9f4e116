package util

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// minMass is the smallest sum that is still scaled; anything below it
// (zero, underflow, NaN) is treated as a degenerate distribution.
const minMass = 1e-300

// NormalizeVector scales x in place to sum to 1. If the sum is not
// positive and finite, x is overwritten with the uniform distribution
// and false is returned.
func NormalizeVector(x []float64) bool {
	if len(x) == 0 {
		return true
	}
	sum := floats.Sum(x)
	if Degenerate(sum) {
		for i := range x {
			x[i] = 1 / float64(len(x))
		}
		return false
	}
	floats.Scale(1/sum, x)
	return true
}

// Degenerate reports whether sum cannot be used as a normalisation
// divisor.
func Degenerate(sum float64) bool {
	return !(sum >= minMass) || math.IsInf(sum, 0)
}

// NormalizeRows normalizes every row of m in place and returns the
// indices of the rows that fell back to uniform.
func NormalizeRows(m *mat.Dense) []int {
	var degenerate []int
	r, _ := m.Dims()
	for i := 0; i < r; i += 1 {
		if !NormalizeVector(m.RawRowView(i)) {
			degenerate = append(degenerate, i)
		}
	}
	return degenerate
}

// RowSums returns the sum of every row of m.
func RowSums(m *mat.Dense) []float64 {
	r, _ := m.Dims()
	sums := make([]float64, r)
	for i := range sums {
		sums[i] = floats.Sum(m.RawRowView(i))
	}
	return sums
}
