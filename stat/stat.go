// Package stat provides the small set of numeric primitives every fitter
// depends on: ordinary least squares, the coefficient of determination,
// and evenly spaced sampling.
package stat

import (
	"errors"
	"math"
)

// ErrInsufficientData is returned when a regression receives fewer points
// than the closed-form solution needs.
var ErrInsufficientData = errors.New("insufficient data for regression")

// ErrDegenerateX is returned when all x-values coincide and the normal
// equations have no unique solution (a vertical line).
var ErrDegenerateX = errors.New("all x-values are identical")

// LinearFit fits y = slope*x + intercept by ordinary least squares using
// the normal equations.
//
// Parameters:
//   - xs: Independent variable values
//   - ys: Dependent variable values (same length as xs)
//
// Returns:
//   - slope: Fitted slope minimizing the sum of squared residuals
//   - intercept: Fitted intercept
//   - r2: Coefficient of determination of the fit (see RSquared)
//   - err: ErrInsufficientData when fewer than 2 points are given,
//     ErrDegenerateX when all x-values are identical
//
// The degenerate vertical case is detected explicitly rather than allowed
// to divide by zero.
func LinearFit(xs, ys []float64) (slope, intercept, r2 float64, err error) {
	n := len(xs)
	if n != len(ys) {
		return 0, 0, 0, errors.New("mismatched data lengths")
	}
	if n < 2 {
		return 0, 0, 0, ErrInsufficientData
	}

	var sumX, sumY, sumXY, sumX2 float64
	for i := range n {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumX2 += xs[i] * xs[i]
	}

	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	// Sxx = sum((x - meanX)^2); zero means every x is identical.
	sxx := sumX2 - float64(n)*meanX*meanX
	if sxx == 0 {
		return 0, 0, 0, ErrDegenerateX
	}

	slope = (sumXY - float64(n)*meanX*meanY) / sxx
	intercept = meanY - slope*meanX

	predicted := make([]float64, n)
	for i := range n {
		predicted[i] = slope*xs[i] + intercept
	}
	r2 = RSquared(ys, predicted)

	return slope, intercept, r2, nil
}

// RSquared calculates the coefficient of determination.
//
// Formula: R2 = 1 - (SS_res / SS_tot)
//   - SS_res: Sum of squared residuals (observed - predicted)^2
//   - SS_tot: Total sum of squares (observed - mean)^2
//
// When SS_tot is zero (all observed values identical) the result is 1.0 if
// the residuals are also zero, and NaN otherwise. Callers must special-case
// the NaN before embedding the value in display strings.
//
// Parameters:
//   - observed: Actual values from the data
//   - predicted: Values predicted by the model
//
// Returns:
//   - float64: R2 value (may exceed [0, 1] bounds for nonlinear models)
func RSquared(observed, predicted []float64) float64 {
	if len(observed) == 0 || len(observed) != len(predicted) {
		return math.NaN()
	}

	mean := Mean(observed)
	ssTot := 0.0
	ssRes := 0.0
	for i := range observed {
		ssTot += (observed[i] - mean) * (observed[i] - mean)
		ssRes += (observed[i] - predicted[i]) * (observed[i] - predicted[i])
	}

	if ssTot == 0 {
		if ssRes == 0 {
			return 1.0
		}

		return math.NaN()
	}

	return 1.0 - (ssRes / ssTot)
}

// Mean calculates the arithmetic mean of values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}
