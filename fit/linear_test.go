package fit

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitkit/fitkit/format"
)

func TestFitStraightLine(t *testing.T) {
	res, err := Fit("straight-line", [][]float64{{1, 2}, {2, 4}, {3, 6}})
	require.NoError(t, err)

	assert.Equal(t, format.ModeStraightLine, res.Mode)
	assert.InDelta(t, 2.0, res.Params["slope"], 1e-12)
	assert.InDelta(t, 0.0, res.Params["intercept"], 1e-12)
	assert.InDelta(t, 1.0, res.RSquared, 1e-12)
	assert.Equal(t, "y = 2.0000x + 0.0000", res.Equation)
	assert.NotEmpty(t, res.Description)
	assert.NotZero(t, res.Fingerprint)

	require.NotNil(t, res.Evaluator)
	assert.InDelta(t, 3.0, res.Evaluator.Evaluate(1.5), 1e-12)
	assert.Equal(t, format.ModeStraightLine, res.Evaluator.Mode())
}

func TestFitStraightLineNoisy(t *testing.T) {
	rows := [][]float64{
		{0.0, 1.1}, {1.0, 2.9}, {2.0, 5.2}, {3.0, 6.8}, {4.0, 9.1},
	}
	res, err := Fit("straight-line", rows)
	require.NoError(t, err)

	assert.InDelta(t, 2.0, res.Params["slope"], 0.1)
	assert.InDelta(t, 1.0, res.Params["intercept"], 0.2)
	assert.Greater(t, res.RSquared, 0.99)
}

// Shifting every y by a constant must leave the goodness of fit unchanged.
func TestFitStraightLineShiftInvariance(t *testing.T) {
	base := [][]float64{
		{0.0, 1.1}, {1.0, 2.9}, {2.0, 5.2}, {3.0, 6.8}, {4.0, 9.1},
	}
	shifted := make([][]float64, len(base))
	for i, row := range base {
		shifted[i] = []float64{row[0], row[1] + 100}
	}

	r1, err := Fit("straight-line", base)
	require.NoError(t, err)
	r2, err := Fit("straight-line", shifted)
	require.NoError(t, err)

	assert.InDelta(t, r1.RSquared, r2.RSquared, 1e-9)
	assert.InDelta(t, r1.Params["slope"], r2.Params["slope"], 1e-9)
	assert.InDelta(t, r1.Params["intercept"]+100, r2.Params["intercept"], 1e-9)
}

func TestFitStraightLineDegenerateX(t *testing.T) {
	_, err := Fit("straight-line", [][]float64{{2, 1}, {2, 2}, {2, 3}})
	require.Error(t, err)
	assert.True(t, IsDegenerate(err))
	assert.False(t, IsValidation(err))
}

func TestFitStraightLineTwoPoints(t *testing.T) {
	res, err := Fit("straight-line", [][]float64{{0, 1}, {2, 5}})
	require.NoError(t, err)

	assert.InDelta(t, 2.0, res.Params["slope"], 1e-12)
	assert.InDelta(t, 1.0, res.Params["intercept"], 1e-12)
	assert.InDelta(t, 1.0, res.RSquared, 1e-12)
}

func TestFitPolarization(t *testing.T) {
	// theta = 6.6 * c with a small offset.
	rows := [][]float64{
		{0.05, 0.35}, {0.10, 0.68}, {0.15, 1.00}, {0.20, 1.31}, {0.25, 1.66},
	}
	res, err := Fit("polarization", rows)
	require.NoError(t, err)

	assert.Equal(t, format.ModePolarization, res.Mode)
	assert.InDelta(t, 6.5, res.Params["slope"], 0.3)
	assert.Greater(t, res.RSquared, 0.99)
	assert.Contains(t, res.Description, "rotation")
}

func TestFitNewtonsRings(t *testing.T) {
	// r² = 4Rλ·m with 4Rλ = 2.4e-9.
	rows := make([][]float64, 0, 8)
	for m := 1; m <= 8; m++ {
		rows = append(rows, []float64{float64(m), 2.4e-9 * float64(m)})
	}
	res, err := Fit("newtons-rings", rows)
	require.NoError(t, err)

	assert.InDelta(t, 2.4e-9, res.Params["slope"], 1e-12)
	assert.InDelta(t, 6e-10, res.Params["r_lambda"], 1e-12)
	assert.InDelta(t, 1.0, res.RSquared, 1e-9)
}

func TestFitPlanck(t *testing.T) {
	// V0 = (h/e)·ν − φ/e with the true h and φ = 2 eV.
	hOverE := 6.62607015e-34 / ElementaryCharge
	rows := make([][]float64, 0, 5)
	for _, nu := range []float64{5.5e14, 6.0e14, 6.5e14, 7.0e14, 7.5e14} {
		rows = append(rows, []float64{nu, hOverE*nu - 2.0})
	}
	res, err := Fit("photoelectric-1-2", rows)
	require.NoError(t, err)

	assert.InDelta(t, 6.626e-34, res.Params["plancks_constant"], 1e-36)
	assert.InDelta(t, 2.0, res.Params["work_function_ev"], 1e-6)
	assert.Greater(t, res.RSquared, 0.9999)
}

func TestFitWavesSound(t *testing.T) {
	// lambda = v/nu with v = 340 m/s; rows are (frequency, wavelength).
	rows := make([][]float64, 0, 6)
	for _, nu := range []float64{200, 300, 400, 500, 600, 700} {
		rows = append(rows, []float64{nu, 340.0 / nu})
	}
	res, err := Fit("waves", rows)
	require.NoError(t, err)

	assert.InDelta(t, 340.0, res.Params["speed"], 1e-6)
	assert.InDelta(t, 0.0, res.Params["intercept"], 1e-6)
	assert.InDelta(t, 1.0, res.RSquared, 1e-9)
	require.NotNil(t, res.Evaluator)
	assert.Nil(t, res.Series)
	// The evaluator works over the measured frequency axis.
	assert.InDelta(t, 1.0, res.Evaluator.Evaluate(340), 1e-6)
}

func TestFitWavesRope(t *testing.T) {
	// Three tension groups, each a clean lambda = v/nu line.
	speeds := []float64{20, 30, 40}
	var rows [][]float64
	for gi, v := range speeds {
		for _, nu := range []float64{10, 20, 30, 40} {
			rows = append(rows, []float64{float64(gi + 1), nu, v / nu})
		}
	}
	res, err := Fit("waves", rows)
	require.NoError(t, err)

	require.Len(t, res.Series, 3)
	for i, v := range speeds {
		assert.InDelta(t, v, res.Series[i].Params["speed"], 1e-6)
		assert.InDelta(t, v, res.Params[fmt.Sprintf("speed_%d", i+1)], 1e-6)
		assert.False(t, res.Series[i].Skipped)
	}
	assert.Greater(t, res.RSquared, 0.999)
	assert.Nil(t, res.Evaluator)
}

func TestFitWavesRopeWrongGroupCount(t *testing.T) {
	rows := [][]float64{
		{1, 10, 2.0}, {1, 20, 1.0},
		{2, 10, 3.0}, {2, 20, 1.5},
	}
	_, err := Fit("waves", rows)
	require.Error(t, err)
	assert.True(t, IsDegenerate(err))
	assert.Contains(t, err.Error(), "3 groups")
}

func TestFitWavesZeroFrequency(t *testing.T) {
	_, err := Fit("waves", [][]float64{{0, 1}, {100, 3.4}, {200, 1.7}})
	require.Error(t, err)
	assert.True(t, IsDegenerate(err))
}

// The coefficients printed in the equation string parse back to the fitted
// parameters within display precision.
func TestEquationCoefficientRoundTrip(t *testing.T) {
	res, err := Fit("straight-line", [][]float64{{0, 1.05}, {1, 3.02}, {2, 4.9}, {3, 7.1}})
	require.NoError(t, err)

	var slope, intercept float64
	var sign string
	_, err = fmt.Sscanf(res.Equation, "y = %fx %s %f", &slope, &sign, &intercept)
	require.NoError(t, err)
	if sign == "-" {
		intercept = -intercept
	}

	assert.InDelta(t, res.Params["slope"], slope, 1e-4)
	assert.InDelta(t, res.Params["intercept"], intercept, 1e-4)
}

func TestFormatLine(t *testing.T) {
	assert.Equal(t, "y = 2.0000x + 0.0000", formatLine("y", "x", 2, 0))
	assert.Equal(t, "y = -1.5000x - 3.2500", formatLine("y", "x", -1.5, -3.25))
	assert.False(t, math.Signbit(abs(-0.0)))
}

func TestFormatR2(t *testing.T) {
	assert.Equal(t, "0.987654", formatR2(0.987654))
	assert.Equal(t, "1.000000", formatR2(1))
	assert.Equal(t, "undefined", formatR2(math.NaN()))
}
