package fit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cmcRows builds surface-tension points on two lines meeting at x = 1:
// gamma = -5x + 10 below the breakpoint, gamma = -0.5x + 5.5 above it.
func cmcRows() [][]float64 {
	var rows [][]float64
	for _, x := range []float64{0.2, 0.4, 0.6, 0.8, 1.0} {
		rows = append(rows, []float64{x, -5*x + 10})
	}
	for _, x := range []float64{1.2, 1.4, 1.6, 1.8} {
		rows = append(rows, []float64{x, -0.5*x + 5.5})
	}

	return rows
}

func TestFitCMC(t *testing.T) {
	res, err := Fit("cmc", cmcRows())
	require.NoError(t, err)

	assert.InDelta(t, 1.0, res.Params["breakpoint"], 0.05)
	assert.InDelta(t, 5.0, res.Params["breakpoint_y"], 0.1)
	assert.InDelta(t, -5.0, res.Params["slope_pre"], 0.1)
	assert.InDelta(t, -0.5, res.Params["slope_post"], 0.1)
	assert.Greater(t, res.RSquared, 0.999)
	assert.Contains(t, res.Equation, "CMC")
}

func TestFitCMCEvaluatorFollowsBothSegments(t *testing.T) {
	res, err := Fit("cmc", cmcRows())
	require.NoError(t, err)
	require.NotNil(t, res.Evaluator)

	assert.InDelta(t, -5*0.5+10, res.Evaluator.Evaluate(0.5), 0.1)
	assert.InDelta(t, -0.5*1.5+5.5, res.Evaluator.Evaluate(1.5), 0.1)
}

// Rows are accepted in any order; the fitter sorts by concentration.
func TestFitCMCUnsortedInput(t *testing.T) {
	rows := cmcRows()
	rows[0], rows[len(rows)-1] = rows[len(rows)-1], rows[0]
	rows[2], rows[5] = rows[5], rows[2]

	res, err := Fit("cmc", rows)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, res.Params["breakpoint"], 0.05)
}

func TestFitCMCTooFewPoints(t *testing.T) {
	_, err := Fit("cmc", [][]float64{{0.2, 9}, {0.4, 8}, {0.6, 7}})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestFitCMCDegenerateX(t *testing.T) {
	_, err := Fit("cmc", [][]float64{{1, 9}, {1, 8}, {1, 7}, {1, 6}})
	require.Error(t, err)
	assert.True(t, IsDegenerate(err))
}

func TestPiecewiseModelContinuity(t *testing.T) {
	p := []float64{-5, 10, -0.5, 1.0}
	left := piecewiseModel(p, 1.0-1e-9)
	right := piecewiseModel(p, 1.0)
	assert.InDelta(t, left, right, 1e-6)
}
