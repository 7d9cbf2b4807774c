package fitkit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitkit/fitkit"
	"github.com/fitkit/fitkit/curve"
	"github.com/fitkit/fitkit/fit"
	"github.com/fitkit/fitkit/format"
)

func TestFitForwards(t *testing.T) {
	res, err := fitkit.Fit("straight-line", [][]float64{{1, 2}, {2, 4}, {3, 6}})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, res.Params["slope"], 1e-12)
}

func TestModes(t *testing.T) {
	modes := fitkit.Modes()
	assert.Len(t, modes, 11)
	assert.Contains(t, modes, format.ModeStraightLine)
	assert.Contains(t, modes, format.ModeWaves)
}

func TestFitAndSample(t *testing.T) {
	res, crv, err := fitkit.FitAndSample("straight-line", [][]float64{{1, 2}, {2, 4}, {3, 6}}, 50)
	require.NoError(t, err)
	require.NotNil(t, crv)

	assert.Equal(t, 50, crv.Len())
	assert.Equal(t, 1.0, crv.Xs[0])
	assert.Equal(t, 3.0, crv.Xs[49])
	assert.InDelta(t, res.Evaluator.Evaluate(1), crv.Ys[0], 1e-12)
	assert.InDelta(t, 6.0, crv.Ys[49], 1e-9)
}

func TestFitAndSampleDefaultGrid(t *testing.T) {
	_, crv, err := fitkit.FitAndSample("straight-line", [][]float64{{0, 1}, {4, 9}}, 0)
	require.NoError(t, err)
	require.NotNil(t, crv)
	assert.Equal(t, curve.DefaultSamples, crv.Len())
}

func TestFitAndSampleMultiSeries(t *testing.T) {
	rows := [][]float64{
		{1, 0, 1}, {1, 1, 3}, {1, 2, 5},
		{2, 0, 2}, {2, 1, 6}, {2, 2, 10},
	}
	res, crv, err := fitkit.FitAndSample("photoelectric-1-1", rows, 0)
	require.NoError(t, err)

	assert.Nil(t, crv)
	require.Len(t, res.Series, 2)

	// Per-series sampling is the caller's job for grouped fits.
	c, err := curve.Sample(res.Series[0].Evaluator, 0, 2, 10)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, c.Ys[0], 1e-9)
}

func TestFitAndSamplePropagatesErrors(t *testing.T) {
	_, _, err := fitkit.FitAndSample("no-such-mode", [][]float64{{1, 2}, {2, 4}}, 0)
	require.Error(t, err)
	assert.True(t, fit.IsValidation(err))
}
