package fit

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/fitkit/fitkit/dataset"
	"github.com/fitkit/fitkit/format"
	"github.com/fitkit/fitkit/stat"
)

// fitGroupedLinear fits one least-squares line per group for the
// photoelectric voltage-current experiments.
//
// Groups are the stable first-column partition of the dataset. A group
// with fewer than 2 points, or with all x-values identical, is skipped
// with a warning annotation instead of failing the whole fit; the fit
// fails with DegenerateDataError only when no group could be fitted.
// Result.RSquared pools observed and predicted values across all fitted
// groups.
func fitGroupedLinear(mode format.Mode, ds *dataset.Dataset, _ Config) (*Result, error) {
	groups := ds.Groups()

	series := make([]Series, 0, len(groups))
	params := make(map[string]float64)
	var warnings []string
	var equations []string
	var observed, predicted []float64

	fitted := 0
	for i, g := range groups {
		s := Series{Key: g.Key, Label: g.Label, N: len(g.Xs)}

		slope, intercept, r2, err := stat.LinearFit(g.Xs, g.Ys)
		if err != nil {
			s.Skipped = true
			warnings = append(warnings, fmt.Sprintf("series %s skipped: %s", seriesName(g, i), skipReason(err)))
			series = append(series, s)
			continue
		}

		ev := NewLineEvaluator(mode, slope, intercept)
		s.RSquared = r2
		s.Params = map[string]float64{"slope": slope, "intercept": intercept}
		s.Evaluator = ev
		series = append(series, s)

		params[fmt.Sprintf("slope_%d", i+1)] = slope
		params[fmt.Sprintf("intercept_%d", i+1)] = intercept
		equations = append(equations, fmt.Sprintf("%s: %s", seriesName(g, i), formatLine("I", "·V", slope, intercept)))

		for j := range g.Xs {
			observed = append(observed, g.Ys[j])
			predicted = append(predicted, ev.Evaluate(g.Xs[j]))
		}
		fitted++
	}

	if fitted == 0 {
		return nil, degenerateErrf("no series with enough distinct points to fit a line")
	}

	pooled := stat.RSquared(observed, predicted)

	res := &Result{
		Equation: strings.Join(equations, "; "),
		Description: fmt.Sprintf(
			"Fitted %d of %d voltage-current series independently by least-squares regression. R² = %s.",
			fitted, len(groups), formatR2(pooled)),
		RSquared: pooled,
		Params:   params,
		Series:   series,
		Warnings: warnings,
	}

	// A plain 2-column table is a single unnamed series; expose its
	// evaluator directly like the other single-series modes do.
	if ds.Width() == 2 {
		res.Evaluator = series[0].Evaluator
		res.Series = nil
		res.Params = map[string]float64{
			"slope":     series[0].Params["slope"],
			"intercept": series[0].Params["intercept"],
		}
	}

	return res, nil
}

// fitDampedEnvelope fits the damped-oscillation envelope
// theta(t) = theta0 * e^(-delta*t) by log-linearizing to
// ln(theta) = ln(theta0) - delta*t and running least squares.
//
// Every amplitude must be strictly positive before the log transform; a
// non-positive value anywhere fails the whole fit with
// DegenerateDataError so a complex or NaN decay constant can never be
// produced silently. R² is computed against the original amplitudes, not
// the log-space proxy.
//
// Grouped rows (damping current in the first column) fit one envelope per
// group, with the short-group skip policy of the other multi-series modes.
func fitDampedEnvelope(mode format.Mode, ds *dataset.Dataset, _ Config) (*Result, error) {
	groups := ds.Groups()
	grouped := ds.Width() == 3

	for _, g := range groups {
		for _, theta := range g.Ys {
			if theta <= 0 {
				return nil, degenerateErrf(
					"amplitude %g is not positive; the exponential envelope requires θ > 0", theta)
			}
		}
	}

	series := make([]Series, 0, len(groups))
	params := make(map[string]float64)
	var warnings []string
	var equations []string
	var observed, predicted []float64

	fitted := 0
	for i, g := range groups {
		s := Series{Key: g.Key, Label: g.Label, N: len(g.Xs)}

		logTheta := make([]float64, len(g.Ys))
		for j, theta := range g.Ys {
			logTheta[j] = math.Log(theta)
		}

		slope, logAmp, _, err := stat.LinearFit(g.Xs, logTheta)
		if err != nil {
			if !grouped {
				return nil, mapLinearErr(err)
			}
			s.Skipped = true
			warnings = append(warnings, fmt.Sprintf("series %s skipped: %s", seriesName(g, i), skipReason(err)))
			series = append(series, s)
			continue
		}

		decay := -slope
		amplitude := math.Exp(logAmp)
		ev := &ExpDecayEvaluator{Amplitude: amplitude, Decay: decay}

		groupPred := make([]float64, len(g.Xs))
		for j, t := range g.Xs {
			groupPred[j] = ev.Evaluate(t)
		}
		s.RSquared = stat.RSquared(g.Ys, groupPred)
		s.Params = map[string]float64{"amplitude": amplitude, "decay_constant": decay}
		s.Evaluator = ev
		series = append(series, s)

		eq := fmt.Sprintf("θ(t) = %.4f·e^(-%.4f·t)", amplitude, decay)
		if grouped {
			eq = fmt.Sprintf("%s: %s", seriesName(g, i), eq)
			params[fmt.Sprintf("amplitude_%d", i+1)] = amplitude
			params[fmt.Sprintf("decay_constant_%d", i+1)] = decay
		} else {
			params["amplitude"] = amplitude
			params["decay_constant"] = decay
		}
		equations = append(equations, eq)

		observed = append(observed, g.Ys...)
		predicted = append(predicted, groupPred...)
		fitted++
	}

	if fitted == 0 {
		return nil, degenerateErrf("no series with enough points to fit an envelope")
	}

	pooled := stat.RSquared(observed, predicted)

	res := &Result{
		Equation: strings.Join(equations, "; "),
		Description: fmt.Sprintf(
			"Fitted the damped-oscillation envelope θ(t) = θ₀·e^(−δt) by "+
				"log-linearized least squares; R² is computed against the "+
				"untransformed amplitudes. R² = %s.", formatR2(pooled)),
		RSquared: pooled,
		Params:   params,
		Warnings: warnings,
	}

	if grouped {
		res.Series = series
	} else {
		res.Evaluator = series[0].Evaluator
	}

	return res, nil
}

// seriesName names a group for equations and warnings: its label when the
// dataset is grouped, otherwise its 1-based position.
func seriesName(g dataset.Group, i int) string {
	if g.Label != "" {
		return g.Label
	}

	return fmt.Sprintf("series %d", i+1)
}

// skipReason renders a short cause for a skipped group.
func skipReason(err error) string {
	switch {
	case errors.Is(err, stat.ErrInsufficientData):
		return "fewer than 2 points"
	case errors.Is(err, stat.ErrDegenerateX):
		return "all x-values identical"
	default:
		return err.Error()
	}
}
