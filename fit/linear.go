package fit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fitkit/fitkit/dataset"
	"github.com/fitkit/fitkit/format"
	"github.com/fitkit/fitkit/stat"
)

// ElementaryCharge is the exact SI elementary charge in coulombs, used to
// convert the photoelectric slope h/e into Planck's constant.
const ElementaryCharge = 1.602176634e-19

// mapLinearErr converts stat.LinearFit failures into the typed taxonomy.
func mapLinearErr(err error) error {
	switch {
	case errors.Is(err, stat.ErrInsufficientData):
		return &ValidationError{Reason: "need at least 2 data points for a line fit"}
	case errors.Is(err, stat.ErrDegenerateX):
		return &DegenerateDataError{Reason: "all x-values are identical; a vertical line cannot be fitted"}
	default:
		return err
	}
}

// fitStraightLine fits y = m*x + c by ordinary least squares.
//
// R² is the plain linear coefficient of determination. Fails with
// DegenerateDataError when all x-values coincide.
func fitStraightLine(mode format.Mode, ds *dataset.Dataset, _ Config) (*Result, error) {
	xs, ys := ds.XY()

	slope, intercept, r2, err := stat.LinearFit(xs, ys)
	if err != nil {
		return nil, mapLinearErr(err)
	}

	return &Result{
		Equation: formatLine("y", "x", slope, intercept),
		Description: fmt.Sprintf(
			"Fitted a straight line (y = mx + c) using least-squares regression. R² = %s.", formatR2(r2)),
		RSquared: r2,
		Params: map[string]float64{
			"slope":     slope,
			"intercept": intercept,
		},
		Evaluator: NewLineEvaluator(mode, slope, intercept),
	}, nil
}

// fitPolarization fits the optical-rotation law theta = [a]*l*c as a
// general least-squares line of rotation angle against concentration. The
// intercept is reported for reference but the physical model passes
// through the origin, so the description de-emphasizes it.
func fitPolarization(mode format.Mode, ds *dataset.Dataset, _ Config) (*Result, error) {
	xs, ys := ds.XY()

	slope, intercept, r2, err := stat.LinearFit(xs, ys)
	if err != nil {
		return nil, mapLinearErr(err)
	}

	return &Result{
		Equation: formatLine("θ", "·c", slope, intercept),
		Description: fmt.Sprintf(
			"Fitted optical rotation θ = [α]·l·c by least-squares regression; "+
				"the slope is the specific rotation times the path length. "+
				"The intercept %.4f is retained for reference only. R² = %s.",
			intercept, formatR2(r2)),
		RSquared: r2,
		Params: map[string]float64{
			"slope":     slope,
			"intercept": intercept,
		},
		Evaluator: NewLineEvaluator(mode, slope, intercept),
	}, nil
}

// fitNewtonsRings fits r² = 4Rλ·m + c, with the caller supplying ring
// radii already squared in the y column.
func fitNewtonsRings(mode format.Mode, ds *dataset.Dataset, _ Config) (*Result, error) {
	xs, ys := ds.XY()

	slope, intercept, r2, err := stat.LinearFit(xs, ys)
	if err != nil {
		return nil, mapLinearErr(err)
	}

	rLambda := slope / 4

	return &Result{
		Equation: formatLineG("r²", "·m", slope, intercept),
		Description: fmt.Sprintf(
			"Fitted Newton's rings r² = 4Rλ·m by least-squares regression; "+
				"slope/4 gives Rλ = %.4g. R² = %s.", rLambda, formatR2(r2)),
		RSquared: r2,
		Params: map[string]float64{
			"slope":     slope,
			"intercept": intercept,
			"r_lambda":  rLambda,
		},
		Evaluator: NewLineEvaluator(mode, slope, intercept),
	}, nil
}

// fitPlanck fits the photoelectric stopping-voltage law V0 = (h/e)·ν − φ/e
// and derives Planck's constant from the slope using the exact elementary
// charge. The work function is the negated intercept in electron volts.
func fitPlanck(mode format.Mode, ds *dataset.Dataset, _ Config) (*Result, error) {
	xs, ys := ds.XY()

	slope, intercept, r2, err := stat.LinearFit(xs, ys)
	if err != nil {
		return nil, mapLinearErr(err)
	}

	planck := slope * ElementaryCharge
	workFunctionEV := -intercept

	return &Result{
		Equation: formatLineG("V₀", "·ν", slope, intercept),
		Description: fmt.Sprintf(
			"Fitted V₀ = (h/e)·ν − φ/e by least-squares regression. "+
				"Slope·e gives h ≈ %.4g J·s; work function φ ≈ %.4g eV. R² = %s.",
			planck, workFunctionEV, formatR2(r2)),
		RSquared: r2,
		Params: map[string]float64{
			"slope":            slope,
			"intercept":        intercept,
			"plancks_constant": planck,
			"work_function_ev": workFunctionEV,
		},
		Evaluator: NewLineEvaluator(mode, slope, intercept),
	}, nil
}

// fitWaves fits wavelength against inverse frequency; the slope is the
// wave speed.
//
// Two row shapes are accepted: 2-column rows (frequency, wavelength) fit a
// single series (sound waves in a tube), and 3-column rows
// (tension, frequency, wavelength) fit one line per tension group (waves
// on a rope), requiring exactly 3 groups.
func fitWaves(_ format.Mode, ds *dataset.Dataset, _ Config) (*Result, error) {
	groups := ds.Groups()

	if ds.Width() == 3 && len(groups) != 3 {
		return nil, degenerateErrf("waves mode with tension groups expects exactly 3 groups, got %d", len(groups))
	}

	grouped := ds.Width() == 3

	series := make([]Series, 0, len(groups))
	params := make(map[string]float64)
	var equations []string
	var observed, predicted []float64

	for i, g := range groups {
		if len(g.Xs) < 2 {
			return nil, degenerateErrf("tension group %s has %d points, need at least 2", g.Label, len(g.Xs))
		}

		inv := make([]float64, len(g.Xs))
		for j, nu := range g.Xs {
			if nu == 0 {
				return nil, degenerateErrf("frequency 0 cannot be inverted (group %s)", g.Label)
			}
			inv[j] = 1.0 / nu
		}

		speed, intercept, r2, err := stat.LinearFit(inv, g.Ys)
		if err != nil {
			return nil, mapLinearErr(err)
		}

		ev := &InverseLineEvaluator{Slope: speed, Intercept: intercept}
		eq := formatLine("λ", "·(1/ν)", speed, intercept)
		if grouped {
			eq = fmt.Sprintf("T=%s: %s", g.Label, eq)
			params[fmt.Sprintf("speed_%d", i+1)] = speed
			params[fmt.Sprintf("intercept_%d", i+1)] = intercept
		} else {
			params["speed"] = speed
			params["intercept"] = intercept
		}
		equations = append(equations, eq)

		series = append(series, Series{
			Key:       g.Key,
			Label:     g.Label,
			N:         len(g.Xs),
			RSquared:  r2,
			Params:    map[string]float64{"speed": speed, "intercept": intercept},
			Evaluator: ev,
		})

		for j := range g.Xs {
			observed = append(observed, g.Ys[j])
			predicted = append(predicted, ev.Evaluate(g.Xs[j]))
		}
	}

	pooled := stat.RSquared(observed, predicted)

	res := &Result{
		Equation: strings.Join(equations, "; "),
		Description: fmt.Sprintf(
			"Fitted wavelength against inverse frequency (λ = v/ν); "+
				"the slope of each line is the wave speed. R² = %s.", formatR2(pooled)),
		RSquared: pooled,
		Params:   params,
	}

	if grouped {
		res.Series = series
	} else {
		res.Evaluator = series[0].Evaluator
	}

	return res, nil
}
