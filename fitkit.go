// Package fitkit is a stateless curve-fitting engine for physics and
// chemistry experiment data.
//
// It fits a fixed catalog of parametric models (straight lines, broken
// lines, exponential envelopes, diffraction and resonance profiles) to
// small measurement tables and returns the fitted parameters, a
// human-readable equation, the coefficient of determination, and an
// evaluator for sampling the fitted curve.
//
// The engine is organized into focused subpackages:
//
//   - fit: the fitting engine and its result and error types
//   - curve: fitted-model sampling and binary payload codec
//   - compress: compression codecs for curve payloads
//   - dataset: measurement table validation and grouping
//   - stat: shared regression and goodness-of-fit primitives
//   - format: mode identifiers and payload type tags
//
// This package re-exports the common entry points so simple callers need
// only one import:
//
//	res, crv, err := fitkit.FitAndSample("straight-line", rows, 0)
package fitkit

import (
	"github.com/fitkit/fitkit/curve"
	"github.com/fitkit/fitkit/fit"
	"github.com/fitkit/fitkit/format"
)

// Fit fits the named model to the given rows. See fit.Fit.
func Fit(mode string, rows [][]float64, opts ...fit.Option) (*fit.Result, error) {
	return fit.Fit(mode, rows, opts...)
}

// Modes lists the supported mode identifiers.
func Modes() []format.Mode {
	return format.Modes()
}

// FitAndSample fits the named model and samples the fitted curve across
// the observed x-range for plotting.
//
// The returned curve is nil for multi-series results; those carry one
// evaluator per series, and callers sample each via curve.Sample with the
// range of its own group.
//
// Parameters:
//   - mode: Mode identifier string
//   - rows: The point set, one []float64 per row
//   - samples: Grid size for the sampled curve, 0 for curve.DefaultSamples
//   - opts: Optional fit configuration
//
// Returns:
//   - *fit.Result: The fit outcome
//   - *curve.Curve: The sampled curve, or nil for multi-series results
//   - error: Any fit or sampling failure
func FitAndSample(mode string, rows [][]float64, samples int, opts ...fit.Option) (*fit.Result, *curve.Curve, error) {
	res, err := fit.Fit(mode, rows, opts...)
	if err != nil {
		return nil, nil, err
	}
	if res.Evaluator == nil {
		return res, nil, nil
	}

	xmin, xmax := observedRange(rows)
	if xmin >= xmax {
		// A single distinct x cannot span a plot; the fitters reject this
		// for every mode that reaches here, so this is unreachable in
		// practice, but a degenerate range must not fail the fit itself.
		return res, nil, nil
	}

	crv, err := curve.Sample(res.Evaluator, xmin, xmax, samples)
	if err != nil {
		return nil, nil, err
	}

	return res, crv, nil
}

// observedRange finds the min and max of the x column. The x column is
// the second-to-last value of each row, which holds for both plain (x, y)
// rows and grouped (g, x, y) rows.
func observedRange(rows [][]float64) (xmin, xmax float64) {
	first := true
	for _, row := range rows {
		x := row[len(row)-2]
		if first {
			xmin, xmax = x, x
			first = false
			continue
		}
		if x < xmin {
			xmin = x
		}
		if x > xmax {
			xmax = x
		}
	}

	return xmin, xmax
}
