package fit

import (
	"errors"
	"fmt"

	"github.com/fitkit/fitkit/dataset"
	"github.com/fitkit/fitkit/format"
	"github.com/fitkit/fitkit/internal/options"
)

// arity describes the row widths a mode accepts.
type arity uint8

const (
	// arityPair requires exactly 2 columns per row.
	arityPair arity = iota
	// arityGrouped accepts 2 columns (single unnamed group) or 3 columns
	// with the group key in the first column.
	arityGrouped
)

// fitterFunc is a pure fitting routine. It receives a structurally
// validated dataset and must never be invoked with invalid input.
type fitterFunc func(mode format.Mode, ds *dataset.Dataset, cfg Config) (*Result, error)

// registration binds a mode to its expected shape and fitter. The table
// below is the single seam for adding a new experiment type.
type registration struct {
	arity     arity
	minPoints int
	fitter    fitterFunc
}

var registry = map[format.Mode]registration{
	format.ModeStraightLine:     {arity: arityPair, minPoints: 2, fitter: fitStraightLine},
	format.ModeCMC:              {arity: arityPair, minPoints: 4, fitter: fitCMC},
	format.ModePhotoelectricVI:  {arity: arityGrouped, minPoints: 2, fitter: fitGroupedLinear},
	format.ModePhotoelectricH:   {arity: arityPair, minPoints: 2, fitter: fitPlanck},
	format.ModePhotoelectricVI3: {arity: arityGrouped, minPoints: 2, fitter: fitGroupedLinear},
	format.ModeSingleSlit:       {arity: arityPair, minPoints: 4, fitter: fitSingleSlit},
	format.ModeNewtonsRings:     {arity: arityPair, minPoints: 2, fitter: fitNewtonsRings},
	format.ModePohlsDamped:      {arity: arityGrouped, minPoints: 2, fitter: fitDampedEnvelope},
	format.ModePohlsForced:      {arity: arityGrouped, minPoints: 4, fitter: fitForcedResonance},
	format.ModePolarization:     {arity: arityPair, minPoints: 2, fitter: fitPolarization},
	format.ModeWaves:            {arity: arityGrouped, minPoints: 2, fitter: fitWaves},
}

// Fit validates the point set for the named mode and invokes the matching
// fitter.
//
// Validation order: configuration options, known mode, table structure
// (non-empty, uniform finite rows), row width for the mode's arity, and
// minimum row count, all before any numeric work. Structural problems
// surface as *ValidationError; numerically degenerate input as
// *DegenerateDataError; a nonlinear solver running out of budget as
// *ConvergenceError.
//
// Parameters:
//   - mode: Mode identifier string (see format.Modes)
//   - rows: The point set, one []float64 per row. Standard modes take
//     exactly (x, y) rows; multi-series modes take (x, y) or
//     (group, x, y). Wider rows are rejected: every fitter consumes one
//     y-channel, so extra columns would be silently ignored data.
//   - opts: Optional configuration (WithColumns, WithMaxIterations, ...)
//
// Returns:
//   - *Result: The normalized fit result
//   - error: One of the typed failures above, or an option error
func Fit(mode string, rows [][]float64, opts ...Option) (*Result, error) {
	cfg := defaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, fmt.Errorf("invalid fit option: %w", err)
	}

	m, known := format.ModeFromString(mode)
	if !known {
		return nil, validationErrf("unknown fitting mode: %q", mode)
	}
	reg := registry[m]

	ds, err := dataset.New(rows, cfg.Columns)
	if err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}

	switch reg.arity {
	case arityPair:
		if ds.Width() != 2 {
			return nil, validationErrf("mode %s expects exactly 2 values per row, got %d", m, ds.Width())
		}
	case arityGrouped:
		if ds.Width() > 3 {
			return nil, validationErrf("mode %s expects 2 or 3 values per row, got %d", m, ds.Width())
		}
	}

	if ds.Len() < reg.minPoints {
		return nil, validationErrf("mode %s needs at least %d data points, got %d", m, reg.minPoints, ds.Len())
	}

	res, err := reg.fitter(m, ds, cfg)
	if err != nil {
		return nil, err
	}

	res.Mode = m
	res.Fingerprint = ds.Fingerprint()

	return res, nil
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsDegenerate reports whether err is a DegenerateDataError.
func IsDegenerate(err error) bool {
	var de *DegenerateDataError
	return errors.As(err, &de)
}

// IsConvergence reports whether err is a ConvergenceError.
func IsConvergence(err error) bool {
	var ce *ConvergenceError
	return errors.As(err, &ce)
}
