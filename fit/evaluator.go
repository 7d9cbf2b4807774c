package fit

import (
	"math"

	"github.com/fitkit/fitkit/format"
)

// Evaluator re-evaluates a fitted model at arbitrary x. The plotting
// collaborator samples an Evaluator over a linspace to draw the smooth
// fitted curve without knowing which fitter produced it.
type Evaluator interface {
	// Evaluate returns the model value at x.
	Evaluate(x float64) float64
	// Mode returns the mode the model was fitted under.
	Mode() format.Mode
	// Params returns the fitted parameters in model-specific order.
	Params() []float64
}

// LineEvaluator evaluates y = slope*x + intercept.
type LineEvaluator struct {
	Slope     float64
	Intercept float64
	mode      format.Mode
}

var _ Evaluator = (*LineEvaluator)(nil)

// NewLineEvaluator creates a line evaluator tagged with the given mode.
func NewLineEvaluator(mode format.Mode, slope, intercept float64) *LineEvaluator {
	return &LineEvaluator{Slope: slope, Intercept: intercept, mode: mode}
}

func (e *LineEvaluator) Evaluate(x float64) float64 {
	return e.Slope*x + e.Intercept
}

func (e *LineEvaluator) Mode() format.Mode { return e.mode }

func (e *LineEvaluator) Params() []float64 {
	return []float64{e.Slope, e.Intercept}
}

// BreakpointEvaluator evaluates two joined line segments meeting at
// Breakpoint: the pre-segment line left of it, the post-segment line from
// it onward.
type BreakpointEvaluator struct {
	PreSlope      float64
	PreIntercept  float64
	PostSlope     float64
	PostIntercept float64
	Breakpoint    float64
}

var _ Evaluator = (*BreakpointEvaluator)(nil)

func (e *BreakpointEvaluator) Evaluate(x float64) float64 {
	if x < e.Breakpoint {
		return e.PreSlope*x + e.PreIntercept
	}

	return e.PostSlope*x + e.PostIntercept
}

func (e *BreakpointEvaluator) Mode() format.Mode { return format.ModeCMC }

func (e *BreakpointEvaluator) Params() []float64 {
	return []float64{e.PreSlope, e.PreIntercept, e.PostSlope, e.PostIntercept, e.Breakpoint}
}

// ExpDecayEvaluator evaluates the damped-oscillation envelope
// theta(t) = Amplitude * e^(-Decay*t).
type ExpDecayEvaluator struct {
	Amplitude float64
	Decay     float64
}

var _ Evaluator = (*ExpDecayEvaluator)(nil)

func (e *ExpDecayEvaluator) Evaluate(t float64) float64 {
	return e.Amplitude * math.Exp(-e.Decay*t)
}

func (e *ExpDecayEvaluator) Mode() format.Mode { return format.ModePohlsDamped }

func (e *ExpDecayEvaluator) Params() []float64 {
	return []float64{e.Amplitude, e.Decay}
}

// InverseLineEvaluator evaluates y = Slope/x + Intercept, the dispersion
// law lambda = v/nu expressed over the measured frequency axis. Evaluate
// takes the frequency itself, not its reciprocal, so sampling this
// evaluator over the observed x-range draws the correct hyperbola.
type InverseLineEvaluator struct {
	Slope     float64
	Intercept float64
}

var _ Evaluator = (*InverseLineEvaluator)(nil)

func (e *InverseLineEvaluator) Evaluate(x float64) float64 {
	if x == 0 {
		return math.Inf(1)
	}

	return e.Slope/x + e.Intercept
}

func (e *InverseLineEvaluator) Mode() format.Mode { return format.ModeWaves }

func (e *InverseLineEvaluator) Params() []float64 {
	return []float64{e.Slope, e.Intercept}
}

// SincEvaluator evaluates the single-slit diffraction intensity profile
// I(x) = Peak * sinc²(Width*(x-Center)), with sinc(z) = sin(z)/z.
type SincEvaluator struct {
	Peak   float64
	Width  float64
	Center float64
}

var _ Evaluator = (*SincEvaluator)(nil)

func (e *SincEvaluator) Evaluate(x float64) float64 {
	return sincSquaredModel([]float64{e.Peak, e.Width, e.Center}, x)
}

func (e *SincEvaluator) Mode() format.Mode { return format.ModeSingleSlit }

func (e *SincEvaluator) Params() []float64 {
	return []float64{e.Peak, e.Width, e.Center}
}

// ResonanceEvaluator evaluates the forced-resonance amplitude curve
// A(w) = Drive / sqrt((Omega0²-w²)² + (2*Damping*w)²).
type ResonanceEvaluator struct {
	Drive   float64
	Omega0  float64
	Damping float64
}

var _ Evaluator = (*ResonanceEvaluator)(nil)

func (e *ResonanceEvaluator) Evaluate(w float64) float64 {
	return resonanceModel([]float64{e.Drive, e.Omega0, e.Damping}, w)
}

func (e *ResonanceEvaluator) Mode() format.Mode { return format.ModePohlsForced }

func (e *ResonanceEvaluator) Params() []float64 {
	return []float64{e.Drive, e.Omega0, e.Damping}
}
