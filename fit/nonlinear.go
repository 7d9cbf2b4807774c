package fit

import (
	"fmt"
	"math"
	"strings"

	"github.com/fitkit/fitkit/dataset"
	"github.com/fitkit/fitkit/format"
	"github.com/fitkit/fitkit/internal/lsq"
	"github.com/fitkit/fitkit/stat"
)

// sincSquaredModel evaluates I(x) = peak * sinc²(width*(x-center)) with
// sinc(z) = sin(z)/z and sinc(0) = 1. Parameters: [peak, width, center].
func sincSquaredModel(p []float64, x float64) float64 {
	peak, width, center := p[0], p[1], p[2]
	z := width * (x - center)
	if z == 0 {
		return peak
	}
	s := math.Sin(z) / z

	return peak * s * s
}

// resonanceModel evaluates the forced-oscillation amplitude
// A(w) = drive / sqrt((omega0²-w²)² + (2*damping*w)²).
// Parameters: [drive, omega0, damping].
func resonanceModel(p []float64, w float64) float64 {
	drive, omega0, damping := p[0], p[1], p[2]
	d1 := omega0*omega0 - w*w
	d2 := 2 * damping * w
	den := math.Sqrt(d1*d1 + d2*d2)
	if den == 0 {
		return math.Inf(1)
	}

	return drive / den
}

// allEqual reports whether every value in ys equals the first one.
func allEqual(ys []float64) bool {
	for _, y := range ys[1:] {
		if y != ys[0] {
			return false
		}
	}

	return true
}

// fitSingleSlit fits the single-slit diffraction intensity profile
// I(θ) = I₀·sinc²(b·(θ−θc)).
//
// The solver is seeded from the data: I₀ from the peak intensity, θc from
// the peak position, and b from the distance to the first intensity
// minimum beside the peak (the first zero of sinc falls at b·Δθ = π).
// Budget exhaustion fails with ConvergenceError. R² is computed against
// the observed intensities.
func fitSingleSlit(mode format.Mode, ds *dataset.Dataset, cfg Config) (*Result, error) {
	xs, ys := ds.XYSorted()
	n := len(xs)

	if xs[0] == xs[n-1] {
		return nil, degenerateErrf("all angle values are identical")
	}

	peakIdx := 0
	for i := range ys {
		if ys[i] > ys[peakIdx] {
			peakIdx = i
		}
	}
	peak := ys[peakIdx]
	center := xs[peakIdx]
	if peak <= 0 {
		return nil, degenerateErrf("peak intensity %g is not positive", peak)
	}
	if allEqual(ys) {
		return nil, degenerateErrf("all intensity values are identical, no diffraction pattern to fit")
	}

	width := seedSincWidth(xs, ys, peakIdx)

	sol, err := lsq.Solve(lsq.Problem{
		F:     sincSquaredModel,
		Xs:    xs,
		Ys:    ys,
		Lower: []float64{0, 1e-12, xs[0]},
		Upper: []float64{10 * peak, math.Inf(1), xs[n-1]},
	}, []float64{peak, width, center}, lsq.Config{
		MaxIterations: cfg.MaxIterations,
		Tolerance:     cfg.Tolerance,
	})
	if err != nil {
		return nil, degenerateErrf("diffraction fit not solvable: %s", err)
	}
	if !sol.Converged {
		return nil, &ConvergenceError{Mode: mode, Iterations: sol.Iterations}
	}

	ev := &SincEvaluator{Peak: sol.Params[0], Width: sol.Params[1], Center: sol.Params[2]}

	predicted := make([]float64, n)
	for i := range xs {
		predicted[i] = ev.Evaluate(xs[i])
	}
	r2 := stat.RSquared(ys, predicted)

	return &Result{
		Equation: fmt.Sprintf("I(θ) = %.4g·sinc²(%.4g·(θ − %.4g))", ev.Peak, ev.Width, ev.Center),
		Description: fmt.Sprintf(
			"Fitted the single-slit diffraction profile I(θ) = I₀·sinc²(b·(θ−θc)) by "+
				"bounded nonlinear least squares seeded from the observed peak and first minimum. "+
				"R² = %s.", formatR2(r2)),
		RSquared: r2,
		Params: map[string]float64{
			"peak_intensity": ev.Peak,
			"width_factor":   ev.Width,
			"center":         ev.Center,
		},
		Evaluator: ev,
	}, nil
}

// seedSincWidth estimates the sinc width factor from the distance between
// the peak and the first local intensity minimum on either side. Falls
// back to placing the first zero a quarter of the x-range from the peak.
func seedSincWidth(xs, ys []float64, peakIdx int) float64 {
	threshold := 0.1 * ys[peakIdx]

	// Nearest low-intensity point right of the peak.
	for i := peakIdx + 1; i < len(xs); i++ {
		if ys[i] <= threshold && xs[i] != xs[peakIdx] {
			return math.Pi / (xs[i] - xs[peakIdx])
		}
	}
	// Then left of it.
	for i := peakIdx - 1; i >= 0; i-- {
		if ys[i] <= threshold && xs[i] != xs[peakIdx] {
			return math.Pi / (xs[peakIdx] - xs[i])
		}
	}

	span := xs[len(xs)-1] - xs[0]

	return math.Pi / (span / 4)
}

// fitForcedResonance fits the forced-oscillation resonance curve
// A(ω) = F₀ / sqrt((ω₀²−ω²)² + (2δω)²) per damping group.
//
// Seeds per group: ω₀ and the amplitude from the observed peak, δ from
// the half-power width of the peak, F₀ = A_max·2δω₀. Angular frequency is
// taken as given in the x column. A group with fewer than 4 points is
// skipped with a warning; solver budget exhaustion in any fitted group
// fails the whole fit with ConvergenceError, the same policy as the
// diffraction fitter.
func fitForcedResonance(mode format.Mode, ds *dataset.Dataset, cfg Config) (*Result, error) {
	groups := ds.Groups()
	grouped := ds.Width() == 3

	series := make([]Series, 0, len(groups))
	params := make(map[string]float64)
	var warnings []string
	var equations []string
	var observed, predicted []float64

	fitted := 0
	for i, g := range groups {
		s := Series{Key: g.Key, Label: g.Label, N: len(g.Xs)}

		if len(g.Xs) < 4 {
			if !grouped {
				return nil, validationErrf("resonance fit needs at least 4 points, got %d", len(g.Xs))
			}
			s.Skipped = true
			warnings = append(warnings, fmt.Sprintf("series %s skipped: fewer than 4 points", seriesName(g, i)))
			series = append(series, s)
			continue
		}

		xs := append([]float64(nil), g.Xs...)
		ys := append([]float64(nil), g.Ys...)
		dataset.SortPairs(xs, ys)

		ev, sol, err := solveResonance(xs, ys, cfg)
		if err != nil {
			return nil, err
		}
		if !sol.Converged {
			return nil, &ConvergenceError{Mode: mode, Iterations: sol.Iterations}
		}

		groupPred := make([]float64, len(xs))
		for j := range xs {
			groupPred[j] = ev.Evaluate(xs[j])
		}
		s.RSquared = stat.RSquared(ys, groupPred)
		s.Params = map[string]float64{
			"drive_amplitude": ev.Drive,
			"resonance_omega": ev.Omega0,
			"damping":         ev.Damping,
		}
		s.Evaluator = ev
		series = append(series, s)

		eq := fmt.Sprintf("A(ω) = %.4g/√((%.4g²−ω²)² + (2·%.4g·ω)²)", ev.Drive, ev.Omega0, ev.Damping)
		if grouped {
			eq = fmt.Sprintf("%s: %s", seriesName(g, i), eq)
			params[fmt.Sprintf("drive_amplitude_%d", i+1)] = ev.Drive
			params[fmt.Sprintf("resonance_omega_%d", i+1)] = ev.Omega0
			params[fmt.Sprintf("damping_%d", i+1)] = ev.Damping
		} else {
			params["drive_amplitude"] = ev.Drive
			params["resonance_omega"] = ev.Omega0
			params["damping"] = ev.Damping
		}
		equations = append(equations, eq)

		observed = append(observed, ys...)
		predicted = append(predicted, groupPred...)
		fitted++
	}

	if fitted == 0 {
		return nil, degenerateErrf("no series with enough points to fit a resonance curve")
	}

	pooled := stat.RSquared(observed, predicted)

	res := &Result{
		Equation: strings.Join(equations, "; "),
		Description: fmt.Sprintf(
			"Fitted the forced-resonance amplitude curve A(ω) = F₀/√((ω₀²−ω²)² + (2δω)²) by "+
				"bounded nonlinear least squares seeded from the observed peak. R² = %s.", formatR2(pooled)),
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

// solveResonance seeds and solves the resonance model for one series.
func solveResonance(xs, ys []float64, cfg Config) (*ResonanceEvaluator, lsq.Solution, error) {
	peakIdx := 0
	for i := range ys {
		if ys[i] > ys[peakIdx] {
			peakIdx = i
		}
	}
	aMax := ys[peakIdx]
	omega0 := xs[peakIdx]
	if aMax <= 0 || omega0 <= 0 {
		return nil, lsq.Solution{}, degenerateErrf(
			"resonance peak requires positive amplitude and frequency, got A=%g at ω=%g", aMax, omega0)
	}
	if allEqual(ys) {
		return nil, lsq.Solution{}, degenerateErrf("all amplitude values are identical, no resonance peak to fit")
	}

	damping := seedDamping(xs, ys, peakIdx)
	drive := aMax * 2 * damping * omega0

	sol, err := lsq.Solve(lsq.Problem{
		F:     resonanceModel,
		Xs:    xs,
		Ys:    ys,
		Lower: []float64{1e-300, xs[0], 1e-300},
		Upper: []float64{math.Inf(1), xs[len(xs)-1], math.Inf(1)},
	}, []float64{drive, omega0, damping}, lsq.Config{
		MaxIterations: cfg.MaxIterations,
		Tolerance:     cfg.Tolerance,
	})
	if err != nil {
		return nil, lsq.Solution{}, degenerateErrf("resonance fit not solvable: %s", err)
	}

	ev := &ResonanceEvaluator{Drive: sol.Params[0], Omega0: sol.Params[1], Damping: sol.Params[2]}

	return ev, sol, nil
}

// seedDamping estimates the damping coefficient from the half-power width
// of the resonance peak: the curve stays above A_max/√2 over a band of
// roughly 2δ around ω₀.
func seedDamping(xs, ys []float64, peakIdx int) float64 {
	half := ys[peakIdx] / math.Sqrt2

	lo := xs[peakIdx]
	for i := peakIdx - 1; i >= 0; i-- {
		if ys[i] < half {
			break
		}
		lo = xs[i]
	}
	hi := xs[peakIdx]
	for i := peakIdx + 1; i < len(xs); i++ {
		if ys[i] < half {
			break
		}
		hi = xs[i]
	}

	width := hi - lo
	if width <= 0 {
		width = (xs[len(xs)-1] - xs[0]) / 10
	}
	if width <= 0 {
		width = 1
	}

	return width / 2
}
