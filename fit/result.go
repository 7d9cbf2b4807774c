package fit

import (
	"fmt"
	"math"

	"github.com/fitkit/fitkit/format"
)

// Result is the normalized output every fitter produces.
//
// The contract toward the plotting collaborator: Equation and Description
// are always non-empty, RSquared is always present, and every numeric
// value the plot needs is available under a role-namespaced key in Params.
// A Result is immutable once produced and has no lifecycle beyond the
// single fit call.
type Result struct {
	// Mode is the identifier of the fitter that produced this result.
	Mode format.Mode
	// Equation is the human-readable fitted equation.
	Equation string
	// Description is prose describing the model, including the numeric R².
	Description string
	// RSquared is the coefficient of determination against the original,
	// untransformed y-values. It may exceed [0, 1] for nonlinear models.
	RSquared float64
	// Params holds the fitted numeric parameters under role-namespaced
	// keys (slope, intercept, breakpoint, decay_constant, ...). Grouped
	// fits suffix keys with the 1-based group index.
	Params map[string]float64
	// Series holds per-group results for multi-series modes, in stable
	// first-seen group order. Empty for single-series modes.
	Series []Series
	// Warnings lists non-fatal conditions, such as a group skipped for
	// having too few points.
	Warnings []string
	// Fingerprint is the xxHash64 of the submitted point set, for
	// correlating this result with its input.
	Fingerprint uint64
	// Evaluator re-evaluates the fitted model at arbitrary x so the
	// plotting collaborator can sample a smooth curve. For multi-series
	// modes it is nil and each Series carries its own.
	Evaluator Evaluator
}

// Series is the outcome for one group of a multi-series fit.
type Series struct {
	// Key is the group key from the dataset's first column.
	Key float64
	// Label is the display label for the group.
	Label string
	// N is the number of points in the group.
	N int
	// Skipped reports whether the group was left unfitted (too few
	// points); the reason appears in Result.Warnings.
	Skipped bool
	// RSquared is the group's own coefficient of determination.
	RSquared float64
	// Params holds the group's fitted parameters.
	Params map[string]float64
	// Evaluator re-evaluates the group's fitted curve. Nil when Skipped.
	Evaluator Evaluator
}

// String returns a short summary of the result.
func (r *Result) String() string {
	return fmt.Sprintf("Result{Mode: %s, R²: %s, Equation: %s}", r.Mode, formatR2(r.RSquared), r.Equation)
}

// formatR2 renders the coefficient of determination for display strings.
// An undefined value (constant observations with nonzero residuals, see
// stat.RSquared) renders as "undefined"; NaN never reaches a description.
func formatR2(r2 float64) string {
	if math.IsNaN(r2) {
		return "undefined"
	}

	return fmt.Sprintf("%.6f", r2)
}

// formatLine renders "lhs = m·rhs + c" with an explicit sign on the
// intercept, e.g. "y = 2.0000x + 0.0000".
func formatLine(lhs, rhs string, slope, intercept float64) string {
	sign := "+"
	if intercept < 0 {
		sign = "-"
	}

	return fmt.Sprintf("%s = %.4f%s %s %.4f", lhs, slope, rhs, sign, abs(intercept))
}

// formatLineG is formatLine with %.4g verbs for quantities spanning many
// orders of magnitude (frequencies, physical constants).
func formatLineG(lhs, rhs string, slope, intercept float64) string {
	sign := "+"
	if intercept < 0 {
		sign = "-"
	}

	return fmt.Sprintf("%s = %.4g%s %s %.4g", lhs, slope, rhs, sign, abs(intercept))
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}

	return v
}
