package fit

import (
	"fmt"

	"github.com/fitkit/fitkit/format"
)

// ValidationError reports structurally malformed input: wrong row width,
// too few points, an unknown mode, or a non-numeric cell. The caller must
// correct and re-submit the data; the request is never retried internally.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid fit input: " + e.Reason
}

// DegenerateDataError reports input that passed structural validation but
// is numerically unfit for the chosen model, such as all-identical
// x-values, non-positive values feeding a log transform, or a wrong group
// count.
type DegenerateDataError struct {
	Reason string
}

func (e *DegenerateDataError) Error() string {
	return "degenerate data: " + e.Reason
}

// ConvergenceError reports that a nonlinear solver exhausted its iteration
// budget without meeting tolerance. It is distinct from ValidationError so
// callers can suggest collecting different data rather than fixing the
// input format.
type ConvergenceError struct {
	Mode       format.Mode
	Iterations int
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("%s: solver did not converge within %d iterations", e.Mode, e.Iterations)
}

func validationErrf(msg string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(msg, args...)}
}

func degenerateErrf(msg string, args ...any) *DegenerateDataError {
	return &DegenerateDataError{Reason: fmt.Sprintf(msg, args...)}
}
