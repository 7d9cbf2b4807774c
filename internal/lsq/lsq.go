// Package lsq implements bounded nonlinear least squares via a damped
// Gauss-Newton (Levenberg-Marquardt) iteration with a hard iteration
// budget.
//
// The solver is deliberately small: model functions in this module have at
// most four parameters and a few dozen data points, so a dense normal
// equation solve per iteration is cheap. Box bounds are enforced by
// projecting each candidate step back into the feasible region.
package lsq

import (
	"errors"
	"fmt"
	"math"
)

// Problem describes a curve-fitting problem: minimize the sum of squared
// residuals of F over the (Xs, Ys) samples with respect to the parameters.
type Problem struct {
	// F evaluates the model at x for the given parameter vector.
	F func(params []float64, x float64) float64
	// Xs and Ys hold the observed samples; both must have the same length.
	Xs []float64
	Ys []float64
	// Lower and Upper are optional box bounds on the parameters. A nil
	// slice means unbounded on that side; individual entries may be
	// -Inf/+Inf.
	Lower []float64
	Upper []float64
}

// Config bounds the solver's work.
type Config struct {
	// MaxIterations is the hard budget of outer iterations. Each outer
	// iteration evaluates one Jacobian.
	MaxIterations int
	// Tolerance is the relative reduction in the sum of squared errors
	// below which the iteration is considered converged.
	Tolerance float64
}

// Solution is the solver outcome. Converged is false when the iteration
// budget ran out before the tolerance was met; Params then holds the best
// point found so far.
type Solution struct {
	Params     []float64
	SSE        float64
	Iterations int
	Converged  bool
}

const (
	fdStep     = 1e-7  // relative finite-difference step for the Jacobian
	minLambda  = 1e-12 // damping floor
	maxLambda  = 1e12  // damping ceiling; beyond this the step is numerically dead
	maxRetries = 16    // damping increases tried per outer iteration
)

// Solve runs the damped least-squares iteration from the given initial
// parameter vector.
//
// Returns an error only for structurally invalid problems (mismatched
// lengths, empty data, fewer points than parameters). Failure to converge
// is not an error here; callers inspect Solution.Converged and surface
// their own convergence failure type.
func Solve(p Problem, init []float64, cfg Config) (Solution, error) {
	n := len(p.Xs)
	np := len(init)

	if p.F == nil {
		return Solution{}, errors.New("no model function given")
	}
	if n == 0 || n != len(p.Ys) {
		return Solution{}, fmt.Errorf("invalid sample count: %d xs vs %d ys", n, len(p.Ys))
	}
	if np == 0 {
		return Solution{}, errors.New("no parameters to fit")
	}
	if n < np {
		return Solution{}, fmt.Errorf("need at least %d points to fit %d parameters, got %d", np, np, n)
	}
	if p.Lower != nil && len(p.Lower) != np {
		return Solution{}, fmt.Errorf("lower bounds length %d does not match %d parameters", len(p.Lower), np)
	}
	if p.Upper != nil && len(p.Upper) != np {
		return Solution{}, fmt.Errorf("upper bounds length %d does not match %d parameters", len(p.Upper), np)
	}

	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = 200
	}
	if cfg.Tolerance <= 0 {
		cfg.Tolerance = 1e-10
	}

	params := make([]float64, np)
	copy(params, init)
	project(params, p.Lower, p.Upper)

	sse := sumSquares(p, params)
	lambda := 1e-3

	residuals := make([]float64, n)
	jac := make([][]float64, n)
	for i := range jac {
		jac[i] = make([]float64, np)
	}

	iter := 0
	for ; iter < cfg.MaxIterations; iter++ {
		computeResiduals(p, params, residuals)
		computeJacobian(p, params, jac)

		// Normal equations: (J^T J + lambda*diag(J^T J)) delta = -J^T r
		jtj := make([][]float64, np)
		jtr := make([]float64, np)
		for j := range np {
			jtj[j] = make([]float64, np)
			for k := range np {
				s := 0.0
				for i := range n {
					s += jac[i][j] * jac[i][k]
				}
				jtj[j][k] = s
			}
			s := 0.0
			for i := range n {
				s += jac[i][j] * residuals[i]
			}
			jtr[j] = -s
		}

		improved := false
		for range maxRetries {
			a := make([][]float64, np)
			for j := range np {
				a[j] = make([]float64, np)
				copy(a[j], jtj[j])
				damp := lambda * jtj[j][j]
				if damp == 0 {
					damp = lambda
				}
				a[j][j] += damp
			}

			delta, ok := solveLinear(a, jtr)
			if !ok {
				lambda = math.Min(lambda*4, maxLambda)
				continue
			}

			trial := make([]float64, np)
			for j := range np {
				trial[j] = params[j] + delta[j]
			}
			project(trial, p.Lower, p.Upper)

			trialSSE := sumSquares(p, trial)
			if trialSSE < sse && !math.IsNaN(trialSSE) {
				relDrop := (sse - trialSSE) / math.Max(sse, cfg.Tolerance)
				copy(params, trial)
				sse = trialSSE
				lambda = math.Max(lambda*0.5, minLambda)
				improved = true

				if relDrop < cfg.Tolerance {
					return Solution{Params: params, SSE: sse, Iterations: iter + 1, Converged: true}, nil
				}

				break
			}

			lambda = math.Min(lambda*4, maxLambda)
			if lambda >= maxLambda {
				break
			}
		}

		if !improved {
			// No damping level produced a downhill step: the iteration is
			// stationary. Treat a tiny gradient as convergence.
			g := 0.0
			for _, v := range jtr {
				g += v * v
			}
			if g < cfg.Tolerance {
				return Solution{Params: params, SSE: sse, Iterations: iter + 1, Converged: true}, nil
			}

			return Solution{Params: params, SSE: sse, Iterations: iter + 1, Converged: false}, nil
		}
	}

	return Solution{Params: params, SSE: sse, Iterations: iter, Converged: false}, nil
}

func sumSquares(p Problem, params []float64) float64 {
	sse := 0.0
	for i := range p.Xs {
		r := p.F(params, p.Xs[i]) - p.Ys[i]
		sse += r * r
	}

	return sse
}

func computeResiduals(p Problem, params []float64, out []float64) {
	for i := range p.Xs {
		out[i] = p.F(params, p.Xs[i]) - p.Ys[i]
	}
}

// computeJacobian fills jac with central-difference partial derivatives of
// the model with respect to each parameter.
func computeJacobian(p Problem, params []float64, jac [][]float64) {
	np := len(params)
	perturbed := make([]float64, np)

	for j := range np {
		h := fdStep * math.Max(math.Abs(params[j]), 1.0)

		copy(perturbed, params)
		perturbed[j] = params[j] + h
		for i := range p.Xs {
			jac[i][j] = p.F(perturbed, p.Xs[i])
		}

		perturbed[j] = params[j] - h
		for i := range p.Xs {
			jac[i][j] = (jac[i][j] - p.F(perturbed, p.Xs[i])) / (2 * h)
		}
	}
}

// project clamps params into the box [lower, upper] in place.
func project(params, lower, upper []float64) {
	for j := range params {
		if lower != nil && params[j] < lower[j] {
			params[j] = lower[j]
		}
		if upper != nil && params[j] > upper[j] {
			params[j] = upper[j]
		}
	}
}

// solveLinear solves a*x = b by Gaussian elimination with partial pivoting.
// Returns false when the matrix is singular to working precision.
func solveLinear(a [][]float64, b []float64) ([]float64, bool) {
	n := len(b)
	// Augment in place on copies.
	m := make([][]float64, n)
	for i := range n {
		m[i] = make([]float64, n+1)
		copy(m[i], a[i])
		m[i][n] = b[i]
	}

	for col := range n {
		pivot := col
		for row := col + 1; row < n; row++ {
			if math.Abs(m[row][col]) > math.Abs(m[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(m[pivot][col]) < 1e-300 {
			return nil, false
		}
		m[col], m[pivot] = m[pivot], m[col]

		for row := col + 1; row < n; row++ {
			f := m[row][col] / m[col][col]
			for k := col; k <= n; k++ {
				m[row][k] -= f * m[col][k]
			}
		}
	}

	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		s := m[i][n]
		for k := i + 1; k < n; k++ {
			s -= m[i][k] * x[k]
		}
		x[i] = s / m[i][i]
	}

	return x, true
}
