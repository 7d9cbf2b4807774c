package fit

import (
	"fmt"

	"github.com/fitkit/fitkit/internal/options"
)

// Config holds per-call fitting configuration. The zero value is replaced
// by defaults in Fit; all fields only affect the nonlinear fitters.
type Config struct {
	// MaxIterations is the hard iteration budget of the nonlinear solver.
	MaxIterations int
	// Tolerance is the relative SSE reduction treated as converged.
	Tolerance float64
	// Columns are optional column labels matching the row width.
	Columns []string
}

func defaultConfig() Config {
	return Config{
		MaxIterations: 200,
		Tolerance:     1e-10,
	}
}

// Option is a functional option for Fit.
type Option = options.Option[*Config]

// WithMaxIterations sets the nonlinear solver's hard iteration budget.
func WithMaxIterations(n int) Option {
	return options.New(func(cfg *Config) error {
		if n <= 0 {
			return fmt.Errorf("max iterations must be positive, got %d", n)
		}
		cfg.MaxIterations = n

		return nil
	})
}

// WithTolerance sets the nonlinear solver's convergence tolerance.
func WithTolerance(tol float64) Option {
	return options.New(func(cfg *Config) error {
		if tol <= 0 {
			return fmt.Errorf("tolerance must be positive, got %g", tol)
		}
		cfg.Tolerance = tol

		return nil
	})
}

// WithColumns attaches column labels to the point set. The label count
// must match the row width.
func WithColumns(columns ...string) Option {
	return options.NoError(func(cfg *Config) {
		cfg.Columns = columns
	})
}
