// Package fit implements the experiment curve-fitting engine: a fixed
// catalog of parametric model fitters over small, noisy, user-edited
// measurement tables.
//
// # Basic Usage
//
//	res, err := fit.Fit("straight-line", [][]float64{{1, 2}, {2, 4}, {3, 6}})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Equation)          // y = 2.0000x + 0.0000
//	fmt.Println(res.Params["slope"])   // 2
//	y := res.Evaluator.Evaluate(1.5)   // sample the fitted curve
//
// # Modes
//
// Eleven modes are registered, one per experiment type (see format.Modes).
// Standard modes take 2-column rows (x, y); multi-series modes also accept
// 3-column rows with a group key in the first column, partitioned stably
// in first-seen order.
//
// # Failure Taxonomy
//
// Structural problems (wrong row width, too few points, unknown mode,
// non-finite cells) fail with *ValidationError before any numeric work.
// Well-formed but numerically unusable input (all-identical x, a
// non-positive amplitude ahead of a log transform, wrong group count)
// fails with
// *DegenerateDataError. A nonlinear solver that exhausts its iteration
// budget fails with *ConvergenceError. Fitters never return silent
// defaults and never panic.
//
// # Concurrency
//
// Every fitter is a pure synchronous function with no shared mutable
// state; independent Fit calls may run in parallel without coordination.
package fit
