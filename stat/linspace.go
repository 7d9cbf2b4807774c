package stat

import "iter"

// Linspace returns a lazy, restartable sequence of count evenly spaced
// samples between start and end, inclusive of both endpoints.
//
// The sequence can be ranged over multiple times and always yields the same
// values. A count of 1 yields only start; a count of 0 or less yields
// nothing.
//
// Example:
//
//	for x := range stat.Linspace(0, 1, 5) {
//	    fmt.Println(x) // 0, 0.25, 0.5, 0.75, 1
//	}
func Linspace(start, end float64, count int) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		if count <= 0 {
			return
		}
		if count == 1 {
			yield(start)
			return
		}

		step := (end - start) / float64(count-1)
		for i := range count {
			v := start + float64(i)*step
			if i == count-1 {
				// Land exactly on the endpoint regardless of step rounding.
				v = end
			}
			if !yield(v) {
				return
			}
		}
	}
}

// LinspaceSlice materializes Linspace into a slice.
func LinspaceSlice(start, end float64, count int) []float64 {
	if count <= 0 {
		return nil
	}

	out := make([]float64, 0, count)
	for v := range Linspace(start, end, count) {
		out = append(out, v)
	}

	return out
}
