// Package dataset holds the validated numeric table submitted for fitting.
//
// A Dataset is immutable after construction: every accessor either returns
// copies or read-only views, and all structural validation (uniform row
// width, finite cells) happens in New before any fitter sees the data.
package dataset

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/fitkit/fitkit/internal/hash"
)

// Dataset is an ordered table of numeric rows with uniform width.
type Dataset struct {
	rows    [][]float64
	columns []string
	width   int
}

// Group is one stable partition of a multi-series dataset: all rows sharing
// the same key column value, in first-seen order.
type Group struct {
	// Key is the group key value from the first column.
	Key float64
	// Label is a display label for the group, taken from the numeric key.
	Label string
	// Xs and Ys are the group's data columns, in input order.
	Xs []float64
	Ys []float64
}

// New validates rows and builds a Dataset.
//
// Validation performed:
//   - at least one row
//   - every row has the same width as the first
//   - every cell is a finite number (NaN and Inf cells are rejected)
//
// columns is the optional list of column labels; when given, its length
// must match the row width.
//
// Returns:
//   - *Dataset: The validated dataset
//   - error: Description of the first structural problem found
func New(rows [][]float64, columns []string) (*Dataset, error) {
	if len(rows) == 0 {
		return nil, errors.New("empty point set")
	}

	width := len(rows[0])
	if width < 2 {
		return nil, fmt.Errorf("row 1 has %d values, need at least 2", width)
	}

	copied := make([][]float64, len(rows))
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("row %d has %d values, expected %d", i+1, len(row), width)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("row %d column %d is not a finite number", i+1, j+1)
			}
		}
		copied[i] = slices.Clone(row)
	}

	if len(columns) > 0 && len(columns) != width {
		return nil, fmt.Errorf("%d column labels given for %d columns", len(columns), width)
	}

	return &Dataset{rows: copied, columns: slices.Clone(columns), width: width}, nil
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.rows)
}

// Width returns the number of columns per row.
func (d *Dataset) Width() int {
	return d.width
}

// Columns returns the column labels, or nil when none were given.
func (d *Dataset) Columns() []string {
	return slices.Clone(d.columns)
}

// Rows returns a copy of the raw rows in input order.
func (d *Dataset) Rows() [][]float64 {
	out := make([][]float64, len(d.rows))
	for i, row := range d.rows {
		out[i] = slices.Clone(row)
	}

	return out
}

// Column returns a copy of column i.
func (d *Dataset) Column(i int) []float64 {
	out := make([]float64, len(d.rows))
	for r, row := range d.rows {
		out[r] = row[i]
	}

	return out
}

// XY returns the x and y columns of a standard 2-column dataset, in input
// order. For wider datasets it returns the last two columns, which hold
// the (x, y) pair once the leading group key is stripped.
func (d *Dataset) XY() (xs, ys []float64) {
	return d.Column(d.width - 2), d.Column(d.width - 1)
}

// XYSorted returns the x and y columns sorted by ascending x.
func (d *Dataset) XYSorted() (xs, ys []float64) {
	xs, ys = d.XY()
	SortPairs(xs, ys)

	return xs, ys
}

// Fingerprint returns a stable xxHash64 of the table contents, usable by
// callers to correlate a fit result with the submitted data.
func (d *Dataset) Fingerprint() uint64 {
	return hash.Rows(d.rows)
}

// Groups partitions the dataset by the value of its first column,
// preserving first-seen group order and row order within each group.
//
// A 2-column dataset yields a single unnamed group containing all rows.
// For wider datasets the first column is the group key and the last two
// columns are (x, y).
func (d *Dataset) Groups() []Group {
	if d.width == 2 {
		xs, ys := d.XY()
		return []Group{{Xs: xs, Ys: ys}}
	}

	index := make(map[float64]int)
	var groups []Group
	for _, row := range d.rows {
		key := row[0]
		gi, seen := index[key]
		if !seen {
			gi = len(groups)
			index[key] = gi
			groups = append(groups, Group{
				Key:   key,
				Label: strconv.FormatFloat(key, 'g', -1, 64),
			})
		}
		groups[gi].Xs = append(groups[gi].Xs, row[d.width-2])
		groups[gi].Ys = append(groups[gi].Ys, row[d.width-1])
	}

	return groups
}

// SortPairs sorts xs ascending and applies the same permutation to ys.
// Ties keep their input order.
func SortPairs(xs, ys []float64) {
	idx := make([]int, len(xs))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		switch {
		case xs[a] < xs[b]:
			return -1
		case xs[a] > xs[b]:
			return 1
		default:
			return 0
		}
	})

	sx := make([]float64, len(xs))
	sy := make([]float64, len(ys))
	for i, j := range idx {
		sx[i] = xs[j]
		sy[i] = ys[j]
	}
	copy(xs, sx)
	copy(ys, sy)
}
