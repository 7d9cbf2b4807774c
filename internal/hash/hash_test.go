package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRows(t *testing.T) {
	a := [][]float64{{1, 2}, {3, 4}}
	b := [][]float64{{1, 2}, {3, 4}}
	assert.Equal(t, Rows(a), Rows(b), "identical tables must fingerprint equally")

	c := [][]float64{{1, 2}, {3, 5}}
	assert.NotEqual(t, Rows(a), Rows(c), "changing a cell must change the fingerprint")

	d := [][]float64{{3, 4}, {1, 2}}
	assert.NotEqual(t, Rows(a), Rows(d), "row order must contribute to the fingerprint")

	// A flattened table with different row widths must not collide with
	// the 2-column layout of the same values.
	e := [][]float64{{1, 2, 3, 4}}
	assert.NotEqual(t, Rows(a), Rows(e))
}
