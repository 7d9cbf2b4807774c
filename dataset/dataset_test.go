package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		rows    [][]float64
		columns []string
		wantErr bool
	}{
		{"valid 2-column", [][]float64{{1, 2}, {3, 4}}, nil, false},
		{"valid 3-column with labels", [][]float64{{1, 2, 3}}, []string{"g", "x", "y"}, false},
		{"empty set", nil, nil, true},
		{"single column", [][]float64{{1}}, nil, true},
		{"ragged rows", [][]float64{{1, 2}, {3, 4, 5}}, nil, true},
		{"NaN cell", [][]float64{{1, math.NaN()}}, nil, true},
		{"Inf cell", [][]float64{{math.Inf(1), 2}}, nil, true},
		{"label count mismatch", [][]float64{{1, 2}}, []string{"x"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.rows, tt.columns)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDatasetIsolation(t *testing.T) {
	rows := [][]float64{{1, 2}, {3, 4}}
	ds, err := New(rows, nil)
	require.NoError(t, err)

	// Mutating the input after construction must not affect the dataset.
	rows[0][0] = 99
	assert.Equal(t, 1.0, ds.Rows()[0][0])

	// Mutating an accessor result must not affect the dataset either.
	got := ds.Rows()
	got[1][1] = -1
	assert.Equal(t, 4.0, ds.Rows()[1][1])
}

func TestXYSorted(t *testing.T) {
	ds, err := New([][]float64{{3, 30}, {1, 10}, {2, 20}}, nil)
	require.NoError(t, err)

	xs, ys := ds.XYSorted()
	assert.Equal(t, []float64{1, 2, 3}, xs)
	assert.Equal(t, []float64{10, 20, 30}, ys)

	// Original order preserved inside the dataset.
	assert.Equal(t, 3.0, ds.Rows()[0][0])
}

func TestGroupsStablePartition(t *testing.T) {
	// Group 2 appears before group 1 in the data; first-seen order wins.
	ds, err := New([][]float64{
		{2, 10, 1},
		{1, 11, 2},
		{2, 12, 3},
		{1, 13, 4},
		{3, 14, 5},
	}, nil)
	require.NoError(t, err)

	groups := ds.Groups()
	require.Len(t, groups, 3)
	assert.Equal(t, 2.0, groups[0].Key)
	assert.Equal(t, 1.0, groups[1].Key)
	assert.Equal(t, 3.0, groups[2].Key)
	assert.Equal(t, []float64{10, 12}, groups[0].Xs)
	assert.Equal(t, []float64{1, 3}, groups[0].Ys)
	assert.Equal(t, "2", groups[0].Label)
}

func TestGroupsTwoColumnSingleGroup(t *testing.T) {
	ds, err := New([][]float64{{1, 2}, {3, 4}}, nil)
	require.NoError(t, err)

	groups := ds.Groups()
	require.Len(t, groups, 1)
	assert.Equal(t, []float64{1, 3}, groups[0].Xs)
	assert.Equal(t, []float64{2, 4}, groups[0].Ys)
	assert.Empty(t, groups[0].Label)
}

func TestFingerprint(t *testing.T) {
	a, err := New([][]float64{{1, 2}, {3, 4}}, nil)
	require.NoError(t, err)
	b, err := New([][]float64{{1, 2}, {3, 4}}, nil)
	require.NoError(t, err)
	c, err := New([][]float64{{1, 2}, {3, 4.0001}}, nil)
	require.NoError(t, err)

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}
