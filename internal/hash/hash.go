// Package hash provides xxHash64 helpers for dataset fingerprinting.
package hash

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Rows computes a stable xxHash64 fingerprint of a numeric table.
//
// Row order, row width, and the exact bit pattern of every float all
// contribute, so the same table always hashes to the same value and any
// edit changes it.
func Rows(rows [][]float64) uint64 {
	d := xxhash.New()

	var buf [8]byte
	for _, row := range rows {
		binary.LittleEndian.PutUint64(buf[:], uint64(len(row)))
		_, _ = d.Write(buf[:])
		for _, v := range row {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			_, _ = d.Write(buf[:])
		}
	}

	return d.Sum64()
}
