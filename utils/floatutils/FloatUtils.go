// Package floatutils provides utilities for working with floats
package floatutils

import "math"

// ArgMax gets the maximum value in a slice of float64 and the index of
// its first occurrence. Later values only replace the maximum if they
// are strictly greater, so ties go to the earliest index. An empty slice
// returns (-Inf, -1).
func ArgMax(values []float64) (max float64, index int) {
	max, index = math.Inf(-1), -1

	for i, value := range values {
		if value > max {
			max = value
			index = i
		}
	}
	return
}
