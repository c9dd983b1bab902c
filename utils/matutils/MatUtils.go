// Package matutils implements utility function for working with mat.Matrix
// structs
package matutils

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Format formats a matrix for printing
func Format(X mat.Matrix) string {
	fa := mat.Formatted(X, mat.Prefix(""), mat.Squeeze())
	return fmt.Sprintf("%v", fa)
}

// Grid reshapes a flattened row-major slice into a rows x cols matrix.
// The slice is copied.
func Grid(values []float64, rows, cols int) *mat.Dense {
	data := make([]float64, len(values))
	copy(data, values)
	return mat.NewDense(rows, cols, data)
}
