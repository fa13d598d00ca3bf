// Package dataset provides the collections of instances a machine is trained on.
package dataset

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Dataset is a read-only collection of instances.
type Dataset interface {
	// Samples returns the number of instances.
	Samples() int
	// Instance returns instance n, for 0 <= n < Samples().
	Instance(n int) []float64
}

// Matrix is an in-memory Dataset with one instance per row of its inputs.
// The targets, if any, are carried along for supervised consumers.
type Matrix struct {
	inputs  mat.Matrix
	targets mat.Matrix
}

// FromMatrices wraps inputs and targets without copying them. targets may be nil.
func FromMatrices(inputs, targets mat.Matrix) (*Matrix, error) {
	if inputs == nil {
		return nil, errors.New("inputs must not be nil")
	}
	r, _ := inputs.Dims()
	if targets != nil {
		if tr, _ := targets.Dims(); tr != r {
			return nil, errors.Errorf("inputs have %d rows but targets have %d", r, tr)
		}
	}
	return &Matrix{inputs: inputs, targets: targets}, nil
}

// FromRows copies rows into a new Matrix. All rows must have the same length.
func FromRows(rows [][]float64) (*Matrix, error) {
	inputs, err := denseFromRows(rows)
	if err != nil {
		return nil, err
	}
	return &Matrix{inputs: inputs}, nil
}

func denseFromRows(rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.New("no data")
	}
	cols := len(rows[0])
	retVal := mat.NewDense(len(rows), cols, nil)
	for i, row := range rows {
		if len(row) != cols {
			return nil, errors.Errorf("row %d has %d values, expected %d", i, len(row), cols)
		}
		retVal.SetRow(i, row)
	}
	return retVal, nil
}

func (m *Matrix) Samples() int {
	r, _ := m.inputs.Dims()
	return r
}

func (m *Matrix) Instance(n int) []float64 { return mat.Row(nil, n, m.inputs) }

// Target returns the target row n, or nil if the Matrix has no targets.
func (m *Matrix) Target(n int) []float64 {
	if m.targets == nil {
		return nil
	}
	return mat.Row(nil, n, m.targets)
}

// HasTargets reports whether the Matrix carries targets.
func (m *Matrix) HasTargets() bool { return m.targets != nil }

// Dims returns the number of instances and the length of each.
func (m *Matrix) Dims() (samples, features int) { return m.inputs.Dims() }
