package dataset

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gorgonia.org/tensor"
	"gorgonia.org/tensor/native"
)

// FromTensor copies 2-D float64 tensors into a Matrix. targets may be nil.
func FromTensor(inputs, targets *tensor.Dense) (*Matrix, error) {
	in, err := denseFromTensor(inputs)
	if err != nil {
		return nil, errors.Wrapf(err, "inputs")
	}
	if targets == nil {
		return FromMatrices(in, nil)
	}
	out, err := denseFromTensor(targets)
	if err != nil {
		return nil, errors.Wrapf(err, "targets")
	}
	return FromMatrices(in, out)
}

func denseFromTensor(t *tensor.Dense) (*mat.Dense, error) {
	if t == nil {
		return nil, errors.New("nil tensor")
	}
	shape := t.Shape()
	if len(shape) != 2 {
		return nil, errors.Errorf("expected a matrix, got shape %v", shape)
	}
	rows, err := native.MatrixF64(t)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return denseFromRows(rows)
}
