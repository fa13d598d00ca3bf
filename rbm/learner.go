package rbm

import (
	"github.com/gorgonia/boltzmann/dataset"
	"github.com/gorgonia/boltzmann/learner"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var _ learner.Learner = (*RBM)(nil)

// Capabilities reports that a machine initializes itself and provides gradients, but has no Hessian.
func (m *RBM) Capabilities() learner.Capability {
	return learner.Initialization | learner.Gradient
}

// Initialize draws every weight and bias from N(0, StdDev²).
func (m *RBM) Initialize() { m.params.Initialize(m.StdDev, m.src) }

func (m *RBM) Dimension() int { return m.params.Dimension() }

// Examples returns the number of examples in the bound dataset.
func (m *RBM) Examples() (int, error) {
	if m.data == nil {
		return 0, errors.WithStack(ErrNotInitialized)
	}
	return m.data.Samples(), nil
}

// CurrentParameters returns a copy of the parameters, flattened as described by Params.Flatten.
func (m *RBM) CurrentParameters() []float64 { return m.params.Flatten(nil) }

// SetParameters replaces the parameters with p. A rejected p leaves the parameters untouched.
func (m *RBM) SetParameters(p []float64) error { return m.params.SetParameters(p) }

// BindMatrices binds a dataset made of the rows of inputs. targets may be nil; an RBM ignores them.
func (m *RBM) BindMatrices(inputs, targets mat.Matrix) error {
	if inputs == nil {
		return errors.New("nil inputs")
	}
	if _, cols := inputs.Dims(); cols != m.Visible {
		return errors.Wrapf(ErrDimensionMismatch, "inputs have %d columns, machine has %d visible units", cols, m.Visible)
	}
	d, err := dataset.FromMatrices(inputs, targets)
	if err != nil {
		return err
	}
	m.Bind(d)
	return nil
}

// Error is the mean squared error between the examples and their one-step reconstruction
// probabilities, averaged over all examples and visible units. An empty dataset has no error.
func (m *RBM) Error() (float64, error) {
	n, err := m.Examples()
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, nil
	}

	var sum float64
	residual := make([]float64, m.Visible)
	for i := 0; i < n; i++ {
		x, err := m.instance(i)
		if err != nil {
			return 0, err
		}
		if err = m.reconstruct(x); err != nil {
			return 0, err
		}
		floats.SubTo(residual, x, m.chain.PV.RawVector().Data)
		sum += floats.Dot(residual, residual)
	}
	return sum / float64(n*m.Visible), nil
}

// Gradient is the mean of GradientAt over every example. An empty dataset has a zero gradient.
func (m *RBM) Gradient() ([]float64, error) {
	n, err := m.Examples()
	if err != nil {
		return nil, err
	}
	agg := make([]float64, m.Dimension())
	for i := 0; i < n; i++ {
		grad, err := m.GradientAt(i)
		if err != nil {
			return nil, err
		}
		floats.Add(agg, grad)
	}
	if n > 0 {
		floats.Scale(1/float64(n), agg)
	}
	return agg, nil
}

// Hessian is not provided by an RBM.
func (m *RBM) Hessian() (*mat.Dense, error) {
	return nil, errors.Wrapf(ErrUnsupported, "an RBM has no Hessian")
}

// ReconstructProb clamps the chain to example n, samples the hidden layer, and returns the
// probabilities of the visible layer given that sample.
func (m *RBM) ReconstructProb(n int) ([]float64, error) {
	x, err := m.instance(n)
	if err != nil {
		return nil, err
	}
	if err = m.reconstruct(x); err != nil {
		return nil, err
	}
	return mat.Col(nil, 0, m.chain.PV), nil
}

// Reconstruct is like ReconstructProb but returns the binary visible sample.
func (m *RBM) Reconstruct(n int) ([]float64, error) {
	x, err := m.instance(n)
	if err != nil {
		return nil, err
	}
	if err = m.reconstruct(x); err != nil {
		return nil, err
	}
	return mat.Col(nil, 0, m.chain.V), nil
}

func (m *RBM) reconstruct(x []float64) error {
	if err := m.chain.Clamp(x); err != nil {
		return err
	}
	m.SampleHidden()
	m.SampleVisible()
	return nil
}
