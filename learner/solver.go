package learner

import (
	"log"

	"github.com/pkg/errors"
	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// flat presents a learner's parameter vector and a gradient to a gorgonia solver.
type flat struct {
	value, grad *tensor.Dense
}

func (f flat) Value() G.Value         { return f.value }
func (f flat) Grad() (G.Value, error) { return f.grad, nil }

// step moves the parameters of l against grad using solver.
func step(solver G.Solver, l Learner, grad []float64) error {
	params := l.CurrentParameters()
	if len(params) != len(grad) {
		return errors.Errorf("gradient has %d entries, learner has %d parameters", len(grad), len(params))
	}
	f := flat{
		value: tensor.New(tensor.WithShape(len(params)), tensor.WithBacking(params)),
		grad:  tensor.New(tensor.WithShape(len(grad)), tensor.WithBacking(grad)),
	}
	if err := solver.Step([]G.ValueGrad{f}); err != nil {
		return errors.Wrapf(err, "solver step failed")
	}
	return l.SetParameters(f.value.Data().([]float64))
}

func requireGradient(l Learner) error {
	if c := l.Capabilities(); !c.Has(Gradient) {
		return errors.Errorf("learner does not provide gradients (capabilities: %v)", c)
	}
	return nil
}

func logf(logger *log.Logger, format string, args ...interface{}) {
	if logger != nil {
		logger.Printf(format, args...)
	}
}
