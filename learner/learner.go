// Package learner defines the contract between a numeric model and the optimizers that drive it.
//
// A Learner exposes its parameters as one flat vector, and reports which optional operations it
// supports through a Capability set. Optimizers only call the operations a learner reports.
package learner

import (
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Capability is a set of optional operations.
type Capability uint8

const (
	Initialization Capability = 1 << iota // the learner can initialize its own parameters
	Gradient                              // the learner provides gradients
	Hessian                               // the learner provides a Hessian

	None Capability = 0
)

// Has returns true if all of o is in c.
func (c Capability) Has(o Capability) bool { return c&o == o }

func (c Capability) String() string {
	if c == None {
		return "None"
	}
	var names []string
	if c.Has(Initialization) {
		names = append(names, "Initialization")
	}
	if c.Has(Gradient) {
		names = append(names, "Gradient")
	}
	if c.Has(Hessian) {
		names = append(names, "Hessian")
	}
	return strings.Join(names, "|")
}

// Learner is a model with a flat parameter vector and an error to minimise.
type Learner interface {
	Capabilities() Capability

	// Initialize draws fresh parameters. Only meaningful with the Initialization capability.
	Initialize()

	// Dimension is the length of the parameter vector.
	Dimension() int
	// Examples is the number of training examples the learner is bound to.
	Examples() (int, error)

	CurrentParameters() []float64
	SetParameters(p []float64) error

	// Error is a non-negative training error over all examples.
	Error() (float64, error)
	// Gradient is the direction of steepest ascent of the error, aggregated over all examples.
	Gradient() ([]float64, error)
	// GradientAt is the error gradient of a single example.
	GradientAt(i int) ([]float64, error)
	// Hessian is only available with the Hessian capability.
	Hessian() (*mat.Dense, error)
}

// Result summarises an optimization run.
type Result struct {
	Iterations int     // number of parameter updates
	Error      float64 // training error after the last update
}
