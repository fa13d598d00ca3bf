package learner

import (
	"log"

	"github.com/pkg/errors"
	G "gorgonia.org/gorgonia"
)

// Batch minimises a learner by full-batch gradient descent on its aggregate gradient.
type Batch struct {
	LearnRate     float64
	MaxIterations int

	// MinImprovement stops the descent once an update lowers the error by less than this.
	// Zero disables the check.
	MinImprovement float64

	Logger *log.Logger // optional
}

// Optimize runs at most b.MaxIterations updates.
func (b Batch) Optimize(l Learner) (res Result, err error) {
	if err = requireGradient(l); err != nil {
		return res, err
	}
	if res.Error, err = l.Error(); err != nil {
		return res, errors.WithMessage(err, "Batch")
	}

	solver := G.NewVanillaSolver(G.WithLearnRate(b.LearnRate))
	for res.Iterations < b.MaxIterations {
		var grad []float64
		if grad, err = l.Gradient(); err != nil {
			return res, errors.WithMessage(err, "Batch")
		}
		if err = step(solver, l, grad); err != nil {
			return res, err
		}
		res.Iterations++

		prev := res.Error
		if res.Error, err = l.Error(); err != nil {
			return res, errors.WithMessage(err, "Batch")
		}
		logf(b.Logger, "Batch iteration %d: error %v", res.Iterations, res.Error)
		if b.MinImprovement > 0 && prev-res.Error < b.MinImprovement {
			break
		}
	}
	return res, nil
}
