package learner

import (
	"log"

	"github.com/pkg/errors"
	G "gorgonia.org/gorgonia"
)

// SGD minimises a learner one example at a time. Examples are visited in ascending order,
// and every example produces exactly one parameter update.
type SGD struct {
	LearnRate float64
	Epochs    int
	Logger    *log.Logger // optional
}

// Optimize runs s.Epochs passes over the examples of l.
func (s SGD) Optimize(l Learner) (res Result, err error) {
	if err = requireGradient(l); err != nil {
		return res, err
	}
	var n int
	if n, err = l.Examples(); err != nil {
		return res, errors.WithMessage(err, "SGD")
	}

	solver := G.NewVanillaSolver(G.WithLearnRate(s.LearnRate))
	for e := 0; e < s.Epochs; e++ {
		for i := 0; i < n; i++ {
			var grad []float64
			if grad, err = l.GradientAt(i); err != nil {
				return res, errors.WithMessage(err, "SGD")
			}
			if err = step(solver, l, grad); err != nil {
				return res, err
			}
			res.Iterations++
		}
		if res.Error, err = l.Error(); err != nil {
			return res, errors.WithMessage(err, "SGD")
		}
		logf(s.Logger, "SGD epoch %d: error %v", e, res.Error)
	}
	return res, nil
}
