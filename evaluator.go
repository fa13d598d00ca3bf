package boltzmann

import (
	"runtime"
	"sync"

	"github.com/gorgonia/boltzmann/dataset"
	"github.com/gorgonia/boltzmann/rbm"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

var (
	_ Inferer = (*rbm.Inferencer)(nil)
	_ Inferer = (*Evaluator)(nil)
)

// Evaluator computes mean-field reconstructions with a pool of inferencers, so that a
// dataset can be evaluated by several goroutines at once.
type Evaluator struct {
	inferer  chan *rbm.Inferencer
	inferers []*rbm.Inferencer
}

// NewEvaluator creates an Evaluator with the given number of inferencers for m.
// workers <= 0 means one per CPU.
func NewEvaluator(m *rbm.RBM, workers int) (*Evaluator, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	e := &Evaluator{inferer: make(chan *rbm.Inferencer, workers)}
	for i := 0; i < workers; i++ {
		inf, err := rbm.Infer(m)
		if err != nil {
			e.Close()
			return nil, errors.WithMessagef(err, "unable to create inferencer %d", i)
		}
		e.inferers = append(e.inferers, inf)
		e.inferer <- inf
	}
	return e, nil
}

// Workers returns the number of inferencers.
func (e *Evaluator) Workers() int { return len(e.inferers) }

// Update copies the parameters of m into every inferencer. It must not be called while the
// Evaluator is in use.
func (e *Evaluator) Update(m *rbm.RBM) error {
	for _, inf := range e.inferers {
		if err := inf.Update(m); err != nil {
			return err
		}
	}
	return nil
}

// Infer reconstructs x with whichever inferencer is free.
func (e *Evaluator) Infer(x []float64) (hidden, visible []float64, err error) {
	inf := <-e.inferer
	hidden, visible, err = inf.Infer(x)
	e.inferer <- inf
	return
}

// Error is the mean-field reconstruction error over d, computed concurrently.
func (e *Evaluator) Error(d dataset.Dataset) (float64, error) {
	n := d.Samples()
	if n == 0 {
		return 0, nil
	}
	if len(e.inferers) == 1 {
		return rbm.MeanFieldError(e.inferers[0], d)
	}

	sq := make([]float64, n)
	lens := make([]int, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			x := d.Instance(i)
			_, pv, err := e.Infer(x)
			if err != nil {
				errs[i] = errors.WithMessagef(err, "instance %d", i)
				return
			}
			residual := make([]float64, len(x))
			floats.SubTo(residual, x, pv)
			sq[i] = floats.Dot(residual, residual)
			lens[i] = len(x)
		}(i)
	}
	wg.Wait()

	var allErrs manyErr
	var units int
	for i, err := range errs {
		if err != nil {
			allErrs = append(allErrs, err)
		}
		units += lens[i]
	}
	if len(allErrs) > 0 {
		return 0, allErrs
	}
	return floats.Sum(sq) / float64(units), nil
}

// Close closes every inferencer.
func (e *Evaluator) Close() error {
	close(e.inferer)
	var allErrs manyErr
	for _, inf := range e.inferers {
		if err := inf.Close(); err != nil {
			allErrs = append(allErrs, err)
		}
	}
	if len(allErrs) > 0 {
		return allErrs
	}
	return nil
}
