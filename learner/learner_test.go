package learner

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// quadratic is the error ½·Σ‖p − x_i‖² / n over a set of points x_i. Its minimum is their mean.
type quadratic struct {
	caps   Capability
	p      []float64
	points [][]float64
}

func (q *quadratic) Capabilities() Capability { return q.caps }
func (q *quadratic) Initialize()              { floats.Scale(0, q.p) }
func (q *quadratic) Dimension() int           { return len(q.p) }
func (q *quadratic) Examples() (int, error)   { return len(q.points), nil }

func (q *quadratic) CurrentParameters() []float64 { return append([]float64(nil), q.p...) }
func (q *quadratic) SetParameters(p []float64) error {
	if len(p) != len(q.p) {
		return errors.New("wrong length")
	}
	copy(q.p, p)
	return nil
}

func (q *quadratic) Error() (float64, error) {
	var sum float64
	for _, x := range q.points {
		d := floats.Distance(q.p, x, 2)
		sum += d * d / 2
	}
	return sum / float64(len(q.points)), nil
}

func (q *quadratic) GradientAt(i int) ([]float64, error) {
	g := make([]float64, len(q.p))
	floats.SubTo(g, q.p, q.points[i])
	return g, nil
}

func (q *quadratic) Gradient() ([]float64, error) {
	agg := make([]float64, len(q.p))
	for i := range q.points {
		g, _ := q.GradientAt(i)
		floats.Add(agg, g)
	}
	floats.Scale(1/float64(len(q.points)), agg)
	return agg, nil
}

func (q *quadratic) Hessian() (*mat.Dense, error) { return nil, errors.New("no hessian") }

func newQuadratic(caps Capability) *quadratic {
	return &quadratic{
		caps:   caps,
		p:      []float64{5, -5},
		points: [][]float64{{1, 1}, {3, 1}, {2, 4}},
	}
}

func TestCapability(t *testing.T) {
	assert := assert.New(t)
	c := Initialization | Gradient
	assert.True(c.Has(Initialization))
	assert.True(c.Has(Gradient))
	assert.False(c.Has(Hessian))
	assert.False(c.Has(Gradient | Hessian))
	assert.True(c.Has(None))

	assert.Equal("None", None.String())
	assert.Equal("Initialization|Gradient", c.String())
	assert.Equal("Initialization|Gradient|Hessian", (c | Hessian).String())
}

func TestBatch(t *testing.T) {
	assert := assert.New(t)
	q := newQuadratic(Gradient)
	before, _ := q.Error()

	res, err := Batch{LearnRate: 0.5, MaxIterations: 200, MinImprovement: 1e-12}.Optimize(q)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	assert.True(res.Iterations > 0)
	assert.True(res.Iterations <= 200)
	assert.True(res.Error < before, "error should decrease: %v -> %v", before, res.Error)
	assert.InDelta(2, q.p[0], 1e-3)
	assert.InDelta(2, q.p[1], 1e-3)
}

func TestSGD(t *testing.T) {
	assert := assert.New(t)
	q := newQuadratic(Initialization | Gradient)
	before, _ := q.Error()

	res, err := SGD{LearnRate: 0.05, Epochs: 50}.Optimize(q)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	assert.Equal(50*len(q.points), res.Iterations, "SGD makes one update per example")
	assert.True(res.Error < before, "error should decrease: %v -> %v", before, res.Error)
	assert.InDelta(2, q.p[0], 0.2)
	assert.InDelta(2, q.p[1], 0.2)
}

func TestOptimizersRequireGradients(t *testing.T) {
	q := newQuadratic(Initialization)
	_, err := SGD{LearnRate: 0.1, Epochs: 1}.Optimize(q)
	assert.Error(t, err)
	_, err = Batch{LearnRate: 0.1, MaxIterations: 1}.Optimize(q)
	assert.Error(t, err)
	assert.Equal(t, []float64{5, -5}, q.p, "parameters should be untouched")
}
