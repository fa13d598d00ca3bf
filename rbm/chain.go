package rbm

import (
	"math"

	"github.com/gorgonia/boltzmann/random"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Chain is the state of one Gibbs chain: the current visible and hidden samples, and the
// probabilities they were drawn from.
type Chain struct {
	V, PV *mat.VecDense // visible sample and probabilities
	H, PH *mat.VecDense // hidden sample and probabilities
}

func NewChain(visible, hidden int) *Chain {
	return &Chain{
		V:  mat.NewVecDense(visible, nil),
		PV: mat.NewVecDense(visible, nil),
		H:  mat.NewVecDense(hidden, nil),
		PH: mat.NewVecDense(hidden, nil),
	}
}

// Clamp sets the visible sample to x.
func (c *Chain) Clamp(x []float64) error {
	if len(x) != c.V.Len() {
		return errors.Wrapf(ErrDimensionMismatch, "instance has %d values, chain has %d visible units", len(x), c.V.Len())
	}
	for i, v := range x {
		c.V.SetVec(i, v)
	}
	return nil
}

// Clone returns a deep copy.
func (c *Chain) Clone() *Chain {
	return &Chain{
		V:  mat.VecDenseCopyOf(c.V),
		PV: mat.VecDenseCopyOf(c.PV),
		H:  mat.VecDenseCopyOf(c.H),
		PH: mat.VecDenseCopyOf(c.PH),
	}
}

// SampleHidden sets c.PH = σ(W·c.V + bh) and draws c.H from it.
func (p *Params) SampleHidden(c *Chain, src random.Source) {
	c.PH.MulVec(p.W, c.V)
	c.PH.AddVec(c.PH, p.Bh)
	logistic(c.PH)
	sample(c.H, c.PH, src)
}

// SampleVisible sets c.PV = σ(Wᵗ·c.H + bv) and draws c.V from it.
func (p *Params) SampleVisible(c *Chain, src random.Source) {
	c.PV.MulVec(p.W.T(), c.H)
	c.PV.AddVec(c.PV, p.Bv)
	logistic(c.PV)
	sample(c.V, c.PV, src)
}

// logistic applies σ(x) = 1 / (1 + e⁻ˣ) in place.
func logistic(v *mat.VecDense) {
	for i := 0; i < v.Len(); i++ {
		v.SetVec(i, 1/(1+math.Exp(-v.AtVec(i))))
	}
}

// sample draws one uniform value per unit. A unit is on iff its probability does not
// exceed its draw.
func sample(dst, prob *mat.VecDense, src random.Source) {
	for i := 0; i < prob.Len(); i++ {
		if prob.AtVec(i) <= src.Uniform() {
			dst.SetVec(i, 1)
		} else {
			dst.SetVec(i, 0)
		}
	}
}
