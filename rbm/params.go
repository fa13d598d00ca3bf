package rbm

import (
	"math"

	"github.com/gorgonia/boltzmann/random"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Params holds the weights and biases of a machine.
//
// The positive and negative statistics of contrastive divergence have exactly the same shape,
// so they are Params too.
type Params struct {
	W  *mat.Dense    // Hidden × Visible
	Bv *mat.VecDense // visible biases
	Bh *mat.VecDense // hidden biases
}

// NewParams returns zeroed parameters.
func NewParams(visible, hidden int) *Params {
	return &Params{
		W:  mat.NewDense(hidden, visible, nil),
		Bv: mat.NewVecDense(visible, nil),
		Bh: mat.NewVecDense(hidden, nil),
	}
}

// Initialize replaces every weight and bias with an independent draw from N(0, stdDev²).
func (p *Params) Initialize(stdDev float64, src random.Source) {
	hidden, visible := p.W.Dims()
	for j := 0; j < hidden; j++ {
		for i := 0; i < visible; i++ {
			p.W.Set(j, i, src.Normal()*stdDev)
		}
	}
	for i := 0; i < visible; i++ {
		p.Bv.SetVec(i, src.Normal()*stdDev)
	}
	for j := 0; j < hidden; j++ {
		p.Bh.SetVec(j, src.Normal()*stdDev)
	}
}

func (p *Params) Dimension() int {
	hidden, visible := p.W.Dims()
	return hidden*visible + visible + hidden
}

// Flatten writes the parameters to dst in a fixed order: W row by row (one row per hidden
// unit), then bv, then bh. dst is reallocated if it is too short.
func (p *Params) Flatten(dst []float64) []float64 {
	n := p.Dimension()
	if cap(dst) < n {
		dst = make([]float64, n)
	}
	dst = dst[:n]

	hidden, visible := p.W.Dims()
	idx := 0
	for j := 0; j < hidden; j++ {
		idx += copy(dst[idx:idx+visible], p.W.RawRowView(j))
	}
	for i := 0; i < visible; i++ {
		dst[idx] = p.Bv.AtVec(i)
		idx++
	}
	for j := 0; j < hidden; j++ {
		dst[idx] = p.Bh.AtVec(j)
		idx++
	}
	return dst
}

// SetParameters is the inverse of Flatten. vec is validated before anything is written, so a
// rejected vector leaves p as it was.
func (p *Params) SetParameters(vec []float64) error {
	if n := p.Dimension(); len(vec) != n {
		return errors.Wrapf(ErrDimensionMismatch, "expected %d parameters, got %d", n, len(vec))
	}
	for i, v := range vec {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.Wrapf(ErrInvalidParameter, "parameter %d is %v", i, v)
		}
	}

	hidden, visible := p.W.Dims()
	idx := 0
	for j := 0; j < hidden; j++ {
		p.W.SetRow(j, vec[idx:idx+visible])
		idx += visible
	}
	for i := 0; i < visible; i++ {
		p.Bv.SetVec(i, vec[idx])
		idx++
	}
	for j := 0; j < hidden; j++ {
		p.Bh.SetVec(j, vec[idx])
		idx++
	}
	return nil
}

// Clone returns a deep copy.
func (p *Params) Clone() *Params {
	return &Params{
		W:  mat.DenseCopyOf(p.W),
		Bv: mat.VecDenseCopyOf(p.Bv),
		Bh: mat.VecDenseCopyOf(p.Bh),
	}
}

// sub sets p = a - b.
func (p *Params) sub(a, b *Params) {
	p.W.Sub(a.W, b.W)
	p.Bv.SubVec(a.Bv, b.Bv)
	p.Bh.SubVec(a.Bh, b.Bh)
}

// addScaled sets p += alpha·q.
func (p *Params) addScaled(alpha float64, q *Params) {
	hidden, _ := p.W.Dims()
	for j := 0; j < hidden; j++ {
		floats.AddScaled(p.W.RawRowView(j), alpha, q.W.RawRowView(j))
	}
	p.Bv.AddScaledVec(p.Bv, alpha, q.Bv)
	p.Bh.AddScaledVec(p.Bh, alpha, q.Bh)
}
