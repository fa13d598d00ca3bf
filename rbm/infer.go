package rbm

import (
	"github.com/gorgonia/boltzmann/dataset"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

type maebe struct {
	err error
}

func (m *maebe) do(f func() (*G.Node, error)) (retVal *G.Node) {
	if m.err != nil {
		return nil
	}
	if retVal, m.err = f(); m.err != nil {
		m.err = errors.WithStack(m.err)
	}
	return
}

// Inferencer computes deterministic mean-field reconstructions
//
//	ph = σ(W·v + bh)
//	pv = σ(Wᵗ·ph + bv)
//
// on an expression graph. It holds a copy of the parameters it was built or last updated with,
// so it is unaffected by further training until Update is called.
type Inferencer struct {
	g *G.ExprGraph
	m G.VM

	w, bv, bh *G.Node
	v         *G.Node

	hidden, visible G.Value
	input           *tensor.Dense
}

// Infer builds an Inferencer for the current parameters of m.
func Infer(m *RBM) (*Inferencer, error) {
	g := G.NewGraph()
	retVal := &Inferencer{
		g:     g,
		w:     G.NewMatrix(g, G.Float64, G.WithShape(m.Hidden, m.Visible), G.WithName("W")),
		bv:    G.NewVector(g, G.Float64, G.WithShape(m.Visible), G.WithName("bv")),
		bh:    G.NewVector(g, G.Float64, G.WithShape(m.Hidden), G.WithName("bh")),
		v:     G.NewVector(g, G.Float64, G.WithShape(m.Visible), G.WithName("v")),
		input: tensor.New(tensor.WithShape(m.Visible), tensor.Of(tensor.Float64)),
	}

	var mb maebe
	ph := mb.do(func() (*G.Node, error) { return G.Mul(retVal.w, retVal.v) })
	ph = mb.do(func() (*G.Node, error) { return G.Add(ph, retVal.bh) })
	ph = mb.do(func() (*G.Node, error) { return G.Sigmoid(ph) })
	wt := mb.do(func() (*G.Node, error) { return G.Transpose(retVal.w) })
	pv := mb.do(func() (*G.Node, error) { return G.Mul(wt, ph) })
	pv = mb.do(func() (*G.Node, error) { return G.Add(pv, retVal.bv) })
	pv = mb.do(func() (*G.Node, error) { return G.Sigmoid(pv) })
	if mb.err != nil {
		return nil, mb.err
	}
	G.Read(ph, &retVal.hidden)
	G.Read(pv, &retVal.visible)

	if err := retVal.Update(m); err != nil {
		return nil, err
	}
	retVal.m = G.NewTapeMachine(g)
	return retVal, nil
}

// Update copies the current parameters of m into the graph.
func (inf *Inferencer) Update(m *RBM) error {
	p := m.Params()
	hidden, visible := p.W.Dims()
	if inf.w.Shape()[0] != hidden || inf.w.Shape()[1] != visible {
		return errors.Wrapf(ErrDimensionMismatch, "inferencer is %v, machine is %dx%d", inf.w.Shape(), hidden, visible)
	}

	w := tensor.New(tensor.WithShape(hidden, visible), tensor.WithBacking(mat.DenseCopyOf(p.W).RawMatrix().Data))
	bv := tensor.New(tensor.WithShape(visible), tensor.WithBacking(mat.Col(nil, 0, p.Bv)))
	bh := tensor.New(tensor.WithShape(hidden), tensor.WithBacking(mat.Col(nil, 0, p.Bh)))
	for _, let := range []struct {
		n *G.Node
		v *tensor.Dense
	}{{inf.w, w}, {inf.bv, bv}, {inf.bh, bh}} {
		if err := G.Let(let.n, let.v); err != nil {
			return errors.Wrapf(err, "unable to set %v", let.n.Name())
		}
	}
	return nil
}

// Infer returns the hidden and the reconstructed visible probabilities of x.
func (inf *Inferencer) Infer(x []float64) (hidden, visible []float64, err error) {
	if len(x) != inf.input.Shape()[0] {
		return nil, nil, errors.Wrapf(ErrDimensionMismatch, "input has %d values, expected %d", len(x), inf.input.Shape()[0])
	}
	copy(inf.input.Data().([]float64), x)

	inf.m.Reset()
	if err = G.Let(inf.v, inf.input); err != nil {
		return nil, nil, errors.WithStack(err)
	}
	if err = inf.m.RunAll(); err != nil {
		return nil, nil, errors.WithStack(err)
	}
	hidden = append([]float64(nil), inf.hidden.Data().([]float64)...)
	visible = append([]float64(nil), inf.visible.Data().([]float64)...)
	return hidden, visible, nil
}

// Close implements a closer, because a gorgonia VM is a resource.
func (inf *Inferencer) Close() error { return inf.m.Close() }

// MeanFieldError is the mean squared error between the instances of d and their mean-field
// reconstructions, averaged over all instances and visible units.
func MeanFieldError(inf *Inferencer, d dataset.Dataset) (float64, error) {
	n := d.Samples()
	if n == 0 {
		return 0, nil
	}
	var sum float64
	var units int
	for i := 0; i < n; i++ {
		x := d.Instance(i)
		_, pv, err := inf.Infer(x)
		if err != nil {
			return 0, errors.WithMessagef(err, "instance %d", i)
		}
		residual := make([]float64, len(x))
		floats.SubTo(residual, x, pv)
		sum += floats.Dot(residual, residual)
		units += len(x)
	}
	return sum / float64(units), nil
}
