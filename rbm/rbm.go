// Package rbm implements a restricted Boltzmann machine with binary visible and hidden units,
// trained by n-step contrastive divergence (CD-n).
//
// A machine can be trained two ways. Train applies stochastic gradient ascent on the
// log-likelihood directly to the parameters. Alternatively the machine is a learner.Learner,
// whose gradients point the other way so that a generic minimiser can drive it.
package rbm

import (
	"github.com/gorgonia/boltzmann/dataset"
	"github.com/gorgonia/boltzmann/random"
	"github.com/pkg/errors"
)

// RBM is a restricted Boltzmann machine.
//
// An RBM owns a single Gibbs chain and the gradient statistics, and reuses them across calls.
// It is not safe for concurrent use. Use Clone to get an independent machine per goroutine.
type RBM struct {
	Config

	params   *Params
	pos, neg *Params // statistics of the last reality and daydream
	diff     *Params
	chain    *Chain
	flat     []float64

	src  random.Source
	data dataset.Dataset
}

// New returns a machine with all parameters zero. Call Initialize to draw random parameters.
func New(conf Config, src random.Source) (*RBM, error) {
	if !conf.IsValid() {
		return nil, errors.Errorf("invalid config %+v", conf)
	}
	if src == nil {
		return nil, errors.New("nil random source")
	}
	return &RBM{
		Config: conf,
		params: NewParams(conf.Visible, conf.Hidden),
		pos:    NewParams(conf.Visible, conf.Hidden),
		neg:    NewParams(conf.Visible, conf.Hidden),
		diff:   NewParams(conf.Visible, conf.Hidden),
		chain:  NewChain(conf.Visible, conf.Hidden),
		flat:   make([]float64, conf.Dimension()),
		src:    src,
	}, nil
}

// Params returns the live parameters of the machine.
func (m *RBM) Params() *Params { return m.params }

// Positive returns the statistics recorded by the last Reality.
func (m *RBM) Positive() *Params { return m.pos }

// Negative returns the statistics recorded by the last Daydream.
func (m *RBM) Negative() *Params { return m.neg }

// Chain returns the machine's Gibbs chain.
func (m *RBM) Chain() *Chain { return m.chain }

// SampleHidden samples the hidden layer of the machine's chain given its visible layer.
func (m *RBM) SampleHidden() { m.params.SampleHidden(m.chain, m.src) }

// SampleVisible samples the visible layer of the machine's chain given its hidden layer.
func (m *RBM) SampleVisible() { m.params.SampleVisible(m.chain, m.src) }

// Clone returns a machine with a copy of m's parameters and chain, bound to the same dataset,
// drawing from src.
func (m *RBM) Clone(src random.Source) (*RBM, error) {
	m2, err := New(m.Config, src)
	if err != nil {
		return nil, err
	}
	m2.params = m.params.Clone()
	m2.chain = m.chain.Clone()
	m2.data = m.data
	return m2, nil
}

// Bind sets the dataset the machine trains on. The dataset is not copied.
func (m *RBM) Bind(d dataset.Dataset) { m.data = d }

// instance fetches example n of the bound dataset.
func (m *RBM) instance(n int) ([]float64, error) {
	if m.data == nil {
		return nil, errors.WithStack(ErrNotInitialized)
	}
	if count := m.data.Samples(); n < 0 || n >= count {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "example %d of %d", n, count)
	}
	return m.data.Instance(n), nil
}
