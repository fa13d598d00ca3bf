package rbm

import "gonum.org/v1/gonum/floats"

// Reality clamps the chain to example n, samples the hidden layer, and records the positive
// statistics ph⊗v, v and ph. The hidden probabilities are used, not the sampled hidden units.
func (m *RBM) Reality(n int) error {
	x, err := m.instance(n)
	if err != nil {
		return err
	}
	if err = m.chain.Clamp(x); err != nil {
		return err
	}
	m.SampleHidden()

	m.pos.W.Outer(1, m.chain.PH, m.chain.V)
	m.pos.Bv.CopyVec(m.chain.V)
	m.pos.Bh.CopyVec(m.chain.PH)
	return nil
}

// Daydream runs CDSteps Gibbs steps from the hidden sample left by Reality, and records the
// negative statistics ph⊗pv, pv and ph of the final step.
func (m *RBM) Daydream() {
	for k := 0; k < m.CDSteps; k++ {
		m.SampleVisible()
		m.SampleHidden()
	}

	m.neg.W.Outer(1, m.chain.PH, m.chain.PV)
	m.neg.Bv.CopyVec(m.chain.PV)
	m.neg.Bh.CopyVec(m.chain.PH)
}

// GradientAt runs Reality and Daydream on example n and returns −(positive − negative),
// flattened like CurrentParameters.
//
// The sign is that of an error gradient, for minimisers. Train steps along positive − negative
// instead.
func (m *RBM) GradientAt(n int) ([]float64, error) {
	if err := m.Reality(n); err != nil {
		return nil, err
	}
	m.Daydream()

	grad := m.neg.Flatten(nil)
	floats.Sub(grad, m.pos.Flatten(m.flat))
	return grad, nil
}
