package rbm

import (
	"math"

	"github.com/pkg/errors"
)

// Train runs epochs passes of CD-n over the bound dataset. Examples are visited in order, and
// after every example the parameters move by learnRate·(positive − negative).
//
// A zero learnRate still runs the chains but leaves the parameters untouched.
func (m *RBM) Train(learnRate float64, epochs int) error {
	if math.IsNaN(learnRate) || math.IsInf(learnRate, 0) {
		return errors.Wrapf(ErrInvalidParameter, "learn rate %v", learnRate)
	}
	n, err := m.Examples()
	if err != nil {
		return err
	}

	for e := 0; e < epochs; e++ {
		for i := 0; i < n; i++ {
			if err = m.Reality(i); err != nil {
				return errors.WithMessagef(err, "epoch %d", e)
			}
			m.Daydream()
			if learnRate == 0 {
				continue
			}
			m.diff.sub(m.pos, m.neg)
			m.params.addScaled(learnRate, m.diff)
		}
	}
	return nil
}
