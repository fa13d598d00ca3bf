package rbm

import (
	"bytes"
	"encoding/gob"

	"github.com/gorgonia/boltzmann/random"
	"github.com/pkg/errors"
)

type gobRBM struct {
	Config Config
	Params []float64
}

// GobEncode encodes the configuration and parameters. The chain, the statistics and the bound
// dataset are not encoded.
func (m *RBM) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(gobRBM{Config: m.Config, Params: m.CurrentParameters()}); err != nil {
		return nil, errors.WithStack(err)
	}
	return buf.Bytes(), nil
}

// GobDecode replaces m with the encoded machine. m keeps its random source and dataset; a zero
// RBM gets random.New(1).
func (m *RBM) GobDecode(p []byte) error {
	var g gobRBM
	dec := gob.NewDecoder(bytes.NewReader(p))
	if err := dec.Decode(&g); err != nil {
		return errors.WithStack(err)
	}

	src, data := m.src, m.data
	if src == nil {
		src = random.New(1)
	}
	m2, err := New(g.Config, src)
	if err != nil {
		return err
	}
	if err = m2.SetParameters(g.Params); err != nil {
		return err
	}
	m2.data = data
	*m = *m2
	return nil
}
