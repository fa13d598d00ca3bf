package boltzmann

import (
	"testing"

	"github.com/gorgonia/boltzmann/dataset"
	"github.com/gorgonia/boltzmann/random"
	"github.com/gorgonia/boltzmann/rbm"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestEvaluator(t *testing.T) {
	assert := assert.New(t)
	conf := rbm.DefaultConf(9, 4)
	conf.StdDev = 0.5
	m, err := rbm.New(conf, random.New(3))
	if err != nil {
		t.Fatalf("%+v", err)
	}
	m.Initialize()
	d := bars(t, 3)

	single, err := NewEvaluator(m, 1)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	defer single.Close()
	pool, err := NewEvaluator(m, 4)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	defer pool.Close()
	assert.Equal(1, single.Workers())
	assert.Equal(4, pool.Workers())

	want, err := single.Error(d)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	got, err := pool.Error(d)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	assert.InDelta(want, got, 1e-12)

	h1, v1, err := single.Infer(d.Instance(3))
	assert.NoError(err)
	h2, v2, err := pool.Infer(d.Instance(3))
	assert.NoError(err)
	assert.Equal(h1, h2)
	assert.Equal(v1, v2)

	empty, err := pool.Error(emptyDataset{})
	assert.NoError(err)
	assert.Equal(0.0, empty)

	// a dataset of the wrong width fails on every instance
	wide, _ := dataset.FromRows([][]float64{make([]float64, 10), make([]float64, 10)})
	_, err = pool.Error(wide)
	if assert.Error(err) {
		assert.Len(err.(manyErr), 2)
		assert.Equal(rbm.ErrDimensionMismatch, errors.Cause(err.(manyErr)[0]))
	}

	// Update follows training
	m.Bind(d)
	if err = m.Train(0.5, 3); err != nil {
		t.Fatalf("%+v", err)
	}
	assert.NoError(pool.Update(m))
	assert.NoError(single.Update(m))
	want, _ = single.Error(d)
	got, _ = pool.Error(d)
	assert.InDelta(want, got, 1e-12)
}

type emptyDataset struct{}

func (emptyDataset) Samples() int             { return 0 }
func (emptyDataset) Instance(n int) []float64 { panic("empty") }
