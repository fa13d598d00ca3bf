// Package random provides the sources of randomness used to initialize and sample a machine.
package random

import (
	"math/rand/v2"

	rng "github.com/leesper/go_rng"
	"gonum.org/v1/gonum/stat/distuv"
)

// Source supplies independent random draws. Every sampled unit consults the source once.
type Source interface {
	// Normal returns a draw from the standard normal distribution.
	Normal() float64
	// Uniform returns a draw from the uniform distribution on [0, 1).
	Uniform() float64
}

type dist struct {
	normal  distuv.Normal
	uniform distuv.Uniform
}

// New returns a Source backed by a PCG generator. Sources with the same seed produce the
// same sequence of draws for the same sequence of calls.
func New(seed uint64) Source {
	src := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	return &dist{
		normal:  distuv.Normal{Mu: 0, Sigma: 1, Src: src},
		uniform: distuv.Uniform{Min: 0, Max: 1, Src: src},
	}
}

func (d *dist) Normal() float64  { return d.normal.Rand() }
func (d *dist) Uniform() float64 { return d.uniform.Rand() }

type goRNG struct {
	gauss   *rng.GaussianGenerator
	uniform *rng.UniformGenerator
}

// NewGoRNG returns a Source backed by go_rng generators. The normal and uniform streams are
// seeded separately so that neither depends on how often the other is consulted.
func NewGoRNG(seed int64) Source {
	return &goRNG{
		gauss:   rng.NewGaussianGenerator(seed),
		uniform: rng.NewUniformGenerator(seed + 1),
	}
}

func (g *goRNG) Normal() float64  { return g.gauss.StdGaussian() }
func (g *goRNG) Uniform() float64 { return g.uniform.Float64() }
