package boltzmann

import (
	"io"
	"math"

	"github.com/gorgonia/boltzmann/rbm"
)

type Config struct {
	Name         string
	RBMConf      rbm.Config
	LearnRate    float64
	Seed         uint64 // 0 seeds from the clock
	UseOptimizer bool   // train through learner.SGD instead of rbm.Train
	Workers      int    // mean-field evaluators; 0 means one per CPU

	// extensions
	OutputEncoder OutputEncoder
	Augmenter     Augmenter
}

func (c Config) IsValid() bool {
	return c.RBMConf.IsValid() &&
		c.LearnRate >= 0 &&
		!math.IsInf(c.LearnRate, 1) &&
		c.Workers >= 0
}

// OutputEncoder encodes the entire meta state as whatever.
//
// An example OutputEncoder is the gif Encoder. Another example would be a logger.
type OutputEncoder interface {
	Encode(ms MetaState) error
	Flush() error
}

// MetaState is the state of training after an epoch.
type MetaState interface {
	Name() string
	Epoch() int
	ReconstructionError() float64
	MeanFieldError() float64
	Machine() *rbm.RBM
}

// Augmenter takes an instance, and creates more instances from it. The instance itself
// should be part of the result if it is to be trained on.
type Augmenter func(x []float64) [][]float64

// Inferer is anything that can reconstruct an instance deterministically.
type Inferer interface {
	Infer(x []float64) (hidden, visible []float64, err error)
	io.Closer
}

// ExecLogger is anything that can return the execution log.
type ExecLogger interface {
	ExecLog() string
}
