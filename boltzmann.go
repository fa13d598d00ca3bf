// Package boltzmann trains restricted Boltzmann machines epoch by epoch, keeping statistics
// of their reconstruction errors and feeding every epoch to an optional OutputEncoder.
package boltzmann

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gorgonia/boltzmann/dataset"
	"github.com/gorgonia/boltzmann/learner"
	"github.com/gorgonia/boltzmann/random"
	"github.com/gorgonia/boltzmann/rbm"
	"github.com/pkg/errors"
)

var (
	_ MetaState  = (*Trainer)(nil)
	_ ExecLogger = (*Trainer)(nil)
)

// Trainer is the top level structure and the entry point of the API.
// It wraps a machine, the evaluators measuring it, and the encoders watching it.
type Trainer struct {
	// state
	Statistics
	machine   *rbm.RBM
	eval      *Evaluator
	epoch     int
	recon     float64
	meanField float64

	// config
	name         string
	learnRate    float64
	useOptimizer bool
	workers      int
	aug          Augmenter

	// io
	outEnc OutputEncoder
	buf    bytes.Buffer
	logger *log.Logger
}

// New creates a Trainer with a freshly initialized machine. It panics if conf is not valid.
func New(conf Config) *Trainer {
	if !conf.IsValid() {
		panic("Config is not valid. Unable to proceed")
	}
	seed := conf.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	m, err := rbm.New(conf.RBMConf, random.New(seed))
	if err != nil {
		panic(fmt.Sprintf("%+v", err))
	}
	m.Initialize()

	name := conf.Name
	if name == "" {
		name = "UNNAMED"
	}
	retVal := &Trainer{
		Statistics:   makeStatistics(),
		machine:      m,
		name:         name,
		learnRate:    conf.LearnRate,
		useOptimizer: conf.UseOptimizer,
		workers:      conf.Workers,
		aug:          conf.Augmenter,
		outEnc:       conf.OutputEncoder,
	}
	retVal.logger = log.New(&retVal.buf, "", log.Ltime)
	return retVal
}

// Learn trains the machine on data for the given number of epochs. After each epoch the
// errors are recorded and the output encoder, if any, encodes the Trainer. The output encoder
// is flushed once training ends.
func (t *Trainer) Learn(data dataset.Dataset, epochs int) (err error) {
	if t.aug != nil {
		if data, err = Augment(data, t.aug); err != nil {
			return err
		}
	}
	t.machine.Bind(data)
	if t.eval == nil {
		if t.eval, err = NewEvaluator(t.machine, t.workers); err != nil {
			return err
		}
	}

	for i := 0; i < epochs; i++ {
		t.buf.Reset()
		t.logger.Printf("Epoch %d of %s. %d instances", t.epoch, t.name, data.Samples())
		t.logger.SetPrefix("\t")
		if err = t.trainEpoch(); err != nil {
			return errors.WithMessage(err, fmt.Sprintf("Train fail at epoch %d", t.epoch))
		}

		if err = t.eval.Update(t.machine); err != nil {
			return err
		}
		if t.meanField, err = t.eval.Error(data); err != nil {
			return err
		}
		t.logger.SetPrefix("")
		t.logger.Printf("Reconstruction error %v, mean-field error %v", t.recon, t.meanField)
		log.Printf("%s epoch %d: reconstruction error %v, mean-field error %v", t.name, t.epoch, t.recon, t.meanField)
		t.update(t.epoch, t.recon, t.meanField)

		if t.outEnc != nil {
			if err = t.outEnc.Encode(t); err != nil {
				return errors.WithMessage(err, "unable to encode epoch")
			}
		}
		t.epoch++
	}
	if t.outEnc != nil {
		return t.outEnc.Flush()
	}
	return nil
}

func (t *Trainer) trainEpoch() (err error) {
	if t.useOptimizer {
		var res learner.Result
		sgd := learner.SGD{LearnRate: t.learnRate, Epochs: 1, Logger: t.logger}
		if res, err = sgd.Optimize(t.machine); err != nil {
			return err
		}
		t.recon = res.Error
		return nil
	}
	if err = t.machine.Train(t.learnRate, 1); err != nil {
		return err
	}
	t.recon, err = t.machine.Error()
	return err
}

func (t *Trainer) Name() string                 { return t.name }
func (t *Trainer) Epoch() int                   { return t.epoch }
func (t *Trainer) ReconstructionError() float64 { return t.recon }
func (t *Trainer) MeanFieldError() float64      { return t.meanField }
func (t *Trainer) Machine() *rbm.RBM            { return t.machine }

// ExecLog returns the log of the last epoch.
func (t *Trainer) ExecLog() string { return t.buf.String() }

// Log writes the log of the last epoch to w.
func (t *Trainer) Log(w io.Writer) { fmt.Fprint(w, t.buf.String()) }

// Close releases the evaluators.
func (t *Trainer) Close() error {
	if t.eval == nil {
		return nil
	}
	err := t.eval.Close()
	t.eval = nil
	return err
}

// Save the machine into filename
func (t *Trainer) Save(filename string) error {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()

	enc := gob.NewEncoder(f)
	if err = enc.Encode(t.machine); err != nil {
		return errors.WithStack(err)
	}
	log.Printf("Saved %s to %s", t.name, filename)
	return nil
}

// Load the machine from filename. The loaded machine keeps the Trainer's random source and
// dataset.
func (t *Trainer) Load(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()

	dec := gob.NewDecoder(f)
	if err = dec.Decode(t.machine); err != nil {
		return errors.WithStack(err)
	}
	if t.eval != nil {
		// the loaded machine may have another shape
		if err = t.eval.Close(); err != nil {
			return err
		}
		t.eval = nil
	}
	log.Printf("Loaded %s from %s", t.name, filename)
	return nil
}
