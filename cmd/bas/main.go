// Command bas trains a restricted Boltzmann machine on bars and stripes, or on a CSV file.
package main

import (
	"fmt"
	"log"
	"math"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gorgonia/boltzmann"
	"github.com/gorgonia/boltzmann/dataset"
	"github.com/gorgonia/boltzmann/encoding/gif"
	"github.com/gorgonia/boltzmann/encoding/mjpeg"
	"github.com/gorgonia/boltzmann/rbm"
	"github.com/pkg/errors"
	"gopkg.in/urfave/cli.v1"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatalf("%+v", err)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "bas"
	app.Usage = "Train restricted Boltzmann machines with contrastive divergence"
	app.Version = "0.1.0"
	app.Commands = []cli.Command{
		{
			Name:  "train",
			Usage: "Train a machine",
			Flags: []cli.Flag{
				cli.IntFlag{Name: "side", Value: 4, Usage: "side of the bars and stripes images"},
				cli.StringFlag{Name: "in", Usage: "CSV `file` to train on instead of bars and stripes"},
				cli.IntFlag{Name: "targets", Usage: "number of leading target columns in the CSV file"},
				cli.IntFlag{Name: "rows", Usage: "image rows of a CSV instance, 0 means square"},
				cli.IntFlag{Name: "cols", Usage: "image columns of a CSV instance, 0 means square"},
				cli.IntFlag{Name: "hidden", Value: 8, Usage: "number of hidden units"},
				cli.IntFlag{Name: "cd", Value: 1, Usage: "Gibbs steps per daydream"},
				cli.Float64Flag{Name: "stddev", Value: 0.01, Usage: "standard deviation of the initial parameters"},
				cli.Float64Flag{Name: "learn", Value: 0.1, Usage: "learn rate"},
				cli.IntFlag{Name: "epochs", Value: 100, Usage: "number of epochs"},
				cli.Uint64Flag{Name: "seed", Usage: "random seed, 0 seeds from the clock"},
				cli.IntFlag{Name: "workers", Usage: "mean-field evaluators, 0 means one per CPU"},
				cli.BoolFlag{Name: "optimizer", Usage: "train through the generic SGD driver"},
				cli.BoolFlag{Name: "augment", Usage: "add the rotations of every image, which must be square"},
				cli.StringFlag{Name: "gif", Usage: "write the receptive fields of every epoch to this `file`"},
				cli.IntFlag{Name: "scale", Value: 8, Usage: "pixels per visible unit in rendered frames"},
				cli.StringFlag{Name: "serve", Usage: "stream the receptive fields as MJPEG on this `address`"},
				cli.StringFlag{Name: "stats", Usage: "write the per epoch errors to this CSV `file`"},
				cli.StringFlag{Name: "save", Value: "bas.model", Usage: "`file` to save the model to"},
				cli.StringFlag{Name: "dot", Usage: "write the trained machine as a Graphviz `file`"},
			},
			Action: train,
		},
		{
			Name:  "reconstruct",
			Usage: "Print the mean-field reconstructions of bars and stripes",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "load", Value: "bas.model", Usage: "model `file`"},
				cli.IntFlag{Name: "side", Value: 4, Usage: "side of the bars and stripes images"},
				cli.Float64Flag{Name: "threshold", Value: 0.5, Usage: "binarisation threshold"},
			},
			Action: reconstruct,
		},
	}
	return app
}

// geometry is the shape of the image an instance represents.
type geometry struct {
	rows, cols int
}

// imageGeometry returns the shape of instances with visible values. Explicit rows and cols win;
// otherwise a perfect square is assumed. The zero geometry means the instances are not images.
func imageGeometry(rows, cols, visible int) (geometry, error) {
	if rows != 0 || cols != 0 {
		if rows < 1 || cols < 1 {
			return geometry{}, errors.Errorf("rows %d and cols %d must both be positive", rows, cols)
		}
		if rows*cols != visible {
			return geometry{}, errors.Wrapf(rbm.ErrDimensionMismatch, "%d×%d images do not hold %d values", rows, cols, visible)
		}
		return geometry{rows, cols}, nil
	}
	side := int(math.Sqrt(float64(visible)))
	for ; side*side < visible; side++ {
	}
	if side*side != visible {
		return geometry{}, nil
	}
	return geometry{side, side}, nil
}

func (g geometry) isImage() bool  { return g.rows > 0 && g.cols > 0 }
func (g geometry) isSquare() bool { return g.isImage() && g.rows == g.cols }

func train(c *cli.Context) error {
	var (
		data *dataset.Matrix
		name string
		geom geometry
		err  error
	)
	if in := c.String("in"); in != "" {
		f, err := os.Open(in)
		if err != nil {
			return errors.WithStack(err)
		}
		defer f.Close()
		if data, err = dataset.ReadCSV(f, c.Int("targets")); err != nil {
			return err
		}
		_, visible := data.Dims()
		if geom, err = imageGeometry(c.Int("rows"), c.Int("cols"), visible); err != nil {
			return err
		}
		name = filepath.Base(in)
	} else {
		side := c.Int("side")
		if data, err = dataset.BarsAndStripes(side); err != nil {
			return err
		}
		geom = geometry{side, side}
		name = "Bars and Stripes"
	}
	_, visible := data.Dims()

	framed := c.String("gif") != "" || c.String("serve") != ""
	if framed && !geom.isImage() {
		return errors.Errorf("cannot render %d values per instance as frames, set --rows and --cols", visible)
	}
	if c.Bool("augment") && !geom.isSquare() {
		return errors.Errorf("cannot rotate %d×%d instances, augmentation needs square images", geom.rows, geom.cols)
	}

	conf := boltzmann.Config{
		Name: name,
		RBMConf: rbm.Config{
			Visible: visible,
			Hidden:  c.Int("hidden"),
			CDSteps: c.Int("cd"),
			StdDev:  c.Float64("stddev"),
		},
		LearnRate:    c.Float64("learn"),
		Seed:         c.Uint64("seed"),
		UseOptimizer: c.Bool("optimizer"),
		Workers:      c.Int("workers"),
	}
	if c.Bool("augment") {
		conf.Augmenter = boltzmann.RotationAugmenter(geom.rows)
	}
	if !conf.IsValid() {
		return errors.Errorf("invalid configuration %+v", conf)
	}

	var encoders multiEncoder
	if filename := c.String("gif"); filename != "" {
		f, err := os.OpenFile(filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
		if err != nil {
			return errors.WithStack(err)
		}
		defer f.Close()
		enc := gif.NewGifEncoder(geom.rows, geom.cols, c.Int("scale"))
		enc.Writer = f
		encoders = append(encoders, enc)
	}
	if addr := c.String("serve"); addr != "" {
		enc := mjpeg.NewEncoder(geom.rows, geom.cols, c.Int("scale"))
		defer enc.Close()
		go func(h http.Handler) {
			mux := http.NewServeMux()
			mux.Handle("/", h)
			log.Printf("http://%s", addr)
			log.Println(http.ListenAndServe(addr, mux))
		}(enc)
		encoders = append(encoders, enc)
	}
	if len(encoders) > 0 {
		conf.OutputEncoder = encoders
	}

	t := boltzmann.New(conf)
	defer t.Close()
	if err = t.Learn(data, c.Int("epochs")); err != nil {
		return err
	}
	t.Log(c.App.Writer)

	if filename := c.String("stats"); filename != "" {
		if err = t.Dump(filename); err != nil {
			return err
		}
	}
	if filename := c.String("dot"); filename != "" {
		if err = os.WriteFile(filename, []byte(t.Machine().ToDot()), 0644); err != nil {
			return errors.WithStack(err)
		}
	}
	return t.Save(c.String("save"))
}

func reconstruct(c *cli.Context) error {
	side := c.Int("side")
	data, err := dataset.BarsAndStripes(side)
	if err != nil {
		return err
	}
	t := boltzmann.New(boltzmann.Config{
		RBMConf: rbm.DefaultConf(side*side, 1),
		Workers: 1,
	})
	defer t.Close()
	if err = t.Load(c.String("load")); err != nil {
		return err
	}
	if v := t.Machine().Visible; v != side*side {
		return errors.Wrapf(rbm.ErrDimensionMismatch, "model has %d visible units, %d×%d images have %d", v, side, side, side*side)
	}

	inf, err := rbm.Infer(t.Machine())
	if err != nil {
		return err
	}
	defer inf.Close()
	for i := 0; i < data.Samples(); i++ {
		x := data.Instance(i)
		_, pv, err := inf.Infer(x)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "%v → %v\n", x, boltzmann.Binarize(pv, c.Float64("threshold"), nil))
	}
	e, err := rbm.MeanFieldError(inf, data)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "mean-field error %v\n", e)
	return nil
}

// multiEncoder fans every epoch out to several encoders.
type multiEncoder []boltzmann.OutputEncoder

func (m multiEncoder) Encode(ms boltzmann.MetaState) error {
	for _, enc := range m {
		if err := enc.Encode(ms); err != nil {
			return err
		}
	}
	return nil
}

func (m multiEncoder) Flush() error {
	for _, enc := range m {
		if err := enc.Flush(); err != nil {
			return err
		}
	}
	return nil
}
