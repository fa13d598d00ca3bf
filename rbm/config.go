package rbm

import "math"

// Config configures a restricted Boltzmann machine.
type Config struct {
	Visible int     // number of visible units
	Hidden  int     // number of hidden units
	CDSteps int     // Gibbs steps per daydream, the n in CD-n
	StdDev  float64 // standard deviation of the initial weights and biases
}

// DefaultConf returns a CD-1 configuration.
func DefaultConf(visible, hidden int) Config {
	return Config{
		Visible: visible,
		Hidden:  hidden,
		CDSteps: 1,
		StdDev:  0.01,
	}
}

func (conf Config) IsValid() bool {
	return conf.Visible >= 1 &&
		conf.Hidden >= 1 &&
		conf.CDSteps >= 1 &&
		conf.StdDev > 0 &&
		!math.IsInf(conf.StdDev, 1)
}

// Dimension is the length of the flattened parameter vector: D·H + D + H.
func (conf Config) Dimension() int {
	return conf.Hidden*conf.Visible + conf.Visible + conf.Hidden
}
