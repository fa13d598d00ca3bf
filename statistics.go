package boltzmann

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// Statistics records the errors measured after every epoch.
type Statistics struct {
	Epochs    []int
	Errors    []float64 // one-step reconstruction error
	MeanField []float64 // mean-field reconstruction error
}

func makeStatistics() Statistics {
	return Statistics{
		Epochs:    make([]int, 0, 64),
		Errors:    make([]float64, 0, 64),
		MeanField: make([]float64, 0, 64),
	}
}

func (s *Statistics) update(epoch int, recon, meanField float64) {
	s.Epochs = append(s.Epochs, epoch)
	s.Errors = append(s.Errors, recon)
	s.MeanField = append(s.MeanField, meanField)
}

// Dump writes the statistics to filename as CSV, one row per epoch.
func (s *Statistics) Dump(filename string) error {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write([]string{"epoch", "reconstruction_error", "mean_field_error"}); err != nil {
		return err
	}
	records := make([][]string, 0, len(s.Epochs))
	for i, epoch := range s.Epochs {
		records = append(records, []string{
			strconv.Itoa(epoch),
			strconv.FormatFloat(s.Errors[i], 'f', 6, 64),
			strconv.FormatFloat(s.MeanField[i], 'f', 6, 64),
		})
	}
	// WriteAll flushes
	return w.WriteAll(records)
}
