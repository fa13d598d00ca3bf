package dataset

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ReadCSV reads a Matrix from r, one instance per record.
// The first numTargets columns of every record are targets, the rest are inputs.
// Ex: t0, ..., tn, x0, ..., xm
func ReadCSV(r io.Reader, numTargets int) (*Matrix, error) {
	if numTargets < 0 {
		return nil, errors.Errorf("invalid target count %d", numTargets)
	}
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "reading csv")
	}

	var inputs, targets [][]float64
	for i, rec := range records {
		if len(rec) <= numTargets {
			return nil, errors.Errorf("record %d has %d fields, need more than %d", i, len(rec), numTargets)
		}
		out, err := parseFields(rec[:numTargets])
		if err != nil {
			return nil, errors.Wrapf(err, "record %d", i)
		}
		in, err := parseFields(rec[numTargets:])
		if err != nil {
			return nil, errors.Wrapf(err, "record %d", i)
		}
		inputs = append(inputs, in)
		targets = append(targets, out)
	}

	in, err := denseFromRows(inputs)
	if err != nil {
		return nil, err
	}
	if numTargets == 0 {
		return FromMatrices(in, nil)
	}
	out, err := denseFromRows(targets)
	if err != nil {
		return nil, err
	}
	return FromMatrices(in, out)
}

func parseFields(fields []string) ([]float64, error) {
	retVal := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		retVal[i] = v
	}
	return retVal, nil
}
