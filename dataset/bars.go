package dataset

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// MaxSide is the largest side BarsAndStripes accepts: 2^17 − 2 images of 256 pixels.
const MaxSide = 16

// BarsAndStripes generates every distinct side×side bars-and-stripes image, row major.
// A bars image has whole columns switched on, a stripes image whole rows. The empty and
// the full image are both bars and stripes, so there are 2·2^side − 2 images in total.
// side must be in [1, MaxSide].
func BarsAndStripes(side int) (*Matrix, error) {
	if side < 1 || side > MaxSide {
		return nil, errors.Errorf("side %d is outside [1, %d]", side, MaxSide)
	}
	patterns := 1 << uint(side)
	count := 2*patterns - 2
	inputs := mat.NewDense(count, side*side, nil)

	row := 0
	for mask := 0; mask < patterns; mask++ {
		for r := 0; r < side; r++ {
			for c := 0; c < side; c++ {
				if mask&(1<<uint(c)) != 0 {
					inputs.Set(row, r*side+c, 1)
				}
			}
		}
		row++
	}
	// skip the empty and full masks, already generated as bars
	for mask := 1; mask < patterns-1; mask++ {
		for r := 0; r < side; r++ {
			if mask&(1<<uint(r)) == 0 {
				continue
			}
			for c := 0; c < side; c++ {
				inputs.Set(row, r*side+c, 1)
			}
		}
		row++
	}
	return &Matrix{inputs: inputs}, nil
}
