package boltzmann

import (
	"github.com/gorgonia/boltzmann/dataset"
	"github.com/pkg/errors"
)

// Binarize sets every pixel of img above threshold to 1 and every other pixel to 0.
// prealloc is reused if it has the right length.
func Binarize(img []float64, threshold float64, prealloc []float64) []float64 {
	if len(prealloc) != len(img) {
		prealloc = make([]float64, len(img))
	}
	for i, v := range img {
		if v > threshold {
			prealloc[i] = 1
		} else {
			prealloc[i] = 0
		}
	}
	return prealloc
}

// RotateImage rotates a row-major m×n image a quarter turn counterclockwise.
func RotateImage(img []float64, m, n int) ([]float64, error) {
	if m != n {
		return nil, errors.Errorf("Cannot handle m %d, n %d. This function only takes square images", m, n)
	}
	if len(img) != m*n {
		return nil, errors.Errorf("image has %d pixels, expected %d", len(img), m*n)
	}
	copied := make([]float64, len(img))
	copy(copied, img)
	it := MakeIterator(copied, m, n)
	for i := 0; i < m/2; i++ {
		mi1 := m - i - 1
		for j := i; j < mi1; j++ {
			mj1 := m - j - 1
			tmp := it[i][j]
			// right to top
			it[i][j] = it[j][mi1]

			// bottom to right
			it[j][mi1] = it[mi1][mj1]

			// left to bottom
			it[mi1][mj1] = it[mj1][i]

			// tmp is left
			it[mj1][i] = tmp
		}
	}
	ReturnIterator(m, n, it)
	return copied, nil
}

// RotationAugmenter returns an Augmenter that yields an m×m image followed by its three
// quarter turns. Instances that are not m×m are returned unchanged.
func RotationAugmenter(m int) Augmenter {
	return func(x []float64) [][]float64 {
		retVal := [][]float64{x}
		cur := x
		for i := 0; i < 3; i++ {
			rot, err := RotateImage(cur, m, m)
			if err != nil {
				return retVal
			}
			retVal = append(retVal, rot)
			cur = rot
		}
		return retVal
	}
}

// Augment applies aug to every instance of d and collects the results into a new dataset.
func Augment(d dataset.Dataset, aug Augmenter) (*dataset.Matrix, error) {
	var rows [][]float64
	for i := 0; i < d.Samples(); i++ {
		rows = append(rows, aug(d.Instance(i))...)
	}
	retVal, err := dataset.FromRows(rows)
	if err != nil {
		return nil, errors.WithMessage(err, "unable to augment dataset")
	}
	return retVal, nil
}
