package boltzmann

// MakeIterator makes a row iterator over a row-major m×n image. The rows share memory with img.
func MakeIterator(img []float64, m, n int) (retVal [][]float64) {
	retVal = borrowIterator(m, n)
	for i := range retVal {
		start := i * n
		retVal[i] = img[start : start+n : start+n]
	}
	return
}
