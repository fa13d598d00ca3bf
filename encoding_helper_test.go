package boltzmann

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRotateImage(t *testing.T) {
	//
	// ⎢ 1 0 0 0 2 ⎥
	// ⎢ 0 1 0 2 0 ⎥ // this line is to break rotational symmetry
	// ⎢ 0 0 0 0 0 ⎥
	// ⎢ 0 0 0 0 0 ⎥
	// ⎢ 2 0 0 0 1 ⎥

	m, n := 5, 5
	img := []float64{
		1, 0, 0, 0, 2,
		0, 1, 0, 2, 0,
		0, 0, 0, 0, 0,
		0, 0, 0, 0, 0,
		2, 0, 0, 0, 1,
	}
	rot1, err := RotateImage(img, m, n)
	if err != nil {
		t.Fatal(err)
	}
	t.Logf("1:\n%v", rot1)
	assert.Equal(t, []float64{
		2, 0, 0, 0, 1,
		0, 2, 0, 0, 0,
		0, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		1, 0, 0, 0, 2,
	}, rot1)

	rot2, err := RotateImage(rot1, m, n)
	if err != nil {
		t.Fatal(err)
	}
	rot3, err := RotateImage(rot2, m, n)
	if err != nil {
		t.Fatal(err)
	}
	rot4, err := RotateImage(rot3, m, n)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, img, rot4, "After 4 rotations the image should be the same")
	assert.Equal(t, 1.0, img[0], "the input must not be modified")
}

func TestRotateImageErrors(t *testing.T) {
	_, err := RotateImage(make([]float64, 6), 2, 3)
	assert.Error(t, err)
	_, err = RotateImage(make([]float64, 8), 3, 3)
	assert.Error(t, err)
}

func TestBinarize(t *testing.T) {
	assert := assert.New(t)
	img := []float64{0, 0.2, 0.5, 0.51, 1}
	assert.Equal([]float64{0, 0, 0, 1, 1}, Binarize(img, 0.5, nil))

	prealloc := make([]float64, len(img))
	got := Binarize(img, 0.1, prealloc)
	assert.Equal([]float64{0, 1, 1, 1, 1}, got)
	assert.Equal(&prealloc[0], &got[0])
}

func TestAugment(t *testing.T) {
	assert := assert.New(t)
	d := bars(t, 3)
	aug, err := Augment(d, RotationAugmenter(3))
	if err != nil {
		t.Fatalf("%+v", err)
	}
	assert.Equal(4*d.Samples(), aug.Samples())
	for i := 0; i < d.Samples(); i++ {
		assert.Equal(d.Instance(i), aug.Instance(4*i))
	}

	// a rotated bar is a stripe
	seen := make(map[[9]float64]bool)
	for i := 0; i < d.Samples(); i++ {
		var k [9]float64
		copy(k[:], d.Instance(i))
		seen[k] = true
	}
	for i := 0; i < aug.Samples(); i++ {
		var k [9]float64
		copy(k[:], aug.Instance(i))
		assert.True(seen[k], "%v", aug.Instance(i))
	}

	odd := RotationAugmenter(3)([]float64{1, 2})
	assert.Len(odd, 1)
}
