package dataset

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
	"gorgonia.org/tensor"
)

func TestFromMatrices(t *testing.T) {
	assert := assert.New(t)
	inputs := mat.NewDense(3, 2, []float64{
		1, 0,
		0, 1,
		1, 1,
	})
	targets := mat.NewDense(3, 1, []float64{0, 1, 2})

	m, err := FromMatrices(inputs, targets)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(3, m.Samples())
	assert.True(m.HasTargets())
	assert.Equal([]float64{0, 1}, m.Instance(1))
	assert.Equal([]float64{2}, m.Target(2))
	samples, features := m.Dims()
	assert.Equal(3, samples)
	assert.Equal(2, features)

	_, err = FromMatrices(inputs, mat.NewDense(2, 1, nil))
	assert.Error(err, "mismatched row counts should be rejected")

	_, err = FromMatrices(nil, nil)
	assert.Error(err)
}

func TestInstanceIsACopy(t *testing.T) {
	m, err := FromRows([][]float64{{1, 0, 1}})
	if err != nil {
		t.Fatal(err)
	}
	x := m.Instance(0)
	x[0] = 42
	if diff := cmp.Diff([]float64{1, 0, 1}, m.Instance(0)); diff != "" {
		t.Errorf("instance was modified through a returned slice (-want +got):\n%s", diff)
	}
}

func TestFromRows(t *testing.T) {
	_, err := FromRows([][]float64{{1, 2}, {3}})
	assert.Error(t, err, "ragged rows should be rejected")
	_, err = FromRows(nil)
	assert.Error(t, err, "empty rows should be rejected")
}

func TestFromTensor(t *testing.T) {
	assert := assert.New(t)
	inputs := tensor.New(tensor.WithShape(2, 3), tensor.WithBacking([]float64{
		1, 0, 1,
		0, 1, 0,
	}))
	targets := tensor.New(tensor.WithShape(2, 1), tensor.WithBacking([]float64{1, 0}))

	m, err := FromTensor(inputs, targets)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	assert.Equal(2, m.Samples())
	assert.Equal([]float64{0, 1, 0}, m.Instance(1))
	assert.Equal([]float64{1}, m.Target(0))

	vec := tensor.New(tensor.WithShape(3), tensor.WithBacking([]float64{1, 2, 3}))
	_, err = FromTensor(vec, nil)
	assert.Error(err, "vectors are not matrices")

	f32 := tensor.New(tensor.WithShape(1, 2), tensor.WithBacking([]float32{1, 2}))
	_, err = FromTensor(f32, nil)
	assert.Error(err, "only float64 tensors are supported")
}

func TestReadCSV(t *testing.T) {
	assert := assert.New(t)
	const data = `1, 0.5, 0.25
0, 1, 0
`
	m, err := ReadCSV(strings.NewReader(data), 1)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	assert.Equal(2, m.Samples())
	assert.Equal([]float64{0.5, 0.25}, m.Instance(0))
	assert.Equal([]float64{0}, m.Target(1))

	m, err = ReadCSV(strings.NewReader(data), 0)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	assert.False(m.HasTargets())
	assert.Equal([]float64{1, 0.5, 0.25}, m.Instance(0))

	_, err = ReadCSV(strings.NewReader("1, x\n"), 0)
	assert.Error(err)
	_, err = ReadCSV(strings.NewReader(data), 3)
	assert.Error(err, "records must carry inputs after the targets")
}

func TestBarsAndStripes(t *testing.T) {
	for side := 1; side <= 4; side++ {
		t.Run(fmt.Sprintf("side %d", side), func(t *testing.T) {
			m, err := BarsAndStripes(side)
			if err != nil {
				t.Fatalf("%+v", err)
			}
			want := 2*(1<<uint(side)) - 2
			if m.Samples() != want {
				t.Fatalf("expected %d images, got %d", want, m.Samples())
			}
			seen := make(map[string]bool)
			for n := 0; n < m.Samples(); n++ {
				x := m.Instance(n)
				key := fmt.Sprint(x)
				if seen[key] {
					t.Errorf("image %d is a duplicate: %v", n, x)
				}
				seen[key] = true
				if !isBarsOrStripes(x, side) {
					t.Errorf("image %d is neither bars nor stripes: %v", n, x)
				}
			}
		})
	}
}

func TestBarsAndStripesSide(t *testing.T) {
	for _, side := range []int{-1, 0, MaxSide + 1, 64} {
		m, err := BarsAndStripes(side)
		assert.Nil(t, m)
		assert.Error(t, err, "side %d", side)
	}
}

func isBarsOrStripes(x []float64, side int) bool {
	bars, stripes := true, true
	for r := 0; r < side; r++ {
		for c := 0; c < side; c++ {
			if x[r*side+c] != x[c] {
				bars = false
			}
			if x[r*side+c] != x[r*side] {
				stripes = false
			}
		}
	}
	return bars || stripes
}
