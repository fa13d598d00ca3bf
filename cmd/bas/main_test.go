package main

import (
	"bytes"
	"image/gif"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorgonia/boltzmann/rbm"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func writeCSV(t *testing.T, rows ...string) string {
	filename := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(filename, []byte(strings.Join(rows, "\n")+"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	return filename
}

func run(t *testing.T, args ...string) (string, error) {
	var buf bytes.Buffer
	app := newApp()
	app.Writer = &buf
	app.ErrWriter = &buf
	err := app.Run(append([]string{"bas"}, args...))
	return buf.String(), err
}

func TestImageGeometry(t *testing.T) {
	assert := assert.New(t)

	g, err := imageGeometry(0, 0, 9)
	assert.NoError(err)
	assert.Equal(geometry{3, 3}, g)
	assert.True(g.isSquare())

	g, err = imageGeometry(0, 0, 6)
	assert.NoError(err)
	assert.False(g.isImage(), "6 values are not a square")

	g, err = imageGeometry(2, 3, 6)
	assert.NoError(err)
	assert.Equal(geometry{2, 3}, g)
	assert.True(g.isImage())
	assert.False(g.isSquare())

	_, err = imageGeometry(2, 2, 6)
	assert.Equal(rbm.ErrDimensionMismatch, errors.Cause(err))
	_, err = imageGeometry(3, 0, 6)
	assert.Error(err)
	_, err = imageGeometry(-2, -3, 6)
	assert.Error(err)
}

func TestTrainCSVFrames(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	in := writeCSV(t,
		"1,1,1,0,0,0",
		"0,0,0,1,1,1",
		"1,0,1,0,1,0",
		"0,1,0,1,0,1",
	)
	common := []string{"train", "--in", in, "--hidden", "3", "--epochs", "2", "--seed", "1", "--workers", "1",
		"--save", filepath.Join(dir, "csv.model")}
	out := filepath.Join(dir, "csv.gif")

	// six values per instance have no implied shape
	_, err := run(t, append(common, "--gif", out)...)
	assert.Error(err)
	_, err = os.Stat(out)
	assert.True(os.IsNotExist(err), "nothing is trained or written")
	_, err = run(t, append(common, "--serve", "127.0.0.1:0")...)
	assert.Error(err)

	_, err = run(t, append(common, "--rows", "2", "--cols", "2", "--gif", out)...)
	assert.Equal(rbm.ErrDimensionMismatch, errors.Cause(err))

	_, err = run(t, append(common, "--rows", "2", "--cols", "3", "--augment")...)
	assert.Error(err, "a 2×3 image cannot be rotated")

	log, err := run(t, append(common, "--rows", "2", "--cols", "3", "--gif", out)...)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	assert.Contains(log, "data.csv")
	assert.NotContains(log, "Bars and Stripes")

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	g, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatal(err)
	}
	assert.Len(g.Image, 2)
}

func TestTrainCSVSquare(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	in := writeCSV(t,
		"1,1,1,0,0,0,0,0,0",
		"0,0,0,1,1,1,0,0,0",
		"1,0,0,1,0,0,1,0,0",
		"0,0,1,0,0,1,0,0,1",
	)
	_, err := run(t, "train", "--in", in, "--hidden", "3", "--epochs", "2", "--seed", "1", "--workers", "1",
		"--augment", "--gif", filepath.Join(dir, "sq.gif"), "--save", filepath.Join(dir, "sq.model"))
	if err != nil {
		t.Fatalf("%+v", err)
	}
	_, err = os.Stat(filepath.Join(dir, "sq.gif"))
	assert.NoError(err)
}

func TestBarsSide(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	model := filepath.Join(dir, "bas.model")
	for _, side := range []string{"0", "-3", "1000"} {
		_, err := run(t, "train", "--side", side, "--save", model)
		assert.Error(err, "side %s", side)
		_, err = run(t, "reconstruct", "--side", side, "--load", model)
		assert.Error(err, "side %s", side)
	}

	log, err := run(t, "train", "--side", "3", "--hidden", "4", "--epochs", "2", "--seed", "1", "--workers", "1",
		"--save", model)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	assert.Contains(log, "Bars and Stripes")

	out, err := run(t, "reconstruct", "--side", "3", "--load", model)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	assert.Contains(out, "mean-field error")

	_, err = run(t, "reconstruct", "--side", "4", "--load", model)
	assert.Equal(rbm.ErrDimensionMismatch, errors.Cause(err))
}
