// Package render draws the receptive fields of a machine's hidden units as images.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/chewxy/math32"
	"github.com/golang/freetype/truetype"
	"github.com/gorgonia/boltzmann/rbm"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/math/fixed"
	"gorgonia.org/vecf32"
)

var regular *truetype.Font

const (
	dpi             = 144.0
	fontsize        = 12.0
	lineheight      = 1.2
	pad             = 10
	gap             = 2
	dummyLongString = `Epoch 100000, Error 0.0000 / 0.0000`
)

func init() {
	var err error
	if regular, err = truetype.Parse(gomono.TTF); err != nil {
		panic(err)
	}
}

// Palette has 256 greys. Index i is Gray{i}.
var Palette color.Palette

func init() {
	Palette = make(color.Palette, 256)
	for i := range Palette {
		Palette[i] = color.Gray{uint8(i)}
	}
}

// Renderer draws frames for machines whose visible layer is a Rows×Cols image.
type Renderer struct {
	Rows, Cols int
	Scale      int // pixels per visible unit

	font.Drawer
}

// New creates a Renderer.
func New(rows, cols, scale int) (*Renderer, error) {
	if rows < 1 || cols < 1 || scale < 1 {
		return nil, errors.Errorf("invalid frame geometry %d×%d at scale %d", rows, cols, scale)
	}
	face := truetype.NewFace(regular, &truetype.Options{
		Size:    fontsize,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
	return &Renderer{
		Rows:  rows,
		Cols:  cols,
		Scale: scale,
		Drawer: font.Drawer{
			Src:  image.Black,
			Face: face,
		},
	}, nil
}

// Bounds returns the size of a frame for a machine with the given number of hidden units and
// the given number of caption lines.
func (r *Renderer) Bounds(hidden, lines int) image.Rectangle {
	across, down := grid(hidden)
	gridW := across*(r.Cols*r.Scale+gap) - gap
	gridH := down*(r.Rows*r.Scale+gap) - gap

	w := gridW
	if tw := font.MeasureString(r.Face, dummyLongString).Ceil(); tw > w {
		w = tw
	}
	h := gridH + lines*lineHeight()
	return image.Rect(0, 0, w+2*pad, h+2*pad)
}

// Render draws one tile per hidden unit, showing its weights to the visible units, followed by
// the caption. The size of the frame only depends on the shape of m and the number of lines.
func (r *Renderer) Render(m *rbm.RBM, caption []string) (*image.Paletted, error) {
	if m.Visible != r.Rows*r.Cols {
		return nil, errors.Wrapf(rbm.ErrDimensionMismatch, "machine has %d visible units, frames are %d×%d", m.Visible, r.Rows, r.Cols)
	}
	im := image.NewPaletted(r.Bounds(m.Hidden, len(caption)), Palette)
	draw.Draw(im, im.Bounds(), image.White, image.Point{}, draw.Src)

	w := m.Params().W
	across, _ := grid(m.Hidden)
	tw, th := r.Cols*r.Scale, r.Rows*r.Scale
	for j := 0; j < m.Hidden; j++ {
		x0 := pad + (j%across)*(tw+gap)
		y0 := pad + (j/across)*(th+gap)
		for i, grey := range Normalize(w.RawRowView(j)) {
			px, py := x0+(i%r.Cols)*r.Scale, y0+(i/r.Cols)*r.Scale
			for dy := 0; dy < r.Scale; dy++ {
				for dx := 0; dx < r.Scale; dx++ {
					im.SetColorIndex(px+dx, py+dy, grey)
				}
			}
		}
	}

	_, down := grid(m.Hidden)
	y := pad + down*(th+gap) - gap
	r.Dst = im
	for _, s := range caption {
		y += lineHeight()
		r.Dot = fixed.P(pad, y)
		r.DrawString(s)
	}
	return im, nil
}

// Normalize maps weights to grey levels, the smallest to black and the largest to white.
// Non-finite weights are treated as zero. If all weights are equal they map to mid grey.
func Normalize(weights []float64) []uint8 {
	if len(weights) == 0 {
		return nil
	}
	f := make([]float32, len(weights))
	for i, v := range weights {
		f[i] = float32(v)
		if math32.IsNaN(f[i]) || math32.IsInf(f[i], 0) {
			f[i] = 0
		}
	}

	retVal := make([]uint8, len(f))
	lo, hi := vecf32.MinOf(f), vecf32.MaxOf(f)
	if hi == lo {
		for i := range retVal {
			retVal[i] = 128
		}
		return retVal
	}
	vecf32.Trans(f, -lo)
	vecf32.Scale(f, 255/(hi-lo))
	for i, v := range f {
		v = math32.Min(math32.Max(v, 0), 255)
		retVal[i] = uint8(math32.Floor(v + 0.5))
	}
	return retVal
}

// grid returns how many tiles go across and down for n tiles.
func grid(n int) (across, down int) {
	across = int(math.Ceil(math.Sqrt(float64(n))))
	down = (n + across - 1) / across
	return
}

func lineHeight() int { return int(math.Ceil(fontsize * lineheight * dpi / 72)) }
