package gif

import (
	"fmt"
	"image/gif"
	"io"

	"github.com/gorgonia/boltzmann"
	"github.com/gorgonia/boltzmann/internal/render"
	"github.com/pkg/errors"
)

// Encoder is a structure that encodes the receptive fields of a machine after every epoch
// according to the boltzmann.OutputEncoder interface. Set Writer before calling Flush.
type Encoder struct {
	io.Writer
	Delay int // per frame, in 100ths of a second

	rows, cols, scale int
	r                 *render.Renderer
	out               *gif.GIF
}

// NewGifEncoder makes an encoder for machines whose visible layer is a rows×cols image,
// drawing every visible unit as a scale×scale square.
func NewGifEncoder(rows, cols, scale int) *Encoder {
	return &Encoder{
		Delay: 50,
		rows:  rows,
		cols:  cols,
		scale: scale,
		out:   &gif.GIF{LoopCount: -1},
	}
}

// Encode adds a frame for ms.
func (enc *Encoder) Encode(ms boltzmann.MetaState) (err error) {
	if enc.r == nil {
		// lazy init
		if enc.r, err = render.New(enc.rows, enc.cols, enc.scale); err != nil {
			return err
		}
	}
	im, err := enc.r.Render(ms.Machine(), caption(ms))
	if err != nil {
		return err
	}
	enc.out.Image = append(enc.out.Image, im)
	enc.out.Delay = append(enc.out.Delay, enc.Delay)
	return nil
}

// Frames returns the number of frames encoded so far.
func (enc *Encoder) Frames() int { return len(enc.out.Image) }

// Flush writes the gif into the writer. Nothing is written if there are no frames.
func (enc *Encoder) Flush() error {
	if len(enc.out.Image) == 0 {
		return nil
	}
	if enc.Writer == nil {
		return errors.New("gif encoder has no writer")
	}
	return errors.WithStack(gif.EncodeAll(enc.Writer, enc.out))
}

func caption(ms boltzmann.MetaState) []string {
	return []string{
		ms.Name(),
		fmt.Sprintf("Epoch %d", ms.Epoch()),
		fmt.Sprintf("Error %.4f / %.4f", ms.ReconstructionError(), ms.MeanFieldError()),
	}
}
