package mjpeg

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"log"
	"net/http"

	"github.com/gorgonia/boltzmann"
	"github.com/gorgonia/boltzmann/internal/render"
	"github.com/mattn/go-mjpeg"
)

// Encoder streams the receptive fields of a machine after every epoch as motion JPEG,
// according to the boltzmann.OutputEncoder interface.
type Encoder struct {
	stream *mjpeg.Stream

	rows, cols, scale int
	r                 *render.Renderer
}

func (enc *Encoder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	enc.stream.ServeHTTP(w, r)
}

// NewEncoder makes an encoder for machines whose visible layer is a rows×cols image.
func NewEncoder(rows, cols, scale int) *Encoder {
	return &Encoder{
		stream: mjpeg.NewStream(),
		rows:   rows,
		cols:   cols,
		scale:  scale,
	}
}

// Encode renders ms and pushes the frame to every client.
func (enc *Encoder) Encode(ms boltzmann.MetaState) (err error) {
	if enc.r == nil {
		if enc.r, err = render.New(enc.rows, enc.cols, enc.scale); err != nil {
			return err
		}
	}
	im, err := enc.r.Render(ms.Machine(), []string{
		ms.Name(),
		fmt.Sprintf("Epoch %d", ms.Epoch()),
		fmt.Sprintf("Error %.4f / %.4f", ms.ReconstructionError(), ms.MeanFieldError()),
	})
	if err != nil {
		return err
	}

	var b bytes.Buffer
	if err = jpeg.Encode(&b, im, nil); err != nil {
		log.Println(err)
		return err
	}
	if err = enc.stream.Update(b.Bytes()); err != nil {
		log.Println(err)
		return err
	}
	return nil
}

func (enc *Encoder) Flush() error { return nil }

// Close ends every stream being served. Encode fails afterwards.
func (enc *Encoder) Close() error { return enc.stream.Close() }
