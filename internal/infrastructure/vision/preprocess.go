// Package vision converts encoded image bytes into the classifier's input
// tensor.
package vision

import (
	"image"
	"io"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"

	"github.com/agrovision/crop-disease-api/internal/core/domain"
)

const channels = 3

// Preprocessor decodes, stretch-resizes and normalizes an image into a
// (1, height, width, 3) float32 tensor with values in [0, 1].
type Preprocessor struct {
	width  int
	height int
}

func NewPreprocessor(width, height int) *Preprocessor {
	if width <= 0 {
		width = 224
	}
	if height <= 0 {
		height = 224
	}
	return &Preprocessor{width: width, height: height}
}

func (p *Preprocessor) Preprocess(r io.Reader) (*domain.Tensor, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, domain.WrapError(domain.ErrPreprocessing, "decode image", err)
	}

	// Both dimensions forced: aspect ratio is deliberately not preserved.
	resized := resize.Resize(uint(p.width), uint(p.height), img, resize.Bilinear)

	data := make([]float32, p.height*p.width*channels)
	for y := 0; y < p.height; y++ {
		for x := 0; x < p.width; x++ {
			// RGBA() converts any source color model to 16-bit RGB; alpha is
			// discarded, so normalization is against 65535.
			r16, g16, b16, _ := resized.At(x, y).RGBA()
			base := (y*p.width + x) * channels
			data[base] = float32(r16) / 65535.0
			data[base+1] = float32(g16) / 65535.0
			data[base+2] = float32(b16) / 65535.0
		}
	}

	return &domain.Tensor{
		Data:  data,
		Shape: []int64{1, int64(p.height), int64(p.width), channels},
	}, nil
}
