// Package raster - Binary mask grids consumed by the vectorization pipeline.
//
// A Mask is the in-memory form of a predicted line-drawing mask: a row-major
// grid of {0,1} bytes. Masks arrive either as float grids straight from model
// inference (FromDense, FromFloats) or as rendered grayscale images
// (FromImage), and are binarized against a configurable threshold on the way
// in.
package raster

import (
	"image"

	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// DefaultBinarizeThreshold is the cutoff applied when converting float or
// grayscale mask values to {0,1}.
const DefaultBinarizeThreshold float32 = 0.5

// ErrShape is returned when a mask grid has invalid dimensions or its pixel
// buffer does not match the declared dimensions.
var ErrShape = errors.New("raster: invalid mask shape")

// Mask is a binary raster grid. Pix holds one byte per pixel in row-major
// order, each either 0 (background) or 1 (foreground).
type Mask struct {
	Width  int
	Height int
	Pix    []uint8
}

// New creates an all-background mask of the given dimensions.
//
// Arguments:
// - w: Grid width in pixels.
// - h: Grid height in pixels.
//
// Returns:
// - *Mask: The new mask.
// - error: ErrShape if either dimension is not positive.
func New(w, h int) (*Mask, error) {
	if w <= 0 || h <= 0 {
		return nil, errors.Wrapf(ErrShape, "%dx%d", w, h)
	}
	return &Mask{Width: w, Height: h, Pix: make([]uint8, w*h)}, nil
}

// FromFloats binarizes a row-major float grid into a mask. Values at or
// above threshold become foreground.
//
// Arguments:
// - data: Row-major float values, length w*h.
// - w: Grid width in pixels.
// - h: Grid height in pixels.
// - threshold: Binarization cutoff, typically DefaultBinarizeThreshold.
//
// Returns:
// - *Mask: The binarized mask.
// - error: ErrShape if the buffer length does not match the dimensions.
func FromFloats(data []float32, w, h int, threshold float32) (*Mask, error) {
	if w <= 0 || h <= 0 || len(data) != w*h {
		return nil, errors.Wrapf(ErrShape, "%d values for %dx%d grid", len(data), w, h)
	}
	m := &Mask{Width: w, Height: h, Pix: make([]uint8, w*h)}
	for i, v := range data {
		if v >= threshold {
			m.Pix[i] = 1
		}
	}
	return m, nil
}

// FromDense binarizes a model-output tensor into a mask. Size-1 dimensions
// (batch and channel axes such as [1, 1, H, W] or [H, W, 1]) are squeezed;
// exactly two non-unit dimensions must remain.
//
// Arguments:
// - t: Dense tensor with a []float32 backing.
// - threshold: Binarization cutoff.
//
// Returns:
// - *Mask: The binarized mask.
// - error: ErrShape on a non-2D shape, or an error if the backing is not float32.
func FromDense(t *tensor.Dense, threshold float32) (*Mask, error) {
	if t == nil {
		return nil, errors.Wrap(ErrShape, "nil tensor")
	}
	shape := t.Shape()
	dims := make([]int, 0, len(shape))
	for _, d := range shape {
		if d != 1 {
			dims = append(dims, d)
		}
	}
	if len(dims) != 2 {
		return nil, errors.Wrapf(ErrShape, "tensor shape %v", shape)
	}
	data, ok := t.Data().([]float32)
	if !ok {
		return nil, errors.Errorf("raster: tensor backing is %T, want []float32", t.Data())
	}
	return FromFloats(data, dims[1], dims[0], threshold)
}

// FromImage binarizes a grayscale rendering of a mask. Pixel luma is scaled
// to [0, 1] before the threshold is applied.
//
// Arguments:
// - img: Source image; color images are converted via BT.601 luma.
// - threshold: Binarization cutoff in [0, 1].
//
// Returns:
// - *Mask: The binarized mask.
// - error: ErrShape if the image has no pixels.
func FromImage(img image.Image, threshold float32) (*Mask, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	m, err := New(w, h)
	if err != nil {
		return nil, err
	}
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			luma := (0.299*float32(r>>8) + 0.587*float32(g>>8) + 0.114*float32(b>>8)) / 255.0
			if luma >= threshold {
				m.Pix[i] = 1
			}
			i++
		}
	}
	return m, nil
}

// Validate reports whether the mask's pixel buffer matches its declared
// dimensions.
//
// Returns:
// - error: ErrShape on a nil mask, non-positive dimensions, or a mismatched buffer.
func (m *Mask) Validate() error {
	if m == nil {
		return errors.Wrap(ErrShape, "nil mask")
	}
	if m.Width <= 0 || m.Height <= 0 || len(m.Pix) != m.Width*m.Height {
		return errors.Wrapf(ErrShape, "%dx%d grid with %d pixels", m.Width, m.Height, len(m.Pix))
	}
	return nil
}

// At reports whether the pixel at (x, y) is foreground. Out-of-range
// coordinates read as background, which lets neighborhood scans skip
// explicit border checks.
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	return m.Pix[y*m.Width+x] != 0
}

// Set marks the pixel at (x, y) as foreground. Out-of-range coordinates are
// ignored.
func (m *Mask) Set(x, y int) {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return
	}
	m.Pix[y*m.Width+x] = 1
}

// Clear marks the pixel at (x, y) as background. Out-of-range coordinates
// are ignored.
func (m *Mask) Clear(x, y int) {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return
	}
	m.Pix[y*m.Width+x] = 0
}

// Count returns the number of foreground pixels.
func (m *Mask) Count() int {
	n := 0
	for _, p := range m.Pix {
		if p != 0 {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the mask.
func (m *Mask) Clone() *Mask {
	pix := make([]uint8, len(m.Pix))
	copy(pix, m.Pix)
	return &Mask{Width: m.Width, Height: m.Height, Pix: pix}
}
