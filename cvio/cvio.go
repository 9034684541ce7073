// Package cvio - OpenCV-backed decoding of rendered mask images.
//
// Predicted masks dumped to disk as grayscale images are decoded and
// binarized through gocv here; the rest of the pipeline only ever sees
// raster.Mask grids.
package cvio

import (
	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/sketchlab/go-vectorize/raster"
)

// DecodeMask decodes image bytes as grayscale and binarizes them into a
// mask. The threshold is given in the normalized [0, 1] mask space and is
// scaled to the 8-bit pixel range before thresholding.
//
// Arguments:
// - data: Encoded image bytes (PNG, JPEG, BMP).
// - threshold: Binarization cutoff in [0, 1], typically
//   raster.DefaultBinarizeThreshold.
//
// Returns:
// - *raster.Mask: The binarized mask.
// - error: A wrapped decode error, or raster.ErrShape for an empty image.
func DecodeMask(data []byte, threshold float32) (*raster.Mask, error) {
	mat, err := gocv.IMDecode(data, gocv.IMReadGrayScale)
	if err != nil {
		return nil, errors.Wrap(err, "decode mask image")
	}
	defer mat.Close()
	if mat.Empty() {
		return nil, errors.Wrap(raster.ErrShape, "decoded mask is empty")
	}

	bin := gocv.NewMat()
	defer bin.Close()
	gocv.Threshold(mat, &bin, threshold*255, 1, gocv.ThresholdBinary)

	buf, err := bin.ToBytes()
	if err != nil {
		return nil, errors.Wrap(err, "read mask pixels")
	}
	m, err := raster.New(bin.Cols(), bin.Rows())
	if err != nil {
		return nil, err
	}
	copy(m.Pix, buf)
	return m, nil
}
