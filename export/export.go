// Package export - SVG serialization of merged line segments.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	svg "github.com/ajstarks/svgo"
	"github.com/pkg/errors"

	"github.com/sketchlab/go-vectorize/common"
)

// ErrNoSegments signals that a sample produced no lines. No file is written;
// callers treat this as a valid terminal state, not a failure.
var ErrNoSegments = errors.New("export: no segments to write")

const (
	// DefaultStrokeColor is the stroke applied to every exported line.
	DefaultStrokeColor = "rgb(10,10,16)"
	// DefaultStrokeWidth is the stroke width in pixels.
	DefaultStrokeWidth = 2
)

// Writer serializes segment lists to per-sample SVG files in a directory.
type Writer struct {
	// Dir is the output directory, created on first write if absent.
	Dir string
	// StrokeColor is the SVG stroke for every line element.
	StrokeColor string
	// StrokeWidth is the SVG stroke width for every line element.
	StrokeWidth int
}

// NewWriter returns a Writer targeting dir with the default stroke style.
func NewWriter(dir string) *Writer {
	return &Writer{
		Dir:         dir,
		StrokeColor: DefaultStrokeColor,
		StrokeWidth: DefaultStrokeWidth,
	}
}

// SamplePath returns the output path for a sample index, following the
// sample_<index>.svg naming convention with a zero-padded index.
func (w *Writer) SamplePath(index int) string {
	return filepath.Join(w.Dir, fmt.Sprintf("sample_%03d.svg", index))
}

// WriteSample serializes the segments of one sample as an SVG drawing.
//
// Arguments:
// - index: Sample index, used for the file name.
// - width: Canvas width in pixels.
// - height: Canvas height in pixels.
// - segments: Merged segments to draw.
//
// Returns:
// - string: Path of the written file.
// - error: ErrNoSegments when the segment list is empty (no file is
//   created), or a wrapped I/O error. A partially written file is removed
//   on failure.
func (w *Writer) WriteSample(index, width, height int, segments []common.Segment) (string, error) {
	if len(segments) == 0 {
		return "", ErrNoSegments
	}
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "create output directory %s", w.Dir)
	}

	path := w.SamplePath(index)
	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrapf(err, "create %s", path)
	}

	canvas := svg.New(f)
	canvas.Start(width, height)
	style := fmt.Sprintf("stroke:%s;stroke-width:%d", w.StrokeColor, w.StrokeWidth)
	for _, s := range segments {
		canvas.Line(s.X1, s.Y1, s.X2, s.Y2, style)
	}
	canvas.End()

	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", errors.Wrapf(err, "flush %s", path)
	}
	return path, nil
}
