// Package pipeline - Per-mask vectorization chain and batch fan-out.
//
// One mask flows strictly through skeletonization, line detection, and
// merging; export happens only at the batch boundary. Every sample is
// independent, so the batch runner fans samples out across a small worker
// pool and records per-sample outcomes instead of aborting on the first
// failure.
package pipeline

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/sketchlab/go-vectorize/common"
	"github.com/sketchlab/go-vectorize/export"
	"github.com/sketchlab/go-vectorize/hough"
	"github.com/sketchlab/go-vectorize/merge"
	"github.com/sketchlab/go-vectorize/raster"
	"github.com/sketchlab/go-vectorize/skeleton"
)

// Config collects the tunables of the vectorization chain.
type Config struct {
	// BinarizeThreshold is applied when callers build masks from float or
	// grayscale sources before handing them to the pipeline.
	BinarizeThreshold float32
	// Hough holds the line detector thresholds.
	Hough hough.Params
	// Merge holds the segment merge thresholds.
	Merge merge.Options
}

// DefaultConfig returns the configuration matching the pipeline defaults:
// 0.5 binarization, 30/2/3 detection, 10px/5 degree merging.
func DefaultConfig() Config {
	return Config{
		BinarizeThreshold: raster.DefaultBinarizeThreshold,
		Hough:             hough.DefaultParams(),
		Merge:             merge.DefaultOptions(),
	}
}

// Vectorizer converts raster masks into merged vector segments and exports
// them. It holds no per-sample state and is safe for concurrent use.
type Vectorizer struct {
	cfg Config
	out *export.Writer
}

// New creates a Vectorizer with the given configuration and export writer.
func New(cfg Config, out *export.Writer) *Vectorizer {
	return &Vectorizer{cfg: cfg, out: out}
}

// Vectorize runs the core chain on one mask: skeletonize, detect candidate
// segments, merge near-duplicates. No file is written.
//
// Arguments:
// - m: Binary input mask.
//
// Returns:
// - []common.Segment: The merged segments; empty when the mask holds no lines.
// - error: raster.ErrShape if the mask dimensions are invalid.
func (v *Vectorizer) Vectorize(m *raster.Mask) ([]common.Segment, error) {
	sk, err := skeleton.Skeletonize(m)
	if err != nil {
		return nil, err
	}
	candidates := hough.Detect(sk, v.cfg.Hough)
	return merge.Merge(candidates, v.cfg.Merge), nil
}

// Sample pairs a mask with its index in the dataset.
type Sample struct {
	Index int
	Mask  *raster.Mask
}

// Result records the outcome of one sample.
type Result struct {
	Index    int
	Segments []common.Segment
	// Path is the written SVG file, or empty when no lines survived merging.
	Path string
	// Err is the per-sample failure, if any. A sample with no detected
	// lines is not a failure; its Err is nil and Path is empty.
	Err error
}

// Batch processes samples across a worker pool. Samples are split into
// contiguous chunks, one goroutine per chunk; results land at the sample's
// position. A failed sample is recorded and skipped, never aborting the
// rest of the batch.
//
// Arguments:
// - samples: The masks to process.
// - workers: Goroutine count; values below 1 run single-threaded.
//
// Returns:
// - []Result: One result per sample, in input order.
func (v *Vectorizer) Batch(samples []Sample, workers int) []Result {
	results := make([]Result, len(samples))
	if len(samples) == 0 {
		return results
	}
	if workers < 1 {
		workers = 1
	}

	chunk := (len(samples) + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < len(samples); start += chunk {
		end := start + chunk
		if end > len(samples) {
			end = len(samples)
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				results[i] = v.process(samples[i])
			}
		}(start, end)
	}
	wg.Wait()
	return results
}

// process runs one sample end to end, including export.
func (v *Vectorizer) process(s Sample) Result {
	segments, err := v.Vectorize(s.Mask)
	if err != nil {
		return Result{Index: s.Index, Err: err}
	}

	path, err := v.out.WriteSample(s.Index, s.Mask.Width, s.Mask.Height, segments)
	if errors.Is(err, export.ErrNoSegments) {
		return Result{Index: s.Index, Segments: segments}
	}
	if err != nil {
		return Result{Index: s.Index, Segments: segments, Err: err}
	}
	return Result{Index: s.Index, Segments: segments, Path: path}
}
