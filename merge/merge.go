// Package merge - Deduplication of near-duplicate line segments.
//
// The detector typically fragments one physical stroke into several
// overlapping candidates. Merge collapses candidates that start close
// together and point the same way into a single representative segment.
package merge

import (
	"github.com/sketchlab/go-vectorize/common"
)

// Options holds the merge thresholds.
type Options struct {
	// ProximityThreshold is the maximum distance in pixels between two
	// segments' start points for them to merge.
	ProximityThreshold float32
	// AngleThreshold is the maximum absolute orientation difference in
	// degrees for two segments to merge.
	AngleThreshold float32
}

// DefaultOptions returns the merge thresholds used throughout the pipeline:
// 10px proximity, 5 degrees.
func DefaultOptions() Options {
	return Options{ProximityThreshold: 10, AngleThreshold: 5}
}

// Merge collapses near-duplicate candidates into representative segments.
//
// Candidates are scanned in detection order. Each one is compared against
// the accumulated result; the first accumulated segment whose start point is
// within ProximityThreshold and whose orientation differs by less than
// AngleThreshold absorbs the candidate, replacing its own endpoints with the
// coordinate-wise midpoint of the pair. A candidate with no match is
// appended unchanged. The scan is greedy and order-dependent: only start
// points are compared, so segment overlap is not considered.
//
// Arguments:
// - candidates: Detected segments in detection order.
// - opts: Merge thresholds, typically DefaultOptions().
//
// Returns:
// - []common.Segment: The merged segments. Nil for an empty input.
func Merge(candidates []common.Segment, opts Options) []common.Segment {
	if len(candidates) == 0 {
		return nil
	}
	merged := make([]common.Segment, 0, len(candidates))
	for _, c := range candidates {
		absorbed := false
		for i := range merged {
			if c.StartDistance(merged[i]) < opts.ProximityThreshold &&
				c.AngleDiff(merged[i]) < opts.AngleThreshold {
				merged[i] = c.Midpoint(merged[i])
				absorbed = true
				break
			}
		}
		if !absorbed {
			merged = append(merged, c)
		}
	}
	return merged
}
