// Package hough - Line segment detection over skeletonized masks.
//
// Detect runs a Hough transform with 1px rho and 1 degree theta resolution:
// every foreground pixel votes for the (rho, theta) bins of the lines through
// it, local-maximum bins above the vote threshold become line candidates, and
// each candidate is traced back through the pixels that lie on it to recover
// actual segment endpoints, bridging small gaps and splitting at large ones.
// Pixels consumed by one line are removed from consideration for later,
// weaker lines. The detector is heuristic; duplicate and fragmented segments
// are expected and handled by the merge stage downstream.
package hough

import (
	"math"
	"sort"

	"github.com/sketchlab/go-vectorize/common"
	"github.com/sketchlab/go-vectorize/raster"
)

const (
	// numAngles is the theta resolution: one bin per degree over [0, 180).
	numAngles = 180
	// pixelTolerance is the max distance (px) from a candidate line at which
	// a pixel still counts as lying on it. Wide enough to absorb the 3px
	// band left by the post-thinning dilation plus the rho/theta
	// quantization error, which grows toward the ends of long off-axis
	// strokes.
	pixelTolerance = 3.0
	// retireTolerance is the max distance (px) from an emitted segment at
	// which leftover pixels are swept up. Slightly wider than
	// pixelTolerance: the emitted segment can sit off the band's centerline,
	// leaving opposite-edge pixels just past the collection tolerance.
	retireTolerance = 4.0
)

// Params holds the fixed detector thresholds.
type Params struct {
	// VoteThreshold is the minimum accumulator votes for a line candidate.
	VoteThreshold int
	// MinLineLength is the shortest segment emitted, in pixels.
	MinLineLength int
	// MaxLineGap is the largest run of missing pixels bridged within one
	// segment, in pixels.
	MaxLineGap int
}

// DefaultParams returns the detector parameters used throughout the
// pipeline: 30 votes, 2px minimum length, 3px maximum gap.
func DefaultParams() Params {
	return Params{VoteThreshold: 30, MinLineLength: 2, MaxLineGap: 3}
}

type point struct {
	x, y int
}

type peak struct {
	rhoIdx int
	theta  int
	votes  int
}

// Detect finds line segments in a skeletonized mask.
//
// Arguments:
// - m: Binary skeleton mask.
// - p: Detector thresholds, typically DefaultParams().
//
// Returns:
// - []common.Segment: Zero or more candidate segments in detection order.
//   An empty or invalid mask yields an empty result, never an error.
func Detect(m *raster.Mask, p Params) []common.Segment {
	if m.Validate() != nil {
		return nil
	}

	var points []point
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.At(x, y) {
				points = append(points, point{x, y})
			}
		}
	}
	if len(points) == 0 {
		return nil
	}

	sinTab, cosTab := angleTables()
	maxDist := int(math.Hypot(float64(m.Width), float64(m.Height))) + 1
	acc := vote(points, sinTab, cosTab, maxDist)
	peaks := findPeaks(acc, p.VoteThreshold)

	return trace(points, peaks, sinTab, cosTab, maxDist, p)
}

func angleTables() (sinTab, cosTab [numAngles]float64) {
	for t := 0; t < numAngles; t++ {
		rad := float64(t) * math.Pi / 180.0
		sinTab[t] = math.Sin(rad)
		cosTab[t] = math.Cos(rad)
	}
	return sinTab, cosTab
}

// vote fills the (rho, theta) accumulator. Rho is offset by maxDist so
// negative distances index from the front of the table.
func vote(points []point, sinTab, cosTab [numAngles]float64, maxDist int) [][]int {
	acc := make([][]int, 2*maxDist)
	for i := range acc {
		acc[i] = make([]int, numAngles)
	}
	for _, pt := range points {
		for t := 0; t < numAngles; t++ {
			rho := float64(pt.x)*cosTab[t] + float64(pt.y)*sinTab[t]
			idx := int(rho) + maxDist
			if idx >= 0 && idx < 2*maxDist {
				acc[idx][t]++
			}
		}
	}
	return acc
}

// findPeaks selects accumulator bins that clear the vote threshold and are
// local maxima within a 5x5 (rho, theta) neighborhood. Peaks come back
// sorted by votes, strongest first, with full tie-breaking so detection
// order is deterministic.
func findPeaks(acc [][]int, threshold int) []peak {
	var peaks []peak
	for rhoIdx := range acc {
		for theta := 0; theta < numAngles; theta++ {
			votes := acc[rhoIdx][theta]
			if votes < threshold {
				continue
			}
			isMax := true
			for dr := -2; dr <= 2 && isMax; dr++ {
				nr := rhoIdx + dr
				if nr < 0 || nr >= len(acc) {
					continue
				}
				for dt := -2; dt <= 2; dt++ {
					nt := theta + dt
					if nt < 0 || nt >= numAngles || (dr == 0 && dt == 0) {
						continue
					}
					if acc[nr][nt] > votes {
						isMax = false
						break
					}
				}
			}
			if isMax {
				peaks = append(peaks, peak{rhoIdx: rhoIdx, theta: theta, votes: votes})
			}
		}
	}
	sort.Slice(peaks, func(i, j int) bool {
		if peaks[i].votes != peaks[j].votes {
			return peaks[i].votes > peaks[j].votes
		}
		if peaks[i].rhoIdx != peaks[j].rhoIdx {
			return peaks[i].rhoIdx < peaks[j].rhoIdx
		}
		return peaks[i].theta < peaks[j].theta
	})
	return peaks
}

// trace walks each peak line through the not-yet-consumed pixels near it,
// splitting where the along-line gap exceeds MaxLineGap and emitting every
// run at least MinLineLength long. After a run is emitted, its pixels and
// every other pixel still within the stroke's band around the emitted
// segment are retired, so weaker collinear peaks do not re-emit fragments
// of a stroke that has already been traced.
func trace(points []point, peaks []peak, sinTab, cosTab [numAngles]float64, maxDist int, p Params) []common.Segment {
	alive := make([]bool, len(points))
	for i := range alive {
		alive[i] = true
	}

	var segments []common.Segment
	for _, pk := range peaks {
		cosA := cosTab[pk.theta]
		sinA := sinTab[pk.theta]
		// Bin centers, not bin floors: halves the systematic rho offset of
		// the quantized line against the pixels that voted for it.
		rho := float64(pk.rhoIdx-maxDist) + 0.5

		var onLine []int
		for i, pt := range points {
			if !alive[i] {
				continue
			}
			d := math.Abs(float64(pt.x)*cosA + float64(pt.y)*sinA - rho)
			if d < pixelTolerance {
				onLine = append(onLine, i)
			}
		}
		if len(onLine) < 2 {
			continue
		}

		// Order pixels by their projection onto the line direction.
		proj := func(i int) float64 {
			return -float64(points[i].x)*sinA + float64(points[i].y)*cosA
		}
		sort.Slice(onLine, func(a, b int) bool {
			pa, pb := proj(onLine[a]), proj(onLine[b])
			if pa != pb {
				return pa < pb
			}
			if points[onLine[a]].x != points[onLine[b]].x {
				return points[onLine[a]].x < points[onLine[b]].x
			}
			return points[onLine[a]].y < points[onLine[b]].y
		})

		runStart := 0
		for k := 1; k <= len(onLine); k++ {
			if k < len(onLine) && proj(onLine[k])-proj(onLine[k-1]) <= float64(p.MaxLineGap)+1 {
				continue
			}
			if seg, ok := runSegment(points, onLine[runStart:k], p.MinLineLength); ok {
				segments = append(segments, seg)
				for _, i := range onLine[runStart:k] {
					alive[i] = false
				}
				retireNearSegment(points, alive, seg)
			}
			runStart = k
		}
	}
	return segments
}

// retireNearSegment consumes every still-alive pixel within retireTolerance
// of the emitted segment. The quantized peak line can drift off the stroke's
// band toward the ends, so retiring against the segment itself, which is
// anchored to actual stroke pixels, catches band pixels the collection pass
// missed.
func retireNearSegment(points []point, alive []bool, seg common.Segment) {
	for i, pt := range points {
		if !alive[i] {
			continue
		}
		if pointSegmentDistance(pt, seg) < retireTolerance {
			alive[i] = false
		}
	}
}

// pointSegmentDistance returns the distance from a pixel to the nearest
// point of the segment.
func pointSegmentDistance(pt point, seg common.Segment) float64 {
	dx := float64(seg.X2 - seg.X1)
	dy := float64(seg.Y2 - seg.Y1)
	px := float64(pt.x - seg.X1)
	py := float64(pt.y - seg.Y1)
	len2 := dx*dx + dy*dy
	if len2 == 0 {
		return math.Hypot(px, py)
	}
	t := (px*dx + py*dy) / len2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return math.Hypot(px-t*dx, py-t*dy)
}

// runSegment turns a run of collinear pixels into a segment between its
// first and last pixel, rejecting runs shorter than minLength.
func runSegment(points []point, run []int, minLength int) (common.Segment, bool) {
	if len(run) < 2 {
		return common.Segment{}, false
	}
	first := points[run[0]]
	last := points[run[len(run)-1]]
	seg := common.Segment{X1: first.x, Y1: first.y, X2: last.x, Y2: last.y}
	if seg.Length() < float32(minLength) {
		return common.Segment{}, false
	}
	return seg, true
}
