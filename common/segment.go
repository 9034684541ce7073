// Package common - Shared geometry types for the vectorization pipeline.
package common

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Segment represents a straight line segment in pixel coordinates.
// (X1, Y1) is the start point and (X2, Y2) the end point; the order of the
// endpoints defines the segment's orientation.
type Segment struct {
	X1, Y1, X2, Y2 int
}

// String formats the segment for display.
//
// Returns:
// - A formatted string containing both endpoints.
func (s Segment) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", s.X1, s.Y1, s.X2, s.Y2)
}

// Angle returns the orientation of the segment in degrees, computed as the
// arctangent of (dy, dx). The result lies in (-180, 180].
//
// Returns:
// - The orientation angle in degrees as float32.
func (s Segment) Angle() float32 {
	return math32.Atan2(float32(s.Y2-s.Y1), float32(s.X2-s.X1)) * 180 / math32.Pi
}

// Length returns the Euclidean length of the segment in pixels.
func (s Segment) Length() float32 {
	return math32.Hypot(float32(s.X2-s.X1), float32(s.Y2-s.Y1))
}

// StartDistance returns the Euclidean distance between the start points of
// the two segments.
//
// Arguments:
// - o: The other segment.
//
// Returns:
// - The distance in pixels as float32.
func (s Segment) StartDistance(o Segment) float32 {
	return math32.Hypot(float32(s.X1-o.X1), float32(s.Y1-o.Y1))
}

// AngleDiff returns the absolute difference between the two segments'
// orientations in degrees. The difference is not folded across the 180°
// wrap, so segments traced in opposite directions stay distinct.
//
// Arguments:
// - o: The other segment.
//
// Returns:
// - The absolute angular difference in degrees as float32.
func (s Segment) AngleDiff(o Segment) float32 {
	return math32.Abs(s.Angle() - o.Angle())
}

// Midpoint returns a segment whose endpoints are the coordinate-wise
// midpoints of the two segments' endpoints, rounded to the nearest integer
// (halves round up).
//
// Arguments:
// - o: The other segment.
//
// Returns:
// - The averaged segment.
func (s Segment) Midpoint(o Segment) Segment {
	return Segment{
		X1: mid(s.X1, o.X1),
		Y1: mid(s.Y1, o.Y1),
		X2: mid(s.X2, o.X2),
		Y2: mid(s.Y2, o.Y2),
	}
}

func mid(a, b int) int {
	return (a + b + 1) / 2
}
