package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegment_Angle(t *testing.T) {
	tests := []struct {
		name     string
		seg      Segment
		expected float32
	}{
		{"Horizontal right", Segment{0, 0, 100, 0}, 0},
		{"Vertical down", Segment{0, 0, 0, 100}, 90},
		{"Diagonal", Segment{0, 0, 100, 100}, 45},
		{"Horizontal left", Segment{100, 0, 0, 0}, 180},
		{"Vertical up", Segment{0, 100, 0, 0}, -90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, tt.seg.Angle(), 0.001)
		})
	}
}

func TestSegment_StartDistance(t *testing.T) {
	a := Segment{0, 0, 100, 0}
	b := Segment{3, 4, 100, 10}
	assert.InDelta(t, 5.0, a.StartDistance(b), 0.001)
	assert.InDelta(t, 5.0, b.StartDistance(a), 0.001)
	assert.InDelta(t, 0.0, a.StartDistance(a), 0.001)
}

func TestSegment_AngleDiff(t *testing.T) {
	a := Segment{0, 0, 100, 0}
	b := Segment{0, 0, 100, 2}
	diff := a.AngleDiff(b)
	assert.InDelta(t, 1.1458, diff, 0.01)
	assert.Equal(t, diff, b.AngleDiff(a))

	// Opposite traversal directions are ~180 degrees apart, not parallel.
	c := Segment{100, 0, 0, 0}
	assert.InDelta(t, 180.0, a.AngleDiff(c), 0.001)
}

func TestSegment_Midpoint(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Segment
		expected Segment
	}{
		{
			name:     "Even sums",
			a:        Segment{10, 10, 110, 10},
			b:        Segment{14, 10, 114, 14},
			expected: Segment{12, 10, 112, 12},
		},
		{
			name:     "Odd sums round half up",
			a:        Segment{10, 10, 110, 10},
			b:        Segment{13, 10, 113, 11},
			expected: Segment{12, 10, 112, 11},
		},
		{
			name:     "Identical segments unchanged",
			a:        Segment{5, 6, 7, 8},
			b:        Segment{5, 6, 7, 8},
			expected: Segment{5, 6, 7, 8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Midpoint(tt.b))
		})
	}
}

func TestSegment_Length(t *testing.T) {
	assert.InDelta(t, 5.0, Segment{0, 0, 3, 4}.Length(), 0.001)
	assert.InDelta(t, 0.0, Segment{7, 7, 7, 7}.Length(), 0.001)
}
