// Package skeleton - Morphological thinning of binary masks.
//
// Skeletonize reduces mask foreground to 1-pixel-wide curves with the
// Zhang-Suen algorithm, then applies a radius-1 disk dilation to re-bridge
// the single-pixel breaks thinning can leave behind. The result has the same
// dimensions as the input and is what the line detector consumes.
package skeleton

import (
	"github.com/sketchlab/go-vectorize/raster"
)

// Skeletonize thins the mask to 1-pixel-wide curves and dilates the result
// with a radius-1 disk. The input mask is not modified.
//
// Arguments:
// - m: Binary input mask.
//
// Returns:
// - *raster.Mask: Skeleton with the same dimensions as the input.
// - error: raster.ErrShape if the mask dimensions are invalid.
func Skeletonize(m *raster.Mask) (*raster.Mask, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return dilateDisk1(thin(m)), nil
}

// thin runs Zhang-Suen thinning until no pixel changes. Each iteration is a
// pair of sub-passes; a border pixel is removed when it has 2..6 foreground
// neighbors, exactly one 0->1 transition around its 8-neighborhood, and the
// sub-pass's directional conditions hold.
func thin(m *raster.Mask) *raster.Mask {
	sk := m.Clone()
	var deletions []int
	for {
		changed := false
		for pass := 0; pass < 2; pass++ {
			deletions = deletions[:0]
			for y := 0; y < sk.Height; y++ {
				for x := 0; x < sk.Width; x++ {
					if !sk.At(x, y) {
						continue
					}
					if removable(sk, x, y, pass) {
						deletions = append(deletions, y*sk.Width+x)
					}
				}
			}
			for _, i := range deletions {
				sk.Pix[i] = 0
			}
			if len(deletions) > 0 {
				changed = true
			}
		}
		if !changed {
			return sk
		}
	}
}

// removable evaluates the Zhang-Suen conditions for the pixel at (x, y).
// Neighbors p2..p9 run clockwise from north.
func removable(m *raster.Mask, x, y, pass int) bool {
	p2 := b(m.At(x, y-1))
	p3 := b(m.At(x+1, y-1))
	p4 := b(m.At(x+1, y))
	p5 := b(m.At(x+1, y+1))
	p6 := b(m.At(x, y+1))
	p7 := b(m.At(x-1, y+1))
	p8 := b(m.At(x-1, y))
	p9 := b(m.At(x-1, y-1))

	neighbors := p2 + p3 + p4 + p5 + p6 + p7 + p8 + p9
	if neighbors < 2 || neighbors > 6 {
		return false
	}
	if transitions(p2, p3, p4, p5, p6, p7, p8, p9) != 1 {
		return false
	}
	if pass == 0 {
		return p2*p4*p6 == 0 && p4*p6*p8 == 0
	}
	return p2*p4*p8 == 0 && p2*p6*p8 == 0
}

// transitions counts 0->1 transitions in the circular sequence p2..p9,p2.
func transitions(ps ...int) int {
	n := 0
	for i := range ps {
		if ps[i] == 0 && ps[(i+1)%len(ps)] == 1 {
			n++
		}
	}
	return n
}

// dilateDisk1 dilates with a radius-1 disk structuring element (the 3x3
// cross: center plus the 4-connected neighbors).
func dilateDisk1(m *raster.Mask) *raster.Mask {
	out := &raster.Mask{Width: m.Width, Height: m.Height, Pix: make([]uint8, len(m.Pix))}
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.At(x, y) || m.At(x-1, y) || m.At(x+1, y) || m.At(x, y-1) || m.At(x, y+1) {
				out.Pix[y*m.Width+x] = 1
			}
		}
	}
	return out
}

func b(v bool) int {
	if v {
		return 1
	}
	return 0
}
