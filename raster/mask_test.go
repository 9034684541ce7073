package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorgonia.org/tensor"
)

func TestFromFloats(t *testing.T) {
	tests := []struct {
		name      string
		data      []float32
		w, h      int
		threshold float32
		expected  []uint8
		wantErr   bool
	}{
		{
			name:      "Threshold splits values",
			data:      []float32{0.1, 0.5, 0.9, 0.49},
			w:         2, h: 2,
			threshold: 0.5,
			expected:  []uint8{0, 1, 1, 0},
		},
		{
			name:      "All background",
			data:      []float32{0, 0, 0, 0},
			w:         2, h: 2,
			threshold: 0.5,
			expected:  []uint8{0, 0, 0, 0},
		},
		{
			name:    "Length mismatch",
			data:    []float32{0.1, 0.2},
			w:       2, h: 2,
			wantErr: true,
		},
		{
			name:    "Zero dimensions",
			data:    nil,
			w:       0, h: 0,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := FromFloats(tt.data, tt.w, tt.h, tt.threshold)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrShape))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, m.Pix)
		})
	}
}

func TestFromDense(t *testing.T) {
	data := []float32{0.9, 0.1, 0.1, 0.9}

	// Model output shape with batch and channel axes.
	d := tensor.New(tensor.WithShape(1, 1, 2, 2), tensor.WithBacking(data))
	m, err := FromDense(d, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Width)
	assert.Equal(t, 2, m.Height)
	assert.Equal(t, []uint8{1, 0, 0, 1}, m.Pix)

	// Trailing channel axis, as stored by the training data layout.
	d = tensor.New(tensor.WithShape(2, 2, 1), tensor.WithBacking(data))
	m, err = FromDense(d, 0.5)
	require.NoError(t, err)
	assert.Equal(t, []uint8{1, 0, 0, 1}, m.Pix)

	// A 3D tensor with no unit axes is not a mask.
	d = tensor.New(tensor.WithShape(2, 2, 2), tensor.WithBacking(make([]float32, 8)))
	_, err = FromDense(d, 0.5)
	assert.True(t, errors.Is(err, ErrShape))

	_, err = FromDense(nil, 0.5)
	assert.True(t, errors.Is(err, ErrShape))
}

func TestFromImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 1))
	img.SetGray(0, 0, color.Gray{Y: 255})
	img.SetGray(1, 0, color.Gray{Y: 128})
	img.SetGray(2, 0, color.Gray{Y: 0})

	m, err := FromImage(img, 0.5)
	require.NoError(t, err)
	assert.Equal(t, []uint8{1, 1, 0}, m.Pix)

	_, err = FromImage(image.NewGray(image.Rect(0, 0, 0, 0)), 0.5)
	assert.True(t, errors.Is(err, ErrShape))
}

func TestMask_Validate(t *testing.T) {
	m, err := New(4, 4)
	require.NoError(t, err)
	assert.NoError(t, m.Validate())

	var nilMask *Mask
	assert.True(t, errors.Is(nilMask.Validate(), ErrShape))

	m.Pix = m.Pix[:3]
	assert.True(t, errors.Is(m.Validate(), ErrShape))
}

func TestMask_AtSetClear(t *testing.T) {
	m, err := New(4, 4)
	require.NoError(t, err)

	assert.False(t, m.At(1, 1))
	m.Set(1, 1)
	assert.True(t, m.At(1, 1))
	assert.Equal(t, 1, m.Count())
	m.Clear(1, 1)
	assert.False(t, m.At(1, 1))

	// Out-of-range access is background and writes are ignored.
	assert.False(t, m.At(-1, 0))
	assert.False(t, m.At(4, 4))
	m.Set(-1, 99)
	assert.Equal(t, 0, m.Count())
}

func TestMask_Clone(t *testing.T) {
	m, err := New(2, 2)
	require.NoError(t, err)
	m.Set(0, 0)

	c := m.Clone()
	c.Set(1, 1)
	assert.True(t, c.At(0, 0))
	assert.False(t, m.At(1, 1))
}
