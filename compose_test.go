package planar

import (
	"bytes"
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Helpers ---

// makeDescriptor builds a descriptor whose plane p holds
// base[p] + u + 16*v at (u, v) and pad in every padding byte.
func makeDescriptor(w, h int, strides [3]int, base [3]byte, pad byte) *Descriptor {
	d := &Descriptor{Width: w, Height: h}
	for p := 0; p < 3; p++ {
		stride := strides[p]
		pix := bytes.Repeat([]byte{pad}, stride*h)
		for v := 0; v < h; v++ {
			for u := 0; u < w; u++ {
				pix[v*stride+u] = base[p] + byte(u) + byte(16*v)
			}
		}
		d.Planes = append(d.Planes, Plane{Pix: pix, Stride: stride})
	}
	return d
}

func TestCompose_2x2Exact(t *testing.T) {
	d := &Descriptor{
		Width:  2,
		Height: 2,
		Planes: []Plane{
			{Pix: []byte{0x10, 0x11, 0x12, 0x13}, Stride: 2},
			{Pix: []byte{0x20, 0x21, 0x22, 0x23}, Stride: 2},
			{Pix: []byte{0x30, 0x31, 0x32, 0x33}, Stride: 2},
		},
	}
	img, err := Compose(d)
	require.NoError(t, err)

	want := []byte{
		0x10, 0x20, 0x30, 0x11, 0x21, 0x31,
		0x12, 0x22, 0x32, 0x13, 0x23, 0x33,
	}
	if diff := cmp.Diff(want, img.Pix); diff != "" {
		t.Errorf("Compose mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2, img.Width)
	assert.Equal(t, 2, img.Height)
}

func TestCompose_OffsetFormula(t *testing.T) {
	const w, h = 5, 3
	d := makeDescriptor(w, h, [3]int{5, 8, 21}, [3]byte{0, 100, 200}, 0xEE)
	img, err := Compose(d)
	require.NoError(t, err)
	for v := 0; v < h; v++ {
		for u := 0; u < w; u++ {
			for p := 0; p < 3; p++ {
				got := img.Pix[(v*w+u)*3+p]
				want := d.Planes[p].Pix[u+v*d.Planes[p].Stride]
				if got != want {
					t.Fatalf("pixel (%d,%d) channel %d = %#x, want %#x", u, v, p, got, want)
				}
			}
		}
	}
}

func TestCompose_OutputLength(t *testing.T) {
	tests := []struct {
		w, h    int
		strides [3]int
	}{
		{1, 1, [3]int{1, 1, 1}},
		{3, 7, [3]int{3, 4, 16}},
		{16, 2, [3]int{16, 16, 16}},
		{13, 13, [3]int{32, 13, 14}},
		{100, 1, [3]int{128, 100, 101}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%dx%d", tt.w, tt.h), func(t *testing.T) {
			img, err := Compose(makeDescriptor(tt.w, tt.h, tt.strides, [3]byte{1, 2, 3}, 0))
			require.NoError(t, err)
			assert.Len(t, img.Pix, tt.w*tt.h*Channels)
			assert.NoError(t, img.Validate())
		})
	}
}

func TestCompose_StridePaddingNeverLeaks(t *testing.T) {
	// Plane values stay below 0xEE, so a sentinel in the output means a
	// row was addressed by width instead of stride.
	const w, h = 6, 5
	const sentinel = 0xEE
	d := makeDescriptor(w, h, [3]int{w + 1, w + 1, w + 1}, [3]byte{0, 10, 20}, sentinel)
	img, err := Compose(d)
	require.NoError(t, err)
	assert.NotContains(t, string(img.Pix), string([]byte{sentinel}))

	// The pixel right after each padding byte is the next row's first
	// sample; check it landed in the right place.
	for v := 1; v < h; v++ {
		assert.Equal(t, byte(16*v), img.Pix[v*w*3], "row %d first red sample", v)
	}
}

func TestCompose_UnpaddedLastRow(t *testing.T) {
	// Decoders often omit the padding after the last row.
	const w, h, stride = 3, 2, 8
	pix := make([]byte, stride*(h-1)+w)
	for i := range pix {
		pix[i] = byte(i)
	}
	d := &Descriptor{Width: w, Height: h, Planes: []Plane{
		{Pix: pix, Stride: stride}, {Pix: pix, Stride: stride}, {Pix: pix, Stride: stride},
	}}
	img, err := Compose(d)
	require.NoError(t, err)
	r, g, b := img.RGBAt(2, 1)
	assert.Equal(t, [3]byte{10, 10, 10}, [3]byte{r, g, b})
}

func TestCompose_OutOfBounds(t *testing.T) {
	const w, h = 4, 3
	for p := 0; p < 3; p++ {
		t.Run(fmt.Sprintf("plane%d", p), func(t *testing.T) {
			d := makeDescriptor(w, h, [3]int{w, w, w}, [3]byte{}, 0)
			// Drop the final byte: the read of (w-1, h-1) is now past the end.
			d.Planes[p].Pix = d.Planes[p].Pix[:w*h-1]
			img, err := Compose(d)
			assert.ErrorIs(t, err, ErrOutOfBounds)
			assert.Nil(t, img)
		})
	}
}

func TestCompose_StrideOverflow(t *testing.T) {
	d := makeDescriptor(2, 3, [3]int{2, 2, 2}, [3]byte{}, 0)
	d.Planes[1].Stride = math.MaxInt / 2
	_, err := Compose(d)
	assert.ErrorIs(t, err, ErrOutOfBounds)

	// (Height-1)*Stride wraps a uint64 here.
	d = makeDescriptor(2, 9, [3]int{2, 2, 2}, [3]byte{}, 0)
	d.Planes[2].Stride = math.MaxInt
	_, err = Compose(d)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestCompose_Preconditions(t *testing.T) {
	valid := func() *Descriptor {
		return makeDescriptor(4, 4, [3]int{4, 4, 4}, [3]byte{}, 0)
	}
	tests := []struct {
		name   string
		mutate func(d *Descriptor)
		want   error
	}{
		{"two planes", func(d *Descriptor) { d.Planes = d.Planes[:2] }, ErrPlaneCount},
		{"four planes", func(d *Descriptor) { d.Planes = append(d.Planes, d.Planes[0]) }, ErrPlaneCount},
		{"no planes", func(d *Descriptor) { d.Planes = nil }, ErrPlaneCount},
		{"zero width", func(d *Descriptor) { d.Width = 0 }, ErrInvalidDimensions},
		{"zero height", func(d *Descriptor) { d.Height = 0 }, ErrInvalidDimensions},
		{"negative width", func(d *Descriptor) { d.Width = -4 }, ErrInvalidDimensions},
		{"too wide", func(d *Descriptor) { d.Width = MaxDimension + 1 }, ErrInvalidDimensions},
		{"stride below width", func(d *Descriptor) { d.Planes[2].Stride = 3 }, ErrInvalidDimensions},
		{"zero stride", func(d *Descriptor) { d.Planes[0].Stride = 0 }, ErrInvalidDimensions},
		{"nil buffer", func(d *Descriptor) { d.Planes[1].Pix = nil }, ErrOutOfBounds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid()
			tt.mutate(d)
			img, err := Compose(d)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, img)
		})
	}

	_, err := Compose(nil)
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestCompose_InputUntouched(t *testing.T) {
	d := makeDescriptor(7, 3, [3]int{8, 9, 16}, [3]byte{5, 6, 7}, 0xAB)
	before := make([][]byte, 3)
	for p := range d.Planes {
		before[p] = bytes.Clone(d.Planes[p].Pix)
	}
	img, err := Compose(d)
	require.NoError(t, err)
	for p := range d.Planes {
		assert.Equal(t, before[p], d.Planes[p].Pix, "plane %d mutated", p)
	}

	// The output does not alias any plane.
	img.Pix[0] ^= 0xFF
	assert.Equal(t, before[0], d.Planes[0].Pix)
}

func TestDescriptor_Release(t *testing.T) {
	d := makeDescriptor(2, 2, [3]int{2, 2, 2}, [3]byte{}, 0)
	d.Release()
	assert.Len(t, d.Planes, 3, "caller-built planes are not released")

	pooled, err := newPlanes(3, 3)
	require.NoError(t, err)
	pooled.Release()
	assert.Nil(t, pooled.Planes)
	pooled.Release() // idempotent

	var nilDesc *Descriptor
	nilDesc.Release()
}
