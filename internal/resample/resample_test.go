package resample

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/draw"
)

func backends() map[string]Resampler {
	return map[string]Resampler{
		"imaging":         Imaging{Filter: imaging.Lanczos},
		"imaging-default": Imaging{},
		"nfnt":            Nfnt{Interp: resize.Lanczos3},
		"draw-lanczos3":   Draw{},
		"draw-catmull":    Draw{Kernel: draw.CatmullRom},
		"box":             Box{},
	}
}

func solid(w, h int, r, g, b byte) []byte {
	buf := make([]byte, w*h*Channels)
	for i := 0; i < len(buf); i += 3 {
		buf[i], buf[i+1], buf[i+2] = r, g, b
	}
	return buf
}

func gradient(w, h int) []byte {
	buf := make([]byte, w*h*Channels)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 3
			buf[i] = byte(x * 255 / max(w-1, 1))
			buf[i+1] = byte(y * 255 / max(h-1, 1))
			buf[i+2] = 77
		}
	}
	return buf
}

func TestResample_SolidColorPreserved(t *testing.T) {
	sizes := []struct{ srcW, srcH, dstW, dstH int }{
		{16, 12, 5, 7},
		{3, 3, 8, 6},
		{1, 1, 4, 4},
		{10, 1, 3, 1},
		{7, 9, 7, 4},
	}
	for name, r := range backends() {
		for _, sz := range sizes {
			t.Run(fmt.Sprintf("%s/%dx%d->%dx%d", name, sz.srcW, sz.srcH, sz.dstW, sz.dstH), func(t *testing.T) {
				src := solid(sz.srcW, sz.srcH, 200, 90, 13)
				dst := make([]byte, sz.dstW*sz.dstH*Channels)
				require.NoError(t, r.Resample(dst, sz.dstW, sz.dstH, src, sz.srcW, sz.srcH))
				for i := 0; i < len(dst); i += 3 {
					assert.InDelta(t, 200, int(dst[i]), 2, "R at %d", i)
					assert.InDelta(t, 90, int(dst[i+1]), 2, "G at %d", i)
					assert.InDelta(t, 13, int(dst[i+2]), 2, "B at %d", i)
				}
			})
		}
	}
}

func TestResample_SourceUntouched(t *testing.T) {
	for name, r := range backends() {
		t.Run(name, func(t *testing.T) {
			src := gradient(9, 5)
			orig := bytes.Clone(src)
			dst := make([]byte, 4*11*Channels)
			require.NoError(t, r.Resample(dst, 4, 11, src, 9, 5))
			assert.Equal(t, orig, src)
		})
	}
}

func TestResample_BufferSizeMismatch(t *testing.T) {
	tests := []struct {
		name               string
		srcLen, dstLen     int
		srcW, srcH         int
		dstW, dstH         int
	}{
		{"short src", 11, 12, 2, 2, 2, 2},
		{"long dst", 12, 13, 2, 2, 2, 2},
		{"zero dst width", 12, 0, 2, 2, 0, 2},
		{"negative src height", 12, 12, 2, -2, 2, 2},
	}
	for name, r := range backends() {
		for _, tt := range tests {
			t.Run(name+"/"+tt.name, func(t *testing.T) {
				err := r.Resample(make([]byte, tt.dstLen), tt.dstW, tt.dstH, make([]byte, tt.srcLen), tt.srcW, tt.srcH)
				assert.ErrorIs(t, err, ErrBufferSize)
			})
		}
	}
}

func TestBox_LinearExpand(t *testing.T) {
	src := []byte{0, 0, 0, 200, 200, 200}
	dst := make([]byte, 3*Channels)
	require.NoError(t, Box{}.Resample(dst, 3, 1, src, 2, 1))
	assert.Equal(t, []byte{0, 0, 0, 100, 100, 100, 200, 200, 200}, dst)
}

func TestLanczos3Kernel(t *testing.T) {
	assert.InDelta(t, 1.0, lanczos3(0), 1e-12)
	assert.InDelta(t, 0.0, lanczos3(1), 1e-12)
	assert.InDelta(t, 0.0, lanczos3(2), 1e-12)
	assert.Equal(t, 0.0, lanczos3(3))
	assert.Equal(t, 0.0, lanczos3(-4))
	assert.InDelta(t, lanczos3(0.5), lanczos3(-0.5), 1e-15)
	assert.Less(t, lanczos3(1.5), 0.0, "second lobe is negative")
}

func TestCopyRGB_GenericImage(t *testing.T) {
	m := image.NewGray(image.Rect(2, 3, 4, 4))
	m.SetGray(2, 3, color.Gray{Y: 10})
	m.SetGray(3, 3, color.Gray{Y: 250})
	dst := make([]byte, 2*Channels)
	copyRGB(dst, m)
	assert.Equal(t, []byte{10, 10, 10, 250, 250, 250}, dst)
}

func TestCopyRGB_OffsetNRGBA(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	m.SetNRGBA(1, 1, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	m.SetNRGBA(2, 1, color.NRGBA{R: 4, G: 5, B: 6, A: 255})
	sub := m.SubImage(image.Rect(1, 1, 3, 2))
	dst := make([]byte, 2*Channels)
	copyRGB(dst, sub)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6}, dst)
}
