// Package resample adapts third-party resizing libraries and the in-tree
// box rescaler to a common interface over densely packed RGB24 buffers.
package resample

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/deepteams/planar/internal/pool"
)

// Channels is the number of interleaved samples per pixel.
const Channels = 3

// ErrBufferSize is returned when a buffer does not match its dimensions.
var ErrBufferSize = errors.New("resample: buffer size does not match dimensions")

// Resampler fills dst (dstW x dstH, RGB24) with a resampled copy of src
// (srcW x srcH, RGB24). Implementations never retain or modify src and
// write every byte of dst.
type Resampler interface {
	Resample(dst []byte, dstW, dstH int, src []byte, srcW, srcH int) error
}

// check validates both buffers against their dimensions.
func check(dst []byte, dstW, dstH int, src []byte, srcW, srcH int) error {
	if srcW <= 0 || srcH <= 0 || dstW <= 0 || dstH <= 0 {
		return fmt.Errorf("%w: src %dx%d, dst %dx%d", ErrBufferSize, srcW, srcH, dstW, dstH)
	}
	if len(src) != srcW*srcH*Channels {
		return fmt.Errorf("%w: src has %d bytes, want %d", ErrBufferSize, len(src), srcW*srcH*Channels)
	}
	if len(dst) != dstW*dstH*Channels {
		return fmt.Errorf("%w: dst has %d bytes, want %d", ErrBufferSize, len(dst), dstW*dstH*Channels)
	}
	return nil
}

// stage expands an RGB24 buffer into an opaque NRGBA image backed by a
// pooled buffer. The caller must hand the result to unstage when done.
func stage(src []byte, w, h int) *image.NRGBA {
	m := &image.NRGBA{
		Pix:    pool.Get(w * h * 4),
		Stride: w * 4,
		Rect:   image.Rect(0, 0, w, h),
	}
	d := m.Pix
	for i, j := 0, 0; i < len(src); i, j = i+3, j+4 {
		d[j+0] = src[i+0]
		d[j+1] = src[i+1]
		d[j+2] = src[i+2]
		d[j+3] = 0xff
	}
	return m
}

func unstage(m *image.NRGBA) {
	pool.Put(m.Pix)
	m.Pix = nil
}

// newStagedNRGBA returns a pooled NRGBA destination of w x h. Its pixels are
// not cleared.
func newStagedNRGBA(w, h int) *image.NRGBA {
	return &image.NRGBA{
		Pix:    pool.Get(w * h * 4),
		Stride: w * 4,
		Rect:   image.Rect(0, 0, w, h),
	}
}

// copyRGB drops the alpha channel of m into dst, row by row. The fast paths
// cover the image types produced by the wrapped libraries; anything else
// goes through the NRGBA color model.
func copyRGB(dst []byte, m image.Image) {
	b := m.Bounds()
	w := b.Dx()
	switch m := m.(type) {
	case *image.NRGBA:
		for y := 0; y < b.Dy(); y++ {
			row := m.Pix[m.PixOffset(b.Min.X, b.Min.Y+y):]
			out := dst[y*w*Channels : (y+1)*w*Channels]
			for x := 0; x < w; x++ {
				out[x*3+0] = row[x*4+0]
				out[x*3+1] = row[x*4+1]
				out[x*3+2] = row[x*4+2]
			}
		}
	case *image.RGBA:
		// Sources are opaque, so premultiplied and straight alpha agree.
		for y := 0; y < b.Dy(); y++ {
			row := m.Pix[m.PixOffset(b.Min.X, b.Min.Y+y):]
			out := dst[y*w*Channels : (y+1)*w*Channels]
			for x := 0; x < w; x++ {
				out[x*3+0] = row[x*4+0]
				out[x*3+1] = row[x*4+1]
				out[x*3+2] = row[x*4+2]
			}
		}
	default:
		i := 0
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)
				dst[i+0], dst[i+1], dst[i+2] = c.R, c.G, c.B
				i += 3
			}
		}
	}
}
