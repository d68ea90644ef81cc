package planar

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"

	// Registered decoders.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/deepteams/planar/internal/dsp"
	"github.com/deepteams/planar/internal/pool"
)

// PlaneAlign is the row alignment, in bytes, of planes produced by Decode.
const PlaneAlign = 16

// MaxDecodePixels bounds Width*Height of images accepted by Decode. The
// header is checked before any pixel buffer is allocated.
const MaxDecodePixels = 1 << 26

func alignStride(width int) int {
	return (width + PlaneAlign - 1) &^ (PlaneAlign - 1)
}

// Decode reads an encoded image from r and converts it into three RGB
// planes. The second result is the format name registered with the image
// package ("png", "jpeg", "gif", "webp", "bmp" or "tiff"). Alpha is dropped.
//
// The planes are borrowed from an internal pool; call Release on the
// descriptor once it has been composed.
func Decode(r io.Reader) (*Descriptor, string, error) {
	// Read the header first so an oversized image is rejected before the
	// format decoder allocates it. Everything consumed is replayed.
	var header bytes.Buffer
	cfg, format, err := image.DecodeConfig(io.TeeReader(r, &header))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrDecodeFailed, err)
	}
	if err := checkDecodeSize(cfg.Width, cfg.Height); err != nil {
		return nil, format, fmt.Errorf("%w: %s: %w", ErrDecodeFailed, format, err)
	}

	src, format, err := image.Decode(io.MultiReader(&header, r))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrDecodeFailed, err)
	}
	d, err := planesFromImage(src, format)
	if err != nil {
		return nil, format, fmt.Errorf("%w: %s: %w", ErrDecodeFailed, format, err)
	}
	return d, format, nil
}

// checkDecodeSize applies MaxDimension per side and MaxDecodePixels overall.
func checkDecodeSize(width, height int) error {
	if err := checkSize(width, height); err != nil {
		return err
	}
	if int64(width)*int64(height) > MaxDecodePixels {
		return fmt.Errorf("%w: %dx%d exceeds %d pixels",
			ErrInvalidDimensions, width, height, MaxDecodePixels)
	}
	return nil
}

// DecodeConfig returns the dimensions and format of an encoded image
// without decoding its pixels.
func DecodeConfig(r io.Reader) (image.Config, string, error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return image.Config{}, "", fmt.Errorf("%w: %w", ErrDecodeFailed, err)
	}
	return cfg, format, nil
}

// newPlanes allocates three pooled planes with aligned strides. Padding
// bytes are left with whatever the pool held.
func newPlanes(width, height int) (*Descriptor, error) {
	if err := checkSize(width, height); err != nil {
		return nil, err
	}
	stride := alignStride(width)
	d := &Descriptor{Width: width, Height: height, pooled: true}
	d.Planes = make([]Plane, Channels)
	for i := range d.Planes {
		d.Planes[i] = Plane{Pix: pool.Get(stride * height), Stride: stride}
	}
	return d, nil
}

// planesFromImage splits src into R, G and B planes. format picks the YUV
// matrix for YCbCr sources: VP8 output is studio swing, everything else is
// treated as full-range JFIF.
func planesFromImage(src image.Image, format string) (*Descriptor, error) {
	b := src.Bounds()
	d, err := newPlanes(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	matrix := dsp.MatrixJFIF
	if format == "webp" {
		matrix = dsp.MatrixBT601
	}

	switch m := src.(type) {
	case *image.YCbCr:
		if fillYCbCr(d, m, matrix) {
			return d, nil
		}
	case *image.NYCbCrA:
		if fillYCbCr(d, &m.YCbCr, matrix) {
			return d, nil
		}
	case *image.Gray:
		fillGray(d, m)
		return d, nil
	case *image.NRGBA:
		fill4(d, m.Pix, m.Stride, m.PixOffset(b.Min.X, b.Min.Y))
		return d, nil
	case *image.RGBA:
		// Premultiplied samples are only usable as-is when fully opaque.
		if m.Opaque() {
			fill4(d, m.Pix, m.Stride, m.PixOffset(b.Min.X, b.Min.Y))
			return d, nil
		}
	}
	fillGeneric(d, src)
	return d, nil
}

// chromaShift returns the horizontal chroma subsampling shift for r.
func chromaShift(r image.YCbCrSubsampleRatio) uint {
	switch r {
	case image.YCbCrSubsampleRatio422, image.YCbCrSubsampleRatio420:
		return 1
	case image.YCbCrSubsampleRatio411, image.YCbCrSubsampleRatio410:
		return 2
	}
	return 0
}

// fillYCbCr converts m into d row by row. It returns false when the image
// origin is not aligned to a chroma sample, leaving the caller to fall back
// to per-pixel conversion.
func fillYCbCr(d *Descriptor, m *image.YCbCr, matrix dsp.Matrix) bool {
	b := m.Bounds()
	shift := chromaShift(m.SubsampleRatio)
	if b.Min.X&(1<<shift-1) != 0 {
		return false
	}
	w := d.Width
	cw := ((w - 1) >> shift) + 1
	pr, pg, pb := d.Planes[0], d.Planes[1], d.Planes[2]
	for v := 0; v < d.Height; v++ {
		y := b.Min.Y + v
		yi := m.YOffset(b.Min.X, y)
		ci := m.COffset(b.Min.X, y)
		off := v * pr.Stride
		dsp.ConvertRow(
			m.Y[yi:yi+w], m.Cb[ci:ci+cw], m.Cr[ci:ci+cw], shift,
			pr.Pix[off:off+w], pg.Pix[off:off+w], pb.Pix[off:off+w],
			w, matrix,
		)
	}
	return true
}

func fillGray(d *Descriptor, m *image.Gray) {
	b := m.Bounds()
	w := d.Width
	for v := 0; v < d.Height; v++ {
		si := m.PixOffset(b.Min.X, b.Min.Y+v)
		row := m.Pix[si : si+w]
		off := v * d.Planes[0].Stride
		for p := range d.Planes {
			copy(d.Planes[p].Pix[off:off+w], row)
		}
	}
}

// fill4 splits 4-byte RGBA-style pixels starting at pix[start] into planes.
func fill4(d *Descriptor, pix []byte, stride, start int) {
	w := d.Width
	pr, pg, pb := d.Planes[0], d.Planes[1], d.Planes[2]
	for v := 0; v < d.Height; v++ {
		si := start + v*stride
		row := pix[si : si+w*4]
		off := v * pr.Stride
		r, g, b := pr.Pix[off:off+w], pg.Pix[off:off+w], pb.Pix[off:off+w]
		for u := 0; u < w; u++ {
			r[u] = row[u*4+0]
			g[u] = row[u*4+1]
			b[u] = row[u*4+2]
		}
	}
}

func fillGeneric(d *Descriptor, src image.Image) {
	b := src.Bounds()
	pr, pg, pb := d.Planes[0], d.Planes[1], d.Planes[2]
	for v := 0; v < d.Height; v++ {
		off := v * pr.Stride
		for u := 0; u < d.Width; u++ {
			c := color.NRGBAModel.Convert(src.At(b.Min.X+u, b.Min.Y+v)).(color.NRGBA)
			pr.Pix[off+u] = c.R
			pg.Pix[off+u] = c.G
			pb.Pix[off+u] = c.B
		}
	}
}
