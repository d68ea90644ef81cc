package planar

import (
	"fmt"
	"image"
	"image/color"
)

// Channels is the number of interleaved samples per pixel (R, G, B).
const Channels = 3

// MaxDimension bounds the width and height accepted by Compose and Resize,
// keeping Width*Height*Channels far from int overflow.
const MaxDimension = 1 << 16

// Image is a densely packed, row-major RGB24 image. Pix holds exactly
// Width*Height*Channels bytes with no padding between rows.
type Image struct {
	Pix    []byte
	Width  int
	Height int
}

// NewImage returns a zeroed image of the given size.
func NewImage(width, height int) (*Image, error) {
	if err := checkSize(width, height); err != nil {
		return nil, err
	}
	return &Image{
		Pix:    make([]byte, width*height*Channels),
		Width:  width,
		Height: height,
	}, nil
}

func checkSize(width, height int) error {
	if width <= 0 || height <= 0 || width > MaxDimension || height > MaxDimension {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return nil
}

// Validate reports whether m satisfies the size invariant.
func (m *Image) Validate() error {
	if m == nil {
		return fmt.Errorf("%w: nil image", ErrInvalidDimensions)
	}
	if err := checkSize(m.Width, m.Height); err != nil {
		return err
	}
	if want := m.Width * m.Height * Channels; len(m.Pix) != want {
		return fmt.Errorf("%w: %dx%d image has %d bytes, want %d",
			ErrInvalidDimensions, m.Width, m.Height, len(m.Pix), want)
	}
	return nil
}

// Stride returns the number of bytes per row.
func (m *Image) Stride() int { return m.Width * Channels }

// PixOffset returns the index of the first byte of pixel (x, y).
func (m *Image) PixOffset(x, y int) int {
	return (y*m.Width + x) * Channels
}

// RGBAt returns the samples of pixel (x, y).
func (m *Image) RGBAt(x, y int) (r, g, b uint8) {
	i := m.PixOffset(x, y)
	s := m.Pix[i : i+3 : i+3]
	return s[0], s[1], s[2]
}

// ColorModel implements image.Image.
func (m *Image) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image.
func (m *Image) Bounds() image.Rectangle { return image.Rect(0, 0, m.Width, m.Height) }

// At implements image.Image. Pixels are opaque.
func (m *Image) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(m.Bounds())) {
		return color.RGBA{}
	}
	r, g, b := m.RGBAt(x, y)
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// NRGBA returns an opaque copy of m as an *image.NRGBA.
func (m *Image) NRGBA() *image.NRGBA {
	out := image.NewNRGBA(m.Bounds())
	d := out.Pix
	for i, j := 0, 0; i < len(m.Pix); i, j = i+3, j+4 {
		d[j+0] = m.Pix[i+0]
		d[j+1] = m.Pix[i+1]
		d[j+2] = m.Pix[i+2]
		d[j+3] = 0xff
	}
	return out
}

// FromImage copies any image.Image into a new Image, dropping alpha. It is
// a convenience for callers that already hold a decoded image; Decode plus
// Compose is the plane-based path.
func FromImage(src image.Image) (*Image, error) {
	d, err := planesFromImage(src, "")
	if err != nil {
		return nil, err
	}
	defer d.Release()
	return Compose(d)
}
