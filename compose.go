package planar

import (
	"fmt"
	"math/bits"

	"github.com/deepteams/planar/internal/pool"
)

// Plane is one color channel of a decoded image. Row v starts at
// Pix[v*Stride]; Stride may exceed the image width.
type Plane struct {
	Pix    []byte
	Stride int
}

// Descriptor is a decoded image as separate color planes, in R, G, B order.
// Compose borrows the planes read-only and never retains them.
type Descriptor struct {
	Width  int
	Height int
	Planes []Plane

	// pooled is set when the plane buffers belong to internal/pool.
	pooled bool
}

// Validate checks the descriptor against the compositing preconditions.
// Every plane must hold the byte at (Height-1)*Stride + Width-1.
func (d *Descriptor) Validate() error {
	if d == nil {
		return fmt.Errorf("%w: nil descriptor", ErrInvalidDimensions)
	}
	if len(d.Planes) != Channels {
		return fmt.Errorf("%w: got %d", ErrPlaneCount, len(d.Planes))
	}
	if err := checkSize(d.Width, d.Height); err != nil {
		return err
	}
	for i, p := range d.Planes {
		if p.Stride < d.Width {
			return fmt.Errorf("%w: plane %d stride %d < width %d",
				ErrInvalidDimensions, i, p.Stride, d.Width)
		}
		// A hostile stride must not wrap the offset.
		hi, lo := bits.Mul64(uint64(d.Height-1), uint64(p.Stride))
		last, carry := bits.Add64(lo, uint64(d.Width-1), 0)
		if hi != 0 || carry != 0 || last >= uint64(len(p.Pix)) {
			return fmt.Errorf("%w: plane %d reads offset %d of %d bytes",
				ErrOutOfBounds, i, last, len(p.Pix))
		}
	}
	return nil
}

// Release returns pooled plane buffers obtained from Decode. The descriptor
// must not be used afterwards. It is a no-op for caller-built descriptors.
func (d *Descriptor) Release() {
	if d == nil || !d.pooled {
		return
	}
	for i := range d.Planes {
		pool.Put(d.Planes[i].Pix)
		d.Planes[i].Pix = nil
	}
	d.Planes = nil
	d.pooled = false
}

// Compose interleaves the three planes of d into a new packed RGB24 image.
// The byte for pixel (u, v) channel p is read from
// Planes[p].Pix[u + v*Planes[p].Stride] and written to (v*Width+u)*3 + p.
//
// All preconditions are checked before the output is allocated: a bad
// plane count yields ErrPlaneCount, non-positive sizes or a stride below
// the width yield ErrInvalidDimensions, and a plane too short for its last
// read yields ErrOutOfBounds.
func Compose(d *Descriptor) (*Image, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	width, height := d.Width, d.Height
	out := &Image{
		Pix:    make([]byte, width*height*Channels),
		Width:  width,
		Height: height,
	}

	r, g, b := d.Planes[0], d.Planes[1], d.Planes[2]

	// Row helpers address each plane by its own stride.
	row := func(p Plane, v int) []byte {
		off := v * p.Stride
		return p.Pix[off : off+width]
	}

	for v := 0; v < height; v++ {
		rRow, gRow, bRow := row(r, v), row(g, v), row(b, v)
		dst := out.Pix[v*width*Channels : (v+1)*width*Channels]
		for u := 0; u < width; u++ {
			dst[u*3+0] = rRow[u]
			dst[u*3+1] = gRow[u]
			dst[u*3+2] = bRow[u]
		}
	}
	return out, nil
}
