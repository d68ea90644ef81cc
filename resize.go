package planar

import (
	"fmt"

	"github.com/deepteams/planar/internal/resample"
)

// ResizeOptions configures Resize.
type ResizeOptions struct {
	// Filter is the resampling kernel. The zero value is FilterLanczos.
	Filter Filter

	// Resampler overrides Filter with a custom primitive when non-nil.
	Resampler Resampler
}

// Resampler is the resampling primitive used by Resize. It fills dst
// (dstW x dstH, RGB24) from src (srcW x srcH, RGB24) and must neither
// retain nor modify src.
type Resampler = resample.Resampler

// DefaultResizeOptions returns options using FilterLanczos.
func DefaultResizeOptions() *ResizeOptions {
	return &ResizeOptions{Filter: FilterLanczos}
}

// ResolveSize computes the output size of Resize for a srcW x srcH source
// and the requested width and height:
//
//   - 0, 0: the source size.
//   - 0, h: width derived from the source aspect ratio, truncated.
//   - w, 0: height derived from the source aspect ratio, truncated.
//   - w, h: exactly w x h. The aspect ratio is not preserved.
//
// A derived dimension that truncates to 0, negative requests, and results
// larger than MaxDimension yield ErrInvalidDimensions.
func ResolveSize(srcW, srcH, width, height int) (w, h int, err error) {
	if err := checkSize(srcW, srcH); err != nil {
		return 0, 0, err
	}
	if width < 0 || height < 0 {
		return 0, 0, fmt.Errorf("%w: target %dx%d", ErrInvalidDimensions, width, height)
	}
	// Multiplying before dividing keeps the quotient correctly rounded,
	// so an exact ratio never truncates one below its integer value.
	switch {
	case width == 0 && height == 0:
		w, h = srcW, srcH
	case width == 0:
		w = int(float64(srcW) * float64(height) / float64(srcH))
		h = height
	case height == 0:
		w = width
		h = int(float64(srcH) * float64(width) / float64(srcW))
	default:
		w, h = width, height
	}
	if err := checkSize(w, h); err != nil {
		return 0, 0, fmt.Errorf("resolving %dx%d for %dx%d source: %w", width, height, srcW, srcH, err)
	}
	return w, h, nil
}

// Resize returns m rescaled to the size chosen by ResolveSize. When that
// size equals the source size, m itself is returned and no filter runs, so
// Resize(m, 0, 0, nil) is always byte-for-byte identical to m. Otherwise the
// result is a new image and m is left untouched. A nil opts uses
// DefaultResizeOptions.
//
// Errors from the resampler are returned unchanged.
func Resize(m *Image, width, height int, opts *ResizeOptions) (*Image, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	w, h, err := ResolveSize(m.Width, m.Height, width, height)
	if err != nil {
		return nil, err
	}
	if w == m.Width && h == m.Height {
		return m, nil
	}

	if opts == nil {
		opts = DefaultResizeOptions()
	}
	r := opts.Resampler
	if r == nil {
		if r, err = opts.Filter.resampler(); err != nil {
			return nil, err
		}
	}

	dst := make([]byte, w*h*Channels)
	if err := r.Resample(dst, w, h, m.Pix, m.Width, m.Height); err != nil {
		return nil, err
	}
	return &Image{Pix: dst, Width: w, Height: h}, nil
}
