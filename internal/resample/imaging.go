package resample

import (
	"github.com/disintegration/imaging"
)

// Imaging resamples with github.com/disintegration/imaging. The zero value
// uses the Lanczos (a=3) filter.
type Imaging struct {
	Filter imaging.ResampleFilter
}

// Resample implements Resampler.
func (r Imaging) Resample(dst []byte, dstW, dstH int, src []byte, srcW, srcH int) error {
	if err := check(dst, dstW, dstH, src, srcW, srcH); err != nil {
		return err
	}
	filter := r.Filter
	if filter.Kernel == nil {
		filter = imaging.Lanczos
	}
	in := stage(src, srcW, srcH)
	defer unstage(in)

	copyRGB(dst, imaging.Resize(in, dstW, dstH, filter))
	return nil
}
