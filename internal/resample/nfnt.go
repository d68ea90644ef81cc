package resample

import (
	"github.com/nfnt/resize"
)

// Nfnt resamples with github.com/nfnt/resize using Interp.
type Nfnt struct {
	Interp resize.InterpolationFunction
}

// Resample implements Resampler.
func (r Nfnt) Resample(dst []byte, dstW, dstH int, src []byte, srcW, srcH int) error {
	if err := check(dst, dstW, dstH, src, srcW, srcH); err != nil {
		return err
	}
	in := stage(src, srcW, srcH)
	defer unstage(in)

	copyRGB(dst, resize.Resize(uint(dstW), uint(dstH), in, r.Interp))
	return nil
}
