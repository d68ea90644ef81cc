package resample

import "github.com/deepteams/planar/internal/dsp"

// Box resamples with the fixed-point rescaler in internal/dsp: an area
// average when shrinking and bilinear interpolation when expanding.
type Box struct{}

// Resample implements Resampler.
func (Box) Resample(dst []byte, dstW, dstH int, src []byte, srcW, srcH int) error {
	if err := check(dst, dstW, dstH, src, srcW, srcH); err != nil {
		return err
	}
	dsp.Rescale(dst, dstW, dstH, src, srcW, srcH, Channels)
	return nil
}
