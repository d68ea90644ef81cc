package resample

import (
	"math"

	"golang.org/x/image/draw"
)

// Lanczos3 is a three-lobe windowed-sinc kernel for golang.org/x/image/draw.
var Lanczos3 = &draw.Kernel{Support: 3, At: lanczos3}

func lanczos3(t float64) float64 {
	if t < 0 {
		t = -t
	}
	if t < 1e-12 {
		return 1
	}
	if t >= 3 {
		return 0
	}
	pt := math.Pi * t
	return 3 * math.Sin(pt) * math.Sin(pt/3) / (pt * pt)
}

// Draw resamples with a golang.org/x/image/draw kernel. A nil Kernel means
// Lanczos3.
type Draw struct {
	Kernel *draw.Kernel
}

// Resample implements Resampler.
func (r Draw) Resample(dst []byte, dstW, dstH int, src []byte, srcW, srcH int) error {
	if err := check(dst, dstW, dstH, src, srcW, srcH); err != nil {
		return err
	}
	k := r.Kernel
	if k == nil {
		k = Lanczos3
	}
	in := stage(src, srcW, srcH)
	defer unstage(in)
	out := newStagedNRGBA(dstW, dstH)
	defer unstage(out)

	// draw.Src overwrites every destination pixel, so the pooled buffer
	// needs no clearing.
	k.Scale(out, out.Bounds(), in, in.Bounds(), draw.Src, nil)
	copyRGB(dst, out)
	return nil
}
