package dsp

// Fixed-point rescaler following libwebp's rescaler.c. Shrinking is an area
// average, expanding is bilinear. Rows are interleaved with numChannels
// samples per pixel and processed one source row at a time.

// rescalerRFix is the fixed-point precision for rescaler multiplies.
const rescalerRFix = 32

const (
	rescalerOne     = uint64(1) << rescalerRFix
	rescalerRounder = uint64(1) << (rescalerRFix - 1)
)

// Rescaler holds the state for incremental rescaling of one image.
type Rescaler struct {
	srcWidth, srcHeight int
	dstWidth, dstHeight int
	numChannels         int

	xExpand, yExpand bool

	xAdd, xSub int
	yAdd, ySub int
	yAccum     int

	// Normalisation factors in 32.32 fixed point. They are kept in 64 bits
	// so that a factor of exactly 1.0 stays representable.
	fxScale  uint64 // horizontal (shrink)
	fyScale  uint64 // vertical
	fxyScale uint64 // combined (vertical shrink)

	// The vertical shrink accumulator sums up to srcHeight/dstHeight rows of
	// srcWidth-wide windows, which does not fit in 32 bits for large images.
	frow []uint64 // current horizontally-scaled row
	irow []uint64 // vertical accumulator or previous row

	dstY int
}

func multFix(x, y uint64) uint64 {
	return (x*y + rescalerRounder) >> rescalerRFix
}

func multFixFloor(x, y uint64) uint64 {
	return (x * y) >> rescalerRFix
}

// rescalerFrac computes (x << rescalerRFix) / y.
func rescalerFrac(x, y int) uint64 {
	if y == 0 {
		return 0
	}
	return (uint64(x) << rescalerRFix) / uint64(y)
}

// NewRescaler returns a rescaler from srcWidth x srcHeight to
// dstWidth x dstHeight. All dimensions and numChannels must be positive.
func NewRescaler(srcWidth, srcHeight, dstWidth, dstHeight, numChannels int) *Rescaler {
	r := &Rescaler{
		srcWidth:    srcWidth,
		srcHeight:   srcHeight,
		dstWidth:    dstWidth,
		dstHeight:   dstHeight,
		numChannels: numChannels,
		xExpand:     srcWidth < dstWidth,
		yExpand:     srcHeight < dstHeight,
		frow:        make([]uint64, dstWidth*numChannels),
		irow:        make([]uint64, dstWidth*numChannels),
	}

	// Horizontal expansion is bilinear between sample centres.
	if r.xExpand {
		r.xAdd = dstWidth - 1
		r.xSub = srcWidth - 1
	} else {
		r.xAdd = srcWidth
		r.xSub = dstWidth
		r.fxScale = rescalerFrac(1, r.xSub)
	}

	if r.yExpand {
		r.yAdd = srcHeight - 1
		r.ySub = dstHeight - 1
		r.yAccum = r.ySub
		r.fyScale = rescalerFrac(1, r.xAdd)
	} else {
		r.yAdd = srcHeight
		r.ySub = dstHeight
		r.yAccum = r.yAdd
		r.fyScale = rescalerFrac(1, r.ySub)
		r.fxyScale = (uint64(dstHeight) << rescalerRFix) / (uint64(r.xAdd) * uint64(r.yAdd))
	}
	return r
}

// HasPendingOutput reports whether a destination row is ready for export.
func (r *Rescaler) HasPendingOutput() bool {
	return r.dstY < r.dstHeight && r.yAccum <= 0
}

// ImportRow imports one interleaved source row of srcWidth*numChannels bytes.
func (r *Rescaler) ImportRow(src []byte) {
	if r.yExpand {
		r.frow, r.irow = r.irow, r.frow
	}
	if r.xExpand {
		r.importRowExpand(src)
	} else {
		r.importRowShrink(src)
	}
	if !r.yExpand {
		for x, v := range r.frow {
			r.irow[x] += v
		}
	}
	r.yAccum -= r.ySub
}

func (r *Rescaler) importRowExpand(src []byte) {
	step := r.numChannels
	xOutMax := r.dstWidth * step
	for ch := 0; ch < step; ch++ {
		xIn := ch
		accum := r.xAdd
		left := int(src[xIn])
		right := left
		if r.srcWidth > 1 {
			right = int(src[xIn+step])
		}
		xIn += step
		for xOut := ch; ; {
			// accum stays in [0, xAdd], so the blend is non-negative.
			r.frow[xOut] = uint64(right*r.xAdd + (left-right)*accum)
			xOut += step
			if xOut >= xOutMax {
				break
			}
			accum -= r.xSub
			if accum < 0 {
				left = right
				xIn += step
				right = int(src[xIn])
				accum += r.xAdd
			}
		}
	}
}

func (r *Rescaler) importRowShrink(src []byte) {
	step := r.numChannels
	xOutMax := r.dstWidth * step
	for ch := 0; ch < step; ch++ {
		xIn := ch
		var sum uint64
		accum := 0
		for xOut := ch; xOut < xOutMax; xOut += step {
			var base uint64
			accum += r.xAdd
			for accum > 0 {
				accum -= r.xSub
				base = uint64(src[xIn])
				sum += base
				xIn += step
			}
			frac := base * uint64(-accum)
			r.frow[xOut] = sum*uint64(r.xSub) - frac
			sum = multFix(frac, r.fxScale)
		}
	}
}

// ExportRow writes the next destination row (dstWidth*numChannels bytes)
// into dst. It returns false when no row is pending.
func (r *Rescaler) ExportRow(dst []byte) bool {
	if !r.HasPendingOutput() {
		return false
	}
	if r.yExpand {
		r.exportRowExpand(dst)
	} else {
		r.exportRowShrink(dst)
	}
	r.yAccum += r.yAdd
	r.dstY++
	return true
}

func clip8(v uint64) uint8 {
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func (r *Rescaler) exportRowExpand(dst []byte) {
	dst = dst[:len(r.frow)]
	if r.yAccum == 0 {
		for x, j := range r.frow {
			dst[x] = clip8(multFix(j, r.fyScale))
		}
		return
	}
	b := rescalerFrac(-r.yAccum, r.ySub)
	a := rescalerOne - b
	for x, f := range r.frow {
		i := a*f + b*r.irow[x]
		j := (i + rescalerRounder) >> rescalerRFix
		dst[x] = clip8(multFix(j, r.fyScale))
	}
}

func (r *Rescaler) exportRowShrink(dst []byte) {
	dst = dst[:len(r.irow)]
	yscale := r.fyScale * uint64(-r.yAccum)
	for x, acc := range r.irow {
		frac := multFixFloor(r.frow[x], yscale)
		dst[x] = clip8(multFix(acc-frac, r.fxyScale))
		r.irow[x] = frac
	}
}

// Rescale resizes a densely packed interleaved image from src into dst in
// one pass. len(src) must be srcWidth*srcHeight*numChannels and len(dst)
// dstWidth*dstHeight*numChannels.
func Rescale(dst []byte, dstWidth, dstHeight int, src []byte, srcWidth, srcHeight, numChannels int) {
	r := NewRescaler(srcWidth, srcHeight, dstWidth, dstHeight, numChannels)
	srcStride := srcWidth * numChannels
	dstStride := dstWidth * numChannels
	for y := 0; y < srcHeight; {
		for y < srcHeight && !r.HasPendingOutput() {
			r.ImportRow(src[y*srcStride : (y+1)*srcStride])
			y++
		}
		for r.HasPendingOutput() {
			off := r.dstY * dstStride
			r.ExportRow(dst[off : off+dstStride])
		}
	}
}
