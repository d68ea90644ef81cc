// Package dsp holds the scalar pixel kernels used by planar: YUV to RGB
// conversion for decoded planes and the fixed-point box rescaler.
package dsp

// BT.601 limited-range YUV -> RGB using the libwebp fixed-point constants.
const (
	yuvFix2 = 6 // additional precision for intermediate values
	yuvMask = (256 << yuvFix2) - 1

	kYScale = 19077 // 1.164 * (1 << 14)
	kRCr    = 26149 // 1.596 * (1 << 14)
	kGCb    = 6419  // 0.391 * (1 << 14)
	kGCr    = 13320 // 0.813 * (1 << 14)
	kBCb    = 33050 // 2.018 * (1 << 14)

	// The biases absorb the (Y-16) and (U/V-128) offsets:
	//   R = MultHi(y, 19077) + MultHi(v, 26149) - 14234
	//   G = MultHi(y, 19077) - MultHi(u, 6419) - MultHi(v, 13320) + 8708
	//   B = MultHi(y, 19077) + MultHi(u, 33050) - 17685
	kRBias = 14234
	kGBias = 8708
	kBBias = 17685
)

// Matrix selects the YUV -> RGB conversion applied to decoded chroma planes.
type Matrix int

const (
	// MatrixBT601 is studio-swing BT.601 (Y in [16,235]), used by VP8.
	MatrixBT601 Matrix = iota
	// MatrixJFIF is full-range BT.601 as used by JPEG/JFIF.
	MatrixJFIF
)

// clipTab maps [0..yuvMask] to [0..255] after the yuvFix2 shift.
var clipTab [yuvMask + 1]uint8

func init() {
	for i := range clipTab {
		clipTab[i] = uint8(i >> yuvFix2)
	}
}

// multHi computes (v * coeff) >> 8.
func multHi(v, coeff int) int {
	return (v * coeff) >> 8
}

func clipYUV(val int) uint8 {
	if val < 0 {
		return 0
	}
	if val > yuvMask {
		return 255
	}
	return clipTab[val]
}

// YUVToR converts (y, v) to the R component.
func YUVToR(y, v int) uint8 {
	return clipYUV(multHi(y, kYScale) + multHi(v, kRCr) - kRBias)
}

// YUVToG converts (y, u, v) to the G component.
func YUVToG(y, u, v int) uint8 {
	return clipYUV(multHi(y, kYScale) - multHi(u, kGCb) - multHi(v, kGCr) + kGBias)
}

// YUVToB converts (y, u) to the B component.
func YUVToB(y, u int) uint8 {
	return clipYUV(multHi(y, kYScale) + multHi(u, kBCb) - kBBias)
}

// YUVToRGB converts studio-swing YUV to RGB.
func YUVToRGB(y, u, v int) (r, g, b uint8) {
	return YUVToR(y, v), YUVToG(y, u, v), YUVToB(y, u)
}

// clampFix16 returns the 8-bit value of a 16.16 fixed-point sample,
// saturating to [0,255].
func clampFix16(v int32) uint8 {
	if uint32(v)&0xff000000 == 0 {
		return uint8(v >> 16)
	}
	return uint8(^(v >> 31))
}

// JFIFToRGB converts full-range YCbCr to RGB with the JFIF coefficients:
//
//	R = Y + 1.40200*(Cr-128)
//	G = Y - 0.34414*(Cb-128) - 0.71414*(Cr-128)
//	B = Y + 1.77200*(Cb-128)
func JFIFToRGB(y, cb, cr uint8) (r, g, b uint8) {
	yy := int32(y) * 0x10101
	cb1 := int32(cb) - 128
	cr1 := int32(cr) - 128
	r = clampFix16(yy + 91881*cr1)
	g = clampFix16(yy - 22554*cb1 - 46802*cr1)
	b = clampFix16(yy + 116130*cb1)
	return r, g, b
}

// ConvertRow converts one row of YUV samples into three separate RGB
// plane rows. Chroma sample x>>xShift is used for luma sample x, so
// xShift is 1 for horizontally subsampled chroma and 0 otherwise.
//
// yRow, rDst, gDst and bDst must hold at least width bytes; uRow and vRow
// at least ((width-1)>>xShift)+1.
func ConvertRow(yRow, uRow, vRow []byte, xShift uint, rDst, gDst, bDst []byte, width int, m Matrix) {
	yRow = yRow[:width]
	rDst = rDst[:width]
	gDst = gDst[:width]
	bDst = bDst[:width]
	last := (width - 1) >> xShift
	uRow = uRow[:last+1]
	vRow = vRow[:last+1]

	if m == MatrixJFIF {
		for x, y := range yRow {
			c := x >> xShift
			rDst[x], gDst[x], bDst[x] = JFIFToRGB(y, uRow[c], vRow[c])
		}
		return
	}
	for x, y := range yRow {
		c := x >> xShift
		rDst[x], gDst[x], bDst[x] = YUVToRGB(int(y), int(uRow[c]), int(vRow[c]))
	}
}
