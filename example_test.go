package planar_test

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"

	"github.com/deepteams/planar"
)

func ExampleCompose() {
	// A 2x2 image whose planes are padded to a stride of 4.
	d := &planar.Descriptor{
		Width:  2,
		Height: 2,
		Planes: []planar.Plane{
			{Pix: []byte{10, 11, 0, 0, 12, 13}, Stride: 4},
			{Pix: []byte{20, 21, 0, 0, 22, 23}, Stride: 4},
			{Pix: []byte{30, 31, 0, 0, 32, 33}, Stride: 4},
		},
	}
	img, err := planar.Compose(d)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(img.Pix)
	// Output: [10 20 30 11 21 31 12 22 32 13 23 33]
}

func ExampleResolveSize() {
	w, h, err := planar.ResolveSize(1920, 1080, 0, 540)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%dx%d\n", w, h)
	// Output: 960x540
}

func ExampleConvert() {
	src := image.NewNRGBA(image.Rect(0, 0, 64, 32))
	for i := range src.Pix {
		src.Pix[i] = 0xff
	}
	src.SetNRGBA(0, 0, color.NRGBA{A: 0xff})
	var in bytes.Buffer
	if err := png.Encode(&in, src); err != nil {
		log.Fatal(err)
	}

	var out bytes.Buffer
	res, err := planar.Convert(&in, &out, &planar.Options{
		Width:  16,
		Filter: planar.FilterBox,
		Encode: &planar.EncodeOptions{Format: planar.FormatPPM},
	})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s %dx%d -> %dx%d\n", res.Format, res.SrcWidth, res.SrcHeight, res.Width, res.Height)
	// Output: png 64x32 -> 16x8
}
