package planar

import (
	"io"
)

// Options configures Convert.
type Options struct {
	// Width and Height are the requested output size. Either may be 0 to
	// derive it from the source aspect ratio; both 0 keeps the source size.
	Width, Height int

	// Filter is the resampling kernel used when the size changes.
	Filter Filter

	// Encode configures the output. nil means DefaultEncodeOptions.
	Encode *EncodeOptions
}

// DefaultOptions returns options that keep the source size and write PNG.
func DefaultOptions() *Options {
	return &Options{
		Filter: FilterLanczos,
		Encode: DefaultEncodeOptions(),
	}
}

// Result describes a finished conversion.
type Result struct {
	Format    string // source format name
	SrcWidth  int
	SrcHeight int
	Width     int
	Height    int
}

// Convert decodes one image from r, composes its planes, resizes it and
// encodes the result to w. Each stage runs exactly once and the first
// failure ends the conversion; nothing is written to w unless every stage
// before encoding succeeded. A nil opts uses DefaultOptions.
func Convert(r io.Reader, w io.Writer, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	d, format, err := Decode(r)
	if err != nil {
		return nil, err
	}
	img, err := Compose(d)
	d.Release()
	if err != nil {
		return nil, err
	}

	res := &Result{
		Format:    format,
		SrcWidth:  img.Width,
		SrcHeight: img.Height,
	}

	img, err = Resize(img, opts.Width, opts.Height, &ResizeOptions{Filter: opts.Filter})
	if err != nil {
		return nil, err
	}
	res.Width, res.Height = img.Width, img.Height

	if err := Encode(w, img, opts.Encode); err != nil {
		return nil, err
	}
	return res, nil
}
