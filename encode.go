package planar

import (
	"bufio"
	"fmt"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Format is an output image format.
type Format int

const (
	// FormatPNG is 8-bit truecolor PNG.
	FormatPNG Format = iota
	// FormatJPEG is baseline JPEG.
	FormatJPEG
	// FormatPPM is binary Netpbm (P6) with a maxval of 255.
	FormatPPM
)

var formatNames = [...]string{
	FormatPNG:  "png",
	FormatJPEG: "jpeg",
	FormatPPM:  "ppm",
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

// Ext returns the file extension for f, including the dot.
func (f Format) Ext() string {
	switch f {
	case FormatJPEG:
		return ".jpg"
	case FormatPPM:
		return ".ppm"
	}
	return ".png"
}

// ParseFormat returns the format with the given name. "jpg" is accepted as
// an alias of "jpeg".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "png":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	case "ppm":
		return FormatPPM, nil
	}
	return 0, fmt.Errorf("%w %q (use png/jpeg/ppm)", ErrUnknownFormat, s)
}

// FormatForPath infers the output format from a file name. A trailing
// ".gz" is stripped and reported through gz. Unknown extensions map to PNG.
func FormatForPath(path string) (f Format, gz bool) {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".gz") {
		gz = true
		lower = strings.TrimSuffix(lower, ".gz")
	}
	switch filepath.Ext(lower) {
	case ".jpg", ".jpeg":
		return FormatJPEG, gz
	case ".ppm":
		return FormatPPM, gz
	}
	return FormatPNG, gz
}

// DefaultJPEGQuality is used when EncodeOptions.Quality is 0.
const DefaultJPEGQuality = 90

// EncodeOptions configures Encode.
type EncodeOptions struct {
	// Format is the output format. The zero value is FormatPNG.
	Format Format

	// Quality is the JPEG quality in [1,100]. 0 means DefaultJPEGQuality.
	// Ignored by the other formats.
	Quality int

	// Gzip wraps the encoded stream in gzip.
	Gzip bool
}

// DefaultEncodeOptions returns options for PNG output.
func DefaultEncodeOptions() *EncodeOptions {
	return &EncodeOptions{Format: FormatPNG}
}

// Encode writes m to w at 8 bits per channel. A nil opts uses
// DefaultEncodeOptions.
func Encode(w io.Writer, m *Image, opts *EncodeOptions) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if opts == nil {
		opts = DefaultEncodeOptions()
	}
	quality := opts.Quality
	if quality == 0 {
		quality = DefaultJPEGQuality
	}
	if opts.Format < 0 || int(opts.Format) >= len(formatNames) {
		return fmt.Errorf("%w: %w: %v", ErrEncodeFailed, ErrUnknownFormat, opts.Format)
	}
	if opts.Format == FormatJPEG && (quality < 1 || quality > 100) {
		return fmt.Errorf("%w: jpeg quality %d out of range [1,100]", ErrEncodeFailed, quality)
	}

	var zw *gzip.Writer
	if opts.Gzip {
		zw = gzip.NewWriter(w)
		w = zw
	}

	var err error
	switch opts.Format {
	case FormatPNG:
		// An opaque NRGBA is written as color type 2 (RGB), depth 8.
		err = png.Encode(w, m.NRGBA())
	case FormatJPEG:
		err = jpeg.Encode(w, m, &jpeg.Options{Quality: quality})
	case FormatPPM:
		err = writePPM(w, m)
	}
	if err != nil {
		return fmt.Errorf("%w: %v: %w", ErrEncodeFailed, opts.Format, err)
	}
	if zw != nil {
		if err := zw.Close(); err != nil {
			return fmt.Errorf("%w: gzip: %w", ErrEncodeFailed, err)
		}
	}
	return nil
}

// writePPM writes m as a binary P6 Netpbm image. The interleaved buffer is
// already in the P6 sample order.
func writePPM(w io.Writer, m *Image) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", m.Width, m.Height); err != nil {
		return err
	}
	if _, err := bw.Write(m.Pix); err != nil {
		return err
	}
	return bw.Flush()
}
