// Package planar turns decoded images delivered as separate color planes
// into a single interleaved RGB buffer, and rescales that buffer while
// preserving the aspect ratio when only one target dimension is given.
//
// Planes carry their own row stride, which may exceed the image width
// because of alignment padding. Compose always addresses rows by stride and
// checks every read against the plane's length, so padded or truncated
// planes never shear the output or read past a buffer.
//
// The package supports:
//   - Compositing three planes into packed RGB24 (Compose)
//   - Aspect-preserving or explicit resizing with pluggable filters (Resize)
//   - Decoding PNG, JPEG, GIF, WebP, BMP and TIFF into planes (Decode)
//   - Encoding to 8-bit PNG, JPEG or binary PPM, optionally gzipped (Encode)
//   - The whole decode, compose, resize and encode pipeline (Convert)
//
// Basic usage:
//
//	d, _, err := planar.Decode(r)
//	if err != nil {
//		return err
//	}
//	defer d.Release()
//	img, err := planar.Compose(d)
//	if err != nil {
//		return err
//	}
//	img, err = planar.Resize(img, 640, 0, nil)
package planar
