package planar

import "errors"

// Errors returned by the package. Callers should test with errors.Is; most
// are wrapped with context about the plane, size or format involved.
var (
	ErrOutOfBounds       = errors.New("planar: plane read out of bounds")
	ErrInvalidDimensions = errors.New("planar: invalid dimensions")
	ErrPlaneCount        = errors.New("planar: descriptor must have exactly 3 planes")
	ErrDecodeFailed      = errors.New("planar: decode failed")
	ErrEncodeFailed      = errors.New("planar: encode failed")
	ErrUnknownFilter     = errors.New("planar: unknown resize filter")
	ErrUnknownFormat     = errors.New("planar: unknown output format")
)
