package planar

import (
	"fmt"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	"golang.org/x/image/draw"

	"github.com/deepteams/planar/internal/resample"
)

// Filter selects the resampling kernel used by Resize.
type Filter int

const (
	// FilterLanczos is the Lanczos (a=3) filter of disintegration/imaging.
	FilterLanczos Filter = iota
	// FilterLanczos3 is nfnt/resize's Lanczos3 interpolation.
	FilterLanczos3
	// FilterDrawLanczos3 is a three-lobe Lanczos kernel run by x/image/draw.
	FilterDrawLanczos3
	// FilterCatmullRom is x/image/draw's Catmull-Rom cubic.
	FilterCatmullRom
	// FilterBox is the fixed-point area-average (shrink) / bilinear
	// (expand) rescaler. It is the fastest option and the least sharp.
	FilterBox
)

var filterNames = [...]string{
	FilterLanczos:      "lanczos",
	FilterLanczos3:     "lanczos3",
	FilterDrawLanczos3: "draw-lanczos3",
	FilterCatmullRom:   "catmull-rom",
	FilterBox:          "box",
}

// FilterNames lists the names accepted by ParseFilter.
func FilterNames() []string {
	return append([]string(nil), filterNames[:]...)
}

func (f Filter) String() string {
	if f < 0 || int(f) >= len(filterNames) {
		return fmt.Sprintf("Filter(%d)", int(f))
	}
	return filterNames[f]
}

// ParseFilter returns the filter with the given name (case-insensitive).
func ParseFilter(s string) (Filter, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range filterNames {
		if s == name {
			return Filter(i), nil
		}
	}
	return 0, fmt.Errorf("%w %q (use %s)", ErrUnknownFilter, s, strings.Join(filterNames[:], "/"))
}

// resampler returns the resampling primitive behind f.
func (f Filter) resampler() (resample.Resampler, error) {
	switch f {
	case FilterLanczos:
		return resample.Imaging{Filter: imaging.Lanczos}, nil
	case FilterLanczos3:
		return resample.Nfnt{Interp: resize.Lanczos3}, nil
	case FilterDrawLanczos3:
		return resample.Draw{Kernel: resample.Lanczos3}, nil
	case FilterCatmullRom:
		return resample.Draw{Kernel: draw.CatmullRom}, nil
	case FilterBox:
		return resample.Box{}, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownFilter, f)
}
