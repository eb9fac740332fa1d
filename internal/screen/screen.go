// Package screen resolves which physical display region a toast stack is
// placed on.
package screen

import (
	"github.com/jmylchreest/toaststack/internal/model"
)

// Region is a physical display area in global coordinates.
type Region struct {
	Name    string     `json:"name" yaml:"name"`
	Bounds  model.Rect `json:"bounds" yaml:"bounds"`
	Primary bool       `json:"primary,omitempty" yaml:"primary,omitempty"`
}

// Window is anything that occupies screen space, typically the host
// application window toasts are parented to.
type Window interface {
	Bounds() model.Rect
}

// Provider enumerates the available display regions.
type Provider interface {
	// Primary returns the primary display region.
	Primary() Region
	// Regions returns every display region, primary included.
	Regions() []Region
}

// Options are the registry settings that influence region selection.
type Options struct {
	AlwaysOnMain bool
	Fixed        *Region
}

// Resolve returns the region a toast belongs on.
//
// A fixed region always wins. Otherwise the primary region is used when
// AlwaysOnMain is set or there is no host window. Otherwise the region the
// host window overlaps is used; when the window spans several regions, or
// overlaps none, the primary region is returned.
func Resolve(opts Options, host Window, p Provider) Region {
	if opts.Fixed != nil {
		return *opts.Fixed
	}
	if opts.AlwaysOnMain || host == nil {
		return p.Primary()
	}

	bounds := host.Bounds()
	var match *Region
	for _, r := range p.Regions() {
		if !bounds.Intersects(r.Bounds) {
			continue
		}
		if match != nil {
			return p.Primary()
		}
		r := r
		match = &r
	}
	if match == nil {
		return p.Primary()
	}
	return *match
}

// StaticWindow is a Window with fixed bounds.
type StaticWindow model.Rect

// Bounds implements Window.
func (w StaticWindow) Bounds() model.Rect {
	return model.Rect(w)
}

// Static is a Provider over a fixed list of regions. The first region
// flagged Primary is the primary one; if none is flagged, the first region is.
type Static struct {
	regions []Region
}

// NewStatic creates a Provider over the given regions.
func NewStatic(regions ...Region) *Static {
	return &Static{regions: append([]Region(nil), regions...)}
}

// Single returns a Provider with one primary region of the given size at the origin.
func Single(width, height int) *Static {
	return NewStatic(Region{
		Name:    "primary",
		Bounds:  model.Rect{Width: width, Height: height},
		Primary: true,
	})
}

// Primary implements Provider.
func (s *Static) Primary() Region {
	for _, r := range s.regions {
		if r.Primary {
			return r
		}
	}
	if len(s.regions) > 0 {
		return s.regions[0]
	}
	return Region{}
}

// Regions implements Provider.
func (s *Static) Regions() []Region {
	return append([]Region(nil), s.regions...)
}
