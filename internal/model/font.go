// Package model defines the value types shared by the toast engine and its hosts.
package model

import "fmt"

// Font describes a text face by family, point size and weight.
type Font struct {
	Family string  `json:"family" yaml:"family" toml:"family"`
	Size   float64 `json:"size" yaml:"size" toml:"size"` // points
	Bold   bool    `json:"bold,omitempty" yaml:"bold,omitempty" toml:"bold"`
}

// DefaultTitleFont is the title face used when none is configured.
func DefaultTitleFont() Font {
	return Font{Family: "Arial", Size: 9, Bold: true}
}

// DefaultTextFont is the body face used when none is configured.
func DefaultTextFont() Font {
	return Font{Family: "Arial", Size: 9}
}

func (f Font) String() string {
	weight := ""
	if f.Bold {
		weight = " Bold"
	}
	return fmt.Sprintf("%s%s %gpt", f.Family, weight, f.Size)
}

// Icon is either a bundled icon kind or a caller supplied image.
// A non-nil Image takes precedence over Kind.
type Icon struct {
	Kind  IconKind
	Image any // image.Image; kept untyped so model stays free of image decoding
}

// BuiltinIcon returns an Icon referring to a bundled asset.
func BuiltinIcon(kind IconKind) Icon {
	return Icon{Kind: kind}
}
