package model

import (
	"fmt"
	"image/color"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an opaque RGB colour. It marshals to and from "#RRGGBB".
type Color struct {
	R, G, B uint8
}

// MustParseColor parses a hex colour and panics on malformed input.
// It is intended for package level constants.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseColor parses "#RRGGBB" or "#RGB".
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if len(s) == 4 && s[0] == '#' {
		s = "#" + strings.Repeat(s[1:2], 2) + strings.Repeat(s[2:3], 2) + strings.Repeat(s[3:4], 2)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

// Hex returns the colour in "#RRGGBB" form (upper case).
func (c Color) Hex() string {
	return strings.ToUpper(c.colorful().Hex())
}

func (c Color) String() string {
	return c.Hex()
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}.RGBA()
}

// NRGBA returns the colour with the given alpha.
func (c Color) NRGBA(alpha uint8) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: alpha}
}

// IsDark reports whether the colour has low perceived lightness.
func (c Color) IsDark() bool {
	l, _, _ := c.colorful().Lab()
	return l < 0.5
}

// Blend mixes c towards o by t in [0,1] in Lab space.
func (c Color) Blend(o Color, t float64) Color {
	r, g, b := c.colorful().BlendLab(o.colorful(), t).Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
