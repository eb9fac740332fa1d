// Package icon loads the bundled toast icons and prepares icon images for
// display.
package icon

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/disintegration/imaging"

	"github.com/jmylchreest/toaststack/internal/model"
)

//go:embed assets/*.png
var assets embed.FS

var (
	cacheMu sync.Mutex
	cache   = make(map[model.IconKind]image.Image)
)

// Builtin returns the bundled image for kind. Decoded images are cached;
// callers must not modify the result.
func Builtin(kind model.IconKind) (image.Image, error) {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	if img, ok := cache[kind]; ok {
		return img, nil
	}

	data, err := assets.ReadFile("assets/" + kind.FileName())
	if err != nil {
		return nil, fmt.Errorf("unknown icon %s: %w", kind, err)
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode icon %s: %w", kind, err)
	}
	cache[kind] = img
	return img, nil
}

// Source returns the image an Icon refers to: its own image if set,
// otherwise the bundled image for its kind.
func Source(ic model.Icon) (image.Image, error) {
	if img, ok := ic.Image.(image.Image); ok && img != nil {
		return img, nil
	}
	return Builtin(ic.Kind)
}

// Recolor returns a copy of img where every pixel takes the RGB of c and
// keeps its own alpha.
func Recolor(img image.Image, c model.Color) *image.NRGBA {
	return imaging.AdjustFunc(img, func(px color.NRGBA) color.NRGBA {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: px.A}
	})
}

// Fit scales img down to fit inside size, keeping its aspect ratio.
// Images already small enough are copied unscaled.
func Fit(img image.Image, size model.Size) *image.NRGBA {
	return imaging.Fit(img, size.Width, size.Height, imaging.Lanczos)
}

// Render resolves ic, recolours it and scales it to size.
func Render(ic model.Icon, c model.Color, size model.Size) (image.Image, error) {
	src, err := Source(ic)
	if err != nil {
		return nil, err
	}
	return Fit(Recolor(src, c), size), nil
}
