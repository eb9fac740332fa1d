// Package textmetrics provides sizer.TextMeasurer implementations that work
// without a display server: one backed by the Go fonts, one counting
// terminal cells.
package textmetrics

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/jmylchreest/toaststack/internal/model"
)

// DefaultDPI converts points to pixels the way desktop toolkits do.
const DefaultDPI = 96

// defaultPointSize is used for fonts with no size.
const defaultPointSize = 9

type faceKey struct {
	size float64
	bold bool
}

// FontMeasurer measures text set in the Go fonts. Font families are ignored;
// only size and weight are honoured.
type FontMeasurer struct {
	dpi     float64
	regular *opentype.Font
	bold    *opentype.Font

	mu    sync.Mutex
	faces map[faceKey]font.Face
}

// NewFontMeasurer parses the bundled Go fonts. A non-positive dpi selects
// DefaultDPI.
func NewFontMeasurer(dpi float64) (*FontMeasurer, error) {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse regular font: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bold font: %w", err)
	}
	return &FontMeasurer{
		dpi:     dpi,
		regular: regular,
		bold:    bold,
		faces:   make(map[faceKey]font.Face),
	}, nil
}

func (m *FontMeasurer) face(f model.Font) (font.Face, error) {
	key := faceKey{size: f.Size, bold: f.Bold}
	if key.size <= 0 {
		key.size = defaultPointSize
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if face, ok := m.faces[key]; ok {
		return face, nil
	}
	src := m.regular
	if key.bold {
		src = m.bold
	}
	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    key.size,
		DPI:     m.dpi,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create face for %s: %w", f, err)
	}
	m.faces[key] = face
	return face, nil
}

// Measure implements sizer.TextMeasurer. Explicit newlines start new lines.
func (m *FontMeasurer) Measure(text string, f model.Font) model.Size {
	if text == "" {
		return model.Size{}
	}
	face, err := m.face(f)
	if err != nil {
		return model.Size{}
	}
	lines := strings.Split(text, "\n")
	width := 0
	for _, line := range lines {
		width = max(width, font.MeasureString(face, line).Ceil())
	}
	return model.Size{Width: width, Height: len(lines) * lineHeight(face)}
}

// MeasureWrapped implements sizer.TextMeasurer with greedy word wrapping.
// Words wider than width get a line of their own.
func (m *FontMeasurer) MeasureWrapped(text string, f model.Font, width int) model.Size {
	if strings.TrimSpace(text) == "" {
		return model.Size{}
	}
	face, err := m.face(f)
	if err != nil {
		return model.Size{}
	}
	measure := func(s string) int { return font.MeasureString(face, s).Ceil() }

	lines, widest := 0, 0
	for _, paragraph := range strings.Split(text, "\n") {
		for _, line := range wrapWords(strings.Fields(paragraph), width, measure) {
			lines++
			widest = max(widest, measure(line))
		}
	}
	return model.Size{Width: widest, Height: lines * lineHeight(face)}
}

// Close releases the cached faces.
func (m *FontMeasurer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, face := range m.faces {
		face.Close()
		delete(m.faces, key)
	}
	return nil
}

func lineHeight(face font.Face) int {
	return face.Metrics().Height.Ceil()
}

// wrapWords greedily packs words into lines no wider than width. An empty
// paragraph still yields one line.
func wrapWords(words []string, width int, measure func(string) int) []string {
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		candidate := line + " " + w
		if width > 0 && measure(candidate) <= width {
			line = candidate
			continue
		}
		lines = append(lines, line)
		line = w
	}
	return append(lines, line)
}
