package textmetrics

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/jmylchreest/toaststack/internal/model"
)

// CellMeasurer measures text in terminal cells: one unit per column and one
// per line. Fonts are ignored and ANSI escape sequences take no space.
type CellMeasurer struct{}

// Measure implements sizer.TextMeasurer.
func (CellMeasurer) Measure(text string, _ model.Font) model.Size {
	if text == "" {
		return model.Size{}
	}
	return blockSize(text)
}

// MeasureWrapped implements sizer.TextMeasurer. A non-positive width puts
// every word on its own line.
func (CellMeasurer) MeasureWrapped(text string, _ model.Font, width int) model.Size {
	if strings.TrimSpace(ansi.Strip(text)) == "" {
		return model.Size{}
	}
	return blockSize(Wrap(text, width))
}

// Wrap word wraps text to width cells exactly as MeasureWrapped measures it.
func Wrap(text string, width int) string {
	var out []string
	for _, paragraph := range strings.Split(text, "\n") {
		out = append(out, wrapWords(strings.Fields(paragraph), width, ansi.StringWidth)...)
	}
	return strings.Join(out, "\n")
}

func blockSize(text string) model.Size {
	lines := strings.Split(text, "\n")
	width := 0
	for _, line := range lines {
		width = max(width, ansi.StringWidth(line))
	}
	return model.Size{Width: width, Height: len(lines)}
}

// GridMeasurer is a CellMeasurer scaled to a fixed pixel grid. It gives
// plausible pixel sizes for headless runs without loading a font.
type GridMeasurer struct {
	CellWidth  int
	CellHeight int
}

// Measure implements sizer.TextMeasurer.
func (g GridMeasurer) Measure(text string, f model.Font) model.Size {
	return g.scale(CellMeasurer{}.Measure(text, f))
}

// MeasureWrapped implements sizer.TextMeasurer.
func (g GridMeasurer) MeasureWrapped(text string, f model.Font, width int) model.Size {
	cw, _ := g.cell()
	return g.scale(CellMeasurer{}.MeasureWrapped(text, f, width/cw))
}

func (g GridMeasurer) cell() (int, int) {
	return max(g.CellWidth, 1), max(g.CellHeight, 1)
}

func (g GridMeasurer) scale(s model.Size) model.Size {
	cw, ch := g.cell()
	return model.Size{Width: s.Width * cw, Height: s.Height * ch}
}
