package tui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jmylchreest/toaststack/internal/model"
	"github.com/jmylchreest/toaststack/internal/stack"
	"github.com/jmylchreest/toaststack/internal/textmetrics"
	"github.com/jmylchreest/toaststack/internal/toast"
)

// minOpacity is the opacity below which a fading toast is not drawn.
const minOpacity = 0.05

// canvasSurface is a toast.Surface painted into the terminal by View.
type canvasSurface struct {
	seq       int
	toast     *toast.Toast
	frame     toast.Frame
	pos       model.Point
	opacity   float64
	bar       int
	stayOnTop bool
	shown     bool
	closed    bool
}

func (s *canvasSurface) Render(frame toast.Frame) { s.frame = frame }
func (s *canvasSurface) Move(p model.Point)       { s.pos = p }
func (s *canvasSurface) SetOpacity(o float64)     { s.opacity = o }
func (s *canvasSurface) SetDurationBar(w int)     { s.bar = w }
func (s *canvasSurface) SetStayOnTop(on bool)     { s.stayOnTop = on }
func (s *canvasSurface) Show()                    { s.shown = true }

func (s *canvasSurface) Close() {
	s.shown = false
	s.closed = true
}

// bounds is the content rectangle in terminal cells. The surface position
// includes the drop shadow border, which a terminal has no use for.
func (s *canvasSurface) bounds() model.Rect {
	return model.NewRect(
		model.Point{X: s.pos.X + stack.DropShadowSize, Y: s.pos.Y + stack.DropShadowSize},
		s.frame.Layout.Size,
	)
}

func (s *canvasSurface) visible() bool {
	return s.shown && !s.closed && s.opacity >= minOpacity && !s.bounds().Empty()
}

// canvas owns the surfaces of one registry.
type canvas struct {
	next     int
	surfaces []*canvasSurface
}

// NewSurface implements toast.SurfaceFactory.
func (c *canvas) NewSurface(t *toast.Toast) toast.Surface {
	c.next++
	s := &canvasSurface{seq: c.next, toast: t}
	c.surfaces = append(c.surfaces, s)
	return s
}

// prune forgets closed surfaces.
func (c *canvas) prune() {
	c.surfaces = slices.DeleteFunc(c.surfaces, func(s *canvasSurface) bool { return s.closed })
}

// at returns the topmost visible surface containing p.
func (c *canvas) at(p model.Point) *canvasSurface {
	ordered := c.paintOrder()
	for i := len(ordered) - 1; i >= 0; i-- {
		if ordered[i].bounds().Contains(p) {
			return ordered[i]
		}
	}
	return nil
}

// paintOrder returns the visible surfaces bottom first. Stay-on-top
// surfaces are painted after the rest.
func (c *canvas) paintOrder() []*canvasSurface {
	var out []*canvasSurface
	for _, s := range c.surfaces {
		if s.visible() {
			out = append(out, s)
		}
	}
	slices.SortStableFunc(out, func(a, b *canvasSurface) int {
		switch {
		case a.stayOnTop == b.stayOnTop:
			return a.seq - b.seq
		case a.stayOnTop:
			return 1
		default:
			return -1
		}
	})
	return out
}

// paint draws every visible surface over a blank width x height area.
func (c *canvas) paint(width, height int) string {
	lines := make([]string, height)
	blank := strings.Repeat(" ", max(width, 0))
	for i := range lines {
		lines[i] = blank
	}

	for _, s := range c.paintOrder() {
		b := s.bounds()
		rows := s.rows()
		for i, row := range rows {
			y := b.Y + i
			if y < 0 || y >= height {
				continue
			}
			lines[y] = overlay(lines[y], row, b.X, width)
		}
	}
	return strings.Join(lines, "\n")
}

// overlay writes row over line starting at column x, clipped to width.
func overlay(line, row string, x, width int) string {
	if x < 0 {
		row = ansi.TruncateLeft(row, -x, "")
		x = 0
	}
	if x >= width {
		return line
	}
	row = ansi.Truncate(row, width-x, "")
	end := x + ansi.StringWidth(row)
	return ansi.Truncate(line, x, "") + row + ansi.TruncateLeft(line, end, "")
}

type cell struct {
	r  rune
	fg model.Color
}

// rows renders the toast content one styled string per line.
func (s *canvasSurface) rows() []string {
	st, l := s.frame.Style, s.frame.Layout
	w, h := l.Size.Width, l.Size.Height

	grid := make([][]cell, h)
	for y := range grid {
		grid[y] = make([]cell, w)
		for x := range grid[y] {
			grid[y][x] = cell{r: ' ', fg: st.TextColor}
		}
	}
	put := func(x, y int, r rune, fg model.Color) {
		if y >= 0 && y < h && x >= 0 && x < w {
			grid[y][x] = cell{r: r, fg: fg}
		}
	}
	write := func(rect model.Rect, text string, wrap bool, fg model.Color) {
		if wrap {
			text = textmetrics.Wrap(text, rect.Width)
		}
		for i, line := range strings.Split(text, "\n") {
			if i >= rect.Height {
				break
			}
			x := rect.X
			for _, r := range line {
				if x >= rect.X+rect.Width {
					break
				}
				put(x, rect.Y+i, r, fg)
				x++
			}
		}
	}

	if st.ShowIcon && !l.Icon.Empty() {
		put(l.Icon.X, l.Icon.Y, glyph(st.Icon.Kind), st.IconColor)
	}
	if !l.IconSeparator.Empty() {
		for y := l.IconSeparator.Y; y < l.IconSeparator.Y+l.IconSeparator.Height; y++ {
			put(l.IconSeparator.X, y, '│', st.IconSeparatorColor)
		}
	}
	write(l.Title, st.Title, l.WrapTitle, st.TitleColor)
	write(l.Text, st.Text, l.WrapText, st.TextColor)
	if st.ShowCloseButton && !l.CloseButton.Empty() {
		c := l.CloseButton
		put(c.X+c.Width/2, c.Y+c.Height/2, '×', st.CloseButtonIconColor)
	}
	if st.ShowDurationBar && !l.DurationBar.Empty() {
		y := l.DurationBar.Y + l.DurationBar.Height - 1
		for x := l.DurationBar.X; x < l.DurationBar.X+min(s.bar, l.DurationBar.Width); x++ {
			put(x, y, '━', st.DurationBarColor)
		}
	}

	out := make([]string, h)
	for y, row := range grid {
		out[y] = s.styleRow(row, st)
	}
	return out
}

// styleRow joins runs of equally coloured cells. Faded toasts have their
// foreground blended into the background.
func (s *canvasSurface) styleRow(row []cell, st toast.Style) string {
	bg := st.BackgroundColor
	var b strings.Builder
	for i := 0; i < len(row); {
		j := i
		var run strings.Builder
		for j < len(row) && row[j].fg == row[i].fg {
			run.WriteRune(row[j].r)
			j++
		}
		fg := row[i].fg
		if s.opacity < 1 {
			fg = bg.Blend(fg, s.opacity)
		}
		style := lipgloss.NewStyle().
			Foreground(lipgloss.Color(fg.Hex())).
			Background(lipgloss.Color(bg.Hex())).
			Bold(row[i].fg == st.TitleColor && st.TitleFont.Bold)
		b.WriteString(style.Render(run.String()))
		i = j
	}
	return b.String()
}

// glyph is the single cell stand-in for a bundled icon.
func glyph(kind model.IconKind) rune {
	switch kind {
	case model.IconSuccess:
		return '✓'
	case model.IconWarning:
		return '!'
	case model.IconError:
		return '✗'
	case model.IconInformation:
		return 'i'
	case model.IconClose:
		return '×'
	default:
		return '•'
	}
}
