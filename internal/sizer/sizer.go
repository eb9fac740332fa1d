// Package sizer computes the size of a toast and the placement of its
// elements from its content and size constraints.
package sizer

import (
	"math"

	"github.com/jmylchreest/toaststack/internal/model"
	"github.com/jmylchreest/toaststack/internal/stack"
)

const (
	// DurationBarHeight is the height of the countdown bar when shown.
	DurationBarHeight = 4

	// MaxDimension is the largest width or height a toast may have.
	MaxDimension = 16777215
)

// TextMeasurer measures rendered text.
//
// Both methods return a zero Size for empty text.
type TextMeasurer interface {
	// Measure returns the extent of text laid out on a single line.
	Measure(text string, font model.Font) model.Size

	// MeasureWrapped returns the bounding box of text word-wrapped at width.
	// Words are never broken, so the result may be wider than width. A width
	// of zero or less puts every word on its own line.
	MeasureWrapped(text string, font model.Font, width int) model.Size
}

// Input is everything the layout depends on.
type Input struct {
	Title     string
	Text      string
	TitleFont model.Font
	TextFont  model.Font

	ShowIcon           bool
	IconSize           model.Size
	IconSeparatorWidth int // effective width, 0 when the separator is hidden

	ShowCloseButton      bool
	CloseButtonSize      model.Size
	CloseButtonAlignment model.ButtonAlignment

	ShowDurationBar bool

	Margins            model.Margins
	IconMargins        model.Margins
	IconSectionMargins model.Margins
	TextSectionMargins model.Margins
	CloseButtonMargins model.Margins
	TextSectionSpacing int

	MinSize model.Size
	MaxSize model.Size // zero components are unbounded
}

// Layout is the computed geometry of a toast. Element rectangles are
// relative to the content area, which sits DropShadowSize pixels inside
// the surface.
type Layout struct {
	Size  model.Size // content area
	Total model.Size // surface, including the drop shadow border

	WrapTitle bool
	WrapText  bool

	Icon          model.Rect
	IconSeparator model.Rect
	Title         model.Rect
	Text          model.Rect
	CloseButton   model.Rect
	DurationBar   model.Rect

	TextSectionHeight      int
	ForcedAdditionalHeight int
	ForcedReducedHeight    int
}

// ComputeLayout sizes a toast and positions its elements.
//
// The natural size is the sum of the sections. If it is wider than the
// maximum width, both labels wrap and shrink by the overflow. If it is then
// shorter than the minimum height, the narrowest wrap width that still
// reaches the minimum height is searched for in one pixel steps; when none
// does, the content is padded up to the minimum and re-centred. Finally the
// width is raised to the minimum width and the height cut to the maximum
// height, again re-centring the content.
func ComputeLayout(in Input, m TextMeasurer) Layout {
	maxW, maxH := in.MaxSize.Width, in.MaxSize.Height
	if maxW <= 0 {
		maxW = MaxDimension
	}
	if maxH <= 0 {
		maxH = MaxDimension
	}
	minW, minH := in.MinSize.Width, in.MinSize.Height

	mg, tsm := in.Margins, in.TextSectionMargins
	ism, im := in.IconSectionMargins, in.IconMargins

	title := m.Measure(in.Title, in.TitleFont)
	text := m.Measure(in.Text, in.TextFont)
	tw, th := title.Width, title.Height
	xw, xh := text.Width, text.Height

	spacing := in.TextSectionSpacing
	if in.Title == "" || in.Text == "" {
		spacing = 0
	}
	sectionHeight := func(th, xh int) int {
		return tsm.Top + th + spacing + xh + tsm.Bottom
	}
	tsh := sectionHeight(th, xh)

	dbh := 0
	if in.ShowDurationBar {
		dbh = DurationBarHeight
	}

	isw, ish := 0, 0
	if in.ShowIcon {
		isw = ism.Left + im.Left + in.IconSize.Width + im.Right + in.IconSeparatorWidth + ism.Right
		ish = ism.Top + im.Top + in.IconSize.Height + im.Bottom + ism.Bottom
	}

	cbw, cbh := 0, 0
	var cbm model.Margins
	if in.ShowCloseButton {
		cbw, cbh = in.CloseButtonSize.Width, in.CloseButtonSize.Height
		cbm = in.CloseButtonMargins
	}
	cbsh := cbm.Top + cbh + cbm.Bottom

	widthFor := func(tw, xw int) int {
		return mg.Left + isw + tsm.Left + max(tw, xw) + tsm.Right +
			cbm.Left + cbw + cbm.Right + mg.Right
	}
	heightFor := func(tsh int) int {
		return mg.Top + max(ish, tsh, cbsh) + mg.Bottom + dbh
	}

	var l Layout
	width := widthFor(tw, xw)
	height := heightFor(tsh)
	forcedAdd, forcedRed := 0, 0

	if width > maxW {
		overflow := width - maxW
		if n := max(tw, xw) - overflow; n > 0 {
			tw = n
		}
		if n := max(tw, xw) - overflow; n > 0 {
			xw = n
		}
		l.WrapTitle, l.WrapText = true, true
		if in.Title != "" {
			th = m.MeasureWrapped(in.Title, in.TitleFont, tw).Height
		}
		if in.Text != "" {
			xh = m.MeasureWrapped(in.Text, in.TextFont, xw).Height
		}

		width = maxW
		tsh = sectionHeight(th, xh)
		height = heightFor(tsh)
	}

	if height < minH {
		l.WrapTitle, l.WrapText = true, true

		trial := max(
			m.MeasureWrapped(in.Title, in.TitleFont, 0).Width,
			m.MeasureWrapped(in.Text, in.TextFont, 0).Width,
		)

		tr := m.MeasureWrapped(in.Title, in.TitleFont, trial)
		tw = tr.Width
		if in.Title != "" {
			th = tr.Height
		}
		xr := m.MeasureWrapped(in.Text, in.TextFont, trial)
		xw = xr.Width
		if in.Text != "" {
			xh = xr.Height
		}
		tsh = sectionHeight(th, xh)
		height = heightFor(tsh)

		for trial <= width {
			tr := m.MeasureWrapped(in.Title, in.TitleFont, trial)
			xr := m.MeasureWrapped(in.Text, in.TextFont, trial)
			trialTH, trialXH := tr.Height, xr.Height
			if in.Title == "" {
				trialTH = 0
			}
			if in.Text == "" {
				trialXH = 0
			}
			trialTSH := sectionHeight(trialTH, trialXH)
			trialHeight := heightFor(trialTSH)
			if trialHeight < minH {
				break
			}
			tw, th, xw, xh = tr.Width, trialTH, xr.Width, trialXH
			tsh, height = trialTSH, trialHeight
			trial++
		}

		width = widthFor(tw, xw)
		if height < minH {
			forcedAdd = minH - height
			height = minH
		}
	}

	if width < minW {
		width = minW
	}
	if height > maxH {
		forcedRed = height - maxH
		height = maxH
	}

	l.Size = model.Size{Width: width, Height: height}
	l.Total = model.Size{Width: width + 2*stack.DropShadowSize, Height: height + 2*stack.DropShadowSize}
	l.TextSectionHeight = tsh
	l.ForcedAdditionalHeight = forcedAdd
	l.ForcedReducedHeight = forcedRed

	sections := max(ish, tsh, cbsh)
	shift := ceilHalf(forcedAdd) - floorHalf(forcedRed)

	labelX := mg.Left + tsm.Left
	if in.ShowIcon {
		l.Icon = model.Rect{
			X:      mg.Left + ism.Left + im.Left,
			Y:      mg.Top + ism.Top + im.Top + ceilHalf(sections-ish) + shift,
			Width:  in.IconSize.Width,
			Height: in.IconSize.Height,
		}
		l.IconSeparator = model.Rect{
			X:      mg.Left + ism.Left + im.Left + in.IconSize.Width + im.Right,
			Y:      mg.Top + ism.Top + shift,
			Width:  in.IconSeparatorWidth,
			Height: tsh,
		}
		labelX += ism.Left + im.Left + in.IconSize.Width + im.Right + in.IconSeparatorWidth + ism.Right
	}

	labelW := max(tw, xw)
	titleY := mg.Top + tsm.Top + ceilHalf(sections-tsh) + shift
	textY := titleY + th + in.TextSectionSpacing
	switch {
	case in.Title == "" && in.Text != "":
		textY = (height - xh - dbh) / 2
	case in.Title != "" && in.Text == "":
		titleY = (height - th - dbh) / 2
	}
	l.Title = model.Rect{X: labelX, Y: titleY, Width: labelW, Height: th}
	l.Text = model.Rect{X: labelX, Y: textY, Width: labelW, Height: xh}

	closeY := mg.Top + cbm.Top
	switch in.CloseButtonAlignment {
	case model.ButtonAlignmentMiddle:
		closeY = ceilHalf(height - cbh - dbh)
	case model.ButtonAlignmentBottom:
		closeY = height - cbh - mg.Bottom - cbm.Bottom - dbh
	}
	l.CloseButton = model.Rect{
		X:      width - cbw - cbm.Right - mg.Right,
		Y:      closeY,
		Width:  cbw,
		Height: cbh,
	}

	if in.ShowDurationBar {
		l.DurationBar = model.Rect{X: 0, Y: height - dbh, Width: width, Height: dbh}
	}

	return l
}

func ceilHalf(n int) int {
	return int(math.Ceil(float64(n) / 2))
}

func floorHalf(n int) int {
	return int(math.Floor(float64(n) / 2))
}
