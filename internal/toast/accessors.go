package toast

import (
	"github.com/jmylchreest/toaststack/internal/model"
)

// mutate applies fn to the style unless the toast has been shown.
func (t *Toast) mutate(field string, fn func(*Style)) {
	if t.used {
		t.reg.logger.Debug("ignoring setter on shown toast", "toast_id", t.ID(), "field", field)
		return
	}
	fn(&t.style)
}

func (t *Toast) Duration() int { return t.style.Duration }

// SetDuration sets the auto-dismiss delay in milliseconds. 0 disables it.
func (t *Toast) SetDuration(ms int) {
	t.mutate("duration", func(s *Style) { s.Duration = ms })
}

func (t *Toast) ShowsDurationBar() bool { return t.style.ShowDurationBar }

func (t *Toast) SetShowDurationBar(on bool) {
	t.mutate("show_duration_bar", func(s *Style) { s.ShowDurationBar = on })
}

func (t *Toast) Title() string { return t.style.Title }

func (t *Toast) SetTitle(title string) {
	t.mutate("title", func(s *Style) { s.Title = title })
}

func (t *Toast) Text() string { return t.style.Text }

func (t *Toast) SetText(text string) {
	t.mutate("text", func(s *Style) { s.Text = text })
}

func (t *Toast) Icon() model.Icon { return t.style.Icon }

// SetIcon sets the icon to a bundled kind.
func (t *Toast) SetIcon(kind model.IconKind) {
	t.mutate("icon", func(s *Style) { s.Icon = model.BuiltinIcon(kind) })
}

// SetIconImage sets a caller supplied icon image.
func (t *Toast) SetIconImage(img any) {
	t.mutate("icon", func(s *Style) { s.Icon = model.Icon{Image: img} })
}

func (t *Toast) ShowsIcon() bool { return t.style.ShowIcon }

func (t *Toast) SetShowIcon(on bool) {
	t.mutate("show_icon", func(s *Style) { s.ShowIcon = on })
}

func (t *Toast) IconSize() model.Size { return t.style.IconSize }

func (t *Toast) SetIconSize(size model.Size) {
	t.mutate("icon_size", func(s *Style) { s.IconSize = size })
}

func (t *Toast) ShowsIconSeparator() bool { return t.style.ShowIconSeparator }

func (t *Toast) SetShowIconSeparator(on bool) {
	t.mutate("show_icon_separator", func(s *Style) { s.ShowIconSeparator = on })
}

func (t *Toast) IconSeparatorWidth() int { return t.style.IconSeparatorWidth }

func (t *Toast) SetIconSeparatorWidth(w int) {
	t.mutate("icon_separator_width", func(s *Style) { s.IconSeparatorWidth = w })
}

func (t *Toast) CloseButtonIcon() model.Icon { return t.style.CloseButtonIcon }

func (t *Toast) SetCloseButtonIcon(kind model.IconKind) {
	t.mutate("close_button_icon", func(s *Style) { s.CloseButtonIcon = model.BuiltinIcon(kind) })
}

func (t *Toast) SetCloseButtonIconImage(img any) {
	t.mutate("close_button_icon", func(s *Style) { s.CloseButtonIcon = model.Icon{Image: img} })
}

func (t *Toast) ShowsCloseButton() bool { return t.style.ShowCloseButton }

func (t *Toast) SetShowCloseButton(on bool) {
	t.mutate("show_close_button", func(s *Style) { s.ShowCloseButton = on })
}

func (t *Toast) CloseButtonIconSize() model.Size { return t.style.CloseButtonIconSize }

func (t *Toast) SetCloseButtonIconSize(size model.Size) {
	t.mutate("close_button_icon_size", func(s *Style) { s.CloseButtonIconSize = size })
}

func (t *Toast) CloseButtonSize() model.Size { return t.style.CloseButtonSize }

func (t *Toast) SetCloseButtonSize(size model.Size) {
	t.mutate("close_button_size", func(s *Style) { s.CloseButtonSize = size })
}

func (t *Toast) CloseButtonWidth() int  { return t.style.CloseButtonSize.Width }
func (t *Toast) CloseButtonHeight() int { return t.style.CloseButtonSize.Height }

func (t *Toast) SetCloseButtonWidth(w int) {
	t.mutate("close_button_size", func(s *Style) { s.CloseButtonSize.Width = w })
}

func (t *Toast) SetCloseButtonHeight(h int) {
	t.mutate("close_button_size", func(s *Style) { s.CloseButtonSize.Height = h })
}

func (t *Toast) CloseButtonAlignment() model.ButtonAlignment { return t.style.CloseButtonAlignment }

// SetCloseButtonAlignment ignores values outside the defined alignments.
func (t *Toast) SetCloseButtonAlignment(a model.ButtonAlignment) {
	if !a.Valid() {
		t.reg.logger.Debug("ignoring invalid close button alignment", "toast_id", t.ID(), "alignment", int(a))
		return
	}
	t.mutate("close_button_alignment", func(s *Style) { s.CloseButtonAlignment = a })
}

func (t *Toast) FadeInDuration() int { return t.style.FadeInDuration }

func (t *Toast) SetFadeInDuration(ms int) {
	t.mutate("fade_in_duration", func(s *Style) { s.FadeInDuration = ms })
}

func (t *Toast) FadeOutDuration() int { return t.style.FadeOutDuration }

func (t *Toast) SetFadeOutDuration(ms int) {
	t.mutate("fade_out_duration", func(s *Style) { s.FadeOutDuration = ms })
}

func (t *Toast) ResetsDurationOnHover() bool { return t.style.ResetDurationOnHover }

func (t *Toast) SetResetDurationOnHover(on bool) {
	t.mutate("reset_duration_on_hover", func(s *Style) { s.ResetDurationOnHover = on })
}

func (t *Toast) StaysOnTop() bool { return t.style.StayOnTop }

func (t *Toast) SetStayOnTop(on bool) {
	t.mutate("stay_on_top", func(s *Style) { s.StayOnTop = on })
}

func (t *Toast) BorderRadius() int { return t.style.BorderRadius }

func (t *Toast) SetBorderRadius(r int) {
	t.mutate("border_radius", func(s *Style) { s.BorderRadius = r })
}

func (t *Toast) BackgroundColor() model.Color { return t.style.BackgroundColor }

func (t *Toast) SetBackgroundColor(c model.Color) {
	t.mutate("background_color", func(s *Style) { s.BackgroundColor = c })
}

func (t *Toast) TitleColor() model.Color { return t.style.TitleColor }

func (t *Toast) SetTitleColor(c model.Color) {
	t.mutate("title_color", func(s *Style) { s.TitleColor = c })
}

func (t *Toast) TextColor() model.Color { return t.style.TextColor }

func (t *Toast) SetTextColor(c model.Color) {
	t.mutate("text_color", func(s *Style) { s.TextColor = c })
}

func (t *Toast) IconColor() model.Color { return t.style.IconColor }

func (t *Toast) SetIconColor(c model.Color) {
	t.mutate("icon_color", func(s *Style) { s.IconColor = c })
}

func (t *Toast) IconSeparatorColor() model.Color { return t.style.IconSeparatorColor }

func (t *Toast) SetIconSeparatorColor(c model.Color) {
	t.mutate("icon_separator_color", func(s *Style) { s.IconSeparatorColor = c })
}

func (t *Toast) CloseButtonIconColor() model.Color { return t.style.CloseButtonIconColor }

func (t *Toast) SetCloseButtonIconColor(c model.Color) {
	t.mutate("close_button_icon_color", func(s *Style) { s.CloseButtonIconColor = c })
}

func (t *Toast) DurationBarColor() model.Color { return t.style.DurationBarColor }

func (t *Toast) SetDurationBarColor(c model.Color) {
	t.mutate("duration_bar_color", func(s *Style) { s.DurationBarColor = c })
}

func (t *Toast) TitleFont() model.Font { return t.style.TitleFont }

func (t *Toast) SetTitleFont(f model.Font) {
	t.mutate("title_font", func(s *Style) { s.TitleFont = f })
}

func (t *Toast) TextFont() model.Font { return t.style.TextFont }

func (t *Toast) SetTextFont(f model.Font) {
	t.mutate("text_font", func(s *Style) { s.TextFont = f })
}

func (t *Toast) Margins() model.Margins { return t.style.Margins }

func (t *Toast) SetMargins(m model.Margins) {
	t.mutate("margins", func(s *Style) { s.Margins = m })
}

func (t *Toast) SetMarginLeft(v int) {
	t.mutate("margins", func(s *Style) { s.Margins.Left = v })
}

func (t *Toast) SetMarginTop(v int) {
	t.mutate("margins", func(s *Style) { s.Margins.Top = v })
}

func (t *Toast) SetMarginRight(v int) {
	t.mutate("margins", func(s *Style) { s.Margins.Right = v })
}

func (t *Toast) SetMarginBottom(v int) {
	t.mutate("margins", func(s *Style) { s.Margins.Bottom = v })
}

func (t *Toast) IconMargins() model.Margins { return t.style.IconMargins }

func (t *Toast) SetIconMargins(m model.Margins) {
	t.mutate("icon_margins", func(s *Style) { s.IconMargins = m })
}

func (t *Toast) IconSectionMargins() model.Margins { return t.style.IconSectionMargins }

func (t *Toast) SetIconSectionMargins(m model.Margins) {
	t.mutate("icon_section_margins", func(s *Style) { s.IconSectionMargins = m })
}

func (t *Toast) TextSectionMargins() model.Margins { return t.style.TextSectionMargins }

func (t *Toast) SetTextSectionMargins(m model.Margins) {
	t.mutate("text_section_margins", func(s *Style) { s.TextSectionMargins = m })
}

func (t *Toast) CloseButtonMargins() model.Margins { return t.style.CloseButtonMargins }

func (t *Toast) SetCloseButtonMargins(m model.Margins) {
	t.mutate("close_button_margins", func(s *Style) { s.CloseButtonMargins = m })
}

func (t *Toast) TextSectionSpacing() int { return t.style.TextSectionSpacing }

func (t *Toast) SetTextSectionSpacing(v int) {
	t.mutate("text_section_spacing", func(s *Style) { s.TextSectionSpacing = v })
}

func (t *Toast) MinimumSize() model.Size { return t.style.MinimumSize }

func (t *Toast) SetMinimumSize(size model.Size) {
	t.mutate("minimum_size", func(s *Style) { s.MinimumSize = size })
}

func (t *Toast) SetMinimumWidth(w int) {
	t.mutate("minimum_size", func(s *Style) { s.MinimumSize.Width = w })
}

func (t *Toast) SetMinimumHeight(h int) {
	t.mutate("minimum_size", func(s *Style) { s.MinimumSize.Height = h })
}

func (t *Toast) MaximumSize() model.Size { return t.style.MaximumSize }

func (t *Toast) SetMaximumSize(size model.Size) {
	t.mutate("maximum_size", func(s *Style) { s.MaximumSize = size })
}

func (t *Toast) SetMaximumWidth(w int) {
	t.mutate("maximum_size", func(s *Style) { s.MaximumSize.Width = w })
}

func (t *Toast) SetMaximumHeight(h int) {
	t.mutate("maximum_size", func(s *Style) { s.MaximumSize.Height = h })
}

// SetFixedSize pins both the minimum and maximum size.
func (t *Toast) SetFixedSize(size model.Size) {
	t.mutate("fixed_size", func(s *Style) {
		s.MinimumSize = size
		s.MaximumSize = size
	})
}

func (t *Toast) SetFixedWidth(w int) {
	t.mutate("fixed_size", func(s *Style) {
		s.MinimumSize.Width = w
		s.MaximumSize.Width = w
	})
}

func (t *Toast) SetFixedHeight(h int) {
	t.mutate("fixed_size", func(s *Style) {
		s.MinimumSize.Height = h
		s.MaximumSize.Height = h
	})
}
