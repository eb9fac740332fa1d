package config

import (
	"fmt"

	"github.com/jmylchreest/toaststack/internal/model"
	"github.com/jmylchreest/toaststack/internal/screen"
	"github.com/jmylchreest/toaststack/internal/sizer"
	"github.com/jmylchreest/toaststack/internal/toast"
)

// Settings converts the [stack] section into registry settings. A named
// monitor is looked up in screens.
func (s StackConfig) Settings(screens screen.Provider) (toast.Settings, error) {
	pos, err := model.ParsePosition(s.Position)
	if err != nil {
		return toast.Settings{}, err
	}

	settings := toast.Settings{
		MaximumOnScreen:         s.MaxVisible,
		Spacing:                 s.Spacing,
		OffsetX:                 s.OffsetX,
		OffsetY:                 s.OffsetY,
		AlwaysOnMainScreen:      s.AlwaysOnMainScreen,
		Position:                pos,
		TickInterval:            max(s.TickInterval.Milliseconds(), 1),
		PredecessorCompensation: s.PredecessorCompensation,
	}

	if s.Monitor != "" {
		if screens == nil {
			return toast.Settings{}, fmt.Errorf("monitor %q configured but no screens available", s.Monitor)
		}
		found := false
		for _, r := range screens.Regions() {
			if r.Name == s.Monitor {
				region := r
				settings.FixedScreen = &region
				found = true
				break
			}
		}
		if !found {
			return toast.Settings{}, fmt.Errorf("monitor %q not found", s.Monitor)
		}
	}
	return settings, nil
}

// Apply pushes the [stack] section into reg. Visible toasts are repositioned
// and queued toasts promoted as the new settings require.
func (c *Config) Apply(reg *toast.Registry, screens screen.Provider) error {
	settings, err := c.Stack.Settings(screens)
	if err != nil {
		return fmt.Errorf("failed to apply stack settings: %w", err)
	}
	reg.ApplySettings(settings)
	return nil
}

// ToastStyle converts the [style] section into a toast style. The preset,
// if any, is applied first and explicit colours override it.
func (s StyleConfig) ToastStyle() (toast.Style, error) {
	style := toast.DefaultStyle()

	if s.Preset != "" {
		p, err := model.ParsePreset(s.Preset)
		if err != nil {
			return toast.Style{}, err
		}
		style.Apply(p)
	}

	align, err := parseAlignment(s.CloseButtonAlignment)
	if err != nil {
		return toast.Style{}, err
	}

	style.Duration = s.Duration.Milliseconds()
	style.FadeInDuration = s.FadeIn.Milliseconds()
	style.FadeOutDuration = s.FadeOut.Milliseconds()
	style.ShowDurationBar = s.ShowDurationBar
	style.ShowIcon = style.ShowIcon || s.ShowIcon
	style.ShowIconSeparator = s.ShowIconSeparator
	style.ShowCloseButton = s.ShowCloseButton
	style.ResetDurationOnHover = s.ResetDurationOnHover
	style.StayOnTop = s.StayOnTop
	style.BorderRadius = s.BorderRadius
	style.CloseButtonAlignment = align
	if s.IconSize > 0 {
		style.IconSize = model.Size{Width: s.IconSize, Height: s.IconSize}
	}

	style.Margins = model.NewMargins(s.Margins.Left, s.Margins.Top, s.Margins.Right, s.Margins.Bottom)
	style.MinimumSize = model.Size{Width: s.MinWidth, Height: s.MinHeight}
	style.MaximumSize = model.Size{Width: unbounded(s.MaxWidth), Height: unbounded(s.MaxHeight)}

	style.TitleFont = s.TitleFont.font(style.TitleFont)
	style.TextFont = s.TextFont.font(style.TextFont)

	for _, o := range []struct {
		hex string
		dst *model.Color
	}{
		{s.Colors.Background, &style.BackgroundColor},
		{s.Colors.Title, &style.TitleColor},
		{s.Colors.Text, &style.TextColor},
		{s.Colors.Icon, &style.IconColor},
		{s.Colors.IconSeparator, &style.IconSeparatorColor},
		{s.Colors.CloseButtonIcon, &style.CloseButtonIconColor},
		{s.Colors.DurationBar, &style.DurationBarColor},
	} {
		if o.hex == "" {
			continue
		}
		c, err := model.ParseColor(o.hex)
		if err != nil {
			return toast.Style{}, err
		}
		*o.dst = c
	}

	return style, nil
}

func (f FontConfig) font(fallback model.Font) model.Font {
	out := fallback
	if f.Family != "" {
		out.Family = f.Family
	}
	if f.Size > 0 {
		out.Size = f.Size
	}
	out.Bold = f.Bold
	return out
}

func unbounded(n int) int {
	if n <= 0 {
		return sizer.MaxDimension
	}
	return n
}

// SoundFor returns the sound file for toasts styled with p, falling back to
// the default sound. Expands ~ to the home directory.
func (s SoundsConfig) SoundFor(p model.Preset) string {
	var path string
	switch p.Light() {
	case model.PresetSuccess:
		path = s.Success
	case model.PresetWarning:
		path = s.Warning
	case model.PresetError:
		path = s.Error
	case model.PresetInformation:
		path = s.Information
	}
	if path == "" {
		path = s.Default
	}
	return expandPath(path)
}
