package toast

import "github.com/jmylchreest/toaststack/internal/model"

// AccentColor returns the accent a preset uses for its icon and duration bar.
func AccentColor(p model.Preset) model.Color {
	switch p.Light() {
	case model.PresetSuccess:
		return SuccessAccentColor
	case model.PresetWarning:
		return WarningAccentColor
	case model.PresetError:
		return ErrorAccentColor
	case model.PresetInformation:
		return InformationAccentColor
	default:
		return DefaultAccentColor
	}
}

// PaletteFor returns the light or dark palette for p.
func PaletteFor(p model.Preset) Palette {
	if p.Dark() {
		return DarkPalette
	}
	return LightPalette
}

// Apply assigns the preset's icon and colours to s and turns on the icon,
// its separator and the duration bar.
func (s *Style) Apply(p model.Preset) {
	accent := AccentColor(p)
	s.Preset = p
	s.Icon = model.BuiltinIcon(p.Icon())
	s.IconColor = accent
	s.DurationBarColor = accent
	s.applyPalette(PaletteFor(p))
	s.ShowDurationBar = true
	s.ShowIcon = true
	s.ShowIconSeparator = true
	s.IconSeparatorWidth = 2
}

// ApplyPreset styles the toast with one of the bundled presets. Unknown
// presets are ignored, as is any preset once the toast has been shown.
func (t *Toast) ApplyPreset(p model.Preset) {
	if !p.Valid() {
		t.reg.logger.Debug("ignoring invalid preset", "toast_id", t.ID(), "preset", int(p))
		return
	}
	t.mutate("preset", func(s *Style) { s.Apply(p) })
}
