package display

import (
	"github.com/diamondburned/gotk4-adwaita/pkg/adw"

	"github.com/jmylchreest/toaststack/internal/config"
	"github.com/jmylchreest/toaststack/internal/model"
)

// PreferDark resolves a configured colour scheme, asking libadwaita when
// it is "system" or empty.
func PreferDark(scheme string) bool {
	switch scheme {
	case config.ColorSchemeLight:
		return false
	case config.ColorSchemeDark:
		return true
	default:
		return detectSystemColorScheme() == "dark"
	}
}

// PresetFor picks the light or dark variant of p for the colour scheme.
func PresetFor(p model.Preset, scheme string) model.Preset {
	if !p.Valid() {
		return p
	}
	return p.WithDark(PreferDark(scheme))
}

// detectSystemColorScheme checks libadwaita for system dark mode preference.
func detectSystemColorScheme() string {
	styleManager := adw.StyleManagerGetDefault()
	if styleManager.Dark() {
		return "dark"
	}
	return "light"
}
