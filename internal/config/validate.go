package config

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/toaststack/internal/model"
)

// ValidationError reports a configuration that could not be parsed or holds
// an invalid value.
type ValidationError struct {
	Path   string // Config file, empty when not loaded from disk
	Field  string // Dotted key such as "stack.position", empty for parse failures
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	if e.Path != "" {
		b.WriteString(e.Path)
		b.WriteString(": ")
	}
	if e.Field != "" {
		b.WriteString(e.Field)
		b.WriteString(": ")
	}
	b.WriteString(e.Reason)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := model.ParsePosition(c.Stack.Position); err != nil {
		return &ValidationError{Field: "stack.position", Reason: "invalid position", Err: err}
	}
	if c.Stack.MaxVisible < 0 || c.Stack.MaxVisible > 50 {
		return invalid("stack.max_visible", "must be between 0 and 50, got %d", c.Stack.MaxVisible)
	}
	if c.Stack.Spacing < 0 {
		return invalid("stack.spacing", "must not be negative, got %d", c.Stack.Spacing)
	}
	if c.Stack.TickInterval.Milliseconds() < 1 {
		return invalid("stack.tick_interval", "must be at least 1ms, got %s", c.Stack.TickInterval.Duration())
	}

	s := c.Style
	if s.Preset != "" {
		if _, err := model.ParsePreset(s.Preset); err != nil {
			return &ValidationError{Field: "style.preset", Reason: "invalid preset", Err: err}
		}
	}
	if _, err := parseAlignment(s.CloseButtonAlignment); err != nil {
		return &ValidationError{Field: "style.close_button_alignment", Reason: "invalid alignment", Err: err}
	}
	for field, d := range map[string]Duration{
		"style.duration": s.Duration,
		"style.fade_in":  s.FadeIn,
		"style.fade_out": s.FadeOut,
	} {
		if d < 0 {
			return invalid(field, "must not be negative, got %s", d.Duration())
		}
	}
	if s.IconSize < 0 {
		return invalid("style.icon_size", "must not be negative, got %d", s.IconSize)
	}
	if s.MaxWidth > 0 && s.MinWidth > s.MaxWidth {
		return invalid("style.min_width", "%d exceeds max_width %d", s.MinWidth, s.MaxWidth)
	}
	if s.MaxHeight > 0 && s.MinHeight > s.MaxHeight {
		return invalid("style.min_height", "%d exceeds max_height %d", s.MinHeight, s.MaxHeight)
	}
	for field, hex := range map[string]string{
		"style.colors.background":        s.Colors.Background,
		"style.colors.title":             s.Colors.Title,
		"style.colors.text":              s.Colors.Text,
		"style.colors.icon":              s.Colors.Icon,
		"style.colors.icon_separator":    s.Colors.IconSeparator,
		"style.colors.close_button_icon": s.Colors.CloseButtonIcon,
		"style.colors.duration_bar":      s.Colors.DurationBar,
	} {
		if hex == "" {
			continue
		}
		if _, err := model.ParseColor(hex); err != nil {
			return &ValidationError{Field: field, Reason: "invalid colour", Err: err}
		}
	}

	if c.Sounds.Volume < 0 || c.Sounds.Volume > 100 {
		return invalid("sounds.volume", "must be between 0 and 100, got %d", c.Sounds.Volume)
	}
	switch c.Display.ColorScheme {
	case "", ColorSchemeSystem, ColorSchemeLight, ColorSchemeDark:
	default:
		return invalid("display.color_scheme", "must be system, light or dark, got %q", c.Display.ColorScheme)
	}
	if c.TUI.Width < 0 || c.TUI.Height < 0 {
		return invalid("tui", "width and height must not be negative")
	}

	return nil
}

func parseAlignment(s string) (model.ButtonAlignment, error) {
	var a model.ButtonAlignment
	if err := a.UnmarshalText([]byte(s)); err != nil {
		return 0, err
	}
	return a, nil
}
