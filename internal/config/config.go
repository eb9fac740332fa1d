// Package config handles configuration file loading, validation and hot
// reloading.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	appName  = "toaststack"
	fileName = "toaststack.toml"
)

// Config is the toaststack configuration.
// Loaded from $XDG_CONFIG_HOME/toaststack/toaststack.toml
type Config struct {
	Stack   StackConfig   `toml:"stack" yaml:"stack"`
	Style   StyleConfig   `toml:"style" yaml:"style"`
	Sounds  SoundsConfig  `toml:"sounds" yaml:"sounds"`
	Display DisplayConfig `toml:"display" yaml:"display"`
	TUI     TUIConfig     `toml:"tui" yaml:"tui"`
}

// StackConfig contains the registry wide stacking settings.
type StackConfig struct {
	Position                string   `toml:"position" yaml:"position"`       // "bottom-right", "top-middle", "center", ...
	MaxVisible              int      `toml:"max_visible" yaml:"max_visible"` // Maximum simultaneous toasts
	Spacing                 int      `toml:"spacing" yaml:"spacing"`         // Gap between stacked toasts
	OffsetX                 int      `toml:"offset_x" yaml:"offset_x"`       // Pixels from screen edge
	OffsetY                 int      `toml:"offset_y" yaml:"offset_y"`       // Pixels from screen edge
	AlwaysOnMainScreen      bool     `toml:"always_on_main_screen" yaml:"always_on_main_screen"`
	Monitor                 string   `toml:"monitor" yaml:"monitor"`             // Monitor name, empty follows the host window
	TickInterval            Duration `toml:"tick_interval" yaml:"tick_interval"` // Duration bar update interval
	PredecessorCompensation bool     `toml:"predecessor_compensation" yaml:"predecessor_compensation"`
}

// StyleConfig is the default style of new toasts.
type StyleConfig struct {
	Preset               string   `toml:"preset" yaml:"preset"` // Empty for none, e.g. "success" or "error-dark"
	Duration             Duration `toml:"duration" yaml:"duration"`
	FadeIn               Duration `toml:"fade_in" yaml:"fade_in"`
	FadeOut              Duration `toml:"fade_out" yaml:"fade_out"`
	ShowDurationBar      bool     `toml:"show_duration_bar" yaml:"show_duration_bar"`
	ShowIcon             bool     `toml:"show_icon" yaml:"show_icon"`
	ShowIconSeparator    bool     `toml:"show_icon_separator" yaml:"show_icon_separator"`
	ShowCloseButton      bool     `toml:"show_close_button" yaml:"show_close_button"`
	ResetDurationOnHover bool     `toml:"reset_duration_on_hover" yaml:"reset_duration_on_hover"`
	StayOnTop            bool     `toml:"stay_on_top" yaml:"stay_on_top"`
	BorderRadius         int      `toml:"border_radius" yaml:"border_radius"`
	IconSize             int      `toml:"icon_size" yaml:"icon_size"`
	CloseButtonAlignment string   `toml:"close_button_alignment" yaml:"close_button_alignment"` // "top", "middle", "bottom"

	MinWidth  int `toml:"min_width" yaml:"min_width"`
	MinHeight int `toml:"min_height" yaml:"min_height"`
	MaxWidth  int `toml:"max_width" yaml:"max_width"`   // 0 = unbounded
	MaxHeight int `toml:"max_height" yaml:"max_height"` // 0 = unbounded

	Margins   MarginsConfig `toml:"margins" yaml:"margins"`
	Colors    ColorsConfig  `toml:"colors" yaml:"colors"`
	TitleFont FontConfig    `toml:"title_font" yaml:"title_font"`
	TextFont  FontConfig    `toml:"text_font" yaml:"text_font"`
}

// MarginsConfig contains the outer toast margins.
type MarginsConfig struct {
	Left   int `toml:"left" yaml:"left"`
	Top    int `toml:"top" yaml:"top"`
	Right  int `toml:"right" yaml:"right"`
	Bottom int `toml:"bottom" yaml:"bottom"`
}

// ColorsConfig overrides colours as "#RRGGBB". Empty values keep the
// default or preset colour.
type ColorsConfig struct {
	Background      string `toml:"background" yaml:"background"`
	Title           string `toml:"title" yaml:"title"`
	Text            string `toml:"text" yaml:"text"`
	Icon            string `toml:"icon" yaml:"icon"`
	IconSeparator   string `toml:"icon_separator" yaml:"icon_separator"`
	CloseButtonIcon string `toml:"close_button_icon" yaml:"close_button_icon"`
	DurationBar     string `toml:"duration_bar" yaml:"duration_bar"`
}

// FontConfig describes a font face.
type FontConfig struct {
	Family string  `toml:"family" yaml:"family"`
	Size   float64 `toml:"size" yaml:"size"` // Points
	Bold   bool    `toml:"bold" yaml:"bold"`
}

// SoundsConfig contains the chimes played when a toast is shown.
type SoundsConfig struct {
	Enabled     bool   `toml:"enabled" yaml:"enabled"`
	Volume      int    `toml:"volume" yaml:"volume"` // 0-100
	Default     string `toml:"default" yaml:"default"`
	Success     string `toml:"success" yaml:"success"`
	Warning     string `toml:"warning" yaml:"warning"`
	Error       string `toml:"error" yaml:"error"`
	Information string `toml:"information" yaml:"information"`
}

// DisplayConfig holds the GTK popup host settings.
type DisplayConfig struct {
	Theme       string `toml:"theme" yaml:"theme"`               // Theme name, "" = default
	HotReload   bool   `toml:"hot_reload" yaml:"hot_reload"`     // Reload the theme when its file changes
	ColorScheme string `toml:"color_scheme" yaml:"color_scheme"` // "system", "light" or "dark"
	Namespace   string `toml:"namespace" yaml:"namespace"`       // Layer-shell namespace
}

// Color schemes for presets picked without an explicit variant.
const (
	ColorSchemeSystem = "system"
	ColorSchemeLight  = "light"
	ColorSchemeDark   = "dark"
)

// TUIConfig holds terminal demo settings.
type TUIConfig struct {
	ShowHelp         bool   `toml:"show_help" yaml:"show_help"`
	Width            int    `toml:"width" yaml:"width"`                         // Virtual screen columns, 0 = terminal width
	Height           int    `toml:"height" yaml:"height"`                       // Virtual screen rows, 0 = terminal height
	ClipboardCommand string `toml:"clipboard_command" yaml:"clipboard_command"` // Empty = auto-detect
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Stack: StackConfig{
			Position:                "bottom-right",
			MaxVisible:              3,
			Spacing:                 10,
			OffsetX:                 20,
			OffsetY:                 45,
			TickInterval:            Millis(1),
			PredecessorCompensation: true,
		},
		Style: StyleConfig{
			Duration:             Millis(5000),
			FadeIn:               Millis(250),
			FadeOut:              Millis(250),
			ShowDurationBar:      true,
			ShowIconSeparator:    true,
			ShowCloseButton:      true,
			ResetDurationOnHover: true,
			StayOnTop:            true,
			IconSize:             18,
			CloseButtonAlignment: "top",
			Margins:              MarginsConfig{Left: 20, Top: 18, Right: 10, Bottom: 18},
			TitleFont:            FontConfig{Family: "Arial", Size: 9, Bold: true},
			TextFont:             FontConfig{Family: "Arial", Size: 9},
		},
		Sounds: SoundsConfig{
			Enabled: false,
			Volume:  80,
		},
		Display: DisplayConfig{
			Theme:       "default",
			HotReload:   true,
			ColorScheme: ColorSchemeSystem,
			Namespace:   "toaststack",
		},
		TUI: TUIConfig{
			ShowHelp: true,
		},
	}
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, appName, fileName)
}

// isYAML reports whether path should be decoded as YAML.
func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// Load loads the configuration from path, or from DefaultPath if path is
// empty. A missing file yields the defaults. Files ending in .yaml or .yml
// are decoded as YAML, everything else as TOML.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data, isYAML(path))
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			verr.Path = path
		}
		return nil, err
	}
	return cfg, nil
}

// Parse decodes a configuration document over the defaults and validates it.
func Parse(data []byte, asYAML bool) (*Config, error) {
	// Start with defaults, then overlay with file contents
	cfg := DefaultConfig()

	var err error
	if asYAML {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = toml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, &ValidationError{Reason: "failed to parse config", Err: err}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to path, or to DefaultPath if path is empty.
func (c *Config) Save(path string) error {
	if path == "" {
		path = DefaultPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := c.Marshal(isYAML(path))
	if err != nil {
		return err
	}

	// Write atomically via temp file
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return os.Rename(tmpPath, path)
}

// Marshal encodes the configuration as TOML or YAML.
func (c *Config) Marshal(asYAML bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if asYAML {
		data, err = yaml.Marshal(c)
	} else {
		data, err = toml.Marshal(c)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
