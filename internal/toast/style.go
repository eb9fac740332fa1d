package toast

import (
	"github.com/jmylchreest/toaststack/internal/model"
	"github.com/jmylchreest/toaststack/internal/sizer"
)

// Accent and default colours.
var (
	SuccessAccentColor     = model.MustParseColor("#3E9141")
	WarningAccentColor     = model.MustParseColor("#E8B849")
	ErrorAccentColor       = model.MustParseColor("#BA2626")
	InformationAccentColor = model.MustParseColor("#007FFF")
	DefaultAccentColor     = model.MustParseColor("#5C5C5C")
)

// Palette is the set of non-accent colours a preset assigns.
type Palette struct {
	Background      model.Color
	Title           model.Color
	Text            model.Color
	IconSeparator   model.Color
	CloseButtonIcon model.Color
}

// LightPalette is the default palette.
var LightPalette = Palette{
	Background:      model.MustParseColor("#E7F4F9"),
	Title:           model.MustParseColor("#000000"),
	Text:            model.MustParseColor("#5C5C5C"),
	IconSeparator:   model.MustParseColor("#D9D9D9"),
	CloseButtonIcon: model.MustParseColor("#000000"),
}

// DarkPalette is the palette used by the dark presets.
var DarkPalette = Palette{
	Background:      model.MustParseColor("#292929"),
	Title:           model.MustParseColor("#FFFFFF"),
	Text:            model.MustParseColor("#D0D0D0"),
	IconSeparator:   model.MustParseColor("#585858"),
	CloseButtonIcon: model.MustParseColor("#C9C9C9"),
}

// Style is the per-toast configuration. It is frozen once the toast is shown.
type Style struct {
	Preset          model.Preset `json:"preset,omitempty" yaml:"preset,omitempty"` // last applied preset, 0 if none
	Duration        int          `json:"duration" yaml:"duration"`                 // ms, 0 never auto-dismisses
	ShowDurationBar bool         `json:"show_duration_bar" yaml:"show_duration_bar"`

	Title string `json:"title" yaml:"title"`
	Text  string `json:"text" yaml:"text"`

	Icon               model.Icon `json:"-" yaml:"-"`
	ShowIcon           bool       `json:"show_icon" yaml:"show_icon"`
	IconSize           model.Size `json:"icon_size" yaml:"icon_size"`
	ShowIconSeparator  bool       `json:"show_icon_separator" yaml:"show_icon_separator"`
	IconSeparatorWidth int        `json:"icon_separator_width" yaml:"icon_separator_width"`

	CloseButtonIcon      model.Icon            `json:"-" yaml:"-"`
	ShowCloseButton      bool                  `json:"show_close_button" yaml:"show_close_button"`
	CloseButtonIconSize  model.Size            `json:"close_button_icon_size" yaml:"close_button_icon_size"`
	CloseButtonSize      model.Size            `json:"close_button_size" yaml:"close_button_size"`
	CloseButtonAlignment model.ButtonAlignment `json:"close_button_alignment" yaml:"close_button_alignment"`

	FadeInDuration       int  `json:"fade_in_duration" yaml:"fade_in_duration"`
	FadeOutDuration      int  `json:"fade_out_duration" yaml:"fade_out_duration"`
	ResetDurationOnHover bool `json:"reset_duration_on_hover" yaml:"reset_duration_on_hover"`
	StayOnTop            bool `json:"stay_on_top" yaml:"stay_on_top"`
	BorderRadius         int  `json:"border_radius" yaml:"border_radius"`

	BackgroundColor      model.Color `json:"background_color" yaml:"background_color"`
	TitleColor           model.Color `json:"title_color" yaml:"title_color"`
	TextColor            model.Color `json:"text_color" yaml:"text_color"`
	IconColor            model.Color `json:"icon_color" yaml:"icon_color"`
	IconSeparatorColor   model.Color `json:"icon_separator_color" yaml:"icon_separator_color"`
	CloseButtonIconColor model.Color `json:"close_button_icon_color" yaml:"close_button_icon_color"`
	DurationBarColor     model.Color `json:"duration_bar_color" yaml:"duration_bar_color"`

	TitleFont model.Font `json:"title_font" yaml:"title_font"`
	TextFont  model.Font `json:"text_font" yaml:"text_font"`

	Margins            model.Margins `json:"margins" yaml:"margins"`
	IconMargins        model.Margins `json:"icon_margins" yaml:"icon_margins"`
	IconSectionMargins model.Margins `json:"icon_section_margins" yaml:"icon_section_margins"`
	TextSectionMargins model.Margins `json:"text_section_margins" yaml:"text_section_margins"`
	CloseButtonMargins model.Margins `json:"close_button_margins" yaml:"close_button_margins"`
	TextSectionSpacing int           `json:"text_section_spacing" yaml:"text_section_spacing"`

	MinimumSize model.Size `json:"minimum_size" yaml:"minimum_size"`
	MaximumSize model.Size `json:"maximum_size" yaml:"maximum_size"`
}

// DefaultStyle returns the style a new toast starts with.
func DefaultStyle() Style {
	return Style{
		Duration:        5000,
		ShowDurationBar: true,

		Icon:               model.BuiltinIcon(model.IconInformation),
		IconSize:           model.Size{Width: 18, Height: 18},
		ShowIconSeparator:  true,
		IconSeparatorWidth: 2,

		CloseButtonIcon:      model.BuiltinIcon(model.IconClose),
		ShowCloseButton:      true,
		CloseButtonIconSize:  model.Size{Width: 10, Height: 10},
		CloseButtonSize:      model.Size{Width: 24, Height: 24},
		CloseButtonAlignment: model.ButtonAlignmentTop,

		FadeInDuration:       250,
		FadeOutDuration:      250,
		ResetDurationOnHover: true,
		StayOnTop:            true,

		BackgroundColor:      LightPalette.Background,
		TitleColor:           LightPalette.Title,
		TextColor:            LightPalette.Text,
		IconColor:            DefaultAccentColor,
		IconSeparatorColor:   LightPalette.IconSeparator,
		CloseButtonIconColor: LightPalette.CloseButtonIcon,
		DurationBarColor:     DefaultAccentColor,

		TitleFont: model.DefaultTitleFont(),
		TextFont:  model.DefaultTextFont(),

		Margins:            model.NewMargins(20, 18, 10, 18),
		IconMargins:        model.NewMargins(0, 0, 15, 0),
		IconSectionMargins: model.NewMargins(0, 0, 15, 0),
		TextSectionMargins: model.NewMargins(0, 0, 15, 0),
		CloseButtonMargins: model.NewMargins(0, -8, 0, -8),
		TextSectionSpacing: 8,

		MaximumSize: model.Size{Width: sizer.MaxDimension, Height: sizer.MaxDimension},
	}
}

// applyPalette assigns the non-accent colours of p.
func (s *Style) applyPalette(p Palette) {
	s.BackgroundColor = p.Background
	s.CloseButtonIconColor = p.CloseButtonIcon
	s.IconSeparatorColor = p.IconSeparator
	s.TitleColor = p.Title
	s.TextColor = p.Text
}

// effectiveSeparatorWidth is the separator width the layout reserves.
func (s Style) effectiveSeparatorWidth() int {
	if !s.ShowIconSeparator {
		return 0
	}
	return s.IconSeparatorWidth
}

// LayoutInput converts the style into sizer input.
func (s Style) LayoutInput() sizer.Input {
	return sizer.Input{
		Title:                s.Title,
		Text:                 s.Text,
		TitleFont:            s.TitleFont,
		TextFont:             s.TextFont,
		ShowIcon:             s.ShowIcon,
		IconSize:             s.IconSize,
		IconSeparatorWidth:   s.effectiveSeparatorWidth(),
		ShowCloseButton:      s.ShowCloseButton,
		CloseButtonSize:      s.CloseButtonSize,
		CloseButtonAlignment: s.CloseButtonAlignment,
		ShowDurationBar:      s.ShowDurationBar,
		Margins:              s.Margins,
		IconMargins:          s.IconMargins,
		IconSectionMargins:   s.IconSectionMargins,
		TextSectionMargins:   s.TextSectionMargins,
		CloseButtonMargins:   s.CloseButtonMargins,
		TextSectionSpacing:   s.TextSectionSpacing,
		MinSize:              s.MinimumSize,
		MaxSize:              s.MaximumSize,
	}
}
