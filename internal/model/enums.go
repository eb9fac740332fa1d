package model

import "fmt"

// Position is the screen anchor a toast stack grows from.
type Position int

const (
	PositionBottomRight Position = iota + 1
	PositionBottomLeft
	PositionBottomMiddle
	PositionTopRight
	PositionTopLeft
	PositionTopMiddle
	PositionCenter
)

var positionNames = map[Position]string{
	PositionBottomRight:  "bottom-right",
	PositionBottomLeft:   "bottom-left",
	PositionBottomMiddle: "bottom-middle",
	PositionTopRight:     "top-right",
	PositionTopLeft:      "top-left",
	PositionTopMiddle:    "top-middle",
	PositionCenter:       "center",
}

// ValidPositions returns all valid positions in declaration order.
func ValidPositions() []Position {
	return []Position{
		PositionBottomRight,
		PositionBottomLeft,
		PositionBottomMiddle,
		PositionTopRight,
		PositionTopLeft,
		PositionTopMiddle,
		PositionCenter,
	}
}

// Valid reports whether p is one of the defined positions.
func (p Position) Valid() bool {
	_, ok := positionNames[p]
	return ok
}

// IsBottom reports whether the stack grows upwards from the bottom edge.
func (p Position) IsBottom() bool {
	return p == PositionBottomRight || p == PositionBottomLeft || p == PositionBottomMiddle
}

func (p Position) String() string {
	if name, ok := positionNames[p]; ok {
		return name
	}
	return fmt.Sprintf("position(%d)", int(p))
}

// ParsePosition parses a position name such as "top-right".
// "top-center" and "bottom-center" are accepted as aliases.
func ParsePosition(s string) (Position, error) {
	switch s {
	case "top-center":
		return PositionTopMiddle, nil
	case "bottom-center":
		return PositionBottomMiddle, nil
	}
	for p, name := range positionNames {
		if name == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("invalid position %q, must be one of: %v", s, ValidPositions())
}

// MarshalText implements encoding.TextMarshaler.
func (p Position) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Position) UnmarshalText(text []byte) error {
	parsed, err := ParsePosition(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ButtonAlignment is the vertical placement of the close button.
type ButtonAlignment int

const (
	ButtonAlignmentTop ButtonAlignment = iota + 1
	ButtonAlignmentMiddle
	ButtonAlignmentBottom
)

// Valid reports whether a is one of the defined alignments.
func (a ButtonAlignment) Valid() bool {
	return a >= ButtonAlignmentTop && a <= ButtonAlignmentBottom
}

func (a ButtonAlignment) String() string {
	switch a {
	case ButtonAlignmentTop:
		return "top"
	case ButtonAlignmentMiddle:
		return "middle"
	case ButtonAlignmentBottom:
		return "bottom"
	default:
		return fmt.Sprintf("alignment(%d)", int(a))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (a ButtonAlignment) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *ButtonAlignment) UnmarshalText(text []byte) error {
	switch string(text) {
	case "top":
		*a = ButtonAlignmentTop
	case "middle":
		*a = ButtonAlignmentMiddle
	case "bottom":
		*a = ButtonAlignmentBottom
	default:
		return fmt.Errorf("invalid close button alignment %q", string(text))
	}
	return nil
}

// IconKind identifies a bundled icon.
type IconKind int

const (
	IconSuccess IconKind = iota + 1
	IconWarning
	IconError
	IconInformation
	IconClose
)

// FileName returns the bundled asset name for the icon kind.
func (k IconKind) FileName() string {
	return k.String() + ".png"
}

func (k IconKind) String() string {
	switch k {
	case IconSuccess:
		return "success"
	case IconWarning:
		return "warning"
	case IconError:
		return "error"
	case IconInformation:
		return "information"
	case IconClose:
		return "close"
	default:
		return fmt.Sprintf("icon(%d)", int(k))
	}
}

// Preset is a named bundle of icon and colour assignments.
type Preset int

const (
	PresetSuccess Preset = iota + 1
	PresetWarning
	PresetError
	PresetInformation
	PresetSuccessDark
	PresetWarningDark
	PresetErrorDark
	PresetInformationDark
)

var presetNames = map[Preset]string{
	PresetSuccess:         "success",
	PresetWarning:         "warning",
	PresetError:           "error",
	PresetInformation:     "information",
	PresetSuccessDark:     "success-dark",
	PresetWarningDark:     "warning-dark",
	PresetErrorDark:       "error-dark",
	PresetInformationDark: "information-dark",
}

// Presets returns all presets in declaration order.
func Presets() []Preset {
	return []Preset{
		PresetSuccess, PresetWarning, PresetError, PresetInformation,
		PresetSuccessDark, PresetWarningDark, PresetErrorDark, PresetInformationDark,
	}
}

// Valid reports whether p is one of the defined presets.
func (p Preset) Valid() bool {
	return p >= PresetSuccess && p <= PresetInformationDark
}

// Dark reports whether the preset is a dark variant.
func (p Preset) Dark() bool {
	return p >= PresetSuccessDark && p <= PresetInformationDark
}

// Light returns the light variant of the preset.
func (p Preset) Light() Preset {
	if p.Dark() {
		return p - 4
	}
	return p
}

// WithDark returns the dark or light variant of the preset.
func (p Preset) WithDark(dark bool) Preset {
	light := p.Light()
	if dark {
		return light + 4
	}
	return light
}

// Icon returns the bundled icon the preset uses.
func (p Preset) Icon() IconKind {
	switch p.Light() {
	case PresetSuccess:
		return IconSuccess
	case PresetWarning:
		return IconWarning
	case PresetError:
		return IconError
	default:
		return IconInformation
	}
}

func (p Preset) String() string {
	if name, ok := presetNames[p]; ok {
		return name
	}
	return fmt.Sprintf("preset(%d)", int(p))
}

// ParsePreset parses a preset name such as "warning-dark".
func ParsePreset(s string) (Preset, error) {
	for p, name := range presetNames {
		if name == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("invalid preset %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (p Preset) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Preset) UnmarshalText(text []byte) error {
	parsed, err := ParsePreset(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Phase is the lifecycle phase of a toast.
type Phase int

const (
	PhaseCreated Phase = iota
	PhaseQueued
	PhaseShowing
	PhaseVisible
	PhaseFadingOut
	PhaseClosed
)

func (p Phase) String() string {
	switch p {
	case PhaseCreated:
		return "created"
	case PhaseQueued:
		return "queued"
	case PhaseShowing:
		return "showing"
	case PhaseVisible:
		return "visible"
	case PhaseFadingOut:
		return "fading-out"
	case PhaseClosed:
		return "closed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// OnScreen reports whether a toast in this phase occupies a stack slot.
func (p Phase) OnScreen() bool {
	return p == PhaseShowing || p == PhaseVisible || p == PhaseFadingOut
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}
