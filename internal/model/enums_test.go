package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePosition(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Position
		wantErr bool
	}{
		{name: "bottom right", input: "bottom-right", want: PositionBottomRight},
		{name: "top middle", input: "top-middle", want: PositionTopMiddle},
		{name: "top center alias", input: "top-center", want: PositionTopMiddle},
		{name: "bottom center alias", input: "bottom-center", want: PositionBottomMiddle},
		{name: "center", input: "center", want: PositionCenter},
		{name: "unknown", input: "middle-left", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePosition(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPosition_RoundTripNames(t *testing.T) {
	for _, p := range ValidPositions() {
		t.Run(p.String(), func(t *testing.T) {
			assert.True(t, p.Valid())
			got, err := ParsePosition(p.String())
			require.NoError(t, err)
			assert.Equal(t, p, got)
		})
	}
	assert.False(t, Position(0).Valid())
	assert.Equal(t, "position(42)", Position(42).String())
}

func TestPosition_IsBottom(t *testing.T) {
	bottom := map[Position]bool{
		PositionBottomRight:  true,
		PositionBottomLeft:   true,
		PositionBottomMiddle: true,
	}
	for _, p := range ValidPositions() {
		assert.Equal(t, bottom[p], p.IsBottom(), p.String())
	}
}

func TestButtonAlignment_Text(t *testing.T) {
	var a ButtonAlignment
	require.NoError(t, a.UnmarshalText([]byte("middle")))
	assert.Equal(t, ButtonAlignmentMiddle, a)

	text, err := ButtonAlignmentBottom.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "bottom", string(text))

	assert.Error(t, a.UnmarshalText([]byte("left")))
	assert.False(t, ButtonAlignment(0).Valid())
}

func TestPreset_Variants(t *testing.T) {
	tests := []struct {
		preset Preset
		dark   bool
		light  Preset
		icon   IconKind
	}{
		{PresetSuccess, false, PresetSuccess, IconSuccess},
		{PresetWarning, false, PresetWarning, IconWarning},
		{PresetError, false, PresetError, IconError},
		{PresetInformation, false, PresetInformation, IconInformation},
		{PresetSuccessDark, true, PresetSuccess, IconSuccess},
		{PresetWarningDark, true, PresetWarning, IconWarning},
		{PresetErrorDark, true, PresetError, IconError},
		{PresetInformationDark, true, PresetInformation, IconInformation},
	}

	for _, tt := range tests {
		t.Run(tt.preset.String(), func(t *testing.T) {
			assert.True(t, tt.preset.Valid())
			assert.Equal(t, tt.dark, tt.preset.Dark())
			assert.Equal(t, tt.light, tt.preset.Light())
			assert.Equal(t, tt.icon, tt.preset.Icon())
			assert.Equal(t, tt.preset, tt.preset.WithDark(tt.dark))
			assert.Equal(t, !tt.dark, tt.preset.WithDark(!tt.dark).Dark())
		})
	}
	assert.Len(t, Presets(), len(tests))
}

func TestParsePreset(t *testing.T) {
	p, err := ParsePreset("warning-dark")
	require.NoError(t, err)
	assert.Equal(t, PresetWarningDark, p)

	_, err = ParsePreset("fatal")
	assert.Error(t, err)

	var u Preset
	require.NoError(t, u.UnmarshalText([]byte("information")))
	assert.Equal(t, PresetInformation, u)
}

func TestIconKind_FileName(t *testing.T) {
	assert.Equal(t, "success.png", IconSuccess.FileName())
	assert.Equal(t, "close.png", IconClose.FileName())
	assert.Equal(t, "icon(0)", IconKind(0).String())
}

func TestPhase_OnScreen(t *testing.T) {
	tests := []struct {
		phase    Phase
		name     string
		onScreen bool
	}{
		{PhaseCreated, "created", false},
		{PhaseQueued, "queued", false},
		{PhaseShowing, "showing", true},
		{PhaseVisible, "visible", true},
		{PhaseFadingOut, "fading-out", true},
		{PhaseClosed, "closed", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.phase.String())
			assert.Equal(t, tt.onScreen, tt.phase.OnScreen())
		})
	}
}
