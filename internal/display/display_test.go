package display

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/toaststack/internal/config"
	"github.com/jmylchreest/toaststack/internal/model"
)

func TestDisplayError(t *testing.T) {
	cause := errors.New("wayland socket missing")

	tests := []struct {
		name string
		err  *DisplayError
		want string
	}{
		{"message only", &DisplayError{Message: "no display available"}, "no display available"},
		{"with cause", &DisplayError{Message: "texture", Cause: cause}, "texture: wayland socket missing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}

	var err error = &DisplayError{Message: "texture", Cause: cause}
	assert.ErrorIs(t, err, cause)
}

func TestPresetFor_ExplicitScheme(t *testing.T) {
	tests := []struct {
		name   string
		preset model.Preset
		scheme string
		want   model.Preset
	}{
		{"dark scheme", model.PresetSuccess, config.ColorSchemeDark, model.PresetSuccessDark},
		{"light scheme", model.PresetErrorDark, config.ColorSchemeLight, model.PresetError},
		{"invalid preset untouched", model.Preset(0), config.ColorSchemeDark, model.Preset(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PresetFor(tt.preset, tt.scheme))
		})
	}
}
