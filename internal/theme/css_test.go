package theme

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/toaststack/internal/model"
	"github.com/jmylchreest/toaststack/internal/toast"
)

func TestClassName(t *testing.T) {
	assert.Equal(t, "toast-01j9zq4k7m", ClassName("01J9ZQ4K7M"))
}

func TestStyleCSS(t *testing.T) {
	s := toast.DefaultStyle()
	s.Apply(model.PresetErrorDark)
	s.BorderRadius = 8
	s.TitleFont = model.Font{Family: "Noto Sans", Size: 10.5, Bold: true}

	css := StyleCSS("toast-x", s)

	tests := []struct {
		name string
		want string
	}{
		{"background", ".toast-x {\n  background-color: #292929;\n  border-radius: 8px;\n}\n"},
		{"title font", `font-family: "Noto Sans";`},
		{"title size", "font-size: 10.5pt;"},
		{"title weight", "font-weight: bold;"},
		{"title colour", ".toast-x .toast-title {\n  color: #FFFFFF;"},
		{"text colour", ".toast-x .toast-text {\n  color: #D0D0D0;"},
		{"separator", ".toast-x .toast-icon-separator {\n  background-color: #585858;\n  min-width: 2px;\n}"},
		{"close", ".toast-x .toast-close {\n  color: #C9C9C9;\n}"},
		{"bar", ".toast-x .toast-duration-bar {\n  background-color: #BA2626;\n}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, css, tt.want)
		})
	}
}

func TestStyleCSS_OmitsUnsetFont(t *testing.T) {
	s := toast.DefaultStyle()
	s.TextFont = model.Font{}
	s.BorderRadius = -3

	css := StyleCSS("toast-y", s)
	text := css[strings.Index(css, ".toast-y .toast-text"):]
	text = text[:strings.Index(text, "}")]

	assert.NotContains(t, text, "font-family")
	assert.NotContains(t, text, "font-size")
	assert.Contains(t, text, "font-weight: normal;")
	assert.Contains(t, css, "border-radius: 0px;")
}

func TestStylesheet_Ordered(t *testing.T) {
	css := Stylesheet(map[string]toast.Style{
		"toast-b": toast.DefaultStyle(),
		"toast-a": toast.DefaultStyle(),
	})

	a := strings.Index(css, ".toast-a {")
	b := strings.Index(css, ".toast-b {")
	assert.GreaterOrEqual(t, a, 0)
	assert.Greater(t, b, a)
	assert.Empty(t, Stylesheet(nil))
}
