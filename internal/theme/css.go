package theme

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jmylchreest/toaststack/internal/model"
	"github.com/jmylchreest/toaststack/internal/toast"
)

// CSS classes set on the widgets of a toast popup. Themes target these.
const (
	ClassToast          = "toast"
	ClassTitle          = "toast-title"
	ClassText           = "toast-text"
	ClassIconSeparator  = "toast-icon-separator"
	ClassClose          = "toast-close"
	ClassDurationBar    = "toast-duration-bar"
	ClassDurationTrack  = "toast-duration-bar-track"
	ClassStayOnTop      = "toast-stay-on-top"
	classInstancePrefix = "toast-"
)

// ClassName returns the per-instance class for the toast with the given id.
// ULIDs are upper case alphanumerics and therefore valid CSS identifiers.
func ClassName(id string) string {
	return classInstancePrefix + strings.ToLower(id)
}

// StyleCSS renders the colours, fonts and corner radius of s as rules
// scoped to class. The result is meant to be loaded after the theme so that
// per-toast colours win over the stylesheet.
func StyleCSS(class string, s toast.Style) string {
	var b strings.Builder
	sel := "." + class

	rule(&b, sel, map[string]string{
		"background-color": s.BackgroundColor.Hex(),
		"border-radius":    px(s.BorderRadius),
	})
	rule(&b, sel+" ."+ClassTitle, fontDecl(s.TitleFont, s.TitleColor))
	rule(&b, sel+" ."+ClassText, fontDecl(s.TextFont, s.TextColor))
	rule(&b, sel+" ."+ClassIconSeparator, map[string]string{
		"background-color": s.IconSeparatorColor.Hex(),
		"min-width":        px(s.IconSeparatorWidth),
	})
	rule(&b, sel+" ."+ClassClose, map[string]string{
		"color": s.CloseButtonIconColor.Hex(),
	})
	rule(&b, sel+" ."+ClassDurationBar, map[string]string{
		"background-color": s.DurationBarColor.Hex(),
	})
	return b.String()
}

// Stylesheet concatenates the per-toast rules of every entry in classes,
// ordered by class name so that the output is stable.
func Stylesheet(styles map[string]toast.Style) string {
	classes := make([]string, 0, len(styles))
	for c := range styles {
		classes = append(classes, c)
	}
	slices.Sort(classes)

	var b strings.Builder
	for _, c := range classes {
		b.WriteString(StyleCSS(c, styles[c]))
	}
	return b.String()
}

func fontDecl(f model.Font, c model.Color) map[string]string {
	decl := map[string]string{
		"color":       c.Hex(),
		"font-family": quoteFamily(f.Family),
		"font-size":   fmt.Sprintf("%gpt", f.Size),
		"font-weight": "normal",
	}
	if f.Bold {
		decl["font-weight"] = "bold"
	}
	if f.Family == "" {
		delete(decl, "font-family")
	}
	if f.Size <= 0 {
		delete(decl, "font-size")
	}
	return decl
}

func quoteFamily(family string) string {
	return `"` + strings.ReplaceAll(family, `"`, ``) + `"`
}

func px(n int) string {
	return fmt.Sprintf("%dpx", max(n, 0))
}

// rule writes one CSS rule with its declarations sorted by property.
func rule(b *strings.Builder, selector string, decl map[string]string) {
	props := make([]string, 0, len(decl))
	for p := range decl {
		props = append(props, p)
	}
	slices.Sort(props)

	b.WriteString(selector)
	b.WriteString(" {\n")
	for _, p := range props {
		fmt.Fprintf(b, "  %s: %s;\n", p, decl[p])
	}
	b.WriteString("}\n")
}
