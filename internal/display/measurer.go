package display

import (
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/diamondburned/gotk4/pkg/pango"

	"github.com/jmylchreest/toaststack/internal/model"
)

// PangoMeasurer measures text with the same Pango machinery GTK labels use,
// so computed layouts match what the popup draws.
type PangoMeasurer struct {
	widget *gtk.Label
}

// NewPangoMeasurer creates a measurer. GTK must be initialised.
func NewPangoMeasurer() *PangoMeasurer {
	return &PangoMeasurer{widget: gtk.NewLabel("")}
}

// Measure implements sizer.TextMeasurer.
func (m *PangoMeasurer) Measure(text string, f model.Font) model.Size {
	if text == "" {
		return model.Size{}
	}
	layout := m.layout(text, f)
	w, h := layout.PixelSize()
	return model.Size{Width: w, Height: h}
}

// MeasureWrapped implements sizer.TextMeasurer.
func (m *PangoMeasurer) MeasureWrapped(text string, f model.Font, width int) model.Size {
	if text == "" {
		return model.Size{}
	}
	layout := m.layout(text, f)
	layout.SetWrap(pango.WrapWord)
	// One pixel puts every word on a line of its own.
	layout.SetWidth(max(width, 1) * pango.SCALE)
	w, h := layout.PixelSize()
	return model.Size{Width: w, Height: h}
}

func (m *PangoMeasurer) layout(text string, f model.Font) *pango.Layout {
	layout := m.widget.CreatePangoLayout(text)
	layout.SetFontDescription(fontDescription(f))
	return layout
}

func fontDescription(f model.Font) *pango.FontDescription {
	desc := pango.NewFontDescription()
	if f.Family != "" {
		desc.SetFamily(f.Family)
	}
	if f.Size > 0 {
		desc.SetSize(int(f.Size * pango.SCALE))
	}
	if f.Bold {
		desc.SetWeight(pango.WeightBold)
	} else {
		desc.SetWeight(pango.WeightNormal)
	}
	return desc
}
