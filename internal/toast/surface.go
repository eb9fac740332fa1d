package toast

import (
	"image"

	"github.com/jmylchreest/toaststack/internal/model"
	"github.com/jmylchreest/toaststack/internal/sizer"
)

// Frame is everything a surface needs to paint a toast.
type Frame struct {
	ID        string
	Style     Style
	Layout    sizer.Layout
	Icon      image.Image // recoloured and scaled, nil when hidden
	CloseIcon image.Image // recoloured and scaled, nil when hidden
}

// Surface is the on-screen representation of a toast.
// All methods are called on the scheduler's goroutine.
type Surface interface {
	// Render sizes the surface to frame.Layout.Total and paints it.
	Render(frame Frame)
	Move(p model.Point)
	SetOpacity(opacity float64)
	// SetDurationBar sets the width of the remaining-time chunk.
	SetDurationBar(width int)
	SetStayOnTop(on bool)
	Show()
	// Close hides the surface for good and releases its resources.
	Close()
}

// SurfaceFactory creates the surface for a toast when it is first admitted.
type SurfaceFactory interface {
	NewSurface(t *Toast) Surface
}

// SurfaceFactoryFunc adapts a function to SurfaceFactory.
type SurfaceFactoryFunc func(t *Toast) Surface

// NewSurface implements SurfaceFactory.
func (f SurfaceFactoryFunc) NewSurface(t *Toast) Surface {
	return f(t)
}

// RecordingSurface is a headless Surface that remembers its state.
type RecordingSurface struct {
	Frame       Frame
	Position    model.Point
	Opacity     float64
	DurationBar int
	StayOnTop   bool
	Shown       bool
	Closed      bool
	Moves       int
	Renders     int
}

func (s *RecordingSurface) Render(frame Frame) {
	s.Frame = frame
	s.Renders++
}

func (s *RecordingSurface) Move(p model.Point) {
	s.Position = p
	s.Moves++
}

func (s *RecordingSurface) SetOpacity(opacity float64) { s.Opacity = opacity }
func (s *RecordingSurface) SetDurationBar(width int)   { s.DurationBar = width }
func (s *RecordingSurface) SetStayOnTop(on bool)       { s.StayOnTop = on }
func (s *RecordingSurface) Show()                      { s.Shown = true }

func (s *RecordingSurface) Close() {
	s.Shown = false
	s.Closed = true
}

// RecordingFactory creates RecordingSurfaces and keeps them by toast ID.
type RecordingFactory struct {
	surfaces map[string]*RecordingSurface
}

// NewRecordingFactory creates an empty RecordingFactory.
func NewRecordingFactory() *RecordingFactory {
	return &RecordingFactory{surfaces: make(map[string]*RecordingSurface)}
}

// NewSurface implements SurfaceFactory.
func (f *RecordingFactory) NewSurface(t *Toast) Surface {
	s := &RecordingSurface{}
	f.surfaces[t.ID()] = s
	return s
}

// Surface returns the surface created for t, or nil.
func (f *RecordingFactory) Surface(t *Toast) *RecordingSurface {
	return f.surfaces[t.ID()]
}
