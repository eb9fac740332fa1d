package screen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/toaststack/internal/model"
)

func dualHead() *Static {
	return NewStatic(
		Region{Name: "left", Bounds: model.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}},
		Region{Name: "right", Bounds: model.Rect{X: 1920, Y: 0, Width: 2560, Height: 1440}, Primary: true},
	)
}

func TestResolve(t *testing.T) {
	fixed := Region{Name: "fixed", Bounds: model.Rect{X: 5000, Width: 800, Height: 600}}

	tests := []struct {
		name string
		opts Options
		host Window
		want string
	}{
		{
			name: "fixed region wins",
			opts: Options{Fixed: &fixed, AlwaysOnMain: true},
			host: StaticWindow{X: 10, Y: 10, Width: 100, Height: 100},
			want: "fixed",
		},
		{
			name: "always on main",
			opts: Options{AlwaysOnMain: true},
			host: StaticWindow{X: 10, Y: 10, Width: 100, Height: 100},
			want: "right",
		},
		{
			name: "no host window",
			want: "right",
		},
		{
			name: "host on secondary",
			host: StaticWindow{X: 10, Y: 10, Width: 100, Height: 100},
			want: "left",
		},
		{
			name: "host spanning both",
			host: StaticWindow{X: 1800, Y: 10, Width: 400, Height: 100},
			want: "right",
		},
		{
			name: "host touching edge only",
			host: StaticWindow{X: 1820, Y: 10, Width: 100, Height: 100},
			want: "left",
		},
		{
			name: "host off every screen",
			host: StaticWindow{X: -5000, Y: -5000, Width: 100, Height: 100},
			want: "right",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.opts, tt.host, dualHead())
			assert.Equal(t, tt.want, got.Name)
		})
	}
}

func TestStatic_PrimaryFallback(t *testing.T) {
	s := NewStatic(
		Region{Name: "a", Bounds: model.Rect{Width: 10, Height: 10}},
		Region{Name: "b", Bounds: model.Rect{X: 10, Width: 10, Height: 10}},
	)
	assert.Equal(t, "a", s.Primary().Name)
	assert.Len(t, s.Regions(), 2)

	assert.Equal(t, Region{}, NewStatic().Primary())
}

func TestSingle(t *testing.T) {
	s := Single(1280, 720)
	p := s.Primary()
	assert.True(t, p.Primary)
	assert.Equal(t, model.Rect{Width: 1280, Height: 720}, p.Bounds)
}
