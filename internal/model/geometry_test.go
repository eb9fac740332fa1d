package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRect_Empty(t *testing.T) {
	assert.True(t, Rect{}.Empty())
	assert.True(t, Rect{Width: 10}.Empty())
	assert.True(t, Rect{Width: -1, Height: 5}.Empty())
	assert.False(t, Rect{Width: 1, Height: 1}.Empty())
}

func TestRect_Intersects(t *testing.T) {
	base := Rect{X: 0, Y: 0, Width: 10, Height: 10}

	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{name: "overlap", other: Rect{X: 5, Y: 5, Width: 10, Height: 10}, want: true},
		{name: "inside", other: Rect{X: 2, Y: 2, Width: 2, Height: 2}, want: true},
		{name: "touching right edge", other: Rect{X: 10, Y: 0, Width: 5, Height: 5}, want: false},
		{name: "touching bottom edge", other: Rect{X: 0, Y: 10, Width: 5, Height: 5}, want: false},
		{name: "apart", other: Rect{X: 20, Y: 20, Width: 5, Height: 5}, want: false},
		{name: "empty", other: Rect{X: 2, Y: 2}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Intersects(tt.other))
			assert.Equal(t, tt.want, tt.other.Intersects(base))
		})
	}
}

func TestRect_Contains(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 5, Height: 5}
	assert.True(t, r.Contains(Point{X: 10, Y: 20}))
	assert.True(t, r.Contains(Point{X: 14, Y: 24}))
	assert.False(t, r.Contains(Point{X: 15, Y: 20}))
	assert.False(t, r.Contains(Point{X: 10, Y: 25}))
}

func TestRect_Accessors(t *testing.T) {
	r := NewRect(Point{X: 3, Y: -4}, Size{Width: 30, Height: 40})
	assert.Equal(t, Point{X: 3, Y: -4}, r.Origin())
	assert.Equal(t, Size{Width: 30, Height: 40}, r.Size())
	assert.Equal(t, "30x40+3-4", r.String())
}

func TestPoint_Add(t *testing.T) {
	assert.Equal(t, Point{X: 4, Y: 1}, Point{X: 1, Y: 2}.Add(Point{X: 3, Y: -1}))
	assert.Equal(t, "(4,1)", Point{X: 4, Y: 1}.String())
}

func TestMargins(t *testing.T) {
	m := NewMargins(10, 5, 8, -3)
	assert.Equal(t, 18, m.Horizontal())
	assert.Equal(t, 2, m.Vertical())
}

func TestFont_String(t *testing.T) {
	assert.Equal(t, "Arial Bold 9pt", DefaultTitleFont().String())
	assert.Equal(t, "Arial 9pt", DefaultTextFont().String())
}
