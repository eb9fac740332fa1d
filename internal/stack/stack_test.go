package stack

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/toaststack/internal/model"
)

var fullHD = model.Rect{Width: 1920, Height: 1080}

func defaults(pos model.Position) Settings {
	return Settings{Position: pos, Spacing: 10, OffsetX: 20, OffsetY: 45}
}

func TestOffset(t *testing.T) {
	heights := []int{80, 60, 100}

	assert.Equal(t, 0, Offset(0, heights, 10))
	assert.Equal(t, 90, Offset(1, heights, 10))
	assert.Equal(t, 160, Offset(2, heights, 10))
	assert.Equal(t, 270, Offset(3, heights, 10))
	assert.Equal(t, 270, Offset(9, heights, 10), "index past the end counts every toast")
	assert.Equal(t, 140, Offset(2, heights, 0))
}

func TestComputePosition_Anchors(t *testing.T) {
	size := model.Size{Width: 300, Height: 80}

	tests := []struct {
		pos  model.Position
		want model.Point
	}{
		{model.PositionBottomRight, model.Point{X: 1595, Y: 950}},
		{model.PositionBottomLeft, model.Point{X: 15, Y: 950}},
		{model.PositionBottomMiddle, model.Point{X: 805, Y: 950}},
		{model.PositionTopRight, model.Point{X: 1595, Y: 40}},
		{model.PositionTopLeft, model.Point{X: 15, Y: 40}},
		{model.PositionTopMiddle, model.Point{X: 805, Y: 40}},
		{model.PositionCenter, model.Point{X: 805, Y: 495}},
	}

	for _, tt := range tests {
		t.Run(tt.pos.String(), func(t *testing.T) {
			got := ComputePosition(0, []int{80}, fullHD, size, defaults(tt.pos))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputePosition_StackDirection(t *testing.T) {
	heights := []int{80, 60}
	second := model.Size{Width: 300, Height: 60}

	bottom := ComputePosition(1, heights, fullHD, second, defaults(model.PositionBottomRight))
	assert.Equal(t, 1080-60-45-90-5, bottom.Y)

	top := ComputePosition(1, heights, fullHD, second, defaults(model.PositionTopLeft))
	assert.Equal(t, 45+90-5, top.Y)

	center := ComputePosition(1, heights, fullHD, second, defaults(model.PositionCenter))
	assert.Equal(t, 540-30+90-5, center.Y)
}

func TestComputePosition_SpacingGap(t *testing.T) {
	const h = 80
	heights := []int{h, h}
	size := model.Size{Width: 300, Height: h}

	for _, spacing := range []int{0, 10, 37} {
		s := defaults(model.PositionBottomRight)
		s.Spacing = spacing

		first := ComputePosition(0, heights, fullHD, size, s)
		second := ComputePosition(1, heights, fullHD, size, s)
		assert.Equal(t, spacing, first.Y-(second.Y+h), "spacing %d", spacing)

		s.Position = model.PositionTopRight
		first = ComputePosition(0, heights, fullHD, size, s)
		second = ComputePosition(1, heights, fullHD, size, s)
		assert.Equal(t, spacing, second.Y-(first.Y+h), "spacing %d", spacing)
	}
}

func TestComputePosition_EdgeDistance(t *testing.T) {
	region := model.Rect{X: 1920, Y: 100, Width: 2560, Height: 1440}
	size := model.Size{Width: 250, Height: 70}
	s := Settings{Position: model.PositionBottomRight, OffsetX: 33, OffsetY: 12}

	p := ComputePosition(0, []int{70}, region, size, s)

	right := region.X + region.Width - (p.X + DropShadowSize + size.Width)
	bottom := region.Y + region.Height - (p.Y + DropShadowSize + size.Height)
	assert.Equal(t, 33, right)
	assert.Equal(t, 12, bottom)
}

func TestComputePosition_TruncatesTowardZero(t *testing.T) {
	size := model.Size{Width: 301, Height: 81}

	p := ComputePosition(0, []int{81}, fullHD, size, defaults(model.PositionCenter))
	assert.Equal(t, model.Point{X: 804, Y: 494}, p)

	left := model.Rect{X: -1920, Width: 1920, Height: 1080}
	p = ComputePosition(0, []int{81}, left, size, defaults(model.PositionTopMiddle))
	assert.Equal(t, -1115, p.X)
}

func TestComputePosition_InvalidPositionFallsBackToBottomRight(t *testing.T) {
	size := model.Size{Width: 300, Height: 80}
	got := ComputePosition(0, []int{80}, fullHD, size, defaults(model.Position(99)))
	want := ComputePosition(0, []int{80}, fullHD, size, defaults(model.PositionBottomRight))
	assert.Equal(t, want, got)
}

func TestEntryStart(t *testing.T) {
	target := model.Point{X: 100, Y: 500}

	assert.Equal(t, model.Point{X: 100, Y: 440}, EntryStart(target, 90, 0, model.PositionBottomRight))
	assert.Equal(t, model.Point{X: 100, Y: 433}, EntryStart(target, 90, 7, model.PositionBottomMiddle))
	assert.Equal(t, model.Point{X: 100, Y: 566}, EntryStart(target, 100, 0, model.PositionTopLeft))
	assert.Equal(t, model.Point{X: 100, Y: 571}, EntryStart(target, 100, 5, model.PositionCenter))
}
