// Package stack computes where each toast of a stack is placed on screen.
//
// All functions are pure: they can be called to preview a position before
// anything is animated.
package stack

import (
	"github.com/jmylchreest/toaststack/internal/model"
)

// DropShadowSize is the inset reserved around every toast for its shadow.
// It is subtracted from both coordinates of every computed position.
const DropShadowSize = 5

// Settings are the registry wide placement settings.
type Settings struct {
	Position model.Position
	Spacing  int
	OffsetX  int
	OffsetY  int
}

// Offset returns the space taken by the toasts preceding index:
// the sum of (height + spacing) over heights[:index].
func Offset(index int, heights []int, spacing int) int {
	if index > len(heights) {
		index = len(heights)
	}
	offset := 0
	for _, h := range heights[:index] {
		offset += h + spacing
	}
	return offset
}

// ComputePosition returns the top-left corner of the toast at index in a
// stack whose members have the given content heights. size is the content
// size of the toast being placed and region the bounds of its display.
func ComputePosition(index int, heights []int, region model.Rect, size model.Size, s Settings) model.Point {
	yOffset := float64(Offset(index, heights, s.Spacing))

	sx, sy := float64(region.X), float64(region.Y)
	sw, sh := float64(region.Width), float64(region.Height)
	w, h := float64(size.Width), float64(size.Height)
	offX, offY := float64(s.OffsetX), float64(s.OffsetY)

	var x, y float64
	switch s.Position {
	case model.PositionBottomLeft:
		x = sx + offX
		y = sh - h - offY + sy - yOffset
	case model.PositionBottomMiddle:
		x = sx + sw/2 - w/2
		y = sh - h - offY + sy - yOffset
	case model.PositionTopRight:
		x = sw - w - offX + sx
		y = sy + offY + yOffset
	case model.PositionTopLeft:
		x = sx + offX
		y = sy + offY + yOffset
	case model.PositionTopMiddle:
		x = sx + sw/2 - w/2
		y = sy + offY + yOffset
	case model.PositionCenter:
		x = sx + sw/2 - w/2
		y = sy + sh/2 - h/2 + yOffset
	default: // bottom-right
		x = sw - w - offX + sx
		y = sh - h - offY + sy - yOffset
	}

	// Go float to int conversion truncates toward zero.
	return model.Point{
		X: int(x - DropShadowSize),
		Y: int(y - DropShadowSize),
	}
}

// EntryStart returns where a newly admitted toast starts its slide-in
// animation. height is the toast's full surface height. predecessorDelta
// is how far the preceding toast still is from its own target.
//
// Bottom anchored stacks slide in from above, top and center anchored stacks
// from below, so a new toast always travels towards the anchor.
func EntryStart(target model.Point, height, predecessorDelta int, pos model.Position) model.Point {
	shift := int(float64(height)/1.5) + predecessorDelta
	if pos.IsBottom() {
		return model.Point{X: target.X, Y: target.Y - shift}
	}
	return model.Point{X: target.X, Y: target.Y + shift}
}
