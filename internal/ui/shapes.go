package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// DrawFilledRoundRect draws a filled rectangle with rounded corners, built
// from two rects and four corner discs.
func DrawFilledRoundRect(dst *ebiten.Image, x, y, w, h, radius float32, clr color.Color) {
	radius = min(radius, w/2, h/2)
	if radius <= 0 {
		vector.DrawFilledRect(dst, x, y, w, h, clr, true)
		return
	}
	vector.DrawFilledRect(dst, x+radius, y, w-2*radius, h, clr, true)
	vector.DrawFilledRect(dst, x, y+radius, radius, h-2*radius, clr, true)
	vector.DrawFilledRect(dst, x+w-radius, y+radius, radius, h-2*radius, clr, true)
	vector.DrawFilledCircle(dst, x+radius, y+radius, radius, clr, true)
	vector.DrawFilledCircle(dst, x+w-radius, y+radius, radius, clr, true)
	vector.DrawFilledCircle(dst, x+radius, y+h-radius, radius, clr, true)
	vector.DrawFilledCircle(dst, x+w-radius, y+h-radius, radius, clr, true)
}

