package ui

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/depeter/photostrip/internal/geometry"
	"github.com/depeter/photostrip/internal/interaction"
	"github.com/depeter/photostrip/internal/picker"
	"github.com/depeter/photostrip/internal/ui/palette"
	"github.com/depeter/photostrip/internal/ui/thumbs"
)

// StripView draws a picker's row and keeps its thumbnails uploaded.
type StripView struct {
	Picker *picker.Picker

	// X and Y place the container's top-left corner on screen.
	X, Y float64

	thumbs *thumbs.Set[*ebiten.Image]
}

func NewStripView(p *picker.Picker, loader thumbs.Loader) *StripView {
	return &StripView{
		Picker: p,
		thumbs: thumbs.New(loader, ebiten.NewImageFromImage, (*ebiten.Image).Deallocate),
	}
}

// Update uploads thumbnails that finished loading, requests the ones within
// one container width of the screen and evicts those three widths away.
// Call it from Game.Update.
func (sv *StripView) Update(f interaction.Frame) {
	sv.thumbs.Drain()

	width := sv.Picker.Layout().ContainerWidth
	for i, c := range sv.Picker.Prepared() {
		left, w := sv.Picker.CellRect(i, f)
		switch {
		case left+w >= -width && left <= 2*width:
			sv.thumbs.Request(c.URI)
		case left+w < -3*width || left > 4*width:
			sv.thumbs.Evict(c.URI)
		}
	}
}

// Retry drops thumbnails whose load failed so the next Update requests them
// again. Call it before the loader forgets its failures.
func (sv *StripView) Retry() int {
	return sv.thumbs.Retry()
}

// ContainerPoint converts a screen point to container coordinates.
func (sv *StripView) ContainerPoint(x, y float64) (float64, float64) {
	return x - sv.X, y - sv.Y
}

// Height is the row height at progress t.
func (sv *StripView) Height(t float64) float64 {
	l := sv.Picker.Layout()
	return geometry.Lerp(l.CellSize, l.ExpandedHeight, t)
}

// Draw renders every visible cell for frame f.
func (sv *StripView) Draw(dst *ebiten.Image, f interaction.Frame) {
	width := sv.Picker.Layout().ContainerWidth
	h := sv.Height(f.Progress)
	radius := float32(geometry.Lerp(CellRadius, ExpandedCellRadius, f.Progress))

	for i, c := range sv.Picker.Prepared() {
		left, w := sv.Picker.CellRect(i, f)
		if left > width {
			break
		}
		if left+w < 0 {
			continue
		}
		x, y := sv.X+left, sv.Y

		if tex, ok := sv.thumbs.Get(c.URI); ok {
			drawCover(dst, tex, x, y, w, h)
		} else {
			DrawFilledRoundRect(dst, float32(x), float32(y), float32(w), float32(h), radius, palette.Placeholder(c.URI))
		}

		if n := sv.Picker.BadgeIndex(i); n > 0 {
			clr := palette.Selection(f.Progress)
			vector.StrokeRect(dst, float32(x), float32(y), float32(w), float32(h), SelectedBorder, clr, true)
			drawBadge(dst, x+w-BadgeRadius-6, y+BadgeRadius+6, n, clr)
		}
	}
}

// drawCover scales img to fill the w x h cell, cropping the overflow.
func drawCover(dst, img *ebiten.Image, x, y, w, h float64) {
	b := img.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())
	if iw == 0 || ih == 0 || w <= 0 || h <= 0 {
		return
	}

	src := b
	if iw/ih > w/h {
		cw := int(ih * w / h)
		x0 := b.Min.X + (b.Dx()-cw)/2
		src = image.Rect(x0, b.Min.Y, x0+cw, b.Max.Y)
	} else {
		ch := int(iw * h / w)
		y0 := b.Min.Y + (b.Dy()-ch)/2
		src = image.Rect(b.Min.X, y0, b.Max.X, y0+ch)
	}
	if src.Empty() {
		return
	}
	sub := img.SubImage(src).(*ebiten.Image)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w/float64(src.Dx()), h/float64(src.Dy()))
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(sub, op)
}

func drawBadge(dst *ebiten.Image, cx, cy float64, n int, clr color.Color) {
	vector.DrawFilledCircle(dst, float32(cx), float32(cy), BadgeRadius, clr, true)
	DrawTextCentered(dst, fmt.Sprint(n), cx, cy, FontSizeSmall, ColorText)
}
