package icon

import (
	"image"
	"image/color"
)

var (
	primaryBlue = color.RGBA{R: 0x00, G: 0xA4, B: 0xDC, A: 0xFF}
	darkBG      = color.RGBA{R: 0x10, G: 0x10, B: 0x14, A: 0xFF}
	cellGray    = color.RGBA{R: 0x3A, G: 0x3A, B: 0x48, A: 0xFF}
	skyBlue     = color.RGBA{R: 0x5C, G: 0xB8, B: 0xE6, A: 0xFF}
	sunYellow   = color.RGBA{R: 0xFF, G: 0xD7, B: 0x00, A: 0xFF}
	hillGreen   = color.RGBA{R: 0x3C, G: 0x9A, B: 0x5C, A: 0xFF}
	white       = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
)

// Generate returns 64x64 and 32x32 icon images for use with ebiten.SetWindowIcon.
func Generate() []image.Image {
	return []image.Image{
		generate(64),
		generate(32),
	}
}

// generate draws a strip of three cells with the middle one expanded and
// selected.
func generate(size int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	s := float64(size)

	fillRect(img, 0, 0, size, size, darkBG)

	// Collapsed neighbours
	fillRoundedRect(img, s*0.02, s*0.36, s*0.16, s*0.28, s*0.04, cellGray)
	fillRoundedRect(img, s*0.82, s*0.36, s*0.16, s*0.28, s*0.04, cellGray)

	// Expanded cell: a tiny landscape
	x, y, w, h := s*0.22, s*0.18, s*0.56, s*0.64
	fillRoundedRect(img, x, y, w, h, s*0.06, skyBlue)
	fillCircle(img, x+w*0.72, y+h*0.28, s*0.07, sunYellow)
	fillHill(img, x, y, w, h, hillGreen)

	// Selection badge
	fillCircle(img, x+w-s*0.02, y+s*0.02, s*0.11, primaryBlue)
	fillCircle(img, x+w-s*0.02, y+s*0.02, s*0.035, white)

	return img
}

// fillHill fills the lower part of a cell under a parabola peaking at 40%
// of the cell width.
func fillHill(img *image.RGBA, xf, yf, wf, hf float64, c color.Color) {
	bounds := img.Bounds()
	for x := int(xf + wf*0.04); x < int(xf+wf*0.96) && x < bounds.Max.X; x++ {
		t := (float64(x) - xf) / wf
		d := (t - 0.4) / 0.6
		top := yf + hf*(0.55+0.3*d*d)
		for y := int(top); y < int(yf+hf*0.94) && y < bounds.Max.Y; y++ {
			if x >= 0 && y >= 0 {
				blendPixel(img, x, y, c)
			}
		}
	}
}

func fillRect(img *image.RGBA, x0, y0, w, h int, c color.Color) {
	bounds := img.Bounds()
	for y := y0; y < y0+h && y < bounds.Max.Y; y++ {
		for x := x0; x < x0+w && x < bounds.Max.X; x++ {
			if x >= 0 && y >= 0 {
				blendPixel(img, x, y, c)
			}
		}
	}
}

func fillRoundedRect(img *image.RGBA, xf, yf, wf, hf, rf float64, c color.Color) {
	bounds := img.Bounds()
	for y := int(yf); y <= int(yf+hf) && y < bounds.Max.Y; y++ {
		for x := int(xf); x <= int(xf+wf) && x < bounds.Max.X; x++ {
			if x < 0 || y < 0 {
				continue
			}
			// distance past the nearest corner center, zero along the edges
			fx, fy := float64(x), float64(y)
			dx := max(xf+rf-fx, fx-(xf+wf-rf), 0)
			dy := max(yf+rf-fy, fy-(yf+hf-rf), 0)
			if dx*dx+dy*dy <= rf*rf {
				blendPixel(img, x, y, c)
			}
		}
	}
}

func fillCircle(img *image.RGBA, cx, cy, r float64, c color.Color) {
	bounds := img.Bounds()
	r2 := r * r
	for y := int(cy - r); y <= int(cy+r+1) && y < bounds.Max.Y; y++ {
		for x := int(cx - r); x <= int(cx+r+1) && x < bounds.Max.X; x++ {
			if x < 0 || y < 0 {
				continue
			}
			dx := float64(x) - cx
			dy := float64(y) - cy
			if dx*dx+dy*dy <= r2 {
				blendPixel(img, x, y, c)
			}
		}
	}
}

// blendPixel alpha-blends color c onto the existing pixel at (x, y).
func blendPixel(img *image.RGBA, x, y int, c color.Color) {
	r0, g0, b0, a0 := c.RGBA() // premultiplied
	if a0 == 0 {
		return
	}
	if a0 == 0xFFFF {
		img.Set(x, y, c)
		return
	}

	existing := img.RGBAAt(x, y)
	inv := 0xFFFF - a0
	nr := r0 + uint32(existing.R)*257*inv/0xFFFF
	ng := g0 + uint32(existing.G)*257*inv/0xFFFF
	nb := b0 + uint32(existing.B)*257*inv/0xFFFF

	img.SetRGBA(x, y, color.RGBA{
		R: uint8(nr >> 8),
		G: uint8(ng >> 8),
		B: uint8(nb >> 8),
		A: 0xFF,
	})
}
