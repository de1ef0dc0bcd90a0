// Package palette derives the strip's placeholder and accent colors.
package palette

import (
	"hash/fnv"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	surface = colorful.Color{R: 0x1C / 255.0, G: 0x1C / 255.0, B: 0x24 / 255.0}
	primary = colorful.Color{R: 0x00 / 255.0, G: 0xA4 / 255.0, B: 0xDC / 255.0}
	accent  = colorful.Color{R: 0xAA / 255.0, G: 0x5C / 255.0, B: 0xC3 / 255.0}
)

// Placeholder is the fill shown while a cell's thumbnail loads. Each URI
// gets a stable tint between the surface color and the two accents.
func Placeholder(uri string) color.Color {
	h := fnv.New32a()
	h.Write([]byte(uri))
	sum := h.Sum32()

	tint := primary.BlendHcl(accent, float64(sum%256)/255).Clamped()
	return surface.BlendHcl(tint, 0.15+0.15*float64(sum>>8%256)/255).Clamped()
}

// Selection is the border and badge color at selection progress t.
func Selection(t float64) color.Color {
	return accent.BlendHcl(primary, max(0, min(1, t))).Clamped()
}
