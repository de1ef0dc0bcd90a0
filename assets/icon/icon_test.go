package icon

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	icons := Generate()
	require.Len(t, icons, 2)
	assert.Equal(t, image.Rect(0, 0, 64, 64), icons[0].Bounds())
	assert.Equal(t, image.Rect(0, 0, 32, 32), icons[1].Bounds())

	img := icons[0].(*image.RGBA)
	assert.Equal(t, darkBG, img.RGBAAt(0, 0))
	assert.Equal(t, skyBlue, img.RGBAAt(24, 20), "expanded cell sky")
	assert.Equal(t, hillGreen, img.RGBAAt(32, 48), "hill")
}

func TestBlendPixel(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, color.RGBA{A: 0xFF})
	blendPixel(img, 0, 0, color.NRGBA{R: 0xFF, A: 0x80})
	got := img.RGBAAt(0, 0)
	assert.InDelta(t, 0x80, int(got.R), 1)
	assert.Equal(t, uint8(0xFF), got.A)
}
