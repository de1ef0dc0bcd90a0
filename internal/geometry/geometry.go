// Package geometry computes cell widths, row widths and scroll targets for the
// photo strip. Everything here is pure; malformed dimensions (a zero height,
// say) propagate as NaN or Inf rather than being guarded.
package geometry

import "math"

// MaxExpandedShare caps an expanded cell at this share of the container width.
const MaxExpandedShare = 0.7

// Image is an image descriptor as delivered by a photo source.
type Image struct {
	URI    string
	Width  float64
	Height float64
}

// AspectRatio returns width / height.
func AspectRatio(img Image) float64 {
	return img.Width / img.Height
}

// WidthFunc returns the display width of a single image.
type WidthFunc func(Image) float64

// Fixed returns a WidthFunc for the collapsed layout, where every cell is a
// square of the given side.
func Fixed(size float64) WidthFunc {
	return func(Image) float64 { return size }
}

// ExpandedWidth returns the width of an image shown at targetHeight, capped so
// a single panorama never overflows the container.
func ExpandedWidth(targetHeight, containerWidth float64) WidthFunc {
	return func(img Image) float64 {
		return math.Min(containerWidth*MaxExpandedShare, AspectRatio(img)*targetHeight)
	}
}

// RowWidth is the total width of a row of cells separated by margin.
func RowWidth(margin float64, itemWidth WidthFunc, images []Image) float64 {
	var w float64
	for i, img := range images {
		if i > 0 {
			w += margin
		}
		w += itemWidth(img)
	}
	return w
}

// leftOffset is the distance from the row origin to the left edge of images[index].
func leftOffset(margin float64, itemWidth WidthFunc, images []Image, index int) float64 {
	var x float64
	for i := 0; i < index && i < len(images); i++ {
		x += itemWidth(images[i]) + margin
	}
	return x
}

// centerTarget is the row offset that centers images[index] in the container,
// or aligns the row's trailing edge with the container for the last item.
// The result never shifts the row right of its origin.
func centerTarget(margin float64, itemWidth WidthFunc, images []Image, index int, containerWidth float64) float64 {
	if index == len(images)-1 {
		return math.Min(0, containerWidth-RowWidth(margin, itemWidth, images))
	}
	left := leftOffset(margin, itemWidth, images, index)
	w := itemWidth(images[index])
	return math.Min(0, -left-w/2+containerWidth/2-margin)
}

// CollapseTarget is the offset that keeps images[index] centered once the row
// is back at its collapsed width.
func CollapseTarget(margin, cellSize float64, images []Image, index int, containerWidth float64) float64 {
	return centerTarget(margin, Fixed(cellSize), images, index, containerWidth)
}

// ExpandTarget is the offset that centers images[index] in the expanded row.
func ExpandTarget(margin, expandedHeight float64, images []Image, index int, containerWidth float64) float64 {
	return centerTarget(margin, ExpandedWidth(expandedHeight, containerWidth), images, index, containerWidth)
}
