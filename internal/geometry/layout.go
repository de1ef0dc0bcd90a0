package geometry

// Layout bundles the static strip measurements.
type Layout struct {
	Margin         float64
	CellSize       float64
	ExpandedHeight float64
	ContainerWidth float64
}

// ContainerWidth is the usable strip width inside a window of the given width.
func ContainerWidth(windowWidth, padding float64) float64 {
	return windowWidth - padding*2
}

// CollapsedRowWidth is the row width with every cell at CellSize.
func (l Layout) CollapsedRowWidth(images []Image) float64 {
	return RowWidth(l.Margin, Fixed(l.CellSize), images)
}

// ExpandedRowWidth is the row width with every cell at its expanded width.
func (l Layout) ExpandedRowWidth(images []Image) float64 {
	return RowWidth(l.Margin, ExpandedWidth(l.ExpandedHeight, l.ContainerWidth), images)
}

// CollapseTarget is CollapseTarget with the layout's measurements.
func (l Layout) CollapseTarget(images []Image, index int) float64 {
	return CollapseTarget(l.Margin, l.CellSize, images, index, l.ContainerWidth)
}

// ExpandTarget is ExpandTarget with the layout's measurements.
func (l Layout) ExpandTarget(images []Image, index int) float64 {
	return ExpandTarget(l.Margin, l.ExpandedHeight, images, index, l.ContainerWidth)
}

// PreparedImage is an image annotated with its place in both row layouts.
type PreparedImage struct {
	Image
	Index int
	// Offset is the left edge in the collapsed row.
	Offset float64
	// ExpandedOffset is the left edge in the expanded row.
	ExpandedOffset float64
	ExpandedWidth  float64
}

// Prepare annotates every image with its cumulative offsets. Callers rebuild
// the list when the number of images changes.
func (l Layout) Prepare(images []Image) []PreparedImage {
	expanded := ExpandedWidth(l.ExpandedHeight, l.ContainerWidth)
	out := make([]PreparedImage, len(images))
	var x, ex float64
	for i, img := range images {
		ew := expanded(img)
		out[i] = PreparedImage{
			Image:          img,
			Index:          i,
			Offset:         x,
			ExpandedOffset: ex,
			ExpandedWidth:  ew,
		}
		x += l.CellSize + l.Margin
		ex += ew + l.Margin
	}
	return out
}

// Lerp interpolates between a and b by t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
