package interaction

// EndDetector reports when the trailing edge of the row comes within
// EndThreshold of the row width. It fires once per crossing and re-arms only
// after the row has moved back above the threshold.
type EndDetector struct {
	crossed bool
}

// Observe returns true on the frame the threshold is first crossed. Rows
// narrower than the container never fire.
func (d *EndDetector) Observe(rowWidth, containerWidth, position float64) bool {
	if rowWidth < containerWidth || rowWidth+position >= EndThreshold*rowWidth {
		d.crossed = false
		return false
	}
	if d.crossed {
		return false
	}
	d.crossed = true
	return true
}
