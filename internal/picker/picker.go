// Package picker is the outward face of the strip: it owns the image list,
// keeps the prepared layout current and turns taps on cells into selection
// transitions on the interaction engine.
package picker

import (
	"fmt"
	"slices"
	"time"

	"github.com/depeter/photostrip/internal/geometry"
	"github.com/depeter/photostrip/internal/interaction"
)

// Mode selects single or multi selection.
type Mode int

const (
	ModeSingle Mode = iota
	ModeMulti
)

func (m Mode) String() string {
	if m == ModeMulti {
		return "multi"
	}
	return "single"
}

// ParseMode converts a config value to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "single", "":
		return ModeSingle, nil
	case "multi":
		return ModeMulti, nil
	}
	return ModeSingle, fmt.Errorf("unknown selection mode %q", s)
}

// Picker is one mounted strip.
type Picker struct {
	layout geometry.Layout
	mode   Mode
	engine *interaction.Engine

	images   []geometry.Image
	prepared []geometry.PreparedImage

	// order holds selected indices, oldest first.
	order []int
}

// New returns an empty, collapsed picker. cfg.ContainerWidth is taken from layout.
func New(layout geometry.Layout, mode Mode, cfg interaction.Config) *Picker {
	cfg.ContainerWidth = layout.ContainerWidth
	return &Picker{
		layout: layout,
		mode:   mode,
		engine: interaction.NewEngine(cfg),
	}
}

// OnEndReached sets the callback fired when the row nears its end.
func (p *Picker) OnEndReached(fn func()) {
	p.engine.OnEndReached = fn
}

// Engine exposes the underlying interaction engine.
func (p *Picker) Engine() *interaction.Engine { return p.engine }

// Layout returns the current measurements.
func (p *Picker) Layout() geometry.Layout { return p.layout }

// Mode returns the selection mode.
func (p *Picker) Mode() Mode { return p.mode }

// Images returns the current image list. Callers must not modify it.
func (p *Picker) Images() []geometry.Image { return p.images }

// Prepared returns the images annotated with their offsets.
func (p *Picker) Prepared() []geometry.PreparedImage { return p.prepared }

// SetImages replaces the image list. The prepared layout and row widths are
// rebuilt only when the number of images changes; replacing images in place
// with a list of the same length keeps the old measurements. Selections past
// the new end are dropped; if none remain the next Step collapses the strip.
func (p *Picker) SetImages(images []geometry.Image) {
	if len(images) == len(p.images) && p.prepared != nil {
		p.images = images
		return
	}
	p.images = images
	p.order = slices.DeleteFunc(p.order, func(i int) bool { return i >= len(images) })
	p.relayout()
}

// SetContainerWidth updates the visible width and rebuilds the layout.
func (p *Picker) SetContainerWidth(w float64) {
	if w == p.layout.ContainerWidth {
		return
	}
	p.layout.ContainerWidth = w
	p.engine.SetContainerWidth(w)
	p.relayout()
}

func (p *Picker) relayout() {
	p.prepared = p.layout.Prepare(p.images)
	p.engine.SetRowWidths(p.layout.CollapsedRowWidth(p.images), p.layout.ExpandedRowWidth(p.images))
}

// HandleGesture forwards a pan sample to the engine.
func (p *Picker) HandleGesture(s interaction.Sample) {
	p.engine.HandleGesture(s)
}

// Step advances the strip by one frame. An expanded strip left without a
// selection, after SetImages dropped it, collapses toward the first cell.
func (p *Picker) Step(now time.Duration) interaction.Frame {
	if len(p.order) == 0 && p.engine.State() == interaction.Expanded && !p.engine.Busy() {
		target := 0.0
		if len(p.images) > 0 {
			target = p.layout.CollapseTarget(p.images, 0)
		}
		p.engine.Collapse(target)
	}
	return p.engine.Step(now)
}

// Select handles a tap on the cell at index and reports whether it started a
// transition. Taps while a transition is pending are ignored.
//
//   - Collapsed: the cell becomes the only selection and the row expands
//     centered on it.
//   - Expanded, tapping the only selected cell: the row collapses centered on it.
//   - Expanded, multi mode: the cell is added to or removed from the selection
//     and the row snaps to center the most recently selected cell that remains.
//   - Expanded, single mode: the cell replaces the selection and the row snaps to it.
func (p *Picker) Select(index int) bool {
	if index < 0 || index >= len(p.images) || p.engine.Busy() {
		return false
	}

	at := slices.Index(p.order, index)
	switch p.engine.State() {
	case interaction.Collapsed:
		if !p.engine.Expand(p.layout.ExpandTarget(p.images, index)) {
			return false
		}
		p.order = []int{index}

	case interaction.Expanded:
		switch {
		case at >= 0 && len(p.order) == 1:
			if !p.engine.Collapse(p.layout.CollapseTarget(p.images, index)) {
				return false
			}
			p.order = nil
		case at >= 0:
			remaining := slices.Delete(slices.Clone(p.order), at, at+1)
			if !p.snapTo(remaining[len(remaining)-1]) {
				return false
			}
			p.order = remaining
		case p.mode == ModeMulti:
			if !p.snapTo(index) {
				return false
			}
			p.order = append(p.order, index)
		default:
			if !p.snapTo(index) {
				return false
			}
			p.order = []int{index}
		}

	default:
		return false
	}
	return true
}

func (p *Picker) snapTo(index int) bool {
	return p.engine.Snap(p.layout.ExpandTarget(p.images, index))
}

// Selected returns the selected indices in selection order.
func (p *Picker) Selected() []int {
	return slices.Clone(p.order)
}

// SelectedImages returns the selected images in selection order.
func (p *Picker) SelectedImages() []geometry.Image {
	out := make([]geometry.Image, 0, len(p.order))
	for _, i := range p.order {
		out = append(out, p.images[i])
	}
	return out
}

// IsSelected reports whether the cell at index is selected.
func (p *Picker) IsSelected(index int) bool {
	return slices.Contains(p.order, index)
}

// BadgeIndex is the 1-based position of index in the selection order, or 0.
func (p *Picker) BadgeIndex(index int) int {
	return slices.Index(p.order, index) + 1
}

// CellRect is the horizontal extent of one cell at a given frame, in
// container coordinates.
func (p *Picker) CellRect(index int, f interaction.Frame) (left, width float64) {
	c := p.prepared[index]
	left = geometry.Lerp(c.Offset, c.ExpandedOffset, f.Progress) + f.Position
	width = geometry.Lerp(p.layout.CellSize, c.ExpandedWidth, f.Progress)
	return left, width
}

// CellAt returns the index of the cell under container x at frame f, or -1
// when x falls in a margin or outside the row.
func (p *Picker) CellAt(x float64, f interaction.Frame) int {
	for i := range p.prepared {
		left, w := p.CellRect(i, f)
		if x < left {
			return -1
		}
		if x < left+w {
			return i
		}
	}
	return -1
}
