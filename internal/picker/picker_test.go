package picker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/depeter/photostrip/internal/geometry"
	"github.com/depeter/photostrip/internal/interaction"
)

const frame = time.Second / 60

var layout = geometry.Layout{Margin: 6, CellSize: 80, ExpandedHeight: 300, ContainerWidth: 320}

func landscape(n int) []geometry.Image {
	images := make([]geometry.Image, n)
	for i := range images {
		images[i] = geometry.Image{URI: string(rune('a' + i)), Width: 400, Height: 300}
	}
	return images
}

type harness struct {
	t   *testing.T
	p   *Picker
	now time.Duration
}

func newHarness(t *testing.T, mode Mode) *harness {
	p := New(layout, mode, interaction.DefaultConfig(0))
	p.SetImages(landscape(10))
	return &harness{t: t, p: p}
}

func (h *harness) step() interaction.Frame {
	h.now += frame
	return h.p.Step(h.now)
}

func (h *harness) settle() interaction.Frame {
	for i := 0; i < 2000; i++ {
		f := h.step()
		if f.State.Stable() && f.Driver == interaction.DriverNone {
			return f
		}
	}
	h.t.Fatalf("picker did not settle")
	return interaction.Frame{}
}

func (h *harness) tap(index int) interaction.Frame {
	require.True(h.t, h.p.Select(index), "select %d", index)
	return h.settle()
}

func TestSingle_ExpandThenCollapse(t *testing.T) {
	h := newHarness(t, ModeSingle)
	images := h.p.Images()

	f := h.tap(3)
	assert.Equal(t, interaction.Expanded, f.State)
	assert.InDelta(t, layout.ExpandTarget(images, 3), f.Position, 1e-9)
	assert.Equal(t, []int{3}, h.p.Selected())
	assert.Equal(t, 1, h.p.BadgeIndex(3))

	f = h.tap(3)
	assert.Equal(t, interaction.Collapsed, f.State)
	assert.InDelta(t, layout.CollapseTarget(images, 3), f.Position, 1e-9)
	assert.Empty(t, h.p.Selected())
	assert.Equal(t, 0, h.p.BadgeIndex(3))
}

func TestSingle_TapOtherReplacesAndSnaps(t *testing.T) {
	h := newHarness(t, ModeSingle)
	h.tap(3)

	f := h.tap(5)
	assert.Equal(t, interaction.Expanded, f.State)
	assert.InDelta(t, layout.ExpandTarget(h.p.Images(), 5), f.Position, 1e-9)
	assert.Equal(t, []int{5}, h.p.Selected())
	assert.False(t, h.p.IsSelected(3))
}

func TestMulti_OrderAndBadges(t *testing.T) {
	h := newHarness(t, ModeMulti)
	images := h.p.Images()

	h.tap(1)
	h.tap(4)
	f := h.tap(2)
	assert.Equal(t, []int{1, 4, 2}, h.p.Selected())
	assert.Equal(t, 2, h.p.BadgeIndex(4))
	assert.Equal(t, 3, h.p.BadgeIndex(2))
	assert.InDelta(t, layout.ExpandTarget(images, 2), f.Position, 1e-9)

	var uris []string
	for _, img := range h.p.SelectedImages() {
		uris = append(uris, img.URI)
	}
	assert.Equal(t, []string{"b", "e", "c"}, uris)

	f = h.tap(4)
	assert.Equal(t, []int{1, 2}, h.p.Selected())
	assert.Equal(t, 2, h.p.BadgeIndex(2))
	assert.InDelta(t, layout.ExpandTarget(images, 2), f.Position, 1e-9, "latest remaining")

	f = h.tap(2)
	assert.Equal(t, []int{1}, h.p.Selected())
	assert.Equal(t, interaction.Expanded, f.State)
	assert.InDelta(t, layout.ExpandTarget(images, 1), f.Position, 1e-9)

	f = h.tap(1)
	assert.Equal(t, interaction.Collapsed, f.State)
	assert.Empty(t, h.p.Selected())
	assert.Empty(t, h.p.SelectedImages())
}

func TestSelect_IgnoredWhileBusy(t *testing.T) {
	h := newHarness(t, ModeMulti)
	require.True(t, h.p.Select(1))
	assert.False(t, h.p.Select(2), "intent already pending")

	h.step()
	assert.False(t, h.p.Select(2), "mid transition")
	assert.Equal(t, []int{1}, h.p.Selected())

	assert.False(t, h.p.Select(-1))
	assert.False(t, h.p.Select(10))
}

func TestSetImages_RelayoutOnlyOnLengthChange(t *testing.T) {
	p := New(layout, ModeSingle, interaction.DefaultConfig(0))
	p.SetImages(landscape(10))
	assert.Equal(t, 854.0, p.Engine().RowWidth())
	assert.Equal(t, 320.0, p.Engine().Config().ContainerWidth)

	tall := landscape(10)
	for i := range tall {
		tall[i].Width = 100
	}
	p.SetImages(tall)
	assert.Equal(t, 400.0, p.Prepared()[0].Width, "same length keeps the prepared list")
	assert.Equal(t, 100.0, p.Images()[0].Width)

	p.SetImages(landscape(12))
	require.Len(t, p.Prepared(), 12)
	assert.Equal(t, 12*80+11*6.0, p.Engine().RowWidth())
}

func TestSetImages_DropsSelectionPastEnd(t *testing.T) {
	h := newHarness(t, ModeMulti)
	h.tap(2)
	h.tap(8)
	h.p.SetImages(landscape(5))
	assert.Equal(t, []int{2}, h.p.Selected())
}

func TestSetImages_EmptiedSelectionCollapses(t *testing.T) {
	h := newHarness(t, ModeSingle)
	h.tap(8)
	h.p.SetImages(landscape(5))
	require.Empty(t, h.p.Selected())

	f := h.settle()
	assert.Equal(t, interaction.Collapsed, f.State)
	assert.InDelta(t, layout.CollapseTarget(h.p.Images(), 0), f.Position, 1e-9)

	f = h.tap(1)
	assert.Equal(t, interaction.Expanded, f.State)
	assert.Equal(t, []int{1}, h.p.Selected())
}

func TestSetImages_EmptyListCollapses(t *testing.T) {
	h := newHarness(t, ModeMulti)
	h.tap(4)
	h.p.SetImages(nil)

	f := h.settle()
	assert.Equal(t, interaction.Collapsed, f.State)
	assert.Equal(t, 0.0, f.Position)
}

func TestCellAt(t *testing.T) {
	h := newHarness(t, ModeSingle)

	collapsed := interaction.Frame{Position: 0, Progress: 0}
	assert.Equal(t, 0, h.p.CellAt(10, collapsed))
	assert.Equal(t, -1, h.p.CellAt(83, collapsed), "margin")
	assert.Equal(t, 1, h.p.CellAt(90, collapsed))
	assert.Equal(t, -1, h.p.CellAt(-5, collapsed))

	expanded := interaction.Frame{Position: -100, Progress: 1}
	left, w := h.p.CellRect(1, expanded)
	assert.InDelta(t, 130, left, 1e-9)
	assert.InDelta(t, 224, w, 1e-9)
	assert.Equal(t, 0, h.p.CellAt(10, expanded))
	assert.Equal(t, -1, h.p.CellAt(127, expanded))
	assert.Equal(t, 1, h.p.CellAt(130, expanded))
}

func TestOnEndReached(t *testing.T) {
	h := newHarness(t, ModeSingle)
	calls := 0
	h.p.OnEndReached(func() { calls++ })

	for _, tx := range []float64{0, -534, -634, -734} {
		h.p.HandleGesture(interaction.Sample{TranslationX: tx, Phase: interaction.PhaseActive})
		h.step()
	}
	assert.InDelta(t, -654, h.p.Engine().Position(), 1e-9)
	assert.Equal(t, 1, calls)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("multi")
	require.NoError(t, err)
	assert.Equal(t, ModeMulti, m)
	assert.Equal(t, "multi", m.String())

	m, err = ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeSingle, m)

	_, err = ParseMode("many")
	assert.Error(t, err)
}
