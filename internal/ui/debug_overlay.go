package ui

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/depeter/photostrip/internal/interaction"
)

var debugOverlayVisible bool

// ToggleDebugOverlay toggles the debug overlay on F12.
func ToggleDebugOverlay() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		debugOverlayVisible = !debugOverlayVisible
	}
}

// DebugInfo is what the overlay shows besides the engine frame.
type DebugInfo struct {
	Gesture   interaction.Phase
	Images    int
	Selected  []int
	RowWidth  float64
	Container float64
	MorePages bool
	Loading   bool
}

// DrawDebugOverlay draws the debug overlay if visible.
func DrawDebugOverlay(screen *ebiten.Image, f interaction.Frame, info DebugInfo) {
	if !debugOverlayVisible {
		return
	}

	const (
		padX    = 16.0
		padY    = 12.0
		lineH   = 18.0
		marginR = 20.0
		marginB = 20.0
	)

	lines := []string{
		fmt.Sprintf("state     %s", f.State),
		fmt.Sprintf("driver    %s", f.Driver),
		fmt.Sprintf("position  %.1f", f.Position),
		fmt.Sprintf("progress  %.3f", f.Progress),
		fmt.Sprintf("gesture   %s", info.Gesture),
		fmt.Sprintf("row       %.0f / %.0f", info.RowWidth, info.Container),
		fmt.Sprintf("images    %d (more: %t, loading: %t)", info.Images, info.MorePages, info.Loading),
		fmt.Sprintf("selected  %v", info.Selected),
		fmt.Sprintf("tps       %.0f  fps %.0f", ebiten.ActualTPS(), ebiten.ActualFPS()),
	}

	panelW := 320.0
	panelH := float64(len(lines)+1)*lineH + padY*2
	b := screen.Bounds()
	px := float64(b.Dx()) - panelW - marginR
	py := float64(b.Dy()) - panelH - marginB

	vector.DrawFilledRect(screen, float32(px), float32(py), float32(panelW), float32(panelH), ColorOverlay, false)

	x := px + padX
	y := py + padY
	DrawText(screen, "Debug (F12 to close)", x, y, FontSizeSmall, ColorPrimary)
	y += lineH
	for _, line := range lines {
		DrawText(screen, line, x, y, FontSizeSmall, ColorText)
		y += lineH
	}
}
