package app

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// handleKeys processes window-level keys and reports whether to quit.
func (g *Game) handleKeys() (quit bool) {
	// Alt+Enter toggles fullscreen
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) && ebiten.IsKeyPressed(ebiten.KeyAlt) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
	// R retries whatever failed to load
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.reload()
	}
	// Losing focus cancels an ongoing drag
	if !ebiten.IsFocused() {
		if ev := g.tracker.Cancel(); ev.Changed {
			g.Picker.HandleGesture(ev.Sample)
		}
	}
	return inpututil.IsKeyJustPressed(ebiten.KeyEscape) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButton3)
}
