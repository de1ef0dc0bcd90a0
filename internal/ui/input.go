package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Pointer tracks the first touch, falling back to the left mouse button.
type Pointer struct {
	touch    ebiten.TouchID
	touching bool
	touchIDs []ebiten.TouchID
}

// State returns whether the pointer is down and where it is.
func (p *Pointer) State() (pressed bool, x, y float64) {
	p.touchIDs = inpututil.AppendJustPressedTouchIDs(p.touchIDs[:0])
	if !p.touching && len(p.touchIDs) > 0 {
		p.touch = p.touchIDs[0]
		p.touching = true
	}
	if p.touching {
		if inpututil.IsTouchJustReleased(p.touch) {
			p.touching = false
			tx, ty := inpututil.TouchPositionInPreviousTick(p.touch)
			return false, float64(tx), float64(ty)
		}
		tx, ty := ebiten.TouchPosition(p.touch)
		return true, float64(tx), float64(ty)
	}

	cx, cy := ebiten.CursorPosition()
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft), float64(cx), float64(cy)
}
