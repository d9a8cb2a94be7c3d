package terminal

import (
	"snakeegg/internal/domain"
	"snakeegg/internal/engine"

	"github.com/gdamore/tcell/v2"
)

// Keyboard is the engine's input source for the terminal. The run loop feeds
// it key events through Press.
type Keyboard struct {
	engine.Listeners
}

func NewKeyboard() *Keyboard {
	return &Keyboard{}
}

// KeyDirection maps arrow keys and WASD to a direction.
func KeyDirection(ev *tcell.EventKey) domain.Direction {
	switch ev.Key() {
	case tcell.KeyUp:
		return domain.DirectionUp
	case tcell.KeyDown:
		return domain.DirectionDown
	case tcell.KeyLeft:
		return domain.DirectionLeft
	case tcell.KeyRight:
		return domain.DirectionRight
	case tcell.KeyRune:
		return domain.ParseDirection(string(ev.Rune()))
	}
	return domain.DirectionNone
}
