package input

import (
	"snakeegg/internal/domain"
	"snakeegg/internal/engine"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// KeyboardHandler turns arrow keys, WASD and on-screen arrows into direction
// presses for every registered listener.
type KeyboardHandler struct {
	engine.Listeners
}

func NewKeyboardHandler() *KeyboardHandler {
	return &KeyboardHandler{}
}

// Update polls the keyboard once per frame and presses the first mapped key.
func (kh *KeyboardHandler) Update() domain.Direction {
	dir := pollDirection()
	if dir != domain.DirectionNone {
		kh.Press(dir)
	}
	return dir
}

func pollDirection() domain.Direction {
	if inpututil.IsKeyJustPressed(ebiten.KeyW) || inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		return domain.DirectionUp
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) || inpututil.IsKeyJustPressed(ebiten.KeyDown) {
		return domain.DirectionDown
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyA) || inpututil.IsKeyJustPressed(ebiten.KeyLeft) {
		return domain.DirectionLeft
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) || inpututil.IsKeyJustPressed(ebiten.KeyRight) {
		return domain.DirectionRight
	}

	return domain.DirectionNone
}

func IsEscapePressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEscape)
}

func IsEnterPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEnter)
}

func IsTabPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyTab)
}

// IsTriggerPressed reports Ctrl+G, the shortcut that opens the game.
func IsTriggerPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyControl) && inpututil.IsKeyJustPressed(ebiten.KeyG)
}

func IsMuteTogglePressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyM)
}
