package screens

import (
	"snakeegg/internal/ui/graphics/components"
	"snakeegg/internal/ui/graphics/input"
	"snakeegg/internal/ui/types"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
)

type MenuScreen struct {
	ctx types.ScreenContext

	btnPlay     *components.Button
	btnSettings *components.Button
	btnQuit     *components.Button

	message  string
	errorMsg string
}

func NewMenuScreen(ctx types.ScreenContext) *MenuScreen {
	return &MenuScreen{
		ctx:         ctx,
		btnPlay:     components.NewButton(0, 0, 250, 50, "Play"),
		btnSettings: components.NewButton(0, 0, 250, 50, "Settings"),
		btnQuit:     components.NewButton(0, 0, 250, 50, "Quit"),
	}
}

func (s *MenuScreen) Update() types.UIEvent {
	w, h := s.ctx.Size()
	centerX := w / 2
	centerY := h / 2

	s.btnPlay.SetPosition(centerX-125, centerY-80)
	s.btnSettings.SetPosition(centerX-125, centerY-20)
	s.btnQuit.SetPosition(centerX-125, centerY+40)

	if s.btnPlay.Update() || input.IsEnterPressed() || input.IsTriggerPressed() {
		return types.UIEvent{Type: types.UIEventStartGame}
	}

	if s.btnSettings.Update() {
		return types.UIEvent{Type: types.UIEventShowConfig}
	}

	if s.btnQuit.Update() || input.IsEscapePressed() {
		return types.UIEvent{Type: types.UIEventQuit}
	}

	return types.UIEvent{Type: types.UIEventNone}
}

func (s *MenuScreen) Draw(screen *ebiten.Image) {
	screen.Fill(types.ColorBackground)

	fonts := types.GetFonts()
	w, h := s.ctx.Size()

	title := "SNAKE"
	bounds := text.BoundString(fonts.Normal, title)
	x := (w - bounds.Dx()) / 2

	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			text.Draw(screen, title, fonts.Normal, x+dx, 100+dy, types.ColorTextHighlight)
		}
	}
	text.Draw(screen, title, fonts.Normal, x, 100, types.ColorTextHighlight)

	subtitle := "You found the easter egg"
	bounds = text.BoundString(fonts.Normal, subtitle)
	x = (w - bounds.Dx()) / 2
	text.Draw(screen, subtitle, fonts.Normal, x, 130, types.ColorTextDim)

	s.btnPlay.Draw(screen)
	s.btnSettings.Draw(screen)
	s.btnQuit.Draw(screen)

	if s.errorMsg != "" {
		bounds = text.BoundString(fonts.Normal, s.errorMsg)
		text.Draw(screen, s.errorMsg, fonts.Normal, (w-bounds.Dx())/2, h/2+130, types.ColorError)
	} else if s.message != "" {
		bounds = text.BoundString(fonts.Normal, s.message)
		text.Draw(screen, s.message, fonts.Normal, (w-bounds.Dx())/2, h/2+130, types.ColorSuccess)
	}

	hint := "ENTER or Ctrl+G to play, ESC to quit"
	bounds = text.BoundString(fonts.Small, hint)
	x = (w - bounds.Dx()) / 2
	text.Draw(screen, hint, fonts.Small, x, h-30, types.ColorTextDim)
}

func (s *MenuScreen) OnEnter() {}

func (s *MenuScreen) OnExit() {
	s.message = ""
	s.errorMsg = ""
}

func (s *MenuScreen) SetError(err string) {
	s.errorMsg = err
	s.message = ""
}

func (s *MenuScreen) SetMessage(msg string) {
	s.message = msg
	s.errorMsg = ""
}
