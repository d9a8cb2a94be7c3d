package screens

import (
	"fmt"
	"image/color"

	"snakeegg/internal/domain"
	"snakeegg/internal/ui/graphics/components"
	"snakeegg/internal/ui/graphics/input"
	"snakeegg/internal/ui/types"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
)

type GameOverResult struct {
	Score   int
	Best    int
	Length  int
	Reason  domain.Outcome
	NewBest bool
}

// GameOverScreen draws the final board dimmed with the result on top.
type GameOverScreen struct {
	ctx  types.ScreenContext
	game *GameScreen

	result GameOverResult

	btnAgain *components.Button
	btnClose *components.Button

	errorMsg string
}

func NewGameOverScreen(ctx types.ScreenContext, game *GameScreen) *GameOverScreen {
	return &GameOverScreen{
		ctx:      ctx,
		game:     game,
		btnAgain: components.NewButton(0, 0, 160, 45, "Play Again"),
		btnClose: components.NewButton(0, 0, 160, 45, "Close"),
	}
}

func (s *GameOverScreen) SetResult(result GameOverResult) {
	s.result = result
	s.errorMsg = ""
}

func (s *GameOverScreen) Update() types.UIEvent {
	w, h := s.ctx.Size()
	centerX := w / 2
	centerY := h / 2

	s.btnAgain.SetPosition(centerX-170, centerY+50)
	s.btnClose.SetPosition(centerX+10, centerY+50)

	if s.btnAgain.Update() || input.IsEnterPressed() {
		return types.UIEvent{Type: types.UIEventRestartGame}
	}

	if s.btnClose.Update() || input.IsEscapePressed() {
		return types.UIEvent{Type: types.UIEventCloseGame}
	}

	return types.UIEvent{Type: types.UIEventNone}
}

func (s *GameOverScreen) Draw(screen *ebiten.Image) {
	s.game.DrawBoard(screen)

	fonts := types.GetFonts()
	w, h := s.ctx.Size()
	centerY := h / 2

	type line struct {
		text  string
		color color.Color
	}

	lines := []line{
		{"GAME OVER", types.ColorError},
		{s.result.Reason.String(), types.ColorTextDim},
		{fmt.Sprintf("Score: %d   Length: %d", s.result.Score, s.result.Length), types.ColorText},
		{fmt.Sprintf("Best: %d", s.result.Best), types.ColorTextHighlight},
	}
	if s.result.NewBest {
		lines = append(lines, line{"New best!", types.ColorSuccess})
	}

	y := centerY - 90
	for _, l := range lines {
		bounds := text.BoundString(fonts.Normal, l.text)
		text.Draw(screen, l.text, fonts.Normal, (w-bounds.Dx())/2, y, l.color)
		y += 22
	}

	s.btnAgain.Draw(screen)
	s.btnClose.Draw(screen)

	if s.errorMsg != "" {
		bounds := text.BoundString(fonts.Normal, s.errorMsg)
		text.Draw(screen, s.errorMsg, fonts.Normal, (w-bounds.Dx())/2, centerY+130, types.ColorError)
	}

	hint := "ENTER to play again, ESC to close"
	bounds := text.BoundString(fonts.Small, hint)
	text.Draw(screen, hint, fonts.Small, (w-bounds.Dx())/2, h-30, types.ColorTextDim)
}

func (s *GameOverScreen) OnEnter() {}

func (s *GameOverScreen) OnExit() {}

func (s *GameOverScreen) SetError(err string) {
	s.errorMsg = err
}
