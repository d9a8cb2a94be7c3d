package screens

import (
	"fmt"

	"snakeegg/internal/domain"
	"snakeegg/internal/render"
	"snakeegg/internal/ui/graphics/components"
	"snakeegg/internal/ui/graphics/input"
	"snakeegg/internal/ui/types"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
)

// GameScreen shows the running board. It owns the canvas the engine paints
// into and the keyboard the engine listens to.
type GameScreen struct {
	ctx types.ScreenContext

	fieldRenderer *components.FieldRenderer
	scorePanel    *components.ScorePanel
	dpad          *components.DPad
	keyboard      *input.KeyboardHandler
	canvas        *render.Canvas

	config  *domain.GameConfig
	field   *domain.Field
	session string
	score   int
	best    int
	length  int
	phase   domain.Phase
	muted   bool

	message  string
	errorMsg string
}

func NewGameScreen(ctx types.ScreenContext) *GameScreen {
	s := &GameScreen{
		ctx:           ctx,
		fieldRenderer: components.NewFieldRenderer(),
		scorePanel:    components.NewScorePanel(0, 0, 230, 220),
		dpad:          components.NewDPad(48),
		keyboard:      input.NewKeyboardHandler(),
		canvas:        render.NewCanvas(),
		phase:         domain.PhaseIdle,
	}
	s.SetConfig(domain.DefaultGameConfig())
	return s
}

func (s *GameScreen) Canvas() *render.Canvas {
	return s.canvas
}

func (s *GameScreen) Keyboard() *input.KeyboardHandler {
	return s.keyboard
}

func (s *GameScreen) SetConfig(cfg *domain.GameConfig) {
	s.config = cfg.Copy()
	s.field = domain.NewField(cfg.Width, cfg.Height)
}

func (s *GameScreen) SetSession(session string, best int) {
	s.session = session
	s.score = 0
	s.best = best
	s.length = 1
	s.phase = domain.PhaseRunning
	s.errorMsg = ""
	s.message = ""
}

func (s *GameScreen) SetScore(score, best, length int) {
	s.score = score
	s.best = best
	s.length = length
}

func (s *GameScreen) SetPhase(phase domain.Phase) {
	s.phase = phase
}

func (s *GameScreen) SetMuted(muted bool) {
	s.muted = muted
}

func (s *GameScreen) Update() types.UIEvent {
	if input.IsEscapePressed() {
		return types.UIEvent{Type: types.UIEventCloseGame}
	}

	if input.IsMuteTogglePressed() {
		return types.UIEvent{Type: types.UIEventToggleSound}
	}

	s.keyboard.Update()

	if dir := s.dpad.Update(); dir != domain.DirectionNone {
		s.keyboard.Press(dir)
	}

	return types.UIEvent{Type: types.UIEventNone}
}

func (s *GameScreen) Draw(screen *ebiten.Image) {
	screen.Fill(types.ColorBackground)

	w, h := s.ctx.Size()

	s.fieldRenderer.CalculateLayout(w, h, s.field)
	s.fieldRenderer.DrawField(screen, s.field)
	s.fieldRenderer.DrawFrame(screen, s.canvas.Frame(), s.config.CellPitch)

	s.scorePanel.X = w - 250
	s.scorePanel.Y = 60
	s.scorePanel.Draw(screen, s.rows())

	s.dpad.SetPosition(w-250+(230-s.dpad.Width())/2, s.scorePanel.Y+s.scorePanel.Height+30)
	s.dpad.Draw(screen)

	s.drawHeader(screen, w)
	s.drawFooter(screen, w, h)
}

func (s *GameScreen) rows() []components.ScoreRow {
	sound := "on"
	if s.muted {
		sound = "off"
	}

	return []components.ScoreRow{
		{Label: "Score", Value: fmt.Sprintf("%d", s.score), Highlight: true},
		components.IntRow("Best", s.best),
		components.IntRow("Length", s.length),
		{Label: "Phase", Value: s.phase.String()},
		{Label: "Speed", Value: s.config.TickDelay().String()},
		{Label: "Sound", Value: sound},
	}
}

func (s *GameScreen) drawHeader(screen *ebiten.Image, w int) {
	fonts := types.GetFonts()

	text.Draw(screen, "SNAKE", fonts.Normal, 20, 30, types.ColorTextHighlight)

	info := fmt.Sprintf("%dx%d  |  Frame #%d", s.field.Width, s.field.Height, s.canvas.Frame().Serial)
	text.Draw(screen, info, fonts.Normal, 90, 30, types.ColorText)

	scoreText := fmt.Sprintf("Score: %d", s.score)
	bounds := text.BoundString(fonts.Normal, scoreText)
	text.Draw(screen, scoreText, fonts.Normal, w-bounds.Dx()-20, 30, types.ColorTextHighlight)
}

func (s *GameScreen) drawFooter(screen *ebiten.Image, w, h int) {
	fonts := types.GetFonts()

	hint := "W/A/S/D or Arrows to move  |  M to mute  |  ESC to close"
	text.Draw(screen, hint, fonts.Small, 20, h-15, types.ColorTextDim)

	if s.errorMsg != "" {
		bounds := text.BoundString(fonts.Normal, s.errorMsg)
		text.Draw(screen, s.errorMsg, fonts.Normal, w-bounds.Dx()-20, h-15, types.ColorError)
	} else if s.message != "" {
		bounds := text.BoundString(fonts.Normal, s.message)
		text.Draw(screen, s.message, fonts.Normal, w-bounds.Dx()-20, h-15, types.ColorSuccess)
	}
}

// DrawBoard paints only the board, used as the backdrop of the game over
// screen.
func (s *GameScreen) DrawBoard(screen *ebiten.Image) {
	w, h := s.ctx.Size()
	screen.Fill(types.ColorBackground)
	s.fieldRenderer.CalculateLayout(w, h, s.field)
	s.fieldRenderer.DrawField(screen, s.field)
	s.fieldRenderer.DrawFrame(screen, s.canvas.Frame(), s.config.CellPitch)
	s.fieldRenderer.DrawOverlay(screen, s.field, types.ColorOverlay)
}

func (s *GameScreen) OnEnter() {}

func (s *GameScreen) OnExit() {}

func (s *GameScreen) SetError(err string) {
	s.errorMsg = err
	s.message = ""
}

func (s *GameScreen) SetMessage(msg string) {
	s.message = msg
	s.errorMsg = ""
}
