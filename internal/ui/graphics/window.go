package graphics

import (
	"log"

	"snakeegg/internal/domain"
	"snakeegg/internal/ui/graphics/screens"
	"snakeegg/internal/ui/graphics/sound"
	"snakeegg/internal/ui/types"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	DefaultWidth  = 1024
	DefaultHeight = 768
)

// Window is the ebiten frontend. Its screens are only touched from the ebiten
// update goroutine; other goroutines post changes through the Show* and Set*
// methods, which are applied at the start of the next Update.
type Window struct {
	width  int
	height int

	currentScreen types.ScreenType
	screenMap     map[types.ScreenType]types.Screen

	menu     *screens.MenuScreen
	config   *screens.ConfigScreen
	game     *screens.GameScreen
	gameOver *screens.GameOverScreen

	sound *sound.Player

	updates chan func()
	eventCh chan types.UIEvent
	quit    bool
}

func NewWindow(snd *sound.Player) *Window {
	w := &Window{
		width:         DefaultWidth,
		height:        DefaultHeight,
		currentScreen: types.ScreenMenu,
		screenMap:     make(map[types.ScreenType]types.Screen),
		sound:         snd,
		updates:       make(chan func(), 100),
		eventCh:       make(chan types.UIEvent, 100),
	}

	w.menu = screens.NewMenuScreen(w)
	w.config = screens.NewConfigScreen(w)
	w.game = screens.NewGameScreen(w)
	w.gameOver = screens.NewGameOverScreen(w, w.game)

	w.screenMap[types.ScreenMenu] = w.menu
	w.screenMap[types.ScreenConfig] = w.config
	w.screenMap[types.ScreenGame] = w.game
	w.screenMap[types.ScreenGameOver] = w.gameOver

	if snd != nil {
		w.game.SetMuted(snd.Muted())
	}

	return w
}

// Game exposes the game screen, whose canvas and keyboard are handed to the
// engine.
func (w *Window) Game() *screens.GameScreen {
	return w.game
}

func (w *Window) Run() error {
	ebiten.SetWindowSize(w.width, w.height)
	ebiten.SetWindowTitle("Snake")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	return ebiten.RunGame(w)
}

func (w *Window) Update() error {
	if w.quit {
		return ebiten.Termination
	}

	w.width, w.height = ebiten.WindowSize()

	w.applyUpdates()

	screen := w.screenMap[w.currentScreen]
	if screen == nil {
		return nil
	}
	event := screen.Update()

	w.handleEvent(event)

	return nil
}

func (w *Window) Draw(screen *ebiten.Image) {
	currentScreen := w.screenMap[w.currentScreen]
	if currentScreen == nil {
		return
	}

	currentScreen.Draw(screen)
}

func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

func (w *Window) Size() (int, int) {
	return w.width, w.height
}

func (w *Window) Events() <-chan types.UIEvent {
	return w.eventCh
}

func (w *Window) applyUpdates() {
	for {
		select {
		case fn := <-w.updates:
			fn()
		default:
			return
		}
	}
}

func (w *Window) post(fn func()) {
	select {
	case w.updates <- fn:
	default:
		log.Println("WINDOW: update queue full, dropping update")
	}
}

func (w *Window) setScreen(screen types.ScreenType) {
	if w.currentScreen != screen {
		if s := w.screenMap[w.currentScreen]; s != nil {
			s.OnExit()
		}
		w.currentScreen = screen
		if s := w.screenMap[w.currentScreen]; s != nil {
			s.OnEnter()
		}
	}
}

// ShowMenu also drops the last board so the next game does not open on it.
func (w *Window) ShowMenu() {
	w.post(func() {
		w.game.Canvas().Reset()
		w.setScreen(types.ScreenMenu)
	})
}

func (w *Window) ShowGame(session string, best int) {
	w.post(func() {
		w.game.SetSession(session, best)
		w.setScreen(types.ScreenGame)
	})
}

func (w *Window) SetScore(score, best, length int) {
	w.post(func() {
		w.game.SetScore(score, best, length)
		w.playSound(sound.EffectEat)
	})
}

func (w *Window) ShowGameOver(result screens.GameOverResult) {
	w.post(func() {
		w.game.SetScore(result.Score, result.Best, result.Length)
		w.game.SetPhase(domain.PhaseGameOver)
		w.gameOver.SetResult(result)
		w.setScreen(types.ScreenGameOver)
		w.playSound(sound.EffectGameOver)
	})
}

func (w *Window) SetConfig(cfg *domain.GameConfig) {
	cfg = cfg.Copy()
	w.post(func() {
		w.game.SetConfig(cfg)
		w.config.SetConfig(cfg)
	})
}

func (w *Window) SetError(err string) {
	w.post(func() {
		if s, ok := w.screenMap[w.currentScreen].(ErrorSetter); ok {
			s.SetError(err)
		}
	})
}

func (w *Window) SetMessage(msg string) {
	w.post(func() {
		if s, ok := w.screenMap[w.currentScreen].(MessageSetter); ok {
			s.SetMessage(msg)
		}
	})
}

// Close makes Run return after the current frame.
func (w *Window) Close() {
	w.post(func() { w.quit = true })
}

func (w *Window) playSound(effect sound.Effect) {
	if w.sound != nil {
		w.sound.Play(effect)
	}
}

func (w *Window) handleEvent(event types.UIEvent) {
	switch event.Type {
	case types.UIEventNone:
		return

	case types.UIEventShowMenu:
		w.setScreen(types.ScreenMenu)

	case types.UIEventShowConfig:
		w.setScreen(types.ScreenConfig)

	case types.UIEventToggleSound:
		if w.sound != nil {
			muted := w.sound.Toggle()
			w.game.SetMuted(muted)
			log.Printf("WINDOW: sound muted=%v", muted)
		}

	default:
		w.send(event)
	}
}

func (w *Window) send(event types.UIEvent) {
	select {
	case w.eventCh <- event:
	default:
		log.Println("WINDOW: event channel full, dropping event")
	}
}

type ErrorSetter interface {
	SetError(err string)
}

type MessageSetter interface {
	SetMessage(msg string)
}
