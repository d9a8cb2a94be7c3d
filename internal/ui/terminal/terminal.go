package terminal

import (
	"context"
	"fmt"
	"log"

	"snakeegg/internal/app"
	"snakeegg/internal/domain"

	"github.com/gdamore/tcell/v2"
)

// Beeper plays the game's sound effects.
type Beeper interface {
	Eat()
	GameOver()
}

// Terminal runs one game session after another on a tcell screen until the
// player quits.
type Terminal struct {
	screen   tcell.Screen
	app      *app.App
	canvas   *Canvas
	keyboard *Keyboard
	beeper   Beeper
}

// New builds the frontend. beeper may be nil.
func New(screen tcell.Screen, application *app.App, beeper Beeper) *Terminal {
	return &Terminal{
		screen:   screen,
		app:      application,
		canvas:   NewCanvas(screen, application.GameConfig()),
		keyboard: NewKeyboard(),
		beeper:   beeper,
	}
}

func (t *Terminal) Canvas() *Canvas {
	return t.canvas
}

func (t *Terminal) Keyboard() *Keyboard {
	return t.keyboard
}

// Run starts a game and serves keys and app events until the player quits or
// ctx is done. The screen is finalized by the caller.
func (t *Terminal) Run(ctx context.Context) error {
	t.screen.HideCursor()
	t.screen.Clear()

	if err := t.app.NewGame(app.NewGameParams{Surface: t.canvas, Input: t.keyboard}); err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	keys := make(chan *tcell.EventKey, 16)
	quit := make(chan struct{})
	defer close(quit)
	go t.pollKeys(keys, quit)

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-t.app.Done():
			return nil

		case ev := <-keys:
			if !t.handleKey(ev) {
				t.app.CloseGame()
				return nil
			}

		case event := <-t.app.Events():
			t.handleAppEvent(event)
		}
	}
}

func (t *Terminal) pollKeys(keys chan<- *tcell.EventKey, quit <-chan struct{}) {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}

		switch ev := ev.(type) {
		case *tcell.EventKey:
			select {
			case keys <- ev:
			case <-quit:
				return
			}
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

// handleKey reports false when the player asked to quit.
func (t *Terminal) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	}

	if ev.Key() == tcell.KeyRune {
		if ev.Modifiers()&tcell.ModCtrl != 0 && (ev.Rune() == 'c' || ev.Rune() == 'C') {
			return false
		}

		switch ev.Rune() {
		case 'q', 'Q':
			return false
		case 'r', 'R':
			if t.app.Phase() != domain.PhaseRunning {
				if err := t.app.Restart(); err != nil {
					log.Printf("TERMINAL: restart failed: %v", err)
					t.canvas.SetStatus("restart failed: " + err.Error())
				}
			}
			return true
		}
	}

	if dir := KeyDirection(ev); dir != domain.DirectionNone {
		t.keyboard.Press(dir)
	}
	return true
}

func (t *Terminal) handleAppEvent(event app.AppEvent) {
	switch event.Type {
	case app.AppEventGameStarted:
		p := event.Payload.(app.StartedPayload)
		t.canvas.SetStatus(StatusLine(domain.PhaseRunning, 0, p.Best))

	case app.AppEventScoreChanged:
		p := event.Payload.(app.ScorePayload)
		t.canvas.SetStatus(StatusLine(domain.PhaseRunning, p.Score, p.Best))
		if t.beeper != nil {
			t.beeper.Eat()
		}

	case app.AppEventGameOver:
		p := event.Payload.(app.GameOverPayload)
		status := fmt.Sprintf("Score: %d  Best: %d  [game over: %s]  r: restart, q: quit",
			p.Score, p.Best, p.Reason)
		if p.NewBest {
			status += "  new best!"
		}
		t.canvas.SetStatus(status)
		if t.beeper != nil {
			t.beeper.GameOver()
		}

	case app.AppEventError:
		p := event.Payload.(app.ErrorPayload)
		t.canvas.SetStatus("error: " + p.Message)
	}
}

func StatusLine(phase domain.Phase, score, best int) string {
	return fmt.Sprintf("Score: %d  Best: %d  [%s]  arrows/WASD, q: quit", score, best, phase)
}
