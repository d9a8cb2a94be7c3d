package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"snakeegg/internal/domain"
	"snakeegg/internal/engine"

	"github.com/google/uuid"
)

var ErrNoGame = errors.New("no game to restart")

type App struct {
	engine *engine.Engine

	eventCh chan AppEvent
	inputCh chan InputEvent

	mu      sync.RWMutex
	session uuid.UUID
	score   int
	best    int

	// bestAtStart holds the best score seen when each unfinished session
	// started, keyed by session id.
	bestAtStart map[string]int
	surface     engine.Surface
	input       engine.InputSource

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type AppEvent struct {
	Type    AppEventType
	Payload interface{}
}

type AppEventType int

const (
	AppEventGameStarted AppEventType = iota
	AppEventScoreChanged
	AppEventGameOver
	AppEventGameClosed
	AppEventError
)

type StartedPayload struct {
	Session string
	Best    int
}

type ScorePayload struct {
	Score  int
	Best   int
	Length int
}

type GameOverPayload struct {
	Session string
	Score   int
	Best    int
	Length  int
	Reason  domain.Outcome
	NewBest bool
}

type ErrorPayload struct {
	Message string
}

type InputEvent struct {
	Type    InputEventType
	Payload interface{}
}

type InputEventType int

const (
	InputNewGame InputEventType = iota
	InputRestart
	InputClose
	InputSteer
	InputQuit
)

type NewGameParams struct {
	Surface engine.Surface
	Input   engine.InputSource
}

type Config struct {
	Game *domain.GameConfig
	// Manual is passed to the engine; tests drive ticks themselves.
	Manual bool
}

func NewApp(cfg Config) (*App, error) {
	game := cfg.Game
	if game == nil {
		game = domain.DefaultGameConfig()
	}
	if err := game.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create app: %w", err)
	}

	return &App{
		engine:      engine.New(engine.Config{Game: game, Manual: cfg.Manual}),
		eventCh:     make(chan AppEvent, 100),
		inputCh:     make(chan InputEvent, 100),
		bestAtStart: make(map[string]int),
	}, nil
}

func (a *App) Start(ctx context.Context) error {
	a.ctx, a.cancel = context.WithCancel(ctx)

	a.wg.Add(1)
	go a.eventLoop()

	a.wg.Add(1)
	go a.inputLoop()

	log.Println("APP: started")

	return nil
}

func (a *App) Stop() {
	a.engine.End()

	if a.cancel != nil {
		a.cancel()
	}

	a.wg.Wait()
}

func (a *App) Events() <-chan AppEvent {
	return a.eventCh
}

func (a *App) Input() chan<- InputEvent {
	return a.inputCh
}

// Done is closed once the app has been asked to quit or stopped.
func (a *App) Done() <-chan struct{} {
	return a.ctx.Done()
}

func (a *App) Engine() *engine.Engine {
	return a.engine
}

func (a *App) Phase() domain.Phase {
	return a.engine.Phase()
}

func (a *App) GetState() *domain.GameState {
	return a.engine.Snapshot()
}

func (a *App) GameConfig() *domain.GameConfig {
	return a.engine.GameConfig()
}

func (a *App) Configure(cfg *domain.GameConfig) error {
	return a.engine.Configure(cfg)
}

func (a *App) Score() (score, best int) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.score, a.best
}

func (a *App) Session() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.session == uuid.Nil {
		return ""
	}
	return a.session.String()
}

// NewGame starts a game on the given surface and input. They are kept for
// Restart. While a game runs it fails with engine.ErrRunning and changes
// nothing.
func (a *App) NewGame(params NewGameParams) error {
	if a.engine.Phase() == domain.PhaseRunning {
		return fmt.Errorf("failed to start session: %w", engine.ErrRunning)
	}

	a.mu.Lock()
	a.surface = params.Surface
	a.input = params.Input
	a.mu.Unlock()

	return a.startSession(params.Surface, params.Input)
}

func (a *App) Restart() error {
	a.mu.RLock()
	surface, input := a.surface, a.input
	a.mu.RUnlock()

	if surface == nil || input == nil {
		return ErrNoGame
	}
	return a.startSession(surface, input)
}

func (a *App) startSession(surface engine.Surface, input engine.InputSource) error {
	if a.engine.Phase() == domain.PhaseRunning {
		return fmt.Errorf("failed to start session: %w", engine.ErrRunning)
	}

	a.mu.Lock()
	prevSession, prevScore := a.session, a.score
	a.session = uuid.New()
	a.score = 0
	session := a.session.String()
	a.bestAtStart[session] = a.best
	a.mu.Unlock()

	if err := a.engine.StartSession(session, surface, input); err != nil {
		a.mu.Lock()
		delete(a.bestAtStart, session)
		a.session, a.score = prevSession, prevScore
		a.mu.Unlock()
		return fmt.Errorf("failed to start session: %w", err)
	}

	log.Printf("APP: session %s started", session)
	return nil
}

func (a *App) SendSteer(dir domain.Direction) bool {
	return a.engine.SetDirection(dir)
}

func (a *App) CloseGame() {
	a.engine.End()
}

func (a *App) eventLoop() {
	defer a.wg.Done()

	engineEvents := a.engine.Events()

	for {
		select {
		case <-a.ctx.Done():
			return

		case event := <-engineEvents:
			a.handleEngineEvent(event)
		}
	}
}

func (a *App) handleEngineEvent(event engine.Event) {
	switch event.Type {
	case engine.EventStarted:
		a.mu.RLock()
		payload := StartedPayload{Session: event.Session, Best: a.best}
		a.mu.RUnlock()
		a.emit(AppEvent{Type: AppEventGameStarted, Payload: payload})

	case engine.EventScoreChanged:
		p := event.Payload.(engine.ScorePayload)

		a.mu.Lock()
		if event.Session != a.session.String() {
			a.mu.Unlock()
			return
		}
		a.score = p.Score
		if p.Score > a.best {
			a.best = p.Score
		}
		payload := ScorePayload{Score: a.score, Best: a.best, Length: p.Length}
		a.mu.Unlock()

		a.emit(AppEvent{Type: AppEventScoreChanged, Payload: payload})

	case engine.EventGameOver:
		p := event.Payload.(engine.GameOverPayload)

		a.mu.Lock()
		if p.Score > a.best {
			a.best = p.Score
		}
		bestAtStart, ok := a.bestAtStart[event.Session]
		delete(a.bestAtStart, event.Session)
		payload := GameOverPayload{
			Session: event.Session,
			Score:   p.Score,
			Best:    a.best,
			Length:  p.Length,
			Reason:  p.Reason,
			NewBest: ok && p.Score > bestAtStart,
		}
		a.mu.Unlock()

		log.Printf("APP: session %s over: %s, score=%d, best=%d",
			payload.Session, payload.Reason, payload.Score, payload.Best)
		a.emit(AppEvent{Type: AppEventGameOver, Payload: payload})

	case engine.EventClosed:
		a.mu.Lock()
		delete(a.bestAtStart, event.Session)
		a.mu.Unlock()
		a.emit(AppEvent{Type: AppEventGameClosed})
	}
}

func (a *App) emit(event AppEvent) {
	select {
	case a.eventCh <- event:
	case <-a.ctx.Done():
	}
}

func (a *App) inputLoop() {
	defer a.wg.Done()

	for {
		select {
		case <-a.ctx.Done():
			return

		case input := <-a.inputCh:
			a.handleInput(input)
		}
	}
}

func (a *App) handleInput(input InputEvent) {
	switch input.Type {
	case InputNewGame:
		params := input.Payload.(NewGameParams)

		if err := a.NewGame(params); err != nil {
			log.Printf("APP: failed to start game: %v", err)
			a.emit(AppEvent{
				Type:    AppEventError,
				Payload: ErrorPayload{Message: err.Error()},
			})
		}

	case InputRestart:
		if err := a.Restart(); err != nil {
			log.Printf("APP: failed to restart: %v", err)
			a.emit(AppEvent{
				Type:    AppEventError,
				Payload: ErrorPayload{Message: err.Error()},
			})
		}

	case InputClose:
		a.CloseGame()

	case InputSteer:
		dir := input.Payload.(domain.Direction)
		a.SendSteer(dir)

	case InputQuit:
		a.CloseGame()
		a.cancel()
	}
}
