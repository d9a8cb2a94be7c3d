package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"snakeegg/internal/domain"
)

var (
	ErrNoSurface = errors.New("no drawing surface")
	ErrNoInput   = errors.New("no input source")
	ErrRunning   = errors.New("game already running")
)

type Config struct {
	Game    *domain.GameConfig
	Palette Palette
	// Manual disables the tick loop; the caller drives Tick itself.
	Manual      bool
	EventBuffer int
}

// Engine runs one Snake game at a time. Start, End and Configure must not be
// called concurrently with each other; SetDirection and Tick are safe from any
// goroutine.
type Engine struct {
	config Config

	// lifeMu serializes Start, End and Configure.
	lifeMu sync.Mutex

	mu       sync.Mutex
	phase    domain.Phase
	session  string
	state    *domain.GameState
	surface  Surface
	unlisten func()
	cancel   context.CancelFunc
	loopDone chan struct{}

	eventCh chan Event
}

func New(cfg Config) *Engine {
	if cfg.Game == nil {
		cfg.Game = domain.DefaultGameConfig()
	} else {
		cfg.Game = cfg.Game.Copy()
	}
	if cfg.Palette == (Palette{}) {
		cfg.Palette = DefaultPalette()
	}
	if cfg.EventBuffer <= 0 {
		cfg.EventBuffer = 64
	}

	return &Engine{
		config:  cfg,
		phase:   domain.PhaseIdle,
		eventCh: make(chan Event, cfg.EventBuffer),
	}
}

func (e *Engine) Events() <-chan Event {
	return e.eventCh
}

func (e *Engine) Phase() domain.Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

// Snapshot returns a copy of the current board, or nil when no game exists.
func (e *Engine) Snapshot() *domain.GameState {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == nil {
		return nil
	}
	return e.state.Copy()
}

func (e *Engine) GameConfig() *domain.GameConfig {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.config.Game.Copy()
}

// Configure replaces the game config used by the next Start.
func (e *Engine) Configure(cfg *domain.GameConfig) error {
	e.lifeMu.Lock()
	defer e.lifeMu.Unlock()

	if err := cfg.Validate(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase == domain.PhaseRunning {
		return ErrRunning
	}
	e.config.Game = cfg.Copy()
	return nil
}

// Start begins a fresh untagged game. See StartSession.
func (e *Engine) Start(surface Surface, input InputSource) error {
	return e.StartSession("", surface, input)
}

// StartSession begins a fresh game whose events carry session. Starting from
// GameOver releases the finished game first. On error the engine is left
// Idle, or Running when a game is already running.
func (e *Engine) StartSession(session string, surface Surface, input InputSource) error {
	e.lifeMu.Lock()
	defer e.lifeMu.Unlock()

	if surface == nil {
		return ErrNoSurface
	}
	if input == nil {
		return ErrNoInput
	}

	e.mu.Lock()
	if e.phase == domain.PhaseRunning {
		e.mu.Unlock()
		return ErrRunning
	}
	gameCfg := e.config.Game
	e.mu.Unlock()

	e.release()

	if err := gameCfg.Validate(); err != nil {
		e.mu.Lock()
		e.phase = domain.PhaseIdle
		e.mu.Unlock()
		return fmt.Errorf("failed to start game: %w", err)
	}

	unlisten := input.Listen(func(d domain.Direction) {
		e.SetDirection(d)
	})

	e.mu.Lock()
	e.state = domain.NewGameState(gameCfg)
	e.session = session
	e.surface = surface
	e.unlisten = unlisten
	e.phase = domain.PhaseRunning
	draw(e.surface, e.state, e.config.Palette)

	if !e.config.Manual {
		ctx, cancel := context.WithCancel(context.Background())
		e.cancel = cancel
		e.loopDone = make(chan struct{})
		go e.tickLoop(ctx, e.loopDone, gameCfg.TickDelay())
	}
	food := e.state.Food
	e.mu.Unlock()

	log.Printf("ENGINE: started %dx%d, delay=%v, food at %s",
		gameCfg.Width, gameCfg.Height, gameCfg.TickDelay(), food)

	e.emit(Event{Type: EventStarted, Session: session, Payload: ScorePayload{Score: 0, Length: 1}})
	return nil
}

// SetDirection buffers d for the next tick. It reports whether d was taken.
func (e *Engine) SetDirection(d domain.Direction) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != domain.PhaseRunning {
		return false
	}
	return e.state.Steer(d)
}

// Tick performs one simulation step. It returns nil unless a game is running.
func (e *Engine) Tick() *domain.TickResult {
	e.mu.Lock()

	if e.phase != domain.PhaseRunning {
		e.mu.Unlock()
		return nil
	}

	result := e.state.Tick()

	var events []Event
	if result.ScoreDelta > 0 {
		events = append(events, Event{
			Type:    EventScoreChanged,
			Session: e.session,
			Payload: ScorePayload{Score: e.state.Score, Length: e.state.Snake.Len()},
		})
	}

	if result.Outcome != domain.OutcomeHitWall && result.Outcome != domain.OutcomeHitSelf {
		draw(e.surface, e.state, e.config.Palette)
	}

	if result.Outcome.Fatal() {
		e.phase = domain.PhaseGameOver
		payload := GameOverPayload{
			Score:  e.state.Score,
			Length: e.state.Snake.Len(),
			Reason: result.Outcome,
		}
		events = append(events, Event{Type: EventGameOver, Session: e.session, Payload: payload})
		log.Printf("ENGINE: game over (%s) at %s, score=%d, length=%d",
			result.Outcome, result.Head, payload.Score, payload.Length)
	}
	e.mu.Unlock()

	for _, ev := range events {
		e.emit(ev)
	}

	return result
}

// End stops the game. When End returns no further tick runs and the input
// listener is gone.
func (e *Engine) End() {
	e.lifeMu.Lock()
	defer e.lifeMu.Unlock()

	e.mu.Lock()
	wasActive := e.phase != domain.PhaseIdle
	session := e.session
	e.phase = domain.PhaseIdle
	e.mu.Unlock()

	e.release()

	if wasActive {
		log.Println("ENGINE: closed")
		e.emit(Event{Type: EventClosed, Session: session})
	}
}

// release stops the loop and drops the listener of the previous game.
// Callers hold lifeMu.
func (e *Engine) release() {
	e.mu.Lock()
	cancel := e.cancel
	done := e.loopDone
	unlisten := e.unlisten
	e.cancel = nil
	e.loopDone = nil
	e.unlisten = nil
	e.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if unlisten != nil {
		unlisten()
	}
	if done != nil {
		<-done
	}
}

// tickLoop waits the full delay after each completed tick, so slow frames
// stretch the interval instead of queuing ticks.
func (e *Engine) tickLoop(ctx context.Context, done chan struct{}, delay time.Duration) {
	defer close(done)

	timer := time.NewTimer(delay)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		if ctx.Err() != nil {
			return
		}

		result := e.Tick()
		if result == nil || result.Outcome.Fatal() {
			return
		}

		timer.Reset(delay)
	}
}

func (e *Engine) emit(ev Event) {
	select {
	case e.eventCh <- ev:
	default:
		log.Printf("ENGINE: event channel full, dropping %s", ev.Type)
	}
}
