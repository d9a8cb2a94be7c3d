package engine

import (
	"errors"
	"image/color"
	"sync"
	"testing"
	"time"

	"snakeegg/internal/domain"
)

type rect struct {
	x, y, w, h int
	c          color.Color
}

type recordingSurface struct {
	mu      sync.Mutex
	clears  int
	flushes int
	rects   []rect
}

func (s *recordingSurface) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clears++
	s.rects = s.rects[:0]
}

func (s *recordingSurface) FillRect(x, y, w, h int, c color.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rects = append(s.rects, rect{x, y, w, h, c})
}

func (s *recordingSurface) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushes++
}

func (s *recordingSurface) clearCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clears
}

func newFakeInput() *Listeners {
	return &Listeners{}
}

func newManualEngine(t *testing.T) (*Engine, *recordingSurface, *Listeners) {
	t.Helper()
	cfg := domain.DefaultGameConfig()
	cfg.Seed = 1
	e := New(Config{Game: cfg, Manual: true})
	surface := &recordingSurface{}
	input := newFakeInput()

	if err := e.Start(surface, input); err != nil {
		t.Fatalf("start: %v", err)
	}

	e.mu.Lock()
	e.state.Food = domain.Coord{X: 0, Y: 0}
	e.mu.Unlock()

	return e, surface, input
}

func waitEvent(t *testing.T, e *Engine, want EventType) Event {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case ev := <-e.Events():
			if ev.Type == want {
				return ev
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s", want)
		}
	}
}

func TestStartRequiresSurfaceAndInput(t *testing.T) {
	e := New(Config{Manual: true})

	if err := e.Start(nil, newFakeInput()); !errors.Is(err, ErrNoSurface) {
		t.Errorf("expected ErrNoSurface, got %v", err)
	}
	if err := e.Start(&recordingSurface{}, nil); !errors.Is(err, ErrNoInput) {
		t.Errorf("expected ErrNoInput, got %v", err)
	}
	if e.Phase() != domain.PhaseIdle {
		t.Errorf("expected idle, got %s", e.Phase())
	}
	if e.Snapshot() != nil {
		t.Error("failed start must not create a board")
	}
}

func TestStartInitialState(t *testing.T) {
	e, surface, input := newManualEngine(t)

	if e.Phase() != domain.PhaseRunning {
		t.Fatalf("expected running, got %s", e.Phase())
	}
	ev := waitEvent(t, e, EventStarted)
	if p, ok := ev.Payload.(ScorePayload); !ok || p.Score != 0 {
		t.Errorf("unexpected start payload %#v", ev.Payload)
	}

	snap := e.Snapshot()
	if !snap.Snake.Head().Equals(domain.Coord{X: 10, Y: 10}) || snap.Snake.Len() != 1 {
		t.Errorf("unexpected snake %v", snap.Snake.Cells)
	}
	if snap.Direction != domain.DirectionNone || snap.Score != 0 {
		t.Errorf("expected no direction and zero score, got %s / %d", snap.Direction, snap.Score)
	}
	if input.Len() != 1 {
		t.Errorf("expected one listener, got %d", input.Len())
	}
	if surface.clearCount() != 1 || surface.flushes != 1 {
		t.Errorf("expected one drawn frame, got %d clears, %d flushes", surface.clears, surface.flushes)
	}

	// Head cell sits inside its 20px cell with a 1px inset.
	head := surface.rects[0]
	if head.x != 201 || head.y != 201 || head.w != 18 || head.h != 18 {
		t.Errorf("unexpected head rect %+v", head)
	}
}

func TestStartWhileRunning(t *testing.T) {
	e, surface, input := newManualEngine(t)

	if err := e.Start(surface, input); !errors.Is(err, ErrRunning) {
		t.Errorf("expected ErrRunning, got %v", err)
	}
}

func TestTickWithoutDirectionRedrawsOnly(t *testing.T) {
	e, surface, _ := newManualEngine(t)
	before := surface.clearCount()

	res := e.Tick()
	if res == nil || res.Outcome != domain.OutcomeWaiting {
		t.Fatalf("expected waiting, got %+v", res)
	}
	if surface.clearCount() != before+1 {
		t.Error("tick without direction must still redraw")
	}
	if !e.Snapshot().Snake.Head().Equals(domain.Coord{X: 10, Y: 10}) {
		t.Error("snake moved without direction")
	}
}

func TestMoveRightThreeTicks(t *testing.T) {
	e, _, input := newManualEngine(t)

	input.Press(domain.DirectionRight)
	for i := 0; i < 3; i++ {
		e.Tick()
	}

	snap := e.Snapshot()
	if !snap.Snake.Head().Equals(domain.Coord{X: 13, Y: 10}) {
		t.Errorf("expected head (13,10), got %s", snap.Snake.Head())
	}
	if snap.Snake.Len() != 1 || snap.Score != 0 {
		t.Errorf("expected length 1 score 0, got %d / %d", snap.Snake.Len(), snap.Score)
	}
}

func TestEatingEmitsScore(t *testing.T) {
	e, _, input := newManualEngine(t)
	e.mu.Lock()
	e.state.Food = domain.Coord{X: 11, Y: 10}
	e.mu.Unlock()

	input.Press(domain.DirectionRight)
	res := e.Tick()
	if res.Outcome != domain.OutcomeAte {
		t.Fatalf("expected ate, got %s", res.Outcome)
	}

	ev := waitEvent(t, e, EventScoreChanged)
	if p := ev.Payload.(ScorePayload); p.Score != 10 {
		t.Errorf("expected score 10, got %d", p.Score)
	}

	snap := e.Snapshot()
	if snap.Snake.Len() != 2 {
		t.Errorf("expected length 2, got %d", snap.Snake.Len())
	}
	if snap.Snake.Contains(snap.Food) {
		t.Errorf("food %s on snake", snap.Food)
	}
}

func TestWallCollisionEndsGame(t *testing.T) {
	e, _, input := newManualEngine(t)
	e.mu.Lock()
	e.state.Snake = domain.NewSnake(domain.Coord{X: 19, Y: 10})
	e.mu.Unlock()

	input.Press(domain.DirectionRight)
	res := e.Tick()
	if res.Outcome != domain.OutcomeHitWall {
		t.Fatalf("expected hit wall, got %s", res.Outcome)
	}
	if e.Phase() != domain.PhaseGameOver {
		t.Fatalf("expected game over, got %s", e.Phase())
	}

	ev := waitEvent(t, e, EventGameOver)
	p := ev.Payload.(GameOverPayload)
	if p.Reason != domain.OutcomeHitWall || p.Length != 1 {
		t.Errorf("unexpected payload %+v", p)
	}

	if e.Tick() != nil {
		t.Error("tick after game over must do nothing")
	}
	if e.SetDirection(domain.DirectionUp) {
		t.Error("steering after game over must be ignored")
	}
}

func TestUpThenDownInOneTickWindow(t *testing.T) {
	e, _, input := newManualEngine(t)
	input.Press(domain.DirectionRight)
	e.Tick()

	if !e.SetDirection(domain.DirectionUp) {
		t.Fatal("up rejected")
	}
	if e.SetDirection(domain.DirectionDown) {
		t.Fatal("down accepted in the same tick window")
	}
	e.Tick()

	snap := e.Snapshot()
	if snap.Direction != domain.DirectionUp || !snap.Snake.Head().Equals(domain.Coord{X: 11, Y: 9}) {
		t.Errorf("expected to continue up to (11,9), got %s at %s", snap.Direction, snap.Snake.Head())
	}
}

func TestEndReleasesEverything(t *testing.T) {
	e, _, input := newManualEngine(t)

	e.End()

	if e.Phase() != domain.PhaseIdle {
		t.Errorf("expected idle, got %s", e.Phase())
	}
	if input.Len() != 0 {
		t.Errorf("listener still registered")
	}
	waitEvent(t, e, EventClosed)

	input.Press(domain.DirectionLeft)
	if e.Tick() != nil {
		t.Error("tick after end must do nothing")
	}

	// A second End is a no-op.
	e.End()
}

func TestRestartFromGameOver(t *testing.T) {
	e, surface, input := newManualEngine(t)
	e.mu.Lock()
	e.state.Snake = domain.NewSnake(domain.Coord{X: 0, Y: 0})
	e.state.Food = domain.Coord{X: 5, Y: 5}
	e.mu.Unlock()

	input.Press(domain.DirectionUp)
	e.Tick()
	if e.Phase() != domain.PhaseGameOver {
		t.Fatalf("expected game over, got %s", e.Phase())
	}

	if err := e.Start(surface, input); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if input.Len() != 1 {
		t.Errorf("expected exactly one listener after restart, got %d", input.Len())
	}
	snap := e.Snapshot()
	if snap.Score != 0 || !snap.Snake.Head().Equals(domain.Coord{X: 10, Y: 10}) {
		t.Errorf("restart did not reset the board: %v score %d", snap.Snake.Cells, snap.Score)
	}
}

func TestConfigure(t *testing.T) {
	e := New(Config{Manual: true})

	bad := domain.DefaultGameConfig()
	bad.Width = 1
	if err := e.Configure(bad); !errors.Is(err, domain.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}

	small := domain.DefaultGameConfig()
	small.Width, small.Height = 10, 10
	small.Centre()
	if err := e.Configure(small); err != nil {
		t.Fatalf("configure: %v", err)
	}
	if err := e.Start(&recordingSurface{}, newFakeInput()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if got := e.Snapshot().Field.Width; got != 10 {
		t.Errorf("expected width 10, got %d", got)
	}
	if err := e.Configure(small); !errors.Is(err, ErrRunning) {
		t.Errorf("expected ErrRunning while running, got %v", err)
	}
}

func TestTickLoopRunsIntoWall(t *testing.T) {
	cfg := domain.DefaultGameConfig()
	cfg.TickDelayMs = 30
	cfg.Seed = 3
	e := New(Config{Game: cfg})
	input := newFakeInput()

	if err := e.Start(&recordingSurface{}, input); err != nil {
		t.Fatalf("start: %v", err)
	}
	input.Press(domain.DirectionRight)

	ev := waitEvent(t, e, EventGameOver)
	if p := ev.Payload.(GameOverPayload); p.Reason != domain.OutcomeHitWall {
		t.Errorf("expected wall, got %s", p.Reason)
	}
	if e.Phase() != domain.PhaseGameOver {
		t.Errorf("expected game over, got %s", e.Phase())
	}
	e.End()
}

func TestEndStopsTickLoop(t *testing.T) {
	cfg := domain.DefaultGameConfig()
	cfg.TickDelayMs = 30
	e := New(Config{Game: cfg})
	surface := &recordingSurface{}
	input := newFakeInput()

	if err := e.Start(surface, input); err != nil {
		t.Fatalf("start: %v", err)
	}

	time.Sleep(100 * time.Millisecond)
	e.End()
	frames := surface.clearCount()
	if frames < 2 {
		t.Errorf("expected the loop to redraw while waiting for input, got %d frames", frames)
	}

	time.Sleep(100 * time.Millisecond)
	if got := surface.clearCount(); got != frames {
		t.Errorf("loop kept ticking after End: %d -> %d frames", frames, got)
	}
	if input.Len() != 0 {
		t.Error("listener still registered after End")
	}
}

func TestEventsCarryTheirSession(t *testing.T) {
	cfg := domain.DefaultGameConfig()
	cfg.Seed = 1
	e := New(Config{Game: cfg, Manual: true})
	surface := &recordingSurface{}
	input := newFakeInput()

	if err := e.StartSession("first", surface, input); err != nil {
		t.Fatalf("start: %v", err)
	}
	if ev := waitEvent(t, e, EventStarted); ev.Session != "first" {
		t.Errorf("started session = %q, want first", ev.Session)
	}

	e.mu.Lock()
	e.state.Food = domain.Coord{X: 11, Y: 10}
	e.mu.Unlock()
	input.Press(domain.DirectionRight)
	e.Tick()

	ev := waitEvent(t, e, EventScoreChanged)
	if p := ev.Payload.(ScorePayload); ev.Session != "first" || p.Length != 2 {
		t.Errorf("score event %+v, want session first and length 2", ev)
	}

	input.Press(domain.DirectionUp)
	for i := 0; i < 20 && e.Phase() == domain.PhaseRunning; i++ {
		e.Tick()
	}
	if e.Phase() != domain.PhaseGameOver {
		t.Fatalf("expected game over, got %s", e.Phase())
	}

	// Restart before anyone reads the game over event.
	if err := e.StartSession("second", surface, input); err != nil {
		t.Fatalf("restart: %v", err)
	}

	if ev := waitEvent(t, e, EventGameOver); ev.Session != "first" {
		t.Errorf("game over session = %q, want first", ev.Session)
	}
	if ev := waitEvent(t, e, EventStarted); ev.Session != "second" {
		t.Errorf("second start session = %q, want second", ev.Session)
	}

	e.End()
	if ev := waitEvent(t, e, EventClosed); ev.Session != "second" {
		t.Errorf("closed session = %q, want second", ev.Session)
	}
}
