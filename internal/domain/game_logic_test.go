package domain

import (
	"errors"
	"testing"

	"golang.org/x/exp/rand"
)

func newTestState(t *testing.T) *GameState {
	t.Helper()
	cfg := DefaultGameConfig()
	cfg.Seed = 42
	gs := NewGameState(cfg)
	gs.Food = Coord{0, 0}
	return gs
}

func assertUniqueCells(t *testing.T, s *Snake) {
	t.Helper()
	seen := make(map[Coord]bool, s.Len())
	for _, c := range s.Cells {
		if seen[c] {
			t.Fatalf("duplicate snake cell %s in %v", c, s.Cells)
		}
		seen[c] = true
	}
}

func TestNewGameState(t *testing.T) {
	cfg := DefaultGameConfig()
	cfg.Seed = 7
	gs := NewGameState(cfg)

	if gs.Snake.Len() != 1 || !gs.Snake.Head().Equals(Coord{10, 10}) {
		t.Fatalf("expected single head at (10,10), got %v", gs.Snake.Cells)
	}
	if gs.Direction != DirectionNone {
		t.Errorf("expected no direction, got %s", gs.Direction)
	}
	if gs.Score != 0 {
		t.Errorf("expected score 0, got %d", gs.Score)
	}
	if gs.Snake.Contains(gs.Food) || !gs.Field.Contains(gs.Food) {
		t.Errorf("food %s must be on a free in-bounds cell", gs.Food)
	}
}

func TestTickWithoutDirectionDoesNotMove(t *testing.T) {
	gs := newTestState(t)

	for i := 0; i < 5; i++ {
		res := gs.Tick()
		if res.Outcome != OutcomeWaiting {
			t.Fatalf("tick %d: expected waiting, got %s", i, res.Outcome)
		}
	}
	if !gs.Snake.Head().Equals(Coord{10, 10}) {
		t.Errorf("snake moved without input: %v", gs.Snake.Cells)
	}
	if gs.StateOrder != 5 {
		t.Errorf("expected state order 5, got %d", gs.StateOrder)
	}
}

func TestTickMovesRightThreeCells(t *testing.T) {
	gs := newTestState(t)

	if !gs.Steer(DirectionRight) {
		t.Fatal("steer right rejected")
	}
	for i := 0; i < 3; i++ {
		if res := gs.Tick(); res.Outcome != OutcomeMoved {
			t.Fatalf("tick %d: expected moved, got %s", i, res.Outcome)
		}
	}

	if !gs.Snake.Head().Equals(Coord{13, 10}) {
		t.Errorf("expected head (13,10), got %s", gs.Snake.Head())
	}
	if gs.Snake.Len() != 1 {
		t.Errorf("expected length 1, got %d", gs.Snake.Len())
	}
	if gs.Score != 0 {
		t.Errorf("expected score 0, got %d", gs.Score)
	}
}

func TestTickWallCollision(t *testing.T) {
	tests := []struct {
		name string
		head Coord
		dir  Direction
	}{
		{"right edge", Coord{19, 4}, DirectionRight},
		{"left edge", Coord{0, 4}, DirectionLeft},
		{"top edge", Coord{7, 0}, DirectionUp},
		{"bottom edge", Coord{7, 19}, DirectionDown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gs := newTestState(t)
			gs.Snake = NewSnake(tc.head)
			gs.Steer(tc.dir)

			res := gs.Tick()
			if res.Outcome != OutcomeHitWall {
				t.Fatalf("expected hit wall, got %s", res.Outcome)
			}
			if !res.Outcome.Fatal() {
				t.Error("hit wall must be fatal")
			}
			if !gs.Snake.Head().Equals(tc.head) {
				t.Errorf("snake must stay in place, head %s", gs.Snake.Head())
			}
		})
	}
}

func TestTickEatingGrowsAndScores(t *testing.T) {
	gs := newTestState(t)
	gs.Food = Coord{11, 10}
	gs.Steer(DirectionRight)

	res := gs.Tick()
	if res.Outcome != OutcomeAte {
		t.Fatalf("expected ate, got %s", res.Outcome)
	}
	if res.ScoreDelta != 10 || gs.Score != 10 {
		t.Errorf("expected score 10 (delta 10), got %d (delta %d)", gs.Score, res.ScoreDelta)
	}
	if gs.Snake.Len() != 2 {
		t.Errorf("expected length 2, got %d", gs.Snake.Len())
	}
	if gs.Snake.Contains(gs.Food) {
		t.Errorf("new food %s spawned on snake %v", gs.Food, gs.Snake.Cells)
	}

	// Length stays constant on the following non-eating tick.
	gs.Food = Coord{0, 0}
	gs.Tick()
	if gs.Snake.Len() != 2 {
		t.Errorf("expected length to stay 2, got %d", gs.Snake.Len())
	}
}

func TestTickSelfCollision(t *testing.T) {
	gs := newTestState(t)
	gs.Snake = &Snake{Cells: []Coord{{5, 5}, {5, 6}, {6, 6}, {6, 5}, {7, 5}}}
	gs.Direction = DirectionUp

	if !gs.Steer(DirectionRight) {
		t.Fatal("steer right rejected")
	}
	res := gs.Tick()
	if res.Outcome != OutcomeHitSelf {
		t.Fatalf("expected hit self, got %s", res.Outcome)
	}
	if gs.Snake.Len() != 5 {
		t.Errorf("snake must be unchanged, got %v", gs.Snake.Cells)
	}
}

func TestTickIntoVacatedTailIsSafe(t *testing.T) {
	gs := newTestState(t)
	gs.Snake = &Snake{Cells: []Coord{{5, 5}, {5, 6}, {6, 6}, {6, 5}}}
	gs.Direction = DirectionUp
	gs.Steer(DirectionRight)

	res := gs.Tick()
	if res.Outcome != OutcomeMoved {
		t.Fatalf("expected moved, got %s", res.Outcome)
	}
	want := []Coord{{6, 5}, {5, 5}, {5, 6}, {6, 6}}
	for i, c := range want {
		if !gs.Snake.Cells[i].Equals(c) {
			t.Fatalf("expected %v, got %v", want, gs.Snake.Cells)
		}
	}
}

func TestSteerRejectsReverse(t *testing.T) {
	gs := newTestState(t)
	gs.Direction = DirectionUp

	if gs.Steer(DirectionDown) {
		t.Error("reverse of the current direction accepted")
	}
	if gs.Pending != DirectionNone {
		t.Errorf("pending must stay none, got %s", gs.Pending)
	}
}

func TestSteerUpThenDownWithinOneTick(t *testing.T) {
	gs := newTestState(t)
	gs.Steer(DirectionRight)
	gs.Tick()

	if !gs.Steer(DirectionUp) {
		t.Fatal("steer up rejected")
	}
	if gs.Steer(DirectionDown) {
		t.Fatal("down accepted right after up")
	}
	gs.Tick()

	if gs.Direction != DirectionUp {
		t.Errorf("expected direction up, got %s", gs.Direction)
	}
	if !gs.Snake.Head().Equals(Coord{11, 9}) {
		t.Errorf("expected head (11,9), got %s", gs.Snake.Head())
	}
}

func TestSteerRejectsSideStepIntoNeck(t *testing.T) {
	gs := newTestState(t)
	gs.Direction = DirectionRight

	gs.Steer(DirectionUp)
	if gs.Steer(DirectionLeft) {
		t.Error("left accepted while moving right")
	}
	if gs.Pending != DirectionUp {
		t.Errorf("expected pending up, got %s", gs.Pending)
	}
}

func TestSteerSameDirectionIsIdempotent(t *testing.T) {
	a := newTestState(t)
	b := newTestState(t)

	a.Steer(DirectionDown)
	for i := 0; i < 10; i++ {
		b.Steer(DirectionDown)
	}
	a.Tick()
	b.Tick()

	if !a.Snake.Head().Equals(b.Snake.Head()) || a.Snake.Len() != b.Snake.Len() {
		t.Errorf("repeated steer changed the result: %v vs %v", a.Snake.Cells, b.Snake.Cells)
	}
}

func TestSteerIgnoresInvalidDirections(t *testing.T) {
	gs := newTestState(t)

	for _, d := range []Direction{DirectionNone, Direction(9), Direction(-1)} {
		if gs.Steer(d) {
			t.Errorf("direction %d accepted", d)
		}
	}
}

func TestSpawnFoodNeverOnSnake(t *testing.T) {
	cfg := DefaultGameConfig()
	cfg.Width, cfg.Height = 5, 5
	cfg.Origin = Coord{0, 0}
	cfg.Seed = 99
	gs := NewGameState(cfg)

	// Leave exactly three free cells.
	cells := make([]Coord, 0, 22)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if len(cells) < 22 {
				cells = append(cells, Coord{x, y})
			}
		}
	}
	gs.Snake = &Snake{Cells: cells}

	for i := 0; i < 200; i++ {
		if !gs.SpawnFood() {
			t.Fatal("spawn failed with free cells left")
		}
		if gs.Snake.Contains(gs.Food) {
			t.Fatalf("food %s spawned on snake", gs.Food)
		}
	}
}

func TestSpawnFoodBoardFull(t *testing.T) {
	cfg := DefaultGameConfig()
	cfg.Width, cfg.Height = 5, 5
	cfg.Origin = Coord{0, 0}
	gs := NewGameState(cfg)

	cells := make([]Coord, 0, 25)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			cells = append(cells, Coord{x, y})
		}
	}
	gs.Snake = &Snake{Cells: cells}

	if gs.SpawnFood() {
		t.Error("spawn succeeded on a full board")
	}
}

func TestTickBoardFull(t *testing.T) {
	cfg := DefaultGameConfig()
	cfg.Width, cfg.Height = 5, 5
	cfg.Origin = Coord{4, 4}
	gs := NewGameState(cfg)

	// Every cell but (4,4) is snake; the food sits on that last free cell.
	cells := []Coord{{3, 4}}
	for y := 3; y >= 0; y-- {
		if y%2 == 1 {
			for x := 0; x < 5; x++ {
				cells = append(cells, Coord{x, y})
			}
		} else {
			for x := 4; x >= 0; x-- {
				cells = append(cells, Coord{x, y})
			}
		}
	}
	for x := 2; x >= 0; x-- {
		cells = append(cells, Coord{x, 4})
	}
	gs.Snake = &Snake{Cells: cells}
	gs.Food = Coord{4, 4}
	gs.Direction = DirectionRight

	res := gs.Tick()
	if res.Outcome != OutcomeBoardFull {
		t.Fatalf("expected board full, got %s", res.Outcome)
	}
	if gs.Snake.Len() != 25 {
		t.Errorf("expected the snake to fill 25 cells, got %d", gs.Snake.Len())
	}
}

func TestRandomWalkInvariants(t *testing.T) {
	cfg := DefaultGameConfig()
	cfg.Width, cfg.Height = 8, 8
	cfg.Origin = Coord{4, 4}
	cfg.Seed = 2024
	gs := NewGameState(cfg)

	moves := rand.New(rand.NewSource(1))
	dirs := []Direction{DirectionUp, DirectionDown, DirectionLeft, DirectionRight}

	for i := 0; i < 5000; i++ {
		gs.Steer(dirs[moves.Intn(len(dirs))])

		before := gs.Snake.Len()
		res := gs.Tick()

		switch res.Outcome {
		case OutcomeAte:
			if gs.Snake.Len() != before+1 {
				t.Fatalf("tick %d: ate but length %d -> %d", i, before, gs.Snake.Len())
			}
		case OutcomeMoved, OutcomeWaiting:
			if gs.Snake.Len() != before {
				t.Fatalf("tick %d: %s changed length %d -> %d", i, res.Outcome, before, gs.Snake.Len())
			}
		}

		assertUniqueCells(t, gs.Snake)
		if res.Outcome != OutcomeBoardFull && gs.Snake.Contains(gs.Food) {
			t.Fatalf("tick %d: food %s under snake", i, gs.Food)
		}
		for _, c := range gs.Snake.Cells {
			if !gs.Field.Contains(c) {
				t.Fatalf("tick %d: cell %s out of bounds", i, c)
			}
		}

		if res.Outcome.Fatal() {
			gs = NewGameState(cfg)
		}
	}
}

func TestSeededFoodIsDeterministic(t *testing.T) {
	cfg := DefaultGameConfig()
	cfg.Seed = 12345

	a := NewGameState(cfg)
	b := NewGameState(cfg)

	for i := 0; i < 20; i++ {
		if !a.Food.Equals(b.Food) {
			t.Fatalf("spawn %d: food mismatch %s vs %s", i, a.Food, b.Food)
		}
		a.SpawnFood()
		b.SpawnFood()
	}
}

func TestGameStateCopyIsDeep(t *testing.T) {
	gs := newTestState(t)
	cp := gs.Copy()

	gs.Steer(DirectionLeft)
	gs.Tick()

	if !cp.Snake.Head().Equals(Coord{10, 10}) {
		t.Errorf("copy shares snake cells: %v", cp.Snake.Cells)
	}
	if cp.Config == gs.Config || cp.Field == gs.Field {
		t.Error("copy shares config or field")
	}
}

func TestGameConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *GameConfig)
		ok     bool
	}{
		{"default", func(c *GameConfig) {}, true},
		{"narrow", func(c *GameConfig) { c.Width = 4 }, false},
		{"tall", func(c *GameConfig) { c.Height = 101 }, false},
		{"tiny pitch", func(c *GameConfig) { c.CellPitch = 2 }, false},
		{"fast", func(c *GameConfig) { c.TickDelayMs = 10 }, false},
		{"zero step", func(c *GameConfig) { c.ScoreStep = 0 }, false},
		{"origin outside", func(c *GameConfig) { c.Origin = Coord{20, 3} }, false},
		{"small board centred", func(c *GameConfig) { c.Width, c.Height = 6, 6; c.Centre() }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultGameConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok {
				if err == nil {
					t.Fatal("expected an error")
				}
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("error %v does not wrap ErrInvalidConfig", err)
				}
			}
		})
	}
}

func TestDirection(t *testing.T) {
	tests := []struct {
		dir      Direction
		opposite Direction
		delta    Coord
		name     string
	}{
		{DirectionUp, DirectionDown, Coord{0, -1}, "up"},
		{DirectionDown, DirectionUp, Coord{0, 1}, "down"},
		{DirectionLeft, DirectionRight, Coord{-1, 0}, "left"},
		{DirectionRight, DirectionLeft, Coord{1, 0}, "right"},
		{DirectionNone, DirectionNone, Coord{}, "none"},
	}

	for _, tc := range tests {
		if got := tc.dir.Opposite(); got != tc.opposite {
			t.Errorf("%s: opposite %s, want %s", tc.name, got, tc.opposite)
		}
		if got := tc.dir.Delta(); !got.Equals(tc.delta) {
			t.Errorf("%s: delta %s, want %s", tc.name, got, tc.delta)
		}
		if got := tc.dir.String(); got != tc.name {
			t.Errorf("string %q, want %q", got, tc.name)
		}
		if got := ParseDirection(tc.name); tc.dir != DirectionNone && got != tc.dir {
			t.Errorf("parse %q: got %s", tc.name, got)
		}
	}

	if DirectionNone.IsOpposite(DirectionNone) {
		t.Error("none must not be its own opposite")
	}
	for _, key := range []string{"W", "a", "S", "d", "ArrowUp"} {
		if ParseDirection(key) == DirectionNone {
			t.Errorf("key %q not mapped", key)
		}
	}
	if ParseDirection("q") != DirectionNone {
		t.Error("unmapped key produced a direction")
	}
}
