package domain

import (
	"time"

	"golang.org/x/exp/rand"
)

// GameState is one game's board. It is not safe for concurrent use; the
// engine serializes every access.
type GameState struct {
	StateOrder int
	Field      *Field
	Config     *GameConfig
	Snake      *Snake
	Food       Coord
	Score      int
	Direction  Direction
	Pending    Direction

	rng *rand.Rand
}

func NewGameState(config *GameConfig) *GameState {
	seed := config.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	gs := &GameState{
		Field:     NewField(config.Width, config.Height),
		Config:    config.Copy(),
		Snake:     NewSnake(config.Origin),
		Direction: DirectionNone,
		Pending:   DirectionNone,
		rng:       rand.New(rand.NewSource(seed)),
	}
	gs.SpawnFood()

	return gs
}

// Copy returns a snapshot without the RNG; a copy cannot spawn food.
func (gs *GameState) Copy() *GameState {
	return &GameState{
		StateOrder: gs.StateOrder,
		Field:      NewField(gs.Field.Width, gs.Field.Height),
		Config:     gs.Config.Copy(),
		Snake:      gs.Snake.Copy(),
		Food:       gs.Food,
		Score:      gs.Score,
		Direction:  gs.Direction,
		Pending:    gs.Pending,
	}
}

// Steer buffers dir for the next tick. It refuses the reverse of both the
// applied direction and the already buffered one.
func (gs *GameState) Steer(dir Direction) bool {
	if !dir.Valid() {
		return false
	}
	if dir.IsOpposite(gs.Direction) || dir.IsOpposite(gs.Pending) {
		return false
	}
	gs.Pending = dir
	return true
}

func (gs *GameState) FreeCells() []Coord {
	free := make([]Coord, 0, gs.Field.Cells()-gs.Snake.Len())
	for y := 0; y < gs.Field.Height; y++ {
		for x := 0; x < gs.Field.Width; x++ {
			c := Coord{X: x, Y: y}
			if !gs.Snake.Contains(c) {
				free = append(free, c)
			}
		}
	}
	return free
}

// SpawnFood places food on a uniformly random cell not covered by the snake.
// It reports false when the snake fills the whole field.
func (gs *GameState) SpawnFood() bool {
	if gs.Snake.Len() >= gs.Field.Cells() {
		return false
	}

	attempts := gs.Field.Cells()
	for i := 0; i < attempts; i++ {
		pos := Coord{
			X: gs.rng.Intn(gs.Field.Width),
			Y: gs.rng.Intn(gs.Field.Height),
		}
		if !gs.Snake.Contains(pos) {
			gs.Food = pos
			return true
		}
	}

	free := gs.FreeCells()
	gs.Food = free[gs.rng.Intn(len(free))]
	return true
}
