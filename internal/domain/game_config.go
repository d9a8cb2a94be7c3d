package domain

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidConfig = errors.New("invalid game config")

type GameConfig struct {
	Width       int
	Height      int
	CellPitch   int
	TickDelayMs int
	ScoreStep   int
	Origin      Coord
	// Seed of the food RNG; zero picks a time based seed.
	Seed uint64
}

func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Width:       20,
		Height:      20,
		CellPitch:   20,
		TickDelayMs: 150,
		ScoreStep:   10,
		Origin:      Coord{X: 10, Y: 10},
	}
}

func (c *GameConfig) Validate() error {
	if c.Width < 5 || c.Width > 100 {
		return fmt.Errorf("%w: width must be 5-100, got %d", ErrInvalidConfig, c.Width)
	}
	if c.Height < 5 || c.Height > 100 {
		return fmt.Errorf("%w: height must be 5-100, got %d", ErrInvalidConfig, c.Height)
	}
	if c.CellPitch < 4 || c.CellPitch > 60 {
		return fmt.Errorf("%w: cell pitch must be 4-60 px, got %d", ErrInvalidConfig, c.CellPitch)
	}
	if c.TickDelayMs < 30 || c.TickDelayMs > 3000 {
		return fmt.Errorf("%w: tick delay must be 30-3000 ms, got %d", ErrInvalidConfig, c.TickDelayMs)
	}
	if c.ScoreStep <= 0 {
		return fmt.Errorf("%w: score step must be positive, got %d", ErrInvalidConfig, c.ScoreStep)
	}
	if !NewField(c.Width, c.Height).Contains(c.Origin) {
		return fmt.Errorf("%w: origin %s outside %dx%d grid", ErrInvalidConfig, c.Origin, c.Width, c.Height)
	}
	return nil
}

func (c *GameConfig) TickDelay() time.Duration {
	return time.Duration(c.TickDelayMs) * time.Millisecond
}

// Centre moves the origin to the middle of the grid.
func (c *GameConfig) Centre() {
	c.Origin = Coord{X: c.Width / 2, Y: c.Height / 2}
}

func (c *GameConfig) Copy() *GameConfig {
	return &GameConfig{
		Width:       c.Width,
		Height:      c.Height,
		CellPitch:   c.CellPitch,
		TickDelayMs: c.TickDelayMs,
		ScoreStep:   c.ScoreStep,
		Origin:      c.Origin,
		Seed:        c.Seed,
	}
}
