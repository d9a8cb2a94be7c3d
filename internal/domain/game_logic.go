package domain

type Outcome int

const (
	// OutcomeWaiting means no direction has been chosen yet.
	OutcomeWaiting Outcome = iota
	OutcomeMoved
	OutcomeAte
	OutcomeHitWall
	OutcomeHitSelf
	OutcomeBoardFull
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWaiting:
		return "waiting"
	case OutcomeMoved:
		return "moved"
	case OutcomeAte:
		return "ate"
	case OutcomeHitWall:
		return "hit wall"
	case OutcomeHitSelf:
		return "hit self"
	case OutcomeBoardFull:
		return "board full"
	}
	return "unknown"
}

// Fatal reports whether the outcome ends the game.
func (o Outcome) Fatal() bool {
	return o == OutcomeHitWall || o == OutcomeHitSelf || o == OutcomeBoardFull
}

type TickResult struct {
	Outcome    Outcome
	Head       Coord
	ScoreDelta int
}

// Tick advances the board by one step. A fatal outcome leaves the snake where
// it was before the step, except for OutcomeBoardFull where the final growth
// has been applied.
func (gs *GameState) Tick() *TickResult {
	gs.StateOrder++

	if gs.Pending != DirectionNone {
		gs.Direction = gs.Pending
		gs.Pending = DirectionNone
	}

	result := &TickResult{
		Outcome: OutcomeWaiting,
		Head:    gs.Snake.Head(),
	}

	if gs.Direction == DirectionNone {
		return result
	}

	newHead := gs.Field.Move(gs.Snake.Head(), gs.Direction)
	result.Head = newHead

	if !gs.Field.Contains(newHead) {
		result.Outcome = OutcomeHitWall
		return result
	}

	ate := newHead.Equals(gs.Food)

	// The tail cell is vacated by this move unless the snake grows.
	body := gs.Snake.Cells
	if !ate {
		body = body[:len(body)-1]
	}
	for _, cell := range body {
		if cell.Equals(newHead) {
			result.Outcome = OutcomeHitSelf
			return result
		}
	}

	gs.Snake.Move(newHead, ate)

	if !ate {
		result.Outcome = OutcomeMoved
		return result
	}

	gs.Score += gs.Config.ScoreStep
	result.ScoreDelta = gs.Config.ScoreStep
	result.Outcome = OutcomeAte

	if !gs.SpawnFood() {
		result.Outcome = OutcomeBoardFull
	}

	return result
}
