package engine

import "snakeegg/internal/domain"

type EventType int

const (
	EventStarted EventType = iota
	EventScoreChanged
	EventGameOver
	EventClosed
)

func (t EventType) String() string {
	switch t {
	case EventStarted:
		return "started"
	case EventScoreChanged:
		return "score changed"
	case EventGameOver:
		return "game over"
	case EventClosed:
		return "closed"
	}
	return "unknown"
}

// Event is one game transition. Session is the tag given to the game at
// StartSession, so events of a finished game stay attributable after a
// restart.
type Event struct {
	Type    EventType
	Session string
	Payload interface{}
}

type ScorePayload struct {
	Score  int
	Length int
}

type GameOverPayload struct {
	Score  int
	Length int
	Reason domain.Outcome
}
