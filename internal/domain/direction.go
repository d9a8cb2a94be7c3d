package domain

import "strings"

type Direction int

const (
	DirectionNone  Direction = 0
	DirectionUp    Direction = 1
	DirectionDown  Direction = 2
	DirectionLeft  Direction = 3
	DirectionRight Direction = 4
)

// Opposite returns DirectionNone for DirectionNone and unknown values.
func (d Direction) Opposite() Direction {
	switch d {
	case DirectionUp:
		return DirectionDown
	case DirectionDown:
		return DirectionUp
	case DirectionLeft:
		return DirectionRight
	case DirectionRight:
		return DirectionLeft
	}
	return DirectionNone
}

func (d Direction) Delta() Coord {
	switch d {
	case DirectionUp:
		return Coord{0, -1}
	case DirectionDown:
		return Coord{0, 1}
	case DirectionLeft:
		return Coord{-1, 0}
	case DirectionRight:
		return Coord{1, 0}
	}
	return Coord{}
}

func (d Direction) IsOpposite(other Direction) bool {
	return d != DirectionNone && d.Opposite() == other
}

func (d Direction) Valid() bool {
	return d >= DirectionUp && d <= DirectionRight
}

func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	case DirectionNone:
		return "none"
	}
	return "unknown"
}

// ParseDirection maps a direction name or a WASD letter to a Direction.
// Anything else yields DirectionNone.
func ParseDirection(name string) Direction {
	switch strings.ToLower(name) {
	case "up", "arrowup", "w":
		return DirectionUp
	case "down", "arrowdown", "s":
		return DirectionDown
	case "left", "arrowleft", "a":
		return DirectionLeft
	case "right", "arrowright", "d":
		return DirectionRight
	}
	return DirectionNone
}
