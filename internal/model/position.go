package model

import (
	"fmt"
	"strings"
)

// BoardSize is the width and height of the board
const BoardSize = 15

// Center is the cell every opening move must cover
var Center = Position{X: 7, Y: 7}

// Position identifies a cell on the board.
// X grows to the right, Y grows downwards, both 0-indexed.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// InBounds reports whether the position lies on the board
func (p Position) InBounds() bool {
	return p.X >= 0 && p.X < BoardSize && p.Y >= 0 && p.Y < BoardSize
}

// Step returns the position n cells away in the given direction
func (p Position) Step(dir Direction, n int) Position {
	dx, dy := dir.delta()
	return Position{X: p.X + dx*n, Y: p.Y + dy*n}
}

// Neighbors returns the four orthogonally adjacent positions (some may be off the board)
func (p Position) Neighbors() [4]Position {
	return [4]Position{
		{X: p.X + 1, Y: p.Y},
		{X: p.X - 1, Y: p.Y},
		{X: p.X, Y: p.Y + 1},
		{X: p.X, Y: p.Y - 1},
	}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Direction is the axis a word is laid along
type Direction string

const (
	DirectionRight Direction = "right"
	DirectionDown  Direction = "down"
)

// ParseDirection accepts "right"/"down" and the single-letter forms "r"/"d"
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "right", "r":
		return DirectionRight, nil
	case "down", "d":
		return DirectionDown, nil
	default:
		return "", fmt.Errorf("%w: unknown direction %q", ErrInvalidPlacement, s)
	}
}

// Valid reports whether the direction is one of the two known axes
func (d Direction) Valid() bool {
	return d == DirectionRight || d == DirectionDown
}

// Perpendicular returns the crossing axis
func (d Direction) Perpendicular() Direction {
	if d == DirectionDown {
		return DirectionRight
	}
	return DirectionDown
}

func (d Direction) delta() (int, int) {
	if d == DirectionDown {
		return 0, 1
	}
	return 1, 0
}
