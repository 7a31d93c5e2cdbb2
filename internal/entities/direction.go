package entities

import "fmt"

type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// Directions lists the four headings in the order ghosts evaluate them.
// Ties in the nearest-tile heuristic resolve to the earliest entry.
var Directions = [4]Direction{DirUp, DirDown, DirLeft, DirRight}

func DirDelta(d Direction) (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

// Opposite panics on DirNone or any out-of-range value: reversing "no
// heading" is a caller bug.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	default:
		panic(fmt.Sprintf("entities: no opposite for direction %d", int(d)))
	}
}

// Valid reports whether d is one of the four headings.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

// Horizontal reports whether d moves along the X axis.
func (d Direction) Horizontal() bool {
	return d == DirLeft || d == DirRight
}

func AreOpposite(a, b Direction) bool {
	return (a == DirUp && b == DirDown) ||
		(a == DirDown && b == DirUp) ||
		(a == DirLeft && b == DirRight) ||
		(a == DirRight && b == DirLeft)
}

func (d Direction) String() string {
	switch d {
	case DirNone:
		return "none"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// MustValid panics when d is not one of the four headings.
func MustValid(d Direction) {
	if !d.Valid() {
		panic(fmt.Sprintf("entities: invalid direction %d", int(d)))
	}
}
