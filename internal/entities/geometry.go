package entities

import "math"

// Coord is a grid cell: X is the column, Y the row (row 0 at the top).
type Coord struct {
	X, Y int
}

// Add returns c moved n steps along d, without wrapping.
func (c Coord) Add(d Direction, n int) Coord {
	dx, dy := DirDelta(d)
	return Coord{X: c.X + dx*n, Y: c.Y + dy*n}
}

// Distance is the Euclidean distance between two cells.
func (c Coord) Distance(o Coord) float64 {
	dx := float64(c.X - o.X)
	dy := float64(c.Y - o.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// Vec is a continuous position in pixels, origin at the maze center,
// Y growing downward.
type Vec struct {
	X, Y float64
}

func (v Vec) Sub(o Vec) Vec { return Vec{X: v.X - o.X, Y: v.Y - o.Y} }

func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }
