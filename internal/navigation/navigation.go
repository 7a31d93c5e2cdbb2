// Package navigation turns continuous motion into tile-aligned movement.
//
// Every entity walks toward a target tile, which is always one step ahead
// of its current tile along its heading, or equal to its current tile when
// it is stopped. The current tile is never stored; it is inferred from the
// target tile and the heading.
package navigation

import (
	"github.com/tferrerm/unity-pac/internal/entities"
	"github.com/tferrerm/unity-pac/internal/tilemap"
)

type Navigator struct {
	m       *tilemap.TileMap
	targets [entities.EntityCount]entities.Coord
}

func New(m *tilemap.TileMap) *Navigator {
	return &Navigator{m: m}
}

func (n *Navigator) Map() *tilemap.TileMap { return n.m }

func (n *Navigator) Target(id entities.ID) entities.Coord { return n.targets[id] }

func (n *Navigator) SetTarget(id entities.ID, c entities.Coord) { n.targets[id] = c }

// Place initializes the target tile of an entity standing on tile with
// heading dir. If dir points into a wall the target is the tile itself and
// Place returns false.
func (n *Navigator) Place(id entities.ID, tile entities.Coord, dir entities.Direction, ignoreBoxDoor bool) bool {
	if n.IsValidDirection(tile, dir, ignoreBoxDoor) {
		n.targets[id] = n.m.Step(tile, dir)
		return true
	}
	n.targets[id] = tile
	return false
}

// CurrentTile infers the tile the entity is leaving: its target minus one
// step along dir.
func (n *Navigator) CurrentTile(id entities.ID, dir entities.Direction) entities.Coord {
	return n.m.Step(n.targets[id], dir.Opposite())
}

// UpdateTarget advances the target one step along dir.
func (n *Navigator) UpdateTarget(id entities.ID, dir entities.Direction) {
	n.targets[id] = n.m.Step(n.targets[id], dir)
}

// IsValidDirection reports whether the neighbor of tile along dir can be
// entered. ignoreBoxDoor only affects vertical moves, the door being
// above or below the box.
func (n *Navigator) IsValidDirection(tile entities.Coord, dir entities.Direction, ignoreBoxDoor bool) bool {
	next := n.m.Step(tile, dir)
	if dir.Horizontal() {
		return !n.m.IsWall(next.X, next.Y)
	}
	return n.m.CanEnter(next, ignoreBoxDoor)
}

// LegalDirections lists the enterable neighbors of tile in Up, Down,
// Left, Right order.
func (n *Navigator) LegalDirections(tile entities.Coord, ignoreBoxDoor bool) []entities.Direction {
	dirs := make([]entities.Direction, 0, 4)
	for _, d := range entities.Directions {
		if n.IsValidDirection(tile, d, ignoreBoxDoor) {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// HasReachedTarget compares pos against the target center along the axis
// of dir. At the wrap columns the raw coordinate jumps between the two
// edges, so the sign of pos must match the side of the target as well.
func (n *Navigator) HasReachedTarget(id entities.ID, pos entities.Vec, dir entities.Direction) bool {
	target := n.targets[id]
	c := n.m.TileCenter(target)
	switch dir {
	case entities.DirUp:
		return pos.Y <= c.Y
	case entities.DirDown:
		return pos.Y >= c.Y
	case entities.DirLeft:
		if target.X == n.m.Width-1 {
			return pos.X > 0 && pos.X <= c.X
		}
		return pos.X <= c.X
	case entities.DirRight:
		if target.X == 0 {
			return pos.X < 0 && pos.X >= c.X
		}
		return pos.X >= c.X
	default:
		entities.MustValid(dir)
		return false
	}
}

// Outcome is the result of reconciling one tick of motion with the grid.
type Outcome struct {
	Pos entities.Vec
	Dir entities.Direction
	// Arrived is set when the target center was reached; Tile is that target.
	Arrived bool
	Tile    entities.Coord
	// Turned is set when the queued direction was committed.
	Turned bool
	// Blocked is set when the entity stopped on a tile center before a wall.
	Blocked bool
}

// Validate reconciles a proposed position with the grid. queued is the
// direction to take at the target tile, DirNone to keep going straight.
func (n *Navigator) Validate(id entities.ID, proposed entities.Vec, dir, queued entities.Direction, ignoreBoxDoor bool) Outcome {
	if !n.HasReachedTarget(id, proposed, dir) {
		return Outcome{Pos: proposed, Dir: dir}
	}

	target := n.targets[id]
	center := n.m.TileCenter(target)
	out := Outcome{Dir: dir, Arrived: true, Tile: target}

	if queued != entities.DirNone && n.IsValidDirection(target, queued, ignoreBoxDoor) {
		n.targets[id] = n.m.Step(target, queued)
		out.Pos = offset(center, queued, overshoot(center, proposed, dir))
		out.Dir = queued
		out.Turned = true
		return out
	}

	if !n.IsValidDirection(target, dir, ignoreBoxDoor) {
		out.Pos = center
		out.Blocked = true
		return out
	}

	n.targets[id] = n.m.Step(target, dir)
	out.Pos = proposed
	return out
}

// ValidateInput applies a direction request from the player. A reversal
// is committed at once; while blocked, any legal direction is committed at
// once; anything else is queued for the next tile center. It reports
// whether the heading changed.
func (n *Navigator) ValidateInput(p *entities.Player, input entities.Direction) bool {
	if input == entities.DirNone {
		return false
	}
	entities.MustValid(input)

	if !p.Blocked {
		if !entities.AreOpposite(input, p.CurrentDir) {
			p.DesiredDir = input
			return false
		}
		n.UpdateTarget(entities.IDPlayer, input)
		p.CurrentDir = input
		p.DesiredDir = entities.DirNone
		return true
	}

	target := n.targets[entities.IDPlayer]
	if !n.IsValidDirection(target, input, false) {
		return false
	}
	n.targets[entities.IDPlayer] = n.m.Step(target, input)
	p.Blocked = false
	p.CurrentDir = input
	p.DesiredDir = entities.DirNone
	return true
}

// overshoot is how far proposed went past center along dir.
func overshoot(center, proposed entities.Vec, dir entities.Direction) float64 {
	switch dir {
	case entities.DirUp:
		return center.Y - proposed.Y
	case entities.DirDown:
		return proposed.Y - center.Y
	case entities.DirLeft:
		return center.X - proposed.X
	case entities.DirRight:
		return proposed.X - center.X
	default:
		entities.MustValid(dir)
		return 0
	}
}

func offset(center entities.Vec, dir entities.Direction, delta float64) entities.Vec {
	dx, dy := entities.DirDelta(dir)
	return entities.Vec{X: center.X + float64(dx)*delta, Y: center.Y + float64(dy)*delta}
}
