package tilemap

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/tferrerm/unity-pac/internal/entities"
)

type Tile int

const (
	TileEmpty Tile = iota
	TileWall
	TilePellet
	TilePower
	TileBox
	// TileBoxDoor is a wall for everyone except ghosts entering or
	// leaving the box.
	TileBoxDoor
)

// TileMap is immutable after load except for pellet tiles, which turn
// into TileEmpty when eaten and come back on ResetPellets.
type TileMap struct {
	Width    int
	Height   int
	TileSize int
	Tiles    [][]Tile

	initial  [][]Tile
	boxTiles []entities.Coord
	boxDoor  entities.Coord
	hasDoor  bool
	pellets  int
}

// New builds a map around grid. The grid is owned by the map from here on.
func New(grid [][]Tile, tileSize int) *TileMap {
	m := &TileMap{
		Height:   len(grid),
		TileSize: tileSize,
		Tiles:    grid,
	}
	if m.Height > 0 {
		m.Width = len(grid[0])
	}
	m.initial = make([][]Tile, m.Height)
	for y := range grid {
		m.initial[y] = append([]Tile(nil), grid[y]...)
		for x, t := range grid[y] {
			switch t {
			case TilePellet, TilePower:
				m.pellets++
			case TileBox:
				m.boxTiles = append(m.boxTiles, entities.Coord{X: x, Y: y})
			case TileBoxDoor:
				m.boxDoor = entities.Coord{X: x, Y: y}
				m.hasDoor = true
			}
		}
	}
	return m
}

func (m *TileMap) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// IsWall treats out-of-bounds cells as walls. The box door counts as a wall.
func (m *TileMap) IsWall(x, y int) bool {
	if !m.InBounds(x, y) {
		return true
	}
	t := m.Tiles[y][x]
	return t == TileWall || t == TileBoxDoor
}

func (m *TileMap) IsBoxDoor(x, y int) bool {
	return m.InBounds(x, y) && m.Tiles[y][x] == TileBoxDoor
}

func (m *TileMap) IsBoxTile(c entities.Coord) bool {
	return m.InBounds(c.X, c.Y) && m.initial[c.Y][c.X] == TileBox
}

// CanEnter reports whether an entity may step onto c. With ignoreBoxDoor
// the box door is passable.
func (m *TileMap) CanEnter(c entities.Coord, ignoreBoxDoor bool) bool {
	if ignoreBoxDoor && m.IsBoxDoor(c.X, c.Y) {
		return true
	}
	return !m.IsWall(c.X, c.Y)
}

// Step returns the neighbor of c in direction d. Columns wrap; rows do
// not, so the result may be out of bounds vertically.
func (m *TileMap) Step(c entities.Coord, d entities.Direction) entities.Coord {
	entities.MustValid(d)
	n := c.Add(d, 1)
	if m.Width > 0 {
		n.X = ((n.X % m.Width) + m.Width) % m.Width
	}
	return n
}

// TileCenter returns the pixel position of a tile center. The origin is
// the center of the middle tile, which exists because dimensions are odd.
func (m *TileMap) TileCenter(c entities.Coord) entities.Vec {
	return entities.Vec{
		X: float64((c.X - m.Width/2) * m.TileSize),
		Y: float64((c.Y - m.Height/2) * m.TileSize),
	}
}

// TileAt returns the tile whose center is nearest to v, clamped to the grid.
func (m *TileMap) TileAt(v entities.Vec) entities.Coord {
	x := int(math.Round(v.X/float64(m.TileSize))) + m.Width/2
	y := int(math.Round(v.Y/float64(m.TileSize))) + m.Height/2
	return entities.Coord{X: clamp(x, 0, m.Width-1), Y: clamp(y, 0, m.Height-1)}
}

// HalfWidth is the distance from the origin to the left or right edge of
// the map in pixels.
func (m *TileMap) HalfWidth() float64 {
	return float64(m.Width*m.TileSize) / 2
}

// Corner returns the fixed scatter target of a ghost.
func (m *TileMap) Corner(id entities.ID) entities.Coord {
	switch id {
	case entities.IDBlinky:
		return entities.Coord{X: m.Width - 2, Y: 1}
	case entities.IDPinky:
		return entities.Coord{X: 1, Y: 1}
	case entities.IDInky:
		return entities.Coord{X: m.Width - 2, Y: m.Height - 2}
	case entities.IDClyde:
		return entities.Coord{X: 1, Y: m.Height - 2}
	default:
		panic(fmt.Sprintf("tilemap: no corner for %v", id))
	}
}

// BoxDoor returns the door tile and whether the map has one.
func (m *TileMap) BoxDoor() (entities.Coord, bool) {
	return m.boxDoor, m.hasDoor
}

// BoxDoorEntrance is the corridor tile right above the box door.
func (m *TileMap) BoxDoorEntrance() entities.Coord {
	return entities.Coord{X: m.boxDoor.X, Y: m.boxDoor.Y - 1}
}

func (m *TileMap) BoxTiles() []entities.Coord {
	return m.boxTiles
}

func (m *TileMap) RandomBoxTile(r *rand.Rand) entities.Coord {
	if len(m.boxTiles) == 0 {
		return m.BoxDoorEntrance()
	}
	return m.boxTiles[r.Intn(len(m.boxTiles))]
}

// EatPelletAt removes a pellet/power pellet at grid cell and returns (ate, power)
func (m *TileMap) EatPelletAt(x, y int) (bool, bool) {
	if !m.InBounds(x, y) {
		return false, false
	}
	switch m.Tiles[y][x] {
	case TilePellet:
		m.Tiles[y][x] = TileEmpty
		m.pellets--
		return true, false
	case TilePower:
		m.Tiles[y][x] = TileEmpty
		m.pellets--
		return true, true
	}
	return false, false
}

func (m *TileMap) PelletsRemaining() int {
	return m.pellets
}

// ResetPellets restores every pellet eaten since load.
func (m *TileMap) ResetPellets() {
	m.pellets = 0
	for y := range m.initial {
		for x, t := range m.initial[y] {
			if t == TilePellet || t == TilePower {
				m.Tiles[y][x] = t
				m.pellets++
			}
		}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
