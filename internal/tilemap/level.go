package tilemap

import (
	"bufio"
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tferrerm/unity-pac/internal/entities"
)

const (
	MaxRows = 23
	MaxCols = 21

	DefaultTileSize = 16
)

const (
	symbolBox         = 'B'
	symbolBoxDoor     = '_'
	symbolPellet      = 'o'
	symbolPowerPellet = 'X'
	symbolBlank       = '.'
)

var (
	ErrFormat        = errors.New("malformed level")
	ErrDimensions    = errors.New("invalid level dimensions")
	ErrStartPosition = errors.New("invalid start position")
	ErrBoxTiles      = errors.New("invalid ghost box")
)

//go:embed levels/default.txt
var defaultLevel []byte

// Start is the initial tile and heading of an entity.
type Start struct {
	ID   entities.ID
	Tile entities.Coord
	Dir  entities.Direction
}

type Level struct {
	Map    *TileMap
	Player Start
	Ghosts []Start
}

// Ghost returns the start of the given ghost, if the level has it.
func (l *Level) Ghost(id entities.ID) (Start, bool) {
	for _, g := range l.Ghosts {
		if g.ID == id {
			return g, true
		}
	}
	return Start{}, false
}

// Default parses the embedded level. It panics if the embedded file is
// broken, which only a bad build can cause.
func Default() *Level {
	l, err := Parse(bytes.NewReader(defaultLevel), DefaultTileSize)
	if err != nil {
		panic(fmt.Sprintf("tilemap: embedded level: %v", err))
	}
	return l
}

// Load reads a level file from disk.
func Load(path string, tileSize int) (*Level, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	l, err := Parse(f, tileSize)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", path, err)
	}
	return l, nil
}

type lineReader struct {
	sc   *bufio.Scanner
	line int
}

func (r *lineReader) next() (string, error) {
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("%w: unexpected end of input after line %d", ErrFormat, r.line)
	}
	r.line++
	return strings.TrimRight(r.sc.Text(), "\r"), nil
}

func (r *lineReader) int() (int, error) {
	s, err := r.next()
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: line %d: expected integer, got %q", ErrFormat, r.line, s)
	}
	return n, nil
}

func (r *lineReader) direction() (entities.Direction, error) {
	n, err := r.int()
	if err != nil {
		return entities.DirNone, err
	}
	// Level files number headings 0 up, 1 down, 2 left, 3 right.
	switch n {
	case 0:
		return entities.DirUp, nil
	case 1:
		return entities.DirDown, nil
	case 2:
		return entities.DirLeft, nil
	case 3:
		return entities.DirRight, nil
	}
	return entities.DirNone, fmt.Errorf("%w: line %d: unknown direction %d", ErrFormat, r.line, n)
}

// Parse reads the level text format: row count, column count, the grid,
// then the player start and the ghost starts.
func Parse(r io.Reader, tileSize int) (*Level, error) {
	lr := &lineReader{sc: bufio.NewScanner(r)}

	rows, err := lr.int()
	if err != nil {
		return nil, err
	}
	cols, err := lr.int()
	if err != nil {
		return nil, err
	}
	if err := validateDimensions(rows, cols); err != nil {
		return nil, err
	}

	grid := make([][]Tile, rows)
	doors := 0
	for y := 0; y < rows; y++ {
		line, err := lr.next()
		if err != nil {
			return nil, err
		}
		if len(line) < cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrFormat, y, len(line), cols)
		}
		grid[y] = make([]Tile, cols)
		for x := 0; x < cols; x++ {
			grid[y][x] = tileFor(line[x])
			if grid[y][x] == TileBoxDoor {
				doors++
			}
		}
	}
	m := New(grid, tileSize)

	l := &Level{Map: m}
	if _, err := lr.next(); err != nil { // player header
		return nil, err
	}
	if l.Player, err = readStart(lr, m, entities.IDPlayer); err != nil {
		return nil, err
	}

	if _, err := lr.next(); err != nil { // ghosts header
		return nil, err
	}
	count, err := lr.int()
	if err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: negative ghost count %d", ErrFormat, count)
	}
	count = min(count, len(entities.GhostOrder))
	for i := 0; i < count; i++ {
		if _, err := lr.next(); err != nil { // ghost header
			return nil, err
		}
		s, err := readStart(lr, m, entities.GhostOrder[i])
		if err != nil {
			return nil, err
		}
		l.Ghosts = append(l.Ghosts, s)
	}

	if count > 0 {
		if len(m.BoxTiles()) < max(count-1, 1) {
			return nil, fmt.Errorf("%w: %d box tiles for %d ghosts", ErrBoxTiles, len(m.BoxTiles()), count)
		}
		if doors != 1 {
			return nil, fmt.Errorf("%w: want exactly one box door, found %d", ErrBoxTiles, doors)
		}
		e := m.BoxDoorEntrance()
		if m.IsWall(e.X, e.Y) {
			return nil, fmt.Errorf("%w: box door entrance %v is not a corridor", ErrBoxTiles, e)
		}
	}
	return l, nil
}

func validateDimensions(rows, cols int) error {
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("%w: %dx%d must be positive", ErrDimensions, rows, cols)
	}
	if rows%2 == 0 || cols%2 == 0 {
		return fmt.Errorf("%w: %dx%d must be odd", ErrDimensions, rows, cols)
	}
	if rows > MaxRows || cols > MaxCols {
		return fmt.Errorf("%w: cannot exceed %d rows and %d columns", ErrDimensions, MaxRows, MaxCols)
	}
	return nil
}

func readStart(lr *lineReader, m *TileMap, id entities.ID) (Start, error) {
	x, err := lr.int()
	if err != nil {
		return Start{}, err
	}
	y, err := lr.int()
	if err != nil {
		return Start{}, err
	}
	if x <= 0 || x >= m.Width-1 || y <= 0 || y >= m.Height-1 || m.IsWall(x, y) {
		return Start{}, fmt.Errorf("%w: %v at (%d, %d)", ErrStartPosition, id, x, y)
	}
	d, err := lr.direction()
	if err != nil {
		return Start{}, err
	}
	return Start{ID: id, Tile: entities.Coord{X: x, Y: y}, Dir: d}, nil
}

func tileFor(c byte) Tile {
	switch c {
	case symbolPellet:
		return TilePellet
	case symbolPowerPellet:
		return TilePower
	case symbolBox:
		return TileBox
	case symbolBoxDoor:
		return TileBoxDoor
	case symbolBlank:
		return TileEmpty
	default:
		return TileWall
	}
}
