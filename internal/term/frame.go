package term

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/tferrerm/unity-pac/internal/entities"
	"github.com/tferrerm/unity-pac/internal/round"
	"github.com/tferrerm/unity-pac/internal/tilemap"
)

type cell struct {
	r     rune
	style tcell.Style
}

var (
	styleWall       = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleDoor       = tcell.StyleDefault.Foreground(tcell.ColorPink)
	stylePellet     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	stylePlayer     = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleFrightened = tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(true)
	styleFruit      = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleHUD        = tcell.StyleDefault.Foreground(tcell.ColorWhite)

	ghostStyles = map[entities.ID]tcell.Style{
		entities.IDBlinky: tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
		entities.IDPinky:  tcell.StyleDefault.Foreground(tcell.ColorPink).Bold(true),
		entities.IDInky:   tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true),
		entities.IDClyde:  tcell.StyleDefault.Foreground(tcell.ColorOrange).Bold(true),
	}
)

func tileGlyph(t tilemap.Tile) cell {
	switch t {
	case tilemap.TileWall:
		return cell{'█', styleWall}
	case tilemap.TileBoxDoor:
		return cell{'─', styleDoor}
	case tilemap.TilePellet:
		return cell{'·', stylePellet}
	case tilemap.TilePower:
		return cell{'●', stylePellet}
	default:
		return cell{' ', tcell.StyleDefault}
	}
}

// playerGlyph opens the mouth toward the heading.
func playerGlyph(d entities.Direction) rune {
	switch d {
	case entities.DirLeft:
		return '>'
	case entities.DirRight:
		return '<'
	case entities.DirUp:
		return 'v'
	case entities.DirDown:
		return '^'
	default:
		return 'O'
	}
}

func ghostGlyph(gh entities.Ghost) cell {
	switch gh.Mode {
	case entities.ModeConsumed:
		return cell{'"', stylePellet}
	case entities.ModeFrightened:
		if gh.Blinking {
			return cell{'m', stylePellet}
		}
		return cell{'m', styleFrightened}
	default:
		return cell{'M', ghostStyles[gh.ID]}
	}
}

func status(g *round.Game, paused bool) string {
	switch {
	case paused:
		return "PAUSED"
	case g.Phase() == round.PhaseIntro:
		return "READY!"
	case g.Phase() == round.PhaseGameOver:
		return "GAME OVER  (q to quit)"
	default:
		return ""
	}
}

// frame lays out one screen: the maze rows, then two HUD rows.
func frame(g *round.Game, paused bool) [][]cell {
	m := g.Level().Map
	rows := make([][]cell, m.Height+2)
	for y := 0; y < m.Height; y++ {
		rows[y] = make([]cell, m.Width)
		for x := 0; x < m.Width; x++ {
			rows[y][x] = tileGlyph(m.Tiles[y][x])
		}
	}
	put := func(c entities.Coord, v cell) {
		if m.InBounds(c.X, c.Y) {
			rows[c.Y][c.X] = v
		}
	}

	if g.FruitVisible() {
		put(g.FruitTile(), cell{'%', styleFruit})
	}
	p := g.Player()
	put(m.TileAt(p.Pos), cell{playerGlyph(p.CurrentDir), stylePlayer})
	for _, gh := range g.Ghosts() {
		put(m.TileAt(gh.Pos), ghostGlyph(gh))
	}

	rows[m.Height] = text(fmt.Sprintf("SCORE %d  LIVES %d  ROUND %d", g.Score(), g.Lives(), g.Round()))
	rows[m.Height+1] = text(status(g, paused))
	return rows
}

func text(s string) []cell {
	out := make([]cell, 0, len(s))
	for _, r := range s {
		out = append(out, cell{r, styleHUD})
	}
	return out
}
