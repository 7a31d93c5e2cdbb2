package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/tferrerm/unity-pac/internal/entities"
	"github.com/tferrerm/unity-pac/internal/round"
	"github.com/tferrerm/unity-pac/internal/tilemap"
)

var (
	wallColor       = color.RGBA{R: 33, G: 33, B: 255, A: 255}
	doorColor       = color.RGBA{R: 255, G: 184, B: 222, A: 255}
	pelletColor     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	playerColor     = color.RGBA{R: 255, G: 221, B: 0, A: 255}
	frightenedColor = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	fruitColor      = color.RGBA{R: 220, G: 20, B: 60, A: 255}
	ghostColors     = map[entities.ID]color.RGBA{
		entities.IDBlinky: {R: 255, G: 0, B: 0, A: 255},
		entities.IDPinky:  {R: 255, G: 128, B: 255, A: 255},
		entities.IDInky:   {R: 0, G: 191, B: 255, A: 255},
		entities.IDClyde:  {R: 255, G: 128, B: 0, A: 255},
	}
)

// blinkPeriod is how many ticks each blink color lasts.
const blinkPeriod = 12

// screenPos converts a maze-centered position to native screen pixels.
func screenPos(m *tilemap.TileMap, v entities.Vec) (float32, float32) {
	return float32(v.X + float64(m.Width*m.TileSize)/2), float32(v.Y + float64(m.Height*m.TileSize)/2)
}

func drawMaze(dst *ebiten.Image, m *tilemap.TileMap) {
	ts := float32(m.TileSize)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			px := float32(x) * ts
			py := float32(y) * ts
			cx := px + ts/2
			cy := py + ts/2
			switch m.Tiles[y][x] {
			case tilemap.TileWall:
				vector.FillRect(dst, px, py, ts, ts, wallColor, false)
			case tilemap.TileBoxDoor:
				vector.FillRect(dst, px, py+ts/2-1, ts, 2, doorColor, false)
			case tilemap.TilePellet:
				vector.DrawFilledCircle(dst, cx, cy, ts/8, pelletColor, true)
			case tilemap.TilePower:
				vector.DrawFilledCircle(dst, cx, cy, ts/4, pelletColor, true)
			}
		}
	}
}

func (g *Game) ghostColor(gh entities.Ghost) color.RGBA {
	if gh.Mode == entities.ModeFrightened {
		if gh.Blinking && (g.tickCounter/blinkPeriod)%2 == 1 {
			return pelletColor
		}
		return frightenedColor
	}
	return ghostColors[gh.ID]
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	// Use an offscreen image at native resolution then scale up
	nativeW, nativeH := g.nativeWidth(), g.nativeHeight()
	off := ebiten.NewImage(nativeW, nativeH)
	level := g.round.Level()
	m := level.Map
	radius := float32(m.TileSize/2 - 2)

	drawMaze(off, m)

	if g.round.FruitVisible() {
		x, y := screenPos(m, m.TileCenter(g.round.FruitTile()))
		vector.DrawFilledCircle(off, x, y, radius-1, fruitColor, true)
	}

	if g.round.Phase() != round.PhaseGameOver {
		x, y := screenPos(m, g.round.PlayerPosition())
		vector.DrawFilledCircle(off, x, y, radius, playerColor, true)
	}

	if g.round.Phase() != round.PhaseDying {
		for _, gh := range g.round.Ghosts() {
			x, y := screenPos(m, gh.Pos)
			if gh.Mode == entities.ModeConsumed {
				// eyes only
				vector.DrawFilledCircle(off, x-3, y-2, 2, pelletColor, true)
				vector.DrawFilledCircle(off, x+3, y-2, 2, pelletColor, true)
				continue
			}
			vector.DrawFilledCircle(off, x, y, radius, g.ghostColor(gh), true)
		}
	}

	g.drawHUD(off, nativeW, nativeH)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(g.scale, g.scale)
	screen.DrawImage(off, op)
}

func (g *Game) drawHUD(off *ebiten.Image, nativeW, nativeH int) {
	hiLabel := "High"
	if g.highScoreName != "" {
		hiLabel = fmt.Sprintf("High(%s)", g.highScoreName)
	}
	name := g.playerName
	if name == "" {
		name = "Player"
	}
	hud := fmt.Sprintf("%s  Score: %d  %s: %d  Lives: %d  Round: %d",
		name, g.round.Score(), hiLabel, g.highScore, g.round.Lives(), g.round.Round())
	text.Draw(off, hud, basicfont.Face7x13, 4, 12, color.White)

	centered := func(s string, y int, c color.Color) {
		text.Draw(off, s, basicfont.Face7x13, (nativeW-len(s)*7)/2, y, c)
	}

	switch {
	case g.enteringName:
		centered("Enter name: "+g.playerName+"_", nativeH/2, color.White)
		return
	case g.showingLeaderboard:
		y := nativeH/2 - 40
		centered("High Scores", y, color.RGBA{R: 255, G: 215, B: 0, A: 255})
		y += 14
		if lb := g.opts.Leaderboard; lb != nil {
			for i, r := range lb.Top(leaderboardSize) {
				centered(fmt.Sprintf("%2d. %-12s  %6d", i+1, r.Name, r.Score), y, color.White)
				y += 14
			}
		}
		centered("Press Q to exit", nativeH-8, color.RGBA{R: 128, G: 128, B: 128, A: 255})
		return
	case g.paused:
		centered("PAUSED", nativeH/2, color.White)
	}

	switch g.round.Phase() {
	case round.PhaseIntro:
		centered("READY!", nativeH/2+24, playerColor)
	case round.PhaseGameOver:
		centered("GAME OVER", nativeH/2+24, color.RGBA{R: 255, A: 255})
	}
}
