// Package game hosts a round in an ebiten window: keyboard input, drawing,
// audio cues and the high score leaderboard.
package game

import (
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/tferrerm/unity-pac/internal/config"
	"github.com/tferrerm/unity-pac/internal/entities"
	"github.com/tferrerm/unity-pac/internal/replay"
	"github.com/tferrerm/unity-pac/internal/round"
	"github.com/tferrerm/unity-pac/internal/tilemap"
)

const (
	updatesPerSecond = 60
	tickDelta        = 1.0 / updatesPerSecond
	maxNameLen       = 12
	slowMotion       = 0.5
)

type Options struct {
	Config      config.Config
	Level       *tilemap.Level
	Leaderboard *Leaderboard
	// Cues receives sound events; nil plays nothing.
	Cues     round.Cues
	Recorder *replay.Recorder
	// ReplayPath is where the recording is written on exit.
	ReplayPath string
	// Scale of the window; 0 fits 75% of the screen.
	Scale float64
}

type Game struct {
	opts  Options
	round *round.Game

	highScore          int
	highScoreName      string
	playerName         string
	enteringName       bool
	showingLeaderboard bool
	fullscreen         bool
	paused             bool
	slow               bool
	quit               bool
	saved              bool
	tickCounter        int
	scale              float64
}

func New(opts Options) *Game {
	g := &Game{opts: opts, enteringName: true}
	roundOpts := []round.Option{round.WithScoreboard(g)}
	if opts.Cues != nil {
		roundOpts = append(roundOpts, round.WithCues(opts.Cues))
	}
	if opts.Recorder != nil {
		opts.Config.Seed = opts.Recorder.Seed()
	}
	g.round = round.New(opts.Level, opts.Config, roundOpts...)

	if opts.Leaderboard != nil {
		if rec := opts.Leaderboard.Best(); rec != nil {
			g.highScore = rec.Score
			g.highScoreName = rec.Name
		}
	}

	g.scale = opts.Scale
	if g.scale <= 0 {
		sw, sh := ebiten.ScreenSizeInFullscreen()
		g.scale = fitScale(sw, sh, g.nativeWidth(), g.nativeHeight())
	}
	return g
}

// fitScale sizes the native maze to about 75% of the screen.
func fitScale(screenW, screenH, nativeW, nativeH int) float64 {
	const fit = 0.75
	scaleW := float64(screenW) * fit / float64(nativeW)
	scaleH := float64(screenH) * fit / float64(nativeH)
	s := math.Min(scaleW, scaleH)
	if s <= 0 || math.IsNaN(s) || math.IsInf(s, 0) {
		return 1.0
	}
	return s
}

func (g *Game) nativeWidth() int {
	m := g.opts.Level.Map
	return m.Width * m.TileSize
}

func (g *Game) nativeHeight() int {
	m := g.opts.Level.Map
	return m.Height * m.TileSize
}

func (g *Game) ScreenWidth() int {
	return int(float64(g.nativeWidth()) * g.scale)
}

func (g *Game) ScreenHeight() int {
	return int(float64(g.nativeHeight()) * g.scale)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.ScreenWidth(), g.ScreenHeight()
}

// Round exposes the running game.
func (g *Game) Round() *round.Game { return g.round }

func (g *Game) PointsAwarded(delta, total int) {
	if total > g.highScore {
		g.highScore = total
		g.highScoreName = g.playerName
	}
}

func (g *Game) LivesChanged(int) {}

func (g *Game) Update() error {
	g.tickCounter++
	dir := g.handleInput()
	if g.quit {
		g.finish()
		return ebiten.Termination
	}
	g.advance(dir)
	return nil
}

// advance runs one tick of the round unless a menu or pause holds it.
func (g *Game) advance(dir entities.Direction) {
	if g.showingLeaderboard || g.enteringName || g.paused {
		return
	}

	scale := 1.0
	if g.slow {
		scale = slowMotion
	}
	g.round.SetTimeScale(scale)
	g.round.Update(tickDelta, dir)
	if g.opts.Recorder != nil {
		g.opts.Recorder.Record(tickDelta*scale, dir)
	}

	if g.round.Phase() == round.PhaseGameOver {
		g.finish()
		g.showingLeaderboard = true
	}
}

// finish persists the score and the replay once.
func (g *Game) finish() {
	if g.saved {
		return
	}
	g.saved = true
	if lb := g.opts.Leaderboard; lb != nil && g.round.Score() > 0 {
		if err := lb.Save(HighScoreRecord{Name: g.playerName, Score: g.round.Score()}); err != nil {
			log.Printf("[WARN] save high score: %v", err)
		}
	}
	if g.opts.Recorder != nil && g.opts.ReplayPath != "" {
		s := g.opts.Recorder.Session(g.round.Score())
		if err := replay.SaveFile(g.opts.ReplayPath, s); err != nil {
			log.Printf("[WARN] save replay: %v", err)
		}
	}
}

// dirFromKeys maps held keys to a direction, arrows and WASD, Up first.
func dirFromKeys(pressed func(ebiten.Key) bool) entities.Direction {
	switch {
	case pressed(ebiten.KeyArrowUp) || pressed(ebiten.KeyW):
		return entities.DirUp
	case pressed(ebiten.KeyArrowDown) || pressed(ebiten.KeyS):
		return entities.DirDown
	case pressed(ebiten.KeyArrowLeft) || pressed(ebiten.KeyA):
		return entities.DirLeft
	case pressed(ebiten.KeyArrowRight) || pressed(ebiten.KeyD):
		return entities.DirRight
	}
	return entities.DirNone
}

func (g *Game) handleInput() entities.Direction {
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.fullscreen = !g.fullscreen
		ebiten.SetFullscreen(g.fullscreen)
	}
	// Name entry handling takes precedence
	if g.enteringName {
		g.playerName = appendName(g.playerName, ebiten.AppendInputChars(nil))
		if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
			if rs := []rune(g.playerName); len(rs) > 0 {
				g.playerName = string(rs[:len(rs)-1])
			}
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyKPEnter) {
			if len([]rune(g.playerName)) > 0 {
				g.enteringName = false
			}
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			g.quit = true
		}
		return entities.DirNone
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.slow = !g.slow
	}
	// Q shows the leaderboard first, a second Q exits
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		if g.showingLeaderboard {
			g.quit = true
		} else {
			g.showingLeaderboard = true
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) && g.round.Phase() != round.PhaseGameOver {
		g.showingLeaderboard = !g.showingLeaderboard
	}
	return dirFromKeys(ebiten.IsKeyPressed)
}

// appendName adds the accepted characters of typed to name.
func appendName(name string, typed []rune) string {
	for _, r := range typed {
		if len([]rune(name)) >= maxNameLen {
			break
		}
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == ' ' || r == '_' || r == '-' {
			name += string(r)
		}
	}
	return name
}
