package round

import (
	"math"
	"math/rand"
	"time"

	"github.com/tferrerm/unity-pac/internal/ai"
	"github.com/tferrerm/unity-pac/internal/config"
	"github.com/tferrerm/unity-pac/internal/entities"
	"github.com/tferrerm/unity-pac/internal/navigation"
	"github.com/tferrerm/unity-pac/internal/tilemap"
)

const (
	// maxTickDelta caps one Update so a stall does not teleport entities.
	maxTickDelta = 1.0 / 30
	maxStep = config.SimStep
	// stepFraction is the share of a tile the fastest entity may cover
	// in one substep.
	stepFraction = 0.45
)

type Game struct {
	level *tilemap.Level
	cfg   config.Config

	nav      *navigation.Navigator
	brain    *ai.Brain
	schedule *ai.Schedule
	fright   *ai.Frightened
	rng      *rand.Rand

	player entities.Player
	ghosts []*entities.Ghost

	phase      Phase
	phaseTimer float64

	score       int
	lives       int
	round       int
	extraLife   bool
	ghostsEaten int
	speedFactor float64
	timeScale   float64

	fruitClock   float64
	fruitLeft    float64
	fruitShown   bool
	fruitVisible bool

	cues    Cues
	board   Scoreboard
	onVisit TileVisitFunc
}

// New starts a game on level in the intro phase. The level's map is
// mutated as pellets are eaten.
func New(level *tilemap.Level, cfg config.Config, opts ...Option) *Game {
	g := &Game{
		level:       level,
		cfg:         cfg,
		nav:         navigation.New(level.Map),
		lives:       cfg.Lives,
		round:       1,
		speedFactor: 1,
		timeScale:   1,
		cues:        nopCues{},
		board:       nopBoard{},
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		g.rng = rand.New(rand.NewSource(seed))
	}
	g.brain = ai.NewBrain(g.nav, g.rng)
	g.schedule = ai.NewSchedule(ai.ScheduleConfig{
		FirstTwoScatter: cfg.Schedule.FirstTwoScatter,
		LastTwoScatter:  cfg.Schedule.LastTwoScatter,
		Chase:           cfg.Schedule.Chase,
	})
	g.fright = ai.NewFrightened(cfg.Schedule.Frightened, cfg.Schedule.StartBlinkingAt)
	g.resetBoard()
	g.enterIntro()
	return g
}

// Update advances the game by dt seconds of wall time. input is the
// direction requested this tick, DirNone for none.
func (g *Game) Update(dt float64, input entities.Direction) {
	dt *= g.timeScale
	if dt <= 0 {
		return
	}
	if dt > maxTickDelta {
		dt = maxTickDelta
	}
	limit := g.stepLimit()
	for dt > 0 {
		step := math.Min(dt, limit)
		g.step(step, input)
		input = entities.DirNone
		dt -= step
	}
}

func (g *Game) step(dt float64, input entities.Direction) {
	switch g.phase {
	case PhaseIntro:
		if g.countdown(dt) {
			g.phase = PhasePlaying
		}
	case PhasePlaying:
		g.play(dt, input)
	case PhaseGhostEaten:
		if g.countdown(dt) {
			g.phase = PhasePlaying
		}
	case PhaseDying:
		if !g.countdown(dt) {
			return
		}
		if g.lives <= 0 {
			g.phase = PhaseGameOver
			g.cues.Cue(CueGameOver)
			return
		}
		g.resetBoard()
		g.enterIntro()
	case PhaseRoundComplete:
		if g.countdown(dt) {
			g.nextRound()
		}
	}
}

// countdown runs the phase timer and reports when it expires.
func (g *Game) countdown(dt float64) bool {
	g.phaseTimer -= dt
	return g.phaseTimer <= 0
}

func (g *Game) enter(p Phase, d float64) {
	g.phase = p
	g.phaseTimer = d
}

func (g *Game) enterIntro() {
	g.enter(PhaseIntro, g.cfg.Delays.Intro)
	g.cues.Cue(CueIntro)
}

// resetBoard puts every entity back on its start tile. Pellets stay.
func (g *Game) resetBoard() {
	m := g.level.Map
	start := g.level.Player
	g.player = entities.Player{
		Pos:        m.TileCenter(start.Tile),
		CurrentDir: start.Dir,
		Speed:      g.cfg.Speeds.Player,
	}
	g.player.Blocked = !g.nav.Place(entities.IDPlayer, start.Tile, start.Dir, false)

	g.fright.Stop()
	g.ghostsEaten = 0
	g.ghosts = g.ghosts[:0]
	for _, s := range g.level.Ghosts {
		gh := &entities.Ghost{
			ID:         s.ID,
			Pos:        m.TileCenter(s.Tile),
			CurrentDir: s.Dir,
			Mode:       g.schedule.Mode(),
			PrevMode:   g.schedule.Mode(),
		}
		if m.IsBoxTile(s.Tile) {
			gh.House = entities.HouseWaiting
			gh.WaitTimer = g.cfg.House.Release(s.ID)
			g.nav.SetTarget(s.ID, s.Tile)
		} else {
			g.nav.Place(s.ID, s.Tile, s.Dir, false)
		}
		gh.Speed = g.ghostSpeed(gh)
		g.ghosts = append(g.ghosts, gh)
	}
}

func (g *Game) nextRound() {
	g.round++
	g.level.Map.ResetPellets()
	g.speedFactor = math.Min(math.Pow(g.cfg.Speeds.RoundMultiplier, float64(g.round-1)), g.cfg.Speeds.MaxMultiplier)
	g.schedule.Reset()
	g.fruitClock, g.fruitLeft = 0, 0
	g.fruitShown, g.fruitVisible = false, false
	g.resetBoard()
	g.enterIntro()
}

// stepLimit is the substep that keeps the fastest entity under half a
// tile per step, at most maxStep.
func (g *Game) stepLimit() float64 {
	top := math.Max(g.cfg.Speeds.Player, g.cfg.Speeds.Top()*g.speedFactor)
	if top <= 0 {
		return maxStep
	}
	return math.Min(maxStep, stepFraction*float64(g.level.Map.TileSize)/top)
}

func (g *Game) ghostSpeed(gh *entities.Ghost) float64 {
	s := g.cfg.Speeds.Ghost
	switch gh.Mode {
	case entities.ModeFrightened:
		s = g.cfg.Speeds.Frightened
	case entities.ModeConsumed:
		s = g.cfg.Speeds.Consumed
	}
	return s * g.speedFactor
}

// SetTimeScale multiplies the simulated time per Update. 0 freezes the game.
func (g *Game) SetTimeScale(s float64) {
	if s < 0 {
		s = 0
	}
	g.timeScale = s
}

func (g *Game) TimeScale() float64 { return g.timeScale }

func (g *Game) Score() int { return g.score }

func (g *Game) Lives() int { return g.lives }

func (g *Game) Round() int { return g.round }

func (g *Game) Phase() Phase { return g.phase }

func (g *Game) Level() *tilemap.Level { return g.level }

func (g *Game) Player() entities.Player { return g.player }

func (g *Game) PlayerPosition() entities.Vec { return g.player.Pos }

// Ghosts returns a snapshot of every ghost in level order.
func (g *Game) Ghosts() []entities.Ghost {
	out := make([]entities.Ghost, len(g.ghosts))
	for i, gh := range g.ghosts {
		out[i] = *gh
	}
	return out
}

func (g *Game) PelletsRemaining() int { return g.level.Map.PelletsRemaining() }

// Mode is the scatter/chase mode of the global clock.
func (g *Game) Mode() entities.GhostMode { return g.schedule.Mode() }

func (g *Game) Frightened() bool { return g.fright.Active() }

func (g *Game) FruitVisible() bool { return g.fruitVisible }

// FruitTile is where the bonus fruit appears.
func (g *Game) FruitTile() entities.Coord { return g.level.Player.Tile }

// FruitPoints is the value of this round's fruit.
func (g *Game) FruitPoints() int { return g.cfg.Points.FruitPoints(g.round) }
