// Package round runs a game of Pac-Man: it owns score, lives and the
// phase machine, and drives navigation and ghost AI once per tick.
package round

import (
	"fmt"
	"math/rand"

	"github.com/tferrerm/unity-pac/internal/entities"
)

type Phase int

const (
	// PhaseIntro is the "ready" pause before play starts or resumes.
	PhaseIntro Phase = iota
	PhasePlaying
	// PhaseGhostEaten freezes the board while the ghost points show.
	PhaseGhostEaten
	PhaseDying
	PhaseRoundComplete
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseIntro:
		return "intro"
	case PhasePlaying:
		return "playing"
	case PhaseGhostEaten:
		return "ghost-eaten"
	case PhaseDying:
		return "dying"
	case PhaseRoundComplete:
		return "round-complete"
	case PhaseGameOver:
		return "game-over"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Cue is a sound or animation event for the host.
type Cue int

const (
	CueIntro Cue = iota
	CueChomp
	CuePowerPellet
	// CueFrightenedEnding fires once when frightened ghosts start blinking.
	CueFrightenedEnding
	CueFrightenedOver
	CueGhostEaten
	CueDeath
	CueExtraLife
	CueFruitShown
	CueFruitEaten
	CueRoundComplete
	CueGameOver
)

func (c Cue) String() string {
	switch c {
	case CueIntro:
		return "intro"
	case CueChomp:
		return "chomp"
	case CuePowerPellet:
		return "power-pellet"
	case CueFrightenedEnding:
		return "frightened-ending"
	case CueFrightenedOver:
		return "frightened-over"
	case CueGhostEaten:
		return "ghost-eaten"
	case CueDeath:
		return "death"
	case CueExtraLife:
		return "extra-life"
	case CueFruitShown:
		return "fruit-shown"
	case CueFruitEaten:
		return "fruit-eaten"
	case CueRoundComplete:
		return "round-complete"
	case CueGameOver:
		return "game-over"
	default:
		return fmt.Sprintf("Cue(%d)", int(c))
	}
}

// Cues receives sound and animation events.
type Cues interface {
	Cue(c Cue)
}

// Scoreboard observes score and lives. total is the score after delta.
type Scoreboard interface {
	PointsAwarded(delta, total int)
	LivesChanged(lives int)
}

// TileVisitFunc is called every time an entity reaches a tile center.
type TileVisitFunc func(id entities.ID, tile entities.Coord)

type Option func(*Game)

func WithCues(c Cues) Option {
	return func(g *Game) { g.cues = c }
}

func WithScoreboard(s Scoreboard) Option {
	return func(g *Game) { g.board = s }
}

func WithTileVisits(fn TileVisitFunc) Option {
	return func(g *Game) { g.onVisit = fn }
}

// WithRand replaces the ghost random source. It overrides the seed from
// the configuration.
func WithRand(r *rand.Rand) Option {
	return func(g *Game) { g.rng = r }
}

type nopCues struct{}

func (nopCues) Cue(Cue) {}

type nopBoard struct{}

func (nopBoard) PointsAwarded(int, int) {}
func (nopBoard) LivesChanged(int)       {}
