package ai

import (
	"math"
	"math/rand"

	"github.com/tferrerm/unity-pac/internal/entities"
	"github.com/tferrerm/unity-pac/internal/navigation"
	"github.com/tferrerm/unity-pac/internal/tilemap"
)

const (
	pinkyLead     = 4
	inkyLead      = 2
	clydeShyRange = 8
)

// View is what a ghost sees of the board when it picks a target.
type View struct {
	PlayerTile entities.Coord
	PlayerDir  entities.Direction
	BlinkyTile entities.Coord
}

// Brain picks ghost headings at tile centers. Its random source drives
// frightened moves; seed it for reproducible games.
type Brain struct {
	nav *navigation.Navigator
	rng *rand.Rand
}

func NewBrain(nav *navigation.Navigator, rng *rand.Rand) *Brain {
	return &Brain{nav: nav, rng: rng}
}

// ChaseTarget applies the ghost's personality.
func ChaseTarget(m *tilemap.TileMap, id entities.ID, ghostTile entities.Coord, v View) entities.Coord {
	switch id {
	case entities.IDBlinky:
		return v.PlayerTile
	case entities.IDPinky:
		return v.PlayerTile.Add(v.PlayerDir, pinkyLead)
	case entities.IDInky:
		pivot := v.PlayerTile.Add(v.PlayerDir, inkyLead)
		return entities.Coord{X: 2*pivot.X - v.BlinkyTile.X, Y: 2*pivot.Y - v.BlinkyTile.Y}
	case entities.IDClyde:
		if ghostTile.Distance(v.PlayerTile) > clydeShyRange {
			return v.PlayerTile
		}
		return m.Corner(id)
	default:
		return v.PlayerTile
	}
}

// Target returns where g is heading and whether the box door is passable
// on the way.
func (b *Brain) Target(g *entities.Ghost, ghostTile entities.Coord, v View) (entities.Coord, bool) {
	m := b.nav.Map()
	switch g.House {
	case entities.HouseLeaving:
		return m.BoxDoorEntrance(), true
	case entities.HouseEntering:
		return g.BoxTarget, true
	}
	switch g.Mode {
	case entities.ModeConsumed:
		return m.BoxDoorEntrance(), true
	case entities.ModeScatter:
		return m.Corner(g.ID), false
	default:
		return ChaseTarget(m, g.ID, ghostTile, v), false
	}
}

// ChooseDirection picks the heading for g at tile. A pending reversal
// wins when legal. Otherwise reversing is excluded unless it is the only
// way out, a single candidate is taken as is, frightened ghosts outside
// the box pick at random and everyone else takes the neighbor nearest to
// target, ties going to the earlier of Up, Down, Left, Right.
func (b *Brain) ChooseDirection(g *entities.Ghost, tile, target entities.Coord, ignoreBoxDoor bool) entities.Direction {
	legal := b.nav.LegalDirections(tile, ignoreBoxDoor)
	if len(legal) == 0 {
		g.ReversePending = false
		return g.CurrentDir
	}

	back := entities.DirNone
	if g.CurrentDir.Valid() {
		back = g.CurrentDir.Opposite()
	}
	if g.ReversePending {
		g.ReversePending = false
		if back != entities.DirNone && contains(legal, back) {
			return back
		}
	}

	candidates := make([]entities.Direction, 0, len(legal))
	for _, d := range legal {
		if d != back {
			candidates = append(candidates, d)
		}
	}
	if len(candidates) == 0 {
		candidates = legal
	}
	if len(candidates) == 1 {
		return candidates[0]
	}

	if g.Mode == entities.ModeFrightened && g.House == entities.HouseOutside {
		return candidates[b.rng.Intn(len(candidates))]
	}

	m := b.nav.Map()
	best := candidates[0]
	bestDist := math.Inf(1)
	for _, d := range candidates {
		if dist := m.Step(tile, d).Distance(target); dist < bestDist {
			best, bestDist = d, dist
		}
	}
	return best
}

func contains(dirs []entities.Direction, d entities.Direction) bool {
	for _, x := range dirs {
		if x == d {
			return true
		}
	}
	return false
}
