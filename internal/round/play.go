package round

import (
	"github.com/tferrerm/unity-pac/internal/ai"
	"github.com/tferrerm/unity-pac/internal/entities"
	"github.com/tferrerm/unity-pac/internal/motion"
)

// play runs one tick of PhasePlaying.
func (g *Game) play(dt float64, input entities.Direction) {
	g.updateModes(dt)
	g.updateHouse(dt)
	g.movePlayer(dt, input)
	for _, gh := range g.ghosts {
		g.moveGhost(gh, dt)
	}
	g.collide()
	if g.phase != PhasePlaying {
		return
	}
	g.updateFruit(dt)
	if g.level.Map.PelletsRemaining() == 0 {
		g.enter(PhaseRoundComplete, g.cfg.Delays.RoundEnd)
		g.cues.Cue(CueRoundComplete)
	}
}

// updateModes runs the scatter/chase clock, or the frightened timer
// while it is active.
func (g *Game) updateModes(dt float64) {
	if !g.fright.Active() {
		flips := g.schedule.Update(dt)
		mode := g.schedule.Mode()
		for _, gh := range g.ghosts {
			if gh.Mode != entities.ModeScatter && gh.Mode != entities.ModeChase {
				continue
			}
			gh.Mode = mode
			if flips%2 == 1 && gh.Roaming() {
				gh.ReversePending = true
			}
		}
		return
	}

	blink, over := g.fright.Update(dt)
	if blink {
		for _, gh := range g.ghosts {
			if gh.Mode == entities.ModeFrightened {
				gh.Blinking = true
			}
		}
		g.cues.Cue(CueFrightenedEnding)
	}
	if over {
		for _, gh := range g.ghosts {
			if gh.Mode == entities.ModeFrightened {
				gh.Mode = gh.PrevMode
				gh.Blinking = false
				gh.Speed = g.ghostSpeed(gh)
			}
		}
		g.cues.Cue(CueFrightenedOver)
	}
}

// frighten starts or restarts frightened mode. Consumed ghosts are immune
// and ghosts already frightened keep their saved mode.
func (g *Game) frighten() {
	g.fright.Start()
	g.ghostsEaten = 0
	for _, gh := range g.ghosts {
		if gh.Mode == entities.ModeConsumed {
			continue
		}
		if gh.Mode != entities.ModeFrightened {
			gh.PrevMode = gh.Mode
			gh.Mode = entities.ModeFrightened
		}
		gh.Blinking = false
		gh.Speed = g.ghostSpeed(gh)
		if gh.House == entities.HouseOutside {
			gh.ReversePending = true
		}
	}
}

func (g *Game) updateHouse(dt float64) {
	for _, gh := range g.ghosts {
		if gh.House != entities.HouseWaiting {
			continue
		}
		gh.WaitTimer -= dt
		if gh.WaitTimer <= 0 {
			g.release(gh)
		}
	}
}

// release sends a waiting ghost toward the door. The ghost stands on a
// tile center, so it may pick any direction.
func (g *Game) release(gh *entities.Ghost) {
	tile := g.nav.Target(gh.ID)
	gh.House = entities.HouseLeaving
	gh.CurrentDir = entities.DirNone
	gh.ReversePending = false
	target, ignore := g.brain.Target(gh, tile, g.view())
	dir := g.brain.ChooseDirection(gh, tile, target, ignore)
	if !dir.Valid() {
		gh.House = entities.HouseWaiting
		gh.WaitTimer = g.cfg.House.Revive
		return
	}
	gh.CurrentDir = dir
	g.nav.SetTarget(gh.ID, g.level.Map.Step(tile, dir))
}

func (g *Game) movePlayer(dt float64, input entities.Direction) {
	p := &g.player
	g.nav.ValidateInput(p, input)
	if p.Blocked {
		g.eatFruitAt(g.nav.Target(entities.IDPlayer))
		return
	}
	proposed := motion.Advance(p.Pos, p.Speed, p.CurrentDir, dt, g.level.Map.HalfWidth())
	out := g.nav.Validate(entities.IDPlayer, proposed, p.CurrentDir, p.DesiredDir, false)
	p.Pos = out.Pos
	p.CurrentDir = out.Dir
	p.Blocked = out.Blocked
	if out.Turned {
		p.DesiredDir = entities.DirNone
	}
	if out.Arrived {
		g.visit(entities.IDPlayer, out.Tile)
		g.eatAt(out.Tile)
	}
}

func (g *Game) moveGhost(gh *entities.Ghost, dt float64) {
	if gh.House == entities.HouseWaiting {
		return
	}
	m := g.level.Map
	gh.Speed = g.ghostSpeed(gh)
	proposed := motion.Advance(gh.Pos, gh.Speed, gh.CurrentDir, dt, m.HalfWidth())
	if !g.nav.HasReachedTarget(gh.ID, proposed, gh.CurrentDir) {
		gh.Pos = proposed
		return
	}

	tile := g.nav.Target(gh.ID)
	g.visit(gh.ID, tile)
	entrance := m.BoxDoorEntrance()
	switch {
	case gh.House == entities.HouseLeaving && tile == entrance:
		gh.House = entities.HouseOutside
	case gh.House == entities.HouseOutside && gh.Mode == entities.ModeConsumed && tile == entrance:
		gh.House = entities.HouseEntering
		gh.BoxTarget = m.RandomBoxTile(g.rng)
	case gh.House == entities.HouseEntering && tile == gh.BoxTarget:
		g.revive(gh, tile)
		return
	}

	target, ignore := g.brain.Target(gh, tile, g.view())
	dir := g.brain.ChooseDirection(gh, tile, target, ignore)
	out := g.nav.Validate(gh.ID, proposed, gh.CurrentDir, dir, ignore)
	gh.Pos = out.Pos
	gh.CurrentDir = out.Dir
}

// revive parks a consumed ghost on its box tile until it may leave.
func (g *Game) revive(gh *entities.Ghost, tile entities.Coord) {
	gh.House = entities.HouseWaiting
	gh.WaitTimer = g.cfg.House.Revive
	gh.Mode = g.schedule.Mode()
	gh.PrevMode = gh.Mode
	gh.Blinking = false
	gh.ReversePending = false
	gh.Pos = g.level.Map.TileCenter(tile)
	gh.Speed = g.ghostSpeed(gh)
	g.nav.SetTarget(gh.ID, tile)
}

// view is the board as ghosts see it when picking targets.
func (g *Game) view() ai.View {
	v := ai.View{
		PlayerTile: g.entityTile(entities.IDPlayer, g.player.CurrentDir, g.player.Blocked),
		PlayerDir:  g.player.CurrentDir,
	}
	v.BlinkyTile = v.PlayerTile
	for _, gh := range g.ghosts {
		if gh.ID == entities.IDBlinky {
			v.BlinkyTile = g.entityTile(gh.ID, gh.CurrentDir, gh.House == entities.HouseWaiting)
		}
	}
	return v
}

// entityTile is the tile an entity is on. A stopped entity targets its
// own tile.
func (g *Game) entityTile(id entities.ID, dir entities.Direction, stopped bool) entities.Coord {
	if stopped || !dir.Valid() {
		return g.nav.Target(id)
	}
	return g.nav.CurrentTile(id, dir)
}

func (g *Game) visit(id entities.ID, tile entities.Coord) {
	if g.onVisit != nil {
		g.onVisit(id, tile)
	}
}

func (g *Game) eatAt(tile entities.Coord) {
	ate, power := g.level.Map.EatPelletAt(tile.X, tile.Y)
	switch {
	case power:
		g.award(g.cfg.Points.PowerPellet)
		g.cues.Cue(CuePowerPellet)
		g.frighten()
	case ate:
		g.award(g.cfg.Points.Pellet)
		g.cues.Cue(CueChomp)
	}
	g.eatFruitAt(tile)
}

func (g *Game) eatFruitAt(tile entities.Coord) {
	if !g.fruitVisible || tile != g.FruitTile() {
		return
	}
	g.fruitVisible = false
	g.award(g.FruitPoints())
	g.cues.Cue(CueFruitEaten)
}

// award adds points and grants the one extra life when its threshold is
// crossed.
func (g *Game) award(points int) {
	if points == 0 {
		return
	}
	g.score += points
	g.board.PointsAwarded(points, g.score)
	if !g.extraLife && g.cfg.Points.ExtraLifeAt > 0 && g.score >= g.cfg.Points.ExtraLifeAt {
		g.extraLife = true
		g.lives++
		g.board.LivesChanged(g.lives)
		g.cues.Cue(CueExtraLife)
	}
}

// collide checks the player against every ghost outside the box.
func (g *Game) collide() {
	radius := float64(g.level.Map.TileSize) / 2
	for _, gh := range g.ghosts {
		if gh.House != entities.HouseOutside {
			continue
		}
		if gh.Pos.Sub(g.player.Pos).Len() >= radius {
			continue
		}
		switch gh.Mode {
		case entities.ModeConsumed:
		case entities.ModeFrightened:
			g.eatGhost(gh)
		default:
			g.die()
			return
		}
	}
}

// eatGhost scores 2^n * base for the n-th ghost of this power pellet.
func (g *Game) eatGhost(gh *entities.Ghost) {
	g.ghostsEaten++
	g.award(g.cfg.Points.GhostBase << g.ghostsEaten)
	gh.Mode = entities.ModeConsumed
	gh.Blinking = false
	gh.ReversePending = false
	gh.Speed = g.ghostSpeed(gh)
	g.cues.Cue(CueGhostEaten)
	g.enter(PhaseGhostEaten, g.cfg.Delays.GhostEaten)
}

func (g *Game) die() {
	g.lives--
	g.board.LivesChanged(g.lives)
	g.fright.Stop()
	g.cues.Cue(CueDeath)
	g.enter(PhaseDying, g.cfg.Delays.Death)
}

// updateFruit shows the fruit once per round and hides it when its time
// runs out.
func (g *Game) updateFruit(dt float64) {
	if g.fruitVisible {
		g.fruitLeft -= dt
		if g.fruitLeft <= 0 {
			g.fruitVisible = false
		}
		return
	}
	if g.fruitShown {
		return
	}
	g.fruitClock += dt
	if g.fruitClock > g.cfg.Fruit.AppearAfter {
		g.fruitShown = true
		g.fruitVisible = true
		g.fruitLeft = g.cfg.Fruit.Duration
		g.cues.Cue(CueFruitShown)
	}
}
