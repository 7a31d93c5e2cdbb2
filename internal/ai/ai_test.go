package ai

import (
	"math/rand"
	"testing"

	"github.com/tferrerm/unity-pac/internal/entities"
	"github.com/tferrerm/unity-pac/internal/navigation"
	"github.com/tferrerm/unity-pac/internal/tilemap"
)

var testSchedule = ScheduleConfig{FirstTwoScatter: 7, LastTwoScatter: 5, Chase: 20}

func TestScheduleTimeline(t *testing.T) {
	s := NewSchedule(testSchedule)
	steps := []struct {
		dt    float64
		mode  entities.GhostMode
		iter  int
		flips int
	}{
		{7.01, entities.ModeChase, 1, 1},
		{20, entities.ModeScatter, 2, 1},
		{7, entities.ModeChase, 2, 1},
		{20, entities.ModeScatter, 3, 1},
		{5, entities.ModeChase, 3, 1},
		{20, entities.ModeScatter, 4, 1},
		{5, entities.ModeChase, 4, 1},
		{1000, entities.ModeChase, 4, 0},
	}
	for i, st := range steps {
		flips := s.Update(st.dt)
		if s.Mode() != st.mode || s.Iteration() != st.iter || flips != st.flips {
			t.Fatalf("step %d: mode=%v iter=%d flips=%d, want %v %d %d",
				i, s.Mode(), s.Iteration(), flips, st.mode, st.iter, st.flips)
		}
	}
}

func TestScheduleBoundaryIsExclusive(t *testing.T) {
	s := NewSchedule(testSchedule)
	if s.Update(7) != 0 || s.Mode() != entities.ModeScatter {
		t.Fatal("flip must wait until the duration is exceeded")
	}
	s.Reset()
	if s.Elapsed() != 0 || s.Iteration() != 1 {
		t.Fatal("reset did not rewind the clock")
	}
}

func TestFrightenedTimer(t *testing.T) {
	f := NewFrightened(10, 7)
	if blink, over := f.Update(1); blink || over {
		t.Fatal("inactive timer must not fire")
	}
	f.Start()
	blinks := 0
	if blink, over := f.Update(7.01); !blink || over {
		t.Fatalf("at 7.01 blink=%v over=%v", blink, over)
	} else {
		blinks++
	}
	if blink, _ := f.Update(0.5); blink {
		blinks++
	}
	if blinks != 1 {
		t.Fatalf("blink cue fired %d times", blinks)
	}
	if _, over := f.Update(2.5); !over || f.Active() {
		t.Fatal("expected frightened mode to end at 10.01")
	}
}

func TestFrightenedRestart(t *testing.T) {
	f := NewFrightened(10, 7)
	f.Start()
	f.Update(8)
	f.Start()
	if f.Elapsed() != 0 || f.Blinking() || !f.Active() {
		t.Fatalf("restart left elapsed=%v blinking=%v", f.Elapsed(), f.Blinking())
	}
}

func TestChaseTargets(t *testing.T) {
	m := tilemap.Default().Map
	v := View{
		PlayerTile: entities.Coord{X: 10, Y: 16},
		PlayerDir:  entities.DirUp,
		BlinkyTile: entities.Coord{X: 12, Y: 10},
	}
	tests := []struct {
		name  string
		id    entities.ID
		ghost entities.Coord
		want  entities.Coord
	}{
		{"blinky", entities.IDBlinky, entities.Coord{X: 1, Y: 1}, entities.Coord{X: 10, Y: 16}},
		{"pinky", entities.IDPinky, entities.Coord{X: 1, Y: 1}, entities.Coord{X: 10, Y: 12}},
		{"inky", entities.IDInky, entities.Coord{X: 1, Y: 1}, entities.Coord{X: 8, Y: 18}},
		{"clyde far", entities.IDClyde, entities.Coord{X: 1, Y: 1}, entities.Coord{X: 10, Y: 16}},
		{"clyde near", entities.IDClyde, entities.Coord{X: 9, Y: 14}, m.Corner(entities.IDClyde)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ChaseTarget(m, tc.id, tc.ghost, v); got != tc.want {
				t.Fatalf("ChaseTarget = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestBrainTarget(t *testing.T) {
	m := tilemap.Default().Map
	b := NewBrain(navigation.New(m), rand.New(rand.NewSource(1)))
	v := View{PlayerTile: entities.Coord{X: 10, Y: 16}, PlayerDir: entities.DirLeft}

	g := &entities.Ghost{ID: entities.IDPinky, Mode: entities.ModeScatter}
	if got, door := b.Target(g, entities.Coord{X: 5, Y: 5}, v); got != m.Corner(entities.IDPinky) || door {
		t.Fatalf("scatter target = %v door=%v", got, door)
	}
	g.House = entities.HouseLeaving
	if got, door := b.Target(g, entities.Coord{X: 10, Y: 9}, v); got != m.BoxDoorEntrance() || !door {
		t.Fatalf("leaving target = %v door=%v", got, door)
	}
	g.House = entities.HouseEntering
	g.BoxTarget = entities.Coord{X: 11, Y: 10}
	if got, _ := b.Target(g, entities.Coord{X: 10, Y: 8}, v); got != g.BoxTarget {
		t.Fatalf("entering target = %v", got)
	}
}

func TestChooseDirectionSingleExit(t *testing.T) {
	m := tilemap.Default().Map
	far := entities.Coord{X: 20, Y: 1}
	for _, mode := range []entities.GhostMode{entities.ModeScatter, entities.ModeChase, entities.ModeFrightened} {
		b := NewBrain(navigation.New(m), rand.New(rand.NewSource(7)))
		g := &entities.Ghost{ID: entities.IDBlinky, Mode: mode, CurrentDir: entities.DirLeft}
		if got := b.ChooseDirection(g, entities.Coord{X: 1, Y: 1}, far, false); got != entities.DirDown {
			t.Errorf("%v: got %v, want down", mode, got)
		}
	}
}

func TestChooseDirectionDeadEndReverses(t *testing.T) {
	wall, empty := tilemap.TileWall, tilemap.TileEmpty
	m := tilemap.New([][]tilemap.Tile{
		{wall, wall, wall, wall, wall},
		{wall, empty, empty, empty, wall},
		{wall, wall, wall, wall, wall},
	}, 8)
	b := NewBrain(navigation.New(m), rand.New(rand.NewSource(1)))
	g := &entities.Ghost{ID: entities.IDBlinky, Mode: entities.ModeChase, CurrentDir: entities.DirLeft}
	if got := b.ChooseDirection(g, entities.Coord{X: 1, Y: 1}, entities.Coord{X: 0, Y: 1}, false); got != entities.DirRight {
		t.Fatalf("got %v, want right", got)
	}
}

func TestChooseDirectionReversePending(t *testing.T) {
	m := tilemap.Default().Map
	b := NewBrain(navigation.New(m), rand.New(rand.NewSource(1)))
	g := &entities.Ghost{ID: entities.IDBlinky, Mode: entities.ModeChase, CurrentDir: entities.DirRight, ReversePending: true}
	if got := b.ChooseDirection(g, entities.Coord{X: 7, Y: 16}, entities.Coord{X: 20, Y: 16}, false); got != entities.DirLeft {
		t.Fatalf("got %v, want left", got)
	}
	if g.ReversePending {
		t.Fatal("reversal flag not consumed")
	}
	if got := b.ChooseDirection(g, entities.Coord{X: 7, Y: 16}, entities.Coord{X: 20, Y: 16}, false); got != entities.DirRight {
		t.Fatalf("second choice = %v, want right", got)
	}
}

func TestChooseDirectionNearestTieBreak(t *testing.T) {
	m := tilemap.Default().Map
	b := NewBrain(navigation.New(m), rand.New(rand.NewSource(1)))
	g := &entities.Ghost{ID: entities.IDBlinky, Mode: entities.ModeChase, CurrentDir: entities.DirLeft}
	junction := entities.Coord{X: 5, Y: 16}

	// (5,15) and (5,17) are equally far from (3,16); Up is enumerated first.
	if got := b.ChooseDirection(g, junction, entities.Coord{X: 3, Y: 16}, false); got != entities.DirUp {
		t.Fatalf("tie: got %v, want up", got)
	}
	if got := b.ChooseDirection(g, junction, entities.Coord{X: 5, Y: 21}, false); got != entities.DirDown {
		t.Fatalf("nearest: got %v, want down", got)
	}
}

func TestChooseDirectionFrightenedIsRandom(t *testing.T) {
	m := tilemap.Default().Map
	b := NewBrain(navigation.New(m), rand.New(rand.NewSource(42)))
	seen := map[entities.Direction]int{}
	for i := 0; i < 200; i++ {
		g := &entities.Ghost{ID: entities.IDInky, Mode: entities.ModeFrightened, CurrentDir: entities.DirLeft}
		seen[b.ChooseDirection(g, entities.Coord{X: 5, Y: 16}, entities.Coord{X: 5, Y: 1}, false)]++
	}
	if seen[entities.DirRight] != 0 {
		t.Fatal("frightened ghost reversed without a pending reversal")
	}
	if seen[entities.DirUp] == 0 || seen[entities.DirDown] == 0 {
		t.Fatalf("expected both exits, got %v", seen)
	}
}

func TestChooseDirectionLeavingBox(t *testing.T) {
	m := tilemap.Default().Map
	b := NewBrain(navigation.New(m), rand.New(rand.NewSource(1)))
	g := &entities.Ghost{ID: entities.IDPinky, Mode: entities.ModeScatter, House: entities.HouseLeaving}
	if got := b.ChooseDirection(g, entities.Coord{X: 10, Y: 9}, m.BoxDoorEntrance(), true); got != entities.DirUp {
		t.Fatalf("pinky: got %v, want up", got)
	}
	g = &entities.Ghost{ID: entities.IDInky, Mode: entities.ModeScatter, House: entities.HouseLeaving}
	if got := b.ChooseDirection(g, entities.Coord{X: 9, Y: 9}, m.BoxDoorEntrance(), true); got != entities.DirRight {
		t.Fatalf("inky: got %v, want right", got)
	}
}
