package game

import (
	"path/filepath"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tferrerm/unity-pac/internal/config"
	"github.com/tferrerm/unity-pac/internal/entities"
	"github.com/tferrerm/unity-pac/internal/replay"
	"github.com/tferrerm/unity-pac/internal/tilemap"
)

func newHost(t *testing.T, opts Options) *Game {
	t.Helper()
	if opts.Level == nil {
		opts.Level = tilemap.Default()
	}
	if opts.Config.Lives == 0 {
		opts.Config = config.Default()
		opts.Config.Seed = 1
	}
	if opts.Scale == 0 {
		opts.Scale = 2
	}
	return New(opts)
}

func TestLayoutMatchesScreenSize(t *testing.T) {
	g := newHost(t, Options{})
	w, h := g.Layout(0, 0)
	if w != g.ScreenWidth() || h != g.ScreenHeight() {
		t.Fatalf("layout mismatch: got %dx%d want %dx%d", w, h, g.ScreenWidth(), g.ScreenHeight())
	}
	if w != 21*16*2 || h != 23*16*2 {
		t.Fatalf("unexpected size %dx%d", w, h)
	}
}

func TestFitScale(t *testing.T) {
	if got := fitScale(1920, 1080, 336, 368); got <= 2 || got >= 2.3 {
		t.Fatalf("fitScale = %v", got)
	}
	if got := fitScale(0, 0, 336, 368); got != 1 {
		t.Fatalf("fitScale without a screen = %v, want 1", got)
	}
}

func TestDirFromKeys(t *testing.T) {
	tests := []struct {
		keys []ebiten.Key
		want entities.Direction
	}{
		{nil, entities.DirNone},
		{[]ebiten.Key{ebiten.KeyArrowLeft}, entities.DirLeft},
		{[]ebiten.Key{ebiten.KeyD}, entities.DirRight},
		{[]ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyW}, entities.DirUp},
	}
	for _, tc := range tests {
		held := map[ebiten.Key]bool{}
		for _, k := range tc.keys {
			held[k] = true
		}
		if got := dirFromKeys(func(k ebiten.Key) bool { return held[k] }); got != tc.want {
			t.Errorf("keys %v: got %v, want %v", tc.keys, got, tc.want)
		}
	}
}

func TestAppendNameFilters(t *testing.T) {
	if got := appendName("", []rune("Ann!?_1")); got != "Ann_1" {
		t.Fatalf("got %q", got)
	}
	if got := appendName("abcdefghijk", []rune("xyz")); got != "abcdefghijkx" {
		t.Fatalf("name not capped: %q", got)
	}
}

func TestScreenPosMapsTileCenters(t *testing.T) {
	m := tilemap.Default().Map
	x, y := screenPos(m, m.TileCenter(entities.Coord{X: 0, Y: 0}))
	if x != 8 || y != 8 {
		t.Fatalf("tile (0,0) at %v,%v", x, y)
	}
}

func TestHighScoreTracksPoints(t *testing.T) {
	g := newHost(t, Options{})
	g.playerName = "ann"
	g.PointsAwarded(10, 10)
	g.PointsAwarded(200, 210)
	if g.highScore != 210 || g.highScoreName != "ann" {
		t.Fatalf("high score %d by %q", g.highScore, g.highScoreName)
	}
}

func TestFinishSavesScoreAndReplay(t *testing.T) {
	dir := t.TempDir()
	lb, err := NewLeaderboard(dir)
	if err != nil {
		t.Fatal(err)
	}
	rec := replay.NewRecorder(77, "")
	path := filepath.Join(dir, "last.replay")
	g := newHost(t, Options{Leaderboard: lb, Recorder: rec, ReplayPath: path})
	g.playerName = "bob"
	g.enteringName = false

	for i := 0; i < 300; i++ {
		g.advance(entities.DirNone)
	}
	if g.round.Score() == 0 {
		t.Fatal("expected the player to eat pellets")
	}
	g.finish()
	g.finish()

	s, err := replay.LoadFile(path)
	if err != nil {
		t.Fatalf("load replay: %v", err)
	}
	if s.Seed != 77 || len(s.Frames) != 300 {
		t.Fatalf("replay seed %d frames %d", s.Seed, len(s.Frames))
	}
	if best := lb.Best(); best == nil || best.Name != "bob" || best.Score != g.round.Score() {
		t.Fatalf("best = %+v", best)
	}
}

func TestMenusHoldTheRound(t *testing.T) {
	g := newHost(t, Options{})
	for i := 0; i < 300; i++ {
		g.advance(entities.DirLeft)
	}
	if g.round.Score() != 0 {
		t.Fatal("round ran during name entry")
	}
	g.enteringName = false
	g.paused = true
	g.advance(entities.DirLeft)
	if g.round.Score() != 0 {
		t.Fatal("round ran while paused")
	}
}
