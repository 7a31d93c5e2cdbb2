package term

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/tferrerm/unity-pac/internal/config"
	"github.com/tferrerm/unity-pac/internal/entities"
	"github.com/tferrerm/unity-pac/internal/replay"
	"github.com/tferrerm/unity-pac/internal/round"
	"github.com/tferrerm/unity-pac/internal/tilemap"
)

func newHost(rec *replay.Recorder) *Host {
	cfg := config.Default()
	cfg.Seed = 1
	return New(nil, Options{Config: cfg, Level: tilemap.Default(), Recorder: rec})
}

func TestKeyDirection(t *testing.T) {
	tests := []struct {
		key  tcell.Key
		r    rune
		want entities.Direction
	}{
		{tcell.KeyUp, 0, entities.DirUp},
		{tcell.KeyDown, 0, entities.DirDown},
		{tcell.KeyLeft, 0, entities.DirLeft},
		{tcell.KeyRight, 0, entities.DirRight},
		{tcell.KeyRune, 'w', entities.DirUp},
		{tcell.KeyRune, 'j', entities.DirDown},
		{tcell.KeyRune, 'a', entities.DirLeft},
		{tcell.KeyRune, 'l', entities.DirRight},
		{tcell.KeyRune, 'x', entities.DirNone},
		{tcell.KeyEnter, 0, entities.DirNone},
	}
	for _, tt := range tests {
		if got := keyDirection(tt.key, tt.r); got != tt.want {
			t.Errorf("keyDirection(%v, %q) = %v, want %v", tt.key, tt.r, got, tt.want)
		}
	}
}

func TestGlyphs(t *testing.T) {
	if c := tileGlyph(tilemap.TileWall); c.r != '█' {
		t.Errorf("wall glyph = %q", c.r)
	}
	if c := tileGlyph(tilemap.TileBox); c.r != ' ' {
		t.Errorf("box glyph = %q, want blank", c.r)
	}
	if r := playerGlyph(entities.DirLeft); r != '>' {
		t.Errorf("player facing left = %q", r)
	}
	if r := playerGlyph(entities.DirNone); r != 'O' {
		t.Errorf("stopped player = %q", r)
	}
	eyes := ghostGlyph(entities.Ghost{ID: entities.IDBlinky, Mode: entities.ModeConsumed})
	if eyes.r != '"' {
		t.Errorf("consumed ghost = %q", eyes.r)
	}
	blue := ghostGlyph(entities.Ghost{ID: entities.IDBlinky, Mode: entities.ModeFrightened})
	if blue.r != 'm' || blue.style != styleFrightened {
		t.Errorf("frightened ghost = %q", blue.r)
	}
}

func TestFrameLayout(t *testing.T) {
	h := newHost(nil)
	m := h.round.Level().Map
	rows := frame(h.round, false)
	if len(rows) != m.Height+2 {
		t.Fatalf("rows = %d, want %d", len(rows), m.Height+2)
	}
	start := h.round.Level().Player.Tile
	p := h.round.Player()
	if got := rows[start.Y][start.X].r; got != playerGlyph(p.CurrentDir) {
		t.Errorf("player cell = %q", got)
	}
	hud := runes(rows[m.Height])
	if !strings.HasPrefix(hud, "SCORE 0  LIVES 3  ROUND 1") {
		t.Errorf("hud = %q", hud)
	}
	if got := runes(rows[m.Height+1]); got != "READY!" {
		t.Errorf("status = %q", got)
	}
	if got := runes(frame(h.round, true)[m.Height+1]); got != "PAUSED" {
		t.Errorf("paused status = %q", got)
	}
}

func TestPauseHoldsTheRound(t *testing.T) {
	rec := replay.NewRecorder(5, "default")
	h := newHost(rec)
	if !h.handleEvent(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)) {
		t.Fatal("space quit the game")
	}
	for i := 0; i < 10; i++ {
		h.tick(1.0 / 60)
	}
	if n := len(rec.Session(0).Frames); n != 0 {
		t.Errorf("recorded %d frames while paused", n)
	}
	h.handleEvent(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	h.tick(1.0 / 60)
	if n := len(rec.Session(0).Frames); n != 1 {
		t.Errorf("recorded %d frames, want 1", n)
	}
}

func TestKeyPressIsHandedOverOnce(t *testing.T) {
	rec := replay.NewRecorder(5, "default")
	h := newHost(rec)
	h.handleEvent(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	h.tick(1.0 / 60)
	h.tick(1.0 / 60)
	frames := rec.Session(0).Frames
	if frames[0].Input != entities.DirLeft || frames[1].Input != entities.DirNone {
		t.Errorf("inputs = %v, %v", frames[0].Input, frames[1].Input)
	}
}

func TestQuitKeys(t *testing.T) {
	h := newHost(nil)
	for _, ev := range []*tcell.EventKey{
		tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone),
	} {
		if h.handleEvent(ev) {
			t.Errorf("%v did not quit", ev.Name())
		}
	}
}

func TestFinishReportsScore(t *testing.T) {
	var got = -1
	cfg := config.Default()
	h := New(nil, Options{Config: cfg, Level: tilemap.Default(), OnExit: func(s int) { got = s }})
	h.finish()
	if got != 0 {
		t.Errorf("OnExit score = %d, want 0", got)
	}
}

func TestBeeperCoversEveryCue(t *testing.T) {
	for c := round.CueIntro; c <= round.CueGameOver; c++ {
		if _, ok := cueTones[c]; !ok {
			t.Errorf("no tone for %v", c)
		}
	}
	var nilBeeper *Beeper
	nilBeeper.Cue(round.CueChomp)
	nilBeeper.Close()
	(&Beeper{}).Cue(round.CueDeath)
}

func TestPollEventsStopsWhenDone(t *testing.T) {
	poll := func() tcell.Event { return tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone) }
	events := make(chan tcell.Event, 1)
	done := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		pollEvents(poll, events, done)
		close(exited)
	}()
	<-events
	close(done)
	select {
	case <-exited:
	case <-time.After(time.Second):
		t.Fatal("poller still blocked after done closed")
	}
}

func TestPollEventsClosesOnNil(t *testing.T) {
	evs := []tcell.Event{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), nil}
	poll := func() tcell.Event {
		ev := evs[0]
		evs = evs[1:]
		return ev
	}
	events := make(chan tcell.Event, 2)
	pollEvents(poll, events, make(chan struct{}))
	if ev := <-events; ev == nil {
		t.Fatal("lost the key event")
	}
	if _, ok := <-events; ok {
		t.Fatal("events not closed")
	}
}

func runes(row []cell) string {
	var b strings.Builder
	for _, c := range row {
		b.WriteRune(c.r)
	}
	return b.String()
}
