// Package term runs a round in the terminal with tcell.
package term

import (
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/tferrerm/unity-pac/internal/config"
	"github.com/tferrerm/unity-pac/internal/entities"
	"github.com/tferrerm/unity-pac/internal/replay"
	"github.com/tferrerm/unity-pac/internal/round"
	"github.com/tferrerm/unity-pac/internal/tilemap"
)

const frameInterval = 16 * time.Millisecond

type Options struct {
	Config   config.Config
	Level    *tilemap.Level
	Cues     round.Cues
	Recorder *replay.Recorder
	// ReplayPath is where the recording is written on exit.
	ReplayPath string
	// OnExit receives the final score.
	OnExit func(score int)
}

type Host struct {
	opts   Options
	screen tcell.Screen
	round  *round.Game

	pending entities.Direction
	paused  bool
}

func New(screen tcell.Screen, opts Options) *Host {
	var roundOpts []round.Option
	if opts.Cues != nil {
		roundOpts = append(roundOpts, round.WithCues(opts.Cues))
	}
	if opts.Recorder != nil {
		opts.Config.Seed = opts.Recorder.Seed()
	}
	return &Host{
		opts:    opts,
		screen:  screen,
		round:   round.New(opts.Level, opts.Config, roundOpts...),
		pending: entities.DirNone,
	}
}

// Run opens the terminal, plays until the user quits and restores the
// terminal on return.
func Run(opts Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.HideCursor()

	h := New(screen, opts)
	h.loop()
	h.finish()
	return nil
}

func (h *Host) loop() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(h.screen.PollEvent, events, done)

	last := time.Now()
	for {
		select {
		case ev, ok := <-events:
			if !ok || !h.handleEvent(ev) {
				return
			}
		case now := <-ticker.C:
			h.tick(now.Sub(last).Seconds())
			last = now
			h.draw()
		}
	}
}

// pollEvents forwards events until poll returns nil or done closes.
// events is closed when poll runs dry.
func pollEvents(poll func() tcell.Event, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := poll()
		if ev == nil {
			close(events)
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// handleEvent returns false when the user asked to quit.
func (h *Host) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				h.paused = !h.paused
				return true
			}
		}
		if d := keyDirection(ev.Key(), ev.Rune()); d != entities.DirNone {
			h.pending = d
		}
	case *tcell.EventResize:
		h.screen.Sync()
	}
	return true
}

// keyDirection maps arrows, WASD and vi keys to a heading.
func keyDirection(k tcell.Key, r rune) entities.Direction {
	switch k {
	case tcell.KeyUp:
		return entities.DirUp
	case tcell.KeyDown:
		return entities.DirDown
	case tcell.KeyLeft:
		return entities.DirLeft
	case tcell.KeyRight:
		return entities.DirRight
	case tcell.KeyRune:
		switch r {
		case 'w', 'k':
			return entities.DirUp
		case 's', 'j':
			return entities.DirDown
		case 'a', 'h':
			return entities.DirLeft
		case 'd', 'l':
			return entities.DirRight
		}
	}
	return entities.DirNone
}

// tick feeds one frame of wall time to the round. A key press is handed
// over once; the round keeps it queued until the turn is legal.
func (h *Host) tick(dt float64) {
	if h.paused {
		return
	}
	in := h.pending
	h.pending = entities.DirNone
	if h.opts.Recorder != nil {
		h.opts.Recorder.Record(dt, in)
	}
	h.round.Update(dt, in)
}

func (h *Host) draw() {
	h.screen.Clear()
	for y, row := range frame(h.round, h.paused) {
		for x, c := range row {
			h.screen.SetContent(x, y, c.r, nil, c.style)
		}
	}
	h.screen.Show()
}

func (h *Host) finish() {
	score := h.round.Score()
	if h.opts.OnExit != nil {
		h.opts.OnExit(score)
	}
	if h.opts.Recorder != nil && h.opts.ReplayPath != "" {
		if err := replay.SaveFile(h.opts.ReplayPath, h.opts.Recorder.Session(score)); err != nil {
			log.Printf("[WARN] save replay: %v", err)
		}
	}
}
