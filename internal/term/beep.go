package term

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/tferrerm/unity-pac/internal/round"
)

const sampleRate = beep.SampleRate(44100)

type tone struct {
	freq float64
	dur  time.Duration
}

var cueTones = map[round.Cue]tone{
	round.CueIntro:            {523, 300 * time.Millisecond},
	round.CueChomp:            {440, 30 * time.Millisecond},
	round.CuePowerPellet:      {330, 120 * time.Millisecond},
	round.CueFrightenedEnding: {660, 80 * time.Millisecond},
	round.CueFrightenedOver:   {392, 80 * time.Millisecond},
	round.CueGhostEaten:       {880, 100 * time.Millisecond},
	round.CueDeath:            {196, 400 * time.Millisecond},
	round.CueExtraLife:        {988, 250 * time.Millisecond},
	round.CueFruitShown:       {740, 60 * time.Millisecond},
	round.CueFruitEaten:       {1047, 120 * time.Millisecond},
	round.CueRoundComplete:    {784, 350 * time.Millisecond},
	round.CueGameOver:         {147, 600 * time.Millisecond},
}

// Beeper plays a short sine tone per cue on the speaker. A Beeper whose
// speaker failed to open stays silent.
type Beeper struct {
	mu   sync.Mutex
	init bool
}

// NewBeeper opens the speaker. The returned Beeper is usable even when
// err is non-nil.
func NewBeeper() (*Beeper, error) {
	b := &Beeper{}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return b, err
	}
	b.init = true
	return b, nil
}

func (b *Beeper) Cue(c round.Cue) {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.init {
		return
	}
	t, ok := cueTones[c]
	if !ok {
		return
	}
	sine, err := generators.SineTone(sampleRate, t.freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(t.dur), sine))
}

func (b *Beeper) Close() {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.init {
		speaker.Close()
		b.init = false
	}
}
