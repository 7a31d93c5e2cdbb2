package ai

// Frightened times one power pellet. Starting it again while active
// restarts the clock.
type Frightened struct {
	duration float64
	blinkAt  float64

	active   bool
	blinking bool
	timer    float64
}

func NewFrightened(duration, blinkAt float64) *Frightened {
	return &Frightened{duration: duration, blinkAt: blinkAt}
}

func (f *Frightened) Start() {
	f.active = true
	f.blinking = false
	f.timer = 0
}

func (f *Frightened) Stop() {
	f.active = false
	f.blinking = false
	f.timer = 0
}

func (f *Frightened) Active() bool { return f.active }

// Blinking is true once the ending cue has fired.
func (f *Frightened) Blinking() bool { return f.blinking }

func (f *Frightened) Elapsed() float64 { return f.timer }

// Update advances the timer. blink is true on the single tick the ending
// phase begins, over on the tick the mode runs out.
func (f *Frightened) Update(dt float64) (blink, over bool) {
	if !f.active {
		return false, false
	}
	f.timer += dt
	if !f.blinking && f.timer > f.blinkAt {
		f.blinking = true
		blink = true
	}
	if f.timer > f.duration {
		f.Stop()
		over = true
	}
	return blink, over
}
