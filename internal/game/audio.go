package game

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"

	"github.com/tferrerm/unity-pac/internal/round"
)

type SoundData struct {
	raw []byte
}

// AudioManager plays a short WAV for each game cue. With audio disabled
// it accepts cues and stays silent.
type AudioManager struct {
	ctx    *audio.Context
	sounds map[round.Cue]*SoundData
}

var (
	audioOnce sync.Once
	audioCtx  *audio.Context
)

// audioContext returns the process-wide context; ebiten allows only one.
func audioContext() *audio.Context {
	audioOnce.Do(func() {
		audioCtx = audio.NewContext(sampleRate)
	})
	return audioCtx
}

const sampleRate = 44100

// cueSounds maps cues to a file under the sounds directory and the beep
// synthesized when the file is missing.
var cueSounds = map[round.Cue]struct {
	file string
	ms   int
	freq float64
}{
	round.CueIntro:            {"intro.wav", 300, 523},
	round.CueChomp:            {"pellet.wav", 60, 880},
	round.CuePowerPellet:      {"power.wav", 150, 660},
	round.CueFrightenedEnding: {"ending.wav", 120, 990},
	round.CueFrightenedOver:   {"recover.wav", 80, 392},
	round.CueGhostEaten:       {"ghost.wav", 200, 440},
	round.CueDeath:            {"death.wav", 400, 220},
	round.CueExtraLife:        {"life.wav", 250, 1320},
	round.CueFruitShown:       {"bonus.wav", 60, 740},
	round.CueFruitEaten:       {"fruit.wav", 150, 1047},
	round.CueRoundComplete:    {"clear.wav", 350, 784},
	round.CueGameOver:         {"gameover.wav", 600, 165},
}

func NewAudioManager(soundsDir string, enabled bool) *AudioManager {
	if soundsDir == "" {
		soundsDir = "assets/sounds"
	}
	am := &AudioManager{sounds: make(map[round.Cue]*SoundData, len(cueSounds))}
	if enabled {
		am.ctx = audioContext()
	}
	for cue, s := range cueSounds {
		if sd, err := loadSoundData(soundsDir, s.file); err == nil {
			am.sounds[cue] = sd
			continue
		}
		am.sounds[cue] = &SoundData{raw: synthBeepWAV(sampleRate, s.ms, s.freq)}
	}
	return am
}

func loadSoundData(dir, file string) (*SoundData, error) {
	b, err := os.ReadFile(filepath.Join(dir, file))
	if err != nil {
		return nil, err
	}
	return &SoundData{raw: b}, nil
}

// Cue plays the sound for c, if it has one.
func (am *AudioManager) Cue(c round.Cue) {
	if am == nil {
		return
	}
	am.play(am.sounds[c])
}

func (am *AudioManager) play(sd *SoundData) {
	if am.ctx == nil || sd == nil || len(sd.raw) == 0 {
		return
	}
	// A fresh decoder per play lets cues overlap.
	stream, err := wav.Decode(am.ctx, bytes.NewReader(sd.raw))
	if err != nil {
		return
	}
	p, err := audio.NewPlayer(am.ctx, stream)
	if err != nil {
		return
	}
	p.Play()
}

// wavHeader is the 44-byte RIFF header of a PCM WAV file.
type wavHeader struct {
	RIFF          [4]byte
	ChunkSize     uint32
	WAVE          [4]byte
	Fmt           [4]byte
	FmtSize       uint32
	Format        uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	Data          [4]byte
	DataSize      uint32
}

const (
	beepVolume = 0.25
	// beepFade is the tail, in seconds, ramped to silence so the tone
	// ends without a click.
	beepFade = 0.01
)

// synthBeepWAV returns a 16-bit mono PCM WAV of a sine tone.
func synthBeepWAV(rate int, durationMs int, freq float64) []byte {
	n := rate * durationMs / 1000
	h := wavHeader{
		RIFF:          [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     uint32(36 + 2*n),
		WAVE:          [4]byte{'W', 'A', 'V', 'E'},
		Fmt:           [4]byte{'f', 'm', 't', ' '},
		FmtSize:       16,
		Format:        1,
		Channels:      1,
		SampleRate:    uint32(rate),
		ByteRate:      uint32(2 * rate),
		BlockAlign:    2,
		BitsPerSample: 16,
		Data:          [4]byte{'d', 'a', 't', 'a'},
		DataSize:      uint32(2 * n),
	}
	samples := make([]int16, n)
	fade := int(beepFade * float64(rate))
	for i := range samples {
		gain := beepVolume
		if left := n - i; left < fade {
			gain *= float64(left) / float64(fade)
		}
		phase := 2 * math.Pi * freq * float64(i) / float64(rate)
		samples[i] = int16(math.Sin(phase) * math.MaxInt16 * gain)
	}

	var buf bytes.Buffer
	buf.Grow(44 + 2*n)
	// Writes to a bytes.Buffer cannot fail.
	_ = binary.Write(&buf, binary.LittleEndian, h)
	_ = binary.Write(&buf, binary.LittleEndian, samples)
	return buf.Bytes()
}
