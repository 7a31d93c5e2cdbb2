// Package replay records the per-tick input of a game and plays it back.
// A game is deterministic given its seed, level and inputs, so a session
// reproduces the exact same moves.
package replay

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/tferrerm/unity-pac/internal/config"
	"github.com/tferrerm/unity-pac/internal/entities"
	"github.com/tferrerm/unity-pac/internal/round"
	"github.com/tferrerm/unity-pac/internal/tilemap"
)

// Frame is one Update call.
type Frame struct {
	Dt    float64            `msgpack:"dt"`
	Input entities.Direction `msgpack:"in"`
}

type Session struct {
	ID      string    `msgpack:"id"`
	Created time.Time `msgpack:"created"`
	Seed    int64     `msgpack:"seed"`
	// Level is the level file path, empty for the embedded level.
	Level  string  `msgpack:"level"`
	Frames []Frame `msgpack:"frames"`
	Score  int     `msgpack:"score"`
}

type Recorder struct {
	s Session
}

// NewRecorder starts a session. A zero seed is replaced by one from the
// clock; pass Seed() to the game being recorded.
func NewRecorder(seed int64, level string) *Recorder {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Recorder{s: Session{
		ID:      uuid.New().String(),
		Created: time.Now().UTC(),
		Seed:    seed,
		Level:   level,
	}}
}

func (r *Recorder) Seed() int64 { return r.s.Seed }

func (r *Recorder) Record(dt float64, input entities.Direction) {
	r.s.Frames = append(r.s.Frames, Frame{Dt: dt, Input: input})
}

// Session returns the recording so far, stamped with the final score.
func (r *Recorder) Session(score int) *Session {
	s := r.s
	s.Score = score
	s.Frames = append([]Frame(nil), r.s.Frames...)
	return &s
}

func Save(w io.Writer, s *Session) error {
	if err := msgpack.NewEncoder(w).Encode(s); err != nil {
		return fmt.Errorf("encode replay %s: %w", s.ID, err)
	}
	return nil
}

func Load(r io.Reader) (*Session, error) {
	var s Session
	if err := msgpack.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode replay: %w", err)
	}
	return &s, nil
}

// SaveFile writes s to path through a temporary file.
func SaveFile(path string, s *Session) error {
	data, err := msgpack.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode replay %s: %w", s.ID, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func LoadFile(path string) (*Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Run plays s on a fresh game built from level and cfg with the session
// seed, and returns the game in its final state.
func Run(s *Session, level *tilemap.Level, cfg config.Config, opts ...round.Option) *round.Game {
	cfg.Seed = s.Seed
	g := round.New(level, cfg, opts...)
	for _, f := range s.Frames {
		g.Update(f.Dt, f.Input)
	}
	return g
}
