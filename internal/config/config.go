// Package config holds every gameplay tunable. Values come from
// Default, optionally overlaid by a YAML file and PACMAN_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/tferrerm/unity-pac/internal/entities"
	"github.com/tferrerm/unity-pac/internal/tilemap"
)

const DefaultFile = "pacman.yaml"

// SimStep is the longest slice of time, in seconds, the game simulates
// at once. An entity must move less than half a tile per step or it can
// skip a tile center.
const SimStep = 1.0 / 60

type Config struct {
	Schedule Schedule `yaml:"schedule"`
	Speeds   Speeds   `yaml:"speeds"`
	Points   Points   `yaml:"points"`
	Delays   Delays   `yaml:"delays"`
	House    House    `yaml:"house"`
	Fruit    Fruit    `yaml:"fruit"`
	Lives    int      `yaml:"lives"`

	// Seed feeds the ghost random source; 0 picks one from the clock.
	Seed int64 `yaml:"seed"`

	Audio     bool   `yaml:"audio"`
	ConfigDir string `yaml:"config_dir"`
	Level     string `yaml:"level"`
}

// Schedule durations are in seconds.
type Schedule struct {
	FirstTwoScatter float64 `yaml:"first_two_scatter"`
	LastTwoScatter  float64 `yaml:"last_two_scatter"`
	Chase           float64 `yaml:"chase"`
	Frightened      float64 `yaml:"frightened"`
	StartBlinkingAt float64 `yaml:"start_blinking_at"`
}

// Speeds are in pixels per second.
type Speeds struct {
	Player          float64 `yaml:"player"`
	Ghost           float64 `yaml:"ghost"`
	Frightened      float64 `yaml:"frightened"`
	Consumed        float64 `yaml:"consumed"`
	RoundMultiplier float64 `yaml:"round_multiplier"`
	MaxMultiplier   float64 `yaml:"max_multiplier"`
}

// Top is the fastest of the base speeds.
func (s Speeds) Top() float64 {
	return max(s.Player, s.Ghost, s.Frightened, s.Consumed)
}

type Points struct {
	Pellet      int   `yaml:"pellet"`
	PowerPellet int   `yaml:"power_pellet"`
	GhostBase   int   `yaml:"ghost_base"`
	ExtraLifeAt int   `yaml:"extra_life_at"`
	Fruit       []int `yaml:"fruit"`
}

type Delays struct {
	Intro      float64 `yaml:"intro"`
	Death      float64 `yaml:"death"`
	GhostEaten float64 `yaml:"ghost_eaten"`
	RoundEnd   float64 `yaml:"round_end"`
}

// House holds how long each ghost waits in the box before leaving.
type House struct {
	Blinky float64 `yaml:"blinky"`
	Pinky  float64 `yaml:"pinky"`
	Inky   float64 `yaml:"inky"`
	Clyde  float64 `yaml:"clyde"`
	Revive float64 `yaml:"revive"`
}

type Fruit struct {
	AppearAfter float64 `yaml:"appear_after"`
	Duration    float64 `yaml:"duration"`
}

func Default() Config {
	return Config{
		Schedule: Schedule{
			FirstTwoScatter: 7,
			LastTwoScatter:  5,
			Chase:           20,
			Frightened:      10,
			StartBlinkingAt: 7,
		},
		Speeds: Speeds{
			Player:          120,
			Ghost:           100,
			Frightened:      60,
			Consumed:        160,
			RoundMultiplier: 1.1,
			MaxMultiplier:   2,
		},
		Points: Points{
			Pellet:      10,
			PowerPellet: 50,
			GhostBase:   100,
			ExtraLifeAt: 10000,
			Fruit:       []int{100, 300, 500, 700, 1000, 2000, 3000, 5000},
		},
		Delays: Delays{Intro: 2, Death: 1.5, GhostEaten: 0.5, RoundEnd: 2},
		House:  House{Blinky: 0, Pinky: 1, Inky: 4, Clyde: 8, Revive: 0.5},
		Fruit:  Fruit{AppearAfter: 50, Duration: 20},
		Lives:  3,
	}
}

// Release is the box wait of a ghost at the start of a life.
func (h House) Release(id entities.ID) float64 {
	switch id {
	case entities.IDBlinky:
		return h.Blinky
	case entities.IDPinky:
		return h.Pinky
	case entities.IDInky:
		return h.Inky
	case entities.IDClyde:
		return h.Clyde
	default:
		return 0
	}
}

// FruitPoints returns the value of the fruit shown in round (1-based).
// Rounds past the table keep the last fruit.
func (p Points) FruitPoints(round int) int {
	if len(p.Fruit) == 0 {
		return 0
	}
	i := round - 1
	if i < 0 {
		i = 0
	}
	if i >= len(p.Fruit) {
		i = len(p.Fruit) - 1
	}
	return p.Fruit[i]
}

// Load reads path over Default and applies environment overrides. A
// missing file is not an error. logger may be nil.
func Load(path string, logger *log.Logger) (Config, error) {
	if logger == nil {
		logger = log.Default()
	}
	cfg := Default()
	if path == "" {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		logger.Printf("[WARN] config file %s not found, using defaults", path)
	case err != nil:
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PACMAN_CONFIG_DIR"); v != "" {
		c.ConfigDir = v
	}
	if v := os.Getenv("PACMAN_LEVEL"); v != "" {
		c.Level = v
	}
	// Audio is disabled by default; DISABLE wins over ENABLE.
	if os.Getenv("PACMAN_ENABLE_AUDIO") == "1" {
		c.Audio = true
	}
	if os.Getenv("PACMAN_DISABLE_AUDIO") == "1" {
		c.Audio = false
	}
	if v := os.Getenv("PACMAN_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("PACMAN_SEED: %w", err)
		}
		c.Seed = seed
	}
	return nil
}

type field struct {
	name string
	v    float64
}

// Validate rejects values the game loop cannot run with. Fields are
// checked in declaration order so the first bad one is reported.
func (c Config) Validate() error {
	s := c.Schedule
	for _, f := range []field{
		{"schedule.first_two_scatter", s.FirstTwoScatter},
		{"schedule.last_two_scatter", s.LastTwoScatter},
		{"schedule.chase", s.Chase},
		{"schedule.frightened", s.Frightened},
		{"schedule.start_blinking_at", s.StartBlinkingAt},
		{"delays.intro", c.Delays.Intro},
		{"delays.death", c.Delays.Death},
		{"delays.ghost_eaten", c.Delays.GhostEaten},
		{"delays.round_end", c.Delays.RoundEnd},
		{"house.blinky", c.House.Blinky},
		{"house.pinky", c.House.Pinky},
		{"house.inky", c.House.Inky},
		{"house.clyde", c.House.Clyde},
		{"house.revive", c.House.Revive},
		{"fruit.appear_after", c.Fruit.AppearAfter},
		{"fruit.duration", c.Fruit.Duration},
	} {
		if f.v < 0 {
			return fmt.Errorf("%s must not be negative, got %v", f.name, f.v)
		}
	}
	if s.StartBlinkingAt >= s.Frightened {
		return fmt.Errorf("schedule.start_blinking_at (%v) must be below schedule.frightened (%v)", s.StartBlinkingAt, s.Frightened)
	}
	sp := c.Speeds
	for _, f := range []field{
		{"speeds.player", sp.Player},
		{"speeds.ghost", sp.Ghost},
		{"speeds.frightened", sp.Frightened},
		{"speeds.consumed", sp.Consumed},
	} {
		if f.v <= 0 {
			return fmt.Errorf("%s must be positive, got %v", f.name, f.v)
		}
	}
	if sp.RoundMultiplier < 1 || sp.MaxMultiplier < 1 {
		return errors.New("speeds.round_multiplier and speeds.max_multiplier must be at least 1")
	}
	limit := float64(tilemap.DefaultTileSize) / 2
	if step := sp.Top() * sp.MaxMultiplier * SimStep; step >= limit {
		return fmt.Errorf("speeds: top speed %v at %vx covers %.1f px per step, must stay under %v", sp.Top(), sp.MaxMultiplier, step, limit)
	}
	if c.Lives < 1 {
		return fmt.Errorf("lives must be at least 1, got %d", c.Lives)
	}
	return nil
}
