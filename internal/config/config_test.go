package config

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tferrerm/unity-pac/internal/entities"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadMissingFileWarns(t *testing.T) {
	var buf bytes.Buffer
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), log.New(&buf, "", 0))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Lives != 3 || cfg.Schedule.Chase != 20 {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if !strings.Contains(buf.String(), "[WARN]") {
		t.Fatalf("expected a warning, got %q", buf.String())
	}
}

func TestLoadOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pacman.yaml")
	data := `
schedule:
  chase: 15
lives: 5
points:
  fruit: [1, 2]
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path, log.New(&bytes.Buffer{}, "", 0))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Schedule.Chase != 15 || cfg.Lives != 5 {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Schedule.FirstTwoScatter != 7 {
		t.Fatalf("unset value lost its default: %v", cfg.Schedule.FirstTwoScatter)
	}
	if got := cfg.Points.FruitPoints(5); got != 2 {
		t.Fatalf("FruitPoints(5) = %d, want 2", got)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PACMAN_CONFIG_DIR", dir)
	t.Setenv("PACMAN_ENABLE_AUDIO", "1")
	t.Setenv("PACMAN_SEED", "99")
	t.Setenv("PACMAN_LEVEL", "levels/alt.txt")
	cfg, err := Load(filepath.Join(dir, "missing.yaml"), log.New(&bytes.Buffer{}, "", 0))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ConfigDir != dir || !cfg.Audio || cfg.Seed != 99 || cfg.Level != "levels/alt.txt" {
		t.Fatalf("env not applied: %+v", cfg)
	}

	t.Setenv("PACMAN_DISABLE_AUDIO", "1")
	cfg, _ = Load(filepath.Join(dir, "missing.yaml"), log.New(&bytes.Buffer{}, "", 0))
	if cfg.Audio {
		t.Fatal("PACMAN_DISABLE_AUDIO must win")
	}

	t.Setenv("PACMAN_SEED", "abc")
	if _, err := Load(filepath.Join(dir, "missing.yaml"), log.New(&bytes.Buffer{}, "", 0)); err == nil {
		t.Fatal("expected error for bad seed")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative chase", func(c *Config) { c.Schedule.Chase = -1 }},
		{"blink after end", func(c *Config) { c.Schedule.StartBlinkingAt = 10 }},
		{"zero ghost speed", func(c *Config) { c.Speeds.Ghost = 0 }},
		{"no lives", func(c *Config) { c.Lives = 0 }},
		{"slowing rounds", func(c *Config) { c.Speeds.RoundMultiplier = 0.9 }},
		{"ghosts skip tiles", func(c *Config) { c.Speeds.Ghost, c.Speeds.Player = 1500, 1500 }},
		{"multiplier skips tiles", func(c *Config) { c.Speeds.MaxMultiplier = 3 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := Default()
			tc.mutate(&c)
			if err := c.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestValidateReportsFirstBadField(t *testing.T) {
	c := Default()
	c.Schedule.FirstTwoScatter = -1
	c.Fruit.Duration = -1
	c.Speeds.Consumed = 0
	for i := 0; i < 20; i++ {
		err := c.Validate()
		if err == nil || !strings.HasPrefix(err.Error(), "schedule.first_two_scatter") {
			t.Fatalf("run %d: got %v", i, err)
		}
	}
}

func TestValidateAcceptsFastestSafeSpeed(t *testing.T) {
	c := Default()
	// 230 px/s at 2x is 7.67 px per 1/60 s step.
	c.Speeds.Consumed = 230
	if err := c.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pacman.yaml")
	if err := os.WriteFile(path, []byte("lives: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path, log.New(&bytes.Buffer{}, "", 0)); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestRelease(t *testing.T) {
	h := Default().House
	if h.Release(entities.IDBlinky) != 0 || h.Release(entities.IDClyde) != 8 {
		t.Fatalf("unexpected release delays %+v", h)
	}
}
