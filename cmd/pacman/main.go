package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tferrerm/unity-pac/internal/config"
	"github.com/tferrerm/unity-pac/internal/game"
	"github.com/tferrerm/unity-pac/internal/replay"
	"github.com/tferrerm/unity-pac/internal/term"
	"github.com/tferrerm/unity-pac/internal/tilemap"
)

const defaultLevelName = "default"

var (
	configPath string
	levelPath  string
	recordPath string
	scale      float64
	soundsDir  string
)

var logger = log.New(os.Stderr, "", log.LstdFlags)

func main() {
	root := &cobra.Command{
		Use:          "pacman",
		Short:        "Play Pac-Man in a window",
		SilenceUsage: true,
		RunE:         runWindow,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "pacman.yaml", "YAML config file")
	root.PersistentFlags().StringVar(&levelPath, "level", "", "level file (default: built-in maze)")
	root.PersistentFlags().StringVar(&recordPath, "record", "", "write a replay of the session to this file")
	root.Flags().Float64Var(&scale, "scale", 0, "window scale, 0 fits the screen")
	root.Flags().StringVar(&soundsDir, "sounds", "assets/sounds", "directory with WAV cues")

	root.AddCommand(
		&cobra.Command{
			Use:   "term",
			Short: "Play in the terminal",
			Args:  cobra.NoArgs,
			RunE:  runTerm,
		},
		&cobra.Command{
			Use:   "check <level>",
			Short: "Parse a level file and report problems",
			Args:  cobra.ExactArgs(1),
			RunE:  runCheck,
		},
		&cobra.Command{
			Use:   "replay <file>",
			Short: "Re-run a recorded session and print its score",
			Args:  cobra.ExactArgs(1),
			RunE:  runReplay,
		},
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads .env, the config file and the level.
func setup() (config.Config, *tilemap.Level, string, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Printf("[WARN] .env: %v", err)
	}
	cfg, err := config.Load(configPath, logger)
	if err != nil {
		return cfg, nil, "", err
	}
	if levelPath != "" {
		cfg.Level = levelPath
	}
	lvl, err := loadLevel(cfg.Level)
	if err != nil {
		return cfg, nil, "", err
	}
	name := cfg.Level
	if name == "" {
		name = defaultLevelName
	}
	return cfg, lvl, name, nil
}

func loadLevel(path string) (*tilemap.Level, error) {
	if path == "" || path == defaultLevelName {
		return tilemap.Default(), nil
	}
	return tilemap.Load(path, tilemap.DefaultTileSize)
}

func recorder(cfg config.Config, level string) *replay.Recorder {
	if recordPath == "" {
		return nil
	}
	return replay.NewRecorder(cfg.Seed, level)
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, lvl, name, err := setup()
	if err != nil {
		return err
	}
	lb, err := game.NewLeaderboard(cfg.ConfigDir)
	if err != nil {
		logger.Printf("[WARN] leaderboard disabled: %v", err)
	}
	g := game.New(game.Options{
		Config:      cfg,
		Level:       lvl,
		Leaderboard: lb,
		Cues:        game.NewAudioManager(soundsDir, cfg.Audio),
		Recorder:    recorder(cfg, name),
		ReplayPath:  recordPath,
		Scale:       scale,
	})
	ebiten.SetWindowTitle("Pacman (Go + Ebiten)")
	ebiten.SetWindowResizable(false)
	ebiten.SetWindowSize(g.ScreenWidth(), g.ScreenHeight())
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
	return nil
}

func runTerm(cmd *cobra.Command, args []string) error {
	cfg, lvl, name, err := setup()
	if err != nil {
		return err
	}
	opts := term.Options{
		Config:     cfg,
		Level:      lvl,
		Recorder:   recorder(cfg, name),
		ReplayPath: recordPath,
	}
	if cfg.Audio {
		b, err := term.NewBeeper()
		if err != nil {
			logger.Printf("[WARN] audio disabled: %v", err)
		}
		defer b.Close()
		opts.Cues = b
	}
	var final int
	opts.OnExit = func(score int) { final = score }
	if err := term.Run(opts); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "score %d\n", final)
	return nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	lvl, err := tilemap.Load(args[0], tilemap.DefaultTileSize)
	if err != nil {
		return err
	}
	m := lvl.Map
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %dx%d, %d pellets, %d ghosts\n",
		args[0], m.Width, m.Height, m.PelletsRemaining(), len(lvl.Ghosts))
	return nil
}

func runReplay(cmd *cobra.Command, args []string) error {
	s, err := replay.LoadFile(args[0])
	if err != nil {
		return err
	}
	cfg, err := config.Load(configPath, logger)
	if err != nil {
		return err
	}
	lvl, err := loadLevel(s.Level)
	if err != nil {
		return err
	}
	g := replay.Run(s, lvl, cfg)
	fmt.Fprintf(cmd.OutOrStdout(), "session %s: %d frames, score %d (recorded %d)\n",
		s.ID, len(s.Frames), g.Score(), s.Score)
	if g.Score() != s.Score {
		return fmt.Errorf("replay diverged: score %d, recorded %d", g.Score(), s.Score)
	}
	return nil
}
