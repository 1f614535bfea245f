package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/topdeck/internal/core"
	"github.com/vovakirdan/topdeck/internal/game/defense"
	"github.com/vovakirdan/topdeck/internal/platform/tui"
	"github.com/vovakirdan/topdeck/internal/storage"
)

var flagPlayResume string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a lane-defense game. Between waves you spend money on upgrades,
then start the next wave and watch the defenders hold the lanes.

Controls:
  Space/N/Enter  - Start the next wave
  D/1            - Upgrade defenders
  T/2            - Upgrade the tower
  P/Esc          - Pause
  R              - Restart (after game over)
  Ctrl+S         - Screenshot
  Q/Ctrl+C       - Quit

Every finished wave is saved, so a session can be picked up later with
--resume.

Examples:
  topdeck play
  topdeck play --difficulty hard --seed 42
  topdeck play --resume 3f2a`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayResume, "resume", "", "Continue a stored session (id or prefix)")
}

func runPlay(_ *cobra.Command, _ []string) error {
	l := logger("cmd", "play")

	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}

	// The game still works without storage.
	store, err := storage.Open(flagDBPath)
	if err != nil {
		if flagPlayResume != "" {
			return err
		}
		fmt.Fprintf(os.Stderr, "Warning: could not open session database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	cfg := appConfig
	preset := appPreset
	opts := []defense.Option{defense.WithLogger(l)}
	if flagPlayResume != "" {
		session, p, err := resumeSession(store, appBase, flagPlayResume, l)
		if err != nil {
			return err
		}
		cfg = session.Config()
		preset = p
		opts = append(opts, defense.WithSession(session))
	}
	opts = append(opts, defense.WithWaveHook(recorder(store, preset, "play", l)))

	g := defense.New(cfg, opts...)
	return tui.Run(g, core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	})
}
