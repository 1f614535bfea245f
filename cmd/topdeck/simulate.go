package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/topdeck/internal/sim"
	"github.com/vovakirdan/topdeck/internal/storage"
	"github.com/vovakirdan/topdeck/internal/wave"
)

var (
	flagSimProfile string
	flagSimWaves   int
	flagSimResume  string
	flagSimNoSave  bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play waves headlessly with a player profile",
	Long: `Run the battle simulation without a terminal UI. A player profile decides
how well the defenders aim and which upgrades to buy between waves; the
director adapts to the results exactly as it does in a real game.

The session is saved to the database unless --no-save is given, so it can
be inspected with 'topdeck history' or continued with --resume.

Examples:
  topdeck simulate --profile novice --waves 10
  topdeck simulate --profile turtle --waves 20 --difficulty hard --seed 3
  topdeck simulate --resume 3f2a --waves 5`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	ids := make([]string, 0)
	for _, p := range sim.Profiles() {
		ids = append(ids, p.ID)
	}
	simulateCmd.Flags().StringVar(&flagSimProfile, "profile", "greedy",
		"Player profile: "+strings.Join(ids, ", "))
	simulateCmd.Flags().IntVar(&flagSimWaves, "waves", 10, "Number of waves to play")
	simulateCmd.Flags().StringVar(&flagSimResume, "resume", "", "Continue a stored session (id or prefix)")
	simulateCmd.Flags().BoolVar(&flagSimNoSave, "no-save", false, "Do not store the session")
}

func runSimulate(_ *cobra.Command, _ []string) error {
	if flagSimWaves <= 0 {
		return fmt.Errorf("--waves must be positive")
	}
	profile, err := sim.NewProfile(flagSimProfile)
	if err != nil {
		return err
	}
	l := logger("cmd", "simulate", "profile", profile.ID())

	var store *storage.Store
	if !flagSimNoSave || flagSimResume != "" {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	preset := appPreset
	var session *wave.Session
	if flagSimResume != "" {
		session, preset, err = resumeSession(store, appBase, flagSimResume, l)
		if err != nil {
			return err
		}
	} else {
		session = wave.NewSession(appConfig, wave.WithSeed(flagSeed), wave.WithLogger(l))
	}

	fmt.Printf("Session %s  seed %d  preset %s  profile %s\n\n",
		session.ID(), session.Seed(), preset, profile.ID())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reports, runErr := sim.NewRunner(session, profile, 1/float64(max(flagFPS, 1))).Run(ctx, flagSimWaves)
	for _, r := range reports {
		printReport(r)
	}

	if store != nil && !flagSimNoSave {
		source := "simulate:" + profile.ID()
		for _, r := range reports {
			rec := waveRecord(session.ID(), r.Plan, r.Result, r.Kills, r.Leaks)
			if err := saveWave(store, session, preset, source, rec); err != nil {
				return err
			}
		}
		if len(reports) > 0 {
			fmt.Printf("Saved %d waves to %s\n", len(reports), flagDBPath)
		}
	}

	switch {
	case errors.Is(runErr, sim.ErrDefeated):
		last := reports[len(reports)-1]
		fmt.Printf("Defeated on wave %d.\n", last.Result.WaveIndex)
		return nil
	case errors.Is(runErr, context.Canceled):
		fmt.Println("Interrupted.")
		return nil
	}
	return runErr
}

func printReport(r sim.Report) {
	res := r.Result
	fmt.Printf("Wave %d: %s\n", res.WaveIndex, r.Plan.Tuning)
	fmt.Printf("  enemies %d (elites %d, mini-bosses %d)  kills %d  leaks %d\n",
		res.EnemiesSpawned, res.ElitesSpawned, res.MiniBossesSpawned, r.Kills, r.Leaks)
	fmt.Printf("  health lost %d/%d  combat %.1fs  money %d",
		res.HealthLost, res.StartingHealth, res.CombatDuration, r.Money)
	if len(r.Purchases) > 0 {
		bought := make([]string, len(r.Purchases))
		for i, t := range r.Purchases {
			bought[i] = t.String()
		}
		fmt.Printf("  bought %s", strings.Join(bought, ", "))
	}
	fmt.Println()
}
