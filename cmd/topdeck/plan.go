package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/topdeck/internal/config"
	"github.com/vovakirdan/topdeck/internal/wave"
)

var (
	flagPlanStart    int
	flagPlanWaves    int
	flagPlanDefender int
	flagPlanTower    int
	flagPlanSpawns   bool
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the director's plan for upcoming waves",
	Long: `Evaluate the adaptive director for a range of waves at fixed upgrade
levels and print the tuning, the variant telemetry and optionally every
spawn instruction with its variant.

No wave results are recorded, so the plan shows the director without
performance stress.

Examples:
  topdeck plan --waves 10
  topdeck plan --start 8 --waves 1 --spawns --seed 42
  topdeck plan --defender 2 --tower 1 --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().IntVar(&flagPlanStart, "start", 1, "First wave to plan")
	planCmd.Flags().IntVar(&flagPlanWaves, "waves", 5, "Number of waves to plan")
	planCmd.Flags().IntVar(&flagPlanDefender, "defender", 0, "Defender upgrade level")
	planCmd.Flags().IntVar(&flagPlanTower, "tower", 0, "Tower upgrade level")
	planCmd.Flags().BoolVar(&flagPlanSpawns, "spawns", false, "List every spawn instruction")
}

func runPlan(_ *cobra.Command, _ []string) error {
	if flagPlanWaves <= 0 {
		return fmt.Errorf("--waves must be positive")
	}

	session := wave.NewSession(appConfig, wave.WithSeed(flagSeed), wave.WithLogger(logger("cmd", "plan")))
	session.Upgrades().SetLevels(flagPlanDefender, flagPlanTower)
	up := session.Upgrades()

	fmt.Printf("Seed %d  preset %s  defender %d/%d  tower %d/%d  enemy health x%.2f\n\n",
		session.Seed(), appPreset,
		up.DefenderLevel(), up.DefenderMaxLevel(), up.TowerLevel(), up.TowerMaxLevel(),
		up.EnemyHealthScaling())
	if config.IsFixedPreset(appPreset) {
		fmt.Println("Fixed preset: the director does not adapt to results.")
		fmt.Println()
	}

	for w := flagPlanStart; w < flagPlanStart+flagPlanWaves; w++ {
		plan := session.PlanWave(w)
		elites, bosses := plan.Elites()
		fmt.Printf("Wave %d: %s\n", plan.Wave, plan.Tuning)
		fmt.Printf("  spawned elites %d, mini-bosses %d\n", elites, bosses)
		fmt.Printf("  %s\n", plan.Telemetry)

		if flagPlanSpawns {
			printSpawns(plan)
		}
		fmt.Println()
	}
	return nil
}

func printSpawns(plan wave.Plan) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  Slot\tLane\tDelay\tVariant")
	for _, s := range plan.Spawns {
		fmt.Fprintf(tw, "  %d\t%d\t%.2fs\t%s\n", s.Slot, s.SpawnPoint, s.Delay, s.Variant.Summary())
	}
	//nolint:errcheck // stdout
	tw.Flush()
}
