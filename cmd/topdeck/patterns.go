package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/topdeck/internal/spawn"
)

var (
	flagPatternCount  int
	flagPatternElites int
	flagPatternBosses int
	flagPatternShare  float64
)

var patternsCmd = &cobra.Command{
	Use:   "patterns [pattern]",
	Short: "List spawn patterns and preview their layouts",
	Long: `Without arguments, list the registered spawn patterns.
With a pattern name, build a plan with it and draw the lanes: one column
per spawn, n = normal, E = elite, B = mini-boss.

Examples:
  topdeck patterns
  topdeck patterns escort --count 12 --bosses 2
  topdeck patterns burst --share 0.25 --seed 7`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPatterns,
}

func init() {
	patternsCmd.Flags().IntVar(&flagPatternCount, "count", 10, "Number of spawns")
	patternsCmd.Flags().IntVar(&flagPatternElites, "elites", 1, "Minimum elites")
	patternsCmd.Flags().IntVar(&flagPatternBosses, "bosses", 0, "Mini-bosses")
	patternsCmd.Flags().Float64Var(&flagPatternShare, "share", 0, "Elite share of the wave, 0-1")
}

func runPatterns(_ *cobra.Command, args []string) error {
	if len(args) == 0 {
		patterns := spawn.Patterns()
		fmt.Println("Spawn patterns:")
		fmt.Println()
		for _, p := range patterns {
			fmt.Printf("  %-12s  %s\n", p.ID, p.Title)
		}
		fmt.Println()
		fmt.Println("Run 'topdeck patterns <name>' to preview a layout.")
		return nil
	}

	pattern, err := spawn.ParsePattern(args[0])
	if err != nil {
		return err
	}

	lanes := appConfig.Battle.Lanes
	plan := spawn.Build(spawn.Request{
		Pattern:       pattern,
		Total:         flagPatternCount,
		EliteFraction: flagPatternShare,
		EliteCount:    flagPatternElites,
		MiniBossCount: flagPatternBosses,
		BaseDelay:     appConfig.Battle.BaseSpawnDelay,
		SpawnPoints:   lanes,
		Seed:          flagSeed,
	})

	elites, bosses := spawn.Count(plan)
	fmt.Printf("%s: %d spawns, %d elites, %d mini-bosses, %.1fs\n\n",
		pattern, len(plan), elites, bosses, spawn.Duration(plan))
	fmt.Print(drawPlan(plan, lanes))
	return nil
}

// drawPlan renders one row per lane and one column per spawn.
func drawPlan(plan []spawn.Instruction, lanes int) string {
	if lanes < 1 {
		lanes = 1
	}
	rows := make([][]rune, lanes)
	for i := range rows {
		rows[i] = []rune(strings.Repeat("·", len(plan)))
	}
	for i, in := range plan {
		lane := min(max(in.SpawnPoint, 0), lanes-1)
		mark := 'n'
		switch {
		case in.ForceMiniBoss:
			mark = 'B'
		case in.ForceElite:
			mark = 'E'
		}
		rows[lane][i] = mark
	}

	var b strings.Builder
	for i, r := range rows {
		fmt.Fprintf(&b, "  lane %d  %s\n", i, string(r))
	}
	return b.String()
}
