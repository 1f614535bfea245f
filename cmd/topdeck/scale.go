package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/topdeck/internal/difficulty"
)

var (
	flagScaleWaves  int
	flagScaleEnemy  string
	flagScaleDetail bool
)

var scaleCmd = &cobra.Command{
	Use:   "scale",
	Short: "Show the per-wave stat scaling table",
	Long: `Print how an enemy type's stats scale with the wave number.
Scaling saturates at wave 15.

Examples:
  topdeck scale
  topdeck scale --enemy brute --waves 20
  topdeck scale --debug`,
	Args: cobra.NoArgs,
	RunE: runScale,
}

func init() {
	scaleCmd.Flags().IntVar(&flagScaleWaves, "waves", 15, "Number of waves to show")
	scaleCmd.Flags().StringVar(&flagScaleEnemy, "enemy", "grunt", "Enemy type id from the config")
	scaleCmd.Flags().BoolVar(&flagScaleDetail, "debug", false, "Print the debug line for each wave instead of the table")
}

func runScale(_ *cobra.Command, _ []string) error {
	enemy, ok := appConfig.EnemyByID(flagScaleEnemy)
	if !ok {
		return fmt.Errorf("unknown enemy type %q", flagScaleEnemy)
	}

	if flagScaleDetail {
		for w := 1; w <= flagScaleWaves; w++ {
			fmt.Println(difficulty.DebugInfo(w))
		}
		return nil
	}

	fmt.Printf("Scaling - %s (hp %d, speed %.2f, damage %d)\n\n",
		enemy.ID, enemy.BaseHealth, enemy.MoveSpeed, enemy.DamageToPlayer)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Wave\tMult\tHealth\tDamage\tSpeed\tSize\tTint")
	for w := 1; w <= flagScaleWaves; w++ {
		fmt.Fprintf(tw, "%d\t%.3f\t%d\t%d\t%.2f\t%.3f\t%s\n",
			w,
			difficulty.Multiplier(w),
			difficulty.ScaleHealth(enemy.BaseHealth, w),
			difficulty.ScaleDamage(enemy.DamageToPlayer, w),
			difficulty.ScaleSpeed(enemy.MoveSpeed, w),
			difficulty.ScaleSize(1, w),
			difficulty.Tint(w).Hex(),
		)
	}
	return tw.Flush()
}
