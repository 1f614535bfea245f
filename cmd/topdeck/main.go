// topdeck is an adaptive wave-difficulty toolkit for lane defense games.
//
// Usage:
//
//	topdeck scale              - Show the per-wave stat scaling table
//	topdeck plan               - Show the director's plan for upcoming waves
//	topdeck patterns           - List spawn patterns and preview their layouts
//	topdeck simulate           - Play waves headlessly with a player profile
//	topdeck history [session]  - Browse stored sessions and waves
//	topdeck play               - Play in the terminal
//	topdeck serve              - Start the SSH server for remote play
//	topdeck config             - Print the effective configuration
//
// Global flags:
//
//	--config <path>      - Config YAML (default: search ~/.topdeck/configs, ./configs)
//	--difficulty <name>  - Preset: easy, normal, hard, fixed
//	--seed <value>       - RNG seed for reproducible waves
//	--db <path>          - Database path (default: ~/.topdeck/topdeck.db)
//	--log-level <level>  - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/topdeck/internal/config"
	"github.com/vovakirdan/topdeck/internal/logging"
	"github.com/vovakirdan/topdeck/internal/storage"
)

var (
	// Global flags
	flagConfig     string
	flagDifficulty string
	flagSeed       int64
	flagDBPath     string
	flagLogLevel   string
	flagFPS        int
)

// Set up by the root PersistentPreRunE.
var (
	appBase   config.Config // before the preset
	appConfig config.Config
	appPreset config.DifficultyPreset
	appLogger *logging.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "topdeck",
	Short: "Adaptive wave difficulty for lane defense",
	Long: `topdeck plans tower-defense waves that adapt to the player: enemy stats
scale with the wave, variants mutate with progress and upgrades, spawn
patterns change with the difficulty score, and a director eases off when
recent waves went badly.

Available commands:
  scale     - Stat scaling per wave
  plan      - Director tuning, spawn layout and variants for upcoming waves
  patterns  - Spawn pattern catalogue
  simulate  - Headless waves with a player profile
  history   - Stored sessions and waves
  play      - Play in the terminal
  serve     - SSH server for remote play
  config    - Effective configuration as YAML

Examples:
  topdeck plan --waves 5 --defender 1
  topdeck simulate --profile novice --waves 10
  topdeck play --difficulty hard
  topdeck serve --ssh :23235`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) {
		//nolint:errcheck // Best-effort close on exit
		appLogger.Close()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to a custom config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random)")
	pf.StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to the session database")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level override: debug, info, warn, error")
	pf.IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")

	rootCmd.AddCommand(scaleCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(patternsCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// setup loads the config, applies the preset and builds the logger.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	appBase = cfg
	config.ApplyPreset(&cfg, preset)

	if flagLogLevel != "" {
		cfg.Logging.Level = flagLogLevel
	}
	logger, err := logging.New(cfg.Logging, os.Stderr, "topdeck")
	if err != nil {
		return err
	}

	appConfig = cfg
	appPreset = preset
	appLogger = logger
	appLogger.Debug("config loaded", "command", cmd.Name(), "preset", preset, "seed", flagSeed)
	return nil
}

// logger returns the command logger with extra context.
func logger(keyvals ...any) *log.Logger {
	return appLogger.With(keyvals...)
}
