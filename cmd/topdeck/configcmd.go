package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/topdeck/internal/config"
)

var flagConfigBase bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `Print the configuration topdeck would run with, after the difficulty
preset is applied. The output is a valid config file: redirect it to
~/.topdeck/configs/topdeck.yaml and edit what you need.

Examples:
  topdeck config
  topdeck config --difficulty hard
  topdeck config --base > configs/topdeck.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigBase, "base", false, "Print the config before the preset is applied")
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg := appConfig
	if flagConfigBase {
		cfg = appBase
	}

	_, source, err := config.Resolve(flagConfig)
	if err != nil {
		return err
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	fmt.Printf("# source: %s\n", source)
	if !flagConfigBase {
		fmt.Printf("# preset: %s\n", appPreset)
	}
	_, err = os.Stdout.Write(data)
	return err
}
